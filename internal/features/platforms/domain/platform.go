package domain

import (
	"encoding/json"
	"errors"
)

var (
	// ErrInvalidPlatformName is returned when a platform name is not made of ASCII letters only.
	ErrInvalidPlatformName = errors.New("platform name must contain only English letters")
	// ErrDuplicatePlatform is returned when the lower-cased platform name is already registered.
	ErrDuplicatePlatform = errors.New("platform already exists")
)

// DisplayNameAttribute is the stored attribute holding the human-readable name.
// It is the only attribute that is not a posting rule.
const DisplayNameAttribute = "name"

// Rule is one stored platform attribute, kept in stored order.
type Rule struct {
	Name  string
	Value string
}

// Platform is a registry entry.
type Platform struct {
	Key          string
	DisplayName  string
	MaxLength    int
	HashtagLimit int
	// Rules holds every stored attribute except the display name.
	Rules []Rule
}

// Catalog is a snapshot of the registry in insertion order.
type Catalog struct {
	Keys      []string
	Platforms []Platform
	// Details is the raw "platforms" object exactly as persisted.
	Details json.RawMessage
}

// Lookup returns the platform stored under key.
func (c Catalog) Lookup(key string) (Platform, bool) {
	for _, p := range c.Platforms {
		if p.Key == key {
			return p, true
		}
	}
	return Platform{}, false
}

// StoredPlatform is the persisted shape of a platform. Field order is the
// attribute order written to the document.
type StoredPlatform struct {
	MaxLength    int    `json:"maxLength"`
	HashtagLimit int    `json:"hashtagLimit"`
	Name         string `json:"name"`
}

// RegisterPlatformRequest is the body of POST /platforms.
type RegisterPlatformRequest struct {
	Name         string `json:"name" binding:"required,min=1,max=50"`
	MaxLength    int    `json:"max_length" binding:"required,gt=0"`
	HashtagLimit *int   `json:"hashtag_limit" binding:"required,gte=0"`
	DisplayName  string `json:"display_name" binding:"required,min=1,max=100"`
}

// RegisteredPlatform is the normalized entry returned after registration.
type RegisteredPlatform struct {
	Name         string `json:"name"`
	MaxLength    int    `json:"maxLength"`
	HashtagLimit int    `json:"hashtagLimit"`
	DisplayName  string `json:"displayName"`
}

// ListPlatformsResponse is the body of GET /platforms.
type ListPlatformsResponse struct {
	Platforms []string        `json:"platforms"`
	Details   json.RawMessage `json:"details"`
}

// RegisterPlatformResponse is the body of a successful POST /platforms.
type RegisterPlatformResponse struct {
	Message  string             `json:"message"`
	Platform RegisteredPlatform `json:"platform"`
}
