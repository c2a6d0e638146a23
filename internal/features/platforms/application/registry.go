package application

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/tidwall/gjson"
	"github.com/tidwall/sjson"
	"go.uber.org/zap"

	"github.com/GintasS/social-media-post-generator/internal/config"
	"github.com/GintasS/social-media-post-generator/internal/features/platforms/domain"
)

const platformsPath = "platforms"

// Registry defines the interface for the platform registry.
type Registry interface {
	ListPlatforms(ctx context.Context) (domain.Catalog, error)
	RegisterPlatform(ctx context.Context, name string, maxLength, hashtagLimit int, displayName string) (domain.RegisteredPlatform, error)
}

// registry reads the persisted document on every call; there is no cache.
type registry struct {
	store  config.AppConfigService
	logger *zap.Logger
}

// NewRegistry creates a Registry backed by store.
func NewRegistry(store config.AppConfigService, logger *zap.Logger) Registry {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &registry{store: store, logger: logger}
}

// ListPlatforms returns every registered platform in insertion order. A document
// without a "platforms" object yields an empty catalog.
func (r *registry) ListPlatforms(ctx context.Context) (domain.Catalog, error) {
	doc, err := r.store.LoadAppConfig(ctx)
	if err != nil {
		return domain.Catalog{}, fmt.Errorf("failed to load platforms: %w", err)
	}
	return ParseCatalog(doc), nil
}

// RegisterPlatform validates name, then appends the platform under its
// lower-cased key and persists the whole document.
func (r *registry) RegisterPlatform(ctx context.Context, name string, maxLength, hashtagLimit int, displayName string) (domain.RegisteredPlatform, error) {
	if !IsValidPlatformName(name) {
		return domain.RegisteredPlatform{}, fmt.Errorf("%w: %q", domain.ErrInvalidPlatformName, name)
	}
	key := strings.ToLower(name)

	entry := domain.StoredPlatform{
		MaxLength:    maxLength,
		HashtagLimit: hashtagLimit,
		Name:         displayName,
	}
	raw, err := json.Marshal(entry)
	if err != nil {
		return domain.RegisteredPlatform{}, fmt.Errorf("failed to marshal platform: %w", err)
	}

	err = r.store.UpdateAppConfig(ctx, func(doc []byte) ([]byte, error) {
		if gjson.GetBytes(doc, platformsPath+"."+key).Exists() {
			return nil, fmt.Errorf("%w: %q", domain.ErrDuplicatePlatform, name)
		}
		return sjson.SetRawBytes(doc, platformsPath+"."+key, raw)
	})
	if err != nil {
		return domain.RegisteredPlatform{}, err
	}

	r.logger.Info("platform registered",
		zap.String("key", key),
		zap.Int("max_length", maxLength),
		zap.Int("hashtag_limit", hashtagLimit))

	return domain.RegisteredPlatform{
		Name:         key,
		MaxLength:    maxLength,
		HashtagLimit: hashtagLimit,
		DisplayName:  displayName,
	}, nil
}

// IsValidPlatformName reports whether name is non-empty and made only of ASCII letters.
func IsValidPlatformName(name string) bool {
	if name == "" {
		return false
	}
	for i := 0; i < len(name); i++ {
		c := name[i]
		if (c < 'a' || c > 'z') && (c < 'A' || c > 'Z') {
			return false
		}
	}
	return true
}

// ParseCatalog extracts the "platforms" object of doc, keeping key and attribute order.
func ParseCatalog(doc []byte) domain.Catalog {
	catalog := domain.Catalog{
		Keys:      []string{},
		Platforms: []domain.Platform{},
		Details:   json.RawMessage(`{}`),
	}

	platforms := gjson.GetBytes(doc, platformsPath)
	if !platforms.Exists() || !platforms.IsObject() {
		return catalog
	}
	catalog.Details = json.RawMessage(platforms.Raw)

	platforms.ForEach(func(key, attrs gjson.Result) bool {
		p := domain.Platform{Key: key.String(), Rules: []domain.Rule{}}
		attrs.ForEach(func(name, value gjson.Result) bool {
			switch name.String() {
			case domain.DisplayNameAttribute:
				p.DisplayName = value.String()
				return true
			case "maxLength":
				p.MaxLength = int(value.Int())
			case "hashtagLimit":
				p.HashtagLimit = int(value.Int())
			}
			p.Rules = append(p.Rules, domain.Rule{Name: name.String(), Value: ruleValue(value)})
			return true
		})
		catalog.Keys = append(catalog.Keys, p.Key)
		catalog.Platforms = append(catalog.Platforms, p)
		return true
	})
	return catalog
}

// ruleValue renders strings without quotes and everything else as stored.
func ruleValue(v gjson.Result) string {
	if v.Type == gjson.String {
		return v.Str
	}
	return v.Raw
}
