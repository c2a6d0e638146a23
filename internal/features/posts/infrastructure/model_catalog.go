package infrastructure

import (
	"charm.land/catwalk/pkg/catwalk"
	"charm.land/catwalk/pkg/embedded"
)

const fallbackMaxTokens = 4096

// ModelCatalog answers per-model output limits from catwalk's embedded
// provider database.
type ModelCatalog struct {
	models map[string]catwalk.Model
}

// NewModelCatalog loads every model known to catwalk.
func NewModelCatalog() *ModelCatalog {
	models := make(map[string]catwalk.Model)
	for _, provider := range embedded.GetAll() {
		for _, m := range provider.Models {
			models[m.ID] = m
		}
	}
	return &ModelCatalog{models: models}
}

// DefaultMaxTokens returns the model's default output budget, or 4096 when unknown.
func (c *ModelCatalog) DefaultMaxTokens(modelID string) int64 {
	if c != nil {
		if m, ok := c.models[modelID]; ok && m.DefaultMaxTokens > 0 {
			return int64(m.DefaultMaxTokens)
		}
	}
	return fallbackMaxTokens
}

// Known reports whether catwalk has metadata for modelID.
func (c *ModelCatalog) Known(modelID string) bool {
	if c == nil {
		return false
	}
	_, ok := c.models[modelID]
	return ok
}
