package http

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/GintasS/social-media-post-generator/internal/features/platforms/application"
	"github.com/GintasS/social-media-post-generator/internal/features/platforms/domain"
)

// PlatformHandler holds the platform registry.
type PlatformHandler struct {
	registry application.Registry
	logger   *zap.Logger
}

// NewPlatformHandler creates a new PlatformHandler.
func NewPlatformHandler(registry application.Registry, logger *zap.Logger) *PlatformHandler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &PlatformHandler{registry: registry, logger: logger}
}

// ListPlatformsHandler returns the registered platform keys and their stored details.
func (h *PlatformHandler) ListPlatformsHandler(c *gin.Context) {
	catalog, err := h.registry.ListPlatforms(c.Request.Context())
	if err != nil {
		h.logger.Error("failed to list platforms", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load platforms: " + err.Error()})
		return
	}
	c.JSON(http.StatusOK, domain.ListPlatformsResponse{
		Platforms: catalog.Keys,
		Details:   catalog.Details,
	})
}

// RegisterPlatformHandler adds a new platform if it doesn't already exist.
func (h *PlatformHandler) RegisterPlatformHandler(c *gin.Context) {
	var req domain.RegisterPlatformRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	platform, err := h.registry.RegisterPlatform(c.Request.Context(), req.Name, req.MaxLength, *req.HashtagLimit, req.DisplayName)
	switch {
	case errors.Is(err, domain.ErrInvalidPlatformName):
		c.JSON(http.StatusBadRequest, gin.H{"error": domain.ErrInvalidPlatformName.Error()})
		return
	case errors.Is(err, domain.ErrDuplicatePlatform):
		c.JSON(http.StatusConflict, gin.H{"error": fmt.Sprintf("Platform '%s' already exists", req.Name)})
		return
	case err != nil:
		h.logger.Error("failed to register platform", zap.String("name", req.Name), zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to save platform: " + err.Error()})
		return
	}

	c.JSON(http.StatusOK, domain.RegisterPlatformResponse{
		Message:  fmt.Sprintf("Platform '%s' added successfully", req.Name),
		Platform: platform,
	})
}
