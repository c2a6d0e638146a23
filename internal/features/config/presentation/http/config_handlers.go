package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/GintasS/social-media-post-generator/internal/config"
)

// AppConfigHandler holds the app config service.
type AppConfigHandler struct {
	appConfigService config.AppConfigService
}

// NewAppConfigHandler creates a new AppConfigHandler.
func NewAppConfigHandler(appConfigService config.AppConfigService) *AppConfigHandler {
	return &AppConfigHandler{
		appConfigService: appConfigService,
	}
}

// GetAppConfigHandler handles fetching the application configuration.
// Writes go through the platform registry, which validates them.
func (h *AppConfigHandler) GetAppConfigHandler(c *gin.Context) {
	doc, err := h.appConfigService.LoadAppConfig(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load app config: " + err.Error()})
		return
	}
	c.Data(http.StatusOK, "application/json; charset=utf-8", doc)
}
