// Package server assembles the gin engine and registers every route.
package server

import (
	"net/http"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/GintasS/social-media-post-generator/internal/config"
	config_http "github.com/GintasS/social-media-post-generator/internal/features/config/presentation/http"
	platformapp "github.com/GintasS/social-media-post-generator/internal/features/platforms/application"
	platforms_http "github.com/GintasS/social-media-post-generator/internal/features/platforms/presentation/http"
	postapp "github.com/GintasS/social-media-post-generator/internal/features/posts/application"
	posts_http "github.com/GintasS/social-media-post-generator/internal/features/posts/presentation/http"
	productapp "github.com/GintasS/social-media-post-generator/internal/features/products/application"
	products_http "github.com/GintasS/social-media-post-generator/internal/features/products/presentation/http"
)

// Dependencies are the services the routes are built on.
type Dependencies struct {
	AppConfig  config.AppConfigService
	Registry   platformapp.Registry
	Generation postapp.GenerationService
	Products   productapp.ProductService
	Logger     *zap.Logger
}

// NewRouter returns a gin engine with CORS, recovery, request logging and the
// /api/v1 routes.
func NewRouter(deps Dependencies) *gin.Engine {
	logger := deps.Logger
	if logger == nil {
		logger = zap.NewNop()
	}

	r := gin.New()
	r.Use(requestLogger(logger), gin.Recovery(), cors.Default())

	r.GET("/ping", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"message": "pong",
		})
	})

	v1 := r.Group("/api/v1")

	// Posts API routes
	postsGroup := v1.Group("/posts")
	{
		handler := posts_http.NewPostsHandler(deps.Generation)
		postsGroup.POST("/", handler.GeneratePostsHandler)
	}

	// Platforms API routes
	platformsGroup := v1.Group("/platforms")
	{
		handler := platforms_http.NewPlatformHandler(deps.Registry, logger)
		platformsGroup.GET("/", handler.ListPlatformsHandler)
		platformsGroup.POST("/", handler.RegisterPlatformHandler)
	}

	// Products API routes
	productsGroup := v1.Group("/products")
	{
		handler := products_http.NewProductHandler(deps.Products, logger)
		productsGroup.GET("/default-product", handler.DefaultProductHandler)
	}

	// Config API routes
	v1.GET("/config", config_http.NewAppConfigHandler(deps.AppConfig).GetAppConfigHandler)

	return r
}
