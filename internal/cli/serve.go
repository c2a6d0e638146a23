package cli

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	platformapp "github.com/GintasS/social-media-post-generator/internal/features/platforms/application"
	postapp "github.com/GintasS/social-media-post-generator/internal/features/posts/application"
	"github.com/GintasS/social-media-post-generator/internal/features/posts/infrastructure"
	productapp "github.com/GintasS/social-media-post-generator/internal/features/products/application"
	"github.com/GintasS/social-media-post-generator/internal/server"
	"github.com/GintasS/social-media-post-generator/internal/telemetry"
)

func newServeCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP API",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()
			return a.serve(ctx)
		},
	}
}

func (a *app) serve(ctx context.Context) error {
	s, logger := a.settings, a.logger
	if !s.Log.Development {
		gin.SetMode(gin.ReleaseMode)
	}

	shutdownTracing, err := telemetry.Setup(ctx, s.Tracing.Endpoint)
	if err != nil {
		return err
	}
	defer func() {
		if err := shutdownTracing(context.Background()); err != nil {
			logger.Warn("tracing shutdown failed", zap.Error(err))
		}
	}()

	store, closeStore, err := openStore(ctx, s, logger)
	if err != nil {
		return err
	}
	defer closeStore()

	aiClient, err := infrastructure.NewAIClient(ctx, infrastructure.AIConfig{
		Provider: s.LLM.Provider,
		APIKey:   s.LLM.APIKey,
		BaseURL:  s.LLM.BaseURL,
	}, logger)
	if err != nil {
		return err
	}

	registry := platformapp.NewRegistry(store, logger)
	compiler := postapp.NewPromptCompiler(registry, postapp.FileTemplate{Path: s.Static.Prompt})

	router := server.NewRouter(server.Dependencies{
		AppConfig:  store,
		Registry:   registry,
		Generation: postapp.NewGenerationService(compiler, aiClient, s.LLM.Timeout, logger),
		Products:   productapp.NewProductService(s.Static.Product),
		Logger:     logger,
	})

	srv := &http.Server{
		Addr:              s.Server.Addr,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("listening",
			zap.String("addr", s.Server.Addr),
			zap.String("store", s.Store.Backend),
			zap.String("llm_provider", s.LLM.Provider))
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
	}

	logger.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}

// localRegistry opens the configured store for the offline commands.
func (a *app) localRegistry(ctx context.Context) (platformapp.Registry, func() error, error) {
	store, closeStore, err := openStore(ctx, a.settings, a.logger)
	if err != nil {
		return nil, nil, err
	}
	return platformapp.NewRegistry(store, a.logger), closeStore, nil
}
