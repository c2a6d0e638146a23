package infrastructure

import (
	"context"
	"fmt"
	"strings"

	"go.uber.org/zap"
)

// Provider names accepted by NewAIClient.
const (
	ProviderOpenAI          = "openai"
	ProviderOpenAIResponses = "openai-responses"
	ProviderGemini          = "gemini"
	ProviderAnthropic       = "anthropic"
	ProviderMock            = "mock"
)

// ModelRequest is a single prompt-in, text-out call.
type ModelRequest struct {
	Prompt      string
	Model       string
	Temperature float64
	// WebSearch attaches the provider's web search tool when it has one.
	WebSearch bool
}

// AIClient defines a generic interface for text generation services.
// An empty string with a nil error means the model returned no text payload.
type AIClient interface {
	Generate(ctx context.Context, req ModelRequest) (string, error)
}

// AIConfig holds configuration for AI clients
type AIConfig struct {
	Provider string `json:"provider"` // "openai", "openai-responses", "gemini", "anthropic", "mock"
	APIKey   string `json:"api_key"`
	BaseURL  string `json:"base_url,omitempty"`
}

// NewAIClient builds the client for cfg.Provider.
func NewAIClient(ctx context.Context, cfg AIConfig, logger *zap.Logger) (AIClient, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	var (
		client AIClient
		err    error
	)
	switch strings.ToLower(cfg.Provider) {
	case ProviderOpenAI:
		client, err = NewOpenAIClient(cfg, logger)
	case ProviderOpenAIResponses, "":
		var c *OpenAIResponsesClient
		if c, err = NewOpenAIResponsesClient(cfg, logger); err == nil {
			client = c
		}
	case ProviderGemini:
		var c *GeminiClient
		if c, err = NewGeminiClient(ctx, cfg, logger); err == nil {
			client = c
		}
	case ProviderAnthropic:
		var c *AnthropicClient
		if c, err = NewAnthropicClient(cfg, NewModelCatalog(), logger); err == nil {
			client = c
		}
	case ProviderMock:
		client = MockClient{}
	default:
		return nil, fmt.Errorf("llm provider %s not supported", cfg.Provider)
	}
	if err != nil {
		return nil, err
	}
	return client, nil
}
