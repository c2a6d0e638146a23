package infrastructure

import (
	"context"
	"errors"
	"strings"

	"github.com/anthropics/anthropic-sdk-go"
	"github.com/anthropics/anthropic-sdk-go/option"
	"go.uber.org/zap"
)

var anthropicWebSearchTool = []map[string]any{{
	"type":     "web_search_20250305",
	"name":     "web_search",
	"max_uses": 5,
}}

// AnthropicClient generates text with the Anthropic Messages API. MaxTokens is
// taken from the model catalog.
type AnthropicClient struct {
	client  anthropic.Client
	catalog *ModelCatalog
	logger  *zap.Logger
}

// NewAnthropicClient creates an Anthropic client, requires an API key.
func NewAnthropicClient(cfg AIConfig, catalog *ModelCatalog, logger *zap.Logger) (*AnthropicClient, error) {
	if cfg.APIKey == "" {
		return nil, errors.New("ANTHROPIC_API_KEY environment variable not set")
	}
	opts := []option.RequestOption{option.WithAPIKey(cfg.APIKey)}
	if cfg.BaseURL != "" {
		opts = append(opts, option.WithBaseURL(cfg.BaseURL))
	}
	return &AnthropicClient{
		client:  anthropic.NewClient(opts...),
		catalog: catalog,
		logger:  logger,
	}, nil
}

func (a *AnthropicClient) Generate(ctx context.Context, req ModelRequest) (string, error) {
	if !a.catalog.Known(req.Model) {
		a.logger.Debug("model not in catalog, using fallback max tokens",
			zap.String("model", req.Model), zap.Int64("max_tokens", fallbackMaxTokens))
	}
	params := anthropic.MessageNewParams{
		Model:       anthropic.Model(req.Model),
		MaxTokens:   a.catalog.DefaultMaxTokens(req.Model),
		Temperature: anthropic.Float(req.Temperature),
		Messages: []anthropic.MessageParam{
			anthropic.NewUserMessage(anthropic.NewTextBlock(req.Prompt)),
		},
	}

	var opts []option.RequestOption
	if req.WebSearch {
		opts = append(opts, option.WithJSONSet("tools", anthropicWebSearchTool))
	}

	msg, err := a.client.Messages.New(ctx, params, opts...)
	if err != nil {
		a.logger.Warn("anthropic call failed", zap.String("model", req.Model), zap.Error(err))
		return "", err
	}

	// With web search the reply interleaves tool blocks and text; the final
	// text block carries the answer.
	var last string
	for _, block := range msg.Content {
		if block.Type == "text" && strings.TrimSpace(block.Text) != "" {
			last = block.Text
		}
	}
	return last, nil
}
