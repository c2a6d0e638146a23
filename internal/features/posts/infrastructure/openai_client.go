package infrastructure

import (
	"context"
	"errors"
	"math"

	openai "github.com/sashabaranov/go-openai"
	"go.uber.org/zap"
)

// openAIClient calls the Chat Completions API. It has no web search tool;
// the flag is logged and ignored.
type openAIClient struct {
	client *openai.Client
	logger *zap.Logger
}

// NewOpenAIClient creates a chat-completions client, requires an API key.
func NewOpenAIClient(cfg AIConfig, logger *zap.Logger) (AIClient, error) {
	if cfg.APIKey == "" {
		return nil, errors.New("OPENAI_API_KEY environment variable not set")
	}
	clientConfig := openai.DefaultConfig(cfg.APIKey)
	if cfg.BaseURL != "" {
		clientConfig.BaseURL = cfg.BaseURL
	}
	return &openAIClient{client: openai.NewClientWithConfig(clientConfig), logger: logger}, nil
}

func (c *openAIClient) Generate(ctx context.Context, req ModelRequest) (string, error) {
	if req.WebSearch {
		c.logger.Debug("web search is not available on chat completions, ignoring", zap.String("model", req.Model))
	}

	// go-openai drops a zero temperature from the request body.
	temperature := float32(req.Temperature)
	if temperature == 0 {
		temperature = math.SmallestNonzeroFloat32
	}

	resp, err := c.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model:       req.Model,
		Temperature: temperature,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleUser, Content: req.Prompt},
		},
		ResponseFormat: &openai.ChatCompletionResponseFormat{
			Type: openai.ChatCompletionResponseFormatTypeJSONObject,
		},
	})
	if err != nil {
		c.logger.Warn("chat completion failed", zap.String("model", req.Model), zap.Error(err))
		return "", err
	}
	if len(resp.Choices) == 0 {
		return "", nil
	}
	return resp.Choices[0].Message.Content, nil
}
