package infrastructure

import (
	"context"
	"errors"

	openai "github.com/openai/openai-go"
	"github.com/openai/openai-go/option"
	"github.com/openai/openai-go/responses"
	"github.com/openai/openai-go/shared"
	"go.uber.org/zap"
)

// webSearchPreviewTool is the hosted search tool of the Responses API.
var webSearchPreviewTool = []map[string]any{{"type": "web_search_preview"}}

// OpenAIResponsesClient implements AIClient using the official openai-go SDK
// (Responses API), which supports the hosted web search tool.
type OpenAIResponsesClient struct {
	client openai.Client
	logger *zap.Logger
}

// NewOpenAIResponsesClient creates a Responses API client, requires an API key.
func NewOpenAIResponsesClient(cfg AIConfig, logger *zap.Logger) (*OpenAIResponsesClient, error) {
	if cfg.APIKey == "" {
		return nil, errors.New("openai api key missing; set OPENAI_API_KEY or llm.api_key")
	}
	opts := []option.RequestOption{option.WithAPIKey(cfg.APIKey)}
	if cfg.BaseURL != "" {
		opts = append(opts, option.WithBaseURL(cfg.BaseURL))
	}
	return &OpenAIResponsesClient{client: openai.NewClient(opts...), logger: logger}, nil
}

func (o *OpenAIResponsesClient) Generate(ctx context.Context, req ModelRequest) (string, error) {
	params := responses.ResponseNewParams{
		Model:       shared.ResponsesModel(req.Model),
		Input:       responses.ResponseNewParamsInputUnion{OfString: openai.String(req.Prompt)},
		Temperature: openai.Float(req.Temperature),
	}

	var opts []option.RequestOption
	if req.WebSearch {
		opts = append(opts, option.WithJSONSet("tools", webSearchPreviewTool))
	}

	resp, err := o.client.Responses.New(ctx, params, opts...)
	if err != nil {
		o.logger.Warn("responses call failed", zap.String("model", req.Model), zap.Error(err))
		return "", err
	}
	return resp.OutputText(), nil
}
