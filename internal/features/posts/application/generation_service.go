package application

import (
	"context"
	"encoding/json"
	"errors"
	"strings"
	"time"

	"github.com/tidwall/gjson"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"

	"github.com/GintasS/social-media-post-generator/internal/features/posts/domain"
	"github.com/GintasS/social-media-post-generator/internal/features/posts/infrastructure"
)

var errMalformedOutput = errors.New("model output is not a JSON document with a posts array")

// Compiler turns a request into a prompt.
type Compiler interface {
	Compile(ctx context.Context, req domain.GenerationRequest) (string, error)
}

// GenerationService defines the interface for post generation.
type GenerationService interface {
	// Generate never returns an error; failures are reported through Result.
	Generate(ctx context.Context, req domain.GenerationRequest) domain.Result
}

// generationService is the implementation of GenerationService.
type generationService struct {
	compiler Compiler
	client   infrastructure.AIClient
	timeout  time.Duration
	logger   *zap.Logger
	tracer   trace.Tracer
}

// NewGenerationService creates a new instance of generationService. A zero
// timeout leaves the model call bounded only by ctx.
func NewGenerationService(compiler Compiler, client infrastructure.AIClient, timeout time.Duration, logger *zap.Logger) GenerationService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &generationService{
		compiler: compiler,
		client:   client,
		timeout:  timeout,
		logger:   logger,
		tracer:   otel.Tracer("github.com/GintasS/social-media-post-generator/posts"),
	}
}

// Generate compiles the prompt, calls the model and extracts the "posts" array.
func (s *generationService) Generate(ctx context.Context, req domain.GenerationRequest) domain.Result {
	ctx, span := s.tracer.Start(ctx, "posts.generate", trace.WithAttributes(
		attribute.String("model", req.ModelSettings.Model),
		attribute.Int("number_of_posts", req.GenerateOptions.NumberOfPosts),
		attribute.Bool("web_search", req.ModelSettings.WebSearch),
	))
	defer span.End()

	result := s.generate(ctx, req)

	span.SetAttributes(attribute.Int("posts", len(result.Posts)))
	if result.IsError() {
		span.RecordError(result.Err)
		span.SetStatus(codes.Error, string(result.Reason))
		s.logger.Warn("post generation failed",
			zap.String("reason", string(result.Reason)),
			zap.String("model", req.ModelSettings.Model),
			zap.Error(result.Err))
	} else {
		s.logger.Info("posts generated",
			zap.String("model", req.ModelSettings.Model),
			zap.Int("count", len(result.Posts)))
	}
	return result
}

func (s *generationService) generate(ctx context.Context, req domain.GenerationRequest) domain.Result {
	prompt, err := s.compiler.Compile(ctx, req)
	if err != nil {
		return failed(domain.ReasonPrompt, err)
	}

	if s.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.timeout)
		defer cancel()
	}

	raw, err := s.client.Generate(ctx, infrastructure.ModelRequest{
		Prompt:      prompt,
		Model:       req.ModelSettings.Model,
		Temperature: req.ModelSettings.Temperature,
		WebSearch:   req.ModelSettings.WebSearch,
	})
	if err != nil {
		return failed(domain.ReasonModelCall, err)
	}

	posts, err := ParsePosts(raw)
	if err != nil {
		return failed(domain.ReasonMalformedOutput, err)
	}
	return domain.Result{Posts: posts}
}

func failed(reason domain.Reason, err error) domain.Result {
	return domain.Result{Posts: []json.RawMessage{}, Reason: reason, Err: err}
}

// ParsePosts extracts the "posts" array from a model reply. A reply with no
// text is not an error and yields no posts. A reply wrapped in a Markdown code
// fence is unwrapped first.
func ParsePosts(raw string) ([]json.RawMessage, error) {
	text := stripCodeFence(strings.TrimSpace(raw))
	if text == "" {
		return []json.RawMessage{}, nil
	}
	if !gjson.Valid(text) {
		return nil, errMalformedOutput
	}

	field := gjson.Get(text, "posts")
	if !field.IsArray() {
		return nil, errMalformedOutput
	}

	posts := []json.RawMessage{}
	field.ForEach(func(_, value gjson.Result) bool {
		posts = append(posts, json.RawMessage(value.Raw))
		return true
	})
	return posts, nil
}

func stripCodeFence(s string) string {
	if !strings.HasPrefix(s, "```") || !strings.HasSuffix(s, "```") || len(s) < 6 {
		return s
	}
	s = strings.TrimSuffix(s[3:], "```")
	// drop the info string, e.g. "json"
	if i := strings.IndexByte(s, '\n'); i >= 0 {
		s = s[i+1:]
	} else {
		s = strings.TrimPrefix(s, "json")
	}
	return strings.TrimSpace(s)
}
