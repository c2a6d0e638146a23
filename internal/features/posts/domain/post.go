package domain

import (
	"encoding/json"
	"errors"
	"strings"
	"time"
)

var (
	// ErrTemplateRead is returned when the prompt template resource cannot be read.
	ErrTemplateRead = errors.New("prompt template unavailable")
	// ErrTemplateFormat is returned when the template's slots do not match the supplied values.
	ErrTemplateFormat = errors.New("prompt template malformed")
)

// Defaults applied to a GenerationRequest before binding.
const (
	DefaultNumberOfPosts = 3
	DefaultModel         = "gpt-5.1"
	DefaultTemperature   = 0.7
)

// DefaultPlatforms is the platform selection used when the caller sends none.
func DefaultPlatforms() []string {
	return []string{"twitter", "instagram", "linkedin"}
}

// GenerateOptions controls how many posts are requested and for which platforms.
type GenerateOptions struct {
	NumberOfPosts int      `json:"number_of_posts" binding:"gte=1,lte=10"`
	Platforms     []string `json:"platforms"`
}

// ModelSettings selects the model and its sampling behaviour.
type ModelSettings struct {
	Model       string
	Temperature float64
	WebSearch   bool
}

// GenerationRequest is a resolved generation request: every default applied.
type GenerationRequest struct {
	ProductName     string
	Description     string
	Price           float64
	Category        string
	GenerateOptions GenerateOptions
	ModelSettings   ModelSettings
}

// NewGenerationRequest returns a request carrying the default options and model settings.
func NewGenerationRequest() GenerationRequest {
	return GenerationRequest{
		GenerateOptions: GenerateOptions{
			NumberOfPosts: DefaultNumberOfPosts,
			Platforms:     DefaultPlatforms(),
		},
		ModelSettings: ModelSettings{
			Model:       DefaultModel,
			Temperature: DefaultTemperature,
			WebSearch:   true,
		},
	}
}

// ModelSettingsBody is the "openai_settings" object of POST /posts. Model and
// temperature are required whenever the object is sent.
type ModelSettingsBody struct {
	Model       string   `json:"model_name" binding:"required,min=1,max=100"`
	Temperature *float64 `json:"temperature" binding:"required,gte=0,lte=1"`
	WebSearch   *bool    `json:"web_search"`
}

// GeneratePostsBody is the body of POST /posts. Pointers mark the fields whose
// absence differs from their zero value.
type GeneratePostsBody struct {
	ProductName     string             `json:"name" binding:"required,min=1,max=100"`
	Description     string             `json:"description" binding:"required,min=1,max=400"`
	Price           *float64           `json:"price" binding:"required,gte=0"`
	Category        string             `json:"category" binding:"max=100"`
	GenerateOptions GenerateOptions    `json:"generate_options"`
	ModelSettings   *ModelSettingsBody `json:"openai_settings"`
}

// NewGeneratePostsBody returns a body with the generate options pre-filled, so
// a JSON object missing some of them keeps the defaults.
func NewGeneratePostsBody() GeneratePostsBody {
	return GeneratePostsBody{
		GenerateOptions: GenerateOptions{
			NumberOfPosts: DefaultNumberOfPosts,
			Platforms:     DefaultPlatforms(),
		},
	}
}

// GenerationRequest resolves a bound body. The default model settings apply
// only when "openai_settings" was absent; web search defaults to on.
func (b GeneratePostsBody) GenerationRequest() GenerationRequest {
	req := NewGenerationRequest()
	req.ProductName = b.ProductName
	req.Description = b.Description
	if b.Price != nil {
		req.Price = *b.Price
	}
	req.Category = b.Category
	req.GenerateOptions = b.GenerateOptions

	if ms := b.ModelSettings; ms != nil {
		req.ModelSettings.Model = ms.Model
		if ms.Temperature != nil {
			req.ModelSettings.Temperature = *ms.Temperature
		}
		if ms.WebSearch != nil {
			req.ModelSettings.WebSearch = *ms.WebSearch
		}
	}
	return req
}

// SelectedPlatforms returns the requested platform keys lower-cased, in input order.
func (r GenerationRequest) SelectedPlatforms() []string {
	keys := make([]string, len(r.GenerateOptions.Platforms))
	for i, p := range r.GenerateOptions.Platforms {
		keys[i] = strings.ToLower(p)
	}
	return keys
}

// Reason tags why a generation produced no posts.
type Reason string

const (
	ReasonNone            Reason = ""
	ReasonPrompt          Reason = "prompt"
	ReasonModelCall       Reason = "model_call"
	ReasonMalformedOutput Reason = "malformed_output"
)

// Result is the outcome of a generation. Posts are opaque JSON values exactly as
// the model produced them.
type Result struct {
	Posts  []json.RawMessage
	Reason Reason
	Err    error
}

// IsError reports whether the generation failed.
func (r Result) IsError() bool {
	return r.Reason != ReasonNone
}

// GeneratePostsResponse is the body of POST /posts. It is always sent with 200.
type GeneratePostsResponse struct {
	Posts       []json.RawMessage `json:"posts"`
	GeneratedAt time.Time         `json:"generated_at"`
	Count       int               `json:"count"`
	IsError     bool              `json:"isError"`
}
