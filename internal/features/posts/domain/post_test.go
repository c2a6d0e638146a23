package domain

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func decodeBody(t *testing.T, raw string) GeneratePostsBody {
	t.Helper()
	body := NewGeneratePostsBody()
	require.NoError(t, json.Unmarshal([]byte(raw), &body))
	return body
}

func TestGenerationRequestDefaultsWithoutModelSettings(t *testing.T) {
	req := decodeBody(t, `{"name":"Widget","description":"A widget","price":10}`).GenerationRequest()

	assert.Equal(t, 10.0, req.Price)
	assert.Equal(t, DefaultNumberOfPosts, req.GenerateOptions.NumberOfPosts)
	assert.Equal(t, DefaultPlatforms(), req.GenerateOptions.Platforms)
	assert.Equal(t, ModelSettings{Model: DefaultModel, Temperature: DefaultTemperature, WebSearch: true}, req.ModelSettings)
}

func TestGenerationRequestUsesSentModelSettings(t *testing.T) {
	req := decodeBody(t, `{"name":"Widget","description":"A widget","price":0,
		"openai_settings":{"model_name":"gpt-4o","temperature":0}}`).GenerationRequest()

	assert.Equal(t, 0.0, req.Price)
	assert.Equal(t, ModelSettings{Model: "gpt-4o", Temperature: 0, WebSearch: true}, req.ModelSettings)

	req = decodeBody(t, `{"name":"Widget","description":"A widget","price":1,
		"openai_settings":{"model_name":"gpt-4o","temperature":0.3,"web_search":false}}`).GenerationRequest()
	assert.False(t, req.ModelSettings.WebSearch)
	assert.Equal(t, 0.3, req.ModelSettings.Temperature)
}

func TestGenerationRequestKeepsUnsentOptionDefaults(t *testing.T) {
	req := decodeBody(t, `{"name":"Widget","description":"A widget","price":1,
		"generate_options":{"platforms":["Twitter"]}}`).GenerationRequest()

	assert.Equal(t, DefaultNumberOfPosts, req.GenerateOptions.NumberOfPosts)
	assert.Equal(t, []string{"twitter"}, req.SelectedPlatforms())
}
