package infrastructure

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
)

// MockClient is a placeholder for local debugging; it never calls an external model.
type MockClient struct{}

func (MockClient) Generate(_ context.Context, req ModelRequest) (string, error) {
	type post struct {
		Platform string `json:"platform"`
		Content  string `json:"content"`
	}
	firstLine := req.Prompt
	if i := strings.IndexByte(firstLine, '\n'); i >= 0 {
		firstLine = firstLine[:i]
	}
	out := struct {
		Posts []post `json:"posts"`
	}{
		Posts: []post{{
			Platform: "mock",
			Content:  fmt.Sprintf("[%s @ %.1f] %s", req.Model, req.Temperature, strings.TrimSpace(firstLine)),
		}},
	}
	b, err := json.Marshal(out)
	if err != nil {
		return "", err
	}
	return string(b), nil
}
