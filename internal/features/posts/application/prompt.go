package application

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	platformapp "github.com/GintasS/social-media-post-generator/internal/features/platforms/application"
	platformdomain "github.com/GintasS/social-media-post-generator/internal/features/platforms/domain"
	"github.com/GintasS/social-media-post-generator/internal/features/posts/domain"
)

// templateSlots is the number of values every prompt template must place.
const templateSlots = 7

// PromptCompiler renders a GenerationRequest and the current registry state
// into a single prompt string.
type PromptCompiler struct {
	registry  platformapp.Registry
	templates TemplateSource
}

// NewPromptCompiler creates a new PromptCompiler.
func NewPromptCompiler(registry platformapp.Registry, templates TemplateSource) *PromptCompiler {
	return &PromptCompiler{registry: registry, templates: templates}
}

// NormalizePlatformList lower-cases each platform and joins them with ", ".
// Order and duplicates are preserved.
func NormalizePlatformList(platforms []string) string {
	lowered := make([]string, len(platforms))
	for i, p := range platforms {
		lowered[i] = strings.ToLower(p)
	}
	return strings.Join(lowered, ", ")
}

// RenderPlatformRules emits one line per rule of every selected platform,
// walking the catalog in registry order. Selected keys that are not
// registered contribute nothing.
func RenderPlatformRules(catalog platformdomain.Catalog, selected []string) string {
	want := make(map[string]struct{}, len(selected))
	for _, key := range selected {
		want[key] = struct{}{}
	}

	var sb strings.Builder
	for _, p := range catalog.Platforms {
		if _, ok := want[p.Key]; !ok {
			continue
		}
		for _, rule := range p.Rules {
			fmt.Fprintf(&sb, "For %s platform, post rule is: %s: %s\n", p.Key, rule.Name, rule.Value)
		}
	}
	return sb.String()
}

// BuildPlatformRules renders the rule block for selected against the live registry.
func (c *PromptCompiler) BuildPlatformRules(ctx context.Context, selected []string) (string, error) {
	catalog, err := c.registry.ListPlatforms(ctx)
	if err != nil {
		return "", err
	}
	return RenderPlatformRules(catalog, selected), nil
}

// Compile fills the template slots with, in order: number of posts, product
// name, description, price, category, platform list and platform rules.
func (c *PromptCompiler) Compile(ctx context.Context, req domain.GenerationRequest) (string, error) {
	tmpl, err := c.templates.Template()
	if err != nil {
		return "", err
	}

	selected := req.SelectedPlatforms()
	rules, err := c.BuildPlatformRules(ctx, selected)
	if err != nil {
		return "", err
	}

	values := [templateSlots]string{
		strconv.Itoa(req.GenerateOptions.NumberOfPosts),
		req.ProductName,
		req.Description,
		strconv.FormatFloat(req.Price, 'f', -1, 64),
		req.Category,
		NormalizePlatformList(selected),
		rules,
	}
	return FormatPositional(tmpl, values[:]...)
}
