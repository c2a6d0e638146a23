package application

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/GintasS/social-media-post-generator/internal/features/posts/domain"
)

// TemplateSource provides the prompt template text.
type TemplateSource interface {
	Template() (string, error)
}

// FileTemplate reads the template from disk on every call, so edits to the
// file take effect without a restart.
type FileTemplate struct {
	Path string
}

func (f FileTemplate) Template() (string, error) {
	data, err := os.ReadFile(f.Path)
	if err != nil {
		return "", fmt.Errorf("%w: %v", domain.ErrTemplateRead, err)
	}
	return string(data), nil
}

// StaticTemplate serves a fixed template string.
type StaticTemplate string

func (s StaticTemplate) Template() (string, error) {
	return string(s), nil
}

// FormatPositional fills a template whose slots are written "{}" (filled in
// order) or "{N}" (zero-based index). "{{" and "}}" produce literal braces.
// Every value must be referenced by at least one slot and no slot may point
// past the last value; otherwise the template is rejected.
func FormatPositional(tmpl string, values ...string) (string, error) {
	var sb strings.Builder
	sb.Grow(len(tmpl))

	used := make([]bool, len(values))
	next := 0
	auto, manual := false, false

	for i := 0; i < len(tmpl); i++ {
		c := tmpl[i]
		switch c {
		case '{':
			if i+1 < len(tmpl) && tmpl[i+1] == '{' {
				sb.WriteByte('{')
				i++
				continue
			}
			end := strings.IndexByte(tmpl[i+1:], '}')
			if end < 0 {
				return "", fmt.Errorf("%w: unclosed '{' at offset %d", domain.ErrTemplateFormat, i)
			}
			field := tmpl[i+1 : i+1+end]

			var idx int
			if field == "" {
				auto = true
				idx = next
				next++
			} else {
				n, err := strconv.Atoi(field)
				if err != nil || n < 0 {
					return "", fmt.Errorf("%w: unsupported slot {%s}", domain.ErrTemplateFormat, field)
				}
				manual = true
				idx = n
			}
			if auto && manual {
				return "", fmt.Errorf("%w: cannot mix {} and {N} slots", domain.ErrTemplateFormat)
			}
			if idx >= len(values) {
				return "", fmt.Errorf("%w: slot %d but only %d values", domain.ErrTemplateFormat, idx, len(values))
			}
			used[idx] = true
			sb.WriteString(values[idx])
			i += end + 1
		case '}':
			if i+1 < len(tmpl) && tmpl[i+1] == '}' {
				sb.WriteByte('}')
				i++
				continue
			}
			return "", fmt.Errorf("%w: single '}' at offset %d", domain.ErrTemplateFormat, i)
		default:
			sb.WriteByte(c)
		}
	}

	for idx, ok := range used {
		if !ok {
			return "", fmt.Errorf("%w: value %d has no slot", domain.ErrTemplateFormat, idx)
		}
	}
	return sb.String(), nil
}
