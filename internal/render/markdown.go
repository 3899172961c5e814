package render

import (
	"bytes"
	"fmt"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/renderer/html"
)

// Markdown converts markdown body content to HTML. Raw HTML passthrough is
// enabled because bodies are sanitized upstream before they reach the
// renderer; the converter never sees untrusted markup.
type Markdown struct {
	md goldmark.Markdown
}

// NewMarkdown builds the converter with GFM tables, strikethrough and
// autolinked URLs.
func NewMarkdown() *Markdown {
	return &Markdown{
		md: goldmark.New(
			goldmark.WithExtensions(
				extension.Table,
				extension.Strikethrough,
				extension.Linkify,
			),
			goldmark.WithRendererOptions(
				html.WithUnsafe(),
			),
		),
	}
}

// Convert renders markdown source to an HTML fragment.
func (m *Markdown) Convert(source string) (string, error) {
	var buf bytes.Buffer
	if err := m.md.Convert([]byte(source), &buf); err != nil {
		return "", fmt.Errorf("render: convert markdown: %w", err)
	}
	return buf.String(), nil
}
