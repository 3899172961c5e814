// Package sanitizer neutralizes unsafe markup in user-authored content
// before it reaches the store. It removes script and iframe elements with
// their contents, drops inline event handlers, and restricts link and image
// URLs to http(s), using an allowlist policy rather than escaping.
package sanitizer

import (
	"fmt"
	"strings"

	"github.com/microcosm-cc/bluemonday"
)

// DefaultMaxContentLength is the ceiling applied to body content when the
// sanitizer is constructed without an explicit limit.
const DefaultMaxContentLength = 50000

// Result is the outcome of sanitizing one piece of content. Clean always
// carries a best-effort safe version; the caller decides whether to proceed
// with it or abort when Valid is false.
type Result struct {
	Clean    string
	Valid    bool
	Errors   []string
	Warnings []string
}

// Sanitizer applies a fixed bluemonday policy plus a length ceiling. It is
// constructed once at pipeline startup and passed to every stage that needs
// it; the policy is safe for concurrent use.
type Sanitizer struct {
	bodyPolicy  *bluemonday.Policy
	plainPolicy *bluemonday.Policy
	maxLength   int
}

// Option configures a Sanitizer.
type Option func(*Sanitizer)

// WithMaxContentLength overrides the content length ceiling.
func WithMaxContentLength(limit int) Option {
	return func(s *Sanitizer) {
		if limit > 0 {
			s.maxLength = limit
		}
	}
}

// New builds a Sanitizer with the article body policy: common formatting
// tags allowed, script/iframe/style/object/embed removed together with
// their contents, event handler attributes dropped, URLs limited to http(s).
func New(opts ...Option) *Sanitizer {
	body := bluemonday.NewPolicy()
	body.AllowElements(
		"h1", "h2", "h3", "h4", "h5", "h6",
		"p", "br", "hr", "ul", "ol", "li",
		"blockquote", "pre", "code",
		"strong", "em", "b", "i", "u", "s",
		"table", "thead", "tbody", "tr", "th", "td",
		"figure", "figcaption", "span", "div",
	)
	body.AllowAttrs("href").OnElements("a")
	body.AllowAttrs("src", "alt", "title", "width", "height").OnElements("img")
	body.AllowURLSchemes("http", "https")
	body.RequireNoFollowOnLinks(false)
	body.AddTargetBlankToFullyQualifiedLinks(true)
	body.RequireNoReferrerOnLinks(true)
	// Disallowed containers lose their text content too; leaving script
	// bodies behind as bare text would still leak payloads into pages.
	body.SkipElementsContent("script", "style", "iframe", "object", "embed", "noscript")

	plain := bluemonday.StrictPolicy()
	plain.SkipElementsContent("script", "style", "iframe", "object", "embed", "noscript")

	s := &Sanitizer{
		bodyPolicy:  body,
		plainPolicy: plain,
		maxLength:   DefaultMaxContentLength,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// SanitizeBody cleans HTML body content. Modifications and truncation are
// recorded as warnings, never hard failures; Valid is false only when the
// input had to be altered, signalling that the original was unsafe.
func (s *Sanitizer) SanitizeBody(input string) Result {
	result := Result{Valid: true}

	clean := s.bodyPolicy.Sanitize(input)
	if clean != input {
		result.Valid = false
		result.Warnings = append(result.Warnings, "unsafe markup removed from content")
	}

	if len(clean) > s.maxLength {
		clean = truncate(clean, s.maxLength)
		result.Warnings = append(result.Warnings,
			fmt.Sprintf("content truncated to %d characters", s.maxLength))
	}

	result.Clean = clean
	return result
}

// SanitizeText strips all markup from single-line fields such as titles.
func (s *Sanitizer) SanitizeText(input string) string {
	return strings.TrimSpace(s.plainPolicy.Sanitize(input))
}

// truncate cuts at the limit without splitting a UTF-8 sequence.
func truncate(value string, limit int) string {
	if len(value) <= limit {
		return value
	}
	for limit > 0 && value[limit]&0xC0 == 0x80 {
		limit--
	}
	return value[:limit]
}
