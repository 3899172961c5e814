package sanitizer

import (
	"strings"
	"testing"
)

func TestSanitizeBodyRemovesScriptWithContent(t *testing.T) {
	s := New()

	result := s.SanitizeBody(`<p>Intro</p><script>alert("xss")</script><p>Outro</p>`)
	if result.Valid {
		t.Fatalf("input with script must be flagged invalid")
	}
	if strings.Contains(result.Clean, "script") || strings.Contains(result.Clean, "alert") {
		t.Fatalf("script element and its payload must be gone: %q", result.Clean)
	}
	if !strings.Contains(result.Clean, "<p>Intro</p>") || !strings.Contains(result.Clean, "<p>Outro</p>") {
		t.Fatalf("surrounding content must survive: %q", result.Clean)
	}
}

func TestSanitizeBodyDropsEventHandlers(t *testing.T) {
	s := New()

	result := s.SanitizeBody(`<p onclick="steal()">Click me</p>`)
	if strings.Contains(result.Clean, "onclick") {
		t.Fatalf("event handler attribute must be dropped: %q", result.Clean)
	}
	if !strings.Contains(result.Clean, "Click me") {
		t.Fatalf("element text must survive: %q", result.Clean)
	}

	result = s.SanitizeBody(`<img src="https://example.com/x.png" onerror="steal()" alt="x">`)
	if strings.Contains(result.Clean, "onerror") {
		t.Fatalf("onerror must be dropped: %q", result.Clean)
	}
	if !strings.Contains(result.Clean, "https://example.com/x.png") {
		t.Fatalf("allowed image attributes must survive: %q", result.Clean)
	}
}

func TestSanitizeBodyRestrictsURLSchemes(t *testing.T) {
	s := New()

	result := s.SanitizeBody(`<a href="javascript:alert(1)">bad</a><a href="https://example.com">good</a>`)
	if strings.Contains(result.Clean, "javascript:") {
		t.Fatalf("javascript href must be removed: %q", result.Clean)
	}
	if !strings.Contains(result.Clean, "https://example.com") {
		t.Fatalf("https href must survive: %q", result.Clean)
	}
}

func TestSanitizeBodyRemovesIframe(t *testing.T) {
	s := New()

	result := s.SanitizeBody(`before<iframe src="https://evil.example"></iframe>after`)
	if strings.Contains(result.Clean, "iframe") {
		t.Fatalf("iframe must be removed: %q", result.Clean)
	}
}

func TestSanitizeBodyCleanInputStaysValid(t *testing.T) {
	s := New()

	input := "<p>Perfectly <strong>fine</strong> content.</p>"
	result := s.SanitizeBody(input)
	if !result.Valid {
		t.Fatalf("clean input must stay valid, warnings: %#v", result.Warnings)
	}
	if result.Clean != input {
		t.Fatalf("clean input must pass unchanged: %q", result.Clean)
	}
}

func TestSanitizeBodyTruncates(t *testing.T) {
	s := New(WithMaxContentLength(20))

	result := s.SanitizeBody(strings.Repeat("a", 50))
	if len(result.Clean) != 20 {
		t.Fatalf("content should truncate to 20 bytes, got %d", len(result.Clean))
	}
	found := false
	for _, warning := range result.Warnings {
		if strings.Contains(warning, "truncated") {
			found = true
		}
	}
	if !found {
		t.Fatalf("truncation must be reported as a warning: %#v", result.Warnings)
	}
}

func TestSanitizeBodyTruncateKeepsValidUTF8(t *testing.T) {
	s := New(WithMaxContentLength(5))

	result := s.SanitizeBody("日本語のテキスト")
	if !strings.HasPrefix("日本語のテキスト", result.Clean) {
		t.Fatalf("truncation must not split a rune: %q", result.Clean)
	}
	if len(result.Clean) > 5 {
		t.Fatalf("truncated output exceeds limit: %d bytes", len(result.Clean))
	}
}

func TestSanitizeText(t *testing.T) {
	s := New()

	if got := s.SanitizeText(`<b>Bold Title</b>`); got != "Bold Title" {
		t.Fatalf("markup must be stripped from plain fields, got %q", got)
	}
	if got := s.SanitizeText(`Title <script>x()</script>here`); strings.Contains(got, "x()") {
		t.Fatalf("script payload must not leak into plain text, got %q", got)
	}
}
