package logging

import (
	"context"
	"testing"
)

func TestNewProviderFormats(t *testing.T) {
	for _, format := range []string{"", "json", "console", "pretty"} {
		if _, err := NewProvider(Config{Level: "debug", Format: format}); err != nil {
			t.Fatalf("NewProvider(%q): %v", format, err)
		}
	}
	if _, err := NewProvider(Config{Format: "xml"}); err == nil {
		t.Fatalf("unsupported format must fail")
	}
}

func TestGetLoggerNeverNil(t *testing.T) {
	provider, err := NewProvider(Config{Level: "error"})
	if err != nil {
		t.Fatalf("NewProvider: %v", err)
	}
	if provider.GetLogger("pipeline") == nil {
		t.Fatalf("named logger must not be nil")
	}
	if provider.GetLogger("  ") == nil {
		t.Fatalf("blank name must fall back to the root logger")
	}

	var nilProvider *Provider
	logger := nilProvider.GetLogger("x")
	logger.Info("dropped", "key", "value")
	logger.WithContext(context.Background()).Debug("also dropped")
}
