package fields

import (
	"errors"
	"strings"
	"testing"

	"github.com/creatorwire/creatorwire/internal/contentfile"
)

func parseDoc(t *testing.T, source string) *contentfile.RawDocument {
	t.Helper()
	doc, err := contentfile.Parse([]byte(source))
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	contentfile.ApplyAliases(doc)
	return doc
}

func TestValidateArticle(t *testing.T) {
	doc := parseDoc(t, "Title: Streaming Wars Heat Up\nAuthor: jane\nCategory: media\nViews: 1200\nImage: javascript:alert(1)\n---\nbody")

	result, err := NewValidator().Validate("articles", doc)
	if err != nil {
		t.Fatalf("Validate: %v", err)
	}
	if result.Fields["views"] != "1200" {
		t.Fatalf("views mismatch: %q", result.Fields["views"])
	}
	if result.Fields["image"] != "" {
		t.Fatalf("unsafe image URL must be cleared, got %q", result.Fields["image"])
	}
	if len(result.Warnings) != 1 || !strings.Contains(result.Warnings[0], "image") {
		t.Fatalf("expected a warning naming the image field, got %#v", result.Warnings)
	}
}

func TestValidateMissingRequired(t *testing.T) {
	doc := parseDoc(t, "Title: No Author Here\n---\nbody")

	_, err := NewValidator().Validate("articles", doc)
	if !errors.Is(err, ErrRequiredField) {
		t.Fatalf("expected ErrRequiredField, got %v", err)
	}
	if !strings.Contains(err.Error(), "author") || !strings.Contains(err.Error(), "category") {
		t.Fatalf("error should name the missing fields, got %v", err)
	}
}

func TestValidateTrendingClampsHeatScore(t *testing.T) {
	validator := NewValidator()

	doc := parseDoc(t, "Title: Hot Topic\nHeat_Score: 150\n---\nbody")
	result, err := validator.Validate("trending", doc)
	if err != nil {
		t.Fatalf("Validate: %v", err)
	}
	if result.Fields["heat_score"] != "100" {
		t.Fatalf("heat score should clamp to 100, got %q", result.Fields["heat_score"])
	}

	doc = parseDoc(t, "Title: Cold Topic\nHeat_Score: abc\n---\nbody")
	result, err = validator.Validate("trending", doc)
	if err != nil {
		t.Fatalf("Validate: %v", err)
	}
	if result.Fields["heat_score"] != "0" {
		t.Fatalf("non-numeric heat score should coerce to 0, got %q", result.Fields["heat_score"])
	}
	if len(result.Warnings) == 0 {
		t.Fatalf("lenient coercion must leave a warning")
	}
}

func TestValidateTrendingDefaults(t *testing.T) {
	doc := parseDoc(t, "Title: Quiet Topic\n---\nbody")

	result, err := NewValidator().Validate("trending", doc)
	if err != nil {
		t.Fatalf("Validate: %v", err)
	}
	if result.Fields["status"] != "active" {
		t.Fatalf("status should default to active, got %q", result.Fields["status"])
	}
	if result.Fields["is_active"] != "true" {
		t.Fatalf("is_active should default to true, got %q", result.Fields["is_active"])
	}
}

func TestValidateCategoryDefaults(t *testing.T) {
	doc := parseDoc(t, "Name: Gaming\n---\nbody")

	result, err := NewValidator().Validate("categories", doc)
	if err != nil {
		t.Fatalf("Validate: %v", err)
	}
	if result.Fields["sort_order"] != "99" {
		t.Fatalf("sort_order should default to 99, got %q", result.Fields["sort_order"])
	}
	if result.Fields["color"] != "#6B7280" {
		t.Fatalf("missing color should default to gray, got %q", result.Fields["color"])
	}
}

func TestValidateUnknownFieldsPassThrough(t *testing.T) {
	doc := parseDoc(t, "Name: Jane\nFavorite_Editor: helix\n---\nbio")

	result, err := NewValidator().Validate("authors", doc)
	if err != nil {
		t.Fatalf("Validate: %v", err)
	}
	if result.Fields["favorite_editor"] != "helix" {
		t.Fatalf("unknown fields must pass through untouched: %#v", result.Fields)
	}
}

func TestValidateUnknownContentType(t *testing.T) {
	doc := parseDoc(t, "Title: X\n---\nbody")
	_, err := NewValidator().Validate("podcasts", doc)
	if !errors.Is(err, ErrUnknownContentType) {
		t.Fatalf("expected ErrUnknownContentType, got %v", err)
	}
}
