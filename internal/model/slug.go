package model

import (
	"strings"

	slug "github.com/goliatone/go-slug"
)

// FallbackSlug is used when no slug can be derived from the input.
const FallbackSlug = "untitled"

// DeriveSlug returns the explicit slug when present, otherwise a normalized
// slug derived from the title or name. Empty input maps to the literal
// "untitled" placeholder so every record has a URL-safe identifier.
func DeriveSlug(explicit, title string) string {
	for _, candidate := range []string{explicit, title} {
		candidate = strings.TrimSpace(candidate)
		if candidate == "" {
			continue
		}
		if normalized, err := slug.Normalize(candidate); err == nil && normalized != "" {
			return normalized
		}
	}
	return FallbackSlug
}

// IsValidSlug reports whether the value already satisfies the slug rules.
func IsValidSlug(value string) bool {
	return slug.IsValid(value)
}
