// Package model holds the typed records the pipeline persists: articles,
// authors, categories, and trending topics. Constructors build records from
// validated field maps, applying the documented defaults for absent fields.
package model

import (
	"encoding/hex"
	"strconv"
	"strings"
)

// Content type identifiers used across the pipeline and the store.
const (
	TypeArticles   = "articles"
	TypeAuthors    = "authors"
	TypeCategories = "categories"
	TypeTrending   = "trending"
)

// Types lists the content types in dependency order: referenced types first
// so articles can resolve author and category slugs created in the same run.
func Types() []string {
	return []string{TypeAuthors, TypeCategories, TypeArticles, TypeTrending}
}

// KnownType reports whether name is a recognized content type.
func KnownType(name string) bool {
	switch name {
	case TypeArticles, TypeAuthors, TypeCategories, TypeTrending:
		return true
	}
	return false
}

func fieldInt(fields map[string]string, key string) int {
	n, err := strconv.Atoi(strings.TrimSpace(fields[key]))
	if err != nil {
		return 0
	}
	return n
}

func fieldFloat(fields map[string]string, key string) float64 {
	f, err := strconv.ParseFloat(strings.TrimSpace(fields[key]), 64)
	if err != nil {
		return 0
	}
	return f
}

func fieldBool(fields map[string]string, key string) bool {
	return strings.EqualFold(strings.TrimSpace(fields[key]), "true")
}

// fieldList splits a comma-separated value into trimmed, non-empty items.
func fieldList(fields map[string]string, key string) []string {
	raw := strings.TrimSpace(fields[key])
	if raw == "" {
		return nil
	}
	parts := strings.Split(raw, ",")
	out := make([]string, 0, len(parts))
	for _, part := range parts {
		if trimmed := strings.TrimSpace(part); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}

func fieldIDList(fields map[string]string, key string) []int64 {
	var ids []int64
	for _, item := range fieldList(fields, key) {
		if id, err := strconv.ParseInt(item, 10, 64); err == nil {
			ids = append(ids, id)
		}
	}
	return ids
}

// EncodeChecksum renders a checksum as the hex string stored in the database.
func EncodeChecksum(sum []byte) string {
	return hex.EncodeToString(sum)
}

// EstimateReadTime derives reading minutes from the body word count at
// roughly 200 words per minute, never less than one minute.
func EstimateReadTime(body string) int {
	words := len(strings.Fields(body))
	minutes := (words + 199) / 200
	if minutes < 1 {
		minutes = 1
	}
	return minutes
}
