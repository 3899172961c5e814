package contentfile

import (
	"errors"
	"strings"
)

var (
	// ErrMissingSeparator is returned when a content file has no `---` line
	// splitting metadata from the body.
	ErrMissingSeparator = errors.New("contentfile: missing '---' separator")
	// ErrEmptyDocument is returned for files with no content at all.
	ErrEmptyDocument = errors.New("contentfile: empty document")
)

// RawDocument is the parsed but unvalidated form of a content file: an
// ordered field map plus the raw body. Field values are untouched strings;
// sanitization and type coercion happen downstream.
type RawDocument struct {
	// Path is the loader-relative source path, empty for in-memory parses.
	Path string
	// Fields maps normalized keys to raw string values.
	Fields map[string]string
	// Keys preserves the order fields appeared in the metadata block.
	Keys []string
	// Body is everything after the separator line, unsanitized.
	Body string
	// Checksum is the sha256 of the full source file, set by the loader.
	Checksum []byte
}

// Get returns the value for key and whether it was present.
func (d *RawDocument) Get(key string) (string, bool) {
	value, ok := d.Fields[key]
	return value, ok
}

// Parse splits raw content into a metadata block and a body. Metadata lines
// are `key: value` pairs split on the first colon, so values may themselves
// contain colons. Keys are lowercased with spaces collapsed to underscores.
// Blank lines and lines that match neither the pair shape nor the separator
// are skipped, which keeps the format open to future comment syntax. A file
// without a separator line fails with ErrMissingSeparator.
func Parse(source []byte) (*RawDocument, error) {
	text := strings.TrimSpace(string(source))
	if text == "" {
		return nil, ErrEmptyDocument
	}

	lines := strings.Split(text, "\n")
	sep := -1
	for i, line := range lines {
		if strings.TrimSpace(line) == "---" {
			sep = i
			break
		}
	}
	if sep < 0 {
		return nil, ErrMissingSeparator
	}

	doc := &RawDocument{Fields: map[string]string{}}
	for _, line := range lines[:sep] {
		if strings.TrimSpace(line) == "" {
			continue
		}
		key, value, found := strings.Cut(line, ":")
		if !found {
			continue
		}
		normalized := NormalizeKey(key)
		if normalized == "" {
			continue
		}
		if _, exists := doc.Fields[normalized]; !exists {
			doc.Keys = append(doc.Keys, normalized)
		}
		doc.Fields[normalized] = strings.TrimSpace(value)
	}

	doc.Body = strings.TrimSpace(strings.Join(lines[sep+1:], "\n"))
	return doc, nil
}

// NormalizeKey lowercases a metadata key and replaces interior whitespace
// with underscores, so "Trend Score" and "trend_score" address the same field.
func NormalizeKey(key string) string {
	key = strings.ToLower(strings.TrimSpace(key))
	return strings.Join(strings.Fields(key), "_")
}
