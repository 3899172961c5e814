package contentfile

import (
	"errors"
	"strings"
	"testing"
)

func TestParseSplitsMetadataAndBody(t *testing.T) {
	source := []byte("Title: AI Tools Reshape Newsrooms\nAuthor: jane-doe\nCategory: tech\n---\nBody paragraph one.\n\nBody paragraph two.")

	doc, err := Parse(source)
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}

	if doc.Fields["title"] != "AI Tools Reshape Newsrooms" {
		t.Fatalf("title mismatch, got %q", doc.Fields["title"])
	}
	if doc.Fields["author"] != "jane-doe" {
		t.Fatalf("author mismatch, got %q", doc.Fields["author"])
	}
	if !strings.HasPrefix(doc.Body, "Body paragraph one.") {
		t.Fatalf("body not preserved: %q", doc.Body)
	}
	if len(doc.Keys) != 3 || doc.Keys[0] != "title" {
		t.Fatalf("key order not preserved: %#v", doc.Keys)
	}
}

func TestParseFirstColonWins(t *testing.T) {
	doc, err := Parse([]byte("Title: Markets: The 10:30 Report\n---\nbody"))
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if doc.Fields["title"] != "Markets: The 10:30 Report" {
		t.Fatalf("value after first colon must be kept verbatim, got %q", doc.Fields["title"])
	}
}

func TestParseNormalizesKeys(t *testing.T) {
	doc, err := Parse([]byte("Publish Date: 2026-01-15\nSEO Title: hello\n---\nbody"))
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if _, ok := doc.Fields["publish_date"]; !ok {
		t.Fatalf("expected publish_date key, got %#v", doc.Fields)
	}
	if _, ok := doc.Fields["seo_title"]; !ok {
		t.Fatalf("expected seo_title key, got %#v", doc.Fields)
	}
}

func TestParseMissingSeparator(t *testing.T) {
	_, err := Parse([]byte("Title: no separator here\nBody follows"))
	if !errors.Is(err, ErrMissingSeparator) {
		t.Fatalf("expected ErrMissingSeparator, got %v", err)
	}
}

func TestParseEmptyDocument(t *testing.T) {
	_, err := Parse([]byte("   \n\n  "))
	if !errors.Is(err, ErrEmptyDocument) {
		t.Fatalf("expected ErrEmptyDocument, got %v", err)
	}
}

func TestParseSkipsMalformedLines(t *testing.T) {
	doc, err := Parse([]byte("Title: ok\nthis line has no colon\nViews: 12\n---\nbody"))
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if doc.Fields["title"] != "ok" || doc.Fields["views"] != "12" {
		t.Fatalf("well-formed lines must survive a malformed neighbour: %#v", doc.Fields)
	}
}

func TestApplyAliases(t *testing.T) {
	doc, err := Parse([]byte("Topic: Creator Economy Boom\nTrend_Score: 87\nYouTube_Mentions: 1200\n---\nbody"))
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	ApplyAliases(doc)

	if doc.Fields["title"] != "Creator Economy Boom" {
		t.Fatalf("topic should alias to title: %#v", doc.Fields)
	}
	if doc.Fields["heat_score"] != "87" {
		t.Fatalf("trend_score should alias to heat_score: %#v", doc.Fields)
	}
	if doc.Fields["mentions_youtube"] != "1200" {
		t.Fatalf("youtube_mentions should alias to mentions_youtube: %#v", doc.Fields)
	}
	if _, ok := doc.Fields["topic"]; ok {
		t.Fatalf("aliased key must be removed: %#v", doc.Fields)
	}
}

func TestApplyAliasesCanonicalWins(t *testing.T) {
	doc, err := Parse([]byte("Title: canonical\nTopic: legacy\n---\nbody"))
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	ApplyAliases(doc)
	if doc.Fields["title"] != "canonical" {
		t.Fatalf("canonical field must win over its alias, got %q", doc.Fields["title"])
	}
}
