package model

import (
	"strings"
	"testing"
)

func TestDeriveSlug(t *testing.T) {
	cases := []struct {
		explicit string
		title    string
		want     string
	}{
		{"custom-slug", "Ignored Title", "custom-slug"},
		{"", "Creator Economy Boom", "creator-economy-boom"},
		{"", "", "untitled"},
		{"   ", "  ", "untitled"},
	}
	for _, tc := range cases {
		if got := DeriveSlug(tc.explicit, tc.title); got != tc.want {
			t.Fatalf("DeriveSlug(%q, %q) = %q, want %q", tc.explicit, tc.title, got, tc.want)
		}
	}
}

func TestEstimateReadTime(t *testing.T) {
	if got := EstimateReadTime(""); got != 1 {
		t.Fatalf("empty body should estimate 1 minute, got %d", got)
	}
	if got := EstimateReadTime(strings.Repeat("word ", 200)); got != 1 {
		t.Fatalf("200 words should estimate 1 minute, got %d", got)
	}
	if got := EstimateReadTime(strings.Repeat("word ", 450)); got != 3 {
		t.Fatalf("450 words should estimate 3 minutes, got %d", got)
	}
}

func TestArticleFromFields(t *testing.T) {
	fields := map[string]string{
		"title":    "Streaming Wars Heat Up",
		"author":   "Jane Doe",
		"category": "Media",
		"tags":     "streaming, platforms",
		"featured": "true",
		"views":    "1200",
	}
	body := strings.Repeat("word ", 400)

	a := ArticleFromFields(fields, body)
	if a.Slug != "streaming-wars-heat-up" {
		t.Fatalf("slug mismatch: %q", a.Slug)
	}
	if a.AuthorSlug != "jane-doe" || a.CategorySlug != "media" {
		t.Fatalf("reference slugs mismatch: %q, %q", a.AuthorSlug, a.CategorySlug)
	}
	if len(a.Tags) != 2 || a.Tags[1] != "platforms" {
		t.Fatalf("tags mismatch: %#v", a.Tags)
	}
	if !a.Featured || a.Views != 1200 {
		t.Fatalf("coerced fields mismatch: featured=%v views=%d", a.Featured, a.Views)
	}
	if a.ReadTimeMinutes != 2 {
		t.Fatalf("read time should be estimated from the body, got %d", a.ReadTimeMinutes)
	}
	if a.SEOTitle != a.Title || a.MobileTitle != a.Title {
		t.Fatalf("SEO and mobile titles should default to the title")
	}
}

func TestAuthorFromFields(t *testing.T) {
	a := AuthorFromFields(map[string]string{
		"name":      "Jane Doe",
		"expertise": "ai, media",
		"is_active": "true",
		"rating":    "4.5",
	}, "Long-form bio.")
	if a.Slug != "jane-doe" {
		t.Fatalf("slug mismatch: %q", a.Slug)
	}
	if a.Bio != "Long-form bio." {
		t.Fatalf("body should become the bio, got %q", a.Bio)
	}
	if len(a.Expertise) != 2 || a.Rating != 4.5 || !a.IsActive {
		t.Fatalf("fields mismatch: %#v", a)
	}
}

func TestCategoryFromFieldsBodyFallback(t *testing.T) {
	c := CategoryFromFields(map[string]string{
		"name":       "Gaming",
		"color":      "#10B981",
		"sort_order": "5",
	}, "Everything about games.")
	if c.Description != "Everything about games." {
		t.Fatalf("body should back-fill the description, got %q", c.Description)
	}
	if c.SortOrder != 5 || c.Color != "#10B981" {
		t.Fatalf("fields mismatch: %#v", c)
	}
}

func TestTrendingFromFields(t *testing.T) {
	tt := TrendingFromFields(map[string]string{
		"title":            "VTuber Agencies",
		"heat_score":       "91",
		"related_articles": "3, 7, x, 12",
		"hashtag":          "#vtuber",
		"status":           "active",
	}, "First line summary.\nDeeper analysis follows.")
	if tt.Slug != "vtuber-agencies" || tt.HeatScore != 91 {
		t.Fatalf("fields mismatch: %#v", tt)
	}
	if len(tt.RelatedArticles) != 3 || tt.ArticleCount != 3 {
		t.Fatalf("unparseable ids should be skipped, got %#v", tt.RelatedArticles)
	}
	if tt.Description != "First line summary." {
		t.Fatalf("description should default to the first body line, got %q", tt.Description)
	}
}
