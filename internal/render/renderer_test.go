package render

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/creatorwire/creatorwire/internal/model"
)

func testPages(t *testing.T) (*Pages, string) {
	t.Helper()
	dir := t.TempDir()
	pages, err := NewPages(Config{
		OutputDir: dir,
		SiteName:  "CreatorWire",
		BaseURL:   "https://news.example",
	})
	if err != nil {
		t.Fatalf("NewPages: %v", err)
	}
	return pages, dir
}

func readPage(t *testing.T, dir, route string) string {
	t.Helper()
	data, err := os.ReadFile(filepath.Join(dir, route))
	if err != nil {
		t.Fatalf("read %s: %v", route, err)
	}
	return string(data)
}

func TestHTMLEngineUnknownTemplate(t *testing.T) {
	engine, err := NewHTMLEngine()
	if err != nil {
		t.Fatalf("NewHTMLEngine: %v", err)
	}
	if _, err := engine.Render("nope", nil); err == nil {
		t.Fatalf("expected error for unregistered template")
	}
}

func TestHTMLEngineRegisterOverride(t *testing.T) {
	engine, err := NewHTMLEngine()
	if err != nil {
		t.Fatalf("NewHTMLEngine: %v", err)
	}
	if err := engine.Register(TemplateIndex, "custom {{.Site.Name}}"); err != nil {
		t.Fatalf("Register: %v", err)
	}
	out, err := engine.Render(TemplateIndex, listPage{Site: SiteMetadata{Name: "Wire"}})
	if err != nil {
		t.Fatalf("Render: %v", err)
	}
	if out != "custom Wire" {
		t.Fatalf("override not used: %q", out)
	}
}

func TestMarkdownConvert(t *testing.T) {
	md := NewMarkdown()
	out, err := md.Convert("# Heading\n\nHello **world**")
	if err != nil {
		t.Fatalf("Convert: %v", err)
	}
	if !strings.Contains(out, "<h1") || !strings.Contains(out, "<strong>world</strong>") {
		t.Fatalf("markdown not converted: %q", out)
	}
}

func TestWriteArticle(t *testing.T) {
	pages, dir := testPages(t)

	route, err := pages.WriteArticle(context.Background(),
		&model.Article{
			Title:           "Streaming Wars",
			Slug:            "streaming-wars",
			Content:         "Body **bold** text.",
			ReadTimeMinutes: 3,
			PublishDate:     "2026-02-01",
			SEOTitle:        "Streaming Wars",
		},
		&model.Author{Name: "Jane Doe", Slug: "jane-doe"},
		&model.Category{Name: "Media", Slug: "media", Color: "#3B82F6"},
	)
	if err != nil {
		t.Fatalf("WriteArticle: %v", err)
	}
	if route != filepath.Join("articles", "streaming-wars.html") {
		t.Fatalf("route mismatch: %q", route)
	}

	html := readPage(t, dir, route)
	for _, want := range []string{"Streaming Wars", "Jane Doe", "<strong>bold</strong>", "3 min read",
		"https://news.example/authors/jane-doe.html"} {
		if !strings.Contains(html, want) {
			t.Fatalf("page missing %q:\n%s", want, html)
		}
	}
}

func TestWriteTrending(t *testing.T) {
	pages, dir := testPages(t)

	route, err := pages.WriteTrending(context.Background(), &model.TrendingTopic{
		Title:     "VTuber Agencies",
		Slug:      "vtuber-agencies",
		HeatScore: 91,
		Status:    "active",
		Analysis:  "Deep analysis.",
	})
	if err != nil {
		t.Fatalf("WriteTrending: %v", err)
	}

	html := readPage(t, dir, route)
	if !strings.Contains(html, "Heat 91/100") {
		t.Fatalf("heat score missing:\n%s", html)
	}
}

func TestWriteListings(t *testing.T) {
	pages, dir := testPages(t)

	routes, err := pages.WriteListings(context.Background(), Listings{
		Articles:   []*model.Article{{Title: "One", Slug: "one"}},
		Authors:    []*model.Author{{Name: "Jane", Slug: "jane"}},
		Categories: []*model.Category{{Name: "Tech", Slug: "tech", Color: "#3B82F6"}},
		Topics:     []*model.TrendingTopic{{Title: "Hot", Slug: "hot", HeatScore: 80}},
	})
	if err != nil {
		t.Fatalf("WriteListings: %v", err)
	}
	if len(routes) != 5 {
		t.Fatalf("expected 5 listing pages, got %d", len(routes))
	}

	for _, route := range []string{
		filepath.Join("articles", "index.html"),
		filepath.Join("authors", "index.html"),
		filepath.Join("categories", "index.html"),
		filepath.Join("trending", "index.html"),
		"index.html",
	} {
		if _, err := os.Stat(filepath.Join(dir, route)); err != nil {
			t.Fatalf("missing listing page %s: %v", route, err)
		}
	}

	index := readPage(t, dir, "index.html")
	if !strings.Contains(index, "One") || !strings.Contains(index, "Hot") {
		t.Fatalf("front page should surface latest articles and trending topics:\n%s", index)
	}
}
