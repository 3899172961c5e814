package creatorwire_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	creatorwire "github.com/creatorwire/creatorwire"
	"github.com/creatorwire/creatorwire/internal/commands"
)

func writeContent(t *testing.T, dir, name, body string) {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatalf("write %s: %v", name, err)
	}
}

func TestConfigValidate(t *testing.T) {
	cfg := creatorwire.DefaultConfig()
	if err := cfg.Validate(); err != nil {
		t.Fatalf("default config must validate: %v", err)
	}

	cfg.ContentDir = "   "
	if err := cfg.Validate(); err == nil {
		t.Fatalf("blank content dir must fail validation")
	}
}

func TestAppEndToEnd(t *testing.T) {
	contentDir := t.TempDir()
	writeContent(t, contentDir, "authors/jane-doe.txt",
		"Name: Jane Doe\nRating: 9.5\n---\nJane writes about creators.")
	writeContent(t, contentDir, "categories/tech.txt",
		"Name: Tech\nColor: blue\n---\nTech coverage.")
	writeContent(t, contentDir, "articles/launch.txt",
		"Title: Launch Day\nAuthor: Jane Doe\nCategory: Tech\n---\nThe site goes live.")

	cfg := creatorwire.DefaultConfig()
	cfg.ContentDir = contentDir
	cfg.OutputDir = t.TempDir()
	cfg.DSN = "file:app_end_to_end?mode=memory&cache=shared"
	cfg.Logging.Level = "error"

	ctx := context.Background()
	app, err := creatorwire.New(ctx, cfg)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	defer app.Close()

	report, err := app.Sync(ctx, commands.SyncCommand{})
	if err != nil {
		t.Fatalf("Sync: %v", err)
	}
	if report.Failed() {
		t.Fatalf("failures: %#v", report.Failures)
	}

	// Rating above the scale is clamped, not fatal.
	var rating float64
	if err := app.DB().NewSelect().Table("authors").Column("rating").
		Where("slug = ?", "jane-doe").Scan(ctx, &rating); err != nil {
		t.Fatalf("query rating: %v", err)
	}
	if rating != 5 {
		t.Fatalf("rating should clamp to 5, got %v", rating)
	}

	if _, err := os.Stat(filepath.Join(cfg.OutputDir, "articles", "launch-day.html")); err != nil {
		t.Fatalf("article page missing: %v", err)
	}
	if _, err := os.Stat(filepath.Join(cfg.OutputDir, "index.html")); err != nil {
		t.Fatalf("front page missing: %v", err)
	}

	regen, err := app.Regen(ctx)
	if err != nil {
		t.Fatalf("Regen: %v", err)
	}
	if len(regen.Pages) == 0 {
		t.Fatalf("regen should rewrite pages")
	}
}
