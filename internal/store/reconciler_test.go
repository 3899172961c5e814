package store

import (
	"context"
	"errors"
	"os"
	"strings"
	"testing"

	"github.com/uptrace/bun"

	"github.com/creatorwire/creatorwire/internal/model"
)

func testDB(t *testing.T) *bun.DB {
	t.Helper()

	name := strings.ReplaceAll(t.Name(), "/", "_")
	db, err := Open("file:" + name + "?mode=memory&cache=shared")
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	t.Cleanup(func() { db.Close() })

	if err := RunMigrations(context.Background(), db, os.DirFS("../../data/sql/migrations")); err != nil {
		t.Fatalf("RunMigrations: %v", err)
	}
	return db
}

func seedAuthor(t *testing.T, r *Reconciler, slug string) *model.Author {
	t.Helper()
	rec := &model.Author{
		Name:       strings.ReplaceAll(slug, "-", " "),
		Slug:       slug,
		IsActive:   true,
		Checksum:   "sum-" + slug,
		SourcePath: "authors/" + slug + ".txt",
	}
	if _, err := r.ReconcileAuthor(context.Background(), rec); err != nil {
		t.Fatalf("seed author %s: %v", slug, err)
	}
	return rec
}

func seedCategory(t *testing.T, r *Reconciler, slug string) *model.Category {
	t.Helper()
	rec := &model.Category{
		Name:       slug,
		Slug:       slug,
		Color:      "#3B82F6",
		SortOrder:  99,
		Checksum:   "sum-" + slug,
		SourcePath: "categories/" + slug + ".txt",
	}
	if _, err := r.ReconcileCategory(context.Background(), rec); err != nil {
		t.Fatalf("seed category %s: %v", slug, err)
	}
	return rec
}

func newArticle(slug, authorSlug, categorySlug, checksum string) *model.Article {
	return &model.Article{
		Title:           strings.ReplaceAll(slug, "-", " "),
		Slug:            slug,
		Content:         "<p>body</p>",
		ReadTimeMinutes: 1,
		Checksum:        checksum,
		SourcePath:      "articles/" + slug + ".txt",
		AuthorSlug:      authorSlug,
		CategorySlug:    categorySlug,
	}
}

func TestReconcileAuthorLifecycle(t *testing.T) {
	ctx := context.Background()
	r := NewReconciler(testDB(t))

	rec := &model.Author{Name: "Jane Doe", Slug: "jane-doe", IsActive: true,
		Checksum: "v1", SourcePath: "authors/jane-doe.txt"}
	outcome, err := r.ReconcileAuthor(ctx, rec)
	if err != nil || outcome != OutcomeCreated {
		t.Fatalf("first reconcile = %v, %v; want created", outcome, err)
	}

	same := &model.Author{Name: "Jane Doe", Slug: "jane-doe", IsActive: true,
		Checksum: "v1", SourcePath: "authors/jane-doe.txt"}
	outcome, err = r.ReconcileAuthor(ctx, same)
	if err != nil || outcome != OutcomeUnchanged {
		t.Fatalf("identical reconcile = %v, %v; want unchanged", outcome, err)
	}

	changed := &model.Author{Name: "Jane A. Doe", Slug: "jane-doe", IsActive: true,
		Checksum: "v2", SourcePath: "authors/jane-doe.txt"}
	outcome, err = r.ReconcileAuthor(ctx, changed)
	if err != nil || outcome != OutcomeUpdated {
		t.Fatalf("changed reconcile = %v, %v; want updated", outcome, err)
	}

	stored, err := r.AuthorBySlug(ctx, "jane-doe")
	if err != nil {
		t.Fatalf("AuthorBySlug: %v", err)
	}
	if stored.Name != "Jane A. Doe" || stored.Checksum != "v2" {
		t.Fatalf("update not applied: %#v", stored)
	}
}

func TestReconcileSlugConflict(t *testing.T) {
	ctx := context.Background()
	r := NewReconciler(testDB(t))

	first := &model.Author{Name: "Jane", Slug: "jane", Checksum: "a",
		SourcePath: "authors/jane.txt"}
	if _, err := r.ReconcileAuthor(ctx, first); err != nil {
		t.Fatalf("first reconcile: %v", err)
	}

	other := &model.Author{Name: "Jane Other", Slug: "jane", Checksum: "b",
		SourcePath: "authors/jane-other.txt"}
	_, err := r.ReconcileAuthor(ctx, other)
	if !errors.Is(err, ErrSlugConflict) {
		t.Fatalf("expected ErrSlugConflict, got %v", err)
	}

	stored, err := r.AuthorBySlug(ctx, "jane")
	if err != nil {
		t.Fatalf("AuthorBySlug: %v", err)
	}
	if stored.Name != "Jane" {
		t.Fatalf("conflicting file must not overwrite the original: %#v", stored)
	}
}

func TestReconcileArticleUnresolvedRef(t *testing.T) {
	ctx := context.Background()
	r := NewReconciler(testDB(t))
	seedCategory(t, r, "tech")

	_, err := r.ReconcileArticle(ctx, newArticle("orphan", "ghost-author", "tech", "v1"))
	if !errors.Is(err, ErrUnresolvedRef) {
		t.Fatalf("expected ErrUnresolvedRef, got %v", err)
	}
	if _, err := r.ArticleBySlug(ctx, "orphan"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("failed article must not be persisted")
	}
}

func TestReconcileArticleCounts(t *testing.T) {
	ctx := context.Background()
	r := NewReconciler(testDB(t))
	seedAuthor(t, r, "jane-doe")
	seedCategory(t, r, "tech")
	seedCategory(t, r, "media")

	if _, err := r.ReconcileArticle(ctx, newArticle("first", "jane-doe", "tech", "f1")); err != nil {
		t.Fatalf("reconcile first: %v", err)
	}
	if _, err := r.ReconcileArticle(ctx, newArticle("second", "jane-doe", "tech", "s1")); err != nil {
		t.Fatalf("reconcile second: %v", err)
	}

	author, _ := r.AuthorBySlug(ctx, "jane-doe")
	tech, _ := r.CategoryBySlug(ctx, "tech")
	if author.ArticleCount != 2 || tech.ArticleCount != 2 {
		t.Fatalf("counts after insert: author=%d tech=%d, want 2/2", author.ArticleCount, tech.ArticleCount)
	}

	moved := newArticle("second", "jane-doe", "media", "s2")
	if _, err := r.ReconcileArticle(ctx, moved); err != nil {
		t.Fatalf("reconcile move: %v", err)
	}

	tech, _ = r.CategoryBySlug(ctx, "tech")
	media, _ := r.CategoryBySlug(ctx, "media")
	if tech.ArticleCount != 1 || media.ArticleCount != 1 {
		t.Fatalf("counts after reassignment: tech=%d media=%d, want 1/1", tech.ArticleCount, media.ArticleCount)
	}
}

func TestReconcileArticlePreservesCounters(t *testing.T) {
	ctx := context.Background()
	db := testDB(t)
	r := NewReconciler(db)
	seedAuthor(t, r, "jane-doe")
	seedCategory(t, r, "tech")

	if _, err := r.ReconcileArticle(ctx, newArticle("hot-take", "jane-doe", "tech", "v1")); err != nil {
		t.Fatalf("reconcile: %v", err)
	}

	// Simulate reader traffic landing between syncs.
	if _, err := db.NewUpdate().Model((*model.Article)(nil)).
		Set("views = ?", 99).Set("likes = ?", 7).
		Where("slug = ?", "hot-take").
		Exec(ctx); err != nil {
		t.Fatalf("seed counters: %v", err)
	}

	updated := newArticle("hot-take", "jane-doe", "tech", "v2")
	updated.Views = 0
	if _, err := r.ReconcileArticle(ctx, updated); err != nil {
		t.Fatalf("reconcile update: %v", err)
	}

	stored, err := r.ArticleBySlug(ctx, "hot-take")
	if err != nil {
		t.Fatalf("ArticleBySlug: %v", err)
	}
	if stored.Views != 99 || stored.Likes != 7 {
		t.Fatalf("server-owned counters must survive updates: views=%d likes=%d", stored.Views, stored.Likes)
	}
	if stored.Checksum != "v2" {
		t.Fatalf("content update must still apply, checksum=%q", stored.Checksum)
	}
}

func TestPrune(t *testing.T) {
	ctx := context.Background()
	r := NewReconciler(testDB(t))
	seedAuthor(t, r, "jane-doe")
	seedAuthor(t, r, "gone-writer")
	seedCategory(t, r, "tech")

	if _, err := r.ReconcileArticle(ctx, newArticle("keeper", "jane-doe", "tech", "k1")); err != nil {
		t.Fatalf("reconcile: %v", err)
	}

	// jane-doe is still referenced by the article, gone-writer is not.
	result, err := r.Prune(ctx, model.TypeAuthors, map[string]struct{}{})
	if err != nil {
		t.Fatalf("Prune: %v", err)
	}
	if len(result.Removed) != 1 || result.Removed[0] != "gone-writer" {
		t.Fatalf("removed mismatch: %#v", result.Removed)
	}
	if len(result.Skipped) != 1 || result.Skipped[0] != "jane-doe" {
		t.Fatalf("referenced author must be skipped, got %#v", result.Skipped)
	}

	if _, err := r.AuthorBySlug(ctx, "jane-doe"); err != nil {
		t.Fatalf("skipped author must remain: %v", err)
	}
	if _, err := r.AuthorBySlug(ctx, "gone-writer"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("pruned author must be gone, got %v", err)
	}
}

func TestPruneKeepSet(t *testing.T) {
	ctx := context.Background()
	r := NewReconciler(testDB(t))
	seedCategory(t, r, "tech")
	seedCategory(t, r, "media")

	result, err := r.Prune(ctx, model.TypeCategories, map[string]struct{}{"tech": {}})
	if err != nil {
		t.Fatalf("Prune: %v", err)
	}
	if len(result.Removed) != 1 || result.Removed[0] != "media" {
		t.Fatalf("only the unlisted slug should go: %#v", result.Removed)
	}
}

func TestListOrdering(t *testing.T) {
	ctx := context.Background()
	r := NewReconciler(testDB(t))
	seedAuthor(t, r, "jane-doe")
	seedCategory(t, r, "tech")

	early := newArticle("early", "jane-doe", "tech", "e1")
	early.PublishDate = "2026-01-01"
	late := newArticle("late", "jane-doe", "tech", "l1")
	late.PublishDate = "2026-06-01"
	for _, rec := range []*model.Article{early, late} {
		if _, err := r.ReconcileArticle(ctx, rec); err != nil {
			t.Fatalf("reconcile %s: %v", rec.Slug, err)
		}
	}

	articles, err := r.ListArticles(ctx)
	if err != nil {
		t.Fatalf("ListArticles: %v", err)
	}
	if len(articles) != 2 || articles[0].Slug != "late" {
		t.Fatalf("articles must order newest first: %#v", articles)
	}
}
