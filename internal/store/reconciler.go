package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/uptrace/bun"

	"github.com/creatorwire/creatorwire/internal/model"
)

// Outcome reports what a reconcile call did with a record.
type Outcome int

const (
	// OutcomeUnchanged means the stored checksum matched and nothing was written.
	OutcomeUnchanged Outcome = iota
	// OutcomeCreated means a new row was inserted.
	OutcomeCreated
	// OutcomeUpdated means an existing row was updated in place.
	OutcomeUpdated
)

func (o Outcome) String() string {
	switch o {
	case OutcomeCreated:
		return "created"
	case OutcomeUpdated:
		return "updated"
	default:
		return "unchanged"
	}
}

// Reconciler performs idempotent, checksum-gated upserts of parsed content.
// Every reconcile call runs inside its own transaction so a failure rolls
// back all writes for that source file and only that file.
type Reconciler struct {
	db *bun.DB
}

// NewReconciler wraps the database handle.
func NewReconciler(db *bun.DB) *Reconciler {
	return &Reconciler{db: db}
}

// DB exposes the underlying handle for read-side queries.
func (r *Reconciler) DB() *bun.DB { return r.db }

// decide picks the upsert action for an existing row. A matching checksum is
// a no-op regardless of where the file now lives. A differing checksum from
// the same source file is an update. A differing checksum from a different
// source file means two files collide on one slug, which must never silently
// overwrite the unrelated record.
func decide(existingChecksum, existingPath, checksum, path string) (Outcome, error) {
	if existingChecksum != "" && existingChecksum == checksum {
		return OutcomeUnchanged, nil
	}
	if existingPath != "" && path != "" && existingPath != path {
		return 0, fmt.Errorf("%w: source %s collides with %s", ErrSlugConflict, path, existingPath)
	}
	return OutcomeUpdated, nil
}

// ReconcileAuthor upserts an author record by slug.
func (r *Reconciler) ReconcileAuthor(ctx context.Context, rec *model.Author) (Outcome, error) {
	existing := new(model.Author)
	err := r.db.NewSelect().Model(existing).Where("au.slug = ?", rec.Slug).Scan(ctx)
	switch {
	case errors.Is(err, sql.ErrNoRows):
		err = r.db.RunInTx(ctx, nil, func(ctx context.Context, tx bun.Tx) error {
			_, err := tx.NewInsert().Model(rec).Exec(ctx)
			return err
		})
		if err != nil {
			return 0, fmt.Errorf("store: insert author %s: %w", rec.Slug, err)
		}
		return OutcomeCreated, nil
	case err != nil:
		return 0, fmt.Errorf("store: lookup author %s: %w", rec.Slug, err)
	}

	outcome, err := decide(existing.Checksum, existing.SourcePath, rec.Checksum, rec.SourcePath)
	if err != nil || outcome == OutcomeUnchanged {
		return outcome, err
	}

	rec.ID = existing.ID
	rec.ArticleCount = existing.ArticleCount
	rec.UpdatedAt = time.Now().UTC()
	err = r.db.RunInTx(ctx, nil, func(ctx context.Context, tx bun.Tx) error {
		_, err := tx.NewUpdate().Model(rec).
			Column("name", "title", "bio", "expertise", "location", "twitter",
				"linkedin", "image_url", "rating", "is_active", "joined_date",
				"checksum", "source_path", "updated_at").
			WherePK().
			Exec(ctx)
		return err
	})
	if err != nil {
		return 0, fmt.Errorf("store: update author %s: %w", rec.Slug, err)
	}
	return OutcomeUpdated, nil
}

// ReconcileCategory upserts a category record by slug, resolving the
// optional parent reference first.
func (r *Reconciler) ReconcileCategory(ctx context.Context, rec *model.Category) (Outcome, error) {
	if rec.ParentSlug != "" {
		parent, err := r.CategoryBySlug(ctx, rec.ParentSlug)
		if err != nil {
			if errors.Is(err, ErrNotFound) {
				return 0, fmt.Errorf("%w: parent category %q", ErrUnresolvedRef, rec.ParentSlug)
			}
			return 0, err
		}
		rec.ParentID = &parent.ID
	}

	existing := new(model.Category)
	err := r.db.NewSelect().Model(existing).Where("c.slug = ?", rec.Slug).Scan(ctx)
	switch {
	case errors.Is(err, sql.ErrNoRows):
		err = r.db.RunInTx(ctx, nil, func(ctx context.Context, tx bun.Tx) error {
			_, err := tx.NewInsert().Model(rec).Exec(ctx)
			return err
		})
		if err != nil {
			return 0, fmt.Errorf("store: insert category %s: %w", rec.Slug, err)
		}
		return OutcomeCreated, nil
	case err != nil:
		return 0, fmt.Errorf("store: lookup category %s: %w", rec.Slug, err)
	}

	outcome, err := decide(existing.Checksum, existing.SourcePath, rec.Checksum, rec.SourcePath)
	if err != nil || outcome == OutcomeUnchanged {
		return outcome, err
	}

	rec.ID = existing.ID
	rec.ArticleCount = existing.ArticleCount
	rec.UpdatedAt = time.Now().UTC()
	err = r.db.RunInTx(ctx, nil, func(ctx context.Context, tx bun.Tx) error {
		_, err := tx.NewUpdate().Model(rec).
			Column("name", "description", "color", "icon", "sort_order",
				"parent_id", "is_featured", "checksum", "source_path", "updated_at").
			WherePK().
			Exec(ctx)
		return err
	})
	if err != nil {
		return 0, fmt.Errorf("store: update category %s: %w", rec.Slug, err)
	}
	return OutcomeUpdated, nil
}

// ReconcileArticle upserts an article by slug. The author and category
// references are resolved to row ids before any write; an unresolvable
// reference fails the file without touching the database. Server-owned
// counters (views, likes, comments) survive updates untouched, and the
// denormalized article counts on authors and categories are recomputed
// inside the same transaction as the write.
func (r *Reconciler) ReconcileArticle(ctx context.Context, rec *model.Article) (Outcome, error) {
	author, err := r.AuthorBySlug(ctx, rec.AuthorSlug)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return 0, fmt.Errorf("%w: author %q", ErrUnresolvedRef, rec.AuthorSlug)
		}
		return 0, err
	}
	category, err := r.CategoryBySlug(ctx, rec.CategorySlug)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return 0, fmt.Errorf("%w: category %q", ErrUnresolvedRef, rec.CategorySlug)
		}
		return 0, err
	}
	rec.AuthorID = author.ID
	rec.CategoryID = category.ID

	existing := new(model.Article)
	err = r.db.NewSelect().Model(existing).Where("a.slug = ?", rec.Slug).Scan(ctx)
	switch {
	case errors.Is(err, sql.ErrNoRows):
		err = r.db.RunInTx(ctx, nil, func(ctx context.Context, tx bun.Tx) error {
			if _, err := tx.NewInsert().Model(rec).Exec(ctx); err != nil {
				return err
			}
			return refreshArticleCounts(ctx, tx, rec.AuthorID, rec.CategoryID)
		})
		if err != nil {
			return 0, fmt.Errorf("store: insert article %s: %w", rec.Slug, err)
		}
		return OutcomeCreated, nil
	case err != nil:
		return 0, fmt.Errorf("store: lookup article %s: %w", rec.Slug, err)
	}

	outcome, err := decide(existing.Checksum, existing.SourcePath, rec.Checksum, rec.SourcePath)
	if err != nil || outcome == OutcomeUnchanged {
		return outcome, err
	}

	rec.ID = existing.ID
	rec.Views = existing.Views
	rec.Likes = existing.Likes
	rec.Comments = existing.Comments
	rec.UpdatedAt = time.Now().UTC()
	err = r.db.RunInTx(ctx, nil, func(ctx context.Context, tx bun.Tx) error {
		if _, err := tx.NewUpdate().Model(rec).
			Column("title", "excerpt", "content", "author_id", "category_id",
				"tags", "featured", "trending", "publish_date", "image_url",
				"hero_image_url", "thumbnail_url", "read_time_minutes",
				"seo_title", "seo_description", "mobile_title", "mobile_excerpt",
				"checksum", "source_path", "updated_at").
			WherePK().
			Exec(ctx); err != nil {
			return err
		}
		ids := []int64{rec.AuthorID, rec.CategoryID}
		if existing.AuthorID != rec.AuthorID {
			ids = append(ids, existing.AuthorID)
		}
		if existing.CategoryID != rec.CategoryID {
			ids = append(ids, existing.CategoryID)
		}
		return refreshArticleCounts(ctx, tx, ids...)
	})
	if err != nil {
		return 0, fmt.Errorf("store: update article %s: %w", rec.Slug, err)
	}
	return OutcomeUpdated, nil
}

// ReconcileTrending upserts a trending topic by slug.
func (r *Reconciler) ReconcileTrending(ctx context.Context, rec *model.TrendingTopic) (Outcome, error) {
	if rec.CategorySlug != "" {
		category, err := r.CategoryBySlug(ctx, rec.CategorySlug)
		if err != nil {
			if errors.Is(err, ErrNotFound) {
				return 0, fmt.Errorf("%w: category %q", ErrUnresolvedRef, rec.CategorySlug)
			}
			return 0, err
		}
		rec.CategoryID = &category.ID
	}

	existing := new(model.TrendingTopic)
	err := r.db.NewSelect().Model(existing).Where("t.slug = ?", rec.Slug).Scan(ctx)
	switch {
	case errors.Is(err, sql.ErrNoRows):
		err = r.db.RunInTx(ctx, nil, func(ctx context.Context, tx bun.Tx) error {
			_, err := tx.NewInsert().Model(rec).Exec(ctx)
			return err
		})
		if err != nil {
			return 0, fmt.Errorf("store: insert trending topic %s: %w", rec.Slug, err)
		}
		return OutcomeCreated, nil
	case err != nil:
		return 0, fmt.Errorf("store: lookup trending topic %s: %w", rec.Slug, err)
	}

	outcome, err := decide(existing.Checksum, existing.SourcePath, rec.Checksum, rec.SourcePath)
	if err != nil || outcome == OutcomeUnchanged {
		return outcome, err
	}

	rec.ID = existing.ID
	rec.UpdatedAt = time.Now().UTC()
	err = r.db.RunInTx(ctx, nil, func(ctx context.Context, tx bun.Tx) error {
		_, err := tx.NewUpdate().Model(rec).
			Column("title", "description", "analysis", "icon", "hashtag",
				"category_id", "heat_score", "growth_rate", "momentum", "status",
				"is_active", "peak_date", "article_count", "related_articles",
				"mentions_youtube", "mentions_tiktok", "mentions_instagram",
				"mentions_twitter", "mentions_twitch",
				"checksum", "source_path", "updated_at").
			WherePK().
			Exec(ctx)
		return err
	})
	if err != nil {
		return 0, fmt.Errorf("store: update trending topic %s: %w", rec.Slug, err)
	}
	return OutcomeUpdated, nil
}

// refreshArticleCounts recomputes the denormalized article_count columns for
// the given author/category ids. The same id set works for both tables; a
// non-matching id simply updates zero rows.
func refreshArticleCounts(ctx context.Context, tx bun.IDB, ids ...int64) error {
	for _, id := range ids {
		if id == 0 {
			continue
		}
		if _, err := tx.NewUpdate().Model((*model.Author)(nil)).
			Set("article_count = (SELECT COUNT(*) FROM articles WHERE author_id = ?)", id).
			Where("id = ?", id).
			Exec(ctx); err != nil {
			return err
		}
		if _, err := tx.NewUpdate().Model((*model.Category)(nil)).
			Set("article_count = (SELECT COUNT(*) FROM articles WHERE category_id = ?)", id).
			Where("id = ?", id).
			Exec(ctx); err != nil {
			return err
		}
	}
	return nil
}
