package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/creatorwire/creatorwire/internal/model"
)

// AuthorBySlug returns the author with the given slug or ErrNotFound.
func (r *Reconciler) AuthorBySlug(ctx context.Context, slug string) (*model.Author, error) {
	rec := new(model.Author)
	err := r.db.NewSelect().Model(rec).Where("au.slug = ?", slug).Scan(ctx)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%w: author %s", ErrNotFound, slug)
	}
	if err != nil {
		return nil, fmt.Errorf("store: author %s: %w", slug, err)
	}
	return rec, nil
}

// CategoryBySlug returns the category with the given slug or ErrNotFound.
func (r *Reconciler) CategoryBySlug(ctx context.Context, slug string) (*model.Category, error) {
	rec := new(model.Category)
	err := r.db.NewSelect().Model(rec).Where("c.slug = ?", slug).Scan(ctx)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%w: category %s", ErrNotFound, slug)
	}
	if err != nil {
		return nil, fmt.Errorf("store: category %s: %w", slug, err)
	}
	return rec, nil
}

// ArticleBySlug returns the article with the given slug or ErrNotFound.
func (r *Reconciler) ArticleBySlug(ctx context.Context, slug string) (*model.Article, error) {
	rec := new(model.Article)
	err := r.db.NewSelect().Model(rec).Where("a.slug = ?", slug).Scan(ctx)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%w: article %s", ErrNotFound, slug)
	}
	if err != nil {
		return nil, fmt.Errorf("store: article %s: %w", slug, err)
	}
	return rec, nil
}

// TrendingBySlug returns the trending topic with the given slug or ErrNotFound.
func (r *Reconciler) TrendingBySlug(ctx context.Context, slug string) (*model.TrendingTopic, error) {
	rec := new(model.TrendingTopic)
	err := r.db.NewSelect().Model(rec).Where("t.slug = ?", slug).Scan(ctx)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%w: trending topic %s", ErrNotFound, slug)
	}
	if err != nil {
		return nil, fmt.Errorf("store: trending topic %s: %w", slug, err)
	}
	return rec, nil
}

// AuthorByID returns the author with the given id or ErrNotFound.
func (r *Reconciler) AuthorByID(ctx context.Context, id int64) (*model.Author, error) {
	rec := new(model.Author)
	err := r.db.NewSelect().Model(rec).Where("au.id = ?", id).Scan(ctx)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%w: author id %d", ErrNotFound, id)
	}
	if err != nil {
		return nil, err
	}
	return rec, nil
}

// CategoryByID returns the category with the given id or ErrNotFound.
func (r *Reconciler) CategoryByID(ctx context.Context, id int64) (*model.Category, error) {
	rec := new(model.Category)
	err := r.db.NewSelect().Model(rec).Where("c.id = ?", id).Scan(ctx)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%w: category id %d", ErrNotFound, id)
	}
	if err != nil {
		return nil, err
	}
	return rec, nil
}

// ListArticles returns all articles ordered by publish date, newest first.
// Listing pages query the database, not the in-memory batch, so a partial
// run still renders listings consistent with the store.
func (r *Reconciler) ListArticles(ctx context.Context) ([]*model.Article, error) {
	var recs []*model.Article
	err := r.db.NewSelect().Model(&recs).
		OrderExpr("a.publish_date DESC, a.slug ASC").
		Scan(ctx)
	if err != nil {
		return nil, fmt.Errorf("store: list articles: %w", err)
	}
	return recs, nil
}

// ArticlesByAuthor returns the author's articles, newest first.
func (r *Reconciler) ArticlesByAuthor(ctx context.Context, authorID int64) ([]*model.Article, error) {
	var recs []*model.Article
	err := r.db.NewSelect().Model(&recs).
		Where("a.author_id = ?", authorID).
		OrderExpr("a.publish_date DESC, a.slug ASC").
		Scan(ctx)
	if err != nil {
		return nil, fmt.Errorf("store: articles by author %d: %w", authorID, err)
	}
	return recs, nil
}

// ArticlesByCategory returns the category's articles, newest first.
func (r *Reconciler) ArticlesByCategory(ctx context.Context, categoryID int64) ([]*model.Article, error) {
	var recs []*model.Article
	err := r.db.NewSelect().Model(&recs).
		Where("a.category_id = ?", categoryID).
		OrderExpr("a.publish_date DESC, a.slug ASC").
		Scan(ctx)
	if err != nil {
		return nil, fmt.Errorf("store: articles by category %d: %w", categoryID, err)
	}
	return recs, nil
}

// ListAuthors returns all authors ordered by name.
func (r *Reconciler) ListAuthors(ctx context.Context) ([]*model.Author, error) {
	var recs []*model.Author
	err := r.db.NewSelect().Model(&recs).OrderExpr("au.name ASC").Scan(ctx)
	if err != nil {
		return nil, fmt.Errorf("store: list authors: %w", err)
	}
	return recs, nil
}

// ListCategories returns all categories ordered by sort order then name.
func (r *Reconciler) ListCategories(ctx context.Context) ([]*model.Category, error) {
	var recs []*model.Category
	err := r.db.NewSelect().Model(&recs).
		OrderExpr("c.sort_order ASC, c.name ASC").
		Scan(ctx)
	if err != nil {
		return nil, fmt.Errorf("store: list categories: %w", err)
	}
	return recs, nil
}

// ListTrending returns all trending topics ordered by heat then momentum.
func (r *Reconciler) ListTrending(ctx context.Context) ([]*model.TrendingTopic, error) {
	var recs []*model.TrendingTopic
	err := r.db.NewSelect().Model(&recs).
		OrderExpr("t.heat_score DESC, t.momentum DESC, t.slug ASC").
		Scan(ctx)
	if err != nil {
		return nil, fmt.Errorf("store: list trending topics: %w", err)
	}
	return recs, nil
}
