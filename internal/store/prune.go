package store

import (
	"context"
	"fmt"
	"strings"

	"github.com/uptrace/bun"

	"github.com/creatorwire/creatorwire/internal/model"
)

// PruneResult reports the outcome of one prune pass over a content type.
type PruneResult struct {
	// Removed lists the slugs whose rows were deleted.
	Removed []string
	// Skipped lists slugs that could not be deleted, usually because other
	// rows still reference them.
	Skipped []string
}

// Prune deletes rows of the given content type whose slug is not in keep.
// Syncing never deletes anything: a removed source file leaves its row and
// page in place until this explicit operation is run. Rows still referenced
// by foreign keys are skipped rather than cascaded.
func (r *Reconciler) Prune(ctx context.Context, contentType string, keep map[string]struct{}) (*PruneResult, error) {
	slugs, err := r.slugsForType(ctx, contentType)
	if err != nil {
		return nil, err
	}

	result := &PruneResult{}
	for _, slug := range slugs {
		if _, live := keep[slug]; live {
			continue
		}
		if err := r.deleteBySlug(ctx, contentType, slug); err != nil {
			if isForeignKeyViolation(err) {
				result.Skipped = append(result.Skipped, slug)
				continue
			}
			return result, fmt.Errorf("store: prune %s %s: %w", contentType, slug, err)
		}
		result.Removed = append(result.Removed, slug)
	}
	return result, nil
}

func (r *Reconciler) slugsForType(ctx context.Context, contentType string) ([]string, error) {
	var slugs []string
	var err error
	switch contentType {
	case model.TypeArticles:
		err = r.db.NewSelect().Model((*model.Article)(nil)).Column("slug").Scan(ctx, &slugs)
	case model.TypeAuthors:
		err = r.db.NewSelect().Model((*model.Author)(nil)).Column("slug").Scan(ctx, &slugs)
	case model.TypeCategories:
		err = r.db.NewSelect().Model((*model.Category)(nil)).Column("slug").Scan(ctx, &slugs)
	case model.TypeTrending:
		err = r.db.NewSelect().Model((*model.TrendingTopic)(nil)).Column("slug").Scan(ctx, &slugs)
	default:
		return nil, fmt.Errorf("store: unknown content type %q", contentType)
	}
	if err != nil {
		return nil, fmt.Errorf("store: list %s slugs: %w", contentType, err)
	}
	return slugs, nil
}

func (r *Reconciler) deleteBySlug(ctx context.Context, contentType, slug string) error {
	return r.db.RunInTx(ctx, nil, func(ctx context.Context, tx bun.Tx) error {
		switch contentType {
		case model.TypeArticles:
			rec := new(model.Article)
			if err := tx.NewSelect().Model(rec).Where("a.slug = ?", slug).Scan(ctx); err != nil {
				return err
			}
			if _, err := tx.NewDelete().Model(rec).WherePK().Exec(ctx); err != nil {
				return err
			}
			return refreshArticleCounts(ctx, tx, rec.AuthorID, rec.CategoryID)
		case model.TypeAuthors:
			_, err := tx.NewDelete().Model((*model.Author)(nil)).Where("slug = ?", slug).Exec(ctx)
			return err
		case model.TypeCategories:
			_, err := tx.NewDelete().Model((*model.Category)(nil)).Where("slug = ?", slug).Exec(ctx)
			return err
		case model.TypeTrending:
			_, err := tx.NewDelete().Model((*model.TrendingTopic)(nil)).Where("slug = ?", slug).Exec(ctx)
			return err
		default:
			return fmt.Errorf("store: unknown content type %q", contentType)
		}
	})
}

func isForeignKeyViolation(err error) bool {
	return err != nil && strings.Contains(err.Error(), "FOREIGN KEY constraint failed")
}
