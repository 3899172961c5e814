// Package pipeline orchestrates the content flow: load flat files, validate
// and sanitize them, reconcile the records into the store, and render the
// static pages. Each source file is processed in isolation so one bad file
// fails alone while the rest of the batch lands.
package pipeline

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"time"

	"github.com/creatorwire/creatorwire/internal/contentfile"
	"github.com/creatorwire/creatorwire/internal/fields"
	"github.com/creatorwire/creatorwire/internal/logging"
	"github.com/creatorwire/creatorwire/internal/model"
	"github.com/creatorwire/creatorwire/internal/render"
	"github.com/creatorwire/creatorwire/internal/sanitizer"
	"github.com/creatorwire/creatorwire/internal/store"
)

// Runner wires the pipeline stages together. Construct it once and reuse it
// across runs; every stage it holds is safe for sequential reuse.
type Runner struct {
	contentFS fs.FS
	validator *fields.Validator
	sanitizer *sanitizer.Sanitizer
	store     *store.Reconciler
	pages     *render.Pages
	logger    logging.Logger
}

// Dependencies lists what the Runner needs. ContentFS must be rooted at the
// content directory; each content type lives in a subdirectory named after
// it (articles/, authors/, categories/, trending/).
type Dependencies struct {
	ContentFS fs.FS
	Validator *fields.Validator
	Sanitizer *sanitizer.Sanitizer
	Store     *store.Reconciler
	Pages     *render.Pages
	Logger    logging.Logger
}

// NewRunner builds a Runner from its dependencies.
func NewRunner(deps Dependencies) (*Runner, error) {
	if deps.ContentFS == nil {
		return nil, errors.New("pipeline: content filesystem is required")
	}
	if deps.Store == nil {
		return nil, errors.New("pipeline: store is required")
	}
	if deps.Pages == nil {
		return nil, errors.New("pipeline: page renderer is required")
	}
	if deps.Validator == nil {
		deps.Validator = fields.NewValidator()
	}
	if deps.Sanitizer == nil {
		deps.Sanitizer = sanitizer.New()
	}
	if deps.Logger == nil {
		deps.Logger = logging.NoOp()
	}
	return &Runner{
		contentFS: deps.ContentFS,
		validator: deps.Validator,
		sanitizer: deps.Sanitizer,
		store:     deps.Store,
		pages:     deps.Pages,
		logger:    deps.Logger,
	}, nil
}

// SyncOptions narrows a sync run.
type SyncOptions struct {
	// Types limits the run to the given content types; empty means all, in
	// dependency order so references resolve within a single run.
	Types []string
	// ForceRender re-renders every page even when nothing changed.
	ForceRender bool
}

// Sync runs the full pipeline. Records are never deleted here: a vanished
// source file leaves its row and page untouched until an explicit Prune.
func (r *Runner) Sync(ctx context.Context, opts SyncOptions) (*Report, error) {
	report := newReport()
	logger := r.logger.WithContext(ctx)
	logger.Info("sync started", "run_id", report.RunID.String())

	types := opts.Types
	if len(types) == 0 {
		types = model.Types()
	}

	for _, contentType := range types {
		if !model.KnownType(contentType) {
			return nil, fmt.Errorf("pipeline: unknown content type %q", contentType)
		}
		if err := r.syncType(ctx, contentType, opts.ForceRender, report); err != nil {
			return report, err
		}
	}

	if report.Changed() || opts.ForceRender {
		routes, err := r.renderListings(ctx)
		report.Pages = append(report.Pages, routes...)
		if err != nil {
			return report, wrapRenderError(err)
		}
	}

	report.Duration = time.Since(report.StartedAt)
	logger.Info("sync finished",
		"run_id", report.RunID.String(),
		"duration", report.Duration.String(),
		"failures", len(report.Failures),
		"warnings", len(report.Warnings))
	return report, nil
}

func (r *Runner) syncType(ctx context.Context, contentType string, force bool, report *Report) error {
	logger := r.logger.WithContext(ctx)

	if _, err := fs.Stat(r.contentFS, contentType); errors.Is(err, fs.ErrNotExist) {
		logger.Debug("content directory missing, skipping", "type", contentType)
		return nil
	}

	loader := contentfile.NewLoader(r.contentFS, contentfile.LoaderConfig{Dir: contentType})
	docs, fileErrs, err := loader.LoadDirectory(ctx)
	if err != nil {
		return fmt.Errorf("pipeline: load %s: %w", contentType, err)
	}

	tr := report.typeReport(contentType)
	for _, fileErr := range fileErrs {
		tr.Failed++
		report.Failures = append(report.Failures, FileFailure{
			ContentType: contentType,
			Path:        fileErr.Path,
			Err:         wrapParseError(fileErr.Err),
		})
		logger.Error("file unparseable", "type", contentType, "path", fileErr.Path, "error", fileErr.Err.Error())
	}

	for _, doc := range docs {
		outcome, slug, warnings, err := r.processDocument(ctx, contentType, doc)
		for _, warning := range warnings {
			report.Warnings = append(report.Warnings, fmt.Sprintf("%s: %s", doc.Path, warning))
			logger.Warn("content repaired", "type", contentType, "path", doc.Path, "detail", warning)
		}
		if err != nil {
			tr.Failed++
			report.Failures = append(report.Failures, FileFailure{
				ContentType: contentType,
				Path:        doc.Path,
				Err:         err,
			})
			logger.Error("file failed", "type", contentType, "path", doc.Path, "error", err.Error())
			continue
		}

		switch outcome {
		case store.OutcomeCreated:
			tr.Created++
		case store.OutcomeUpdated:
			tr.Updated++
		default:
			tr.Unchanged++
		}

		// The record landed; a render failure goes to the failure list only,
		// so the per-type tallies keep summing to the file count.
		if outcome != store.OutcomeUnchanged || force {
			route, err := r.renderDetail(ctx, contentType, slug)
			if err != nil {
				report.Failures = append(report.Failures, FileFailure{
					ContentType: contentType,
					Path:        doc.Path,
					Err:         wrapRenderError(err),
				})
				continue
			}
			report.Pages = append(report.Pages, route)
		}
		logger.Debug("file processed", "type", contentType, "path", doc.Path, "outcome", outcome.String())
	}
	return nil
}

// processDocument validates, sanitizes, models and reconciles one document.
// It returns the reconcile outcome and the record slug for rendering.
func (r *Runner) processDocument(ctx context.Context, contentType string, doc *contentfile.RawDocument) (store.Outcome, string, []string, error) {
	result, err := r.validator.Validate(contentType, doc)
	if err != nil {
		return 0, "", nil, wrapValidationError(err)
	}
	warnings := result.Warnings

	for _, name := range []string{"title", "name", "excerpt"} {
		if value, ok := result.Fields[name]; ok && value != "" {
			result.Fields[name] = r.sanitizer.SanitizeText(value)
		}
	}

	body := r.sanitizer.SanitizeBody(doc.Body)
	warnings = append(warnings, body.Warnings...)

	checksum := model.EncodeChecksum(doc.Checksum)

	var outcome store.Outcome
	var slug string
	switch contentType {
	case model.TypeAuthors:
		rec := model.AuthorFromFields(result.Fields, body.Clean)
		rec.Checksum, rec.SourcePath = checksum, doc.Path
		outcome, err = r.store.ReconcileAuthor(ctx, rec)
		slug = rec.Slug
	case model.TypeCategories:
		rec := model.CategoryFromFields(result.Fields, body.Clean)
		rec.Checksum, rec.SourcePath = checksum, doc.Path
		outcome, err = r.store.ReconcileCategory(ctx, rec)
		slug = rec.Slug
	case model.TypeArticles:
		rec := model.ArticleFromFields(result.Fields, body.Clean)
		rec.Checksum, rec.SourcePath = checksum, doc.Path
		outcome, err = r.store.ReconcileArticle(ctx, rec)
		slug = rec.Slug
	case model.TypeTrending:
		rec := model.TrendingFromFields(result.Fields, body.Clean)
		rec.Checksum, rec.SourcePath = checksum, doc.Path
		outcome, err = r.store.ReconcileTrending(ctx, rec)
		slug = rec.Slug
	default:
		return 0, "", warnings, fmt.Errorf("pipeline: unknown content type %q", contentType)
	}
	if err != nil {
		return 0, "", warnings, wrapReconcileError(err)
	}
	return outcome, slug, warnings, nil
}

// renderDetail re-reads the record from the store and writes its page. The
// store copy carries the row id and the server-owned counters, which the
// in-flight record does not.
func (r *Runner) renderDetail(ctx context.Context, contentType, slug string) (string, error) {
	switch contentType {
	case model.TypeAuthors:
		author, err := r.store.AuthorBySlug(ctx, slug)
		if err != nil {
			return "", err
		}
		articles, err := r.store.ArticlesByAuthor(ctx, author.ID)
		if err != nil {
			return "", err
		}
		return r.pages.WriteAuthor(ctx, author, articles)
	case model.TypeCategories:
		category, err := r.store.CategoryBySlug(ctx, slug)
		if err != nil {
			return "", err
		}
		articles, err := r.store.ArticlesByCategory(ctx, category.ID)
		if err != nil {
			return "", err
		}
		return r.pages.WriteCategory(ctx, category, articles)
	case model.TypeArticles:
		article, err := r.store.ArticleBySlug(ctx, slug)
		if err != nil {
			return "", err
		}
		author, err := r.store.AuthorByID(ctx, article.AuthorID)
		if err != nil {
			return "", err
		}
		category, err := r.store.CategoryByID(ctx, article.CategoryID)
		if err != nil {
			return "", err
		}
		return r.pages.WriteArticle(ctx, article, author, category)
	case model.TypeTrending:
		topic, err := r.store.TrendingBySlug(ctx, slug)
		if err != nil {
			return "", err
		}
		return r.pages.WriteTrending(ctx, topic)
	default:
		return "", fmt.Errorf("pipeline: unknown content type %q", contentType)
	}
}

// renderListings writes the per-type index pages and the front page from
// current store state, never from the in-flight batch.
func (r *Runner) renderListings(ctx context.Context) ([]string, error) {
	articles, err := r.store.ListArticles(ctx)
	if err != nil {
		return nil, err
	}
	authors, err := r.store.ListAuthors(ctx)
	if err != nil {
		return nil, err
	}
	categories, err := r.store.ListCategories(ctx)
	if err != nil {
		return nil, err
	}
	topics, err := r.store.ListTrending(ctx)
	if err != nil {
		return nil, err
	}
	return r.pages.WriteListings(ctx, render.Listings{
		Articles:   articles,
		Authors:    authors,
		Categories: categories,
		Topics:     topics,
	})
}

// Regen re-renders every page from store state without touching source
// files or the database.
func (r *Runner) Regen(ctx context.Context) (*Report, error) {
	report := newReport()
	logger := r.logger.WithContext(ctx)
	logger.Info("regen started", "run_id", report.RunID.String())

	articles, err := r.store.ListArticles(ctx)
	if err != nil {
		return report, err
	}
	authors, err := r.store.ListAuthors(ctx)
	if err != nil {
		return report, err
	}
	categories, err := r.store.ListCategories(ctx)
	if err != nil {
		return report, err
	}
	topics, err := r.store.ListTrending(ctx)
	if err != nil {
		return report, err
	}

	authorsByID := make(map[int64]*model.Author, len(authors))
	for _, author := range authors {
		authorsByID[author.ID] = author
	}
	categoriesByID := make(map[int64]*model.Category, len(categories))
	for _, category := range categories {
		categoriesByID[category.ID] = category
	}

	for _, article := range articles {
		route, err := r.pages.WriteArticle(ctx, article, authorsByID[article.AuthorID], categoriesByID[article.CategoryID])
		if err != nil {
			report.Failures = append(report.Failures, FileFailure{
				ContentType: model.TypeArticles,
				Path:        article.SourcePath,
				Err:         wrapRenderError(err),
			})
			continue
		}
		report.Pages = append(report.Pages, route)
	}
	for _, author := range authors {
		byAuthor, err := r.store.ArticlesByAuthor(ctx, author.ID)
		if err != nil {
			return report, err
		}
		route, err := r.pages.WriteAuthor(ctx, author, byAuthor)
		if err != nil {
			report.Failures = append(report.Failures, FileFailure{
				ContentType: model.TypeAuthors,
				Path:        author.SourcePath,
				Err:         wrapRenderError(err),
			})
			continue
		}
		report.Pages = append(report.Pages, route)
	}
	for _, category := range categories {
		byCategory, err := r.store.ArticlesByCategory(ctx, category.ID)
		if err != nil {
			return report, err
		}
		route, err := r.pages.WriteCategory(ctx, category, byCategory)
		if err != nil {
			report.Failures = append(report.Failures, FileFailure{
				ContentType: model.TypeCategories,
				Path:        category.SourcePath,
				Err:         wrapRenderError(err),
			})
			continue
		}
		report.Pages = append(report.Pages, route)
	}
	for _, topic := range topics {
		route, err := r.pages.WriteTrending(ctx, topic)
		if err != nil {
			report.Failures = append(report.Failures, FileFailure{
				ContentType: model.TypeTrending,
				Path:        topic.SourcePath,
				Err:         wrapRenderError(err),
			})
			continue
		}
		report.Pages = append(report.Pages, route)
	}

	routes, err := r.pages.WriteListings(ctx, render.Listings{
		Articles:   articles,
		Authors:    authors,
		Categories: categories,
		Topics:     topics,
	})
	report.Pages = append(report.Pages, routes...)
	if err != nil {
		return report, wrapRenderError(err)
	}

	report.Duration = time.Since(report.StartedAt)
	logger.Info("regen finished", "run_id", report.RunID.String(), "pages", len(report.Pages))
	return report, nil
}

// Prune removes rows whose source files are gone. Types are pruned in
// reverse dependency order so dependents go before the rows they reference.
// A type whose directory is missing or holds unreadable files is skipped
// entirely; deleting rows because their files failed to load would destroy
// live content.
func (r *Runner) Prune(ctx context.Context, types []string) (*PruneReport, error) {
	report := newPruneReport()
	logger := r.logger.WithContext(ctx)
	logger.Info("prune started", "run_id", report.RunID.String())

	if len(types) == 0 {
		types = model.Types()
	}
	ordered := make([]string, len(types))
	for i, contentType := range types {
		ordered[len(types)-1-i] = contentType
	}

	for _, contentType := range ordered {
		if !model.KnownType(contentType) {
			return nil, fmt.Errorf("pipeline: unknown content type %q", contentType)
		}

		// A missing directory gets the same treatment as an unreadable file:
		// skip the type. Pruning against it would empty the whole table the
		// moment the content dir is mis-pointed.
		if _, err := fs.Stat(r.contentFS, contentType); err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				logger.Warn("prune skipped, content directory missing", "type", contentType)
				continue
			}
			return report, fmt.Errorf("pipeline: stat %s: %w", contentType, err)
		}

		loader := contentfile.NewLoader(r.contentFS, contentfile.LoaderConfig{Dir: contentType})
		docs, fileErrs, err := loader.LoadDirectory(ctx)
		if err != nil {
			return report, fmt.Errorf("pipeline: load %s: %w", contentType, err)
		}
		if len(fileErrs) > 0 {
			logger.Warn("prune skipped, unreadable files present", "type", contentType, "count", len(fileErrs))
			continue
		}
		keep := map[string]struct{}{}
		for _, doc := range docs {
			slug, err := r.documentSlug(contentType, doc)
			if err != nil {
				logger.Warn("prune skipped, invalid file", "type", contentType, "path", doc.Path)
				keep = nil
				break
			}
			keep[slug] = struct{}{}
		}
		if keep == nil {
			continue
		}

		result, err := r.store.Prune(ctx, contentType, keep)
		if err != nil {
			return report, err
		}
		report.Removed[contentType] = result.Removed
		report.Skipped[contentType] = result.Skipped
		logger.Info("prune finished", "type", contentType,
			"removed", len(result.Removed), "skipped", len(result.Skipped))
	}
	return report, nil
}

// documentSlug derives the slug a document would reconcile under, without
// touching the store.
func (r *Runner) documentSlug(contentType string, doc *contentfile.RawDocument) (string, error) {
	result, err := r.validator.Validate(contentType, doc)
	if err != nil {
		return "", err
	}
	title := result.Fields["title"]
	if contentType == model.TypeAuthors || contentType == model.TypeCategories {
		title = result.Fields["name"]
	}
	return model.DeriveSlug(result.Fields["slug"], title), nil
}
