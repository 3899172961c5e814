// Package creatorwire assembles the content pipeline: flat files in,
// reconciled SQLite records and a static news site out.
package creatorwire

import (
	"context"
	"fmt"
	"os"

	"github.com/uptrace/bun"

	"github.com/creatorwire/creatorwire/internal/commands"
	"github.com/creatorwire/creatorwire/internal/fields"
	"github.com/creatorwire/creatorwire/internal/logging"
	"github.com/creatorwire/creatorwire/internal/pipeline"
	"github.com/creatorwire/creatorwire/internal/render"
	"github.com/creatorwire/creatorwire/internal/sanitizer"
	"github.com/creatorwire/creatorwire/internal/store"
)

// App owns the wired pipeline and its database handle.
type App struct {
	cfg    Config
	db     *bun.DB
	runner *pipeline.Runner
	logger logging.Logger

	sync  *commands.SyncHandler
	prune *commands.PruneHandler
	regen *commands.RegenHandler
}

// New validates the config, opens the database, applies migrations and
// wires every pipeline stage.
func New(ctx context.Context, cfg Config) (*App, error) {
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("creatorwire: config: %w", err)
	}

	provider, err := logging.NewProvider(cfg.Logging)
	if err != nil {
		return nil, err
	}

	db, err := store.Open(cfg.DSN)
	if err != nil {
		return nil, err
	}
	if err := store.RunMigrations(ctx, db, MigrationsFS()); err != nil {
		db.Close()
		return nil, err
	}

	var sanitizerOpts []sanitizer.Option
	if cfg.MaxContentLength > 0 {
		sanitizerOpts = append(sanitizerOpts, sanitizer.WithMaxContentLength(cfg.MaxContentLength))
	}

	pages, err := render.NewPages(render.Config{
		OutputDir: cfg.OutputDir,
		SiteName:  cfg.SiteName,
		BaseURL:   cfg.BaseURL,
	}, render.WithLogger(provider.GetLogger("render")))
	if err != nil {
		db.Close()
		return nil, err
	}

	runner, err := pipeline.NewRunner(pipeline.Dependencies{
		ContentFS: os.DirFS(cfg.ContentDir),
		Validator: fields.NewValidator(),
		Sanitizer: sanitizer.New(sanitizerOpts...),
		Store:     store.NewReconciler(db),
		Pages:     pages,
		Logger:    provider.GetLogger("pipeline"),
	})
	if err != nil {
		db.Close()
		return nil, err
	}

	commandLogger := provider.GetLogger("commands")
	return &App{
		cfg:    cfg,
		db:     db,
		runner: runner,
		logger: provider.GetLogger("app"),
		sync:   commands.NewSyncHandler(runner, commandLogger),
		prune:  commands.NewPruneHandler(runner, commandLogger),
		regen:  commands.NewRegenHandler(runner, commandLogger),
	}, nil
}

// Sync runs the full pipeline and returns the run report. The report is
// non-nil even when individual files failed; err is non-nil only when the
// run itself could not proceed.
func (a *App) Sync(ctx context.Context, msg commands.SyncCommand) (*pipeline.Report, error) {
	err := a.sync.Execute(ctx, msg)
	return a.sync.Report(), err
}

// Prune removes records whose source files are gone.
func (a *App) Prune(ctx context.Context, msg commands.PruneCommand) (*pipeline.PruneReport, error) {
	err := a.prune.Execute(ctx, msg)
	return a.prune.Report(), err
}

// Regen re-renders the whole site from store state.
func (a *App) Regen(ctx context.Context) (*pipeline.Report, error) {
	err := a.regen.Execute(ctx, commands.RegenCommand{})
	return a.regen.Report(), err
}

// Runner exposes the pipeline for embedders that bypass the command layer.
func (a *App) Runner() *pipeline.Runner { return a.runner }

// DB exposes the database handle, mainly for tests and embedders.
func (a *App) DB() *bun.DB { return a.db }

// Close releases the database handle.
func (a *App) Close() error {
	return a.db.Close()
}
