package commands

import (
	"context"

	command "github.com/goliatone/go-command"

	"github.com/creatorwire/creatorwire/internal/logging"
	"github.com/creatorwire/creatorwire/internal/pipeline"
)

var (
	_ command.Commander[SyncCommand]  = (*SyncHandler)(nil)
	_ command.Commander[PruneCommand] = (*PruneHandler)(nil)
	_ command.Commander[RegenCommand] = (*RegenHandler)(nil)
)

// SyncHandler executes the content pipeline for a SyncCommand. The last run
// report is retained for callers that want to print or inspect it.
type SyncHandler struct {
	inner  *Handler[SyncCommand]
	report *pipeline.Report
}

// NewSyncHandler binds the handler to a pipeline runner.
func NewSyncHandler(runner *pipeline.Runner, logger logging.Logger, opts ...HandlerOption[SyncCommand]) *SyncHandler {
	h := &SyncHandler{}
	exec := func(ctx context.Context, msg SyncCommand) error {
		report, err := runner.Sync(ctx, pipeline.SyncOptions{
			Types:       msg.Types,
			ForceRender: msg.ForceRender,
		})
		h.report = report
		return err
	}

	handlerOpts := []HandlerOption[SyncCommand]{
		WithLogger[SyncCommand](logger),
		WithOperation[SyncCommand]("content.sync"),
	}
	handlerOpts = append(handlerOpts, opts...)
	h.inner = NewHandler(exec, handlerOpts...)
	return h
}

// Execute satisfies command.Commander[SyncCommand].
func (h *SyncHandler) Execute(ctx context.Context, msg SyncCommand) error {
	return h.inner.Execute(ctx, msg)
}

// Report returns the report of the last Execute call, nil before the first.
func (h *SyncHandler) Report() *pipeline.Report { return h.report }

// PruneHandler executes an explicit prune pass for a PruneCommand.
type PruneHandler struct {
	inner  *Handler[PruneCommand]
	report *pipeline.PruneReport
}

// NewPruneHandler binds the handler to a pipeline runner.
func NewPruneHandler(runner *pipeline.Runner, logger logging.Logger, opts ...HandlerOption[PruneCommand]) *PruneHandler {
	h := &PruneHandler{}
	exec := func(ctx context.Context, msg PruneCommand) error {
		report, err := runner.Prune(ctx, msg.Types)
		h.report = report
		return err
	}

	handlerOpts := []HandlerOption[PruneCommand]{
		WithLogger[PruneCommand](logger),
		WithOperation[PruneCommand]("content.prune"),
	}
	handlerOpts = append(handlerOpts, opts...)
	h.inner = NewHandler(exec, handlerOpts...)
	return h
}

// Execute satisfies command.Commander[PruneCommand].
func (h *PruneHandler) Execute(ctx context.Context, msg PruneCommand) error {
	return h.inner.Execute(ctx, msg)
}

// Report returns the report of the last Execute call, nil before the first.
func (h *PruneHandler) Report() *pipeline.PruneReport { return h.report }

// RegenHandler re-renders the site for a RegenCommand.
type RegenHandler struct {
	inner  *Handler[RegenCommand]
	report *pipeline.Report
}

// NewRegenHandler binds the handler to a pipeline runner.
func NewRegenHandler(runner *pipeline.Runner, logger logging.Logger, opts ...HandlerOption[RegenCommand]) *RegenHandler {
	h := &RegenHandler{}
	exec := func(ctx context.Context, msg RegenCommand) error {
		report, err := runner.Regen(ctx)
		h.report = report
		return err
	}

	handlerOpts := []HandlerOption[RegenCommand]{
		WithLogger[RegenCommand](logger),
		WithOperation[RegenCommand]("content.regen"),
	}
	handlerOpts = append(handlerOpts, opts...)
	h.inner = NewHandler(exec, handlerOpts...)
	return h
}

// Execute satisfies command.Commander[RegenCommand].
func (h *RegenHandler) Execute(ctx context.Context, msg RegenCommand) error {
	return h.inner.Execute(ctx, msg)
}

// Report returns the report of the last Execute call, nil before the first.
func (h *RegenHandler) Report() *pipeline.Report { return h.report }
