// Package commands exposes the pipeline operations as go-command messages.
// The shared Handler applies validation, timeout enforcement, logging and
// error categorisation so the per-operation handlers stay thin.
package commands

import (
	"context"
	"errors"
	"time"

	command "github.com/goliatone/go-command"
	goerrors "github.com/goliatone/go-errors"

	"github.com/creatorwire/creatorwire/internal/logging"
)

const defaultHandlerTimeout = 5 * time.Minute

// HandlerOption configures a Handler instance.
type HandlerOption[T command.Message] func(*Handler[T])

// Handler wraps command execution with the shared pipeline concerns.
type Handler[T command.Message] struct {
	exec      command.CommandFunc[T]
	logger    logging.Logger
	timeout   time.Duration
	operation string
}

// NewHandler creates a handler satisfying go-command's Commander interface.
func NewHandler[T command.Message](fn command.CommandFunc[T], opts ...HandlerOption[T]) *Handler[T] {
	if fn == nil {
		panic("commands: handler function cannot be nil")
	}
	h := &Handler[T]{
		exec:    fn,
		logger:  logging.NoOp(),
		timeout: defaultHandlerTimeout,
	}
	for _, opt := range opts {
		opt(h)
	}
	return h
}

// Execute conforms to command.Commander[T].Execute.
func (h *Handler[T]) Execute(ctx context.Context, msg T) error {
	if err := command.ValidateMessage(msg); err != nil {
		return wrapValidationError(err)
	}

	if ctx == nil {
		ctx = context.Background()
	}
	ctx, cancel := h.withTimeout(ctx)
	defer cancel()

	if err := ctx.Err(); err != nil {
		return wrapContextError(err)
	}

	logger := h.logger.WithContext(ctx)
	messageType := command.GetMessageType(msg)
	logger.Debug("command started", "command", messageType, "operation", h.operation)

	start := time.Now()
	if err := h.exec(ctx, msg); err != nil {
		logger.Error("command failed",
			"command", messageType,
			"operation", h.operation,
			"duration_ms", time.Since(start).Milliseconds(),
			"error", err.Error())
		return wrapExecuteError(err)
	}

	if err := ctx.Err(); err != nil {
		return wrapContextError(err)
	}

	logger.Info("command finished",
		"command", messageType,
		"operation", h.operation,
		"duration_ms", time.Since(start).Milliseconds())
	return nil
}

// WithTimeout overrides the default execution timeout. Zero or negative
// disables the timeout entirely.
func WithTimeout[T command.Message](timeout time.Duration) HandlerOption[T] {
	return func(h *Handler[T]) {
		if timeout <= 0 {
			h.timeout = 0
			return
		}
		h.timeout = timeout
	}
}

// WithLogger injects the logger used during execution.
func WithLogger[T command.Message](logger logging.Logger) HandlerOption[T] {
	return func(h *Handler[T]) {
		if logger == nil {
			h.logger = logging.NoOp()
			return
		}
		h.logger = logger
	}
}

// WithOperation sets the operation name emitted with every log entry.
func WithOperation[T command.Message](operation string) HandlerOption[T] {
	return func(h *Handler[T]) {
		h.operation = operation
	}
}

func (h *Handler[T]) withTimeout(ctx context.Context) (context.Context, context.CancelFunc) {
	if h.timeout <= 0 {
		return ctx, func() {}
	}
	return context.WithTimeout(ctx, h.timeout)
}

// Text codes attached to errors leaving the command layer. Pipeline stages
// wrap their own errors first; anything still uncategorised here failed in
// the handler itself.
const (
	codeCommandInvalid = "PIPELINE_COMMAND_INVALID"
	codeRunCanceled    = "PIPELINE_RUN_CANCELED"
	codeRunTimedOut    = "PIPELINE_RUN_TIMED_OUT"
	codeRunAborted     = "PIPELINE_RUN_ABORTED"
	codeRunFailed      = "PIPELINE_RUN_FAILED"
)

func wrapValidationError(err error) error {
	if err == nil || goerrors.IsWrapped(err) {
		return err
	}
	return goerrors.Wrap(err, goerrors.CategoryValidation, "pipeline command rejected").
		WithTextCode(codeCommandInvalid)
}

func wrapContextError(err error) error {
	if err == nil || goerrors.IsWrapped(err) {
		return err
	}
	msg, code := "pipeline run aborted", codeRunAborted
	switch {
	case errors.Is(err, context.Canceled):
		msg, code = "pipeline run canceled", codeRunCanceled
	case errors.Is(err, context.DeadlineExceeded):
		msg, code = "pipeline run timed out", codeRunTimedOut
	}
	return goerrors.Wrap(err, goerrors.CategoryCommand, msg).WithTextCode(code)
}

func wrapExecuteError(err error) error {
	if err == nil || goerrors.IsWrapped(err) {
		return err
	}
	return goerrors.Wrap(err, goerrors.CategoryCommand, "pipeline run failed").
		WithTextCode(codeRunFailed)
}
