package commands

import (
	"fmt"

	validation "github.com/go-ozzo/ozzo-validation/v4"

	"github.com/creatorwire/creatorwire/internal/model"
)

const (
	syncMessageType  = "content.sync"
	pruneMessageType = "content.prune"
	regenMessageType = "content.regen"
)

// SyncCommand runs the full content pipeline: load, validate, reconcile,
// render. Types narrows the run; empty means every type in dependency order.
type SyncCommand struct {
	// Types limits the sync to the named content types.
	Types []string `json:"types,omitempty"`
	// ForceRender re-renders every page even when nothing changed.
	ForceRender bool `json:"force_render,omitempty"`
}

// Type implements command.Message.
func (SyncCommand) Type() string { return syncMessageType }

// Validate rejects unknown content types before the handler runs.
func (cmd SyncCommand) Validate() error {
	return validation.ValidateStruct(&cmd,
		validation.Field(&cmd.Types, validation.By(validateContentTypes)),
	)
}

// PruneCommand deletes rows whose source files no longer exist. This is the
// only operation that removes records; sync never does.
type PruneCommand struct {
	// Types limits the prune to the named content types.
	Types []string `json:"types,omitempty"`
}

// Type implements command.Message.
func (PruneCommand) Type() string { return pruneMessageType }

// Validate rejects unknown content types before the handler runs.
func (cmd PruneCommand) Validate() error {
	return validation.ValidateStruct(&cmd,
		validation.Field(&cmd.Types, validation.By(validateContentTypes)),
	)
}

// RegenCommand re-renders every page from current store state without
// touching source files or the database.
type RegenCommand struct{}

// Type implements command.Message.
func (RegenCommand) Type() string { return regenMessageType }

// Validate implements command.Message; regen takes no input.
func (RegenCommand) Validate() error { return nil }

func validateContentTypes(value any) error {
	types, ok := value.([]string)
	if !ok {
		return validation.NewError("content.types_invalid", "types must be a string list")
	}
	for _, contentType := range types {
		if !model.KnownType(contentType) {
			return validation.NewError("content.unknown_type",
				fmt.Sprintf("unknown content type %q", contentType))
		}
	}
	return nil
}
