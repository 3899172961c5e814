package pipeline

import (
	"fmt"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/google/uuid"

	"github.com/creatorwire/creatorwire/internal/model"
)

// TypeReport tallies reconcile outcomes for one content type.
type TypeReport struct {
	Created   int `json:"created"`
	Updated   int `json:"updated"`
	Unchanged int `json:"unchanged"`
	Failed    int `json:"failed"`
}

// FileFailure records a source file that could not be processed. One bad
// file never aborts the run; it lands here instead.
type FileFailure struct {
	ContentType string `json:"content_type"`
	Path        string `json:"path"`
	Err         error  `json:"-"`
}

// Report aggregates the outcome of one pipeline run.
type Report struct {
	RunID     uuid.UUID              `json:"run_id"`
	StartedAt time.Time              `json:"started_at"`
	Duration  time.Duration          `json:"duration"`
	Types     map[string]*TypeReport `json:"types"`
	Failures  []FileFailure          `json:"failures"`
	Warnings  []string               `json:"warnings"`
	Pages     []string               `json:"pages"`
}

func newReport() *Report {
	return &Report{
		RunID:     uuid.New(),
		StartedAt: time.Now().UTC(),
		Types:     map[string]*TypeReport{},
	}
}

func (r *Report) typeReport(contentType string) *TypeReport {
	tr, ok := r.Types[contentType]
	if !ok {
		tr = &TypeReport{}
		r.Types[contentType] = tr
	}
	return tr
}

// Changed reports whether any record was created or updated.
func (r *Report) Changed() bool {
	for _, tr := range r.Types {
		if tr.Created > 0 || tr.Updated > 0 {
			return true
		}
	}
	return false
}

// Failed reports whether any file failed.
func (r *Report) Failed() bool {
	return len(r.Failures) > 0
}

// String renders the run summary as a table, one row per content type.
func (r *Report) String() string {
	var buf strings.Builder
	fmt.Fprintf(&buf, "run %s finished in %s\n\n", r.RunID, r.Duration.Round(time.Millisecond))

	w := tabwriter.NewWriter(&buf, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "TYPE\tCREATED\tUPDATED\tUNCHANGED\tFAILED")
	for _, contentType := range model.Types() {
		tr, ok := r.Types[contentType]
		if !ok {
			continue
		}
		fmt.Fprintf(w, "%s\t%d\t%d\t%d\t%d\n",
			contentType, tr.Created, tr.Updated, tr.Unchanged, tr.Failed)
	}
	w.Flush()

	if len(r.Pages) > 0 {
		fmt.Fprintf(&buf, "\n%d pages written\n", len(r.Pages))
	}
	if len(r.Warnings) > 0 {
		fmt.Fprintf(&buf, "\n%d warnings\n", len(r.Warnings))
		for _, warning := range r.Warnings {
			fmt.Fprintf(&buf, "  warn: %s\n", warning)
		}
	}
	if len(r.Failures) > 0 {
		fmt.Fprintf(&buf, "\n%d failures\n", len(r.Failures))
		for _, failure := range r.Failures {
			fmt.Fprintf(&buf, "  fail: %s %s: %v\n", failure.ContentType, failure.Path, failure.Err)
		}
	}
	return buf.String()
}

// PruneReport aggregates an explicit prune pass across content types.
type PruneReport struct {
	RunID   uuid.UUID           `json:"run_id"`
	Removed map[string][]string `json:"removed"`
	Skipped map[string][]string `json:"skipped"`
}

func newPruneReport() *PruneReport {
	return &PruneReport{
		RunID:   uuid.New(),
		Removed: map[string][]string{},
		Skipped: map[string][]string{},
	}
}

// String renders the prune summary.
func (r *PruneReport) String() string {
	var buf strings.Builder
	fmt.Fprintf(&buf, "prune %s\n", r.RunID)
	for _, contentType := range model.Types() {
		for _, slug := range r.Removed[contentType] {
			fmt.Fprintf(&buf, "  removed %s/%s\n", contentType, slug)
		}
		for _, slug := range r.Skipped[contentType] {
			fmt.Fprintf(&buf, "  skipped %s/%s (still referenced)\n", contentType, slug)
		}
	}
	return buf.String()
}
