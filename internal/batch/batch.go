// Package batch applies source rewrites across a configured list of
// generated application packages.
package batch

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/charmbracelet/log"

	"github.com/agentware/appforge/internal/transform"
)

// Status classifies the outcome for one application.
type Status string

const (
	StatusConverted Status = "converted"
	StatusNoTools   Status = "no_tools"
	StatusMissing   Status = "missing"
	StatusFailed    Status = "failed"
)

// Record is the per-application outcome handed to the optional Recorder.
type Record struct {
	Slug   string
	Path   string
	Status Status
	Tools  int
}

// Recorder persists per-application outcomes. A failing Recorder never
// fails the batch; errors are logged and dropped.
type Recorder interface {
	Record(ctx context.Context, rec Record) error
}

// Runner walks a slug list and converts each application's source file
// in place. Progress lines go to Out; diagnostics go to Logger.
type Runner struct {
	Root     string
	Out      io.Writer
	Logger   *log.Logger
	Recorder Recorder
}

// NewRunner creates a Runner rooted at the applications directory.
func NewRunner(root string, out io.Writer, logger *log.Logger) *Runner {
	if logger == nil {
		logger = log.New(io.Discard)
	}
	return &Runner{Root: root, Out: out, Logger: logger}
}

// AppFile resolves the conventional source path for an application slug:
// one directory per slug, containing a fixed app.go.
func (r *Runner) AppFile(slug string) string {
	return filepath.Join(r.Root, slug, "app.go")
}

// Run converts every slug in order. Missing files and tool-less files
// are reported and skipped. A parse or write failure is isolated to its
// file: the batch continues and the failures surface in the returned
// error so one malformed file cannot block the rest.
func (r *Runner) Run(ctx context.Context, slugs []string) error {
	failed := 0
	for _, slug := range slugs {
		rec := Record{Slug: slug, Path: r.AppFile(slug)}

		if _, err := os.Stat(rec.Path); err != nil {
			fmt.Fprintf(r.Out, "Could not find %s\n", rec.Path)
			rec.Status = StatusMissing
			r.record(ctx, rec)
			continue
		}

		res, err := transform.ProcessFile(rec.Path)
		rec.Tools = res.Tools
		switch {
		case err != nil:
			r.Logger.Error("conversion failed", "slug", slug, "path", rec.Path, "err", err)
			rec.Status = StatusFailed
			failed++
		case res.Tools == 0:
			fmt.Fprintf(r.Out, "No tool functions found in %s\n", rec.Path)
			rec.Status = StatusNoTools
		default:
			fmt.Fprintf(r.Out, "Successfully converted method calls in %s\n", rec.Path)
			rec.Status = StatusConverted
		}
		r.record(ctx, rec)
	}

	if failed > 0 {
		return fmt.Errorf("failed to convert %d application(s)", failed)
	}
	return nil
}

func (r *Runner) record(ctx context.Context, rec Record) {
	if r.Recorder == nil {
		return
	}
	if err := r.Recorder.Record(ctx, rec); err != nil {
		r.Logger.Warn("failed to record outcome", "slug", rec.Slug, "err", err)
	}
}
