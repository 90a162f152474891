package runner

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/petasbytes/schemafix/internal/fsops"
	"github.com/petasbytes/schemafix/internal/metrics"
	"github.com/petasbytes/schemafix/internal/safety"
	"github.com/petasbytes/schemafix/internal/schemapatch"
	"github.com/petasbytes/schemafix/internal/telemetry"
	"github.com/petasbytes/schemafix/report"
)

// DefaultRoot and DefaultExt reproduce the historical hardcoded target.
const (
	DefaultRoot = "src/tools"
	DefaultExt  = ".js"
)

// ErrRootNotFound is returned when the root directory does not exist.
var ErrRootNotFound = errors.New("root directory not found")

// Verifier vets a patch before it is written.
type Verifier interface {
	VerifyPatch(path, before, after string) error
}

// Runner patches every file with extension Ext under Root, one file at a time.
// The zero Patcher uses schemapatch.DefaultWindow; a nil Verifier writes
// every changed file.
type Runner struct {
	Root     string
	Ext      string
	Patcher  schemapatch.Patcher
	Verifier Verifier // optional

	console *console
}

// New returns a Runner for root that prints to out and errOut.
func New(root string, out, errOut io.Writer) *Runner {
	return &Runner{Root: root, Ext: DefaultExt, console: newConsole(out, errOut)}
}

// Run scans the root, patches every candidate file and prints the summary
// line. The returned error is non-nil only for a missing root, a failed walk,
// or cancellation; in the last case the partial summary is returned too.
// A root that exists but is not a directory holds no files.
func (r *Runner) Run(ctx context.Context) (*report.Summary, error) {
	ctx, runID := telemetry.EnsureRunID(ctx)

	sb, files, err := r.scan()
	if err != nil {
		return nil, err
	}

	sum := &report.Summary{RunID: runID, Root: r.Root}
	for _, rel := range files {
		if err := ctx.Err(); err != nil {
			return sum, err
		}
		sum.Add(r.processFile(ctx, sb, rel))
	}

	r.con().summary(sum.Total, sum.Fixed)
	telemetry.EmitRunSummary(ctx, r.Root, sum.Total, sum.Fixed, sum.Failed, sum.Blocks)
	return sum, nil
}

func (r *Runner) scan() (*fsops.Sandbox, []string, error) {
	sb, err := fsops.Open(r.Root)
	switch {
	case errors.Is(err, os.ErrNotExist):
		return nil, nil, fmt.Errorf("%w: %s", ErrRootNotFound, r.Root)
	case errors.Is(err, safety.ErrRootNotDir):
		return nil, nil, nil
	case err != nil:
		return nil, nil, err
	}

	ext := r.Ext
	if ext == "" {
		ext = DefaultExt
	}
	files, err := sb.WalkFiles(ext)
	if err != nil {
		return nil, nil, fmt.Errorf("scan %s: %w", r.Root, err)
	}
	return sb, files, nil
}

// processFile never fails the run: errors are printed and recorded.
func (r *Runner) processFile(ctx context.Context, sb *fsops.Sandbox, rel string) report.File {
	display := filepath.Join(r.Root, rel)
	f := report.File{Path: display}

	content, err := sb.ReadFile(rel)
	if err != nil {
		return r.fail(ctx, f, err, metrics.Features{})
	}
	features := metrics.CountFeatures(content)

	if !schemapatch.HasObjectMarker(content) {
		f.Status = report.StatusSkipped
		r.emit(ctx, f, features, nil)
		return f
	}

	res := r.Patcher.Patch(content)
	f.Blocks = res.Stats
	if !res.Changed {
		f.Status = report.StatusUnchanged
		r.emit(ctx, f, features, nil)
		return f
	}

	if r.Verifier != nil {
		if err := r.Verifier.VerifyPatch(rel, content, res.Text); err != nil {
			return r.fail(ctx, f, err, features)
		}
	}
	if err := sb.WriteFile(rel, res.Text); err != nil {
		return r.fail(ctx, f, err, features)
	}

	f.Status = report.StatusFixed
	f.Insertions = res.Insertions
	r.con().fixed(display)
	r.emit(ctx, f, metrics.CountFeatures(res.Text), nil)
	return f
}

func (r *Runner) con() *console {
	if r.console == nil {
		r.console = newConsole(nil, nil)
	}
	return r.console
}

func (r *Runner) fail(ctx context.Context, f report.File, err error, features metrics.Features) report.File {
	f.Status = report.StatusError
	f.Error = err.Error()
	r.con().fileError(f.Path, err)
	r.emit(ctx, f, features, err)
	return f
}

func (r *Runner) emit(ctx context.Context, f report.File, features metrics.Features, err error) {
	telemetry.EmitFileProcessed(ctx, telemetry.FileEvent{
		Path:     f.Path,
		Status:   string(f.Status),
		Features: features,
		Blocks:   f.Blocks,
		Err:      err,
	})
}
