package telemetry

import (
	"context"

	"github.com/petasbytes/schemafix/internal/metrics"
)

// FileEvent describes one processed file. Text content is never emitted,
// only its size features.
type FileEvent struct {
	Path     string
	Status   string
	Features metrics.Features
	Blocks   metrics.BlockStats
	Err      error
}

// EmitFileProcessed records a file_processed event.
func EmitFileProcessed(ctx context.Context, ev FileEvent) {
	if !ObserveEnabled() {
		return
	}
	runID, _ := RunIDFromContext(ctx)
	fields := map[string]any{
		"run_id": runID,
		"path":   ev.Path,
		"status": ev.Status,
		"bytes":  ev.Features.Bytes,
		"runes":  ev.Features.Runes,
		"lines":  ev.Features.Lines,
		"blocks": ev.Blocks.Fields(),
		"error":  nil,
	}
	if ev.Err != nil {
		fields["error"] = ev.Err.Error()
	}
	Emit("file_processed", fields)
}

// EmitRunSummary records a run_summary event.
func EmitRunSummary(ctx context.Context, root string, total, fixed, failed int, blocks metrics.BlockStats) {
	if !ObserveEnabled() {
		return
	}
	runID, _ := RunIDFromContext(ctx)
	Emit("run_summary", map[string]any{
		"run_id": runID,
		"root":   root,
		"total":  total,
		"fixed":  fixed,
		"failed": failed,
		"blocks": blocks.Fields(),
	})
}
