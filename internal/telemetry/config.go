package telemetry

import (
	"os"
)

const (
	envObserve      = "SCHEMAFIX_OBSERVE_JSON"
	envArtifactsDir = "SCHEMAFIX_ARTIFACTS_DIR"

	defaultArtifactsDir = ".schemafix"
)

var (
	observeEnabled bool
	artifactsDir   = defaultArtifactsDir
)

func init() {
	// Read once at process start. Mid-run environment changes have no effect,
	// except the explicit test override in ObserveEnabled.
	observeEnabled = os.Getenv(envObserve) == "1"
	if d := os.Getenv(envArtifactsDir); d != "" {
		artifactsDir = d
	}
}

// ObserveEnabled reports whether JSONL emission is on.
func ObserveEnabled() bool {
	// Preserve the startup value, but allow tests to enable mid-run via env override.
	if os.Getenv(envObserve) == "1" {
		return true
	}
	return observeEnabled
}

// ArtifactsDir returns the directory events.jsonl is appended to, as
// configured at startup.
func ArtifactsDir() string {
	return artifactsDir
}
