package telemetry

import "testing"

// UseArtifactsDir redirects emission to dir until t finishes.
func UseArtifactsDir(t testing.TB, dir string) {
	t.Helper()
	prev := artifactsDir
	artifactsDir = dir
	t.Cleanup(func() { artifactsDir = prev })
}
