package fsops

import (
	"os"
	"path/filepath"

	"github.com/petasbytes/schemafix/internal/safety"
)

// WriteFile replaces the content of a file addressed by a path relative to the
// root. An existing file keeps its permission bits; parent directories are
// created as needed.
func (s *Sandbox) WriteFile(relPath, content string) error {
	absPath, err := safety.ValidateWritePath(s.root, relPath)
	if err != nil {
		return err
	}

	if err := os.MkdirAll(filepath.Dir(absPath), 0o755); err != nil {
		return err
	}
	return os.WriteFile(absPath, []byte(content), 0o644)
}
