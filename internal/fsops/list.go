package fsops

import (
	"io/fs"
	"path/filepath"
	"strings"

	"github.com/petasbytes/schemafix/internal/safety"
)

// WalkFiles recursively lists regular files under the root whose extension
// equals ext (case-sensitive, e.g. ".js"). Paths are relative to the root and
// come back in filepath.WalkDir order. Directories refused by the read policy
// are not descended.
func (s *Sandbox) WalkFiles(ext string) ([]string, error) {
	var out []string
	err := filepath.WalkDir(s.root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			// Unreadable subtrees are skipped, not fatal.
			if path == s.root {
				return err
			}
			if d != nil && d.IsDir() {
				return filepath.SkipDir
			}
			return nil
		}
		rel, err := filepath.Rel(s.root, path)
		if err != nil {
			return err
		}
		if d.IsDir() {
			if rel != "." && safety.SkipDir(rel) {
				return filepath.SkipDir
			}
			return nil
		}
		if !d.Type().IsRegular() {
			return nil
		}
		if strings.HasSuffix(d.Name(), ext) {
			out = append(out, rel)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}
