package fsops

import (
	"os"
	"unicode/utf8"

	"github.com/petasbytes/schemafix/internal/safety"
)

// ReadFile reads a UTF-8 text file addressed by a path relative to the root.
// Policy violations and undecodable content come back as safety.PathError.
func (s *Sandbox) ReadFile(relPath string) (string, error) {
	absPath, err := safety.ValidateRelPath(s.root, relPath)
	if err != nil {
		return "", err // propagate PathError unchanged
	}

	fi, err := os.Stat(absPath)
	if err != nil {
		return "", err
	}
	if fi.IsDir() {
		return "", safety.PathError{Code: safety.CodeNotAFile, Message: "path is a directory"}
	}

	b, err := os.ReadFile(absPath)
	if err != nil {
		return "", err // standard error for I/O issues (not policy)
	}
	if !utf8.Valid(b) {
		return "", safety.PathError{Code: safety.CodeInvalidEncoding, Message: "file is not valid UTF-8"}
	}
	return string(b), nil
}
