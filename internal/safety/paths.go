// Package safety keeps file access inside the directory being patched.
package safety

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// Error codes carried by PathError.
const (
	CodeOutsideRoot     = "ERR_PATH_OUTSIDE_SANDBOX"
	CodeDeniedRead      = "ERR_DENIED_READ"
	CodeDeniedWrite     = "ERR_DENIED_WRITE"
	CodeNotAFile        = "ERR_NOT_A_FILE"
	CodeInvalidEncoding = "ERR_INVALID_ENCODING"
)

// ErrRootNotDir is returned by InitRoot when root exists but is not a directory.
var ErrRootNotDir = errors.New("root is not a directory")

// PathError is a machine-readable error for policy and content violations.
type PathError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// Error returns a compact, single-line JSON string so log lines stay greppable.
func (e PathError) Error() string {
	b, _ := json.Marshal(e)
	return string(b)
}

// InitRoot resolves root to an absolute, symlink-free directory path.
// A missing root yields an error wrapping os.ErrNotExist; an existing
// non-directory yields one wrapping ErrRootNotDir.
func InitRoot(root string) (string, error) {
	if root == "" {
		cwd, err := os.Getwd()
		if err != nil {
			return "", fmt.Errorf("getwd: %w", err)
		}
		root = cwd
	}

	abs, err := filepath.Abs(root)
	if err != nil {
		return "", fmt.Errorf("abs(root): %w", err)
	}
	fi, err := os.Stat(abs)
	if err != nil {
		return "", err
	}
	if !fi.IsDir() {
		return "", fmt.Errorf("%s: %w", abs, ErrRootNotDir)
	}

	// Resolve symlinks so later boundary checks compare like with like.
	if r, err := filepath.EvalSymlinks(abs); err == nil {
		abs = r
	}
	return abs, nil
}

// ValidateRelPath resolves relPath against absRoot and returns an absolute path
// inside the root. It rejects absolute inputs, parent traversal and symlink
// escapes, and denies reads under .git/. On violation, returns a PathError.
func ValidateRelPath(absRoot, relPath string) (string, error) {
	rel, candidate, err := resolve(absRoot, relPath)
	if err != nil {
		return "", err
	}
	if underDir(rel, ".git") {
		return "", PathError{Code: CodeDeniedRead, Message: "reads under .git/ are not allowed"}
	}
	return candidate, nil
}

// ValidateWritePath is ValidateRelPath for writes. It additionally refuses
// module manifests at any depth.
func ValidateWritePath(absRoot, relPath string) (string, error) {
	rel, candidate, err := resolve(absRoot, relPath)
	if err != nil {
		return "", err
	}
	if underDir(rel, ".git") {
		return "", PathError{Code: CodeDeniedWrite, Message: "writes under .git/ are not allowed"}
	}
	switch filepath.Base(rel) {
	case "go.mod", "go.sum", "package.json", "package-lock.json":
		return "", PathError{Code: CodeDeniedWrite, Message: "writes to module manifests are not allowed"}
	}
	return candidate, nil
}

// SkipDir reports whether a directory (relative to the root) is never walked.
func SkipDir(rel string) bool {
	return underDir(filepath.Clean(rel), ".git")
}

func resolve(absRoot, relPath string) (string, string, error) {
	if filepath.IsAbs(relPath) {
		return "", "", PathError{Code: CodeOutsideRoot, Message: "absolute paths are not allowed"}
	}

	cleaned := filepath.Clean(relPath)
	candidate := filepath.Join(absRoot, cleaned)

	// Best-effort symlink resolution: the whole candidate if it exists, otherwise
	// its parent, which still reveals escapes through a symlinked directory.
	if resolved, err := filepath.EvalSymlinks(candidate); err == nil {
		candidate = resolved
	} else {
		parent := filepath.Dir(candidate)
		if resolvedParent, err2 := filepath.EvalSymlinks(parent); err2 == nil {
			candidate = filepath.Join(resolvedParent, filepath.Base(candidate))
		}
	}

	rel, err := filepath.Rel(absRoot, candidate)
	if err != nil || rel == ".." || strings.HasPrefix(rel, ".."+string(filepath.Separator)) || filepath.IsAbs(rel) {
		return "", "", PathError{Code: CodeOutsideRoot, Message: "requested path resolves outside the root"}
	}
	return rel, candidate, nil
}

func underDir(rel, dir string) bool {
	s := filepath.ToSlash(rel)
	return s == dir || strings.HasPrefix(s, dir+"/")
}
