// Package syntax checks that a patch did not break the file it touched.
//
// With cgo, sources are parsed with tree-sitter (the TypeScript grammar also
// covers plain JavaScript). Without cgo the checker reports itself as
// unavailable and accepts every patch.
package syntax

import (
	"fmt"
	"path/filepath"
	"strings"
)

// SyntaxError is a single error node found in a parse tree.
type SyntaxError struct {
	Line    int    `json:"line"`
	Column  int    `json:"column"`
	Message string `json:"message"`
}

// RegressionError reports that the patched text parses worse than the original.
type RegressionError struct {
	Path   string
	Before int
	After  []SyntaxError
}

func (e *RegressionError) Error() string {
	msg := fmt.Sprintf("patch introduces syntax errors (%d before, %d after)", e.Before, len(e.After))
	if len(e.After) > 0 {
		first := e.After[0]
		msg += fmt.Sprintf(": line %d col %d: %s", first.Line, first.Column, first.Message)
	}
	return msg
}

// languageFor maps a file extension to a grammar name, or "" when unsupported.
func languageFor(path string) string {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".js", ".mjs", ".cjs", ".ts", ".mts", ".cts":
		return "typescript"
	case ".jsx", ".tsx":
		return "tsx"
	default:
		return ""
	}
}

// VerifyPatch parses before and after and fails with a RegressionError when
// after has more syntax errors than before. Unsupported extensions pass.
func (c *Checker) VerifyPatch(path, before, after string) error {
	lang := languageFor(path)
	if lang == "" || !c.Available() {
		return nil
	}
	was, err := c.Errors(before, lang)
	if err != nil {
		return err
	}
	now, err := c.Errors(after, lang)
	if err != nil {
		return err
	}
	if len(now) > len(was) {
		return &RegressionError{Path: path, Before: len(was), After: now}
	}
	return nil
}
