//go:build cgo

package syntax

import (
	"fmt"
	"strings"
	"unsafe"

	tree_sitter "github.com/tree-sitter/go-tree-sitter"
	tree_sitter_typescript "github.com/tree-sitter/tree-sitter-typescript/bindings/go"
)

// Checker parses sources with tree-sitter.
type Checker struct {
	languages map[string]unsafe.Pointer
}

// NewChecker returns a Checker for the JavaScript/TypeScript family.
func NewChecker() *Checker {
	return &Checker{
		languages: map[string]unsafe.Pointer{
			"typescript": tree_sitter_typescript.LanguageTypescript(),
			"tsx":        tree_sitter_typescript.LanguageTSX(),
		},
	}
}

// Available reports whether parsing is compiled in.
func (c *Checker) Available() bool { return true }

// Errors returns every ERROR or MISSING node in the parse of code.
func (c *Checker) Errors(code, language string) ([]SyntaxError, error) {
	if strings.TrimSpace(code) == "" {
		return nil, nil
	}
	lang, ok := c.languages[language]
	if !ok {
		return nil, fmt.Errorf("language not supported for validation: %s", language)
	}

	parser := tree_sitter.NewParser()
	defer parser.Close()
	if err := parser.SetLanguage(tree_sitter.NewLanguage(lang)); err != nil {
		return nil, fmt.Errorf("set parser language: %w", err)
	}

	source := []byte(code)
	tree := parser.Parse(source, nil)
	if tree == nil {
		return nil, fmt.Errorf("parse: parser returned nil tree")
	}
	defer tree.Close()

	root := tree.RootNode()
	if root == nil || !root.HasError() {
		return nil, nil
	}
	return collectErrors(root, source), nil
}

func collectErrors(root *tree_sitter.Node, source []byte) []SyntaxError {
	var errs []SyntaxError
	var walk func(n *tree_sitter.Node)
	walk = func(n *tree_sitter.Node) {
		if n == nil {
			return
		}
		if n.IsError() || n.IsMissing() {
			pos := n.StartPosition()
			errs = append(errs, SyntaxError{
				Line:    int(pos.Row) + 1,
				Column:  int(pos.Column) + 1,
				Message: describe(n, source),
			})
		}
		for i := uint(0); i < n.ChildCount(); i++ {
			walk(n.Child(i))
		}
	}
	walk(root)

	if len(errs) == 0 {
		pos := root.StartPosition()
		errs = append(errs, SyntaxError{
			Line:    int(pos.Row) + 1,
			Column:  int(pos.Column) + 1,
			Message: "syntax error: parsing failed with error recovery",
		})
	}
	return errs
}

func describe(n *tree_sitter.Node, source []byte) string {
	if n.IsMissing() {
		return fmt.Sprintf("missing %s", n.Kind())
	}
	start, end := n.StartByte(), n.EndByte()
	if start >= end || end > uint(len(source)) {
		return "syntax error"
	}
	text := string(source[start:end])
	if len(text) > 50 {
		text = text[:50] + "..."
	}
	return fmt.Sprintf("syntax error near '%s'", strings.ReplaceAll(text, "\n", "\\n"))
}
