package toolgen

import (
	_ "embed"
	"fmt"
	"io"
	"os"
	"strings"
	"text/template"
	"unicode"
)

//go:embed flattened.rs.tmpl
var defaultTemplate string

// Funcs are available to every template.
var Funcs = template.FuncMap{
	"pascal": Pascal,
}

// DefaultTemplate returns the embedded flattened-handler template.
func DefaultTemplate() *template.Template {
	return template.Must(template.New("flattened").Funcs(Funcs).Parse(defaultTemplate))
}

// ParseTemplateFile parses a custom template. The table is passed as its data.
func ParseTemplateFile(path string) (*template.Template, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	tmpl, err := template.New(path).Funcs(Funcs).Option("missingkey=error").Parse(string(b))
	if err != nil {
		return nil, fmt.Errorf("parse template: %w", err)
	}
	return tmpl, nil
}

// Render executes tmpl with t. A nil tmpl uses DefaultTemplate.
func Render(w io.Writer, t *Table, tmpl *template.Template) error {
	if tmpl == nil {
		tmpl = DefaultTemplate()
	}
	if err := tmpl.Execute(w, t); err != nil {
		return fmt.Errorf("render: %w", err)
	}
	return nil
}

// Pascal turns a snake_case name into PascalCase. A letter is upper-cased
// when it follows a non-letter and lower-cased otherwise, then underscores
// are dropped: "source_manager" -> "SourceManager", "v2_api" -> "V2Api".
func Pascal(name string) string {
	var b strings.Builder
	b.Grow(len(name))
	prevLetter := false
	for _, r := range name {
		if unicode.IsLetter(r) {
			if prevLetter {
				b.WriteRune(unicode.ToLower(r))
			} else {
				b.WriteRune(unicode.ToUpper(r))
			}
			prevLetter = true
			continue
		}
		prevLetter = false
		if r != '_' {
			b.WriteRune(r)
		}
	}
	return b.String()
}
