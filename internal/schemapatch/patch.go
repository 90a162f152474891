package schemapatch

import (
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/petasbytes/schemafix/internal/metrics"
)

// Declaration is the line body inserted into non-compliant blocks.
const Declaration = "additionalProperties: false,"

// Result is the outcome of patching one text.
type Result struct {
	Text    string
	Changed bool
	Stats   metrics.BlockStats
	// Insertions holds the 1-based line numbers, in Text, of inserted lines.
	Insertions []int
}

// Patcher rewrites object schemas. The zero value uses DefaultWindow.
type Patcher struct {
	Window int
}

// AddAdditionalProperties patches content with the default window.
func AddAdditionalProperties(content string) Result {
	return Patcher{}.Patch(content)
}

// Patch runs one pass over content and returns the possibly modified text.
// Text without an object marker is returned as is without being split.
func (p Patcher) Patch(content string) Result {
	if !HasObjectMarker(content) {
		return Result{Text: content}
	}
	window := p.Window
	if window <= 0 {
		window = DefaultWindow
	}

	lines := strings.Split(content, "\n")
	out := make([]string, 0, len(lines)+8)
	var res Result

	for i := 0; i < len(lines); {
		line := lines[i]
		out = append(out, line)

		if HasObjectMarker(line) {
			b := scanBlock(lines, i, window)
			outcome := b.Outcome()
			res.Stats.Record(outcome)

			if outcome == metrics.OutcomePatched {
				out = append(out, lines[i+1:b.End]...)
				closing := lines[b.End]
				out = append(out, declarationFor(closing), closing)
				res.Insertions = append(res.Insertions, len(out)-1)
				i = b.End + 1
				continue
			}
		}
		i++
	}

	res.Text = strings.Join(out, "\n")
	res.Changed = res.Text != content
	return res
}

// declarationFor indents Declaration four spaces past the closing line and
// copies its CRLF ending, if any.
func declarationFor(closing string) string {
	trimmed := strings.TrimLeftFunc(closing, unicode.IsSpace)
	indent := utf8.RuneCountInString(closing[:len(closing)-len(trimmed)])
	decl := strings.Repeat(" ", indent+4) + Declaration
	if strings.HasSuffix(closing, "\r") {
		decl += "\r"
	}
	return decl
}
