package toolgen

import (
	"bytes"
	_ "embed"
	"errors"
	"fmt"
	"io"
	"os"
	"regexp"
	"strings"

	"gopkg.in/yaml.v3"
)

// FunctionPrefix is prepended to every tool name to form the handler name.
const FunctionPrefix = "letta_"

// OperationParam is the discriminator every tool takes as a plain string.
const OperationParam = "operation"

// Special parameter handling.
const (
	SpecialEnum = "enum" // parsed into the operation enum
	SpecialJSON = "json" // decoded from a raw JSON value into the request field type
)

//go:embed tools.yaml
var defaultTable []byte

var identRe = regexp.MustCompile(`^[a-z][a-z0-9_]*$`)

// Table is the set of tools to generate.
type Table struct {
	Tools []Tool `yaml:"tools" json:"tools" jsonschema_description:"Tools in output order."`
}

// Tool is one flattened handler.
type Tool struct {
	Name          string   `yaml:"name" json:"name" jsonschema_description:"snake_case tool module name."`
	OperationEnum string   `yaml:"operation_enum,omitempty" json:"operation_enum,omitempty" jsonschema_description:"Rust enum the operation string is parsed into."`
	Description   string   `yaml:"description,omitempty" json:"description,omitempty"`
	Operations    []string `yaml:"operations,omitempty" json:"operations,omitempty" jsonschema_description:"Accepted operation values."`
	Params        []Param  `yaml:"params" json:"params"`
}

// Param is one handler argument.
type Param struct {
	Name        string   `yaml:"name" json:"name"`
	Type        string   `yaml:"type" json:"type" jsonschema_description:"Rust type, rendered verbatim."`
	Optional    bool     `yaml:"optional,omitempty" json:"optional,omitempty"`
	Special     string   `yaml:"special,omitempty" json:"special,omitempty" jsonschema:"enum=enum,enum=json"`
	Description string   `yaml:"description,omitempty" json:"description,omitempty"`
	Enum        []string `yaml:"enum,omitempty" json:"enum,omitempty" jsonschema_description:"Allowed values; defaults to the tool operations for the operation param."`
}

// FunctionName is the generated handler name.
func (t Tool) FunctionName() string { return FunctionPrefix + t.Name }

// Required lists the non-optional parameter names in table order.
func (t Tool) Required() []string {
	var out []string
	for _, p := range t.Params {
		if !p.Optional {
			out = append(out, p.Name)
		}
	}
	return out
}

// ValidationError lists every problem found in a table.
type ValidationError struct {
	Problems []string
}

func (e *ValidationError) Error() string {
	return "invalid tool table: " + strings.Join(e.Problems, "; ")
}

// DefaultTable returns the embedded tool table.
func DefaultTable() (*Table, error) {
	return ParseTable(bytes.NewReader(defaultTable))
}

// LoadTable reads and validates a YAML (or JSON) table from path.
func LoadTable(path string) (*Table, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	t, err := ParseTable(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return t, nil
}

// ParseTable decodes a table, rejecting unknown keys, and validates it.
func ParseTable(r io.Reader) (*Table, error) {
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)

	var t Table
	if err := dec.Decode(&t); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, &ValidationError{Problems: []string{"empty table"}}
		}
		return nil, fmt.Errorf("decode table: %w", err)
	}
	if err := t.Validate(); err != nil {
		return nil, err
	}
	return &t, nil
}

// Validate checks names, uniqueness and the operation parameter.
func (t *Table) Validate() error {
	var problems []string
	add := func(format string, args ...any) { problems = append(problems, fmt.Sprintf(format, args...)) }

	if len(t.Tools) == 0 {
		add("no tools")
	}
	seen := make(map[string]bool, len(t.Tools))
	for i, tool := range t.Tools {
		where := fmt.Sprintf("tools[%d]", i)
		if !identRe.MatchString(tool.Name) {
			add("%s: name %q is not a snake_case identifier", where, tool.Name)
		} else {
			where = tool.Name
		}
		if seen[tool.Name] {
			add("%s: duplicate tool name", where)
		}
		seen[tool.Name] = true

		ops := 0
		params := make(map[string]bool, len(tool.Params))
		for j, p := range tool.Params {
			switch {
			case !identRe.MatchString(p.Name):
				add("%s.params[%d]: name %q is not a snake_case identifier", where, j, p.Name)
			case params[p.Name]:
				add("%s: duplicate param %q", where, p.Name)
			}
			params[p.Name] = true
			if strings.TrimSpace(p.Type) == "" {
				add("%s.%s: missing type", where, p.Name)
			}
			if p.Special != "" && p.Special != SpecialEnum && p.Special != SpecialJSON {
				add("%s.%s: unknown special %q", where, p.Name, p.Special)
			}
			if p.Name == OperationParam {
				ops++
				if p.Optional {
					add("%s: operation param must not be optional", where)
				}
			}
		}
		if ops != 1 {
			add("%s: want exactly one %q param, got %d", where, OperationParam, ops)
		}
	}

	if len(problems) > 0 {
		return &ValidationError{Problems: problems}
	}
	return nil
}
