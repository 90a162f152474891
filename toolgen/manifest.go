package toolgen

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/anthropics/anthropic-sdk-go"
	"github.com/tidwall/gjson"
	"github.com/tidwall/pretty"
	"github.com/tidwall/sjson"
)

// ErrNotStrict is returned by VerifyStrict when a tool accepts unknown keys.
var ErrNotStrict = errors.New("manifest: input schema allows additional properties")

// Manifest converts the table into Anthropic tool params.
//
// ToolInputSchemaParam only carries properties; MarshalManifest adds the
// required list and additionalProperties.
func Manifest(t *Table) []anthropic.ToolUnionParam {
	out := make([]anthropic.ToolUnionParam, 0, len(t.Tools))
	for _, tool := range t.Tools {
		p := &anthropic.ToolParam{
			Name: tool.FunctionName(),
			InputSchema: anthropic.ToolInputSchemaParam{
				Properties: InputSchema(tool).Properties,
			},
		}
		if tool.Description != "" {
			p.Description = anthropic.String(tool.Description)
		}
		out = append(out, anthropic.ToolUnionParam{OfTool: p})
	}
	return out
}

// MarshalManifest renders the manifest as indented JSON. Every input schema
// is an object with its required list and additionalProperties: false.
func MarshalManifest(t *Table) ([]byte, error) {
	b, err := json.Marshal(Manifest(t))
	if err != nil {
		return nil, fmt.Errorf("marshal manifest: %w", err)
	}
	for i, tool := range t.Tools {
		base := fmt.Sprintf("%d.input_schema.", i)
		if b, err = sjson.SetBytes(b, base+"type", "object"); err != nil {
			return nil, fmt.Errorf("set type for %s: %w", tool.Name, err)
		}
		if req := tool.Required(); len(req) > 0 {
			if b, err = sjson.SetBytes(b, base+"required", req); err != nil {
				return nil, fmt.Errorf("set required for %s: %w", tool.Name, err)
			}
		}
		if b, err = sjson.SetBytes(b, base+"additionalProperties", false); err != nil {
			return nil, fmt.Errorf("set additionalProperties for %s: %w", tool.Name, err)
		}
	}
	return pretty.Pretty(b), nil
}

// VerifyStrict checks that every tool in a JSON manifest declares
// additionalProperties: false on its input schema.
func VerifyStrict(manifest []byte) error {
	if !gjson.ValidBytes(manifest) {
		return errors.New("manifest: invalid JSON")
	}
	root := gjson.ParseBytes(manifest)
	if !root.IsArray() {
		return errors.New("manifest: expected a JSON array of tools")
	}

	var loose []string
	root.ForEach(func(key, tool gjson.Result) bool {
		if tool.Get("input_schema.additionalProperties").Type != gjson.False {
			name := tool.Get("name").String()
			if name == "" {
				name = "#" + key.String()
			}
			loose = append(loose, name)
		}
		return true
	})
	if len(loose) > 0 {
		return fmt.Errorf("%w: %s", ErrNotStrict, strings.Join(loose, ", "))
	}
	return nil
}
