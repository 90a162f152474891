package toolgen

import (
	"strings"

	"github.com/invopop/jsonschema"
)

// InputSchema derives the JSON Schema of a tool's arguments. Unknown keys are
// always rejected.
func InputSchema(t Tool) *jsonschema.Schema {
	props := jsonschema.NewProperties()
	for _, p := range t.Params {
		s := schemaForType(p.Type)
		s.Description = p.Description
		enum := p.Enum
		if len(enum) == 0 && p.Name == OperationParam {
			enum = t.Operations
		}
		for _, v := range enum {
			s.Enum = append(s.Enum, v)
		}
		props.Set(p.Name, s)
	}
	return &jsonschema.Schema{
		Type:                 "object",
		Description:          t.Description,
		Properties:           props,
		Required:             t.Required(),
		AdditionalProperties: jsonschema.FalseSchema,
	}
}

// TableSchema describes the table file format itself.
func TableSchema() *jsonschema.Schema {
	return GenerateSchema[Table]()
}

// GenerateSchema reflects T into an inline JSON Schema that rejects unknown keys.
func GenerateSchema[T any]() *jsonschema.Schema {
	reflector := jsonschema.Reflector{
		AllowAdditionalProperties: false,
		DoNotReference:            true,
	}
	var v T
	return reflector.Reflect(v)
}

// schemaForType maps a Rust argument type onto JSON Schema. Option<T> maps to
// T; optionality is expressed through the required list. Unrecognised types
// (serde_json::Value, user structs) accept any JSON value.
func schemaForType(typ string) *jsonschema.Schema {
	typ = strings.TrimSpace(typ)
	if inner, ok := generic(typ, "Option"); ok {
		return schemaForType(inner)
	}
	if inner, ok := generic(typ, "Vec"); ok {
		return &jsonschema.Schema{Type: "array", Items: schemaForType(inner)}
	}
	if args, ok := generic(strings.TrimPrefix(typ, "std::collections::"), "HashMap"); ok {
		s := &jsonschema.Schema{Type: "object"}
		if _, val, found := splitTopLevel(args); found {
			s.AdditionalProperties = schemaForType(val)
		}
		return s
	}
	switch typ {
	case "String", "&str", "str":
		return &jsonschema.Schema{Type: "string"}
	case "bool":
		return &jsonschema.Schema{Type: "boolean"}
	case "i8", "i16", "i32", "i64", "u8", "u16", "u32", "u64", "isize", "usize":
		return &jsonschema.Schema{Type: "integer"}
	case "f32", "f64":
		return &jsonschema.Schema{Type: "number"}
	}
	return &jsonschema.Schema{}
}

// generic returns the argument list of name<...>.
func generic(typ, name string) (string, bool) {
	if !strings.HasPrefix(typ, name+"<") || !strings.HasSuffix(typ, ">") {
		return "", false
	}
	return typ[len(name)+1 : len(typ)-1], true
}

// splitTopLevel splits "K, V" at the first comma outside angle brackets.
func splitTopLevel(args string) (string, string, bool) {
	depth := 0
	for i, r := range args {
		switch r {
		case '<':
			depth++
		case '>':
			depth--
		case ',':
			if depth == 0 {
				return strings.TrimSpace(args[:i]), strings.TrimSpace(args[i+1:]), true
			}
		}
	}
	return args, "", false
}
