// Package toolgen renders flattened MCP tool handlers from a table of tool
// definitions.
//
// Includes:
//   - Table, Tool, Param: the tool table, loaded from YAML (tools.yaml is embedded as the default).
//   - Render: text/template rendering of one #[tool] handler per tool.
//   - InputSchema, TableSchema: JSON Schema derived from the table and from the Go types.
//   - Manifest, MarshalManifest, VerifyStrict: Anthropic tool manifest whose input schemas reject unknown keys.
package toolgen
