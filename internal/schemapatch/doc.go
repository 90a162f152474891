// Package schemapatch adds a missing `additionalProperties: false,` line to
// object schemas embedded in generated JavaScript sources.
//
// The pass is textual. Input is split on "\n", scanned line by line, and
// joined back, so quoting, spacing and comments outside an inserted line are
// preserved byte for byte.
//
// A block opens on any line containing `type: 'object'` or `type: "object"`.
// Brace depth starts at that line's own balance of '{' over '}' and is
// updated line by line over a bounded lookahead window (DefaultWindow lines,
// marker line included). Within the window:
//   - `properties:` seen while depth > 0 marks the block as declaring fields;
//   - `additionalProperties:` seen anywhere marks it as already compliant;
//   - the first line that brings depth back to zero closes the block.
//
// A closed block that declares fields and is not compliant gets the
// declaration inserted right before its closing line, indented four spaces
// past that line. Lines inside a patched block are copied without being
// rescanned; every other block resumes scanning on the line after its marker.
//
// Strings or comments containing braces, and markers on a line whose own
// braces already balance, are handled only as well as brace counting allows.
package schemapatch
