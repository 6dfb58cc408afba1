// Package sourcemap decodes source map v3 documents and answers position
// queries in both directions.
//
// A Document is built once from a decoded Payload and is read-only
// afterwards:
//
//   - FindEntry maps a generated (line, column) to the entry in effect there.
//   - FirstSourceLineMapping maps a (source URL, line) back to the first
//     generated position attributed to that line.
//
// Coordinates are zero-based. Multi-section ("index") maps are supported when
// every section embeds its map inline.
package sourcemap
