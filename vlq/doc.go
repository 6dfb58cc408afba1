// Package vlq implements the base64 variable-length quantity encoding used by
// the "mappings" field of source map v3 documents.
//
// Each base64 digit carries five payload bits, least significant group first,
// and a continuation bit (bit 5). Bit 0 of the accumulated value is the sign.
//
//	A -> 0, C -> 1, D -> -1, gB -> 16, 2H -> 123
package vlq
