// Package match ranks source URLs by similarity so that a query for an
// unknown source can be answered with "did you mean" suggestions.
//
// Key functions:
//   - Levenshtein: computes edit distance between strings
//   - NormalizeURL: reduces a source URL to a comparable path
//   - Suggest: ranks candidate URLs against a query
package match
