// Package diagnostic provides structured errors, warnings and notes produced
// while loading and inspecting source maps.
//
// Key capabilities:
//   - Classification of decode and load failures into stable codes
//   - Per-document warnings from structural inspection
//   - Suggestions for near-miss source URLs
package diagnostic
