// Package loader turns raw source map bytes into decoded documents.
//
// It performs everything the sourcemap package leaves to its caller: reading
// files and data: URLs, stripping the ")]}" XSSI guard line, JSON or YAML
// decoding, picking the base URL for source resolution, and dumping a decoded
// document back out as YAML.
package loader
