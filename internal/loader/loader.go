package loader

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"path"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"srcmap/sourcemap"
)

const defaultVersion = 3

var xssiPrefix = []byte(")]}")

// StripXSSI removes a leading ")]}" guard line, including its line break.
func StripXSSI(data []byte) []byte {
	if !bytes.HasPrefix(data, xssiPrefix) {
		return data
	}

	i := bytes.IndexByte(data, '\n')
	if i < 0 {
		return nil
	}

	return data[i+1:]
}

// Parse decodes a JSON source map, stripping any XSSI guard first.
func Parse(data []byte) (*sourcemap.Payload, error) {
	var p sourcemap.Payload

	if err := json.Unmarshal(StripXSSI(data), &p); err != nil {
		return nil, fmt.Errorf("failed to parse source map JSON: %w", err)
	}

	applyDefaults(&p)

	return &p, nil
}

// ParseYAML decodes a source map written as YAML, using the same field names
// as the JSON form.
func ParseYAML(data []byte) (*sourcemap.Payload, error) {
	var p sourcemap.Payload

	if err := yaml.Unmarshal(StripXSSI(data), &p); err != nil {
		return nil, fmt.Errorf("failed to parse source map YAML: %w", err)
	}

	applyDefaults(&p)

	return &p, nil
}

// applyDefaults fills in default values for optional fields.
func applyDefaults(p *sourcemap.Payload) {
	if p.Version == 0 {
		p.Version = defaultVersion
	}

	for i := range p.Sections {
		if p.Sections[i].Map != nil {
			applyDefaults(p.Sections[i].Map)
		}
	}
}

// isYAML reports whether name looks like a YAML file.
func isYAML(name string) bool {
	switch strings.ToLower(filepath.Ext(name)) {
	case ".yaml", ".yml":
		return true
	default:
		return false
	}
}

// LoadFile loads and parses a source map file. Files ending in .yaml or .yml
// are decoded as YAML, anything else as JSON.
func LoadFile(name string) (*sourcemap.Payload, error) {
	data, err := os.ReadFile(name)
	if err != nil {
		return nil, fmt.Errorf("failed to read source map %s: %w", name, err)
	}

	if isYAML(name) {
		return ParseYAML(data)
	}

	return Parse(data)
}

// ReadPayload reads the payload behind mapURL, which is either a data: URL
// or a local file path.
func ReadPayload(mapURL string) (*sourcemap.Payload, error) {
	if !IsDataURL(mapURL) {
		return LoadFile(mapURL)
	}

	data, err := DecodeDataURL(mapURL)
	if err != nil {
		return nil, err
	}

	return Parse(data)
}

// BaseURL returns the URL that relative sources are resolved against. Maps
// inlined as data: URLs resolve against the compiled artifact instead.
func BaseURL(mapURL, compiledURL string) string {
	if IsDataURL(mapURL) {
		return compiledURL
	}

	return mapURL
}

// DefaultCompiledURL guesses the compiled artifact URL of a map: its "file"
// field next to the map, or the map URL without a ".map" suffix.
func DefaultCompiledURL(mapURL, file string) string {
	if IsDataURL(mapURL) {
		return file
	}

	if file != "" {
		if strings.Contains(file, "://") || path.IsAbs(file) {
			return file
		}

		return path.Join(path.Dir(filepath.ToSlash(mapURL)), file)
	}

	return strings.TrimSuffix(mapURL, ".map")
}

// Load reads mapURL and decodes it into a Document. An empty compiledURL is
// replaced by DefaultCompiledURL.
func Load(mapURL, compiledURL string) (*sourcemap.Document, error) {
	_, doc, err := LoadPayload(mapURL, compiledURL)
	return doc, err
}

// LoadPayload is Load that also returns the decoded payload.
func LoadPayload(mapURL, compiledURL string) (*sourcemap.Payload, *sourcemap.Document, error) {
	p, err := ReadPayload(mapURL)
	if err != nil {
		return nil, nil, err
	}

	if compiledURL == "" {
		compiledURL = DefaultCompiledURL(mapURL, p.File)
	}

	doc, err := sourcemap.New(compiledURL, BaseURL(mapURL, compiledURL), p)
	if err != nil {
		return p, nil, fmt.Errorf("failed to decode source map %s: %w", displayName(mapURL), err)
	}

	return p, doc, nil
}

// displayName shortens data: URLs for error messages.
func displayName(mapURL string) string {
	const maxLen = 40

	if IsDataURL(mapURL) && len(mapURL) > maxLen {
		return mapURL[:maxLen] + "..."
	}

	return mapURL
}
