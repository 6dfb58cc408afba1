// Package extract writes the inline sources of a source map to disk.
package extract

import (
	"fmt"
	"net/url"
	"os"
	"path"
	"path/filepath"
	"strings"

	"srcmap/sourcemap"
)

// File permission constants.
const (
	dirPerm  = 0o755
	filePerm = 0o644
)

// File is one extracted source.
type File struct {
	URL string
	// Path is relative to the output directory, slash-separated.
	Path string
}

// WriteSources writes every source of doc that has inline content below
// outputDir, creating directories as needed, and returns what was written in
// source order.
func WriteSources(doc *sourcemap.Document, outputDir string) ([]File, error) {
	err := os.MkdirAll(outputDir, dirPerm)
	if err != nil {
		return nil, fmt.Errorf("creating output directory: %w", err)
	}

	names := newNamer()

	var files []File

	for _, src := range doc.Sources() {
		content, ok := doc.SourceContent(src)
		if !ok {
			continue
		}

		rel := names.unique(OutputPath(src))
		full := filepath.Join(outputDir, filepath.FromSlash(rel))

		if err := os.MkdirAll(filepath.Dir(full), dirPerm); err != nil {
			return files, fmt.Errorf("creating directory for %s: %w", rel, err)
		}

		if err := os.WriteFile(full, []byte(content), filePerm); err != nil {
			return files, fmt.Errorf("writing file %s: %w", rel, err)
		}

		files = append(files, File{URL: src, Path: rel})
	}

	return files, nil
}

// OutputPath maps a source URL to a relative slash-separated path that
// cannot escape the output directory. Scheme-qualified URLs keep their host
// as the first path element.
func OutputPath(sourceURL string) string {
	p := strings.TrimSuffix(sourceURL, " [sm]")

	if u, err := url.Parse(p); err == nil && u.Scheme != "" && u.Opaque == "" {
		p = path.Join(u.Host, u.Path)
	}

	p = strings.TrimPrefix(path.Clean("/"+p), "/")
	if p == "" {
		return "source"
	}

	return p
}
