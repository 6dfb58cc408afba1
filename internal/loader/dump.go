package loader

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"srcmap/sourcemap"
)

const filePerm = 0o644

// Dump is the YAML form of a decoded Document.
type Dump struct {
	CompiledURL string       `yaml:"compiled_url"`
	URL         string       `yaml:"url"`
	File        string       `yaml:"file,omitempty"`
	Sources     []DumpSource `yaml:"sources"`
	Mappings    []DumpEntry  `yaml:"mappings"`
}

// DumpSource is one resolved source URL.
type DumpSource struct {
	URL    string `yaml:"url"`
	Inline bool   `yaml:"inline"`
}

// DumpEntry is one decoded mapping entry.
type DumpEntry struct {
	Line     int           `yaml:"line"`
	Column   int           `yaml:"column"`
	Original *DumpPosition `yaml:"original,omitempty"`
}

// DumpPosition is the original position of a DumpEntry.
type DumpPosition struct {
	Source string `yaml:"source"`
	Line   int    `yaml:"line"`
	Column int    `yaml:"column"`
	Name   string `yaml:"name,omitempty"`
}

// NewDump converts doc into its dump form.
func NewDump(doc *sourcemap.Document) *Dump {
	d := &Dump{
		CompiledURL: doc.CompiledURL(),
		URL:         doc.URL(),
		File:        doc.File(),
	}

	for _, src := range doc.Sources() {
		_, inline := doc.SourceContent(src)
		d.Sources = append(d.Sources, DumpSource{URL: src, Inline: inline})
	}

	for _, e := range doc.Mappings() {
		de := DumpEntry{Line: e.GeneratedLine, Column: e.GeneratedColumn}
		if e.HasSource() {
			de.Original = &DumpPosition{
				Source: e.SourceURL,
				Line:   e.SourceLine,
				Column: e.SourceColumn,
				Name:   e.Name,
			}
		}

		d.Mappings = append(d.Mappings, de)
	}

	return d
}

// Marshal serializes a decoded Document to YAML.
func Marshal(doc *sourcemap.Document) ([]byte, error) {
	return yaml.Marshal(NewDump(doc))
}

// WriteFile writes the YAML dump of doc to the given path.
func WriteFile(doc *sourcemap.Document, name string) error {
	data, err := Marshal(doc)
	if err != nil {
		return fmt.Errorf("failed to marshal source map dump: %w", err)
	}

	if err := os.WriteFile(name, data, filePerm); err != nil {
		return fmt.Errorf("failed to write dump file %s: %w", name, err)
	}

	return nil
}
