package sourcemap

import "srcmap/internal/common"

// Payload is the decoded JSON (or YAML) form of a source map document.
//
// Sources and Mappings are required unless Sections is set. A nil Sources
// slice or nil Mappings pointer means the field was absent.
type Payload struct {
	Version        int       `json:"version"                  yaml:"version"`
	File           string    `json:"file,omitempty"           yaml:"file,omitempty"`
	SourceRoot     string    `json:"sourceRoot,omitempty"     yaml:"sourceRoot,omitempty"`
	Sources        []string  `json:"sources"                  yaml:"sources"`
	SourcesContent []*string `json:"sourcesContent,omitempty" yaml:"sourcesContent,omitempty"`
	Names          []string  `json:"names,omitempty"          yaml:"names,omitempty"`
	Mappings       *string   `json:"mappings"                 yaml:"mappings"`
	Sections       []Section `json:"sections,omitempty"       yaml:"sections,omitempty"`
}

// Section is one sub-map of an index map, anchored at Offset in the
// generated artifact.
type Section struct {
	Offset Offset   `json:"offset"        yaml:"offset"`
	Map    *Payload `json:"map,omitempty" yaml:"map,omitempty"`
	// URL references an external map. Only inline maps are supported; a
	// section with URL and no Map is rejected.
	URL string `json:"url,omitempty" yaml:"url,omitempty"`
}

// Offset is a zero-based generated position.
type Offset struct {
	Line   int `json:"line"   yaml:"line"`
	Column int `json:"column" yaml:"column"`
}

// content returns the inline content of source i, or "" when absent.
func (p *Payload) content(i int) string {
	if !common.IsIndex(i, len(p.SourcesContent)) || p.SourcesContent[i] == nil {
		return ""
	}

	return *p.SourcesContent[i]
}

// name returns names[i] when i is in range.
func (p *Payload) name(i int) string {
	if !common.IsIndex(i, len(p.Names)) {
		return ""
	}

	return p.Names[i]
}
