package sourcemap

import (
	"slices"
	"sort"
)

// Document is a decoded source map. It is safe for concurrent use.
type Document struct {
	compiledURL string
	url         string
	file        string

	mappings []Entry
	sources  []string
	content  map[string]string
	reverse  map[string]*reverseIndex
}

// New decodes payload into a Document. compiledURL identifies the generated
// artifact and mappingURL the map itself; relative source paths are resolved
// against mappingURL.
//
// Any decoding failure is returned as a *DecodeError and no Document is
// produced.
func New(compiledURL, mappingURL string, payload *Payload) (*Document, error) {
	b := newBuilder(compiledURL, mappingURL)

	if err := b.parsePayload(payload, Offset{}, nil); err != nil {
		return nil, err
	}

	return &Document{
		compiledURL: compiledURL,
		url:         mappingURL,
		file:        payload.File,
		mappings:    b.entries,
		sources:     b.sources,
		content:     b.content,
		reverse:     buildReverse(b.entries),
	}, nil
}

// CompiledURL returns the URL of the generated artifact.
func (d *Document) CompiledURL() string {
	return d.compiledURL
}

// URL returns the URL of the mapping document.
func (d *Document) URL() string {
	return d.url
}

// File returns the "file" field of the top-level payload.
func (d *Document) File() string {
	return d.file
}

// Mappings returns every entry in generated order.
func (d *Document) Mappings() []Entry {
	return slices.Clone(d.mappings)
}

// Len returns the number of entries.
func (d *Document) Len() int {
	return len(d.mappings)
}

// Sources returns the distinct resolved source URLs in first-seen order.
func (d *Document) Sources() []string {
	return slices.Clone(d.sources)
}

// SourceContent returns the inline content embedded for sourceURL.
func (d *Document) SourceContent(sourceURL string) (string, bool) {
	s, ok := d.content[sourceURL]
	return s, ok
}

// FindEntry returns the entry in effect at the generated position: the last
// entry whose position is less than or equal to (line, column). It reports
// false when the position precedes the first entry.
func (d *Document) FindEntry(line, column int) (Entry, bool) {
	i := sort.Search(len(d.mappings), func(i int) bool {
		m := d.mappings[i]
		return comparePosition(m.GeneratedLine, m.GeneratedColumn, line, column) > 0
	})
	if i == 0 {
		return Entry{}, false
	}

	return d.mappings[i-1], true
}

// FirstSourceLineMapping returns the entry with the smallest source column on
// line of sourceURL.
func (d *Document) FirstSourceLineMapping(sourceURL string, line int) (Entry, bool) {
	entries := d.reversed(sourceURL)

	i := sort.Search(len(entries), func(i int) bool {
		return entries[i].SourceLine >= line
	})
	if i >= len(entries) || entries[i].SourceLine != line {
		return Entry{}, false
	}

	return entries[i], true
}

// SourceLineMappings returns every entry on line of sourceURL ordered by
// source column.
func (d *Document) SourceLineMappings(sourceURL string, line int) []Entry {
	entries := d.reversed(sourceURL)

	lo := sort.Search(len(entries), func(i int) bool {
		return entries[i].SourceLine >= line
	})
	hi := sort.Search(len(entries), func(i int) bool {
		return entries[i].SourceLine > line
	})

	return slices.Clone(entries[lo:hi])
}
