package sourcemap

import (
	"srcmap/internal/common"
	"srcmap/vlq"
)

// maxSegmentFields is the largest number of VLQ fields in one segment.
const maxSegmentFields = 5

// builder accumulates the state of a Document while the payload is decoded.
type builder struct {
	compiledURL string
	mappingURL  string

	entries []Entry
	sources []string
	known   map[string]struct{}
	content map[string]string
}

func newBuilder(compiledURL, mappingURL string) *builder {
	return &builder{
		compiledURL: compiledURL,
		mappingURL:  mappingURL,
		known:       make(map[string]struct{}),
		content:     make(map[string]string),
	}
}

// parsePayload decodes p, either as an index map or as a plain map, with
// generated positions shifted to origin.
func (b *builder) parsePayload(p *Payload, origin Offset, section []int) error {
	if p == nil {
		return classify(invalidf("payload is nil"), section, -1)
	}

	if len(p.Sections) > 0 {
		return b.parseSections(p.Sections, origin, section)
	}

	return b.parseMap(p, origin, section)
}

func (b *builder) parseSections(sections []Section, origin Offset, parent []int) error {
	var prev Offset

	for i, s := range sections {
		path := append(parent[:len(parent):len(parent)], i)

		if s.Offset.Line < 0 || s.Offset.Column < 0 {
			return classify(invalidf("negative section offset %d:%d", s.Offset.Line, s.Offset.Column), path, -1)
		}

		if i > 0 && comparePosition(s.Offset.Line, s.Offset.Column, prev.Line, prev.Column) < 0 {
			return classify(invalidf("section offset %d:%d precedes previous section offset %d:%d",
				s.Offset.Line, s.Offset.Column, prev.Line, prev.Column), path, -1)
		}

		if s.Map == nil {
			if s.URL != "" {
				return classify(invalidf("section references external map %q", s.URL), path, -1)
			}

			return classify(invalidf("section has no map"), path, -1)
		}

		if err := b.parsePayload(s.Map, shiftOrigin(origin, s.Offset), path); err != nil {
			return err
		}

		prev = s.Offset
	}

	return nil
}

// shiftOrigin returns the origin of a section declared at off inside a map
// whose own origin is outer. The outer column only carries over on the
// outer origin line.
func shiftOrigin(outer, off Offset) Offset {
	if off.Line == 0 {
		return Offset{Line: outer.Line, Column: outer.Column + off.Column}
	}

	return Offset{Line: outer.Line + off.Line, Column: off.Column}
}

// resolveSources completes every declared source URL and records inline
// content. The returned slice is indexed like p.Sources.
func (b *builder) resolveSources(p *Payload) []string {
	urls := make([]string, len(p.Sources))

	for i, src := range p.Sources {
		u := resolveSourceURL(b.mappingURL, joinSourceRoot(p.SourceRoot, src))

		content := p.content(i)
		if u == b.compiledURL && content != "" {
			u += inlineMarker
		}

		urls[i] = u

		if _, ok := b.known[u]; !ok {
			b.known[u] = struct{}{}
			b.sources = append(b.sources, u)
		}

		if content != "" {
			b.content[u] = content
		}
	}

	return urls
}

// parseMap decodes the mappings string of a plain map.
func (b *builder) parseMap(p *Payload, origin Offset, section []int) error {
	if p.Sources == nil {
		return classify(invalidf("missing required field %q", "sources"), section, -1)
	}

	if p.Mappings == nil {
		return classify(invalidf("missing required field %q", "mappings"), section, -1)
	}

	urls := b.resolveSources(p)

	var (
		line = origin.Line
		col  = origin.Column

		sourceIndex  int
		sourceLine   int
		sourceColumn int
		nameIndex    int

		fields      [maxSegmentFields]int
		needSegment bool
	)

	c := vlq.NewCursor(*p.Mappings)

	for {
		ch, ok := c.Peek()
		if !ok && !needSegment {
			return nil
		}

		if ok && ch == ';' && !needSegment {
			line++
			col = 0

			c.Next()

			continue
		}

		start := c.Pos()

		n, err := readSegment(c, &fields)
		if err != nil {
			return classify(err, section, c.Pos())
		}

		if n != 1 && n != 4 && n != 5 {
			return classify(invalidf("segment has %d fields, want 1, 4 or 5", n), section, start)
		}

		col += fields[0]
		if col < 0 {
			return classify(invalidf("negative generated column %d", col), section, start)
		}

		e := Entry{GeneratedLine: line, GeneratedColumn: col}

		if n >= 4 {
			sourceIndex += fields[1]
			sourceLine += fields[2]
			sourceColumn += fields[3]

			if !common.IsIndex(sourceIndex, len(urls)) {
				return classify(invalidf("source index %d out of range [0, %d)", sourceIndex, len(urls)), section, start)
			}

			if sourceLine < 0 || sourceColumn < 0 {
				return classify(invalidf("negative source position %d:%d", sourceLine, sourceColumn), section, start)
			}

			e.SourceURL = urls[sourceIndex]
			e.SourceLine = sourceLine
			e.SourceColumn = sourceColumn

			if n == 5 {
				nameIndex += fields[4]
				e.Name = p.name(nameIndex)
			}
		}

		if prev, ok := common.Last(b.entries); ok && compareGenerated(e, prev) < 0 {
			return classify(invalidf("generated position %d:%d precedes previous entry at %d:%d",
				e.GeneratedLine, e.GeneratedColumn, prev.GeneratedLine, prev.GeneratedColumn), section, start)
		}

		b.entries = append(b.entries, e)

		needSegment = false

		if ch, ok := c.Peek(); ok && ch == ',' {
			c.Next()

			needSegment = true
		}
	}
}

// readSegment decodes the VLQ fields of one segment into fields and returns
// how many were read. The first field is always required; reading stops at a
// separator or at the end of input.
func readSegment(c *vlq.Cursor, fields *[maxSegmentFields]int) (int, error) {
	n := 0

	for {
		if n == len(fields) {
			return n + 1, nil
		}

		v, err := vlq.Decode(c)
		if err != nil {
			return n, err
		}

		fields[n] = v
		n++

		if ch, ok := c.Peek(); !ok || ch == ',' || ch == ';' {
			return n, nil
		}
	}
}
