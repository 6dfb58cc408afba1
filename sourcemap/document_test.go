package sourcemap

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func str(s string) *string { return &s }

func plain(mappings string, sources ...string) *Payload {
	if sources == nil {
		sources = []string{}
	}

	return &Payload{Version: 3, Sources: sources, Mappings: str(mappings)}
}

const (
	testCompiledURL = "http://example.com/js/app.js"
	testMapURL      = "http://example.com/js/app.js.map"
)

func mustNew(t *testing.T, p *Payload) *Document {
	t.Helper()

	d, err := New(testCompiledURL, testMapURL, p)
	require.NoError(t, err)
	require.NotNil(t, d)

	return d
}

func TestNew_CommaAndSemicolonGroups(t *testing.T) {
	d := mustNew(t, plain("AAAA,SAAA;SAAAA", "a.js"))

	a := "http://example.com/js/a.js"
	assert.Equal(t, []Entry{
		{GeneratedLine: 0, GeneratedColumn: 0, SourceURL: a},
		{GeneratedLine: 0, GeneratedColumn: 9, SourceURL: a},
		{GeneratedLine: 1, GeneratedColumn: 9, SourceURL: a},
	}, d.Mappings())
	assert.Equal(t, []string{a}, d.Sources())
	assert.Equal(t, testCompiledURL, d.CompiledURL())
	assert.Equal(t, testMapURL, d.URL())
}

func TestNew_ColumnOnlySegment(t *testing.T) {
	d := mustNew(t, plain("AAAA,E", "a.js"))

	require.Equal(t, 2, d.Len())

	e, ok := d.FindEntry(0, 2)
	require.True(t, ok)
	assert.Equal(t, Entry{GeneratedLine: 0, GeneratedColumn: 2}, e)
	assert.False(t, e.HasSource())

	e, ok = d.FindEntry(0, 1)
	require.True(t, ok)
	assert.True(t, e.HasSource())
	assert.Equal(t, 0, e.GeneratedColumn)

	e, ok = d.FindEntry(7, 100)
	require.True(t, ok)
	assert.False(t, e.HasSource())
}

func TestNew_MalformedDigit(t *testing.T) {
	d, err := New(testCompiledURL, testMapURL, plain("$$$$", "a.js"))
	require.Error(t, err)
	assert.Nil(t, d)

	kind, ok := KindOf(err)
	require.True(t, ok)
	assert.Equal(t, KindMalformedDigit, kind)
	assert.ErrorIs(t, err, ErrMalformedDigit)

	var de *DecodeError
	require.True(t, errors.As(err, &de))
	assert.Equal(t, 0, de.Offset)
	assert.Contains(t, err.Error(), "MalformedDigit")
}

func TestNew_SourceRoot(t *testing.T) {
	tests := []struct {
		name     string
		mapURL   string
		root     string
		source   string
		expected string
	}{
		{"root with slash", testMapURL, "src/", "a.js", "http://example.com/js/src/a.js"},
		{"root without slash", testMapURL, "src", "a.js", "http://example.com/js/src/a.js"},
		{"absolute root", testMapURL, "http://cdn.example.com/lib", "a.js", "http://cdn.example.com/lib/a.js"},
		{"parent dir", testMapURL, "../src/", "a.js", "http://example.com/src/a.js"},
		{"absolute source", testMapURL, "", "webpack:///./a.js", "webpack:///./a.js"},
		{"file path base", "dist/app.js.map", "src/", "a.js", "dist/src/a.js"},
		{"bare file base", "app.js.map", "", "a.js", "a.js"},
		{"rooted source path", "dist/app.js.map", "", "/abs/a.js", "/abs/a.js"},
		{"data url base", "data:application/json;base64,e30=", "", "a.js", "a.js"},
		{"empty base", "", "src/", "a.js", "src/a.js"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := plain("AAAA", tt.source)
			p.SourceRoot = tt.root

			d, err := New(testCompiledURL, tt.mapURL, p)
			require.NoError(t, err)
			assert.Equal(t, []string{tt.expected}, d.Sources())

			e, ok := d.FindEntry(0, 0)
			require.True(t, ok)
			assert.Equal(t, tt.expected, e.SourceURL)
		})
	}
}

func TestNew_InlineContentAndDisambiguation(t *testing.T) {
	p := plain("AAAA,CCAA", "app.js", "b.js")
	p.SourcesContent = []*string{str("original app"), nil}

	d := mustNew(t, p)

	marked := testCompiledURL + " [sm]"
	assert.Equal(t, []string{marked, "http://example.com/js/b.js"}, d.Sources())

	content, ok := d.SourceContent(marked)
	require.True(t, ok)
	assert.Equal(t, "original app", content)

	_, ok = d.SourceContent("http://example.com/js/b.js")
	assert.False(t, ok)

	// Without inline content the colliding URL is kept as is.
	d = mustNew(t, plain("AAAA", "app.js"))
	assert.Equal(t, []string{testCompiledURL}, d.Sources())
}

func TestNew_Names(t *testing.T) {
	p := plain("AAAAC,CAAAC,CAAA", "a.js")
	p.Names = []string{"foo", "bar", "baz"}

	d := mustNew(t, p)
	m := d.Mappings()
	require.Len(t, m, 3)
	assert.Equal(t, "bar", m[0].Name)
	assert.Equal(t, "baz", m[1].Name)
	assert.Empty(t, m[2].Name)
	assert.Equal(t, "0:0 -> http://example.com/js/a.js:0:0 (bar)", m[0].String())
}

func TestNew_Errors(t *testing.T) {
	tests := []struct {
		name    string
		payload *Payload
		kind    Kind
	}{
		{"nil payload", nil, KindInvalidDocument},
		{"missing sources", &Payload{Mappings: str("AAAA")}, KindInvalidDocument},
		{"missing mappings", &Payload{Sources: []string{"a.js"}}, KindInvalidDocument},
		{"source index out of range", plain("ACAA", "a.js"), KindInvalidDocument},
		{"negative source index", plain("ADAA", "a.js"), KindInvalidDocument},
		{"no sources", plain("AAAA"), KindInvalidDocument},
		{"two fields", plain("AA", "a.js"), KindInvalidDocument},
		{"three fields", plain("AAA", "a.js"), KindInvalidDocument},
		{"six fields", plain("AAAAAA", "a.js"), KindInvalidDocument},
		{"negative column", plain("D", "a.js"), KindInvalidDocument},
		{"negative source line", plain("AADA", "a.js"), KindInvalidDocument},
		{"decreasing column", plain("E,D", "a.js"), KindInvalidDocument},
		{"unterminated", plain("AAAg", "a.js"), KindUnterminatedVLQ},
		{"trailing comma", plain("AAAA,", "a.js"), KindUnterminatedVLQ},
		{"comma before semicolon", plain("AAAA,;AAAA", "a.js"), KindMalformedDigit},
		{"leading comma", plain(",AAAA", "a.js"), KindMalformedDigit},
		{"foreign char mid segment", plain("AA=A", "a.js"), KindMalformedDigit},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d, err := New(testCompiledURL, testMapURL, tt.payload)
			require.Error(t, err)
			assert.Nil(t, d)

			kind, ok := KindOf(err)
			require.True(t, ok, "error %v is not a DecodeError", err)
			assert.Equal(t, tt.kind, kind, err.Error())

			if tt.kind == KindInvalidDocument {
				assert.ErrorIs(t, err, ErrInvalidDocument)
			}
		})
	}
}

func TestNew_EmptyMappings(t *testing.T) {
	d := mustNew(t, plain("", "a.js"))
	assert.Equal(t, 0, d.Len())
	assert.Equal(t, []string{"http://example.com/js/a.js"}, d.Sources())

	_, ok := d.FindEntry(0, 0)
	assert.False(t, ok)

	d = mustNew(t, plain(";;;", "a.js"))
	assert.Equal(t, 0, d.Len())
}

func TestNew_Sections(t *testing.T) {
	p := &Payload{
		Version: 3,
		File:    "app.js",
		Sections: []Section{
			{Offset: Offset{Line: 0, Column: 0}, Map: plain("AAAA;AACA", "a.js")},
			{Offset: Offset{Line: 5, Column: 0}, Map: plain("AAAA,CAAC", "b.js", "a.js")},
		},
	}

	d := mustNew(t, p)
	assert.Equal(t, "app.js", d.File())

	a, b := "http://example.com/js/a.js", "http://example.com/js/b.js"
	assert.Equal(t, []Entry{
		{GeneratedLine: 0, GeneratedColumn: 0, SourceURL: a},
		{GeneratedLine: 1, GeneratedColumn: 0, SourceURL: a, SourceLine: 1},
		{GeneratedLine: 5, GeneratedColumn: 0, SourceURL: b},
		{GeneratedLine: 5, GeneratedColumn: 1, SourceURL: b, SourceColumn: 1},
	}, d.Mappings())
	assert.Equal(t, []string{a, b}, d.Sources())

	for _, e := range d.Mappings() {
		if e.SourceURL == b {
			assert.GreaterOrEqual(t, e.GeneratedLine, 5)
		} else {
			assert.Less(t, e.GeneratedLine, 5)
		}
	}

	e, ok := d.FindEntry(4, 80)
	require.True(t, ok)
	assert.Equal(t, a, e.SourceURL)

	e, ok = d.FindEntry(5, 0)
	require.True(t, ok)
	assert.Equal(t, b, e.SourceURL)
}

func TestNew_SectionColumnOffset(t *testing.T) {
	p := &Payload{
		Sections: []Section{
			{Offset: Offset{Line: 2, Column: 10}, Map: plain("AAAA,CAAC;AAAA", "a.js")},
			{
				Offset: Offset{Line: 4, Column: 3},
				Map: &Payload{Sections: []Section{
					{Offset: Offset{Line: 0, Column: 2}, Map: plain("AAAA", "c.js")},
					{Offset: Offset{Line: 1, Column: 7}, Map: plain("CAAA", "c.js")},
				}},
			},
		},
	}

	d := mustNew(t, p)

	var got [][2]int
	for _, e := range d.Mappings() {
		got = append(got, [2]int{e.GeneratedLine, e.GeneratedColumn})
	}

	assert.Equal(t, [][2]int{{2, 10}, {2, 11}, {3, 0}, {4, 5}, {5, 8}}, got)
}

func TestNew_SectionErrors(t *testing.T) {
	tests := []struct {
		name     string
		sections []Section
	}{
		{
			name: "out of order",
			sections: []Section{
				{Offset: Offset{Line: 5}, Map: plain("AAAA", "a.js")},
				{Offset: Offset{Line: 1}, Map: plain("AAAA", "b.js")},
			},
		},
		{
			name: "out of order column",
			sections: []Section{
				{Offset: Offset{Line: 1, Column: 4}, Map: plain("AAAA", "a.js")},
				{Offset: Offset{Line: 1, Column: 2}, Map: plain("AAAA", "b.js")},
			},
		},
		{
			name: "overlapping",
			sections: []Section{
				{Offset: Offset{Line: 0}, Map: plain("AAAA;;;;;;;AAAA", "a.js")},
				{Offset: Offset{Line: 5}, Map: plain("AAAA", "b.js")},
			},
		},
		{
			name:     "external map",
			sections: []Section{{Offset: Offset{}, URL: "other.js.map"}},
		},
		{
			name:     "missing map",
			sections: []Section{{Offset: Offset{}}},
		},
		{
			name:     "negative offset",
			sections: []Section{{Offset: Offset{Line: -1}, Map: plain("AAAA", "a.js")}},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := New(testCompiledURL, testMapURL, &Payload{Sections: tt.sections})
			require.Error(t, err)
			assert.ErrorIs(t, err, ErrInvalidDocument)

			kind, _ := KindOf(err)
			assert.Equal(t, KindInvalidDocument, kind)
		})
	}
}

func TestNew_SectionErrorPath(t *testing.T) {
	p := &Payload{Sections: []Section{
		{Offset: Offset{}, Map: plain("AAAA", "a.js")},
		{Offset: Offset{Line: 1}, Map: plain("AA$A", "a.js")},
	}}

	_, err := New(testCompiledURL, testMapURL, p)

	var de *DecodeError
	require.True(t, errors.As(err, &de))
	assert.Equal(t, KindMalformedDigit, de.Kind)
	assert.Equal(t, []int{1}, de.Section)
	assert.Equal(t, 2, de.Offset)
	assert.Contains(t, de.Error(), "in section 1 at mappings offset 2")
}

func TestFirstSourceLineMapping(t *testing.T) {
	d := mustNew(t, plain("AAEK,EAAH,EAAD;AACA", "a.js"))
	a := "http://example.com/js/a.js"

	e, ok := d.FirstSourceLineMapping(a, 2)
	require.True(t, ok)
	assert.Equal(t, Entry{GeneratedLine: 0, GeneratedColumn: 4, SourceURL: a, SourceLine: 2, SourceColumn: 1}, e)

	e, ok = d.FirstSourceLineMapping(a, 3)
	require.True(t, ok)
	assert.Equal(t, Entry{GeneratedLine: 1, GeneratedColumn: 0, SourceURL: a, SourceLine: 3, SourceColumn: 1}, e)

	_, ok = d.FirstSourceLineMapping(a, 0)
	assert.False(t, ok)

	_, ok = d.FirstSourceLineMapping(a, 4)
	assert.False(t, ok)

	_, ok = d.FirstSourceLineMapping("http://example.com/js/missing.js", 2)
	assert.False(t, ok)

	line := d.SourceLineMappings(a, 2)
	require.Len(t, line, 3)
	assert.Equal(t, []int{1, 2, 5}, []int{line[0].SourceColumn, line[1].SourceColumn, line[2].SourceColumn})
	assert.Equal(t, []int{4, 2, 0}, []int{line[0].GeneratedColumn, line[1].GeneratedColumn, line[2].GeneratedColumn})

	assert.Empty(t, d.SourceLineMappings(a, 9))
}

func TestReverseIndexIsCached(t *testing.T) {
	d := mustNew(t, plain("AAEK,EAAH,EAAD;AACA", "a.js"))
	a := "http://example.com/js/a.js"

	r := d.reverse[a]
	require.NotNil(t, r)
	// Collected in generated order until the first query.
	assert.Equal(t, []int{5, 2, 1, 1}, sourceColumns(r.entries))

	first, ok := d.FirstSourceLineMapping(a, 2)
	require.True(t, ok)
	assert.Equal(t, []int{1, 2, 5, 1}, sourceColumns(r.entries))

	again, ok := d.FirstSourceLineMapping(a, 2)
	require.True(t, ok)
	assert.Equal(t, first, again)

	// Generated order is untouched by the reverse sort.
	assert.Equal(t, []int{5, 2, 1, 1}, sourceColumns(d.mappings))
}

func TestMappingsReturnsCopy(t *testing.T) {
	d := mustNew(t, plain("AAAA", "a.js"))

	m := d.Mappings()
	m[0].GeneratedColumn = 42

	s := d.Sources()
	s[0] = "changed"

	e, ok := d.FindEntry(0, 0)
	require.True(t, ok)
	assert.Equal(t, 0, e.GeneratedColumn)
	assert.Equal(t, "http://example.com/js/a.js", d.Sources()[0])
}

func TestKindString(t *testing.T) {
	assert.Equal(t, "MalformedDigit", KindMalformedDigit.String())
	assert.Equal(t, "UnterminatedVLQ", KindUnterminatedVLQ.String())
	assert.Equal(t, "InvalidDocument", KindInvalidDocument.String())
	assert.Equal(t, "Kind(0)", Kind(0).String())
}

func sourceColumns(entries []Entry) []int {
	out := make([]int, len(entries))
	for i, e := range entries {
		out[i] = e.SourceColumn
	}

	return out
}
