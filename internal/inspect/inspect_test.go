package inspect

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"srcmap/internal/diagnostic"
	"srcmap/sourcemap"
)

func str(s string) *string { return &s }

func codes(ds []diagnostic.Diagnostic) []string {
	out := make([]string, 0, len(ds))
	for _, d := range ds {
		out = append(out, d.Code)
	}

	return out
}

func TestInspectClean(t *testing.T) {
	p := &sourcemap.Payload{Version: 3, Sources: []string{"a.js"}, Mappings: str("AAAA")}

	doc, err := sourcemap.New("app.js", "app.js.map", p)
	require.NoError(t, err)

	res := Inspect(p, doc, "app.js.map")
	assert.True(t, res.IsValid())
	assert.Empty(t, res.Warnings)
	require.Len(t, res.Infos, 1)
	assert.Equal(t, "stats", res.Infos[0].Code)
	assert.Equal(t, "1 entries, 1 sources, 0 inline", res.Infos[0].Message)
}

func TestInspectWarnings(t *testing.T) {
	p := &sourcemap.Payload{
		Version:        2,
		Sources:        []string{"a.js", "b.js", "a.js"},
		SourcesContent: []*string{str("a"), nil, nil, str("extra")},
		Mappings:       str("AAAA"),
	}

	doc, err := sourcemap.New("app.js", "app.js.map", p)
	require.NoError(t, err)

	res := Inspect(p, doc, "app.js.map")
	assert.True(t, res.IsValid())
	assert.Equal(t, []string{"unsupported_version", "sources_content_length", "duplicate_source", "unused_source"}, codes(res.Warnings))
	assert.Equal(t, "sources[2]", res.Warnings[2].Location)
	assert.Contains(t, res.Warnings[3].Message, "b.js")
}

func TestInspectSections(t *testing.T) {
	p := &sourcemap.Payload{
		Version: 3,
		Sources: []string{"ignored.js"},
		Sections: []sourcemap.Section{
			{Map: &sourcemap.Payload{Version: 3, Sources: []string{"a.js"}, Mappings: str("")}},
			{Offset: sourcemap.Offset{Line: 1}, Map: &sourcemap.Payload{Version: 1, Sources: []string{"a.js"}, Mappings: str("AAAA")}},
		},
	}

	doc, err := sourcemap.New("app.js", "app.js.map", p)
	require.NoError(t, err)

	res := Inspect(p, doc, "index.map")
	assert.Equal(t, []string{"unsupported_version", "sections_shadow_mappings"}, codes(res.Warnings))
	assert.Equal(t, "section 1", res.Warnings[0].Location)
	assert.Equal(t, []string{"empty_mappings", "stats"}, codes(res.Infos))
	assert.Equal(t, "section 0", res.Infos[0].Location)
}

func TestInspectNoSources(t *testing.T) {
	p := &sourcemap.Payload{Version: 3, Sources: []string{}, Mappings: str("A")}

	doc, err := sourcemap.New("app.js", "app.js.map", p)
	require.NoError(t, err)

	res := Inspect(p, doc, "app.js.map")
	assert.Equal(t, []string{"no_sources"}, codes(res.Warnings))
}

func TestInspectNil(t *testing.T) {
	res := Inspect(nil, nil, "x")
	assert.Equal(t, []string{"payload_is_nil"}, codes(res.Errors))

	res = Inspect(&sourcemap.Payload{}, nil, "x")
	assert.Equal(t, []string{"document_is_nil"}, codes(res.Errors))
}
