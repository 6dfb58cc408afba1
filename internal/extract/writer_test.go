package extract

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"srcmap/sourcemap"
)

func str(s string) *string { return &s }

func TestOutputPath(t *testing.T) {
	tests := []struct {
		in       string
		expected string
	}{
		{"http://example.com/src/a.js", "example.com/src/a.js"},
		{"webpack:///./src/App.tsx", "src/App.tsx"},
		{"../../etc/passwd", "etc/passwd"},
		{"/abs/lib.js", "abs/lib.js"},
		{"dist/src/a.js", "dist/src/a.js"},
		{"http://example.com/app.js [sm]", "example.com/app.js"},
		{"", "source"},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.expected, OutputPath(tt.in))
		})
	}
}

func TestNamer(t *testing.T) {
	n := newNamer()
	assert.Equal(t, "a.js", n.unique("a.js"))
	assert.Equal(t, "a~1.js", n.unique("a.js"))
	assert.Equal(t, "a~2.js", n.unique("a.js"))
	assert.Equal(t, "dir/b", n.unique("dir/b"))
	assert.Equal(t, "dir/b~1", n.unique("dir/b"))
}

func TestWriteSources(t *testing.T) {
	p := &sourcemap.Payload{
		Sources:        []string{"webpack:///src/a.js", "webpack:///./src/a.js", "b.js", "c.js"},
		SourcesContent: []*string{str("A1"), str("A2"), nil, str("C")},
		Mappings:       str("AAAA"),
	}

	doc, err := sourcemap.New("http://example.com/app.js", "http://example.com/app.js.map", p)
	require.NoError(t, err)

	out := filepath.Join(t.TempDir(), "out")

	files, err := WriteSources(doc, out)
	require.NoError(t, err)

	assert.Equal(t, []File{
		{URL: "webpack:///src/a.js", Path: "src/a.js"},
		{URL: "webpack:///./src/a.js", Path: "src/a~1.js"},
		{URL: "http://example.com/c.js", Path: "example.com/c.js"},
	}, files)

	for _, f := range files {
		_, err := os.Stat(filepath.Join(out, filepath.FromSlash(f.Path)))
		assert.NoError(t, err, f.Path)
	}

	data, err := os.ReadFile(filepath.Join(out, "src", "a~1.js"))
	require.NoError(t, err)
	assert.Equal(t, "A2", string(data))

	_, err = os.Stat(filepath.Join(out, "example.com", "b.js"))
	assert.True(t, os.IsNotExist(err))
}
