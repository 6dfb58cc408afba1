// Package inspect lints a source map payload against its decoded Document.
// Findings are warnings and notes; decoding failures are reported by
// sourcemap.New itself.
package inspect

import (
	"fmt"
	"strconv"

	"srcmap/internal/common"
	"srcmap/internal/diagnostic"
	"srcmap/sourcemap"
)

const supportedVersion = 3

// Inspect checks p, which doc was decoded from, and returns its findings.
// name identifies the document in diagnostics.
func Inspect(p *sourcemap.Payload, doc *sourcemap.Document, name string) *diagnostic.Diagnostics {
	res := &diagnostic.Diagnostics{}
	if p == nil {
		res.AddError("payload_is_nil", "payload is nil", name, "")
		return res
	}

	if doc == nil {
		res.AddError("document_is_nil", "document is nil", name, "")
		return res
	}

	inspectPayload(res, p, name, "")
	inspectSources(res, doc, name)

	res.AddInfo("stats", fmt.Sprintf("%d entries, %d sources, %d inline", doc.Len(), len(doc.Sources()), countInline(doc)), name, "")

	return res
}

// inspectPayload checks one (possibly nested) payload.
func inspectPayload(res *diagnostic.Diagnostics, p *sourcemap.Payload, name, where string) {
	if p.Version != supportedVersion {
		res.AddWarning("unsupported_version", fmt.Sprintf("version %d, expected %d", p.Version, supportedVersion), name, where)
	}

	for i := range p.Sections {
		s := &p.Sections[i]
		if s.Map != nil {
			inspectPayload(res, s.Map, name, join(where, "section "+strconv.Itoa(i)))
		}
	}

	if len(p.Sections) > 0 {
		if p.Sources != nil || p.Mappings != nil {
			res.AddWarning("sections_shadow_mappings", "sources/mappings are ignored when sections are present", name, where)
		}

		return
	}

	if len(p.SourcesContent) > len(p.Sources) {
		res.AddWarning("sources_content_length",
			fmt.Sprintf("sourcesContent has %d entries for %d sources", len(p.SourcesContent), len(p.Sources)), name, where)
	}

	seen := make(map[string]int, len(p.Sources))

	for i, src := range p.Sources {
		if first, ok := seen[src]; ok {
			res.AddWarning("duplicate_source",
				fmt.Sprintf("source %q already declared at index %d", src, first), name, join(where, fmt.Sprintf("sources[%d]", i)))

			continue
		}

		seen[src] = i
	}

	if p.Mappings != nil && *p.Mappings == "" {
		res.AddInfo("empty_mappings", "mappings string is empty", name, where)
	}
}

// inspectSources reports sources that no entry refers to.
func inspectSources(res *diagnostic.Diagnostics, doc *sourcemap.Document, name string) {
	referenced := make(map[string]struct{})

	for _, e := range doc.Mappings() {
		if e.HasSource() {
			referenced[e.SourceURL] = struct{}{}
		}
	}

	for _, src := range doc.Sources() {
		if _, ok := referenced[src]; !ok {
			res.AddWarning("unused_source", fmt.Sprintf("source %q is never referenced by a mapping", src), name, "")
		}
	}

	if common.IsEmpty(doc.Sources()) {
		res.AddWarning("no_sources", "document declares no sources", name, "")
	}
}

func countInline(doc *sourcemap.Document) int {
	n := 0

	for _, src := range doc.Sources() {
		if _, ok := doc.SourceContent(src); ok {
			n++
		}
	}

	return n
}

func join(where, part string) string {
	if where == "" {
		return part
	}

	return where + " " + part
}
