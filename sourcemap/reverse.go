package sourcemap

import (
	"slices"
	"sync"
)

// reverseIndex holds the entries of one source. They are collected in
// generated order at parse time and sorted by source position on first use.
type reverseIndex struct {
	once    sync.Once
	entries []Entry
}

func (r *reverseIndex) sorted() []Entry {
	r.once.Do(func() {
		slices.SortStableFunc(r.entries, compareSource)
	})

	return r.entries
}

func buildReverse(entries []Entry) map[string]*reverseIndex {
	reverse := make(map[string]*reverseIndex)

	for _, e := range entries {
		if !e.HasSource() {
			continue
		}

		r, ok := reverse[e.SourceURL]
		if !ok {
			r = &reverseIndex{}
			reverse[e.SourceURL] = r
		}

		r.entries = append(r.entries, e)
	}

	return reverse
}

// reversed returns the entries of sourceURL sorted by source position.
func (d *Document) reversed(sourceURL string) []Entry {
	r, ok := d.reverse[sourceURL]
	if !ok {
		return nil
	}

	return r.sorted()
}
