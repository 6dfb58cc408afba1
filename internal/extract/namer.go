package extract

import (
	"path"
	"strconv"
	"strings"
)

// namer hands out file paths that are unique within one extraction. A taken
// path gets a numbered suffix before its extension: a.js, a~1.js, a~2.js.
type namer struct {
	taken map[string]struct{}
}

func newNamer() *namer {
	return &namer{taken: make(map[string]struct{})}
}

func (n *namer) unique(p string) string {
	if _, ok := n.taken[p]; !ok {
		n.taken[p] = struct{}{}
		return p
	}

	ext := path.Ext(p)
	stem := strings.TrimSuffix(p, ext)

	for i := 1; ; i++ {
		name := stem + "~" + strconv.Itoa(i) + ext
		if _, ok := n.taken[name]; !ok {
			n.taken[name] = struct{}{}
			return name
		}
	}
}
