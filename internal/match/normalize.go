package match

import (
	"net/url"
	"path"
	"strings"
)

// NormalizeURL reduces a source URL to a lower-case, cleaned path so that
// "webpack:///./src/App.js" and "http://host/src/app.js" compare equal.
func NormalizeURL(s string) string {
	s = strings.TrimSuffix(s, " [sm]")

	if u, err := url.Parse(s); err == nil && u.Scheme != "" && u.Opaque == "" {
		s = u.Path
	}

	s = strings.ToLower(path.Clean("/" + s))

	return strings.TrimPrefix(s, "/")
}
