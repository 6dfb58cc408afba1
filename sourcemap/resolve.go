package sourcemap

import (
	"net/url"
	"path"
	"strings"
)

// inlineMarker is appended to a source URL that would otherwise collide with
// the compiled artifact's URL.
const inlineMarker = " [sm]"

// joinSourceRoot prefixes source with root, adding a "/" between them when
// root does not already end with one.
func joinSourceRoot(root, source string) string {
	if root != "" && !strings.HasSuffix(root, "/") {
		root += "/"
	}

	return root + source
}

// resolveSourceURL completes href against base, the URL of the mapping
// document. Absolute hrefs are returned unchanged. A base without a scheme
// is treated as a slash-separated file path.
func resolveSourceURL(base, href string) string {
	ref, err := url.Parse(href)
	if err != nil || ref.IsAbs() || base == "" {
		return href
	}

	b, err := url.Parse(base)
	if err != nil {
		return href
	}

	if b.IsAbs() {
		// data: and other opaque URLs have no hierarchy to resolve against.
		if b.Opaque != "" {
			return href
		}

		return b.ResolveReference(ref).String()
	}

	if strings.HasPrefix(href, "/") {
		return href
	}

	return path.Join(path.Dir(b.Path), href)
}
