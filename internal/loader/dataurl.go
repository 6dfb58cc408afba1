package loader

import (
	"encoding/base64"
	"errors"
	"fmt"
	"net/url"
	"strings"
)

const dataScheme = "data:"

// IsDataURL reports whether u is a data: URL.
func IsDataURL(u string) bool {
	return len(u) >= len(dataScheme) && strings.EqualFold(u[:len(dataScheme)], dataScheme)
}

// DecodeDataURL returns the payload of a data: URL, e.g.
// "data:application/json;charset=utf-8;base64,eyJ2ZXJzaW9uIjozfQ==".
func DecodeDataURL(u string) ([]byte, error) {
	if !IsDataURL(u) {
		return nil, errors.New("not a data: URL")
	}

	meta, data, ok := strings.Cut(u[len(dataScheme):], ",")
	if !ok {
		return nil, errors.New("malformed data: URL: missing ','")
	}

	if strings.HasSuffix(strings.ToLower(meta), ";base64") {
		out, err := base64.StdEncoding.DecodeString(data)
		if err != nil {
			// Some bundlers drop the padding.
			out, err = base64.RawStdEncoding.DecodeString(strings.TrimRight(data, "="))
		}

		if err != nil {
			return nil, fmt.Errorf("malformed data: URL: %w", err)
		}

		return out, nil
	}

	out, err := url.PathUnescape(data)
	if err != nil {
		return nil, fmt.Errorf("malformed data: URL: %w", err)
	}

	return []byte(out), nil
}
