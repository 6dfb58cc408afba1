package diagnostic

import (
	"encoding/json"
	"errors"
	"io/fs"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"

	"srcmap/sourcemap"
)

// Code is a stable classification of a failure.
type Code string

const (
	CodeUnknown         Code = "unknown"
	CodeMalformedDigit  Code = "malformed_digit"
	CodeUnterminatedVLQ Code = "unterminated_vlq"
	CodeInvalidDocument Code = "invalid_document"
	CodeSyntax          Code = "syntax"
	CodeIO              Code = "io"
)

// Classify maps err to a Code. Only sentinel errors and error types are
// inspected, never message text.
func Classify(err error) Code {
	if err == nil {
		return CodeUnknown
	}

	if kind, ok := sourcemap.KindOf(err); ok {
		switch kind {
		case sourcemap.KindMalformedDigit:
			return CodeMalformedDigit
		case sourcemap.KindUnterminatedVLQ:
			return CodeUnterminatedVLQ
		case sourcemap.KindInvalidDocument:
			return CodeInvalidDocument
		}
	}

	switch {
	case errors.Is(err, sourcemap.ErrMalformedDigit):
		return CodeMalformedDigit
	case errors.Is(err, sourcemap.ErrUnterminated):
		return CodeUnterminatedVLQ
	}

	var (
		syntaxErr *json.SyntaxError
		typeErr   *json.UnmarshalTypeError
		yamlErr   *yaml.TypeError
	)

	if errors.As(err, &syntaxErr) || errors.As(err, &typeErr) || errors.As(err, &yamlErr) {
		return CodeSyntax
	}

	var pathErr *fs.PathError
	if errors.As(err, &pathErr) {
		return CodeIO
	}

	return CodeUnknown
}

// Location describes where inside a document err occurred, or "".
func Location(err error) string {
	var de *sourcemap.DecodeError
	if !errors.As(err, &de) {
		return ""
	}

	var parts []string

	if len(de.Section) > 0 {
		idx := make([]string, len(de.Section))
		for i, s := range de.Section {
			idx[i] = strconv.Itoa(s)
		}

		parts = append(parts, "section "+strings.Join(idx, "."))
	}

	if de.Offset >= 0 {
		parts = append(parts, "mappings@"+strconv.Itoa(de.Offset))
	}

	return strings.Join(parts, " ")
}
