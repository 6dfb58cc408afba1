package sourcemap

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"srcmap/vlq"
)

//go:generate go tool stringer -type=Kind -trimprefix=Kind -output=kind_string.go

// Kind classifies a DecodeError.
type Kind int

const (
	_ Kind = iota // zero value is not a valid kind

	KindMalformedDigit
	KindUnterminatedVLQ
	KindInvalidDocument
)

// ErrInvalidDocument is wrapped by every KindInvalidDocument error.
var ErrInvalidDocument = errors.New("invalid source map")

// Re-exported codec sentinels, so callers only need this package for errors.Is.
var (
	ErrMalformedDigit = vlq.ErrMalformedDigit
	ErrUnterminated   = vlq.ErrUnterminated
)

// DecodeError reports why a Document could not be built.
type DecodeError struct {
	Kind Kind
	// Section is the index path of the section being decoded; empty for a
	// plain map.
	Section []int
	// Offset is the byte offset into the mappings string, or -1.
	Offset int
	Err    error
}

func (e *DecodeError) Error() string {
	var b strings.Builder

	b.WriteString("sourcemap: ")
	b.WriteString(e.Kind.String())

	if len(e.Section) > 0 {
		parts := make([]string, len(e.Section))
		for i, s := range e.Section {
			parts[i] = strconv.Itoa(s)
		}

		b.WriteString(" in section ")
		b.WriteString(strings.Join(parts, "."))
	}

	if e.Offset >= 0 {
		fmt.Fprintf(&b, " at mappings offset %d", e.Offset)
	}

	if e.Err != nil {
		b.WriteString(": ")
		b.WriteString(e.Err.Error())
	}

	return b.String()
}

func (e *DecodeError) Unwrap() error {
	return e.Err
}

// KindOf returns the Kind of err if it is (or wraps) a *DecodeError.
func KindOf(err error) (Kind, bool) {
	var de *DecodeError
	if errors.As(err, &de) {
		return de.Kind, true
	}

	return 0, false
}

func invalidf(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrInvalidDocument, fmt.Sprintf(format, args...))
}

// classify converts a codec or validation error into a *DecodeError.
func classify(err error, section []int, offset int) *DecodeError {
	var de *DecodeError
	if errors.As(err, &de) {
		return de
	}

	kind := KindInvalidDocument

	switch {
	case errors.Is(err, vlq.ErrMalformedDigit):
		kind = KindMalformedDigit
	case errors.Is(err, vlq.ErrUnterminated):
		kind = KindUnterminatedVLQ
	}

	return &DecodeError{
		Kind:    kind,
		Section: append([]int(nil), section...),
		Offset:  offset,
		Err:     err,
	}
}
