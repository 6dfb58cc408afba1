package vlq

import (
	"errors"
	"fmt"
	"math/bits"
)

const (
	baseShift        = 5
	baseMask         = 1<<baseShift - 1
	continuationMask = 1 << baseShift
)

const alphabet = "ABCDEFGHIJKLMNOPQRSTUVWXYZabcdefghijklmnopqrstuvwxyz0123456789+/"

var (
	// ErrMalformedDigit is returned when a byte outside the base64 alphabet is
	// found where a digit is required.
	ErrMalformedDigit = errors.New("malformed vlq digit")
	// ErrUnterminated is returned when the input ends inside a digit sequence.
	ErrUnterminated = errors.New("unterminated vlq")
)

// digitValues maps a byte to its base64 ordinal, or -1.
var digitValues = func() [256]int8 {
	var t [256]int8
	for i := range t {
		t[i] = -1
	}

	for i := range len(alphabet) {
		t[alphabet[i]] = int8(i)
	}

	return t
}()

// IsDigit reports whether b belongs to the base64 alphabet.
func IsDigit(b byte) bool {
	return digitValues[b] >= 0
}

// Decode reads one signed integer from c and advances c past every consumed
// digit. On error the cursor is left at the offending position.
func Decode(c *Cursor) (int, error) {
	var (
		result uint
		shift  uint
	)

	for {
		b, ok := c.Peek()
		if !ok {
			return 0, fmt.Errorf("%w at offset %d", ErrUnterminated, c.Pos())
		}

		digit := digitValues[b]
		if digit < 0 {
			return 0, fmt.Errorf("%w %q at offset %d", ErrMalformedDigit, b, c.Pos())
		}

		payload := uint(digit) & baseMask
		if shift >= bits.UintSize || (shift > 0 && payload>>(bits.UintSize-shift) != 0) {
			return 0, fmt.Errorf("%w: value overflows int at offset %d", ErrMalformedDigit, c.Pos())
		}

		c.pos++
		result |= payload << shift
		shift += baseShift

		if digit&continuationMask == 0 {
			break
		}
	}

	negative := result&1 == 1
	magnitude := int(result >> 1)

	if negative {
		return -magnitude, nil
	}

	return magnitude, nil
}

// DecodeString decodes every integer packed in s, which must contain digits
// only (no separators).
func DecodeString(s string) ([]int, error) {
	c := NewCursor(s)

	var out []int

	for c.HasNext() {
		n, err := Decode(c)
		if err != nil {
			return nil, err
		}

		out = append(out, n)
	}

	return out, nil
}

// Encode returns the base64 VLQ form of n. n must be greater than math.MinInt.
func Encode(n int) string {
	return string(AppendEncode(nil, n))
}

// AppendEncode appends the base64 VLQ form of n to dst.
func AppendEncode(dst []byte, n int) []byte {
	var v uint
	if n < 0 {
		v = uint(-n)<<1 | 1
	} else {
		v = uint(n) << 1
	}

	for {
		digit := v & baseMask
		v >>= baseShift

		if v != 0 {
			digit |= continuationMask
		}

		dst = append(dst, alphabet[digit])

		if v == 0 {
			return dst
		}
	}
}
