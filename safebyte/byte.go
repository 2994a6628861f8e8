// Package safebyte provides the two low-level primitives every encoder in
// this module builds on: a byte guaranteed to have its top bit clear, and an
// append-only buffer of such bytes.
package safebyte

import "fmt"

// SevenBitByte is a byte whose value is guaranteed to be in [0x00, 0x7F].
// All header output and all Content-Transfer-Encoding output is built from
// a sequence of these.
type SevenBitByte byte

// New validates b and returns a SevenBitByte, or an error if the top bit is
// set.
func New(b byte) (SevenBitByte, error) {
	if b > 0x7F {
		return 0, fmt.Errorf("byte 0x%02x is not a 7-bit byte", b)
	}
	return SevenBitByte(b), nil
}

// MustNew is like New but panics on an invalid byte. Use only when the byte
// is already known to be 7-bit (e.g. a literal ASCII constant).
func MustNew(b byte) SevenBitByte {
	sb, err := New(b)
	if err != nil {
		panic(err)
	}
	return sb
}

// Byte returns the underlying byte value.
func (b SevenBitByte) Byte() byte { return byte(b) }

// Add returns the 7-bit byte resulting from adding two 7-bit bytes, wrapping
// modulo 0x80 so the result remains a valid SevenBitByte.
func (b SevenBitByte) Add(o SevenBitByte) SevenBitByte {
	return SevenBitByte((byte(b) + byte(o)) & 0x7F)
}

// Sub returns the 7-bit byte resulting from subtracting o from b, wrapping
// modulo 0x80. Earlier drafts of this type defined subtraction in terms of
// addition on both operands, which is wrong; this computes true subtraction.
func (b SevenBitByte) Sub(o SevenBitByte) SevenBitByte {
	return SevenBitByte((byte(b) - byte(o)) & 0x7F)
}
