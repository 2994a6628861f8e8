package safebyte

import "fmt"

// Buffer is an append-only, random-access sequence of SevenBitByte. Every
// byte it holds is guaranteed to be in [0x00, 0x7F]; there is no way to
// construct one that violates that invariant short of type-punning.
type Buffer struct {
	b []byte
}

// NewBuffer constructs an empty Buffer with the given capacity hint.
func NewBuffer(capacity int) *Buffer {
	return &Buffer{b: make([]byte, 0, capacity)}
}

// FromBytes validates every byte in p and returns a Buffer holding a copy of
// them, or an error naming the offset of the first byte with its top bit set.
func FromBytes(p []byte) (*Buffer, error) {
	buf := NewBuffer(len(p))
	for i, b := range p {
		if b > 0x7F {
			return nil, fmt.Errorf("byte %d (0x%02x) is not a 7-bit byte", i, b)
		}
		buf.b = append(buf.b, b)
	}
	return buf, nil
}

// FromASCIIString is a convenience wrapper around FromBytes for string
// literals known to be ASCII.
func FromASCIIString(s string) (*Buffer, error) {
	return FromBytes([]byte(s))
}

// Append adds a single validated SevenBitByte to the end of the buffer.
func (buf *Buffer) Append(b SevenBitByte) {
	buf.b = append(buf.b, byte(b))
}

// AppendBuffer concatenates another Buffer's contents onto this one. Since
// both buffers already satisfy the 7-bit invariant, the result trivially
// does too.
func (buf *Buffer) AppendBuffer(o *Buffer) {
	buf.b = append(buf.b, o.b...)
}

// At returns the byte at index i.
func (buf *Buffer) At(i int) SevenBitByte {
	return SevenBitByte(buf.b[i])
}

// Len returns the number of bytes held.
func (buf *Buffer) Len() int { return len(buf.b) }

// Bytes returns the raw byte slice backing the buffer. Callers must not
// mutate it; every byte is guaranteed <= 0x7F only so long as it is not
// tampered with out from under the Buffer.
func (buf *Buffer) Bytes() []byte { return buf.b }

// String returns the buffer's contents as a string.
func (buf *Buffer) String() string { return string(buf.b) }
