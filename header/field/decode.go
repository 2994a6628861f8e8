package field

import (
	"io"
	"mime"
	"strings"
)

// Decode reverses Encode's encoded-words, returning the original Unicode
// body. It is provided only to support the round-trip property tests this
// module is held to (spec.md §8); decoding complete inbound messages is out
// of scope for this library.
func Decode(body string) (string, error) {
	if !strings.Contains(body, "=?") {
		return body, nil
	}
	dec := &mime.WordDecoder{CharsetReader: charsetReader}
	return dec.DecodeHeader(body)
}

func charsetReader(label string, input io.Reader) (io.Reader, error) {
	cs, err := DefaultRegistry.Lookup(label)
	if err != nil {
		return input, nil
	}
	raw, err := io.ReadAll(input)
	if err != nil {
		return nil, err
	}
	if _, ok := cs.(utf8Charset); ok {
		return strings.NewReader(string(raw)), nil
	}
	// Our Charset only encodes Unicode -> bytes; for the default registry's
	// handful of charsets the decode direction is handled by x/text
	// directly when available, otherwise bytes pass through unchanged.
	if xc, ok := cs.(*xtextCharset); ok {
		decoded, err := xc.enc.NewDecoder().Bytes(raw)
		if err != nil {
			return nil, err
		}
		return strings.NewReader(string(decoded)), nil
	}
	return strings.NewReader(string(raw)), nil
}
