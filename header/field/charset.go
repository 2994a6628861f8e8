package field

import (
	"errors"
	"strings"

	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/htmlindex"
	"golang.org/x/text/encoding/japanese"
	"golang.org/x/text/encoding/unicode"
)

// ErrNoCharacterSetName is returned when a charset has no recognized
// canonical IANA label.
var ErrNoCharacterSetName = errors.New("no character set name")

// ErrDataConversionFailure is returned when a charset encoder rejects a
// scalar it was asked to encode.
var ErrDataConversionFailure = errors.New("data conversion failure")

// Charset resolves a canonical IANA label to a Unicode-to-bytes encoder.
// This is the "Charset registry" external collaborator from the
// specification.
type Charset interface {
	// Name returns the canonical IANA label for this charset (e.g. "utf-8").
	Name() string

	// Encode transforms s into this charset's byte representation. It
	// returns ErrDataConversionFailure if some scalar in s has no
	// representation in the charset.
	Encode(s string) ([]byte, error)
}

type xtextCharset struct {
	name string
	enc  encoding.Encoding
}

func (c *xtextCharset) Name() string { return c.name }

func (c *xtextCharset) Encode(s string) ([]byte, error) {
	out, err := c.enc.NewEncoder().String(s)
	if err != nil {
		return nil, ErrDataConversionFailure
	}
	return []byte(out), nil
}

type asciiCharset struct{}

func (asciiCharset) Name() string { return "us-ascii" }

func (asciiCharset) Encode(s string) ([]byte, error) {
	out := make([]byte, 0, len(s))
	for _, r := range s {
		if r > 0x7F {
			return nil, ErrDataConversionFailure
		}
		out = append(out, byte(r))
	}
	return out, nil
}

type utf8Charset struct{}

func (utf8Charset) Name() string { return "utf-8" }

func (utf8Charset) Encode(s string) ([]byte, error) { return []byte(s), nil }

// Registry looks a Charset up by label.
type Registry interface {
	Lookup(label string) (Charset, error)
}

// DefaultRegistry is the registry used when no other is specified. It
// recognizes at minimum utf-8, us-ascii, and iso-2022-jp, and falls back to
// golang.org/x/text/encoding/htmlindex for any other IANA-registered label.
var DefaultRegistry Registry = &defaultRegistry{}

type defaultRegistry struct{}

func (defaultRegistry) Lookup(label string) (Charset, error) {
	switch strings.ToLower(label) {
	case "utf-8", "utf8", "":
		return utf8Charset{}, nil
	case "us-ascii", "ascii", "7bit":
		return asciiCharset{}, nil
	case "iso-2022-jp":
		return &xtextCharset{name: "iso-2022-jp", enc: japanese.ISO2022JP}, nil
	case "utf-16":
		return &xtextCharset{name: "utf-16", enc: unicode.UTF16(unicode.BigEndian, unicode.UseBOM)}, nil
	}

	enc, err := htmlindex.Get(label)
	if err != nil {
		return nil, ErrNoCharacterSetName
	}
	name, err := htmlindex.Name(enc)
	if err != nil {
		name = label
	}
	return &xtextCharset{name: name, enc: enc}, nil
}
