// Package param implements the RFC 2231 parameter encoder used for
// Content-Type and Content-Disposition parameters (charset, boundary,
// filename, and friends), plus a Value type that holds the parsed/assembled
// form of a parameterized header field.
package param

import (
	"fmt"
	"mime"
	"sort"
	"strings"

	"github.com/go-mailkit/mime/header/field"
)

// Well-known parameter names.
const (
	Charset  = "charset"
	Boundary = "boundary"
	Filename = "filename"
	Type     = "type"
)

// Value represents a parsed or constructed parameterized header field value,
// such as is used in Content-Type and Content-Disposition. It is immutable;
// Modify produces a changed copy.
type Value struct {
	v  string
	ps map[string]string
}

// Parse decodes a raw header field body (e.g. `multipart/mixed;
// boundary=abc`) using the standard library's MIME parameter grammar.
func Parse(v string) (*Value, error) {
	mt, ps, err := mime.ParseMediaType(v)
	if err != nil {
		return nil, err
	}
	return &Value{mt, ps}, nil
}

// New creates a Value with no parameters.
func New(v string) *Value {
	return &Value{v, map[string]string{}}
}

// NewWithParams creates a Value with the given parameters.
func NewWithParams(v string, ps map[string]string) *Value {
	cp := make(map[string]string, len(ps))
	for k, p := range ps {
		cp[k] = p
	}
	return &Value{v, cp}
}

// Modifier changes a Value when passed to Modify.
type Modifier func(*Value)

// Change replaces the primary value.
func Change(value string) Modifier {
	return func(pv *Value) { pv.v = value }
}

// Set assigns a parameter.
func Set(name, value string) Modifier {
	return func(pv *Value) { pv.ps[name] = value }
}

// Delete removes a parameter.
func Delete(name string) Modifier {
	return func(pv *Value) { delete(pv.ps, name) }
}

// Modify clones pv, applies changes, and returns the result.
func Modify(pv *Value, changes ...Modifier) *Value {
	cp := pv.Clone()
	for _, change := range changes {
		change(cp)
	}
	return cp
}

// Value returns the primary value, the text before the first semicolon.
func (pv *Value) Value() string { return pv.v }

// MediaType is a synonym for Value, for use with Content-Type.
func (pv *Value) MediaType() string { return pv.v }

// Disposition is a synonym for Value, for use with Content-Disposition.
func (pv *Value) Disposition() string { return pv.v }

// Type returns the part of MediaType() before the slash.
func (pv *Value) Type() string {
	if ix := strings.IndexRune(pv.v, '/'); ix >= 0 {
		return pv.v[:ix]
	}
	return ""
}

// Subtype returns the part of MediaType() after the slash.
func (pv *Value) Subtype() string {
	if ix := strings.IndexRune(pv.v, '/'); ix >= 0 {
		return pv.v[ix+1:]
	}
	return ""
}

// Parameters returns the parameter map. Do not modify it; clone the Value
// first if you need to.
func (pv *Value) Parameters() map[string]string { return pv.ps }

// Parameter returns the named parameter's value.
func (pv *Value) Parameter(k string) string { return pv.ps[k] }

// Filename returns the "filename" parameter.
func (pv *Value) Filename() string { return pv.ps[Filename] }

// Charset returns the "charset" parameter.
func (pv *Value) Charset() string { return pv.ps[Charset] }

// Boundary returns the "boundary" parameter.
func (pv *Value) Boundary() string { return pv.ps[Boundary] }

// StringWithCharset renders the value and all of its parameters, RFC
// 2231-encoding any parameter that needs it, using the given charset for
// non-ASCII parameters. Callers that don't care about a particular charset
// should use String, which uses UTF-8.
func (pv *Value) StringWithCharset(cs field.Charset) string {
	keys := make([]string, 0, len(pv.ps))
	for k := range pv.ps {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	parts := []string{pv.v}
	for _, k := range keys {
		segs, err := EncodeParam(k, pv.ps[k], cs, "")
		if err != nil {
			// Fall back to a naive, unescaped rendering; this only happens
			// when cs itself cannot encode the value, which callers should
			// have already surfaced as a fatal error before ever calling
			// String/Bytes.
			parts = append(parts, fmt.Sprintf("%s=%q", k, pv.ps[k]))
			continue
		}
		parts = append(parts, segs...)
	}

	return strings.Join(parts, "; ")
}

// String is StringWithCharset using UTF-8.
func (pv *Value) String() string {
	return pv.StringWithCharset(field.DefaultCharset)
}

// Bytes is String as a byte slice.
func (pv *Value) Bytes() []byte { return []byte(pv.String()) }

// Clone returns a deep copy.
func (pv *Value) Clone() *Value {
	cp := &Value{v: pv.v, ps: make(map[string]string, len(pv.ps))}
	for k, v := range pv.ps {
		cp.ps[k] = v
	}
	return cp
}
