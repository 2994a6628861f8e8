package field

import "fmt"

// Field is a single header name/body pair. Name comparison elsewhere in this
// module is case-insensitive, but the original spelling given to New or
// SetName is preserved and is what gets emitted.
type Field struct {
	name string
	body string
}

// New constructs a Field with the given name and body.
func New(name, body string) *Field {
	return &Field{name: name, body: body}
}

// Name returns the field's name, in its original spelling.
func (f *Field) Name() string { return f.name }

// SetName updates the field's name.
func (f *Field) SetName(name string) { f.name = name }

// Body returns the field's unencoded body.
func (f *Field) Body() string { return f.body }

// SetBody updates the field's body.
func (f *Field) SetBody(body string) { f.body = body }

// String renders "Name: <encoded body>" using the default charset registry
// and fold settings. Use Encode directly if you need control over the
// charset or fold parameters.
func (f *Field) String() string {
	enc, err := Encode(f.name, f.body, DefaultCharset, DefaultFold)
	if err != nil {
		// Encode only fails when the charset itself cannot represent the
		// body; DefaultCharset is UTF-8, which can represent any Go string.
		panic(fmt.Sprintf("field %q: %v", f.name, err))
	}
	return enc
}

// Bytes is String as a byte slice.
func (f *Field) Bytes() []byte { return []byte(f.String()) }
