package header

// Break is the line-ending sequence used when writing a header out. RFC
// 5322 §2.2.3 requires CRLF; this package carries no alternate folding
// rule.
type Break string

// CRLF is the only line ending WriteTo ever emits.
const CRLF Break = "\x0d\x0a"

func (b Break) String() string { return string(b) }
