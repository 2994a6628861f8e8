package transfer

import (
	"io"
	"mime/quotedprintable"
)

// NewQuotedPrintableEncoder returns an io.WriteCloser that quoted-printable
// encodes all bytes written to it and writes the result to w.
func NewQuotedPrintableEncoder(w io.Writer) io.WriteCloser {
	qpw := quotedprintable.NewWriter(w)
	return &wc{qpw, qpw}
}

// NewQuotedPrintableDecoder returns an io.Reader that quoted-printable
// decodes bytes read from r.
func NewQuotedPrintableDecoder(r io.Reader) io.Reader {
	return quotedprintable.NewReader(r)
}
