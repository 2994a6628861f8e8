package transfer

import (
	"encoding/base64"
	"io"
)

const defaultBase64LineLength = 76

var defaultBase64LineBreak = []byte("\r\n")

// newlineWriter inserts a line break every `every` bytes written, tracking
// how many bytes into the current line it is across successive Write calls.
type newlineWriter struct {
	every int
	acc   int
	lbr   []byte
	w     io.Writer
}

func (nw *newlineWriter) Write(b []byte) (int, error) {
	ix, n := 0, 0
	for len(b[ix:])+nw.acc > nw.every {
		ln, err := nw.w.Write(b[ix : ix+(nw.every-nw.acc)])
		n += ln
		if err != nil {
			return n, err
		}

		_, err = nw.w.Write(nw.lbr)
		if err != nil {
			return n, err
		}

		ix += nw.every - nw.acc
		nw.acc = 0
	}

	ln, err := nw.w.Write(b[ix:])
	n += ln
	if err != nil {
		return n, err
	}

	nw.acc = (nw.acc + len(b[ix:])) % nw.every

	return n, nil
}

func (nw *newlineWriter) Close() error {
	_, err := nw.w.Write(nw.lbr)
	if wc, isCloser := nw.w.(io.Closer); isCloser {
		if cerr := wc.Close(); cerr != nil {
			return cerr
		}
	}
	return err
}

// NewBase64Encoder returns an io.WriteCloser that base64-encodes all bytes
// written to it, inserting a CRLF every 76 output characters, and writes the
// result to w.
func NewBase64Encoder(w io.Writer) io.WriteCloser {
	enc := base64.NewEncoder(base64.StdEncoding, &newlineWriter{
		every: defaultBase64LineLength,
		lbr:   defaultBase64LineBreak,
		w:     w,
	})
	return &wc{enc, enc}
}

// NewBase64Decoder returns an io.Reader that base64-decodes bytes read from r.
func NewBase64Decoder(r io.Reader) io.Reader {
	return base64.NewDecoder(base64.StdEncoding, r)
}
