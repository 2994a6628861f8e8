// Package transfer implements the three Content-Transfer-Encodings a
// deliverable message body may use: 7bit (pass-through), base64, and
// quoted-printable. "Encoded" means translated from the charset-encoded form
// into the named transfer encoding; "decoded" is the reverse.
package transfer

import "io"

const (
	None            = ""                 // bytes will be left as-is
	Bit7            = "7bit"             // bytes will be left as-is
	Bit8            = "8bit"             // bytes will be left as-is
	Binary          = "binary"           // bytes will be left as-is
	QuotedPrintable = "quoted-printable" // bytes will be transformed between quoted-printable and binary data
	Base64          = "base64"           // bytes will be transformed between base64 and binary data
)

// writer is an internal type to make as-is writers work properly.
type writer struct {
	io.Writer
	performClose bool
}

// Close will close the nested writer if performClose is true.
func (w *writer) Close() error {
	if c, isCloser := w.Writer.(io.Closer); w.performClose && isCloser {
		return c.Close()
	}
	return nil
}

// Transcoding is a pair of functions that transform to and from a transfer
// encoding.
type Transcoding struct {
	// Encoder returns an io.WriteCloser which encodes binary data written to
	// it and forwards the encoded form to the given io.Writer. Close must be
	// called when writing is finished.
	Encoder func(io.Writer) io.WriteCloser

	// Decoder returns an io.Reader which reads from the given io.Reader and
	// decodes the transfer-encoded bytes back into binary form.
	Decoder func(io.Reader) io.Reader
}

// AsIsTranscoder is a no-op encoder/decoder pair.
var AsIsTranscoder = Transcoding{NewAsIsEncoder, NewAsIsDecoder}

// Transcodings defines the supported Content-Transfer-Encodings. It can be
// modified to change global handling of transfer encodings.
var Transcodings = map[string]Transcoding{
	None:            AsIsTranscoder,
	Bit7:            AsIsTranscoder,
	Bit8:            AsIsTranscoder,
	Binary:          AsIsTranscoder,
	QuotedPrintable: {NewQuotedPrintableEncoder, NewQuotedPrintableDecoder},
	Base64:          {NewBase64Encoder, NewBase64Decoder},
}

// ApplyTransferEncoding returns an io.WriteCloser that applies the named
// transfer encoding. Close must be called on the result when writing is
// finished. A cte outside Transcodings returns a writer whose Write/Close
// always fail with a Non7bitRepresentation error, rather than silently
// passing bytes through.
func ApplyTransferEncoding(cte string, w io.Writer) io.WriteCloser {
	tc, hasCode := Transcodings[cte]
	if hasCode {
		return tc.Encoder(w)
	}
	return &failingWriteCloser{fail(Non7bitRepresentation, cte)}
}

// ApplyTransferDecoding returns an io.Reader that reverses the named
// transfer encoding. A cte outside Transcodings returns a reader whose
// Read always fails with a Non7bitRepresentation error, rather than
// silently passing bytes through.
func ApplyTransferDecoding(cte string, r io.Reader) io.Reader {
	tc, hasCode := Transcodings[cte]
	if hasCode {
		return tc.Decoder(r)
	}
	return &failingReader{fail(Non7bitRepresentation, cte)}
}

// failingWriteCloser and failingReader surface an unsupported-label failure
// through the normal io.Writer/io.Reader error return, since
// ApplyTransferEncoding/ApplyTransferDecoding cannot change their result
// type to report it any other way.
type failingWriteCloser struct{ err error }

func (f *failingWriteCloser) Write([]byte) (int, error) { return 0, f.err }
func (f *failingWriteCloser) Close() error              { return f.err }

type failingReader struct{ err error }

func (f *failingReader) Read([]byte) (int, error) { return 0, f.err }
