package transfer

import (
	"encoding/base64"
	"errors"
	"io"

	"github.com/go-mailkit/mime/safebyte"
)

// State is the lifecycle of a CteStream.
type State int

const (
	Idle State = iota
	Reading
	Drained
	Failed
)

// ErrFatalEncoding is returned when the quoted-printable tail-inspection
// logic finds a line length it cannot explain; it indicates the source
// stream or the encoder state machine is corrupt.
var ErrFatalEncoding = errors.New("transfer: fatal internal error inspecting encoded line tail")

// base64FrameBytes is (76/4)*3: the number of source bytes that encode to
// exactly one 76-character base64 line.
const base64FrameBytes = (defaultBase64LineLength / 4) * 3

// qpReadSize is the number of source bytes read from the underlying stream
// per Next call for quoted-printable encoding.
const qpReadSize = 4096

// CteStream pulls raw bytes from src and yields them re-encoded in the
// named transfer encoding, one fragment (one SafeByteBuffer) per Next call,
// instead of pushing through an io.Writer. It never buffers the whole
// input: callers that only need one fragment in memory at a time (e.g. to
// stream an attachment into a socket) use this instead of the one-shot
// Transcoding encoders.
type CteStream struct {
	cte   string
	src   io.Reader
	state State
	err   error

	col int // current output column, used by the quoted-printable encoder
}

// NewCteStream creates a streaming encoder for the named transfer encoding.
// Pass-through encodings (7bit/8bit/binary/none) read and validate bytes
// without transforming them. A label outside the known set fails the first
// Next call with InvalidContentTransferEncoding rather than silently
// passing bytes through.
func NewCteStream(cte string, src io.Reader) *CteStream {
	return &CteStream{cte: cte, src: src, state: Idle}
}

// Err returns the error that put the stream into the Failed state, if any.
func (s *CteStream) Err() error { return s.err }

// State returns the stream's current lifecycle state.
func (s *CteStream) State() State { return s.state }

// Next reads and encodes the next fragment. It returns io.EOF once the
// stream reaches Drained with no more data.
func (s *CteStream) Next() (*safebyte.Buffer, error) {
	switch s.state {
	case Drained:
		return nil, io.EOF
	case Failed:
		return nil, s.err
	}
	if _, known := Transcodings[s.cte]; !known {
		return s.fail(fail(InvalidContentTransferEncoding, s.cte))
	}
	s.state = Reading

	switch s.cte {
	case Base64:
		return s.nextBase64()
	case QuotedPrintable:
		return s.nextQuotedPrintable()
	default:
		return s.nextAsIs()
	}
}

func (s *CteStream) fail(err error) (*safebyte.Buffer, error) {
	s.state = Failed
	s.err = err
	return nil, err
}

func (s *CteStream) nextAsIs() (*safebyte.Buffer, error) {
	raw := make([]byte, qpReadSize)
	n, err := s.src.Read(raw)
	if n > 0 {
		buf, verr := safebyte.FromBytes(raw[:n])
		if verr != nil {
			return s.fail(fail(CannotEncode, verr.Error()))
		}
		if err == io.EOF {
			s.state = Drained
		}
		return buf, nil
	}
	if err == io.EOF {
		s.state = Drained
		return nil, io.EOF
	}
	return s.fail(fail(UnexpectedError, err.Error()))
}

func (s *CteStream) nextBase64() (*safebyte.Buffer, error) {
	raw := make([]byte, base64FrameBytes)
	n, err := s.src.Read(raw)
	if n == 0 {
		if err == io.EOF {
			s.state = Drained
			return nil, io.EOF
		}
		return s.fail(fail(UnexpectedError, err.Error()))
	}

	encoded := base64.StdEncoding.EncodeToString(raw[:n])
	buf, verr := safebyte.FromASCIIString(encoded + "\r\n")
	if verr != nil {
		return s.fail(fail(CannotEncode, verr.Error()))
	}

	if err == io.EOF {
		s.state = Drained
	} else if err != nil {
		return s.fail(fail(UnexpectedError, err.Error()))
	}

	return buf, nil
}

// nextQuotedPrintable reads up to qpReadSize source bytes, quoted-printable
// encodes them continuing from the running column s.col, then applies the
// tail-inspection rule to the final (possibly incomplete) line of this
// fragment so each fragment is independently re-assemblable.
func (s *CteStream) nextQuotedPrintable() (*safebyte.Buffer, error) {
	raw := make([]byte, qpReadSize)
	n, readErr := s.src.Read(raw)
	if n == 0 {
		if readErr == io.EOF {
			s.state = Drained
			return nil, io.EOF
		}
		return s.fail(fail(UnexpectedError, readErr.Error()))
	}
	if readErr != nil && readErr != io.EOF {
		return s.fail(fail(UnexpectedError, readErr.Error()))
	}

	out := make([]byte, 0, n*3)
	for _, b := range raw[:n] {
		esc := qpEscape(b)
		if s.col+len(esc) > 75 {
			out = append(out, '=', '\r', '\n')
			s.col = 0
		}
		out = append(out, esc...)
		s.col += len(esc)
	}

	atEOF := readErr == io.EOF
	if !atEOF {
		var err error
		out, err = qpFixTail(out, &s.col)
		if err != nil {
			return s.fail(err)
		}
	} else {
		s.state = Drained
	}

	buf, verr := safebyte.FromBytes(out)
	if verr != nil {
		return s.fail(fail(CannotEncode, verr.Error()))
	}
	return buf, nil
}

// qpEscape renders one source byte in quoted-printable form: printable
// ASCII other than '=' passes through, everything else (including '=')
// becomes "=HH".
func qpEscape(b byte) []byte {
	if b != '=' && b >= 0x20 && b <= 0x7E {
		return []byte{b}
	}
	const hex = "0123456789ABCDEF"
	return []byte{'=', hex[b>>4], hex[b&0x0F]}
}

// qpFixTail applies the tail-inspection rule from the specification to the
// last line of out (the text since the last CRLF), inserting a soft break
// so the fragment ends on a clean line boundary that a decoder can
// reassemble regardless of where the next fragment's bytes begin.
func qpFixTail(out []byte, col *int) ([]byte, error) {
	lastBreak := lastCRLF(out)
	tail := out[lastBreak:]

	switch {
	case len(tail) == 0:
		return out, nil
	case len(tail) < 76:
		out = append(out, '=', '\r', '\n')
		*col = 0
		return out, nil
	case len(tail) == 76:
		if tail[72] == '=' {
			out = append(out[:lastBreak+72], append([]byte{'=', '\r', '\n'}, tail[72:]...)...)
		} else {
			out = append(out[:lastBreak+75], append([]byte{'=', '\r', '\n'}, tail[75:]...)...)
		}
		*col = len(out) - lastCRLF(out)
		return out, nil
	default:
		return nil, ErrFatalEncoding
	}
}

// lastCRLF returns the index just past the last "\r\n" in b, or 0 if none.
func lastCRLF(b []byte) int {
	for i := len(b) - 2; i >= 0; i-- {
		if b[i] == '\r' && b[i+1] == '\n' {
			return i + 2
		}
	}
	return 0
}
