package transfer

import "errors"

// Kind names one of the distinct ways applying or streaming a
// Content-Transfer-Encoding can fail.
type Kind int

const (
	// InvalidContentTransferEncoding is returned when a CTE stream or engine
	// is asked for a label outside {7bit,8bit,binary,"",base64,
	// quoted-printable}.
	InvalidContentTransferEncoding Kind = iota
	// CannotEncode is returned when a 7bit-labeled stream is given a byte
	// with its high bit set.
	CannotEncode
	// Non7bitRepresentation is returned by every call on the writer or
	// reader that ApplyTransferEncoding/ApplyTransferDecoding hand back for
	// a label outside Transcodings; no bytes are passed through.
	Non7bitRepresentation
	// UnexpectedError wraps an underlying I/O failure with no further detail
	// to add.
	UnexpectedError
	// HasReachedCapacity is returned when the output sink refuses a write.
	HasReachedCapacity
)

func (k Kind) String() string {
	switch k {
	case InvalidContentTransferEncoding:
		return "InvalidContentTransferEncoding"
	case CannotEncode:
		return "CannotEncode"
	case Non7bitRepresentation:
		return "Non7bitRepresentation"
	case UnexpectedError:
		return "UnexpectedError"
	case HasReachedCapacity:
		return "HasReachedCapacity"
	default:
		return "Unknown"
	}
}

// Error is the single tagged error type every transfer-encoding failure
// mode surfaces through.
type Error struct {
	Kind    Kind
	Message string
}

func (e *Error) Error() string {
	if e.Message == "" {
		return "transfer: " + e.Kind.String()
	}
	return "transfer: " + e.Kind.String() + ": " + e.Message
}

// ErrTransferFailure is the sentinel errors.Is(err, ErrTransferFailure)
// matches for any *Error, regardless of Kind.
var ErrTransferFailure = errors.New("transfer encoding failure")

func (e *Error) Is(target error) bool {
	return target == ErrTransferFailure
}

func fail(k Kind, msg string) *Error {
	return &Error{Kind: k, Message: msg}
}
