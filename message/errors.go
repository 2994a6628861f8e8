package message

import "errors"

var (
	// ErrNoRecipients is returned by MailMessage.Stream (and so by WriteTo)
	// when the header has no To, Cc, or Bcc field.
	ErrNoRecipients = errors.New("message: no recipients")

	// ErrNoDataWrittenToStream is returned by MailMessage.WriteTo when the
	// assembled message stream (headers and body together) produced zero
	// bytes.
	ErrNoDataWrittenToStream = errors.New("message: no data written to body stream")
)
