// Package message implements the top-level assembler: it combines a
// header.Header with a body.Body into the deterministic byte stream a
// deliverable MIME message requires — header fields in order, the derived
// Content-Type/Content-Transfer-Encoding pair, a blank line, then the body's
// own fragment stream.
package message

import (
	"io"
	"log/slog"

	"github.com/go-mailkit/mime/body"
	"github.com/go-mailkit/mime/header"
	"github.com/go-mailkit/mime/header/field"
	"github.com/go-mailkit/mime/transfer"
)

// MailMessage is a complete, assemblable message: a header plus a body
// tree. Both are owned exclusively by the MailMessage and are consumed
// (any underlying byte streams drained) at most once, by Stream or WriteTo.
type MailMessage struct {
	Header *header.Header
	Body   body.Body

	// Logger receives one debug record per fatal error path encountered
	// while assembling the message. It never replaces the returned error;
	// it is diagnostic only. Defaults to slog.Default() if nil.
	Logger *slog.Logger
}

// New returns a MailMessage ready to assemble.
func New(h *header.Header, b body.Body) *MailMessage {
	return &MailMessage{Header: h, Body: b}
}

func (m *MailMessage) logger() *slog.Logger {
	if m.Logger != nil {
		return m.Logger
	}
	return slog.Default()
}

// Stream checks the message's preconditions, derives and writes the
// Content-Type/Content-Transfer-Encoding header fields from Body, and
// returns a fragment stream over the complete message bytes: headers, the
// blank line, then the body stream.
func (m *MailMessage) Stream() (body.FragmentIterator, error) {
	if err := m.checkRecipients(); err != nil {
		m.logger().Debug("message assembly failed: no recipients", "error", err)
		return nil, err
	}

	m.Header.SetContentType(m.Body.ContentType().String())
	if cte := m.Body.TransferEncoding(); cte != "" {
		m.Header.SetTransferEncoding(cte)
	}

	if name := m.Body.ContentType().Charset(); name != "" {
		if cs, err := field.DefaultRegistry.Lookup(name); err == nil {
			m.Header.SetEncodingCharset(cs)
		}
	}

	headerText, err := m.Header.WriteTo()
	if err != nil {
		m.logger().Debug("message assembly failed: header encode", "error", err)
		return nil, err
	}

	bodyStream, err := m.Body.Stream()
	if err != nil {
		m.logger().Debug("message assembly failed: body stream", "error", err)
		return nil, err
	}

	return body.NewConcat(
		body.ConstString(headerText),
		body.ConstString("\r\n"),
		bodyStream,
	), nil
}

func (m *MailMessage) checkRecipients() error {
	for _, name := range []string{header.To, header.Cc, header.Bcc} {
		if _, ok := m.Header.Get(name); ok {
			return nil
		}
	}
	return ErrNoRecipients
}

// WriteTo assembles the message and writes every byte to w, returning
// ErrNoDataWrittenToStream if the resulting stream was empty.
func (m *MailMessage) WriteTo(w io.Writer) (int64, error) {
	stream, err := m.Stream()
	if err != nil {
		return 0, err
	}

	var total int64
	for {
		buf, err := stream.Next()
		if err == io.EOF {
			break
		}
		if err != nil {
			m.logger().Debug("message assembly failed: body fragment", "error", err, "bytesWritten", total)
			return total, err
		}
		n, werr := w.Write(buf.Bytes())
		total += int64(n)
		if werr != nil {
			capErr := &transfer.Error{Kind: transfer.HasReachedCapacity, Message: werr.Error()}
			m.logger().Debug("message assembly failed: short write", "error", capErr, "bytesWritten", total)
			return total, capErr
		}
	}

	if total == 0 {
		m.logger().Debug("message assembly failed: empty stream")
		return 0, ErrNoDataWrittenToStream
	}
	return total, nil
}
