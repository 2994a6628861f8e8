// Package header implements an ordered, case-insensitively addressed set of
// RFC 5322 header fields with typed accessors for the fields a deliverable
// message actually needs. Content-Type and Content-Transfer-Encoding have no
// typed accessors: their values are derived from the body tree, and the
// message assembler and the body parts write them through SetContentType and
// SetTransferEncoding. Header does not reject those two names when they are
// passed to Set or Add.
package header

import (
	"sort"
	"strings"
	"time"

	"github.com/araddon/dateparse"

	"github.com/go-mailkit/mime/address"
	"github.com/go-mailkit/mime/header/field"
)

// These are the header field names this package defines. From, To, Cc,
// Bcc, Subject and Date have typed accessors; the others are read and
// written through Get, Set and Add.
const (
	From       = "From"
	Sender     = "Sender"
	ReplyTo    = "Reply-To"
	To         = "To"
	Cc         = "Cc"
	Bcc        = "Bcc"
	Subject    = "Subject"
	Date       = "Date"
	MessageID  = "Message-ID"
	InReplyTo  = "In-Reply-To"
	References = "References"
	Keywords   = "Keywords"
	Comments   = "Comments"
	MIMEVersion = "MIME-Version"
	XMailer    = "X-Mailer"

	// ContentDisposition and ContentID are ordinary settable fields (unlike
	// Content-Type/Content-Transfer-Encoding): File parts use them directly.
	ContentDisposition = "Content-Disposition"
	ContentID          = "Content-ID"

	// contentType and contentTransferEncoding are unexported: the message
	// assembler and the body parts write them through SetContentType and
	// SetTransferEncoding, derived from the body tree.
	contentType             = "Content-Type"
	contentTransferEncoding = "Content-Transfer-Encoding"
)

// leadOrder is the fixed prefix of the deterministic field order; any field
// not named here is sorted alphabetically and placed after these, but
// before the derived Content-Type/Content-Transfer-Encoding pair.
var leadOrder = []string{From, To, Cc, Bcc, Subject, MIMEVersion, XMailer}

// Header is an ordered multiset of name/body field pairs.
type Header struct {
	fields []field.Field

	// encodingCharset is the charset used to render RFC 2047 encoded-words
	// for non-ASCII field bodies. Defaults to field.DefaultCharset (UTF-8);
	// a message whose body uses a legacy charset (e.g. iso-2022-jp) sets
	// this to match, so the Subject line and the body agree.
	encodingCharset field.Charset
}

// New returns an empty Header.
func New() *Header { return &Header{} }

// SetEncodingCharset sets the charset used to render non-ASCII field bodies
// as RFC 2047 encoded-words. The message assembler calls this to match the
// header's encoded-words to the body's own charset.
func (h *Header) SetEncodingCharset(cs field.Charset) { h.encodingCharset = cs }

func (h *Header) encodeCharset() field.Charset {
	if h.encodingCharset != nil {
		return h.encodingCharset
	}
	return field.DefaultCharset
}

// Add appends a field, keeping any existing field of the same name.
func (h *Header) Add(name, body string) {
	h.fields = append(h.fields, *field.New(name, body))
}

// Set replaces every existing field named name with a single field holding
// body.
func (h *Header) Set(name, body string) {
	h.Del(name)
	h.Add(name, body)
}

// Del removes every field named name.
func (h *Header) Del(name string) {
	out := h.fields[:0]
	for _, f := range h.fields {
		if !strings.EqualFold(f.Name(), name) {
			out = append(out, f)
		}
	}
	h.fields = out
}

// Get returns the first field named name and whether it was found.
func (h *Header) Get(name string) (string, bool) {
	for _, f := range h.fields {
		if strings.EqualFold(f.Name(), name) {
			return f.Body(), true
		}
	}
	return "", false
}

// GetAll returns every field named name, in header order.
func (h *Header) GetAll(name string) []string {
	var out []string
	for _, f := range h.fields {
		if strings.EqualFold(f.Name(), name) {
			out = append(out, f.Body())
		}
	}
	return out
}

// Fields returns every field in header order. Callers must not mutate it.
func (h *Header) Fields() []field.Field { return h.fields }

// SetSubject sets the Subject field.
func (h *Header) SetSubject(s string) { h.Set(Subject, s) }

// Subject returns the Subject field, or "" if unset.
func (h *Header) Subject() string {
	s, _ := h.Get(Subject)
	return s
}

// SetAddressList sets name to the comma-joined surface form of addrs.
func (h *Header) SetAddressList(name string, addrs ...address.MailAddress) {
	parts := make([]string, len(addrs))
	for i, a := range addrs {
		parts[i] = a.String()
	}
	h.Set(name, strings.Join(parts, ", "))
}

// SetFrom sets the From field.
func (h *Header) SetFrom(addrs ...address.MailAddress) { h.SetAddressList(From, addrs...) }

// SetTo sets the To field.
func (h *Header) SetTo(addrs ...address.MailAddress) { h.SetAddressList(To, addrs...) }

// SetCc sets the Cc field.
func (h *Header) SetCc(addrs ...address.MailAddress) { h.SetAddressList(Cc, addrs...) }

// SetBcc sets the Bcc field.
func (h *Header) SetBcc(addrs ...address.MailAddress) { h.SetAddressList(Bcc, addrs...) }

// SetGroup sets name to g's RFC 5322 group surface form, e.g. for a To field
// addressed to an undisclosed-recipients group.
func (h *Header) SetGroup(name string, g address.Group) { h.Set(name, g.String()) }

// SetToGroup sets the To field to a named group of recipients.
func (h *Header) SetToGroup(g address.Group) { h.SetGroup(To, g) }

// SetDate sets the Date field to t, rendered in RFC 5322 date-time form.
func (h *Header) SetDate(t time.Time) { h.Set(Date, t.Format(time.RFC1123Z)) }

// SetDateFromString parses s with a permissive date-format scanner (callers
// often assemble a message from data whose date came from a form field or
// another system, not a well-formed RFC 5322 date-time) and sets the Date
// field to the canonical RFC 5322 rendering.
func (h *Header) SetDateFromString(s string) error {
	t, err := dateparse.ParseAny(s)
	if err != nil {
		return err
	}
	h.SetDate(t)
	return nil
}

// Date returns the parsed Date field, or the zero time if unset or
// unparseable.
func (h *Header) Date() time.Time {
	s, ok := h.Get(Date)
	if !ok {
		return time.Time{}
	}
	t, err := dateparse.ParseAny(s)
	if err != nil {
		return time.Time{}
	}
	return t
}

// setContentType backs SetContentType.
func (h *Header) setContentType(v string) { h.Set(contentType, v) }

// setTransferEncoding backs SetTransferEncoding.
func (h *Header) setTransferEncoding(v string) { h.Set(contentTransferEncoding, v) }

// SetContentType is the assembler-facing hook for writing the derived
// Content-Type header; it is not part of the typed accessor surface other
// callers should use.
func (h *Header) SetContentType(v string) { h.setContentType(v) }

// SetTransferEncoding is the assembler-facing hook for writing the derived
// Content-Transfer-Encoding header.
func (h *Header) SetTransferEncoding(v string) { h.setTransferEncoding(v) }

// GetTransferEncoding returns the Content-Transfer-Encoding value, or "" if
// unset.
func (h *Header) GetTransferEncoding() string {
	v, _ := h.Get(contentTransferEncoding)
	return v
}

// WriteTo writes every field in the deterministic order: the fixed
// leadOrder prefix (skipping any name absent from the header), then every
// remaining field sorted alphabetically by name, except the derived
// Content-Type/Content-Transfer-Encoding pair which always comes last.
// Fields are always CRLF-terminated, per RFC 5322.
func (h *Header) WriteTo() (string, error) {
	brk := CRLF

	written := make(map[int]bool, len(h.fields))
	var ordered []field.Field

	indexOf := func(name string) []int {
		var ixs []int
		for i, f := range h.fields {
			if strings.EqualFold(f.Name(), name) {
				ixs = append(ixs, i)
			}
		}
		return ixs
	}

	for _, name := range leadOrder {
		for _, ix := range indexOf(name) {
			ordered = append(ordered, h.fields[ix])
			written[ix] = true
		}
	}

	type rest struct {
		ix int
		f  field.Field
	}
	var others []rest
	for i, f := range h.fields {
		if written[i] || strings.EqualFold(f.Name(), contentType) || strings.EqualFold(f.Name(), contentTransferEncoding) {
			continue
		}
		others = append(others, rest{i, f})
	}
	sort.SliceStable(others, func(i, j int) bool {
		return strings.ToLower(others[i].f.Name()) < strings.ToLower(others[j].f.Name())
	})
	for _, o := range others {
		ordered = append(ordered, o.f)
	}

	for _, ix := range indexOf(contentType) {
		ordered = append(ordered, h.fields[ix])
	}
	for _, ix := range indexOf(contentTransferEncoding) {
		ordered = append(ordered, h.fields[ix])
	}

	var sb strings.Builder
	for _, f := range ordered {
		line, err := field.Encode(f.Name(), f.Body(), h.encodeCharset(), field.DefaultFold)
		if err != nil {
			return "", err
		}
		sb.WriteString(line)
		sb.WriteString(brk.String())
	}
	return sb.String(), nil
}
