package body

import (
	"bytes"
	"fmt"
	"io"

	"github.com/go-mailkit/mime/header"
	"github.com/go-mailkit/mime/header/field"
	"github.com/go-mailkit/mime/header/param"
	"github.com/go-mailkit/mime/transfer"
)

// Body is one node of the recursive message body tree. Stream renders the
// node as a lazy fragment stream. Leaf variants (PlainText, HtmlContent
// without resources, File) render their own Content-Type/CTE headers, a
// blank line, and their content. Multipart variants render only their
// boundary-framed children and write no Content-Type header of their own;
// the message assembler writes that header for the top-level body, and a
// multipart body nested inside another is emitted without one.
// ContentType and TransferEncoding expose the derived header values a
// top-level message assembler needs without draining the stream first.
// TransferEncoding returns "" for every multipart variant: a multipart body
// carries no Content-Transfer-Encoding of its own.
type Body interface {
	Stream() (FragmentIterator, error)
	ContentType() *param.Value
	TransferEncoding() string
}

const crlf = "\r\n"

// leafStream renders h (already carrying Content-Type/CTE/etc.), a blank
// line, and contentBytes streamed through the named transfer encoding.
func leafStream(h *header.Header, cte string, contentBytes []byte) (FragmentIterator, error) {
	headerText, err := h.WriteTo()
	if err != nil {
		return nil, err
	}
	stream := transfer.NewCteStream(cte, bytes.NewReader(contentBytes))
	return NewConcat(ConstString(headerText), ConstString(crlf), stream), nil
}

// PlainText is a single text/plain part.
type PlainText struct {
	Text    string
	Charset field.Charset
	CTE     string // transfer.Bit7, transfer.Base64, or transfer.QuotedPrintable
}

// ContentType returns this part's Content-Type value.
func (p *PlainText) ContentType() *param.Value {
	return param.NewWithParams("text/plain", map[string]string{param.Charset: p.Charset.Name()})
}

// TransferEncoding implements Body.
func (p *PlainText) TransferEncoding() string { return p.CTE }

// Stream implements Body.
func (p *PlainText) Stream() (FragmentIterator, error) {
	return plainLikeStream(p.ContentType(), p.Charset, p.CTE, p.Text)
}

func plainLikeStream(ct *param.Value, cs field.Charset, cte, text string) (FragmentIterator, error) {
	enc, err := cs.Encode(text)
	if err != nil {
		return nil, fmt.Errorf("encoding body text in %s: %w", cs.Name(), err)
	}
	h := header.New()
	h.SetContentType(ct.StringWithCharset(cs))
	h.SetTransferEncoding(cte)
	return leafStream(h, cte, enc)
}

// HtmlContent is an HTML part, optionally carrying embedded resources
// referenced by the HTML via cid: URLs.
type HtmlContent struct {
	HtmlString string
	Resources  []*File
	Charset    field.Charset
	CTE        string
	Boundary   string // used only when len(Resources) > 0
}

// ContentType returns this part's Content-Type value: text/html when there
// are no resources, multipart/related otherwise.
func (h *HtmlContent) ContentType() *param.Value {
	if len(h.Resources) == 0 {
		return param.NewWithParams("text/html", map[string]string{param.Charset: h.Charset.Name()})
	}
	return param.NewWithParams("multipart/related", map[string]string{
		param.Boundary: h.Boundary,
		param.Type:     "text/html",
	})
}

// TransferEncoding implements Body. It is "" when this part has resources
// (and is therefore a multipart/related container with no CTE of its own).
func (h *HtmlContent) TransferEncoding() string {
	if len(h.Resources) == 0 {
		return h.CTE
	}
	return ""
}

// Stream implements Body.
func (h *HtmlContent) Stream() (FragmentIterator, error) {
	if len(h.Resources) == 0 {
		return plainLikeStream(h.ContentType(), h.Charset, h.CTE, h.HtmlString)
	}

	htmlPart := &HtmlContent{HtmlString: h.HtmlString, Charset: h.Charset, CTE: h.CTE}
	open := "--" + h.Boundary + crlf
	close_ := "--" + h.Boundary + "--" + crlf

	iters := []FragmentIterator{ConstString(open), NewLazy(htmlPart.Stream)}
	for _, f := range h.Resources {
		fl := f
		iters = append(iters, ConstString(crlf+"--"+h.Boundary+crlf), NewLazy(fl.Stream))
	}
	iters = append(iters, ConstString(crlf+close_))
	return NewConcat(iters...), nil
}

// RichText is a plain-text/HTML alternative pair.
type RichText struct {
	PlainText *PlainText
	HtmlContent *HtmlContent
	Boundary  string
}

// ContentType returns this part's Content-Type value.
func (r *RichText) ContentType() *param.Value {
	return param.NewWithParams("multipart/alternative", map[string]string{param.Boundary: r.Boundary})
}

// TransferEncoding implements Body: always "", multipart/alternative has no
// CTE of its own.
func (r *RichText) TransferEncoding() string { return "" }

// Stream implements Body.
func (r *RichText) Stream() (FragmentIterator, error) {
	open := "--" + r.Boundary + crlf
	closeB := "--" + r.Boundary + "--" + crlf
	return NewConcat(
		ConstString(open),
		NewLazy(r.PlainText.Stream),
		ConstString(crlf+"--"+r.Boundary+crlf),
		NewLazy(r.HtmlContent.Stream),
		ConstString(crlf+closeB),
	), nil
}

// FileAttached is a main body plus one or more file attachments.
type FileAttached struct {
	MainBody Body
	Files    []*File
	Boundary string
}

const mimePreamble = "This is a multi-part message in MIME format." + crlf + crlf

// ContentType returns this part's Content-Type value.
func (f *FileAttached) ContentType() *param.Value {
	return param.NewWithParams("multipart/mixed", map[string]string{param.Boundary: f.Boundary})
}

// TransferEncoding implements Body: always "", multipart/mixed has no CTE
// of its own.
func (f *FileAttached) TransferEncoding() string { return "" }

// Stream implements Body.
func (f *FileAttached) Stream() (FragmentIterator, error) {
	iters := []FragmentIterator{
		ConstString(mimePreamble),
		ConstString("--" + f.Boundary + crlf),
		NewLazy(f.MainBody.Stream),
	}
	for _, file := range f.Files {
		fl := file
		iters = append(iters, ConstString(crlf+"--"+f.Boundary+crlf), NewLazy(fl.Stream))
	}
	iters = append(iters, ConstString(crlf+"--"+f.Boundary+"--"+crlf))
	return NewConcat(iters...), nil
}

// File is a single file attachment (or embedded resource, when referenced
// from HTML via a Content-ID).
type File struct {
	Filename         string
	ContentTypeValue string // e.g. "image/png"
	ContentID        string // "<left@right>"; "" if not referenced via cid:
	Charset     field.Charset
	ByteStream  func() (io.Reader, error) // opened once, read to EOF, per body Lifecycles
}

// ContentType implements Body.
func (f *File) ContentType() *param.Value {
	return param.NewWithParams(f.ContentTypeValue, map[string]string{param.Filename: f.Filename})
}

// Disposition returns this part's Content-Disposition value.
func (f *File) Disposition() *param.Value {
	return param.NewWithParams("attachment", map[string]string{param.Filename: f.Filename})
}

// TransferEncoding implements Body: a File is always base64.
func (f *File) TransferEncoding() string { return transfer.Base64 }

// Stream implements Body. The content is always base64-encoded, per the
// specification's File variant.
func (f *File) Stream() (FragmentIterator, error) {
	r, err := f.ByteStream()
	if err != nil {
		return nil, err
	}

	h := header.New()
	h.Set(header.ContentDisposition, f.Disposition().StringWithCharset(f.Charset))
	h.SetContentType(f.ContentType().StringWithCharset(f.Charset))
	if f.ContentID != "" {
		h.Set(header.ContentID, f.ContentID)
	}
	h.SetTransferEncoding(transfer.Base64)

	headerText, err := h.WriteTo()
	if err != nil {
		return nil, err
	}
	stream := transfer.NewCteStream(transfer.Base64, r)
	return NewConcat(ConstString(headerText), ConstString(crlf), stream), nil
}
