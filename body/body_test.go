package body_test

import (
	"bytes"
	"io"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/go-mailkit/mime/body"
	"github.com/go-mailkit/mime/header/field"
	"github.com/go-mailkit/mime/transfer"
)

func drain(t *testing.T, it body.FragmentIterator) string {
	t.Helper()
	b, err := body.Drain(it)
	require.NoError(t, err)
	return string(b)
}

func TestPlainText_Stream_ISO2022JPScenario(t *testing.T) {
	t.Parallel()

	cs, err := field.DefaultRegistry.Lookup("iso-2022-jp")
	require.NoError(t, err)

	p := &body.PlainText{
		Text:    "Hello, World!\r\nこんにちは、世界！",
		Charset: cs,
		CTE:     transfer.Bit7,
	}

	s, err := p.Stream()
	require.NoError(t, err)
	out := drain(t, s)

	assert.True(t, strings.HasPrefix(out, "Content-Type: text/plain; charset=iso-2022-jp\r\n"))
	assert.Contains(t, out, "Content-Transfer-Encoding: 7bit\r\n")

	_, headerlessBody, ok := strings.Cut(out, "\r\n\r\n")
	require.True(t, ok)
	for _, b := range []byte(headerlessBody) {
		assert.LessOrEqual(t, b, byte(0x7F))
	}
}

func TestPlainText_Stream_PlainASCII(t *testing.T) {
	t.Parallel()

	p := &body.PlainText{
		Text:    "Hello, World!\r\nplain ascii body",
		Charset: utf8Charset(t),
		CTE:     transfer.Bit7,
	}

	s, err := p.Stream()
	require.NoError(t, err)
	out := drain(t, s)

	assert.True(t, strings.HasPrefix(out, "Content-Type: text/plain; charset=utf-8\r\n"))
	assert.Contains(t, out, "Content-Transfer-Encoding: 7bit\r\n")
	assert.True(t, strings.HasSuffix(out, "\r\nHello, World!\r\nplain ascii body"))
}

func TestRichText_Stream_FixedBoundaryScenario(t *testing.T) {
	t.Parallel()

	cs := utf8Charset(t)
	r := &body.RichText{
		PlainText:   &body.PlainText{Text: "plain version", Charset: cs, CTE: transfer.Bit7},
		HtmlContent: &body.HtmlContent{HtmlString: "<p>html version</p>", Charset: cs, CTE: transfer.Bit7},
		Boundary:    "test-boundary",
	}

	s, err := r.Stream()
	require.NoError(t, err)
	out := drain(t, s)

	assert.True(t, strings.HasPrefix(out, "--test-boundary\r\n"))
	assert.True(t, strings.HasSuffix(out, "--test-boundary--\r\n"))
	assert.Equal(t, 1, strings.Count(out, "--test-boundary--\r\n"))

	idxPlain := strings.Index(out, "plain version")
	idxHTML := strings.Index(out, "html version")
	require.True(t, idxPlain >= 0 && idxHTML >= 0)
	assert.Less(t, idxPlain, idxHTML)

	ct := r.ContentType()
	assert.Equal(t, "multipart/alternative", ct.Value())
	assert.Equal(t, "test-boundary", ct.Boundary())
	assert.Equal(t, "", r.TransferEncoding())
}

func TestHtmlContent_WithResources_IsMultipartRelated(t *testing.T) {
	t.Parallel()

	cs := utf8Charset(t)
	img := &body.File{
		Filename:         "logo.png",
		ContentTypeValue: "image/png",
		ContentID:        "<logo@example.com>",
		Charset:          cs,
		ByteStream:       func() (io.Reader, error) { return bytes.NewReader([]byte("fake-png-bytes")), nil },
	}

	h := &body.HtmlContent{
		HtmlString: `<img src="cid:logo@example.com">`,
		Resources:  []*body.File{img},
		Charset:    cs,
		CTE:        transfer.Bit7,
		Boundary:   "related-boundary",
	}

	assert.Equal(t, "multipart/related", h.ContentType().Value())
	assert.Equal(t, "", h.TransferEncoding())

	s, err := h.Stream()
	require.NoError(t, err)
	out := drain(t, s)

	assert.Contains(t, out, "--related-boundary\r\n")
	assert.Contains(t, out, "--related-boundary--\r\n")
	assert.Contains(t, out, "Content-ID: <logo@example.com>")
	assert.Contains(t, out, "Content-Transfer-Encoding: base64")
}

func TestFileAttached_NestedMultipartScenario(t *testing.T) {
	t.Parallel()

	cs := utf8Charset(t)
	img := &body.File{
		Filename:         "logo.png",
		ContentTypeValue: "image/png",
		ContentID:        "<logo@example.com>",
		Charset:          cs,
		ByteStream:       func() (io.Reader, error) { return bytes.NewReader([]byte("fake-png-bytes")), nil },
	}
	htmlPart := &body.HtmlContent{
		HtmlString: `<img src="cid:logo@example.com">`,
		Resources:  []*body.File{img},
		Charset:    cs,
		CTE:        transfer.Bit7,
		Boundary:   "related-boundary",
	}
	rich := &body.RichText{
		PlainText:   &body.PlainText{Text: "plain fallback", Charset: cs, CTE: transfer.Bit7},
		HtmlContent: htmlPart,
		Boundary:    "alt-boundary",
	}
	attachment := &body.File{
		Filename:         "financial report.pdf",
		ContentTypeValue: "application/pdf",
		Charset:          cs,
		ByteStream:       func() (io.Reader, error) { return bytes.NewReader([]byte("fake-pdf-bytes")), nil },
	}
	fa := &body.FileAttached{
		MainBody: rich,
		Files:    []*body.File{attachment},
		Boundary: "mixed-boundary",
	}

	assert.Equal(t, "multipart/mixed", fa.ContentType().Value())
	assert.Equal(t, "", fa.TransferEncoding())

	s, err := fa.Stream()
	require.NoError(t, err)
	out := drain(t, s)

	ixMixed := strings.Index(out, "--mixed-boundary\r\n")
	ixAlt := strings.Index(out, "--alt-boundary\r\n")
	ixRelated := strings.Index(out, "--related-boundary\r\n")
	require.True(t, ixMixed >= 0 && ixAlt >= 0 && ixRelated >= 0)
	assert.Less(t, ixMixed, ixAlt)
	assert.Less(t, ixAlt, ixRelated)

	assert.Contains(t, out, "--mixed-boundary--\r\n")
	assert.Contains(t, out, "--alt-boundary--\r\n")
	assert.Contains(t, out, "--related-boundary--\r\n")

	assert.Contains(t, out, `filename="financial report.pdf"`)
	assert.Contains(t, out, "Content-Disposition: attachment")
}

func utf8Charset(t *testing.T) field.Charset {
	t.Helper()
	cs, err := field.DefaultRegistry.Lookup("utf-8")
	require.NoError(t, err)
	return cs
}
