package transfer_test

import (
	"bytes"
	"io"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/go-mailkit/mime/transfer"
)

func drainCteStream(t *testing.T, s *transfer.CteStream) []byte {
	t.Helper()
	var out []byte
	for {
		buf, err := s.Next()
		if err == io.EOF {
			break
		}
		require.NoError(t, err)
		out = append(out, buf.Bytes()...)
	}
	assert.Equal(t, transfer.Drained, s.State())
	return out
}

func TestCteStream_Base64RoundTrip(t *testing.T) {
	t.Parallel()

	payload := bytes.Repeat([]byte("stream me "), 50)
	s := transfer.NewCteStream(transfer.Base64, bytes.NewReader(payload))
	encoded := drainCteStream(t, s)

	dec := transfer.NewBase64Decoder(bytes.NewReader(encoded))
	out, err := io.ReadAll(dec)
	require.NoError(t, err)
	assert.Equal(t, payload, out)
}

func TestCteStream_Base64_LineLength(t *testing.T) {
	t.Parallel()

	payload := bytes.Repeat([]byte{'Z'}, 57*3)
	s := transfer.NewCteStream(transfer.Base64, bytes.NewReader(payload))
	out := drainCteStream(t, s)

	for _, line := range strings.Split(strings.TrimRight(string(out), "\r\n"), "\r\n") {
		assert.LessOrEqual(t, len(line), 76)
	}
}

func TestCteStream_QuotedPrintableRoundTrip(t *testing.T) {
	t.Parallel()

	payload := []byte(strings.Repeat("abcdefghij ", 200) + "\x01\x02\x03")
	s := transfer.NewCteStream(transfer.QuotedPrintable, bytes.NewReader(payload))
	encoded := drainCteStream(t, s)

	dec := transfer.NewQuotedPrintableDecoder(bytes.NewReader(encoded))
	out, err := io.ReadAll(dec)
	require.NoError(t, err)
	assert.Equal(t, payload, out)
}

func TestCteStream_AsIsPassesThroughBytes(t *testing.T) {
	t.Parallel()

	payload := []byte("opaque binary-ish 7bit content")
	s := transfer.NewCteStream(transfer.Bit7, bytes.NewReader(payload))
	out := drainCteStream(t, s)
	assert.Equal(t, payload, out)
}

func TestCteStream_EOFOnEmptyInput(t *testing.T) {
	t.Parallel()

	s := transfer.NewCteStream(transfer.Base64, bytes.NewReader(nil))
	_, err := s.Next()
	assert.ErrorIs(t, err, io.EOF)
}

func TestCteStream_UnsupportedLabelFails(t *testing.T) {
	t.Parallel()

	s := transfer.NewCteStream("x-unknown", bytes.NewReader([]byte("hi")))
	_, err := s.Next()

	var terr *transfer.Error
	require.ErrorAs(t, err, &terr)
	assert.Equal(t, transfer.InvalidContentTransferEncoding, terr.Kind)
	assert.ErrorIs(t, err, transfer.ErrTransferFailure)
	assert.Equal(t, transfer.Failed, s.State())
}

func TestCteStream_Bit7RejectsHighBitByte(t *testing.T) {
	t.Parallel()

	s := transfer.NewCteStream(transfer.Bit7, bytes.NewReader([]byte{'h', 'i', 0x80}))
	_, err := s.Next()

	var terr *transfer.Error
	require.ErrorAs(t, err, &terr)
	assert.Equal(t, transfer.CannotEncode, terr.Kind)
	assert.Equal(t, transfer.Failed, s.State())
}

func TestCteStream_StateTransitions(t *testing.T) {
	t.Parallel()

	s := transfer.NewCteStream(transfer.Base64, bytes.NewReader([]byte("hi")))
	assert.Equal(t, transfer.Idle, s.State())

	_, err := s.Next()
	require.NoError(t, err)
	assert.Equal(t, transfer.Reading, s.State())

	_, err = s.Next()
	assert.ErrorIs(t, err, io.EOF)
	assert.Equal(t, transfer.Drained, s.State())
}
