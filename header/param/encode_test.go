package param_test

import (
	"strconv"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/go-mailkit/mime/header/field"
	"github.com/go-mailkit/mime/header/param"
)

func TestEncodeParam_ShortFormToken(t *testing.T) {
	t.Parallel()

	segs, err := param.EncodeParam("charset", "utf-8", field.DefaultCharset, "")
	require.NoError(t, err)
	assert.Equal(t, []string{"charset=utf-8"}, segs)
}

func TestEncodeParam_QuotedForm(t *testing.T) {
	t.Parallel()

	segs, err := param.EncodeParam("filename", "my file.txt", field.DefaultCharset, "")
	require.NoError(t, err)
	require.Len(t, segs, 1)
	assert.Equal(t, `filename="my file.txt"`, segs[0])
}

func TestEncodeParam_ContinuationFormForNonASCII(t *testing.T) {
	t.Parallel()

	cs, err := field.DefaultRegistry.Lookup("iso-2022-jp")
	require.NoError(t, err)

	segs, err := param.EncodeParam("filename", "とてもとても長い長い日本語の名前のファイル.txt", cs, "ja")
	require.NoError(t, err)
	require.GreaterOrEqual(t, len(segs), 2)

	assert.True(t, strings.HasPrefix(segs[0], "filename*0*=iso-2022-jp'ja'"))
	assert.True(t, strings.HasPrefix(segs[1], "filename*1*="))

	for i, seg := range segs {
		assert.LessOrEqualf(t, len(seg), 75, "segment %d exceeds 75 bytes: %q", i, seg)
		if i > 0 {
			assert.Contains(t, seg, "*"+strconv.Itoa(i)+"*=")
		}
	}
}

func TestEncodeParam_USASCIIContinuationIsPlainForm(t *testing.T) {
	t.Parallel()

	cs, err := field.DefaultRegistry.Lookup("us-ascii")
	require.NoError(t, err)

	long := strings.Repeat("a", 200)
	segs, err := param.EncodeParam("filename", long, cs, "")
	require.NoError(t, err)
	require.Greater(t, len(segs), 1)

	assert.True(t, strings.HasPrefix(segs[0], "filename*0="))
	assert.NotContains(t, segs[0], "*0*=")

	for _, seg := range segs {
		assert.LessOrEqual(t, len(seg), 75)
	}
}

func TestValue_StringWithCharset_FilenameScenario(t *testing.T) {
	t.Parallel()

	cs, err := field.DefaultRegistry.Lookup("iso-2022-jp")
	require.NoError(t, err)

	v := param.NewWithParams("text/plain", map[string]string{
		param.Filename: "とてもとても長い長い日本語の名前のファイル.txt",
	})
	out := v.StringWithCharset(cs)
	assert.True(t, strings.HasPrefix(out, "text/plain; filename*0*=iso-2022-jp'"))
}
