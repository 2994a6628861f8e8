package field

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTokenize_Deterministic(t *testing.T) {
	t.Parallel()

	inputs := []string{
		"plain ascii",
		"café with a space",
		"  leading and trailing  ",
		"日本語 mixed with ascii",
		"",
	}

	for _, in := range inputs {
		a := tokenize(in)
		b := tokenize(in)
		assert.Equal(t, a, b, "tokenize(%q) was not deterministic", in)
	}
}

func TestTokenize_PlainASCIIIsSingleRawToken(t *testing.T) {
	t.Parallel()

	toks := tokenize("hello world")
	if assert.Len(t, toks, 1) {
		assert.Equal(t, tokenRaw, toks[0].kind)
		assert.Equal(t, "hello world", string(toks[0].runes))
	}
}

func TestTokenize_NonASCIIBecomesEncoded(t *testing.T) {
	t.Parallel()

	toks := tokenize("café")
	if assert.NotEmpty(t, toks) {
		last := toks[len(toks)-1]
		assert.Equal(t, tokenEncoded, last.kind)
	}
}

func TestTokenize_InteriorWhitespaceStaysRaw(t *testing.T) {
	t.Parallel()

	toks := tokenize("café latte")
	// "café" encodes, the space plus "latte" is plain ASCII and should
	// remain its own Raw token rather than being swallowed into Encoded.
	var sawRaw bool
	for _, tok := range toks {
		if tok.kind == tokenRaw && string(tok.runes) == " latte" {
			sawRaw = true
		}
	}
	assert.True(t, sawRaw, "expected a raw \" latte\" token, got %+v", toks)
}
