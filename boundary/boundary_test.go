package boundary_test

import (
	"math/rand"
	"regexp"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/go-mailkit/mime/boundary"
)

var nonAlphaNumericMatch = regexp.MustCompile(`[^a-zA-Z0-9]`)

func TestGenerate(t *testing.T) {
	t.Parallel()

	rng := rand.New(rand.NewSource(1))
	b := boundary.Generate(rng)
	assert.Len(t, b, 30)
	assert.False(t, nonAlphaNumericMatch.MatchString(b))
}

func TestGenerate_Deterministic(t *testing.T) {
	t.Parallel()

	a := boundary.Generate(rand.New(rand.NewSource(42)))
	b := boundary.Generate(rand.New(rand.NewSource(42)))
	assert.Equal(t, a, b)
}

func TestGenerate_PairwiseDistinct(t *testing.T) {
	t.Parallel()

	rng := rand.New(rand.NewSource(7))
	seen := make(map[string]bool)
	for i := 0; i < 100; i++ {
		b := boundary.Generate(rng)
		assert.False(t, seen[b], "boundary %q generated twice", b)
		seen[b] = true
	}
}

func TestGenerateSafe(t *testing.T) {
	t.Parallel()

	rng := rand.New(rand.NewSource(42))
	b := boundary.Generate(rng)

	rng2 := rand.New(rand.NewSource(42))
	nb := boundary.GenerateSafe(rng2, b)
	assert.Len(t, nb, 30)
	assert.False(t, nonAlphaNumericMatch.MatchString(nb))
	assert.NotEqual(t, b, nb)
}

func TestGenerateSafe_AvoidsCorpusMatch(t *testing.T) {
	t.Parallel()

	rng := rand.New(rand.NewSource(3))
	corpus := "some text containing " + boundary.Generate(rand.New(rand.NewSource(3))) + " right here"
	b := boundary.GenerateSafe(rng, corpus)
	assert.False(t, strings.Contains(corpus, b))
}
