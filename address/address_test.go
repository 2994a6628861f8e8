package address_test

import (
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/go-mailkit/mime/address"
)

func TestParse_SimpleAddress(t *testing.T) {
	t.Parallel()

	a, err := address.Parse("author@example.com")
	require.NoError(t, err)
	assert.Equal(t, "author", a.LocalPart())
	assert.Equal(t, "example.com", a.Domain())
	assert.Equal(t, "author@example.com", a.Addr())
}

func TestParse_DisplayNameForm(t *testing.T) {
	t.Parallel()

	a, err := address.Parse("Author <author@example.com>")
	require.NoError(t, err)
	assert.Equal(t, "Author", a.Name())
	assert.Equal(t, "author@example.com", a.Addr())
	assert.Equal(t, "Author <author@example.com>", a.String())
}

func TestParse_IPLiteralDomain(t *testing.T) {
	t.Parallel()

	a, err := address.Parse("postmaster@[192.168.1.1]")
	require.NoError(t, err)
	assert.Equal(t, "postmaster", a.LocalPart())
	assert.Equal(t, "[192.168.1.1]", a.Domain())
}

func TestParse_IPv6LiteralDomain(t *testing.T) {
	t.Parallel()

	a, err := address.Parse("postmaster@[IPv6:::1]")
	require.NoError(t, err)
	assert.Equal(t, "[IPv6:::1]", a.Domain())
}

func TestParse_QuotedLocalPart(t *testing.T) {
	t.Parallel()

	a, err := address.Parse(`"quoted local"@example.com`)
	require.NoError(t, err)
	assert.Equal(t, `"quoted local"`, a.LocalPart())
}

func TestParse_DotAtomProperty(t *testing.T) {
	t.Parallel()

	// ∀ dot-atom s of length < 65: parse(s + "@example.com").local_part == s
	cases := []string{
		"a",
		"a.b.c",
		"first.last",
		strings.Repeat("x", 64),
	}

	for _, s := range cases {
		s := s
		t.Run(s, func(t *testing.T) {
			t.Parallel()
			a, err := address.Parse(s + "@example.com")
			require.NoError(t, err)
			assert.Equal(t, s, a.LocalPart())
		})
	}
}

func TestParse_IdempotentOnSurfaceForm(t *testing.T) {
	t.Parallel()

	inputs := []string{
		"author@example.com",
		"Author <author@example.com>",
		"first.last@sub.example.com",
	}

	for _, in := range inputs {
		in := in
		t.Run(in, func(t *testing.T) {
			t.Parallel()
			a, err := address.Parse(in)
			require.NoError(t, err)

			b, err := address.Parse(a.String())
			require.NoError(t, err)
			assert.Equal(t, a, b)
		})
	}
}

func TestTryParse(t *testing.T) {
	t.Parallel()

	_, ok := address.TryParse("author@example.com")
	assert.True(t, ok)

	_, ok = address.TryParse("not an address@@")
	assert.False(t, ok)
}

func TestPerson(t *testing.T) {
	t.Parallel()

	a, err := address.Person("Author", "author", "example.com")
	require.NoError(t, err)
	assert.Equal(t, "Author <author@example.com>", a.String())
}

func TestGroup_String(t *testing.T) {
	t.Parallel()

	a, err := address.Parse("a@x.com")
	require.NoError(t, err)
	b, err := address.Parse("b@y.com")
	require.NoError(t, err)

	g := address.Group{Name: "undisclosed-recipients", Addresses: []address.MailAddress{a, b}}
	assert.Equal(t, "undisclosed-recipients: a@x.com,b@y.com;", g.String())
}

// Scenario 7 from the specification's testable-properties section: four
// named parse-error kinds for four malformed addresses.

func TestParse_DuplicateAtSigns(t *testing.T) {
	t.Parallel()

	_, err := address.Parse("foo@bar@example.com")
	require.Error(t, err)

	var pe *address.ParseError
	require.True(t, errors.As(err, &pe))
	assert.Equal(t, address.DuplicateAtSigns, pe.Kind)
	assert.True(t, errors.Is(err, address.ErrBadAddress))
}

func TestParse_InvalidDotPosition(t *testing.T) {
	t.Parallel()

	_, err := address.Parse(".foo@example.com")
	require.Error(t, err)

	var pe *address.ParseError
	require.True(t, errors.As(err, &pe))
	assert.Equal(t, address.InvalidDotPosition, pe.Kind)
}

func TestParse_InvalidQuotedStringPosition(t *testing.T) {
	t.Parallel()

	_, err := address.Parse(`"foo""bar"@example.com`)
	require.Error(t, err)

	var pe *address.ParseError
	require.True(t, errors.As(err, &pe))
	assert.Equal(t, address.InvalidQuotedStringPosition, pe.Kind)
}

func TestParse_TooLong(t *testing.T) {
	t.Parallel()

	_, err := address.Parse("a@" + strings.Repeat("foo.", 70) + "com")
	require.Error(t, err)

	var pe *address.ParseError
	require.True(t, errors.As(err, &pe))
	assert.Equal(t, address.TooLong, pe.Kind)
}
