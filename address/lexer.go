package address

import (
	"github.com/go-mailkit/mime/internal/ipliteral"
)

type tokenKind int

const (
	tokOpenComment tokenKind = iota
	tokCloseComment
	tokDot
	tokAtSign
	tokIPAddress
	tokPlainText
	tokQuotedText
)

// token is one lexical unit produced by lex.
type token struct {
	kind tokenKind
	text string // surface text for PlainText; decoded content (no quotes or escapes) for QuotedText; raw interior for IPAddress
	ip   ipliteral.IPAddress
}

func isEscapeSafe(r rune) bool { return r >= 0x20 && r <= 0x7E }
func isQtext(r rune) bool {
	return r > 0x7F || (r >= 0x20 && r <= 0x7E && r != '"' && r != '\\')
}

// lex runs stage 1: it turns the raw address string into a flat token list.
// Comments are represented by their own Open/Close tokens at this stage;
// nesting them into a tree is the preparser's job.
func lex(s string) ([]token, error) {
	runes := []rune(s)
	var toks []token
	var plain []rune

	flushPlain := func() {
		if len(plain) > 0 {
			toks = append(toks, token{kind: tokPlainText, text: string(plain)})
			plain = nil
		}
	}

	for i := 0; i < len(runes); i++ {
		r := runes[i]
		switch r {
		case '(':
			flushPlain()
			toks = append(toks, token{kind: tokOpenComment})
		case ')':
			flushPlain()
			toks = append(toks, token{kind: tokCloseComment})
		case '.':
			flushPlain()
			toks = append(toks, token{kind: tokDot})
		case '@':
			flushPlain()
			toks = append(toks, token{kind: tokAtSign})
		case '"':
			flushPlain()
			content, n, err := lexQuoted(runes[i:])
			if err != nil {
				return nil, err
			}
			toks = append(toks, token{kind: tokQuotedText, text: content})
			i += n - 1
		case '[':
			flushPlain()
			content, n, err := lexIPLiteral(runes[i:])
			if err != nil {
				return nil, err
			}
			ip, err := parseIPLiteralInterior(content)
			if err != nil {
				return nil, err
			}
			toks = append(toks, token{kind: tokIPAddress, text: content, ip: ip})
			i += n - 1
		default:
			plain = append(plain, r)
		}
	}
	flushPlain()

	return toks, nil
}

// lexQuoted consumes a quoted string starting at runes[0] == '"' and returns
// its decoded content (without quotes or escaping backslashes) and the
// number of input runes consumed, including both quote characters.
func lexQuoted(runes []rune) (string, int, error) {
	var content []rune
	i := 1
	for {
		if i >= len(runes) {
			return "", 0, fail(UnterminatedQuotedString, "missing closing quote")
		}
		c := runes[i]
		if c == '"' {
			return string(content), i + 1, nil
		}
		if c == '\\' {
			i++
			if i >= len(runes) {
				return "", 0, fail(UnterminatedQuotedString, "dangling escape")
			}
			esc := runes[i]
			if !isEscapeSafe(esc) {
				return "", 0, fail(InvalidScalarInQuotedString, "bad escaped scalar")
			}
			content = append(content, esc)
			i++
			continue
		}
		if !isQtext(c) {
			return "", 0, fail(InvalidScalarInQuotedString, "bad scalar in quoted string")
		}
		content = append(content, c)
		i++
	}
}

// lexIPLiteral consumes an IP-address literal starting at runes[0] == '['
// and returns its interior text (without brackets) and the number of input
// runes consumed, including both brackets.
func lexIPLiteral(runes []rune) (string, int, error) {
	var content []rune
	i := 1
	for {
		if i >= len(runes) {
			return "", 0, fail(UnterminatedIPAddressLiteral, "missing closing bracket")
		}
		c := runes[i]
		if c == ']' {
			return string(content), i + 1, nil
		}
		if !isIPLiteralScalar(c) {
			return "", 0, fail(InvalidScalarInIPAddressLiteral, "bad scalar in IP literal")
		}
		content = append(content, c)
		i++
	}
}

func isIPLiteralScalar(r rune) bool {
	switch {
	case r >= '0' && r <= '9':
		return true
	case r >= 'a' && r <= 'f':
		return true
	case r >= 'A' && r <= 'F':
		return true
	case r == '.' || r == ':':
		return true
	case r == 'I' || r == 'P' || r == 'v':
		// the literal "IPv6:" tag scalars that aren't otherwise hex digits
		return true
	}
	return false
}

func parseIPLiteralInterior(content string) (ipliteral.IPAddress, error) {
	ip, err := ipliteral.Parse(content)
	if err != nil {
		return ipliteral.IPAddress{}, fail(InvalidIPAddressLiteral, err.Error())
	}
	return ip, nil
}
