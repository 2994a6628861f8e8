package param

import (
	"fmt"
	"strings"

	"github.com/go-mailkit/mime/header/field"
)

// maxLineLen mirrors the 75-content-byte budget used by the header-value
// folder in header/field.
const maxLineLen = 75

// tspecials are the RFC 2045 characters that may not appear in an unquoted
// MIME token.
const tspecials = `()<>@,;:\"/[]?=`

func isTokenChar(r rune) bool {
	if r <= 0x20 || r > 0x7E {
		return false
	}
	return !strings.ContainsRune(tspecials, r)
}

func isMIMEToken(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if !isTokenChar(r) {
			return false
		}
	}
	return true
}

func isPrintableASCII(s string) bool {
	for _, r := range s {
		if r < 0x20 || r > 0x7E {
			return false
		}
	}
	return true
}

func quote(s string) string {
	var b strings.Builder
	b.WriteByte('"')
	for _, r := range s {
		if r == '"' || r == '\\' {
			b.WriteByte('\\')
		}
		b.WriteRune(r)
	}
	b.WriteByte('"')
	return b.String()
}

// pctSafe is the RFC 2231 "attribute-char" reserved set that may appear
// unescaped in a percent-encoded extended value.
func pctSafe(b byte) bool {
	switch {
	case b >= '0' && b <= '9':
	case b >= 'A' && b <= 'Z':
	case b >= 'a' && b <= 'z':
	case b == '$' || b == '-' || b == '.' || b == '@' || b == '_' || b == '~':
	default:
		return false
	}
	return true
}

func percentEncode(b []byte) string {
	var out strings.Builder
	for _, c := range b {
		if pctSafe(c) {
			out.WriteByte(c)
		} else {
			fmt.Fprintf(&out, "%%%02X", c)
		}
	}
	return out.String()
}

// EncodeParam renders name=value as one or more "key=value" fragments ready
// to be joined with "; " by the caller, following the three forms the
// specification defines: short form, quoted form, and RFC 2231 continuation
// form (charset/percent-encoded when the value needs it).
func EncodeParam(name, value string, cs field.Charset, lang string) ([]string, error) {
	if isMIMEToken(value) && len(name)+1+len(value) < maxLineLen {
		return []string{name + "=" + value}, nil
	}

	if isPrintableASCII(value) {
		q := quote(value)
		if len(q) < maxLineLen-len(name)-1 {
			return []string{name + "=" + q}, nil
		}
	}

	if cs == nil {
		cs = field.DefaultCharset
	}

	if cs.Name() == "us-ascii" && isMIMEToken(value) {
		return encodeContinuationPlain(name, value), nil
	}

	return encodeContinuationExtended(name, value, cs, lang)
}

func encodeContinuationPlain(name, value string) []string {
	var segs []string
	seg := 0
	for idx := 0; idx < len(value); {
		label := fmt.Sprintf("%s*%d=", name, seg)
		budget := maxLineLen - len(label)
		if budget < 1 {
			budget = 1
		}
		n := budget
		if idx+n > len(value) {
			n = len(value) - idx
		}
		segs = append(segs, label+value[idx:idx+n])
		idx += n
		seg++
	}
	if len(segs) == 0 {
		segs = []string{fmt.Sprintf("%s*0=", name)}
	}
	return segs
}

func encodeContinuationExtended(name, value string, cs field.Charset, lang string) ([]string, error) {
	runes := []rune(value)
	csName := cs.Name()

	var segs []string
	idx, seg := 0, 0
	for idx < len(runes) || seg == 0 {
		label := fmt.Sprintf("%s*%d*=", name, seg)
		prefix := ""
		if seg == 0 {
			prefix = csName + "'" + lang + "'"
		}
		budget := maxLineLen - len(label) - len(prefix)
		if budget < 1 {
			budget = 1
		}

		n, pct := largestPctChunk(runes[idx:], cs, budget)
		if n == 0 && len(runes[idx:]) > 0 {
			enc, err := cs.Encode(string(runes[idx : idx+1]))
			if err != nil {
				return nil, err
			}
			pct = percentEncode(enc)
			n = 1
		}

		segs = append(segs, label+prefix+pct)
		idx += n
		seg++

		if len(runes) == 0 {
			break
		}
	}

	return segs, nil
}

// largestPctChunk binary-searches the largest prefix of rs whose
// charset-encoded, percent-encoded form fits within maxBytes.
func largestPctChunk(rs []rune, cs field.Charset, maxBytes int) (int, string) {
	lo, hi := 0, len(rs)
	bestN := 0
	var bestPct string
	for lo <= hi {
		mid := (lo + hi) / 2
		enc, err := cs.Encode(string(rs[:mid]))
		if err == nil {
			pct := percentEncode(enc)
			if len(pct) <= maxBytes {
				bestN = mid
				bestPct = pct
				lo = mid + 1
				continue
			}
		}
		hi = mid - 1
	}
	return bestN, bestPct
}
