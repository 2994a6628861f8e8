package address

import (
	"strings"

	"github.com/go-mailkit/mime/internal/domain"
	"github.com/go-mailkit/mime/internal/ipliteral"
)

const (
	maxTotalScalars = 255
	maxLocalScalars = 65
)

// domainSide is the parsed, variant result of stage 3 step 5.
type domainSide struct {
	isIP bool
	ip   ipliteral.IPAddress
	dom  domain.Domain
}

func (d domainSide) String() string {
	if d.isIP {
		return d.ip.String()
	}
	return d.dom.String()
}

// parseAddress runs the full three-stage pipeline over s and returns the
// local-part and domain-part it denotes.
func parseAddress(s string) (string, domainSide, error) {
	if len([]rune(s)) >= maxTotalScalars {
		return "", domainSide{}, fail(TooLong, "address exceeds maximum length")
	}

	toks, err := lex(s)
	if err != nil {
		return "", domainSide{}, err
	}

	nodes, err := preparse(toks)
	if err != nil {
		return "", domainSide{}, err
	}

	return parseNodes(nodes)
}

func parseNodes(nodes []node) (string, domainSide, error) {
	atIx := -1
	for i, n := range nodes {
		if n.kind == tokAtSign {
			if atIx >= 0 {
				return "", domainSide{}, fail(DuplicateAtSigns, "more than one @ at top level")
			}
			atIx = i
		}
	}
	if atIx < 0 {
		return "", domainSide{}, fail(MissingAtSign, "no @ found")
	}

	local := nodes[:atIx]
	dom := nodes[atIx+1:]

	local = stripBoundaryComments(local)
	dom = stripBoundaryComments(dom)

	if len(local) == 0 {
		return "", domainSide{}, fail(MissingLocalPart, "empty local part")
	}
	if len(dom) == 0 {
		return "", domainSide{}, fail(MissingDomain, "empty domain part")
	}

	if err := rejectMidComments(local); err != nil {
		return "", domainSide{}, err
	}
	if err := rejectMidComments(dom); err != nil {
		return "", domainSide{}, err
	}

	ds, err := parseDomainSide(dom)
	if err != nil {
		return "", domainSide{}, err
	}

	lp, err := parseLocalSide(local)
	if err != nil {
		return "", domainSide{}, err
	}

	return lp, ds, nil
}

// stripBoundaryComments removes leading and trailing Comment nodes.
func stripBoundaryComments(nodes []node) []node {
	i, j := 0, len(nodes)
	for i < j && nodes[i].kind == tokOpenComment {
		i++
	}
	for j > i && nodes[j-1].kind == tokOpenComment {
		j--
	}
	return nodes[i:j]
}

func rejectMidComments(nodes []node) error {
	for _, n := range nodes {
		if n.kind == tokOpenComment {
			return fail(InvalidCommentPosition, "comment appears between local and domain content")
		}
	}
	return nil
}

func parseDomainSide(nodes []node) (domainSide, error) {
	if len(nodes) == 1 && nodes[0].kind == tokIPAddress {
		return domainSide{isIP: true, ip: nodes[0].ip}, nil
	}

	if len(nodes) == 1 && nodes[0].kind == tokPlainText {
		d, err := domain.Parse(nodes[0].text)
		if err != nil {
			return domainSide{}, fail(InvalidDomain, err.Error())
		}
		return domainSide{dom: d}, nil
	}

	var sb strings.Builder
	expectDot := false
	for _, n := range nodes {
		switch n.kind {
		case tokPlainText:
			if expectDot {
				return domainSide{}, fail(InvalidDotPosition, "expected dot between domain labels")
			}
			sb.WriteString(n.text)
			expectDot = true
		case tokDot:
			if !expectDot {
				return domainSide{}, fail(ConsecutiveDots, "consecutive dots in domain")
			}
			sb.WriteByte('.')
			expectDot = false
		default:
			return domainSide{}, fail(InvalidDomain, "unexpected token in domain")
		}
	}
	if !expectDot {
		return domainSide{}, fail(InvalidDotPosition, "domain ends with a dot")
	}

	d, err := domain.Parse(sb.String())
	if err != nil {
		return domainSide{}, fail(InvalidDomain, err.Error())
	}
	return domainSide{dom: d}, nil
}

func parseLocalSide(nodes []node) (string, error) {
	if nodes[0].kind == tokDot || nodes[len(nodes)-1].kind == tokDot {
		return "", fail(InvalidDotPosition, "leading or trailing dot in local part")
	}

	var sb strings.Builder
	prevWasDot := true // true so a leading non-dot token is treated the same as after a dot
	for i, n := range nodes {
		switch n.kind {
		case tokDot:
			if prevWasDot {
				return "", fail(ConsecutiveDots, "consecutive dots in local part")
			}
			sb.WriteByte('.')
			prevWasDot = true
		case tokIPAddress:
			return "", fail(InvalidScalarInLocalPart, "IP literal not allowed in local part")
		case tokPlainText:
			for _, r := range n.text {
				if !isDotAtomChar(r) {
					return "", fail(InvalidScalarInLocalPart, "scalar not valid in a local part")
				}
			}
			sb.WriteString(n.text)
			prevWasDot = false
		case tokQuotedText:
			before := i == 0 || nodes[i-1].kind == tokDot
			after := i == len(nodes)-1 || nodes[i+1].kind == tokDot
			if !before || !after {
				return "", fail(InvalidQuotedStringPosition, "quoted string must be surrounded by dots or boundaries")
			}
			if allDotAtomSafe(n.text) {
				sb.WriteString(n.text)
			} else {
				sb.WriteString(quoteLocal(n.text))
			}
			prevWasDot = false
		}
	}

	lp := sb.String()
	if len([]rune(lp)) >= maxLocalScalars {
		return "", fail(TooLongLocalPart, "local part exceeds maximum length")
	}
	return lp, nil
}

func isDotAtomChar(r rune) bool {
	switch {
	case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9':
		return true
	case r > 0x7F:
		return true
	}
	switch r {
	case '!', '#', '$', '%', '&', '\'', '*', '+', '-', '/', '=', '?', '^', '_', '`', '{', '|', '}', '~':
		return true
	}
	return false
}

func allDotAtomSafe(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if !isDotAtomChar(r) {
			return false
		}
	}
	return true
}

func quoteLocal(s string) string {
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
