package address

import "github.com/go-mailkit/mime/internal/ipliteral"

// node is a stage-2 tree node: a flattened-and-nested view of the token
// stream where comments have become their own subtree instead of a pair of
// Open/Close tokens.
type node struct {
	kind    tokenKind // tokOpenComment for comments, else the original token kind
	text    string
	ip      ipliteral.IPAddress
	comment []node // children, only set when kind == tokOpenComment
}

// preparse runs stage 2: it nests comments into a tree. Inside a comment,
// every non-comment token is rendered to its mail-address surface text and
// flattened to a single PlainText child, since once inside a comment the
// original token boundaries no longer matter to the address grammar.
func preparse(toks []token) ([]node, error) {
	nodes, rest, err := preparseLevel(toks, false)
	if err != nil {
		return nil, err
	}
	if len(rest) != 0 {
		return nil, fail(UnbalancedParenthesis, "unmatched close paren")
	}
	return nodes, nil
}

func preparseLevel(toks []token, inComment bool) ([]node, []token, error) {
	var out []node
	var plain []rune

	flush := func() {
		if len(plain) > 0 {
			out = append(out, node{kind: tokPlainText, text: string(plain)})
			plain = nil
		}
	}

	for len(toks) > 0 {
		t := toks[0]
		switch t.kind {
		case tokOpenComment:
			flush()
			children, rest, err := preparseLevel(toks[1:], true)
			if err != nil {
				return nil, nil, err
			}
			out = append(out, node{kind: tokOpenComment, comment: children})
			toks = rest
			continue
		case tokCloseComment:
			if !inComment {
				return nil, nil, fail(UnbalancedParenthesis, "unmatched close paren")
			}
			flush()
			return out, toks[1:], nil
		default:
			if inComment {
				plain = append(plain, []rune(surfaceText(t))...)
			} else {
				out = append(out, node{kind: t.kind, text: t.text, ip: t.ip})
			}
		}
		toks = toks[1:]
	}

	if inComment {
		return nil, nil, fail(UnbalancedParenthesis, "unterminated comment")
	}

	flush()
	return out, toks, nil
}

// surfaceText renders a non-comment token's mail-address surface form, used
// when flattening tokens found inside a comment to plain text.
func surfaceText(t token) string {
	switch t.kind {
	case tokDot:
		return "."
	case tokAtSign:
		return "@"
	case tokPlainText:
		return t.text
	case tokQuotedText:
		return `"` + t.text + `"`
	case tokIPAddress:
		return "[" + t.text + "]"
	}
	return ""
}
