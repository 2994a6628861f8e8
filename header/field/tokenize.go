package field

// class is the three-way classification of a scalar used to decide whether
// a run of text may stay literal ASCII or must become an RFC 2047
// encoded-word.
type class int

const (
	classLWS class = iota // TAB or SPACE: a candidate fold point
	classVIS               // visible ASCII, 0x21..0x7E
	classOTH               // everything else: must be encoded
)

func classify(r rune) class {
	switch {
	case r == '\t' || r == ' ':
		return classLWS
	case r >= 0x21 && r <= 0x7E:
		return classVIS
	default:
		return classOTH
	}
}

// tokenKind distinguishes a literal-ASCII run from one that must be emitted
// as an RFC 2047 encoded-word.
type tokenKind int

const (
	tokenRaw tokenKind = iota
	tokenEncoded
)

// token is a contiguous run of scalars sharing one tokenKind.
type token struct {
	kind  tokenKind
	runes []rune
}

func allLWS(rs []rune) bool {
	for _, r := range rs {
		if classify(r) != classLWS {
			return false
		}
	}
	return len(rs) > 0
}

func endsWithLWS(rs []rune) bool {
	return len(rs) > 0 && classify(rs[len(rs)-1]) == classLWS
}

// lastInteriorLWS returns the index of the last LWS scalar in rs that is not
// the final scalar, or -1 if there is none.
func lastInteriorLWS(rs []rune) int {
	for i := len(rs) - 2; i >= 0; i-- {
		if classify(rs[i]) == classLWS {
			return i
		}
	}
	return -1
}

// tokenize partitions value into an ordered list of Raw/Encoded tokens per
// the merge rules in the specification: the goal is that a decoder never
// needs to guess which whitespace belongs to an encoded-word and which is a
// plain fold point.
func tokenize(value string) []token {
	runes := []rune(value)
	if len(runes) == 0 {
		return nil
	}

	tokens := make([]token, 0, 4)

	for i, r := range runes {
		c := classify(r)

		if i == 0 {
			kind := tokenRaw
			if c == classOTH {
				kind = tokenEncoded
			}
			tokens = append(tokens, token{kind: kind, runes: []rune{r}})
			continue
		}

		last := &tokens[len(tokens)-1]

		switch {
		case (c == classLWS || c == classVIS) && last.kind == tokenRaw:
			last.runes = append(last.runes, r)

		case c == classVIS && last.kind == tokenEncoded:
			last.runes = append(last.runes, r)

		case c == classLWS && last.kind == tokenEncoded:
			tokens = append(tokens, token{kind: tokenRaw, runes: []rune{r}})

		case c == classOTH && last.kind == tokenEncoded:
			last.runes = append(last.runes, r)

		case c == classOTH && last.kind == tokenRaw:
			switch {
			case allLWS(last.runes) && len(tokens) >= 2 && tokens[len(tokens)-2].kind == tokenEncoded:
				prev := &tokens[len(tokens)-2]
				prev.runes = append(prev.runes, last.runes...)
				prev.runes = append(prev.runes, r)
				tokens = tokens[:len(tokens)-1]

			case len(tokens) == 1 && lastInteriorLWS(last.runes) >= 0:
				ix := lastInteriorLWS(last.runes)
				prefix := append([]rune{}, last.runes[:ix+1]...)
				suffix := append([]rune{}, last.runes[ix+1:]...)
				suffix = append(suffix, r)
				tokens[0] = token{kind: tokenRaw, runes: prefix}
				tokens = append(tokens, token{kind: tokenEncoded, runes: suffix})

			case endsWithLWS(last.runes):
				tokens = append(tokens, token{kind: tokenEncoded, runes: []rune{r}})

			default:
				last.kind = tokenEncoded
				last.runes = append(last.runes, r)
			}
		}
	}

	return finalizeTokens(tokens)
}

// finalizeTokens merges adjacent same-kind tokens (tokenize never produces
// them directly, but the splitting/folding rules above can leave two
// touching Raw or Encoded runs) and folds a final all-whitespace Raw token
// into a preceding Encoded token, so a decoder never has to guess whether
// trailing whitespace belongs to the encoded-word.
func finalizeTokens(tokens []token) []token {
	if len(tokens) == 0 {
		return tokens
	}

	merged := make([]token, 0, len(tokens))
	for _, t := range tokens {
		if n := len(merged); n > 0 && merged[n-1].kind == t.kind {
			merged[n-1].runes = append(merged[n-1].runes, t.runes...)
			continue
		}
		merged = append(merged, t)
	}

	if n := len(merged); n >= 2 {
		last := merged[n-1]
		prev := &merged[n-2]
		if last.kind == tokenRaw && allLWS(last.runes) && prev.kind == tokenEncoded {
			prev.runes = append(prev.runes, last.runes...)
			merged = merged[:n-1]
		}
	}

	return merged
}
