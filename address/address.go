package address

import (
	"strings"

	"github.com/go-mailkit/mime/header/field"
)

// MailAddress is a parsed local-part@domain-part mailbox, with an optional
// display name (the "Person" form, e.g. `Author <author@example.com>`).
type MailAddress struct {
	name      string
	localPart string
	domain    domainSide
}

// Parse is the precise form: it returns a *ParseError naming which rule
// failed.
func Parse(s string) (MailAddress, error) {
	name, addrPart := splitDisplayName(s)
	lp, dom, err := parseAddress(addrPart)
	if err != nil {
		return MailAddress{}, err
	}
	return MailAddress{name: name, localPart: lp, domain: dom}, nil
}

// TryParse is the best-effort form: it returns (MailAddress, true) on
// success and (MailAddress{}, false) swallowing the failure reason.
func TryParse(s string) (MailAddress, bool) {
	a, err := Parse(s)
	return a, err == nil
}

// Person constructs a MailAddress from a display name and separate local and
// domain parts. The joined local@domain text is run through the same parser
// as Parse, and its error is returned if it does not parse.
func Person(name, localPart, domainLiteral string) (MailAddress, error) {
	_, dom, err := parseAddress(localPart + "@" + domainLiteral)
	if err != nil {
		return MailAddress{}, err
	}
	return MailAddress{name: name, localPart: localPart, domain: dom}, nil
}

// splitDisplayName splits `Name <addr>` into ("Name", "addr"), or returns
// ("", s) if s has no angle-address form.
func splitDisplayName(s string) (string, string) {
	s = strings.TrimSpace(s)
	if !strings.HasSuffix(s, ">") {
		return "", s
	}
	ix := strings.LastIndex(s, "<")
	if ix < 0 {
		return "", s
	}
	name := strings.TrimSpace(s[:ix])
	name = strings.Trim(name, `"`)
	addr := s[ix+1 : len(s)-1]
	return name, addr
}

// Name returns the display name, or "" if there isn't one.
func (a MailAddress) Name() string { return a.name }

// LocalPart returns the decoded local part (before the "@").
func (a MailAddress) LocalPart() string { return a.localPart }

// Domain returns the domain part's surface text.
func (a MailAddress) Domain() string { return a.domain.String() }

// IsZero reports whether a is the zero MailAddress.
func (a MailAddress) IsZero() bool { return a.localPart == "" && a.domain.String() == "" }

// Addr renders just the bare local-part@domain-part form.
func (a MailAddress) Addr() string {
	return a.localPart + "@" + a.domain.String()
}

// String renders the full RFC 5322 mailbox form, `Name <addr>` when a
// display name is present, using RFC 2047 encoded-words for a non-ASCII
// name.
func (a MailAddress) String() string {
	if a.name == "" {
		return a.Addr()
	}
	return quoteOrEncodeDisplayName(a.name) + " <" + a.Addr() + ">"
}

func quoteOrEncodeDisplayName(name string) string {
	if isMIMEASCII(name) {
		if needsQuoting(name) {
			return quoteLocal(name)
		}
		return name
	}
	enc, err := field.Encode("X", name, field.DefaultCharset, field.FoldOptions{MaxLineLen: 1 << 30, Break: "\r\n"})
	if err != nil {
		return quoteLocal(name)
	}
	// Encode renders "X: body"; strip the synthetic field name/colon back off.
	return strings.TrimPrefix(enc, "X: ")
}

func isMIMEASCII(s string) bool {
	for _, r := range s {
		if r > 0x7E || r < 0x20 {
			return false
		}
	}
	return true
}

func needsQuoting(s string) bool {
	for _, r := range s {
		if !isDotAtomChar(r) && r != ' ' {
			return true
		}
	}
	return false
}

// Group is a named list of addresses, as in `Group: a@x.com, b@y.com;`.
type Group struct {
	Name      string
	Addresses []MailAddress
}

// String renders the group's RFC 5322 surface form. The member list is
// comma-joined with no space, per the group production's own grammar.
func (g Group) String() string {
	parts := make([]string, len(g.Addresses))
	for i, a := range g.Addresses {
		parts[i] = a.String()
	}
	return g.Name + ": " + strings.Join(parts, ",") + ";"
}
