// Package parse splits raw address input into the parts the validation
// stages work on, handling internationalized domains via IDNA2008.
package parse

import (
	"errors"
	"fmt"
	"strings"

	"golang.org/x/net/idna"
)

// Email is the parsed form of one address.
// The check/ packages receive this as parameter.
type Email struct {
	Raw           string // the original, trimmed input
	Local         string // the part before @, case preserved
	Domain        string // the part after @, lowercased ASCII/Punycode form (for DNS/SMTP)
	DomainUnicode string // the part after @, Unicode form (for display/typo detection)
	Normalized    string // Local + "@" + Domain
	Valid         bool   // false if Raw cannot be split into the above
}

// NewEmail splits raw into local and domain parts. The input must contain
// exactly one @ with something on both sides; anything else comes back with
// Valid=false and Raw still populated. Rule-level syntax checking is the
// caller's job.
//
// Supports internationalized local parts (RFC 6531 / SMTPUTF8) and
// internationalized domain names (IDNA2008).
func NewEmail(raw string) Email {
	raw = strings.TrimSpace(raw)
	e := Email{Raw: raw}

	if strings.Count(raw, "@") != 1 {
		return e
	}
	at := strings.IndexByte(raw, '@')
	local, domain := raw[:at], raw[at+1:]
	if local == "" || domain == "" {
		return e
	}

	ascii, unicode, err := domainForms(strings.ToLower(domain))
	if err != nil {
		return e
	}

	e.Local = local
	e.Domain = ascii
	e.DomainUnicode = unicode
	e.Normalized = local + "@" + ascii
	e.Valid = true
	return e
}

// Domain normalizes a bare domain (no local part) to its ASCII lookup form.
// A single trailing dot is tolerated.
func Domain(raw string) (string, error) {
	raw = strings.ToLower(strings.TrimSuffix(strings.TrimSpace(raw), "."))
	if raw == "" {
		return "", errors.New("domain is empty")
	}
	ascii, _, err := domainForms(raw)
	if err != nil {
		return "", fmt.Errorf("invalid domain %q", raw)
	}
	return ascii, nil
}

// domainForms converts a lowercased domain to both ASCII/Punycode and
// Unicode forms. Pure ASCII passes through, with existing Punycode labels
// decoded for the Unicode form (xn--mnchen-3ya.de → münchen.de).
func domainForms(domain string) (ascii, unicode string, err error) {
	hasNonASCII := false
	for _, r := range domain {
		if r > 127 {
			hasNonASCII = true
			break
		}
	}

	if hasNonASCII {
		a, err := idna.Lookup.ToASCII(domain)
		if err != nil {
			return "", "", err
		}
		return a, domain, nil
	}

	u, err := idna.Display.ToUnicode(domain)
	if err != nil {
		u = domain
	}
	return domain, u, nil
}
