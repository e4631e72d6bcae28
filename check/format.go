package check

import (
	"strings"
	"unicode"

	"github.com/relayqa/mailprobe/internal/parse"
)

// FormatResult is the outcome of the format stage.
type FormatResult struct {
	Valid         bool
	Local         string // part before @, case preserved
	Domain        string // part after @, lowercased ASCII/Punycode form
	DomainUnicode string // part after @, Unicode form
	Normalized    string // Local + "@" + Domain
	Message       string // reason when Valid is false
}

// Format checks the shape of address against RFC 5321/5322 rules with
// RFC 6531 (SMTPUTF8) local parts and IDNA2008 domains. It is a pure
// function: no network, no state, same input same answer.
func Format(address string) FormatResult {
	email := parse.NewEmail(address)

	if email.Raw == "" {
		return FormatResult{Message: "empty email address"}
	}
	if !email.Valid {
		return FormatResult{Message: "invalid email syntax"}
	}

	// Length ceilings (RFC 5321)
	if len(email.Raw) > 254 {
		return FormatResult{Message: "email address exceeds 254 characters"}
	}
	if len(email.Local) > 64 {
		return FormatResult{Message: "local part exceeds 64 characters"}
	}

	if msg := checkLocal(email.Local); msg != "" {
		return FormatResult{Message: msg}
	}
	// Domain rules run on the Unicode form so messages read naturally;
	// IDNA2008 validation already happened during parsing.
	if msg := checkDomain(email.DomainUnicode); msg != "" {
		return FormatResult{Message: msg}
	}

	return FormatResult{
		Valid:         true,
		Local:         email.Local,
		Domain:        email.Domain,
		DomainUnicode: email.DomainUnicode,
		Normalized:    email.Normalized,
	}
}

// checkLocal validates the local part. ASCII follows the RFC 5321
// atom character set; non-ASCII runes are allowed per RFC 6531 except
// control characters. Returns error text, or "" if ok.
func checkLocal(local string) string {
	// RFC 5321 ASCII special characters (besides alphanumeric)
	const asciiSpecial = "!#$%&'*+/=?^_`{|}~-."

	for _, ch := range local {
		if ch > 127 {
			if unicode.IsControl(ch) {
				return "local part contains control character"
			}
			continue
		}
		if (ch >= 'a' && ch <= 'z') || (ch >= 'A' && ch <= 'Z') || (ch >= '0' && ch <= '9') {
			continue
		}
		if !strings.ContainsRune(asciiSpecial, ch) {
			return "local part contains invalid character: " + string(ch)
		}
	}

	if strings.HasPrefix(local, ".") || strings.HasSuffix(local, ".") {
		return "local part cannot start or end with a dot"
	}
	if strings.Contains(local, "..") {
		return "local part cannot contain consecutive dots"
	}

	return ""
}

// checkDomain validates the domain part (Unicode form).
// Returns error text, or "" if ok.
func checkDomain(domain string) string {
	labels := strings.Split(domain, ".")
	if len(labels) < 2 {
		return "domain must have at least two labels"
	}

	for _, label := range labels {
		if label == "" {
			return "domain contains empty label (consecutive dots)"
		}
		if len(label) > 63 {
			return "domain label exceeds 63 characters"
		}
		if strings.HasPrefix(label, "-") || strings.HasSuffix(label, "-") {
			return "domain label cannot start or end with a hyphen"
		}
		for _, ch := range label {
			if !unicode.IsLetter(ch) && !unicode.IsDigit(ch) && ch != '-' {
				return "domain label contains invalid character: " + string(ch)
			}
		}
	}

	// TLD cannot be all digits
	tld := labels[len(labels)-1]
	allDigits := true
	for _, ch := range tld {
		if !unicode.IsDigit(ch) {
			allDigits = false
			break
		}
	}
	if allDigits {
		return "TLD cannot be all digits"
	}

	return ""
}
