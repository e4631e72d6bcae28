package check

import (
	"strings"

	"github.com/relayqa/mailprobe/internal/levenshtein"
)

// commonTypos maps frequently mistyped provider domains to the intended
// domain. Matched case-insensitively against the part after the last @.
var commonTypos = map[string]string{
	"gmail.co":    "gmail.com",
	"gmail.cm":    "gmail.com",
	"gmai.com":    "gmail.com",
	"gmial.com":   "gmail.com",
	"yahoo.co":    "yahoo.com",
	"yahoo.cm":    "yahoo.com",
	"yaho.com":    "yahoo.com",
	"hotmail.co":  "hotmail.com",
	"hotmail.cm":  "hotmail.com",
	"outlook.co":  "outlook.com",
	"outlook.cm":  "outlook.com",
	"mail.ru.com": "mail.ru",
	"yandex.co":   "yandex.ru",
	"yandex.cm":   "yandex.ru",
}

// fallbackTLDs are appended when the domain has no dot at all, one
// candidate per entry, in this order.
var fallbackTLDs = []string{".com", ".ru", ".org", ".net"}

// knownProviders feeds the edit-distance fallback for dotted domains the
// static table misses.
var knownProviders = []string{
	"gmail.com", "googlemail.com",
	"yahoo.com", "yahoo.co.uk",
	"outlook.com", "hotmail.com", "live.com",
	"icloud.com", "me.com",
	"protonmail.com", "proton.me",
	"aol.com",
	"zoho.com",
	"mail.com",
	"gmx.com", "gmx.net",
	"mail.ru", "bk.ru", "inbox.ru", "list.ru",
	"yandex.ru", "yandex.com",
	"rambler.ru",
}

// maxEditDistance is how far a domain may be from a known provider for
// the fallback to still suggest it.
const maxEditDistance = 2

// Suggest proposes corrected addresses for raw input that failed the
// format stage. It splits on the last @, keeps the local part verbatim
// and tries, in order: the static typo table, TLD candidates for a
// dotless domain, and an edit-distance match against known providers.
// The returned slice is never nil and may be empty; Suggest never fails.
func Suggest(address string) []string {
	suggestions := []string{}

	at := strings.LastIndex(address, "@")
	if at < 0 {
		return suggestions
	}
	local, domain := address[:at], address[at+1:]
	if domain == "" {
		return suggestions
	}
	domain = strings.ToLower(domain)

	if fixed, ok := commonTypos[domain]; ok {
		suggestions = append(suggestions, local+"@"+fixed)
	}

	if !strings.Contains(domain, ".") {
		for _, tld := range fallbackTLDs {
			suggestions = append(suggestions, local+"@"+domain+tld)
		}
		return suggestions
	}

	if len(suggestions) == 0 {
		if match := closestProvider(domain); match != "" {
			suggestions = append(suggestions, local+"@"+match)
		}
	}

	return suggestions
}

// closestProvider returns the known provider nearest to domain, or ""
// when domain is already a provider or nothing is within reach. The
// bound tightens as better matches turn up, so far-off candidates are
// abandoned after a few rows.
func closestProvider(domain string) string {
	bound := maxEditDistance
	bestMatch := ""

	for _, provider := range knownProviders {
		if domain == provider {
			return ""
		}
		if dist, ok := levenshtein.DistanceAtMost(domain, provider, bound); ok {
			bestMatch = provider
			if dist == 1 {
				break
			}
			bound = dist - 1
		}
	}

	return bestMatch
}
