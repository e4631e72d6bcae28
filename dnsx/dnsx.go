// Package dnsx resolves the mail exchangers the validation pipeline
// depends on.
//
// The Resolver interface has three implementations: DNSResolver queries
// nameservers directly through github.com/miekg/dns and reports the exact
// failure class (NXDOMAIN, timeout, server failure), StdResolver wraps the
// standard library resolver, and MockResolver serves fixed records for
// tests. A successful query for a domain that simply has no MX records is
// not an error at this layer: it returns an empty slice and a nil error.
package dnsx

import (
	"context"
	"errors"
	"net"
	"sort"
	"strings"
)

// Resolver looks up the mail exchangers for a domain.
// Implementations must honor context cancellation and return one of the
// package sentinel errors for classifiable failures.
type Resolver interface {
	LookupMX(ctx context.Context, domain string) ([]*net.MX, error)
}

var (
	// ErrNotFound means the domain itself does not exist (NXDOMAIN).
	ErrNotFound = errors.New("dnsx: domain not found")

	// ErrTimeout means the query exceeded its deadline.
	ErrTimeout = errors.New("dnsx: query timeout")

	// ErrServFail means an upstream nameserver reported a failure.
	ErrServFail = errors.New("dnsx: server failure")

	// ErrRefused means an upstream nameserver refused the query.
	ErrRefused = errors.New("dnsx: query refused")

	// ErrUnavailable means no usable resolver exists in this environment.
	// Callers are expected to degrade, not crash.
	ErrUnavailable = errors.New("dnsx: resolver unavailable")
)

// Unavailable is a Resolver for environments without DNS access.
// Every lookup fails with ErrUnavailable.
type Unavailable struct{}

var _ Resolver = Unavailable{}

func (Unavailable) LookupMX(context.Context, string) ([]*net.MX, error) {
	return nil, ErrUnavailable
}

// MXRecord is one mail exchanger with its routing priority.
// Lower priority values are preferred.
type MXRecord struct {
	Priority uint16 `json:"priority"`
	Host     string `json:"exchange"`
}

// FromNetMX converts resolver output into MXRecords sorted ascending by
// priority, with trailing dots trimmed from the exchange hosts. The SMTP
// probe walks the result in slice order, so the sort is part of the
// contract. The result is never nil.
func FromNetMX(records []*net.MX) []MXRecord {
	out := make([]MXRecord, 0, len(records))
	for _, r := range records {
		if r == nil {
			continue
		}
		out = append(out, MXRecord{
			Priority: r.Pref,
			Host:     strings.TrimSuffix(r.Host, "."),
		})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Priority < out[j].Priority })
	return out
}
