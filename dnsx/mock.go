package dnsx

import (
	"context"
	"net"
	"strings"
)

// MockResolver is a Resolver for tests, serving records from maps keyed by
// domain (lowercase, no trailing dot).
//
// A domain present in MX with an empty slice resolves successfully with no
// records, a domain present in Err fails with the configured error, and a
// domain in neither map fails with ErrNotFound.
type MockResolver struct {
	MX  map[string][]*net.MX
	Err map[string]error
}

var _ Resolver = MockResolver{}

func (r MockResolver) LookupMX(ctx context.Context, domain string) ([]*net.MX, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	domain = strings.TrimSuffix(strings.ToLower(domain), ".")
	if err, ok := r.Err[domain]; ok {
		return nil, err
	}
	records, ok := r.MX[domain]
	if !ok {
		return nil, ErrNotFound
	}
	return copyMX(records), nil
}

// copyMX deep-copies records so callers cannot mutate the fixtures.
func copyMX(records []*net.MX) []*net.MX {
	out := make([]*net.MX, len(records))
	for i, r := range records {
		cp := *r
		out[i] = &cp
	}
	return out
}
