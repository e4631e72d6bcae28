package dnsx

import (
	"context"
	"errors"
	"fmt"
	"net"
	"strings"
)

// StdResolver implements Resolver using the standard library's net.Resolver,
// for callers that want queries routed through the platform's own resolution
// path. The standard library reports a missing domain and a domain without
// MX records through the same "not found" error, so both surface as
// ErrNotFound here; use DNSResolver when that distinction matters.
type StdResolver struct {
	resolver *net.Resolver
}

var _ Resolver = (*StdResolver)(nil)

// NewStdResolver creates a resolver backed by net.DefaultResolver.
func NewStdResolver() *StdResolver {
	return &StdResolver{resolver: net.DefaultResolver}
}

// NewStdResolverWithDialer routes queries through a custom dial function,
// which allows pointing the standard resolver at specific DNS servers.
func NewStdResolverWithDialer(dial func(ctx context.Context, network, address string) (net.Conn, error)) *StdResolver {
	return &StdResolver{
		resolver: &net.Resolver{
			PreferGo: true,
			Dial:     dial,
		},
	}
}

// LookupMX queries the MX records for domain.
func (r *StdResolver) LookupMX(ctx context.Context, domain string) ([]*net.MX, error) {
	records, err := r.resolver.LookupMX(ctx, strings.TrimSuffix(domain, "."))
	if err != nil {
		return nil, convertError(err)
	}
	return records, nil
}

// convertError maps standard library DNS errors onto the package sentinels.
func convertError(err error) error {
	var dnsErr *net.DNSError
	if errors.As(err, &dnsErr) {
		switch {
		case dnsErr.IsNotFound:
			return ErrNotFound
		case dnsErr.IsTimeout:
			return ErrTimeout
		case dnsErr.IsTemporary:
			return ErrServFail
		}
	}
	if errors.Is(err, context.DeadlineExceeded) {
		return ErrTimeout
	}
	return fmt.Errorf("dnsx: lookup failed: %w", err)
}
