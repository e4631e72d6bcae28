package dnsx

import (
	"context"
	"errors"
	"fmt"
	"net"
	"strings"
	"time"

	mdns "github.com/miekg/dns"
)

// Config contains configuration for DNSResolver.
type Config struct {
	// Nameservers is the list of DNS servers to query (e.g. "8.8.8.8:53").
	// If empty, system resolvers from /etc/resolv.conf are used, falling
	// back to public DNS (8.8.8.8, 1.1.1.1).
	Nameservers []string

	// Timeout is the timeout for an individual query exchange. Default 5s.
	Timeout time.Duration

	// Retries is the number of extra passes over the nameserver list after
	// the first. Default 2.
	Retries int
}

// DNSResolver implements Resolver using github.com/miekg/dns. Querying
// nameservers directly keeps the response code visible, which is what lets
// callers tell "domain does not exist" apart from "domain has no MX
// records" and from transient server failures.
type DNSResolver struct {
	config Config
	client *mdns.Client
}

var _ Resolver = (*DNSResolver)(nil)

// NewDNSResolver creates a resolver that exchanges queries with the
// configured nameservers.
func NewDNSResolver(config Config) *DNSResolver {
	if config.Timeout == 0 {
		config.Timeout = 5 * time.Second
	}
	if config.Retries == 0 {
		config.Retries = 2
	}
	if len(config.Nameservers) == 0 {
		config.Nameservers = systemNameservers()
	}

	return &DNSResolver{
		config: config,
		client: &mdns.Client{Timeout: config.Timeout},
	}
}

// Config returns the resolver's effective configuration.
func (r *DNSResolver) Config() Config {
	return r.config
}

// LookupMX queries the MX records for domain. The returned slice is empty
// (with a nil error) when the domain exists but publishes no MX records.
func (r *DNSResolver) LookupMX(ctx context.Context, domain string) ([]*net.MX, error) {
	resp, err := r.query(ctx, domain, mdns.TypeMX)
	if err != nil {
		return nil, err
	}

	var records []*net.MX
	for _, rr := range resp.Answer {
		if mx, ok := rr.(*mdns.MX); ok {
			records = append(records, &net.MX{
				Host: mx.Mx,
				Pref: mx.Preference,
			})
		}
	}
	return records, nil
}

// query performs a DNS exchange with retries across the nameserver list.
func (r *DNSResolver) query(ctx context.Context, name string, qtype uint16) (*mdns.Msg, error) {
	if len(r.config.Nameservers) == 0 {
		return nil, ErrUnavailable
	}

	m := new(mdns.Msg)
	m.SetQuestion(absolute(name), qtype)
	m.RecursionDesired = true

	var lastErr error
	for i := 0; i <= r.config.Retries; i++ {
		for _, server := range r.config.Nameservers {
			if err := ctx.Err(); err != nil {
				return nil, classifyExchangeError(err)
			}

			resp, _, err := r.client.ExchangeContext(ctx, m, server)
			if err != nil {
				lastErr = classifyExchangeError(err)
				continue
			}

			switch resp.Rcode {
			case mdns.RcodeSuccess:
				return resp, nil
			case mdns.RcodeNameError:
				return nil, ErrNotFound
			case mdns.RcodeServerFailure:
				lastErr = ErrServFail
			case mdns.RcodeRefused:
				lastErr = ErrRefused
			default:
				lastErr = fmt.Errorf("dnsx: unexpected rcode %d", resp.Rcode)
			}
		}
	}

	if lastErr != nil {
		return nil, lastErr
	}
	return nil, ErrServFail
}

// classifyExchangeError maps transport level failures onto the package
// sentinels where possible.
func classifyExchangeError(err error) error {
	if errors.Is(err, context.DeadlineExceeded) {
		return ErrTimeout
	}
	var nerr net.Error
	if errors.As(err, &nerr) && nerr.Timeout() {
		return ErrTimeout
	}
	if errors.Is(err, context.Canceled) {
		return err
	}
	return fmt.Errorf("dnsx: exchange failed: %w", err)
}

// systemNameservers reads the resolvers from /etc/resolv.conf, falling back
// to public DNS when none are configured.
func systemNameservers() []string {
	config, err := mdns.ClientConfigFromFile("/etc/resolv.conf")
	if err != nil || len(config.Servers) == 0 {
		return []string{"8.8.8.8:53", "1.1.1.1:53"}
	}

	servers := make([]string, 0, len(config.Servers))
	for _, s := range config.Servers {
		if !strings.Contains(s, ":") {
			s += ":" + config.Port
		}
		servers = append(servers, s)
	}
	return servers
}

// absolute ensures the name is in FQDN form (trailing dot).
func absolute(name string) string {
	if !strings.HasSuffix(name, ".") {
		return name + "."
	}
	return name
}
