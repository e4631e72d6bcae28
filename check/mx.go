package check

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/relayqa/mailprobe/dnsx"
)

// MXConfig configures the MX resolution stage.
type MXConfig struct {
	Timeout  time.Duration // per-query bound (default: 10s)
	Resolver dnsx.Resolver // defaults to a dnsx.DNSResolver
	Logger   *slog.Logger  // defaults to slog.Default()
}

// MXChecker resolves a domain's mail exchangers and ranks them by
// priority for the SMTP probe.
type MXChecker struct {
	cfg MXConfig
	log *slog.Logger
}

func NewMXChecker(cfg MXConfig) *MXChecker {
	if cfg.Timeout <= 0 {
		cfg.Timeout = 10 * time.Second
	}
	if cfg.Resolver == nil {
		cfg.Resolver = dnsx.NewDNSResolver(dnsx.Config{Timeout: cfg.Timeout})
	}
	log := cfg.Logger
	if log == nil {
		log = slog.Default()
	}
	return &MXChecker{cfg: cfg, log: log}
}

// MXResult is the outcome of the MX stage.
type MXResult struct {
	Valid   bool
	Records []dnsx.MXRecord // ascending by priority, never nil
	Message string          // reason when Valid is false
	Err     error           // underlying resolver error, if any
}

// Resolve looks up the MX records for domain. Records come back sorted
// ascending by priority so callers can walk them in delivery order.
// An unavailable resolver degrades to an invalid result, never a crash.
func (c *MXChecker) Resolve(ctx context.Context, domain string) MXResult {
	ctx, cancel := context.WithTimeout(ctx, c.cfg.Timeout)
	defer cancel()

	mxs, err := c.cfg.Resolver.LookupMX(ctx, domain)
	if err != nil {
		if errors.Is(err, dnsx.ErrUnavailable) {
			c.log.Warn("DNS resolver unavailable, skipping MX validation",
				slog.String("domain", domain),
			)
		} else {
			c.log.Debug("MX lookup failed",
				slog.String("domain", domain),
				slog.Any("error", err),
			)
		}
		return MXResult{Records: []dnsx.MXRecord{}, Message: mxErrorMessage(err), Err: err}
	}

	records := dnsx.FromNetMX(mxs)
	if len(records) == 0 {
		return MXResult{Records: records, Message: "no MX records found"}
	}

	c.log.Debug("MX records resolved",
		slog.String("domain", domain),
		slog.Int("count", len(records)),
		slog.String("primary", records[0].Host),
	)
	return MXResult{Valid: true, Records: records}
}

// mxErrorMessage maps resolver errors onto the stable stage messages.
func mxErrorMessage(err error) string {
	switch {
	case errors.Is(err, dnsx.ErrNotFound):
		return "domain does not exist"
	case errors.Is(err, dnsx.ErrTimeout), errors.Is(err, context.DeadlineExceeded):
		return "DNS query timeout"
	case errors.Is(err, dnsx.ErrUnavailable):
		return "DNS validation not available"
	default:
		return fmt.Sprintf("MX lookup failed: %v", err)
	}
}
