package mailprobe

import (
	"log/slog"
	"time"

	"github.com/relayqa/mailprobe/check"
	"github.com/relayqa/mailprobe/dnsx"
)

// Config configures a Validator. The zero value is usable: every unset
// field falls back to a default in New.
type Config struct {
	// Timeout bounds each network operation: the MX query, the TCP
	// connect and every SMTP command exchange. Default: 10s
	Timeout time.Duration
	// DisableMX turns the MX stage off process-wide. Requests that ask
	// for MX checking then get mxValid=false with a descriptive
	// message instead of a lookup. Default: false (MX checking enabled)
	DisableMX bool
	// HeloDomain identifies the probing client in HELO. Default: "mailprobe.local"
	HeloDomain string
	// MailFrom is the synthetic sender for MAIL FROM, never a real
	// inbox. Default: "probe@mailprobe.local"
	MailFrom string
	// Port is the SMTP port probed on each exchanger. Default: "25"
	Port string
	// MaxHosts caps how many exchangers one probe walks. 0 = all.
	MaxHosts int
	// Workers is the batch fan-out width. Default: 5
	Workers int
	// MaxProbes caps concurrent SMTP sessions across all goroutines. Default: 8
	MaxProbes int64
	// Resolver answers MX queries. Default: a dnsx.DNSResolver reading
	// nameservers from /etc/resolv.conf. Use dnsx.Unavailable{} for a
	// runtime without DNS.
	Resolver dnsx.Resolver
	// Dial opens probe connections. Default: net.DialTimeout.
	Dial check.DialFunc
	// Logger receives stage-level debug detail and degradation
	// warnings. Default: slog.Default()
	Logger *slog.Logger
}

// withDefaults fills unset fields.
func (c Config) withDefaults() Config {
	if c.Timeout <= 0 {
		c.Timeout = 10 * time.Second
	}
	if c.HeloDomain == "" {
		c.HeloDomain = "mailprobe.local"
	}
	if c.MailFrom == "" {
		c.MailFrom = "probe@mailprobe.local"
	}
	if c.Port == "" {
		c.Port = "25"
	}
	if c.Workers <= 0 {
		c.Workers = 5
	}
	if c.MaxProbes <= 0 {
		c.MaxProbes = 8
	}
	if c.Resolver == nil {
		c.Resolver = dnsx.NewDNSResolver(dnsx.Config{Timeout: c.Timeout})
	}
	if c.Logger == nil {
		c.Logger = slog.Default()
	}
	return c
}
