package check

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"time"

	"golang.org/x/sync/semaphore"

	"github.com/relayqa/mailprobe/dnsx"
	"github.com/relayqa/mailprobe/internal/smtpconn"
)

// probeFailedMessage is reported when every exchanger was tried without
// one accepting the recipient.
const probeFailedMessage = "unable to connect to any SMTP server"

// ErrNoMXHosts is returned in ProbeOutcome.Err when Probe is handed an
// empty exchanger list.
var ErrNoMXHosts = errors.New("check: no MX hosts to probe")

// DialFunc opens the raw TCP connection for a probe session. Tests swap
// it for net.Pipe backed servers.
type DialFunc func(network, address string, timeout time.Duration) (net.Conn, error)

// ProbeConfig configures the SMTP probe stage.
type ProbeConfig struct {
	HeloDomain  string        // client identity in HELO (default: "mailprobe.local")
	MailFrom    string        // synthetic sender, never a real inbox (default: "probe@mailprobe.local")
	Port        string        // SMTP port (default: "25")
	Timeout     time.Duration // per socket operation (default: 10s)
	MaxHosts    int           // cap on exchangers tried per probe, 0 = all
	MaxInFlight int64         // cap on concurrent sessions across goroutines (default: 8)
	Dial        DialFunc      // defaults to net.DialTimeout
	Logger      *slog.Logger  // defaults to slog.Default()
}

// Prober drives the HELO/MAIL FROM/RCPT TO conversation against a
// domain's exchangers. A weighted semaphore bounds how many sessions
// run at once, so batch fan-out cannot open unbounded sockets.
type Prober struct {
	cfg ProbeConfig
	sem *semaphore.Weighted
	log *slog.Logger
}

func NewProber(cfg ProbeConfig) *Prober {
	if cfg.HeloDomain == "" {
		cfg.HeloDomain = "mailprobe.local"
	}
	if cfg.MailFrom == "" {
		cfg.MailFrom = "probe@mailprobe.local"
	}
	if cfg.Port == "" {
		cfg.Port = "25"
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = 10 * time.Second
	}
	if cfg.MaxInFlight <= 0 {
		cfg.MaxInFlight = 8
	}
	log := cfg.Logger
	if log == nil {
		log = slog.Default()
	}
	return &Prober{cfg: cfg, sem: semaphore.NewWeighted(cfg.MaxInFlight), log: log}
}

// ProbeOutcome is the outcome of one probe run.
type ProbeOutcome struct {
	Valid    bool
	Server   string // exchanger that accepted the recipient
	Response string // that exchanger's RCPT TO reply text
	Message  string // reason when Valid is false
	Attempts int    // exchangers actually tried
	Err      error  // last per-host failure, a *HostError when a host was tried
}

// HostError records a failure against one exchanger.
type HostError struct {
	Host string
	Err  error
}

func (e *HostError) Error() string { return fmt.Sprintf("%s: %v", e.Host, e.Err) }
func (e *HostError) Unwrap() error { return e.Err }

// Probe walks records in priority order and reports the first exchanger
// that accepts RCPT TO for address (reply 250, or 251 for forwarding).
// A rejection or transport fault at one host only advances to the next;
// Valid turns false once the list is exhausted.
func (p *Prober) Probe(ctx context.Context, address string, records []dnsx.MXRecord) ProbeOutcome {
	if len(records) == 0 {
		return ProbeOutcome{Message: probeFailedMessage, Err: ErrNoMXHosts}
	}

	if err := p.sem.Acquire(ctx, 1); err != nil {
		return ProbeOutcome{Message: "probe cancelled", Err: err}
	}
	defer p.sem.Release(1)

	maxHosts := p.cfg.MaxHosts
	if maxHosts <= 0 || maxHosts > len(records) {
		maxHosts = len(records)
	}

	var out ProbeOutcome
	for i := 0; i < maxHosts; i++ {
		select {
		case <-ctx.Done():
			out.Message = "probe cancelled"
			out.Err = ctx.Err()
			return out
		default:
		}

		host := records[i].Host
		out.Attempts++

		code, text, err := p.tryHost(host, address)
		if err != nil {
			out.Err = &HostError{Host: host, Err: err}
			p.log.Debug("SMTP probe failed",
				slog.String("host", host),
				slog.Any("error", err),
			)
			continue
		}
		if code == 250 || code == 251 {
			out.Valid = true
			out.Server = host
			out.Response = text
			out.Err = nil
			return out
		}
		out.Err = &HostError{Host: host, Err: &smtpconn.UnexpectedCodeError{Cmd: "RCPT TO", Code: code, Msg: text}}
		p.log.Debug("SMTP server rejected recipient",
			slog.String("host", host),
			slog.Int("code", code),
			slog.String("response", text),
		)
	}

	out.Message = probeFailedMessage
	return out
}

// tryHost runs one full session against one exchanger. The session is
// always closed with QUIT, whatever the recipient's fate. Transport and
// handshake failures come back as err; an answered RCPT TO comes back
// as its code and text for the caller to judge.
func (p *Prober) tryHost(host, address string) (int, string, error) {
	s, err := smtpconn.Open(net.JoinHostPort(host, p.cfg.Port), p.cfg.Timeout, p.cfg.Dial)
	if err != nil {
		return 0, "", err
	}
	defer s.Quit()

	if err := s.Helo(p.cfg.HeloDomain); err != nil {
		return 0, "", err
	}
	if err := s.MailFrom(p.cfg.MailFrom); err != nil {
		return 0, "", err
	}
	return s.RcptTo(address)
}
