package mailprobe

import (
	"time"

	"github.com/relayqa/mailprobe/dnsx"
)

// Result is the full outcome of validating one address. Stages that did
// not run leave their fields at the zero value; SMTPValid stays nil
// until the probe actually happens.
type Result struct {
	Address      string          `json:"address"`
	FormatValid  bool            `json:"formatValid"`
	Domain       string          `json:"domain,omitempty"`
	MXValid      bool            `json:"mxValid"`
	MXRecords    []dnsx.MXRecord `json:"mxRecords"`
	SMTPValid    *bool           `json:"smtpValid"`
	SMTPServer   string          `json:"smtpServer,omitempty"`
	SMTPResponse string          `json:"smtpResponse,omitempty"`
	IsValid      bool            `json:"isValid"`
	ErrorMessage string          `json:"errorMessage,omitempty"`
	Suggestions  []string        `json:"suggestions"`
}

// SMTPAttempted reports whether the SMTP probe ran for this result.
func (r Result) SMTPAttempted() bool { return r.SMTPValid != nil }

// SMTPOK reports whether the probe ran and a server accepted the recipient.
func (r Result) SMTPOK() bool { return r.SMTPValid != nil && *r.SMTPValid }

// BatchResult aggregates one batch run. Results preserves input order.
type BatchResult struct {
	ID      string   `json:"id"`
	Results []Result `json:"results"`
	Total   int      `json:"totalCount"`
	Valid   int      `json:"validCount"`
	Invalid int      `json:"invalidCount"`
}

// DomainResult is the direct MX diagnostic shape for ResolveDomainMX.
type DomainResult struct {
	Domain       string          `json:"domain"`
	MXValid      bool            `json:"mxValid"`
	MXRecords    []dnsx.MXRecord `json:"mxRecords"`
	ErrorMessage string          `json:"errorMessage,omitempty"`
}

// ProbeResult is the direct SMTP diagnostic shape for ProbeSMTP.
type ProbeResult struct {
	Address      string `json:"address"`
	Domain       string `json:"domain,omitempty"`
	SMTPValid    *bool  `json:"smtpValid"`
	SMTPServer   string `json:"smtpServer,omitempty"`
	SMTPResponse string `json:"smtpResponse,omitempty"`
	ErrorMessage string `json:"errorMessage,omitempty"`
}

// Health is a configuration and selftest snapshot. Status is "healthy"
// when every enabled stage is usable, "degraded" otherwise.
type Health struct {
	Status         string        `json:"status"`
	FormatWorking  bool          `json:"formatWorking"`
	DNSAvailable   bool          `json:"dnsAvailable"`
	MXCheckEnabled bool          `json:"mxCheckEnabled"`
	Timeout        time.Duration `json:"timeout"`
}
