// Package mailprobe reports whether an email address is likely
// deliverable. Three escalating stages feed one verdict: format rules,
// MX record resolution and a live SMTP handshake probe against the
// domain's exchangers. A batch entry point fans the pipeline out over a
// bounded worker pool with per-address failure isolation.
//
// Single address:
//
//	v := mailprobe.New(mailprobe.Config{})
//	result := v.Validate(ctx, mailprobe.Request{
//	    Address: "user@example.com",
//	    CheckMX: true,
//	})
//
// Batch:
//
//	batch, err := v.ValidateBatch(ctx, addresses, true, false)
package mailprobe

import (
	"github.com/relayqa/mailprobe/check"
	"github.com/relayqa/mailprobe/dnsx"
)

// MXRecord is a re-export from the dnsx package so that consumers
// don't need to import it directly.
type MXRecord = dnsx.MXRecord

// DialFunc is a re-export.
type DialFunc = check.DialFunc
