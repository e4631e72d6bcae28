package mailprobe

import (
	"context"
	"fmt"
	"log/slog"
	"sync"

	"github.com/oklog/ulid/v2"

	"github.com/relayqa/mailprobe/check"
	"github.com/relayqa/mailprobe/dnsx"
	"github.com/relayqa/mailprobe/internal/parse"
)

// MaxBatchSize is the upper bound on addresses per ValidateBatch call.
const MaxBatchSize = 100

// Request names one address to validate and which network stages to run.
// Format checking always runs; it is the prerequisite for the rest.
type Request struct {
	Address   string `json:"address"`
	CheckMX   bool   `json:"checkMx"`
	CheckSMTP bool   `json:"checkSmtp"`
}

// Validator runs the validation pipeline. Construct with New.
type Validator struct {
	cfg    Config
	mx     *check.MXChecker
	prober *check.Prober
	log    *slog.Logger
}

// New creates a Validator from cfg, filling unset fields with defaults.
func New(cfg Config) *Validator {
	cfg = cfg.withDefaults()
	return &Validator{
		cfg: cfg,
		mx: check.NewMXChecker(check.MXConfig{
			Timeout:  cfg.Timeout,
			Resolver: cfg.Resolver,
			Logger:   cfg.Logger,
		}),
		prober: check.NewProber(check.ProbeConfig{
			HeloDomain:  cfg.HeloDomain,
			MailFrom:    cfg.MailFrom,
			Port:        cfg.Port,
			Timeout:     cfg.Timeout,
			MaxHosts:    cfg.MaxHosts,
			MaxInFlight: cfg.MaxProbes,
			Dial:        cfg.Dial,
			Logger:      cfg.Logger,
		}),
		log: cfg.Logger,
	}
}

// Validate runs the pipeline for one request: format, then MX when
// requested, then the SMTP probe when requested and MX produced hosts.
// On a format failure the suggestion engine runs and the pipeline
// stops. Validate is total: every outcome, including degradations,
// lands in the Result rather than an error.
func (v *Validator) Validate(ctx context.Context, req Request) Result {
	result := Result{
		Address:     req.Address,
		MXRecords:   []dnsx.MXRecord{},
		Suggestions: []string{},
	}

	format := check.Format(req.Address)
	result.FormatValid = format.Valid
	if !format.Valid {
		result.ErrorMessage = format.Message
		result.Suggestions = check.Suggest(req.Address)
		return result
	}
	result.Domain = format.Domain

	if req.CheckMX {
		if v.cfg.DisableMX {
			result.ErrorMessage = "MX checking disabled"
		} else {
			mx := v.mx.Resolve(ctx, format.Domain)
			result.MXValid = mx.Valid
			result.MXRecords = mx.Records
			if !mx.Valid {
				result.ErrorMessage = mx.Message
			}
		}
	}

	if req.CheckSMTP && result.MXValid && len(result.MXRecords) > 0 {
		probe := v.prober.Probe(ctx, format.Normalized, result.MXRecords)
		result.SMTPValid = &probe.Valid
		result.SMTPServer = probe.Server
		result.SMTPResponse = probe.Response
		if !probe.Valid {
			result.ErrorMessage = probe.Message
		}
	}

	result.IsValid = isValid(req, result)
	return result
}

// isValid applies the validity contract: format must pass, and every
// requested network stage must have passed too.
func isValid(req Request, r Result) bool {
	if !r.FormatValid {
		return false
	}
	if req.CheckMX && !r.MXValid {
		return false
	}
	if req.CheckSMTP && !r.SMTPOK() {
		return false
	}
	return true
}

// ValidateBatch fans the pipeline out over addresses on a bounded
// worker pool. The result list preserves input order regardless of
// completion order, and one address failing, even by panic, never
// affects its siblings. The only error is the size bound, checked
// before any network work.
func (v *Validator) ValidateBatch(ctx context.Context, addresses []string, checkMX, checkSMTP bool) (BatchResult, error) {
	if len(addresses) == 0 || len(addresses) > MaxBatchSize {
		return BatchResult{}, ErrBatchSize
	}

	batch := BatchResult{
		ID:      ulid.Make().String(),
		Results: make([]Result, len(addresses)),
		Total:   len(addresses),
	}

	v.log.Debug("batch validation started",
		slog.String("batch_id", batch.ID),
		slog.Int("count", len(addresses)),
		slog.Bool("check_mx", checkMX),
		slog.Bool("check_smtp", checkSMTP),
	)

	type job struct {
		idx     int
		address string
	}
	jobs := make(chan job, len(addresses))
	for i, addr := range addresses {
		jobs <- job{idx: i, address: addr}
	}
	close(jobs)

	workers := v.cfg.Workers
	if workers > len(addresses) {
		workers = len(addresses)
	}

	var wg sync.WaitGroup
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := range jobs {
				batch.Results[j.idx] = v.validateIsolated(ctx, Request{
					Address:   j.address,
					CheckMX:   checkMX,
					CheckSMTP: checkSMTP,
				})
			}
		}()
	}
	wg.Wait()

	for _, r := range batch.Results {
		if r.IsValid {
			batch.Valid++
		} else {
			batch.Invalid++
		}
	}

	v.log.Debug("batch validation finished",
		slog.String("batch_id", batch.ID),
		slog.Int("valid", batch.Valid),
		slog.Int("invalid", batch.Invalid),
	)
	return batch, nil
}

// validateIsolated converts a panic while validating one address into
// that address's error Result, leaving the rest of the batch alone.
func (v *Validator) validateIsolated(ctx context.Context, req Request) (result Result) {
	defer func() {
		if rec := recover(); rec != nil {
			v.log.Error("validation panic recovered",
				slog.String("address", req.Address),
				slog.Any("panic", rec),
			)
			result = Result{
				Address:      req.Address,
				MXRecords:    []dnsx.MXRecord{},
				Suggestions:  []string{},
				ErrorMessage: fmt.Sprintf("validation failed: %v", rec),
			}
		}
	}()
	return v.Validate(ctx, req)
}

// ResolveDomainMX resolves the MX records for a bare domain. The domain
// is IDNA-normalized first. Unlike the pipeline, this diagnostic runs
// even when Config.DisableMX is set.
func (v *Validator) ResolveDomainMX(ctx context.Context, domain string) DomainResult {
	ascii, err := parse.Domain(domain)
	if err != nil {
		return DomainResult{
			Domain:       domain,
			MXRecords:    []dnsx.MXRecord{},
			ErrorMessage: err.Error(),
		}
	}

	mx := v.mx.Resolve(ctx, ascii)
	return DomainResult{
		Domain:       ascii,
		MXValid:      mx.Valid,
		MXRecords:    mx.Records,
		ErrorMessage: mx.Message,
	}
}

// ProbeSMTP runs the full pipeline for one address with both network
// stages on and projects the outcome to the SMTP diagnostic shape.
func (v *Validator) ProbeSMTP(ctx context.Context, address string) ProbeResult {
	result := v.Validate(ctx, Request{Address: address, CheckMX: true, CheckSMTP: true})
	return ProbeResult{
		Address:      address,
		Domain:       result.Domain,
		SMTPValid:    result.SMTPValid,
		SMTPServer:   result.SMTPServer,
		SMTPResponse: result.SMTPResponse,
		ErrorMessage: result.ErrorMessage,
	}
}

// Suggest proposes corrected addresses for a malformed input.
func (v *Validator) Suggest(address string) []string {
	return check.Suggest(address)
}

// Health reports whether the validator's stages are usable with the
// current configuration.
func (v *Validator) Health() Health {
	formatWorking := check.Format("probe@example.com").Valid

	dnsAvailable := true
	switch v.cfg.Resolver.(type) {
	case dnsx.Unavailable, *dnsx.Unavailable:
		dnsAvailable = false
	}

	h := Health{
		Status:         "healthy",
		FormatWorking:  formatWorking,
		DNSAvailable:   dnsAvailable,
		MXCheckEnabled: !v.cfg.DisableMX,
		Timeout:        v.cfg.Timeout,
	}
	if !formatWorking || (h.MXCheckEnabled && !dnsAvailable) {
		h.Status = "degraded"
	}
	return h
}
