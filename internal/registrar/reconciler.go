package registrar

import (
	"context"
	"strings"
	"sync"
	"time"

	"github.com/regintel/regintel/internal/domain/entity"
	"github.com/regintel/regintel/internal/infrastructure/cache"
	"github.com/regintel/regintel/internal/infrastructure/monitoring/logging"
	"github.com/regintel/regintel/pkg/errors"
)

// Reconciler runs RDAP and WHOIS lookups concurrently and merges them.
// RDAP wins field-by-field because it is structured and typed; WHOIS fills
// the gaps.  Lookups for the same domain within the cache TTL are served
// from cache.
type Reconciler struct {
	rdap     Source
	whois    Source
	cache    cache.Cache
	timeout  time.Duration
	cacheTTL time.Duration
	log      logging.Logger
}

// ReconcilerOption tunes the Reconciler.
type ReconcilerOption func(*Reconciler)

// WithTimeout sets the per-source lookup timeout.
func WithTimeout(d time.Duration) ReconcilerOption {
	return func(r *Reconciler) { r.timeout = d }
}

// WithCacheTTL sets how long merged records are cached per domain.
func WithCacheTTL(d time.Duration) ReconcilerOption {
	return func(r *Reconciler) { r.cacheTTL = d }
}

// WithSources swaps the protocol clients, mainly for tests.
func WithSources(rdap, whois Source) ReconcilerOption {
	return func(r *Reconciler) { r.rdap, r.whois = rdap, whois }
}

// NewReconciler builds a Reconciler with the real RDAP and WHOIS clients.
func NewReconciler(c cache.Cache, log logging.Logger, opts ...ReconcilerOption) *Reconciler {
	if log == nil {
		log = logging.NewNopLogger()
	}
	r := &Reconciler{
		rdap:     NewRDAPSource(log),
		whois:    NewWhoisSource(log),
		cache:    c,
		timeout:  10 * time.Second,
		cacheTTL: time.Hour,
		log:      log.Named("registrar"),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// sourceResult is the explicit outcome of one source, so callers can tell
// "source absent" from "source errored" without reading logs.
type sourceResult struct {
	rec *Record
	err error
}

// Lookup returns the merged registration record for a bare domain.  A
// single failed source degrades the record; only both sources failing is an
// error.
func (r *Reconciler) Lookup(ctx context.Context, rawDomain string) (*entity.RegistrarRecord, error) {
	domain, ok := NormalizeDomain(rawDomain)
	if !ok {
		return nil, errors.New(errors.ErrCodeDomainInvalid, "not a plausible domain").WithDetail(rawDomain)
	}

	if r.cache == nil {
		return r.lookup(ctx, domain)
	}
	var rec entity.RegistrarRecord
	err := r.cache.GetOrLoad(ctx, "registrar:"+domain, &rec, r.cacheTTL,
		func(ctx context.Context) (interface{}, error) {
			return r.lookup(ctx, domain)
		})
	if err != nil {
		return nil, err
	}
	return &rec, nil
}

func (r *Reconciler) lookup(ctx context.Context, domain string) (*entity.RegistrarRecord, error) {
	rdapRes, whoisRes := r.queryBoth(ctx, domain)

	if rdapRes.err != nil {
		r.log.Warn("rdap source failed",
			logging.String("domain", domain), logging.Err(rdapRes.err))
	}
	if whoisRes.err != nil {
		r.log.Warn("whois source failed",
			logging.String("domain", domain), logging.Err(whoisRes.err))
	}
	if rdapRes.err != nil && whoisRes.err != nil {
		return nil, errors.Wrap(rdapRes.err, errors.ErrCodeRDAPUnavailable,
			"all registrar sources failed").WithDetail(domain)
	}

	return r.merge(domain, rdapRes.rec, whoisRes.rec), nil
}

// queryBoth issues the two lookups concurrently, each under its own
// timeout, and always waits for both.  One source failing never cancels
// the other.
func (r *Reconciler) queryBoth(ctx context.Context, domain string) (rdapRes, whoisRes sourceResult) {
	query := func(src Source, out *sourceResult) {
		cctx, cancel := context.WithTimeout(ctx, r.timeout)
		defer cancel()
		out.rec, out.err = src.Lookup(cctx, domain)
	}

	var wg sync.WaitGroup
	wg.Add(2)
	go func() { defer wg.Done(); query(r.rdap, &rdapRes) }()
	go func() { defer wg.Done(); query(r.whois, &whoisRes) }()
	wg.Wait()
	return rdapRes, whoisRes
}

func (r *Reconciler) merge(domain string, rdapRec, whoisRec *Record) *entity.RegistrarRecord {
	out := &entity.RegistrarRecord{Domain: domain, Source: entity.SourceNone}

	switch {
	case !rdapRec.IsEmpty() && !whoisRec.IsEmpty():
		out.Source = entity.SourceRDAPWhois
	case !rdapRec.IsEmpty():
		out.Source = entity.SourceRDAP
	case !whoisRec.IsEmpty():
		out.Source = entity.SourceWhois
	}

	for _, rec := range []*Record{rdapRec, whoisRec} {
		if rec == nil {
			continue
		}
		fill(&out.RegistrantName, rec.RegistrantName)
		fill(&out.RegistrantAddress, rec.RegistrantAddress)
		fill(&out.RegistrantCity, rec.RegistrantCity)
		fill(&out.RegistrantZip, rec.RegistrantZip)
		fill(&out.RegistrantCountry, rec.RegistrantCountry)
		fill(&out.Registrar, rec.Registrar)
		if out.CreatedDate == nil {
			out.CreatedDate = rec.CreatedDate
		}
		if out.ExpiryDate == nil {
			out.ExpiryDate = rec.ExpiryDate
		}
		if len(out.NameServers) == 0 {
			out.NameServers = rec.NameServers
		}
		if len(out.StatusFlags) == 0 {
			out.StatusFlags = rec.StatusFlags
		}
	}

	out.WhoisConfidence = confidence(rdapRec, whoisRec)
	return out
}

// confidence scores cross-source agreement: 0.4 for an RDAP registrant
// name, 0.2 for a WHOIS one, 0.2 for an exact case-insensitive name match,
// 0.1 for a partial (containment) match, 0.1 each for a country and an
// address from either source.  Capped at 1.0.
func confidence(rdapRec, whoisRec *Record) float64 {
	var rdapName, whoisName string
	if rdapRec != nil {
		rdapName = strings.TrimSpace(rdapRec.RegistrantName)
	}
	if whoisRec != nil {
		whoisName = strings.TrimSpace(whoisRec.RegistrantName)
	}

	score := 0.0
	if rdapName != "" {
		score += 0.4
	}
	if whoisName != "" {
		score += 0.2
	}
	if rdapName != "" && whoisName != "" {
		a, b := strings.ToLower(rdapName), strings.ToLower(whoisName)
		if a == b {
			score += 0.2
		} else if strings.Contains(a, b) || strings.Contains(b, a) {
			score += 0.1
		}
	}
	if hasCountry(rdapRec) || hasCountry(whoisRec) {
		score += 0.1
	}
	if hasAddress(rdapRec) || hasAddress(whoisRec) {
		score += 0.1
	}
	if score > 1.0 {
		score = 1.0
	}
	return score
}

func hasCountry(r *Record) bool { return r != nil && r.RegistrantCountry != "" }
func hasAddress(r *Record) bool { return r != nil && r.RegistrantAddress != "" }

func fill(dst *string, src string) {
	if *dst == "" && src != "" {
		*dst = src
	}
}
