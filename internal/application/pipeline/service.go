// Package pipeline wires content preparation, jurisdiction detection, the
// extraction passes, reconciliation and scoring into the engine's public
// entry point.
package pipeline

import (
	"context"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/regintel/regintel/internal/config"
	"github.com/regintel/regintel/internal/domain/entity"
	"github.com/regintel/regintel/internal/domain/jurisdiction"
	"github.com/regintel/regintel/internal/domain/validation"
	"github.com/regintel/regintel/internal/extraction/content"
	"github.com/regintel/regintel/internal/extraction/draft"
	"github.com/regintel/regintel/internal/extraction/patterns"
	"github.com/regintel/regintel/internal/extraction/reconcile"
	"github.com/regintel/regintel/internal/extraction/score"
	"github.com/regintel/regintel/internal/extraction/structured"
	"github.com/regintel/regintel/internal/infrastructure/monitoring/logging"
	"github.com/regintel/regintel/internal/infrastructure/monitoring/prometheus"
	"github.com/regintel/regintel/internal/registrar"
)

// NERKind classifies an entity-recognition span.
type NERKind string

const (
	NEROrganization NERKind = "organization"
	NERPerson       NERKind = "person"
	NERLocation     NERKind = "location"
)

// NERSpan is an optional candidate supplied by an external
// entity-recognition service.  Spans are low-priority signals subject to
// the same validators as pattern-extracted values.
type NERSpan struct {
	Kind  NERKind
	Text  string
	Score float64
}

// PageInput is everything the engine consumes for one page.  The engine
// never fetches pages itself.
type PageInput struct {
	RawHTML  string
	FinalURL string

	// Domain overrides the domain derived from FinalURL.
	Domain string

	// RenderedMarkdown is an optional JS-rendered text representation,
	// preferred when raw-markup cleaning yields a sparse page.
	RenderedMarkdown string

	// Spans are optional entity-recognition candidates.
	Spans []NERSpan
}

// Service is the extraction engine.  It is side-effect-free per invocation
// and safe for concurrent use; run one goroutine per page.
type Service struct {
	preparer   *content.Preparer
	detector   *jurisdiction.Detector
	registry   jurisdiction.Registry
	validator  *validation.Validator
	structured *structured.Extractor
	extractors map[jurisdiction.Jurisdiction]patterns.Extractor
	reconciler *reconcile.Reconciler
	scorer     *score.Scorer
	registrars *registrar.Reconciler
	metrics    *prometheus.Metrics
	log        logging.Logger
	now        func() time.Time
}

// Option tunes a Service.
type Option func(*Service)

// WithRegistrar attaches the RDAP/WHOIS reconciler used by LookupRegistrar.
func WithRegistrar(r *registrar.Reconciler) Option {
	return func(s *Service) { s.registrars = r }
}

// WithMetrics attaches the metrics collector.
func WithMetrics(m *prometheus.Metrics) Option {
	return func(s *Service) { s.metrics = m }
}

// WithNow overrides the clock, for deterministic tests.
func WithNow(now func() time.Time) Option {
	return func(s *Service) { s.now = now }
}

// NewService builds the engine from configuration.  Pattern extractors for
// every known jurisdiction are compiled once here.
func NewService(cfg *config.Config, log logging.Logger, opts ...Option) *Service {
	if log == nil {
		log = logging.NewNopLogger()
	}
	log = log.Named("pipeline")

	registry := jurisdiction.NewRegistry()
	validator := validation.New()

	defaultJur, err := registry.Normalize(cfg.Extraction.DefaultJurisdiction)
	if err != nil {
		defaultJur = jurisdiction.JurisdictionGB
	}

	extractors := make(map[jurisdiction.Jurisdiction]patterns.Extractor)
	for _, info := range registry.List() {
		extractors[info.Code] = patterns.ForJurisdiction(info.Code, registry, validator, log)
	}

	s := &Service{
		preparer:   content.NewPreparer(log, content.WithSparseThreshold(cfg.Extraction.SparseTextChars)),
		detector:   jurisdiction.NewDetector(registry, defaultJur),
		registry:   registry,
		validator:  validator,
		structured: structured.NewExtractor(validator, log),
		extractors: extractors,
		reconciler: reconcile.NewReconciler(),
		scorer:     score.NewScorer(),
		log:        log,
		now:        time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Extract runs the full multi-pass pipeline on one page.  It never returns
// an error: input problems yield a NO_DATA record with score zero.  Output
// is deterministic for identical input except for the extraction timestamp.
func (s *Service) Extract(ctx context.Context, input PageInput) *entity.Record {
	started := s.now()
	requestID := uuid.NewString()
	log := s.log.With(logging.String("request_id", requestID), logging.String("url", input.FinalURL))

	domain := input.Domain
	if domain == "" {
		if d, ok := registrar.NormalizeDomain(input.FinalURL); ok {
			domain = d
		}
	}

	prepared, err := s.preparer.Prepare(input.RawHTML, input.FinalURL, input.RenderedMarkdown)
	if err != nil {
		log.Warn("content preparation failed", logging.Err(err))
		return s.emptyRecord(input.FinalURL, started)
	}

	jur := s.detector.Detect(domain, prepared.Text)
	region := s.phoneRegion(jur)
	extractor, ok := s.extractors[jur]
	if !ok {
		extractor = patterns.ForJurisdiction(jur, s.registry, s.validator, s.log)
	}

	// The two extraction passes are independent; run them side by side.
	var patternDraft, structuredDraft *draft.Draft
	var wg sync.WaitGroup
	wg.Add(2)
	go func() {
		defer wg.Done()
		patternDraft = extractor.Extract(prepared.Text)
	}()
	go func() {
		defer wg.Done()
		structuredDraft = s.structured.Extract(input.RawHTML, jur, region)
	}()
	wg.Wait()

	nerDraft := s.draftFromSpans(input.Spans, domain)

	rec := s.reconciler.Merge(jur, patternDraft, structuredDraft, nerDraft)
	rec.SourceURL = input.FinalURL
	rec.ExtractedAt = started.UTC()
	rec.ConfidenceScore = float64(s.scorer.Score(rec))

	elapsed := s.now().Sub(started)
	s.metrics.ObserveExtraction(string(jur), string(rec.Status), elapsed)
	log.Info("extraction complete",
		logging.String("jurisdiction", string(jur)),
		logging.String("status", string(rec.Status)),
		logging.Float64("score", rec.ConfidenceScore),
		logging.Duration("elapsed", elapsed))
	return rec
}

// LookupRegistrar returns the merged RDAP/WHOIS record for a domain.
func (s *Service) LookupRegistrar(ctx context.Context, domain string) (*entity.RegistrarRecord, error) {
	if s.registrars == nil {
		return nil, nil
	}
	rec, err := s.registrars.Lookup(ctx, domain)
	if err != nil {
		s.metrics.ObserveRegistrarLookup("merged", "error")
		return nil, err
	}
	s.metrics.ObserveRegistrarLookup("merged", "ok")
	return rec, nil
}

// FuseRegistrar copies registrar data into empty fields of an extracted
// record, never overwriting validated values.
func (s *Service) FuseRegistrar(rec *entity.Record, reg *entity.RegistrarRecord) {
	s.reconciler.FuseRegistrar(rec, reg)
}

func (s *Service) emptyRecord(sourceURL string, started time.Time) *entity.Record {
	return &entity.Record{
		Country:     string(s.detector.Default()),
		SourceURL:   sourceURL,
		ExtractedAt: started.UTC(),
		Status:      entity.StatusNoData,
	}
}

func (s *Service) phoneRegion(jur jurisdiction.Jurisdiction) string {
	if info, err := s.registry.Get(string(jur)); err == nil && info.PhoneRegion != "" {
		return info.PhoneRegion
	}
	return "GB"
}

// draftFromSpans turns entity-recognition candidates into the
// lowest-priority draft.  Organization candidates must pass the company
// validator plus a domain sanity check; person candidates pass the person
// validator.
func (s *Service) draftFromSpans(spans []NERSpan, domain string) *draft.Draft {
	if len(spans) == 0 {
		return nil
	}
	d := &draft.Draft{}
	for _, span := range spans {
		switch span.Kind {
		case NEROrganization:
			if d.LegalName != "" {
				continue
			}
			name, ok := s.validator.CompanyName(span.Text)
			if !ok || !s.plausibleForDomain(name, domain) {
				s.metrics.ObserveValidationReject("ner_organization")
				continue
			}
			d.LegalName = name
		case NERPerson:
			name, ok := s.validator.PersonName(span.Text)
			if !ok {
				s.metrics.ObserveValidationReject("ner_person")
				continue
			}
			if d.CEOName == "" {
				d.CEOName = name
			}
			d.Directors = append(d.Directors, name)
		}
	}
	if d.IsEmpty() {
		return nil
	}
	return d
}

// plausibleForDomain rejects a recognized company name that shares no token
// with the site's own domain and also carries no legal-form token.  Such
// names are usually partners or providers mentioned on the page.
func (s *Service) plausibleForDomain(name, domain string) bool {
	if _, ok := s.validator.LegalFormTokenIn(name); ok {
		return true
	}
	if domain == "" {
		return false
	}
	label := domain
	if i := strings.IndexByte(label, '.'); i >= 0 {
		label = label[:i]
	}
	for _, tok := range strings.Fields(strings.ToLower(name)) {
		tok = strings.Trim(tok, ".,-")
		if len(tok) < 3 {
			continue
		}
		if strings.Contains(label, tok) || strings.Contains(tok, label) {
			return true
		}
	}
	return false
}
