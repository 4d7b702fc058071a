package registrar

import (
	"context"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/regintel/regintel/internal/domain/entity"
	"github.com/regintel/regintel/internal/infrastructure/cache"
	"github.com/regintel/regintel/internal/infrastructure/monitoring/logging"
	"github.com/regintel/regintel/pkg/errors"
)

type stubSource struct {
	name  string
	rec   *Record
	err   error
	delay time.Duration
	calls int32
}

func (s *stubSource) Name() string { return s.name }

func (s *stubSource) Lookup(ctx context.Context, domain string) (*Record, error) {
	atomic.AddInt32(&s.calls, 1)
	if s.delay > 0 {
		select {
		case <-time.After(s.delay):
		case <-ctx.Done():
			return nil, errors.Wrap(ctx.Err(), errors.ErrCodeLookupTimeout, "stub timeout")
		}
	}
	return s.rec, s.err
}

func newTestReconciler(rdapSrc, whoisSrc Source, opts ...ReconcilerOption) *Reconciler {
	all := append([]ReconcilerOption{
		WithSources(rdapSrc, whoisSrc),
		WithTimeout(200 * time.Millisecond),
	}, opts...)
	return NewReconciler(nil, logging.NewNopLogger(), all...)
}

func TestLookupExactNameMatchConfidence(t *testing.T) {
	rdapSrc := &stubSource{name: "rdap", rec: &Record{
		RegistrantName: "Acme GmbH", RegistrantCountry: "DE", RegistrantAddress: "Hauptstr. 1",
	}}
	whoisSrc := &stubSource{name: "whois", rec: &Record{RegistrantName: "ACME GMBH"}}

	rec, err := newTestReconciler(rdapSrc, whoisSrc).Lookup(context.Background(), "acme.de")
	require.NoError(t, err)

	assert.Equal(t, entity.SourceRDAPWhois, rec.Source)
	assert.Equal(t, "Acme GmbH", rec.RegistrantName, "rdap field wins")
	assert.GreaterOrEqual(t, rec.WhoisConfidence, 0.8)
}

func TestLookupRDAPOnly(t *testing.T) {
	rdapSrc := &stubSource{name: "rdap", rec: &Record{RegistrantName: "Acme GmbH"}}
	whoisSrc := &stubSource{name: "whois", err: errors.New(errors.ErrCodeWhoisUnavailable, "refused")}

	rec, err := newTestReconciler(rdapSrc, whoisSrc).Lookup(context.Background(), "acme.de")
	require.NoError(t, err, "one failing source must not fail the lookup")

	assert.Equal(t, entity.SourceRDAP, rec.Source)
	assert.Equal(t, "Acme GmbH", rec.RegistrantName)
	assert.InDelta(t, 0.4, rec.WhoisConfidence, 0.11)
}

func TestLookupPartialNameMatch(t *testing.T) {
	rdapSrc := &stubSource{name: "rdap", rec: &Record{RegistrantName: "Acme GmbH"}}
	whoisSrc := &stubSource{name: "whois", rec: &Record{RegistrantName: "Acme"}}

	rec, err := newTestReconciler(rdapSrc, whoisSrc).Lookup(context.Background(), "acme.de")
	require.NoError(t, err)

	// 0.4 rdap name + 0.2 whois name + 0.1 partial match.
	assert.InDelta(t, 0.7, rec.WhoisConfidence, 0.001)
}

func TestLookupWhoisFillsGaps(t *testing.T) {
	created := time.Date(2015, 3, 1, 0, 0, 0, 0, time.UTC)
	rdapSrc := &stubSource{name: "rdap", rec: &Record{RegistrantName: "Acme GmbH"}}
	whoisSrc := &stubSource{name: "whois", rec: &Record{
		Registrar:   "Example Registrar Inc",
		CreatedDate: &created,
		NameServers: []string{"ns1.example.net"},
	}}

	rec, err := newTestReconciler(rdapSrc, whoisSrc).Lookup(context.Background(), "acme.de")
	require.NoError(t, err)

	assert.Equal(t, "Example Registrar Inc", rec.Registrar)
	assert.Equal(t, &created, rec.CreatedDate)
	assert.Equal(t, []string{"ns1.example.net"}, rec.NameServers)
}

func TestLookupBothSourcesFail(t *testing.T) {
	rdapSrc := &stubSource{name: "rdap", err: errors.New(errors.ErrCodeRDAPUnavailable, "down")}
	whoisSrc := &stubSource{name: "whois", err: errors.New(errors.ErrCodeWhoisUnavailable, "down")}

	_, err := newTestReconciler(rdapSrc, whoisSrc).Lookup(context.Background(), "acme.de")
	require.Error(t, err)
	assert.True(t, errors.IsCode(err, errors.ErrCodeRDAPUnavailable))
}

func TestLookupSlowSourceTimesOutAlone(t *testing.T) {
	rdapSrc := &stubSource{name: "rdap", rec: &Record{RegistrantName: "Acme GmbH"}}
	whoisSrc := &stubSource{name: "whois", delay: time.Second, rec: &Record{RegistrantName: "ACME GMBH"}}

	rec, err := newTestReconciler(rdapSrc, whoisSrc, WithTimeout(50*time.Millisecond)).
		Lookup(context.Background(), "acme.de")
	require.NoError(t, err)

	assert.Equal(t, entity.SourceRDAP, rec.Source)
	assert.Equal(t, "Acme GmbH", rec.RegistrantName)
}

func TestLookupInvalidDomain(t *testing.T) {
	_, err := newTestReconciler(&stubSource{name: "rdap"}, &stubSource{name: "whois"}).
		Lookup(context.Background(), "not a domain")
	require.Error(t, err)
	assert.True(t, errors.IsCode(err, errors.ErrCodeDomainInvalid))
}

func TestLookupUsesCache(t *testing.T) {
	rdapSrc := &stubSource{name: "rdap", rec: &Record{RegistrantName: "Acme GmbH"}}
	whoisSrc := &stubSource{name: "whois", rec: &Record{RegistrantName: "ACME GMBH"}}

	r := NewReconciler(cache.NewMemory(time.Minute, logging.NewNopLogger()),
		logging.NewNopLogger(), WithSources(rdapSrc, whoisSrc), WithCacheTTL(time.Minute))

	first, err := r.Lookup(context.Background(), "acme.de")
	require.NoError(t, err)
	second, err := r.Lookup(context.Background(), "https://www.acme.de/impressum")
	require.NoError(t, err)

	assert.Equal(t, first.RegistrantName, second.RegistrantName)
	assert.Equal(t, int32(1), atomic.LoadInt32(&rdapSrc.calls), "second lookup must hit the cache")
	assert.Equal(t, int32(1), atomic.LoadInt32(&whoisSrc.calls))
}

func TestNormalizeDomain(t *testing.T) {
	cases := []struct {
		in   string
		want string
		ok   bool
	}{
		{"example.de", "example.de", true},
		{"https://www.example.co.uk/impressum?x=1", "example.co.uk", true},
		{"EXAMPLE.DE", "example.de", true},
		{"example.de:8080", "example.de", true},
		{"localhost", "", false},
		{"not a domain", "", false},
		{"", "", false},
	}
	for _, tc := range cases {
		got, ok := NormalizeDomain(tc.in)
		if ok != tc.ok || got != tc.want {
			t.Errorf("NormalizeDomain(%q) = %q,%v want %q,%v", tc.in, got, ok, tc.want, tc.ok)
		}
	}
}
