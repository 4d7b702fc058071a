package registrar

import (
	"context"
	"strings"

	"github.com/likexian/whois"
	whoisparser "github.com/likexian/whois-parser"

	"github.com/regintel/regintel/internal/infrastructure/monitoring/logging"
	"github.com/regintel/regintel/pkg/errors"
)

// whoisQuerier is the part of whois.Client we use, split out for tests.
type whoisQuerier interface {
	Whois(domain string, servers ...string) (string, error)
}

// WhoisSource queries legacy WHOIS.  Responses are free-text and
// registry-dependent; parsing failures are expected and reported as errors
// so the source drops out of the merge cleanly.
type WhoisSource struct {
	client whoisQuerier
	log    logging.Logger
}

// NewWhoisSource builds the WHOIS source.
func NewWhoisSource(log logging.Logger) *WhoisSource {
	if log == nil {
		log = logging.NewNopLogger()
	}
	return &WhoisSource{client: whois.NewClient(), log: log.Named("registrar.whois")}
}

func (s *WhoisSource) Name() string { return "whois" }

func (s *WhoisSource) Lookup(ctx context.Context, domain string) (*Record, error) {
	// The whois client has no context support; run it on the side and
	// abandon the result on timeout.
	type result struct {
		raw string
		err error
	}
	ch := make(chan result, 1)
	go func() {
		raw, err := s.client.Whois(domain)
		ch <- result{raw: raw, err: err}
	}()

	var raw string
	select {
	case <-ctx.Done():
		return nil, errors.Wrap(ctx.Err(), errors.ErrCodeLookupTimeout, "whois lookup").WithDetail(domain)
	case res := <-ch:
		if res.err != nil {
			return nil, errors.Wrap(res.err, errors.ErrCodeWhoisUnavailable, "whois lookup").WithDetail(domain)
		}
		raw = res.raw
	}

	info, err := whoisparser.Parse(raw)
	if err != nil {
		return nil, errors.Wrap(err, errors.ErrCodeWhoisParseFailed, "whois parse").WithDetail(domain)
	}
	return s.mapInfo(&info), nil
}

func (s *WhoisSource) mapInfo(info *whoisparser.WhoisInfo) *Record {
	rec := &Record{}
	if d := info.Domain; d != nil {
		rec.StatusFlags = d.Status
		for _, ns := range d.NameServers {
			rec.NameServers = append(rec.NameServers, strings.ToLower(ns))
		}
		rec.CreatedDate = parseDate(d.CreatedDate)
		rec.ExpiryDate = parseDate(d.ExpirationDate)
	}
	if r := info.Registrar; r != nil {
		rec.Registrar = r.Name
	}
	if c := info.Registrant; c != nil {
		name := c.Organization
		if name == "" {
			name = c.Name
		}
		rec.RegistrantName = name
		rec.RegistrantAddress = c.Street
		rec.RegistrantCity = c.City
		rec.RegistrantZip = c.PostalCode
		rec.RegistrantCountry = strings.ToUpper(c.Country)
	}
	return rec
}
