package registrar

import (
	"context"
	"strings"

	"github.com/openrdap/rdap"

	"github.com/regintel/regintel/internal/infrastructure/monitoring/logging"
	"github.com/regintel/regintel/pkg/errors"
)

// rdapClient is the part of rdap.Client we use, split out for tests.
type rdapClient interface {
	Do(req *rdap.Request) (*rdap.Response, error)
}

// RDAPSource queries the RDAP bootstrap chain for domain registrations.
type RDAPSource struct {
	client rdapClient
	log    logging.Logger
}

// NewRDAPSource builds the RDAP source.
func NewRDAPSource(log logging.Logger) *RDAPSource {
	if log == nil {
		log = logging.NewNopLogger()
	}
	return &RDAPSource{client: &rdap.Client{}, log: log.Named("registrar.rdap")}
}

func (s *RDAPSource) Name() string { return "rdap" }

func (s *RDAPSource) Lookup(ctx context.Context, domain string) (*Record, error) {
	req := rdap.NewRequest(rdap.DomainRequest, domain).WithContext(ctx)
	resp, err := s.client.Do(req)
	if err != nil {
		if ctx.Err() != nil {
			return nil, errors.Wrap(ctx.Err(), errors.ErrCodeLookupTimeout, "rdap lookup")
		}
		return nil, errors.Wrap(err, errors.ErrCodeRDAPUnavailable, "rdap lookup").WithDetail(domain)
	}
	dom, ok := resp.Object.(*rdap.Domain)
	if !ok || dom == nil {
		return nil, errors.New(errors.ErrCodeRDAPUnavailable, "rdap response is not a domain object")
	}
	return s.mapDomain(dom), nil
}

func (s *RDAPSource) mapDomain(dom *rdap.Domain) *Record {
	rec := &Record{StatusFlags: dom.Status}

	for _, ns := range dom.Nameservers {
		if ns.LDHName != "" {
			rec.NameServers = append(rec.NameServers, strings.ToLower(ns.LDHName))
		}
	}
	for _, ev := range dom.Events {
		switch strings.ToLower(ev.Action) {
		case "registration":
			rec.CreatedDate = parseDate(ev.Date)
		case "expiration":
			rec.ExpiryDate = parseDate(ev.Date)
		}
	}
	for i := range dom.Entities {
		s.mapEntity(rec, &dom.Entities[i])
	}
	return rec
}

// vcardPropString flattens a vCard property's values into a single string,
// the way the library renders its own single-string properties.
func vcardPropString(p *rdap.VCardProperty) string {
	if p == nil {
		return ""
	}
	return strings.TrimSpace(strings.Join(p.Values(), " "))
}

// mapEntity pulls registrant and registrar contact data out of an RDAP
// entity's vCard.
func (s *RDAPSource) mapEntity(rec *Record, ent *rdap.Entity) {
	card := ent.VCard
	if card == nil {
		return
	}
	for _, role := range ent.Roles {
		switch strings.ToLower(role) {
		case "registrant":
			name := vcardPropString(card.GetFirst("org"))
			if name == "" {
				name = card.Name()
			}
			if rec.RegistrantName == "" {
				rec.RegistrantName = name
			}
			if rec.RegistrantAddress == "" {
				rec.RegistrantAddress = card.StreetAddress()
			}
			if rec.RegistrantCity == "" {
				rec.RegistrantCity = card.Locality()
			}
			if rec.RegistrantZip == "" {
				rec.RegistrantZip = card.PostalCode()
			}
			if rec.RegistrantCountry == "" {
				rec.RegistrantCountry = card.Country()
			}
		case "registrar":
			if rec.Registrar == "" {
				rec.Registrar = card.Name()
			}
		}
	}
}
