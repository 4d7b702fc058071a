// Package jurisdiction models the closed set of legal jurisdictions the
// engine understands and the detector that maps a domain plus page text to
// one of them.  Pattern extractors dispatch on the Jurisdiction enum; open
// string matching at call sites is deliberately avoided.
package jurisdiction

import (
	"strings"

	"github.com/regintel/regintel/pkg/errors"
)

// Jurisdiction is an ISO-3166-style jurisdiction code.
type Jurisdiction string

const (
	JurisdictionDE Jurisdiction = "DE"
	JurisdictionAT Jurisdiction = "AT"
	JurisdictionCH Jurisdiction = "CH"
	JurisdictionGB Jurisdiction = "GB"
	JurisdictionFR Jurisdiction = "FR"
	JurisdictionIT Jurisdiction = "IT"
	JurisdictionES Jurisdiction = "ES"
	JurisdictionNL Jurisdiction = "NL"
	JurisdictionBE Jurisdiction = "BE"
)

func (j Jurisdiction) String() string { return string(j) }

// Info holds metadata about a jurisdiction.
type Info struct {
	Code Jurisdiction
	Name string

	// TLDs are the top-level domains mapped to this jurisdiction.  A TLD
	// match takes absolute priority over keyword detection.
	TLDs []string

	// Keywords score the jurisdiction when the TLD is uninformative
	// (.com, .org, ...).  Lowercase substrings counted in the page text.
	Keywords []string

	// PhoneRegion is the region code passed to the phone-number validator.
	PhoneRegion string
}

// Registry provides access to jurisdiction data.
type Registry interface {
	Get(code string) (*Info, error)
	Normalize(code string) (Jurisdiction, error)
	List() []*Info
	ByTLD(tld string) (Jurisdiction, bool)
}

// InMemoryRegistry is the default Registry implementation.  It is built once
// at construction and read-only afterwards, so it is safe for concurrent use.
type InMemoryRegistry struct {
	jurisdictions map[Jurisdiction]*Info
	aliases       map[string]Jurisdiction
	tlds          map[string]Jurisdiction
}

// NewRegistry creates a Registry with the built-in jurisdiction set.
func NewRegistry() Registry {
	r := &InMemoryRegistry{
		jurisdictions: make(map[Jurisdiction]*Info),
		aliases:       make(map[string]Jurisdiction),
		tlds:          make(map[string]Jurisdiction),
	}
	r.init()
	return r
}

func (r *InMemoryRegistry) init() {
	r.add(&Info{
		Code: JurisdictionDE, Name: "Germany",
		TLDs:        []string{"de"},
		Keywords:    []string{"impressum", "handelsregister", "geschäftsführer", "amtsgericht", "ust-idnr", "angaben gemäß"},
		PhoneRegion: "DE",
	})
	r.addAlias("DEU", JurisdictionDE)
	r.addAlias("GERMANY", JurisdictionDE)

	r.add(&Info{
		Code: JurisdictionAT, Name: "Austria",
		TLDs:        []string{"at"},
		Keywords:    []string{"firmenbuch", "firmenbuchgericht", "firmenbuchnummer", "unternehmensgegenstand", "atu"},
		PhoneRegion: "AT",
	})
	r.addAlias("AUT", JurisdictionAT)
	r.addAlias("AUSTRIA", JurisdictionAT)

	r.add(&Info{
		Code: JurisdictionCH, Name: "Switzerland",
		TLDs:        []string{"ch"},
		Keywords:    []string{"handelsregisteramt", "uid-nummer", "mwst-nummer", "che-"},
		PhoneRegion: "CH",
	})
	r.addAlias("CHE", JurisdictionCH)
	r.addAlias("SWITZERLAND", JurisdictionCH)

	r.add(&Info{
		Code: JurisdictionGB, Name: "United Kingdom",
		TLDs:        []string{"uk", "co.uk", "org.uk", "ltd.uk"},
		Keywords:    []string{"companies house", "registered office", "registered in england", "company number", "vat registration"},
		PhoneRegion: "GB",
	})
	r.addAlias("UK", JurisdictionGB)
	r.addAlias("GBR", JurisdictionGB)
	r.addAlias("UNITED KINGDOM", JurisdictionGB)

	r.add(&Info{
		Code: JurisdictionFR, Name: "France",
		TLDs:        []string{"fr"},
		Keywords:    []string{"mentions légales", "mentions legales", "siret", "siren", "rcs", "capital social"},
		PhoneRegion: "FR",
	})
	r.addAlias("FRA", JurisdictionFR)
	r.addAlias("FRANCE", JurisdictionFR)

	r.add(&Info{Code: JurisdictionIT, Name: "Italy", TLDs: []string{"it"},
		Keywords: []string{"partita iva", "codice fiscale", "note legali"}, PhoneRegion: "IT"})
	r.add(&Info{Code: JurisdictionES, Name: "Spain", TLDs: []string{"es"},
		Keywords: []string{"aviso legal", "cif", "nif", "registro mercantil"}, PhoneRegion: "ES"})
	r.add(&Info{Code: JurisdictionNL, Name: "Netherlands", TLDs: []string{"nl"},
		Keywords: []string{"kvk", "kamer van koophandel", "btw-nummer"}, PhoneRegion: "NL"})
	r.add(&Info{Code: JurisdictionBE, Name: "Belgium", TLDs: []string{"be"},
		Keywords: []string{"ondernemingsnummer", "numéro d'entreprise", "btw be"}, PhoneRegion: "BE"})
}

func (r *InMemoryRegistry) add(info *Info) {
	r.jurisdictions[info.Code] = info
	for _, tld := range info.TLDs {
		r.tlds[tld] = info.Code
	}
}

func (r *InMemoryRegistry) addAlias(alias string, target Jurisdiction) {
	r.aliases[strings.ToUpper(alias)] = target
}

// Get returns metadata for a jurisdiction code or alias.
func (r *InMemoryRegistry) Get(code string) (*Info, error) {
	normalized, err := r.Normalize(code)
	if err != nil {
		return nil, err
	}
	if info, ok := r.jurisdictions[normalized]; ok {
		return info, nil
	}
	return nil, errors.Newf(errors.ErrCodeNotFound, "jurisdiction not found: %s", code)
}

// Normalize converts a code or alias to the canonical Jurisdiction.
func (r *InMemoryRegistry) Normalize(code string) (Jurisdiction, error) {
	upper := strings.ToUpper(strings.TrimSpace(code))
	if j, ok := r.jurisdictions[Jurisdiction(upper)]; ok {
		return j.Code, nil
	}
	if j, ok := r.aliases[upper]; ok {
		return j, nil
	}
	return "", errors.Newf(errors.ErrCodeBadRequest, "invalid jurisdiction code: %s", code)
}

// List returns all registered jurisdictions.
func (r *InMemoryRegistry) List() []*Info {
	list := make([]*Info, 0, len(r.jurisdictions))
	for _, info := range r.jurisdictions {
		list = append(list, info)
	}
	return list
}

// ByTLD maps a top-level domain (without leading dot) to a jurisdiction.
func (r *InMemoryRegistry) ByTLD(tld string) (Jurisdiction, bool) {
	j, ok := r.tlds[strings.ToLower(strings.TrimPrefix(tld, "."))]
	return j, ok
}
