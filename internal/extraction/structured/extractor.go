// Package structured parses machine-readable organization metadata embedded
// in page markup: JSON-LD Organization/LocalBusiness blocks, schema.org
// microdata, and the OpenGraph site name.  Its output is deliberately
// lower-trust than jurisdiction pattern extraction because embedded metadata
// frequently describes a payment processor, ad network or hosting provider
// rather than the operating company.
package structured

import (
	"encoding/json"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"github.com/regintel/regintel/internal/domain/jurisdiction"
	"github.com/regintel/regintel/internal/domain/validation"
	"github.com/regintel/regintel/internal/extraction/draft"
	"github.com/regintel/regintel/internal/infrastructure/monitoring/logging"
)

// organizationTypes are the JSON-LD @type values treated as entity data.
var organizationTypes = map[string]bool{
	"Organization":      true,
	"LocalBusiness":     true,
	"Corporation":       true,
	"OnlineStore":       true,
	"Store":             true,
	"ProfessionalService": true,
	"LegalService":      true,
}

// Extractor parses embedded metadata into a field draft.  Stateless apart
// from the injected validator and logger; safe for concurrent use.
type Extractor struct {
	validator *validation.Validator
	log       logging.Logger
}

// NewExtractor constructs an Extractor.
func NewExtractor(v *validation.Validator, log logging.Logger) *Extractor {
	if log == nil {
		log = logging.NewNopLogger()
	}
	return &Extractor{validator: v, log: log.Named("structured")}
}

// Extract parses rawHTML and returns the draft assembled from all embedded
// metadata blocks.  Multiple blocks may exist; the first valid value per
// field wins.  Every candidate passes the same validators as pattern
// extraction.  jur selects jurisdiction-sensitive validators (phone region).
func (e *Extractor) Extract(rawHTML string, jur jurisdiction.Jurisdiction, region string) *draft.Draft {
	d := &draft.Draft{}
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(rawHTML))
	if err != nil {
		return d
	}

	doc.Find(`script[type="application/ld+json"]`).Each(func(_ int, s *goquery.Selection) {
		e.mergeJSONLD(d, s.Text(), jur, region)
	})
	e.mergeMicrodata(d, doc, jur, region)
	e.mergeOpenGraph(d, doc)

	return d
}

// jsonLDOrg is the subset of schema.org Organization we consume.  Address
// may be a PostalAddress object or a bare string, so it stays raw here.
type jsonLDOrg struct {
	Type      json.RawMessage `json:"@type"`
	Graph     []jsonLDOrg     `json:"@graph"`
	Name      string          `json:"name"`
	LegalName string          `json:"legalName"`
	Telephone string          `json:"telephone"`
	FaxNumber string          `json:"faxNumber"`
	Email     string          `json:"email"`
	TaxID     string          `json:"taxID"`
	VatID     string          `json:"vatID"`
	Address   json.RawMessage `json:"address"`
	Founder   json.RawMessage `json:"founder"`
}

type jsonLDAddress struct {
	StreetAddress   string `json:"streetAddress"`
	PostalCode      string `json:"postalCode"`
	AddressLocality string `json:"addressLocality"`
	AddressCountry  string `json:"addressCountry"`
}

func (e *Extractor) mergeJSONLD(d *draft.Draft, blob string, jur jurisdiction.Jurisdiction, region string) {
	blob = strings.TrimSpace(blob)
	if blob == "" {
		return
	}

	// A block may hold a single object or an array of objects.
	var orgs []jsonLDOrg
	if strings.HasPrefix(blob, "[") {
		if err := json.Unmarshal([]byte(blob), &orgs); err != nil {
			return
		}
	} else {
		var one jsonLDOrg
		if err := json.Unmarshal([]byte(blob), &one); err != nil {
			return
		}
		orgs = append(orgs, one)
		orgs = append(orgs, one.Graph...)
	}

	for _, org := range orgs {
		if !isOrganization(org.Type) {
			continue
		}
		e.mergeOrg(d, org, jur, region)
	}
}

// isOrganization accepts @type as a string or an array of strings.
func isOrganization(raw json.RawMessage) bool {
	if len(raw) == 0 {
		return false
	}
	var single string
	if err := json.Unmarshal(raw, &single); err == nil {
		return organizationTypes[single]
	}
	var multi []string
	if err := json.Unmarshal(raw, &multi); err == nil {
		for _, t := range multi {
			if organizationTypes[t] {
				return true
			}
		}
	}
	return false
}

func (e *Extractor) mergeOrg(d *draft.Draft, org jsonLDOrg, jur jurisdiction.Jurisdiction, region string) {
	name := org.LegalName
	if name == "" {
		name = org.Name
	}
	if d.LegalName == "" {
		if v, ok := e.validator.CompanyName(name); ok {
			d.LegalName = v
		}
	}
	if d.Phone == "" {
		if v, ok := e.validator.Phone(org.Telephone, region); ok {
			d.Phone = v
		}
	}
	if d.Fax == "" {
		if v, ok := e.validator.Phone(org.FaxNumber, region); ok {
			d.Fax = v
		}
	}
	if d.Email == "" {
		if v, ok := e.validator.Email(org.Email); ok {
			d.Email = v
		}
	}
	if d.VATID == "" {
		if v, ok := e.validator.VAT(org.VatID); ok {
			d.VATID = v
		} else if v, ok := e.validator.VAT(org.TaxID); ok {
			// Sites often put the VAT id in taxID.
			d.VATID = v
		}
	}

	if len(org.Address) > 0 && d.StreetAddress == "" {
		var addr jsonLDAddress
		if err := json.Unmarshal(org.Address, &addr); err == nil {
			e.mergeAddress(d, addr, jur)
		}
	}
}

func (e *Extractor) mergeAddress(d *draft.Draft, addr jsonLDAddress, jur jurisdiction.Jurisdiction) {
	street, okS := e.validator.Street(addr.StreetAddress)
	zip, okZ := e.validator.PostalCode(addr.PostalCode, jur)
	city, okC := e.validator.City(addr.AddressLocality)
	// The address triple is stored together or not at all.
	if okS && okZ && okC {
		d.StreetAddress, d.PostalCode, d.City = street, zip, city
	}
	if d.Country == "" && len(addr.AddressCountry) == 2 {
		d.Country = strings.ToUpper(addr.AddressCountry)
	}
}

// mergeMicrodata reads schema.org microdata Organization scopes.
func (e *Extractor) mergeMicrodata(d *draft.Draft, doc *goquery.Document, jur jurisdiction.Jurisdiction, region string) {
	doc.Find(`[itemscope][itemtype*="schema.org/Organization"], [itemscope][itemtype*="schema.org/LocalBusiness"]`).Each(func(_ int, scope *goquery.Selection) {
		prop := func(name string) string {
			sel := scope.Find(`[itemprop="` + name + `"]`).First()
			if sel.Length() == 0 {
				return ""
			}
			if content, ok := sel.Attr("content"); ok && content != "" {
				return content
			}
			return strings.TrimSpace(sel.Text())
		}

		if d.LegalName == "" {
			name := prop("legalName")
			if name == "" {
				name = prop("name")
			}
			if v, ok := e.validator.CompanyName(name); ok {
				d.LegalName = v
			}
		}
		if d.Phone == "" {
			if v, ok := e.validator.Phone(prop("telephone"), region); ok {
				d.Phone = v
			}
		}
		if d.Email == "" {
			if v, ok := e.validator.Email(prop("email")); ok {
				d.Email = v
			}
		}
		if d.VATID == "" {
			if v, ok := e.validator.VAT(prop("vatID")); ok {
				d.VATID = v
			}
		}
		if d.StreetAddress == "" {
			addr := jsonLDAddress{
				StreetAddress:   prop("streetAddress"),
				PostalCode:      prop("postalCode"),
				AddressLocality: prop("addressLocality"),
				AddressCountry:  prop("addressCountry"),
			}
			e.mergeAddress(d, addr, jur)
		}
	})
}

// mergeOpenGraph uses og:site_name as a last-resort name candidate.
func (e *Extractor) mergeOpenGraph(d *draft.Draft, doc *goquery.Document) {
	if d.LegalName != "" {
		return
	}
	content, ok := doc.Find(`meta[property="og:site_name"]`).First().Attr("content")
	if !ok {
		return
	}
	if v, okName := e.validator.CompanyName(content); okName {
		d.LegalName = v
	}
}
