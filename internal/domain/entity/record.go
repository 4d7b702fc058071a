// Package entity defines the records produced by the extraction and
// registrar-reconciliation engines.  Records are created fresh per request
// and are immutable once returned; the caller owns persistence.
package entity

import (
	"time"
)

// Status classifies the overall outcome of an extraction.
type Status string

const (
	// StatusSuccess means at least two key identity fields were populated.
	StatusSuccess Status = "SUCCESS"
	// StatusNoData means the page yielded fewer than two key identity fields.
	StatusNoData Status = "NO_DATA"
)

// Record is the validated, confidence-scored legal-entity record for one
// page.  All fields except SourceURL, ExtractedAt, ConfidenceScore, Status
// are optional; absence is a valid, common state, not an error.
type Record struct {
	LegalName     string `json:"legal_name,omitempty"`
	LegalForm     string `json:"legal_form,omitempty"`
	StreetAddress string `json:"street_address,omitempty"`
	PostalCode    string `json:"postal_code,omitempty"`
	City          string `json:"city,omitempty"`
	Country       string `json:"country"`

	RegisterType       string `json:"register_type,omitempty"`
	RegisterCourt      string `json:"register_court,omitempty"`
	RegistrationNumber string `json:"registration_number,omitempty"`
	VATID              string `json:"vat_id,omitempty"`
	TaxID              string `json:"tax_id,omitempty"`

	CEOName   string   `json:"ceo_name,omitempty"`
	Directors []string `json:"directors,omitempty"`

	Phone string `json:"phone,omitempty"`
	Email string `json:"email,omitempty"`
	Fax   string `json:"fax,omitempty"`

	SourceURL       string    `json:"source_url"`
	ExtractedAt     time.Time `json:"extraction_timestamp"`
	ConfidenceScore float64   `json:"confidence_score"`
	Status          Status    `json:"status"`

	// Registrar carries the fused domain-registration view when a registrar
	// lookup was requested alongside extraction.
	Registrar *RegistrarRecord `json:"registrar,omitempty"`
}

// MaxDirectors caps the directors list; anything beyond the first three
// names is almost always partner-page noise.
const MaxDirectors = 3

// keyFieldCount returns how many of the key identity fields are populated.
// The directors list counts once regardless of length.
func (r *Record) keyFieldCount() int {
	n := 0
	if r.LegalName != "" {
		n++
	}
	if r.LegalForm != "" {
		n++
	}
	if r.RegistrationNumber != "" {
		n++
	}
	if r.CEOName != "" {
		n++
	}
	if len(r.Directors) > 0 {
		n++
	}
	if r.Email != "" {
		n++
	}
	if r.Phone != "" {
		n++
	}
	return n
}

// DeriveStatus computes Status from the key-field rule: SUCCESS iff at least
// two of {legal name, legal form, registration number, CEO, directors,
// email, phone} are populated.  Independent of the numeric score.
func (r *Record) DeriveStatus() Status {
	if r.keyFieldCount() >= 2 {
		return StatusSuccess
	}
	return StatusNoData
}

// HasAddress reports whether the coherent address triple is stored.
// Street, postal code and city are populated together or not at all.
func (r *Record) HasAddress() bool {
	return r.StreetAddress != "" && r.PostalCode != "" && r.City != ""
}

// ClearAddress drops a partial address so the triple invariant holds.
func (r *Record) ClearAddress() {
	if !r.HasAddress() {
		r.StreetAddress = ""
		r.PostalCode = ""
		r.City = ""
	}
}

// RegistrarSource identifies which registration-data sources contributed to
// a RegistrarRecord.
type RegistrarSource string

const (
	SourceRDAP      RegistrarSource = "rdap"
	SourceWhois     RegistrarSource = "whois"
	SourceRDAPWhois RegistrarSource = "rdap+whois"
	SourceNone      RegistrarSource = "none"
)

// RegistrarRecord is the merged domain-registration view from RDAP and
// WHOIS, with a cross-source agreement confidence in [0,1].
type RegistrarRecord struct {
	Domain string `json:"domain"`

	RegistrantName    string `json:"registrant_name,omitempty"`
	RegistrantAddress string `json:"registrant_address,omitempty"`
	RegistrantCity    string `json:"registrant_city,omitempty"`
	RegistrantZip     string `json:"registrant_zip,omitempty"`
	RegistrantCountry string `json:"registrant_country,omitempty"`

	Registrar   string     `json:"registrar,omitempty"`
	CreatedDate *time.Time `json:"created_date,omitempty"`
	ExpiryDate  *time.Time `json:"expiry_date,omitempty"`

	NameServers []string `json:"name_servers,omitempty"`
	StatusFlags []string `json:"status_flags,omitempty"`

	Source          RegistrarSource `json:"source"`
	WhoisConfidence float64         `json:"whois_confidence"`
}
