// Package reconcile merges the extraction passes into one record and fuses
// registrar data into extracted records.
package reconcile

import (
	"strings"

	"github.com/regintel/regintel/internal/domain/entity"
	"github.com/regintel/regintel/internal/domain/jurisdiction"
	"github.com/regintel/regintel/internal/extraction/draft"
)

// Reconciler merges field drafts by source priority.  Stateless; the zero
// value is usable.
type Reconciler struct{}

// NewReconciler constructs a Reconciler.
func NewReconciler() *Reconciler { return &Reconciler{} }

// Merge combines drafts given in descending priority order: per field the
// first draft holding a value wins.  Pattern extraction is passed before
// structured data because embedded metadata frequently names a payment
// processor or hoster rather than the operating company.  Country always
// ends up set, defaulting from the detected jurisdiction.  Directors are
// unioned across all drafts, de-duplicated, and capped.
func (r *Reconciler) Merge(jur jurisdiction.Jurisdiction, drafts ...*draft.Draft) *entity.Record {
	rec := &entity.Record{}
	for _, d := range drafts {
		if d == nil {
			continue
		}
		fill(&rec.LegalName, d.LegalName)
		fill(&rec.LegalForm, d.LegalForm)
		fill(&rec.RegisterType, d.RegisterType)
		fill(&rec.RegisterCourt, d.RegisterCourt)
		fill(&rec.RegistrationNumber, d.RegistrationNumber)
		fill(&rec.VATID, d.VATID)
		fill(&rec.TaxID, d.TaxID)
		fill(&rec.CEOName, d.CEOName)
		fill(&rec.Phone, d.Phone)
		fill(&rec.Email, d.Email)
		fill(&rec.Fax, d.Fax)
		fill(&rec.Country, d.Country)

		// The address triple moves as a unit from the first draft that
		// carries all three components.
		if !rec.HasAddress() && d.StreetAddress != "" && d.PostalCode != "" && d.City != "" {
			rec.StreetAddress = d.StreetAddress
			rec.PostalCode = d.PostalCode
			rec.City = d.City
		}

		for _, name := range d.Directors {
			if len(rec.Directors) >= entity.MaxDirectors {
				break
			}
			if !containsFold(rec.Directors, name) {
				rec.Directors = append(rec.Directors, name)
			}
		}
	}

	if rec.Country == "" {
		rec.Country = string(jur)
	}
	rec.ClearAddress()
	rec.Status = rec.DeriveStatus()
	return rec
}

// FuseRegistrar copies registrar data into empty fields of an extracted
// record.  Already-populated fields are never overwritten; in particular a
// validated legal name and the derived status stay untouched, since
// registrar organization fields are frequently a generic holding entity.
func (r *Reconciler) FuseRegistrar(rec *entity.Record, reg *entity.RegistrarRecord) {
	if rec == nil || reg == nil {
		return
	}
	if rec.LegalName == "" && reg.RegistrantName != "" {
		rec.LegalName = reg.RegistrantName
	}
	if !rec.HasAddress() &&
		reg.RegistrantAddress != "" && reg.RegistrantZip != "" && reg.RegistrantCity != "" {
		rec.StreetAddress = reg.RegistrantAddress
		rec.PostalCode = reg.RegistrantZip
		rec.City = reg.RegistrantCity
	}
	if rec.Country == "" && reg.RegistrantCountry != "" {
		rec.Country = reg.RegistrantCountry
	}
}

func fill(dst *string, src string) {
	if *dst == "" && src != "" {
		*dst = src
	}
}

func containsFold(list []string, s string) bool {
	for _, v := range list {
		if strings.EqualFold(v, s) {
			return true
		}
	}
	return false
}
