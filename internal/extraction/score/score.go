// Package score computes the weighted confidence score of an extracted
// record.  The score measures extraction completeness; it is independent of
// the SUCCESS/NO_DATA status rule, which counts key fields only.
package score

import "github.com/regintel/regintel/internal/domain/entity"

// Field weights.  The full address contributes 30 points split across its
// four components; everything else is a flat per-field weight.  The sum of
// all weights exceeds 100 slightly, so the total is capped.
const (
	weightLegalName    = 25
	weightLegalForm    = 10
	weightStreet       = 8
	weightPostalCode   = 8
	weightCity         = 8
	weightCountry      = 6
	weightRegistration = 15
	weightVAT          = 10
	weightOfficer      = 5
	weightPhone        = 4
	weightEmail        = 4
	weightFax          = 2

	maxScore = 100
)

// Scorer computes confidence scores.  Stateless; the zero value is usable.
type Scorer struct{}

// NewScorer constructs a Scorer.
func NewScorer() *Scorer { return &Scorer{} }

// Score sums the weights of populated fields, capped at 100.  Fields are
// assumed validated; empty strings contribute nothing.
func (s *Scorer) Score(rec *entity.Record) int {
	total := 0
	add := func(populated bool, weight int) {
		if populated {
			total += weight
		}
	}

	add(rec.LegalName != "", weightLegalName)
	add(rec.LegalForm != "", weightLegalForm)
	add(rec.StreetAddress != "", weightStreet)
	add(rec.PostalCode != "", weightPostalCode)
	add(rec.City != "", weightCity)
	add(rec.Country != "", weightCountry)
	add(rec.RegistrationNumber != "", weightRegistration)
	add(rec.VATID != "", weightVAT)
	add(rec.CEOName != "" || len(rec.Directors) > 0, weightOfficer)
	add(rec.Phone != "", weightPhone)
	add(rec.Email != "", weightEmail)
	add(rec.Fax != "", weightFax)

	if total > maxScore {
		total = maxScore
	}
	return total
}
