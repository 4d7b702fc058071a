// Package draft defines the intermediate field draft produced by each
// extraction pass.  Drafts carry only validated values; the reconciler
// merges them into the final record.
package draft

// Draft is one extraction pass's view of the entity fields.  Empty string /
// nil means the pass found nothing acceptable for that field.
type Draft struct {
	LegalName     string
	LegalForm     string
	StreetAddress string
	PostalCode    string
	City          string
	Country       string

	RegisterType       string
	RegisterCourt      string
	RegistrationNumber string
	VATID              string
	TaxID              string

	CEOName   string
	Directors []string

	Phone string
	Email string
	Fax   string
}

// IsEmpty reports whether the pass found nothing at all.
func (d *Draft) IsEmpty() bool {
	return d.LegalName == "" && d.LegalForm == "" && d.StreetAddress == "" &&
		d.PostalCode == "" && d.City == "" && d.Country == "" &&
		d.RegistrationNumber == "" && d.VATID == "" && d.TaxID == "" &&
		d.CEOName == "" && len(d.Directors) == 0 &&
		d.Phone == "" && d.Email == "" && d.Fax == ""
}
