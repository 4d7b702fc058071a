package patterns

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/regintel/regintel/internal/domain/jurisdiction"
	"github.com/regintel/regintel/internal/domain/validation"
	"github.com/regintel/regintel/internal/infrastructure/monitoring/logging"
)

var (
	testValidator = validation.New()
	testRegistry  = jurisdiction.NewRegistry()
)

const germanImprint = `Impressum

Angaben gemäß § 5 TMG
TechCorp GmbH
Musterstraße 123
12345 Berlin

Vertreten durch:
Max Mustermann

Registergericht: Amtsgericht Berlin
HRB 123456

Umsatzsteuer-ID
USt-IdNr.: DE123456789

Telefon: +49 30 901820
Telefax: +49 30 901821
E-Mail: info@techcorp.de`

func TestGermanyFullImprint(t *testing.T) {
	ex := NewGermany(testValidator, logging.NewNopLogger())
	d := ex.Extract(germanImprint)
	require.NotNil(t, d)

	assert.Equal(t, "TechCorp GmbH", d.LegalName)
	assert.Equal(t, "GmbH", d.LegalForm)
	assert.Equal(t, "Musterstraße 123", d.StreetAddress)
	assert.Equal(t, "12345", d.PostalCode)
	assert.Equal(t, "Berlin", d.City)
	assert.Equal(t, "HRB 123456", d.RegistrationNumber)
	assert.Equal(t, "HRB", d.RegisterType)
	assert.Equal(t, "Amtsgericht Berlin", d.RegisterCourt)
	assert.Equal(t, "DE123456789", d.VATID)
	assert.Equal(t, "Max Mustermann", d.CEOName)
	assert.Equal(t, "info@techcorp.de", d.Email)
	assert.NotEmpty(t, d.Phone)
	assert.NotEmpty(t, d.Fax)
}

func TestGermanyCompoundForm(t *testing.T) {
	ex := NewGermany(testValidator, logging.NewNopLogger())
	d := ex.Extract("Beispiel Logistik GmbH & Co. KG\nHauptstraße 1\n20095 Hamburg")

	assert.Equal(t, "Beispiel Logistik GmbH & Co. KG", d.LegalName)
	assert.Equal(t, "GmbH & Co. KG", d.LegalForm)
}

func TestGermanyMultipleDirectors(t *testing.T) {
	ex := NewGermany(testValidator, logging.NewNopLogger())
	d := ex.Extract("Beispiel GmbH\nGeschäftsführer: Max Mustermann, Erika Musterfrau und Hans Meier")

	assert.Equal(t, "Max Mustermann", d.CEOName)
	assert.Equal(t, []string{"Max Mustermann", "Erika Musterfrau", "Hans Meier"}, d.Directors)
}

func TestAustriaImprint(t *testing.T) {
	ex := NewAustria(testValidator, logging.NewNopLogger())
	d := ex.Extract(`Medieninhaber: Alpenblick GmbH
Kärntner Straße 10
1010 Wien
Firmenbuchnummer FN 123456a
Firmenbuchgericht: Handelsgericht Wien
UID: ATU12345678`)

	assert.Equal(t, "Alpenblick GmbH", d.LegalName)
	assert.Equal(t, "GmbH", d.LegalForm)
	assert.Equal(t, "FN 123456a", d.RegistrationNumber)
	assert.Equal(t, "FN", d.RegisterType)
	assert.Equal(t, "ATU12345678", d.VATID)
	assert.Equal(t, "Kärntner Straße 10", d.StreetAddress)
	assert.Equal(t, "1010", d.PostalCode)
	assert.Equal(t, "Wien", d.City)
}

func TestUnitedKingdomNotice(t *testing.T) {
	ex := NewUnitedKingdom(testValidator, logging.NewNopLogger())
	d := ex.Extract(`Innovatech Ltd
Registered office: 1 Example Street, London EC1A 1BB
Registered in England and Wales. Company Number: 01234567
VAT Number: GB 123 4567 89
Director: Jane Smith`)

	assert.Equal(t, "Innovatech Ltd", d.LegalName)
	assert.Equal(t, "Ltd", d.LegalForm)
	assert.Equal(t, "01234567", d.RegistrationNumber)
	assert.Equal(t, "GB123456789", d.VATID)
	assert.Equal(t, "1 Example Street", d.StreetAddress)
	assert.Equal(t, "EC1A 1BB", d.PostalCode)
	assert.Equal(t, "London", d.City)
	assert.Equal(t, "Jane Smith", d.CEOName)
}

func TestFranceMentionsLegales(t *testing.T) {
	ex := NewFrance(testValidator, logging.NewNopLogger())
	d := ex.Extract(`Mentions légales
Raison sociale : Brasserie Lyon SARL
12 rue de la République
69002 Lyon
RCS Lyon 123 456 789
SIRET : 123 456 789 00012
TVA intracommunautaire : FR12 123 456 789
Gérant : Pierre Dupont`)

	assert.Equal(t, "Brasserie Lyon SARL", d.LegalName)
	assert.Equal(t, "SARL", d.LegalForm)
	assert.Equal(t, "RCS Lyon 123 456 789", d.RegistrationNumber)
	assert.Equal(t, "RCS", d.RegisterType)
	assert.Equal(t, "FR12123456789", d.VATID)
	assert.Equal(t, "12 rue de la République", d.StreetAddress)
	assert.Equal(t, "69002", d.PostalCode)
	assert.Equal(t, "Lyon", d.City)
	assert.Equal(t, "Pierre Dupont", d.CEOName)
}

func TestFranceSIRETFallback(t *testing.T) {
	ex := NewFrance(testValidator, logging.NewNopLogger())
	d := ex.Extract("Exploitant : Atelier Nantes SAS\nSIRET : 123 456 789 00012")

	assert.Equal(t, "12345678900012", d.RegistrationNumber)
	assert.Equal(t, "SIRET", d.RegisterType)
}

func TestGenericSupersetVocabulary(t *testing.T) {
	ex := NewGeneric(jurisdiction.JurisdictionNL, testRegistry, testValidator, logging.NewNopLogger())
	d := ex.Extract(`Voorbeeld B.V.
Keizersgracht 1
1015 Amsterdam
BTW: NL123456789B01`)

	assert.Equal(t, jurisdiction.JurisdictionNL, ex.Jurisdiction())
	assert.Equal(t, "Voorbeeld B.V.", d.LegalName)
	assert.Equal(t, "B.V.", d.LegalForm)
	assert.Equal(t, "NL123456789B01", d.VATID)
	assert.Equal(t, "1015", d.PostalCode)
	assert.Equal(t, "Amsterdam", d.City)
}

func TestForJurisdictionSelection(t *testing.T) {
	cases := []struct {
		jur  jurisdiction.Jurisdiction
		want jurisdiction.Jurisdiction
	}{
		{jurisdiction.JurisdictionDE, jurisdiction.JurisdictionDE},
		{jurisdiction.JurisdictionAT, jurisdiction.JurisdictionAT},
		{jurisdiction.JurisdictionGB, jurisdiction.JurisdictionGB},
		{jurisdiction.JurisdictionFR, jurisdiction.JurisdictionFR},
		{jurisdiction.JurisdictionIT, jurisdiction.JurisdictionIT},
	}
	for _, tc := range cases {
		ex := ForJurisdiction(tc.jur, testRegistry, testValidator, logging.NewNopLogger())
		assert.Equal(t, tc.want, ex.Jurisdiction())
	}
}

func TestEmptyTextYieldsEmptyDraft(t *testing.T) {
	ex := NewGermany(testValidator, logging.NewNopLogger())
	assert.True(t, ex.Extract("   \n  ").IsEmpty())
}

func TestInvalidCandidatesDropped(t *testing.T) {
	ex := NewGermany(testValidator, logging.NewNopLogger())
	// Nothing here passes validation: sentence-shaped name line, malformed
	// VAT, placeholder email.
	d := ex.Extract(`Willkommen auf unserer Seite, hier finden Sie alles!
USt-IdNr.: DE12345
E-Mail: info@example.com`)

	assert.Empty(t, d.LegalName)
	assert.Empty(t, d.VATID)
	assert.Empty(t, d.Email)
}
