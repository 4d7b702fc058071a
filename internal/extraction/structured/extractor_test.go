package structured

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/regintel/regintel/internal/domain/jurisdiction"
	"github.com/regintel/regintel/internal/domain/validation"
	"github.com/regintel/regintel/internal/infrastructure/monitoring/logging"
)

func newTestExtractor() *Extractor {
	return NewExtractor(validation.New(), logging.NewNopLogger())
}

func TestExtractJSONLDOrganization(t *testing.T) {
	page := `<html><head>
	<script type="application/ld+json">
	{
	  "@context": "https://schema.org",
	  "@type": "Organization",
	  "name": "TechCorp",
	  "legalName": "TechCorp GmbH",
	  "telephone": "+49 30 901820",
	  "email": "info@techcorp.de",
	  "vatID": "DE 123 456 789",
	  "address": {
	    "@type": "PostalAddress",
	    "streetAddress": "Hauptstrasse 12",
	    "postalCode": "10115",
	    "addressLocality": "Berlin",
	    "addressCountry": "DE"
	  }
	}
	</script>
	</head><body></body></html>`

	d := newTestExtractor().Extract(page, jurisdiction.JurisdictionDE, "DE")
	require.NotNil(t, d)
	assert.Equal(t, "TechCorp GmbH", d.LegalName)
	assert.Equal(t, "DE123456789", d.VATID)
	assert.Equal(t, "info@techcorp.de", d.Email)
	assert.Equal(t, "+49 30 901820", d.Phone)
	assert.Equal(t, "Hauptstrasse 12", d.StreetAddress)
	assert.Equal(t, "10115", d.PostalCode)
	assert.Equal(t, "Berlin", d.City)
	assert.Equal(t, "DE", d.Country)
}

func TestExtractJSONLDGraph(t *testing.T) {
	page := `<script type="application/ld+json">
	{
	  "@context": "https://schema.org",
	  "@graph": [
	    {"@type": "WebSite", "name": "techcorp.de"},
	    {"@type": "Organization", "legalName": "TechCorp GmbH", "email": "kontakt@techcorp.de"}
	  ]
	}
	</script>`

	d := newTestExtractor().Extract(page, jurisdiction.JurisdictionDE, "DE")
	assert.Equal(t, "TechCorp GmbH", d.LegalName)
	assert.Equal(t, "kontakt@techcorp.de", d.Email)
}

func TestExtractJSONLDTypeArray(t *testing.T) {
	page := `<script type="application/ld+json">
	{"@type": ["Thing", "LocalBusiness"], "name": "Brasserie Lyon SARL"}
	</script>`

	d := newTestExtractor().Extract(page, jurisdiction.JurisdictionFR, "FR")
	assert.Equal(t, "Brasserie Lyon SARL", d.LegalName)
}

func TestFirstValidValueWins(t *testing.T) {
	page := `
	<script type="application/ld+json">{"@type":"Organization","legalName":"First Corp Ltd"}</script>
	<script type="application/ld+json">{"@type":"Organization","legalName":"Second Corp Ltd"}</script>`

	d := newTestExtractor().Extract(page, jurisdiction.JurisdictionGB, "GB")
	assert.Equal(t, "First Corp Ltd", d.LegalName)
}

func TestProviderNameRejected(t *testing.T) {
	// Embedded metadata describing a payment provider must not become the
	// operating entity.
	page := `<script type="application/ld+json">
	{"@type": "Organization", "name": "PayPal", "legalName": "PayPal"}
	</script>
	<meta property="og:site_name" content="TechCorp GmbH">`

	d := newTestExtractor().Extract(page, jurisdiction.JurisdictionDE, "DE")
	assert.Equal(t, "TechCorp GmbH", d.LegalName)
}

func TestIncompleteAddressDropped(t *testing.T) {
	page := `<script type="application/ld+json">
	{"@type": "Organization", "legalName": "TechCorp GmbH",
	 "address": {"streetAddress": "Hauptstrasse 12", "postalCode": "10115"}}
	</script>`

	d := newTestExtractor().Extract(page, jurisdiction.JurisdictionDE, "DE")
	assert.Empty(t, d.StreetAddress)
	assert.Empty(t, d.PostalCode)
	assert.Empty(t, d.City)
}

func TestExtractMicrodata(t *testing.T) {
	page := `<div itemscope itemtype="https://schema.org/Organization">
	  <span itemprop="legalName">Innovatech Ltd</span>
	  <span itemprop="telephone" content="020 7946 0958"></span>
	  <span itemprop="email">office@innovatech.co.uk</span>
	  <div itemprop="address" itemscope itemtype="https://schema.org/PostalAddress">
	    <span itemprop="streetAddress">1 Example Street</span>
	    <span itemprop="postalCode">EC1A 1BB</span>
	    <span itemprop="addressLocality">London</span>
	  </div>
	</div>`

	d := newTestExtractor().Extract(page, jurisdiction.JurisdictionGB, "GB")
	assert.Equal(t, "Innovatech Ltd", d.LegalName)
	assert.Equal(t, "office@innovatech.co.uk", d.Email)
	assert.NotEmpty(t, d.Phone)
	assert.Equal(t, "1 Example Street", d.StreetAddress)
	assert.Equal(t, "EC1A 1BB", d.PostalCode)
	assert.Equal(t, "London", d.City)
}

func TestOpenGraphFallbackOnly(t *testing.T) {
	page := `<head>
	<meta property="og:site_name" content="Fallback Media GmbH">
	<script type="application/ld+json">{"@type":"Organization","legalName":"Primary Media GmbH"}</script>
	</head>`

	d := newTestExtractor().Extract(page, jurisdiction.JurisdictionDE, "DE")
	assert.Equal(t, "Primary Media GmbH", d.LegalName)
}

func TestMalformedJSONIgnored(t *testing.T) {
	page := `<script type="application/ld+json">{not json at all</script>`
	d := newTestExtractor().Extract(page, jurisdiction.JurisdictionDE, "DE")
	assert.True(t, d.IsEmpty())
}
