package validation

import (
	"regexp"

	"github.com/regintel/regintel/internal/domain/jurisdiction"
)

// legalForms enumerates the accepted legal-form tokens per jurisdiction,
// ordered so compound forms precede their substrings ("GmbH & Co. KG" must
// win over "GmbH" and "KG").  A form is accepted only on exact match.
var legalForms = map[jurisdiction.Jurisdiction][]string{
	jurisdiction.JurisdictionDE: {
		"GmbH & Co. KG", "GmbH & Co. KGaA", "UG (haftungsbeschränkt) & Co. KG",
		"UG (haftungsbeschränkt)", "gGmbH", "GmbH", "AG & Co. KG", "AG", "KGaA",
		"UG", "OHG", "KG", "GbR", "e.K.", "e.V.", "eG", "PartG", "PartG mbB",
	},
	jurisdiction.JurisdictionAT: {
		"GmbH & Co KG", "GesmbH", "GmbH", "AG", "KG", "OG", "e.U.",
		"Gen", "Privatstiftung",
	},
	jurisdiction.JurisdictionCH: {
		"GmbH", "AG", "SA", "Sàrl", "SARL", "KlG", "KmG", "Genossenschaft",
	},
	jurisdiction.JurisdictionGB: {
		"Ltd.", "Ltd", "Limited", "PLC", "plc", "LLP", "LP", "CIC",
	},
	jurisdiction.JurisdictionFR: {
		"SARL", "SASU", "SAS", "SA", "EURL", "SNC", "SCI", "SCOP", "SEL",
	},
	jurisdiction.JurisdictionIT: {"S.r.l.", "SRL", "S.p.A.", "SPA", "S.a.s.", "S.n.c."},
	jurisdiction.JurisdictionES: {"S.L.", "SL", "S.A.", "SA", "S.L.U.", "S.Coop."},
	jurisdiction.JurisdictionNL: {"B.V.", "BV", "N.V.", "NV", "VOF", "CV"},
	jurisdiction.JurisdictionBE: {"BV", "BVBA", "NV", "SPRL", "SRL", "SA", "CommV"},
}

// AllLegalForms returns the union of every jurisdiction's enumeration,
// longest-first, for the generic extractor's superset vocabulary.
func AllLegalForms() []string {
	seen := make(map[string]bool)
	var out []string
	// Jurisdiction-major order keeps compounds before substrings because
	// each per-jurisdiction list already is ordered that way.
	for _, j := range []jurisdiction.Jurisdiction{
		jurisdiction.JurisdictionDE, jurisdiction.JurisdictionAT,
		jurisdiction.JurisdictionCH, jurisdiction.JurisdictionGB,
		jurisdiction.JurisdictionFR, jurisdiction.JurisdictionIT,
		jurisdiction.JurisdictionES, jurisdiction.JurisdictionNL,
		jurisdiction.JurisdictionBE,
	} {
		for _, f := range legalForms[j] {
			if !seen[f] {
				seen[f] = true
				out = append(out, f)
			}
		}
	}
	return out
}

// vatFormats anchors the exact VAT-id format per jurisdiction.  Candidates
// are normalized (uppercased, separators stripped) before matching; a value
// matching no format is dropped, never stored malformed.
var vatFormats = map[jurisdiction.Jurisdiction]*regexp.Regexp{
	jurisdiction.JurisdictionDE: regexp.MustCompile(`^DE\d{9}$`),
	jurisdiction.JurisdictionAT: regexp.MustCompile(`^ATU\d{8}$`),
	jurisdiction.JurisdictionCH: regexp.MustCompile(`^CHE\d{9}(MWST)?$`),
	jurisdiction.JurisdictionGB: regexp.MustCompile(`^GB\d{9}(\d{3})?$`),
	jurisdiction.JurisdictionFR: regexp.MustCompile(`^FR[A-Z0-9]{2}\d{9}$`),
	jurisdiction.JurisdictionIT: regexp.MustCompile(`^IT\d{11}$`),
	jurisdiction.JurisdictionES: regexp.MustCompile(`^ES[A-Z0-9]\d{7}[A-Z0-9]$`),
	jurisdiction.JurisdictionNL: regexp.MustCompile(`^NL\d{9}B\d{2}$`),
	jurisdiction.JurisdictionBE: regexp.MustCompile(`^BE0\d{9}$`),
}

// registrationFormats anchors jurisdiction-specific registration numbers,
// already whitespace-normalized.  Values matching none of these fall back
// to the generic 3-30-chars-with-a-digit rule.
var registrationFormats = map[jurisdiction.Jurisdiction][]*regexp.Regexp{
	jurisdiction.JurisdictionDE: {
		regexp.MustCompile(`^HR[AB] \d{1,6}( B)?$`),
		regexp.MustCompile(`^GnR \d{1,6}$`),
		regexp.MustCompile(`^PR \d{1,6}$`),
	},
	jurisdiction.JurisdictionAT: {
		regexp.MustCompile(`^FN \d{1,7}[a-z]?$`),
	},
	jurisdiction.JurisdictionCH: {
		regexp.MustCompile(`^CHE-\d{3}\.\d{3}\.\d{3}$`),
	},
	jurisdiction.JurisdictionGB: {
		regexp.MustCompile(`^\d{8}$`),
		regexp.MustCompile(`^[A-Z]{2}\d{6}$`), // SC/NI prefixed numbers
	},
	jurisdiction.JurisdictionFR: {
		regexp.MustCompile(`^RCS [A-Za-zÀ-ÿ' -]+ \d{3} ?\d{3} ?\d{3}$`),
		regexp.MustCompile(`^\d{14}$`), // SIRET
		regexp.MustCompile(`^\d{9}$`),  // SIREN
	},
}

// ukPostcode anchors the UK alphanumeric postcode pattern used both by the
// postal-code validator and as the GB address anchor.
var ukPostcode = regexp.MustCompile(`^[A-Z]{1,2}\d[A-Z\d]?\s*\d[A-Z]{2}$`)
