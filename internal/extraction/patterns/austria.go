package patterns

import (
	"regexp"
	"strings"

	"github.com/regintel/regintel/internal/domain/jurisdiction"
	"github.com/regintel/regintel/internal/domain/validation"
	"github.com/regintel/regintel/internal/infrastructure/monitoring/logging"
)

var austrianFormTokens = []string{
	"GmbH & Co KG", "GesmbH", "Privatstiftung", "GmbH", "AG", "OG", "KG",
	"e.U.", "Gen",
}

// NewAustria builds the Austrian Impressum extractor.  Austria mirrors the
// German vocabulary but uses Firmenbuch numbers and four-digit postcodes.
func NewAustria(v *validation.Validator, log logging.Logger) Extractor {
	p := profile{
		jur:    jurisdiction.JurisdictionAT,
		region: "AT",
		nameLabels: regexp.MustCompile(
			`(?im)^[ \t]*(?:Firma|Firmenname|Medieninhaber|Diensteanbieter|Herausgeber|Unternehmensgegenstand)[ \t]*:[ \t]*([^\n]{3,120})$`),
		formTokens: austrianFormTokens,
		formRe:     buildFormRe(austrianFormTokens),
		nameLineRe: buildNameLineRe(austrianFormTokens),
		regRules: []regRule{
			{
				re: regexp.MustCompile(`(?i)\b(FN)[\s.:-]*(\d{1,7}[a-z]?)\b`),
				build: func(m []string) (string, string) {
					return "FN " + strings.ToLower(m[2]), "FN"
				},
			},
		},
		courtRes: []*regexp.Regexp{
			regexp.MustCompile(`(?i)\b((?:Landesgericht|Handelsgericht)[ \t]+\p{Lu}[\p{L}.-]+(?:[ \t]\p{Lu}[\p{L}.-]+)?)`),
			regexp.MustCompile(`(?im)^[ \t]*(?:Firmenbuchgericht|Registergericht)[ \t]*:?[ \t]*([^\n]{2,60})$`),
		},
		vatRes: []*regexp.Regexp{
			regexp.MustCompile(`\b(ATU[ \t]?\d{8})\b`),
		},
		officerRe: regexp.MustCompile(
			`(?i)^[ \t]*(?:Geschäftsführer(?:in)?|Geschäftsführung|Vertreten[ \t]+durch|Vorstand|Inhaber(?:in)?)[ \t]*:?[ \t]*(.*)$`),
		postalRe: regexp.MustCompile(`\b\d{4}\b`),
		phoneRe:  regexp.MustCompile(`(?i)\b(?:Tel(?:efon)?|Fon|Phone)[ \t]*[.:]*[ \t]*([+0-9][0-9 ()/\t.-]{5,25})`),
		faxRe:    regexp.MustCompile(`(?i)\b(?:Fax|Telefax)[ \t]*[.:]*[ \t]*([+0-9][0-9 ()/\t.-]{5,25})`),
	}
	return newExtractor(p, v, log)
}
