package patterns

import (
	"regexp"
	"strings"

	"github.com/regintel/regintel/internal/domain/jurisdiction"
	"github.com/regintel/regintel/internal/domain/validation"
	"github.com/regintel/regintel/internal/infrastructure/monitoring/logging"
)

var germanFormTokens = []string{
	"GmbH & Co. KGaA", "GmbH & Co. KG", "UG (haftungsbeschränkt) & Co. KG",
	"UG (haftungsbeschränkt)", "AG & Co. KG", "PartG mbB", "gGmbH", "GmbH",
	"KGaA", "AG", "UG", "OHG", "KG", "GbR", "e.K.", "e.V.", "eG", "PartG",
}

// NewGermany builds the German Impressum extractor.
func NewGermany(v *validation.Validator, log logging.Logger) Extractor {
	p := profile{
		jur:    jurisdiction.JurisdictionDE,
		region: "DE",
		nameLabels: regexp.MustCompile(
			`(?im)^[ \t]*(?:Firma|Firmenname|Unternehmen|Anbieter|Betreiber|Diensteanbieter|Herausgeber)[ \t]*:[ \t]*([^\n]{3,120})$`),
		formTokens: germanFormTokens,
		formRe:     buildFormRe(germanFormTokens),
		nameLineRe: buildNameLineRe(germanFormTokens),
		regRules: []regRule{
			{
				re: regexp.MustCompile(`(?i)\b(HR[AB])[\s.:-]*(\d{1,6})(\s?B)?\b`),
				build: func(m []string) (string, string) {
					t := strings.ToUpper(m[1])
					n := t + " " + m[2]
					if m[3] != "" {
						n += " B"
					}
					return n, t
				},
			},
			{
				re: regexp.MustCompile(`(?i)\b(GnR|PR)[\s.:-]*(\d{1,6})\b`),
				build: func(m []string) (string, string) {
					t := strings.ToUpper(m[1])
					if t == "GNR" {
						t = "GnR"
					}
					return t + " " + m[2], t
				},
			},
		},
		courtRes: []*regexp.Regexp{
			regexp.MustCompile(`(?i)\b(Amtsgericht[ \t]+\p{Lu}[\p{L}().-]+(?:[ \t]\(?\p{Lu}[\p{L}).-]+\)?)?)`),
			regexp.MustCompile(`(?im)^[ \t]*(?:Registergericht|Handelsregister)[ \t]*:?[ \t]*([^\n]{2,60})$`),
		},
		vatRes: []*regexp.Regexp{
			regexp.MustCompile(`\b(DE[ \t]?\d{3}[ \t]?\d{3}[ \t]?\d{3})\b`),
		},
		officerRe: regexp.MustCompile(
			`(?i)^[ \t]*(?:Geschäftsführer(?:in)?|Geschäftsführung|Vertretungsberechtigte[rn]?(?:[ \t]+Geschäftsführer)?|Vertreten[ \t]+durch|Vorstand|Inhaber(?:in)?)[ \t]*:?[ \t]*(.*)$`),
		postalRe: regexp.MustCompile(`\b\d{5}\b`),
		phoneRe:  regexp.MustCompile(`(?i)\b(?:Tel(?:efon)?|Fon|Phone)[ \t]*[.:]*[ \t]*([+0-9][0-9 ()/\t.-]{5,25})`),
		faxRe:    regexp.MustCompile(`(?i)\b(?:Fax|Telefax)[ \t]*[.:]*[ \t]*([+0-9][0-9 ()/\t.-]{5,25})`),
	}
	return newExtractor(p, v, log)
}
