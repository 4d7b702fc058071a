package patterns

import (
	"regexp"
	"strings"

	"github.com/regintel/regintel/internal/domain/jurisdiction"
	"github.com/regintel/regintel/internal/domain/validation"
	"github.com/regintel/regintel/internal/infrastructure/monitoring/logging"
)

var frenchFormTokens = []string{
	"SASU", "SARL", "EURL", "SCOP", "SAS", "SNC", "SCI", "SEL", "SA",
}

// NewFrance builds the French mentions-légales extractor.  Registration is
// an RCS entry or a bare SIRET/SIREN number.
func NewFrance(v *validation.Validator, log logging.Logger) Extractor {
	p := profile{
		jur:    jurisdiction.JurisdictionFR,
		region: "FR",
		nameLabels: regexp.MustCompile(
			`(?im)^[ \t]*(?:Raison[ \t]+sociale|Dénomination(?:[ \t]+sociale)?|Éditeur(?:[ \t]+du[ \t]+site)?|Exploitant|Société)[ \t]*:[ \t]*([^\n]{3,120})$`),
		formTokens: frenchFormTokens,
		formRe:     buildFormRe(frenchFormTokens),
		nameLineRe: buildNameLineRe(frenchFormTokens),
		regRules: []regRule{
			{
				re: regexp.MustCompile(`(?i)\b(RCS[ \t]+[\p{L}' -]+?[ \t]+\d{3}[ \t]?\d{3}[ \t]?\d{3})\b`),
				build: func(m []string) (string, string) {
					return m[1], "RCS"
				},
			},
			{
				re: regexp.MustCompile(`(?i)\bSIRET[ \t]*(?:n[o°]\.?)?[ \t]*[:.]?[ \t]*(\d{3}[ \t]?\d{3}[ \t]?\d{3}[ \t]?\d{5})\b`),
				build: func(m []string) (string, string) {
					return stripSpaces(m[1]), "SIRET"
				},
			},
			{
				re: regexp.MustCompile(`(?i)\bSIREN[ \t]*(?:n[o°]\.?)?[ \t]*[:.]?[ \t]*(\d{3}[ \t]?\d{3}[ \t]?\d{3})\b`),
				build: func(m []string) (string, string) {
					return stripSpaces(m[1]), "SIREN"
				},
			},
		},
		courtRes: []*regexp.Regexp{
			regexp.MustCompile(`(?i)\b(?:greffe[ \t]+du[ \t]+)?tribunal[ \t]+de[ \t]+commerce[ \t]+de[ \t]+(\p{Lu}[\p{L}' -]+)`),
		},
		vatRes: []*regexp.Regexp{
			regexp.MustCompile(`\b(FR[ \t]?[A-Z0-9]{2}[ \t]?\d{3}[ \t]?\d{3}[ \t]?\d{3})\b`),
		},
		officerRe: regexp.MustCompile(
			`(?i)^[ \t]*(?:Gérant[e]?|Directeur(?:[ \t]+de[ \t]+la[ \t]+publication)?|Directrice(?:[ \t]+de[ \t]+la[ \t]+publication)?|Président[e]?)[ \t]*:?[ \t]*(.*)$`),
		postalRe: regexp.MustCompile(`\b\d{5}\b`),
		phoneRe:  regexp.MustCompile(`(?i)\b(?:Tél(?:éphone)?\.?|Telephone|Phone)[ \t]*[.:]*[ \t]*([+0-9][0-9 ()/\t.-]{5,25})`),
		faxRe:    regexp.MustCompile(`(?i)\b(?:Fax|Télécopie)[ \t]*[.:]*[ \t]*([+0-9][0-9 ()/\t.-]{5,25})`),
	}
	return newExtractor(p, v, log)
}

func stripSpaces(s string) string {
	return strings.NewReplacer(" ", "", "\t", "").Replace(s)
}
