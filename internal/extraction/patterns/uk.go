package patterns

import (
	"regexp"
	"strings"

	"github.com/regintel/regintel/internal/domain/jurisdiction"
	"github.com/regintel/regintel/internal/domain/validation"
	"github.com/regintel/regintel/internal/infrastructure/monitoring/logging"
)

var ukFormTokens = []string{
	"Limited", "Ltd.", "Ltd", "PLC", "plc", "LLP", "LP", "CIC",
}

// NewUnitedKingdom builds the UK legal-notice extractor.  Registration is
// the Companies House number; the postcode pattern anchors the address.
func NewUnitedKingdom(v *validation.Validator, log logging.Logger) Extractor {
	p := profile{
		jur:    jurisdiction.JurisdictionGB,
		region: "GB",
		nameLabels: regexp.MustCompile(
			`(?im)^[ \t]*(?:Company[ \t]+name|Trading[ \t]+name|Operated[ \t]+by|Owned[ \t]+by|Provider)[ \t]*:[ \t]*([^\n]{3,120})$`),
		formTokens: ukFormTokens,
		formRe:     buildFormRe(ukFormTokens),
		nameLineRe: buildNameLineRe(ukFormTokens),
		regRules: []regRule{
			{
				re: regexp.MustCompile(
					`(?i)\b(?:company[ \t]+(?:registration[ \t]+)?(?:no\.?|number)|registered[ \t]+(?:company[ \t]+)?(?:no\.?|number)|registration[ \t]+(?:no\.?|number)|companies[ \t]+house[ \t]*(?:no\.?|number)?)[ \t]*[:.]?[ \t]*#?[ \t]*([A-Z]{2}\d{6}|\d{8})\b`),
				build: func(m []string) (string, string) {
					return strings.ToUpper(m[1]), "Companies House"
				},
			},
		},
		vatRes: []*regexp.Regexp{
			regexp.MustCompile(`\b(GB[ \t]?\d{3}[ \t]?\d{4}[ \t]?\d{2}(?:[ \t]?\d{3})?)\b`),
		},
		officerRe: regexp.MustCompile(
			`(?i)^[ \t]*(?:Director[s]?|Managing[ \t]+Director|Chief[ \t]+Executive(?:[ \t]+Officer)?|CEO)[ \t]*:?[ \t]*(.*)$`),
		postalRe: regexp.MustCompile(`\b[A-Z]{1,2}\d[A-Z\d]?[ \t]*\d[A-Z]{2}\b`),
		phoneRe:  regexp.MustCompile(`(?i)\b(?:Tel(?:ephone)?|Phone|Call)[ \t]*[.:]*[ \t]*([+0-9][0-9 ()/\t.-]{5,25})`),
		faxRe:    regexp.MustCompile(`(?i)\b(?:Fax)[ \t]*[.:]*[ \t]*([+0-9][0-9 ()/\t.-]{5,25})`),
	}
	return newExtractor(p, v, log)
}
