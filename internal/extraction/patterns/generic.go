package patterns

import (
	"regexp"

	"github.com/regintel/regintel/internal/domain/jurisdiction"
	"github.com/regintel/regintel/internal/domain/validation"
	"github.com/regintel/regintel/internal/infrastructure/monitoring/logging"
)

// NewGeneric builds the fallback extractor for jurisdictions without a
// dedicated variant.  It carries a superset vocabulary of legal-form tokens
// and label words across all modeled languages; lower extraction confidence
// is expected.  The postal anchor and phone region come from the requested
// jurisdiction so validation stays jurisdiction-aware.
func NewGeneric(j jurisdiction.Jurisdiction, reg jurisdiction.Registry, v *validation.Validator, log logging.Logger) Extractor {
	region := "GB"
	if reg != nil {
		if info, err := reg.Get(string(j)); err == nil && info.PhoneRegion != "" {
			region = info.PhoneRegion
		}
	}
	tokens := validation.AllLegalForms()

	postalRe := regexp.MustCompile(`\b\d{4,6}\b`)
	if j == jurisdiction.JurisdictionGB {
		postalRe = regexp.MustCompile(`\b[A-Z]{1,2}\d[A-Z\d]?[ \t]*\d[A-Z]{2}\b`)
	}

	p := profile{
		jur:    j,
		region: region,
		nameLabels: regexp.MustCompile(
			`(?im)^[ \t]*(?:Firma|Firmenname|Company[ \t]+name|Raison[ \t]+sociale|Dénomination(?:[ \t]+sociale)?|Anbieter|Betreiber|Provider|Operated[ \t]+by|Éditeur)[ \t]*:[ \t]*([^\n]{3,120})$`),
		formTokens: tokens,
		formRe:     buildFormRe(tokens),
		nameLineRe: buildNameLineRe(tokens),
		regRules: []regRule{
			{
				re: regexp.MustCompile(
					`(?i)\b(?:registration[ \t]+(?:no\.?|number)|register(?:ed)?[ \t]+(?:no\.?|number)|company[ \t]+(?:no\.?|number)|reg\.?[ \t]*(?:no\.?|nr\.?)|handelsregister(?:nummer)?|registernummer)[ \t]*[:.]?[ \t]*([A-Z0-9][A-Z0-9 ./-]{2,28})\b`),
				build: func(m []string) (string, string) {
					return m[1], ""
				},
			},
		},
		vatRes: []*regexp.Regexp{
			regexp.MustCompile(`\b(DE[ \t]?\d{3}[ \t]?\d{3}[ \t]?\d{3})\b`),
			regexp.MustCompile(`\b(ATU[ \t]?\d{8})\b`),
			regexp.MustCompile(`\b(CHE[ \t.-]?\d{3}[ \t.-]?\d{3}[ \t.-]?\d{3}(?:[ \t]?MWST)?)\b`),
			regexp.MustCompile(`\b(GB[ \t]?\d{3}[ \t]?\d{4}[ \t]?\d{2}(?:[ \t]?\d{3})?)\b`),
			regexp.MustCompile(`\b(FR[ \t]?[A-Z0-9]{2}[ \t]?\d{3}[ \t]?\d{3}[ \t]?\d{3})\b`),
			regexp.MustCompile(`\b(IT[ \t]?\d{11})\b`),
			regexp.MustCompile(`\b(NL[ \t]?\d{9}[ \t]?B\d{2})\b`),
			regexp.MustCompile(`\b(BE[ \t]?0\d{3}[ \t.]?\d{3}[ \t.]?\d{3})\b`),
			regexp.MustCompile(`\b(ES[ \t]?[A-Z0-9]\d{7}[A-Z0-9])\b`),
		},
		officerRe: regexp.MustCompile(
			`(?i)^[ \t]*(?:Geschäftsführer(?:in)?|Vertreten[ \t]+durch|Vorstand|Director[s]?|Managing[ \t]+Director|CEO|Gérant[e]?|Président[e]?|Represented[ \t]+by)[ \t]*:?[ \t]*(.*)$`),
		postalRe: postalRe,
		phoneRe:  regexp.MustCompile(`(?i)\b(?:Tel(?:efon|ephone)?\.?|Tél\.?|Phone|Fon)[ \t]*[.:]*[ \t]*([+0-9][0-9 ()/\t.-]{5,25})`),
		faxRe:    regexp.MustCompile(`(?i)\b(?:Fax|Telefax|Télécopie)[ \t]*[.:]*[ \t]*([+0-9][0-9 ()/\t.-]{5,25})`),
	}
	return newExtractor(p, v, log)
}
