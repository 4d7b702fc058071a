// Package patterns implements the jurisdiction-specific extraction pass.
// Each jurisdiction variant shares one engine driven by a profile of ordered
// regex tables; the first candidate passing validation wins per field.
package patterns

import (
	"regexp"
	"strings"

	"github.com/regintel/regintel/internal/domain/jurisdiction"
	"github.com/regintel/regintel/internal/domain/validation"
	"github.com/regintel/regintel/internal/extraction/draft"
	"github.com/regintel/regintel/internal/infrastructure/monitoring/logging"
)

// Extractor is the contract every jurisdiction variant implements.
type Extractor interface {
	// Extract runs the variant's pattern tables over clean text and
	// returns a field draft.  Candidates failing validation are dropped
	// silently; an all-empty draft is a normal outcome.
	Extract(text string) *draft.Draft

	// Jurisdiction reports which jurisdiction the variant models.
	Jurisdiction() jurisdiction.Jurisdiction
}

// regRule extracts a registration number.  build assembles the normalized
// number and the register type from the submatches.
type regRule struct {
	re    *regexp.Regexp
	build func(m []string) (number string, regType string)
}

// profile holds the per-jurisdiction pattern tables.  All regexes are
// compiled once at construction.
type profile struct {
	jur         jurisdiction.Jurisdiction
	region      string
	nameLabels  *regexp.Regexp // line-start label, capture 1 = candidate
	formTokens  []string       // ordered, compounds before substrings
	formRe      *regexp.Regexp // boundary-safe token match, capture 1 = token
	nameLineRe  *regexp.Regexp // line ending in a form token, capture 1
	regRules    []regRule
	courtRes    []*regexp.Regexp // capture 1 = court
	vatRes      []*regexp.Regexp // capture 1 = candidate
	officerRe   *regexp.Regexp   // line-start label, capture 1 = names blob
	postalRe    *regexp.Regexp   // address anchor
	phoneRe     *regexp.Regexp   // capture 1 = candidate
	faxRe       *regexp.Regexp
}

type extractor struct {
	p   profile
	v   *validation.Validator
	log logging.Logger
}

// ForJurisdiction returns the variant modeling j.  Jurisdictions without a
// dedicated variant get the generic superset extractor carrying j's postal
// anchor and phone region, so validation stays jurisdiction-aware.
func ForJurisdiction(j jurisdiction.Jurisdiction, reg jurisdiction.Registry, v *validation.Validator, log logging.Logger) Extractor {
	switch j {
	case jurisdiction.JurisdictionDE:
		return NewGermany(v, log)
	case jurisdiction.JurisdictionAT:
		return NewAustria(v, log)
	case jurisdiction.JurisdictionGB:
		return NewUnitedKingdom(v, log)
	case jurisdiction.JurisdictionFR:
		return NewFrance(v, log)
	default:
		return NewGeneric(j, reg, v, log)
	}
}

func newExtractor(p profile, v *validation.Validator, log logging.Logger) *extractor {
	if log == nil {
		log = logging.NewNopLogger()
	}
	return &extractor{p: p, v: v, log: log.Named("patterns." + strings.ToLower(string(p.jur)))}
}

func (e *extractor) Jurisdiction() jurisdiction.Jurisdiction { return e.p.jur }

func (e *extractor) Extract(text string) *draft.Draft {
	d := &draft.Draft{}
	if strings.TrimSpace(text) == "" {
		return d
	}
	lines := splitLines(text)

	e.extractName(d, text, lines)
	e.extractForm(d, text)
	e.extractRegistration(d, text)
	e.extractVAT(d, text)
	e.extractOfficers(d, lines)
	e.extractAddress(d, lines)
	e.extractContact(d, text)
	return d
}

// ─── legal name ───

func (e *extractor) extractName(d *draft.Draft, text string, lines []string) {
	if e.p.nameLabels != nil {
		for _, m := range e.p.nameLabels.FindAllStringSubmatch(text, 4) {
			if v, ok := e.v.CompanyName(m[1]); ok {
				d.LegalName = v
				return
			}
		}
	}
	if e.p.nameLineRe != nil {
		for _, m := range e.p.nameLineRe.FindAllStringSubmatch(text, 8) {
			if v, ok := e.v.CompanyName(strings.TrimSpace(m[1])); ok {
				d.LegalName = v
				return
			}
		}
	}
}

// ─── legal form ───

func (e *extractor) extractForm(d *draft.Draft, text string) {
	// The legal name is the most reliable carrier of the form token.
	if d.LegalName != "" {
		if m := e.p.formRe.FindStringSubmatch(d.LegalName); m != nil {
			if v, ok := e.v.LegalForm(m[1], e.p.jur); ok {
				d.LegalForm = v
				return
			}
			if v, ok := e.v.LegalFormAny(m[1]); ok {
				d.LegalForm = v
				return
			}
		}
	}
	if m := e.p.formRe.FindStringSubmatch(text); m != nil {
		if v, ok := e.v.LegalForm(m[1], e.p.jur); ok {
			d.LegalForm = v
		} else if v, ok := e.v.LegalFormAny(m[1]); ok {
			d.LegalForm = v
		}
	}
}

// ─── registration number & court ───

func (e *extractor) extractRegistration(d *draft.Draft, text string) {
	for _, rule := range e.p.regRules {
		m := rule.re.FindStringSubmatch(text)
		if m == nil {
			continue
		}
		number, regType := rule.build(m)
		if v, ok := e.v.RegistrationNumber(number, e.p.jur); ok {
			d.RegistrationNumber = v
			d.RegisterType = regType
			break
		}
	}
	if d.RegistrationNumber == "" {
		return
	}
	for _, re := range e.p.courtRes {
		if m := re.FindStringSubmatch(text); m != nil {
			court := strings.Trim(strings.TrimSpace(m[1]), ",.;")
			if len(court) >= 2 && len(court) <= 60 {
				d.RegisterCourt = court
				return
			}
		}
	}
}

// ─── vat ───

func (e *extractor) extractVAT(d *draft.Draft, text string) {
	for _, re := range e.p.vatRes {
		for _, m := range re.FindAllStringSubmatch(text, 4) {
			if v, ok := e.v.VAT(m[1]); ok {
				d.VATID = v
				return
			}
		}
	}
}

// ─── officers ───

var nameSplitRe = regexp.MustCompile(`\s*(?:,|&|/|\bund\b|\band\b|\bet\b)\s*`)

func (e *extractor) extractOfficers(d *draft.Draft, lines []string) {
	if e.p.officerRe == nil {
		return
	}
	for i, line := range lines {
		m := e.p.officerRe.FindStringSubmatch(line)
		if m == nil {
			continue
		}
		blob := strings.TrimSpace(m[1])
		// Label alone on its line, names on the next.
		if blob == "" && i+1 < len(lines) {
			blob = strings.TrimSpace(lines[i+1])
		}
		for _, cand := range nameSplitRe.Split(blob, -1) {
			name, ok := e.v.PersonName(cand)
			if !ok {
				continue
			}
			if d.CEOName == "" {
				d.CEOName = name
			}
			if !containsString(d.Directors, name) {
				d.Directors = append(d.Directors, name)
			}
		}
		if d.CEOName != "" {
			return
		}
	}
}

// ─── address ───

// contactNoise cuts trailing contact labels off a city candidate.
var contactNoise = regexp.MustCompile(`(?i)\b(?:tel(?:efon)?|telephone|phone|fon|fax|telefax|e-?mail|mail|www|http).*$`)

func (e *extractor) extractAddress(d *draft.Draft, lines []string) {
	for i, line := range lines {
		loc := e.p.postalRe.FindStringIndex(line)
		if loc == nil {
			continue
		}
		zip, ok := e.v.PostalCode(line[loc[0]:loc[1]], e.p.jur)
		if !ok {
			continue
		}

		street, cityHint := e.streetBefore(lines, i, line[:loc[0]])
		city := e.cityAfter(lines, i, line[loc[1]:], cityHint)
		if street == "" || city == "" {
			continue
		}
		d.StreetAddress = street
		d.PostalCode = zip
		d.City = city
		return
	}
}

// streetBefore finds a street-like value on the same line before the postal
// anchor, else on the preceding line.  When the same-line prefix is
// comma-separated ("1 High St, London EC1A 1BB") the last segment is kept
// aside as a city hint.
func (e *extractor) streetBefore(lines []string, i int, prefix string) (street, cityHint string) {
	prefix = strings.Trim(strings.TrimSpace(prefix), ",;-")
	if prefix != "" {
		segs := strings.Split(prefix, ",")
		cand := strings.TrimSpace(segs[0])
		// Cut a leading label ("Registered office: 1 High St").
		if idx := strings.LastIndex(cand, ":"); idx >= 0 {
			cand = strings.TrimSpace(cand[idx+1:])
		}
		if len(segs) > 1 {
			cityHint = strings.TrimSpace(segs[len(segs)-1])
		}
		if s, ok := e.v.Street(cand); ok {
			return s, cityHint
		}
	}
	if i > 0 {
		if s, ok := e.v.Street(strings.TrimSpace(lines[i-1])); ok {
			return s, cityHint
		}
	}
	return "", cityHint
}

// cityAfter takes the remainder of the anchor line, else the next line, else
// the same-line hint; truncates to 3 words and strips contact-label noise.
func (e *extractor) cityAfter(lines []string, i int, rest, hint string) string {
	cands := []string{strings.Trim(strings.TrimSpace(rest), ",;-"), hint}
	if i+1 < len(lines) {
		cands = append(cands, strings.TrimSpace(lines[i+1]))
	}
	for _, cand := range cands {
		cand = strings.TrimSpace(contactNoise.ReplaceAllString(cand, ""))
		// A colon means a label line slipped in, not a city.
		if strings.ContainsAny(cand, ":@") {
			continue
		}
		words := strings.Fields(cand)
		if len(words) > 3 {
			words = words[:3]
		}
		if v, ok := e.v.City(strings.Join(words, " ")); ok {
			return v
		}
	}
	return ""
}

// ─── phone / fax / email ───

var emailScanRe = regexp.MustCompile(`[a-zA-Z0-9._%+\-]+\s?(?:@|\(at\)|\[at\])\s?[a-zA-Z0-9.\-]+\.[a-zA-Z]{2,}`)

func (e *extractor) extractContact(d *draft.Draft, text string) {
	if e.p.phoneRe != nil {
		for _, m := range e.p.phoneRe.FindAllStringSubmatch(text, 4) {
			if v, ok := e.v.Phone(m[1], e.p.region); ok {
				d.Phone = v
				break
			}
		}
	}
	if e.p.faxRe != nil {
		for _, m := range e.p.faxRe.FindAllStringSubmatch(text, 4) {
			if v, ok := e.v.Phone(m[1], e.p.region); ok {
				d.Fax = v
				break
			}
		}
	}
	for _, cand := range emailScanRe.FindAllString(text, 8) {
		if v, ok := e.v.Email(cand); ok {
			d.Email = v
			break
		}
	}
}

// ─── shared construction helpers ───

// buildFormRe compiles a boundary-safe alternation over the form tokens,
// preserving their order so compound forms win over their substrings.
func buildFormRe(tokens []string) *regexp.Regexp {
	quoted := make([]string, len(tokens))
	for i, t := range tokens {
		quoted[i] = regexp.QuoteMeta(t)
	}
	return regexp.MustCompile(`(?:^|[\s,;:(>])(` + strings.Join(quoted, "|") + `)(?:$|[\s,;:.)<])`)
}

// buildNameLineRe compiles a pattern matching a full line that ends in one
// of the form tokens, the usual shape of the company line in a legal notice.
func buildNameLineRe(tokens []string) *regexp.Regexp {
	quoted := make([]string, len(tokens))
	for i, t := range tokens {
		quoted[i] = regexp.QuoteMeta(t)
	}
	return regexp.MustCompile(`(?m)^[ \t]*([^\n]{0,100}?(?:` + strings.Join(quoted, "|") + `))[ \t]*$`)
}

func splitLines(text string) []string {
	raw := strings.Split(text, "\n")
	out := make([]string, 0, len(raw))
	for _, l := range raw {
		l = strings.TrimSpace(l)
		if l != "" {
			out = append(out, l)
		}
	}
	return out
}

func containsString(list []string, s string) bool {
	for _, v := range list {
		if v == s {
			return true
		}
	}
	return false
}
