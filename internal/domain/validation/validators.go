// Package validation contains the pure, stateless field validators of the
// extraction engine.  A candidate value either comes back normalized or is
// dropped; a validator never returns a partially-trusted value and a
// rejection is never an error.
//
// The heuristic denylists live in denylists.go as versioned constant tables
// and are indexed once at construction, not re-derived per call.
package validation

import (
	"regexp"
	"strings"
	"unicode"

	"github.com/nyaruka/phonenumbers"

	"github.com/regintel/regintel/internal/domain/jurisdiction"
)

// Validator bundles the compiled denylist indexes.  It is immutable after
// construction and safe for concurrent use from many extraction goroutines.
type Validator struct {
	companyDeny   []string
	providerDeny  []string
	sentenceWords map[string]bool
	roleWords     map[string]bool
	emailDeny     map[string]bool
	streetNoise   []string
}

// New constructs a Validator with the built-in denylist tables.
func New() *Validator {
	v := &Validator{
		companyDeny:   companyNameDenylist,
		providerDeny:  providerNameDenylist,
		sentenceWords: make(map[string]bool, len(sentenceMarkers)),
		roleWords:     make(map[string]bool, len(personRoleDenylist)),
		emailDeny:     make(map[string]bool, len(placeholderEmailDomains)),
		streetNoise:   streetNoiseTokens,
	}
	for _, w := range sentenceMarkers {
		v.sentenceWords[w] = true
	}
	for _, w := range personRoleDenylist {
		v.roleWords[w] = true
	}
	for _, d := range placeholderEmailDomains {
		v.emailDeny[d] = true
	}
	return v
}

// ─── character-class helpers ───

func letterRatio(s string) float64 {
	if s == "" {
		return 0
	}
	letters, total := 0, 0
	for _, r := range s {
		total++
		if unicode.IsLetter(r) {
			letters++
		}
	}
	return float64(letters) / float64(total)
}

func punctRatio(s string) float64 {
	if s == "" {
		return 0
	}
	punct, total := 0, 0
	for _, r := range s {
		total++
		if !unicode.IsLetter(r) && !unicode.IsDigit(r) && !unicode.IsSpace(r) {
			punct++
		}
	}
	return float64(punct) / float64(total)
}

func hasUpper(s string) bool {
	for _, r := range s {
		if unicode.IsUpper(r) {
			return true
		}
	}
	return false
}

func hasLetter(s string) bool {
	for _, r := range s {
		if unicode.IsLetter(r) {
			return true
		}
	}
	return false
}

func hasDigit(s string) bool {
	for _, r := range s {
		if unicode.IsDigit(r) {
			return true
		}
	}
	return false
}

var spaceRun = regexp.MustCompile(`\s+`)

func collapseSpaces(s string) string {
	return strings.TrimSpace(spaceRun.ReplaceAllString(s, " "))
}

// lowerAfterComma reports a mid-string comma directly followed (after
// optional space) by a lowercase letter, a strong sentence signal.
func lowerAfterComma(s string) bool {
	runes := []rune(s)
	for i, r := range runes {
		if r != ',' || i+1 >= len(runes) {
			continue
		}
		j := i + 1
		for j < len(runes) && unicode.IsSpace(runes[j]) {
			j++
		}
		if j < len(runes) && unicode.IsLower(runes[j]) {
			return true
		}
	}
	return false
}

// ─── company name ───

// CompanyName validates and normalizes a company-name candidate.  The rules
// are strict on purpose: a false positive here poisons the whole record.
func (v *Validator) CompanyName(s string) (string, bool) {
	name := collapseSpaces(s)
	if len(name) < 3 || len(name) > 120 {
		return "", false
	}
	if !hasLetter(name) || !hasUpper(name) {
		return "", false
	}
	if letterRatio(name) < 0.30 || punctRatio(name) > 0.20 {
		return "", false
	}
	if v.isSentence(name) {
		return "", false
	}

	lower := strings.ToLower(name)
	for _, deny := range v.companyDeny {
		if lower == deny {
			return "", false
		}
	}
	for _, deny := range v.providerDeny {
		if strings.Contains(lower, deny) {
			return "", false
		}
	}
	return name, true
}

func (v *Validator) isSentence(s string) bool {
	if strings.HasSuffix(s, "?") || strings.HasSuffix(s, "!") {
		return true
	}
	if lowerAfterComma(s) {
		return true
	}
	for _, tok := range strings.Fields(strings.ToLower(s)) {
		if v.sentenceWords[strings.Trim(tok, ".,;:")] {
			return true
		}
	}
	return false
}

// ─── legal form ───

// LegalForm accepts a candidate only on exact match against the given
// jurisdiction's enumeration.
func (v *Validator) LegalForm(s string, j jurisdiction.Jurisdiction) (string, bool) {
	cand := collapseSpaces(s)
	for _, form := range legalForms[j] {
		if cand == form {
			return form, true
		}
	}
	return "", false
}

// LegalFormAny accepts a candidate matching any jurisdiction's enumeration;
// used by the generic extractor.
func (v *Validator) LegalFormAny(s string) (string, bool) {
	cand := collapseSpaces(s)
	for _, form := range AllLegalForms() {
		if cand == form {
			return form, true
		}
	}
	return "", false
}

// LegalFormTokenIn reports whether the string carries any known legal-form
// token at a word boundary, and returns the first one found.  Unlike
// LegalForm this does not require the whole candidate to be the form.
func (v *Validator) LegalFormTokenIn(s string) (string, bool) {
	cand := collapseSpaces(s)
	for _, form := range AllLegalForms() {
		idx := strings.Index(cand, form)
		if idx < 0 {
			continue
		}
		beforeOK := idx == 0 || cand[idx-1] == ' ' || cand[idx-1] == '('
		end := idx + len(form)
		afterOK := end == len(cand) || cand[end] == ' ' || cand[end] == ',' || cand[end] == ')'
		if beforeOK && afterOK {
			return form, true
		}
	}
	return "", false
}

// ─── VAT id ───

var vatSeparators = strings.NewReplacer(" ", "", ".", "", "-", "", "/", "")

// VAT validates a VAT-id candidate against the known per-jurisdiction
// formats.  The value must match exactly one format; the normalized
// (separator-stripped, uppercased) form is returned.  No cross-format
// guessing: a near-miss is dropped entirely.
func (v *Validator) VAT(s string) (string, bool) {
	norm := strings.ToUpper(vatSeparators.Replace(strings.TrimSpace(s)))
	if norm == "" {
		return "", false
	}
	matches := 0
	for _, re := range vatFormats {
		if re.MatchString(norm) {
			matches++
		}
	}
	if matches != 1 {
		return "", false
	}
	return norm, true
}

// ─── registration number ───

// RegistrationNumber accepts jurisdiction-specific formats as-is, falling
// back to a generic rule (3-30 chars containing a digit) for anything else.
func (v *Validator) RegistrationNumber(s string, j jurisdiction.Jurisdiction) (string, bool) {
	cand := collapseSpaces(s)
	for _, re := range registrationFormats[j] {
		if re.MatchString(cand) {
			return cand, true
		}
	}
	if len(cand) >= 3 && len(cand) <= 30 && hasDigit(cand) {
		return cand, true
	}
	return "", false
}

// ─── address components ───

// Street validates a street-address candidate.
func (v *Validator) Street(s string) (string, bool) {
	street := collapseSpaces(s)
	if len(street) < 3 || len(street) > 150 || !hasLetter(street) {
		return "", false
	}
	lower := strings.ToLower(street)
	for _, noise := range v.streetNoise {
		if strings.Contains(lower, noise) {
			return "", false
		}
	}
	return street, true
}

// PostalCode validates a postal-code candidate.  GB uses the alphanumeric
// postcode pattern; every other jurisdiction requires 4-6 digits.
func (v *Validator) PostalCode(s string, j jurisdiction.Jurisdiction) (string, bool) {
	code := strings.ToUpper(collapseSpaces(s))
	if j == jurisdiction.JurisdictionGB {
		if ukPostcode.MatchString(code) {
			return code, true
		}
		return "", false
	}
	if len(code) < 4 || len(code) > 6 {
		return "", false
	}
	for _, r := range code {
		if !unicode.IsDigit(r) {
			return "", false
		}
	}
	return code, true
}

// City validates a city candidate: 2-50 chars, at least 70% letters.
func (v *Validator) City(s string) (string, bool) {
	city := collapseSpaces(s)
	if len(city) < 2 || len(city) > 50 {
		return "", false
	}
	if letterRatio(city) < 0.70 {
		return "", false
	}
	return city, true
}

// ─── person name ───

// PersonName validates an officer/CEO name candidate.  Honorific prefixes
// are stripped; any remaining token matching the role-word denylist means a
// label was captured, not a name.
func (v *Validator) PersonName(s string) (string, bool) {
	name := collapseSpaces(s)

	// Strip leading titles ("Dr. Max Mustermann" → "Max Mustermann").
	for stripped := true; stripped; {
		stripped = false
		lower := strings.ToLower(name)
		for _, title := range personTitlePrefixes {
			if strings.HasPrefix(lower, title+" ") {
				name = collapseSpaces(name[len(title):])
				stripped = true
				break
			}
		}
	}

	if len(name) < 3 || len(name) > 80 {
		return "", false
	}
	if strings.ContainsAny(name, "@0123456789") {
		return "", false
	}

	tokens := strings.Fields(name)
	if len(tokens) < 2 || len(tokens) > 5 {
		return "", false
	}
	for _, tok := range tokens {
		if v.roleWords[strings.ToLower(strings.Trim(tok, ".,;:()"))] {
			return "", false
		}
	}

	// At least 80% letters, spaces or hyphens.
	ok, total := 0, 0
	for _, r := range name {
		total++
		if unicode.IsLetter(r) || unicode.IsSpace(r) || r == '-' || r == '\'' || r == '.' {
			ok++
		}
	}
	if float64(ok)/float64(total) < 0.80 {
		return "", false
	}
	return name, true
}

// ─── contact details ───

var phoneLabel = regexp.MustCompile(`(?i)^(tel(efon)?|telephone|phone|fon|fax|telefax)\s*[.:]*\s*`)

// Phone validates a phone or fax candidate for the jurisdiction's calling
// region and normalizes it to the international format.
func (v *Validator) Phone(s string, region string) (string, bool) {
	cand := phoneLabel.ReplaceAllString(collapseSpaces(s), "")
	if cand == "" {
		return "", false
	}
	num, err := phonenumbers.Parse(cand, region)
	if err != nil {
		return "", false
	}
	if !phonenumbers.IsValidNumber(num) {
		return "", false
	}
	return phonenumbers.Format(num, phonenumbers.INTERNATIONAL), true
}

var emailPattern = regexp.MustCompile(`^[a-zA-Z0-9._%+\-]+@[a-zA-Z0-9.\-]+\.[a-zA-Z]{2,}$`)

// Email validates an email candidate and lowercases the domain part.
// Addresses on placeholder domains are rejected.
func (v *Validator) Email(s string) (string, bool) {
	cand := strings.TrimSpace(s)
	cand = strings.TrimPrefix(cand, "mailto:")
	// Imprints often write "info (at) example.de" to evade harvesters.
	cand = strings.NewReplacer("(at)", "@", "[at]", "@", " at ", "@", "(dot)", ".", "[dot]", ".").Replace(cand)
	cand = strings.ReplaceAll(cand, " ", "")
	if !emailPattern.MatchString(cand) {
		return "", false
	}
	at := strings.LastIndex(cand, "@")
	local, domain := cand[:at], strings.ToLower(cand[at+1:])
	if v.emailDeny[domain] {
		return "", false
	}
	return local + "@" + domain, true
}
