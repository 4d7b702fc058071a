package jurisdiction

import (
	"strings"
)

// tieBreakOrder resolves equal keyword scores.  Jurisdictions not listed
// rank after the listed ones in registry iteration order, which only matters
// when scores tie at zero and the default applies anyway.
var tieBreakOrder = []Jurisdiction{
	JurisdictionDE, JurisdictionGB, JurisdictionFR,
	JurisdictionAT, JurisdictionCH, JurisdictionIT,
	JurisdictionES, JurisdictionNL, JurisdictionBE,
}

// Detector maps a domain plus clean page text to a jurisdiction.
//
// The TLD takes absolute priority: example.de is DE no matter what the page
// says.  For uninformative TLDs the per-jurisdiction keyword lists are
// counted in the text and the highest score wins, ties broken by
// tieBreakOrder.  When nothing matches, the configured default applies; the
// default is deliberately explicit rather than a hard-coded constant.
type Detector struct {
	registry   Registry
	defaultJur Jurisdiction
}

// NewDetector constructs a Detector.  defaultJur is returned when neither
// the TLD nor the text identifies a jurisdiction; pass the value from
// configuration (GB unless overridden).
func NewDetector(registry Registry, defaultJur Jurisdiction) *Detector {
	if defaultJur == "" {
		defaultJur = JurisdictionGB
	}
	return &Detector{registry: registry, defaultJur: defaultJur}
}

// Detect returns the jurisdiction for the given bare domain and clean text.
// It always returns a valid jurisdiction; ambiguity resolves to the default.
func (d *Detector) Detect(domain, text string) Jurisdiction {
	if j, ok := d.byDomain(domain); ok {
		return j
	}
	if j, ok := d.byKeywords(text); ok {
		return j
	}
	return d.defaultJur
}

// Default exposes the configured fallback jurisdiction.
func (d *Detector) Default() Jurisdiction { return d.defaultJur }

// byDomain maps the domain's TLD (including two-label forms like co.uk) to a
// jurisdiction.
func (d *Detector) byDomain(domain string) (Jurisdiction, bool) {
	domain = strings.ToLower(strings.TrimSuffix(strings.TrimSpace(domain), "."))
	if domain == "" {
		return "", false
	}
	labels := strings.Split(domain, ".")
	// Prefer the longest matching suffix: "co.uk" before "uk".
	if len(labels) >= 2 {
		suffix := labels[len(labels)-2] + "." + labels[len(labels)-1]
		if j, ok := d.registry.ByTLD(suffix); ok {
			return j, true
		}
	}
	return d.registry.ByTLD(labels[len(labels)-1])
}

// byKeywords scores every jurisdiction by keyword occurrences in text.
func (d *Detector) byKeywords(text string) (Jurisdiction, bool) {
	if text == "" {
		return "", false
	}
	lower := strings.ToLower(text)

	scores := make(map[Jurisdiction]int)
	for _, info := range d.registry.List() {
		for _, kw := range info.Keywords {
			scores[info.Code] += strings.Count(lower, kw)
		}
	}

	best, bestScore := Jurisdiction(""), 0
	for _, j := range tieBreakOrder {
		if s := scores[j]; s > bestScore {
			best, bestScore = j, s
		}
	}
	if bestScore == 0 {
		return "", false
	}
	return best, true
}
