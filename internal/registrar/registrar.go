// Package registrar queries RDAP and WHOIS for a domain's registration data
// and reconciles the two sources into one record with a cross-source
// agreement confidence.
package registrar

import (
	"context"
	"regexp"
	"strings"
	"time"
)

// Record is one source's view of a domain registration.  Absent fields stay
// empty; a source returning an empty record is valid.
type Record struct {
	RegistrantName    string
	RegistrantAddress string
	RegistrantCity    string
	RegistrantZip     string
	RegistrantCountry string

	Registrar   string
	CreatedDate *time.Time
	ExpiryDate  *time.Time

	NameServers []string
	StatusFlags []string
}

// IsEmpty reports whether the source contributed nothing.
func (r *Record) IsEmpty() bool {
	return r == nil || (r.RegistrantName == "" && r.RegistrantAddress == "" &&
		r.RegistrantCountry == "" && r.Registrar == "" &&
		len(r.NameServers) == 0 && r.CreatedDate == nil)
}

// Source is a single registration-data protocol client.
type Source interface {
	// Name identifies the source in logs and metrics.
	Name() string

	// Lookup fetches registration data for a bare domain.  Transport
	// failures and not-found responses come back as errors; the caller
	// decides how partial availability affects the merge.
	Lookup(ctx context.Context, domain string) (*Record, error)
}

var domainRe = regexp.MustCompile(`^([a-z0-9]([a-z0-9-]{0,61}[a-z0-9])?\.)+[a-z]{2,}$`)

// NormalizeDomain lowercases and strips scheme, path and port from a domain
// candidate.  Returns false for anything that is not a plausible bare
// domain.
func NormalizeDomain(raw string) (string, bool) {
	d := strings.ToLower(strings.TrimSpace(raw))
	d = strings.TrimPrefix(d, "http://")
	d = strings.TrimPrefix(d, "https://")
	if i := strings.IndexAny(d, "/?#"); i >= 0 {
		d = d[:i]
	}
	if i := strings.IndexByte(d, ':'); i >= 0 {
		d = d[:i]
	}
	d = strings.TrimPrefix(d, "www.")
	if !domainRe.MatchString(d) {
		return "", false
	}
	return d, true
}

// parseDate accepts the timestamp layouts seen in RDAP events and WHOIS
// responses.
func parseDate(s string) *time.Time {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}
	for _, layout := range []string{
		time.RFC3339,
		"2006-01-02T15:04:05Z",
		"2006-01-02 15:04:05",
		"2006-01-02",
		"02-Jan-2006",
		"2006.01.02",
	} {
		if t, err := time.Parse(layout, s); err == nil {
			t = t.UTC()
			return &t
		}
	}
	return nil
}
