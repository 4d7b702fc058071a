package registrar

import (
	"testing"
	"time"

	"github.com/openrdap/rdap"

	"github.com/regintel/regintel/internal/infrastructure/monitoring/logging"
)

func TestMapDomainEventsAndNameservers(t *testing.T) {
	src := NewRDAPSource(logging.NewNopLogger())
	dom := &rdap.Domain{
		LDHName: "example.de",
		Status:  []string{"active"},
		Nameservers: []rdap.Nameserver{
			{LDHName: "NS1.EXAMPLE.NET"},
			{LDHName: "ns2.example.net"},
		},
		Events: []rdap.Event{
			{Action: "registration", Date: "2015-03-01T00:00:00Z"},
			{Action: "expiration", Date: "2027-03-01T00:00:00Z"},
			{Action: "last changed", Date: "2024-01-01T00:00:00Z"},
		},
	}

	rec := src.mapDomain(dom)

	if got := rec.NameServers; len(got) != 2 || got[0] != "ns1.example.net" {
		t.Fatalf("nameservers = %v", got)
	}
	if rec.CreatedDate == nil || !rec.CreatedDate.Equal(time.Date(2015, 3, 1, 0, 0, 0, 0, time.UTC)) {
		t.Fatalf("created date = %v", rec.CreatedDate)
	}
	if rec.ExpiryDate == nil || rec.ExpiryDate.Year() != 2027 {
		t.Fatalf("expiry date = %v", rec.ExpiryDate)
	}
	if len(rec.StatusFlags) != 1 || rec.StatusFlags[0] != "active" {
		t.Fatalf("status flags = %v", rec.StatusFlags)
	}
}

func TestMapEntityRegistrantOrg(t *testing.T) {
	src := NewRDAPSource(logging.NewNopLogger())
	dom := &rdap.Domain{
		Entities: []rdap.Entity{
			{
				Roles: []string{"registrant"},
				VCard: &rdap.VCard{
					Properties: []*rdap.VCardProperty{
						{Name: "fn", Type: "text", Value: "Max Mustermann"},
						{Name: "org", Type: "text", Value: "Acme Holdings GmbH"},
					},
				},
			},
		},
	}

	rec := src.mapDomain(dom)
	if rec.RegistrantName != "Acme Holdings GmbH" {
		t.Fatalf("registrant name = %q, want the org property", rec.RegistrantName)
	}
}

func TestMapEntityRegistrantFallsBackToName(t *testing.T) {
	src := NewRDAPSource(logging.NewNopLogger())
	dom := &rdap.Domain{
		Entities: []rdap.Entity{
			{
				Roles: []string{"registrant"},
				VCard: &rdap.VCard{
					Properties: []*rdap.VCardProperty{
						{Name: "fn", Type: "text", Value: "Max Mustermann"},
					},
				},
			},
		},
	}

	rec := src.mapDomain(dom)
	if rec.RegistrantName != "Max Mustermann" {
		t.Fatalf("registrant name = %q, want the fn fallback", rec.RegistrantName)
	}
}

func TestParseDateLayouts(t *testing.T) {
	cases := []string{
		"2015-03-01T00:00:00Z",
		"2015-03-01 00:00:00",
		"2015-03-01",
		"01-Mar-2015",
		"2015.03.01",
	}
	for _, in := range cases {
		got := parseDate(in)
		if got == nil || got.Year() != 2015 || got.Month() != time.March {
			t.Errorf("parseDate(%q) = %v", in, got)
		}
	}
	if parseDate("") != nil || parseDate("garbage") != nil {
		t.Error("unparseable dates must map to nil")
	}
}
