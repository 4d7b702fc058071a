package validation

import (
	"strings"
	"testing"

	"github.com/regintel/regintel/internal/domain/jurisdiction"
)

func TestCompanyName(t *testing.T) {
	v := New()

	tests := []struct {
		name   string
		in     string
		want   string
		wantOK bool
	}{
		{"accepts plain name", "TechCorp GmbH", "TechCorp GmbH", true},
		{"collapses whitespace", "  TechCorp   GmbH ", "TechCorp GmbH", true},
		{"too short", "AB", "", false},
		{"too long", strings.Repeat("A", 121), "", false},
		{"no letters", "12345 678", "", false},
		{"no uppercase", "techcorp gmbh", "", false},
		{"low alpha density", "### 123 !!! 456 T", "", false},
		{"navigation phrase", "Privacy Policy", "", false},
		{"german boilerplate", "Impressum", "", false},
		{"payment processor", "PayPal (Europe) S.à r.l.", "", false},
		{"hosting provider", "IONOS SE", "", false},
		{"trailing question mark", "Wer sind wir?", "", false},
		{"lowercase after comma", "Welcome, we are happy", "", false},
		{"sentence marker word", "Wir sind Techcorp", "", false},
		{"umlauts survive", "Müller & Söhne GmbH", "Müller & Söhne GmbH", true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := v.CompanyName(tt.in)
			if ok != tt.wantOK || got != tt.want {
				t.Errorf("CompanyName(%q) = %q, %v; want %q, %v", tt.in, got, ok, tt.want, tt.wantOK)
			}
		})
	}
}

func TestLegalForm(t *testing.T) {
	v := New()

	if got, ok := v.LegalForm("GmbH", jurisdiction.JurisdictionDE); !ok || got != "GmbH" {
		t.Errorf("GmbH not accepted for DE: %q %v", got, ok)
	}
	if got, ok := v.LegalForm("GmbH & Co. KG", jurisdiction.JurisdictionDE); !ok || got != "GmbH & Co. KG" {
		t.Errorf("compound form not accepted: %q %v", got, ok)
	}
	if _, ok := v.LegalForm("Gmbh", jurisdiction.JurisdictionDE); ok {
		t.Error("case-mangled form must be rejected")
	}
	if _, ok := v.LegalForm("GmbH", jurisdiction.JurisdictionGB); ok {
		t.Error("GmbH is not a GB form")
	}
	if got, ok := v.LegalFormAny("SARL"); !ok || got != "SARL" {
		t.Errorf("LegalFormAny(SARL) = %q %v", got, ok)
	}
}

func TestVAT(t *testing.T) {
	v := New()

	tests := []struct {
		in     string
		want   string
		wantOK bool
	}{
		{"DE 123 456 789", "DE123456789", true},
		{"de123456789", "DE123456789", true},
		{"ATU12345678", "ATU12345678", true},
		{"GB123456789", "GB123456789", true},
		{"GB123456789012", "GB123456789012", true},
		{"FRXX123456789", "FRXX123456789", true},
		{"CHE-123.456.789 MWST", "CHE123456789MWST", true},
		{"NL123456789B01", "NL123456789B01", true},
		{"DE12345", "", false},       // too short
		{"DE1234567890", "", false},  // too long
		{"XX123456789", "", false},   // unknown prefix
		{"", "", false},
		{"USt-IdNr.", "", false},
	}
	for _, tt := range tests {
		got, ok := v.VAT(tt.in)
		if ok != tt.wantOK || got != tt.want {
			t.Errorf("VAT(%q) = %q, %v; want %q, %v", tt.in, got, ok, tt.want, tt.wantOK)
		}
	}
}

func TestRegistrationNumber(t *testing.T) {
	v := New()

	if got, ok := v.RegistrationNumber("HRB 123456", jurisdiction.JurisdictionDE); !ok || got != "HRB 123456" {
		t.Errorf("HRB format rejected: %q %v", got, ok)
	}
	if got, ok := v.RegistrationNumber("FN 123456a", jurisdiction.JurisdictionAT); !ok || got != "FN 123456a" {
		t.Errorf("FN format rejected: %q %v", got, ok)
	}
	if got, ok := v.RegistrationNumber("01234567", jurisdiction.JurisdictionGB); !ok || got != "01234567" {
		t.Errorf("companies house number rejected: %q %v", got, ok)
	}
	if got, ok := v.RegistrationNumber("RCS Paris 123 456 789", jurisdiction.JurisdictionFR); !ok || got != "RCS Paris 123 456 789" {
		t.Errorf("RCS format rejected: %q %v", got, ok)
	}
	// Generic fallback: 3-30 chars with a digit.
	if _, ok := v.RegistrationNumber("Reg 99", jurisdiction.JurisdictionNL); !ok {
		t.Error("generic fallback rejected a digit-bearing candidate")
	}
	if _, ok := v.RegistrationNumber("no digits here", jurisdiction.JurisdictionDE); ok {
		t.Error("digitless candidate must be rejected")
	}
	if _, ok := v.RegistrationNumber("12", jurisdiction.JurisdictionDE); ok {
		t.Error("too-short candidate must be rejected")
	}
}

func TestAddressComponents(t *testing.T) {
	v := New()

	if got, ok := v.Street("Musterstraße 123"); !ok || got != "Musterstraße 123" {
		t.Errorf("street rejected: %q %v", got, ok)
	}
	if _, ok := v.Street("Tel: 030 123456"); ok {
		t.Error("phone line must not validate as street")
	}
	if _, ok := v.Street("info@example.de"); ok {
		t.Error("email line must not validate as street")
	}

	if got, ok := v.PostalCode("12345", jurisdiction.JurisdictionDE); !ok || got != "12345" {
		t.Errorf("DE postal code rejected: %q %v", got, ok)
	}
	if _, ok := v.PostalCode("123", jurisdiction.JurisdictionDE); ok {
		t.Error("3-digit code must be rejected")
	}
	if got, ok := v.PostalCode("SW1A 1AA", jurisdiction.JurisdictionGB); !ok || got != "SW1A 1AA" {
		t.Errorf("UK postcode rejected: %q %v", got, ok)
	}
	if _, ok := v.PostalCode("12345", jurisdiction.JurisdictionGB); ok {
		t.Error("digit-only code is not a UK postcode")
	}

	if got, ok := v.City("Berlin"); !ok || got != "Berlin" {
		t.Errorf("city rejected: %q %v", got, ok)
	}
	if _, ok := v.City("B"); ok {
		t.Error("1-char city must be rejected")
	}
	if _, ok := v.City("12345 67890"); ok {
		t.Error("numeric city must be rejected")
	}
}

func TestPersonName(t *testing.T) {
	v := New()

	tests := []struct {
		in     string
		want   string
		wantOK bool
	}{
		{"Max Mustermann", "Max Mustermann", true},
		{"Dr. Max Mustermann", "Max Mustermann", true},
		{"Jean-Pierre Dupont", "Jean-Pierre Dupont", true},
		{"Max", "", false},                       // single token
		{"Geschäftsführer Max Mustermann", "", false}, // captured label
		{"Managing Director", "", false},
		{"max@example.com Mustermann", "", false},
		{"Max Mustermann 2", "", false}, // digits
		{"A B C D E F", "", false},      // too many tokens
	}
	for _, tt := range tests {
		got, ok := v.PersonName(tt.in)
		if ok != tt.wantOK || got != tt.want {
			t.Errorf("PersonName(%q) = %q, %v; want %q, %v", tt.in, got, ok, tt.want, tt.wantOK)
		}
	}
}

func TestPhone(t *testing.T) {
	v := New()

	got, ok := v.Phone("Tel.: 030 2270", "DE")
	if ok {
		// Short service numbers may or may not validate; only assert shape
		// when accepted.
		if !strings.HasPrefix(got, "+49") {
			t.Errorf("normalized phone must carry +49 prefix: %q", got)
		}
	}

	got, ok = v.Phone("+49 30 901820", "DE")
	if !ok || !strings.HasPrefix(got, "+49") {
		t.Errorf("valid DE number rejected: %q %v", got, ok)
	}

	got, ok = v.Phone("020 7946 0958", "GB")
	if !ok || !strings.HasPrefix(got, "+44") {
		t.Errorf("valid GB number rejected: %q %v", got, ok)
	}

	if _, ok := v.Phone("12345", "DE"); ok {
		t.Error("implausible number must be rejected")
	}
	if _, ok := v.Phone("", "DE"); ok {
		t.Error("empty number must be rejected")
	}
}

func TestEmail(t *testing.T) {
	v := New()

	tests := []struct {
		in     string
		want   string
		wantOK bool
	}{
		{"info@techcorp.de", "info@techcorp.de", true},
		{"mailto:Info@TechCorp.DE", "Info@techcorp.de", true},
		{"info (at) techcorp (dot) de", "info@techcorp.de", true},
		{"info@example.com", "", false}, // placeholder domain
		{"not-an-email", "", false},
		{"@techcorp.de", "", false},
	}
	for _, tt := range tests {
		got, ok := v.Email(tt.in)
		if ok != tt.wantOK || got != tt.want {
			t.Errorf("Email(%q) = %q, %v; want %q, %v", tt.in, got, ok, tt.want, tt.wantOK)
		}
	}
}

func TestAllLegalFormsCompoundOrder(t *testing.T) {
	forms := AllLegalForms()
	idxCompound, idxSimple := -1, -1
	for i, f := range forms {
		switch f {
		case "GmbH & Co. KG":
			idxCompound = i
		case "GmbH":
			idxSimple = i
		}
	}
	if idxCompound == -1 || idxSimple == -1 {
		t.Fatal("expected both GmbH forms in superset")
	}
	if idxCompound > idxSimple {
		t.Error("compound forms must precede their substrings")
	}
}
