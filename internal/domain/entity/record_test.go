package entity

import "testing"

func TestDeriveStatus(t *testing.T) {
	tests := []struct {
		name string
		rec  Record
		want Status
	}{
		{"empty", Record{}, StatusNoData},
		{"one key field", Record{LegalName: "TechCorp GmbH"}, StatusNoData},
		{"name and form", Record{LegalName: "TechCorp GmbH", LegalForm: "GmbH"}, StatusSuccess},
		{"phone and email", Record{Phone: "+49 30 1234567", Email: "info@techcorp.de"}, StatusSuccess},
		{"directors count once", Record{Directors: []string{"Max Mustermann", "Erika Musterfrau"}}, StatusNoData},
		{"directors plus ceo", Record{Directors: []string{"Max Mustermann"}, CEOName: "Max Mustermann"}, StatusSuccess},
		{"address alone is not identity", Record{StreetAddress: "Musterstr. 1", PostalCode: "12345", City: "Berlin"}, StatusNoData},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.rec.DeriveStatus(); got != tt.want {
				t.Errorf("DeriveStatus() = %s, want %s", got, tt.want)
			}
		})
	}
}

func TestAddressTriple(t *testing.T) {
	r := Record{StreetAddress: "Musterstraße 123", PostalCode: "12345", City: "Berlin"}
	if !r.HasAddress() {
		t.Error("complete triple must report an address")
	}

	partial := Record{StreetAddress: "Musterstraße 123", City: "Berlin"}
	partial.ClearAddress()
	if partial.StreetAddress != "" || partial.City != "" {
		t.Error("partial address must be cleared entirely")
	}

	r.ClearAddress()
	if !r.HasAddress() {
		t.Error("ClearAddress must not touch a complete triple")
	}
}
