package siret

import (
	"reflect"
	"testing"
)

func TestExtract_SiretFormats(t *testing.T) {
	tests := []struct {
		name     string
		text     string
		expected []string
	}{
		{"plain siret", "SIRET: 12345678900012", []string{"12345678900012"}},
		{"space separated siret", "SIRET: 123 456 789 00012", []string{"12345678900012"}},
		{"period separated siret", "siret 123.456.789.00012 au capital de", []string{"12345678900012"}},
		{"plain siren", "RCS Paris 123456789", []string{"123456789"}},
		{"space separated siren", "SIREN 123 456 789 - Paris", []string{"123456789"}},
		{"no identifiers", "Mentions légales sans numéro", nil},
		{"too short", "code 12345678", nil},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			result := Extract(tc.text)
			if !reflect.DeepEqual(result, tc.expected) {
				t.Errorf("Extract(%q): expected %v, got %v", tc.text, tc.expected, result)
			}
		})
	}
}

func TestExtract_SirenPrefixSuppression(t *testing.T) {
	text := "SIRET 123 456 789 00012 et SIREN 123 456 789"

	result := Extract(text)

	if len(result) != 1 {
		t.Fatalf("expected 1 identifier, got %d: %v", len(result), result)
	}

	if result[0] != "12345678900012" {
		t.Errorf("expected SIRET to win over its SIREN prefix, got %q", result[0])
	}
}

func TestExtract_UnrelatedSirenKept(t *testing.T) {
	text := "SIRET 123 456 789 00012, autre société SIREN 987 654 321"

	result := Extract(text)

	expected := []string{"12345678900012", "987654321"}
	if !reflect.DeepEqual(result, expected) {
		t.Errorf("expected %v, got %v", expected, result)
	}
}

func TestExtract_Deduplication(t *testing.T) {
	text := "SIRET 12345678900012 figure deux fois: 123 456 789 00012"

	result := Extract(text)

	if len(result) != 1 {
		t.Errorf("expected duplicates collapsed to 1, got %d: %v", len(result), result)
	}
}

func TestExtract_DiscoveryOrder(t *testing.T) {
	text := "premier 111 222 333 00044 puis 555 666 777 et enfin 888 999 000 00011"

	result := Extract(text)

	expected := []string{"11122233300044", "88899900000011", "555666777"}
	if !reflect.DeepEqual(result, expected) {
		t.Errorf("expected SIRETs before SIRENs in discovery order, got %v", result)
	}
}

func TestExtract_Idempotent(t *testing.T) {
	text := "SIRET: 123 456 789 00012 et SIREN 987 654 321"

	first := Extract(text)
	second := Extract(text)

	if !reflect.DeepEqual(first, second) {
		t.Errorf("expected identical output across runs, got %v then %v", first, second)
	}
}
