package registry

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
)

func registryServer(t *testing.T, handler http.HandlerFunc) (*httptest.Server, *Client) {
	t.Helper()

	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	return srv, New(WithBaseURL(srv.URL), WithHTTPClient(srv.Client()))
}

func TestLookup_ActiveCompany(t *testing.T) {
	_, client := registryServer(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/search" {
			t.Errorf("expected /search path, got %q", r.URL.Path)
		}

		q := r.URL.Query()
		if q.Get("q") != "12345678900012" {
			t.Errorf("expected q=12345678900012, got %q", q.Get("q"))
		}

		if q.Get("page") != "1" || q.Get("per_page") != "1" {
			t.Errorf("expected page=1 per_page=1, got page=%q per_page=%q", q.Get("page"), q.Get("per_page"))
		}

		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(map[string]any{
			"results": []map[string]any{{
				"nom_complet":                 "ACME FRANCE",
				"activite_principale":         "62.01Z",
				"libelle_activite_principale": "Programmation informatique",
				"etat_administratif":          "A",
				"categorie_entreprise":        "PME",
				"adresse":                     "1 RUE DE LA PAIX 75002 PARIS",
			}},
		})
	})

	company, err := client.Lookup(context.Background(), "12345678900012")
	if err != nil {
		t.Fatalf("Lookup returned error: %v", err)
	}

	if company == nil {
		t.Fatal("expected a company, got nil")
	}

	if company.Name != "ACME FRANCE" {
		t.Errorf("expected name ACME FRANCE, got %q", company.Name)
	}

	if company.Status != StatusActive {
		t.Errorf("expected status %q, got %q", StatusActive, company.Status)
	}

	if company.ActivityCode != "62.01Z" {
		t.Errorf("expected activity code 62.01Z, got %q", company.ActivityCode)
	}
}

func TestLookup_CeasedCompany(t *testing.T) {
	_, client := registryServer(t, func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(map[string]any{
			"results": []map[string]any{{
				"nom_raison_sociale": "ANCIENNE SOCIETE",
				"etat_administratif": "C",
			}},
		})
	})

	company, err := client.Lookup(context.Background(), "987654321")
	if err != nil {
		t.Fatalf("Lookup returned error: %v", err)
	}

	if company.Status != StatusCeased {
		t.Errorf("expected status %q, got %q", StatusCeased, company.Status)
	}

	if company.Name != "ANCIENNE SOCIETE" {
		t.Errorf("expected fallback to nom_raison_sociale, got %q", company.Name)
	}
}

func TestLookup_MissingStatusReportedCeased(t *testing.T) {
	_, client := registryServer(t, func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(map[string]any{
			"results": []map[string]any{{"nom_complet": "SANS ETAT"}},
		})
	})

	company, err := client.Lookup(context.Background(), "111222333")
	if err != nil {
		t.Fatalf("Lookup returned error: %v", err)
	}

	if company.Status != StatusCeased {
		t.Errorf("expected absent status collapsed to %q, got %q", StatusCeased, company.Status)
	}
}

func TestLookup_NoResults(t *testing.T) {
	_, client := registryServer(t, func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(map[string]any{"results": []any{}})
	})

	company, err := client.Lookup(context.Background(), "000000000")
	if err != nil {
		t.Fatalf("expected miss to be non-error, got %v", err)
	}

	if company != nil {
		t.Errorf("expected nil company on miss, got %+v", company)
	}
}

func TestLookup_ServerError(t *testing.T) {
	_, client := registryServer(t, func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	})

	_, err := client.Lookup(context.Background(), "123456789")
	if err == nil {
		t.Fatal("expected error on 500 response")
	}
}

func TestLookup_EmptyIdentifier(t *testing.T) {
	client := New()

	_, err := client.Lookup(context.Background(), "")
	if !errors.Is(err, ErrEmptyIdentifier) {
		t.Errorf("expected ErrEmptyIdentifier, got %v", err)
	}
}
