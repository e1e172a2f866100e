// Package registry cross-references extracted identifiers against the French
// public company registry (recherche-entreprises.api.gouv.fr).
package registry

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/theopenlane/httpsling"
)

const (
	// defaultBaseURL is the public company-search API root
	defaultBaseURL = "https://recherche-entreprises.api.gouv.fr"
	// defaultRequestTimeout bounds a single registry lookup
	defaultRequestTimeout = 10 * time.Second

	// statusActive is the single-letter administrative status code for an active entity
	statusActive = "A"

	// StatusActive is the reported status for entities the registry marks active
	StatusActive = "Actif"
	// StatusCeased is the reported status for every other administrative code
	StatusCeased = "Cessé"
)

// Company is the compact record kept from a registry match. Field names are
// part of the dossier contract: the record is serialized verbatim into the
// assembled document the downstream analysis prompt consumes.
type Company struct {
	// Name is the canonical legal name
	Name string `json:"nom"`
	// ActivityCode is the primary declared activity (NAF) code
	ActivityCode string `json:"activite"`
	// ActivityLabel is the human-readable activity description
	ActivityLabel string `json:"libelle_activite"`
	// Status is the administrative status, Actif or Cessé
	Status string `json:"etat"`
	// Category is the company size category
	Category string `json:"categorie"`
	// Address is the declared head-office address
	Address string `json:"adresse"`
}

// searchResponse models the registry search payload. The upstream shape is
// not contractually guaranteed, so every field is optional and checked
// before use.
type searchResponse struct {
	Results []searchResult `json:"results"`
}

// searchResult is a single company entry in the registry response
type searchResult struct {
	NomComplet                string `json:"nom_complet"`
	NomRaisonSociale          string `json:"nom_raison_sociale"`
	ActivitePrincipale        string `json:"activite_principale"`
	LibelleActivitePrincipale string `json:"libelle_activite_principale"`
	EtatAdministratif         string `json:"etat_administratif"`
	CategorieEntreprise       string `json:"categorie_entreprise"`
	Adresse                   string `json:"adresse"`
}

// Client queries the company registry search endpoint
type Client struct {
	baseURL    string
	httpClient *http.Client
}

// Option configures the Client
type Option func(*Client)

// WithHTTPClient sets a custom HTTP client for registry lookups
func WithHTTPClient(client *http.Client) Option {
	return func(c *Client) {
		if client != nil {
			c.httpClient = client
		}
	}
}

// WithBaseURL overrides the registry API base URL
func WithBaseURL(url string) Option {
	return func(c *Client) {
		if url != "" {
			c.baseURL = url
		}
	}
}

// New creates a registry client
func New(opts ...Option) *Client {
	client := &Client{
		baseURL:    defaultBaseURL,
		httpClient: &http.Client{Timeout: defaultRequestTimeout},
	}

	for _, opt := range opts {
		opt(client)
	}

	return client
}

// Lookup searches the registry for a single identifier, requesting exactly one
// result. A miss returns (nil, nil): entities without a public registration
// (private individuals, foreign companies) are a legitimate outcome, not an
// error. Transport and decode failures return an error the caller is expected
// to absorb as "registry unavailable". No retries are performed.
func (c *Client) Lookup(ctx context.Context, id string) (*Company, error) {
	if id == "" {
		return nil, ErrEmptyIdentifier
	}

	requester := httpsling.MustNew(
		httpsling.URL(c.baseURL+"/search"),
		httpsling.Method(http.MethodGet),
		httpsling.QueryParam("q", id),
		httpsling.QueryParam("page", "1"),
		httpsling.QueryParam("per_page", "1"),
		httpsling.WithDoer(c.httpClient),
	)

	var payload searchResponse

	resp, err := requester.ReceiveWithContext(ctx, &payload)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrRequestFailed, err)
	}
	defer resp.Body.Close() //nolint:errcheck // response body close error is non-critical

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("%w: status %d", ErrUnexpectedStatus, resp.StatusCode)
	}

	if len(payload.Results) == 0 {
		return nil, nil
	}

	return buildCompany(payload.Results[0]), nil
}

// buildCompany normalizes a raw registry entry into the compact record
func buildCompany(r searchResult) *Company {
	name := r.NomComplet
	if name == "" {
		name = r.NomRaisonSociale
	}

	return &Company{
		Name:          name,
		ActivityCode:  r.ActivitePrincipale,
		ActivityLabel: r.LibelleActivitePrincipale,
		Status:        mapStatus(r.EtatAdministratif),
		Category:      r.CategorieEntreprise,
		Address:       r.Adresse,
	}
}

// mapStatus collapses the provider's single-letter administrative code:
// "A" means active, every other code (including absent) is reported ceased.
func mapStatus(code string) string {
	if code == statusActive {
		return StatusActive
	}

	return StatusCeased
}
