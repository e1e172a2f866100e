// Package dossier assembles the compliance-evidence document for a site: it
// drives the page fetcher and legal-link discovery, extracts registration
// identifiers from the combined text, cross-references them against the
// public registry, and renders one annotated text document. Every external
// call is absorbed on failure: the assembler favors a best-effort partial
// dossier over a hard failure at every step.
package dossier

import (
	"context"
	"fmt"
	"strings"

	"github.com/rs/zerolog/log"

	"github.com/probatio/dossier/internal/legal"
	"github.com/probatio/dossier/internal/registry"
	"github.com/probatio/dossier/internal/scrape"
	"github.com/probatio/dossier/internal/siret"
)

const (
	// defaultHomeTextLimit caps the homepage content section
	defaultHomeTextLimit = 8000
	// defaultLegalTextLimit caps each legal-page section, smaller than the
	// homepage budget since several pages share the document
	defaultLegalTextLimit = 5000
	// defaultMaxCandidates caps how many extracted identifiers are queried
	// against the registry
	defaultMaxCandidates = 6
	// defaultMaxCompanies caps how many non-filtered records are kept;
	// lookups stop early once reached
	defaultMaxCompanies = 3

	// InputTypeURL marks a dossier assembled from a fetched site
	InputTypeURL = "url"
	// InputTypeText marks a dossier assembled from raw submitted text
	InputTypeText = "text"
)

// hostingProviderDenylist filters registry records belonging to hosting,
// cloud, registrar, and e-commerce platform operators. These show up in
// footer and legal text as "hébergé par X" and are not the analyzed entity.
// Matched case-insensitively against the record's canonical name.
var hostingProviderDenylist = []string{
	"OVH",
	"IONOS",
	"AMAZON",
	"HETZNER",
	"O2SWITCH",
	"SHOPIFY",
	"GANDI",
	"PLANETHOSTER",
	"VERCEL",
	"NETLIFY",
	"GOOGLE",
	"MICROSOFT",
	"HOSTINGER",
	"CLOUDFLARE",
}

// Record pairs a queried identifier with its registry result, nil when the
// registry had no match or the lookup failed.
type Record struct {
	// ID is the identifier that was queried
	ID string `json:"id"`
	// Company is the registry record, absent on a miss
	Company *registry.Company `json:"company,omitempty"`
}

// Dossier is the assembled evidence artifact. Content is the text blob handed
// to the downstream analysis; the remaining fields expose the same evidence
// structurally for API consumers.
type Dossier struct {
	// InputType is url or text depending on the path taken
	InputType string `json:"input_type"`
	// BaseURL is the resolved homepage URL on the url path
	BaseURL string `json:"base_url,omitempty"`
	// AnalyzedURLs lists every URL actually fetched, in discovery order
	AnalyzedURLs []string `json:"analyzed_urls,omitempty"`
	// Identifiers lists extracted registration numbers in discovery order
	Identifiers []string `json:"identifiers"`
	// Records holds the registry cross-reference results that made it into
	// the document, including explicit misses
	Records []Record `json:"records"`
	// Content is the assembled document text
	Content string `json:"content"`
}

// Lookup is the registry dependency of the assembler
type Lookup interface {
	// Lookup returns the registry record for an identifier, (nil, nil) on a miss
	Lookup(ctx context.Context, id string) (*registry.Company, error)
}

// Options configures assembly budgets
type Options struct {
	homeTextLimit  int
	legalTextLimit int
	maxCandidates  int
	maxCompanies   int
}

// Option is a functional option for configuring the assembler
type Option func(*Options)

// WithHomeTextLimit sets the homepage section character budget
func WithHomeTextLimit(n int) Option {
	return func(o *Options) {
		if n > 0 {
			o.homeTextLimit = n
		}
	}
}

// WithLegalTextLimit sets the per-legal-page section character budget
func WithLegalTextLimit(n int) Option {
	return func(o *Options) {
		if n > 0 {
			o.legalTextLimit = n
		}
	}
}

// WithMaxCandidates sets how many identifiers are queried at most
func WithMaxCandidates(n int) Option {
	return func(o *Options) {
		if n > 0 {
			o.maxCandidates = n
		}
	}
}

// WithMaxCompanies sets the kept-record cap
func WithMaxCompanies(n int) Option {
	return func(o *Options) {
		if n > 0 {
			o.maxCompanies = n
		}
	}
}

// Assembler orchestrates the evidence-gathering pipeline
type Assembler struct {
	fetcher    scrape.Fetcher
	discoverer *legal.Discoverer
	registry   Lookup
	options    *Options
}

// New creates an assembler from its collaborators
func New(fetcher scrape.Fetcher, discoverer *legal.Discoverer, reg Lookup, opts ...Option) (*Assembler, error) {
	if fetcher == nil {
		return nil, ErrNilFetcher
	}

	if discoverer == nil {
		return nil, ErrNilDiscoverer
	}

	if reg == nil {
		return nil, ErrNilRegistry
	}

	o := &Options{
		homeTextLimit:  defaultHomeTextLimit,
		legalTextLimit: defaultLegalTextLimit,
		maxCandidates:  defaultMaxCandidates,
		maxCompanies:   defaultMaxCompanies,
	}

	for _, opt := range opts {
		opt(o)
	}

	return &Assembler{
		fetcher:    fetcher,
		discoverer: discoverer,
		registry:   reg,
		options:    o,
	}, nil
}

// Assemble runs the pipeline over input, which is either a site URL
// (http:// or https:// prefix) or raw free text. A homepage that cannot be
// fetched degrades to the raw-text path over the original input rather than
// failing the request.
func (a *Assembler) Assemble(ctx context.Context, input string) (*Dossier, error) {
	input = strings.TrimSpace(input)
	if input == "" {
		return nil, ErrEmptyInput
	}

	if !isURL(input) {
		return a.assembleFromText(ctx, input), nil
	}

	home, err := a.fetcher.Fetch(ctx, input)
	if err != nil {
		log.Warn().Err(err).Str("url", input).Msg("homepage fetch failed, falling back to raw text analysis")

		return a.assembleFromText(ctx, input), nil
	}

	return a.assembleFromSite(ctx, input, home), nil
}

// assembleFromSite builds the url-path dossier: homepage content, discovered
// legal pages, manifest, then the filtered registry cross-reference block.
func (a *Assembler) assembleFromSite(ctx context.Context, input string, home *scrape.Page) *Dossier {
	base := home.URL
	if base == "" {
		base = input
	}

	analyzed := []string{base}

	var body strings.Builder

	fmt.Fprintf(&body, homepageURLLabel, base)
	body.WriteString("\n\n")
	body.WriteString(homepageBodyHeader)
	body.WriteString("\n")
	body.WriteString(scrape.Truncate(home.Text, a.options.homeTextLimit))

	// Discovery runs against the raw markup so footer links survive the
	// header/footer stripping applied to page text.
	links := a.discoverer.Discover(home.HTML, base)
	log.Info().Str("base", base).Int("legal_links", len(links)).Msg("legal link discovery complete")

	// Sequential fetches bound concurrent connections to the target site;
	// fan-out is capped at a handful of pages anyway.
	for _, link := range links {
		page, err := a.fetcher.Fetch(ctx, link)
		if err != nil {
			log.Warn().Err(err).Str("url", link).Msg("legal page fetch failed, skipping")
			continue
		}

		analyzed = append(analyzed, link)

		body.WriteString(sectionSeparator)
		fmt.Fprintf(&body, legalPageHeader, link)
		body.WriteString("\n")
		body.WriteString(scrape.Truncate(page.Text, a.options.legalTextLimit))
	}

	content := renderManifest(analyzed) + "\n\n" + body.String()

	ids := siret.Extract(content)
	log.Info().Str("base", base).Int("identifiers", len(ids)).Msg("identifier extraction complete")

	records := a.crossReference(ctx, ids)

	if len(records) > 0 {
		content += registryHeader

		for _, rec := range records {
			content += renderRecord(rec)
		}
	}

	return &Dossier{
		InputType:    InputTypeURL,
		BaseURL:      base,
		AnalyzedURLs: analyzed,
		Identifiers:  ids,
		Records:      records,
		Content:      content,
	}
}

// assembleFromText builds the raw-text dossier: the literal input followed by
// a registry block covering every extracted identifier, each with a record or
// an explicit not-found marker. No hosting filter applies on this path; the
// submitted text is already curated by the caller.
func (a *Assembler) assembleFromText(ctx context.Context, input string) *Dossier {
	ids := siret.Extract(input)

	content := input

	var records []Record

	if len(ids) > 0 {
		content += fmt.Sprintf(registryRawHeader, len(ids))

		for _, id := range ids {
			company, err := a.registry.Lookup(ctx, id)
			if err != nil {
				log.Warn().Err(err).Str("id", id).Msg("registry lookup failed")

				company = nil
			}

			rec := Record{ID: id, Company: company}
			records = append(records, rec)
			content += renderRecord(rec)
		}
	}

	return &Dossier{
		InputType:   InputTypeText,
		Identifiers: ids,
		Records:     records,
		Content:     content,
	}
}

// crossReference looks up at most maxCandidates identifiers sequentially,
// drops records belonging to known hosting/platform providers without
// counting them, records an explicit miss for candidates the registry does
// not know, and stops once maxCompanies records have been kept. Lookups run
// sequentially so the cap can terminate them early.
func (a *Assembler) crossReference(ctx context.Context, ids []string) []Record {
	candidates := ids
	if len(candidates) > a.options.maxCandidates {
		candidates = candidates[:a.options.maxCandidates]
	}

	var records []Record

	kept := 0

	for _, id := range candidates {
		if kept >= a.options.maxCompanies {
			break
		}

		company, err := a.registry.Lookup(ctx, id)
		if err != nil {
			log.Warn().Err(err).Str("id", id).Msg("registry lookup failed")

			company = nil
		}

		if company == nil {
			records = append(records, Record{ID: id})
			continue
		}

		if isHostingProvider(company.Name) {
			log.Debug().Str("id", id).Str("name", company.Name).Msg("registry record filtered as hosting provider")
			continue
		}

		records = append(records, Record{ID: id, Company: company})
		kept++
	}

	return records
}

// isHostingProvider reports whether a record name matches the infrastructure
// provider denylist, case-insensitively.
func isHostingProvider(name string) bool {
	upper := strings.ToUpper(name)

	for _, provider := range hostingProviderDenylist {
		if strings.Contains(upper, provider) {
			return true
		}
	}

	return false
}

// isURL reports whether input should take the fetch path
func isURL(input string) bool {
	return strings.HasPrefix(input, "http://") || strings.HasPrefix(input, "https://")
}
