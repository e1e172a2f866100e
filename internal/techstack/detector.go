// Package techstack fingerprints the technologies behind a website from its
// homepage response: wappalyzer fingerprinting over headers and body, plus a
// regex pass for CMS and framework signatures that survive when
// fingerprinting comes up empty.
package techstack

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"regexp"
	"sort"
	"strings"
	"time"

	wappalyzer "github.com/projectdiscovery/wappalyzergo"
)

const (
	// defaultHTTPTimeout bounds the fingerprinting fetch
	defaultHTTPTimeout = 10 * time.Second
	// httpRedirectLimit caps redirect hops during the fetch
	httpRedirectLimit = 5
	// httpReadLimit caps how many response bytes are read for fingerprinting
	httpReadLimit = 100 * 1024
	// defaultUserAgent identifies the probe to the target site
	defaultUserAgent = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0.0.0 Safari/537.36"
)

// Technology holds enriched information about a detected technology
type Technology struct {
	// Name is the technology name as identified
	Name string `json:"name"`
	// Categories lists the wappalyzer categories for this technology
	Categories []string `json:"categories,omitempty"`
	// Website is the official website URL for the technology
	Website string `json:"website,omitempty"`
	// Description is a brief description of the technology
	Description string `json:"description,omitempty"`
	// Source indicates how the technology was detected (wappalyzer or signature)
	Source string `json:"source,omitempty"`
}

// excludedTechnologyNames lists protocol features and web standards that are
// not vendor technologies and add noise to results.
var excludedTechnologyNames = map[string]struct{}{
	"HTTP/2":        {},
	"HTTP/3":        {},
	"QUIC":          {},
	"HSTS":          {},
	"Open Graph":    {},
	"Twitter Cards": {},
	"Schema.org":    {},
	"JSON-LD":       {},
	"Meta Tags":     {},
	"WebP":          {},
}

// cmsSignature pairs a platform name with markup patterns that identify it
type cmsSignature struct {
	name     string
	patterns []*regexp.Regexp
}

// cmsSignatures are ordered regex signatures for hosted platforms and
// frameworks; the first match wins within each entry. These recover
// detections on pages that defeat header-based fingerprinting.
var cmsSignatures = []cmsSignature{
	{name: "Shopify", patterns: compilePatterns(`cdn\.shopify\.com`, `myshopify\.com`, `var Shopify =`, `shopify-section`)},
	{name: "WordPress", patterns: compilePatterns(`/wp-content/`, `/wp-includes/`, `/wp-json/`, `wp-block-`)},
	{name: "Drupal", patterns: compilePatterns(`/sites/default/`, `Drupal\.settings`, `drupal-base-path`)},
	{name: "Magento", patterns: compilePatterns(`Mage\.Cookies`, `Magento_`)},
	{name: "PrestaShop", patterns: compilePatterns(`(?i)prestashop`)},
	{name: "Wix", patterns: compilePatterns(`wixstatic\.com`, `wix-code-sdk`)},
	{name: "Squarespace", patterns: compilePatterns(`(?i)squarespace`, `sqs-`)},
	{name: "Webflow", patterns: compilePatterns(`data-wf-page`, `data-wf-site`, `webflow\.css`)},
	{name: "Framer", patterns: compilePatterns(`framerusercontent\.com`, `data-framer-component-type`)},
	{name: "Next.js", patterns: compilePatterns(`/_next/static/`, `__NEXT_DATA__`)},
	{name: "Vue.js", patterns: compilePatterns(`__VUE__`, `\bv-(if|for|bind|model|show)=`)},
	{name: "Angular", patterns: compilePatterns(`ng-app=["']`, `ng-controller=["']`, `angular\.module\(`)},
	{name: "jQuery", patterns: compilePatterns(`(?i)/jquery[.\-]?[\d.]*(\.min)?\.js`)},
	{name: "Tailwind CSS", patterns: compilePatterns(`(?i)tailwindcss`, `@tailwind`)},
	{name: "Bootstrap", patterns: compilePatterns(`(?i)bootstrap(\.min)?\.css`)},
}

// Detector fingerprints the technologies serving a URL
type Detector struct {
	httpClient *http.Client
	userAgent  string
}

// Option configures the Detector
type Option func(*Detector)

// WithHTTPClient sets a custom HTTP client for fingerprinting fetches
func WithHTTPClient(client *http.Client) Option {
	return func(d *Detector) {
		if client != nil {
			d.httpClient = client
		}
	}
}

// New creates a technology detector
func New(opts ...Option) *Detector {
	d := &Detector{
		httpClient: &http.Client{
			Timeout: defaultHTTPTimeout,
			CheckRedirect: func(_ *http.Request, via []*http.Request) error {
				if len(via) >= httpRedirectLimit {
					return ErrTooManyRedirects
				}

				return nil
			},
		},
		userAgent: defaultUserAgent,
	}

	for _, opt := range opts {
		opt(d)
	}

	return d
}

// Detect fetches rawURL and returns the technologies identified from the
// response headers and a size-capped body.
func (d *Detector) Detect(ctx context.Context, rawURL string) ([]Technology, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrFetchFailed, err)
	}

	req.Header.Set("User-Agent", d.userAgent)

	resp, err := d.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrFetchFailed, err)
	}

	defer func() { _ = resp.Body.Close() }()

	body, err := io.ReadAll(io.LimitReader(resp.Body, httpReadLimit))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrFetchFailed, err)
	}

	return Fingerprint(resp.Header, string(body))
}

// Fingerprint identifies technologies from headers and body content using
// wappalyzer, supplemented by markup signature matching, with non-vendor
// standards filtered out.
func Fingerprint(headers http.Header, body string) ([]Technology, error) {
	client, err := wappalyzer.New()
	if err != nil {
		return nil, fmt.Errorf("initializing wappalyzer: %w", err)
	}

	fingerprints := client.FingerprintWithInfo(headers, []byte(body))

	seen := make(map[string]struct{}, len(fingerprints))
	technologies := make([]Technology, 0, len(fingerprints))

	for tech, info := range fingerprints {
		if _, excluded := excludedTechnologyNames[tech]; excluded {
			continue
		}

		seen[strings.ToLower(tech)] = struct{}{}
		technologies = append(technologies, Technology{
			Name:        tech,
			Categories:  info.Categories,
			Website:     info.Website,
			Description: info.Description,
			Source:      "wappalyzer",
		})
	}

	for _, sig := range cmsSignatures {
		if _, dup := seen[strings.ToLower(sig.name)]; dup {
			continue
		}

		if matchesAny(sig.patterns, body) {
			technologies = append(technologies, Technology{
				Name:   sig.name,
				Source: "signature",
			})
		}
	}

	sort.Slice(technologies, func(i, j int) bool {
		return technologies[i].Name < technologies[j].Name
	})

	return technologies, nil
}

// compilePatterns compiles multiple regex patterns, panicking on invalid patterns
func compilePatterns(patterns ...string) []*regexp.Regexp {
	compiled := make([]*regexp.Regexp, 0, len(patterns))

	for _, p := range patterns {
		compiled = append(compiled, regexp.MustCompile(p))
	}

	return compiled
}

// matchesAny returns true if the input matches any of the compiled patterns
func matchesAny(patterns []*regexp.Regexp, input string) bool {
	for _, p := range patterns {
		if p.MatchString(input) {
			return true
		}
	}

	return false
}
