// Package scrape retrieves public web pages and reduces them to analyzable
// text. Fetching is best-effort: a page that times out, blocks the client, or
// returns an error status is reported as unavailable and the pipeline
// continues with reduced evidence.
package scrape

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/projectdiscovery/httpx/common/httpx"
)

const (
	// defaultFetchTimeout bounds a single page fetch. Legal pages are static
	// and respond fast; 5s allows for slow shared hosting without stalling
	// the pipeline on dead targets.
	defaultFetchTimeout = 5 * time.Second
	// defaultMaxRedirects is the maximum redirect hops to follow
	defaultMaxRedirects = 5
	// defaultMaxResponseBodySize caps response bytes read (512KB)
	defaultMaxResponseBodySize = 512 * 1024
	// defaultUserAgent is a desktop browser identity. Many sites serve
	// unidentified scrapers an error page; a read-only compliance audit of
	// public pages must not silently lose the whole site to that.
	defaultUserAgent = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0.0.0 Safari/537.36"
)

// Page is the result of fetching a single URL
type Page struct {
	// URL is the final URL after any redirects
	URL string
	// HTML is the raw markup as served, kept for link discovery
	HTML string
	// Text is the cleaned plain-text content, whitespace-collapsed and trimmed
	Text string
}

// Fetcher retrieves a URL and returns its cleaned content
type Fetcher interface {
	// Fetch performs a GET on rawURL and returns the scraped page, or an
	// error when the page is unavailable (timeout, DNS, TLS, non-2xx).
	Fetch(ctx context.Context, rawURL string) (*Page, error)
}

// Options configures the HTTPX fetcher
type Options struct {
	timeout             time.Duration
	maxRedirects        int
	maxResponseBodySize int64
	userAgent           string
}

// Option is a functional option for configuring the fetcher
type Option func(*Options)

// WithTimeout sets the per-fetch timeout
func WithTimeout(d time.Duration) Option {
	return func(o *Options) {
		if d > 0 {
			o.timeout = d
		}
	}
}

// WithMaxRedirects sets the maximum redirect hops
func WithMaxRedirects(n int) Option {
	return func(o *Options) {
		if n > 0 {
			o.maxRedirects = n
		}
	}
}

// WithUserAgent overrides the User-Agent header sent with fetches
func WithUserAgent(ua string) Option {
	return func(o *Options) {
		if ua != "" {
			o.userAgent = ua
		}
	}
}

// HTTPXFetcher implements Fetcher using projectdiscovery/httpx
type HTTPXFetcher struct {
	options *Options
	client  *httpx.HTTPX
}

// NewHTTPXFetcher creates a page fetcher with the given options
func NewHTTPXFetcher(opts ...Option) (*HTTPXFetcher, error) {
	o := &Options{
		timeout:             defaultFetchTimeout,
		maxRedirects:        defaultMaxRedirects,
		maxResponseBodySize: defaultMaxResponseBodySize,
		userAgent:           defaultUserAgent,
	}

	for _, opt := range opts {
		opt(o)
	}

	client, err := httpx.New(&httpx.Options{
		Timeout:                   o.timeout,
		FollowRedirects:           true,
		MaxRedirects:              o.maxRedirects,
		MaxResponseBodySizeToRead: o.maxResponseBodySize,
		DefaultUserAgent:          o.userAgent,
	})
	if err != nil {
		return nil, fmt.Errorf("initializing httpx client: %w", err)
	}

	return &HTTPXFetcher{options: o, client: client}, nil
}

// Fetch performs a GET with browser-like headers, follows redirects, and
// returns raw markup alongside cleaned text and the post-redirect URL.
func (f *HTTPXFetcher) Fetch(ctx context.Context, rawURL string) (*Page, error) {
	req, err := f.client.NewRequestWithContext(ctx, http.MethodGet, rawURL)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrFetchFailed, err)
	}

	resp, err := f.client.Do(req, httpx.UnsafeOptions{})
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrFetchFailed, err)
	}

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		return nil, fmt.Errorf("%w: status %d", ErrUnexpectedStatus, resp.StatusCode)
	}

	finalURL := rawURL
	if resp.HasChain() {
		if last := resp.GetChainLastURL(); last != "" {
			finalURL = last
		}
	}

	html := string(resp.Data)

	return &Page{
		URL:  finalURL,
		HTML: html,
		Text: CleanText(html),
	}, nil
}
