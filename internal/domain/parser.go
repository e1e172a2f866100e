// Package domain parses submitted URLs into structured domain information
// reported alongside analysis results.
package domain

import (
	"fmt"
	"net/url"
	"strings"

	"golang.org/x/net/publicsuffix"
)

// Info contains parsed domain information
type Info struct {
	// Domain is the full hostname that was analyzed
	Domain string `json:"domain"`
	// Subdomain is the label prefix in front of the registrable domain, if any
	Subdomain string `json:"subdomain,omitempty"`
	// TLD is the public suffix (com, fr, co.uk)
	TLD string `json:"tld"`
	// SLD is the registered label directly under the public suffix
	SLD string `json:"sld"`
}

// Parse extracts domain information from a URL or bare hostname. Unlike the
// same-site heuristic used during link discovery, this consults the public
// suffix list, so multi-label suffixes (co.uk) are handled correctly.
func Parse(input string) (*Info, error) {
	input = strings.ToLower(strings.TrimSpace(input))

	if strings.Contains(input, "://") {
		u, err := url.Parse(input)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrInvalidURLFormat, err)
		}

		input = u.Hostname()
	} else if idx := strings.IndexAny(input, "/:"); idx != -1 {
		input = input[:idx]
	}

	if input == "" || !strings.Contains(input, ".") {
		return nil, ErrInvalidDomainFormat
	}

	etld1, err := publicsuffix.EffectiveTLDPlusOne(input)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidDomainFormat, err)
	}

	tld, _ := publicsuffix.PublicSuffix(input)
	sld := strings.TrimSuffix(etld1, "."+tld)

	subdomain := ""
	if etld1 != input {
		subdomain = strings.TrimSuffix(input, "."+etld1)
	}

	return &Info{
		Domain:    input,
		Subdomain: subdomain,
		TLD:       tld,
		SLD:       sld,
	}, nil
}
