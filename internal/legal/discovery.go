// Package legal discovers candidate legal pages (mentions légales, CGU, CGV,
// privacy policy) in a site's markup. Candidates are scored against a
// bilingual keyword lexicon and URL-pattern heuristics, restricted to the
// page's own registrable domain, and capped to bound fetch fan-out.
package legal

import (
	"net/url"
	"regexp"
	"sort"
	"strings"

	"github.com/samber/lo"
)

const (
	// defaultMaxLinks caps the ranked result list. Five pages cover the
	// typical mentions légales / CGU / CGV / confidentialité / cookies
	// spread; an exhaustive crawl is not the goal.
	defaultMaxLinks = 5

	// strongKeywordWeight scores unambiguous legal terms
	strongKeywordWeight = 10
	// weakKeywordWeight scores commerce-adjacent terms that also appear
	// legitimately in legal-notice context
	weakKeywordWeight = 5
	// legalPathBonus rewards hrefs under a dedicated legal directory,
	// a stronger signal than any keyword match alone
	legalPathBonus = 15
)

// anchorPattern matches anchor tags, capturing href and inner text even when
// the element spans multiple lines. Regex-based anchor extraction can misparse
// nested or malformed markup; that is an accepted limitation of this scanner.
var anchorPattern = regexp.MustCompile(`(?is)<a\s+[^>]*?href=["']([^"']+)["'][^>]*>(.*?)</a>`)

// innerTagPattern strips markup nested inside anchor text before matching
var innerTagPattern = regexp.MustCompile(`<[^>]+>`)

// pathDenylist rejects commerce, catalog, and account flows. These pages
// waste a fetch without yielding legal content and carry keywords ("vente",
// "sale") that would otherwise score; the denylist suppresses catalog pages
// while leaving sales-terms pages scoreable.
var pathDenylist = []string{
	"/products/",
	"/collections/",
	"/cart",
	"/account",
	"/login",
	"/search",
	"/checkout",
	"/category/",
	"/tag/",
	"/p/",
	"/product/",
}

// keywordWeight pairs a lexicon entry with its score contribution
type keywordWeight struct {
	word   string
	weight int
}

// keywordLexicon is the bilingual French/English scoring lexicon. Unambiguous
// legal terms weigh 10; general-purpose terms that also occur in commerce
// copy weigh 5 to avoid over-ranking shop pages.
var keywordLexicon = []keywordWeight{
	{"mention", strongKeywordWeight},
	{"légal", strongKeywordWeight},
	{"legal", strongKeywordWeight},
	{"notice", strongKeywordWeight},
	{"policy", strongKeywordWeight},
	{"confidentialité", strongKeywordWeight},
	{"privacy", strongKeywordWeight},
	{"cgu", strongKeywordWeight},
	{"cgv", strongKeywordWeight},
	{"protection", strongKeywordWeight},
	{"rgpd", strongKeywordWeight},
	{"gdpr", strongKeywordWeight},
	{"compliance", strongKeywordWeight},
	{"vente", weakKeywordWeight},
	{"sale", weakKeywordWeight},
	{"utilisation", weakKeywordWeight},
	{"condition", weakKeywordWeight},
	{"termes", weakKeywordWeight},
	{"terms", weakKeywordWeight},
	{"service", weakKeywordWeight},
	{"donnée", weakKeywordWeight},
	{"cookie", weakKeywordWeight},
}

// legalPathFragments trigger the flat path bonus when present in the href
var legalPathFragments = []string{"/legal", "/policy", "/policies"}

// ScoredLink is a discovered candidate URL and its relevance score
type ScoredLink struct {
	// URL is the absolute, same-domain candidate URL
	URL string
	// Score is the summed keyword weights plus structural bonuses
	Score int
}

// Discoverer extracts and ranks legal-page links from raw markup
type Discoverer struct {
	maxLinks int
}

// Option configures the Discoverer
type Option func(*Discoverer)

// WithMaxLinks overrides the result cap
func WithMaxLinks(n int) Option {
	return func(d *Discoverer) {
		if n > 0 {
			d.maxLinks = n
		}
	}
}

// NewDiscoverer creates a legal-link discoverer
func NewDiscoverer(opts ...Option) *Discoverer {
	d := &Discoverer{maxLinks: defaultMaxLinks}

	for _, opt := range opts {
		opt(d)
	}

	return d
}

// Discover parses anchor tags out of raw markup served from baseURL, scores
// each candidate, and returns up to the configured cap of distinct absolute
// URLs on the same registrable domain, ordered by descending score. Link
// discovery runs against the raw, unstripped markup so footer links survive.
func (d *Discoverer) Discover(html, baseURL string) []string {
	ranked := d.Rank(html, baseURL)

	return lo.Map(ranked, func(l ScoredLink, _ int) string {
		return l.URL
	})
}

// Rank is Discover with scores retained, used by callers that report
// per-candidate relevance.
func (d *Discoverer) Rank(html, baseURL string) []ScoredLink {
	base, err := url.Parse(baseURL)
	if err != nil || base.Hostname() == "" {
		return nil
	}

	baseDomain := registrableDomain(base.Hostname())
	seen := make(map[string]struct{})

	var candidates []ScoredLink

	for _, match := range anchorPattern.FindAllStringSubmatch(html, -1) {
		href := strings.TrimSpace(match[1])
		if href == "" {
			continue
		}

		hrefLower := strings.ToLower(href)
		if denied(hrefLower) {
			continue
		}

		text := strings.ToLower(innerTagPattern.ReplaceAllString(match[2], " "))

		score := scoreCandidate(hrefLower, text)
		if score == 0 {
			continue
		}

		resolved, err := base.Parse(href)
		if err != nil || resolved.Hostname() == "" {
			continue
		}

		absolute := resolved.String()

		if sameURL(absolute, baseURL) {
			continue
		}

		if registrableDomain(resolved.Hostname()) != baseDomain {
			continue
		}

		if _, dup := seen[absolute]; dup {
			continue
		}

		seen[absolute] = struct{}{}
		candidates = append(candidates, ScoredLink{URL: absolute, Score: score})
	}

	sort.SliceStable(candidates, func(i, j int) bool {
		return candidates[i].Score > candidates[j].Score
	})

	if len(candidates) > d.maxLinks {
		candidates = candidates[:d.maxLinks]
	}

	return candidates
}

// scoreCandidate sums lexicon weights for keywords present in the href or the
// anchor text, plus the legal-directory path bonus.
func scoreCandidate(hrefLower, textLower string) int {
	score := 0

	for _, k := range keywordLexicon {
		if strings.Contains(hrefLower, k.word) || strings.Contains(textLower, k.word) {
			score += k.weight
		}
	}

	for _, fragment := range legalPathFragments {
		if strings.Contains(hrefLower, fragment) {
			score += legalPathBonus
			break
		}
	}

	return score
}

// denied reports whether the href matches the commerce path denylist
func denied(hrefLower string) bool {
	for _, fragment := range pathDenylist {
		if strings.Contains(hrefLower, fragment) {
			return true
		}
	}

	return false
}

// sameURL reports whether two URLs identify the same page, tolerating a
// trailing slash on either side.
func sameURL(a, b string) bool {
	return a == b || a == b+"/" || b == a+"/"
}

// registrableDomain returns the last two DNS labels of a hostname. This is a
// deliberate simplification that is not public-suffix-list aware: example.co.uk
// collapses to co.uk. Good enough for the same-site check this feeds.
func registrableDomain(hostname string) string {
	parts := strings.Split(hostname, ".")
	if len(parts) < 2 {
		return hostname
	}

	return strings.Join(parts[len(parts)-2:], ".")
}
