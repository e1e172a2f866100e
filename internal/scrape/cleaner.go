package scrape

import (
	"regexp"
	"strings"
)

// Markup-stripping patterns, applied in order. Header and footer blocks are
// removed entirely: they repeat site-wide navigation on every page and
// drown the useful content. Legal-notice links that live in the footer are
// recovered separately by running link discovery against the raw markup
// before this stripping is applied.
var (
	scriptPattern = regexp.MustCompile(`(?is)<script\b[^>]*>(.*?)</script>`)
	stylePattern  = regexp.MustCompile(`(?is)<style\b[^>]*>(.*?)</style>`)
	headerPattern = regexp.MustCompile(`(?is)<header\b[^>]*>(.*?)</header>`)
	footerPattern = regexp.MustCompile(`(?is)<footer\b[^>]*>(.*?)</footer>`)
	tagPattern    = regexp.MustCompile(`<[^>]+>`)
	spacePattern  = regexp.MustCompile(`\s+`)
)

// CleanText reduces raw markup to plain text: script, style, header, and
// footer blocks are removed (non-greedy, across newlines), remaining tags
// stripped, and whitespace runs collapsed to single spaces. This is a
// heuristic text scanner, not an HTML parser; callers that need different
// semantics should work from Page.HTML instead.
func CleanText(html string) string {
	text := scriptPattern.ReplaceAllString(html, "")
	text = stylePattern.ReplaceAllString(text, "")
	text = headerPattern.ReplaceAllString(text, "")
	text = footerPattern.ReplaceAllString(text, "")
	text = tagPattern.ReplaceAllString(text, " ")
	text = spacePattern.ReplaceAllString(text, " ")

	return strings.TrimSpace(text)
}

// Truncate caps text at limit characters. Page text is never assumed
// complete; each dossier section carries a fixed character budget.
func Truncate(text string, limit int) string {
	if limit <= 0 || len(text) <= limit {
		return text
	}

	return text[:limit]
}
