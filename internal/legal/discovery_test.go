package legal

import "testing"

func TestDiscover_FindsLegalLinks(t *testing.T) {
	html := `<html><body>
		<footer>
			<a href="/mentions-legales">Mentions Légales</a>
			<a href="/cgv">CGV</a>
			<a href="/about">À propos</a>
		</footer>
	</body></html>`

	d := NewDiscoverer()
	links := d.Discover(html, "https://example.com")

	expected := map[string]struct{}{
		"https://example.com/mentions-legales": {},
		"https://example.com/cgv":              {},
	}

	if len(links) != len(expected) {
		t.Fatalf("expected %d links, got %d: %v", len(expected), len(links), links)
	}

	for _, link := range links {
		if _, ok := expected[link]; !ok {
			t.Errorf("unexpected link %q", link)
		}
	}
}

func TestDiscover_ScoreOrdering(t *testing.T) {
	html := `<html><body>
		<a href="/terms">Terms</a>
		<a href="/legal/mentions-legales">Mentions Légales</a>
	</body></html>`

	d := NewDiscoverer()
	ranked := d.Rank(html, "https://example.com")

	if len(ranked) != 2 {
		t.Fatalf("expected 2 candidates, got %d", len(ranked))
	}

	if ranked[0].URL != "https://example.com/legal/mentions-legales" {
		t.Errorf("expected legal directory page ranked first, got %q", ranked[0].URL)
	}

	if ranked[0].Score <= ranked[1].Score {
		t.Errorf("expected descending scores, got %d then %d", ranked[0].Score, ranked[1].Score)
	}
}

func TestDiscover_DenylistBeatsKeywords(t *testing.T) {
	html := `<a href="/cart/mentions-legales">Mentions Légales</a>`

	d := NewDiscoverer()
	links := d.Discover(html, "https://example.com")

	if len(links) != 0 {
		t.Errorf("expected denylisted path rejected despite legal anchor text, got %v", links)
	}
}

func TestDiscover_CrossDomainRejected(t *testing.T) {
	html := `<a href="https://other.net/mentions-legales">Mentions Légales</a>
		<a href="https://legal.example.com/privacy">Privacy</a>`

	d := NewDiscoverer()
	links := d.Discover(html, "https://www.example.com")

	if len(links) != 1 {
		t.Fatalf("expected only the same-domain subdomain link, got %v", links)
	}

	if links[0] != "https://legal.example.com/privacy" {
		t.Errorf("expected subdomain link kept, got %q", links[0])
	}
}

func TestDiscover_BaseURLExcluded(t *testing.T) {
	html := `<a href="https://example.com/">Politique de confidentialité</a>
		<a href="https://example.com/confidentialite">Politique de confidentialité</a>`

	d := NewDiscoverer()
	links := d.Discover(html, "https://example.com")

	if len(links) != 1 {
		t.Fatalf("expected homepage self-link excluded, got %v", links)
	}

	if links[0] != "https://example.com/confidentialite" {
		t.Errorf("got %q", links[0])
	}
}

func TestDiscover_CapAndDedup(t *testing.T) {
	html := `
		<a href="/mentions-legales">Mentions Légales</a>
		<a href="/mentions-legales">Mentions Légales</a>
		<a href="/cgu">CGU</a>
		<a href="/cgv">CGV</a>
		<a href="/confidentialite">Politique de Confidentialité</a>
		<a href="/cookies">Politique Cookies</a>
		<a href="/rgpd">RGPD</a>
	`

	d := NewDiscoverer()
	links := d.Discover(html, "https://example.com")

	if len(links) != 5 {
		t.Fatalf("expected result capped at 5, got %d: %v", len(links), links)
	}

	seen := make(map[string]struct{})
	for _, link := range links {
		if _, dup := seen[link]; dup {
			t.Errorf("duplicate link %q in results", link)
		}

		seen[link] = struct{}{}
	}
}

func TestDiscover_MaxLinksOption(t *testing.T) {
	html := `
		<a href="/mentions-legales">Mentions Légales</a>
		<a href="/cgu">CGU</a>
		<a href="/cgv">CGV</a>
	`

	d := NewDiscoverer(WithMaxLinks(2))
	links := d.Discover(html, "https://example.com")

	if len(links) != 2 {
		t.Errorf("expected cap of 2, got %d: %v", len(links), links)
	}
}

func TestDiscover_InvalidBaseURL(t *testing.T) {
	d := NewDiscoverer()

	if links := d.Discover(`<a href="/legal">Legal</a>`, "://bad"); len(links) != 0 {
		t.Errorf("expected no links for unparseable base URL, got %v", links)
	}
}

func TestDiscover_RelativeResolution(t *testing.T) {
	html := `<a href="mentions-legales.html">Mentions Légales</a>`

	d := NewDiscoverer()
	links := d.Discover(html, "https://example.com/fr/")

	if len(links) != 1 || links[0] != "https://example.com/fr/mentions-legales.html" {
		t.Errorf("expected relative href resolved against base path, got %v", links)
	}
}

func TestScoreCandidate(t *testing.T) {
	tests := []struct {
		name     string
		href     string
		text     string
		expected int
	}{
		{"strong keyword in href", "/privacy", "", strongKeywordWeight},
		{"weak keyword in text", "/page", "voir nos cookies", weakKeywordWeight},
		{"legal path bonus stacks", "/legal/privacy", "", strongKeywordWeight*2 + legalPathBonus},
		{"keyword counted once across href and text", "/privacy", "privacy", strongKeywordWeight},
		{"no keywords", "/about", "qui sommes-nous", 0},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			score := scoreCandidate(tc.href, tc.text)
			if score != tc.expected {
				t.Errorf("scoreCandidate(%q, %q): expected %d, got %d", tc.href, tc.text, tc.expected, score)
			}
		})
	}
}
