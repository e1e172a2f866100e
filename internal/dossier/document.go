package dossier

import (
	"encoding/json"
	"fmt"
	"strings"
)

// Section literals of the assembled document. The downstream analysis prompt
// is written against this exact structure (manifest first, homepage content,
// one block per legal page, then the registry block with explicit not-found
// markers), so these strings must not drift.
const (
	manifestHeader      = "PAGES ANALYSÉES:"
	homepageURLLabel    = "URL PAGE D'ACCUEIL: %s"
	homepageBodyHeader  = "CONTENU ACCUEIL:"
	legalPageHeader     = "PAGE LÉGALE TROUVÉE (%s):"
	sectionSeparator    = "\n\n---\n"
	registryHeader      = "\n\nDONNÉES OFFICIELLES (API GOUV) - FILTRÉES (Max 3 pertinents) :"
	registryRawHeader   = "\n\nDONNÉES OFFICIELLES (API GOUV) POUR %d NUMÉRO(S) TROUVÉ(S):"
	registryEntryLabel  = "\n\n- NUMÉRO %s:\n%s"
	registryNotFound    = "\n\n- NUMÉRO %s: NON TROUVÉ DANS L'API GOUV"
)

// renderManifest lists every analyzed URL as the first document section
func renderManifest(urls []string) string {
	var b strings.Builder

	b.WriteString(manifestHeader)

	for _, u := range urls {
		b.WriteString("\n- ")
		b.WriteString(u)
	}

	return b.String()
}

// renderRecord formats a registry record entry, or the explicit not-found
// marker when the lookup yielded nothing. The marker is deliberate: it lets
// the consumer distinguish "we looked and found nothing" from "we never
// looked".
func renderRecord(rec Record) string {
	if rec.Company == nil {
		return fmt.Sprintf(registryNotFound, rec.ID)
	}

	body, err := json.MarshalIndent(rec.Company, "", "  ")
	if err != nil {
		return fmt.Sprintf(registryNotFound, rec.ID)
	}

	return fmt.Sprintf(registryEntryLabel, rec.ID, string(body))
}
