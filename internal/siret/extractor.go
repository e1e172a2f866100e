// Package siret extracts French business registration numbers (SIRET/SIREN)
// from free text. A SIRET is a 14-digit establishment-level number whose first
// 9 digits are the SIREN of the owning legal entity; extraction collapses the
// two granularities so the same entity is never reported twice.
package siret

import (
	"regexp"
	"strings"
)

const (
	// SiretLength is the number of digits in an establishment-level identifier
	SiretLength = 14
	// SirenLength is the number of digits in an entity-level identifier
	SirenLength = 9
)

// siretPattern matches 14-digit runs optionally grouped 3+3+3+5 by spaces or periods
var siretPattern = regexp.MustCompile(`\b(\d{3}[\s.]?\d{3}[\s.]?\d{3}[\s.]?\d{5})\b`)

// sirenPattern matches 9-digit runs optionally grouped 3+3+3 by spaces or periods
var sirenPattern = regexp.MustCompile(`\b(\d{3}[\s.]?\d{3}[\s.]?\d{3})\b`)

// separatorReplacer strips the grouping separators tolerated by the patterns
var separatorReplacer = strings.NewReplacer(" ", "", ".", "")

// Extract scans text for candidate registration numbers and returns them
// normalized (separators stripped) in discovery order, deduplicated. A SIREN
// that is the prefix of an already-collected SIRET is suppressed as a
// duplicate at entity granularity. Numbers are not checksum-validated, so
// unrelated digit runs (phone numbers, postal sequences) can surface as
// false positives; downstream registry lookups weed those out.
func Extract(text string) []string {
	seen := make(map[string]struct{})

	var ids []string

	for _, match := range siretPattern.FindAllString(text, -1) {
		normalized := separatorReplacer.Replace(match)
		if _, dup := seen[normalized]; dup {
			continue
		}

		seen[normalized] = struct{}{}
		ids = append(ids, normalized)
	}

	for _, match := range sirenPattern.FindAllString(text, -1) {
		normalized := separatorReplacer.Replace(match)
		if len(normalized) != SirenLength {
			continue
		}

		if _, dup := seen[normalized]; dup {
			continue
		}

		if prefixOfAny(normalized, ids) {
			continue
		}

		seen[normalized] = struct{}{}
		ids = append(ids, normalized)
	}

	return ids
}

// prefixOfAny reports whether id is a structural prefix of any collected SIRET
func prefixOfAny(id string, collected []string) bool {
	for _, c := range collected {
		if len(c) == SiretLength && strings.HasPrefix(c, id) {
			return true
		}
	}

	return false
}
