// Package fields recovers identity fields from unstructured recognized text.
// Every heuristic is independent and best-effort: no match yields an absent
// field, never an error.
package fields

import (
	"regexp"
	"strings"
)

// Fields is the provisional field set produced by either decode tier.
// Values are raw, pre-validation strings; empty means absent.
type Fields struct {
	ID   string
	DOB  string
	Name string
}

const nameSeq = `[A-Za-z]{2,}\s+[A-Za-z]{2,}(?:\s+[A-Za-z]{2,})?`

var (
	// id number printed as three 4-digit groups, e.g. "1234 5678 9012"
	reIDNumber = regexp.MustCompile(`\b\d{4}\s\d{4}\s\d{4}\b`)

	// DD/MM/YYYY, DD-MM-YYYY, DD MM YYYY or YYYY-MM-DD, in that tolerance order
	reDOB = regexp.MustCompile(`\b(?:\d{2}[/-]\d{2}[/-]\d{4}|\d{2}\s\d{2}\s\d{4}|\d{4}-\d{2}-\d{2})\b`)

	// a 2-3 word alphabetic sequence on the line after a marker token
	reAnchoredName = regexp.MustCompile(`(?i)(?:DOB|Male|Female).*\n.*?\b(` + nameSeq + `)\b`)

	// positional fallback: first 2-3 word alphabetic sequence anywhere.
	// Known precision tradeoff: any capitalized multi-word phrase (address
	// lines, headers) can match. The anchored form is strictly preferred.
	reAnyName = regexp.MustCompile(`\b(` + nameSeq + `)\b`)
)

// Extract applies the pattern heuristics to recognized text.
func Extract(text string) Fields {
	var f Fields

	if m := reIDNumber.FindString(text); m != "" {
		f.ID = strings.Join(strings.Fields(m), "")
	}

	f.DOB = reDOB.FindString(text)
	f.Name = extractName(text)

	return f
}

// extractName prefers a candidate anchored to a label line (DOB / sex
// marker); unanchored text too often contains non-name multi-word strings.
func extractName(text string) string {
	if m := reAnchoredName.FindStringSubmatch(text); m != nil {
		return strings.TrimSpace(m[1])
	}
	if m := reAnyName.FindStringSubmatch(text); m != nil {
		return strings.TrimSpace(m[1])
	}
	return ""
}
