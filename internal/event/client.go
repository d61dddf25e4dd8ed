package event

import (
	"regexp"
	"strings"
)

var (
	dashSplit      = regexp.MustCompile(`\s*[-–—]\s*`)
	trailingTokens = regexp.MustCompile(`(?i)\s+\b(15|20|30|45|60|MG|M&G|HS|Housesit)\b(\s+(1st|2nd|3rd|Last|Start))?\s*$`)
)

// ClientName extracts the client/pet name from a free-text title. The
// extraction is purely syntactic: parenthetical notes are dropped, the
// title is cut at the first dash, and trailing service tokens are stripped.
// Inconsistent title formatting for the same real-world client produces
// different names; there is no stable client ID to resolve against, so no
// fuzzy matching is attempted.
func ClientName(title string) string {
	cleaned := stripParens(title)
	if cleaned == "" {
		return ""
	}

	parts := dashSplit.Split(cleaned, 2)
	name := strings.TrimSpace(parts[0])

	for {
		next := strings.TrimSpace(trailingTokens.ReplaceAllString(name, ""))
		if next == name {
			break
		}
		name = next
	}
	return name
}
