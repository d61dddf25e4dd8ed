package event

import (
	"regexp"
	"strings"
)

// Rule is a named title pattern. Rules are evaluated in order and the first
// match wins within a set.
type Rule struct {
	Name    string
	Pattern *regexp.Regexp
}

// Personal rules are a strict veto: if any of them matches, the title is
// never work, regardless of what the work rules would say.
var personalRules = []Rule{
	{"off-day", regexp.MustCompile(`(?i)\b(day\s*off|off\s*day|no\s*work|vacation|holiday|pto)\b`)},
	{"personal-keyword", regexp.MustCompile(`(?i)\b(personal|birthday|anniversary|family|church|volunteer)\b`)},
	{"medical", regexp.MustCompile(`(?i)\b(doctor|dentist|dr\.?\s|appt|appointment|therapy|massage|haircut|salon|gym|workout|yoga)\b`)},
	{"errand", regexp.MustCompile(`(?i)\b(grocery|groceries|errand|shopping|pharmacy|bank|dmv|oil\s*change|car\s*service)\b`)},
	{"social", regexp.MustCompile(`(?i)\b(lunch|dinner|brunch|coffee|date|party|wedding|concert|movie|meeting|interview|call)\b`)},
}

// Work rules match the title after parenthetical notes are stripped.
// Duration and housesit markers must be trailing, optionally followed by a
// visit-sequence marker (1st, 2nd, 3rd, Last, Start).
var workRules = []Rule{
	{"meet-greet", regexp.MustCompile(`(?i)\b(MG|M&G|Meet\s*&\s*Greet|Meet\s+and\s+Greet)\b`)},
	{"duration", regexp.MustCompile(`(?i)\b(15|20|30|45|60)\s*(min(ute)?s?)?\s*(1st|2nd|3rd|Last|Start)?\s*$`)},
	{"housesit", regexp.MustCompile(`(?i)\b(HS|Housesit)\s*(1st|2nd|3rd|Last|Start)?\s*$`)},
	{"nail-trim", regexp.MustCompile(`(?i)nail\s*trim`)},
}

var parenthetical = regexp.MustCompile(`\([^)]*\)`)

// stripParens removes parenthetical operator notes from a title. They carry
// no classification signal.
func stripParens(title string) string {
	return strings.TrimSpace(parenthetical.ReplaceAllString(title, " "))
}

// IsWorkTitle classifies a raw title string. Empty titles classify as
// non-work; the function never panics on malformed input.
func IsWorkTitle(title string) bool {
	trimmed := strings.TrimSpace(title)
	if trimmed == "" {
		return false
	}

	for _, r := range personalRules {
		if r.Pattern.MatchString(trimmed) {
			return false
		}
	}

	cleaned := stripParens(trimmed)
	for _, r := range workRules {
		if r.Pattern.MatchString(cleaned) {
			return true
		}
	}
	return false
}

// MatchedPersonalRule returns the name of the first personal rule matching
// the title, or "" when none does. Used by stats to break down why events
// were excluded.
func MatchedPersonalRule(title string) string {
	trimmed := strings.TrimSpace(title)
	if trimmed == "" {
		return ""
	}
	for _, r := range personalRules {
		if r.Pattern.MatchString(trimmed) {
			return r.Name
		}
	}
	return ""
}
