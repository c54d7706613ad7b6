package validators

import "strings"

// SanitizeString trims surrounding whitespace and truncates to maxLen bytes.
// A maxLen of zero disables truncation.
func SanitizeString(input string, maxLen int) string {
	trimmed := strings.TrimSpace(input)
	if maxLen > 0 && len(trimmed) > maxLen {
		return trimmed[:maxLen]
	}
	return trimmed
}

// SanitizeQuery normalizes a Pokédex lookup term. The upstream dataset keys
// species, abilities, and moves by lowercase slug, so the term is lowercased
// after trimming.
func SanitizeQuery(input string, maxLen int) string {
	return strings.ToLower(SanitizeString(input, maxLen))
}
