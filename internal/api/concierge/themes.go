package concierge

import (
	"regexp"
	"strings"
)

var themeSplitRe = regexp.MustCompile(`(?i)\s*(?:,|/|&|\band\b)\s*`)

// ExtractThemes maps free text to catalog theme labels. A theme is selected
// when its label or any of its keywords appears as a substring of the input;
// selection order follows catalog order, not input order. When nothing
// matches, the input is split on commas, slashes, ampersands and the word
// "and", and the fragments are returned as raw labels; if even that yields
// nothing, the raw input comes back as a single element. Whitespace-only
// input returns nil without fallback splitting. This never fails.
func ExtractThemes(input string) []string {
	trimmed := strings.TrimSpace(input)
	if trimmed == "" {
		return nil
	}

	lowered := strings.ToLower(trimmed)

	var selected []string
	for _, entry := range themeCatalog {
		if strings.Contains(lowered, strings.ToLower(entry.Label)) {
			selected = append(selected, entry.Label)
			continue
		}
		for _, kw := range entry.Keywords {
			if strings.Contains(lowered, kw) {
				selected = append(selected, entry.Label)
				break
			}
		}
	}
	if len(selected) > 0 {
		return selected
	}

	var fragments []string
	for _, part := range themeSplitRe.Split(trimmed, -1) {
		if part = strings.TrimSpace(part); part != "" {
			fragments = append(fragments, part)
		}
	}
	if len(fragments) > 0 {
		return fragments
	}

	return []string{trimmed}
}
