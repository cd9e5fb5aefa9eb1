package normalize

import (
	"regexp"
	"strings"
)

var (
	nameLabelPrefix = regexp.MustCompile(`(?i)^\s*(?:full\s+)?(?:candidate\s+)?name\s*[:\-]\s*`)
	// Parenthetical or bracketed metadata like "(Preferred Name: Sravani)"
	// or "[they/them]".
	bracketedMetadata = regexp.MustCompile(`(?i)[(\[{][^)\]}]*(?:preferred|pronoun|a\.?k\.?a|nick\s*name|maiden|goes\s+by|also\s+known\s+as|he/him|she/her|they/them)[^)\]}]*[)\]}]`)
	inlineMetadata    = regexp.MustCompile(`(?i)\s*[,\-|]?\s*(?:preferred\s+name|pronouns?|a\.?k\.?a\.?|nick\s*name|maiden\s+name|goes\s+by|also\s+known\s+as)\b.*$`)
	nameDisallowed    = regexp.MustCompile(`[^A-Za-z.\-'\s]`)
	nameWhitespace    = regexp.MustCompile(`\s+`)
)

// NormalizePersonName strips labels and metadata from an extracted person
// name and Title-Cases the remainder. An apostrophe counts as an internal
// word boundary, so "o'brien" becomes "O'Brien".
func NormalizePersonName(s string) string {
	s = nameLabelPrefix.ReplaceAllString(s, "")
	s = bracketedMetadata.ReplaceAllString(s, " ")
	s = inlineMetadata.ReplaceAllString(s, "")
	s = nameDisallowed.ReplaceAllString(s, "")
	s = strings.TrimSpace(nameWhitespace.ReplaceAllString(s, " "))
	if s == "" {
		return ""
	}

	words := strings.Split(s, " ")
	for i, w := range words {
		words[i] = titleCaseWord(w)
	}
	return strings.Join(words, " ")
}

func titleCaseWord(w string) string {
	parts := strings.Split(w, "'")
	for i, p := range parts {
		if p == "" {
			continue
		}
		parts[i] = strings.ToUpper(p[:1]) + strings.ToLower(p[1:])
	}
	return strings.Join(parts, "'")
}
