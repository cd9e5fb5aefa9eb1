package normalize

import (
	"regexp"
	"strings"
)

// bulletRun matches one leading bullet glyph run: repeated dashes, or any
// run of list-marker characters. Asterisks double as markdown bold, so a
// lone "*" counts too.
var bulletRun = regexp.MustCompile(`^(?:--+|[-*\x{2022}\x{2023}\x{25E6}\x{2043}\x{2219}\x{00B7}]+)\s*`)

// StripBulletPrefix removes stacked bullet glyphs and surrounding
// whitespace from the start of a free-text line. Applied repeatedly until
// stable, so "• - item" reduces to "item".
func StripBulletPrefix(s string) string {
	for {
		prev := s
		s = strings.TrimLeft(s, " \t")
		s = bulletRun.ReplaceAllString(s, "")
		if s == prev {
			break
		}
	}
	return strings.TrimSpace(s)
}

// StripBulletPrefixes maps StripBulletPrefix over a list, dropping entries
// that were nothing but bullet glyphs.
func StripBulletPrefixes(items []string) []string {
	out := make([]string, 0, len(items))
	for _, item := range items {
		if cleaned := StripBulletPrefix(item); cleaned != "" {
			out = append(out, cleaned)
		}
	}
	return out
}
