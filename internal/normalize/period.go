// Package normalize holds the pure canonicalization functions applied to
// extracted resume data: work periods, locations, person names, vendor
// mentions, certification field repair, and degree standardization. Every
// function is stateless and idempotent; callers assign the returned value
// back themselves.
package normalize

import (
	"log"
	"regexp"
	"strings"
)

// TillDate is the canonical marker for an ongoing position's end date.
const TillDate = "Till Date"

var monthAbbrev = []struct {
	full   *regexp.Regexp
	abbrev string
}{
	{regexp.MustCompile(`(?i)\bjanuary\b`), "Jan"},
	{regexp.MustCompile(`(?i)\bfebruary\b`), "Feb"},
	{regexp.MustCompile(`(?i)\bmarch\b`), "Mar"},
	{regexp.MustCompile(`(?i)\bapril\b`), "Apr"},
	{regexp.MustCompile(`(?i)\bjune\b`), "Jun"},
	{regexp.MustCompile(`(?i)\bjuly\b`), "Jul"},
	{regexp.MustCompile(`(?i)\baugust\b`), "Aug"},
	{regexp.MustCompile(`(?i)\bseptember\b`), "Sep"},
	{regexp.MustCompile(`(?i)\bsept\b\.?`), "Sep"},
	{regexp.MustCompile(`(?i)\boctober\b`), "Oct"},
	{regexp.MustCompile(`(?i)\bnovember\b`), "Nov"},
	{regexp.MustCompile(`(?i)\bdecember\b`), "Dec"},
}

// shortMonthPattern fixes the casing of already-abbreviated months
// ("JAN 2020" -> "Jan 2020").
var shortMonthPattern = regexp.MustCompile(`(?i)\b(jan|feb|mar|apr|may|jun|jul|aug|sep|oct|nov|dec)\b\.?`)

var (
	dashVariants       = strings.NewReplacer("–", "-", "—", "-", "‒", "-", "‐", "-")
	toSeparator        = regexp.MustCompile(`(?i)\s+to\s+`)
	ongoingMarker      = regexp.MustCompile(`(?i)\b(?:present|current|till\s*now|till\s*date|ongoing|now)\b\.?`)
	numericSlash       = regexp.MustCompile(`(\d)\s*/\s*(\d)`)
	hyphenSpacing      = regexp.MustCompile(`\s*-\s*`)
	bareYearPattern    = regexp.MustCompile(`^\d{4}$`)
	yearRangePattern   = regexp.MustCompile(`^\d{4} - (?:\d{4}|Till Date)$`)
	shortYearToken     = regexp.MustCompile(`\b\d{1,3}\b`)
	fullMonthResidual  = regexp.MustCompile(`(?i)\b(?:january|february|march|april|june|july|august|september|october|november|december)\b`)
	canonicalPeriodRx  = regexp.MustCompile(`^[A-Z][a-z]{2} \d{4} - (?:[A-Z][a-z]{2} \d{4}|Till Date)$`)
	trailingOpenEnded  = regexp.MustCompile(`^(.+\d{4}) - [^\d]+$`)
)

// NormalizeWorkPeriod canonicalizes a date range into
// "MMM YYYY - MMM YYYY" or "MMM YYYY - Till Date". Bare years and
// "YYYY - YYYY" ranges pass through unchanged since no month exists to
// upgrade them with.
func NormalizeWorkPeriod(s string) string {
	s = strings.TrimSpace(s)
	if s == "" {
		return ""
	}

	s = dashVariants.Replace(s)
	s = toSeparator.ReplaceAllString(s, " - ")
	s = ongoingMarker.ReplaceAllString(s, TillDate)
	s = numericSlash.ReplaceAllString(s, "$1 - $2")
	s = hyphenSpacing.ReplaceAllString(s, " - ")

	for _, m := range monthAbbrev {
		s = m.full.ReplaceAllString(s, m.abbrev)
	}
	s = shortMonthPattern.ReplaceAllStringFunc(s, func(tok string) string {
		tok = strings.TrimSuffix(tok, ".")
		return strings.ToUpper(tok[:1]) + strings.ToLower(tok[1:])
	})
	s = strings.TrimSpace(s)

	if bareYearPattern.MatchString(s) {
		return s
	}
	if yearRangePattern.MatchString(s) {
		log.Printf("work period %q has no month precision; keeping year range", s)
		return s
	}

	// "Jan 2020 - unknown garbage" becomes an open-ended range.
	if !canonicalPeriodRx.MatchString(s) {
		if m := trailingOpenEnded.FindStringSubmatch(s); m != nil {
			s = m[1] + " - " + TillDate
		}
	}

	if loc := shortYearToken.FindString(s); loc != "" {
		log.Printf("work period %q contains suspicious short year token %q", s, loc)
	}
	if fullMonthResidual.MatchString(s) {
		log.Printf("work period %q still carries an unabbreviated month", s)
	}
	return s
}
