package normalize

import (
	"regexp"
	"strings"
)

var usStateAbbrev = map[string]string{
	"alabama": "AL", "alaska": "AK", "arizona": "AZ", "arkansas": "AR",
	"california": "CA", "colorado": "CO", "connecticut": "CT", "delaware": "DE",
	"florida": "FL", "georgia": "GA", "hawaii": "HI", "idaho": "ID",
	"illinois": "IL", "indiana": "IN", "iowa": "IA", "kansas": "KS",
	"kentucky": "KY", "louisiana": "LA", "maine": "ME", "maryland": "MD",
	"massachusetts": "MA", "michigan": "MI", "minnesota": "MN", "mississippi": "MS",
	"missouri": "MO", "montana": "MT", "nebraska": "NE", "nevada": "NV",
	"new hampshire": "NH", "new jersey": "NJ", "new mexico": "NM", "new york": "NY",
	"north carolina": "NC", "north dakota": "ND", "ohio": "OH", "oklahoma": "OK",
	"oregon": "OR", "pennsylvania": "PA", "rhode island": "RI", "south carolina": "SC",
	"south dakota": "SD", "tennessee": "TN", "texas": "TX", "utah": "UT",
	"vermont": "VT", "virginia": "VA", "washington": "WA", "west virginia": "WV",
	"wisconsin": "WI", "wyoming": "WY", "district of columbia": "DC",
}

var validStateCodes = func() map[string]bool {
	set := make(map[string]bool, len(usStateAbbrev))
	for _, code := range usStateAbbrev {
		set[code] = true
	}
	return set
}()

var (
	indiaPattern      = regexp.MustCompile(`(?i)\bindia\b`)
	twoLetterToken    = regexp.MustCompile(`^[A-Za-z]{2}$`)
	separatorVariants = regexp.MustCompile(`\s*(?:\s-\s|\s\|\s)\s*`)
	commaSpacing      = regexp.MustCompile(`\s*,\s*`)
	multiSpace        = regexp.MustCompile(`\s{2,}`)
)

// NormalizeLocation canonicalizes a location string to "City, ST" for US
// locations or "City, Country" otherwise. India locations drop their
// state/province segment entirely.
func NormalizeLocation(s string) string {
	s = strings.TrimSpace(s)
	if s == "" {
		return ""
	}
	s = separatorVariants.ReplaceAllString(s, ", ")
	s = multiSpace.ReplaceAllString(s, " ")

	if indiaPattern.MatchString(s) {
		return normalizeIndiaLocation(s)
	}

	if idx := strings.Index(s, ","); idx >= 0 {
		city := strings.TrimSpace(s[:idx])
		tail := strings.TrimSpace(s[idx+1:])
		if abbr, ok := usStateAbbrev[strings.ToLower(tail)]; ok {
			return city + ", " + abbr
		}
		if twoLetterToken.MatchString(tail) && validStateCodes[strings.ToUpper(tail)] {
			return city + ", " + strings.ToUpper(tail)
		}
		return commaSpacing.ReplaceAllString(s, ", ")
	}

	// "Austin TX" written without the comma.
	if fields := strings.Fields(s); len(fields) >= 2 {
		last := fields[len(fields)-1]
		if twoLetterToken.MatchString(last) && validStateCodes[strings.ToUpper(last)] {
			return strings.Join(fields[:len(fields)-1], " ") + ", " + strings.ToUpper(last)
		}
	}

	// A bare state on its own is tagged with the country.
	if _, ok := usStateAbbrev[strings.ToLower(s)]; ok {
		return s + ", USA"
	}
	if twoLetterToken.MatchString(s) && validStateCodes[strings.ToUpper(s)] {
		return strings.ToUpper(s) + ", USA"
	}

	return commaSpacing.ReplaceAllString(s, ", ")
}

// normalizeIndiaLocation reduces any India-based location to "City, India":
// the state, district, and 2-letter region codes are dropped so a state
// never survives alongside the country.
func normalizeIndiaLocation(s string) string {
	parts := strings.Split(s, ",")
	var city string
	for _, part := range parts {
		part = strings.TrimSpace(part)
		if part == "" || strings.EqualFold(part, "india") {
			continue
		}
		city = part
		break
	}
	if city == "" {
		return "India"
	}

	// Strip a standalone region code like "Hyderabad TS".
	fields := strings.Fields(city)
	kept := fields[:0]
	for _, f := range fields {
		if len(fields) > 1 && twoLetterToken.MatchString(f) {
			continue
		}
		kept = append(kept, f)
	}
	city = strings.Join(kept, " ")
	if city == "" || strings.EqualFold(city, "india") {
		return "India"
	}
	return city + ", India"
}
