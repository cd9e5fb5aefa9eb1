// Package chunker splits raw resume text into named sections using
// heading detection. Detection is strict-but-flexible: only standalone
// heading lines (or "Heading: content" inline forms) match, so phrases
// like "Certified Professional Scrum Master" inside narrative text never
// trigger a false split.
package chunker

import (
	"fmt"
	"regexp"
	"sort"
	"strings"

	"github.com/Git-Oceanblue/ob-resume-builder-test/internal/types"
)

// DefaultAliases maps each section key to the heading spellings that
// identify it. The lists are tuned against real resumes; callers can pass
// their own map to New to extend them.
var DefaultAliases = map[types.SectionKey][]string{
	types.SectionSummary: {
		"summary",
		"professional summary",
		"profile",
		"professional profile",
		"career summary",
		"summary of qualifications",
		"objective",
		"career objective",
	},
	types.SectionExperience: {
		"experience",
		"job experience",
		"work experience",
		"professional experience",
		"employment history",
		"job history",
		"work history",
	},
	types.SectionEducation: {
		"education",
		"academic background",
		"educational background",
		"qualifications",
	},
	types.SectionSkills: {
		"skills",
		"skill set",
		"technical skills",
		"technical skill set",
		"technical proficiency",
		"technical proficiencies",
		"key skills",
		"core competencies",
		"competencies",
		"skills summary",
	},
	types.SectionCertifications: {
		"certifications",
		"certification",
		"technical certifications",
		"technical certification",
		"licenses",
		"certificates",
		"professional certifications",
	},
}

const bulletChars = "•‣◦⁃∙·"

// linePrefix tolerates bold markers, bullets, and "1." / "2)" numbering
// before a heading.
var linePrefix = fmt.Sprintf(`\s*(?:\*{1,2}\s*)?(?:[-*%s]+\s*)?(?:\d+\s*[.)]\s*)?`, bulletChars)

// workDateRangePattern recognizes employment date ranges like
// "Aug 2019 - Mar 2022" or "Jun 2024 - Present", used to infer an
// experience section when no explicit heading exists.
var workDateRangePattern = regexp.MustCompile(
	`(?i)\b(?:jan(?:uary)?|feb(?:ruary)?|mar(?:ch)?|apr(?:il)?|may|jun(?:e)?|` +
		`jul(?:y)?|aug(?:ust)?|sep(?:t(?:ember)?)?|oct(?:ober)?|nov(?:ember)?|dec(?:ember)?)` +
		`\s+(?:19|20)\d{2}\s*[-\x{2013}\x{2014}]\s*` +
		`(?:present|current|till\s+date|` +
		`(?:jan(?:uary)?|feb(?:ruary)?|mar(?:ch)?|apr(?:il)?|may|jun(?:e)?|` +
		`jul(?:y)?|aug(?:ust)?|sep(?:t(?:ember)?)?|oct(?:ober)?|nov(?:ember)?|dec(?:ember)?)` +
		`\s+(?:19|20)\d{2})\b`)

type sectionPattern struct {
	key        types.SectionKey
	standalone *regexp.Regexp
	inline     *regexp.Regexp
}

// headingMatch records where a heading line sits in the document and where
// its content begins (end of line for standalone headings, the inline
// capture start for "Heading: content" lines).
type headingMatch struct {
	key          types.SectionKey
	lineStart    int
	lineEnd      int
	contentStart int
}

// Chunker splits resume text against a compiled set of heading patterns.
type Chunker struct {
	expected []types.SectionKey
	patterns []sectionPattern
}

// New builds a Chunker for the given expected sections. A nil aliases map
// uses DefaultAliases; a section with no alias entry matches its own key
// name.
func New(expected []types.SectionKey, aliases map[types.SectionKey][]string) *Chunker {
	if len(expected) == 0 {
		expected = types.DefaultSections
	}
	if aliases == nil {
		aliases = DefaultAliases
	}

	c := &Chunker{expected: expected}
	for _, key := range expected {
		if key == types.SectionHeader {
			// The header is everything before the first heading; it has
			// no heading of its own.
			continue
		}
		list, ok := aliases[key]
		if !ok {
			list = []string{string(key)}
		}
		escaped := make([]string, 0, len(list))
		for _, alias := range list {
			alias = strings.TrimSpace(alias)
			if alias == "" {
				continue
			}
			escaped = append(escaped, regexp.QuoteMeta(alias))
		}
		if len(escaped) == 0 {
			continue
		}
		aliasGroup := strings.Join(escaped, "|")
		c.patterns = append(c.patterns, sectionPattern{
			key: key,
			standalone: regexp.MustCompile(
				`(?i)^` + linePrefix + `(?:` + aliasGroup + `)\s*(?:[:|\-])?(?:\s*\*{1,2})?\s*$`),
			inline: regexp.MustCompile(
				`(?i)^` + linePrefix + `(?:` + aliasGroup + `)\s*[:|\-]\s*(\S.*?)(?:\s*\*{1,2})?\s*$`),
		})
	}
	return c
}

// Chunk splits raw resume text into the expected sections. When no heading
// is detected the whole trimmed text lands under the Uncategorized key.
func (c *Chunker) Chunk(rawText string) *types.SectionMap {
	result := types.NewSectionMap()

	matches := c.detectHeadings(rawText)
	if len(matches) == 0 {
		trimmed := strings.TrimSpace(rawText)
		if trimmed != "" {
			result.Set(types.SectionUncategorized, trimmed)
		}
		status := "ok"
		if len(trimmed) != len(strings.TrimSpace(rawText)) {
			status = "warn"
		}
		result.Integrity[types.SectionUncategorized] = types.IntegrityRecord{
			RawSliceChars:  len(rawText),
			ExtractedChars: len(trimmed),
			SegmentCount:   1,
			Status:         status,
		}
		return result
	}

	sort.Slice(matches, func(i, j int) bool { return matches[i].lineStart < matches[j].lineStart })
	matches = dedupeMatches(matches)

	if c.expects(types.SectionExperience) && !hasKey(matches, types.SectionExperience) {
		if inferred, ok := inferExperienceMatch(rawText, matches); ok {
			matches = append(matches, inferred)
			sort.Slice(matches, func(i, j int) bool { return matches[i].lineStart < matches[j].lineStart })
			matches = dedupeMatches(matches)
		}
	}

	if c.expects(types.SectionHeader) {
		header := strings.TrimSpace(rawText[:matches[0].lineStart])
		if header != "" {
			result.Set(types.SectionHeader, header)
		}
	}

	segments := make(map[types.SectionKey][]string)
	for i, m := range matches {
		end := len(rawText)
		if i+1 < len(matches) {
			end = matches[i+1].lineStart
		}
		start := m.contentStart
		if start > end {
			// Heading on the final line with no trailing newline.
			start = end
		}
		rawSlice := rawText[start:end]
		extracted := strings.TrimSpace(rawSlice)
		if extracted != "" {
			segments[m.key] = append(segments[m.key], extracted)
		}

		rec := result.Integrity[m.key]
		rec.RawSliceChars += len(rawSlice)
		rec.RawSliceTrimmedChars += len(strings.TrimSpace(rawSlice))
		rec.ExtractedChars += len(extracted)
		rec.SegmentCount++
		if rec.Status == "" {
			rec.Status = "ok"
		}
		if len(extracted) != len(strings.TrimSpace(rawSlice)) {
			rec.Status = "warn"
			result.Warnings = append(result.Warnings, fmt.Sprintf(
				"%s: extracted_chars(%d) != raw_slice_trimmed_chars(%d); possible boundary mismatch",
				m.key, len(extracted), len(strings.TrimSpace(rawSlice))))
		}
		result.Integrity[m.key] = rec
	}

	for _, key := range c.expected {
		if key == types.SectionHeader {
			continue
		}
		if parts := segments[key]; len(parts) > 0 {
			// A heading can recur across pages; the disjoint slices are
			// joined with a blank line in document order.
			result.Set(key, strings.Join(parts, "\n\n"))
		}
	}

	result.Reorder()
	return result
}

func (c *Chunker) expects(key types.SectionKey) bool {
	for _, k := range c.expected {
		if k == key {
			return true
		}
	}
	return false
}

// detectHeadings scans line by line, testing each line against every
// section's inline and standalone patterns. The inline form wins when both
// match, because it pins content to the same line.
func (c *Chunker) detectHeadings(rawText string) []headingMatch {
	var matches []headingMatch
	pos := 0
	for pos <= len(rawText) {
		lineEnd := strings.IndexByte(rawText[pos:], '\n')
		var line string
		var nextPos int
		if lineEnd == -1 {
			line = rawText[pos:]
			nextPos = len(rawText) + 1
		} else {
			line = rawText[pos : pos+lineEnd]
			nextPos = pos + lineEnd + 1
		}
		lineStart := pos
		trimmedLine := strings.TrimRight(line, "\r")

		for _, p := range c.patterns {
			if loc := p.inline.FindStringSubmatchIndex(trimmedLine); loc != nil {
				matches = append(matches, headingMatch{
					key:          p.key,
					lineStart:    lineStart,
					lineEnd:      lineStart + len(line) + 1,
					contentStart: lineStart + loc[2],
				})
				break
			}
			if p.standalone.MatchString(trimmedLine) {
				matches = append(matches, headingMatch{
					key:          p.key,
					lineStart:    lineStart,
					lineEnd:      lineStart + len(line) + 1,
					contentStart: lineStart + len(line) + 1,
				})
				break
			}
		}
		pos = nextPos
	}
	return matches
}

// dedupeMatches drops any match overlapping the previous kept match, and
// any repeat of the same section key within 5 characters of its previous
// occurrence (a heading matched twice by related alias patterns).
func dedupeMatches(matches []headingMatch) []headingMatch {
	if len(matches) == 0 {
		return matches
	}
	out := matches[:1]
	for _, m := range matches[1:] {
		prev := out[len(out)-1]
		if m.lineStart < prev.lineEnd {
			continue
		}
		if m.key == prev.key && m.lineStart-prev.lineStart < 5 {
			continue
		}
		out = append(out, m)
	}
	return out
}

func hasKey(matches []headingMatch, key types.SectionKey) bool {
	for _, m := range matches {
		if m.key == key {
			return true
		}
	}
	return false
}

// inferExperienceMatch synthesizes an experience heading when the resume
// has skills/education headings but its work history runs headingless.
// The text between the first detected heading and the nearest trailing
// education/certifications heading is scanned for a job date-range line;
// the first such line becomes the experience start.
func inferExperienceMatch(rawText string, matches []headingMatch) (headingMatch, bool) {
	if len(matches) == 0 {
		return headingMatch{}, false
	}

	anchored := false
	lowerBound := len(rawText)
	upperBound := len(rawText)
	for _, m := range matches {
		if m.key == types.SectionSkills || m.key == types.SectionEducation {
			anchored = true
		}
		if m.lineEnd < lowerBound {
			lowerBound = m.lineEnd
		}
		if (m.key == types.SectionEducation || m.key == types.SectionCertifications) && m.lineStart < upperBound {
			upperBound = m.lineStart
		}
	}
	if !anchored {
		return headingMatch{}, false
	}

	pos := 0
	for pos <= len(rawText) {
		lineEnd := strings.IndexByte(rawText[pos:], '\n')
		var line string
		var nextPos int
		if lineEnd == -1 {
			line = rawText[pos:]
			nextPos = len(rawText) + 1
		} else {
			line = rawText[pos : pos+lineEnd]
			nextPos = pos + lineEnd + 1
		}
		if pos >= lowerBound && pos < upperBound &&
			workDateRangePattern.MatchString(strings.TrimRight(line, "\r")) {
			return headingMatch{
				key:          types.SectionExperience,
				lineStart:    pos,
				lineEnd:      pos + len(line) + 1,
				contentStart: pos,
			}, true
		}
		pos = nextPos
	}
	return headingMatch{}, false
}
