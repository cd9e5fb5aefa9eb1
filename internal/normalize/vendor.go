package normalize

import (
	"regexp"
	"strings"
)

// DefaultVendorNames are third-party staffing and consultancy brands that
// leak into responsibility text and must not appear in the output record.
var DefaultVendorNames = []string{
	"Infosys",
	"TCS",
	"Tata Consultancy Services",
	"Wipro",
	"Cognizant",
	"Accenture",
	"Capgemini",
	"HCL",
	"Tech Mahindra",
	"Mindtree",
	"Mphasis",
	"Virtusa",
	"Hexaware",
	"Zensar",
	"LTIMindtree",
}

var vendorRemovers = buildVendorRemovers(DefaultVendorNames)

type vendorRemover struct {
	leadIn    *regexp.Regexp
	postComma *regexp.Regexp
}

func buildVendorRemovers(vendors []string) []vendorRemover {
	removers := make([]vendorRemover, 0, len(vendors))
	for _, v := range vendors {
		quoted := regexp.QuoteMeta(v)
		removers = append(removers, vendorRemover{
			leadIn: regexp.MustCompile(
				`(?i)\s*\b(?:using|via|with|through|like|i\.e\.,?|e\.g\.,?|tools?|platforms?)\s+(?:the\s+)?` + quoted + `\b`),
			postComma: regexp.MustCompile(`(?i),\s*` + quoted + `\b`),
		})
	}
	return removers
}

var (
	orphanSpaces     = regexp.MustCompile(`\s{2,}`)
	spaceBeforeComma = regexp.MustCompile(`\s+([,.])`)
	doubledComma     = regexp.MustCompile(`,\s*,`)
	trailingComma    = regexp.MustCompile(`,\s*$`)
	emptyParens      = regexp.MustCompile(`\(\s*\)`)
)

// RemoveVendorNames deletes vendor brand mentions when they follow a
// lead-in word (using/via/with/...) or a comma, then tidies the punctuation
// left behind.
func RemoveVendorNames(s string) string {
	for _, r := range vendorRemovers {
		s = r.leadIn.ReplaceAllString(s, "")
		s = r.postComma.ReplaceAllString(s, "")
	}
	s = emptyParens.ReplaceAllString(s, "")
	s = doubledComma.ReplaceAllString(s, ",")
	s = spaceBeforeComma.ReplaceAllString(s, "$1")
	s = orphanSpaces.ReplaceAllString(s, " ")
	s = strings.TrimSpace(s)
	s = trailingComma.ReplaceAllString(s, ".")
	return s
}

// SanitizeResponsibilities maps RemoveVendorNames over a responsibility
// list, dropping entries that end up empty.
func SanitizeResponsibilities(items []string) []string {
	out := make([]string, 0, len(items))
	for _, item := range items {
		cleaned := RemoveVendorNames(item)
		if cleaned != "" && cleaned != "." {
			out = append(out, cleaned)
		}
	}
	return out
}
