package normalize

import (
	"regexp"
	"sort"
	"strings"

	"github.com/Git-Oceanblue/ob-resume-builder-test/internal/types"
)

// degreeStandard maps regional degree spellings onto the US-style short
// forms the output record uses. Degrees absent from the map keep their
// original string.
var degreeStandard = map[string]string{
	"btech":   "BS",
	"b.tech":  "BS",
	"be":      "BS",
	"b.e":     "BS",
	"b.e.":    "BS",
	"bcom":    "BS",
	"b.com":   "BS",
	"ba":      "BS",
	"b.a":     "BS",
	"b.a.":    "BS",
	"bs":      "BS",
	"b.s":     "BS",
	"b.s.":    "BS",
	"bsc":     "BS",
	"b.sc":    "BS",
	"mtech":   "MS",
	"m.tech":  "MS",
	"me":      "MS",
	"m.e":     "MS",
	"m.e.":    "MS",
	"ms":      "MS",
	"m.s":     "MS",
	"m.s.":    "MS",
	"msc":     "MS",
	"m.sc":    "MS",
	"masters": "MS",
}

// degreeRank orders degrees from lowest to highest for the ascending sort.
var degreeRank = map[string]int{
	"AA":   1,
	"AS":   1,
	"BS":   2,
	"BA":   2,
	"MS":   3,
	"MA":   3,
	"MBA":  3,
	"MCom": 3,
	"JD":   4,
	"PhD":  5,
}

var yearInDate = regexp.MustCompile(`(19|20)\d{2}`)

// StandardizeDegree maps BTech/BE/BCom/BA spellings to BS and MTech/ME to
// MS. MBA, MA, MCom, PhD, JD, AA, and AS pass through unchanged.
func StandardizeDegree(degree string) string {
	key := strings.ToLower(strings.TrimSpace(degree))
	key = strings.TrimSuffix(key, ".")
	if std, ok := degreeStandard[key]; ok {
		return std
	}
	switch key {
	case "mba":
		return "MBA"
	case "ma", "m.a":
		return "MA"
	case "mcom", "m.com":
		return "MCom"
	case "phd", "ph.d", "ph.d.", "doctorate":
		return "PhD"
	case "jd", "j.d":
		return "JD"
	case "aa", "a.a":
		return "AA"
	case "as", "a.s":
		return "AS"
	}
	return strings.TrimSpace(degree)
}

// SortEducationAscending orders entries lowest degree first, ties broken
// by the year found in the date field. Unranked degrees sort last, after
// the recognized ones.
func SortEducationAscending(entries []types.EducationEntry) {
	sort.SliceStable(entries, func(i, j int) bool {
		ri, rj := educationRank(entries[i]), educationRank(entries[j])
		if ri != rj {
			return ri < rj
		}
		return educationYear(entries[i]) < educationYear(entries[j])
	})
}

func educationRank(e types.EducationEntry) int {
	if r, ok := degreeRank[StandardizeDegree(e.Degree)]; ok {
		return r
	}
	return 100
}

func educationYear(e types.EducationEntry) int {
	m := yearInDate.FindString(e.Date)
	if m == "" {
		return 0
	}
	year := 0
	for _, c := range m {
		year = year*10 + int(c-'0')
	}
	return year
}
