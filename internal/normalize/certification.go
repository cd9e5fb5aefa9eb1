package normalize

import (
	"regexp"
	"strings"

	"github.com/Git-Oceanblue/ob-resume-builder-test/internal/types"
)

// leakIndicator finds the first point where issuer/date/number metadata
// bleeds into a certification name.
var leakIndicator = regexp.MustCompile(`(?i)\b(?:issued|obtained|date|expires?|expiration|expiry|valid|number|no\.)\b|#`)

var certDateToken = `(?:(?:Jan|Feb|Mar|Apr|May|Jun|Jul|Aug|Sep|Oct|Nov|Dec)[a-z]*\.?\s+\d{1,2},?\s+\d{4}|(?:Jan|Feb|Mar|Apr|May|Jun|Jul|Aug|Sep|Oct|Nov|Dec)[a-z]*\.?\s+\d{4}|\d{1,2}[/-]\d{1,2}[/-]\d{2,4}|\d{1,2}[/-]\d{4}|\d{4})`

var (
	certIssuedBy   = regexp.MustCompile(`(?i)issued\s+by\s*[:\-]?\s*([^,;|#]+?)(?:\s*[,;|#]|\s+(?:on|date|issued|obtained|expires?|expiration|number|no\.)\b|$)`)
	certObtained   = regexp.MustCompile(`(?i)(?:issued|obtained|date(?:\s+obtained)?)\s*(?:on|:|-)?\s*(` + certDateToken + `)`)
	certExpiration = regexp.MustCompile(`(?i)(?:expires?|expiration|expiry|valid\s+(?:until|through|till))\s*(?:on|date|:|-)?\s*(` + certDateToken + `)`)
	certNumber     = regexp.MustCompile(`(?i)(?:certification\s+)?(?:number|no\.|#)\s*[:\-]?\s*([A-Za-z0-9][A-Za-z0-9\-]*)`)
)

// ExtractCertificationFields repairs a certification whose name carries
// leaked issuer/date/number text. The name is cut at the first leak
// indicator and the remainder is mined for the dedicated fields; fields
// already populated are left alone.
func ExtractCertificationFields(cert types.Certification) types.Certification {
	loc := leakIndicator.FindStringIndex(cert.Name)
	if loc == nil {
		return cert
	}

	remainder := cert.Name[loc[0]:]
	clean := strings.TrimSpace(cert.Name[:loc[0]])
	clean = strings.TrimRight(clean, " ,-|:;(")
	cert.Name = clean

	if cert.IssuedBy == "" {
		if m := certIssuedBy.FindStringSubmatch(remainder); m != nil {
			cert.IssuedBy = strings.TrimSpace(m[1])
		}
	}
	if cert.ExpirationDate == "" {
		if m := certExpiration.FindStringSubmatch(remainder); m != nil {
			cert.ExpirationDate = strings.TrimSpace(m[1])
		}
	}
	if cert.DateObtained == "" {
		// Mask the expiration clause first so its date is not mistaken
		// for the obtained date.
		masked := certExpiration.ReplaceAllString(remainder, "")
		if m := certObtained.FindStringSubmatch(masked); m != nil {
			cert.DateObtained = strings.TrimSpace(m[1])
		}
	}
	if cert.CertificationNumber == "" {
		if m := certNumber.FindStringSubmatch(remainder); m != nil {
			cert.CertificationNumber = strings.TrimSpace(m[1])
		}
	}
	return cert
}
