package text

import (
	"strings"
	"unicode"

	"github.com/google/uuid"
	"golang.org/x/text/unicode/norm"
)

// Slug turns a display name into a lowercase URL segment: "Street Photography"
// becomes "street-photography". Names with no ASCII letters or digits get a
// stable "category-<hash>" slug. Slug is idempotent.
func Slug(name string) string {
	var b strings.Builder
	dash := false
	for _, r := range norm.NFKD.String(name) {
		r = unicode.ToLower(r)
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9':
			if dash && b.Len() > 0 {
				b.WriteByte('-')
			}
			b.WriteRune(r)
			dash = false
		case unicode.Is(unicode.Mn, r):
			// combining marks left over from decomposing accented letters
		default:
			dash = true
		}
	}
	if b.Len() == 0 {
		if strings.TrimSpace(name) == "" {
			return ""
		}
		return "category-" + uuid.NewSHA1(uuid.NameSpaceOID, []byte(name)).String()[:8]
	}
	return b.String()
}
