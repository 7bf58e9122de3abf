// Package text derives and cleans user facing strings: file names, titles
// and descriptions.
package text

import (
	"strings"
	"unicode"

	"golang.org/x/text/unicode/norm"
)

// SecureFilename reduces name to a flat ASCII file name that is safe to use
// on any filesystem. It returns "" when nothing usable is left.
func SecureFilename(name string) string {
	var ascii strings.Builder
	for _, r := range norm.NFKD.String(name) {
		switch {
		case r == '/' || r == '\\':
			ascii.WriteRune(' ')
		case r < unicode.MaxASCII:
			ascii.WriteRune(r)
		}
	}

	joined := strings.Join(strings.Fields(ascii.String()), "_")

	var out strings.Builder
	for _, r := range joined {
		if isSafeFilenameRune(r) {
			out.WriteRune(r)
		}
	}
	return strings.Trim(out.String(), "._")
}

func isSafeFilenameRune(r rune) bool {
	return r >= 'a' && r <= 'z' ||
		r >= 'A' && r <= 'Z' ||
		r >= '0' && r <= '9' ||
		r == '_' || r == '.' || r == '-'
}

// EnsureSuffix appends suffix unless name already ends with it.
func EnsureSuffix(name, suffix string) string {
	if strings.HasSuffix(name, suffix) {
		return name
	}
	return name + suffix
}
