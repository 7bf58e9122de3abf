package text

import (
	"fmt"
	"html"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/google/uuid"
	"github.com/microcosm-cc/bluemonday"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// generated names: uuids and long hex or hyphenated hex stems
var machineStemRegex = regexp.MustCompile(`^[0-9a-fA-F-]{16,}$`)

var stripPolicy = bluemonday.StrictPolicy()

// Stem returns filename without its directory and extension.
func Stem(filename string) string {
	base := filepath.Base(filename)
	return strings.TrimSuffix(base, filepath.Ext(base))
}

// HumanizeStem turns "golden_hour-beach" into "Golden Hour Beach".
func HumanizeStem(stem string) string {
	s := strings.NewReplacer("_", " ", "-", " ").Replace(stem)
	s = strings.Join(strings.Fields(s), " ")
	// a Caser is stateful, so one per call
	return cases.Title(language.English).String(s)
}

// UploadTitle builds the title of a freshly uploaded image from the name the
// client sent and an optional prefix.
func UploadTitle(originalFilename, prefix string) string {
	stem := Stem(originalFilename)
	if prefix = strings.TrimSpace(prefix); prefix != "" {
		return fmt.Sprintf("%s - %s", prefix, stem)
	}
	return HumanizeStem(stem)
}

// OrphanTitle builds a title for a file found on disk without a row.
// Machine generated stems become "Image N".
func OrphanTitle(filename string, ordinal int) string {
	stem := Stem(filename)
	if isMachineStem(stem) {
		return fmt.Sprintf("Image %d", ordinal)
	}
	title := HumanizeStem(stem)
	if title == "" {
		return fmt.Sprintf("Image %d", ordinal)
	}
	return title
}

func isMachineStem(stem string) bool {
	if _, err := uuid.Parse(stem); err == nil {
		return true
	}
	return machineStemRegex.MatchString(stem) && strings.ContainsAny(stem, "0123456789")
}

// StripTags removes every HTML tag from s and trims the result. Entities
// are decoded so plain text round trips unchanged.
func StripTags(s string) string {
	return strings.TrimSpace(html.UnescapeString(stripPolicy.Sanitize(s)))
}
