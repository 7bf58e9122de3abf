// Package media inspects uploaded image files: extension checks, pixel
// dimensions and camera EXIF data.
package media

import (
	"fmt"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"io"
	"path/filepath"
	"strings"

	_ "golang.org/x/image/webp"

	"github.com/mindseye-dev/portfolio/internal/domain"
	internal_errors "github.com/mindseye-dev/portfolio/internal/errors"
)

// Extension returns the lowercase extension of filename without the dot.
func Extension(filename string) string {
	return strings.ToLower(strings.TrimPrefix(filepath.Ext(filename), "."))
}

// IsAllowed reports whether filename carries an accepted image extension.
func IsAllowed(filename string) bool {
	return domain.AllowedExtensions[Extension(filename)]
}

// ValidateExtension returns the normalized extension or a validation error.
func ValidateExtension(filename string) (string, error) {
	ext := Extension(filename)
	if !domain.AllowedExtensions[ext] {
		return "", &internal_errors.ValidationError{
			Message: fmt.Sprintf("file type %q is not allowed, use png, jpg, jpeg, gif or webp", ext),
		}
	}
	return ext, nil
}

// Metadata is what could be read from an image file. Every field is optional.
type Metadata struct {
	Width     *int
	Height    *int
	Exif      domain.Exif
	Latitude  *float64
	Longitude *float64
}

// Probe reads dimensions and EXIF from r. Failures are not errors: a file
// that cannot be decoded simply yields empty metadata.
func Probe(r io.ReadSeeker) Metadata {
	var md Metadata
	if cfg, _, err := image.DecodeConfig(r); err == nil {
		w, h := cfg.Width, cfg.Height
		md.Width, md.Height = &w, &h
	}
	if _, err := r.Seek(0, io.SeekStart); err != nil {
		return md
	}
	readExif(r, &md)
	return md
}
