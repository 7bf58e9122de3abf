package media

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/rwcarlsen/goexif/exif"
	"github.com/rwcarlsen/goexif/tiff"

	"github.com/mindseye-dev/portfolio/internal/logger"
)

func readExif(r io.Reader, md *Metadata) {
	x, err := exif.Decode(r)
	if err != nil {
		logger.Log.Debug("no exif data", "error", err)
		return
	}

	md.Exif.CameraMake = stringTag(x, exif.Make)
	md.Exif.CameraModel = stringTag(x, exif.Model)
	md.Exif.Lens = stringTag(x, exif.LensModel)
	md.Exif.Aperture = ratTag(x, exif.FNumber, formatAperture)
	md.Exif.ShutterSpeed = ratTag(x, exif.ExposureTime, formatShutter)
	md.Exif.FocalLength = ratTag(x, exif.FocalLength, formatFocal)
	if tag, err := x.Get(exif.ISOSpeedRatings); err == nil {
		if v, err := tag.Int(0); err == nil {
			iso := strconv.Itoa(v)
			md.Exif.ISO = &iso
		}
	}
	if t, err := x.DateTime(); err == nil {
		t = t.UTC()
		md.Exif.DateTaken = &t
	}
	if lat, long, err := x.LatLong(); err == nil {
		md.Latitude, md.Longitude = &lat, &long
	}
}

func stringTag(x *exif.Exif, name exif.FieldName) *string {
	tag, err := x.Get(name)
	if err != nil || tag.Format() != tiff.StringVal {
		return nil
	}
	s, err := tag.StringVal()
	if err != nil {
		return nil
	}
	s = strings.TrimSpace(strings.TrimRight(s, "\x00"))
	if s == "" {
		return nil
	}
	return &s
}

func ratTag(x *exif.Exif, name exif.FieldName, format func(num, den int64) string) *string {
	tag, err := x.Get(name)
	if err != nil {
		return nil
	}
	num, den, err := tag.Rat2(0)
	if err != nil || den == 0 {
		return nil
	}
	s := format(num, den)
	return &s
}

func formatAperture(num, den int64) string {
	return "f/" + trimFloat(float64(num)/float64(den), 1)
}

func formatShutter(num, den int64) string {
	if num == 0 {
		return "0s"
	}
	if num < den {
		return fmt.Sprintf("1/%ds", (den+num/2)/num)
	}
	return trimFloat(float64(num)/float64(den), 1) + "s"
}

func formatFocal(num, den int64) string {
	return trimFloat(float64(num)/float64(den), 1) + "mm"
}

func trimFloat(v float64, prec int) string {
	s := strconv.FormatFloat(v, 'f', prec, 64)
	if strings.Contains(s, ".") {
		s = strings.TrimRight(strings.TrimRight(s, "0"), ".")
	}
	return s
}
