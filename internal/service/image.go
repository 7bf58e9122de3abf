package service

import (
	"context"
	"fmt"
	"io"
	"strings"
	"unicode/utf8"

	"github.com/google/uuid"

	"github.com/mindseye-dev/portfolio/internal/domain"
	internal_errors "github.com/mindseye-dev/portfolio/internal/errors"
	"github.com/mindseye-dev/portfolio/internal/logger"
	"github.com/mindseye-dev/portfolio/internal/media"
	"github.com/mindseye-dev/portfolio/internal/text"
)

const (
	maxTitleLen    = 200
	maxAltTextLen  = 255
	maxLocationLen = 200
)

// to mock service in tests
type ImageService interface {
	Upload(ctx context.Context, req domain.UploadRequest, data io.Reader) (*domain.Image, error)
	Get(ctx context.Context, id domain.ImageId) (*domain.Image, error)
	Update(ctx context.Context, id domain.ImageId, upd domain.ImageUpdate) (*domain.Image, error)
	Delete(ctx context.Context, id domain.ImageId) (*domain.DeleteImageResult, error)
}

type Image struct {
	storage ImageStorage
	media   MediaStorage
}

func NewImage(storage ImageStorage, mediaStorage MediaStorage) ImageService {
	return &Image{storage: storage, media: mediaStorage}
}

// Upload stores the file under a generated name and then inserts the row.
// A failed insert leaves the file on disk, where orphan detection finds it.
func (s *Image) Upload(ctx context.Context, req domain.UploadRequest, data io.Reader) (*domain.Image, error) {
	if strings.TrimSpace(req.OriginalFilename) == "" {
		return nil, &internal_errors.ValidationError{Message: "no file selected"}
	}
	ext, err := media.ValidateExtension(req.OriginalFilename)
	if err != nil {
		return nil, err
	}

	filename := uuid.NewString() + "." + ext
	size, err := s.media.Save(data, filename)
	if err != nil {
		return nil, fmt.Errorf("failed to save upload: %w", err)
	}

	originalFilename := text.SecureFilename(req.OriginalFilename)
	if originalFilename == "" {
		originalFilename = filename
	}
	title := text.StripTags(text.UploadTitle(req.OriginalFilename, req.TitlePrefix))
	creation := domain.ImageCreationData{
		Filename:         filename,
		OriginalFilename: originalFilename,
		Title:            truncate(title, maxTitleLen),
		FileSize:         &size,
		Active:           true,
	}
	if req.CategoryId != nil {
		creation.CategoryIds = []domain.CategoryId{*req.CategoryId}
	}

	if f, err := s.media.Open(filename); err == nil {
		md := media.Probe(f)
		f.Close()
		creation.Width, creation.Height = md.Width, md.Height
		creation.Exif = md.Exif
		creation.Latitude, creation.Longitude = md.Latitude, md.Longitude
	} else {
		logger.Log.Warn("failed to reopen upload for metadata", "component", "image", "filename", filename, "error", err)
	}

	img, err := s.storage.CreateImage(ctx, creation)
	if err != nil {
		logger.Log.Error("image row insert failed, file left as orphan",
			"component", "image", "filename", filename, "error", err)
		return nil, err
	}
	imagesUploadedTotal.Inc()
	logger.Log.Info("image uploaded", "component", "image", "id", img.Id, "filename", filename, "size", size)
	return img, nil
}

func (s *Image) Get(ctx context.Context, id domain.ImageId) (*domain.Image, error) {
	return s.storage.GetImage(ctx, id)
}

func (s *Image) Update(ctx context.Context, id domain.ImageId, upd domain.ImageUpdate) (*domain.Image, error) {
	if upd.IsEmpty() {
		return nil, &internal_errors.ValidationError{Message: "nothing to update"}
	}
	if upd.Title != nil {
		t := text.StripTags(*upd.Title)
		if utf8.RuneCountInString(t) > maxTitleLen {
			return nil, &internal_errors.ValidationError{Message: fmt.Sprintf("title is longer than %d characters", maxTitleLen)}
		}
		upd.Title = &t
	}
	if upd.Description != nil {
		d := strings.TrimSpace(*upd.Description)
		upd.Description = &d
	}
	if upd.AltText != nil {
		a := text.StripTags(*upd.AltText)
		if utf8.RuneCountInString(a) > maxAltTextLen {
			return nil, &internal_errors.ValidationError{Message: fmt.Sprintf("alt text is longer than %d characters", maxAltTextLen)}
		}
		upd.AltText = &a
	}
	if upd.Location != nil {
		l := text.StripTags(*upd.Location)
		if utf8.RuneCountInString(l) > maxLocationLen {
			return nil, &internal_errors.ValidationError{Message: fmt.Sprintf("location is longer than %d characters", maxLocationLen)}
		}
		upd.Location = &l
	}
	return s.storage.UpdateImage(ctx, id, upd)
}

// Delete removes the row first. The file is removed afterwards on a best
// effort basis and a failure is only reported in the result.
func (s *Image) Delete(ctx context.Context, id domain.ImageId) (*domain.DeleteImageResult, error) {
	img, err := s.storage.DeleteImage(ctx, id)
	if err != nil {
		return nil, err
	}

	res := &domain.DeleteImageResult{
		Id:       img.Id,
		Title:    img.TitleOrDefault(),
		Filename: img.Filename,
	}
	if err := s.media.Delete(img.Filename); err != nil {
		res.FileError = err.Error()
		logger.Log.Warn("image row deleted but file removal failed",
			"component", "image", "id", img.Id, "filename", img.Filename, "error", err)
	} else {
		res.FileRemoved = true
	}
	return res, nil
}

func truncate(s string, n int) *string {
	if s == "" {
		return nil
	}
	if utf8.RuneCountInString(s) > n {
		s = string([]rune(s)[:n])
	}
	return &s
}
