package service

import (
	"context"
	"net/http"
	"strconv"

	"github.com/mindseye-dev/portfolio/internal/domain"
	internal_errors "github.com/mindseye-dev/portfolio/internal/errors"
	"github.com/mindseye-dev/portfolio/internal/logger"
)

type SettingsService interface {
	SetFeatured(ctx context.Context, id domain.ImageId) (*domain.Image, error)
	SetBackground(ctx context.Context, id domain.ImageId) (*domain.Image, error)
	Featured(ctx context.Context) (*domain.Image, error)
	Background(ctx context.Context) (*domain.Image, error)
}

type Settings struct {
	storage SettingsStorage
}

func NewSettings(storage SettingsStorage) SettingsService {
	return &Settings{storage: storage}
}

func (s *Settings) SetFeatured(ctx context.Context, id domain.ImageId) (*domain.Image, error) {
	return s.setImage(ctx, domain.SettingFeaturedImageId, id)
}

func (s *Settings) SetBackground(ctx context.Context, id domain.ImageId) (*domain.Image, error) {
	return s.setImage(ctx, domain.SettingBackgroundImageId, id)
}

// Featured returns the chosen featured image, falling back to the newest
// active image. It returns nil when there are no active images.
func (s *Settings) Featured(ctx context.Context) (*domain.Image, error) {
	return s.imageFor(ctx, domain.SettingFeaturedImageId)
}

func (s *Settings) Background(ctx context.Context) (*domain.Image, error) {
	return s.imageFor(ctx, domain.SettingBackgroundImageId)
}

func (s *Settings) setImage(ctx context.Context, key string, id domain.ImageId) (*domain.Image, error) {
	img, err := s.storage.GetImage(ctx, id)
	if err != nil {
		return nil, err
	}
	value := strconv.FormatInt(id, 10)
	if err := s.storage.SetSetting(ctx, key, &value); err != nil {
		return nil, err
	}
	logger.Log.Info("site image selected", "component", "settings", "setting", key, "image_id", id)
	return img, nil
}

func (s *Settings) imageFor(ctx context.Context, key string) (*domain.Image, error) {
	value, err := s.storage.GetSetting(ctx, key)
	if err != nil {
		return nil, err
	}
	if value != nil {
		if id, err := strconv.ParseInt(*value, 10, 64); err == nil {
			img, err := s.storage.GetImage(ctx, id)
			switch {
			case err == nil && img.Active:
				return img, nil
			case err != nil && internal_errors.StatusCode(err) != http.StatusNotFound:
				return nil, err
			}
		}
	}
	return s.storage.LatestActiveImage(ctx)
}
