package service

import (
	"context"
	"strings"

	"github.com/mindseye-dev/portfolio/internal/domain"
)

type ListingService interface {
	ListImages(ctx context.Context, filter domain.ImageFilter) ([]*domain.Image, error)
	ListCategories(ctx context.Context, activeOnly bool) ([]*domain.Category, error)
}

type Listing struct {
	storage ListingStorage
}

func NewListing(storage ListingStorage) ListingService {
	return &Listing{storage: storage}
}

// ListImages returns images ordered by sort order, newest first within the
// same sort order. An unknown category yields an empty list.
func (s *Listing) ListImages(ctx context.Context, filter domain.ImageFilter) ([]*domain.Image, error) {
	filter.Category = strings.TrimSpace(filter.Category)
	return s.storage.ListImages(ctx, filter)
}

func (s *Listing) ListCategories(ctx context.Context, activeOnly bool) ([]*domain.Category, error) {
	return s.storage.ListCategories(ctx, activeOnly)
}
