package service

import (
	"context"

	"github.com/mindseye-dev/portfolio/internal/domain"
	"github.com/mindseye-dev/portfolio/internal/logger"
)

type AssignmentService interface {
	SetCategories(ctx context.Context, imageId domain.ImageId, categoryIds []domain.CategoryId) (*domain.AssignmentResult, error)
	BulkAddCategory(ctx context.Context, imageIds []domain.ImageId, categoryId domain.CategoryId) (*domain.BulkResult, error)
	BulkRemoveCategory(ctx context.Context, imageIds []domain.ImageId, categoryId domain.CategoryId) (*domain.BulkResult, error)
}

type Assignment struct {
	storage AssignmentStorage
}

func NewAssignment(storage AssignmentStorage) AssignmentService {
	return &Assignment{storage: storage}
}

// SetCategories replaces the whole category set of one image. Unknown
// category ids are skipped and listed in the result.
func (s *Assignment) SetCategories(ctx context.Context, imageId domain.ImageId, categoryIds []domain.CategoryId) (*domain.AssignmentResult, error) {
	res, err := s.storage.SetImageCategories(ctx, imageId, categoryIds)
	if err != nil {
		return nil, err
	}
	if len(res.SkippedCategoryIds) > 0 {
		logger.Log.Warn("unknown categories skipped", "component", "assignment",
			"image_id", imageId, "skipped", res.SkippedCategoryIds)
	}
	return res, nil
}

func (s *Assignment) BulkAddCategory(ctx context.Context, imageIds []domain.ImageId, categoryId domain.CategoryId) (*domain.BulkResult, error) {
	res, err := s.storage.AddCategoryToImages(ctx, categoryId, imageIds)
	if err != nil {
		return nil, err
	}
	logBulk("bulk category add", res)
	return res, nil
}

func (s *Assignment) BulkRemoveCategory(ctx context.Context, imageIds []domain.ImageId, categoryId domain.CategoryId) (*domain.BulkResult, error) {
	res, err := s.storage.RemoveCategoryFromImages(ctx, categoryId, imageIds)
	if err != nil {
		return nil, err
	}
	logBulk("bulk category remove", res)
	return res, nil
}

func logBulk(msg string, res *domain.BulkResult) {
	logger.Log.Info(msg, "component", "assignment",
		"category_id", res.CategoryId, "modified", res.Modified, "skipped", res.Skipped)
}
