package db

import (
	"context"
	"fmt"

	"github.com/mindseye-dev/portfolio/internal/domain"
	internal_errors "github.com/mindseye-dev/portfolio/internal/errors"
)

func linkIfCategoryExists(ctx context.Context, q Querier, imageId domain.ImageId, categoryId domain.CategoryId) (bool, error) {
	result, err := q.ExecContext(ctx, `
	INSERT INTO image_categories(image_id, category_id)
	SELECT CAST($1 AS BIGINT), c.id FROM categories c WHERE c.id = $2
	ON CONFLICT DO NOTHING`, imageId, categoryId)
	if err != nil {
		return false, fmt.Errorf("failed to link image %d to category %d: %w", imageId, categoryId, err)
	}
	n, err := result.RowsAffected()
	return n > 0, err
}

func imageExists(ctx context.Context, q Querier, id domain.ImageId) (bool, error) {
	var n int
	if err := q.QueryRowContext(ctx, `SELECT COUNT(*) FROM images WHERE id = $1`, id).Scan(&n); err != nil {
		return false, err
	}
	return n > 0, nil
}

// SetImageCategories replaces the category set of an image. Category ids that
// do not exist are skipped and returned.
func (s *Storage) SetImageCategories(ctx context.Context, imageId domain.ImageId, categoryIds []domain.CategoryId) (*domain.AssignmentResult, error) {
	var res *domain.AssignmentResult
	err := s.withTx(ctx, func(q Querier) error {
		exists, err := imageExists(ctx, q, imageId)
		if err != nil {
			return err
		}
		if !exists {
			return internal_errors.NotFound("Image")
		}

		known, err := existingCategoryIds(ctx, q, categoryIds)
		if err != nil {
			return err
		}

		if _, err := q.ExecContext(ctx, `DELETE FROM image_categories WHERE image_id = $1`, imageId); err != nil {
			return err
		}

		res = &domain.AssignmentResult{ImageId: imageId, SkippedCategoryIds: []domain.CategoryId{}}
		seen := make(map[domain.CategoryId]bool, len(categoryIds))
		for _, categoryId := range categoryIds {
			if seen[categoryId] {
				continue
			}
			seen[categoryId] = true
			if !known[categoryId] {
				res.SkippedCategoryIds = append(res.SkippedCategoryIds, categoryId)
				continue
			}
			if _, err := q.ExecContext(ctx,
				`INSERT INTO image_categories(image_id, category_id) VALUES($1, $2)`, imageId, categoryId); err != nil {
				return err
			}
		}

		img, err := getImage(ctx, q, imageId)
		if err != nil {
			return err
		}
		res.Categories = img.Categories
		return nil
	})
	if err != nil {
		return nil, err
	}
	return res, nil
}

// AddCategoryToImages links the category to every listed image that exists.
// Images already linked are not counted as modified.
func (s *Storage) AddCategoryToImages(ctx context.Context, categoryId domain.CategoryId, imageIds []domain.ImageId) (*domain.BulkResult, error) {
	return s.bulkUpdate(ctx, categoryId, imageIds, func(q Querier, imageId domain.ImageId) (int64, error) {
		result, err := q.ExecContext(ctx, `
		INSERT INTO image_categories(image_id, category_id) VALUES($1, $2)
		ON CONFLICT DO NOTHING`, imageId, categoryId)
		if err != nil {
			return 0, err
		}
		return result.RowsAffected()
	})
}

// RemoveCategoryFromImages unlinks the category from every listed image.
func (s *Storage) RemoveCategoryFromImages(ctx context.Context, categoryId domain.CategoryId, imageIds []domain.ImageId) (*domain.BulkResult, error) {
	return s.bulkUpdate(ctx, categoryId, imageIds, func(q Querier, imageId domain.ImageId) (int64, error) {
		result, err := q.ExecContext(ctx,
			`DELETE FROM image_categories WHERE image_id = $1 AND category_id = $2`, imageId, categoryId)
		if err != nil {
			return 0, err
		}
		return result.RowsAffected()
	})
}

func (s *Storage) bulkUpdate(ctx context.Context, categoryId domain.CategoryId, imageIds []domain.ImageId,
	apply func(q Querier, imageId domain.ImageId) (int64, error)) (*domain.BulkResult, error) {
	var res *domain.BulkResult
	err := s.withTx(ctx, func(q Querier) error {
		if _, err := getCategory(ctx, q, categoryId); err != nil {
			return err
		}
		res = &domain.BulkResult{CategoryId: categoryId, Skipped: []domain.ImageId{}}
		seen := make(map[domain.ImageId]bool, len(imageIds))
		for _, imageId := range imageIds {
			if seen[imageId] {
				continue
			}
			seen[imageId] = true
			exists, err := imageExists(ctx, q, imageId)
			if err != nil {
				return err
			}
			if !exists {
				res.Skipped = append(res.Skipped, imageId)
				continue
			}
			n, err := apply(q, imageId)
			if err != nil {
				return err
			}
			if n > 0 {
				res.Modified++
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return res, nil
}
