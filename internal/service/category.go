package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/mindseye-dev/portfolio/internal/domain"
	internal_errors "github.com/mindseye-dev/portfolio/internal/errors"
	"github.com/mindseye-dev/portfolio/internal/logger"
	"github.com/mindseye-dev/portfolio/internal/text"
)

const maxCategoryNameLen = 100

type CategoryService interface {
	Create(ctx context.Context, name, description string) (*domain.Category, error)
	Get(ctx context.Context, id domain.CategoryId) (*domain.Category, error)
	SetActive(ctx context.Context, id domain.CategoryId, active bool) (*domain.Category, error)
	Delete(ctx context.Context, id domain.CategoryId) (*domain.Category, error)
	CreateDefaults(ctx context.Context) (int, error)
}

type Category struct {
	storage CategoryStorage
}

func NewCategory(storage CategoryStorage) CategoryService {
	return &Category{storage: storage}
}

// Create adds a category. Names are trimmed and otherwise stored as given and
// compared exactly. A taken name, or a name whose slug is taken, is a
// conflict and nothing is written.
func (s *Category) Create(ctx context.Context, name, description string) (*domain.Category, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, &internal_errors.ValidationError{Message: "category name is required"}
	}
	if strings.ContainsAny(name, "<>") {
		return nil, &internal_errors.ValidationError{Message: "category name must not contain markup"}
	}
	if utf8.RuneCountInString(name) > maxCategoryNameLen {
		return nil, &internal_errors.ValidationError{Message: fmt.Sprintf("category name is longer than %d characters", maxCategoryNameLen)}
	}

	data := domain.CategoryCreationData{Name: name, Slug: text.Slug(name)}
	if d := strings.TrimSpace(description); d != "" {
		data.Description = &d
	}

	c, err := s.storage.CreateCategory(ctx, data)
	if err != nil {
		if errors.Is(err, internal_errors.ErrDuplicate) {
			return nil, internal_errors.Conflict(fmt.Sprintf("category %q already exists", name))
		}
		return nil, err
	}
	logger.Log.Info("category created", "component", "category", "id", c.Id, "name", c.Name)
	return c, nil
}

func (s *Category) Get(ctx context.Context, id domain.CategoryId) (*domain.Category, error) {
	return s.storage.GetCategory(ctx, id)
}

func (s *Category) SetActive(ctx context.Context, id domain.CategoryId, active bool) (*domain.Category, error) {
	return s.storage.SetCategoryActive(ctx, id, active)
}

// Delete removes the category and its associations. Images stay.
func (s *Category) Delete(ctx context.Context, id domain.CategoryId) (*domain.Category, error) {
	c, err := s.storage.DeleteCategory(ctx, id)
	if err != nil {
		return nil, err
	}
	logger.Log.Info("category deleted", "component", "category", "id", c.Id, "name", c.Name, "unlinked_images", c.ImageCount)
	return c, nil
}

// CreateDefaults makes sure the standard categories exist and returns how
// many were missing.
func (s *Category) CreateDefaults(ctx context.Context) (int, error) {
	created, err := s.storage.CreateCategoriesIfAbsent(ctx, domain.DefaultCategories)
	if err != nil {
		return 0, err
	}
	if len(created) > 0 {
		logger.Log.Info("default categories created", "component", "category", "names", created)
	}
	return len(created), nil
}
