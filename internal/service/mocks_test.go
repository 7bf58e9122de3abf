package service

import (
	"context"
	"sync"

	"github.com/mindseye-dev/portfolio/internal/domain"
)

// --- function-field mocks for the storage interfaces ---

type MockImageStorage struct {
	createImageFunc func(ctx context.Context, data domain.ImageCreationData) (*domain.Image, error)
	getImageFunc    func(ctx context.Context, id domain.ImageId) (*domain.Image, error)
	updateImageFunc func(ctx context.Context, id domain.ImageId, upd domain.ImageUpdate) (*domain.Image, error)
	deleteImageFunc func(ctx context.Context, id domain.ImageId) (*domain.Image, error)
}

func (m *MockImageStorage) CreateImage(ctx context.Context, data domain.ImageCreationData) (*domain.Image, error) {
	if m.createImageFunc != nil {
		return m.createImageFunc(ctx, data)
	}
	return &domain.Image{Id: 1, Filename: data.Filename, Title: data.Title, Active: data.Active}, nil
}

func (m *MockImageStorage) GetImage(ctx context.Context, id domain.ImageId) (*domain.Image, error) {
	if m.getImageFunc != nil {
		return m.getImageFunc(ctx, id)
	}
	return &domain.Image{Id: id}, nil
}

func (m *MockImageStorage) UpdateImage(ctx context.Context, id domain.ImageId, upd domain.ImageUpdate) (*domain.Image, error) {
	if m.updateImageFunc != nil {
		return m.updateImageFunc(ctx, id, upd)
	}
	return &domain.Image{Id: id}, nil
}

func (m *MockImageStorage) DeleteImage(ctx context.Context, id domain.ImageId) (*domain.Image, error) {
	if m.deleteImageFunc != nil {
		return m.deleteImageFunc(ctx, id)
	}
	return &domain.Image{Id: id}, nil
}

type MockCategoryStorage struct {
	createCategoryFunc           func(ctx context.Context, data domain.CategoryCreationData) (*domain.Category, error)
	createCategoriesIfAbsentFunc func(ctx context.Context, batch []domain.CategoryCreationData) ([]domain.CategoryName, error)
	getCategoryFunc              func(ctx context.Context, id domain.CategoryId) (*domain.Category, error)
	setCategoryActiveFunc        func(ctx context.Context, id domain.CategoryId, active bool) (*domain.Category, error)
	deleteCategoryFunc           func(ctx context.Context, id domain.CategoryId) (*domain.Category, error)
}

func (m *MockCategoryStorage) CreateCategory(ctx context.Context, data domain.CategoryCreationData) (*domain.Category, error) {
	if m.createCategoryFunc != nil {
		return m.createCategoryFunc(ctx, data)
	}
	return &domain.Category{Id: 1, Name: data.Name, Description: data.Description, Active: true}, nil
}

func (m *MockCategoryStorage) CreateCategoriesIfAbsent(ctx context.Context, batch []domain.CategoryCreationData) ([]domain.CategoryName, error) {
	if m.createCategoriesIfAbsentFunc != nil {
		return m.createCategoriesIfAbsentFunc(ctx, batch)
	}
	return nil, nil
}

func (m *MockCategoryStorage) GetCategory(ctx context.Context, id domain.CategoryId) (*domain.Category, error) {
	if m.getCategoryFunc != nil {
		return m.getCategoryFunc(ctx, id)
	}
	return &domain.Category{Id: id}, nil
}

func (m *MockCategoryStorage) SetCategoryActive(ctx context.Context, id domain.CategoryId, active bool) (*domain.Category, error) {
	if m.setCategoryActiveFunc != nil {
		return m.setCategoryActiveFunc(ctx, id, active)
	}
	return &domain.Category{Id: id, Active: active}, nil
}

func (m *MockCategoryStorage) DeleteCategory(ctx context.Context, id domain.CategoryId) (*domain.Category, error) {
	if m.deleteCategoryFunc != nil {
		return m.deleteCategoryFunc(ctx, id)
	}
	return &domain.Category{Id: id}, nil
}

type MockAssignmentStorage struct {
	setImageCategoriesFunc       func(ctx context.Context, imageId domain.ImageId, categoryIds []domain.CategoryId) (*domain.AssignmentResult, error)
	addCategoryToImagesFunc      func(ctx context.Context, categoryId domain.CategoryId, imageIds []domain.ImageId) (*domain.BulkResult, error)
	removeCategoryFromImagesFunc func(ctx context.Context, categoryId domain.CategoryId, imageIds []domain.ImageId) (*domain.BulkResult, error)
}

func (m *MockAssignmentStorage) SetImageCategories(ctx context.Context, imageId domain.ImageId, categoryIds []domain.CategoryId) (*domain.AssignmentResult, error) {
	if m.setImageCategoriesFunc != nil {
		return m.setImageCategoriesFunc(ctx, imageId, categoryIds)
	}
	return &domain.AssignmentResult{ImageId: imageId}, nil
}

func (m *MockAssignmentStorage) AddCategoryToImages(ctx context.Context, categoryId domain.CategoryId, imageIds []domain.ImageId) (*domain.BulkResult, error) {
	if m.addCategoryToImagesFunc != nil {
		return m.addCategoryToImagesFunc(ctx, categoryId, imageIds)
	}
	return &domain.BulkResult{CategoryId: categoryId}, nil
}

func (m *MockAssignmentStorage) RemoveCategoryFromImages(ctx context.Context, categoryId domain.CategoryId, imageIds []domain.ImageId) (*domain.BulkResult, error) {
	if m.removeCategoryFromImagesFunc != nil {
		return m.removeCategoryFromImagesFunc(ctx, categoryId, imageIds)
	}
	return &domain.BulkResult{CategoryId: categoryId}, nil
}

type MockReconcileStorage struct {
	mu                       sync.Mutex
	getAllFilenamesFunc      func(ctx context.Context) ([]domain.Filename, error)
	countImagesFunc          func(ctx context.Context) (int, error)
	createImagesIfAbsentFunc func(ctx context.Context, batch []domain.ImageCreationData) ([]domain.Filename, []domain.Filename, error)
	createdBatches           [][]domain.ImageCreationData
}

func (m *MockReconcileStorage) GetAllFilenames(ctx context.Context) ([]domain.Filename, error) {
	if m.getAllFilenamesFunc != nil {
		return m.getAllFilenamesFunc(ctx)
	}
	return nil, nil
}

func (m *MockReconcileStorage) CountImages(ctx context.Context) (int, error) {
	if m.countImagesFunc != nil {
		return m.countImagesFunc(ctx)
	}
	return 0, nil
}

func (m *MockReconcileStorage) CreateImagesIfAbsent(ctx context.Context, batch []domain.ImageCreationData) ([]domain.Filename, []domain.Filename, error) {
	m.mu.Lock()
	m.createdBatches = append(m.createdBatches, batch)
	m.mu.Unlock()
	if m.createImagesIfAbsentFunc != nil {
		return m.createImagesIfAbsentFunc(ctx, batch)
	}
	added := make([]domain.Filename, 0, len(batch))
	for _, d := range batch {
		added = append(added, d.Filename)
	}
	return added, nil, nil
}

type MockListingStorage struct {
	listImagesFunc     func(ctx context.Context, filter domain.ImageFilter) ([]*domain.Image, error)
	listCategoriesFunc func(ctx context.Context, activeOnly bool) ([]*domain.Category, error)
}

func (m *MockListingStorage) ListImages(ctx context.Context, filter domain.ImageFilter) ([]*domain.Image, error) {
	if m.listImagesFunc != nil {
		return m.listImagesFunc(ctx, filter)
	}
	return []*domain.Image{}, nil
}

func (m *MockListingStorage) ListCategories(ctx context.Context, activeOnly bool) ([]*domain.Category, error) {
	if m.listCategoriesFunc != nil {
		return m.listCategoriesFunc(ctx, activeOnly)
	}
	return []*domain.Category{}, nil
}

type MockSettingsStorage struct {
	values                map[string]*string
	getImageFunc          func(ctx context.Context, id domain.ImageId) (*domain.Image, error)
	latestActiveImageFunc func(ctx context.Context) (*domain.Image, error)
}

func (m *MockSettingsStorage) GetSetting(ctx context.Context, key string) (*string, error) {
	return m.values[key], nil
}

func (m *MockSettingsStorage) SetSetting(ctx context.Context, key string, value *string) error {
	if m.values == nil {
		m.values = map[string]*string{}
	}
	m.values[key] = value
	return nil
}

func (m *MockSettingsStorage) GetImage(ctx context.Context, id domain.ImageId) (*domain.Image, error) {
	if m.getImageFunc != nil {
		return m.getImageFunc(ctx, id)
	}
	return &domain.Image{Id: id, Active: true}, nil
}

func (m *MockSettingsStorage) LatestActiveImage(ctx context.Context) (*domain.Image, error) {
	if m.latestActiveImageFunc != nil {
		return m.latestActiveImageFunc(ctx)
	}
	return nil, nil
}

type MockBackupLogStorage struct {
	mu      sync.Mutex
	entries []domain.BackupLogEntry
	err     error
}

func (m *MockBackupLogStorage) LogBackup(ctx context.Context, entry domain.BackupLogEntry) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return 0, m.err
	}
	m.entries = append(m.entries, entry)
	return int64(len(m.entries)), nil
}

func (m *MockBackupLogStorage) BackupHistory(ctx context.Context, limit int) ([]domain.BackupLogEntry, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := []domain.BackupLogEntry{}
	for i := len(m.entries) - 1; i >= 0 && len(out) < limit; i-- {
		out = append(out, m.entries[i])
	}
	return out, nil
}

type MockSnapshotter struct {
	snapshotFunc func(ctx context.Context, dest string) (bool, error)
}

func (m *MockSnapshotter) Snapshot(ctx context.Context, dest string) (bool, error) {
	if m.snapshotFunc != nil {
		return m.snapshotFunc(ctx, dest)
	}
	return false, nil
}
