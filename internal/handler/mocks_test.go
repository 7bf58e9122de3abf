package handler

import (
	"context"
	"io"
	"os"

	"github.com/mindseye-dev/portfolio/internal/domain"
)

type MockImageService struct {
	MockUpload func(ctx context.Context, req domain.UploadRequest, data io.Reader) (*domain.Image, error)
	MockGet    func(ctx context.Context, id domain.ImageId) (*domain.Image, error)
	MockUpdate func(ctx context.Context, id domain.ImageId, upd domain.ImageUpdate) (*domain.Image, error)
	MockDelete func(ctx context.Context, id domain.ImageId) (*domain.DeleteImageResult, error)
}

func (m *MockImageService) Upload(ctx context.Context, req domain.UploadRequest, data io.Reader) (*domain.Image, error) {
	if m.MockUpload != nil {
		return m.MockUpload(ctx, req, data)
	}
	return &domain.Image{Id: 1, Filename: "new.jpg"}, nil
}

func (m *MockImageService) Get(ctx context.Context, id domain.ImageId) (*domain.Image, error) {
	if m.MockGet != nil {
		return m.MockGet(ctx, id)
	}
	return &domain.Image{Id: id}, nil
}

func (m *MockImageService) Update(ctx context.Context, id domain.ImageId, upd domain.ImageUpdate) (*domain.Image, error) {
	if m.MockUpdate != nil {
		return m.MockUpdate(ctx, id, upd)
	}
	return &domain.Image{Id: id}, nil
}

func (m *MockImageService) Delete(ctx context.Context, id domain.ImageId) (*domain.DeleteImageResult, error) {
	if m.MockDelete != nil {
		return m.MockDelete(ctx, id)
	}
	return &domain.DeleteImageResult{Id: id, Title: "Untitled", FileRemoved: true}, nil
}

type MockCategoryService struct {
	MockCreate         func(ctx context.Context, name, description string) (*domain.Category, error)
	MockGet            func(ctx context.Context, id domain.CategoryId) (*domain.Category, error)
	MockSetActive      func(ctx context.Context, id domain.CategoryId, active bool) (*domain.Category, error)
	MockDelete         func(ctx context.Context, id domain.CategoryId) (*domain.Category, error)
	MockCreateDefaults func(ctx context.Context) (int, error)
}

func (m *MockCategoryService) Create(ctx context.Context, name, description string) (*domain.Category, error) {
	if m.MockCreate != nil {
		return m.MockCreate(ctx, name, description)
	}
	return &domain.Category{Id: 1, Name: name, Active: true}, nil
}

func (m *MockCategoryService) Get(ctx context.Context, id domain.CategoryId) (*domain.Category, error) {
	if m.MockGet != nil {
		return m.MockGet(ctx, id)
	}
	return &domain.Category{Id: id, Active: true}, nil
}

func (m *MockCategoryService) SetActive(ctx context.Context, id domain.CategoryId, active bool) (*domain.Category, error) {
	if m.MockSetActive != nil {
		return m.MockSetActive(ctx, id, active)
	}
	return &domain.Category{Id: id, Active: active}, nil
}

func (m *MockCategoryService) Delete(ctx context.Context, id domain.CategoryId) (*domain.Category, error) {
	if m.MockDelete != nil {
		return m.MockDelete(ctx, id)
	}
	return &domain.Category{Id: id}, nil
}

func (m *MockCategoryService) CreateDefaults(ctx context.Context) (int, error) {
	if m.MockCreateDefaults != nil {
		return m.MockCreateDefaults(ctx)
	}
	return 0, nil
}

type MockAssignmentService struct {
	MockSetCategories      func(ctx context.Context, imageId domain.ImageId, categoryIds []domain.CategoryId) (*domain.AssignmentResult, error)
	MockBulkAddCategory    func(ctx context.Context, imageIds []domain.ImageId, categoryId domain.CategoryId) (*domain.BulkResult, error)
	MockBulkRemoveCategory func(ctx context.Context, imageIds []domain.ImageId, categoryId domain.CategoryId) (*domain.BulkResult, error)
}

func (m *MockAssignmentService) SetCategories(ctx context.Context, imageId domain.ImageId, categoryIds []domain.CategoryId) (*domain.AssignmentResult, error) {
	if m.MockSetCategories != nil {
		return m.MockSetCategories(ctx, imageId, categoryIds)
	}
	return &domain.AssignmentResult{ImageId: imageId}, nil
}

func (m *MockAssignmentService) BulkAddCategory(ctx context.Context, imageIds []domain.ImageId, categoryId domain.CategoryId) (*domain.BulkResult, error) {
	if m.MockBulkAddCategory != nil {
		return m.MockBulkAddCategory(ctx, imageIds, categoryId)
	}
	return &domain.BulkResult{CategoryId: categoryId, Modified: len(imageIds)}, nil
}

func (m *MockAssignmentService) BulkRemoveCategory(ctx context.Context, imageIds []domain.ImageId, categoryId domain.CategoryId) (*domain.BulkResult, error) {
	if m.MockBulkRemoveCategory != nil {
		return m.MockBulkRemoveCategory(ctx, imageIds, categoryId)
	}
	return &domain.BulkResult{CategoryId: categoryId, Modified: len(imageIds)}, nil
}

type MockListingService struct {
	MockListImages     func(ctx context.Context, filter domain.ImageFilter) ([]*domain.Image, error)
	MockListCategories func(ctx context.Context, activeOnly bool) ([]*domain.Category, error)
}

func (m *MockListingService) ListImages(ctx context.Context, filter domain.ImageFilter) ([]*domain.Image, error) {
	if m.MockListImages != nil {
		return m.MockListImages(ctx, filter)
	}
	return []*domain.Image{}, nil
}

func (m *MockListingService) ListCategories(ctx context.Context, activeOnly bool) ([]*domain.Category, error) {
	if m.MockListCategories != nil {
		return m.MockListCategories(ctx, activeOnly)
	}
	return []*domain.Category{}, nil
}

type MockSettingsService struct {
	MockSetFeatured   func(ctx context.Context, id domain.ImageId) (*domain.Image, error)
	MockSetBackground func(ctx context.Context, id domain.ImageId) (*domain.Image, error)
	MockFeatured      func(ctx context.Context) (*domain.Image, error)
	MockBackground    func(ctx context.Context) (*domain.Image, error)
}

func (m *MockSettingsService) SetFeatured(ctx context.Context, id domain.ImageId) (*domain.Image, error) {
	if m.MockSetFeatured != nil {
		return m.MockSetFeatured(ctx, id)
	}
	return &domain.Image{Id: id}, nil
}

func (m *MockSettingsService) SetBackground(ctx context.Context, id domain.ImageId) (*domain.Image, error) {
	if m.MockSetBackground != nil {
		return m.MockSetBackground(ctx, id)
	}
	return &domain.Image{Id: id}, nil
}

func (m *MockSettingsService) Featured(ctx context.Context) (*domain.Image, error) {
	if m.MockFeatured != nil {
		return m.MockFeatured(ctx)
	}
	return nil, nil
}

func (m *MockSettingsService) Background(ctx context.Context) (*domain.Image, error) {
	if m.MockBackground != nil {
		return m.MockBackground(ctx)
	}
	return nil, nil
}

type MockReconcileService struct {
	MockDetectOrphans      func(ctx context.Context) ([]domain.Filename, error)
	MockMaterializeOrphans func(ctx context.Context, filenames []domain.Filename) (*domain.MaterializeResult, error)
}

func (m *MockReconcileService) DetectOrphans(ctx context.Context) ([]domain.Filename, error) {
	if m.MockDetectOrphans != nil {
		return m.MockDetectOrphans(ctx)
	}
	return []domain.Filename{}, nil
}

func (m *MockReconcileService) MaterializeOrphans(ctx context.Context, filenames []domain.Filename) (*domain.MaterializeResult, error) {
	if m.MockMaterializeOrphans != nil {
		return m.MockMaterializeOrphans(ctx, filenames)
	}
	return &domain.MaterializeResult{Added: len(filenames), Filenames: filenames}, nil
}

type MockBackupService struct {
	MockCreate  func(ctx context.Context, customName string) (*domain.BackupArtifact, error)
	MockOpen    func(ctx context.Context, key string) (*domain.BackupArtifact, *os.File, error)
	MockList    func(ctx context.Context) []*domain.BackupArtifact
	MockHistory func(ctx context.Context, limit int) ([]domain.BackupLogEntry, error)
}

func (m *MockBackupService) Create(ctx context.Context, customName string) (*domain.BackupArtifact, error) {
	if m.MockCreate != nil {
		return m.MockCreate(ctx, customName)
	}
	return &domain.BackupArtifact{Id: "b1", Filename: "backup.tar.gz"}, nil
}

func (m *MockBackupService) Open(ctx context.Context, key string) (*domain.BackupArtifact, *os.File, error) {
	if m.MockOpen != nil {
		return m.MockOpen(ctx, key)
	}
	return nil, nil, os.ErrNotExist
}

func (m *MockBackupService) List(ctx context.Context) []*domain.BackupArtifact {
	if m.MockList != nil {
		return m.MockList(ctx)
	}
	return nil
}

func (m *MockBackupService) History(ctx context.Context, limit int) ([]domain.BackupLogEntry, error) {
	if m.MockHistory != nil {
		return m.MockHistory(ctx, limit)
	}
	return nil, nil
}
