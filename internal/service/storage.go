package service

import (
	"context"
	"io"
	"io/fs"
	"os"

	"github.com/mindseye-dev/portfolio/internal/domain"
)

// Storage interfaces are declared here, next to their consumers, and are
// satisfied by internal/storage/db and internal/storage/fs.

type ImageStorage interface {
	CreateImage(ctx context.Context, data domain.ImageCreationData) (*domain.Image, error)
	GetImage(ctx context.Context, id domain.ImageId) (*domain.Image, error)
	UpdateImage(ctx context.Context, id domain.ImageId, upd domain.ImageUpdate) (*domain.Image, error)
	DeleteImage(ctx context.Context, id domain.ImageId) (*domain.Image, error)
}

type CategoryStorage interface {
	CreateCategory(ctx context.Context, data domain.CategoryCreationData) (*domain.Category, error)
	CreateCategoriesIfAbsent(ctx context.Context, batch []domain.CategoryCreationData) ([]domain.CategoryName, error)
	GetCategory(ctx context.Context, id domain.CategoryId) (*domain.Category, error)
	SetCategoryActive(ctx context.Context, id domain.CategoryId, active bool) (*domain.Category, error)
	DeleteCategory(ctx context.Context, id domain.CategoryId) (*domain.Category, error)
}

type AssignmentStorage interface {
	SetImageCategories(ctx context.Context, imageId domain.ImageId, categoryIds []domain.CategoryId) (*domain.AssignmentResult, error)
	AddCategoryToImages(ctx context.Context, categoryId domain.CategoryId, imageIds []domain.ImageId) (*domain.BulkResult, error)
	RemoveCategoryFromImages(ctx context.Context, categoryId domain.CategoryId, imageIds []domain.ImageId) (*domain.BulkResult, error)
}

type ReconcileStorage interface {
	GetAllFilenames(ctx context.Context) ([]domain.Filename, error)
	CountImages(ctx context.Context) (int, error)
	CreateImagesIfAbsent(ctx context.Context, batch []domain.ImageCreationData) (added, skipped []domain.Filename, err error)
}

type ListingStorage interface {
	ListImages(ctx context.Context, filter domain.ImageFilter) ([]*domain.Image, error)
	ListCategories(ctx context.Context, activeOnly bool) ([]*domain.Category, error)
}

type SettingsStorage interface {
	GetSetting(ctx context.Context, key string) (*string, error)
	SetSetting(ctx context.Context, key string, value *string) error
	GetImage(ctx context.Context, id domain.ImageId) (*domain.Image, error)
	LatestActiveImage(ctx context.Context) (*domain.Image, error)
}

type BackupLogStorage interface {
	LogBackup(ctx context.Context, entry domain.BackupLogEntry) (int64, error)
	BackupHistory(ctx context.Context, limit int) ([]domain.BackupLogEntry, error)
}

// DatabaseSnapshotter writes a consistent copy of the database to dest.
// ok is false when the database has no file form (a database server).
type DatabaseSnapshotter interface {
	Snapshot(ctx context.Context, dest string) (ok bool, err error)
}

// MediaStorage is the asset directory.
type MediaStorage interface {
	Save(fileData io.Reader, filename string) (int64, error)
	Open(filename string) (*os.File, error)
	Stat(filename string) (fs.FileInfo, error)
	Delete(filename string) error
	List() ([]string, error)
	Root() string
}
