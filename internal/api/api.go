// Package api holds the JSON request and response shapes of the HTTP layer.
package api

import (
	"github.com/mindseye-dev/portfolio/internal/domain"
)

// Request DTOs

type UpdateImageRequest struct {
	Title       *string `json:"title" validate:"omitempty,max=200"`
	Description *string `json:"description"`
	AltText     *string `json:"alt_text" validate:"omitempty,max=255"`
	Location    *string `json:"location" validate:"omitempty,max=200"`
	Active      *bool   `json:"is_active"`
	Featured    *bool   `json:"is_featured"`
	SortOrder   *int    `json:"sort_order"`
}

func (r UpdateImageRequest) ToDomain() domain.ImageUpdate {
	return domain.ImageUpdate{
		Title:       r.Title,
		Description: r.Description,
		AltText:     r.AltText,
		Location:    r.Location,
		Active:      r.Active,
		Featured:    r.Featured,
		SortOrder:   r.SortOrder,
	}
}

type SetCategoriesRequest struct {
	CategoryIds []domain.CategoryId `json:"category_ids"`
}

type BulkCategoryRequest struct {
	ImageIds   []domain.ImageId  `json:"image_ids" validate:"required,min=1"`
	CategoryId domain.CategoryId `json:"category_id" validate:"required"`
}

type CreateCategoryRequest struct {
	Name        string `json:"name" validate:"required"`
	Description string `json:"description"`
}

type ToggleCategoryRequest struct {
	Active *bool `json:"is_active"`
}

type MaterializeOrphansRequest struct {
	Filenames []domain.Filename `json:"filenames"`
}

type CreateBackupRequest struct {
	Filename string `json:"filename"`
}

type SetImageSettingRequest struct {
	ImageId domain.ImageId `json:"image_id" validate:"required"`
}

// Response DTOs

type ErrorResponse struct {
	Error string `json:"error"`
}

type ImageResponse struct {
	Success bool             `json:"success"`
	Image   domain.ImageView `json:"image"`
}

type ImageListResponse struct {
	Images []domain.ImageView `json:"images"`
	Count  int                `json:"count"`
}

type NullableImageResponse struct {
	Image *domain.ImageView `json:"image"`
}

type DeleteImageResponse struct {
	Success     bool   `json:"success"`
	Id          int64  `json:"id"`
	Title       string `json:"title"`
	Filename    string `json:"filename"`
	FileRemoved bool   `json:"file_removed"`
	FileError   string `json:"file_error,omitempty"`
}

type SetCategoriesResponse struct {
	Success            bool                  `json:"success"`
	ImageId            domain.ImageId        `json:"image_id"`
	Categories         []domain.CategoryView `json:"categories"`
	SkippedCategoryIds []domain.CategoryId   `json:"skipped_category_ids"`
}

type BulkResponse struct {
	Success       bool              `json:"success"`
	CategoryId    domain.CategoryId `json:"category_id"`
	UpdatedCount  int               `json:"updated_count"`
	SkippedImages []domain.ImageId  `json:"skipped_image_ids"`
}

type CategoryResponse struct {
	Success  bool                `json:"success"`
	Category domain.CategoryView `json:"category"`
}

type CategoryListResponse struct {
	Categories []domain.CategoryView `json:"categories"`
}

type CreateDefaultsResponse struct {
	Success bool `json:"success"`
	Created int  `json:"created"`
}

type OrphansResponse struct {
	Orphans []domain.Filename `json:"orphans"`
	Count   int               `json:"count"`
}

type MaterializeResponse struct {
	Success   bool              `json:"success"`
	Added     int               `json:"added_count"`
	Filenames []domain.Filename `json:"filenames"`
	Skipped   []domain.Filename `json:"skipped"`
}

type BackupResponse struct {
	Success     bool              `json:"success"`
	Backup      domain.BackupView `json:"backup"`
	DownloadURL string            `json:"download_url"`
}

type BackupLogView struct {
	Id           int64   `json:"id"`
	Filename     string  `json:"filename"`
	BackupType   string  `json:"backup_type"`
	FileSize     *int64  `json:"file_size"`
	Status       string  `json:"status"`
	ErrorMessage *string `json:"error_message"`
	CreatedAt    string  `json:"created_at"`
}

type BackupListResponse struct {
	Available []domain.BackupView `json:"available"`
	History   []BackupLogView     `json:"history"`
}

type HealthResponse struct {
	Status string `json:"status"`
}
