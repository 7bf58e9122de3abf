package handler

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"github.com/mindseye-dev/portfolio/internal/api"
	"github.com/mindseye-dev/portfolio/internal/domain"
	internal_errors "github.com/mindseye-dev/portfolio/internal/errors"
)

// multipartOverhead is added on top of the file size limit for form fields
// and part headers.
const multipartOverhead = 1 << 20

func (h *Handler) UploadImage(w http.ResponseWriter, r *http.Request) {
	maxSize := h.cfg.Public.Assets.MaxUploadSize
	r.Body = http.MaxBytesReader(w, r.Body, maxSize+multipartOverhead)
	if err := r.ParseMultipartForm(32 << 20); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			writeError(w, r, &internal_errors.ErrorWithStatusCode{
				Message:    fmt.Sprintf("File exceeds the limit of %d MB", maxSize>>20),
				StatusCode: http.StatusRequestEntityTooLarge,
			})
			return
		}
		writeError(w, r, internal_errors.BadRequest("Invalid multipart form"))
		return
	}
	defer r.MultipartForm.RemoveAll()

	file, header, err := r.FormFile("file")
	if err != nil {
		writeError(w, r, internal_errors.BadRequest("No file provided"))
		return
	}
	defer file.Close()
	if header.Filename == "" {
		writeError(w, r, internal_errors.BadRequest("No file selected"))
		return
	}

	req := domain.UploadRequest{
		OriginalFilename: header.Filename,
		TitlePrefix:      strings.TrimSpace(r.FormValue("title_prefix")),
	}
	if raw := strings.TrimSpace(r.FormValue("category_id")); raw != "" {
		id, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			writeError(w, r, internal_errors.BadRequest("invalid category_id: must be an integer"))
			return
		}
		req.CategoryId = &id
	}

	img, err := h.image.Upload(r.Context(), req, file)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, api.ImageResponse{Success: true, Image: h.imageView(img)})
}

func (h *Handler) GetImage(w http.ResponseWriter, r *http.Request) {
	id, err := parseIdParam(r, "id")
	if err != nil {
		writeError(w, r, err)
		return
	}
	img, err := h.image.Get(r.Context(), id)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, api.ImageResponse{Success: true, Image: h.imageView(img)})
}

func (h *Handler) UpdateImage(w http.ResponseWriter, r *http.Request) {
	id, err := parseIdParam(r, "id")
	if err != nil {
		writeError(w, r, err)
		return
	}
	var body api.UpdateImageRequest
	if err := decodeValidate(r, &body, false); err != nil {
		writeError(w, r, err)
		return
	}
	img, err := h.image.Update(r.Context(), id, body.ToDomain())
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, api.ImageResponse{Success: true, Image: h.imageView(img)})
}

func (h *Handler) DeleteImage(w http.ResponseWriter, r *http.Request) {
	id, err := parseIdParam(r, "id")
	if err != nil {
		writeError(w, r, err)
		return
	}
	res, err := h.image.Delete(r.Context(), id)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, api.DeleteImageResponse{
		Success:     true,
		Id:          res.Id,
		Title:       res.Title,
		Filename:    res.Filename,
		FileRemoved: res.FileRemoved,
		FileError:   res.FileError,
	})
}

func (h *Handler) SetImageCategories(w http.ResponseWriter, r *http.Request) {
	id, err := parseIdParam(r, "id")
	if err != nil {
		writeError(w, r, err)
		return
	}
	var body api.SetCategoriesRequest
	if err := decodeValidate(r, &body, false); err != nil {
		writeError(w, r, err)
		return
	}
	res, err := h.assignment.SetCategories(r.Context(), id, body.CategoryIds)
	if err != nil {
		writeError(w, r, err)
		return
	}
	skipped := res.SkippedCategoryIds
	if skipped == nil {
		skipped = []domain.CategoryId{}
	}
	writeJSON(w, http.StatusOK, api.SetCategoriesResponse{
		Success:            true,
		ImageId:            res.ImageId,
		Categories:         categoryViews(res.Categories),
		SkippedCategoryIds: skipped,
	})
}

func (h *Handler) BulkAddCategory(w http.ResponseWriter, r *http.Request) {
	h.bulkCategory(w, r, h.assignment.BulkAddCategory)
}

func (h *Handler) BulkRemoveCategory(w http.ResponseWriter, r *http.Request) {
	h.bulkCategory(w, r, h.assignment.BulkRemoveCategory)
}

func (h *Handler) bulkCategory(w http.ResponseWriter, r *http.Request, op func(context.Context, []domain.ImageId, domain.CategoryId) (*domain.BulkResult, error)) {
	var body api.BulkCategoryRequest
	if err := decodeValidate(r, &body, false); err != nil {
		writeError(w, r, err)
		return
	}
	res, err := op(r.Context(), body.ImageIds, body.CategoryId)
	if err != nil {
		writeError(w, r, err)
		return
	}
	skipped := res.Skipped
	if skipped == nil {
		skipped = []domain.ImageId{}
	}
	writeJSON(w, http.StatusOK, api.BulkResponse{
		Success:       true,
		CategoryId:    res.CategoryId,
		UpdatedCount:  res.Modified,
		SkippedImages: skipped,
	})
}
