package handler

import (
	"net/http"
	"strings"

	"github.com/mindseye-dev/portfolio/internal/api"
	"github.com/mindseye-dev/portfolio/internal/domain"
)

// ListPortfolio serves the public gallery. Inactive images are included only
// when include_inactive is set.
func (h *Handler) ListPortfolio(w http.ResponseWriter, r *http.Request) {
	includeInactive, err := queryBool(r, "include_inactive", false)
	if err != nil {
		writeError(w, r, err)
		return
	}
	filter := domain.ImageFilter{
		Category:   strings.TrimSpace(r.URL.Query().Get("category")),
		ActiveOnly: !includeInactive,
	}
	images, err := h.listing.ListImages(r.Context(), filter)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, api.ImageListResponse{Images: h.imageViews(images), Count: len(images)})
}

func (h *Handler) ListCategories(w http.ResponseWriter, r *http.Request) {
	activeOnly, err := queryBool(r, "active_only", true)
	if err != nil {
		writeError(w, r, err)
		return
	}
	categories, err := h.listing.ListCategories(r.Context(), activeOnly)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, api.CategoryListResponse{Categories: categoryViews(categories)})
}
