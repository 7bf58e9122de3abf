package handler

import (
	"net/http"

	"github.com/mindseye-dev/portfolio/internal/api"
)

func (h *Handler) CreateCategory(w http.ResponseWriter, r *http.Request) {
	var body api.CreateCategoryRequest
	if err := decodeValidate(r, &body, false); err != nil {
		writeError(w, r, err)
		return
	}
	c, err := h.category.Create(r.Context(), body.Name, body.Description)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, api.CategoryResponse{Success: true, Category: c.View()})
}

func (h *Handler) CreateDefaultCategories(w http.ResponseWriter, r *http.Request) {
	n, err := h.category.CreateDefaults(r.Context())
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, api.CreateDefaultsResponse{Success: true, Created: n})
}

// ToggleCategory sets is_active from the body, or flips it when the body
// does not name a value.
func (h *Handler) ToggleCategory(w http.ResponseWriter, r *http.Request) {
	id, err := parseIdParam(r, "id")
	if err != nil {
		writeError(w, r, err)
		return
	}
	var body api.ToggleCategoryRequest
	if err := decodeValidate(r, &body, true); err != nil {
		writeError(w, r, err)
		return
	}

	var active bool
	if body.Active != nil {
		active = *body.Active
	} else {
		current, err := h.category.Get(r.Context(), id)
		if err != nil {
			writeError(w, r, err)
			return
		}
		active = !current.Active
	}

	c, err := h.category.SetActive(r.Context(), id, active)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, api.CategoryResponse{Success: true, Category: c.View()})
}

func (h *Handler) DeleteCategory(w http.ResponseWriter, r *http.Request) {
	id, err := parseIdParam(r, "id")
	if err != nil {
		writeError(w, r, err)
		return
	}
	c, err := h.category.Delete(r.Context(), id)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, api.CategoryResponse{Success: true, Category: c.View()})
}
