package handler

import (
	"net/http"

	"github.com/mindseye-dev/portfolio/internal/api"
	"github.com/mindseye-dev/portfolio/internal/domain"
)

func (h *Handler) ListOrphans(w http.ResponseWriter, r *http.Request) {
	orphans, err := h.reconcile.DetectOrphans(r.Context())
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, api.OrphansResponse{Orphans: orphans, Count: len(orphans)})
}

// MaterializeOrphans creates rows for the named files. An empty or missing
// list means every orphan detected right now.
func (h *Handler) MaterializeOrphans(w http.ResponseWriter, r *http.Request) {
	var body api.MaterializeOrphansRequest
	if err := decodeValidate(r, &body, true); err != nil {
		writeError(w, r, err)
		return
	}

	filenames := body.Filenames
	if len(filenames) == 0 {
		detected, err := h.reconcile.DetectOrphans(r.Context())
		if err != nil {
			writeError(w, r, err)
			return
		}
		filenames = detected
	}

	res, err := h.reconcile.MaterializeOrphans(r.Context(), filenames)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, api.MaterializeResponse{
		Success:   true,
		Added:     res.Added,
		Filenames: orEmpty(res.Filenames),
		Skipped:   orEmpty(res.Skipped),
	})
}

func orEmpty(names []domain.Filename) []domain.Filename {
	if names == nil {
		return []domain.Filename{}
	}
	return names
}
