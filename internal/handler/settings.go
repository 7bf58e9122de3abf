package handler

import (
	"context"
	"net/http"

	"github.com/mindseye-dev/portfolio/internal/api"
	"github.com/mindseye-dev/portfolio/internal/domain"
)

// Hero returns the background image, or null when there are no active images.
func (h *Handler) Hero(w http.ResponseWriter, r *http.Request) {
	h.writeSettingImage(w, r, h.settings.Background)
}

func (h *Handler) Featured(w http.ResponseWriter, r *http.Request) {
	h.writeSettingImage(w, r, h.settings.Featured)
}

func (h *Handler) SetFeatured(w http.ResponseWriter, r *http.Request) {
	h.setSettingImage(w, r, h.settings.SetFeatured)
}

func (h *Handler) SetBackground(w http.ResponseWriter, r *http.Request) {
	h.setSettingImage(w, r, h.settings.SetBackground)
}

func (h *Handler) writeSettingImage(w http.ResponseWriter, r *http.Request, get func(context.Context) (*domain.Image, error)) {
	img, err := get(r.Context())
	if err != nil {
		writeError(w, r, err)
		return
	}
	var resp api.NullableImageResponse
	if img != nil {
		v := h.imageView(img)
		resp.Image = &v
	}
	writeJSON(w, http.StatusOK, resp)
}

func (h *Handler) setSettingImage(w http.ResponseWriter, r *http.Request, set func(context.Context, domain.ImageId) (*domain.Image, error)) {
	var body api.SetImageSettingRequest
	if err := decodeValidate(r, &body, false); err != nil {
		writeError(w, r, err)
		return
	}
	img, err := set(r.Context(), body.ImageId)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, api.ImageResponse{Success: true, Image: h.imageView(img)})
}
