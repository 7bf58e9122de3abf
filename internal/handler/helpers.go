package handler

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"

	"github.com/mindseye-dev/portfolio/internal/api"
	"github.com/mindseye-dev/portfolio/internal/domain"
	internal_errors "github.com/mindseye-dev/portfolio/internal/errors"
	"github.com/mindseye-dev/portfolio/internal/logger"
)

var validate = validator.New(validator.WithRequiredStructEnabled())

func writeJSON(w http.ResponseWriter, status int, v any) {
	body, err := json.Marshal(v)
	if err != nil {
		logger.Log.Error("failed to encode response", "error", err)
		http.Error(w, "Internal error", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	w.Write(append(body, '\n'))
}

// writeError reports err as {"error": ...} with the status it maps to.
// Internal errors are logged; the client still sees the cause.
func writeError(w http.ResponseWriter, r *http.Request, err error) {
	status := internal_errors.StatusCode(err)
	if status >= http.StatusInternalServerError {
		logger.Log.Error("request failed", "method", r.Method, "path", r.URL.Path, "error", err)
	}
	writeJSON(w, status, api.ErrorResponse{Error: err.Error()})
}

// decodeValidate decodes a JSON body and runs struct validation.
// An empty body is accepted when allowEmpty is set and leaves body untouched.
func decodeValidate(r *http.Request, body any, allowEmpty bool) error {
	if err := json.NewDecoder(r.Body).Decode(body); err != nil {
		if !(allowEmpty && errors.Is(err, io.EOF)) {
			logger.Log.Debug("invalid json body", "path", r.URL.Path, "error", err)
			return internal_errors.BadRequest("Body is invalid json")
		}
	}
	if err := validate.Struct(body); err != nil {
		logger.Log.Debug("body validation failed", "path", r.URL.Path, "error", err)
		return internal_errors.BadRequest(validationMessage(err))
	}
	return nil
}

func validationMessage(err error) string {
	var fieldErrs validator.ValidationErrors
	if errors.As(err, &fieldErrs) && len(fieldErrs) > 0 {
		fe := fieldErrs[0]
		return fmt.Sprintf("%s is invalid (%s)", fe.Field(), fe.Tag())
	}
	return "Required fields missing"
}

// parseIdParam parses a positive integer route parameter.
func parseIdParam(r *http.Request, name string) (int64, error) {
	raw := chi.URLParam(r, name)
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id <= 0 {
		return 0, internal_errors.BadRequest(fmt.Sprintf("invalid %s: must be a positive integer", name))
	}
	return id, nil
}

// queryBool reads a boolean query parameter, returning def when it is absent.
func queryBool(r *http.Request, name string, def bool) (bool, error) {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		return def, nil
	}
	v, err := strconv.ParseBool(raw)
	if err != nil {
		return false, internal_errors.BadRequest(fmt.Sprintf("invalid %s: must be a boolean", name))
	}
	return v, nil
}

func (h *Handler) imageView(img *domain.Image) domain.ImageView {
	v := img.View()
	if img.Description != nil {
		v.DescriptionHTML = h.renderer.Render(*img.Description)
	}
	return v
}

func (h *Handler) imageViews(images []*domain.Image) []domain.ImageView {
	views := make([]domain.ImageView, 0, len(images))
	for _, img := range images {
		views = append(views, h.imageView(img))
	}
	return views
}

func categoryViews(categories []*domain.Category) []domain.CategoryView {
	views := make([]domain.CategoryView, 0, len(categories))
	for _, c := range categories {
		views = append(views, c.View())
	}
	return views
}
