package handler

import (
	"fmt"
	"net/http"
	"net/url"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/mindseye-dev/portfolio/internal/api"
	"github.com/mindseye-dev/portfolio/internal/domain"
)

const backupHistoryLimit = 20

func (h *Handler) CreateBackup(w http.ResponseWriter, r *http.Request) {
	var body api.CreateBackupRequest
	if err := decodeValidate(r, &body, true); err != nil {
		writeError(w, r, err)
		return
	}
	artifact, err := h.backup.Create(r.Context(), body.Filename)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, api.BackupResponse{
		Success:     true,
		Backup:      artifact.View(),
		DownloadURL: downloadURL(artifact),
	})
}

// ListBackups returns the archives downloadable from this process and the
// persisted history of attempts.
func (h *Handler) ListBackups(w http.ResponseWriter, r *http.Request) {
	limit := backupHistoryLimit
	if raw := r.URL.Query().Get("limit"); raw != "" {
		if n, err := strconv.Atoi(raw); err == nil {
			limit = n
		}
	}
	history, err := h.backup.History(r.Context(), limit)
	if err != nil {
		writeError(w, r, err)
		return
	}

	available := h.backup.List(r.Context())
	resp := api.BackupListResponse{
		Available: make([]domain.BackupView, 0, len(available)),
		History:   make([]api.BackupLogView, 0, len(history)),
	}
	for _, a := range available {
		resp.Available = append(resp.Available, a.View())
	}
	for _, e := range history {
		resp.History = append(resp.History, api.BackupLogView{
			Id:           e.Id,
			Filename:     e.Filename,
			BackupType:   e.BackupType,
			FileSize:     e.FileSize,
			Status:       e.Status,
			ErrorMessage: e.ErrorMessage,
			CreatedAt:    e.CreatedAt.UTC().Format("2006-01-02 15:04:05"),
		})
	}
	writeJSON(w, http.StatusOK, resp)
}

// DownloadBackup streams an archive by id or file name.
func (h *Handler) DownloadBackup(w http.ResponseWriter, r *http.Request) {
	artifact, file, err := h.backup.Open(r.Context(), chi.URLParam(r, "key"))
	if err != nil {
		writeError(w, r, err)
		return
	}
	defer file.Close()

	w.Header().Set("Content-Type", "application/gzip")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", artifact.Filename))
	http.ServeContent(w, r, artifact.Filename, artifact.CreatedAt, file)
}

func downloadURL(a *domain.BackupArtifact) string {
	return "/api/admin/backups/" + url.PathEscape(a.Id) + "/download"
}
