package router

import (
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/mindseye-dev/portfolio/internal/domain"
	"github.com/mindseye-dev/portfolio/internal/handler"
	mw "github.com/mindseye-dev/portfolio/internal/middleware"
	"github.com/mindseye-dev/portfolio/internal/middleware/metrics"
	rl "github.com/mindseye-dev/portfolio/internal/middleware/ratelimiter"
)

// Backend CSP: JSON API plus image files, nothing executable.
const csp = "default-src 'none'; img-src 'self'; frame-ancestors 'none'"

// New creates the chi router with all the routes.
// assetsDir is served read-only under /static/assets/.
func New(h *handler.Handler, allowedOrigins []string, assetsDir string) http.Handler {
	r := chi.NewRouter()

	r.Use(chimw.RequestID)
	r.Use(chimw.RealIP)
	r.Use(mw.RequestLogger)
	r.Use(chimw.Recoverer)
	r.Use(metrics.Middleware)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: allowedOrigins,
		AllowedMethods: []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders: []string{"Content-Type", "Authorization"},
		MaxAge:         300,
	}))
	r.Use(mw.SecurityHeaders(mw.HeaderPolicy{ContentSecurity: csp, PublicPrefix: domain.AssetURLPrefix}))

	r.Get("/health", h.Health)
	r.Get("/ready", h.Ready)
	r.Handle("/metrics", promhttp.Handler())

	r.Handle(domain.AssetURLPrefix+"*", assets(assetsDir))

	r.Route("/api", func(r chi.Router) {
		r.Get("/portfolio", h.ListPortfolio)
		r.Get("/categories", h.ListCategories)
		r.Get("/hero", h.Hero)
		r.Get("/featured", h.Featured)

		r.Route("/admin", func(r chi.Router) {
			r.With(mw.RateLimit(rl.New(1, 20, time.Hour), mw.GetIP)).Post("/upload", h.UploadImage) // bursts of 20, 1 per second by IP

			r.Route("/images", func(r chi.Router) {
				r.Post("/bulk/add-category", h.BulkAddCategory)
				r.Post("/bulk/remove-category", h.BulkRemoveCategory)
				r.Get("/{id}", h.GetImage)
				r.Patch("/{id}", h.UpdateImage)
				r.Delete("/{id}", h.DeleteImage)
				r.Put("/{id}/categories", h.SetImageCategories)
			})

			r.Route("/categories", func(r chi.Router) {
				r.Post("/", h.CreateCategory)
				r.Post("/defaults", h.CreateDefaultCategories)
				r.Post("/{id}/toggle", h.ToggleCategory)
				r.Delete("/{id}", h.DeleteCategory)
			})

			r.Get("/orphans", h.ListOrphans)
			r.Post("/orphans/materialize", h.MaterializeOrphans)

			r.With(mw.GlobalRateLimit(rl.New(1.0/60, 3, time.Hour))).Post("/backups", h.CreateBackup) // 1 per minute after 3
			r.Get("/backups", h.ListBackups)
			r.Get("/backups/{key}/download", h.DownloadBackup)

			r.Put("/settings/featured", h.SetFeatured)
			r.Put("/settings/background", h.SetBackground)
		})
	})

	return r
}

// assets serves image files without directory listings.
func assets(dir string) http.Handler {
	files := http.StripPrefix(domain.AssetURLPrefix, http.FileServer(http.Dir(dir)))
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if strings.HasSuffix(r.URL.Path, "/") {
			http.NotFound(w, r)
			return
		}
		files.ServeHTTP(w, r)
	})
}
