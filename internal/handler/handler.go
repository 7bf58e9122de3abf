package handler

import (
	"context"

	"github.com/mindseye-dev/portfolio/internal/config"
	"github.com/mindseye-dev/portfolio/internal/service"
	"github.com/mindseye-dev/portfolio/internal/text"
)

// HealthChecker reports whether the database is reachable.
type HealthChecker interface {
	Ping(ctx context.Context) error
}

// Services groups the services the HTTP layer adapts.
type Services struct {
	Image      service.ImageService
	Category   service.CategoryService
	Assignment service.AssignmentService
	Listing    service.ListingService
	Settings   service.SettingsService
	Reconcile  service.ReconcileService
	Backup     service.BackupService
}

type Handler struct {
	image      service.ImageService
	category   service.CategoryService
	assignment service.AssignmentService
	listing    service.ListingService
	settings   service.SettingsService
	reconcile  service.ReconcileService
	backup     service.BackupService
	health     HealthChecker
	renderer   *text.DescriptionRenderer
	cfg        *config.Config
}

func New(s Services, health HealthChecker, cfg *config.Config) *Handler {
	return &Handler{
		image:      s.Image,
		category:   s.Category,
		assignment: s.Assignment,
		listing:    s.Listing,
		settings:   s.Settings,
		reconcile:  s.Reconcile,
		backup:     s.Backup,
		health:     health,
		renderer:   text.NewDescriptionRenderer(),
		cfg:        cfg,
	}
}
