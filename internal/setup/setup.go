package setup

import (
	"context"

	"github.com/mindseye-dev/portfolio/internal/config"
	"github.com/mindseye-dev/portfolio/internal/handler"
	"github.com/mindseye-dev/portfolio/internal/service"
	"github.com/mindseye-dev/portfolio/internal/storage/db"
	"github.com/mindseye-dev/portfolio/internal/storage/fs"
)

// Dependencies struct to hold all initialized dependencies.
type Dependencies struct {
	Config   *config.Config
	Storage  *db.Storage
	Media    *fs.Storage
	Services handler.Services
	Handler  *handler.Handler
}

// SetupDependencies opens the database and the asset directory and builds
// every service on top of them. Call Cleanup when done.
func SetupDependencies(ctx context.Context, cfg *config.Config) (*Dependencies, error) {
	storage, err := db.New(ctx, cfg)
	if err != nil {
		return nil, err
	}

	media, err := fs.New(cfg.Public.Assets.Dir)
	if err != nil {
		storage.Cleanup()
		return nil, err
	}

	backupCfg := service.BackupConfig{
		Prefix:       cfg.Public.Backup.Prefix,
		ScratchDir:   cfg.Public.Backup.ScratchDir,
		AssetsDir:    media.Root(),
		DatabaseFile: cfg.BackupDatabaseFile(),
	}

	services := handler.Services{
		Image:      service.NewImage(storage, media),
		Category:   service.NewCategory(storage),
		Assignment: service.NewAssignment(storage),
		Listing:    service.NewListing(storage),
		Settings:   service.NewSettings(storage),
		Reconcile:  service.NewReconciler(storage, media),
		Backup:     service.NewBackup(backupCfg, service.NewMemoryRegistry(), storage, storage),
	}

	return &Dependencies{
		Config:   cfg,
		Storage:  storage,
		Media:    media,
		Services: services,
		Handler:  handler.New(services, storage, cfg),
	}, nil
}

func (d *Dependencies) Cleanup() error {
	return d.Storage.Cleanup()
}
