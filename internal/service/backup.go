package service

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/mindseye-dev/portfolio/internal/archive"
	"github.com/mindseye-dev/portfolio/internal/domain"
	internal_errors "github.com/mindseye-dev/portfolio/internal/errors"
	"github.com/mindseye-dev/portfolio/internal/logger"
	"github.com/mindseye-dev/portfolio/internal/text"
)

const archiveSuffix = ".tar.gz"

type BackupService interface {
	Create(ctx context.Context, customName string) (*domain.BackupArtifact, error)
	Open(ctx context.Context, key string) (*domain.BackupArtifact, *os.File, error)
	List(ctx context.Context) []*domain.BackupArtifact
	History(ctx context.Context, limit int) ([]domain.BackupLogEntry, error)
}

type BackupConfig struct {
	Prefix       string
	ScratchDir   string // parent of per-backup temp dirs, os.TempDir() when empty
	AssetsDir    string
	DatabaseFile string // used when the database cannot snapshot itself
}

type Backup struct {
	cfg      BackupConfig
	registry BackupRegistry
	snapshot DatabaseSnapshotter
	log      BackupLogStorage
	now      func() time.Time
}

func NewBackup(cfg BackupConfig, registry BackupRegistry, snapshot DatabaseSnapshotter, log BackupLogStorage) BackupService {
	return &Backup{cfg: cfg, registry: registry, snapshot: snapshot, log: log, now: time.Now}
}

// archiveName sanitizes a requested name or generates one from the clock.
func (b *Backup) archiveName(customName string, at time.Time) string {
	if name := text.SecureFilename(customName); name != "" {
		return text.EnsureSuffix(name, archiveSuffix)
	}
	return fmt.Sprintf("%s_%s%s", b.cfg.Prefix, at.Format("20060102_150405"), archiveSuffix)
}

// Create builds a new archive in its own temp directory and registers it.
// Archives with the same name never overwrite each other: each gets a fresh
// directory and id. On failure the temp directory is removed and nothing is
// registered.
func (b *Backup) Create(ctx context.Context, customName string) (*domain.BackupArtifact, error) {
	createdAt := b.now()
	name := b.archiveName(customName, createdAt)

	artifact, err := b.build(ctx, name, createdAt)
	if err != nil {
		backupsTotal.WithLabelValues(domain.BackupStatusFailed).Inc()
		logger.Log.Error("backup failed", "component", "backup", "filename", name, "error", err)
		b.record(ctx, name, nil, err)
		return nil, err
	}

	b.registry.Put(artifact)
	backupsTotal.WithLabelValues(domain.BackupStatusCompleted).Inc()
	backupSizeBytes.Observe(float64(artifact.SizeBytes))
	logger.Log.Info("backup created", "component", "backup",
		"id", artifact.Id, "filename", artifact.Filename, "size_mb", artifact.SizeMB())
	b.record(ctx, name, &artifact.SizeBytes, nil)
	return artifact, nil
}

func (b *Backup) build(ctx context.Context, name string, createdAt time.Time) (_ *domain.BackupArtifact, err error) {
	scratch := b.cfg.ScratchDir
	if scratch == "" {
		scratch = os.TempDir()
	} else if err := os.MkdirAll(scratch, 0755); err != nil {
		return nil, fmt.Errorf("failed to create scratch directory: %w", err)
	}
	if b.cfg.AssetsDir != "" && isWithin(scratch, b.cfg.AssetsDir) {
		return nil, fmt.Errorf("scratch directory %s is inside the asset directory", scratch)
	}

	dir, err := os.MkdirTemp(scratch, "backup-")
	if err != nil {
		return nil, fmt.Errorf("failed to create temp directory: %w", err)
	}
	defer func() {
		if err != nil {
			os.RemoveAll(dir)
		}
	}()

	dest := filepath.Join(dir, name)
	w, err := archive.Create(dest)
	if err != nil {
		return nil, err
	}
	if err = b.fill(ctx, w, dir); err != nil {
		w.Close()
		return nil, err
	}
	if err = w.Close(); err != nil {
		return nil, fmt.Errorf("failed to finish archive: %w", err)
	}

	info, err := os.Stat(dest)
	if err != nil {
		return nil, err
	}
	return &domain.BackupArtifact{
		Id:        uuid.NewString(),
		Filename:  name,
		Path:      dest,
		SizeBytes: info.Size(),
		CreatedAt: createdAt,
	}, nil
}

// fill writes the database and the asset tree. Missing inputs are skipped.
func (b *Backup) fill(ctx context.Context, w *archive.Writer, dir string) error {
	dbFile, err := b.databaseFile(ctx, dir)
	if err != nil {
		return err
	}
	if dbFile != "" {
		if err := w.AddFile(dbFile, domain.ArchiveDatabaseEntry); err != nil {
			return err
		}
		if dbFile != b.cfg.DatabaseFile {
			os.Remove(dbFile)
		}
	}

	if b.cfg.AssetsDir != "" {
		if info, err := os.Stat(b.cfg.AssetsDir); err == nil && info.IsDir() {
			if err := w.AddDir(b.cfg.AssetsDir, domain.ArchiveAssetsEntry); err != nil {
				return err
			}
		} else if err != nil && !os.IsNotExist(err) {
			return fmt.Errorf("failed to stat asset directory: %w", err)
		}
	}
	return nil
}

// databaseFile returns a path to a copy of the database, or "" when there is
// nothing to archive.
func (b *Backup) databaseFile(ctx context.Context, dir string) (string, error) {
	if b.snapshot != nil {
		snapshotPath := filepath.Join(dir, "snapshot.db")
		ok, err := b.snapshot.Snapshot(ctx, snapshotPath)
		if err != nil {
			return "", err
		}
		if ok {
			return snapshotPath, nil
		}
	}
	if b.cfg.DatabaseFile == "" {
		return "", nil
	}
	info, err := os.Stat(b.cfg.DatabaseFile)
	if os.IsNotExist(err) {
		return "", nil
	}
	if err != nil {
		return "", fmt.Errorf("failed to stat database file: %w", err)
	}
	if !info.Mode().IsRegular() {
		return "", fmt.Errorf("database file %s is not a regular file", b.cfg.DatabaseFile)
	}
	return b.cfg.DatabaseFile, nil
}

func (b *Backup) record(ctx context.Context, name string, size *int64, failure error) {
	if b.log == nil {
		return
	}
	entry := domain.BackupLogEntry{
		Filename:   name,
		BackupType: domain.BackupTypeLocal,
		FileSize:   size,
		Status:     domain.BackupStatusCompleted,
	}
	if failure != nil {
		msg := failure.Error()
		entry.Status = domain.BackupStatusFailed
		entry.ErrorMessage = &msg
	}
	if _, err := b.log.LogBackup(ctx, entry); err != nil {
		logger.Log.Warn("failed to write backup log", "component", "backup", "filename", name, "error", err)
	}
}

// Open finds a registered backup by id or by filename and opens it.
// A registered archive that is gone from disk is reported as not found.
func (b *Backup) Open(ctx context.Context, key string) (*domain.BackupArtifact, *os.File, error) {
	artifact, ok := b.registry.Get(key)
	if !ok {
		artifact, ok = b.registry.FindByFilename(key)
	}
	if !ok {
		return nil, nil, internal_errors.NotFound("Backup")
	}

	f, err := os.Open(artifact.Path)
	if err != nil {
		if os.IsNotExist(err) {
			logger.Log.Warn("registered backup missing on disk", "component", "backup", "id", artifact.Id, "path", artifact.Path)
			return nil, nil, internal_errors.NotFound("Backup file")
		}
		return nil, nil, fmt.Errorf("failed to open backup: %w", err)
	}
	return artifact, f, nil
}

func (b *Backup) List(ctx context.Context) []*domain.BackupArtifact {
	return b.registry.List()
}

func (b *Backup) History(ctx context.Context, limit int) ([]domain.BackupLogEntry, error) {
	if b.log == nil {
		return []domain.BackupLogEntry{}, nil
	}
	if limit <= 0 || limit > 100 {
		limit = 20
	}
	return b.log.BackupHistory(ctx, limit)
}

// isWithin reports whether path is parent or below it.
func isWithin(path, parent string) bool {
	p, err1 := filepath.Abs(path)
	root, err2 := filepath.Abs(parent)
	if err1 != nil || err2 != nil {
		return false
	}
	rel, err := filepath.Rel(root, p)
	return err == nil && rel != ".." && !strings.HasPrefix(rel, ".."+string(filepath.Separator))
}
