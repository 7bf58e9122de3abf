package service

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/mindseye-dev/portfolio/internal/domain"
	internal_errors "github.com/mindseye-dev/portfolio/internal/errors"
	"github.com/mindseye-dev/portfolio/internal/logger"
	"github.com/mindseye-dev/portfolio/internal/media"
	"github.com/mindseye-dev/portfolio/internal/text"
)

type ReconcileService interface {
	DetectOrphans(ctx context.Context) ([]domain.Filename, error)
	MaterializeOrphans(ctx context.Context, filenames []domain.Filename) (*domain.MaterializeResult, error)
}

// Reconciler compares the asset directory with the images table and creates
// rows for files that have none.
type Reconciler struct {
	storage ReconcileStorage
	media   MediaStorage
}

func NewReconciler(storage ReconcileStorage, mediaStorage MediaStorage) ReconcileService {
	return &Reconciler{storage: storage, media: mediaStorage}
}

// DetectOrphans returns image files in the asset directory that no row
// references, sorted. Matching is exact and case sensitive. A missing
// directory yields an empty list.
func (r *Reconciler) DetectOrphans(ctx context.Context) ([]domain.Filename, error) {
	onDisk, err := r.media.List()
	if err != nil {
		return nil, err
	}

	stored, err := r.storage.GetAllFilenames(ctx)
	if err != nil {
		return nil, err
	}
	storedSet := make(map[domain.Filename]bool, len(stored))
	for _, f := range stored {
		storedSet[f] = true
	}

	orphans := []domain.Filename{}
	for _, f := range onDisk {
		if !media.IsAllowed(f) || storedSet[f] {
			continue
		}
		orphans = append(orphans, f)
	}
	sort.Strings(orphans)
	return orphans, nil
}

// MaterializeOrphans creates an active, uncategorized row for every file in
// one transaction. Files that got a row concurrently are reported as skipped.
func (r *Reconciler) MaterializeOrphans(ctx context.Context, filenames []domain.Filename) (*domain.MaterializeResult, error) {
	filenames = dedupe(filenames)
	res := &domain.MaterializeResult{Filenames: filenames, Skipped: []domain.Filename{}}
	if len(filenames) == 0 {
		return res, nil
	}

	if err := r.validate(filenames); err != nil {
		return nil, err
	}

	count, err := r.storage.CountImages(ctx)
	if err != nil {
		return nil, err
	}

	batch := make([]domain.ImageCreationData, 0, len(filenames))
	for i, f := range filenames {
		batch = append(batch, r.creationData(f, count+i+1))
	}

	added, skipped, err := r.storage.CreateImagesIfAbsent(ctx, batch)
	if err != nil {
		logger.Log.Error("orphan materialization rolled back", "component", "reconcile", "attempted", len(batch), "error", err)
		return nil, &domain.BatchError{Attempted: len(batch), Err: err}
	}

	res.Added = len(added)
	if skipped != nil {
		res.Skipped = skipped
	}
	orphansMaterializedTotal.Add(float64(res.Added))
	logger.Log.Info("orphans materialized", "component", "reconcile", "added", res.Added, "skipped", len(res.Skipped))
	return res, nil
}

// validate rejects the whole request before anything is written.
func (r *Reconciler) validate(filenames []domain.Filename) error {
	var invalid []string
	for _, f := range filenames {
		if !media.IsAllowed(f) {
			invalid = append(invalid, f)
			continue
		}
		info, err := r.media.Stat(f)
		if err != nil || !info.Mode().IsRegular() {
			invalid = append(invalid, f)
		}
	}
	if len(invalid) > 0 {
		return &internal_errors.ValidationError{
			Message: fmt.Sprintf("not an image file in the asset directory: %s", strings.Join(invalid, ", ")),
		}
	}
	return nil
}

func (r *Reconciler) creationData(filename domain.Filename, ordinal int) domain.ImageCreationData {
	title := text.OrphanTitle(filename, ordinal)
	data := domain.ImageCreationData{
		Filename:         filename,
		OriginalFilename: filename,
		Title:            &title,
		Active:           true,
	}
	if info, err := r.media.Stat(filename); err == nil {
		size := info.Size()
		data.FileSize = &size
	}
	f, err := r.media.Open(filename)
	if err != nil {
		return data
	}
	defer f.Close()
	md := media.Probe(f)
	data.Width, data.Height = md.Width, md.Height
	data.Exif = md.Exif
	data.Latitude, data.Longitude = md.Latitude, md.Longitude
	return data
}

func dedupe(filenames []domain.Filename) []domain.Filename {
	seen := make(map[domain.Filename]bool, len(filenames))
	out := make([]domain.Filename, 0, len(filenames))
	for _, f := range filenames {
		if seen[f] {
			continue
		}
		seen[f] = true
		out = append(out, f)
	}
	return out
}
