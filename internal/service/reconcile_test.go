package service

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/mindseye-dev/portfolio/internal/domain"
	internal_errors "github.com/mindseye-dev/portfolio/internal/errors"
	fsstorage "github.com/mindseye-dev/portfolio/internal/storage/fs"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeAssets(t *testing.T, m *fsstorage.Storage, names ...string) {
	t.Helper()
	for _, name := range names {
		_, err := m.Save(strings.NewReader("content of "+name), name)
		require.NoError(t, err)
	}
}

func TestDetectOrphans(t *testing.T) {
	ctx := context.Background()

	t.Run("returns disk minus stored, sorted", func(t *testing.T) {
		m := newMediaStorage(t)
		writeAssets(t, m, "c.jpg", "a.PNG", "b.webp", "tracked.jpg", "notes.txt", "Tracked.JPG")
		require.NoError(t, os.Mkdir(filepath.Join(m.Root(), "dir.jpg"), 0755))

		storage := &MockReconcileStorage{
			getAllFilenamesFunc: func(ctx context.Context) ([]domain.Filename, error) {
				return []domain.Filename{"tracked.jpg", "stale-row.jpg"}, nil
			},
		}
		r := NewReconciler(storage, m)

		orphans, err := r.DetectOrphans(ctx)
		require.NoError(t, err)
		assert.Equal(t, []string{"Tracked.JPG", "a.PNG", "b.webp", "c.jpg"}, orphans)

		again, err := r.DetectOrphans(ctx)
		require.NoError(t, err)
		assert.Equal(t, orphans, again)
	})

	t.Run("missing asset directory", func(t *testing.T) {
		m := newMediaStorage(t)
		require.NoError(t, os.RemoveAll(m.Root()))

		r := NewReconciler(&MockReconcileStorage{}, m)
		orphans, err := r.DetectOrphans(ctx)
		require.NoError(t, err)
		assert.NotNil(t, orphans)
		assert.Empty(t, orphans)
	})

	t.Run("storage error", func(t *testing.T) {
		storage := &MockReconcileStorage{
			getAllFilenamesFunc: func(ctx context.Context) ([]domain.Filename, error) {
				return nil, errors.New("db down")
			},
		}
		r := NewReconciler(storage, newMediaStorage(t))
		_, err := r.DetectOrphans(ctx)
		assert.Error(t, err)
	})
}

func TestMaterializeOrphans(t *testing.T) {
	ctx := context.Background()

	t.Run("creates active rows with derived titles", func(t *testing.T) {
		m := newMediaStorage(t)
		writeAssets(t, m, "sunset_beach.jpg", "3f1c9a52-8f4e-4d3b-9b1a-2c6e7d8f9a0b.png", "old-barn.webp")
		storage := &MockReconcileStorage{
			countImagesFunc: func(ctx context.Context) (int, error) { return 10, nil },
		}
		r := NewReconciler(storage, m)

		res, err := r.MaterializeOrphans(ctx, []domain.Filename{"sunset_beach.jpg", "3f1c9a52-8f4e-4d3b-9b1a-2c6e7d8f9a0b.png", "old-barn.webp", "sunset_beach.jpg"})
		require.NoError(t, err)
		assert.Equal(t, 3, res.Added)
		assert.Len(t, res.Filenames, 3)
		assert.Empty(t, res.Skipped)

		require.Len(t, storage.createdBatches, 1)
		batch := storage.createdBatches[0]
		require.Len(t, batch, 3)
		assert.Equal(t, "Sunset Beach", *batch[0].Title)
		assert.Equal(t, "Image 12", *batch[1].Title)
		assert.Equal(t, "Old Barn", *batch[2].Title)
		for _, d := range batch {
			assert.True(t, d.Active)
			assert.Empty(t, d.CategoryIds)
			require.NotNil(t, d.FileSize)
			assert.Equal(t, int64(len("content of "+d.Filename)), *d.FileSize)
		}
	})

	t.Run("race losers are skipped", func(t *testing.T) {
		m := newMediaStorage(t)
		writeAssets(t, m, "a.jpg", "b.jpg")
		storage := &MockReconcileStorage{
			createImagesIfAbsentFunc: func(ctx context.Context, batch []domain.ImageCreationData) ([]domain.Filename, []domain.Filename, error) {
				return []domain.Filename{"a.jpg"}, []domain.Filename{"b.jpg"}, nil
			},
		}
		r := NewReconciler(storage, m)

		res, err := r.MaterializeOrphans(ctx, []domain.Filename{"a.jpg", "b.jpg"})
		require.NoError(t, err)
		assert.Equal(t, 1, res.Added)
		assert.Equal(t, []domain.Filename{"b.jpg"}, res.Skipped)
	})

	t.Run("batch failure reports attempted count", func(t *testing.T) {
		m := newMediaStorage(t)
		writeAssets(t, m, "a.jpg", "b.jpg")
		storage := &MockReconcileStorage{
			createImagesIfAbsentFunc: func(ctx context.Context, batch []domain.ImageCreationData) ([]domain.Filename, []domain.Filename, error) {
				return nil, nil, errors.New("disk I/O error")
			},
		}
		r := NewReconciler(storage, m)

		_, err := r.MaterializeOrphans(ctx, []domain.Filename{"a.jpg", "b.jpg"})
		var batchErr *domain.BatchError
		require.ErrorAs(t, err, &batchErr)
		assert.Equal(t, 2, batchErr.Attempted)
		assert.Equal(t, 500, internal_errors.StatusCode(err))
	})

	t.Run("invalid names rejected before writing", func(t *testing.T) {
		m := newMediaStorage(t)
		writeAssets(t, m, "ok.jpg", "notes.txt")
		storage := &MockReconcileStorage{}
		r := NewReconciler(storage, m)

		for _, bad := range []string{"missing.jpg", "notes.txt", "../ok.jpg"} {
			_, err := r.MaterializeOrphans(ctx, []domain.Filename{"ok.jpg", bad})
			require.Error(t, err, bad)
			assert.Equal(t, 400, internal_errors.StatusCode(err), bad)
		}
		assert.Empty(t, storage.createdBatches)
	})

	t.Run("empty input is a no-op", func(t *testing.T) {
		storage := &MockReconcileStorage{}
		r := NewReconciler(storage, newMediaStorage(t))
		res, err := r.MaterializeOrphans(ctx, nil)
		require.NoError(t, err)
		assert.Equal(t, 0, res.Added)
		assert.Empty(t, storage.createdBatches)
	})
}
