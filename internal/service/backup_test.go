package service

import (
	"archive/tar"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/klauspost/compress/gzip"

	"github.com/mindseye-dev/portfolio/internal/domain"
	internal_errors "github.com/mindseye-dev/portfolio/internal/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type backupFixture struct {
	root     string
	assets   string
	scratch  string
	registry *MemoryRegistry
	log      *MockBackupLogStorage
}

func newBackupFixture(t *testing.T) *backupFixture {
	t.Helper()
	root := t.TempDir()
	f := &backupFixture{
		root:     root,
		assets:   filepath.Join(root, "assets"),
		scratch:  filepath.Join(root, "scratch"),
		registry: NewMemoryRegistry(),
		log:      &MockBackupLogStorage{},
	}
	require.NoError(t, os.MkdirAll(f.assets, 0755))
	require.NoError(t, os.WriteFile(filepath.Join(f.assets, "one.jpg"), []byte("1"), 0644))
	require.NoError(t, os.WriteFile(filepath.Join(f.assets, "two.png"), []byte("22"), 0644))
	return f
}

func (f *backupFixture) service(snapshot DatabaseSnapshotter, dbFile string) *Backup {
	return &Backup{
		cfg: BackupConfig{
			Prefix:       "minds_eye_backup",
			ScratchDir:   f.scratch,
			AssetsDir:    f.assets,
			DatabaseFile: dbFile,
		},
		registry: f.registry,
		snapshot: snapshot,
		log:      f.log,
		now:      func() time.Time { return time.Date(2024, 3, 9, 14, 5, 7, 0, time.UTC) },
	}
}

func archiveEntries(t *testing.T, path string) map[string]string {
	t.Helper()
	file, err := os.Open(path)
	require.NoError(t, err)
	defer file.Close()
	gzr, err := gzip.NewReader(file)
	require.NoError(t, err)
	tr := tar.NewReader(gzr)
	entries := map[string]string{}
	for {
		h, err := tr.Next()
		if err == io.EOF {
			return entries
		}
		require.NoError(t, err)
		data, err := io.ReadAll(tr)
		require.NoError(t, err)
		entries[h.Name] = string(data)
	}
}

func TestBackupArchiveName(t *testing.T) {
	b := newBackupFixture(t).service(nil, "")
	at := time.Date(2024, 3, 9, 14, 5, 7, 0, time.UTC)

	assert.Equal(t, "My_Report.tar.gz", b.archiveName("My Report", at))
	assert.Equal(t, "june.tar.gz", b.archiveName("june.tar.gz", at))
	assert.Equal(t, "etc_passwd.tar.gz", b.archiveName("../../etc/passwd", at))
	assert.Equal(t, "minds_eye_backup_20240309_140507.tar.gz", b.archiveName("", at))
	assert.Equal(t, "minds_eye_backup_20240309_140507.tar.gz", b.archiveName("///", at))
}

func TestBackupCreate(t *testing.T) {
	ctx := context.Background()

	t.Run("archives snapshot and assets", func(t *testing.T) {
		f := newBackupFixture(t)
		snapshot := &MockSnapshotter{
			snapshotFunc: func(ctx context.Context, dest string) (bool, error) {
				return true, os.WriteFile(dest, []byte("sqlite snapshot"), 0644)
			},
		}
		b := f.service(snapshot, "")

		artifact, err := b.Create(ctx, "My Report")
		require.NoError(t, err)
		assert.Equal(t, "My_Report.tar.gz", artifact.Filename)
		assert.Equal(t, "My_Report.tar.gz", filepath.Base(artifact.Path))
		assert.True(t, strings.HasPrefix(artifact.Path, f.scratch))
		assert.NotEmpty(t, artifact.Id)

		info, err := os.Stat(artifact.Path)
		require.NoError(t, err)
		assert.Equal(t, info.Size(), artifact.SizeBytes)

		assert.Equal(t, map[string]string{
			"database/app.db": "sqlite snapshot",
			"assets/":         "",
			"assets/one.jpg":  "1",
			"assets/two.png":  "22",
		}, archiveEntries(t, artifact.Path))

		// the snapshot copy is not left next to the archive
		siblings, err := os.ReadDir(filepath.Dir(artifact.Path))
		require.NoError(t, err)
		assert.Len(t, siblings, 1)

		got, ok := f.registry.Get(artifact.Id)
		require.True(t, ok)
		assert.Equal(t, artifact, got)

		require.Len(t, f.log.entries, 1)
		assert.Equal(t, domain.BackupStatusCompleted, f.log.entries[0].Status)
		assert.Equal(t, artifact.SizeBytes, *f.log.entries[0].FileSize)
	})

	t.Run("falls back to database file", func(t *testing.T) {
		f := newBackupFixture(t)
		dbFile := filepath.Join(f.root, "app.db")
		require.NoError(t, os.WriteFile(dbFile, []byte("db file"), 0644))
		b := f.service(&MockSnapshotter{}, dbFile)

		artifact, err := b.Create(ctx, "")
		require.NoError(t, err)
		assert.Equal(t, "minds_eye_backup_20240309_140507.tar.gz", artifact.Filename)
		assert.Equal(t, "db file", archiveEntries(t, artifact.Path)["database/app.db"])

		_, err = os.Stat(dbFile)
		assert.NoError(t, err, "the live database file is never removed")
	})

	t.Run("missing inputs give a valid near empty archive", func(t *testing.T) {
		f := newBackupFixture(t)
		require.NoError(t, os.RemoveAll(f.assets))
		b := f.service(nil, filepath.Join(f.root, "missing.db"))

		artifact, err := b.Create(ctx, "empty")
		require.NoError(t, err)
		assert.Empty(t, archiveEntries(t, artifact.Path))
	})

	t.Run("same name twice gives two entries", func(t *testing.T) {
		f := newBackupFixture(t)
		b := f.service(nil, "")

		first, err := b.Create(ctx, "nightly")
		require.NoError(t, err)
		second, err := b.Create(ctx, "nightly")
		require.NoError(t, err)

		assert.NotEqual(t, first.Id, second.Id)
		assert.NotEqual(t, first.Path, second.Path)
		assert.Equal(t, first.Filename, second.Filename)
		assert.Len(t, f.registry.List(), 2)

		_, err = os.Stat(first.Path)
		assert.NoError(t, err, "earlier archive is not overwritten")

		byName, ok := f.registry.FindByFilename("nightly.tar.gz")
		require.True(t, ok)
		assert.Equal(t, second.Id, byName.Id)
	})

	t.Run("failure registers nothing and cleans up", func(t *testing.T) {
		f := newBackupFixture(t)
		snapshot := &MockSnapshotter{
			snapshotFunc: func(ctx context.Context, dest string) (bool, error) {
				return false, errors.New("disk full")
			},
		}
		b := f.service(snapshot, "")

		_, err := b.Create(ctx, "broken")
		require.EqualError(t, err, "disk full")
		assert.Empty(t, f.registry.List())

		leftovers, err := os.ReadDir(f.scratch)
		require.NoError(t, err)
		assert.Empty(t, leftovers)

		require.Len(t, f.log.entries, 1)
		assert.Equal(t, domain.BackupStatusFailed, f.log.entries[0].Status)
		assert.Equal(t, "disk full", *f.log.entries[0].ErrorMessage)
	})

	t.Run("scratch inside assets is refused", func(t *testing.T) {
		f := newBackupFixture(t)
		b := f.service(nil, "")
		b.cfg.ScratchDir = filepath.Join(f.assets, "tmp")

		_, err := b.Create(ctx, "")
		require.Error(t, err)
		assert.Empty(t, f.registry.List())
	})

	t.Run("backup log failure does not fail the backup", func(t *testing.T) {
		f := newBackupFixture(t)
		f.log.err = errors.New("log table gone")
		b := f.service(nil, "")

		_, err := b.Create(ctx, "")
		require.NoError(t, err)
	})
}

func TestBackupOpen(t *testing.T) {
	ctx := context.Background()
	f := newBackupFixture(t)
	b := f.service(nil, "")

	artifact, err := b.Create(ctx, "download me")
	require.NoError(t, err)

	t.Run("by id", func(t *testing.T) {
		got, file, err := b.Open(ctx, artifact.Id)
		require.NoError(t, err)
		defer file.Close()
		assert.Equal(t, artifact.Id, got.Id)
	})

	t.Run("by filename", func(t *testing.T) {
		got, file, err := b.Open(ctx, "download_me.tar.gz")
		require.NoError(t, err)
		defer file.Close()
		assert.Equal(t, artifact.Id, got.Id)
	})

	t.Run("unknown key", func(t *testing.T) {
		_, _, err := b.Open(ctx, "nope")
		assert.Equal(t, 404, internal_errors.StatusCode(err))
	})

	t.Run("stale entry", func(t *testing.T) {
		require.NoError(t, os.Remove(artifact.Path))
		_, _, err := b.Open(ctx, artifact.Id)
		assert.Equal(t, 404, internal_errors.StatusCode(err))
	})
}

func TestBackupHistory(t *testing.T) {
	f := newBackupFixture(t)
	b := f.service(nil, "")
	for i := 0; i < 3; i++ {
		_, err := b.Create(context.Background(), "")
		require.NoError(t, err)
	}
	entries, err := b.History(context.Background(), 2)
	require.NoError(t, err)
	assert.Len(t, entries, 2)
}

func TestMemoryRegistry(t *testing.T) {
	r := NewMemoryRegistry()
	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			r.Put(&domain.BackupArtifact{Id: fmt.Sprintf("id-%d", i), Filename: "same.tar.gz"})
		}(i)
	}
	wg.Wait()
	assert.Len(t, r.List(), 50)

	r.Put(&domain.BackupArtifact{Id: "last", Filename: "same.tar.gz"})
	latest, ok := r.FindByFilename("same.tar.gz")
	require.True(t, ok)
	assert.Equal(t, "last", latest.Id)
	assert.Equal(t, "last", r.List()[0].Id)

	_, ok = r.Get("missing")
	assert.False(t, ok)
	_, ok = r.FindByFilename("missing.tar.gz")
	assert.False(t, ok)
}
