// Package fs stores image files flat in the asset directory. Files are
// addressed by their bare name; the database row references the same name.
package fs

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

var ErrInvalidName = errors.New("invalid file name")

type Storage struct {
	rootPath string
}

func New(rootPath string) (*Storage, error) {
	// Use filepath.Clean to prevent path traversal issues like "media/../"
	p := filepath.Clean(rootPath)

	if err := os.MkdirAll(p, 0755); err != nil {
		return nil, fmt.Errorf("failed to create asset directory %s: %w", p, err)
	}

	return &Storage{rootPath: p}, nil
}

// Root is the asset directory.
func (s *Storage) Root() string {
	return s.rootPath
}

// path resolves a bare file name inside the root. Names with separators or
// dot segments are rejected.
func (s *Storage) path(filename string) (string, error) {
	if filename == "" || filename == "." || filename == ".." ||
		strings.ContainsAny(filename, `/\`) || filepath.Base(filename) != filename {
		return "", fmt.Errorf("%w: %q", ErrInvalidName, filename)
	}
	return filepath.Join(s.rootPath, filename), nil
}

// Save writes a new file and returns the number of bytes written. An existing
// file with the same name is never overwritten.
func (s *Storage) Save(fileData io.Reader, filename string) (int64, error) {
	fullPath, err := s.path(filename)
	if err != nil {
		return 0, err
	}

	dst, err := os.OpenFile(fullPath, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0644)
	if err != nil {
		return 0, fmt.Errorf("failed to create destination file: %w", err)
	}

	n, err := io.Copy(dst, fileData)
	if closeErr := dst.Close(); err == nil {
		err = closeErr
	}
	if err != nil {
		os.Remove(fullPath) // best effort
		return 0, fmt.Errorf("failed to copy file data: %w", err)
	}
	return n, nil
}

// Open opens a stored file for reading.
func (s *Storage) Open(filename string) (*os.File, error) {
	fullPath, err := s.path(filename)
	if err != nil {
		return nil, err
	}
	file, err := os.Open(fullPath)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("file %s not found: %w", filename, err)
		}
		return nil, fmt.Errorf("failed to open file: %w", err)
	}
	return file, nil
}

// Stat returns file info for a stored file.
func (s *Storage) Stat(filename string) (fs.FileInfo, error) {
	fullPath, err := s.path(filename)
	if err != nil {
		return nil, err
	}
	return os.Stat(fullPath)
}

// Delete removes a single file. A file that is already gone is not an error.
func (s *Storage) Delete(filename string) error {
	fullPath, err := s.path(filename)
	if err != nil {
		return err
	}
	if err := os.Remove(fullPath); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("failed to delete file: %w", err)
	}
	return nil
}

// List returns the names of regular files directly inside the root, sorted.
// A missing root yields an empty list.
func (s *Storage) List() ([]string, error) {
	entries, err := os.ReadDir(s.rootPath)
	if err != nil {
		if os.IsNotExist(err) {
			return []string{}, nil
		}
		return nil, fmt.Errorf("failed to read asset directory: %w", err)
	}

	names := make([]string, 0, len(entries))
	for _, entry := range entries {
		if !entry.Type().IsRegular() {
			continue
		}
		names = append(names, entry.Name())
	}
	sort.Strings(names)
	return names, nil
}
