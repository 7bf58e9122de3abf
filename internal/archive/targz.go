// Package archive writes gzip compressed tar archives.
package archive

import (
	"archive/tar"
	"io"
	"io/fs"
	"os"
	"path"
	"path/filepath"

	"emperror.dev/errors"
	"github.com/klauspost/compress/gzip"
)

// Writer streams entries into a .tar.gz file. Entry names always use
// forward slashes.
type Writer struct {
	file *os.File
	gzw  *gzip.Writer
	tw   *tar.Writer
}

// Create opens dest for writing. The caller must Close the writer.
func Create(dest string) (*Writer, error) {
	f, err := os.OpenFile(dest, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, 0644)
	if err != nil {
		return nil, errors.Wrap(err, "failed to create archive")
	}
	gzw := gzip.NewWriter(f)
	return &Writer{file: f, gzw: gzw, tw: tar.NewWriter(gzw)}, nil
}

// AddFile copies the regular file src into the archive as name.
func (w *Writer) AddFile(src, name string) error {
	fi, err := os.Stat(src)
	if err != nil {
		return errors.Wrapf(err, "failed to stat %s", src)
	}
	if !fi.Mode().IsRegular() {
		return errors.Errorf("%s is not a regular file", src)
	}
	return w.addFile(src, fi, name)
}

func (w *Writer) addFile(src string, fi fs.FileInfo, name string) error {
	header, err := tar.FileInfoHeader(fi, "")
	if err != nil {
		return errors.Wrap(err, "failed to create header")
	}
	header.Name = name

	if err = w.tw.WriteHeader(header); err != nil {
		return errors.Wrap(err, "failed to write header")
	}

	f, err := os.Open(src)
	if err != nil {
		return errors.Wrap(err, "failed to open file for taring")
	}
	defer f.Close()

	if _, err := io.Copy(w.tw, f); err != nil {
		return errors.Wrap(err, "failed to copy data")
	}
	return nil
}

func (w *Writer) addDir(fi fs.FileInfo, name string) error {
	header, err := tar.FileInfoHeader(fi, "")
	if err != nil {
		return errors.Wrap(err, "failed to create header")
	}
	header.Name = name + "/"
	return errors.Wrap(w.tw.WriteHeader(header), "failed to write header")
}

// AddDir adds src recursively under prefix, directories included.
// Anything that is neither a directory nor a regular file is skipped.
func (w *Writer) AddDir(src, prefix string) error {
	return filepath.WalkDir(src, func(file string, d fs.DirEntry, errIn error) error {
		if errIn != nil {
			return errors.Wrap(errIn, "failed to tar files")
		}

		rel, err := filepath.Rel(src, file)
		if err != nil {
			return errors.Wrap(err, "failed to resolve entry name")
		}
		name := prefix
		if rel != "." {
			name = path.Join(prefix, filepath.ToSlash(rel))
		}

		fi, err := d.Info()
		if err != nil {
			return errors.Wrapf(err, "failed to stat %s", file)
		}
		switch {
		case d.IsDir():
			return w.addDir(fi, name)
		case fi.Mode().IsRegular():
			return w.addFile(file, fi, name)
		}
		return nil
	})
}

// Close flushes the archive. Every close error is reported.
func (w *Writer) Close() error {
	var err error
	if twerr := w.tw.Close(); twerr != nil {
		err = errors.Append(err, twerr)
	}
	if gzerr := w.gzw.Close(); gzerr != nil {
		err = errors.Append(err, gzerr)
	}
	if ferr := w.file.Close(); ferr != nil {
		err = errors.Append(err, ferr)
	}
	return err
}
