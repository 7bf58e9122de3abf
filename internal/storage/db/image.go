package db

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/mindseye-dev/portfolio/internal/domain"
	internal_errors "github.com/mindseye-dev/portfolio/internal/errors"
)

const imageColumns = `
	i.id, i.filename, i.original_filename, i.title, i.description, i.alt_text,
	i.width, i.height, i.file_size,
	i.camera_make, i.camera_model, i.lens, i.aperture, i.shutter_speed, i.iso, i.focal_length, i.date_taken,
	i.location, i.latitude, i.longitude,
	i.active, i.featured, i.sort_order, i.created_at, i.updated_at`

// total order: sort_order, newest first, id as the final tie breaker
const imageOrder = `ORDER BY i.sort_order ASC, i.created_at DESC, i.id DESC`

type rowScanner interface {
	Scan(dest ...any) error
}

func scanImage(row rowScanner) (*domain.Image, error) {
	var img domain.Image
	err := row.Scan(
		&img.Id, &img.Filename, &img.OriginalFilename, &img.Title, &img.Description, &img.AltText,
		&img.Width, &img.Height, &img.FileSize,
		&img.CameraMake, &img.CameraModel, &img.Lens, &img.Aperture, &img.ShutterSpeed, &img.ISO, &img.FocalLength, &img.DateTaken,
		&img.Location, &img.Latitude, &img.Longitude,
		&img.Active, &img.Featured, &img.SortOrder, &img.CreatedAt, &img.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	img.Categories = []*domain.Category{}
	return &img, nil
}

func insertImage(ctx context.Context, q Querier, data domain.ImageCreationData, onConflictDoNothing bool) (domain.ImageId, error) {
	ts := now()
	query := `
	INSERT INTO images(
		filename, original_filename, title, description, alt_text,
		width, height, file_size,
		camera_make, camera_model, lens, aperture, shutter_speed, iso, focal_length, date_taken,
		latitude, longitude, active, sort_order, created_at, updated_at)
	VALUES($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18, $19, $20, $21, $22)`
	if onConflictDoNothing {
		query += ` ON CONFLICT (filename) DO NOTHING`
	}
	query += ` RETURNING id`

	var id domain.ImageId
	err := q.QueryRowContext(ctx, query,
		data.Filename, data.OriginalFilename, data.Title, data.Description, data.AltText,
		data.Width, data.Height, data.FileSize,
		data.Exif.CameraMake, data.Exif.CameraModel, data.Exif.Lens, data.Exif.Aperture,
		data.Exif.ShutterSpeed, data.Exif.ISO, data.Exif.FocalLength, data.Exif.DateTaken,
		data.Latitude, data.Longitude, data.Active, data.SortOrder, ts, ts,
	).Scan(&id)
	return id, err
}

// CreateImage inserts one image row together with its category links.
// Unknown category ids are ignored.
func (s *Storage) CreateImage(ctx context.Context, data domain.ImageCreationData) (*domain.Image, error) {
	var img *domain.Image
	err := s.withTx(ctx, func(q Querier) error {
		id, err := insertImage(ctx, q, data, false)
		if err != nil {
			if s.dialect.isUniqueViolation(err) {
				return fmt.Errorf("image %q: %w", data.Filename, internal_errors.ErrDuplicate)
			}
			return err
		}
		for _, categoryId := range data.CategoryIds {
			if _, err := linkIfCategoryExists(ctx, q, id, categoryId); err != nil {
				return err
			}
		}
		img, err = getImage(ctx, q, id)
		return err
	})
	if err != nil {
		return nil, err
	}
	return img, nil
}

// CreateImagesIfAbsent inserts all rows in one transaction. Rows whose filename
// is already stored are skipped and returned separately. Any other failure
// rolls the whole batch back.
func (s *Storage) CreateImagesIfAbsent(ctx context.Context, batch []domain.ImageCreationData) (added, skipped []domain.Filename, err error) {
	err = s.withTx(ctx, func(q Querier) error {
		added, skipped = nil, nil
		for _, data := range batch {
			_, err := insertImage(ctx, q, data, true)
			if errors.Is(err, sql.ErrNoRows) {
				skipped = append(skipped, data.Filename)
				continue
			}
			if err != nil {
				return fmt.Errorf("failed to insert %s: %w", data.Filename, err)
			}
			added = append(added, data.Filename)
		}
		return nil
	})
	if err != nil {
		return nil, nil, err
	}
	return added, skipped, nil
}

func getImage(ctx context.Context, q Querier, id domain.ImageId) (*domain.Image, error) {
	img, err := scanImage(q.QueryRowContext(ctx, `SELECT `+imageColumns+` FROM images i WHERE i.id = $1`, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, internal_errors.NotFound("Image")
		}
		return nil, err
	}
	if err := attachCategories(ctx, q, []*domain.Image{img}); err != nil {
		return nil, err
	}
	return img, nil
}

func (s *Storage) GetImage(ctx context.Context, id domain.ImageId) (*domain.Image, error) {
	return getImage(ctx, s.db, id)
}

func (s *Storage) GetImageByFilename(ctx context.Context, filename domain.Filename) (*domain.Image, error) {
	img, err := scanImage(s.db.QueryRowContext(ctx, `SELECT `+imageColumns+` FROM images i WHERE i.filename = $1`, filename))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, internal_errors.NotFound("Image")
		}
		return nil, err
	}
	if err := attachCategories(ctx, s.db, []*domain.Image{img}); err != nil {
		return nil, err
	}
	return img, nil
}

func (s *Storage) UpdateImage(ctx context.Context, id domain.ImageId, upd domain.ImageUpdate) (*domain.Image, error) {
	var img *domain.Image
	err := s.withTx(ctx, func(q Querier) error {
		var args argList
		var sets []string
		// empty text clears the column
		if upd.Title != nil {
			sets = append(sets, "title = "+args.add(nullIfEmpty(*upd.Title)))
		}
		if upd.Description != nil {
			sets = append(sets, "description = "+args.add(nullIfEmpty(*upd.Description)))
		}
		if upd.AltText != nil {
			sets = append(sets, "alt_text = "+args.add(nullIfEmpty(*upd.AltText)))
		}
		if upd.Location != nil {
			sets = append(sets, "location = "+args.add(nullIfEmpty(*upd.Location)))
		}
		if upd.Active != nil {
			sets = append(sets, "active = "+args.add(*upd.Active))
		}
		if upd.Featured != nil {
			sets = append(sets, "featured = "+args.add(*upd.Featured))
		}
		if upd.SortOrder != nil {
			sets = append(sets, "sort_order = "+args.add(*upd.SortOrder))
		}
		sets = append(sets, "updated_at = "+args.add(now()))
		query := fmt.Sprintf("UPDATE images SET %s WHERE id = %s", strings.Join(sets, ", "), args.add(id))

		result, err := q.ExecContext(ctx, query, args.args...)
		if err != nil {
			return err
		}
		if updated, err := result.RowsAffected(); err != nil {
			return err
		} else if updated == 0 {
			return internal_errors.NotFound("Image")
		}
		img, err = getImage(ctx, q, id)
		return err
	})
	if err != nil {
		return nil, err
	}
	return img, nil
}

// DeleteImage removes the row and its association rows and returns what was deleted.
func (s *Storage) DeleteImage(ctx context.Context, id domain.ImageId) (*domain.Image, error) {
	var img *domain.Image
	err := s.withTx(ctx, func(q Querier) error {
		var err error
		img, err = getImage(ctx, q, id)
		if err != nil {
			return err
		}
		if _, err := q.ExecContext(ctx, `DELETE FROM image_categories WHERE image_id = $1`, id); err != nil {
			return err
		}
		if _, err := q.ExecContext(ctx, `DELETE FROM images WHERE id = $1`, id); err != nil {
			return err
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return img, nil
}

func (s *Storage) ListImages(ctx context.Context, filter domain.ImageFilter) ([]*domain.Image, error) {
	var args argList
	var conds []string
	if filter.Category != "" {
		conds = append(conds, `EXISTS (
		SELECT 1 FROM image_categories ic JOIN categories c ON c.id = ic.category_id
		WHERE ic.image_id = i.id AND (c.name = `+args.add(filter.Category)+` OR c.slug = `+args.add(filter.Category)+`))`)
	}
	if filter.ActiveOnly {
		conds = append(conds, "i.active = "+args.add(true))
	}
	query := `SELECT ` + imageColumns + ` FROM images i`
	if len(conds) > 0 {
		query += ` WHERE ` + strings.Join(conds, " AND ")
	}
	query += ` ` + imageOrder

	images, err := queryImages(ctx, s.db, query, args.args...)
	if err != nil {
		return nil, err
	}
	if err := attachCategories(ctx, s.db, images); err != nil {
		return nil, err
	}
	return images, nil
}

// LatestActiveImage returns the most recently created active image, or nil.
func (s *Storage) LatestActiveImage(ctx context.Context) (*domain.Image, error) {
	img, err := scanImage(s.db.QueryRowContext(ctx, `
	SELECT `+imageColumns+`
	FROM images i
	WHERE i.active = $1
	ORDER BY i.created_at DESC, i.id DESC
	LIMIT 1`, true))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	if err := attachCategories(ctx, s.db, []*domain.Image{img}); err != nil {
		return nil, err
	}
	return img, nil
}

// GetAllFilenames returns every stored filename. Used by orphan detection.
func (s *Storage) GetAllFilenames(ctx context.Context) ([]domain.Filename, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT filename FROM images`)
	if err != nil {
		return nil, fmt.Errorf("failed to query filenames: %w", err)
	}
	defer rows.Close()

	var filenames []domain.Filename
	for rows.Next() {
		var f domain.Filename
		if err := rows.Scan(&f); err != nil {
			return nil, fmt.Errorf("failed to scan filename: %w", err)
		}
		filenames = append(filenames, f)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows iteration error: %w", err)
	}
	return filenames, nil
}

func (s *Storage) CountImages(ctx context.Context) (int, error) {
	var n int
	if err := s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM images`).Scan(&n); err != nil {
		return 0, err
	}
	return n, nil
}

func queryImages(ctx context.Context, q Querier, query string, args ...any) ([]*domain.Image, error) {
	rows, err := q.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	images := []*domain.Image{}
	for rows.Next() {
		img, err := scanImage(rows)
		if err != nil {
			return nil, err
		}
		images = append(images, img)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return images, nil
}

// attachCategories fills Categories for every image with a single query.
func attachCategories(ctx context.Context, q Querier, images []*domain.Image) error {
	if len(images) == 0 {
		return nil
	}
	byId := make(map[domain.ImageId]*domain.Image, len(images))
	ids := make([]int64, 0, len(images))
	for _, img := range images {
		if _, seen := byId[img.Id]; !seen {
			ids = append(ids, img.Id)
		}
		byId[img.Id] = img
	}

	var args argList
	rows, err := q.QueryContext(ctx, `
	SELECT ic.image_id, `+categoryColumns+`
	FROM image_categories ic
	JOIN categories c ON c.id = ic.category_id
	WHERE ic.image_id IN (`+args.addAll(ids)+`)
	`+categoryOrder, args.args...)
	if err != nil {
		return fmt.Errorf("failed to load image categories: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var imageId domain.ImageId
		var c domain.Category
		if err := rows.Scan(&imageId, &c.Id, &c.Name, &c.Slug, &c.Description, &c.Active, &c.SortOrder, &c.CreatedAt, &c.UpdatedAt); err != nil {
			return err
		}
		if img, ok := byId[imageId]; ok {
			img.Categories = append(img.Categories, &c)
		}
	}
	return rows.Err()
}

func nullIfEmpty(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
