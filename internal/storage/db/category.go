package db

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/mindseye-dev/portfolio/internal/domain"
	internal_errors "github.com/mindseye-dev/portfolio/internal/errors"
	"github.com/mindseye-dev/portfolio/internal/text"
)

const categoryColumns = `c.id, c.name, c.slug, c.description, c.active, c.sort_order, c.created_at, c.updated_at`

// every linked image, active or not
const imageCountColumn = `(SELECT COUNT(*) FROM image_categories ic WHERE ic.category_id = c.id) AS image_count`

const categoryOrder = `ORDER BY c.sort_order ASC, c.name ASC, c.id ASC`

func scanCategory(row rowScanner, withCount bool) (*domain.Category, error) {
	var c domain.Category
	dest := []any{&c.Id, &c.Name, &c.Slug, &c.Description, &c.Active, &c.SortOrder, &c.CreatedAt, &c.UpdatedAt}
	if withCount {
		dest = append(dest, &c.ImageCount)
	}
	if err := row.Scan(dest...); err != nil {
		return nil, err
	}
	return &c, nil
}

func insertCategory(ctx context.Context, q Querier, data domain.CategoryCreationData, onConflictDoNothing bool) (domain.CategoryId, error) {
	ts := now()
	slug := data.Slug
	if slug == "" {
		slug = text.Slug(data.Name)
	}
	query := `INSERT INTO categories(name, slug, description, active, sort_order, created_at, updated_at)
	VALUES($1, $2, $3, $4, $5, $6, $7)`
	if onConflictDoNothing {
		// a taken name or slug both mean the category exists
		query += ` ON CONFLICT DO NOTHING`
	}
	query += ` RETURNING id`

	var id domain.CategoryId
	err := q.QueryRowContext(ctx, query, data.Name, slug, data.Description, true, data.SortOrder, ts, ts).Scan(&id)
	return id, err
}

func (s *Storage) CreateCategory(ctx context.Context, data domain.CategoryCreationData) (*domain.Category, error) {
	id, err := insertCategory(ctx, s.db, data, false)
	if err != nil {
		if s.dialect.isUniqueViolation(err) {
			return nil, fmt.Errorf("category %q: %w", data.Name, internal_errors.ErrDuplicate)
		}
		return nil, err
	}
	return s.GetCategory(ctx, id)
}

// CreateCategoriesIfAbsent inserts each category whose name and slug are free
// and returns the names that were actually created.
func (s *Storage) CreateCategoriesIfAbsent(ctx context.Context, batch []domain.CategoryCreationData) ([]domain.CategoryName, error) {
	var created []domain.CategoryName
	err := s.withTx(ctx, func(q Querier) error {
		created = nil
		for _, data := range batch {
			_, err := insertCategory(ctx, q, data, true)
			if errors.Is(err, sql.ErrNoRows) {
				continue
			}
			if err != nil {
				return fmt.Errorf("failed to insert category %s: %w", data.Name, err)
			}
			created = append(created, data.Name)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return created, nil
}

func getCategory(ctx context.Context, q Querier, id domain.CategoryId) (*domain.Category, error) {
	c, err := scanCategory(q.QueryRowContext(ctx, `
	SELECT `+categoryColumns+`, `+imageCountColumn+`
	FROM categories c WHERE c.id = $1`, id), true)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, internal_errors.NotFound("Category")
		}
		return nil, err
	}
	return c, nil
}

func (s *Storage) GetCategory(ctx context.Context, id domain.CategoryId) (*domain.Category, error) {
	return getCategory(ctx, s.db, id)
}

func (s *Storage) GetCategoryByName(ctx context.Context, name domain.CategoryName) (*domain.Category, error) {
	c, err := scanCategory(s.db.QueryRowContext(ctx, `
	SELECT `+categoryColumns+`, `+imageCountColumn+`
	FROM categories c WHERE c.name = $1`, name), true)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, internal_errors.NotFound("Category")
		}
		return nil, err
	}
	return c, nil
}

func (s *Storage) SetCategoryActive(ctx context.Context, id domain.CategoryId, active bool) (*domain.Category, error) {
	result, err := s.db.ExecContext(ctx, `UPDATE categories SET active = $1, updated_at = $2 WHERE id = $3`, active, now(), id)
	if err != nil {
		return nil, err
	}
	if updated, err := result.RowsAffected(); err != nil {
		return nil, err
	} else if updated == 0 {
		return nil, internal_errors.NotFound("Category")
	}
	return s.GetCategory(ctx, id)
}

// DeleteCategory removes the category and its links. Images are untouched.
func (s *Storage) DeleteCategory(ctx context.Context, id domain.CategoryId) (*domain.Category, error) {
	var c *domain.Category
	err := s.withTx(ctx, func(q Querier) error {
		var err error
		c, err = getCategory(ctx, q, id)
		if err != nil {
			return err
		}
		if _, err := q.ExecContext(ctx, `DELETE FROM image_categories WHERE category_id = $1`, id); err != nil {
			return err
		}
		_, err = q.ExecContext(ctx, `DELETE FROM categories WHERE id = $1`, id)
		return err
	})
	if err != nil {
		return nil, err
	}
	return c, nil
}

// ListCategories returns categories with the number of linked images in each.
func (s *Storage) ListCategories(ctx context.Context, activeOnly bool) ([]*domain.Category, error) {
	var args argList
	query := `SELECT ` + categoryColumns + `, ` + imageCountColumn + ` FROM categories c`
	if activeOnly {
		query += ` WHERE c.active = ` + args.add(true)
	}
	query += ` ` + categoryOrder

	rows, err := s.db.QueryContext(ctx, query, args.args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	categories := []*domain.Category{}
	for rows.Next() {
		c, err := scanCategory(rows, true)
		if err != nil {
			return nil, err
		}
		categories = append(categories, c)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return categories, nil
}

// existingCategoryIds returns the subset of ids that are stored.
func existingCategoryIds(ctx context.Context, q Querier, ids []domain.CategoryId) (map[domain.CategoryId]bool, error) {
	found := make(map[domain.CategoryId]bool, len(ids))
	if len(ids) == 0 {
		return found, nil
	}
	var args argList
	rows, err := q.QueryContext(ctx, `SELECT id FROM categories WHERE id IN (`+args.addAll(ids)+`)`, args.args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	for rows.Next() {
		var id domain.CategoryId
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		found[id] = true
	}
	return found, rows.Err()
}
