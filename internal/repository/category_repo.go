package repository

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/refstash/refstash-go/internal/model"
)

type CategoryRepo struct {
	pool *pgxpool.Pool
}

func NewCategoryRepo(pool *pgxpool.Pool) *CategoryRepo {
	return &CategoryRepo{pool: pool}
}

// RootIDs returns the subset of ids that are root categories (no parent).
// Implements search.CategoryTree.
func (r *CategoryRepo) RootIDs(ctx context.Context, ids []int64) ([]int64, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT id FROM categories WHERE id = ANY($1) AND parent_id IS NULL`, ids)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var roots []int64
	for rows.Next() {
		var id int64
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		roots = append(roots, id)
	}
	return roots, rows.Err()
}

// ChildIDs returns the direct children of a category. Implements
// search.CategoryTree.
func (r *CategoryRepo) ChildIDs(ctx context.Context, parentID int64) ([]int64, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT id FROM categories WHERE parent_id = $1`, parentID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var children []int64
	for rows.Next() {
		var id int64
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		children = append(children, id)
	}
	return children, rows.Err()
}

// ListAll returns every category ordered for tree assembly.
func (r *CategoryRepo) ListAll(ctx context.Context) ([]model.Category, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT id, parent_id, name, slug, display_order, created_at, updated_at
		FROM categories
		ORDER BY display_order, name`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var cats []model.Category
	for rows.Next() {
		var c model.Category
		if err := rows.Scan(&c.ID, &c.ParentID, &c.Name, &c.Slug,
			&c.DisplayOrder, &c.CreatedAt, &c.UpdatedAt); err != nil {
			return nil, err
		}
		cats = append(cats, c)
	}
	return cats, rows.Err()
}
