package repository

import (
	"context"
	"database/sql"

	"github.com/iliyamo/bike-catalog-admin/internal/model"
)

const selectPartCategory = `SELECT id, product_type_id, name, display_order, created_at, updated_at
	FROM part_categories`

// PartCategoryRepo encapsulates all queries against part_categories.
type PartCategoryRepo struct {
	db *sql.DB
}

func NewPartCategoryRepo(db *sql.DB) *PartCategoryRepo {
	return &PartCategoryRepo{db: db}
}

func scanPartCategory(s rowScanner) (*model.PartCategory, error) {
	var pc model.PartCategory
	if err := s.Scan(&pc.ID, &pc.ProductTypeID, &pc.Name, &pc.DisplayOrder, &pc.CreatedAt, &pc.UpdatedAt); err != nil {
		return nil, err
	}
	return &pc, nil
}

// Create inserts pc. A product_type_id that does not exist is reported by
// the foreign key as ErrConflict; handlers check the parent first so that
// case normally surfaces as a 404 instead.
func (r *PartCategoryRepo) Create(ctx context.Context, pc *model.PartCategory) error {
	res, err := r.db.ExecContext(ctx,
		"INSERT INTO part_categories (product_type_id, name, display_order) VALUES (?, ?, ?)",
		pc.ProductTypeID, pc.Name, pc.DisplayOrder)
	if err != nil {
		return mapWriteErr(err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return err
	}
	stored, err := r.GetByID(ctx, uint64(id))
	if err != nil {
		return err
	}
	*pc = *stored
	return nil
}

func (r *PartCategoryRepo) GetByID(ctx context.Context, id uint64) (*model.PartCategory, error) {
	pc, err := scanPartCategory(r.db.QueryRowContext(ctx, selectPartCategory+" WHERE id = ?", id))
	if err != nil {
		return nil, notFound(err, ErrPartCategoryNotFound)
	}
	return pc, nil
}

// ListByProductType returns a page of categories for one product type in
// display order.
func (r *PartCategoryRepo) ListByProductType(ctx context.Context, productTypeID uint64, skip, limit int) ([]*model.PartCategory, error) {
	rows, err := r.db.QueryContext(ctx,
		selectPartCategory+" WHERE product_type_id = ? ORDER BY display_order, id LIMIT ? OFFSET ?",
		productTypeID, limit, skip)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]*model.PartCategory, 0)
	for rows.Next() {
		pc, err := scanPartCategory(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, pc)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

// Update writes every mutable column of pc and reloads it. It returns
// ErrPartCategoryNotFound when the row is gone and ErrConflict when the new
// product_type_id does not exist.
func (r *PartCategoryRepo) Update(ctx context.Context, pc *model.PartCategory) error {
	res, err := r.db.ExecContext(ctx,
		`UPDATE part_categories
		 SET product_type_id = ?, name = ?, display_order = ?, updated_at = CURRENT_TIMESTAMP
		 WHERE id = ?`,
		pc.ProductTypeID, pc.Name, pc.DisplayOrder, pc.ID)
	if err != nil {
		return mapWriteErr(err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrPartCategoryNotFound
	}
	stored, err := r.GetByID(ctx, pc.ID)
	if err != nil {
		return err
	}
	*pc = *stored
	return nil
}

// Delete removes a category (and, by cascade, its options) and returns the
// deleted row.
func (r *PartCategoryRepo) Delete(ctx context.Context, id uint64) (*model.PartCategory, error) {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, err
	}
	defer func() { _ = tx.Rollback() }()

	pc, err := scanPartCategory(tx.QueryRowContext(ctx, selectPartCategory+" WHERE id = ? FOR UPDATE", id))
	if err != nil {
		return nil, notFound(err, ErrPartCategoryNotFound)
	}
	if _, err := tx.ExecContext(ctx, "DELETE FROM part_categories WHERE id = ?", id); err != nil {
		return nil, mapWriteErr(err)
	}
	if err := tx.Commit(); err != nil {
		return nil, err
	}
	return pc, nil
}
