package repository

import (
	"context"
	"database/sql"

	"github.com/iliyamo/bike-catalog-admin/internal/model"
)

const selectPartOption = `SELECT id, part_category_id, name, base_price, is_in_stock, created_at, updated_at
	FROM part_options`

// PartOptionRepo encapsulates all queries against part_options.
type PartOptionRepo struct {
	db *sql.DB
}

func NewPartOptionRepo(db *sql.DB) *PartOptionRepo {
	return &PartOptionRepo{db: db}
}

func scanPartOption(s rowScanner) (*model.PartOption, error) {
	var po model.PartOption
	if err := s.Scan(&po.ID, &po.PartCategoryID, &po.Name, &po.BasePrice, &po.IsInStock, &po.CreatedAt, &po.UpdatedAt); err != nil {
		return nil, err
	}
	return &po, nil
}

// Create inserts po and reloads it with its generated id and timestamps.
func (r *PartOptionRepo) Create(ctx context.Context, po *model.PartOption) error {
	res, err := r.db.ExecContext(ctx,
		"INSERT INTO part_options (part_category_id, name, base_price, is_in_stock) VALUES (?, ?, ?, ?)",
		po.PartCategoryID, po.Name, po.BasePrice, po.IsInStock)
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
	*po = *stored
	return nil
}

func (r *PartOptionRepo) GetByID(ctx context.Context, id uint64) (*model.PartOption, error) {
	po, err := scanPartOption(r.db.QueryRowContext(ctx, selectPartOption+" WHERE id = ?", id))
	if err != nil {
		return nil, notFound(err, ErrPartOptionNotFound)
	}
	return po, nil
}

// ListByCategory returns a page of options for one category ordered by name.
func (r *PartOptionRepo) ListByCategory(ctx context.Context, partCategoryID uint64, skip, limit int) ([]*model.PartOption, error) {
	rows, err := r.db.QueryContext(ctx,
		selectPartOption+" WHERE part_category_id = ? ORDER BY name, id LIMIT ? OFFSET ?",
		partCategoryID, limit, skip)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]*model.PartOption, 0)
	for rows.Next() {
		po, err := scanPartOption(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, po)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

// Update writes name, price and stock status. The owning category is fixed
// once an option exists.
func (r *PartOptionRepo) Update(ctx context.Context, po *model.PartOption) error {
	res, err := r.db.ExecContext(ctx,
		`UPDATE part_options
		 SET name = ?, base_price = ?, is_in_stock = ?, updated_at = CURRENT_TIMESTAMP
		 WHERE id = ?`,
		po.Name, po.BasePrice, po.IsInStock, po.ID)
	if err != nil {
		return mapWriteErr(err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrPartOptionNotFound
	}
	stored, err := r.GetByID(ctx, po.ID)
	if err != nil {
		return err
	}
	*po = *stored
	return nil
}

func (r *PartOptionRepo) Delete(ctx context.Context, id uint64) (*model.PartOption, error) {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, err
	}
	defer func() { _ = tx.Rollback() }()

	po, err := scanPartOption(tx.QueryRowContext(ctx, selectPartOption+" WHERE id = ? FOR UPDATE", id))
	if err != nil {
		return nil, notFound(err, ErrPartOptionNotFound)
	}
	if _, err := tx.ExecContext(ctx, "DELETE FROM part_options WHERE id = ?", id); err != nil {
		return nil, mapWriteErr(err)
	}
	if err := tx.Commit(); err != nil {
		return nil, err
	}
	return po, nil
}
