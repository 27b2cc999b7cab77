package repository

import (
	"context"
	"database/sql"

	"github.com/iliyamo/bike-catalog-admin/internal/model"
)

const selectProductType = "SELECT id, name, description, created_at, updated_at FROM product_types"

// ProductTypeRepo encapsulates all queries against product_types.
type ProductTypeRepo struct {
	db *sql.DB
}

// NewProductTypeRepo constructs a ProductTypeRepo with the provided DB handle.
func NewProductTypeRepo(db *sql.DB) *ProductTypeRepo {
	return &ProductTypeRepo{db: db}
}

func scanProductType(s rowScanner) (*model.ProductType, error) {
	var (
		pt   model.ProductType
		desc sql.NullString
	)
	if err := s.Scan(&pt.ID, &pt.Name, &desc, &pt.CreatedAt, &pt.UpdatedAt); err != nil {
		return nil, err
	}
	if desc.Valid {
		pt.Description = &desc.String
	}
	return &pt, nil
}

// Create inserts pt and then reloads it so the caller receives the generated
// id and timestamps. A duplicate name yields ErrConflict.
func (r *ProductTypeRepo) Create(ctx context.Context, pt *model.ProductType) error {
	res, err := r.db.ExecContext(ctx,
		"INSERT INTO product_types (name, description) VALUES (?, ?)",
		pt.Name, pt.Description)
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
	*pt = *stored
	return nil
}

// GetByID returns ErrProductTypeNotFound when no row matches.
func (r *ProductTypeRepo) GetByID(ctx context.Context, id uint64) (*model.ProductType, error) {
	pt, err := scanProductType(r.db.QueryRowContext(ctx, selectProductType+" WHERE id = ?", id))
	if err != nil {
		return nil, notFound(err, ErrProductTypeNotFound)
	}
	return pt, nil
}

// List returns a page of product types ordered by id.
func (r *ProductTypeRepo) List(ctx context.Context, skip, limit int) ([]*model.ProductType, error) {
	rows, err := r.db.QueryContext(ctx, selectProductType+" ORDER BY id LIMIT ? OFFSET ?", limit, skip)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]*model.ProductType, 0)
	for rows.Next() {
		pt, err := scanProductType(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, pt)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

// Update writes every mutable column of pt and reloads it. It returns
// ErrProductTypeNotFound when the row is gone and ErrConflict when the new
// name is taken.
func (r *ProductTypeRepo) Update(ctx context.Context, pt *model.ProductType) error {
	res, err := r.db.ExecContext(ctx,
		`UPDATE product_types
		 SET name = ?, description = ?, updated_at = CURRENT_TIMESTAMP
		 WHERE id = ?`,
		pt.Name, pt.Description, pt.ID)
	if err != nil {
		return mapWriteErr(err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrProductTypeNotFound
	}
	stored, err := r.GetByID(ctx, pt.ID)
	if err != nil {
		return err
	}
	*pt = *stored
	return nil
}

// Delete removes a product type and returns the row as it was. Part
// categories and their options go with it through ON DELETE CASCADE.
func (r *ProductTypeRepo) Delete(ctx context.Context, id uint64) (*model.ProductType, error) {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, err
	}
	defer func() { _ = tx.Rollback() }()

	pt, err := scanProductType(tx.QueryRowContext(ctx, selectProductType+" WHERE id = ? FOR UPDATE", id))
	if err != nil {
		return nil, notFound(err, ErrProductTypeNotFound)
	}
	if _, err := tx.ExecContext(ctx, "DELETE FROM product_types WHERE id = ?", id); err != nil {
		return nil, mapWriteErr(err)
	}
	if err := tx.Commit(); err != nil {
		return nil, err
	}
	return pt, nil
}
