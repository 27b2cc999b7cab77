package repository

import (
	"context"
	"database/sql"

	"github.com/iliyamo/bike-catalog-admin/internal/model"
)

const selectAdmin = "SELECT id, username, password_hash, created_at, updated_at FROM admin_users"

// AdminRepo reads and provisions admin accounts.
type AdminRepo struct{ DB *sql.DB }

func NewAdminRepo(db *sql.DB) *AdminRepo { return &AdminRepo{DB: db} }

func scanAdmin(s rowScanner) (*model.AdminUser, error) {
	var a model.AdminUser
	if err := s.Scan(&a.ID, &a.Username, &a.PasswordHash, &a.CreatedAt, &a.UpdatedAt); err != nil {
		return nil, err
	}
	return &a, nil
}

// GetByUsername fetches an admin by exact username. The column uses a
// binary collation so the match is case-sensitive.
func (r *AdminRepo) GetByUsername(ctx context.Context, username string) (*model.AdminUser, error) {
	a, err := scanAdmin(r.DB.QueryRowContext(ctx, selectAdmin+" WHERE username = ? LIMIT 1", username))
	if err != nil {
		return nil, notFound(err, ErrAdminNotFound)
	}
	return a, nil
}

// GetByID fetches an admin by id.
func (r *AdminRepo) GetByID(ctx context.Context, id uint64) (*model.AdminUser, error) {
	a, err := scanAdmin(r.DB.QueryRowContext(ctx, selectAdmin+" WHERE id = ? LIMIT 1", id))
	if err != nil {
		return nil, notFound(err, ErrAdminNotFound)
	}
	return a, nil
}

// Create inserts an admin with an already hashed password and returns the
// stored row. A taken username yields ErrConflict.
func (r *AdminRepo) Create(ctx context.Context, username, passwordHash string) (*model.AdminUser, error) {
	res, err := r.DB.ExecContext(ctx,
		"INSERT INTO admin_users (username, password_hash) VALUES (?, ?)",
		username, passwordHash)
	if err != nil {
		return nil, mapWriteErr(err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return nil, err
	}
	return r.GetByID(ctx, uint64(id))
}

// UpdatePassword replaces the stored hash for username.
func (r *AdminRepo) UpdatePassword(ctx context.Context, username, passwordHash string) error {
	res, err := r.DB.ExecContext(ctx,
		"UPDATE admin_users SET password_hash = ?, updated_at = CURRENT_TIMESTAMP WHERE username = ?",
		passwordHash, username)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrAdminNotFound
	}
	return nil
}

// List returns every admin ordered by id.
func (r *AdminRepo) List(ctx context.Context) ([]*model.AdminUser, error) {
	rows, err := r.DB.QueryContext(ctx, selectAdmin+" ORDER BY id")
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []*model.AdminUser
	for rows.Next() {
		a, err := scanAdmin(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, a)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}
