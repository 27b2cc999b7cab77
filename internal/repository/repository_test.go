package repository

import (
	"context"
	"database/sql"
	"errors"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/go-sql-driver/mysql"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iliyamo/bike-catalog-admin/internal/model"
)

var ts = time.Date(2024, 5, 1, 10, 0, 0, 0, time.UTC)

func newMock(t *testing.T) (*sql.DB, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() {
		assert.NoError(t, mock.ExpectationsWereMet())
		db.Close()
	})
	return db, mock
}

func q(s string) string { return regexp.QuoteMeta(s) }

func TestMapWriteErr(t *testing.T) {
	for _, n := range []uint16{1062, 1451, 1452, 1216, 1217} {
		assert.ErrorIs(t, mapWriteErr(&mysql.MySQLError{Number: n}), ErrConflict, n)
	}
	other := &mysql.MySQLError{Number: 1146}
	assert.Same(t, other, mapWriteErr(other))

	plain := errors.New("boom")
	assert.Same(t, plain, mapWriteErr(plain))
}

func TestAdminRepo_GetByUsername(t *testing.T) {
	db, mock := newMock(t)
	repo := NewAdminRepo(db)

	mock.ExpectQuery(q("FROM admin_users WHERE username = ?")).
		WithArgs("admin").
		WillReturnRows(sqlmock.NewRows([]string{"id", "username", "password_hash", "created_at", "updated_at"}).
			AddRow(1, "admin", "$2a$10$hash", ts, ts))

	a, err := repo.GetByUsername(context.Background(), "admin")
	require.NoError(t, err)
	assert.Equal(t, uint64(1), a.ID)
	assert.Equal(t, "$2a$10$hash", a.PasswordHash)

	mock.ExpectQuery(q("FROM admin_users WHERE username = ?")).
		WithArgs("ghost").
		WillReturnError(sql.ErrNoRows)

	_, err = repo.GetByUsername(context.Background(), "ghost")
	assert.ErrorIs(t, err, ErrAdminNotFound)
}

func TestAdminRepo_Create(t *testing.T) {
	db, mock := newMock(t)
	repo := NewAdminRepo(db)

	mock.ExpectExec(q("INSERT INTO admin_users (username, password_hash)")).
		WithArgs("admin", "hash").
		WillReturnResult(sqlmock.NewResult(3, 1))
	mock.ExpectQuery(q("FROM admin_users WHERE id = ?")).
		WithArgs(3).
		WillReturnRows(sqlmock.NewRows([]string{"id", "username", "password_hash", "created_at", "updated_at"}).
			AddRow(3, "admin", "hash", ts, ts))

	a, err := repo.Create(context.Background(), "admin", "hash")
	require.NoError(t, err)
	assert.Equal(t, uint64(3), a.ID)

	mock.ExpectExec(q("INSERT INTO admin_users")).
		WillReturnError(&mysql.MySQLError{Number: 1062, Message: "Duplicate entry 'admin'"})
	_, err = repo.Create(context.Background(), "admin", "hash")
	assert.ErrorIs(t, err, ErrConflict)
}

func TestAdminRepo_UpdatePassword(t *testing.T) {
	db, mock := newMock(t)
	repo := NewAdminRepo(db)

	mock.ExpectExec(q("UPDATE admin_users SET password_hash = ?")).
		WithArgs("new", "admin").
		WillReturnResult(sqlmock.NewResult(0, 1))
	require.NoError(t, repo.UpdatePassword(context.Background(), "admin", "new"))

	mock.ExpectExec(q("UPDATE admin_users SET password_hash = ?")).
		WithArgs("new", "ghost").
		WillReturnResult(sqlmock.NewResult(0, 0))
	assert.ErrorIs(t, repo.UpdatePassword(context.Background(), "ghost", "new"), ErrAdminNotFound)
}

var productTypeCols = []string{"id", "name", "description", "created_at", "updated_at"}

func TestProductTypeRepo_Create(t *testing.T) {
	db, mock := newMock(t)
	repo := NewProductTypeRepo(db)

	mock.ExpectExec(q("INSERT INTO product_types (name, description) VALUES (?, ?)")).
		WithArgs("Bicycles", nil).
		WillReturnResult(sqlmock.NewResult(5, 1))
	mock.ExpectQuery(q("FROM product_types WHERE id = ?")).
		WithArgs(5).
		WillReturnRows(sqlmock.NewRows(productTypeCols).AddRow(5, "Bicycles", nil, ts, ts))

	pt := &model.ProductType{Name: "Bicycles"}
	require.NoError(t, repo.Create(context.Background(), pt))
	assert.Equal(t, uint64(5), pt.ID)
	assert.Nil(t, pt.Description)
	assert.Equal(t, ts, pt.CreatedAt)
}

func TestProductTypeRepo_CreateDuplicate(t *testing.T) {
	db, mock := newMock(t)
	repo := NewProductTypeRepo(db)

	mock.ExpectExec(q("INSERT INTO product_types")).
		WillReturnError(&mysql.MySQLError{Number: 1062})

	err := repo.Create(context.Background(), &model.ProductType{Name: "Bicycles"})
	assert.ErrorIs(t, err, ErrConflict)
}

func TestProductTypeRepo_List(t *testing.T) {
	db, mock := newMock(t)
	repo := NewProductTypeRepo(db)

	mock.ExpectQuery(q("FROM product_types ORDER BY id LIMIT ? OFFSET ?")).
		WithArgs(10, 20).
		WillReturnRows(sqlmock.NewRows(productTypeCols).
			AddRow(21, "Bicycles", "Two wheels", ts, ts).
			AddRow(22, "Skis", nil, ts, ts))

	items, err := repo.List(context.Background(), 20, 10)
	require.NoError(t, err)
	require.Len(t, items, 2)
	require.NotNil(t, items[0].Description)
	assert.Equal(t, "Two wheels", *items[0].Description)
	assert.Nil(t, items[1].Description)

	mock.ExpectQuery(q("FROM product_types ORDER BY id")).
		WillReturnRows(sqlmock.NewRows(productTypeCols))
	items, err = repo.List(context.Background(), 0, 100)
	require.NoError(t, err)
	assert.NotNil(t, items)
	assert.Empty(t, items)
}

func TestProductTypeRepo_UpdateMissing(t *testing.T) {
	db, mock := newMock(t)
	repo := NewProductTypeRepo(db)

	mock.ExpectExec(q("UPDATE product_types")).
		WithArgs("Bicycles", nil, 9).
		WillReturnResult(sqlmock.NewResult(0, 0))

	err := repo.Update(context.Background(), &model.ProductType{ID: 9, Name: "Bicycles"})
	assert.ErrorIs(t, err, ErrProductTypeNotFound)
}

func TestProductTypeRepo_Delete(t *testing.T) {
	db, mock := newMock(t)
	repo := NewProductTypeRepo(db)

	mock.ExpectBegin()
	mock.ExpectQuery(q("FROM product_types WHERE id = ? FOR UPDATE")).
		WithArgs(4).
		WillReturnRows(sqlmock.NewRows(productTypeCols).AddRow(4, "Bicycles", nil, ts, ts))
	mock.ExpectExec(q("DELETE FROM product_types WHERE id = ?")).
		WithArgs(4).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	pt, err := repo.Delete(context.Background(), 4)
	require.NoError(t, err)
	assert.Equal(t, "Bicycles", pt.Name)
}

func TestProductTypeRepo_DeleteMissingRollsBack(t *testing.T) {
	db, mock := newMock(t)
	repo := NewProductTypeRepo(db)

	mock.ExpectBegin()
	mock.ExpectQuery(q("FOR UPDATE")).WithArgs(4).WillReturnError(sql.ErrNoRows)
	mock.ExpectRollback()

	_, err := repo.Delete(context.Background(), 4)
	assert.ErrorIs(t, err, ErrProductTypeNotFound)
}

var partCategoryCols = []string{"id", "product_type_id", "name", "display_order", "created_at", "updated_at"}

func TestPartCategoryRepo_ListByProductType(t *testing.T) {
	db, mock := newMock(t)
	repo := NewPartCategoryRepo(db)

	mock.ExpectQuery(q("WHERE product_type_id = ? ORDER BY display_order, id LIMIT ? OFFSET ?")).
		WithArgs(1, 100, 0).
		WillReturnRows(sqlmock.NewRows(partCategoryCols).
			AddRow(2, 1, "Frame", 1, ts, ts).
			AddRow(3, 1, "Wheels", 2, ts, ts))

	items, err := repo.ListByProductType(context.Background(), 1, 0, 100)
	require.NoError(t, err)
	require.Len(t, items, 2)
	assert.Equal(t, "Frame", items[0].Name)
	assert.Equal(t, 2, items[1].DisplayOrder)
}

func TestPartCategoryRepo_CreateDanglingProductType(t *testing.T) {
	db, mock := newMock(t)
	repo := NewPartCategoryRepo(db)

	mock.ExpectExec(q("INSERT INTO part_categories")).
		WillReturnError(&mysql.MySQLError{Number: 1452})

	err := repo.Create(context.Background(), &model.PartCategory{Name: "Frame", ProductTypeID: 99})
	assert.ErrorIs(t, err, ErrConflict)
}

func TestPartCategoryRepo_GetByIDMissing(t *testing.T) {
	db, mock := newMock(t)
	repo := NewPartCategoryRepo(db)

	mock.ExpectQuery(q("FROM part_categories WHERE id = ?")).WithArgs(8).WillReturnError(sql.ErrNoRows)

	_, err := repo.GetByID(context.Background(), 8)
	assert.ErrorIs(t, err, ErrPartCategoryNotFound)
}

var partOptionCols = []string{"id", "part_category_id", "name", "base_price", "is_in_stock", "created_at", "updated_at"}

func TestPartOptionRepo_CreateAndScan(t *testing.T) {
	db, mock := newMock(t)
	repo := NewPartOptionRepo(db)

	mock.ExpectExec(q("INSERT INTO part_options (part_category_id, name, base_price, is_in_stock)")).
		WithArgs(2, "Steel", sqlmock.AnyArg(), true).
		WillReturnResult(sqlmock.NewResult(7, 1))
	mock.ExpectQuery(q("FROM part_options WHERE id = ?")).
		WithArgs(7).
		WillReturnRows(sqlmock.NewRows(partOptionCols).AddRow(7, 2, "Steel", "12.50", true, ts, ts))

	po := &model.PartOption{PartCategoryID: 2, Name: "Steel", BasePrice: decimal.RequireFromString("12.5"), IsInStock: true}
	require.NoError(t, repo.Create(context.Background(), po))
	assert.Equal(t, uint64(7), po.ID)
	assert.True(t, po.BasePrice.Equal(decimal.RequireFromString("12.50")))
	assert.True(t, po.IsInStock)
}

func TestPartOptionRepo_ListByCategory(t *testing.T) {
	db, mock := newMock(t)
	repo := NewPartOptionRepo(db)

	mock.ExpectQuery(q("WHERE part_category_id = ? ORDER BY name, id LIMIT ? OFFSET ?")).
		WithArgs(2, 5, 0).
		WillReturnRows(sqlmock.NewRows(partOptionCols).
			AddRow(8, 2, "Carbon", "300.00", false, ts, ts))

	items, err := repo.ListByCategory(context.Background(), 2, 0, 5)
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.False(t, items[0].IsInStock)
	assert.Equal(t, "300.00", items[0].BasePrice.StringFixed(2))
}

func TestPartOptionRepo_Delete(t *testing.T) {
	db, mock := newMock(t)
	repo := NewPartOptionRepo(db)

	mock.ExpectBegin()
	mock.ExpectQuery(q("FROM part_options WHERE id = ? FOR UPDATE")).
		WithArgs(8).
		WillReturnRows(sqlmock.NewRows(partOptionCols).AddRow(8, 2, "Carbon", "300.00", false, ts, ts))
	mock.ExpectExec(q("DELETE FROM part_options WHERE id = ?")).
		WithArgs(8).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	po, err := repo.Delete(context.Background(), 8)
	require.NoError(t, err)
	assert.Equal(t, "Carbon", po.Name)
}

func TestPartCategoryRepo_Update(t *testing.T) {
	db, mock := newMock(t)
	repo := NewPartCategoryRepo(db)

	mock.ExpectExec(q("UPDATE part_categories")).
		WithArgs(1, "Frame", 3, 2).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectQuery(q("FROM part_categories WHERE id = ?")).
		WithArgs(2).
		WillReturnRows(sqlmock.NewRows(partCategoryCols).AddRow(2, 1, "Frame", 3, ts, ts))

	pc := &model.PartCategory{ID: 2, ProductTypeID: 1, Name: "Frame", DisplayOrder: 3}
	require.NoError(t, repo.Update(context.Background(), pc))
	assert.Equal(t, ts, pc.UpdatedAt)

	mock.ExpectExec(q("UPDATE part_categories")).
		WillReturnError(&mysql.MySQLError{Number: 1452})
	assert.ErrorIs(t, repo.Update(context.Background(), pc), ErrConflict)

	mock.ExpectExec(q("UPDATE part_categories")).
		WillReturnResult(sqlmock.NewResult(0, 0))
	assert.ErrorIs(t, repo.Update(context.Background(), pc), ErrPartCategoryNotFound)
}
