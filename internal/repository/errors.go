// Package repository defines the MySQL-backed stores for admins and the
// product catalog together with the sentinel errors handlers map onto HTTP
// status codes. ErrConflict signals an integrity violation (duplicate key or
// a dangling foreign key) and translates to 409; the *NotFound values
// translate to 404.
package repository

import (
	"database/sql"
	"errors"

	"github.com/go-sql-driver/mysql"
)

// ErrConflict is returned when a write violates a uniqueness or foreign key
// constraint. The statement has been rolled back by the server.
var ErrConflict = errors.New("conflict")

var (
	ErrAdminNotFound        = errors.New("admin not found")
	ErrProductTypeNotFound  = errors.New("product type not found")
	ErrPartCategoryNotFound = errors.New("part category not found")
	ErrPartOptionNotFound   = errors.New("part option not found")
)

// MySQL server error numbers that indicate an integrity violation.
const (
	erDupEntry         = 1062
	erRowIsReferenced  = 1451
	erNoReferencedRow  = 1452
	erRowIsReferenced2 = 1217
	erNoReferencedRow2 = 1216
)

// mapWriteErr converts integrity violations reported by the driver into
// ErrConflict and leaves every other error untouched.
func mapWriteErr(err error) error {
	var me *mysql.MySQLError
	if errors.As(err, &me) {
		switch me.Number {
		case erDupEntry, erRowIsReferenced, erNoReferencedRow, erRowIsReferenced2, erNoReferencedRow2:
			return ErrConflict
		}
	}
	return err
}

// notFound swaps sql.ErrNoRows for the given sentinel.
func notFound(err, sentinel error) error {
	if errors.Is(err, sql.ErrNoRows) {
		return sentinel
	}
	return err
}

// rowScanner is satisfied by both *sql.Row and *sql.Rows.
type rowScanner interface {
	Scan(dest ...any) error
}
