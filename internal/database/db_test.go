package database

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/go-sql-driver/mysql"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNormalizeDSN(t *testing.T) {
	dsn, err := NormalizeDSN("user:pw@tcp(localhost:3306)/catalog")
	require.NoError(t, err)

	cfg, err := mysql.ParseDSN(dsn)
	require.NoError(t, err)
	assert.True(t, cfg.ParseTime)
	assert.True(t, cfg.ClientFoundRows)
	assert.Equal(t, time.UTC, cfg.Loc)
	assert.Equal(t, "catalog", cfg.DBName)
}

func TestNormalizeDSN_KeepsOtherParams(t *testing.T) {
	dsn, err := NormalizeDSN("user:pw@tcp(localhost:3306)/catalog?parseTime=false&timeout=3s")
	require.NoError(t, err)
	cfg, err := mysql.ParseDSN(dsn)
	require.NoError(t, err)
	assert.True(t, cfg.ParseTime)
	assert.Equal(t, 3*time.Second, cfg.Timeout)
}

func TestNormalizeDSN_Invalid(t *testing.T) {
	_, err := NormalizeDSN("user:pw@tcp(localhost:3306)catalog")
	assert.Error(t, err)
}

func TestStatements(t *testing.T) {
	stmts := Statements()
	require.Len(t, stmts, 4)
	for i, table := range []string{"admin_users", "product_types", "part_categories", "part_options"} {
		assert.True(t, strings.HasPrefix(stmts[i], "CREATE TABLE IF NOT EXISTS "+table), stmts[i])
	}
}

func TestMigrate(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	for range Statements() {
		mock.ExpectExec("CREATE TABLE IF NOT EXISTS").WillReturnResult(sqlmock.NewResult(0, 0))
	}
	require.NoError(t, Migrate(context.Background(), db))
	assert.NoError(t, mock.ExpectationsWereMet())
}
