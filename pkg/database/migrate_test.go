package database

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"regexp"
	"testing"
	"testing/fstest"

	pgxmock "github.com/pashagolub/pgxmock/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var (
	createTableRe = regexp.QuoteMeta("CREATE TABLE IF NOT EXISTS schema_migrations")
	existsRe      = regexp.QuoteMeta("SELECT EXISTS(SELECT 1 FROM schema_migrations WHERE version = $1)")
	recordRe      = regexp.QuoteMeta("INSERT INTO schema_migrations (version) VALUES ($1)")
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func testMigrations() fstest.MapFS {
	return fstest.MapFS{
		"000002_products.up.sql": {Data: []byte("CREATE TABLE products (id TEXT)")},
		"000001_brands.up.sql":   {Data: []byte("CREATE TABLE brands (id TEXT)")},
		"000001_brands.down.sql": {Data: []byte("DROP TABLE brands")},
		"README.md":              {Data: []byte("not a migration")},
	}
}

func TestPendingFiles_SortedUpOnly(t *testing.T) {
	names, err := pendingFiles(testMigrations())
	require.NoError(t, err)
	assert.Equal(t, []string{"000001_brands.up.sql", "000002_products.up.sql"}, names)
}

func TestRunMigrations_AppliesNewAndSkipsApplied(t *testing.T) {
	mock, err := NewMockPool()
	require.NoError(t, err)
	defer mock.Close()

	mock.ExpectExec(createTableRe).WillReturnResult(pgxmock.NewResult("CREATE", 0))

	mock.ExpectQuery(existsRe).WithArgs("000001_brands.up.sql").
		WillReturnRows(pgxmock.NewRows([]string{"exists"}).AddRow(true))

	mock.ExpectQuery(existsRe).WithArgs("000002_products.up.sql").
		WillReturnRows(pgxmock.NewRows([]string{"exists"}).AddRow(false))
	mock.ExpectBegin()
	mock.ExpectExec(regexp.QuoteMeta("CREATE TABLE products (id TEXT)")).
		WillReturnResult(pgxmock.NewResult("CREATE", 0))
	mock.ExpectExec(recordRe).WithArgs("000002_products.up.sql").
		WillReturnResult(pgxmock.NewResult("INSERT", 1))
	mock.ExpectCommit()

	err = RunMigrations(context.Background(), mock, testMigrations(), discardLogger())
	require.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRunMigrations_SQLErrorRollsBack(t *testing.T) {
	mock, err := NewMockPool()
	require.NoError(t, err)
	defer mock.Close()

	fsys := fstest.MapFS{"000001_bad.up.sql": {Data: []byte("CREATE TABLE oops (")}}

	mock.ExpectExec(createTableRe).WillReturnResult(pgxmock.NewResult("CREATE", 0))
	mock.ExpectQuery(existsRe).WithArgs("000001_bad.up.sql").
		WillReturnRows(pgxmock.NewRows([]string{"exists"}).AddRow(false))
	mock.ExpectBegin()
	mock.ExpectExec(regexp.QuoteMeta("CREATE TABLE oops (")).
		WillReturnError(errors.New("syntax error at end of input"))
	mock.ExpectRollback()

	err = RunMigrations(context.Background(), mock, fsys, discardLogger())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "execute migration 000001_bad.up.sql")
	assert.NoError(t, mock.ExpectationsWereMet())
}
