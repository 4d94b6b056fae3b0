package db

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/videoteka/videoteka-backend/pkg/config"
)

func newTestClient(t *testing.T) *Client {
	t.Helper()
	conn, err := gorm.Open(sqlite.Open("file::memory:?cache=shared"), &gorm.Config{})
	require.NoError(t, err)
	return &Client{conn: conn, driver: config.DriverSQLite}
}

func TestNewRejectsUnknownDriver(t *testing.T) {
	_, err := New(context.Background(), config.DBConfig{Driver: "oracle", URL: "x"}, nil)
	require.Error(t, err)
}

func TestNewOpensSQLiteInMemory(t *testing.T) {
	client, err := New(context.Background(), config.DBConfig{
		Driver: config.DriverSQLite,
		URL:    "file::memory:?cache=shared",
	}, nil)
	require.NoError(t, err)
	defer client.Close()

	require.NoError(t, client.Ping(context.Background()))
	require.Equal(t, config.DriverSQLite, client.Driver())
}

func TestWithTxCommits(t *testing.T) {
	client := newTestClient(t)
	defer client.Close()

	require.NoError(t, client.DB().Exec(`CREATE TABLE t (id INTEGER PRIMARY KEY, v TEXT)`).Error)

	err := client.WithTx(context.Background(), func(tx *gorm.DB) error {
		return tx.Exec(`INSERT INTO t (v) VALUES ('a')`).Error
	})
	require.NoError(t, err)

	var count int64
	require.NoError(t, client.DB().Raw(`SELECT COUNT(*) FROM t`).Scan(&count).Error)
	require.EqualValues(t, 1, count)
}

func TestWithTxRollsBackOnError(t *testing.T) {
	client := newTestClient(t)
	defer client.Close()

	require.NoError(t, client.DB().Exec(`CREATE TABLE t2 (id INTEGER PRIMARY KEY, v TEXT)`).Error)

	sentinel := errors.New("nope")
	err := client.WithTx(context.Background(), func(tx *gorm.DB) error {
		if err := tx.Exec(`INSERT INTO t2 (v) VALUES ('a')`).Error; err != nil {
			return err
		}
		return sentinel
	})
	require.ErrorIs(t, err, sentinel)

	var count int64
	require.NoError(t, client.DB().Raw(`SELECT COUNT(*) FROM t2`).Scan(&count).Error)
	require.EqualValues(t, 0, count)
}

func TestIsUniqueViolationSQLite(t *testing.T) {
	client := newTestClient(t)
	defer client.Close()

	require.NoError(t, client.DB().Exec(`CREATE TABLE uniq (v TEXT UNIQUE)`).Error)
	require.NoError(t, client.DB().Exec(`INSERT INTO uniq (v) VALUES ('x')`).Error)

	err := client.DB().Exec(`INSERT INTO uniq (v) VALUES ('x')`).Error
	require.Error(t, err)
	require.True(t, IsUniqueViolation(err))
	require.False(t, IsUniqueViolation(errors.New("something else")))
	require.False(t, IsUniqueViolation(nil))
}
