package postgres

import (
	"bytes"
	"context"
	"database/sql"
	"io"
	"log/slog"
	"testing"
	"time"

	"manero/config"
	"manero/internal/errors"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newPingMock(t *testing.T) (*sql.DB, sqlmock.Sqlmock) {
	t.Helper()

	sqlDB, mock, err := sqlmock.New(sqlmock.MonitorPingsOption(true))
	require.NoError(t, err)
	t.Cleanup(func() { _ = sqlDB.Close() })

	return sqlDB, mock
}

func TestNewStartupOptions(t *testing.T) {
	opts := newStartupOptions(&config.Config{})
	assert.False(t, opts.autoMigrate)
	assert.Equal(t, defaultConnectAttempts, opts.connectAttempts)
	assert.Equal(t, defaultPoolWaitThreshold, opts.poolWaitThreshold)

	opts = newStartupOptions(&config.Config{Database: &config.DatabaseConfig{
		AutoMigrate:     true,
		ConnectAttempts: 4,
		ConnectBackoff:  250 * time.Millisecond,
	}})
	assert.True(t, opts.autoMigrate)
	assert.Equal(t, 4, opts.connectAttempts)
	assert.Equal(t, 250*time.Millisecond, opts.connectBackoff)
}

func TestWaitForDatabase_RetriesUntilReady(t *testing.T) {
	sqlDB, mock := newPingMock(t)
	mock.ExpectPing().WillReturnError(errors.New("connection refused"))
	mock.ExpectPing().WillReturnError(errors.New("the database system is starting up"))
	mock.ExpectPing()

	var logs bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&logs, nil))

	err := waitForDatabase(context.Background(), logger, sqlDB, startupOptions{connectAttempts: 3, connectBackoff: time.Millisecond})

	require.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
	assert.Equal(t, 2, bytes.Count(logs.Bytes(), []byte("PostgreSQL not ready")))
}

func TestWaitForDatabase_GivesUp(t *testing.T) {
	sqlDB, mock := newPingMock(t)
	mock.ExpectPing().WillReturnError(errors.New("connection refused"))
	mock.ExpectPing().WillReturnError(errors.New("connection refused"))

	err := waitForDatabase(context.Background(), slog.New(slog.NewTextHandler(io.Discard, nil)), sqlDB,
		startupOptions{connectAttempts: 2, connectBackoff: time.Millisecond})

	require.Error(t, err)
	assert.Contains(t, err.Error(), "after 2 attempts")
	assert.Contains(t, err.Error(), "connection refused")
}

func TestWaitForDatabase_StopsOnCancel(t *testing.T) {
	sqlDB, mock := newPingMock(t)
	mock.ExpectPing().WillReturnError(errors.New("connection refused"))

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := waitForDatabase(ctx, slog.New(slog.NewTextHandler(io.Discard, nil)), sqlDB,
		startupOptions{connectAttempts: 5, connectBackoff: time.Hour})

	require.Error(t, err)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestLogPoolWaits(t *testing.T) {
	tests := []struct {
		name      string
		stats     sql.DBStats
		wantLevel string
	}{
		{name: "no waits", stats: sql.DBStats{}},
		{name: "short waits", stats: sql.DBStats{WaitCount: 10, WaitDuration: 10 * time.Millisecond}, wantLevel: "level=INFO"},
		{name: "long waits", stats: sql.DBStats{WaitCount: 2, WaitDuration: 400 * time.Millisecond}, wantLevel: "level=WARN"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var logs bytes.Buffer
			logPoolWaits(slog.New(slog.NewTextHandler(&logs, nil)), tt.stats, 50*time.Millisecond)

			if tt.wantLevel == "" {
				assert.Empty(t, logs.String())

				return
			}
			assert.Contains(t, logs.String(), tt.wantLevel)
			assert.Contains(t, logs.String(), "PostgreSQL pool waits")
		})
	}
}
