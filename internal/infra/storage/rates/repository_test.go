package rates

import (
	"context"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-MovingService/pkg/dbmetrics"
)

func setupRepositoryTest(t *testing.T) (*Repository, sqlmock.Sqlmock) {
	t.Helper()

	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	return NewRepository(db), mock
}

func ratesRow(id, version int64, active bool, createdAt time.Time) *sqlmock.Rows {
	return sqlmock.NewRows(rateColumns).
		AddRow(id, version, 250.0, 5, 99.0, 2, 500.0, 300.0, 79.0, 99.0, 20.0, 0.5, 2, active, createdAt)
}

func TestRepository_GetActive(t *testing.T) {
	repo, mock := setupRepositoryTest(t)
	now := time.Date(2025, 9, 1, 0, 0, 0, 0, time.UTC)

	mock.ExpectQuery(`SELECT id, version, .* FROM rate_tables WHERE is_active = \$1 ORDER BY version DESC LIMIT 1$`).
		WithArgs(true).
		WillReturnRows(ratesRow(3, 2, true, now))

	rates, err := repo.GetActive(context.Background())
	require.NoError(t, err)

	assert.Equal(t, int64(2), rates.Version)
	assert.Equal(t, 250.0, rates.VolumeRate)
	assert.Equal(t, 5, rates.FreeDistanceThreshold)
	assert.True(t, rates.IsActive)
	assert.Equal(t, now, rates.CreatedAt)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRepository_GetActive_NotFound(t *testing.T) {
	repo, mock := setupRepositoryTest(t)

	mock.ExpectQuery(`SELECT .* FROM rate_tables`).
		WillReturnRows(sqlmock.NewRows(rateColumns))

	_, err := repo.GetActive(context.Background())
	assert.ErrorIs(t, err, ErrRatesNotFound)
}

func TestRepository_PublishVersionInTransaction(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	repo := NewRepository(db)
	now := time.Date(2025, 9, 2, 0, 0, 0, 0, time.UTC)

	mock.ExpectBegin()
	mock.ExpectQuery(`SELECT .* FROM rate_tables WHERE is_active = \$1 ORDER BY version DESC LIMIT 1 FOR UPDATE`).
		WithArgs(true).
		WillReturnRows(ratesRow(3, 2, true, now))
	mock.ExpectExec(`UPDATE rate_tables SET is_active = \$1 WHERE is_active = \$2`).
		WithArgs(false, true).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectQuery(`INSERT INTO rate_tables \(version,volume_rate,.*,is_active\) VALUES .* RETURNING id, created_at`).
		WithArgs(int64(3), 260.0, 5, 99.0, 2, 500.0, 300.0, 79.0, 99.0, 20.0, 0.5, 2, true).
		WillReturnRows(sqlmock.NewRows([]string{"id", "created_at"}).AddRow(int64(4), now))
	mock.ExpectCommit()

	tx, err := db.Begin()
	require.NoError(t, err)
	ctx := dbmetrics.WithTx(context.Background(), tx)

	active, err := repo.GetActive(ctx)
	require.NoError(t, err)
	require.NoError(t, repo.DeactivateAll(ctx))

	next := *active
	next.Version = active.Version + 1
	next.VolumeRate = 260
	created, err := repo.Create(ctx, &next)
	require.NoError(t, err)
	require.NoError(t, tx.Commit())

	assert.Equal(t, int64(4), created.ID)
	assert.Equal(t, int64(3), created.Version)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRepository_GetHistory(t *testing.T) {
	repo, mock := setupRepositoryTest(t)
	now := time.Date(2025, 9, 1, 0, 0, 0, 0, time.UTC)

	rows := sqlmock.NewRows(rateColumns).
		AddRow(int64(2), int64(2), 260.0, 5, 99.0, 2, 500.0, 300.0, 79.0, 99.0, 20.0, 0.5, 2, true, now).
		AddRow(int64(1), int64(1), 240.0, 5, 99.0, 2, 500.0, 300.0, 79.0, 99.0, 20.0, 0.5, 2, false, now)

	mock.ExpectQuery(`SELECT .* FROM rate_tables ORDER BY version DESC`).WillReturnRows(rows)

	history, err := repo.GetHistory(context.Background())
	require.NoError(t, err)

	require.Len(t, history, 2)
	assert.Equal(t, int64(2), history[0].Version)
	assert.False(t, history[1].IsActive)
	assert.NoError(t, mock.ExpectationsWereMet())
}
