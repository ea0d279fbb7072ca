package booking

import (
	"context"
	"database/sql"
	"database/sql/driver"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-MovingService/internal/domain"
	"github.com/m04kA/SMC-MovingService/pkg/dbmetrics"
	"github.com/m04kA/SMC-MovingService/pkg/fieldcrypt"
	"github.com/m04kA/SMC-MovingService/pkg/ptr"
)

const testKey = "000102030405060708090a0b0c0d0e0f101112131415161718191a1b1c1d1e1f"

// setupRepositoryTest создает репозиторий поверх sqlmock
func setupRepositoryTest(t *testing.T, cipher FieldCipher) (*Repository, *sql.DB, sqlmock.Sqlmock) {
	t.Helper()

	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	return NewRepository(db, cipher), db, mock
}

func bookingRow(t *testing.T, cipher FieldCipher, id int64, status domain.BookingStatus) []driver.Value {
	t.Helper()

	from, err := cipher.Encrypt("Storgatan 1, Stockholm")
	require.NoError(t, err)
	to, err := cipher.Encrypt("Kungsgatan 5, Uppsala")
	require.NoError(t, err)

	created := time.Date(2025, 9, 1, 10, 0, 0, 0, time.UTC)
	return []driver.Value{
		id,
		"NF-1A2B3C4D",
		int64(7),
		"Anna Svensson",
		"anna@example.se",
		nil,
		time.Date(2025, 10, 15, 0, 0, 0, 0, time.UTC),
		"08:00:00",
		from,
		to,
		"10.50",
		[]byte(`{"parking_distance":10,"stairs_from":4,"materials":{"boxes":5}}`),
		[]byte(`{"volume_cost":2520,"parking_fee":495,"stairs_fee":500,"materials_cost":395,"subtotal":3910,"total":3910,"estimated_hours":6}`),
		int64(3),
		int64(3910),
		6,
		string(status),
		nil,
		nil,
		nil,
		created,
		created,
	}
}

func newRows(values ...[]driver.Value) *sqlmock.Rows {
	rows := sqlmock.NewRows(bookingColumns)
	for _, v := range values {
		rows.AddRow(v...)
	}
	return rows
}

func TestRepository_Create(t *testing.T) {
	repo, _, mock := setupRepositoryTest(t, fieldcrypt.Plain{})
	ctx := context.Background()

	movingDate := time.Date(2025, 10, 15, 0, 0, 0, 0, time.UTC)
	createdAt := time.Date(2025, 9, 1, 10, 0, 0, 0, time.UTC)

	booking := &domain.Booking{
		Reference:      "NF-1A2B3C4D",
		CustomerID:     7,
		CustomerName:   "Anna Svensson",
		CustomerEmail:  "anna@example.se",
		MovingDate:     movingDate,
		MoveTime:       "08:00",
		FromAddress:    "Storgatan 1",
		ToAddress:      "Kungsgatan 5",
		Move:           domain.MoveRequest{Volume: 10, ParkingDistance: 3},
		Breakdown:      domain.PriceBreakdown{VolumeCost: 2400, Subtotal: 2400, Total: 2400, EstimatedHours: 5, RateVersion: 2},
		RateVersion:    2,
		TotalPrice:     2400,
		EstimatedHours: 5,
		Status:         domain.StatusPending,
	}

	mock.ExpectQuery(`INSERT INTO bookings \(reference,customer_id,.*\) VALUES \(\$1,.*\$17\) RETURNING id, created_at, updated_at`).
		WithArgs(
			"NF-1A2B3C4D",
			int64(7),
			"Anna Svensson",
			"anna@example.se",
			nil,
			movingDate,
			"08:00",
			"Storgatan 1",
			"Kungsgatan 5",
			10.0,
			`{"parking_distance":3,"stairs_from":0,"stairs_to":0,"elevator_from":false,"elevator_to":false,"elevator_broken_from":false,"elevator_broken_to":false}`,
			sqlmock.AnyArg(),
			int64(2),
			int64(2400),
			5,
			"pending",
			nil,
		).
		WillReturnRows(sqlmock.NewRows([]string{"id", "created_at", "updated_at"}).AddRow(int64(42), createdAt, createdAt))

	created, err := repo.Create(ctx, booking)
	require.NoError(t, err)

	assert.Equal(t, int64(42), created.ID)
	assert.Equal(t, createdAt, created.CreatedAt)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRepository_Create_EncryptsAddresses(t *testing.T) {
	cipher, err := fieldcrypt.New(testKey)
	require.NoError(t, err)

	repo, _, mock := setupRepositoryTest(t, cipher)

	mock.ExpectQuery(`INSERT INTO bookings`).
		WithArgs(
			sqlmock.AnyArg(), sqlmock.AnyArg(), sqlmock.AnyArg(), sqlmock.AnyArg(), sqlmock.AnyArg(),
			sqlmock.AnyArg(), sqlmock.AnyArg(),
			encryptedArg{}, encryptedArg{},
			sqlmock.AnyArg(), sqlmock.AnyArg(), sqlmock.AnyArg(), sqlmock.AnyArg(), sqlmock.AnyArg(),
			sqlmock.AnyArg(), sqlmock.AnyArg(), sqlmock.AnyArg(),
		).
		WillReturnRows(sqlmock.NewRows([]string{"id", "created_at", "updated_at"}).AddRow(int64(1), time.Now(), time.Now()))

	_, err = repo.Create(context.Background(), &domain.Booking{
		FromAddress: "Storgatan 1",
		ToAddress:   "Kungsgatan 5",
		Move:        domain.MoveRequest{Volume: 1},
		Status:      domain.StatusPending,
	})
	require.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

// encryptedArg проверяет, что в БД уходит зашифрованное значение
type encryptedArg struct{}

func (encryptedArg) Match(v driver.Value) bool {
	s, ok := v.(string)
	return ok && len(s) > len("enc:v1:") && s[:len("enc:v1:")] == "enc:v1:"
}

func TestRepository_GetByID(t *testing.T) {
	cipher, err := fieldcrypt.New(testKey)
	require.NoError(t, err)

	repo, _, mock := setupRepositoryTest(t, cipher)

	mock.ExpectQuery(`SELECT id, reference, .* FROM bookings WHERE id = \$1`).
		WithArgs(int64(42)).
		WillReturnRows(newRows(bookingRow(t, cipher, 42, domain.StatusPending)))

	booking, err := repo.GetByID(context.Background(), 42)
	require.NoError(t, err)

	assert.Equal(t, int64(42), booking.ID)
	assert.Equal(t, "Storgatan 1, Stockholm", booking.FromAddress)
	assert.Equal(t, "Kungsgatan 5, Uppsala", booking.ToAddress)
	assert.Equal(t, "08:00", booking.MoveTime.String())
	assert.Nil(t, booking.CustomerPhone)
	assert.Equal(t, 10.5, booking.Move.Volume)
	assert.Equal(t, 10, booking.Move.ParkingDistance)
	assert.Equal(t, 4, booking.Move.StairsFrom)
	assert.Equal(t, 5, booking.Move.Materials.Quantity(domain.MaterialBoxes))
	assert.Equal(t, int64(3910), booking.Breakdown.Total)
	assert.Equal(t, int64(3), booking.Breakdown.RateVersion)
	assert.Equal(t, domain.StatusPending, booking.Status)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRepository_GetByID_NotFound(t *testing.T) {
	repo, _, mock := setupRepositoryTest(t, fieldcrypt.Plain{})

	mock.ExpectQuery(`SELECT .* FROM bookings WHERE id = \$1`).
		WithArgs(int64(404)).
		WillReturnRows(sqlmock.NewRows(bookingColumns))

	_, err := repo.GetByID(context.Background(), 404)
	assert.ErrorIs(t, err, ErrBookingNotFound)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRepository_GetByID_QueryError(t *testing.T) {
	repo, _, mock := setupRepositoryTest(t, fieldcrypt.Plain{})

	mock.ExpectQuery(`SELECT .* FROM bookings`).WillReturnError(sql.ErrConnDone)

	_, err := repo.GetByID(context.Background(), 1)
	assert.ErrorIs(t, err, ErrExecQuery)
}

func TestRepository_GetByFilter_LocksSingleDateInTransaction(t *testing.T) {
	repo, db, mock := setupRepositoryTest(t, fieldcrypt.Plain{})
	date := time.Date(2025, 10, 15, 0, 0, 0, 0, time.UTC)

	mock.ExpectBegin()
	mock.ExpectQuery(`SELECT .* FROM bookings WHERE moving_date >= \$1 AND moving_date <= \$2 AND status NOT IN \(\$3,\$4,\$5\) ORDER BY move_time ASC, id ASC FOR UPDATE`).
		WithArgs(date, date, "cancelled_by_customer", "cancelled_by_company", "no_show").
		WillReturnRows(newRows(bookingRow(t, fieldcrypt.Plain{}, 1, domain.StatusConfirmed)))
	mock.ExpectCommit()

	tx, err := db.Begin()
	require.NoError(t, err)
	ctx := dbmetrics.WithTx(context.Background(), tx)

	bookings, err := repo.GetByFilter(ctx, domain.BookingsFilter{StartDate: &date, EndDate: &date})
	require.NoError(t, err)
	require.NoError(t, tx.Commit())

	assert.Len(t, bookings, 1)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRepository_GetByFilter_CustomerAndStatus(t *testing.T) {
	repo, _, mock := setupRepositoryTest(t, fieldcrypt.Plain{})
	status := domain.StatusConfirmed

	mock.ExpectQuery(`SELECT .* FROM bookings WHERE customer_id = \$1 AND status = \$2 ORDER BY moving_date DESC, move_time DESC, id DESC$`).
		WithArgs(int64(7), "confirmed").
		WillReturnRows(newRows(
			bookingRow(t, fieldcrypt.Plain{}, 2, domain.StatusConfirmed),
			bookingRow(t, fieldcrypt.Plain{}, 1, domain.StatusConfirmed),
		))

	bookings, err := repo.GetByFilter(context.Background(), domain.BookingsFilter{
		CustomerID: ptr.Ptr(int64(7)),
		Status:     &status,
	})
	require.NoError(t, err)

	require.Len(t, bookings, 2)
	assert.Equal(t, int64(2), bookings[0].ID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRepository_CountActiveByDate(t *testing.T) {
	repo, _, mock := setupRepositoryTest(t, fieldcrypt.Plain{})
	from := time.Date(2025, 10, 1, 0, 0, 0, 0, time.UTC)
	to := time.Date(2025, 10, 31, 0, 0, 0, 0, time.UTC)

	mock.ExpectQuery(`SELECT moving_date, COUNT\(\*\) FROM bookings WHERE .* GROUP BY moving_date`).
		WithArgs(from, to, "cancelled_by_customer", "cancelled_by_company", "no_show").
		WillReturnRows(sqlmock.NewRows([]string{"moving_date", "count"}).
			AddRow(time.Date(2025, 10, 15, 0, 0, 0, 0, time.UTC), 3).
			AddRow(time.Date(2025, 10, 16, 0, 0, 0, 0, time.UTC), 1))

	counts, err := repo.CountActiveByDate(context.Background(), from, to)
	require.NoError(t, err)

	assert.Equal(t, map[string]int{"2025-10-15": 3, "2025-10-16": 1}, counts)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRepository_Cancel(t *testing.T) {
	repo, _, mock := setupRepositoryTest(t, fieldcrypt.Plain{})

	mock.ExpectExec(`UPDATE bookings SET status = \$1, cancellation_reason = \$2, cancelled_at = NOW\(\), updated_at = NOW\(\) WHERE id = \$3 AND status IN \(\$4,\$5\)`).
		WithArgs("cancelled_by_customer", "moving later", int64(5), "pending", "confirmed").
		WillReturnResult(sqlmock.NewResult(0, 1))

	err := repo.Cancel(context.Background(), 5, domain.StatusCancelledByCustomer, "moving later", domain.CancellableStatuses)
	require.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRepository_Cancel_StatusChanged(t *testing.T) {
	repo, _, mock := setupRepositoryTest(t, fieldcrypt.Plain{})

	mock.ExpectExec(`UPDATE bookings SET .* WHERE id = \$3 AND status IN \(\$4,\$5\)`).
		WithArgs("cancelled_by_company", "no crew", int64(5), "pending", "confirmed").
		WillReturnResult(sqlmock.NewResult(0, 0))

	err := repo.Cancel(context.Background(), 5, domain.StatusCancelledByCompany, "no crew", domain.CancellableStatuses)
	assert.ErrorIs(t, err, ErrStatusChanged)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRepository_UpdateStatus(t *testing.T) {
	t.Run("guarded by open statuses", func(t *testing.T) {
		repo, _, mock := setupRepositoryTest(t, fieldcrypt.Plain{})

		mock.ExpectExec(`UPDATE bookings SET status = \$1, updated_at = NOW\(\) WHERE id = \$2 AND status IN \(\$3,\$4,\$5\)`).
			WithArgs("completed", int64(9), "pending", "confirmed", "in_progress").
			WillReturnResult(sqlmock.NewResult(0, 1))

		err := repo.UpdateStatus(context.Background(), 9, domain.StatusCompleted, domain.OpenStatuses)
		require.NoError(t, err)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("terminal status is not overwritten", func(t *testing.T) {
		repo, _, mock := setupRepositoryTest(t, fieldcrypt.Plain{})

		mock.ExpectExec(`UPDATE bookings SET status = \$1, updated_at = NOW\(\) WHERE id = \$2 AND status IN`).
			WithArgs("completed", int64(9), "pending", "confirmed", "in_progress").
			WillReturnResult(sqlmock.NewResult(0, 0))

		err := repo.UpdateStatus(context.Background(), 9, domain.StatusCompleted, domain.OpenStatuses)
		assert.ErrorIs(t, err, ErrStatusChanged)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("not found without status guard", func(t *testing.T) {
		repo, _, mock := setupRepositoryTest(t, fieldcrypt.Plain{})

		mock.ExpectExec(`UPDATE bookings SET status = \$1, updated_at = NOW\(\) WHERE id = \$2`).
			WithArgs("confirmed", int64(9)).
			WillReturnResult(sqlmock.NewResult(0, 0))

		err := repo.UpdateStatus(context.Background(), 9, domain.StatusConfirmed, nil)
		assert.ErrorIs(t, err, ErrBookingNotFound)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}
