package booking

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"

	"github.com/m04kA/SMC-MovingService/internal/domain"
	"github.com/m04kA/SMC-MovingService/pkg/dbmetrics"
	"github.com/m04kA/SMC-MovingService/pkg/psqlbuilder"
)

var bookingColumns = []string{
	"id",
	"reference",
	"customer_id",
	"customer_name",
	"customer_email",
	"customer_phone",
	"moving_date",
	"move_time",
	"from_address",
	"to_address",
	"volume",
	"move_details",
	"price_breakdown",
	"rate_version",
	"total_price",
	"estimated_hours",
	"status",
	"notes",
	"cancellation_reason",
	"cancelled_at",
	"created_at",
	"updated_at",
}

// Repository репозиторий для работы с бронированиями переездов
type Repository struct {
	db     DBExecutor
	cipher FieldCipher
}

// NewRepository создает новый экземпляр репозитория бронирований
func NewRepository(db DBExecutor, cipher FieldCipher) *Repository {
	return &Repository{db: db, cipher: cipher}
}

// Create создает новое бронирование
// Адреса шифруются, детали переезда и расчет цены сохраняются в JSONB
// (передаются строкой: lib/pq отправляет []byte как bytea).
// Если в контексте передана активная транзакция, использует её.
func (r *Repository) Create(ctx context.Context, booking *domain.Booking) (*domain.Booking, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	fromAddress, err := r.cipher.Encrypt(booking.FromAddress)
	if err != nil {
		return nil, fmt.Errorf("%w: Create - encrypt from_address: %v", ErrEncoding, err)
	}
	toAddress, err := r.cipher.Encrypt(booking.ToAddress)
	if err != nil {
		return nil, fmt.Errorf("%w: Create - encrypt to_address: %v", ErrEncoding, err)
	}
	moveDetails, err := encodeMove(booking.Move)
	if err != nil {
		return nil, fmt.Errorf("%w: Create - encode move_details: %v", ErrEncoding, err)
	}
	breakdown, err := encodeBreakdown(booking.Breakdown)
	if err != nil {
		return nil, fmt.Errorf("%w: Create - encode price_breakdown: %v", ErrEncoding, err)
	}

	query, args, err := psqlbuilder.Insert("bookings").
		Columns(
			"reference",
			"customer_id",
			"customer_name",
			"customer_email",
			"customer_phone",
			"moving_date",
			"move_time",
			"from_address",
			"to_address",
			"volume",
			"move_details",
			"price_breakdown",
			"rate_version",
			"total_price",
			"estimated_hours",
			"status",
			"notes",
		).
		Values(
			booking.Reference,
			booking.CustomerID,
			booking.CustomerName,
			booking.CustomerEmail,
			booking.CustomerPhone,
			booking.MovingDate,
			booking.MoveTime,
			fromAddress,
			toAddress,
			booking.Move.Volume,
			string(moveDetails),
			string(breakdown),
			booking.RateVersion,
			booking.TotalPrice,
			booking.EstimatedHours,
			booking.Status,
			booking.Notes,
		).
		Suffix("RETURNING id, created_at, updated_at").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: Create - build insert query: %v", ErrBuildQuery, err)
	}

	var createdAt, updatedAt sql.NullTime
	err = executor.QueryRowContext(ctx, query, args...).Scan(
		&booking.ID,
		&createdAt,
		&updatedAt,
	)

	if err != nil {
		return nil, fmt.Errorf("%w: Create - execute insert: %v", ErrExecQuery, err)
	}

	booking.CreatedAt = createdAt.Time
	booking.UpdatedAt = updatedAt.Time

	return booking, nil
}

// GetByID получает бронирование по ID
func (r *Repository) GetByID(ctx context.Context, id int64) (*domain.Booking, error) {
	return r.getOne(ctx, "GetByID", squirrel.Eq{"id": id})
}

// GetByReference получает бронирование по номеру NF-XXXXXXXX
func (r *Repository) GetByReference(ctx context.Context, reference string) (*domain.Booking, error) {
	return r.getOne(ctx, "GetByReference", squirrel.Eq{"reference": reference})
}

func (r *Repository) getOne(ctx context.Context, op string, where squirrel.Eq) (*domain.Booking, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(bookingColumns...).
		From("bookings").
		Where(where).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: %s - build select query: %v", ErrBuildQuery, op, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: %s - execute query: %v", ErrExecQuery, op, err)
	}
	defer rows.Close()

	bookings, err := r.scanBookings(rows)
	if err != nil {
		return nil, err
	}
	if len(bookings) == 0 {
		return nil, ErrBookingNotFound
	}

	return bookings[0], nil
}

// GetByFilter получает бронирования с фильтрацией
// Поддерживает фильтрацию по:
// - Клиенту (CustomerID) - опционально
// - Периоду даты переезда (StartDate, EndDate) - опционально
// - Статусу (Status) - опционально
// - Включению неактивных бронирований (IncludeInactive)
//
// Внутри транзакции выборка на одну дату блокируется FOR UPDATE:
// так создание бронирования проверяет загрузку дня без гонки.
func (r *Repository) GetByFilter(ctx context.Context, filter domain.BookingsFilter) ([]*domain.Booking, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	selectBuilder := psqlbuilder.Select(bookingColumns...).From("bookings")

	if filter.CustomerID != nil {
		selectBuilder = selectBuilder.Where(squirrel.Eq{"customer_id": *filter.CustomerID})
	}

	// Фильтрация по периоду
	if filter.StartDate != nil {
		selectBuilder = selectBuilder.Where(squirrel.GtOrEq{"moving_date": *filter.StartDate})
	}
	if filter.EndDate != nil {
		selectBuilder = selectBuilder.Where(squirrel.LtOrEq{"moving_date": *filter.EndDate})
	}

	// Фильтрация по статусу
	if filter.Status != nil {
		selectBuilder = selectBuilder.Where(squirrel.Eq{"status": *filter.Status})
	} else if !filter.IncludeInactive {
		selectBuilder = selectBuilder.Where(squirrel.NotEq{"status": statusStrings(domain.InactiveStatuses)})
	}

	singleDate := filter.StartDate != nil && filter.EndDate != nil && filter.StartDate.Equal(*filter.EndDate)
	if singleDate {
		selectBuilder = selectBuilder.OrderBy("move_time ASC", "id ASC")
	} else {
		selectBuilder = selectBuilder.OrderBy("moving_date DESC", "move_time DESC", "id DESC")
	}

	if dbmetrics.IsInTransaction(ctx) && singleDate {
		selectBuilder = selectBuilder.Suffix("FOR UPDATE")
	}

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetByFilter - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: GetByFilter - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	return r.scanBookings(rows)
}

// CountActiveByDate считает активные бронирования по датам переезда в диапазоне [from, to]
// Ключ результата - дата в формате domain.DateFormat
func (r *Repository) CountActiveByDate(ctx context.Context, from, to time.Time) (map[string]int, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select("moving_date", "COUNT(*)").
		From("bookings").
		Where(squirrel.GtOrEq{"moving_date": from}).
		Where(squirrel.LtOrEq{"moving_date": to}).
		Where(squirrel.NotEq{"status": statusStrings(domain.InactiveStatuses)}).
		GroupBy("moving_date").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: CountActiveByDate - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: CountActiveByDate - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	counts := make(map[string]int)
	for rows.Next() {
		var date time.Time
		var count int
		if err := rows.Scan(&date, &count); err != nil {
			return nil, fmt.Errorf("%w: CountActiveByDate - scan row: %v", ErrScanRow, err)
		}
		counts[date.Format(domain.DateFormat)] = count
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: CountActiveByDate - rows error: %v", ErrScanRow, err)
	}

	return counts, nil
}

// UpdateStatus обновляет статус бронирования, если текущий статус входит в from
// Пустой from снимает условие на текущий статус
func (r *Repository) UpdateStatus(ctx context.Context, id int64, status domain.BookingStatus, from []domain.BookingStatus) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	update := psqlbuilder.Update("bookings").
		Set("status", status).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": id})
	if len(from) > 0 {
		update = update.Where(squirrel.Eq{"status": statusStrings(from)})
	}

	query, args, err := update.ToSql()
	if err != nil {
		return fmt.Errorf("%w: UpdateStatus - build update query: %v", ErrBuildQuery, err)
	}

	return r.execAffectingOne(ctx, executor, "UpdateStatus", query, args, len(from) > 0)
}

// Cancel отменяет бронирование с указанием причины, если текущий статус входит в from
func (r *Repository) Cancel(ctx context.Context, id int64, status domain.BookingStatus, reason string, from []domain.BookingStatus) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	update := psqlbuilder.Update("bookings").
		Set("status", status).
		Set("cancellation_reason", reason).
		Set("cancelled_at", squirrel.Expr("NOW()")).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": id})
	if len(from) > 0 {
		update = update.Where(squirrel.Eq{"status": statusStrings(from)})
	}

	query, args, err := update.ToSql()
	if err != nil {
		return fmt.Errorf("%w: Cancel - build update query: %v", ErrBuildQuery, err)
	}

	return r.execAffectingOne(ctx, executor, "Cancel", query, args, len(from) > 0)
}

// execAffectingOne выполняет UPDATE одной строки
// При условии на статус 0 строк означает ErrStatusChanged
func (r *Repository) execAffectingOne(ctx context.Context, executor DBExecutor, op, query string, args []interface{}, statusGuarded bool) error {
	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: %s - execute update: %v", ErrExecQuery, op, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: %s - get rows affected: %v", ErrExecQuery, op, err)
	}

	if rowsAffected == 0 {
		if statusGuarded {
			return ErrStatusChanged
		}
		return ErrBookingNotFound
	}

	return nil
}

// scanBookings сканирует результаты запроса в слайс бронирований
func (r *Repository) scanBookings(rows *sql.Rows) ([]*domain.Booking, error) {
	bookings := make([]*domain.Booking, 0)

	for rows.Next() {
		var booking domain.Booking
		var volume float64
		var moveDetails, breakdown []byte
		var createdAt, updatedAt sql.NullTime

		err := rows.Scan(
			&booking.ID,
			&booking.Reference,
			&booking.CustomerID,
			&booking.CustomerName,
			&booking.CustomerEmail,
			&booking.CustomerPhone,
			&booking.MovingDate,
			&booking.MoveTime,
			&booking.FromAddress,
			&booking.ToAddress,
			&volume,
			&moveDetails,
			&breakdown,
			&booking.RateVersion,
			&booking.TotalPrice,
			&booking.EstimatedHours,
			&booking.Status,
			&booking.Notes,
			&booking.CancellationReason,
			&booking.CancelledAt,
			&createdAt,
			&updatedAt,
		)

		if err != nil {
			return nil, fmt.Errorf("%w: scanBookings - scan row: %v", ErrScanRow, err)
		}

		if booking.FromAddress, err = r.cipher.Decrypt(booking.FromAddress); err != nil {
			return nil, fmt.Errorf("%w: scanBookings - decrypt from_address of booking id=%d: %v", ErrEncoding, booking.ID, err)
		}
		if booking.ToAddress, err = r.cipher.Decrypt(booking.ToAddress); err != nil {
			return nil, fmt.Errorf("%w: scanBookings - decrypt to_address of booking id=%d: %v", ErrEncoding, booking.ID, err)
		}
		if booking.Move, err = decodeMove(moveDetails, volume); err != nil {
			return nil, fmt.Errorf("%w: scanBookings - decode move_details of booking id=%d: %v", ErrScanRow, booking.ID, err)
		}
		if booking.Breakdown, err = decodeBreakdown(breakdown, booking.RateVersion); err != nil {
			return nil, fmt.Errorf("%w: scanBookings - decode price_breakdown of booking id=%d: %v", ErrScanRow, booking.ID, err)
		}

		booking.CreatedAt = createdAt.Time
		booking.UpdatedAt = updatedAt.Time

		bookings = append(bookings, &booking)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: scanBookings - rows error: %v", ErrScanRow, err)
	}

	return bookings, nil
}

func statusStrings(statuses []domain.BookingStatus) []string {
	result := make([]string, len(statuses))
	for i, s := range statuses {
		result[i] = string(s)
	}
	return result
}
