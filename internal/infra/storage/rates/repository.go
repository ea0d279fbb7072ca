package rates

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/Masterminds/squirrel"

	"github.com/m04kA/SMC-MovingService/internal/domain"
	"github.com/m04kA/SMC-MovingService/pkg/dbmetrics"
	"github.com/m04kA/SMC-MovingService/pkg/psqlbuilder"
)

var rateColumns = []string{
	"id",
	"version",
	"volume_rate",
	"free_distance_threshold",
	"parking_rate_per_meter",
	"no_elevator_floor_limit",
	"no_elevator_surcharge",
	"broken_elevator_surcharge",
	"box_unit_price",
	"tape_unit_price",
	"bag_unit_price",
	"hours_per_cubic_meter",
	"minimum_hours",
	"is_active",
	"created_at",
}

// Repository репозиторий версий тарифов
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория тарифов
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// Create сохраняет новую версию тарифов
// Если в контексте передана активная транзакция, использует её
func (r *Repository) Create(ctx context.Context, rates *domain.RateTable) (*domain.RateTable, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert("rate_tables").
		Columns(rateColumns[1:14]...).
		Values(
			rates.Version,
			rates.VolumeRate,
			rates.FreeDistanceThreshold,
			rates.ParkingRatePerMeter,
			rates.NoElevatorFloorLimit,
			rates.NoElevatorSurcharge,
			rates.BrokenElevatorSurcharge,
			rates.BoxUnitPrice,
			rates.TapeUnitPrice,
			rates.BagUnitPrice,
			rates.HoursPerCubicMeter,
			rates.MinimumHours,
			rates.IsActive,
		).
		Suffix("RETURNING id, created_at").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: Create - build insert query: %v", ErrBuildQuery, err)
	}

	var createdAt sql.NullTime
	err = executor.QueryRowContext(ctx, query, args...).Scan(&rates.ID, &createdAt)
	if err != nil {
		return nil, fmt.Errorf("%w: Create - execute insert: %v", ErrExecQuery, err)
	}

	rates.CreatedAt = createdAt.Time

	return rates, nil
}

// GetActive получает активную версию тарифов
// Внутри транзакции строка блокируется FOR UPDATE, чтобы параллельные обновления
// не выпустили одну и ту же версию дважды.
func (r *Repository) GetActive(ctx context.Context) (*domain.RateTable, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	selectBuilder := psqlbuilder.Select(rateColumns...).
		From("rate_tables").
		Where(squirrel.Eq{"is_active": true}).
		OrderBy("version DESC").
		Limit(1)

	if dbmetrics.IsInTransaction(ctx) {
		selectBuilder = selectBuilder.Suffix("FOR UPDATE")
	}

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetActive - build select query: %v", ErrBuildQuery, err)
	}

	rates, err := scanRates(executor.QueryRowContext(ctx, query, args...))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrRatesNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetActive - scan rates: %v", ErrScanRow, err)
	}

	return rates, nil
}

// GetHistory получает все сохраненные версии, от новых к старым
func (r *Repository) GetHistory(ctx context.Context) ([]*domain.RateTable, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(rateColumns...).
		From("rate_tables").
		OrderBy("version DESC").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetHistory - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: GetHistory - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	history := make([]*domain.RateTable, 0)
	for rows.Next() {
		rates, err := scanRates(rows)
		if err != nil {
			return nil, fmt.Errorf("%w: GetHistory - scan row: %v", ErrScanRow, err)
		}
		history = append(history, rates)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: GetHistory - rows error: %v", ErrScanRow, err)
	}

	return history, nil
}

// DeactivateAll снимает флаг активности со всех версий
func (r *Repository) DeactivateAll(ctx context.Context) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update("rate_tables").
		Set("is_active", false).
		Where(squirrel.Eq{"is_active": true}).
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: DeactivateAll - build update query: %v", ErrBuildQuery, err)
	}

	if _, err := executor.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("%w: DeactivateAll - execute update: %v", ErrExecQuery, err)
	}

	return nil
}

type scanner interface {
	Scan(dest ...interface{}) error
}

func scanRates(row scanner) (*domain.RateTable, error) {
	var rates domain.RateTable
	var createdAt sql.NullTime

	err := row.Scan(
		&rates.ID,
		&rates.Version,
		&rates.VolumeRate,
		&rates.FreeDistanceThreshold,
		&rates.ParkingRatePerMeter,
		&rates.NoElevatorFloorLimit,
		&rates.NoElevatorSurcharge,
		&rates.BrokenElevatorSurcharge,
		&rates.BoxUnitPrice,
		&rates.TapeUnitPrice,
		&rates.BagUnitPrice,
		&rates.HoursPerCubicMeter,
		&rates.MinimumHours,
		&rates.IsActive,
		&createdAt,
	)
	if err != nil {
		return nil, err
	}

	rates.CreatedAt = createdAt.Time
	return &rates, nil
}
