package create_booking

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-MovingService/internal/domain"
	"github.com/m04kA/SMC-MovingService/internal/integrations/notifier"
	"github.com/m04kA/SMC-MovingService/pkg/logger"
	"github.com/m04kA/SMC-MovingService/pkg/ptr"
)

// Моки зависимостей

type MockBookingRepository struct {
	mock.Mock
}

func (m *MockBookingRepository) Create(ctx context.Context, booking *domain.Booking) (*domain.Booking, error) {
	args := m.Called(ctx, booking)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Booking), args.Error(1)
}

func (m *MockBookingRepository) GetByFilter(ctx context.Context, filter domain.BookingsFilter) ([]*domain.Booking, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.Booking), args.Error(1)
}

type MockCustomerRepository struct {
	mock.Mock
}

func (m *MockCustomerRepository) Upsert(ctx context.Context, customer *domain.Customer) (*domain.Customer, error) {
	args := m.Called(ctx, customer)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Customer), args.Error(1)
}

type MockDuplicateGuard struct {
	mock.Mock
}

func (m *MockDuplicateGuard) Acquire(ctx context.Context, fingerprint string, ttl time.Duration) (bool, error) {
	args := m.Called(ctx, fingerprint, ttl)
	return args.Bool(0), args.Error(1)
}

func (m *MockDuplicateGuard) Release(ctx context.Context, fingerprint string) error {
	return m.Called(ctx, fingerprint).Error(0)
}

type MockNotifier struct {
	mock.Mock
}

func (m *MockNotifier) SendBookingReceived(ctx context.Context, n notifier.BookingReceived) error {
	return m.Called(ctx, n).Error(0)
}

type staticRates struct {
	rates domain.RateTable
	err   error
}

func (s staticRates) Active(context.Context) (domain.RateTable, error) {
	return s.rates, s.err
}

type recordingMetrics struct {
	created      int
	duplicates   int
	calculations []string
}

func (r *recordingMetrics) IncBookingCreated()      { r.created++ }
func (r *recordingMetrics) IncDuplicateSubmission() { r.duplicates++ }
func (r *recordingMetrics) IncPriceCalculation(kind, result string) {
	r.calculations = append(r.calculations, kind+":"+result)
}

type inlineTx struct{}

func (inlineTx) DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

type fixedTime struct {
	now time.Time
}

func (f fixedTime) Now() time.Time { return f.now }

// Окружение теста

type testEnv struct {
	bookings  *MockBookingRepository
	customers *MockCustomerRepository
	guard     *MockDuplicateGuard
	notifier  *MockNotifier
	metrics   *recordingMetrics
	uc        *UseCase
}

var testNow = time.Date(2025, 9, 1, 10, 0, 0, 0, time.UTC)

func setupUseCase(t *testing.T) *testEnv {
	t.Helper()

	env := &testEnv{
		bookings:  new(MockBookingRepository),
		customers: new(MockCustomerRepository),
		guard:     new(MockDuplicateGuard),
		notifier:  new(MockNotifier),
		metrics:   &recordingMetrics{},
	}

	rates := domain.DefaultRateTable()
	rates.Version = 4

	env.uc = NewUseCase(
		env.bookings,
		env.customers,
		staticRates{rates: rates},
		env.guard,
		env.notifier,
		env.metrics,
		inlineTx{},
		Options{DailyCapacity: 2, AdvanceBookingDays: 180, DuplicateWindow: 10 * time.Second},
		logger.NewNop(),
	)
	env.uc.timeProvider = fixedTime{now: testNow}
	env.uc.referenceFunc = func() string { return "NF-TEST0001" }

	return env
}

func validRequest() *Request {
	return &Request{
		CustomerName:    "Anna Svensson",
		CustomerEmail:   "Anna@Example.se",
		CustomerPhone:   "+46 70 123 45 67",
		MovingDate:      "2025-10-15",
		FromAddress:     "Storgatan 1, Stockholm",
		ToAddress:       "Kungsgatan 5, Uppsala",
		Volume:          ptr.Ptr(10.0),
		ParkingDistance: 3,
	}
}

func TestUseCase_Execute_Success(t *testing.T) {
	env := setupUseCase(t)
	movingDate := time.Date(2025, 10, 15, 0, 0, 0, 0, time.UTC)

	env.guard.On("Acquire", mock.Anything, mock.AnythingOfType("string"), 10*time.Second).Return(true, nil)
	env.bookings.On("GetByFilter", mock.Anything, mock.MatchedBy(func(f domain.BookingsFilter) bool {
		return f.StartDate.Equal(movingDate) && f.EndDate.Equal(movingDate) && !f.IncludeInactive
	})).Return([]*domain.Booking{{Status: domain.StatusConfirmed}}, nil)
	env.customers.On("Upsert", mock.Anything, mock.MatchedBy(func(c *domain.Customer) bool {
		return c.Email == "anna@example.se" && c.Type == domain.CustomerPrivate && *c.Phone == "+46 70 123 45 67"
	})).Return(&domain.Customer{ID: 7, Name: "Anna Svensson", Email: "anna@example.se"}, nil)
	env.bookings.On("Create", mock.Anything, mock.MatchedBy(func(b *domain.Booking) bool {
		return b.Reference == "NF-TEST0001" &&
			b.CustomerID == 7 &&
			b.Status == domain.StatusPending &&
			b.MoveTime == "08:00" &&
			b.TotalPrice == 2400 &&
			b.EstimatedHours == 5 &&
			b.RateVersion == 4 &&
			b.Move.ParkingDistance == 3
	})).Return(func() *domain.Booking {
		b := &domain.Booking{
			ID:             42,
			Reference:      "NF-TEST0001",
			CustomerID:     7,
			CustomerName:   "Anna Svensson",
			CustomerEmail:  "anna@example.se",
			MovingDate:     movingDate,
			MoveTime:       "08:00",
			TotalPrice:     2400,
			EstimatedHours: 5,
			Status:         domain.StatusPending,
			Breakdown:      domain.PriceBreakdown{VolumeCost: 2400, Subtotal: 2400, Total: 2400, EstimatedHours: 5, RateVersion: 4},
		}
		return b
	}(), nil)
	env.notifier.On("SendBookingReceived", mock.Anything, mock.MatchedBy(func(n notifier.BookingReceived) bool {
		return n.BookingID == 42 && n.Reference == "NF-TEST0001" && n.MovingDate == "2025-10-15" && n.TotalPrice == 2400
	})).Return(nil)

	resp, err := env.uc.Execute(context.Background(), validRequest())
	require.NoError(t, err)

	assert.False(t, resp.Duplicated)
	assert.Equal(t, int64(42), resp.BookingID)
	assert.Equal(t, "NF-TEST0001", resp.Reference)
	assert.Equal(t, int64(2400), resp.TotalPrice)
	assert.Equal(t, 5, resp.EstimatedHours)
	assert.Equal(t, int64(4), resp.Breakdown.RateVersion)
	assert.Equal(t, 1, env.metrics.created)
	assert.Equal(t, []string{"booking:ok"}, env.metrics.calculations)

	env.guard.AssertNotCalled(t, "Release", mock.Anything, mock.Anything)
	env.bookings.AssertExpectations(t)
	env.customers.AssertExpectations(t)
	env.notifier.AssertExpectations(t)
}

func TestUseCase_Execute_ReportsAllMissingFields(t *testing.T) {
	env := setupUseCase(t)

	_, err := env.uc.Execute(context.Background(), &Request{CustomerName: "   "})

	var verr *ValidationError
	require.ErrorAs(t, err, &verr)
	assert.ErrorIs(t, err, ErrValidation)
	assert.Equal(t, []string{"customer_name", "customer_email", "moving_date", "from_address", "to_address", "volume"}, verr.Missing)
	assert.Equal(t, "missing required fields: customer_name, customer_email, moving_date, from_address, to_address, volume", verr.Details()[0])
	env.guard.AssertNotCalled(t, "Acquire", mock.Anything, mock.Anything, mock.Anything)
}

func TestUseCase_Execute_MissingEmailListedWithOthers(t *testing.T) {
	env := setupUseCase(t)
	req := validRequest()
	req.CustomerEmail = ""
	req.ToAddress = ""

	_, err := env.uc.Execute(context.Background(), req)

	var verr *ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, []string{"customer_email", "to_address"}, verr.Missing)
}

func TestUseCase_Execute_FormatAndRangeViolations(t *testing.T) {
	tests := []struct {
		name    string
		modify  func(r *Request)
		message string
	}{
		{"negative volume", func(r *Request) { r.Volume = ptr.Ptr(-1.0) }, "volume must be positive"},
		{"zero volume", func(r *Request) { r.Volume = ptr.Ptr(0.0) }, "volume must be positive"},
		{"invalid email", func(r *Request) { r.CustomerEmail = "anna.example.se" }, "customer_email must be a valid email address"},
		{"invalid phone", func(r *Request) { r.CustomerPhone = "call me" }, "customer_phone has invalid format"},
		{"malformed date", func(r *Request) { r.MovingDate = "15/10/2025" }, "moving_date must match format 2006-01-02"},
		{"malformed time", func(r *Request) { r.MoveTime = "8am" }, "move_time must match format 15:04"},
		{"negative floor", func(r *Request) { r.StairsTo = -2 }, "stairs_to must not be negative"},
		{"unknown material", func(r *Request) { r.Materials = map[string]int{"piano": 1} }, "has unsupported value piano"},
		{"negative material", func(r *Request) { r.Materials = map[string]int{"boxes": -3} }, "must not be negative"},
		{"volume below column precision", func(r *Request) { r.Volume = ptr.Ptr(0.001) }, "volume must be at least 0.01"},
		{"huge volume", func(r *Request) { r.Volume = ptr.Ptr(1e300) }, "volume must be at most 10000"},
		{"huge parking distance", func(r *Request) { r.ParkingDistance = 4611686018427387904 }, "parking_distance must be at most 10000"},
		{"huge floor", func(r *Request) { r.StairsFrom = 1 << 40 }, "stairs_from must be at most 200"},
		{"huge material quantity", func(r *Request) { r.Materials = map[string]int{"boxes": 4611686018427387904} }, "must be at most 100000"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			env := setupUseCase(t)
			req := validRequest()
			tt.modify(req)

			_, err := env.uc.Execute(context.Background(), req)

			var verr *ValidationError
			require.ErrorAs(t, err, &verr)
			assert.Empty(t, verr.Missing)
			assert.Contains(t, err.Error(), tt.message)
		})
	}
}

func TestUseCase_Execute_OutOfRangeMoveDoesNotReachStorage(t *testing.T) {
	tests := []struct {
		name   string
		volume float64
	}{
		{"smaller than stored precision", 0.004},
		{"larger than supported", 10000.5},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			env := setupUseCase(t)
			req := validRequest()
			req.Volume = ptr.Ptr(tt.volume)

			resp, err := env.uc.Execute(context.Background(), req)

			assert.Nil(t, resp)
			assert.ErrorIs(t, err, ErrValidation)
			env.guard.AssertNotCalled(t, "Acquire", mock.Anything, mock.Anything, mock.Anything)
			env.customers.AssertNotCalled(t, "Upsert", mock.Anything, mock.Anything)
			env.bookings.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
		})
	}
}

func TestUseCase_Execute_DateRules(t *testing.T) {
	t.Run("past date", func(t *testing.T) {
		env := setupUseCase(t)
		req := validRequest()
		req.MovingDate = "2025-08-31"

		_, err := env.uc.Execute(context.Background(), req)
		assert.ErrorIs(t, err, ErrInvalidDate)
	})

	t.Run("today is allowed", func(t *testing.T) {
		assert.NoError(t, validateDate(testNow, testNow, 180))
	})

	t.Run("too far in future", func(t *testing.T) {
		env := setupUseCase(t)
		req := validRequest()
		req.MovingDate = "2026-03-01"

		_, err := env.uc.Execute(context.Background(), req)
		assert.ErrorIs(t, err, ErrDateTooFarInFuture)
	})

	t.Run("unlimited window", func(t *testing.T) {
		far := testNow.AddDate(3, 0, 0)
		assert.NoError(t, validateDate(far, testNow, 0))
	})
}

func TestUseCase_Execute_DuplicateSubmission(t *testing.T) {
	env := setupUseCase(t)
	env.guard.On("Acquire", mock.Anything, mock.Anything, mock.Anything).Return(false, nil)

	resp, err := env.uc.Execute(context.Background(), validRequest())
	require.NoError(t, err)

	assert.True(t, resp.Duplicated)
	assert.Equal(t, 1, env.metrics.duplicates)
	assert.Zero(t, env.metrics.created)
	env.bookings.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	env.customers.AssertNotCalled(t, "Upsert", mock.Anything, mock.Anything)
}

func TestUseCase_Execute_GuardUnavailableProceeds(t *testing.T) {
	env := setupUseCase(t)
	env.guard.On("Acquire", mock.Anything, mock.Anything, mock.Anything).Return(false, errors.New("redis down"))
	env.bookings.On("GetByFilter", mock.Anything, mock.Anything).Return([]*domain.Booking{}, nil)
	env.customers.On("Upsert", mock.Anything, mock.Anything).Return(&domain.Customer{ID: 1}, nil)
	env.bookings.On("Create", mock.Anything, mock.Anything).Return(&domain.Booking{ID: 5, Reference: "NF-TEST0001"}, nil)
	env.notifier.On("SendBookingReceived", mock.Anything, mock.Anything).Return(nil)

	resp, err := env.uc.Execute(context.Background(), validRequest())
	require.NoError(t, err)
	assert.Equal(t, int64(5), resp.BookingID)
}

func TestUseCase_Execute_FullyBookedReleasesClaim(t *testing.T) {
	env := setupUseCase(t)
	env.guard.On("Acquire", mock.Anything, mock.Anything, mock.Anything).Return(true, nil)
	env.guard.On("Release", mock.Anything, mock.Anything).Return(nil)
	env.bookings.On("GetByFilter", mock.Anything, mock.Anything).Return([]*domain.Booking{
		{Status: domain.StatusPending},
		{Status: domain.StatusConfirmed},
	}, nil)

	_, err := env.uc.Execute(context.Background(), validRequest())
	assert.ErrorIs(t, err, ErrDateFullyBooked)

	env.customers.AssertNotCalled(t, "Upsert", mock.Anything, mock.Anything)
	env.bookings.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	env.guard.AssertExpectations(t)
}

func TestUseCase_Execute_CancelledBookingsDoNotTakeCrews(t *testing.T) {
	assert.Equal(t, 1, countActiveBookings([]*domain.Booking{
		{Status: domain.StatusCancelledByCustomer},
		{Status: domain.StatusNoShow},
		{Status: domain.StatusInProgress},
	}))
}

func TestUseCase_Execute_NotificationFailureIsIgnored(t *testing.T) {
	env := setupUseCase(t)
	env.guard.On("Acquire", mock.Anything, mock.Anything, mock.Anything).Return(true, nil)
	env.bookings.On("GetByFilter", mock.Anything, mock.Anything).Return([]*domain.Booking{}, nil)
	env.customers.On("Upsert", mock.Anything, mock.Anything).Return(&domain.Customer{ID: 1}, nil)
	env.bookings.On("Create", mock.Anything, mock.Anything).Return(&domain.Booking{ID: 9}, nil)
	env.notifier.On("SendBookingReceived", mock.Anything, mock.Anything).Return(notifier.ErrInvalidResponse)

	resp, err := env.uc.Execute(context.Background(), validRequest())
	require.NoError(t, err)
	assert.Equal(t, int64(9), resp.BookingID)
}

func TestUseCase_Execute_RepositoryErrorReleasesClaim(t *testing.T) {
	env := setupUseCase(t)
	env.guard.On("Acquire", mock.Anything, mock.Anything, mock.Anything).Return(true, nil)
	env.guard.On("Release", mock.Anything, mock.Anything).Return(nil)
	env.bookings.On("GetByFilter", mock.Anything, mock.Anything).Return([]*domain.Booking{}, nil)
	env.customers.On("Upsert", mock.Anything, mock.Anything).Return(nil, errors.New("deadlock"))

	_, err := env.uc.Execute(context.Background(), validRequest())
	assert.ErrorIs(t, err, ErrInternal)
	env.guard.AssertExpectations(t)
}

func TestUseCase_Execute_WithoutOptionalDependencies(t *testing.T) {
	bookings := new(MockBookingRepository)
	customers := new(MockCustomerRepository)
	bookings.On("GetByFilter", mock.Anything, mock.Anything).Return([]*domain.Booking{}, nil)
	customers.On("Upsert", mock.Anything, mock.MatchedBy(func(c *domain.Customer) bool {
		return c.Type == domain.CustomerCompany
	})).Return(&domain.Customer{ID: 3}, nil)
	bookings.On("Create", mock.Anything, mock.MatchedBy(func(b *domain.Booking) bool {
		return b.MoveTime == "13:30" && b.Notes != nil && *b.Notes == "piano"
	})).Return(&domain.Booking{ID: 11}, nil)

	uc := NewUseCase(bookings, customers, staticRates{rates: domain.DefaultRateTable()},
		nil, nil, &recordingMetrics{}, inlineTx{}, Options{}, logger.NewNop())
	uc.timeProvider = fixedTime{now: testNow}

	req := validRequest()
	req.CustomerType = "company"
	req.MoveTime = "13:30"
	req.Notes = " piano "

	resp, err := uc.Execute(context.Background(), req)
	require.NoError(t, err)
	assert.Equal(t, int64(11), resp.BookingID)
	bookings.AssertExpectations(t)
}

func TestNewReference(t *testing.T) {
	ref := newReference()

	assert.Regexp(t, `^NF-[0-9A-F]{8}$`, ref)
	assert.NotEqual(t, ref, newReference())
}
