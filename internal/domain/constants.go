package domain

// Default booking values
const (
	DefaultMoveTime           = "08:00"
	DefaultDailyCapacity      = 3   // crews per day
	DefaultAdvanceBookingDays = 180 // 0 = unlimited
	ReferencePrefix           = "NF-"
)

// Business validation constants
const (
	MaxAddressLength            = 200
	MaxNotesLength              = 1000
	MaxCancellationReasonLength = 500
	MaxAvailabilityRangeDays    = 62
	MaxAdvanceBookingDays       = 730
)

// Пределы параметров переезда, при которых суммы помещаются в int64
const (
	MinBookingVolume    = 0.01  // m³, точность колонки bookings.volume
	MaxVolume           = 10000 // m³
	MaxParkingDistance  = 10000 // метров
	MaxFloor            = 200
	MaxMaterialQuantity = 100000 // штук одного вида
	MaxDistanceKm       = 10000
	MaxApartmentSqm     = 10000
	MaxHeavyItems       = 1000
	MaxLongCarryMeters  = 10000
)

// Time format constants
const (
	TimeFormat = "15:04"      // HH:MM
	DateFormat = "2006-01-02" // YYYY-MM-DD
)

// InactiveStatuses статусы, которые не занимают бригаду
var InactiveStatuses = []BookingStatus{
	StatusCancelledByCustomer,
	StatusCancelledByCompany,
	StatusNoShow,
}

// ActiveStatuses статусы, которые учитываются при подсчете загрузки дня
var ActiveStatuses = []BookingStatus{
	StatusPending,
	StatusConfirmed,
	StatusInProgress,
	StatusCompleted,
}

// CancellableStatuses статусы, из которых возможна отмена
var CancellableStatuses = []BookingStatus{
	StatusPending,
	StatusConfirmed,
}

// OpenStatuses нетерминальные статусы, которые еще могут меняться
var OpenStatuses = []BookingStatus{
	StatusPending,
	StatusConfirmed,
	StatusInProgress,
}

// AllStatuses все допустимые статусы бронирования
var AllStatuses = append(append([]BookingStatus{}, ActiveStatuses...), InactiveStatuses...)
