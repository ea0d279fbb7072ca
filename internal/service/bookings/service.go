package bookings

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/m04kA/SMC-MovingService/internal/domain"
	bookingRepo "github.com/m04kA/SMC-MovingService/internal/infra/storage/booking"
	customerRepo "github.com/m04kA/SMC-MovingService/internal/infra/storage/customer"
	"github.com/m04kA/SMC-MovingService/internal/service/bookings/models"
)

// Service сервис для работы с бронированиями
type Service struct {
	bookingRepo  BookingRepository
	customerRepo CustomerRepository
	logger       Logger
}

// NewService создает новый экземпляр сервиса бронирований
func NewService(
	bookingRepo BookingRepository,
	customerRepo CustomerRepository,
	logger Logger,
) *Service {
	return &Service{
		bookingRepo:  bookingRepo,
		customerRepo: customerRepo,
		logger:       logger,
	}
}

// GetByID получает бронирование по ID
func (s *Service) GetByID(ctx context.Context, id int64) (*models.BookingResponse, error) {
	s.logger.Info("GetByID: fetching booking id=%d", id)

	booking, err := s.bookingRepo.GetByID(ctx, id)
	if err != nil {
		return nil, s.repositoryError("GetByID", fmt.Sprintf("id=%d", id), err)
	}

	s.logger.Info("GetByID: successfully fetched booking id=%d", id)
	return models.FromDomainBooking(booking), nil
}

// GetByReference получает бронирование по номеру NF-XXXXXXXX
func (s *Service) GetByReference(ctx context.Context, reference string) (*models.BookingResponse, error) {
	reference = strings.ToUpper(strings.TrimSpace(reference))
	s.logger.Info("GetByReference: fetching booking reference=%s", reference)

	booking, err := s.bookingRepo.GetByReference(ctx, reference)
	if err != nil {
		return nil, s.repositoryError("GetByReference", "reference="+reference, err)
	}

	s.logger.Info("GetByReference: successfully fetched booking id=%d", booking.ID)
	return models.FromDomainBooking(booking), nil
}

// GetCustomerBookings получает историю бронирований клиента
// Опционально фильтрует по статусу; без статуса возвращает и отмененные
func (s *Service) GetCustomerBookings(ctx context.Context, req *models.GetCustomerBookingsRequest) (*models.BookingListResponse, error) {
	s.logger.Info("GetCustomerBookings: fetching bookings for customer=%d, status=%v", req.CustomerID, req.Status)

	filter := domain.BookingsFilter{
		CustomerID:      &req.CustomerID,
		IncludeInactive: true,
	}

	if req.Status != nil {
		status, err := models.ToDomainBookingStatus(*req.Status)
		if err != nil {
			s.logger.Warn("GetCustomerBookings: invalid status=%s for customer=%d", *req.Status, req.CustomerID)
			return nil, fmt.Errorf("%w: invalid status", ErrInvalidInput)
		}
		filter.Status = &status
	}

	if _, err := s.customerRepo.GetByID(ctx, req.CustomerID); err != nil {
		if errors.Is(err, customerRepo.ErrCustomerNotFound) {
			s.logger.Warn("GetCustomerBookings: customer=%d not found", req.CustomerID)
			return nil, ErrCustomerNotFound
		}
		s.logger.Error("GetCustomerBookings: customer repository error for customer=%d: %v", req.CustomerID, err)
		return nil, fmt.Errorf("%w: GetCustomerBookings - customer repository error: %v", ErrInternal, err)
	}

	bookings, err := s.bookingRepo.GetByFilter(ctx, filter)
	if err != nil {
		s.logger.Error("GetCustomerBookings: repository error for customer=%d: %v", req.CustomerID, err)
		return nil, fmt.Errorf("%w: GetCustomerBookings - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("GetCustomerBookings: successfully fetched %d bookings for customer=%d", len(bookings), req.CustomerID)
	return models.FromDomainBookingList(bookings), nil
}

// ListBookings получает бронирования с гибкой фильтрацией
// Примеры использования:
// - Все активные бронирования: ListBookings(ctx, &ListBookingsRequest{})
// - Бронирования на дату: StartDate и EndDate указывают на одну дату
// - Только подтвержденные: Status = "confirmed"
// - Включая отмененные: IncludeInactive = true
func (s *Service) ListBookings(ctx context.Context, req *models.ListBookingsRequest) (*models.BookingListResponse, error) {
	logMsg := "ListBookings: fetching bookings"
	if req.StartDate != nil && req.EndDate != nil {
		logMsg += fmt.Sprintf(", period=%s to %s", req.StartDate.Format(domain.DateFormat), req.EndDate.Format(domain.DateFormat))
	}
	if req.Status != nil {
		logMsg += fmt.Sprintf(", status=%s", *req.Status)
	}
	if req.IncludeInactive {
		logMsg += ", includeInactive=true"
	}
	s.logger.Info(logMsg)

	if req.StartDate != nil && req.EndDate != nil && req.EndDate.Before(*req.StartDate) {
		s.logger.Warn("ListBookings: end date before start date")
		return nil, ErrInvalidTimeRange
	}

	filter, err := req.ToDomainFilter()
	if err != nil {
		s.logger.Warn("ListBookings: invalid filter: %v", err)
		return nil, fmt.Errorf("%w: invalid status", ErrInvalidInput)
	}

	bookings, err := s.bookingRepo.GetByFilter(ctx, filter)
	if err != nil {
		s.logger.Error("ListBookings: repository error: %v", err)
		return nil, fmt.Errorf("%w: ListBookings - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("ListBookings: successfully fetched %d bookings", len(bookings))
	return models.FromDomainBookingList(bookings), nil
}

// Cancel отменяет бронирование
// Отменить можно только pending и confirmed бронирования;
// статус отмены зависит от стороны (customer или company)
func (s *Service) Cancel(ctx context.Context, bookingID int64, req *models.CancelBookingRequest) error {
	s.logger.Info("Cancel: cancelling booking id=%d by %s", bookingID, req.CancelledBy)

	var cancelStatus domain.BookingStatus
	switch req.CancelledBy {
	case models.CancelledByCustomer:
		cancelStatus = domain.StatusCancelledByCustomer
	case models.CancelledByCompany:
		cancelStatus = domain.StatusCancelledByCompany
	default:
		s.logger.Warn("Cancel: invalid cancelled_by=%q for booking id=%d", req.CancelledBy, bookingID)
		return fmt.Errorf("%w: cancelled_by must be customer or company", ErrInvalidInput)
	}

	if len(req.CancellationReason) > domain.MaxCancellationReasonLength {
		s.logger.Warn("Cancel: reason too long for booking id=%d", bookingID)
		return fmt.Errorf("%w: reason must be at most %d characters", ErrInvalidInput, domain.MaxCancellationReasonLength)
	}

	booking, err := s.bookingRepo.GetByID(ctx, bookingID)
	if err != nil {
		return s.repositoryError("Cancel", fmt.Sprintf("id=%d", bookingID), err)
	}

	if !booking.CanBeCancelled() {
		s.logger.Warn("Cancel: booking id=%d cannot be cancelled, status=%s", bookingID, booking.Status)
		return ErrCannotCancel
	}

	// Статус мог измениться после чтения; UPDATE применится только из отменяемых статусов
	err = s.bookingRepo.Cancel(ctx, bookingID, cancelStatus, req.CancellationReason, domain.CancellableStatuses)
	if errors.Is(err, bookingRepo.ErrStatusChanged) {
		s.logger.Warn("Cancel: booking id=%d changed status concurrently, cancellation rejected", bookingID)
		return ErrCannotCancel
	}
	if err != nil {
		return s.repositoryError("Cancel", fmt.Sprintf("id=%d", bookingID), err)
	}

	s.logger.Info("Cancel: successfully cancelled booking id=%d with status=%s", bookingID, cancelStatus)
	return nil
}

// UpdateStatus обновляет статус бронирования
// Завершенные и отмененные бронирования не меняются; отмена выполняется через Cancel
func (s *Service) UpdateStatus(ctx context.Context, bookingID int64, req *models.UpdateStatusRequest) error {
	s.logger.Info("UpdateStatus: updating booking id=%d to status=%s", bookingID, req.Status)

	newStatus, err := models.ToDomainBookingStatus(req.Status)
	if err != nil {
		s.logger.Warn("UpdateStatus: invalid status=%s for booking id=%d", req.Status, bookingID)
		return fmt.Errorf("%w: invalid status", ErrInvalidInput)
	}

	if newStatus == domain.StatusCancelledByCustomer || newStatus == domain.StatusCancelledByCompany {
		s.logger.Warn("UpdateStatus: cancellation of booking id=%d requested via status update", bookingID)
		return fmt.Errorf("%w: use the cancel endpoint to cancel a booking", ErrInvalidStatusTransition)
	}

	booking, err := s.bookingRepo.GetByID(ctx, bookingID)
	if err != nil {
		return s.repositoryError("UpdateStatus", fmt.Sprintf("id=%d", bookingID), err)
	}

	if booking.Status.IsTerminal() {
		s.logger.Warn("UpdateStatus: booking id=%d is in terminal status=%s", bookingID, booking.Status)
		return fmt.Errorf("%w: booking is already %s", ErrInvalidStatusTransition, booking.Status)
	}

	err = s.bookingRepo.UpdateStatus(ctx, bookingID, newStatus, domain.OpenStatuses)
	if errors.Is(err, bookingRepo.ErrStatusChanged) {
		s.logger.Warn("UpdateStatus: booking id=%d reached a terminal status concurrently", bookingID)
		return fmt.Errorf("%w: booking status changed concurrently", ErrInvalidStatusTransition)
	}
	if err != nil {
		return s.repositoryError("UpdateStatus", fmt.Sprintf("id=%d", bookingID), err)
	}

	s.logger.Info("UpdateStatus: successfully updated booking id=%d to status=%s", bookingID, newStatus)
	return nil
}

// repositoryError переводит ошибку репозитория в ошибку сервиса и логирует её
func (s *Service) repositoryError(op, subject string, err error) error {
	if errors.Is(err, bookingRepo.ErrBookingNotFound) {
		s.logger.Warn("%s: booking %s not found", op, subject)
		return ErrBookingNotFound
	}
	s.logger.Error("%s: repository error for booking %s: %v", op, subject, err)
	return fmt.Errorf("%w: %s - repository error: %v", ErrInternal, op, err)
}
