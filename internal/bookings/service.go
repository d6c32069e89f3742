package bookings

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"

	"trainway/internal/notifications"
	"trainway/pkg/logger"
)

// ErrTransactionFailed hides infrastructure failures behind one message; the
// cause is logged, never returned to the client.
var ErrTransactionFailed = errors.New("booking failed")

// NotificationPublisher publishes a confirmation after the booking commits.
// Failures here never undo or fail the booking.
type NotificationPublisher interface {
	PublishBookingConfirmed(ctx context.Context, event notifications.BookingConfirmation) error
}

type Service interface {
	BookTicket(ctx context.Context, req *BookTicketRequest) (*BookingDetails, error)
	GetBookingDetails(ctx context.Context, bookingID uuid.UUID) (*BookingDetails, error)
	GetPNRStatus(ctx context.Context, pnr string) (*PNRStatus, error)
	GetUserPayments(ctx context.Context, userID uuid.UUID) ([]PaymentLedgerEntry, error)
	GetUserBookings(ctx context.Context, userID uuid.UUID) ([]BookingDetails, error)
}

type service struct {
	repo      Repository
	publisher NotificationPublisher
	logger    *logger.Logger
}

// NewService wires the transactor. publisher may be nil when the
// notification pipeline is disabled.
func NewService(repo Repository, publisher NotificationPublisher, log *logger.Logger) Service {
	return &service{
		repo:      repo,
		publisher: publisher,
		logger:    log,
	}
}

func (s *service) BookTicket(ctx context.Context, req *BookTicketRequest) (*BookingDetails, error) {
	userID, err := uuid.Parse(req.UserID)
	if err != nil {
		return nil, ErrUserNotFound
	}
	scheduleID, err := uuid.Parse(req.ScheduleID)
	if err != nil {
		return nil, ErrScheduleNotFound
	}

	details, err := s.repo.BookTicket(ctx, userID, scheduleID, req.PaymentMethod)
	if err != nil {
		switch {
		case errors.Is(err, ErrScheduleNotFound),
			errors.Is(err, ErrUserNotFound),
			errors.Is(err, ErrSeatsUnavailable),
			errors.Is(err, ErrScheduleDeparted):
			s.logger.LogBookingRejected(ctx, req.ScheduleID, req.UserID, err.Error())
			return nil, err
		default:
			s.logger.ErrorWithContext(ctx, "booking transaction failed", err, map[string]interface{}{
				"user_id":     req.UserID,
				"schedule_id": req.ScheduleID,
			})
			return nil, ErrTransactionFailed
		}
	}

	s.logger.LogBookingCreated(ctx, details.ID.String(), details.PNR, req.ScheduleID, req.UserID)
	s.publishConfirmation(ctx, details)

	return details, nil
}

func (s *service) publishConfirmation(ctx context.Context, details *BookingDetails) {
	if s.publisher == nil {
		return
	}

	event := notifications.BookingConfirmation{
		BookingID:        details.ID.String(),
		PNR:              details.PNR,
		UserName:         details.PassengerName,
		UserEmail:        details.PassengerEmail,
		TrainName:        details.TrainName,
		SeatNumber:       details.SeatNumber,
		DepartureStation: details.DepartureStation,
		ArrivalStation:   details.ArrivalStation,
		DepartureTime:    details.DepartureTime,
		Amount:           details.Amount,
		BookedAt:         time.Now().UTC(),
	}
	if err := s.publisher.PublishBookingConfirmed(ctx, event); err != nil {
		s.logger.Warn("booking confirmation publish failed",
			"booking_id", details.ID.String(),
			"pnr", details.PNR,
			"error", err,
		)
	}
}

func (s *service) GetBookingDetails(ctx context.Context, bookingID uuid.UUID) (*BookingDetails, error) {
	return s.repo.GetBookingDetails(ctx, bookingID)
}

func (s *service) GetPNRStatus(ctx context.Context, pnr string) (*PNRStatus, error) {
	return s.repo.GetPNRStatus(ctx, pnr)
}

func (s *service) GetUserPayments(ctx context.Context, userID uuid.UUID) ([]PaymentLedgerEntry, error) {
	return s.repo.GetUserPayments(ctx, userID)
}

func (s *service) GetUserBookings(ctx context.Context, userID uuid.UUID) ([]BookingDetails, error) {
	return s.repo.GetUserBookings(ctx, userID)
}
