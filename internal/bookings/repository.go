package bookings

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"trainway/internal/catalog"
	"trainway/internal/users"
)

var (
	ErrScheduleNotFound = errors.New("schedule not found")
	ErrUserNotFound     = errors.New("user not found")
	ErrSeatsUnavailable = errors.New("no seats available")
	ErrScheduleDeparted = errors.New("schedule has already departed")
	ErrBookingNotFound  = errors.New("booking not found")
	ErrPNRNotFound      = errors.New("pnr not found")
)

// maxRefAttempts bounds PNR/transaction-id regeneration on duplicate keys.
const maxRefAttempts = 5

type Repository interface {
	// BookTicket reserves one seat atomically: it locks the train row via
	// the schedule join, validates availability and departure, derives the
	// seat number from the locked counter, writes booking + payment +
	// passenger snapshot, decrements the counter, and commits. Any failure
	// rolls the whole reservation back.
	BookTicket(ctx context.Context, userID, scheduleID uuid.UUID, paymentMethod string) (*BookingDetails, error)

	GetBookingDetails(ctx context.Context, bookingID uuid.UUID) (*BookingDetails, error)
	GetPNRStatus(ctx context.Context, pnr string) (*PNRStatus, error)
	GetUserPayments(ctx context.Context, userID uuid.UUID) ([]PaymentLedgerEntry, error)
	GetUserBookings(ctx context.Context, userID uuid.UUID) ([]BookingDetails, error)
}

type repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

// lockedSchedule is the row shape of the FOR UPDATE join read.
type lockedSchedule struct {
	ID             uuid.UUID `gorm:"column:id"`
	TrainID        uuid.UUID `gorm:"column:train_id"`
	Price          float64   `gorm:"column:price"`
	DepartureTime  time.Time `gorm:"column:departure_time"`
	TotalSeats     int       `gorm:"column:total_seats"`
	AvailableSeats int       `gorm:"column:available_seats"`
}

func (r *repository) BookTicket(ctx context.Context, userID, scheduleID uuid.UUID, paymentMethod string) (*BookingDetails, error) {
	var bookingID uuid.UUID

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		// Lock the train row through the join so concurrent bookings on any
		// schedule of the same train serialize on one counter.
		var sched lockedSchedule
		err := tx.Table("schedules").
			Select("schedules.id, schedules.train_id, schedules.price, schedules.departure_time, trains.total_seats, trains.available_seats").
			Joins("JOIN trains ON trains.id = schedules.train_id").
			Where("schedules.id = ?", scheduleID).
			Clauses(clause.Locking{Strength: "UPDATE"}).
			Take(&sched).Error
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrScheduleNotFound
			}
			return fmt.Errorf("lock schedule: %w", err)
		}

		if sched.AvailableSeats <= 0 {
			return ErrSeatsUnavailable
		}
		if sched.DepartureTime.Before(time.Now()) {
			return ErrScheduleDeparted
		}

		booking := &Booking{
			ID:         uuid.New(),
			UserID:     userID,
			ScheduleID: scheduleID,
			SeatNumber: SeatNumber(sched.TotalSeats, sched.AvailableSeats),
			Status:     BookingStatusConfirmed,
		}
		err = insertWithUniqueRetry(tx, "sp_booking", func() error {
			pnr, genErr := NewPNR()
			if genErr != nil {
				return genErr
			}
			booking.PNR = pnr
			return tx.Create(booking).Error
		})
		if err != nil {
			return fmt.Errorf("create booking: %w", err)
		}

		payment := &Payment{
			ID:            uuid.New(),
			BookingID:     booking.ID,
			Amount:        sched.Price,
			PaymentMethod: paymentMethod,
			Status:        PaymentStatusCompleted,
		}
		err = insertWithUniqueRetry(tx, "sp_payment", func() error {
			txnID, genErr := NewTransactionID()
			if genErr != nil {
				return genErr
			}
			payment.TransactionID = txnID
			return tx.Create(payment).Error
		})
		if err != nil {
			return fmt.Errorf("create payment: %w", err)
		}

		// Snapshot the traveller as they are right now. A missing user means
		// the caller sent a bad id; the reservation must not survive.
		var user users.User
		if err := tx.Where("id = ?", userID).Take(&user).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrUserNotFound
			}
			return fmt.Errorf("load user: %w", err)
		}

		passenger := &Passenger{
			ID:      uuid.New(),
			Name:    user.Name,
			Email:   user.Email,
			Contact: user.Contact,
			Address: user.Address,
		}
		if err := tx.Create(passenger).Error; err != nil {
			return fmt.Errorf("create passenger: %w", err)
		}

		result := tx.Model(&catalog.Train{}).
			Where("id = ? AND available_seats > 0", sched.TrainID).
			UpdateColumn("available_seats", gorm.Expr("available_seats - 1"))
		if result.Error != nil {
			return fmt.Errorf("decrement seats: %w", result.Error)
		}
		if result.RowsAffected == 0 {
			return ErrSeatsUnavailable
		}

		bookingID = booking.ID
		return nil
	})
	if err != nil {
		return nil, err
	}

	return r.GetBookingDetails(ctx, bookingID)
}

// insertWithUniqueRetry runs insert under a savepoint so a duplicate-key
// failure does not poison the enclosing transaction, then retries with a
// fresh reference. Any other error aborts.
func insertWithUniqueRetry(tx *gorm.DB, savepoint string, insert func() error) error {
	for attempt := 0; attempt < maxRefAttempts; attempt++ {
		if err := tx.SavePoint(savepoint).Error; err != nil {
			return err
		}
		err := insert()
		if err == nil {
			return nil
		}
		if !errors.Is(err, gorm.ErrDuplicatedKey) {
			return err
		}
		if err := tx.RollbackTo(savepoint).Error; err != nil {
			return err
		}
	}
	return fmt.Errorf("no unique reference after %d attempts", maxRefAttempts)
}

func (r *repository) GetBookingDetails(ctx context.Context, bookingID uuid.UUID) (*BookingDetails, error) {
	var details BookingDetails
	err := r.db.WithContext(ctx).
		Table("bookings").
		Select(`bookings.id, bookings.user_id, bookings.pnr, bookings.seat_number, bookings.status, bookings.created_at,
			users.name AS passenger_name, users.email AS passenger_email,
			trains.name AS train_name,
			schedules.departure_station, schedules.arrival_station, schedules.departure_time, schedules.arrival_time,
			payments.amount, payments.payment_method, payments.status AS payment_status, payments.transaction_id`).
		Joins("JOIN users ON users.id = bookings.user_id").
		Joins("JOIN schedules ON schedules.id = bookings.schedule_id").
		Joins("JOIN trains ON trains.id = schedules.train_id").
		Joins("JOIN payments ON payments.booking_id = bookings.id").
		Where("bookings.id = ?", bookingID).
		Take(&details).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrBookingNotFound
		}
		return nil, err
	}
	return &details, nil
}

func (r *repository) GetPNRStatus(ctx context.Context, pnr string) (*PNRStatus, error) {
	var status PNRStatus
	err := r.db.WithContext(ctx).
		Table("bookings").
		Select(`bookings.pnr, users.name AS passenger_name, trains.name AS train_name,
			bookings.seat_number, schedules.departure_station AS boarding_station,
			bookings.status, schedules.departure_time`).
		Joins("JOIN users ON users.id = bookings.user_id").
		Joins("JOIN schedules ON schedules.id = bookings.schedule_id").
		Joins("JOIN trains ON trains.id = schedules.train_id").
		Where("bookings.pnr = ?", pnr).
		Take(&status).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrPNRNotFound
		}
		return nil, err
	}
	return &status, nil
}

func (r *repository) GetUserPayments(ctx context.Context, userID uuid.UUID) ([]PaymentLedgerEntry, error) {
	var entries []PaymentLedgerEntry
	err := r.db.WithContext(ctx).
		Table("payments").
		Select(`payments.transaction_id, payments.amount, payments.payment_method, payments.status,
			payments.created_at, bookings.pnr, trains.name AS train_name,
			schedules.departure_station, schedules.arrival_station`).
		Joins("JOIN bookings ON bookings.id = payments.booking_id").
		Joins("JOIN schedules ON schedules.id = bookings.schedule_id").
		Joins("JOIN trains ON trains.id = schedules.train_id").
		Where("bookings.user_id = ?", userID).
		Order("payments.created_at DESC").
		Scan(&entries).Error
	return entries, err
}

func (r *repository) GetUserBookings(ctx context.Context, userID uuid.UUID) ([]BookingDetails, error) {
	var bookings []BookingDetails
	err := r.db.WithContext(ctx).
		Table("bookings").
		Select(`bookings.id, bookings.user_id, bookings.pnr, bookings.seat_number, bookings.status, bookings.created_at,
			trains.name AS train_name,
			schedules.departure_station, schedules.arrival_station, schedules.departure_time, schedules.arrival_time,
			payments.amount, payments.payment_method, payments.status AS payment_status, payments.transaction_id`).
		Joins("JOIN schedules ON schedules.id = bookings.schedule_id").
		Joins("JOIN trains ON trains.id = schedules.train_id").
		Joins("JOIN payments ON payments.booking_id = bookings.id").
		Where("bookings.user_id = ?", userID).
		Order("bookings.created_at DESC").
		Scan(&bookings).Error
	return bookings, err
}
