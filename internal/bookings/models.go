package bookings

import (
	"time"

	"github.com/google/uuid"
)

const (
	BookingStatusConfirmed = "confirmed"

	PaymentStatusCompleted = "completed"
	PaymentStatusPending   = "pending"
	PaymentStatusRefunded  = "refunded"
)

// Booking is one confirmed seat on a schedule. The PNR is the public
// reference handed to the traveller; seat_number is derived from the train's
// seat counter at booking time.
type Booking struct {
	ID         uuid.UUID `json:"id" gorm:"primaryKey;type:uuid"`
	PNR        string    `json:"pnr" gorm:"column:pnr;uniqueIndex;not null"`
	UserID     uuid.UUID `json:"user_id" gorm:"type:uuid;index;not null"`
	ScheduleID uuid.UUID `json:"schedule_id" gorm:"type:uuid;index;not null"`
	SeatNumber string    `json:"seat_number" gorm:"not null"`
	Status     string    `json:"status" gorm:"not null"`
	CreatedAt  time.Time `json:"created_at"`
}

// Payment records the charge for exactly one booking.
type Payment struct {
	ID            uuid.UUID `json:"id" gorm:"primaryKey;type:uuid"`
	BookingID     uuid.UUID `json:"booking_id" gorm:"type:uuid;uniqueIndex;not null"`
	Amount        float64   `json:"amount" gorm:"not null"`
	PaymentMethod string    `json:"payment_method" gorm:"not null"`
	TransactionID string    `json:"transaction_id" gorm:"uniqueIndex;not null"`
	Status        string    `json:"status" gorm:"not null"`
	CreatedAt     time.Time `json:"created_at"`
}

// Passenger is a point-in-time copy of the traveller's contact details taken
// when the booking commits. It carries its own id so later edits to the user
// account never rewrite an issued ticket.
type Passenger struct {
	ID        uuid.UUID `json:"id" gorm:"primaryKey;type:uuid"`
	Name      string    `json:"name" gorm:"not null"`
	Email     string    `json:"email" gorm:"not null"`
	Contact   string    `json:"contact"`
	Address   string    `json:"address"`
	CreatedAt time.Time `json:"created_at"`
}

func (Booking) TableName() string {
	return "bookings"
}

func (Payment) TableName() string {
	return "payments"
}

func (Passenger) TableName() string {
	return "passengers"
}

// BookTicketRequest is the POST /bookings body.
type BookTicketRequest struct {
	UserID        string `json:"userId" validate:"required,uuid"`
	ScheduleID    string `json:"scheduleId" validate:"required,uuid"`
	PaymentMethod string `json:"paymentMethod" validate:"required,min=2,max=50"`
}

// BookingDetails is the joined booking view returned after a successful
// booking and from the history endpoint.
type BookingDetails struct {
	ID               uuid.UUID `json:"id"`
	UserID           uuid.UUID `json:"user_id"`
	PNR              string    `json:"pnr" gorm:"column:pnr"`
	SeatNumber       string    `json:"seat_number"`
	Status           string    `json:"status"`
	PassengerName    string    `json:"passenger_name,omitempty"`
	PassengerEmail   string    `json:"passenger_email,omitempty"`
	TrainName        string    `json:"train_name"`
	DepartureStation string    `json:"departure_station"`
	ArrivalStation   string    `json:"arrival_station"`
	DepartureTime    time.Time `json:"departure_time"`
	ArrivalTime      time.Time `json:"arrival_time"`
	Amount           float64   `json:"amount"`
	PaymentMethod    string    `json:"payment_method"`
	PaymentStatus    string    `json:"payment_status"`
	TransactionID    string    `json:"transaction_id"`
	CreatedAt        time.Time `json:"created_at"`
}

// PNRStatus is the public lookup view for GET /pnr/:pnr.
type PNRStatus struct {
	PNR             string    `json:"pnr" gorm:"column:pnr"`
	PassengerName   string    `json:"passenger_name"`
	TrainName       string    `json:"train_name"`
	SeatNumber      string    `json:"seat_number"`
	BoardingStation string    `json:"boarding_station"`
	Status          string    `json:"status"`
	DepartureTime   time.Time `json:"departure_time"`
}

// PaymentLedgerEntry is one row of a user's payment history.
type PaymentLedgerEntry struct {
	TransactionID    string    `json:"transaction_id"`
	Amount           float64   `json:"amount"`
	PaymentMethod    string    `json:"payment_method"`
	Status           string    `json:"status"`
	PNR              string    `json:"pnr" gorm:"column:pnr"`
	TrainName        string    `json:"train_name"`
	DepartureStation string    `json:"departure_station"`
	ArrivalStation   string    `json:"arrival_station"`
	CreatedAt        time.Time `json:"created_at"`
}
