package notifications

import "time"

// BookingConfirmation is the event published after a booking commits. It
// carries everything the email needs so the consumer never reads the
// database.
type BookingConfirmation struct {
	BookingID        string    `json:"booking_id"`
	PNR              string    `json:"pnr"`
	UserName         string    `json:"user_name"`
	UserEmail        string    `json:"user_email"`
	TrainName        string    `json:"train_name"`
	SeatNumber       string    `json:"seat_number"`
	DepartureStation string    `json:"departure_station"`
	ArrivalStation   string    `json:"arrival_station"`
	DepartureTime    time.Time `json:"departure_time"`
	Amount           float64   `json:"amount"`
	BookedAt         time.Time `json:"booked_at"`
}
