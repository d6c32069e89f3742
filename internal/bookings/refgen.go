package bookings

import (
	"crypto/rand"
	"fmt"
	"math/big"
)

// SeatNumber derives the next seat label from the locked seat counters.
// Seats fill in order, so the next free seat is one past the sold count.
func SeatNumber(totalSeats, availableSeats int) string {
	return fmt.Sprintf("A%d", totalSeats-availableSeats+1)
}

// NewPNR mints a candidate booking reference, e.g. "PNR042317". Uniqueness is
// enforced by the database; callers retry on a duplicate.
func NewPNR() (string, error) {
	return randomRef("PNR")
}

// NewTransactionID mints a candidate payment reference, e.g. "TXN904112".
func NewTransactionID() (string, error) {
	return randomRef("TXN")
}

func randomRef(prefix string) (string, error) {
	n, err := rand.Int(rand.Reader, big.NewInt(1_000_000))
	if err != nil {
		return "", fmt.Errorf("generate %s reference: %w", prefix, err)
	}
	return fmt.Sprintf("%s%06d", prefix, n.Int64()), nil
}
