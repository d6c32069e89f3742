package bookings

import (
	"regexp"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSeatNumber(t *testing.T) {
	tests := []struct {
		name           string
		totalSeats     int
		availableSeats int
		want           string
	}{
		{"empty train sells seat one", 100, 100, "A1"},
		{"half full", 100, 50, "A51"},
		{"last seat", 100, 1, "A100"},
		{"small train", 3, 2, "A2"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, SeatNumber(tt.totalSeats, tt.availableSeats))
		})
	}
}

func TestNewPNRFormat(t *testing.T) {
	format := regexp.MustCompile(`^PNR\d{6}$`)
	for i := 0; i < 100; i++ {
		pnr, err := NewPNR()
		require.NoError(t, err)
		assert.Regexp(t, format, pnr)
	}
}

func TestNewTransactionIDFormat(t *testing.T) {
	format := regexp.MustCompile(`^TXN\d{6}$`)
	for i := 0; i < 100; i++ {
		txn, err := NewTransactionID()
		require.NoError(t, err)
		assert.Regexp(t, format, txn)
	}
}
