package bookings

import (
	"bytes"
	"fmt"

	"github.com/phpdave11/gofpdf"
)

// renderTicketPDF builds the printable e-ticket for a confirmed booking.
func renderTicketPDF(d *BookingDetails) ([]byte, error) {
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetTitle("E-Ticket", false)
	pdf.AddPage()

	pdf.SetFont("Helvetica", "B", 18)
	pdf.Cell(0, 10, "TRAINWAY E-TICKET")
	pdf.Ln(12)

	pdf.SetFont("Helvetica", "", 12)
	lines := []string{
		fmt.Sprintf("PNR        : %s", d.PNR),
		fmt.Sprintf("Passenger  : %s", d.PassengerName),
		fmt.Sprintf("Train      : %s", d.TrainName),
		fmt.Sprintf("Seat       : %s", d.SeatNumber),
		fmt.Sprintf("From       : %s", d.DepartureStation),
		fmt.Sprintf("To         : %s", d.ArrivalStation),
		fmt.Sprintf("Departure  : %s", d.DepartureTime.Format("Mon, 02 Jan 2006 15:04")),
		fmt.Sprintf("Arrival    : %s", d.ArrivalTime.Format("Mon, 02 Jan 2006 15:04")),
		fmt.Sprintf("Status     : %s", d.Status),
	}
	for _, line := range lines {
		pdf.Cell(0, 7, line)
		pdf.Ln(7)
	}

	pdf.Ln(4)
	pdf.SetFont("Helvetica", "B", 12)
	pdf.Cell(0, 8, fmt.Sprintf("Amount paid: %.2f (%s, %s)", d.Amount, d.PaymentMethod, d.PaymentStatus))
	pdf.Ln(12)

	pdf.SetFont("Helvetica", "I", 10)
	pdf.MultiCell(0, 6, "This e-ticket is valid for one passenger. Carry a photo ID matching the passenger name when boarding.", "", "", false)

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("render ticket pdf: %w", err)
	}
	return buf.Bytes(), nil
}
