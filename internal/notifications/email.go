package notifications

import (
	"fmt"
	"net/smtp"
	"strings"

	"trainway/internal/shared/config"
)

// EmailSender delivers booking confirmations over SMTP.
type EmailSender interface {
	SendBookingConfirmation(event BookingConfirmation) error
}

type smtpSender struct {
	cfg config.EmailConfig
}

func NewSMTPSender(cfg config.EmailConfig) EmailSender {
	return &smtpSender{cfg: cfg}
}

func (s *smtpSender) SendBookingConfirmation(event BookingConfirmation) error {
	if s.cfg.SMTPHost == "" {
		return fmt.Errorf("smtp host not configured")
	}

	addr := fmt.Sprintf("%s:%d", s.cfg.SMTPHost, s.cfg.SMTPPort)
	auth := smtp.PlainAuth("", s.cfg.SMTPUsername, s.cfg.SMTPPassword, s.cfg.SMTPHost)

	msg := buildConfirmationMessage(s.cfg.FromEmail, event)
	if err := smtp.SendMail(addr, auth, s.cfg.FromEmail, []string{event.UserEmail}, msg); err != nil {
		return fmt.Errorf("send confirmation email: %w", err)
	}
	return nil
}

func buildConfirmationMessage(from string, event BookingConfirmation) []byte {
	var b strings.Builder
	fmt.Fprintf(&b, "From: %s\r\n", from)
	fmt.Fprintf(&b, "To: %s\r\n", event.UserEmail)
	fmt.Fprintf(&b, "Subject: Booking confirmed - %s\r\n", event.PNR)
	b.WriteString("MIME-Version: 1.0\r\nContent-Type: text/plain; charset=\"UTF-8\"\r\n\r\n")

	fmt.Fprintf(&b, "Hi %s,\r\n\r\n", event.UserName)
	fmt.Fprintf(&b, "Your booking is confirmed.\r\n\r\n")
	fmt.Fprintf(&b, "PNR:       %s\r\n", event.PNR)
	fmt.Fprintf(&b, "Train:     %s\r\n", event.TrainName)
	fmt.Fprintf(&b, "Seat:      %s\r\n", event.SeatNumber)
	fmt.Fprintf(&b, "Route:     %s to %s\r\n", event.DepartureStation, event.ArrivalStation)
	fmt.Fprintf(&b, "Departure: %s\r\n", event.DepartureTime.Format("Mon, 02 Jan 2006 15:04 MST"))
	fmt.Fprintf(&b, "Amount:    %.2f\r\n\r\n", event.Amount)
	b.WriteString("Safe travels!\r\n")

	return []byte(b.String())
}
