package notification

import (
	"crypto/tls"
	"fmt"

	"sftails/models"

	"github.com/wneessen/go-mail"
)

// EmailSender sends booking lifecycle emails over SMTP. Used only by the
// queue worker, never directly from a request path.
type EmailSender struct {
	host      string
	port      int
	user      string
	password  string
	fromEmail string
}

// NewEmailSender creates an SMTP email sender.
func NewEmailSender(host string, port int, user, password, fromEmail string) *EmailSender {
	return &EmailSender{
		host:      host,
		port:      port,
		user:      user,
		password:  password,
		fromEmail: fromEmail,
	}
}

// SendBookingEvent renders and sends the email for one booking event.
func (s *EmailSender) SendBookingEvent(p models.BookingEventPayload) error {
	subject, body := renderBookingEvent(p)

	m := mail.NewMsg()
	if err := m.From(fmt.Sprintf("SF Tails <%s>", s.fromEmail)); err != nil {
		return fmt.Errorf("failed to set sender: %w", err)
	}
	if err := m.To(p.RecipientEmail); err != nil {
		return fmt.Errorf("failed to set recipient: %w", err)
	}
	m.Subject(subject)
	m.SetBodyString(mail.TypeTextHTML, body)

	client, err := mail.NewClient(s.host,
		mail.WithPort(s.port),
		mail.WithSMTPAuth(mail.SMTPAuthPlain),
		mail.WithUsername(s.user),
		mail.WithPassword(s.password),
		mail.WithTLSPolicy(mail.TLSMandatory),
		mail.WithTLSConfig(&tls.Config{ServerName: s.host}),
	)
	if err != nil {
		return fmt.Errorf("failed to create SMTP client: %w", err)
	}

	if err := client.DialAndSend(m); err != nil {
		return fmt.Errorf("failed to send booking email: %w", err)
	}
	return nil
}

func renderBookingEvent(p models.BookingEventPayload) (subject, body string) {
	switch p.Event {
	case models.EventBookingConfirmed:
		subject = "Your Booking is Confirmed!"
		body = fmt.Sprintf(
			`<p>Hi %s,</p>
<p>Your booking for <strong>%s</strong> on <strong>%s</strong> at <strong>%s</strong> has been confirmed.</p>
<p>Thank you for choosing SF Tails!</p>`,
			p.RecipientName, p.Booking.ServiceType, p.Booking.Date, p.Booking.Time)
	default:
		subject = "We received your booking request"
		body = fmt.Sprintf(
			`<p>Hi %s,</p>
<p>We received your booking request for <strong>%s</strong> on <strong>%s</strong> at <strong>%s</strong>. Our staff will confirm it shortly.</p>
<p>Thank you for choosing SF Tails!</p>`,
			p.RecipientName, p.Booking.ServiceType, p.Booking.Date, p.Booking.Time)
	}
	return subject, body
}
