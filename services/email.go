package services

import (
	"fmt"
	"log"
	"strings"
	"time"

	"salon_booking_go/config"

	"github.com/resend/resend-go/v2"
)

// Email represents an email message
type Email struct {
	To       []string
	Subject  string
	HTMLBody string
	TextBody string
}

// SendEmail sends an email using Resend API
func SendEmail(cfg *config.Config, email *Email) error {
	// In development mode, log the email instead of sending
	if cfg.EmailTestMode {
		logEmailToConsole(email)
		return nil
	}

	// Validate configuration
	if cfg.ResendAPIKey == "" {
		return fmt.Errorf("RESEND_API_KEY not configured")
	}

	client := resend.NewClient(cfg.ResendAPIKey)

	fromAddress := fmt.Sprintf("%s <%s>", cfg.EmailFromName, cfg.EmailFrom)

	params := &resend.SendEmailRequest{
		From:    fromAddress,
		To:      email.To,
		Subject: email.Subject,
	}
	if email.HTMLBody != "" {
		params.Html = email.HTMLBody
	}
	if email.TextBody != "" {
		params.Text = email.TextBody
	}
	if params.Html == "" && params.Text == "" {
		return fmt.Errorf("email must have either HTMLBody or TextBody")
	}

	sent, err := client.Emails.Send(params)
	if err != nil {
		return fmt.Errorf("failed to send email via Resend: %v", err)
	}

	log.Printf("Email sent successfully via Resend (ID: %s) to: %v", sent.Id, email.To)
	return nil
}

// logEmailToConsole logs email details to console in development mode
func logEmailToConsole(email *Email) {
	separator := strings.Repeat("=", 80)
	log.Printf("\n%s\n📧 EMAIL (Development Mode - Not Actually Sent)\n%s", separator, separator)
	log.Printf("To: %v", email.To)
	log.Printf("Subject: %s", email.Subject)
	log.Printf("\n--- TEXT BODY ---\n%s", email.TextBody)
	log.Printf("%s\n", separator)
}

// SendEmailAsync sends an email asynchronously using a goroutine.
// Booking confirmations go through here: a delivery failure is logged
// and never surfaces to the caller, so a completed booking is never
// undone by a notification problem.
func SendEmailAsync(cfg *config.Config, email *Email) {
	// Create a copy of the email to avoid race conditions
	emailCopy := &Email{
		To:       append([]string{}, email.To...),
		Subject:  email.Subject,
		HTMLBody: email.HTMLBody,
		TextBody: email.TextBody,
	}

	go func(cfg *config.Config, email *Email) {
		if err := SendEmail(cfg, email); err != nil {
			log.Printf("Error sending async email: %v", err)
		}
	}(cfg, emailCopy)
}

const appointmentTimeLayout = "02/01/2006 à 15:04"

// BuildAppointmentConfirmationEmail creates the confirmation email sent
// to the client after a successful booking.
func BuildAppointmentConfirmationEmail(clientEmail, clientName, serviceName string, appointmentTime time.Time, appointmentID string) *Email {
	when := appointmentTime.Format(appointmentTimeLayout)
	text := fmt.Sprintf(
		"Bonjour %s,\n\nVotre rendez-vous est confirmé.\n\nService : %s\nDate : %s\nRéférence : %s\n\nÀ bientôt,\nWawa Salon",
		clientName, serviceName, when, appointmentID)
	html := fmt.Sprintf(
		"<p>Bonjour %s,</p><p>Votre rendez-vous est confirmé.</p><ul><li>Service : %s</li><li>Date : %s</li><li>Référence : %s</li></ul><p>À bientôt,<br>Wawa Salon</p>",
		clientName, serviceName, when, appointmentID)

	return &Email{
		To:       []string{clientEmail},
		Subject:  fmt.Sprintf("Confirmation de votre rendez-vous du %s", when),
		TextBody: text,
		HTMLBody: html,
	}
}

// BuildNewBookingNotificationEmail creates the notification email sent
// to the salon operator when a client books.
func BuildNewBookingNotificationEmail(adminEmail, clientName, clientPhone string, clientEmail *string, serviceName string, appointmentTime time.Time, appointmentID string) *Email {
	when := appointmentTime.Format(appointmentTimeLayout)
	contact := clientPhone
	if clientEmail != nil && *clientEmail != "" {
		contact = fmt.Sprintf("%s / %s", clientPhone, *clientEmail)
	}
	text := fmt.Sprintf(
		"Nouveau rendez-vous.\n\nClient : %s\nContact : %s\nService : %s\nDate : %s\nRéférence : %s",
		clientName, contact, serviceName, when, appointmentID)

	return &Email{
		To:       []string{adminEmail},
		Subject:  fmt.Sprintf("Nouveau rendez-vous : %s le %s", serviceName, when),
		TextBody: text,
	}
}
