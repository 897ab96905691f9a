package services

import (
	"testing"
	"time"

	"salon_booking_go/config"

	"github.com/stretchr/testify/assert"
)

func TestBuildAppointmentConfirmationEmail(t *testing.T) {
	when := time.Date(2027, 1, 4, 9, 0, 0, 0, time.UTC)
	email := BuildAppointmentConfirmationEmail(
		"claire@example.com", "Claire Durand", "COIFFURE", when, "apt-123")

	assert.Equal(t, []string{"claire@example.com"}, email.To)
	assert.Contains(t, email.Subject, "04/01/2027 à 09:00")
	assert.Contains(t, email.TextBody, "Claire Durand")
	assert.Contains(t, email.TextBody, "COIFFURE")
	assert.Contains(t, email.TextBody, "apt-123")
	assert.NotEmpty(t, email.HTMLBody)
}

func TestBuildNewBookingNotificationEmail(t *testing.T) {
	when := time.Date(2027, 1, 4, 9, 0, 0, 0, time.UTC)

	t.Run("with client email", func(t *testing.T) {
		clientEmail := "claire@example.com"
		email := BuildNewBookingNotificationEmail(
			"admin@wawasalon.fr", "Claire Durand", "0600000000", &clientEmail,
			"COIFFURE", when, "apt-123")

		assert.Equal(t, []string{"admin@wawasalon.fr"}, email.To)
		assert.Contains(t, email.TextBody, "0600000000 / claire@example.com")
	})

	t.Run("phone only", func(t *testing.T) {
		email := BuildNewBookingNotificationEmail(
			"admin@wawasalon.fr", "Claire Durand", "0600000000", nil,
			"COIFFURE", when, "apt-123")

		assert.Contains(t, email.TextBody, "Contact : 0600000000\n")
		assert.NotContains(t, email.TextBody, "claire@example.com")
	})
}

func TestSendEmailTestMode(t *testing.T) {
	cfg := &config.Config{EmailTestMode: true}
	email := &Email{
		To:       []string{"claire@example.com"},
		Subject:  "Test",
		TextBody: "Body",
	}
	// Test mode logs instead of sending and never errors
	assert.NoError(t, SendEmail(cfg, email))
}

func TestSendEmailRequiresAPIKey(t *testing.T) {
	cfg := &config.Config{EmailTestMode: false}
	email := &Email{
		To:       []string{"claire@example.com"},
		Subject:  "Test",
		TextBody: "Body",
	}
	assert.Error(t, SendEmail(cfg, email))
}
