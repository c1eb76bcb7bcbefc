package utils

import (
	"fmt"

	"github.com/rs/zerolog/log"
	"github.com/sendgrid/sendgrid-go"
	"github.com/sendgrid/sendgrid-go/helpers/mail"
)

// Mailer sends emails through SendGrid
type Mailer struct {
	APIKey    string
	FromName  string
	FromEmail string
}

// BuildShareEmail composes the message sent when a coordination is shared
func (m *Mailer) BuildShareEmail(toName, toEmail, senderName, link, imageURL string) *mail.SGMailV3 {
	from := mail.NewEmail(m.FromName, m.FromEmail)
	to := mail.NewEmail(toName, toEmail)

	if senderName == "" {
		senderName = "Someone"
	}
	subject := fmt.Sprintf("%s shared a coordination with you", senderName)
	text := fmt.Sprintf("%s thinks you'll like this look: %s", senderName, link)
	html := fmt.Sprintf(`<p>%s thinks you'll like this look.</p><p><a href="%s"><img src="%s" alt="coordination" width="300"></a></p><p><a href="%s">Open in RetailNext</a></p>`,
		senderName, link, imageURL, link)

	return mail.NewSingleEmail(from, subject, to, text, html)
}

// Send delivers a message using SendGrid
func (m *Mailer) Send(message *mail.SGMailV3) error {
	if m.APIKey == "" {
		return fmt.Errorf("SENDGRID_API_KEY is not set in environment variables")
	}

	client := sendgrid.NewSendClient(m.APIKey)
	response, err := client.Send(message)
	if err != nil {
		return fmt.Errorf("sendgrid send: %w", err)
	}

	if response.StatusCode >= 400 {
		log.Error().Int("status", response.StatusCode).Str("body", response.Body).Msg("SendGrid API error")
		return fmt.Errorf("failed to send email, status code: %d", response.StatusCode)
	}

	log.Info().Int("status", response.StatusCode).Msg("email sent")
	return nil
}
