package notifications

import (
	"fmt"
	"net/http"

	"github.com/sendgrid/rest"
	"github.com/sendgrid/sendgrid-go"
	"github.com/sendgrid/sendgrid-go/helpers/mail"
	log "github.com/sirupsen/logrus"
)

// MailClient is satisfied by *sendgrid.Client.
type MailClient interface {
	Send(email *mail.SGMailV3) (*rest.Response, error)
}

type Sender struct {
	client   MailClient
	from     *mail.Email
	loginURL string
}

func NewSender(client MailClient, fromName, fromAddress, loginURL string) *Sender {
	return &Sender{
		client:   client,
		from:     mail.NewEmail(fromName, fromAddress),
		loginURL: loginURL,
	}
}

// NewSendGridSender builds a Sender on the SendGrid v3 API.
func NewSendGridSender(apiKey, fromName, fromAddress, loginURL string) *Sender {
	return NewSender(sendgrid.NewSendClient(apiKey), fromName, fromAddress, loginURL)
}

func (s *Sender) SendWelcomeEmail(destinationEmail string) error {
	subject := "Welcome to your payment dashboard"
	to := mail.NewEmail("Merchant", destinationEmail)
	plainTextContent := fmt.Sprintf("Your merchant account is ready. Sign in at %s to monitor your payments.", s.loginURL)
	htmlContent := fmt.Sprintf(`<p>Your merchant account is ready.</p><p><a href="%s">Sign in to your dashboard</a></p>`, s.loginURL)
	message := mail.NewSingleEmail(s.from, subject, to, plainTextContent, htmlContent)

	response, err := s.client.Send(message)
	if err != nil {
		return fmt.Errorf("sending welcome email: %w", err)
	}

	if response.StatusCode != http.StatusAccepted {
		log.Errorf("failure sending welcome email with sendgrid: %v", response.Body)
		return fmt.Errorf("sendgrid answered with status %d", response.StatusCode)
	}

	return nil
}
