// Package notifier consumes alert events from the queues and delivers them
// to the operator mailbox over SMTP.
package notifier

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"strings"

	"github.com/google/uuid"

	"github.com/afrikanet/satellite-console/internal/lib/sl"
	"github.com/afrikanet/satellite-console/internal/lib/smtp"
	"github.com/afrikanet/satellite-console/internal/models"
)

// SenderService turns alert events into operator e-mails.
type SenderService struct {
	transport     smtp.TransportInterface
	operatorEmail string
	log           *slog.Logger
}

// NewSenderService creates a SenderService delivering to operatorEmail.
func NewSenderService(transport smtp.TransportInterface, operatorEmail string, log *slog.Logger) *SenderService {
	return &SenderService{
		transport:     transport,
		operatorEmail: operatorEmail,
		log:           log,
	}
}

// SendExpiringAlert handles an event from the alert.expiring queue.
func (s *SenderService) SendExpiringAlert(body []byte) error {
	return s.sendAlert(body, "Abonnement satellite en fin de période")
}

// SendExpiredAlert handles an event from the alert.expired queue.
func (s *SenderService) SendExpiredAlert(body []byte) error {
	return s.sendAlert(body, "Abonnement satellite expiré")
}

func (s *SenderService) sendAlert(body []byte, subject string) error {
	var event models.Alert
	if err := json.Unmarshal(body, &event); err != nil {
		s.log.Error("failed to unmarshal alert event", sl.Err(err))
		return fmt.Errorf("error unmarshalling message: %w", err)
	}

	bodyText := fmt.Sprintf("Bonjour,\n\n%s\n\nClient : %s\nAbonnement : %s\n\nMerci de contacter le client pour le renouvellement.",
		event.Message, event.ClientName, event.SubscriptionID)

	return s.sendEmail([]string{s.operatorEmail}, subject, bodyText)
}

func (s *SenderService) sendEmail(to []string, subject, bodyText string) error {
	msg := strings.Join([]string{
		"From: " + s.transport.GetSMTPUser(),
		"To: " + strings.Join(to, ";"),
		"Subject: " + subject,
		"Message-ID: <" + uuid.NewString() + "@afrikanet.com>",
		"MIME-Version: 1.0",
		"Content-Type: text/plain; charset=\"UTF-8\"",
		"",
		bodyText,
	}, "\r\n")

	client, err := s.transport.Connect()
	if err != nil {
		s.log.Error("failed to connect to SMTP server", sl.Err(err))
		return err
	}
	defer func() { _ = client.Close() }()

	if err := client.Mail(s.transport.GetSMTPUser()); err != nil {
		s.log.Error("failed to set MAIL FROM", slog.String("from", s.transport.GetSMTPUser()), sl.Err(err))
		return err
	}
	for _, addr := range to {
		if err := client.Rcpt(addr); err != nil {
			s.log.Error("failed to set RCPT TO", slog.String("recipient", addr), sl.Err(err))
			return err
		}
	}

	wc, err := client.Data()
	if err != nil {
		s.log.Error("failed to get data writer", sl.Err(err))
		return err
	}
	if _, err = wc.Write([]byte(msg)); err != nil {
		s.log.Error("failed to write email body", sl.Err(err))
		return err
	}
	if err = wc.Close(); err != nil {
		s.log.Error("failed to close data writer", sl.Err(err))
		return err
	}
	if err = client.Quit(); err != nil {
		s.log.Error("failed to quit SMTP client", sl.Err(err))
		return err
	}

	s.log.Info("alert email sent", slog.Any("to", to), slog.String("subject", subject))
	return nil
}
