package notifier

import (
	"context"
	"fmt"
	"time"

	"github.com/wneessen/go-mail"

	"ipoalert/internal/config"
)

const smtpTimeout = 30 * time.Second

// Mailer delivers one rendered report.
type Mailer interface {
	Send(ctx context.Context, subject, htmlBody string) error
}

// SMTPMailer sends mail through an authenticated STARTTLS SMTP session.
type SMTPMailer struct {
	Host      string
	Port      int
	Sender    string
	Password  string
	Recipient string
}

// NewSMTPMailer creates a mailer for the configured server and recipient.
func NewSMTPMailer(cfg *config.Config) *SMTPMailer {
	return &SMTPMailer{
		Host:      cfg.Mail.Host,
		Port:      cfg.Mail.Port,
		Sender:    cfg.Mail.Sender,
		Password:  cfg.Mail.Password,
		Recipient: cfg.Mail.Recipient,
	}
}

func (m *SMTPMailer) Send(ctx context.Context, subject, htmlBody string) error {
	msg := mail.NewMsg()
	if err := msg.From(m.Sender); err != nil {
		return fmt.Errorf("set sender: %w", err)
	}
	if err := msg.To(m.Recipient); err != nil {
		return fmt.Errorf("set recipient: %w", err)
	}
	msg.Subject(subject)
	msg.SetBodyString(mail.TypeTextHTML, htmlBody)

	client, err := mail.NewClient(m.Host,
		mail.WithPort(m.Port),
		mail.WithTLSPolicy(mail.TLSMandatory),
		mail.WithSMTPAuth(mail.SMTPAuthPlain),
		mail.WithUsername(m.Sender),
		mail.WithPassword(m.Password),
		mail.WithTimeout(smtpTimeout),
	)
	if err != nil {
		return fmt.Errorf("smtp client: %w", err)
	}

	if err := client.DialAndSendWithContext(ctx, msg); err != nil {
		return fmt.Errorf("send mail: %w", err)
	}
	return nil
}
