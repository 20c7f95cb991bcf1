package mail

import (
	"context"
	"fmt"

	gomail "github.com/wneessen/go-mail"

	"github.com/sbilibin2017/gw-microblog/internal/models"
)

// SMTPSender sends messages through an SMTP relay.
type SMTPSender struct {
	host     string
	port     int
	useTLS   bool
	username string
	password string
}

// NewSMTPSender creates an SMTPSender. Authentication is used only when username is set.
func NewSMTPSender(host string, port int, useTLS bool, username, password string) *SMTPSender {
	return &SMTPSender{
		host:     host,
		port:     port,
		useTLS:   useTLS,
		username: username,
		password: password,
	}
}

func (s *SMTPSender) options() []gomail.Option {
	opts := []gomail.Option{gomail.WithPort(s.port)}
	if s.useTLS {
		opts = append(opts, gomail.WithTLSPolicy(gomail.TLSMandatory))
	} else {
		opts = append(opts, gomail.WithTLSPolicy(gomail.NoTLS))
	}
	if s.username != "" {
		opts = append(opts,
			gomail.WithSMTPAuth(gomail.SMTPAuthPlain),
			gomail.WithUsername(s.username),
			gomail.WithPassword(s.password),
		)
	}
	return opts
}

// Send delivers msg. HTML is attached as an alternative to the text body.
func (s *SMTPSender) Send(ctx context.Context, msg models.MailMessage) error {
	m := gomail.NewMsg()
	if err := m.From(msg.Sender); err != nil {
		return fmt.Errorf("invalid sender: %w", err)
	}
	if err := m.To(msg.Recipients...); err != nil {
		return fmt.Errorf("invalid recipients: %w", err)
	}
	m.Subject(msg.Subject)
	m.SetBodyString(gomail.TypeTextPlain, msg.TextBody)
	if msg.HTMLBody != "" {
		m.AddAlternativeString(gomail.TypeTextHTML, msg.HTMLBody)
	}

	client, err := gomail.NewClient(s.host, s.options()...)
	if err != nil {
		return fmt.Errorf("create smtp client: %w", err)
	}
	if err := client.DialAndSendWithContext(ctx, m); err != nil {
		return fmt.Errorf("send mail: %w", err)
	}
	return nil
}

// LogSender logs messages instead of sending them. Used when no SMTP server is configured.
type LogSender struct{}

func (LogSender) Send(ctx context.Context, msg models.MailMessage) error {
	logMessage("mail not sent, no MAIL_SERVER configured", msg)
	return nil
}
