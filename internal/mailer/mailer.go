package mailer

import (
	"context"
	"fmt"
	"net/smtp"

	"go.uber.org/zap"

	"github.com/sanjay9585813868/Portfolio/internal/config"
	"github.com/sanjay9585813868/Portfolio/internal/domain"
)

// Notifier relays a contact-form submission to the site owner. Delivery is
// synchronous and one-shot: no queue, no retry.
type Notifier interface {
	ContactSubmitted(ctx context.Context, rec domain.ContactRecord) error
}

// sendFunc matches smtp.SendMail, injectable for tests.
type sendFunc func(addr string, a smtp.Auth, from string, to []string, msg []byte) error

type smtpNotifier struct {
	cfg  config.MailConfig
	log  *zap.Logger
	send sendFunc
}

func NewSMTPNotifier(cfg config.MailConfig, log *zap.Logger) Notifier {
	return &smtpNotifier{cfg: cfg, log: log, send: smtp.SendMail}
}

func (n *smtpNotifier) ContactSubmitted(ctx context.Context, rec domain.ContactRecord) error {
	subject := "New Contact Form Submission"
	body := fmt.Sprintf(
		"New contact details received:\n"+
			"    Name: %s\n"+
			"    Phone: %s\n"+
			"    Email: %s\n"+
			"    Message: %s\n",
		rec.Field("name"), rec.Field("phone"), rec.Field("email"), rec.Field("message"))

	if !n.cfg.Enabled {
		n.log.Info("Mail disabled, skipping send",
			zap.String("to", n.cfg.To),
			zap.String("subject", subject))
		return nil
	}

	message := []byte(fmt.Sprintf(
		"From: %s\r\n"+
			"To: %s\r\n"+
			"Subject: %s\r\n"+
			"MIME-Version: 1.0\r\n"+
			"Content-Type: text/plain; charset=UTF-8\r\n"+
			"\r\n"+
			"%s\r\n",
		n.cfg.Username, n.cfg.To, subject, body))

	auth := smtp.PlainAuth("", n.cfg.Username, n.cfg.Password, n.cfg.Host)
	addr := n.cfg.Host + ":" + n.cfg.Port

	if err := n.send(addr, auth, n.cfg.Username, []string{n.cfg.To}, message); err != nil {
		n.log.Error("Failed to send contact mail",
			zap.String("to", n.cfg.To),
			zap.Error(err))
		return fmt.Errorf("%w: %v", domain.ErrMailDelivery, err)
	}

	n.log.Info("Contact mail sent", zap.String("to", n.cfg.To))
	return nil
}
