package utils

import (
	"fmt"
	"sync"
	"time"

	"saasquatch/config"

	"github.com/sirupsen/logrus"
	"gopkg.in/gomail.v2"
)

// MailSender is the outbound email transport used by the dispatcher and the
// test-send endpoint.
type MailSender interface {
	Send(to, subject, body string) error
}

// SentRecord captures one delivery (or simulated delivery in dry-run mode).
type SentRecord struct {
	To      string    `json:"to"`
	Subject string    `json:"subject"`
	SentAt  time.Time `json:"sent_at"`
}

// Mailer sends email over SMTP via gomail. In dry-run mode it never opens a
// connection, reports success and keeps a record of what it would have sent.
type Mailer struct {
	cfg    config.SMTPConfig
	logger *logrus.Logger

	mu   sync.Mutex
	sent []SentRecord
}

func NewMailer(cfg config.SMTPConfig) *Mailer {
	logger := logrus.New()
	logger.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	return &Mailer{
		cfg:    cfg,
		logger: logger,
	}
}

func (m *Mailer) Send(to, subject, body string) error {
	if m.cfg.DryRun {
		m.logger.WithFields(logrus.Fields{
			"to":      to,
			"subject": subject,
		}).Info("[DRY_RUN] would send email")
		m.record(to, subject)
		return nil
	}

	if m.cfg.Host == "" || m.cfg.Username == "" || m.cfg.Password == "" || m.cfg.FromEmail == "" {
		return fmt.Errorf("SMTP not configured: set SMTP_HOST, SMTP_PORT, SMTP_USER, SMTP_PASS, SMTP_FROM or DRY_RUN=true")
	}

	msg := gomail.NewMessage()
	msg.SetHeader("From", m.cfg.FromEmail)
	msg.SetHeader("To", to)
	msg.SetHeader("Subject", subject)
	msg.SetBody("text/plain", body)

	dialer := gomail.NewDialer(m.cfg.Host, m.cfg.Port, m.cfg.Username, m.cfg.Password)
	if err := dialer.DialAndSend(msg); err != nil {
		m.logger.WithError(err).WithField("to", to).Error("email send failed")
		return fmt.Errorf("error sending email: %w", err)
	}

	m.record(to, subject)
	return nil
}

func (m *Mailer) record(to, subject string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.sent = append(m.sent, SentRecord{To: to, Subject: subject, SentAt: time.Now().UTC()})
}

// SentRecords returns a copy of everything the mailer has delivered (or
// simulated in dry-run mode) since startup.
func (m *Mailer) SentRecords() []SentRecord {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]SentRecord, len(m.sent))
	copy(out, m.sent)
	return out
}
