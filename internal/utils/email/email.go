package email

import (
	"fmt"
	"net/smtp"
	"time"

	"github.com/jordan-wright/email"
	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"

	"homeledger/internal/config"
	"homeledger/internal/models"
)

// Sender handles sending emails via SMTP
type Sender struct {
	cfg    *config.Config
	logger *logrus.Logger
}

// NewSender creates a new email sender
func NewSender(cfg *config.Config, logger *logrus.Logger) *Sender {
	return &Sender{
		cfg:    cfg,
		logger: logger,
	}
}

// SendPaymentReminder sends a loan payment reminder email
func (s *Sender) SendPaymentReminder(to string, paymentDate time.Time, amount decimal.Decimal, isOverdue bool) error {
	e := email.NewEmail()
	e.From = s.cfg.SenderEmail
	e.To = []string{to}
	if isOverdue {
		e.Subject = "Overdue Loan Payment"
	} else {
		e.Subject = "Upcoming Loan Payment"
	}

	var body string
	if isOverdue {
		body = fmt.Sprintf(
			"Your loan payment of %s was due on %s and has not been recorded yet.\n"+
				"Record it in the tracker once it clears.\n",
			amount.StringFixed(2), paymentDate.Format("2006-01-02"),
		)
	} else {
		body = fmt.Sprintf(
			"Your next loan payment of %s is due on %s.\n",
			amount.StringFixed(2), paymentDate.Format("2006-01-02"),
		)
	}
	body += "\n- Home Ledger"
	e.Text = []byte(body)

	return s.send(e)
}

// SendChoresReminder sends a digest of overdue chores
func (s *Sender) SendChoresReminder(to string, overdue []models.ChoreStatus) error {
	e := email.NewEmail()
	e.From = s.cfg.SenderEmail
	e.To = []string{to}
	e.Subject = fmt.Sprintf("%d Overdue Chores", len(overdue))

	body := "The following chores are overdue:\n\n"
	for _, c := range overdue {
		body += fmt.Sprintf("- %s: %d days past its %d-day cycle\n",
			c.Name, *c.OverdueDays, c.FrequencyDays)
	}
	body += "\n- Home Ledger"
	e.Text = []byte(body)

	return s.send(e)
}

func (s *Sender) send(e *email.Email) error {
	addr := fmt.Sprintf("%s:%s", s.cfg.SMTPHost, s.cfg.SMTPPort)
	auth := smtp.PlainAuth("", s.cfg.SMTPUsername, s.cfg.SMTPPassword, s.cfg.SMTPHost)
	if err := e.Send(addr, auth); err != nil {
		s.logger.Errorf("Failed to send email to %s: %v", e.To[0], err)
		return fmt.Errorf("failed to send email: %w", err)
	}

	s.logger.Infof("Email sent to %s: %s", e.To[0], e.Subject)
	return nil
}
