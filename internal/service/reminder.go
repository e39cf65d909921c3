package service

import (
	"time"

	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"

	"homeledger/internal/models"
)

// Mailer sends reminder emails
type Mailer interface {
	SendPaymentReminder(to string, paymentDate time.Time, amount decimal.Decimal, isOverdue bool) error
	SendChoresReminder(to string, overdue []models.ChoreStatus) error
}

// Reminder runs the scheduled reminder check
type Reminder struct {
	svc      *Service
	mailer   Mailer
	log      *logrus.Logger
	to       string
	leadDays int
}

// NewReminder initializes the reminder job
func NewReminder(svc *Service, mailer Mailer, log *logrus.Logger, to string, leadDays int) *Reminder {
	return &Reminder{svc: svc, mailer: mailer, log: log, to: to, leadDays: leadDays}
}

// Run checks the loan and chore state and sends at most one email per
// concern. Failures are logged and never propagate; the next scheduled run
// retries from scratch.
func (r *Reminder) Run() {
	if r.to == "" {
		r.log.Debug("No reminder recipient configured, skipping reminder run")
		return
	}

	r.checkLoan()
	r.checkChores()
}

func (r *Reminder) checkLoan() {
	summary, err := r.svc.Summary()
	if err != nil {
		r.log.Errorf("Reminder: failed to load loan summary: %v", err)
		return
	}
	if !summary.RemainingBalance.IsPositive() {
		return
	}

	now := r.svc.now()
	due := summary.NextPaymentDate
	overdue := due.Before(now)
	upcoming := !overdue && due.Sub(now) <= time.Duration(r.leadDays)*24*time.Hour
	if !overdue && !upcoming {
		return
	}

	amount := decimal.Min(r.svc.terms.PaymentAmount, summary.RemainingBalance)
	if err := r.mailer.SendPaymentReminder(r.to, due, amount, overdue); err != nil {
		r.log.Errorf("Reminder: failed to send payment reminder: %v", err)
	}
}

func (r *Reminder) checkChores() {
	chores, err := r.svc.ChoresByPriority()
	if err != nil {
		r.log.Errorf("Reminder: failed to load chores: %v", err)
		return
	}

	overdue := []models.ChoreStatus{}
	for _, c := range chores {
		if c.OverdueDays != nil && *c.OverdueDays > 0 {
			overdue = append(overdue, c)
		}
	}
	if len(overdue) == 0 {
		return
	}

	if err := r.mailer.SendChoresReminder(r.to, overdue); err != nil {
		r.log.Errorf("Reminder: failed to send chores reminder: %v", err)
	}
}
