package service

import (
	"errors"
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"homeledger/internal/amortization"
	"homeledger/internal/models"
)

// ErrLoanPaidOff is returned when a payment is recorded against a fully
// amortized loan
var ErrLoanPaidOff = errors.New("loan is fully paid off")

const (
	defaultUpcomingCount = 20
	maxUpcomingCount     = 1000
)

// Ledger returns the cleared payments ordered by payment date ascending
func (s *Service) Ledger() ([]models.LoanPayment, error) {
	return s.store.ListClearedPayments()
}

// Summary reconciles the cleared ledger into the current loan state
func (s *Service) Summary() (models.LoanSummary, error) {
	ledger, err := s.store.ListClearedPayments()
	if err != nil {
		return models.LoanSummary{}, err
	}
	return amortization.Reconcile(ledger, s.terms), nil
}

// Upcoming projects the next count scheduled payments from the ledger tail.
// A non-positive count projects the default window.
func (s *Service) Upcoming(count int) ([]models.ScheduledPayment, error) {
	if count <= 0 {
		count = defaultUpcomingCount
	}
	if count > maxUpcomingCount {
		return nil, fmt.Errorf("%w: count %d exceeds the maximum of %d", ErrInvalidInput, count, maxUpcomingCount)
	}
	ledger, err := s.store.ListClearedPayments()
	if err != nil {
		return nil, err
	}
	return amortization.ProjectUpcoming(ledger, s.terms, count)
}

// Payoff projects the remaining schedule until the balance reaches zero
func (s *Service) Payoff() ([]models.ScheduledPayment, error) {
	ledger, err := s.store.ListClearedPayments()
	if err != nil {
		return nil, err
	}
	return amortization.ProjectToPayoff(ledger, s.terms)
}

// ClearNextPayment converts the next scheduled payment into a cleared
// ledger row. The schedule is recomputed from the ledger tail, never taken
// from the client.
func (s *Service) ClearNextPayment() (*models.LoanPayment, error) {
	ledger, err := s.store.ListClearedPayments()
	if err != nil {
		return nil, err
	}

	scheduled, err := amortization.ProjectUpcoming(ledger, s.terms, 1)
	if err != nil {
		return nil, err
	}
	if len(scheduled) == 0 {
		return nil, ErrLoanPaidOff
	}

	payment := ledgerRow(scheduled[0])
	if err := s.store.InsertPayment(payment); err != nil {
		return nil, err
	}

	s.log.Infof("Payment cleared: %s on %s, balance %s",
		payment.AmountPaid.StringFixed(2), payment.PaymentDate.Format("2006-01-02"), payment.RemainingBalance.StringFixed(2))
	return payment, nil
}

// RecordExtraPayment appends an out-of-cycle payment to the ledger.
// Interest accrues daily since the last payment, unlike the per-period rate
// used for scheduled payments.
func (s *Service) RecordExtraPayment(amount decimal.Decimal, paymentDate time.Time) (*models.LoanPayment, error) {
	if !amount.IsPositive() {
		return nil, fmt.Errorf("%w: payment amount must be positive", ErrInvalidInput)
	}
	if paymentDate.IsZero() {
		return nil, fmt.Errorf("%w: payment date is required", ErrInvalidInput)
	}

	ledger, err := s.store.ListClearedPayments()
	if err != nil {
		return nil, err
	}

	state := amortization.Reconcile(ledger, s.terms)
	if !state.RemainingBalance.IsPositive() {
		return nil, ErrLoanPaidOff
	}

	extra, err := amortization.ExtraPayment(amount, paymentDate, state.RemainingBalance, state.LastPaymentDate, s.terms)
	if err != nil {
		if errors.Is(err, amortization.ErrPaymentBelowInterest) {
			return nil, err
		}
		return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	payment := ledgerRow(extra)
	if err := s.store.InsertPayment(payment); err != nil {
		return nil, err
	}

	s.log.Infof("Extra payment recorded: %s on %s, balance %s",
		payment.AmountPaid.StringFixed(2), payment.PaymentDate.Format("2006-01-02"), payment.RemainingBalance.StringFixed(2))
	return payment, nil
}

// DeletePayment removes a ledger row by id
func (s *Service) DeletePayment(id int64) error {
	if err := s.store.DeletePayment(id); err != nil {
		return err
	}
	s.log.Infof("Payment %d deleted", id)
	return nil
}

// ledgerRow copies a scheduled payment into a cleared ledger row
func ledgerRow(p models.ScheduledPayment) *models.LoanPayment {
	return &models.LoanPayment{
		PaymentDate:      p.Date,
		AmountPaid:       p.Amount,
		PrincipalPortion: p.Principal,
		InterestPortion:  p.Interest,
		RemainingBalance: p.Balance,
		Status:           models.PaymentStatusCleared,
	}
}
