package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// PaymentStatus represents the lifecycle state of a ledger row
type PaymentStatus string

const (
	PaymentStatusPending PaymentStatus = "pending"
	PaymentStatusCleared PaymentStatus = "cleared"
)

// LoanPayment represents one row of the append-only cleared-payment ledger
type LoanPayment struct {
	ID               int64           `json:"id"`
	PaymentDate      time.Time       `json:"payment_date"`
	AmountPaid       decimal.Decimal `json:"amount_paid"`
	PrincipalPortion decimal.Decimal `json:"principal_portion"`
	InterestPortion  decimal.Decimal `json:"interest_portion"`
	RemainingBalance decimal.Decimal `json:"remaining_balance"`
	Status           PaymentStatus   `json:"status"`
	CreatedAt        time.Time       `json:"created_at"`
}

// ScheduledPayment represents a projected future payment. It is computed
// from the ledger tail on every read and never persisted until cleared.
type ScheduledPayment struct {
	Date      time.Time       `json:"date"`
	Amount    decimal.Decimal `json:"amount"`
	Interest  decimal.Decimal `json:"interest"`
	Principal decimal.Decimal `json:"principal"`
	Balance   decimal.Decimal `json:"balance"`
}

// LoanSummary represents the reconciled state of the loan ledger
type LoanSummary struct {
	RemainingBalance   decimal.Decimal `json:"remaining_balance"`
	TotalInterestPaid  decimal.Decimal `json:"total_interest_paid"`
	TotalPrincipalPaid decimal.Decimal `json:"total_principal_paid"`
	LastPaymentDate    time.Time       `json:"last_payment_date"`
	NextPaymentDate    time.Time       `json:"next_payment_date"`
	PaymentsMade       int             `json:"payments_made"`
}
