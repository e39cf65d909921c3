package amortization

import (
	"errors"
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"homeledger/internal/models"
)

// maxPayoffPeriods bounds the payoff projection at 50 years of bi-weekly
// payments. Exceeding it means the payment never outpaces interest.
const maxPayoffPeriods = 1302

// periodsPerYear is the number of bi-weekly periods in a year. Scheduled
// payments accrue interest at the annual rate divided by this, a convention
// distinct from the daily accrual used for extra payments.
const periodsPerYear = 26

// daysPerYear is the basis for the daily simple-interest rate applied to
// out-of-cycle extra payments.
const daysPerYear = 365

var (
	// ErrPaymentBelowInterest is returned when a payment amount does not
	// exceed the interest accrued for the period it covers, so no principal
	// would be retired.
	ErrPaymentBelowInterest = errors.New("payment does not cover accrued interest")

	// ErrDoesNotAmortize is returned when the payoff projection exceeds its
	// iteration bound without the balance reaching zero.
	ErrDoesNotAmortize = errors.New("loan does not amortize under current terms")
)

// Terms describes the fixed parameters of the loan
type Terms struct {
	Principal     decimal.Decimal
	AnnualRate    decimal.Decimal
	PaymentAmount decimal.Decimal
	PeriodDays    int
	StartDate     time.Time
}

// ProjectSchedule produces at most periodCount scheduled payments starting
// at startDate, one per period, stopping early once the balance reaches
// zero. If at any step the accrued interest meets or exceeds the payment
// amount, the entries produced so far are returned together with
// ErrPaymentBelowInterest.
func ProjectSchedule(startBalance decimal.Decimal, startDate time.Time, periodCount int, terms Terms) ([]models.ScheduledPayment, error) {
	periodRate := terms.AnnualRate.Div(decimal.NewFromInt(periodsPerYear))

	payments := make([]models.ScheduledPayment, 0, periodCount)
	balance := startBalance
	date := startDate

	for i := 0; i < periodCount; i++ {
		if !balance.IsPositive() {
			break
		}

		interest := balance.Mul(periodRate)
		if terms.PaymentAmount.LessThanOrEqual(interest) {
			return payments, ErrPaymentBelowInterest
		}

		principal := decimal.Min(terms.PaymentAmount.Sub(interest), balance)
		balance = decimal.Max(decimal.Zero, balance.Sub(principal))

		payments = append(payments, models.ScheduledPayment{
			Date:      date,
			Amount:    interest.Add(principal),
			Interest:  interest,
			Principal: principal,
			Balance:   balance,
		})

		date = date.AddDate(0, 0, terms.PeriodDays)
	}

	return payments, nil
}

// Reconcile derives the current loan state from the cleared ledger, ordered
// by payment date ascending. An empty ledger yields the full principal and a
// next payment date equal to the configured start date.
func Reconcile(ledger []models.LoanPayment, terms Terms) models.LoanSummary {
	summary := models.LoanSummary{
		RemainingBalance:   terms.Principal,
		TotalInterestPaid:  decimal.Zero,
		TotalPrincipalPaid: decimal.Zero,
		LastPaymentDate:    terms.StartDate.AddDate(0, 0, -terms.PeriodDays),
		PaymentsMade:       len(ledger),
	}

	for _, p := range ledger {
		summary.TotalInterestPaid = summary.TotalInterestPaid.Add(p.InterestPortion)
		summary.TotalPrincipalPaid = summary.TotalPrincipalPaid.Add(p.PrincipalPortion)
	}

	if len(ledger) > 0 {
		last := ledger[len(ledger)-1]
		summary.RemainingBalance = last.RemainingBalance
		summary.LastPaymentDate = last.PaymentDate
	}

	summary.NextPaymentDate = summary.LastPaymentDate.AddDate(0, 0, terms.PeriodDays)
	return summary
}

// ProjectUpcoming reconciles the ledger and projects the next count
// scheduled payments from the resulting balance and payment date.
func ProjectUpcoming(ledger []models.LoanPayment, terms Terms, count int) ([]models.ScheduledPayment, error) {
	state := Reconcile(ledger, terms)
	return ProjectSchedule(state.RemainingBalance, state.NextPaymentDate, count, terms)
}

// ProjectToPayoff projects the schedule until the balance reaches zero. The
// iteration bound is explicit: a projection that still carries a balance
// after maxPayoffPeriods entries reports ErrDoesNotAmortize instead of
// returning a silently truncated schedule.
func ProjectToPayoff(ledger []models.LoanPayment, terms Terms) ([]models.ScheduledPayment, error) {
	payments, err := ProjectUpcoming(ledger, terms, maxPayoffPeriods)
	if err != nil {
		return payments, err
	}
	if n := len(payments); n == maxPayoffPeriods && payments[n-1].Balance.IsPositive() {
		return payments, ErrDoesNotAmortize
	}
	return payments, nil
}

// ExtraPayment computes the ledger entry for an out-of-cycle payment.
// Interest accrues at a daily simple rate for the whole days elapsed since
// the last payment, unlike the fixed per-period rate used by
// ProjectSchedule. The two conventions are intentionally distinct.
func ExtraPayment(amount decimal.Decimal, paymentDate time.Time, balance decimal.Decimal, lastPaymentDate time.Time, terms Terms) (models.ScheduledPayment, error) {
	if !amount.IsPositive() {
		return models.ScheduledPayment{}, fmt.Errorf("payment amount must be positive, got %s", amount)
	}
	if paymentDate.IsZero() {
		return models.ScheduledPayment{}, fmt.Errorf("payment date is required")
	}
	days := int(paymentDate.Sub(lastPaymentDate).Hours() / 24)
	if days < 0 {
		return models.ScheduledPayment{}, fmt.Errorf("payment date %s precedes last payment date %s",
			paymentDate.Format("2006-01-02"), lastPaymentDate.Format("2006-01-02"))
	}

	dailyRate := terms.AnnualRate.Div(decimal.NewFromInt(daysPerYear))
	interest := balance.Mul(dailyRate).Mul(decimal.NewFromInt(int64(days)))
	if amount.LessThanOrEqual(interest) {
		return models.ScheduledPayment{}, ErrPaymentBelowInterest
	}

	principal := decimal.Min(amount.Sub(interest), balance)
	newBalance := decimal.Max(decimal.Zero, balance.Sub(principal))

	return models.ScheduledPayment{
		Date:      paymentDate,
		Amount:    interest.Add(principal),
		Interest:  interest,
		Principal: principal,
		Balance:   newBalance,
	}, nil
}
