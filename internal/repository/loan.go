package repository

import (
	"fmt"

	"homeledger/internal/models"
)

// ListClearedPayments retrieves the cleared ledger ordered by payment date
// ascending
func (r *Repository) ListClearedPayments() ([]models.LoanPayment, error) {
	query := `
		SELECT id, payment_date, amount_paid, principal_portion, interest_portion, remaining_balance, status, created_at
		FROM household.loan_payments
		WHERE status = 'cleared'
		ORDER BY payment_date ASC, id ASC`
	rows, err := r.db.Query(query)
	if err != nil {
		return nil, fmt.Errorf("failed to list loan payments: %w", err)
	}
	defer rows.Close()

	payments := []models.LoanPayment{}
	for rows.Next() {
		var p models.LoanPayment
		if err := rows.Scan(&p.ID, &p.PaymentDate, &p.AmountPaid, &p.PrincipalPortion, &p.InterestPortion, &p.RemainingBalance, &p.Status, &p.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan loan payment: %w", err)
		}
		payments = append(payments, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read loan payments: %w", err)
	}
	return payments, nil
}

// InsertPayment appends a payment to the ledger. Rows are immutable once
// written; there is no update path.
func (r *Repository) InsertPayment(p *models.LoanPayment) error {
	query := `
		INSERT INTO household.loan_payments (payment_date, amount_paid, principal_portion, interest_portion, remaining_balance, status, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, CURRENT_TIMESTAMP)
		RETURNING id, created_at`
	err := r.db.QueryRow(query, p.PaymentDate, p.AmountPaid, p.PrincipalPortion, p.InterestPortion, p.RemainingBalance, p.Status).
		Scan(&p.ID, &p.CreatedAt)
	if err != nil {
		return fmt.Errorf("failed to insert loan payment: %w", err)
	}
	return nil
}

// DeletePayment removes a ledger row by id
func (r *Repository) DeletePayment(id int64) error {
	res, err := r.db.Exec(`DELETE FROM household.loan_payments WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete loan payment: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to delete loan payment: %w", err)
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}
