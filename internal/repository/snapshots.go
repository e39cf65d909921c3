package repository

import (
	"fmt"
	"time"

	"homeledger/internal/models"
)

// UpsertSnapshot inserts a balance snapshot, replacing any existing row for
// the same date
func (r *Repository) UpsertSnapshot(s *models.BalanceSnapshot) error {
	query := `
		INSERT INTO household.balance_snapshots (snapshot_date, checking, savings, investments, debt, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, CURRENT_TIMESTAMP, CURRENT_TIMESTAMP)
		ON CONFLICT (snapshot_date) DO UPDATE
		SET checking = EXCLUDED.checking,
		    savings = EXCLUDED.savings,
		    investments = EXCLUDED.investments,
		    debt = EXCLUDED.debt,
		    updated_at = CURRENT_TIMESTAMP
		RETURNING id, created_at, updated_at`
	err := r.db.QueryRow(query, s.SnapshotDate, s.Checking, s.Savings, s.Investments, s.Debt).
		Scan(&s.ID, &s.CreatedAt, &s.UpdatedAt)
	if err != nil {
		return fmt.Errorf("failed to upsert snapshot: %w", err)
	}
	return nil
}

// ListSnapshots retrieves all balance snapshots ordered by date ascending
func (r *Repository) ListSnapshots() ([]models.BalanceSnapshot, error) {
	query := `
		SELECT id, snapshot_date, checking, savings, investments, debt, created_at, updated_at
		FROM household.balance_snapshots
		ORDER BY snapshot_date ASC`
	rows, err := r.db.Query(query)
	if err != nil {
		return nil, fmt.Errorf("failed to list snapshots: %w", err)
	}
	defer rows.Close()

	snapshots := []models.BalanceSnapshot{}
	for rows.Next() {
		var s models.BalanceSnapshot
		if err := rows.Scan(&s.ID, &s.SnapshotDate, &s.Checking, &s.Savings, &s.Investments, &s.Debt, &s.CreatedAt, &s.UpdatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan snapshot: %w", err)
		}
		snapshots = append(snapshots, s)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read snapshots: %w", err)
	}
	return snapshots, nil
}

// DeleteSnapshot removes the snapshot recorded for the given date
func (r *Repository) DeleteSnapshot(date time.Time) error {
	res, err := r.db.Exec(`DELETE FROM household.balance_snapshots WHERE snapshot_date = $1`, date)
	if err != nil {
		return fmt.Errorf("failed to delete snapshot: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to delete snapshot: %w", err)
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}
