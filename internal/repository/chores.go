package repository

import (
	"database/sql"
	"fmt"

	"homeledger/internal/models"
)

// CreateChore creates a new recurring chore
func (r *Repository) CreateChore(c *models.Chore) error {
	query := `
		INSERT INTO household.chores (name, frequency_days, created_at)
		VALUES ($1, $2, CURRENT_TIMESTAMP)
		RETURNING id, created_at`
	err := r.db.QueryRow(query, c.Name, c.FrequencyDays).Scan(&c.ID, &c.CreatedAt)
	if err != nil {
		return fmt.Errorf("failed to create chore: %w", err)
	}
	return nil
}

// ListChoresWithLastCompletion retrieves all chores joined with the date of
// their most recent completion, if any
func (r *Repository) ListChoresWithLastCompletion() ([]models.ChoreStatus, error) {
	query := `
		SELECT c.id, c.name, c.frequency_days, c.created_at, MAX(cc.completed_on)
		FROM household.chores c
		LEFT JOIN household.chore_completions cc ON cc.chore_id = c.id
		GROUP BY c.id, c.name, c.frequency_days, c.created_at
		ORDER BY c.id ASC`
	rows, err := r.db.Query(query)
	if err != nil {
		return nil, fmt.Errorf("failed to list chores: %w", err)
	}
	defer rows.Close()

	chores := []models.ChoreStatus{}
	for rows.Next() {
		var cs models.ChoreStatus
		var last sql.NullTime
		if err := rows.Scan(&cs.ID, &cs.Name, &cs.FrequencyDays, &cs.CreatedAt, &last); err != nil {
			return nil, fmt.Errorf("failed to scan chore: %w", err)
		}
		if last.Valid {
			t := last.Time
			cs.LastCompleted = &t
		}
		chores = append(chores, cs)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read chores: %w", err)
	}
	return chores, nil
}

// DeleteChore removes a chore and its completion history
func (r *Repository) DeleteChore(id int64) error {
	res, err := r.db.Exec(`DELETE FROM household.chores WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete chore: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to delete chore: %w", err)
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}

// CreateCompletion logs a completion of the given chore
func (r *Repository) CreateCompletion(c *models.ChoreCompletion) error {
	query := `
		INSERT INTO household.chore_completions (chore_id, completed_on, created_at)
		VALUES ($1, $2, CURRENT_TIMESTAMP)
		RETURNING id, created_at`
	err := r.db.QueryRow(query, c.ChoreID, c.CompletedOn).Scan(&c.ID, &c.CreatedAt)
	if err != nil {
		return fmt.Errorf("failed to create completion: %w", err)
	}
	return nil
}

// DeleteCompletion removes a single logged completion
func (r *Repository) DeleteCompletion(id int64) error {
	res, err := r.db.Exec(`DELETE FROM household.chore_completions WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete completion: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to delete completion: %w", err)
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}
