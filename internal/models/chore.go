package models

import "time"

// Chore represents a recurring household chore
type Chore struct {
	ID            int64     `json:"id"`
	Name          string    `json:"name"`
	FrequencyDays int       `json:"frequency_days"`
	CreatedAt     time.Time `json:"created_at"`
}

// ChoreCompletion represents a single logged completion of a chore
type ChoreCompletion struct {
	ID          int64     `json:"id"`
	ChoreID     int64     `json:"chore_id"`
	CompletedOn time.Time `json:"completed_on"`
	CreatedAt   time.Time `json:"created_at"`
}

// ChoreStatus is a chore joined with its completion history, ordered by
// how overdue it is. DaysSince is nil when the chore was never completed.
type ChoreStatus struct {
	Chore
	LastCompleted *time.Time `json:"last_completed"`
	DaysSince     *int       `json:"days_since"`
	OverdueDays   *int       `json:"overdue_days"` // DaysSince - FrequencyDays
}
