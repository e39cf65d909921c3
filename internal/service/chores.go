package service

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"homeledger/internal/models"
)

// CreateChore creates a new recurring chore
func (s *Service) CreateChore(name string, frequencyDays int) (*models.Chore, error) {
	if strings.TrimSpace(name) == "" {
		return nil, fmt.Errorf("%w: chore name is required", ErrInvalidInput)
	}
	if frequencyDays <= 0 {
		return nil, fmt.Errorf("%w: frequency must be positive, got %d", ErrInvalidInput, frequencyDays)
	}

	chore := &models.Chore{Name: strings.TrimSpace(name), FrequencyDays: frequencyDays}
	if err := s.store.CreateChore(chore); err != nil {
		return nil, err
	}

	s.log.Infof("Chore created: %s (every %d days)", chore.Name, chore.FrequencyDays)
	return chore, nil
}

// ChoresByPriority returns all chores ordered most-neglected first.
// Never-completed chores sort before everything else; the rest order by how
// far past their frequency they are.
func (s *Service) ChoresByPriority() ([]models.ChoreStatus, error) {
	chores, err := s.store.ListChoresWithLastCompletion()
	if err != nil {
		return nil, err
	}

	today := s.now()
	for i := range chores {
		if chores[i].LastCompleted == nil {
			continue
		}
		days := int(today.Sub(*chores[i].LastCompleted).Hours() / 24)
		overdue := days - chores[i].FrequencyDays
		chores[i].DaysSince = &days
		chores[i].OverdueDays = &overdue
	}

	sort.SliceStable(chores, func(i, j int) bool {
		a, b := chores[i], chores[j]
		if (a.OverdueDays == nil) != (b.OverdueDays == nil) {
			return a.OverdueDays == nil
		}
		if a.OverdueDays == nil {
			return a.Name < b.Name
		}
		if *a.OverdueDays != *b.OverdueDays {
			return *a.OverdueDays > *b.OverdueDays
		}
		return a.Name < b.Name
	})

	return chores, nil
}

// CompleteChore logs a completion for the chore. A zero time records the
// completion for today.
func (s *Service) CompleteChore(choreID int64, completedOn time.Time) (*models.ChoreCompletion, error) {
	if choreID <= 0 {
		return nil, fmt.Errorf("%w: chore id is required", ErrInvalidInput)
	}
	if completedOn.IsZero() {
		completedOn = s.now()
	}

	completion := &models.ChoreCompletion{ChoreID: choreID, CompletedOn: completedOn}
	if err := s.store.CreateCompletion(completion); err != nil {
		return nil, err
	}

	s.log.Infof("Chore %d completed on %s", choreID, completedOn.Format("2006-01-02"))
	return completion, nil
}

// DeleteChore removes a chore and its completion history
func (s *Service) DeleteChore(id int64) error {
	return s.store.DeleteChore(id)
}

// DeleteCompletion removes a single logged completion
func (s *Service) DeleteCompletion(id int64) error {
	return s.store.DeleteCompletion(id)
}
