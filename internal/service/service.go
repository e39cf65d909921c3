package service

import (
	"errors"
	"time"

	"github.com/sirupsen/logrus"

	"homeledger/internal/amortization"
	"homeledger/internal/models"
)

// ErrInvalidInput marks validation failures. They are rejected before any
// computation or persistence call.
var ErrInvalidInput = errors.New("invalid input")

// Store is the persistence contract the service consumes
type Store interface {
	UpsertSnapshot(s *models.BalanceSnapshot) error
	ListSnapshots() ([]models.BalanceSnapshot, error)
	DeleteSnapshot(date time.Time) error

	CreateChore(c *models.Chore) error
	ListChoresWithLastCompletion() ([]models.ChoreStatus, error)
	DeleteChore(id int64) error
	CreateCompletion(c *models.ChoreCompletion) error
	DeleteCompletion(id int64) error

	ListClearedPayments() ([]models.LoanPayment, error)
	InsertPayment(p *models.LoanPayment) error
	DeletePayment(id int64) error
}

// Service handles business logic
type Service struct {
	store Store
	log   *logrus.Logger
	terms amortization.Terms
	now   func() time.Time
}

// NewService initializes a new service
func NewService(store Store, log *logrus.Logger, terms amortization.Terms) *Service {
	return &Service{
		store: store,
		log:   log,
		terms: terms,
		now:   time.Now,
	}
}

// Terms returns the configured loan terms
func (s *Service) Terms() amortization.Terms {
	return s.terms
}
