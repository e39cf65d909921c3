package service

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"homeledger/internal/models"
)

// RecordSnapshot upserts the balance snapshot for the given date
func (s *Service) RecordSnapshot(date time.Time, checking, savings, investments, debt decimal.Decimal) (*models.BalanceSnapshot, error) {
	if date.IsZero() {
		return nil, fmt.Errorf("%w: snapshot date is required", ErrInvalidInput)
	}

	snapshot := &models.BalanceSnapshot{
		SnapshotDate: date,
		Checking:     checking,
		Savings:      savings,
		Investments:  investments,
		Debt:         debt,
	}
	if err := s.store.UpsertSnapshot(snapshot); err != nil {
		return nil, err
	}
	snapshot.Net = netBalance(snapshot)

	s.log.Infof("Snapshot recorded for %s", date.Format("2006-01-02"))
	return snapshot, nil
}

// ListSnapshots returns all snapshots ordered by date ascending, ready for
// charting
func (s *Service) ListSnapshots() ([]models.BalanceSnapshot, error) {
	snapshots, err := s.store.ListSnapshots()
	if err != nil {
		return nil, err
	}
	for i := range snapshots {
		snapshots[i].Net = netBalance(&snapshots[i])
	}
	return snapshots, nil
}

// DeleteSnapshot removes the snapshot for the given date
func (s *Service) DeleteSnapshot(date time.Time) error {
	if date.IsZero() {
		return fmt.Errorf("%w: snapshot date is required", ErrInvalidInput)
	}
	if err := s.store.DeleteSnapshot(date); err != nil {
		return err
	}
	s.log.Infof("Snapshot deleted for %s", date.Format("2006-01-02"))
	return nil
}

func netBalance(s *models.BalanceSnapshot) decimal.Decimal {
	return s.Checking.Add(s.Savings).Add(s.Investments).Sub(s.Debt)
}
