package service

import (
	"sort"
	"time"

	"homeledger/internal/models"
	"homeledger/internal/repository"
)

// fakeStore is an in-memory Store for service tests. Setting err makes
// every operation fail with it.
type fakeStore struct {
	err error

	snapshots   []models.BalanceSnapshot
	chores      []models.ChoreStatus
	completions []models.ChoreCompletion
	payments    []models.LoanPayment

	nextID int64
}

func newFakeStore() *fakeStore {
	return &fakeStore{nextID: 1}
}

func (f *fakeStore) id() int64 {
	id := f.nextID
	f.nextID++
	return id
}

func (f *fakeStore) UpsertSnapshot(s *models.BalanceSnapshot) error {
	if f.err != nil {
		return f.err
	}
	for i := range f.snapshots {
		if f.snapshots[i].SnapshotDate.Equal(s.SnapshotDate) {
			s.ID = f.snapshots[i].ID
			f.snapshots[i] = *s
			return nil
		}
	}
	s.ID = f.id()
	f.snapshots = append(f.snapshots, *s)
	return nil
}

func (f *fakeStore) ListSnapshots() ([]models.BalanceSnapshot, error) {
	if f.err != nil {
		return nil, f.err
	}
	out := append([]models.BalanceSnapshot{}, f.snapshots...)
	sort.Slice(out, func(i, j int) bool { return out[i].SnapshotDate.Before(out[j].SnapshotDate) })
	return out, nil
}

func (f *fakeStore) DeleteSnapshot(date time.Time) error {
	if f.err != nil {
		return f.err
	}
	for i := range f.snapshots {
		if f.snapshots[i].SnapshotDate.Equal(date) {
			f.snapshots = append(f.snapshots[:i], f.snapshots[i+1:]...)
			return nil
		}
	}
	return repository.ErrNotFound
}

func (f *fakeStore) CreateChore(c *models.Chore) error {
	if f.err != nil {
		return f.err
	}
	c.ID = f.id()
	f.chores = append(f.chores, models.ChoreStatus{Chore: *c})
	return nil
}

func (f *fakeStore) ListChoresWithLastCompletion() ([]models.ChoreStatus, error) {
	if f.err != nil {
		return nil, f.err
	}
	out := make([]models.ChoreStatus, len(f.chores))
	for i, c := range f.chores {
		out[i] = models.ChoreStatus{Chore: c.Chore}
		for _, cc := range f.completions {
			if cc.ChoreID != c.ID {
				continue
			}
			if out[i].LastCompleted == nil || cc.CompletedOn.After(*out[i].LastCompleted) {
				t := cc.CompletedOn
				out[i].LastCompleted = &t
			}
		}
	}
	return out, nil
}

func (f *fakeStore) DeleteChore(id int64) error {
	if f.err != nil {
		return f.err
	}
	for i := range f.chores {
		if f.chores[i].ID == id {
			f.chores = append(f.chores[:i], f.chores[i+1:]...)
			return nil
		}
	}
	return repository.ErrNotFound
}

func (f *fakeStore) CreateCompletion(c *models.ChoreCompletion) error {
	if f.err != nil {
		return f.err
	}
	c.ID = f.id()
	f.completions = append(f.completions, *c)
	return nil
}

func (f *fakeStore) DeleteCompletion(id int64) error {
	if f.err != nil {
		return f.err
	}
	for i := range f.completions {
		if f.completions[i].ID == id {
			f.completions = append(f.completions[:i], f.completions[i+1:]...)
			return nil
		}
	}
	return repository.ErrNotFound
}

func (f *fakeStore) ListClearedPayments() ([]models.LoanPayment, error) {
	if f.err != nil {
		return nil, f.err
	}
	out := []models.LoanPayment{}
	for _, p := range f.payments {
		if p.Status == models.PaymentStatusCleared {
			out = append(out, p)
		}
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].PaymentDate.Before(out[j].PaymentDate) })
	return out, nil
}

func (f *fakeStore) InsertPayment(p *models.LoanPayment) error {
	if f.err != nil {
		return f.err
	}
	p.ID = f.id()
	f.payments = append(f.payments, *p)
	return nil
}

func (f *fakeStore) DeletePayment(id int64) error {
	if f.err != nil {
		return f.err
	}
	for i := range f.payments {
		if f.payments[i].ID == id {
			f.payments = append(f.payments[:i], f.payments[i+1:]...)
			return nil
		}
	}
	return repository.ErrNotFound
}
