package handler

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"sort"
	"testing"
	"time"

	"github.com/gorilla/mux"
	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"homeledger/internal/amortization"
	"homeledger/internal/models"
	"homeledger/internal/repository"
	"homeledger/internal/service"
)

// memStore is an in-memory service.Store for handler tests
type memStore struct {
	snapshots   []models.BalanceSnapshot
	chores      []models.ChoreStatus
	completions []models.ChoreCompletion
	payments    []models.LoanPayment
	nextID      int64
}

func newMemStore() *memStore { return &memStore{nextID: 1} }

func (m *memStore) id() int64 {
	id := m.nextID
	m.nextID++
	return id
}

func (m *memStore) UpsertSnapshot(s *models.BalanceSnapshot) error {
	for i := range m.snapshots {
		if m.snapshots[i].SnapshotDate.Equal(s.SnapshotDate) {
			s.ID = m.snapshots[i].ID
			m.snapshots[i] = *s
			return nil
		}
	}
	s.ID = m.id()
	m.snapshots = append(m.snapshots, *s)
	return nil
}

func (m *memStore) ListSnapshots() ([]models.BalanceSnapshot, error) {
	out := append([]models.BalanceSnapshot{}, m.snapshots...)
	sort.Slice(out, func(i, j int) bool { return out[i].SnapshotDate.Before(out[j].SnapshotDate) })
	return out, nil
}

func (m *memStore) DeleteSnapshot(date time.Time) error {
	for i := range m.snapshots {
		if m.snapshots[i].SnapshotDate.Equal(date) {
			m.snapshots = append(m.snapshots[:i], m.snapshots[i+1:]...)
			return nil
		}
	}
	return repository.ErrNotFound
}

func (m *memStore) CreateChore(c *models.Chore) error {
	c.ID = m.id()
	m.chores = append(m.chores, models.ChoreStatus{Chore: *c})
	return nil
}

func (m *memStore) ListChoresWithLastCompletion() ([]models.ChoreStatus, error) {
	out := make([]models.ChoreStatus, len(m.chores))
	for i, c := range m.chores {
		out[i] = models.ChoreStatus{Chore: c.Chore}
		for _, cc := range m.completions {
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

func (m *memStore) DeleteChore(id int64) error {
	for i := range m.chores {
		if m.chores[i].ID == id {
			m.chores = append(m.chores[:i], m.chores[i+1:]...)
			return nil
		}
	}
	return repository.ErrNotFound
}

func (m *memStore) CreateCompletion(c *models.ChoreCompletion) error {
	c.ID = m.id()
	m.completions = append(m.completions, *c)
	return nil
}

func (m *memStore) DeleteCompletion(id int64) error {
	for i := range m.completions {
		if m.completions[i].ID == id {
			m.completions = append(m.completions[:i], m.completions[i+1:]...)
			return nil
		}
	}
	return repository.ErrNotFound
}

func (m *memStore) ListClearedPayments() ([]models.LoanPayment, error) {
	out := []models.LoanPayment{}
	for _, p := range m.payments {
		if p.Status == models.PaymentStatusCleared {
			out = append(out, p)
		}
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].PaymentDate.Before(out[j].PaymentDate) })
	return out, nil
}

func (m *memStore) InsertPayment(p *models.LoanPayment) error {
	p.ID = m.id()
	m.payments = append(m.payments, *p)
	return nil
}

func (m *memStore) DeletePayment(id int64) error {
	for i := range m.payments {
		if m.payments[i].ID == id {
			m.payments = append(m.payments[:i], m.payments[i+1:]...)
			return nil
		}
	}
	return repository.ErrNotFound
}

func newTestRouter() (*mux.Router, *memStore) {
	log := logrus.New()
	log.SetOutput(io.Discard)

	terms := amortization.Terms{
		Principal:     decimal.RequireFromString("22000"),
		AnnualRate:    decimal.RequireFromString("0.05"),
		PaymentAmount: decimal.RequireFromString("275"),
		PeriodDays:    14,
		StartDate:     mustDate("2024-01-05"),
	}

	store := newMemStore()
	svc := service.NewService(store, log, terms)
	h := NewHandler(svc)

	r := mux.NewRouter()
	h.Routes(r)
	return r, store
}

func mustDate(s string) time.Time {
	d, err := time.Parse("2006-01-02", s)
	if err != nil {
		panic(err)
	}
	return d
}

func doJSON(t *testing.T, r *mux.Router, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	var reader io.Reader
	if body != "" {
		reader = bytes.NewBufferString(body)
	}
	req := httptest.NewRequest(method, path, reader)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestSnapshots_UpsertAndList(t *testing.T) {
	r, _ := newTestRouter()

	w := doJSON(t, r, "POST", "/snapshots",
		`{"snapshot_date":"2024-03-04","checking":1200.50,"savings":8000,"investments":15000,"debt":22000}`)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var snap models.BalanceSnapshot
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &snap))
	assert.True(t, snap.Net.Equal(decimal.RequireFromString("2200.50")))

	// Same date overwrites instead of duplicating.
	w = doJSON(t, r, "POST", "/snapshots",
		`{"snapshot_date":"2024-03-04","checking":1300,"savings":8000,"investments":15000,"debt":22000}`)
	require.Equal(t, http.StatusOK, w.Code)

	w = doJSON(t, r, "GET", "/snapshots", "")
	require.Equal(t, http.StatusOK, w.Code)
	var list []models.BalanceSnapshot
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &list))
	require.Len(t, list, 1)
	assert.True(t, list[0].Checking.Equal(decimal.RequireFromString("1300")))
}

func TestSnapshots_RejectMalformedInput(t *testing.T) {
	r, store := newTestRouter()

	// Non-numeric amount is rejected, not coerced to zero.
	w := doJSON(t, r, "POST", "/snapshots",
		`{"snapshot_date":"2024-03-04","checking":"not a number"}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = doJSON(t, r, "POST", "/snapshots", `{"checking":100}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = doJSON(t, r, "POST", "/snapshots", `{"snapshot_date":"04/03/2024"}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	assert.Empty(t, store.snapshots)
}

func TestSnapshots_Delete(t *testing.T) {
	r, _ := newTestRouter()

	w := doJSON(t, r, "POST", "/snapshots",
		`{"snapshot_date":"2024-03-04","checking":100,"savings":0,"investments":0,"debt":0}`)
	require.Equal(t, http.StatusOK, w.Code)

	w = doJSON(t, r, "DELETE", "/snapshots/2024-03-04", "")
	assert.Equal(t, http.StatusNoContent, w.Code)

	w = doJSON(t, r, "DELETE", "/snapshots/2024-03-04", "")
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestChores_CreateCompleteList(t *testing.T) {
	r, _ := newTestRouter()

	w := doJSON(t, r, "POST", "/chores", `{"name":"vacuum","frequency_days":7}`)
	require.Equal(t, http.StatusCreated, w.Code)
	var chore models.Chore
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &chore))

	w = doJSON(t, r, "POST", "/chores", `{"name":"","frequency_days":7}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = doJSON(t, r, "POST", "/chores/1/completions", `{"completed_on":"2024-03-10"}`)
	require.Equal(t, http.StatusCreated, w.Code)

	w = doJSON(t, r, "GET", "/chores", "")
	require.Equal(t, http.StatusOK, w.Code)
	var list []models.ChoreStatus
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &list))
	require.Len(t, list, 1)
	require.NotNil(t, list[0].LastCompleted)
}

func TestChores_DeleteMissing(t *testing.T) {
	r, _ := newTestRouter()

	w := doJSON(t, r, "DELETE", "/chores/99", "")
	assert.Equal(t, http.StatusNotFound, w.Code)

	w = doJSON(t, r, "DELETE", "/chores/abc", "")
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestLoan_SummaryAndClearFlow(t *testing.T) {
	r, _ := newTestRouter()

	w := doJSON(t, r, "GET", "/loan", "")
	require.Equal(t, http.StatusOK, w.Code)
	var loan struct {
		Terms   map[string]interface{} `json:"terms"`
		Summary models.LoanSummary     `json:"summary"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &loan))
	assert.Equal(t, "2024-01-05", loan.Terms["start_date"])
	assert.True(t, loan.Summary.RemainingBalance.Equal(decimal.RequireFromString("22000")))

	w = doJSON(t, r, "POST", "/loan/payments", "")
	require.Equal(t, http.StatusCreated, w.Code)
	var payment models.LoanPayment
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &payment))
	assert.Equal(t, models.PaymentStatusCleared, payment.Status)

	w = doJSON(t, r, "GET", "/loan/payments", "")
	require.Equal(t, http.StatusOK, w.Code)
	var ledger []models.LoanPayment
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &ledger))
	assert.Len(t, ledger, 1)
}

func TestLoan_ExtraPaymentValidation(t *testing.T) {
	r, store := newTestRouter()

	w := doJSON(t, r, "POST", "/loan/payments/extra", `{"amount":0,"payment_date":"2024-01-15"}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = doJSON(t, r, "POST", "/loan/payments/extra", `{"amount":500}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = doJSON(t, r, "POST", "/loan/payments/extra", `{"amount":"abc","payment_date":"2024-01-15"}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	assert.Empty(t, store.payments)

	w = doJSON(t, r, "POST", "/loan/payments/extra", `{"amount":500,"payment_date":"2024-01-15"}`)
	assert.Equal(t, http.StatusCreated, w.Code)
}

func TestLoan_ExtraPaymentBelowInterest(t *testing.T) {
	r, _ := newTestRouter()

	// Months of accrued interest on the full balance exceeds a token payment.
	w := doJSON(t, r, "POST", "/loan/payments/extra", `{"amount":5,"payment_date":"2024-06-01"}`)
	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
}

func TestLoan_UpcomingCount(t *testing.T) {
	r, _ := newTestRouter()

	w := doJSON(t, r, "GET", "/loan/upcoming?count=5", "")
	require.Equal(t, http.StatusOK, w.Code)
	var payments []models.ScheduledPayment
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &payments))
	assert.Len(t, payments, 5)

	w = doJSON(t, r, "GET", "/loan/upcoming?count=nope", "")
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestLoan_DeletePayment(t *testing.T) {
	r, _ := newTestRouter()

	w := doJSON(t, r, "POST", "/loan/payments", "")
	require.Equal(t, http.StatusCreated, w.Code)
	var payment models.LoanPayment
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &payment))

	w = doJSON(t, r, "DELETE", "/loan/payments/1", "")
	assert.Equal(t, http.StatusNoContent, w.Code)

	w = doJSON(t, r, "DELETE", "/loan/payments/1", "")
	assert.Equal(t, http.StatusNotFound, w.Code)
}
