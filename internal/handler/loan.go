package handler

import (
	"fmt"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"
	"github.com/shopspring/decimal"

	"homeledger/internal/models"
	"homeledger/internal/service"
)

type loanResponse struct {
	Terms   loanTerms          `json:"terms"`
	Summary models.LoanSummary `json:"summary"`
}

type loanTerms struct {
	Principal     decimal.Decimal `json:"principal"`
	AnnualRate    decimal.Decimal `json:"annual_rate"`
	PaymentAmount decimal.Decimal `json:"payment_amount"`
	PeriodDays    int             `json:"period_days"`
	StartDate     string          `json:"start_date"`
}

type extraPaymentRequest struct {
	Amount      decimal.Decimal `json:"amount"`
	PaymentDate string          `json:"payment_date"`
}

// GetLoan handles GET /loan
func (h *Handler) GetLoan(w http.ResponseWriter, r *http.Request) {
	summary, err := h.svc.Summary()
	if err != nil {
		respondError(w, err)
		return
	}

	terms := h.svc.Terms()
	respondJSON(w, http.StatusOK, loanResponse{
		Terms: loanTerms{
			Principal:     terms.Principal,
			AnnualRate:    terms.AnnualRate,
			PaymentAmount: terms.PaymentAmount,
			PeriodDays:    terms.PeriodDays,
			StartDate:     terms.StartDate.Format("2006-01-02"),
		},
		Summary: summary,
	})
}

// Upcoming handles GET /loan/upcoming?count=N
func (h *Handler) Upcoming(w http.ResponseWriter, r *http.Request) {
	count := 0
	if raw := r.URL.Query().Get("count"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n <= 0 {
			respondError(w, fmt.Errorf("%w: invalid count %q", service.ErrInvalidInput, raw))
			return
		}
		count = n
	}

	payments, err := h.svc.Upcoming(count)
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, payments)
}

// Payoff handles GET /loan/payoff
func (h *Handler) Payoff(w http.ResponseWriter, r *http.Request) {
	payments, err := h.svc.Payoff()
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, payments)
}

// ListPayments handles GET /loan/payments
func (h *Handler) ListPayments(w http.ResponseWriter, r *http.Request) {
	payments, err := h.svc.Ledger()
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, payments)
}

// ClearPayment handles POST /loan/payments. The next scheduled payment is
// recomputed from the ledger tail and appended as a cleared row.
func (h *Handler) ClearPayment(w http.ResponseWriter, r *http.Request) {
	payment, err := h.svc.ClearNextPayment()
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusCreated, payment)
}

// ExtraPayment handles POST /loan/payments/extra
func (h *Handler) ExtraPayment(w http.ResponseWriter, r *http.Request) {
	var req extraPaymentRequest
	if err := decodeBody(r, &req); err != nil {
		respondError(w, err)
		return
	}
	date, err := parseDate(req.PaymentDate)
	if err != nil {
		respondError(w, err)
		return
	}

	payment, err := h.svc.RecordExtraPayment(req.Amount, date)
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusCreated, payment)
}

// DeletePayment handles DELETE /loan/payments/{id}
func (h *Handler) DeletePayment(w http.ResponseWriter, r *http.Request) {
	id, err := parseID(mux.Vars(r)["id"])
	if err != nil {
		respondError(w, err)
		return
	}
	if err := h.svc.DeletePayment(id); err != nil {
		respondError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
