package handler

import (
	"net/http"

	"github.com/gorilla/mux"
	"github.com/shopspring/decimal"
)

type snapshotRequest struct {
	SnapshotDate string          `json:"snapshot_date"`
	Checking     decimal.Decimal `json:"checking"`
	Savings      decimal.Decimal `json:"savings"`
	Investments  decimal.Decimal `json:"investments"`
	Debt         decimal.Decimal `json:"debt"`
}

// ListSnapshots handles GET /snapshots
func (h *Handler) ListSnapshots(w http.ResponseWriter, r *http.Request) {
	snapshots, err := h.svc.ListSnapshots()
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, snapshots)
}

// UpsertSnapshot handles POST /snapshots
func (h *Handler) UpsertSnapshot(w http.ResponseWriter, r *http.Request) {
	var req snapshotRequest
	if err := decodeBody(r, &req); err != nil {
		respondError(w, err)
		return
	}
	date, err := parseDate(req.SnapshotDate)
	if err != nil {
		respondError(w, err)
		return
	}

	snapshot, err := h.svc.RecordSnapshot(date, req.Checking, req.Savings, req.Investments, req.Debt)
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, snapshot)
}

// DeleteSnapshot handles DELETE /snapshots/{date}
func (h *Handler) DeleteSnapshot(w http.ResponseWriter, r *http.Request) {
	date, err := parseDate(mux.Vars(r)["date"])
	if err != nil {
		respondError(w, err)
		return
	}
	if err := h.svc.DeleteSnapshot(date); err != nil {
		respondError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
