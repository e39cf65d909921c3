package handler

import (
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/gorilla/mux"

	"homeledger/internal/service"
)

type choreRequest struct {
	Name          string `json:"name"`
	FrequencyDays int    `json:"frequency_days"`
}

type completionRequest struct {
	CompletedOn string `json:"completed_on"`
}

// ListChores handles GET /chores
func (h *Handler) ListChores(w http.ResponseWriter, r *http.Request) {
	chores, err := h.svc.ChoresByPriority()
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, chores)
}

// CreateChore handles POST /chores
func (h *Handler) CreateChore(w http.ResponseWriter, r *http.Request) {
	var req choreRequest
	if err := decodeBody(r, &req); err != nil {
		respondError(w, err)
		return
	}

	chore, err := h.svc.CreateChore(req.Name, req.FrequencyDays)
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusCreated, chore)
}

// DeleteChore handles DELETE /chores/{id}
func (h *Handler) DeleteChore(w http.ResponseWriter, r *http.Request) {
	id, err := parseID(mux.Vars(r)["id"])
	if err != nil {
		respondError(w, err)
		return
	}
	if err := h.svc.DeleteChore(id); err != nil {
		respondError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// CompleteChore handles POST /chores/{id}/completions. An empty body or
// missing date logs the completion for today.
func (h *Handler) CompleteChore(w http.ResponseWriter, r *http.Request) {
	id, err := parseID(mux.Vars(r)["id"])
	if err != nil {
		respondError(w, err)
		return
	}

	var completedOn time.Time
	if r.ContentLength > 0 {
		var req completionRequest
		if err := decodeBody(r, &req); err != nil {
			respondError(w, err)
			return
		}
		if req.CompletedOn != "" {
			completedOn, err = parseDate(req.CompletedOn)
			if err != nil {
				respondError(w, err)
				return
			}
		}
	}

	completion, err := h.svc.CompleteChore(id, completedOn)
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusCreated, completion)
}

// DeleteCompletion handles DELETE /chores/completions/{id}
func (h *Handler) DeleteCompletion(w http.ResponseWriter, r *http.Request) {
	id, err := parseID(mux.Vars(r)["id"])
	if err != nil {
		respondError(w, err)
		return
	}
	if err := h.svc.DeleteCompletion(id); err != nil {
		respondError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func parseID(value string) (int64, error) {
	id, err := strconv.ParseInt(value, 10, 64)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("%w: invalid id %q", service.ErrInvalidInput, value)
	}
	return id, nil
}
