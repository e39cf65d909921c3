package handler

import "github.com/gorilla/mux"

// Routes registers every tracker route on the router
func (h *Handler) Routes(r *mux.Router) {
	// Weekly balance snapshots
	r.HandleFunc("/snapshots", h.ListSnapshots).Methods("GET")
	r.HandleFunc("/snapshots", h.UpsertSnapshot).Methods("POST")
	r.HandleFunc("/snapshots/{date}", h.DeleteSnapshot).Methods("DELETE")

	// Chores
	r.HandleFunc("/chores", h.ListChores).Methods("GET")
	r.HandleFunc("/chores", h.CreateChore).Methods("POST")
	r.HandleFunc("/chores/completions/{id}", h.DeleteCompletion).Methods("DELETE")
	r.HandleFunc("/chores/{id}", h.DeleteChore).Methods("DELETE")
	r.HandleFunc("/chores/{id}/completions", h.CompleteChore).Methods("POST")

	// Loan tracker
	r.HandleFunc("/loan", h.GetLoan).Methods("GET")
	r.HandleFunc("/loan/upcoming", h.Upcoming).Methods("GET")
	r.HandleFunc("/loan/payoff", h.Payoff).Methods("GET")
	r.HandleFunc("/loan/payments", h.ListPayments).Methods("GET")
	r.HandleFunc("/loan/payments", h.ClearPayment).Methods("POST")
	r.HandleFunc("/loan/payments/extra", h.ExtraPayment).Methods("POST")
	r.HandleFunc("/loan/payments/{id}", h.DeletePayment).Methods("DELETE")
}
