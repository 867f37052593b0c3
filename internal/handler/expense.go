package handler

import (
	"net/http"

	"github.com/pkordes/travel-planner/backend/internal/domain"
)

// ListExpenses handles GET /expenses.
func (s *Server) ListExpenses(w http.ResponseWriter, r *http.Request) {
	params, ok := pagination(w, r)
	if !ok {
		return
	}
	list, err := s.expenses.FindExpenses(r.Context(), r.URL.Query().Get("q"))
	if err != nil {
		writeServiceError(w, r, err, "expense")
		return
	}
	writeJSON(w, http.StatusOK, paginate(list, params, expenseToResponse))
}

// CreateExpense handles POST /expenses.
// amount may be sent as a JSON number or a decimal string.
func (s *Server) CreateExpense(w http.ResponseWriter, r *http.Request) {
	var body CreateExpenseRequest
	if !decodeBody(w, r, &body) {
		return
	}
	created, err := s.expenses.AddExpense(r.Context(), domain.Expense{
		ID:     body.ID,
		TripID: body.TripID,
		Title:  body.Title,
		Amount: body.Amount,
		Date:   body.Date.Time,
	})
	if err != nil {
		writeServiceError(w, r, err, "expense")
		return
	}
	writeJSON(w, http.StatusCreated, expenseToResponse(created))
}

// GetExpense handles GET /expenses/{id}.
func (s *Server) GetExpense(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	e, err := s.expenses.GetExpense(r.Context(), id)
	if err != nil {
		writeServiceError(w, r, err, "expense")
		return
	}
	writeJSON(w, http.StatusOK, expenseToResponse(e))
}

// UpdateExpense handles PATCH /expenses/{id}.
func (s *Server) UpdateExpense(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	var body UpdateExpenseRequest
	if !decodeBody(w, r, &body) {
		return
	}
	updated, err := s.expenses.UpdateExpense(r.Context(), id, domain.ExpensePatch{
		Title:  body.Title,
		Amount: body.Amount,
		Date:   dateOrNil(body.Date),
	})
	if err != nil {
		writeServiceError(w, r, err, "expense")
		return
	}
	writeJSON(w, http.StatusOK, expenseToResponse(updated))
}

// DeleteExpense handles DELETE /expenses/{id}.
// Returns 409 with reason too_old after the 30-day window.
func (s *Server) DeleteExpense(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	if err := s.expenses.DeleteExpense(r.Context(), id); err != nil {
		writeServiceError(w, r, err, "expense")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// CanDeleteExpense handles GET /expenses/{id}/deletable.
func (s *Server) CanDeleteExpense(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	yes, err := s.expenses.CanDeleteExpense(r.Context(), id, s.now())
	if err != nil {
		writeServiceError(w, r, err, "expense")
		return
	}
	writeJSON(w, http.StatusOK, DeletableResponse{Deletable: yes})
}
