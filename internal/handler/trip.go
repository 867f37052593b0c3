package handler

import (
	"net/http"

	"github.com/pkordes/travel-planner/backend/internal/domain"
)

// ListTrips handles GET /trips.
// ?q= filters by title, destination city or exact id.
func (s *Server) ListTrips(w http.ResponseWriter, r *http.Request) {
	params, ok := pagination(w, r)
	if !ok {
		return
	}
	list, err := s.trips.FindTrips(r.Context(), r.URL.Query().Get("q"))
	if err != nil {
		writeServiceError(w, r, err, "trip")
		return
	}
	writeJSON(w, http.StatusOK, paginate(list, params, tripToResponse))
}

// CreateTrip handles POST /trips.
func (s *Server) CreateTrip(w http.ResponseWriter, r *http.Request) {
	var body CreateTripRequest
	if !decodeBody(w, r, &body) {
		return
	}
	created, err := s.trips.AddTrip(r.Context(), domain.Trip{
		ID:            body.ID,
		DestinationID: body.DestinationID,
		Title:         body.Title,
		StartDate:     body.StartDate.Time,
		EndDate:       body.EndDate.Time,
		Description:   body.Description,
	})
	if err != nil {
		writeServiceError(w, r, err, "trip")
		return
	}
	writeJSON(w, http.StatusCreated, tripToResponse(created))
}

// GetTrip handles GET /trips/{id}.
func (s *Server) GetTrip(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	trip, err := s.trips.GetTrip(r.Context(), id)
	if err != nil {
		writeServiceError(w, r, err, "trip")
		return
	}
	writeJSON(w, http.StatusOK, tripToResponse(trip))
}

// UpdateTrip handles PATCH /trips/{id}.
func (s *Server) UpdateTrip(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	var body UpdateTripRequest
	if !decodeBody(w, r, &body) {
		return
	}
	updated, err := s.trips.UpdateTrip(r.Context(), id, domain.TripPatch{
		DestinationID: body.DestinationID,
		Title:         body.Title,
		StartDate:     dateOrNil(body.StartDate),
		EndDate:       dateOrNil(body.EndDate),
		Description:   body.Description,
	})
	if err != nil {
		writeServiceError(w, r, err, "trip")
		return
	}
	writeJSON(w, http.StatusOK, tripToResponse(updated))
}

// DeleteTrip handles DELETE /trips/{id}.
// Returns 409 with reason has_dependents while activities or expenses remain.
func (s *Server) DeleteTrip(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	if err := s.trips.DeleteTrip(r.Context(), id); err != nil {
		writeServiceError(w, r, err, "trip")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// CanDeleteTrip handles GET /trips/{id}/deletable.
func (s *Server) CanDeleteTrip(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	yes, err := s.trips.CanDeleteTrip(r.Context(), id)
	if err != nil {
		writeServiceError(w, r, err, "trip")
		return
	}
	writeJSON(w, http.StatusOK, DeletableResponse{Deletable: yes})
}

// ListTripActivities handles GET /trips/{id}/activities.
func (s *Server) ListTripActivities(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	params, ok := pagination(w, r)
	if !ok {
		return
	}
	list, err := s.activities.ListActivitiesByTrip(r.Context(), id)
	if err != nil {
		writeServiceError(w, r, err, "trip")
		return
	}
	writeJSON(w, http.StatusOK, paginate(list, params, activityToResponse))
}

// ListTripExpenses handles GET /trips/{id}/expenses.
func (s *Server) ListTripExpenses(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	params, ok := pagination(w, r)
	if !ok {
		return
	}
	list, err := s.expenses.ListExpensesByTrip(r.Context(), id)
	if err != nil {
		writeServiceError(w, r, err, "trip")
		return
	}
	writeJSON(w, http.StatusOK, paginate(list, params, expenseToResponse))
}

// GetTripExpenseTotal handles GET /trips/{id}/expenses/total.
func (s *Server) GetTripExpenseTotal(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	total, err := s.expenses.ExpenseTotal(r.Context(), id)
	if err != nil {
		writeServiceError(w, r, err, "trip")
		return
	}
	writeJSON(w, http.StatusOK, ExpenseTotalResponse{TripID: id, Total: total})
}
