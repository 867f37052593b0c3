package handler

import (
	"net/http"

	"github.com/pkordes/travel-planner/backend/internal/domain"
)

// ListActivities handles GET /activities.
// ?q= filters by name, location or exact id.
func (s *Server) ListActivities(w http.ResponseWriter, r *http.Request) {
	params, ok := pagination(w, r)
	if !ok {
		return
	}
	list, err := s.activities.FindActivities(r.Context(), r.URL.Query().Get("q"))
	if err != nil {
		writeServiceError(w, r, err, "activity")
		return
	}
	writeJSON(w, http.StatusOK, paginate(list, params, activityToResponse))
}

// CreateActivity handles POST /activities.
// time accepts "18:30" or "06:30 PM" and is returned as "18:30".
func (s *Server) CreateActivity(w http.ResponseWriter, r *http.Request) {
	var body CreateActivityRequest
	if !decodeBody(w, r, &body) {
		return
	}
	created, err := s.activities.AddActivity(r.Context(), domain.Activity{
		ID:       body.ID,
		TripID:   body.TripID,
		Name:     body.Name,
		Date:     body.Date.Time,
		Time:     body.Time,
		Location: body.Location,
	})
	if err != nil {
		writeServiceError(w, r, err, "activity")
		return
	}
	writeJSON(w, http.StatusCreated, activityToResponse(created))
}

// GetActivity handles GET /activities/{id}.
func (s *Server) GetActivity(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	a, err := s.activities.GetActivity(r.Context(), id)
	if err != nil {
		writeServiceError(w, r, err, "activity")
		return
	}
	writeJSON(w, http.StatusOK, activityToResponse(a))
}

// UpdateActivity handles PATCH /activities/{id}.
func (s *Server) UpdateActivity(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	var body UpdateActivityRequest
	if !decodeBody(w, r, &body) {
		return
	}
	updated, err := s.activities.UpdateActivity(r.Context(), id, domain.ActivityPatch{
		Name:     body.Name,
		Date:     dateOrNil(body.Date),
		Time:     body.Time,
		Location: body.Location,
	})
	if err != nil {
		writeServiceError(w, r, err, "activity")
		return
	}
	writeJSON(w, http.StatusOK, activityToResponse(updated))
}

// DeleteActivity handles DELETE /activities/{id}.
// Returns 409 with reason past_schedule once the activity's time has come.
func (s *Server) DeleteActivity(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	if err := s.activities.DeleteActivity(r.Context(), id); err != nil {
		writeServiceError(w, r, err, "activity")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// CanDeleteActivity handles GET /activities/{id}/deletable.
func (s *Server) CanDeleteActivity(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	yes, err := s.activities.CanDeleteActivity(r.Context(), id, s.now())
	if err != nil {
		writeServiceError(w, r, err, "activity")
		return
	}
	writeJSON(w, http.StatusOK, DeletableResponse{Deletable: yes})
}
