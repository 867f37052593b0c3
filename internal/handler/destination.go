package handler

import (
	"net/http"

	"github.com/pkordes/travel-planner/backend/internal/domain"
)

// ListDestinations handles GET /destinations.
// ?q= filters by city, country or exact id; ?page= and ?limit= paginate.
func (s *Server) ListDestinations(w http.ResponseWriter, r *http.Request) {
	params, ok := pagination(w, r)
	if !ok {
		return
	}
	list, err := s.destinations.FindDestinations(r.Context(), r.URL.Query().Get("q"))
	if err != nil {
		writeServiceError(w, r, err, "destination")
		return
	}
	writeJSON(w, http.StatusOK, paginate(list, params, destinationToResponse))
}

// CreateDestination handles POST /destinations.
func (s *Server) CreateDestination(w http.ResponseWriter, r *http.Request) {
	var body CreateDestinationRequest
	if !decodeBody(w, r, &body) {
		return
	}
	created, err := s.destinations.AddDestination(r.Context(), domain.Destination{
		ID:       body.ID,
		City:     body.City,
		Country:  body.Country,
		ImageRef: body.ImageRef,
	})
	if err != nil {
		writeServiceError(w, r, err, "destination")
		return
	}
	writeJSON(w, http.StatusCreated, destinationToResponse(created))
}

// GetDestination handles GET /destinations/{id}.
func (s *Server) GetDestination(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	d, err := s.destinations.GetDestination(r.Context(), id)
	if err != nil {
		writeServiceError(w, r, err, "destination")
		return
	}
	writeJSON(w, http.StatusOK, destinationToResponse(d))
}

// UpdateDestination handles PATCH /destinations/{id}.
func (s *Server) UpdateDestination(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	var body UpdateDestinationRequest
	if !decodeBody(w, r, &body) {
		return
	}
	updated, err := s.destinations.UpdateDestination(r.Context(), id, domain.DestinationPatch{
		City:     body.City,
		Country:  body.Country,
		ImageRef: body.ImageRef,
	})
	if err != nil {
		writeServiceError(w, r, err, "destination")
		return
	}
	writeJSON(w, http.StatusOK, destinationToResponse(updated))
}

// DeleteDestination handles DELETE /destinations/{id}.
// Returns 409 with reason has_dependents while any trip references it.
func (s *Server) DeleteDestination(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	if err := s.destinations.DeleteDestination(r.Context(), id); err != nil {
		writeServiceError(w, r, err, "destination")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// CanDeleteDestination handles GET /destinations/{id}/deletable.
func (s *Server) CanDeleteDestination(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	yes, err := s.destinations.CanDeleteDestination(r.Context(), id)
	if err != nil {
		writeServiceError(w, r, err, "destination")
		return
	}
	writeJSON(w, http.StatusOK, DeletableResponse{Deletable: yes})
}

// ListDestinationTrips handles GET /destinations/{id}/trips.
func (s *Server) ListDestinationTrips(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	params, ok := pagination(w, r)
	if !ok {
		return
	}
	list, err := s.trips.ListTripsByDestination(r.Context(), id)
	if err != nil {
		writeServiceError(w, r, err, "destination")
		return
	}
	writeJSON(w, http.StatusOK, paginate(list, params, tripToResponse))
}
