package handler

import (
	"maps"
	"net/http"
	"slices"
)

// GetTripsByDestination handles GET /groups/trips-by-destination.
// Only destinations with at least one trip appear; groups are ordered by id.
func (s *Server) GetTripsByDestination(w http.ResponseWriter, r *http.Request) {
	groups, err := s.groups.TripsByDestination(r.Context())
	if err != nil {
		writeServiceError(w, r, err, "destination")
		return
	}
	writeJSON(w, http.StatusOK, toGroups(groups, tripToResponse))
}

// GetActivitiesByTrip handles GET /groups/activities-by-trip.
func (s *Server) GetActivitiesByTrip(w http.ResponseWriter, r *http.Request) {
	groups, err := s.groups.ActivitiesByTrip(r.Context())
	if err != nil {
		writeServiceError(w, r, err, "trip")
		return
	}
	writeJSON(w, http.StatusOK, toGroups(groups, activityToResponse))
}

// GetExpensesByTrip handles GET /groups/expenses-by-trip.
func (s *Server) GetExpensesByTrip(w http.ResponseWriter, r *http.Request) {
	groups, err := s.groups.ExpensesByTrip(r.Context())
	if err != nil {
		writeServiceError(w, r, err, "trip")
		return
	}
	writeJSON(w, http.StatusOK, toGroups(groups, expenseToResponse))
}

// toGroups flattens a grouping map into a slice ordered by key.
func toGroups[T, U any](in map[int64][]T, f func(T) U) []Group[U] {
	out := make([]Group[U], 0, len(in))
	for _, id := range slices.Sorted(maps.Keys(in)) {
		out = append(out, Group[U]{ID: id, Items: mapSlice(in[id], f)})
	}
	return out
}
