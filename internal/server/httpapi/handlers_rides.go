package httpapi

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/saferide/saferide/internal/server/services"
)

func (s *Server) handleCreateRide(w http.ResponseWriter, r *http.Request) {
	var req RideRequest
	if !decodeBody(w, r, &req) {
		return
	}

	ride, err := s.rideService.Create(r.Context(), services.RideParams{
		PassengerID:        req.PassengerID,
		OriginLat:          req.OriginLat,
		OriginLng:          req.OriginLng,
		OriginAddress:      req.OriginAddress,
		DestinationLat:     req.DestinationLat,
		DestinationLng:     req.DestinationLng,
		DestinationAddress: req.DestinationAddress,
		PassengerCount:     req.PassengerCount,
	})
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, toRideResponse(ride))
}

func (s *Server) handleRidesByUser(w http.ResponseWriter, r *http.Request) {
	rides, err := s.rideService.ListByUser(r.Context(),
		chi.URLParam(r, "userID"), r.URL.Query().Get("status"))
	if err != nil {
		writeError(w, err)
		return
	}

	result := make([]*RideResponse, 0, len(rides))
	for _, ride := range rides {
		result = append(result, toRideResponse(ride))
	}
	writeJSON(w, http.StatusOK, result)
}

func (s *Server) handleGetRide(w http.ResponseWriter, r *http.Request) {
	ride, err := s.rideService.GetByID(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, toRideResponse(ride))
}

func (s *Server) handleUpdateRideStatus(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Status string `json:"status"`
	}
	if !decodeBody(w, r, &req) {
		return
	}

	ride, err := s.rideService.UpdateStatus(r.Context(), chi.URLParam(r, "id"), req.Status)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, toRideResponse(ride))
}

func (s *Server) handleAssignRideDriver(w http.ResponseWriter, r *http.Request) {
	var req struct {
		DriverID string `json:"driver_id"`
	}
	if !decodeBody(w, r, &req) {
		return
	}

	ride, err := s.rideService.AssignDriver(r.Context(), chi.URLParam(r, "id"), req.DriverID)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, toRideResponse(ride))
}
