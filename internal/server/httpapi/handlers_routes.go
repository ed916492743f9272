package httpapi

import (
	"net/http"

	"github.com/saferide/saferide/internal/server/services"
)

func toWaypoint(dto WaypointDTO) services.Waypoint {
	return services.Waypoint{Lat: dto.Lat, Lng: dto.Lng, Label: dto.Label}
}

func toWaypointDTO(wp services.Waypoint) WaypointDTO {
	return WaypointDTO{Lat: wp.Lat, Lng: wp.Lng, Label: wp.Label}
}

func (s *Server) handleOptimizeRoute(w http.ResponseWriter, r *http.Request) {
	var req OptimizeRouteRequest
	if !decodeBody(w, r, &req) {
		return
	}

	stops := make([]services.Waypoint, 0, len(req.Stops))
	for _, dto := range req.Stops {
		stops = append(stops, toWaypoint(dto))
	}

	plan, err := services.OptimizeRoute(toWaypoint(req.Start), stops)
	if err != nil {
		writeError(w, err)
		return
	}

	resp := OptimizeRouteResponse{
		Stops:            make([]WaypointDTO, 0, len(plan.Stops)),
		Legs:             make([]RouteLegDTO, 0, len(plan.Legs)),
		TotalDistanceKm:  plan.TotalDistanceKm,
		TotalDurationMin: plan.TotalDurationMin,
	}
	for _, stop := range plan.Stops {
		resp.Stops = append(resp.Stops, toWaypointDTO(stop))
	}
	for _, leg := range plan.Legs {
		resp.Legs = append(resp.Legs, RouteLegDTO{
			From:        toWaypointDTO(leg.From),
			To:          toWaypointDTO(leg.To),
			DistanceKm:  leg.DistanceKm,
			DurationMin: leg.DurationMin,
		})
	}
	writeJSON(w, http.StatusOK, resp)
}
