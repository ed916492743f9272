package services

import (
	"math"

	"github.com/saferide/saferide/internal/common"
)

// Average urban driving speed used to turn distances into duration estimates.
const avgSpeedKmh = 30.0

// Base fare plus per-km rate used for ride fare estimates.
const (
	baseFare  = 2.5
	farePerKm = 1.2
)

// Waypoint is a geographic point, optionally labeled (child name, address).
type Waypoint struct {
	Lat   float64
	Lng   float64
	Label string
}

// RouteLeg is one hop of an optimized route.
type RouteLeg struct {
	From        Waypoint
	To          Waypoint
	DistanceKm  float64
	DurationMin float64
}

// RoutePlan is the ordered pickup plan produced by OptimizeRoute.
type RoutePlan struct {
	Stops            []Waypoint
	Legs             []RouteLeg
	TotalDistanceKm  float64
	TotalDurationMin float64
}

// Haversine returns the great-circle distance in kilometers between two
// points given in degrees.
func Haversine(lat1, lng1, lat2, lng2 float64) float64 {
	const earthRadiusKm = 6371.0

	toRad := func(deg float64) float64 { return deg * math.Pi / 180 }

	dLat := toRad(lat2 - lat1)
	dLng := toRad(lng2 - lng1)

	a := math.Sin(dLat/2)*math.Sin(dLat/2) +
		math.Cos(toRad(lat1))*math.Cos(toRad(lat2))*math.Sin(dLng/2)*math.Sin(dLng/2)

	return 2 * earthRadiusKm * math.Atan2(math.Sqrt(a), math.Sqrt(1-a))
}

// OptimizeRoute orders stops by repeatedly driving to the nearest remaining
// pickup, starting from start. Nearest-neighbor is not optimal in general but
// is deterministic and good enough for school-run sized stop counts.
func OptimizeRoute(start Waypoint, stops []Waypoint) (*RoutePlan, error) {
	if len(stops) == 0 {
		return nil, common.ErrorValidation
	}

	remaining := make([]Waypoint, len(stops))
	copy(remaining, stops)

	plan := &RoutePlan{Stops: make([]Waypoint, 0, len(stops))}
	current := start

	for len(remaining) > 0 {
		nearest := 0
		nearestDist := Haversine(current.Lat, current.Lng, remaining[0].Lat, remaining[0].Lng)
		for i := 1; i < len(remaining); i++ {
			d := Haversine(current.Lat, current.Lng, remaining[i].Lat, remaining[i].Lng)
			if d < nearestDist {
				nearest = i
				nearestDist = d
			}
		}

		next := remaining[nearest]
		remaining = append(remaining[:nearest], remaining[nearest+1:]...)

		leg := RouteLeg{
			From:        current,
			To:          next,
			DistanceKm:  nearestDist,
			DurationMin: nearestDist / avgSpeedKmh * 60,
		}
		plan.Legs = append(plan.Legs, leg)
		plan.Stops = append(plan.Stops, next)
		plan.TotalDistanceKm += leg.DistanceKm
		plan.TotalDurationMin += leg.DurationMin

		current = next
	}

	return plan, nil
}

// EstimateFare returns a flat-rate fare estimate for a trip of the given
// length.
func EstimateFare(distanceKm float64) float64 {
	return baseFare + distanceKm*farePerKm
}
