package models

import "time"

// Company is a ride-sharing operator. The operation area is a circle around
// (CenterLat, CenterLng); polygon areas from the legacy schema are not carried
// over.
type Company struct {
	ID           string
	Name         string
	Description  string
	ContactEmail string
	ContactPhone string
	Address      string
	CenterLat    *float64
	CenterLng    *float64
	RadiusKm     *float64
	IsActive     bool
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
