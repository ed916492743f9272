package models

import "time"

// Ride statuses.
const (
	RideStatusPending   = "pending"
	RideStatusActive    = "active"
	RideStatusCompleted = "completed"
	RideStatusCancelled = "cancelled"
)

// ValidRideStatus reports whether s is one of the known ride statuses.
func ValidRideStatus(s string) bool {
	switch s {
	case RideStatusPending, RideStatusActive, RideStatusCompleted, RideStatusCancelled:
		return true
	}
	return false
}

type Ride struct {
	ID                 string
	PassengerID        string
	DriverID           *string
	OriginLat          float64
	OriginLng          float64
	OriginAddress      string
	DestinationLat     float64
	DestinationLng     float64
	DestinationAddress string
	Status             string
	PassengerCount     int
	EstimatedDistance  float64 // km
	EstimatedDuration  int     // minutes
	EstimatedFare      float64
	CreatedAt          time.Time
	UpdatedAt          time.Time
}
