package api

import "time"

// User is the backend's public view of an account. There is deliberately no
// password field here: even if a backend response carries one, decoding into
// this struct drops it before it can reach session state.
type User struct {
	ID         string     `json:"id"`
	Email      string     `json:"email"`
	FirstName  string     `json:"first_name"`
	LastName   string     `json:"last_name"`
	Phone      string     `json:"phone,omitempty"`
	Role       string     `json:"role"`
	CompanyID  *string    `json:"company_id,omitempty"`
	IsActive   bool       `json:"is_active"`
	IsVerified bool       `json:"is_verified"`
	LastLogin  *time.Time `json:"last_login,omitempty"`
}

type LoginResponse struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
	ExpiresIn   int    `json:"expires_in"`
	User        *User  `json:"user"`
}

type Company struct {
	ID           string `json:"id"`
	Name         string `json:"name"`
	ContactEmail string `json:"contact_email"`
	ContactPhone string `json:"contact_phone,omitempty"`
	Address      string `json:"address,omitempty"`
	IsActive     bool   `json:"is_active"`
}

type Child struct {
	ID        string `json:"id"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	ParentID  string `json:"parent_id"`
	Grade     string `json:"grade,omitempty"`
	School    string `json:"school,omitempty"`
	IsActive  bool   `json:"is_active"`
}

type Relationship struct {
	ID       string  `json:"id"`
	ParentID string  `json:"parent_id"`
	ChildID  string  `json:"child_id"`
	EscortID *string `json:"escort_id,omitempty"`
	Type     string  `json:"relationship_type"`
	IsActive bool    `json:"is_active"`
}

type Ride struct {
	ID                 string  `json:"id"`
	PassengerID        string  `json:"passenger_id"`
	DriverID           *string `json:"driver_id,omitempty"`
	OriginAddress      string  `json:"origin_address,omitempty"`
	DestinationAddress string  `json:"destination_address,omitempty"`
	Status             string  `json:"status"`
	EstimatedDistance  float64 `json:"estimated_distance"`
	EstimatedFare      float64 `json:"estimated_fare"`
}

type Waypoint struct {
	Lat   float64 `json:"lat"`
	Lng   float64 `json:"lng"`
	Label string  `json:"label,omitempty"`
}

type RouteLeg struct {
	From        Waypoint `json:"from"`
	To          Waypoint `json:"to"`
	DistanceKm  float64  `json:"distance_km"`
	DurationMin float64  `json:"duration_min"`
}

type RoutePlan struct {
	Stops            []Waypoint `json:"stops"`
	Legs             []RouteLeg `json:"legs"`
	TotalDistanceKm  float64    `json:"total_distance_km"`
	TotalDurationMin float64    `json:"total_duration_min"`
}
