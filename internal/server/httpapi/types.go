package httpapi

import (
	"time"

	"github.com/saferide/saferide/internal/server/models"
	"github.com/saferide/saferide/internal/server/services"
)

// UserResponse is the public view of an account. It deliberately has no
// password field, hashed or otherwise.
type UserResponse struct {
	ID         string     `json:"id"`
	Email      string     `json:"email"`
	FirstName  string     `json:"first_name"`
	LastName   string     `json:"last_name"`
	Phone      string     `json:"phone,omitempty"`
	Role       string     `json:"role"`
	CompanyID  *string    `json:"company_id,omitempty"`
	IsActive   bool       `json:"is_active"`
	IsVerified bool       `json:"is_verified"`
	CreatedAt  time.Time  `json:"created_at"`
	UpdatedAt  time.Time  `json:"updated_at"`
	LastLogin  *time.Time `json:"last_login,omitempty"`
}

func toUserResponse(u *models.User) *UserResponse {
	return &UserResponse{
		ID:         u.ID,
		Email:      u.Email,
		FirstName:  u.FirstName,
		LastName:   u.LastName,
		Phone:      u.Phone,
		Role:       u.Role,
		CompanyID:  u.CompanyID,
		IsActive:   u.IsActive,
		IsVerified: u.IsVerified,
		CreatedAt:  u.CreatedAt,
		UpdatedAt:  u.UpdatedAt,
		LastLogin:  u.LastLogin,
	}
}

func toUserResponses(users []*models.User) []*UserResponse {
	result := make([]*UserResponse, 0, len(users))
	for _, u := range users {
		result = append(result, toUserResponse(u))
	}
	return result
}

type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type LoginResponse struct {
	AccessToken string        `json:"access_token"`
	TokenType   string        `json:"token_type"`
	ExpiresIn   int           `json:"expires_in"`
	User        *UserResponse `json:"user"`
}

type CreateUserRequest struct {
	Email     string `json:"email"`
	Password  string `json:"password"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	Phone     string `json:"phone"`
	Role      string `json:"role"`
}

type UpdateUserRequest struct {
	Email      *string `json:"email"`
	FirstName  *string `json:"first_name"`
	LastName   *string `json:"last_name"`
	Phone      *string `json:"phone"`
	IsVerified *bool   `json:"is_verified"`
}

type UpdateStatusRequest struct {
	IsActive bool `json:"is_active"`
}

type UpdateRoleRequest struct {
	Role string `json:"role"`
}

type CompanyRequest struct {
	Name         string   `json:"name"`
	Description  string   `json:"description"`
	ContactEmail string   `json:"contact_email"`
	ContactPhone string   `json:"contact_phone"`
	Address      string   `json:"address"`
	CenterLat    *float64 `json:"center_lat"`
	CenterLng    *float64 `json:"center_lng"`
	RadiusKm     *float64 `json:"radius_km"`
	IsActive     *bool    `json:"is_active"`
}

type CompanyResponse struct {
	ID           string          `json:"id"`
	Name         string          `json:"name"`
	Description  string          `json:"description,omitempty"`
	ContactEmail string          `json:"contact_email"`
	ContactPhone string          `json:"contact_phone,omitempty"`
	Address      string          `json:"address,omitempty"`
	CenterLat    *float64        `json:"center_lat,omitempty"`
	CenterLng    *float64        `json:"center_lng,omitempty"`
	RadiusKm     *float64        `json:"radius_km,omitempty"`
	IsActive     bool            `json:"is_active"`
	CreatedAt    time.Time       `json:"created_at"`
	UpdatedAt    time.Time       `json:"updated_at"`
	Drivers      []*UserResponse `json:"drivers,omitempty"`
}

func toCompanyResponse(c *models.Company) *CompanyResponse {
	return &CompanyResponse{
		ID:           c.ID,
		Name:         c.Name,
		Description:  c.Description,
		ContactEmail: c.ContactEmail,
		ContactPhone: c.ContactPhone,
		Address:      c.Address,
		CenterLat:    c.CenterLat,
		CenterLng:    c.CenterLng,
		RadiusKm:     c.RadiusKm,
		IsActive:     c.IsActive,
		CreatedAt:    c.CreatedAt,
		UpdatedAt:    c.UpdatedAt,
	}
}

func toCompanyDetailsResponse(d *services.CompanyDetails) *CompanyResponse {
	resp := toCompanyResponse(d.Company)
	resp.Drivers = toUserResponses(d.Drivers)
	return resp
}

type ChildRequest struct {
	FirstName        string `json:"first_name"`
	LastName         string `json:"last_name"`
	Email            string `json:"email"`
	Phone            string `json:"phone"`
	ParentID         string `json:"parent_id"`
	DateOfBirth      string `json:"date_of_birth"`
	Grade            string `json:"grade"`
	School           string `json:"school"`
	EmergencyContact string `json:"emergency_contact"`
	Notes            string `json:"notes"`
	IsActive         *bool  `json:"is_active"`
}

type ChildResponse struct {
	ID               string    `json:"id"`
	FirstName        string    `json:"first_name"`
	LastName         string    `json:"last_name"`
	Email            string    `json:"email,omitempty"`
	Phone            string    `json:"phone,omitempty"`
	ParentID         string    `json:"parent_id"`
	DateOfBirth      string    `json:"date_of_birth,omitempty"`
	Grade            string    `json:"grade,omitempty"`
	School           string    `json:"school,omitempty"`
	EmergencyContact string    `json:"emergency_contact,omitempty"`
	Notes            string    `json:"notes,omitempty"`
	IsActive         bool      `json:"is_active"`
	CreatedAt        time.Time `json:"created_at"`
	UpdatedAt        time.Time `json:"updated_at"`
}

func toChildResponse(c *models.Child) *ChildResponse {
	return &ChildResponse{
		ID:               c.ID,
		FirstName:        c.FirstName,
		LastName:         c.LastName,
		Email:            c.Email,
		Phone:            c.Phone,
		ParentID:         c.ParentID,
		DateOfBirth:      c.DateOfBirth,
		Grade:            c.Grade,
		School:           c.School,
		EmergencyContact: c.EmergencyContact,
		Notes:            c.Notes,
		IsActive:         c.IsActive,
		CreatedAt:        c.CreatedAt,
		UpdatedAt:        c.UpdatedAt,
	}
}

func toChildResponses(children []*models.Child) []*ChildResponse {
	result := make([]*ChildResponse, 0, len(children))
	for _, c := range children {
		result = append(result, toChildResponse(c))
	}
	return result
}

type RelationshipRequest struct {
	ParentID string  `json:"parent_id"`
	ChildID  string  `json:"child_id"`
	EscortID *string `json:"escort_id"`
	Type     string  `json:"relationship_type"`
	Notes    string  `json:"notes"`
	IsActive *bool   `json:"is_active"`
}

type RelationshipResponse struct {
	ID        string    `json:"id"`
	ParentID  string    `json:"parent_id"`
	ChildID   string    `json:"child_id"`
	EscortID  *string   `json:"escort_id,omitempty"`
	Type      string    `json:"relationship_type"`
	Notes     string    `json:"notes,omitempty"`
	IsActive  bool      `json:"is_active"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func toRelationshipResponse(r *models.Relationship) *RelationshipResponse {
	return &RelationshipResponse{
		ID:        r.ID,
		ParentID:  r.ParentID,
		ChildID:   r.ChildID,
		EscortID:  r.EscortID,
		Type:      r.Type,
		Notes:     r.Notes,
		IsActive:  r.IsActive,
		CreatedAt: r.CreatedAt,
		UpdatedAt: r.UpdatedAt,
	}
}

func toRelationshipResponses(rels []*models.Relationship) []*RelationshipResponse {
	result := make([]*RelationshipResponse, 0, len(rels))
	for _, r := range rels {
		result = append(result, toRelationshipResponse(r))
	}
	return result
}

type RideRequest struct {
	PassengerID        string  `json:"passenger_id"`
	OriginLat          float64 `json:"origin_lat"`
	OriginLng          float64 `json:"origin_lng"`
	OriginAddress      string  `json:"origin_address"`
	DestinationLat     float64 `json:"destination_lat"`
	DestinationLng     float64 `json:"destination_lng"`
	DestinationAddress string  `json:"destination_address"`
	PassengerCount     int     `json:"passenger_count"`
}

type RideResponse struct {
	ID                 string    `json:"id"`
	PassengerID        string    `json:"passenger_id"`
	DriverID           *string   `json:"driver_id,omitempty"`
	OriginLat          float64   `json:"origin_lat"`
	OriginLng          float64   `json:"origin_lng"`
	OriginAddress      string    `json:"origin_address,omitempty"`
	DestinationLat     float64   `json:"destination_lat"`
	DestinationLng     float64   `json:"destination_lng"`
	DestinationAddress string    `json:"destination_address,omitempty"`
	Status             string    `json:"status"`
	PassengerCount     int       `json:"passenger_count"`
	EstimatedDistance  float64   `json:"estimated_distance"`
	EstimatedDuration  int       `json:"estimated_duration"`
	EstimatedFare      float64   `json:"estimated_fare"`
	CreatedAt          time.Time `json:"created_at"`
	UpdatedAt          time.Time `json:"updated_at"`
}

func toRideResponse(r *models.Ride) *RideResponse {
	return &RideResponse{
		ID:                 r.ID,
		PassengerID:        r.PassengerID,
		DriverID:           r.DriverID,
		OriginLat:          r.OriginLat,
		OriginLng:          r.OriginLng,
		OriginAddress:      r.OriginAddress,
		DestinationLat:     r.DestinationLat,
		DestinationLng:     r.DestinationLng,
		DestinationAddress: r.DestinationAddress,
		Status:             r.Status,
		PassengerCount:     r.PassengerCount,
		EstimatedDistance:  r.EstimatedDistance,
		EstimatedDuration:  r.EstimatedDuration,
		EstimatedFare:      r.EstimatedFare,
		CreatedAt:          r.CreatedAt,
		UpdatedAt:          r.UpdatedAt,
	}
}

type WaypointDTO struct {
	Lat   float64 `json:"lat"`
	Lng   float64 `json:"lng"`
	Label string  `json:"label,omitempty"`
}

type OptimizeRouteRequest struct {
	Start WaypointDTO   `json:"start"`
	Stops []WaypointDTO `json:"stops"`
}

type RouteLegDTO struct {
	From        WaypointDTO `json:"from"`
	To          WaypointDTO `json:"to"`
	DistanceKm  float64     `json:"distance_km"`
	DurationMin float64     `json:"duration_min"`
}

type OptimizeRouteResponse struct {
	Stops            []WaypointDTO `json:"stops"`
	Legs             []RouteLegDTO `json:"legs"`
	TotalDistanceKm  float64       `json:"total_distance_km"`
	TotalDurationMin float64       `json:"total_duration_min"`
}

type DashboardStatsResponse struct {
	TotalUsers     int64 `json:"total_users"`
	ActiveUsers    int64 `json:"active_users"`
	TotalCompanies int64 `json:"total_companies"`
	TotalChildren  int64 `json:"total_children"`
}

type MessageResponse struct {
	Message string `json:"message"`
}
