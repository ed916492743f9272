package services

import (
	"context"
	"database/sql"
	"math"

	"github.com/google/uuid"

	"github.com/saferide/saferide/internal/common"
	"github.com/saferide/saferide/internal/server/models"
	"github.com/saferide/saferide/internal/server/repositories/repomanager"
)

// RideService manages ride requests and driver assignment.
type RideService struct {
	db          *sql.DB
	repomanager repomanager.RepositoryManager
}

func NewRideService(db *sql.DB, m repomanager.RepositoryManager) *RideService {
	return &RideService{db: db, repomanager: m}
}

type RideParams struct {
	PassengerID        string
	OriginLat          float64
	OriginLng          float64
	OriginAddress      string
	DestinationLat     float64
	DestinationLng     float64
	DestinationAddress string
	PassengerCount     int
}

func validCoordinate(lat, lng float64) bool {
	return lat >= -90 && lat <= 90 && lng >= -180 && lng <= 180 &&
		!(lat == 0 && lng == 0)
}

func (s *RideService) Create(ctx context.Context, params RideParams) (*models.Ride, error) {
	if params.PassengerID == "" {
		return nil, common.ErrorValidation
	}
	if !validCoordinate(params.OriginLat, params.OriginLng) ||
		!validCoordinate(params.DestinationLat, params.DestinationLng) {
		return nil, common.ErrorValidation
	}
	if params.PassengerCount < 1 || params.PassengerCount > 4 {
		return nil, common.ErrorValidation
	}

	if _, err := s.repomanager.Users(s.db).GetByID(ctx, params.PassengerID); err != nil {
		return nil, err
	}

	distance := Haversine(params.OriginLat, params.OriginLng,
		params.DestinationLat, params.DestinationLng)

	ride := &models.Ride{
		ID:                 uuid.NewString(),
		PassengerID:        params.PassengerID,
		OriginLat:          params.OriginLat,
		OriginLng:          params.OriginLng,
		OriginAddress:      params.OriginAddress,
		DestinationLat:     params.DestinationLat,
		DestinationLng:     params.DestinationLng,
		DestinationAddress: params.DestinationAddress,
		Status:             models.RideStatusPending,
		PassengerCount:     params.PassengerCount,
		EstimatedDistance:  distance,
		EstimatedDuration:  int(math.Ceil(distance / avgSpeedKmh * 60)),
		EstimatedFare:      EstimateFare(distance),
	}
	return s.repomanager.Rides(s.db).Create(ctx, ride)
}

func (s *RideService) GetByID(ctx context.Context, id string) (*models.Ride, error) {
	return s.repomanager.Rides(s.db).GetByID(ctx, id)
}

func (s *RideService) ListByUser(ctx context.Context, userID string, status string) ([]*models.Ride, error) {
	if status != "" && !models.ValidRideStatus(status) {
		return nil, common.ErrorValidation
	}
	return s.repomanager.Rides(s.db).ListByUser(ctx, userID, status)
}

func (s *RideService) UpdateStatus(ctx context.Context, id string, status string) (*models.Ride, error) {
	if !models.ValidRideStatus(status) {
		return nil, common.ErrorValidation
	}
	repo := s.repomanager.Rides(s.db)
	if err := repo.UpdateStatus(ctx, id, status); err != nil {
		return nil, err
	}
	return repo.GetByID(ctx, id)
}

// AssignDriver puts a driver on a ride and moves it to the active status.
func (s *RideService) AssignDriver(ctx context.Context, id string, driverID string) (*models.Ride, error) {
	driver, err := s.repomanager.Users(s.db).GetByID(ctx, driverID)
	if err != nil {
		return nil, err
	}
	if driver.Role != models.RoleDriver {
		return nil, common.ErrorValidation
	}

	repo := s.repomanager.Rides(s.db)
	if err := repo.AssignDriver(ctx, id, driverID); err != nil {
		return nil, err
	}
	return repo.GetByID(ctx, id)
}
