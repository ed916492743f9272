package rides

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/saferide/saferide/internal/common"
	"github.com/saferide/saferide/internal/dbx"
	"github.com/saferide/saferide/internal/server/models"
)

type PostgresRepository struct {
	db dbx.DBTX
}

func NewPostgresRepository(db dbx.DBTX) *PostgresRepository {
	return &PostgresRepository{db: db}
}

const rideColumns = `id, passenger_id, driver_id, origin_lat, origin_lng, origin_address,
	destination_lat, destination_lng, destination_address, status, passenger_count,
	estimated_distance, estimated_duration, estimated_fare, created_at, updated_at`

func scanRide(row interface{ Scan(...any) error }) (*models.Ride, error) {
	ride := &models.Ride{}
	err := row.Scan(&ride.ID, &ride.PassengerID, &ride.DriverID, &ride.OriginLat,
		&ride.OriginLng, &ride.OriginAddress, &ride.DestinationLat, &ride.DestinationLng,
		&ride.DestinationAddress, &ride.Status, &ride.PassengerCount,
		&ride.EstimatedDistance, &ride.EstimatedDuration, &ride.EstimatedFare,
		&ride.CreatedAt, &ride.UpdatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrorNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}
	return ride, nil
}

func (r *PostgresRepository) Create(ctx context.Context, ride *models.Ride) (*models.Ride, error) {
	query := `INSERT INTO rides (id, passenger_id, origin_lat, origin_lng, origin_address,
	  destination_lat, destination_lng, destination_address, status, passenger_count,
	  estimated_distance, estimated_duration, estimated_fare)
	 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)
	 RETURNING created_at, updated_at`

	err := r.db.QueryRowContext(ctx, query,
		ride.ID, ride.PassengerID, ride.OriginLat, ride.OriginLng, ride.OriginAddress,
		ride.DestinationLat, ride.DestinationLng, ride.DestinationAddress, ride.Status,
		ride.PassengerCount, ride.EstimatedDistance, ride.EstimatedDuration, ride.EstimatedFare).
		Scan(&ride.CreatedAt, &ride.UpdatedAt)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	return ride, nil
}

func (r *PostgresRepository) GetByID(ctx context.Context, id string) (*models.Ride, error) {
	query := `SELECT ` + rideColumns + ` FROM rides WHERE id = $1`
	return scanRide(r.db.QueryRowContext(ctx, query, id))
}

func (r *PostgresRepository) ListByUser(ctx context.Context, userID string, status string) ([]*models.Ride, error) {
	query := `SELECT ` + rideColumns + ` FROM rides WHERE (passenger_id = $1 OR driver_id = $1)`
	args := []any{userID}
	if status != "" {
		query += ` AND status = $2`
		args = append(args, status)
	}
	query += ` ORDER BY created_at DESC`

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	defer rows.Close()

	var result []*models.Ride
	for rows.Next() {
		ride, err := scanRide(rows)
		if err != nil {
			return nil, err
		}
		result = append(result, ride)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	return result, nil
}

func (r *PostgresRepository) UpdateStatus(ctx context.Context, id string, status string) error {
	return r.exec(ctx, `UPDATE rides SET status = $2, updated_at = now() WHERE id = $1`, id, status)
}

func (r *PostgresRepository) AssignDriver(ctx context.Context, id string, driverID string) error {
	return r.exec(ctx,
		`UPDATE rides SET driver_id = $2, status = $3, updated_at = now() WHERE id = $1`,
		id, driverID, models.RideStatusActive)
}

func (r *PostgresRepository) exec(ctx context.Context, query string, args ...any) error {
	res, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return common.ErrorNotFound
	}
	return nil
}
