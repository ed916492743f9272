package rides

import (
	"context"

	"github.com/saferide/saferide/internal/server/models"
)

type Repository interface {
	Create(ctx context.Context, ride *models.Ride) (*models.Ride, error)
	GetByID(ctx context.Context, id string) (*models.Ride, error)
	ListByUser(ctx context.Context, userID string, status string) ([]*models.Ride, error)
	UpdateStatus(ctx context.Context, id string, status string) error
	AssignDriver(ctx context.Context, id string, driverID string) error
}
