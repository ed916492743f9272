package users

import (
	"context"

	"github.com/saferide/saferide/internal/server/models"
)

type Repository interface {
	Create(ctx context.Context, user *models.User) (*models.User, error)
	GetByID(ctx context.Context, id string) (*models.User, error)
	GetByEmail(ctx context.Context, email string) (*models.User, error)
	List(ctx context.Context, offset, limit int) ([]*models.User, error)
	ListAvailableDrivers(ctx context.Context, offset, limit int) ([]*models.User, error)
	ListByCompany(ctx context.Context, companyID string) ([]*models.User, error)
	Count(ctx context.Context) (int64, error)
	CountActive(ctx context.Context) (int64, error)
	Update(ctx context.Context, user *models.User) (*models.User, error)
	UpdateStatus(ctx context.Context, id string, isActive bool) error
	UpdateRole(ctx context.Context, id string, role string) error
	UpdateLastLogin(ctx context.Context, id string) error
	SetCompany(ctx context.Context, id string, companyID *string) error
	Delete(ctx context.Context, id string) error
}
