package companies

import (
	"context"

	"github.com/saferide/saferide/internal/server/models"
)

type Repository interface {
	Create(ctx context.Context, company *models.Company) (*models.Company, error)
	GetByID(ctx context.Context, id string) (*models.Company, error)
	List(ctx context.Context, offset, limit int, activeOnly bool) ([]*models.Company, error)
	Count(ctx context.Context) (int64, error)
	Update(ctx context.Context, company *models.Company) (*models.Company, error)
	Delete(ctx context.Context, id string) error
}
