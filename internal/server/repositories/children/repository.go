package children

import (
	"context"

	"github.com/saferide/saferide/internal/server/models"
)

type Repository interface {
	Create(ctx context.Context, child *models.Child) (*models.Child, error)
	GetByID(ctx context.Context, id string) (*models.Child, error)
	ListAll(ctx context.Context) ([]*models.Child, error)
	ListByParent(ctx context.Context, parentID string) ([]*models.Child, error)
	Search(ctx context.Context, term string) ([]*models.Child, error)
	Count(ctx context.Context) (int64, error)
	Update(ctx context.Context, child *models.Child) (*models.Child, error)
	Delete(ctx context.Context, id string) error
}
