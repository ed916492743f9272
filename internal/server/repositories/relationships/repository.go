package relationships

import (
	"context"

	"github.com/saferide/saferide/internal/server/models"
)

type Repository interface {
	Create(ctx context.Context, rel *models.Relationship) (*models.Relationship, error)
	GetByID(ctx context.Context, id string) (*models.Relationship, error)
	ListByParent(ctx context.Context, parentID string) ([]*models.Relationship, error)
	ListByEscort(ctx context.Context, escortID string) ([]*models.Relationship, error)
	ExistsPair(ctx context.Context, parentID, childID string) (bool, error)
	Update(ctx context.Context, rel *models.Relationship) (*models.Relationship, error)
	Delete(ctx context.Context, id string) error
}
