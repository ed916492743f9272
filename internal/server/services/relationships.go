package services

import (
	"context"
	"database/sql"

	"github.com/google/uuid"

	"github.com/saferide/saferide/internal/common"
	"github.com/saferide/saferide/internal/server/models"
	"github.com/saferide/saferide/internal/server/repositories/repomanager"
)

// RelationshipService manages parent-child links, including optional escorts.
type RelationshipService struct {
	db          *sql.DB
	repomanager repomanager.RepositoryManager
}

func NewRelationshipService(db *sql.DB, m repomanager.RepositoryManager) *RelationshipService {
	return &RelationshipService{db: db, repomanager: m}
}

type RelationshipParams struct {
	ParentID string
	ChildID  string
	EscortID *string
	Type     string
	Notes    string
	IsActive *bool
}

func validRelationshipType(t string) bool {
	switch t {
	case models.RelationshipParent, models.RelationshipGuardian, models.RelationshipEscort:
		return true
	}
	return false
}

func (s *RelationshipService) Create(ctx context.Context, params RelationshipParams) (*models.Relationship, error) {
	if params.ParentID == "" || params.ChildID == "" || !validRelationshipType(params.Type) {
		return nil, common.ErrorValidation
	}

	if _, err := s.repomanager.Users(s.db).GetByID(ctx, params.ParentID); err != nil {
		return nil, err
	}
	if _, err := s.repomanager.Children(s.db).GetByID(ctx, params.ChildID); err != nil {
		return nil, err
	}
	if params.EscortID != nil {
		if _, err := s.repomanager.Users(s.db).GetByID(ctx, *params.EscortID); err != nil {
			return nil, err
		}
	}

	repo := s.repomanager.Relationships(s.db)

	exists, err := repo.ExistsPair(ctx, params.ParentID, params.ChildID)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, common.ErrorAlreadyExists
	}

	rel := &models.Relationship{
		ID:       uuid.NewString(),
		ParentID: params.ParentID,
		ChildID:  params.ChildID,
		EscortID: params.EscortID,
		Type:     params.Type,
		Notes:    params.Notes,
		IsActive: true,
	}
	return repo.Create(ctx, rel)
}

func (s *RelationshipService) GetByID(ctx context.Context, id string) (*models.Relationship, error) {
	return s.repomanager.Relationships(s.db).GetByID(ctx, id)
}

// ListForUser returns all relationships the user participates in, as parent
// or as escort.
func (s *RelationshipService) ListForUser(ctx context.Context, userID string) ([]*models.Relationship, error) {
	repo := s.repomanager.Relationships(s.db)

	asParent, err := repo.ListByParent(ctx, userID)
	if err != nil {
		return nil, err
	}
	asEscort, err := repo.ListByEscort(ctx, userID)
	if err != nil {
		return nil, err
	}
	return append(asParent, asEscort...), nil
}

func (s *RelationshipService) ListByParent(ctx context.Context, parentID string) ([]*models.Relationship, error) {
	return s.repomanager.Relationships(s.db).ListByParent(ctx, parentID)
}

func (s *RelationshipService) ListByEscort(ctx context.Context, escortID string) ([]*models.Relationship, error) {
	return s.repomanager.Relationships(s.db).ListByEscort(ctx, escortID)
}

func (s *RelationshipService) Update(ctx context.Context, id string, params RelationshipParams) (*models.Relationship, error) {
	repo := s.repomanager.Relationships(s.db)

	rel, err := repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if params.Type != "" {
		if !validRelationshipType(params.Type) {
			return nil, common.ErrorValidation
		}
		rel.Type = params.Type
	}
	if params.EscortID != nil {
		if _, err := s.repomanager.Users(s.db).GetByID(ctx, *params.EscortID); err != nil {
			return nil, err
		}
		rel.EscortID = params.EscortID
	}
	if params.Notes != "" {
		rel.Notes = params.Notes
	}
	if params.IsActive != nil {
		rel.IsActive = *params.IsActive
	}

	return repo.Update(ctx, rel)
}

func (s *RelationshipService) Delete(ctx context.Context, id string) error {
	return s.repomanager.Relationships(s.db).Delete(ctx, id)
}
