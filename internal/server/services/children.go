package services

import (
	"context"
	"database/sql"
	"strings"

	"github.com/google/uuid"

	"github.com/saferide/saferide/internal/common"
	"github.com/saferide/saferide/internal/server/models"
	"github.com/saferide/saferide/internal/server/repositories/repomanager"
)

// ChildService manages the child records transported by the system.
type ChildService struct {
	db          *sql.DB
	repomanager repomanager.RepositoryManager
}

func NewChildService(db *sql.DB, m repomanager.RepositoryManager) *ChildService {
	return &ChildService{db: db, repomanager: m}
}

type ChildParams struct {
	FirstName        string
	LastName         string
	Email            string
	Phone            string
	ParentID         string
	DateOfBirth      string
	Grade            string
	School           string
	EmergencyContact string
	Notes            string
	IsActive         *bool
}

func (s *ChildService) Create(ctx context.Context, params ChildParams) (*models.Child, error) {
	if strings.TrimSpace(params.FirstName) == "" || strings.TrimSpace(params.LastName) == "" {
		return nil, common.ErrorValidation
	}
	if params.ParentID == "" {
		return nil, common.ErrorValidation
	}

	// The parent must be a real account.
	if _, err := s.repomanager.Users(s.db).GetByID(ctx, params.ParentID); err != nil {
		return nil, err
	}

	child := &models.Child{
		ID:               uuid.NewString(),
		FirstName:        strings.TrimSpace(params.FirstName),
		LastName:         strings.TrimSpace(params.LastName),
		Email:            params.Email,
		Phone:            params.Phone,
		ParentID:         params.ParentID,
		DateOfBirth:      params.DateOfBirth,
		Grade:            params.Grade,
		School:           params.School,
		EmergencyContact: params.EmergencyContact,
		Notes:            params.Notes,
		IsActive:         true,
	}
	return s.repomanager.Children(s.db).Create(ctx, child)
}

func (s *ChildService) GetByID(ctx context.Context, id string) (*models.Child, error) {
	return s.repomanager.Children(s.db).GetByID(ctx, id)
}

func (s *ChildService) ListAll(ctx context.Context) ([]*models.Child, error) {
	return s.repomanager.Children(s.db).ListAll(ctx)
}

func (s *ChildService) ListByParent(ctx context.Context, parentID string) ([]*models.Child, error) {
	return s.repomanager.Children(s.db).ListByParent(ctx, parentID)
}

func (s *ChildService) Search(ctx context.Context, term string) ([]*models.Child, error) {
	term = strings.TrimSpace(term)
	if term == "" {
		return s.repomanager.Children(s.db).ListAll(ctx)
	}
	return s.repomanager.Children(s.db).Search(ctx, term)
}

func (s *ChildService) Update(ctx context.Context, id string, params ChildParams) (*models.Child, error) {
	repo := s.repomanager.Children(s.db)

	child, err := repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if strings.TrimSpace(params.FirstName) != "" {
		child.FirstName = strings.TrimSpace(params.FirstName)
	}
	if strings.TrimSpace(params.LastName) != "" {
		child.LastName = strings.TrimSpace(params.LastName)
	}
	if params.Email != "" {
		child.Email = params.Email
	}
	if params.Phone != "" {
		child.Phone = params.Phone
	}
	if params.DateOfBirth != "" {
		child.DateOfBirth = params.DateOfBirth
	}
	if params.Grade != "" {
		child.Grade = params.Grade
	}
	if params.School != "" {
		child.School = params.School
	}
	if params.EmergencyContact != "" {
		child.EmergencyContact = params.EmergencyContact
	}
	if params.Notes != "" {
		child.Notes = params.Notes
	}
	if params.IsActive != nil {
		child.IsActive = *params.IsActive
	}

	return repo.Update(ctx, child)
}

func (s *ChildService) Delete(ctx context.Context, id string) error {
	return s.repomanager.Children(s.db).Delete(ctx, id)
}
