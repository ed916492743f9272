package services

import (
	"context"
	"database/sql"
	"strings"

	"github.com/google/uuid"

	"github.com/saferide/saferide/internal/common"
	"github.com/saferide/saferide/internal/server/auth"
	"github.com/saferide/saferide/internal/server/models"
	"github.com/saferide/saferide/internal/server/repositories/repomanager"
)

// UserService handles administrative user management.
type UserService struct {
	db          *sql.DB
	repomanager repomanager.RepositoryManager
}

func NewUserService(db *sql.DB, m repomanager.RepositoryManager) *UserService {
	return &UserService{db: db, repomanager: m}
}

// CreateUserParams are the fields an admin supplies when creating an account.
type CreateUserParams struct {
	Email     string
	Password  string
	FirstName string
	LastName  string
	Phone     string
	Role      string
}

// DashboardStats summarizes the system for the admin landing page.
type DashboardStats struct {
	TotalUsers     int64
	ActiveUsers    int64
	TotalCompanies int64
	TotalChildren  int64
}

func (s *UserService) Create(ctx context.Context, params CreateUserParams) (*models.User, error) {
	email := strings.TrimSpace(strings.ToLower(params.Email))
	if email == "" || !strings.Contains(email, "@") {
		return nil, common.ErrorValidation
	}
	if params.Password == "" || params.FirstName == "" || params.LastName == "" {
		return nil, common.ErrorValidation
	}
	role := params.Role
	if role == "" {
		role = models.RoleParent
	}

	repo := s.repomanager.Users(s.db)
	if _, err := repo.GetByEmail(ctx, email); err == nil {
		return nil, common.ErrorAlreadyExists
	}

	hash, err := auth.HashPassword(params.Password)
	if err != nil {
		return nil, common.ErrorInternal
	}

	user := &models.User{
		ID:             uuid.NewString(),
		Email:          email,
		HashedPassword: hash,
		FirstName:      params.FirstName,
		LastName:       params.LastName,
		Phone:          params.Phone,
		Role:           role,
		IsActive:       true,
	}
	return repo.Create(ctx, user)
}

func (s *UserService) GetByID(ctx context.Context, id string) (*models.User, error) {
	return s.repomanager.Users(s.db).GetByID(ctx, id)
}

func (s *UserService) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	return s.repomanager.Users(s.db).GetByEmail(ctx, email)
}

func (s *UserService) List(ctx context.Context, offset, limit int) ([]*models.User, error) {
	return s.repomanager.Users(s.db).List(ctx, offset, limit)
}

// UpdateProfileParams are the caller-editable profile fields. Nil pointers
// leave the stored value alone.
type UpdateProfileParams struct {
	Email      *string
	FirstName  *string
	LastName   *string
	Phone      *string
	IsVerified *bool
}

func (s *UserService) Update(ctx context.Context, id string, params UpdateProfileParams) (*models.User, error) {
	repo := s.repomanager.Users(s.db)

	user, err := repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if params.Email != nil {
		user.Email = strings.TrimSpace(strings.ToLower(*params.Email))
	}
	if params.FirstName != nil {
		user.FirstName = *params.FirstName
	}
	if params.LastName != nil {
		user.LastName = *params.LastName
	}
	if params.Phone != nil {
		user.Phone = *params.Phone
	}
	if params.IsVerified != nil {
		user.IsVerified = *params.IsVerified
	}

	return repo.Update(ctx, user)
}

func (s *UserService) UpdateStatus(ctx context.Context, id string, isActive bool) (*models.User, error) {
	repo := s.repomanager.Users(s.db)
	if err := repo.UpdateStatus(ctx, id, isActive); err != nil {
		return nil, err
	}
	return repo.GetByID(ctx, id)
}

func (s *UserService) UpdateRole(ctx context.Context, id string, role string) (*models.User, error) {
	switch role {
	case models.RoleAdmin, models.RoleParent, models.RoleDriver, models.RoleEscort:
	default:
		return nil, common.ErrorValidation
	}
	repo := s.repomanager.Users(s.db)
	if err := repo.UpdateRole(ctx, id, role); err != nil {
		return nil, err
	}
	return repo.GetByID(ctx, id)
}

func (s *UserService) Delete(ctx context.Context, id string) error {
	return s.repomanager.Users(s.db).Delete(ctx, id)
}

func (s *UserService) GetDashboardStats(ctx context.Context) (*DashboardStats, error) {
	usersRepo := s.repomanager.Users(s.db)

	total, err := usersRepo.Count(ctx)
	if err != nil {
		return nil, err
	}
	active, err := usersRepo.CountActive(ctx)
	if err != nil {
		return nil, err
	}
	companies, err := s.repomanager.Companies(s.db).Count(ctx)
	if err != nil {
		return nil, err
	}
	children, err := s.repomanager.Children(s.db).Count(ctx)
	if err != nil {
		return nil, err
	}

	return &DashboardStats{
		TotalUsers:     total,
		ActiveUsers:    active,
		TotalCompanies: companies,
		TotalChildren:  children,
	}, nil
}
