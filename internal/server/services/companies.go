package services

import (
	"context"
	"database/sql"
	"strings"

	"github.com/google/uuid"

	"github.com/saferide/saferide/internal/common"
	"github.com/saferide/saferide/internal/dbx"
	"github.com/saferide/saferide/internal/server/models"
	"github.com/saferide/saferide/internal/server/repositories/repomanager"
)

// CompanyService manages ride-sharing companies and their driver rosters.
type CompanyService struct {
	db          *sql.DB
	repomanager repomanager.RepositoryManager
}

func NewCompanyService(db *sql.DB, m repomanager.RepositoryManager) *CompanyService {
	return &CompanyService{db: db, repomanager: m}
}

type CompanyParams struct {
	Name         string
	Description  string
	ContactEmail string
	ContactPhone string
	Address      string
	CenterLat    *float64
	CenterLng    *float64
	RadiusKm     *float64
	IsActive     *bool
}

// CompanyDetails is a company plus its assigned drivers.
type CompanyDetails struct {
	Company *models.Company
	Drivers []*models.User
}

func (s *CompanyService) Create(ctx context.Context, params CompanyParams) (*models.Company, error) {
	if strings.TrimSpace(params.Name) == "" || strings.TrimSpace(params.ContactEmail) == "" {
		return nil, common.ErrorValidation
	}

	company := &models.Company{
		ID:           uuid.NewString(),
		Name:         strings.TrimSpace(params.Name),
		Description:  params.Description,
		ContactEmail: params.ContactEmail,
		ContactPhone: params.ContactPhone,
		Address:      params.Address,
		CenterLat:    params.CenterLat,
		CenterLng:    params.CenterLng,
		RadiusKm:     params.RadiusKm,
		IsActive:     true,
	}
	if params.IsActive != nil {
		company.IsActive = *params.IsActive
	}
	return s.repomanager.Companies(s.db).Create(ctx, company)
}

func (s *CompanyService) GetByID(ctx context.Context, id string) (*CompanyDetails, error) {
	company, err := s.repomanager.Companies(s.db).GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	drivers, err := s.repomanager.Users(s.db).ListByCompany(ctx, id)
	if err != nil {
		return nil, err
	}
	return &CompanyDetails{Company: company, Drivers: drivers}, nil
}

func (s *CompanyService) List(ctx context.Context, offset, limit int, activeOnly bool) ([]*models.Company, error) {
	return s.repomanager.Companies(s.db).List(ctx, offset, limit, activeOnly)
}

func (s *CompanyService) Update(ctx context.Context, id string, params CompanyParams) (*models.Company, error) {
	repo := s.repomanager.Companies(s.db)

	company, err := repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if strings.TrimSpace(params.Name) != "" {
		company.Name = strings.TrimSpace(params.Name)
	}
	if params.Description != "" {
		company.Description = params.Description
	}
	if params.ContactEmail != "" {
		company.ContactEmail = params.ContactEmail
	}
	if params.ContactPhone != "" {
		company.ContactPhone = params.ContactPhone
	}
	if params.Address != "" {
		company.Address = params.Address
	}
	if params.CenterLat != nil {
		company.CenterLat = params.CenterLat
	}
	if params.CenterLng != nil {
		company.CenterLng = params.CenterLng
	}
	if params.RadiusKm != nil {
		company.RadiusKm = params.RadiusKm
	}
	if params.IsActive != nil {
		company.IsActive = *params.IsActive
	}

	return repo.Update(ctx, company)
}

// Delete removes a company. Companies with drivers still assigned are
// refused with common.ErrorValidation; drivers must be detached first.
func (s *CompanyService) Delete(ctx context.Context, id string) error {
	drivers, err := s.repomanager.Users(s.db).ListByCompany(ctx, id)
	if err != nil {
		return err
	}
	if len(drivers) > 0 {
		return common.ErrorValidation
	}
	return s.repomanager.Companies(s.db).Delete(ctx, id)
}

// AssignDriver attaches a driver account to a company. The user must exist
// and hold the driver role.
func (s *CompanyService) AssignDriver(ctx context.Context, companyID, driverID string) (*CompanyDetails, error) {
	if err := dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		if _, err := s.repomanager.Companies(tx).GetByID(ctx, companyID); err != nil {
			return err
		}
		driver, err := s.repomanager.Users(tx).GetByID(ctx, driverID)
		if err != nil {
			return err
		}
		if driver.Role != models.RoleDriver {
			return common.ErrorValidation
		}
		return s.repomanager.Users(tx).SetCompany(ctx, driverID, &companyID)
	}); err != nil {
		return nil, err
	}
	return s.GetByID(ctx, companyID)
}

// RemoveDriver detaches a driver from a company. Detaching a driver who is
// not on the roster is refused.
func (s *CompanyService) RemoveDriver(ctx context.Context, companyID, driverID string) (*CompanyDetails, error) {
	if err := dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		driver, err := s.repomanager.Users(tx).GetByID(ctx, driverID)
		if err != nil {
			return err
		}
		if driver.CompanyID == nil || *driver.CompanyID != companyID {
			return common.ErrorValidation
		}
		return s.repomanager.Users(tx).SetCompany(ctx, driverID, nil)
	}); err != nil {
		return nil, err
	}
	return s.GetByID(ctx, companyID)
}

// AvailableDrivers lists active driver accounts not yet attached to any
// company.
func (s *CompanyService) AvailableDrivers(ctx context.Context, offset, limit int) ([]*models.User, error) {
	return s.repomanager.Users(s.db).ListAvailableDrivers(ctx, offset, limit)
}
