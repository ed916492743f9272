package companies

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

const companyColumns = `id, name, description, contact_email, contact_phone, address,
	center_lat, center_lng, radius_km, is_active, created_at, updated_at`

func scanCompany(row interface{ Scan(...any) error }) (*models.Company, error) {
	c := &models.Company{}
	err := row.Scan(&c.ID, &c.Name, &c.Description, &c.ContactEmail, &c.ContactPhone,
		&c.Address, &c.CenterLat, &c.CenterLng, &c.RadiusKm, &c.IsActive,
		&c.CreatedAt, &c.UpdatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrorNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}
	return c, nil
}

func (r *PostgresRepository) Create(ctx context.Context, c *models.Company) (*models.Company, error) {
	query := `INSERT INTO companies (id, name, description, contact_email, contact_phone, address, center_lat, center_lng, radius_km, is_active)
	 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
	 RETURNING created_at, updated_at`

	err := r.db.QueryRowContext(ctx, query,
		c.ID, c.Name, c.Description, c.ContactEmail, c.ContactPhone, c.Address,
		c.CenterLat, c.CenterLng, c.RadiusKm, c.IsActive).
		Scan(&c.CreatedAt, &c.UpdatedAt)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	return c, nil
}

func (r *PostgresRepository) GetByID(ctx context.Context, id string) (*models.Company, error) {
	query := `SELECT ` + companyColumns + ` FROM companies WHERE id = $1`
	return scanCompany(r.db.QueryRowContext(ctx, query, id))
}

func (r *PostgresRepository) List(ctx context.Context, offset, limit int, activeOnly bool) ([]*models.Company, error) {
	query := `SELECT ` + companyColumns + ` FROM companies`
	if activeOnly {
		query += ` WHERE is_active`
	}
	query += ` ORDER BY created_at DESC OFFSET $1 LIMIT $2`

	rows, err := r.db.QueryContext(ctx, query, offset, limit)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	defer rows.Close()

	var result []*models.Company
	for rows.Next() {
		c, err := scanCompany(rows)
		if err != nil {
			return nil, err
		}
		result = append(result, c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	return result, nil
}

func (r *PostgresRepository) Count(ctx context.Context) (int64, error) {
	var n int64
	if err := r.db.QueryRowContext(ctx, `SELECT count(*) FROM companies`).Scan(&n); err != nil {
		return 0, fmt.Errorf("db error: %w", err)
	}
	return n, nil
}

func (r *PostgresRepository) Update(ctx context.Context, c *models.Company) (*models.Company, error) {
	query := `UPDATE companies
	 SET name = $2, description = $3, contact_email = $4, contact_phone = $5, address = $6,
	     center_lat = $7, center_lng = $8, radius_km = $9, is_active = $10, updated_at = now()
	 WHERE id = $1
	 RETURNING updated_at`

	err := r.db.QueryRowContext(ctx, query,
		c.ID, c.Name, c.Description, c.ContactEmail, c.ContactPhone, c.Address,
		c.CenterLat, c.CenterLng, c.RadiusKm, c.IsActive).
		Scan(&c.UpdatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrorNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}
	return c, nil
}

func (r *PostgresRepository) Delete(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM companies WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return common.ErrorNotFound
	}
	return nil
}
