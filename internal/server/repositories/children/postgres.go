package children

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

const childColumns = `id, first_name, last_name, email, phone, parent_id, date_of_birth,
	grade, school, emergency_contact, notes, is_active, created_at, updated_at`

func scanChild(row interface{ Scan(...any) error }) (*models.Child, error) {
	c := &models.Child{}
	err := row.Scan(&c.ID, &c.FirstName, &c.LastName, &c.Email, &c.Phone, &c.ParentID,
		&c.DateOfBirth, &c.Grade, &c.School, &c.EmergencyContact, &c.Notes,
		&c.IsActive, &c.CreatedAt, &c.UpdatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrorNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}
	return c, nil
}

func (r *PostgresRepository) Create(ctx context.Context, c *models.Child) (*models.Child, error) {
	query := `INSERT INTO children (id, first_name, last_name, email, phone, parent_id, date_of_birth, grade, school, emergency_contact, notes, is_active)
	 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
	 RETURNING created_at, updated_at`

	err := r.db.QueryRowContext(ctx, query,
		c.ID, c.FirstName, c.LastName, c.Email, c.Phone, c.ParentID, c.DateOfBirth,
		c.Grade, c.School, c.EmergencyContact, c.Notes, c.IsActive).
		Scan(&c.CreatedAt, &c.UpdatedAt)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	return c, nil
}

func (r *PostgresRepository) GetByID(ctx context.Context, id string) (*models.Child, error) {
	query := `SELECT ` + childColumns + ` FROM children WHERE id = $1`
	return scanChild(r.db.QueryRowContext(ctx, query, id))
}

func (r *PostgresRepository) ListAll(ctx context.Context) ([]*models.Child, error) {
	query := `SELECT ` + childColumns + ` FROM children ORDER BY last_name, first_name`
	return r.queryChildren(ctx, query)
}

func (r *PostgresRepository) ListByParent(ctx context.Context, parentID string) ([]*models.Child, error) {
	query := `SELECT ` + childColumns + ` FROM children WHERE parent_id = $1 ORDER BY last_name, first_name`
	return r.queryChildren(ctx, query, parentID)
}

func (r *PostgresRepository) Search(ctx context.Context, term string) ([]*models.Child, error) {
	query := `SELECT ` + childColumns + ` FROM children
	 WHERE first_name ILIKE '%' || $1 || '%' OR last_name ILIKE '%' || $1 || '%'
	 ORDER BY last_name, first_name`
	return r.queryChildren(ctx, query, term)
}

func (r *PostgresRepository) Count(ctx context.Context) (int64, error) {
	var n int64
	if err := r.db.QueryRowContext(ctx, `SELECT count(*) FROM children`).Scan(&n); err != nil {
		return 0, fmt.Errorf("db error: %w", err)
	}
	return n, nil
}

func (r *PostgresRepository) queryChildren(ctx context.Context, query string, args ...any) ([]*models.Child, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	defer rows.Close()

	var result []*models.Child
	for rows.Next() {
		c, err := scanChild(rows)
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

func (r *PostgresRepository) Update(ctx context.Context, c *models.Child) (*models.Child, error) {
	query := `UPDATE children
	 SET first_name = $2, last_name = $3, email = $4, phone = $5, date_of_birth = $6,
	     grade = $7, school = $8, emergency_contact = $9, notes = $10, is_active = $11,
	     updated_at = now()
	 WHERE id = $1
	 RETURNING updated_at`

	err := r.db.QueryRowContext(ctx, query,
		c.ID, c.FirstName, c.LastName, c.Email, c.Phone, c.DateOfBirth,
		c.Grade, c.School, c.EmergencyContact, c.Notes, c.IsActive).
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
	res, err := r.db.ExecContext(ctx, `DELETE FROM children WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return common.ErrorNotFound
	}
	return nil
}
