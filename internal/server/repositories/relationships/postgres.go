package relationships

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

const relColumns = `id, parent_id, child_id, escort_id, relationship_type, notes,
	is_active, created_at, updated_at`

func scanRelationship(row interface{ Scan(...any) error }) (*models.Relationship, error) {
	rel := &models.Relationship{}
	err := row.Scan(&rel.ID, &rel.ParentID, &rel.ChildID, &rel.EscortID, &rel.Type,
		&rel.Notes, &rel.IsActive, &rel.CreatedAt, &rel.UpdatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrorNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}
	return rel, nil
}

func (r *PostgresRepository) Create(ctx context.Context, rel *models.Relationship) (*models.Relationship, error) {
	query := `INSERT INTO parent_child_relationships (id, parent_id, child_id, escort_id, relationship_type, notes, is_active)
	 VALUES ($1, $2, $3, $4, $5, $6, $7)
	 RETURNING created_at, updated_at`

	err := r.db.QueryRowContext(ctx, query,
		rel.ID, rel.ParentID, rel.ChildID, rel.EscortID, rel.Type, rel.Notes, rel.IsActive).
		Scan(&rel.CreatedAt, &rel.UpdatedAt)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	return rel, nil
}

func (r *PostgresRepository) GetByID(ctx context.Context, id string) (*models.Relationship, error) {
	query := `SELECT ` + relColumns + ` FROM parent_child_relationships WHERE id = $1`
	return scanRelationship(r.db.QueryRowContext(ctx, query, id))
}

func (r *PostgresRepository) ListByParent(ctx context.Context, parentID string) ([]*models.Relationship, error) {
	query := `SELECT ` + relColumns + ` FROM parent_child_relationships
	 WHERE parent_id = $1 ORDER BY created_at DESC`
	return r.queryRelationships(ctx, query, parentID)
}

func (r *PostgresRepository) ListByEscort(ctx context.Context, escortID string) ([]*models.Relationship, error) {
	query := `SELECT ` + relColumns + ` FROM parent_child_relationships
	 WHERE escort_id = $1 ORDER BY created_at DESC`
	return r.queryRelationships(ctx, query, escortID)
}

func (r *PostgresRepository) ExistsPair(ctx context.Context, parentID, childID string) (bool, error) {
	var exists bool
	err := r.db.QueryRowContext(ctx,
		`SELECT EXISTS (SELECT 1 FROM parent_child_relationships WHERE parent_id = $1 AND child_id = $2)`,
		parentID, childID).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("db error: %w", err)
	}
	return exists, nil
}

func (r *PostgresRepository) queryRelationships(ctx context.Context, query string, args ...any) ([]*models.Relationship, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	defer rows.Close()

	var result []*models.Relationship
	for rows.Next() {
		rel, err := scanRelationship(rows)
		if err != nil {
			return nil, err
		}
		result = append(result, rel)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	return result, nil
}

func (r *PostgresRepository) Update(ctx context.Context, rel *models.Relationship) (*models.Relationship, error) {
	query := `UPDATE parent_child_relationships
	 SET escort_id = $2, relationship_type = $3, notes = $4, is_active = $5, updated_at = now()
	 WHERE id = $1
	 RETURNING updated_at`

	err := r.db.QueryRowContext(ctx, query,
		rel.ID, rel.EscortID, rel.Type, rel.Notes, rel.IsActive).
		Scan(&rel.UpdatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrorNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}
	return rel, nil
}

func (r *PostgresRepository) Delete(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM parent_child_relationships WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return common.ErrorNotFound
	}
	return nil
}
