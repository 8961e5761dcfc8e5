package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"agency_portal_backend/internal/stages/domain"
)

// Repo implements the Repository interface with PostgreSQL.
type Repo struct {
	pool *pgxpool.Pool
}

// New creates a new stage catalog repository.
func New(pool *pgxpool.Pool) *Repo {
	return &Repo{pool: pool}
}

// Compile-time check that Repo implements Repository.
var _ Repository = (*Repo)(nil)

const createStageQuery = `
	INSERT INTO stages (name)
	VALUES ($1)
	ON CONFLICT (name) DO NOTHING
	RETURNING name, created_at`

const listStagesQuery = `
	SELECT name, created_at
	FROM stages
	ORDER BY seq ASC`

// Create inserts a stage. A name collision yields no row and is reported as
// a duplicate.
func (r *Repo) Create(ctx context.Context, name string) (domain.Stage, error) {
	var st domain.Stage
	err := r.pool.QueryRow(ctx, createStageQuery, name).Scan(&st.Name, &st.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return domain.Stage{}, domain.DuplicateStage(name)
		}
		return domain.Stage{}, fmt.Errorf("create stage: %w", err)
	}
	return st, nil
}

// List retrieves the catalog in insertion order.
func (r *Repo) List(ctx context.Context) ([]domain.Stage, error) {
	rows, err := r.pool.Query(ctx, listStagesQuery)
	if err != nil {
		return nil, fmt.Errorf("list stages: %w", err)
	}
	defer rows.Close()

	results := make([]domain.Stage, 0)
	for rows.Next() {
		var st domain.Stage
		if err := rows.Scan(&st.Name, &st.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan stage: %w", err)
		}
		results = append(results, st)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate stages: %w", err)
	}

	return results, nil
}

// Exists checks if a stage name is in the catalog.
func (r *Repo) Exists(ctx context.Context, name string) (bool, error) {
	var exists bool
	err := r.pool.QueryRow(ctx, `SELECT EXISTS(SELECT 1 FROM stages WHERE name = $1)`, name).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("check stage exists: %w", err)
	}
	return exists, nil
}
