package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"agency_portal_backend/internal/countries/domain"
	stagedomain "agency_portal_backend/internal/stages/domain"
	"agency_portal_backend/platform/apperr"
	"agency_portal_backend/platform/db"
)

// Constraint names from the migrations that map to domain errors.
const (
	constraintLinkPkey  = "representing_country_stages_pkey"
	constraintStageFkey = "representing_country_stages_stage_fkey"
)

// lockTimeout bounds how long a mutation waits for another writer of the same
// country before it is reported as retryable.
const lockTimeout = "5s"

// Repo implements the Repository interface with PostgreSQL.
type Repo struct {
	pool *pgxpool.Pool
}

// New creates a new representing country repository.
func New(pool *pgxpool.Pool) *Repo {
	return &Repo{pool: pool}
}

// Compile-time check that Repo implements Repository.
var _ Repository = (*Repo)(nil)

const countryColumns = `id, name, country_code, is_active, created_at, updated_at`

const insertCountryQuery = `
	INSERT INTO representing_countries (` + countryColumns + `)
	VALUES ($1, $2, $3, $4, $5, $6)
	RETURNING ` + countryColumns

const insertPinnedLinkQuery = `
	INSERT INTO representing_country_stages (entity_id, stage_name, position, is_active)
	VALUES ($1, $2, 1, TRUE)`

const getCountryQuery = `
	SELECT ` + countryColumns + `
	FROM representing_countries
	WHERE id = $1`

const listCountriesQuery = `
	SELECT ` + countryColumns + `
	FROM representing_countries
	ORDER BY name ASC, id ASC`

const toggleActiveQuery = `
	UPDATE representing_countries
	SET is_active = NOT is_active, updated_at = now()
	WHERE id = $1
	RETURNING ` + countryColumns

const lockCountryQuery = `
	SELECT id FROM representing_countries
	WHERE id = $1
	FOR UPDATE`

const touchCountryQuery = `
	UPDATE representing_countries SET updated_at = now() WHERE id = $1`

const selectLinksQuery = `
	SELECT stage_name, position, is_active, notes
	FROM representing_country_stages
	WHERE entity_id = $1
	ORDER BY position ASC`

const insertLinkQuery = `
	INSERT INTO representing_country_stages (entity_id, stage_name, position, is_active, notes)
	VALUES ($1, $2, $3, $4, $5)`

const updateLinkQuery = `
	UPDATE representing_country_stages
	SET position = $3, is_active = $4, notes = $5, updated_at = now()
	WHERE entity_id = $1 AND stage_name = $2`

const deleteLinkQuery = `
	DELETE FROM representing_country_stages
	WHERE entity_id = $1 AND stage_name = $2`

func scanCountry(row pgx.Row) (domain.Country, error) {
	var c domain.Country
	err := row.Scan(&c.ID, &c.Name, &c.CountryCode, &c.IsActive, &c.CreatedAt, &c.UpdatedAt)
	return c, err
}

// Create inserts the country and its pinned link in one transaction.
func (r *Repo) Create(ctx context.Context, c domain.Country) (domain.Country, error) {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return domain.Country{}, fmt.Errorf("begin create country: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	created, err := scanCountry(tx.QueryRow(ctx, insertCountryQuery,
		c.ID, c.Name, c.CountryCode, c.IsActive, c.CreatedAt, c.UpdatedAt))
	if err != nil {
		return domain.Country{}, fmt.Errorf("insert country: %w", err)
	}
	if _, err := tx.Exec(ctx, insertPinnedLinkQuery, created.ID, stagedomain.PinnedStage); err != nil {
		return domain.Country{}, fmt.Errorf("insert pinned stage: %w", err)
	}

	if err := tx.Commit(ctx); err != nil {
		return domain.Country{}, fmt.Errorf("commit create country: %w", err)
	}
	return created, nil
}

func (r *Repo) GetByID(ctx context.Context, id uuid.UUID) (domain.Country, error) {
	c, err := scanCountry(r.pool.QueryRow(ctx, getCountryQuery, id))
	if errors.Is(err, pgx.ErrNoRows) {
		return domain.Country{}, domain.CountryNotFound()
	}
	if err != nil {
		return domain.Country{}, fmt.Errorf("get country: %w", err)
	}
	return c, nil
}

func (r *Repo) List(ctx context.Context) ([]domain.Country, error) {
	rows, err := r.pool.Query(ctx, listCountriesQuery)
	if err != nil {
		return nil, fmt.Errorf("list countries: %w", err)
	}
	defer rows.Close()

	results := make([]domain.Country, 0)
	for rows.Next() {
		c, err := scanCountry(rows)
		if err != nil {
			return nil, fmt.Errorf("scan country: %w", err)
		}
		results = append(results, c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate countries: %w", err)
	}
	return results, nil
}

func (r *Repo) ToggleActive(ctx context.Context, id uuid.UUID) (domain.Country, error) {
	c, err := scanCountry(r.pool.QueryRow(ctx, toggleActiveQuery, id))
	if errors.Is(err, pgx.ErrNoRows) {
		return domain.Country{}, domain.CountryNotFound()
	}
	if err != nil {
		return domain.Country{}, mapWriteError("toggle active", err)
	}
	return c, nil
}

// GetSequence reads the links without locking.
func (r *Repo) GetSequence(ctx context.Context, id uuid.UUID) (domain.Sequence, error) {
	var exists bool
	if err := r.pool.QueryRow(ctx, `SELECT EXISTS(SELECT 1 FROM representing_countries WHERE id = $1)`, id).Scan(&exists); err != nil {
		return nil, fmt.Errorf("check country exists: %w", err)
	}
	if !exists {
		return nil, domain.CountryNotFound()
	}
	return readLinks(ctx, r.pool, id)
}

// UpdateSequence locks the country row, applies fn to the current links and
// writes only the rows that changed. The position constraint is deferred, so
// intermediate duplicates inside the batch are allowed.
func (r *Repo) UpdateSequence(ctx context.Context, id uuid.UUID, fn SequenceMutation) (domain.Sequence, error) {
	tx, err := r.pool.BeginTx(ctx, pgx.TxOptions{IsoLevel: pgx.ReadCommitted})
	if err != nil {
		return nil, mapWriteError("begin update sequence", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	if _, err := tx.Exec(ctx, "SET LOCAL lock_timeout = '"+lockTimeout+"'"); err != nil {
		return nil, mapWriteError("set lock timeout", err)
	}

	var locked uuid.UUID
	if err := tx.QueryRow(ctx, lockCountryQuery, id).Scan(&locked); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.CountryNotFound()
		}
		return nil, mapWriteError("lock country", err)
	}

	current, err := readLinks(ctx, tx, id)
	if err != nil {
		return nil, mapWriteError("read sequence", err)
	}

	next, err := fn(current)
	if err != nil {
		return nil, err
	}
	next = next.Sorted()

	changes := diffSequences(current, next)
	if changes.empty() {
		return next, nil
	}

	batch := &pgx.Batch{}
	for _, l := range changes.deleted {
		batch.Queue(deleteLinkQuery, id, l.StageName)
	}
	for _, l := range changes.updated {
		batch.Queue(updateLinkQuery, id, l.StageName, l.Order, l.IsActive, l.Notes)
	}
	for _, l := range changes.inserted {
		batch.Queue(insertLinkQuery, id, l.StageName, l.Order, l.IsActive, l.Notes)
	}
	batch.Queue(touchCountryQuery, id)

	if err := tx.SendBatch(ctx, batch).Close(); err != nil {
		return nil, mapWriteError("write sequence", err)
	}
	if err := tx.Commit(ctx); err != nil {
		return nil, mapWriteError("commit sequence", err)
	}
	return next, nil
}

type querier interface {
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
}

func readLinks(ctx context.Context, q querier, id uuid.UUID) (domain.Sequence, error) {
	rows, err := q.Query(ctx, selectLinksQuery, id)
	if err != nil {
		return nil, fmt.Errorf("query links: %w", err)
	}
	defer rows.Close()

	seq := make(domain.Sequence, 0)
	for rows.Next() {
		var l domain.Link
		if err := rows.Scan(&l.StageName, &l.Order, &l.IsActive, &l.Notes); err != nil {
			return nil, fmt.Errorf("scan link: %w", err)
		}
		seq = append(seq, l)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate links: %w", err)
	}
	return seq, nil
}

// mapWriteError turns constraint and conflict failures into typed errors.
// Everything else is wrapped with op and surfaces as an internal error.
func mapWriteError(op string, err error) error {
	switch {
	case db.IsRetryable(err):
		return apperr.Retryable("representing country was modified concurrently, retry the operation", err).WithOp(op)
	case db.IsUniqueViolation(err, constraintLinkPkey):
		return apperr.Wrap(apperr.KindConflict, "stage is already assigned", domain.ErrAlreadyAssigned).
			WithCode(domain.CodeAlreadyAssigned).WithOp(op)
	case db.IsForeignKeyViolation(err, constraintStageFkey):
		return apperr.Wrap(apperr.KindNotFound, "stage is not in the catalog", stagedomain.ErrStageNotFound).
			WithCode(stagedomain.CodeStageNotFound).WithOp(op)
	default:
		return fmt.Errorf("%s: %w", op, err)
	}
}
