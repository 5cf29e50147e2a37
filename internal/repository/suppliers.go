package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/sourcinglabs/supplier-finder/api/internal/entity"
)

// ErrResultSetNotFound indicates no cached result set exists for the
// (user, prompt) pair.
var ErrResultSetNotFound = errors.New("supplier result set not found")

// SupplierResultsRepository persists cached supplier search results.
type SupplierResultsRepository interface {
	Create(ctx context.Context, set *entity.SupplierResultSet) error
	FindByUserAndPrompt(ctx context.Context, userID uuid.UUID, prompt string) (*entity.SupplierResultSet, error)
	ListByUser(ctx context.Context, userID uuid.UUID, limit int) ([]entity.SupplierResultSet, error)
}

// PGXSupplierResultsRepository implements SupplierResultsRepository with
// pgx. Suppliers are embedded documents, stored as a jsonb column.
type PGXSupplierResultsRepository struct {
	pool pgxPool
}

// NewPGXSupplierResultsRepository wires a pgx backed repository.
func NewPGXSupplierResultsRepository(pool *pgxpool.Pool) *PGXSupplierResultsRepository {
	return &PGXSupplierResultsRepository{pool: pool}
}

// Create inserts a new result set row.
func (r *PGXSupplierResultsRepository) Create(ctx context.Context, set *entity.SupplierResultSet) error {
	if set == nil {
		return fmt.Errorf("result set payload is nil")
	}

	suppliersJSON, err := json.Marshal(set.Suppliers)
	if err != nil {
		return fmt.Errorf("marshal suppliers: %w", err)
	}

	row := r.pool.QueryRow(ctx, `
        INSERT INTO supplier_results (user_id, prompt, suppliers, total_found, search_date)
        VALUES ($1, $2, $3::jsonb, $4, $5)
        RETURNING id, created_at
    `, set.UserID, set.Prompt, string(suppliersJSON), set.TotalFound, set.SearchDate)

	if err := row.Scan(&set.ID, &set.CreatedAt); err != nil {
		return fmt.Errorf("insert supplier results: %w", err)
	}
	return nil
}

const resultSetColumns = `id, user_id, prompt, suppliers, total_found, search_date, created_at`

// FindByUserAndPrompt fetches the cache entry for an exact prompt.
func (r *PGXSupplierResultsRepository) FindByUserAndPrompt(ctx context.Context, userID uuid.UUID, prompt string) (*entity.SupplierResultSet, error) {
	row := r.pool.QueryRow(ctx, `
        SELECT `+resultSetColumns+`
        FROM supplier_results
        WHERE user_id = $1 AND prompt = $2
        ORDER BY created_at ASC
        LIMIT 1
    `, userID, prompt)

	set, err := scanResultSet(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrResultSetNotFound
		}
		return nil, fmt.Errorf("query supplier results: %w", err)
	}
	return set, nil
}

// ListByUser returns the most recent result sets for a user.
func (r *PGXSupplierResultsRepository) ListByUser(ctx context.Context, userID uuid.UUID, limit int) ([]entity.SupplierResultSet, error) {
	if limit <= 0 {
		limit = 20
	}

	rows, err := r.pool.Query(ctx, `
        SELECT `+resultSetColumns+`
        FROM supplier_results
        WHERE user_id = $1
        ORDER BY created_at DESC
        LIMIT $2
    `, userID, limit)
	if err != nil {
		return nil, fmt.Errorf("list supplier results: %w", err)
	}
	defer rows.Close()

	var sets []entity.SupplierResultSet
	for rows.Next() {
		set, err := scanResultSet(rows)
		if err != nil {
			return nil, fmt.Errorf("scan supplier results row: %w", err)
		}
		sets = append(sets, *set)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate supplier results: %w", err)
	}
	return sets, nil
}

func scanResultSet(row pgx.Row) (*entity.SupplierResultSet, error) {
	var (
		set           entity.SupplierResultSet
		suppliersJSON []byte
	)
	err := row.Scan(
		&set.ID,
		&set.UserID,
		&set.Prompt,
		&suppliersJSON,
		&set.TotalFound,
		&set.SearchDate,
		&set.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	if len(suppliersJSON) > 0 {
		if err := json.Unmarshal(suppliersJSON, &set.Suppliers); err != nil {
			return nil, fmt.Errorf("unmarshal suppliers: %w", err)
		}
	}
	return &set, nil
}
