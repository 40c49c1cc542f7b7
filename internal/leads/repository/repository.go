// Package repository persists the immutable lead creation records.
package repository

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"member_portal_backend/internal/leads/domain"
)

var ErrNotFound = errors.New("not found")

type Repository struct {
	pool *pgxpool.Pool
}

func New(pool *pgxpool.Pool) *Repository {
	return &Repository{pool: pool}
}

// CreateLead inserts the creation-time snapshot. The record is never updated
// afterwards; the evolving state lives in the profile store.
func (r *Repository) CreateLead(ctx context.Context, lead domain.Lead) (domain.Lead, error) {
	var created domain.Lead
	err := r.pool.QueryRow(ctx, `
		INSERT INTO leads (id, email, name, phone, source, status, score, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING id, email, name, phone, source, status, score, created_at
	`, lead.ID, lead.Email, lead.Name, lead.Phone, lead.Source, lead.Status, lead.Score, lead.CreatedAt).Scan(
		&created.ID,
		&created.Email,
		&created.Name,
		&created.Phone,
		&created.Source,
		&created.Status,
		&created.Score,
		&created.CreatedAt,
	)
	if err != nil {
		return domain.Lead{}, err
	}
	return created, nil
}

// GetByID returns the creation record, or ErrNotFound.
func (r *Repository) GetByID(ctx context.Context, id uuid.UUID) (domain.Lead, error) {
	var lead domain.Lead
	err := r.pool.QueryRow(ctx, `
		SELECT id, email, name, phone, source, status, score, created_at
		FROM leads WHERE id = $1
	`, id).Scan(
		&lead.ID,
		&lead.Email,
		&lead.Name,
		&lead.Phone,
		&lead.Source,
		&lead.Status,
		&lead.Score,
		&lead.CreatedAt,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return domain.Lead{}, ErrNotFound
	}
	return lead, err
}

// GetByEmail returns the most recent creation record for the email, or
// ErrNotFound. Used to keep lead creation idempotent per email.
func (r *Repository) GetByEmail(ctx context.Context, email string) (domain.Lead, error) {
	var lead domain.Lead
	err := r.pool.QueryRow(ctx, `
		SELECT id, email, name, phone, source, status, score, created_at
		FROM leads WHERE email = $1
		ORDER BY created_at DESC
		LIMIT 1
	`, email).Scan(
		&lead.ID,
		&lead.Email,
		&lead.Name,
		&lead.Phone,
		&lead.Source,
		&lead.Status,
		&lead.Score,
		&lead.CreatedAt,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return domain.Lead{}, ErrNotFound
	}
	return lead, err
}

// List returns creation records newest first.
func (r *Repository) List(ctx context.Context, limit, offset int) ([]domain.Lead, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT id, email, name, phone, source, status, score, created_at
		FROM leads
		ORDER BY created_at DESC
		LIMIT $1 OFFSET $2
	`, limit, offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	leads := make([]domain.Lead, 0)
	for rows.Next() {
		var lead domain.Lead
		if err := rows.Scan(
			&lead.ID,
			&lead.Email,
			&lead.Name,
			&lead.Phone,
			&lead.Source,
			&lead.Status,
			&lead.Score,
			&lead.CreatedAt,
		); err != nil {
			return nil, err
		}
		leads = append(leads, lead)
	}
	return leads, rows.Err()
}
