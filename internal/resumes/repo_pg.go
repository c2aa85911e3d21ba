package resumes

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"time"

	"resume-optimizer/resume/model"
)

// PGRepo implements Repo using Postgres.
type PGRepo struct {
	DB *sql.DB
}

const resumeColumns = `id, user_id, file_name, mime_type, size_bytes, storage_provider, storage_key, extracted_text_key, extracted_at, parse_status, parsed, optimized, optimized_at, created_at, updated_at`

// Create inserts a new resume.
func (r *PGRepo) Create(ctx context.Context, res Resume) error {
	const query = `
INSERT INTO resumes (
    id,
    user_id,
    file_name,
    mime_type,
    size_bytes,
    storage_provider,
    storage_key,
    extracted_text_key,
    extracted_at,
    parse_status,
    parsed,
    optimized,
    optimized_at,
    created_at,
    updated_at
) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15)`

	storageProvider := res.StorageProvider
	if storageProvider == "" {
		storageProvider = "local"
	}

	parsed, err := json.Marshal(res.Parsed.Normalize())
	if err != nil {
		return err
	}

	var extractedKey sql.NullString
	if res.ExtractedTextKey != "" {
		extractedKey = sql.NullString{String: res.ExtractedTextKey, Valid: true}
	}
	var extractedAt sql.NullTime
	if res.ExtractedAt != nil {
		extractedAt = sql.NullTime{Time: *res.ExtractedAt, Valid: true}
	}
	var optimized []byte
	if res.Optimized != nil {
		optimized, err = json.Marshal(res.Optimized.Normalize())
		if err != nil {
			return err
		}
	}
	var optimizedAt sql.NullTime
	if res.OptimizedAt != nil {
		optimizedAt = sql.NullTime{Time: *res.OptimizedAt, Valid: true}
	}

	updatedAt := res.UpdatedAt
	if updatedAt.IsZero() {
		updatedAt = res.CreatedAt
	}

	_, err = r.DB.ExecContext(
		ctx,
		query,
		res.ID,
		res.UserID,
		res.FileName,
		res.MimeType,
		res.SizeBytes,
		storageProvider,
		res.StorageKey,
		extractedKey,
		extractedAt,
		res.ParseStatus,
		parsed,
		optimized,
		optimizedAt,
		res.CreatedAt,
		updatedAt,
	)
	return err
}

// GetByID fetches a resume by ID for a user.
func (r *PGRepo) GetByID(ctx context.Context, userID, resumeID string) (Resume, error) {
	const query = `
SELECT ` + resumeColumns + `
FROM resumes
WHERE user_id = $1 AND id = $2 AND deleted_at IS NULL
LIMIT 1`
	return r.scanOne(r.DB.QueryRowContext(ctx, query, userID, resumeID))
}

// GetCurrentByUser returns the latest resume for a user.
func (r *PGRepo) GetCurrentByUser(ctx context.Context, userID string) (Resume, error) {
	const query = `
SELECT ` + resumeColumns + `
FROM resumes
WHERE user_id = $1 AND deleted_at IS NULL
ORDER BY created_at DESC
LIMIT 1`
	return r.scanOne(r.DB.QueryRowContext(ctx, query, userID))
}

// ListByUser lists resumes ordered newest-first.
func (r *PGRepo) ListByUser(ctx context.Context, userID string, limit, offset int) ([]Resume, error) {
	if limit <= 0 {
		limit = 20
	}
	if limit > 100 {
		limit = 100
	}
	if offset < 0 {
		offset = 0
	}
	const query = `
SELECT ` + resumeColumns + `
FROM resumes
WHERE user_id = $1 AND deleted_at IS NULL
ORDER BY created_at DESC
LIMIT $2 OFFSET $3`

	rows, err := r.DB.QueryContext(ctx, query, userID, limit, offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Resume
	for rows.Next() {
		res, err := r.scanOne(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, res)
	}
	return out, rows.Err()
}

// UpdateParsed replaces the structured data stored for a resume.
func (r *PGRepo) UpdateParsed(ctx context.Context, userID, resumeID string, parsed model.ParsedResume) error {
	const query = `
UPDATE resumes
SET parsed = $1, parse_status = $2, updated_at = $3
WHERE user_id = $4 AND id = $5 AND deleted_at IS NULL`

	data, err := json.Marshal(parsed.Normalize())
	if err != nil {
		return err
	}

	res, err := r.DB.ExecContext(ctx, query, data, StatusParsed, time.Now().UTC(), userID, resumeID)
	if err != nil {
		return err
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return ErrNotFound
	}
	return nil
}

// UpdateOptimized attaches an optimized content version to a resume.
func (r *PGRepo) UpdateOptimized(ctx context.Context, userID, resumeID string, optimized model.ParsedResume) error {
	const query = `
UPDATE resumes
SET optimized = $1, optimized_at = $2, updated_at = $2
WHERE user_id = $3 AND id = $4 AND deleted_at IS NULL`

	data, err := json.Marshal(optimized.Normalize())
	if err != nil {
		return err
	}

	res, err := r.DB.ExecContext(ctx, query, data, time.Now().UTC(), userID, resumeID)
	if err != nil {
		return err
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return ErrNotFound
	}
	return nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func (r *PGRepo) scanOne(row rowScanner) (Resume, error) {
	var res Resume
	var storageProvider sql.NullString
	var extractedKey sql.NullString
	var extractedAt sql.NullTime
	var parsed []byte
	var optimized []byte
	var optimizedAt sql.NullTime

	err := row.Scan(
		&res.ID,
		&res.UserID,
		&res.FileName,
		&res.MimeType,
		&res.SizeBytes,
		&storageProvider,
		&res.StorageKey,
		&extractedKey,
		&extractedAt,
		&res.ParseStatus,
		&parsed,
		&optimized,
		&optimizedAt,
		&res.CreatedAt,
		&res.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return Resume{}, ErrNotFound
		}
		return Resume{}, err
	}
	if storageProvider.Valid {
		res.StorageProvider = storageProvider.String
	}
	if extractedKey.Valid {
		res.ExtractedTextKey = extractedKey.String
	}
	if extractedAt.Valid {
		res.ExtractedAt = &extractedAt.Time
	}
	if len(parsed) > 0 {
		if err := json.Unmarshal(parsed, &res.Parsed); err != nil {
			return Resume{}, err
		}
	}
	if len(optimized) > 0 {
		var opt model.ParsedResume
		if err := json.Unmarshal(optimized, &opt); err != nil {
			return Resume{}, err
		}
		res.Optimized = &opt
	}
	if optimizedAt.Valid {
		res.OptimizedAt = &optimizedAt.Time
	}
	res.Parsed.Normalize()
	return res, nil
}

var _ Repo = (*PGRepo)(nil)
