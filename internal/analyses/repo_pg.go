package analyses

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"time"
)

// PGRepo implements Repo using Postgres.
type PGRepo struct {
	DB *sql.DB
}

const analysisColumns = `id, resume_id, user_id, mode, job_description, provider, model, status, result, error_message, error_code, created_at, started_at, completed_at, updated_at`

// Create inserts a new analysis.
func (r *PGRepo) Create(ctx context.Context, analysis Analysis) error {
	const query = `
INSERT INTO analyses (
    id, resume_id, user_id, mode, job_description, provider, model, status, result, created_at, updated_at
) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)`

	var result []byte
	if analysis.Result != nil {
		data, err := json.Marshal(analysis.Result)
		if err != nil {
			return err
		}
		result = data
	}

	updatedAt := analysis.UpdatedAt
	if updatedAt.IsZero() {
		updatedAt = analysis.CreatedAt
	}

	_, err := r.DB.ExecContext(ctx, query,
		analysis.ID,
		analysis.ResumeID,
		analysis.UserID,
		string(analysis.Mode),
		analysis.JobDescription,
		analysis.Provider,
		analysis.Model,
		analysis.Status,
		result,
		analysis.CreatedAt,
		updatedAt,
	)
	return err
}

// GetByID returns an analysis by its ID.
func (r *PGRepo) GetByID(ctx context.Context, analysisID string) (Analysis, error) {
	const query = `
SELECT ` + analysisColumns + `
FROM analyses
WHERE id = $1
LIMIT 1`

	var analysis Analysis
	var mode string
	var result []byte
	var errorMessage sql.NullString
	var errorCode sql.NullString
	var startedAt sql.NullTime
	var completedAt sql.NullTime

	err := r.DB.QueryRowContext(ctx, query, analysisID).Scan(
		&analysis.ID,
		&analysis.ResumeID,
		&analysis.UserID,
		&mode,
		&analysis.JobDescription,
		&analysis.Provider,
		&analysis.Model,
		&analysis.Status,
		&result,
		&errorMessage,
		&errorCode,
		&analysis.CreatedAt,
		&startedAt,
		&completedAt,
		&analysis.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return Analysis{}, ErrNotFound
		}
		return Analysis{}, err
	}

	analysis.Mode = AnalysisMode(mode)
	if len(result) > 0 {
		if err := json.Unmarshal(result, &analysis.Result); err != nil {
			return Analysis{}, err
		}
	}
	if errorMessage.Valid {
		analysis.ErrorMessage = &errorMessage.String
	}
	if errorCode.Valid {
		analysis.ErrorCode = errorCode.String
	}
	if startedAt.Valid {
		analysis.StartedAt = &startedAt.Time
	}
	if completedAt.Valid {
		analysis.CompletedAt = &completedAt.Time
	}
	return analysis, nil
}

// UpdateStatus updates the status and result for an existing analysis.
func (r *PGRepo) UpdateStatus(ctx context.Context, analysisID, status string, result map[string]any) error {
	return r.UpdateStatusResultAndError(ctx, analysisID, status, result, nil, "", nil, nil)
}

// UpdateStatusResultAndError updates status/result/error fields and timestamps.
func (r *PGRepo) UpdateStatusResultAndError(ctx context.Context, analysisID, status string, result map[string]any, errorMessage *string, errorCode string, startedAt, completedAt *time.Time) error {
	const query = `
UPDATE analyses
SET status = $1,
    result = COALESCE($2, result),
    error_message = COALESCE($3, error_message),
    error_code = COALESCE($4, error_code),
    started_at = COALESCE($5, started_at),
    completed_at = COALESCE($6, completed_at),
    updated_at = $7
WHERE id = $8`

	var resultJSON any
	if result != nil {
		data, err := json.Marshal(result)
		if err != nil {
			return err
		}
		resultJSON = data
	}

	var errCode any
	if errorCode != "" {
		errCode = errorCode
	}
	var errMsg any
	if errorMessage != nil {
		errMsg = *errorMessage
	}
	var started any
	if startedAt != nil {
		started = *startedAt
	}
	var completed any
	if completedAt != nil {
		completed = *completedAt
	}

	res, err := r.DB.ExecContext(ctx, query, status, resultJSON, errMsg, errCode, started, completed, time.Now().UTC(), analysisID)
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

// ListByUser lists analyses ordered newest-first.
func (r *PGRepo) ListByUser(ctx context.Context, userID string, limit, offset int) ([]Analysis, error) {
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
SELECT ` + analysisColumns + `
FROM analyses
WHERE user_id = $1
ORDER BY created_at DESC
LIMIT $2 OFFSET $3`

	rows, err := r.DB.QueryContext(ctx, query, userID, limit, offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Analysis
	for rows.Next() {
		var analysis Analysis
		var mode string
		var result []byte
		var errorMessage sql.NullString
		var errorCode sql.NullString
		var startedAt sql.NullTime
		var completedAt sql.NullTime
		if err := rows.Scan(
			&analysis.ID,
			&analysis.ResumeID,
			&analysis.UserID,
			&mode,
			&analysis.JobDescription,
			&analysis.Provider,
			&analysis.Model,
			&analysis.Status,
			&result,
			&errorMessage,
			&errorCode,
			&analysis.CreatedAt,
			&startedAt,
			&completedAt,
			&analysis.UpdatedAt,
		); err != nil {
			return nil, err
		}
		analysis.Mode = AnalysisMode(mode)
		if len(result) > 0 {
			if err := json.Unmarshal(result, &analysis.Result); err != nil {
				return nil, err
			}
		}
		if errorMessage.Valid {
			analysis.ErrorMessage = &errorMessage.String
		}
		if errorCode.Valid {
			analysis.ErrorCode = errorCode.String
		}
		if startedAt.Valid {
			analysis.StartedAt = &startedAt.Time
		}
		if completedAt.Valid {
			analysis.CompletedAt = &completedAt.Time
		}
		out = append(out, analysis)
	}
	return out, rows.Err()
}

var _ Repo = (*PGRepo)(nil)
