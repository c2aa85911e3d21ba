package analyses

import (
	"context"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
)

func TestPGRepoCreate(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })

	repo := &PGRepo{DB: db}
	analysis := Analysis{
		ID:             "analysis-1",
		ResumeID:       "resume-1",
		UserID:         "user-1",
		Mode:           ModeJobMatch,
		JobDescription: "jd",
		Provider:       "heuristic",
		Model:          "",
		Status:         StatusQueued,
		CreatedAt:      time.Now().UTC(),
	}

	mock.ExpectExec("INSERT INTO analyses").
		WithArgs(
			analysis.ID,
			analysis.ResumeID,
			analysis.UserID,
			string(analysis.Mode),
			analysis.JobDescription,
			analysis.Provider,
			analysis.Model,
			analysis.Status,
			sqlmock.AnyArg(), // result
			sqlmock.AnyArg(), // created_at
			sqlmock.AnyArg(), // updated_at
		).
		WillReturnResult(sqlmock.NewResult(1, 1))

	if err := repo.Create(context.Background(), analysis); err != nil {
		t.Fatalf("Create: %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("ExpectationsWereMet: %v", err)
	}
}

func TestPGRepoGetByID(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })

	repo := &PGRepo{DB: db}
	now := time.Now().UTC()

	rows := sqlmock.NewRows([]string{
		"id", "resume_id", "user_id", "mode", "job_description", "provider", "model",
		"status", "result", "error_message", "error_code", "created_at", "started_at",
		"completed_at", "updated_at",
	}).AddRow(
		"analysis-1", "resume-1", "user-1", "JOB_MATCH", "jd", "heuristic", "",
		StatusCompleted, []byte(`{"matchScore":72}`), nil, nil, now, now, now, now,
	)

	mock.ExpectQuery("SELECT (.+) FROM analyses").
		WithArgs("analysis-1").
		WillReturnRows(rows)

	analysis, err := repo.GetByID(context.Background(), "analysis-1")
	if err != nil {
		t.Fatalf("GetByID: %v", err)
	}
	if analysis.Status != StatusCompleted {
		t.Fatalf("status = %q", analysis.Status)
	}
	if analysis.Mode != ModeJobMatch {
		t.Fatalf("mode = %q", analysis.Mode)
	}
	if score, ok := analysis.Result["matchScore"].(float64); !ok || score != 72 {
		t.Fatalf("result = %v", analysis.Result)
	}
	if analysis.CompletedAt == nil {
		t.Fatal("expected completedAt")
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("ExpectationsWereMet: %v", err)
	}
}

func TestPGRepoUpdateStatusNotFound(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })

	repo := &PGRepo{DB: db}

	mock.ExpectExec("UPDATE analyses").
		WithArgs(
			StatusProcessing,
			nil,
			nil,
			nil,
			nil,
			nil,
			sqlmock.AnyArg(),
			"missing",
		).
		WillReturnResult(sqlmock.NewResult(0, 0))

	if err := repo.UpdateStatus(context.Background(), "missing", StatusProcessing, nil); err != ErrNotFound {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("ExpectationsWereMet: %v", err)
	}
}
