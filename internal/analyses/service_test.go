package analyses

import (
	"context"
	"errors"
	"testing"
	"time"

	"resume-optimizer/internal/queue"
	"resume-optimizer/internal/resumes"
	"resume-optimizer/resume/model"
)

func seedResume(t *testing.T, repo resumes.Repo) resumes.Resume {
	t.Helper()
	res := resumes.Resume{
		ID:          "resume-1",
		UserID:      "user-1",
		FileName:    "resume.pdf",
		ParseStatus: resumes.StatusParsed,
		Parsed: model.ParsedResume{
			Name:   "Jane Smith",
			Email:  "jane@example.com",
			Phone:  "555-100-2000",
			Skills: []string{"Go", "Postgres"},
		},
		CreatedAt: time.Now().UTC(),
	}
	if err := repo.Create(context.Background(), res); err != nil {
		t.Fatalf("seed resume: %v", err)
	}
	return res
}

func waitForTerminal(t *testing.T, svc *Service, analysisID string) Analysis {
	t.Helper()
	deadline := time.Now().Add(5 * time.Second)
	for time.Now().Before(deadline) {
		analysis, err := svc.Get(context.Background(), analysisID)
		if err != nil {
			t.Fatalf("get: %v", err)
		}
		if analysis.Status == StatusCompleted || analysis.Status == StatusFailed {
			return analysis
		}
		time.Sleep(10 * time.Millisecond)
	}
	t.Fatal("analysis never reached a terminal status")
	return Analysis{}
}

func TestCreateCompletesInProcess(t *testing.T) {
	resumesRepo := resumes.NewMemoryRepo()
	seedResume(t, resumesRepo)

	svc := &Service{
		Repo:        NewMemoryRepo(),
		ResumesRepo: resumesRepo,
		Analyzer:    KeywordAnalyzer{},
	}

	analysis, err := svc.Create(context.Background(), "user-1", "", "Go engineer with Postgres")
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if analysis.Status != StatusQueued {
		t.Fatalf("initial status = %q", analysis.Status)
	}
	if analysis.ResumeID != "resume-1" {
		t.Fatalf("resume id = %q", analysis.ResumeID)
	}
	if analysis.Mode != ModeJobMatch {
		t.Fatalf("mode = %q", analysis.Mode)
	}

	done := waitForTerminal(t, svc, analysis.ID)
	if done.Status != StatusCompleted {
		t.Fatalf("status = %q, error = %v", done.Status, done.ErrorMessage)
	}
	if done.Result == nil {
		t.Fatal("expected a result")
	}
	if done.StartedAt == nil || done.CompletedAt == nil {
		t.Fatal("expected timestamps on completion")
	}
}

func TestCreateWithoutResume(t *testing.T) {
	svc := &Service{
		Repo:        NewMemoryRepo(),
		ResumesRepo: resumes.NewMemoryRepo(),
		Analyzer:    KeywordAnalyzer{},
	}

	_, err := svc.Create(context.Background(), "user-1", "", "")
	if !errors.Is(err, ErrNoResume) {
		t.Fatalf("expected ErrNoResume, got %v", err)
	}
}

type failingAnalyzer struct{}

func (failingAnalyzer) Analyze(ctx context.Context, resume model.ParsedResume, jobDescription string) (map[string]any, error) {
	return nil, errors.New("provider exploded")
}

func TestAnalyzerFailureMarksFailed(t *testing.T) {
	resumesRepo := resumes.NewMemoryRepo()
	seedResume(t, resumesRepo)

	svc := &Service{
		Repo:        NewMemoryRepo(),
		ResumesRepo: resumesRepo,
		Analyzer:    failingAnalyzer{},
	}

	analysis, err := svc.Create(context.Background(), "user-1", "resume-1", "")
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	done := waitForTerminal(t, svc, analysis.ID)
	if done.Status != StatusFailed {
		t.Fatalf("status = %q", done.Status)
	}
	if done.ErrorMessage == nil || *done.ErrorMessage == "" {
		t.Fatal("expected an error message")
	}
	if done.ErrorCode != ErrorCodeInternal {
		t.Fatalf("error code = %q", done.ErrorCode)
	}
}

type captureQueue struct {
	sent []queue.Message
}

func (q *captureQueue) Send(ctx context.Context, msg queue.Message) error {
	q.sent = append(q.sent, msg)
	return nil
}

func TestCreateEnqueuesWhenQueueConfigured(t *testing.T) {
	resumesRepo := resumes.NewMemoryRepo()
	seedResume(t, resumesRepo)

	q := &captureQueue{}
	svc := &Service{
		Repo:        NewMemoryRepo(),
		ResumesRepo: resumesRepo,
		Analyzer:    KeywordAnalyzer{},
		Queue:       q,
	}

	analysis, err := svc.Create(context.Background(), "user-1", "", "")
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if len(q.sent) != 1 {
		t.Fatalf("expected 1 queued message, got %d", len(q.sent))
	}
	if q.sent[0].AnalysisID != analysis.ID {
		t.Fatal("queued message carries wrong analysis id")
	}

	// The analysis stays queued until a worker processes it.
	got, err := svc.Get(context.Background(), analysis.ID)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if got.Status != StatusQueued {
		t.Fatalf("status = %q, want queued", got.Status)
	}

	// Run it the way the queue worker would.
	if err := svc.Process(context.Background(), analysis.ID); err != nil {
		t.Fatalf("process: %v", err)
	}
	done, err := svc.Get(context.Background(), analysis.ID)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if done.Status != StatusCompleted {
		t.Fatalf("status = %q", done.Status)
	}
}
