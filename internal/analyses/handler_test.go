package analyses_test

import (
	"bytes"
	"context"
	"encoding/json"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"

	"resume-optimizer/internal/analyses"
	"resume-optimizer/internal/bootstrap"
	"resume-optimizer/internal/shared/config"
)

const analysisSampleResume = `Morgan Patel
morgan@example.com | 555-222-1111 | Seattle, WA

SUMMARY
Data engineer with a focus on streaming pipelines.

EXPERIENCE
Data Engineer - Contoso
2021 - Present
- Built ingestion for clickstream events.

SKILLS
Go, Kafka, SQL
`

const analysisJobDescription = `We are hiring a data engineer to own our streaming platform.
Requirements: Go, Kafka, SQL, and experience operating pipelines in production.`

func buildTestApp(t *testing.T) *bootstrap.App {
	t.Helper()
	gin.SetMode(gin.TestMode)

	cfg := config.Config{
		Port:            "0",
		CORSAllowOrigin: []string{"http://localhost:5173"},
		LocalStoreDir:   t.TempDir(),
		Env:             "dev",
		ObjectStoreType: "local",
	}

	app, err := bootstrap.Build(cfg)
	if err != nil {
		t.Fatalf("bootstrap build: %v", err)
	}
	return app
}

func addGuestHeader(req *http.Request) {
	req.Header.Set("X-Guest-Id", "test-guest")
}

func uploadSampleResume(t *testing.T, router *gin.Engine) {
	t.Helper()
	body := &bytes.Buffer{}
	writer := multipart.NewWriter(body)
	fw, err := writer.CreateFormFile("file", "resume.txt")
	if err != nil {
		t.Fatalf("create form file: %v", err)
	}
	if _, err := fw.Write([]byte(analysisSampleResume)); err != nil {
		t.Fatalf("write file: %v", err)
	}
	if err := writer.Close(); err != nil {
		t.Fatalf("close writer: %v", err)
	}

	req := httptest.NewRequest(http.MethodPost, "/api/v1/resumes", body)
	req.Header.Set("Content-Type", writer.FormDataContentType())
	addGuestHeader(req)
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)
	if resp.Code != http.StatusCreated {
		t.Fatalf("resume upload failed: %d %s", resp.Code, resp.Body.String())
	}
}

func createAnalysis(t *testing.T, router *gin.Engine) analyses.Analysis {
	t.Helper()
	payload, err := json.Marshal(map[string]string{"jobDescription": analysisJobDescription})
	if err != nil {
		t.Fatalf("marshal request: %v", err)
	}

	req := httptest.NewRequest(http.MethodPost, "/api/v1/analyses", bytes.NewReader(payload))
	req.Header.Set("Content-Type", "application/json")
	addGuestHeader(req)
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)

	if resp.Code != http.StatusAccepted {
		t.Fatalf("expected status 202, got %d: %s", resp.Code, resp.Body.String())
	}

	var analysis analyses.Analysis
	if err := json.NewDecoder(resp.Body).Decode(&analysis); err != nil {
		t.Fatalf("decode create response: %v", err)
	}
	return analysis
}

func waitForTerminal(t *testing.T, app *bootstrap.App, analysisID string) analyses.Analysis {
	t.Helper()
	deadline := time.Now().Add(5 * time.Second)
	for time.Now().Before(deadline) {
		analysis, err := app.AnalysesService.Get(context.Background(), analysisID)
		if err != nil {
			t.Fatalf("get analysis: %v", err)
		}
		if analysis.Status == analyses.StatusCompleted || analysis.Status == analyses.StatusFailed {
			return analysis
		}
		time.Sleep(20 * time.Millisecond)
	}
	t.Fatal("analysis did not reach a terminal state")
	return analyses.Analysis{}
}

func TestAnalysisCreateAndComplete(t *testing.T) {
	app := buildTestApp(t)
	router := app.Router

	uploadSampleResume(t, router)
	created := createAnalysis(t, router)

	if created.ID == "" {
		t.Fatal("expected analysis id")
	}
	if created.Status != analyses.StatusQueued && created.Status != analyses.StatusProcessing {
		t.Fatalf("status after create = %q", created.Status)
	}

	done := waitForTerminal(t, app, created.ID)
	if done.Status != analyses.StatusCompleted {
		t.Fatalf("status = %q, errorCode = %q", done.Status, done.ErrorCode)
	}
	if done.Result == nil {
		t.Fatal("expected a result payload")
	}
	if done.CompletedAt == nil {
		t.Fatal("expected completedAt")
	}

	req := httptest.NewRequest(http.MethodGet, "/api/v1/analyses/"+created.ID, nil)
	addGuestHeader(req)
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)

	if resp.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", resp.Code)
	}
	var fetched analyses.Analysis
	if err := json.NewDecoder(resp.Body).Decode(&fetched); err != nil {
		t.Fatalf("decode get response: %v", err)
	}
	if fetched.Status != analyses.StatusCompleted {
		t.Fatalf("fetched status = %q", fetched.Status)
	}
}

func TestAnalysisPollThrottled(t *testing.T) {
	app := buildTestApp(t)
	router := app.Router

	uploadSampleResume(t, router)
	created := createAnalysis(t, router)

	first := httptest.NewRequest(http.MethodGet, "/api/v1/analyses/"+created.ID, nil)
	addGuestHeader(first)
	firstResp := httptest.NewRecorder()
	router.ServeHTTP(firstResp, first)
	if firstResp.Code != http.StatusOK {
		t.Fatalf("first poll: expected status 200, got %d", firstResp.Code)
	}

	second := httptest.NewRequest(http.MethodGet, "/api/v1/analyses/"+created.ID, nil)
	addGuestHeader(second)
	secondResp := httptest.NewRecorder()
	router.ServeHTTP(secondResp, second)

	if secondResp.Code != http.StatusTooManyRequests {
		t.Fatalf("second poll: expected status 429, got %d", secondResp.Code)
	}
	if secondResp.Header().Get("Retry-After") == "" {
		t.Fatal("expected Retry-After header")
	}

	var envelope struct {
		Error struct {
			Code string `json:"code"`
		} `json:"error"`
	}
	if err := json.NewDecoder(secondResp.Body).Decode(&envelope); err != nil {
		t.Fatalf("decode error response: %v", err)
	}
	if envelope.Error.Code != "poll_too_fast" {
		t.Fatalf("error code = %q", envelope.Error.Code)
	}
}

func TestAnalysisOwnershipHidden(t *testing.T) {
	app := buildTestApp(t)
	router := app.Router

	uploadSampleResume(t, router)
	created := createAnalysis(t, router)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/analyses/"+created.ID, nil)
	req.Header.Set("X-Guest-Id", "someone-else")
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)

	if resp.Code != http.StatusNotFound {
		t.Fatalf("expected status 404, got %d", resp.Code)
	}
}

func TestAnalysisCreateWithoutResume(t *testing.T) {
	app := buildTestApp(t)

	payload := strings.NewReader(`{"jobDescription":"` + strings.ReplaceAll(analysisJobDescription, "\n", " ") + `"}`)
	req := httptest.NewRequest(http.MethodPost, "/api/v1/analyses", payload)
	req.Header.Set("Content-Type", "application/json")
	addGuestHeader(req)
	resp := httptest.NewRecorder()
	app.Router.ServeHTTP(resp, req)

	if resp.Code != http.StatusConflict {
		t.Fatalf("expected status 409, got %d", resp.Code)
	}
}
