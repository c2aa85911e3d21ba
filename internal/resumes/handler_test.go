package resumes_test

import (
	"bytes"
	"encoding/json"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"

	"resume-optimizer/internal/bootstrap"
	"resume-optimizer/internal/shared/config"
)

const handlerSampleResume = `Jane Smith
jane@example.com | 555-123-4567 | Austin, TX

PROFESSIONAL SUMMARY
Backend engineer focused on resilient services.

EXPERIENCE
Staff Engineer - Acme
2019 - Present
- Led migration to event-driven ingestion.

SKILLS
Go, Postgres, AWS
`

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

func uploadResume(t *testing.T, router *gin.Engine, fileName, content string) *httptest.ResponseRecorder {
	t.Helper()
	body := &bytes.Buffer{}
	writer := multipart.NewWriter(body)
	fileWriter, err := writer.CreateFormFile("file", fileName)
	if err != nil {
		t.Fatalf("create form file: %v", err)
	}
	if _, err := fileWriter.Write([]byte(content)); err != nil {
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
	return resp
}

func TestResumeUploadAndCurrent(t *testing.T) {
	app := buildTestApp(t)
	router := app.Router

	resp := uploadResume(t, router, "resume.txt", handlerSampleResume)
	if resp.Code != http.StatusCreated {
		t.Fatalf("expected status 201, got %d: %s", resp.Code, resp.Body.String())
	}

	var created struct {
		ResumeID string `json:"resumeId"`
		FileName string `json:"fileName"`
		Parsed   struct {
			Name   string   `json:"name"`
			Email  string   `json:"email"`
			Skills []string `json:"skills"`
		} `json:"parsed"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&created); err != nil {
		t.Fatalf("decode create response: %v", err)
	}
	if created.ResumeID == "" {
		t.Fatal("expected resumeId, got empty")
	}
	if created.Parsed.Name != "Jane Smith" {
		t.Fatalf("parsed name = %q", created.Parsed.Name)
	}
	if len(created.Parsed.Skills) != 3 {
		t.Fatalf("parsed skills = %v", created.Parsed.Skills)
	}

	reqGet := httptest.NewRequest(http.MethodGet, "/api/v1/resumes/current", nil)
	addGuestHeader(reqGet)
	respGet := httptest.NewRecorder()
	router.ServeHTTP(respGet, reqGet)

	if respGet.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", respGet.Code)
	}

	var current struct {
		ResumeID string `json:"resumeId"`
		FileName string `json:"fileName"`
	}
	if err := json.NewDecoder(respGet.Body).Decode(&current); err != nil {
		t.Fatalf("decode current response: %v", err)
	}
	if current.FileName != "resume.txt" {
		t.Fatalf("expected fileName resume.txt, got %s", current.FileName)
	}
	if current.ResumeID != created.ResumeID {
		t.Fatal("current resume does not match upload")
	}
}

func TestResumeUploadRejectsUnknownExtension(t *testing.T) {
	app := buildTestApp(t)

	resp := uploadResume(t, app.Router, "photo.png", "not a resume")
	if resp.Code != http.StatusBadRequest {
		t.Fatalf("expected status 400, got %d", resp.Code)
	}

	var envelope struct {
		Error struct {
			Code string `json:"code"`
		} `json:"error"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&envelope); err != nil {
		t.Fatalf("decode error response: %v", err)
	}
	if envelope.Error.Code != "unsupported_file_type" {
		t.Fatalf("error code = %q", envelope.Error.Code)
	}
}

func TestResumeUploadHonorsConfiguredSizeLimit(t *testing.T) {
	gin.SetMode(gin.TestMode)
	app, err := bootstrap.Build(config.Config{
		Port:            "0",
		CORSAllowOrigin: []string{"http://localhost:5173"},
		LocalStoreDir:   t.TempDir(),
		Env:             "dev",
		ObjectStoreType: "local",
		MaxUploadBytes:  512,
	})
	if err != nil {
		t.Fatalf("bootstrap build: %v", err)
	}

	resp := uploadResume(t, app.Router, "resume.txt", strings.Repeat("skills and experience\n", 64))
	if resp.Code != http.StatusRequestEntityTooLarge {
		t.Fatalf("expected status 413, got %d: %s", resp.Code, resp.Body.String())
	}

	var envelope struct {
		Error struct {
			Code string `json:"code"`
		} `json:"error"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&envelope); err != nil {
		t.Fatalf("decode error response: %v", err)
	}
	if envelope.Error.Code != "file_too_large" {
		t.Fatalf("error code = %q", envelope.Error.Code)
	}

	if small := uploadResume(t, app.Router, "resume.txt", "Jane Smith"); small.Code != http.StatusCreated {
		t.Fatalf("small upload under the limit should succeed, got %d", small.Code)
	}
}

func TestResumeOptimizedRoundTrip(t *testing.T) {
	app := buildTestApp(t)
	router := app.Router

	resp := uploadResume(t, router, "resume.txt", handlerSampleResume)
	if resp.Code != http.StatusCreated {
		t.Fatalf("upload failed: %d", resp.Code)
	}
	var created struct {
		ResumeID string `json:"resumeId"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&created); err != nil {
		t.Fatalf("decode create response: %v", err)
	}

	optimized := `{"name":"Jane Smith","summary":"Sharper summary with measurable impact.","skills":["Go","Postgres","AWS","Kubernetes"]}`
	reqPut := httptest.NewRequest(http.MethodPut, "/api/v1/resumes/"+created.ResumeID+"/optimized", strings.NewReader(optimized))
	reqPut.Header.Set("Content-Type", "application/json")
	addGuestHeader(reqPut)
	respPut := httptest.NewRecorder()
	router.ServeHTTP(respPut, reqPut)

	if respPut.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d: %s", respPut.Code, respPut.Body.String())
	}

	var updated struct {
		Optimized *struct {
			Summary string `json:"summary"`
		} `json:"optimized"`
		OptimizedAt *string `json:"optimizedAt"`
	}
	if err := json.NewDecoder(respPut.Body).Decode(&updated); err != nil {
		t.Fatalf("decode update response: %v", err)
	}
	if updated.Optimized == nil || updated.Optimized.Summary != "Sharper summary with measurable impact." {
		t.Fatalf("optimized = %+v", updated.Optimized)
	}
	if updated.OptimizedAt == nil {
		t.Fatal("expected optimizedAt")
	}
}

func TestResumeRequiresIdentity(t *testing.T) {
	app := buildTestApp(t)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/resumes/current", nil)
	resp := httptest.NewRecorder()
	app.Router.ServeHTTP(resp, req)

	if resp.Code != http.StatusUnauthorized {
		t.Fatalf("expected status 401, got %d", resp.Code)
	}
}

func addGuestHeader(req *http.Request) {
	req.Header.Set("X-Guest-Id", "test-guest")
}
