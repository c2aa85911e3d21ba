package bootstrap

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log"
	"os"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"resume-optimizer/internal/analyses"
	googleauth "resume-optimizer/internal/auth"
	"resume-optimizer/internal/exports"
	"resume-optimizer/internal/llm"
	"resume-optimizer/internal/queue"
	"resume-optimizer/internal/resumes"
	"resume-optimizer/internal/services/health"
	"resume-optimizer/internal/shared/config"
	"resume-optimizer/internal/shared/server"
	"resume-optimizer/internal/shared/storage/db"
	"resume-optimizer/internal/shared/storage/object"
	localstore "resume-optimizer/internal/shared/storage/object/local"
	s3store "resume-optimizer/internal/shared/storage/object/s3"
	"resume-optimizer/internal/users"
)

// App holds shared dependencies for the API server and the queue worker.
type App struct {
	Config config.Config
	Router *gin.Engine
	DB     *sql.DB
	Store  object.ObjectStore
	Queue  queue.Client

	ResumesRepo resumes.Repo
	ExportsRepo exports.Repo
	AnalysesRepo analyses.Repo
	UsersRepo   users.Repo

	ResumesService  *resumes.Service
	ExportsService  *exports.Service
	AnalysesService *analyses.Service
	UsersService    *users.Service
	HealthService   *health.Service

	// AnalysisProcessor allows callers to override analysis processing for tests.
	AnalysisProcessor AnalysisProcessor

	ResumesHandler  *resumes.Handler
	ExportsHandler  *exports.Handler
	AnalysisHandler *analyses.Handler
	UsersHandler    *users.Handler
	GoogleAuth      *googleauth.GoogleService
}

// AnalysisProcessor runs a queued analysis to completion.
type AnalysisProcessor interface {
	Process(ctx context.Context, analysisID string) error
}

// Build prepares shared dependencies and wires the router.
func Build(cfg config.Config) (*App, error) {
	if strings.TrimSpace(cfg.Env) == "" {
		cfg.Env = "dev"
	}
	if strings.TrimSpace(cfg.ObjectStoreType) == "" {
		cfg.ObjectStoreType = "local"
	}
	ctx := context.Background()

	sqlDB, err := buildDB(ctx, cfg)
	if err != nil {
		return nil, err
	}

	store, err := buildStore(ctx, cfg)
	if err != nil {
		return nil, err
	}

	queueClient, err := buildQueue(ctx)
	if err != nil {
		return nil, err
	}

	app := &App{
		Config: cfg,
		DB:     sqlDB,
		Store:  store,
		Queue:  queueClient,
	}

	if err := buildServices(app); err != nil {
		return nil, err
	}

	app.Router = server.NewRouter(server.RouterDeps{
		Config:          app.Config,
		ResumeHandler:   app.ResumesHandler,
		ExportHandler:   app.ExportsHandler,
		AnalysisHandler: app.AnalysisHandler,
		UserHandler:     app.UsersHandler,
		GoogleAuth:      app.GoogleAuth,
		Health:          app.HealthService,
	})

	return app, nil
}

func buildDB(ctx context.Context, cfg config.Config) (*sql.DB, error) {
	if strings.TrimSpace(cfg.DatabaseURL) == "" {
		if isDevLike(cfg.Env) {
			log.Printf("bootstrap: DATABASE_URL empty; using in-memory repositories")
			return nil, nil
		}
		return nil, fmt.Errorf("DATABASE_URL is required")
	}

	var (
		sqlDB *sql.DB
		err   error
	)
	if db.IsLambdaRuntime() {
		opts := db.OptionsFromEnv(db.DefaultLambdaOptions())
		sqlDB, err = db.GetSingleton(ctx, cfg.DatabaseURL, opts)
	} else {
		opts := db.OptionsFromEnv(db.DefaultServerOptions())
		sqlDB, err = db.Connect(ctx, cfg.DatabaseURL, opts)
	}
	if err != nil {
		if isDevLike(cfg.Env) {
			log.Printf("bootstrap: database connect failed; using in-memory repositories: %v", err)
			return nil, nil
		}
		return nil, err
	}

	return sqlDB, nil
}

func buildStore(ctx context.Context, cfg config.Config) (object.ObjectStore, error) {
	switch cfg.ObjectStoreType {
	case "s3":
		return s3store.New(ctx, cfg.AWSRegion, cfg.S3Bucket, cfg.S3Prefix, cfg.SSEKMSKeyID)
	default:
		return localstore.New(cfg.LocalStoreDir), nil
	}
}

func buildQueue(ctx context.Context) (queue.Client, error) {
	if strings.TrimSpace(os.Getenv("RO_SQS_QUEUE_URL")) == "" {
		return nil, nil
	}
	return queue.NewSQSClient(ctx)
}

func isDevLike(env string) bool {
	switch strings.ToLower(strings.TrimSpace(env)) {
	case "dev", "local":
		return true
	default:
		return false
	}
}

func buildServices(app *App) error {
	var resumesRepo resumes.Repo
	var exportsRepo exports.Repo
	var analysesRepo analyses.Repo
	var usersRepo users.Repo

	if app.DB != nil {
		resumesRepo = &resumes.PGRepo{DB: app.DB}
		exportsRepo = &exports.PGRepo{DB: app.DB}
		analysesRepo = &analyses.PGRepo{DB: app.DB}
		usersRepo = &users.PGRepo{DB: app.DB}
	} else {
		resumesRepo = resumes.NewMemoryRepo()
		exportsRepo = exports.NewMemoryRepo()
		analysesRepo = analyses.NewMemoryRepo()
		usersRepo = users.NewMemoryRepo()
	}

	resumesSvc := resumes.NewService(app.Store, resumesRepo)
	exportsSvc := exports.NewService(resumesRepo, exportsRepo, app.Store)

	analyzer, provider := buildAnalyzer(app.Config)
	analysesSvc := &analyses.Service{
		Repo:        analysesRepo,
		ResumesRepo: resumesRepo,
		Analyzer:    analyzer,
		Queue:       app.Queue,
		Provider:    provider,
		Model:       app.Config.LLMModel,
	}

	usersSvc := users.NewService(usersRepo)
	googleAuthSvc := googleauth.NewGoogleService(
		app.Config.GoogleClientID,
		app.Config.GoogleClientSecret,
		app.Config.GoogleRedirectURL,
		app.Config.UIRedirectURL,
		usersSvc,
	)

	app.ResumesRepo = resumesRepo
	app.ExportsRepo = exportsRepo
	app.AnalysesRepo = analysesRepo
	app.UsersRepo = usersRepo
	app.ResumesService = resumesSvc
	app.ExportsService = exportsSvc
	app.AnalysesService = analysesSvc
	app.AnalysisProcessor = analysesSvc
	app.UsersService = usersSvc
	app.HealthService = health.NewService()
	app.ResumesHandler = resumes.NewHandler(resumesSvc)
	app.ResumesHandler.MaxUploadBytes = app.Config.MaxUploadBytes
	app.ExportsHandler = exports.NewHandler(exportsSvc)
	app.AnalysisHandler = analyses.NewHandler(analysesSvc)
	app.UsersHandler = users.NewHandler(usersSvc)
	app.GoogleAuth = googleAuthSvc

	if app.ResumesHandler == nil || app.ExportsHandler == nil || app.AnalysisHandler == nil {
		return errors.New("failed to initialize handlers")
	}

	return nil
}

// buildAnalyzer selects the analyzer backend. The LLM client is only used
// when the provider is openai and an API key is present; everything else
// falls back to the deterministic keyword analyzer.
func buildAnalyzer(cfg config.Config) (analyses.Analyzer, string) {
	if cfg.LLMProvider == "openai" {
		apiKey := strings.TrimSpace(os.Getenv("OPENAI_API_KEY"))
		if apiKey != "" {
			client, err := llm.NewHTTPClient(apiKey, cfg.LLMModel, os.Getenv("LLM_BASE_URL"), 120*time.Second)
			if err == nil {
				return &analyses.LLMAnalyzer{Client: client}, "openai"
			}
			log.Printf("bootstrap: llm client unavailable, using keyword analyzer: %v", err)
		}
	}
	return &analyses.KeywordAnalyzer{}, "heuristic"
}
