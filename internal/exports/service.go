package exports

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/google/uuid"

	"resume-optimizer/internal/extract"
	"resume-optimizer/internal/resumes"
	"resume-optimizer/internal/shared/metrics"
	"resume-optimizer/internal/shared/storage/object"
	"resume-optimizer/internal/shared/telemetry"
	"resume-optimizer/resume/model"
	"resume-optimizer/resume/parse"
	"resume-optimizer/resume/render"
	"resume-optimizer/resume/template"
)

// Request describes an export to produce. ResumeID may be empty to export
// the user's current resume.
type Request struct {
	ResumeID   string
	Format     string
	TemplateID string
	Variant    string
	Accent     string
	Font       string
}

// Service renders resumes into documents and records export history.
type Service struct {
	ResumesRepo resumes.Repo
	Repo        Repo
	Store       object.ObjectStore
	Renderer    *render.Renderer
	Parser      *parse.Parser
}

// NewService constructs a Service with the default renderer.
func NewService(resumesRepo resumes.Repo, repo Repo, store object.ObjectStore) *Service {
	return &Service{
		ResumesRepo: resumesRepo,
		Repo:        repo,
		Store:       store,
		Renderer:    render.New(),
		Parser:      parse.New(),
	}
}

// Create renders the resume and stores the document. The rendered bytes are
// staged in a temp file that is always removed, whether storage succeeds
// or not.
func (s *Service) Create(ctx context.Context, userID string, req Request) (Export, error) {
	if userID == "" {
		return Export{}, ErrInvalidInput
	}

	format, err := render.ParseFormat(req.Format)
	if err != nil {
		return Export{}, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	res, err := s.lookupResume(ctx, userID, req.ResumeID)
	if err != nil {
		return Export{}, err
	}

	templateID := req.TemplateID
	if templateID == "" {
		templateID = template.DefaultTemplateID
	}
	overrides := template.Overrides{
		Variant:     req.Variant,
		AccentColor: req.Accent,
		Font:        req.Font,
	}

	start := time.Now()
	doc, err := s.Renderer.Render(s.resolveContent(ctx, res), format, templateID, overrides)
	if err != nil {
		return Export{}, err
	}
	metrics.ObserveRenderDurationMs(float64(time.Since(start).Milliseconds()))

	fileName := exportFileName(res.FileName, doc.Ext)

	tmp, err := os.CreateTemp("", "export-*"+doc.Ext)
	if err != nil {
		return Export{}, err
	}
	tmpName := tmp.Name()
	defer os.Remove(tmpName)

	if _, err := tmp.Write(doc.Data); err != nil {
		tmp.Close()
		return Export{}, err
	}
	if _, err := tmp.Seek(0, io.SeekStart); err != nil {
		tmp.Close()
		return Export{}, err
	}

	storageKey, size, _, err := s.Store.Save(ctx, userID, fileName, tmp)
	tmp.Close()
	if err != nil {
		return Export{}, err
	}

	variant := req.Variant
	if variant == "" {
		variant = template.DefaultVariant
	}

	e := Export{
		ID:         uuid.NewString(),
		UserID:     userID,
		ResumeID:   res.ID,
		TemplateID: templateID,
		Variant:    variant,
		Format:     string(doc.Format),
		FileName:   fileName,
		StorageKey: storageKey,
		MimeType:   doc.MIMEType,
		SizeBytes:  size,
		CreatedAt:  time.Now().UTC(),
	}
	if err := s.Repo.Create(ctx, e); err != nil {
		return Export{}, err
	}

	metrics.IncExport(e.Format)
	telemetry.Info("export.created", map[string]any{
		"user_id":     userID,
		"resume_id":   res.ID,
		"export_id":   e.ID,
		"format":      e.Format,
		"template_id": e.TemplateID,
		"variant":     e.Variant,
		"size_bytes":  size,
	})
	return e, nil
}

// Get returns an export record by ID for a user.
func (s *Service) Get(ctx context.Context, userID, exportID string) (Export, error) {
	if userID == "" || exportID == "" {
		return Export{}, ErrInvalidInput
	}
	return s.Repo.GetByID(ctx, userID, exportID)
}

// Open returns the export record together with a reader over the stored
// document. The caller owns the reader.
func (s *Service) Open(ctx context.Context, userID, exportID string) (Export, io.ReadCloser, error) {
	e, err := s.Get(ctx, userID, exportID)
	if err != nil {
		return Export{}, nil, err
	}
	reader, err := s.Store.Open(ctx, e.StorageKey)
	if err != nil {
		return Export{}, nil, err
	}
	return e, reader, nil
}

// List returns export history for a user, newest first.
func (s *Service) List(ctx context.Context, userID string, limit, offset int) ([]Export, error) {
	if userID == "" {
		return nil, ErrInvalidInput
	}
	return s.Repo.ListByUser(ctx, userID, limit, offset)
}

func (s *Service) lookupResume(ctx context.Context, userID, resumeID string) (resumes.Resume, error) {
	var res resumes.Resume
	var err error
	if resumeID == "" {
		res, err = s.ResumesRepo.GetCurrentByUser(ctx, userID)
	} else {
		res, err = s.ResumesRepo.GetByID(ctx, userID, resumeID)
	}
	if err != nil {
		if errors.Is(err, resumes.ErrNotFound) {
			return resumes.Resume{}, ErrNoResume
		}
		return resumes.Resume{}, err
	}
	return res, nil
}

// resolveContent picks the data to render. The optimized version wins when
// one exists, then the parsed original, then a re-parse of the stored
// extracted text. A resume with none of those still renders as a minimal
// document named after the uploaded file.
func (s *Service) resolveContent(ctx context.Context, res resumes.Resume) model.ParsedResume {
	if res.Optimized != nil && !res.Optimized.IsEmpty() {
		return *res.Optimized
	}
	if !res.Parsed.IsEmpty() {
		return res.Parsed
	}
	if res.ExtractedTextKey != "" && s.Parser != nil {
		if rc, err := s.Store.Open(ctx, res.ExtractedTextKey); err == nil {
			text, readErr := io.ReadAll(rc)
			rc.Close()
			if readErr == nil && len(text) > 0 {
				return s.Parser.Parse(string(text))
			}
		}
	}
	minimal := model.ParsedResume{Name: extract.BaseName(res.FileName)}
	minimal.Normalize()
	return minimal
}

func exportFileName(uploadName, ext string) string {
	base := extract.BaseName(uploadName)
	if base == "" {
		base = "resume"
	}
	return base + "_optimized" + ext
}
