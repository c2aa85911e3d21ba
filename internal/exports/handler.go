package exports

import (
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"resume-optimizer/internal/shared/server/middleware"
	"resume-optimizer/internal/shared/server/respond"
)

// Handler wires HTTP handlers to the export service.
type Handler struct {
	Svc *Service
}

// NewHandler constructs a Handler.
func NewHandler(svc *Service) *Handler {
	return &Handler{Svc: svc}
}

// RegisterRoutes attaches export routes to the router group.
func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.POST("/exports", h.create)
	rg.GET("/exports", h.list)
	rg.GET("/exports/:id", h.get)
	rg.GET("/exports/:id/download", h.download)
}

type createRequest struct {
	ResumeID    string `json:"resumeId"`
	Format      string `json:"format"`
	TemplateID  string `json:"templateId"`
	Variant     string `json:"variant"`
	AccentColor string `json:"accentColor"`
	Font        string `json:"font"`
}

func (h *Handler) create(c *gin.Context) {
	userID := middleware.UserIDFromContext(c)

	var req createRequest
	if err := c.ShouldBindJSON(&req); err != nil && !errors.Is(err, io.EOF) {
		respond.Error(c, http.StatusBadRequest, "validation_error", "invalid request body", nil)
		return
	}

	e, err := h.Svc.Create(c.Request.Context(), userID, Request{
		ResumeID:   req.ResumeID,
		Format:     req.Format,
		TemplateID: req.TemplateID,
		Variant:    req.Variant,
		Accent:     req.AccentColor,
		Font:       req.Font,
	})
	if err != nil {
		switch {
		case errors.Is(err, ErrInvalidInput):
			respond.Error(c, http.StatusBadRequest, "validation_error", err.Error(), nil)
		case errors.Is(err, ErrNoResume):
			respond.Error(c, http.StatusConflict, "no_resume", "upload a resume before exporting", nil)
		default:
			respond.Error(c, http.StatusInternalServerError, "internal_error", "failed to create export", nil)
		}
		return
	}

	respond.JSON(c, http.StatusCreated, toResponse(e))
}

func (h *Handler) list(c *gin.Context) {
	if middleware.GuestFromContext(c) {
		respond.Error(c, http.StatusUnauthorized, "login_required", "Login required to view history", nil)
		return
	}

	userID := middleware.UserIDFromContext(c)

	limit := 20
	offset := 0

	if v := c.Query("limit"); v != "" {
		if parsed, err := strconv.Atoi(v); err == nil {
			limit = parsed
		}
	}
	if limit < 0 {
		limit = 0
	}
	if limit > 50 {
		limit = 50
	}

	if v := c.Query("offset"); v != "" {
		if parsed, err := strconv.Atoi(v); err == nil {
			offset = parsed
		}
	}
	if offset < 0 {
		offset = 0
	}

	list, err := h.Svc.List(c.Request.Context(), userID, limit, offset)
	if err != nil {
		respond.Error(c, http.StatusInternalServerError, "internal_error", "failed to list exports", nil)
		return
	}

	resp := make([]ExportResponse, 0, len(list))
	for _, e := range list {
		resp = append(resp, toResponse(e))
	}

	respond.JSON(c, http.StatusOK, resp)
}

func (h *Handler) get(c *gin.Context) {
	userID := middleware.UserIDFromContext(c)

	e, err := h.Svc.Get(c.Request.Context(), userID, c.Param("id"))
	if err != nil {
		switch {
		case errors.Is(err, ErrForbidden):
			respond.Error(c, http.StatusForbidden, "forbidden", "access denied", nil)
		case errors.Is(err, ErrNotFound):
			respond.Error(c, http.StatusNotFound, "not_found", "export not found", nil)
		case errors.Is(err, ErrInvalidInput):
			respond.Error(c, http.StatusBadRequest, "validation_error", err.Error(), nil)
		default:
			respond.Error(c, http.StatusInternalServerError, "internal_error", "failed to fetch export", nil)
		}
		return
	}

	respond.JSON(c, http.StatusOK, toResponse(e))
}

func (h *Handler) download(c *gin.Context) {
	userID := middleware.UserIDFromContext(c)
	if userID == "" {
		respond.Error(c, http.StatusUnauthorized, "unauthorized", "Missing identity", nil)
		return
	}

	e, reader, err := h.Svc.Open(c.Request.Context(), userID, c.Param("id"))
	if err != nil {
		switch {
		case errors.Is(err, ErrForbidden):
			respond.Error(c, http.StatusForbidden, "forbidden", "access denied", nil)
		case errors.Is(err, ErrNotFound):
			respond.Error(c, http.StatusNotFound, "not_found", "export not found", nil)
		case errors.Is(err, ErrInvalidInput):
			respond.Error(c, http.StatusBadRequest, "validation_error", err.Error(), nil)
		default:
			respond.Error(c, http.StatusInternalServerError, "internal_error", "failed to load export", nil)
		}
		return
	}
	defer reader.Close()

	c.Header("Content-Type", e.MimeType)
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", e.FileName))
	c.Status(http.StatusOK)
	_, _ = io.Copy(c.Writer, reader)
}
