package resumes

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"resume-optimizer/internal/shared/config"
	"resume-optimizer/internal/shared/server/middleware"
	"resume-optimizer/internal/shared/server/respond"
	"resume-optimizer/resume/model"
)

// Handler wires HTTP handlers to the service.
type Handler struct {
	Svc *Service

	// MaxUploadBytes caps the upload request body. Zero means the
	// config default.
	MaxUploadBytes int64
}

// NewHandler constructs a Handler.
func NewHandler(svc *Service) *Handler {
	return &Handler{Svc: svc}
}

// RegisterRoutes attaches resume routes to the router group.
func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.POST("/resumes", h.upload)
	rg.GET("/resumes", h.list)
	rg.GET("/resumes/current", h.current)
	rg.GET("/resumes/:id", h.get)
	rg.PUT("/resumes/:id/parsed", h.updateParsed)
	rg.PUT("/resumes/:id/optimized", h.updateOptimized)
}

func (h *Handler) upload(c *gin.Context) {
	userID := middleware.UserIDFromContext(c)

	limit := h.MaxUploadBytes
	if limit <= 0 {
		limit = config.DefaultMaxUploadBytes
	}
	c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, limit)

	fileHeader, err := c.FormFile("file")
	if err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			respond.Error(c, http.StatusRequestEntityTooLarge, "file_too_large", "uploaded file exceeds the size limit", nil)
			return
		}
		respond.Error(c, http.StatusBadRequest, "validation_error", "file is required", nil)
		return
	}

	file, err := fileHeader.Open()
	if err != nil {
		respond.Error(c, http.StatusBadRequest, "validation_error", "unable to read file", nil)
		return
	}
	defer file.Close()

	res, err := h.Svc.Upload(c.Request.Context(), userID, fileHeader.Filename, file)
	if err != nil {
		switch {
		case errors.Is(err, ErrInvalidInput):
			respond.Error(c, http.StatusBadRequest, "validation_error", err.Error(), nil)
		case errors.Is(err, ErrUnsupportedType):
			respond.Error(c, http.StatusBadRequest, "unsupported_file_type", "only pdf, doc, docx and txt files are accepted", nil)
		case errors.Is(err, ErrExtractionFailed):
			respond.Error(c, http.StatusUnprocessableEntity, "extraction_failed", "could not read text from the uploaded file", nil)
		default:
			respond.Error(c, http.StatusInternalServerError, "internal_error", "failed to upload resume", nil)
		}
		return
	}

	respond.JSON(c, http.StatusCreated, toResponse(res, true))
}

func (h *Handler) current(c *gin.Context) {
	userID := middleware.UserIDFromContext(c)

	res, err := h.Svc.Current(c.Request.Context(), userID)
	if err != nil {
		switch {
		case errors.Is(err, ErrNotFound):
			respond.Error(c, http.StatusNotFound, "not_found", "resume not found", nil)
		default:
			respond.Error(c, http.StatusInternalServerError, "internal_error", "failed to fetch resume", nil)
		}
		return
	}

	respond.JSON(c, http.StatusOK, toResponse(res, true))
}

func (h *Handler) get(c *gin.Context) {
	userID := middleware.UserIDFromContext(c)

	res, err := h.Svc.Get(c.Request.Context(), userID, c.Param("id"))
	if err != nil {
		switch {
		case errors.Is(err, ErrNotFound):
			respond.Error(c, http.StatusNotFound, "not_found", "resume not found", nil)
		case errors.Is(err, ErrInvalidInput):
			respond.Error(c, http.StatusBadRequest, "validation_error", err.Error(), nil)
		default:
			respond.Error(c, http.StatusInternalServerError, "internal_error", "failed to fetch resume", nil)
		}
		return
	}

	respond.JSON(c, http.StatusOK, toResponse(res, true))
}

func (h *Handler) list(c *gin.Context) {
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
		switch {
		case errors.Is(err, ErrInvalidInput):
			respond.Error(c, http.StatusBadRequest, "validation_error", err.Error(), nil)
		default:
			respond.Error(c, http.StatusInternalServerError, "internal_error", "failed to list resumes", nil)
		}
		return
	}

	resp := make([]ResumeResponse, 0, len(list))
	for _, res := range list {
		resp = append(resp, toResponse(res, false))
	}

	respond.JSON(c, http.StatusOK, resp)
}

func (h *Handler) updateParsed(c *gin.Context) {
	userID := middleware.UserIDFromContext(c)

	var parsed model.ParsedResume
	if err := c.ShouldBindJSON(&parsed); err != nil {
		respond.Error(c, http.StatusBadRequest, "validation_error", "invalid request body", nil)
		return
	}

	res, err := h.Svc.UpdateParsed(c.Request.Context(), userID, c.Param("id"), parsed)
	if err != nil {
		switch {
		case errors.Is(err, ErrNotFound):
			respond.Error(c, http.StatusNotFound, "not_found", "resume not found", nil)
		case errors.Is(err, ErrInvalidInput):
			respond.Error(c, http.StatusBadRequest, "validation_error", err.Error(), nil)
		default:
			respond.Error(c, http.StatusInternalServerError, "internal_error", "failed to update resume", nil)
		}
		return
	}

	respond.JSON(c, http.StatusOK, toResponse(res, true))
}

func (h *Handler) updateOptimized(c *gin.Context) {
	userID := middleware.UserIDFromContext(c)

	var optimized model.ParsedResume
	if err := c.ShouldBindJSON(&optimized); err != nil {
		respond.Error(c, http.StatusBadRequest, "validation_error", "invalid request body", nil)
		return
	}

	res, err := h.Svc.UpdateOptimized(c.Request.Context(), userID, c.Param("id"), optimized)
	if err != nil {
		switch {
		case errors.Is(err, ErrNotFound):
			respond.Error(c, http.StatusNotFound, "not_found", "resume not found", nil)
		case errors.Is(err, ErrInvalidInput):
			respond.Error(c, http.StatusBadRequest, "validation_error", err.Error(), nil)
		default:
			respond.Error(c, http.StatusInternalServerError, "internal_error", "failed to update resume", nil)
		}
		return
	}

	respond.JSON(c, http.StatusOK, toResponse(res, true))
}
