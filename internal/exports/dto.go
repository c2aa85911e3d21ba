package exports

import "time"

// ExportResponse is the outward-facing representation of an export.
type ExportResponse struct {
	ExportID   string    `json:"exportId"`
	ResumeID   string    `json:"resumeId"`
	TemplateID string    `json:"templateId"`
	Variant    string    `json:"variant"`
	Format     string    `json:"format"`
	FileName   string    `json:"fileName"`
	MimeType   string    `json:"mimeType"`
	SizeBytes  int64     `json:"sizeBytes"`
	CreatedAt  time.Time `json:"createdAt"`
}

func toResponse(e Export) ExportResponse {
	return ExportResponse{
		ExportID:   e.ID,
		ResumeID:   e.ResumeID,
		TemplateID: e.TemplateID,
		Variant:    e.Variant,
		Format:     e.Format,
		FileName:   e.FileName,
		MimeType:   e.MimeType,
		SizeBytes:  e.SizeBytes,
		CreatedAt:  e.CreatedAt,
	}
}
