package exports

import "time"

// Export represents a rendered resume document stored for download.
type Export struct {
	ID         string
	UserID     string
	ResumeID   string
	TemplateID string
	Variant    string
	Format     string
	FileName   string
	StorageKey string
	MimeType   string
	SizeBytes  int64
	CreatedAt  time.Time
	DeletedAt  *time.Time
}
