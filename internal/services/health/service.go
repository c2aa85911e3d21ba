package health

// Service answers liveness probes.
type Service struct{}

// NewService constructs a health service.
func NewService() *Service {
	return &Service{}
}

// Status reports process health. There are no downstream checks here; the
// DB and object store surface their own failures per request.
func (s *Service) Status() map[string]any {
	return map[string]any{
		"ok":      true,
		"service": "resume-optimizer",
	}
}
