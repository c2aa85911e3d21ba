package analyses

import (
	"context"
	"errors"
	"log"
	"net"
	"strings"
	"time"

	"resume-optimizer/resume/model"
)

const analyzeRetryBaseDelay = 300 * time.Millisecond

type retryingAnalyzer struct {
	base       Analyzer
	requestID  string
	analysisID string
}

func newRetryingAnalyzer(base Analyzer, analysisID, requestID string) Analyzer {
	if base == nil {
		return nil
	}
	return retryingAnalyzer{
		base:       base,
		requestID:  requestID,
		analysisID: analysisID,
	}
}

func (r retryingAnalyzer) Analyze(ctx context.Context, resume model.ParsedResume, jobDescription string) (map[string]any, error) {
	result, err := r.base.Analyze(ctx, resume, jobDescription)
	if err == nil || !shouldRetryAnalyze(err) {
		return result, err
	}

	log.Printf("analyze retry attempt=1 request_id=%s analysis_id=%s error=%s", r.requestID, r.analysisID, sanitizeError(err))
	select {
	case <-time.After(analyzeRetryBaseDelay):
	case <-ctx.Done():
		return nil, ctx.Err()
	}

	return r.base.Analyze(ctx, resume, jobDescription)
}

func shouldRetryAnalyze(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, context.DeadlineExceeded) {
		return true
	}
	var netErr net.Error
	if errors.As(err, &netErr) && netErr.Timeout() {
		return true
	}

	msg := strings.ToLower(err.Error())
	if strings.Contains(msg, "http status 5") || strings.Contains(msg, "server_error") {
		return true
	}
	if strings.Contains(msg, "connection reset") ||
		strings.Contains(msg, "connection refused") ||
		strings.Contains(msg, "connection closed") ||
		strings.Contains(msg, "broken pipe") ||
		strings.Contains(msg, "tls handshake timeout") ||
		strings.Contains(msg, "timeout") {
		return true
	}

	return false
}

func sanitizeError(err error) string {
	if err == nil {
		return ""
	}
	msg := err.Error()
	if len(msg) > 200 {
		msg = msg[:200]
	}
	return strings.ReplaceAll(msg, "\n", " ")
}
