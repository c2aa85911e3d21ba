package workerproc

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"strings"

	"resume-optimizer/internal/analyses"
	"resume-optimizer/internal/bootstrap"
	"resume-optimizer/internal/queue"
)

// MessageMeta describes a raw payload for logging without echoing its
// contents.
type MessageMeta struct {
	BodyLen int
	BodySHA string
}

// ComputeMeta hashes the body for log correlation.
func ComputeMeta(body string) MessageMeta {
	if body == "" {
		return MessageMeta{}
	}
	sum := sha256.Sum256([]byte(body))
	return MessageMeta{BodyLen: len(body), BodySHA: hex.EncodeToString(sum[:])}
}

// The error types below let consumers distinguish unrecoverable payloads
// (delete from the queue) from processing failures (retry).

type ErrEmptyBody struct {
	Meta MessageMeta
}

func (e ErrEmptyBody) Error() string { return "empty message body" }

type ErrDecode struct {
	Meta MessageMeta
	Err  error
}

func (e ErrDecode) Error() string {
	if e.Err == nil {
		return "decode message"
	}
	return "decode message: " + e.Err.Error()
}

type ErrMissingAnalysisID struct {
	Meta      MessageMeta
	RequestID string
}

func (e ErrMissingAnalysisID) Error() string { return "missing analysis id" }

type ErrProcess struct {
	AnalysisID string
	RequestID  string
	Err        error
}

func (e ErrProcess) Error() string {
	if e.Err == nil {
		return "process analysis"
	}
	return "process analysis: " + e.Err.Error()
}

// ParseMessage decodes and validates a queue payload.
func ParseMessage(body string) (queue.Message, MessageMeta, error) {
	meta := ComputeMeta(body)
	if strings.TrimSpace(body) == "" {
		return queue.Message{}, meta, ErrEmptyBody{Meta: meta}
	}

	msg, err := queue.DecodeMessage([]byte(body))
	if err != nil {
		return queue.Message{}, meta, ErrDecode{Meta: meta, Err: err}
	}
	if strings.TrimSpace(msg.AnalysisID) == "" {
		return msg, meta, ErrMissingAnalysisID{Meta: meta, RequestID: msg.RequestID}
	}
	return msg, meta, nil
}

type parsedMessageKey struct{}

// WithParsedMessage caches a decoded message in the context so HandleMessage
// does not parse the body twice.
func WithParsedMessage(ctx context.Context, msg queue.Message) context.Context {
	return context.WithValue(ctx, parsedMessageKey{}, msg)
}

func parsedMessageFromContext(ctx context.Context) (queue.Message, bool) {
	if ctx == nil {
		return queue.Message{}, false
	}
	msg, ok := ctx.Value(parsedMessageKey{}).(queue.Message)
	return msg, ok
}

// HandleMessage runs one analysis job from a raw queue payload. It is the
// shared entry point for the long-running worker and the Lambda consumer.
func HandleMessage(ctx context.Context, app *bootstrap.App, body string) error {
	processor := resolveProcessor(app)
	if processor == nil {
		return errors.New("analysis service not configured")
	}

	msg, ok := parsedMessageFromContext(ctx)
	if !ok {
		var err error
		if msg, _, err = ParseMessage(body); err != nil {
			return err
		}
	}
	if strings.TrimSpace(msg.AnalysisID) == "" {
		return ErrMissingAnalysisID{Meta: ComputeMeta(body), RequestID: msg.RequestID}
	}

	ctx = analyses.WithRequestID(ctx, msg.RequestID)
	if err := processor.Process(ctx, msg.AnalysisID); err != nil {
		return ErrProcess{AnalysisID: msg.AnalysisID, RequestID: msg.RequestID, Err: err}
	}
	return nil
}

func resolveProcessor(app *bootstrap.App) bootstrap.AnalysisProcessor {
	if app == nil {
		return nil
	}
	if app.AnalysisProcessor != nil {
		return app.AnalysisProcessor
	}
	if app.AnalysesService != nil {
		return app.AnalysesService
	}
	return nil
}
