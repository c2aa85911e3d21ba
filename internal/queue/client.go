package queue

import "context"

// Client enqueues analysis jobs for the worker.
type Client interface {
	Send(ctx context.Context, msg Message) error
}
