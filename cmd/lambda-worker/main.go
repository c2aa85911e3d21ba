package main

// Build the Lambda handler binary:
//   GOOS=linux GOARCH=amd64 CGO_ENABLED=0 go build -o bootstrap ./cmd/lambda-worker

import (
	"context"
	"errors"
	"log"
	"sync"

	"github.com/aws/aws-lambda-go/events"
	"github.com/aws/aws-lambda-go/lambda"

	"resume-optimizer/internal/bootstrap"
	"resume-optimizer/internal/shared/config"
	"resume-optimizer/internal/workerproc"
)

var (
	initOnce sync.Once
	initErr  error
	app      *bootstrap.App
)

func initApp() {
	built, err := bootstrap.Build(config.Load())
	if err != nil {
		initErr = err
		return
	}
	app = built
}

// unrecoverable reports payload errors that redelivery cannot fix. Those
// records are acknowledged so SQS stops retrying them.
func unrecoverable(err error) bool {
	var (
		emptyBody workerproc.ErrEmptyBody
		decode    workerproc.ErrDecode
		missingID workerproc.ErrMissingAnalysisID
	)
	return errors.As(err, &emptyBody) || errors.As(err, &decode) || errors.As(err, &missingID)
}

func handler(ctx context.Context, event events.SQSEvent) (events.SQSEventResponse, error) {
	initOnce.Do(initApp)
	if initErr != nil {
		log.Printf("bootstrap error: %v", initErr)
		failures := make([]events.SQSBatchItemFailure, 0, len(event.Records))
		for _, record := range event.Records {
			failures = append(failures, events.SQSBatchItemFailure{ItemIdentifier: record.MessageId})
		}
		return events.SQSEventResponse{BatchItemFailures: failures}, initErr
	}

	failures := make([]events.SQSBatchItemFailure, 0)
	for _, record := range event.Records {
		err := workerproc.HandleMessage(ctx, app, record.Body)
		if err != nil && !unrecoverable(err) {
			failures = append(failures, events.SQSBatchItemFailure{ItemIdentifier: record.MessageId})
		}
	}
	return events.SQSEventResponse{BatchItemFailures: failures}, nil
}

func main() {
	lambda.Start(handler)
}
