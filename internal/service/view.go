package service

import (
	"context"
	"errors"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"trainerweb/internal/logging"
)

var (
	ErrNotFound        = errors.New("row not found")
	ErrNoPendingDelete = errors.New("no delete awaiting confirmation")
	ErrDeleteMismatch  = errors.New("confirmed id is not the one awaiting deletion")
	ErrInvalidDuration = errors.New("duration must be a whole number of minutes")
)

const (
	customerDeletePrompt = "Delete this customer? This will also delete their trainings."
	trainingDeletePrompt = "Delete this training?"
)

var tracer = otel.Tracer("trainerweb/internal/service")

// DeleteConfirmation is an open confirmation gate for deleting one row.
type DeleteConfirmation struct {
	ID      int64
	Message string
}

// fail records err on the span and writes the diagnostic log line. Failures
// never go further than this: the caller re-renders from unchanged state.
func fail(ctx context.Context, log *logging.Logger, span trace.Span, msg string, err error, f logging.Fields) {
	span.RecordError(err)
	span.SetStatus(codes.Error, msg)
	log.Error(ctx, msg, err, f)
}
