// Package logging writes diagnostic events as one JSON object per line.
package logging

import (
	"context"
	"encoding/json"
	"io"
	"os"
	"sync"
	"time"

	"go.opentelemetry.io/otel/trace"
)

// Logger emits JSON lines with ts, level and msg plus caller-supplied fields.
// It is safe for concurrent use.
type Logger struct {
	mu  sync.Mutex
	enc *json.Encoder
	loc *time.Location
	now func() time.Time
}

// New returns a Logger writing to w with timestamps in loc.
func New(w io.Writer, loc *time.Location) *Logger {
	if loc == nil {
		loc = time.Local
	}
	return &Logger{enc: json.NewEncoder(w), loc: loc, now: time.Now}
}

// Default logs to stdout in the local timezone.
func Default() *Logger {
	return New(os.Stdout, time.Local)
}

// Discard drops everything; handy in tests.
func Discard() *Logger {
	return New(io.Discard, time.UTC)
}

type requestIDKey struct{}

// WithRequestID returns ctx carrying a request ID that every entry logged
// with it will include.
func WithRequestID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, requestIDKey{}, id)
}

// Fields are extra key/value pairs attached to an entry.
type Fields map[string]any

func (l *Logger) Info(ctx context.Context, msg string, f Fields) {
	l.write(ctx, "info", msg, nil, f)
}

func (l *Logger) Error(ctx context.Context, msg string, err error, f Fields) {
	l.write(ctx, "error", msg, err, f)
}

func (l *Logger) write(ctx context.Context, level, msg string, err error, f Fields) {
	entry := make(map[string]any, len(f)+6)
	for k, v := range f {
		entry[k] = v
	}
	entry["ts"] = l.now().In(l.loc).Format(time.RFC3339Nano)
	entry["level"] = level
	entry["msg"] = msg
	if err != nil {
		entry["error"] = err.Error()
	}
	if ctx != nil {
		if id, ok := ctx.Value(requestIDKey{}).(string); ok && id != "" {
			entry["request_id"] = id
		}
		if sc := trace.SpanContextFromContext(ctx); sc.HasTraceID() {
			entry["trace_id"] = sc.TraceID().String()
		}
	}

	l.mu.Lock()
	defer l.mu.Unlock()
	_ = l.enc.Encode(entry)
}
