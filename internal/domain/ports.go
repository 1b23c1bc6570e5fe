package domain

import (
	"context"
	"io"
)

// Fetcher retrieves the raw bytes behind a location (URL or path).
type Fetcher interface {
	Fetch(ctx context.Context, location string) ([]byte, error)
}

// SchemaLoader fetches and compiles the XSD at location.
type SchemaLoader interface {
	Load(ctx context.Context, location string) (Schema, error)
}

// Schema validates one document stream. Every violation is passed to sink
// in document order; a non-nil error means the stream could not be read to
// the end and is reported after the violations already passed to sink.
type Schema interface {
	Validate(ctx context.Context, doc io.Reader, sink func(Diagnostic)) error
}

type Cache interface {
	Get(ctx context.Context, key string, dst any) (bool, error)
	Set(ctx context.Context, key string, v any, ttlSec int) error
	Del(ctx context.Context, key string) error
}
