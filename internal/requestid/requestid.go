// Package requestid carries the HTTP request ID from the server middleware
// into service use-case logs.
package requestid

import (
	"context"

	"github.com/google/uuid"
)

// Header is read from incoming requests and echoed on every response.
const Header = "X-Request-ID"

type ctxKey struct{}

func WithRequestID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, ctxKey{}, id)
}

// Lookup returns the request ID carried by ctx, if any.
func Lookup(ctx context.Context) (string, bool) {
	id, ok := ctx.Value(ctxKey{}).(string)
	return id, ok && id != ""
}

// Ensure stores incoming on ctx when it is a UUID, so a caller can follow
// its own ID through our logs, and a fresh UUID otherwise.
func Ensure(ctx context.Context, incoming string) (context.Context, string) {
	id := incoming
	if _, err := uuid.Parse(incoming); err != nil {
		id = uuid.NewString()
	}
	return WithRequestID(ctx, id), id
}
