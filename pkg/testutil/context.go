package testutil

import (
	"net/http"

	"persondir/pkg/requestcontext"
)

// WithActor adds an authenticated principal to the request context.
// This simulates what the auth middleware would do for authenticated requests.
func WithActor(req *http.Request, actor string) *http.Request {
	ctx := requestcontext.WithActor(req.Context(), actor)
	return req.WithContext(ctx)
}

// WithRequestID adds a request ID to the request context, the way the
// request-ID middleware would.
func WithRequestID(req *http.Request, requestID string) *http.Request {
	ctx := requestcontext.WithRequestID(req.Context(), requestID)
	return req.WithContext(ctx)
}
