package api

import (
	"context"
	"errors"
	"net/http"

	"github.com/maresia/maresia/internal/shared"
)

// RequestContext derives the outgoing call context from an inbound request,
// attaching the session's bearer token when present.
func RequestContext(r *http.Request) context.Context {
	ctx := r.Context()
	sess := shared.SessionFromContext(ctx)
	if sess == nil || sess.Token() == "" {
		return ctx
	}
	return WithToken(ctx, sess.Token())
}

// UserMessage picks the user-facing message for a failed action: the
// backend-provided message verbatim when there is one, the fallback
// otherwise.
func UserMessage(err error, fallback string) string {
	var apiErr *Error
	if errors.As(err, &apiErr) && apiErr.Message != "" {
		return apiErr.Message
	}
	return fallback
}
