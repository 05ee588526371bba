package handler

import (
	"net/http"

	"github.com/jobhub-dev/jobhub/backend/internal/auth"
)

type ContextKey string

var CallerCtxKey ContextKey = "caller"

// callerFrom recovers the authenticated caller the authenticate middleware
// stored. Only valid on routes behind that middleware.
func callerFrom(r *http.Request) auth.Caller {
	return r.Context().Value(CallerCtxKey).(auth.Caller)
}
