package handler

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"runtime/debug"
	"slices"
	"time"

	"github.com/jobhub-dev/jobhub/backend/internal/auth"
	"github.com/jobhub-dev/jobhub/backend/internal/domain"
)

type ResponseWriter struct {
	http.ResponseWriter
	StatusCode int
}

func (rw *ResponseWriter) WriteHeader(statusCode int) {
	rw.StatusCode = statusCode
	rw.ResponseWriter.WriteHeader(statusCode)
}

func (h *Handler) logger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		rw := &ResponseWriter{ResponseWriter: w, StatusCode: http.StatusOK}
		next.ServeHTTP(rw, r)
		duration := time.Since(start)
		slog.Info("request handled", "status", rw.StatusCode, "ip", r.RemoteAddr, "method", r.Method, "path", r.URL.Path, "duration", duration)
	})
}

func (h *Handler) recoverer(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		defer func() {
			if err := recover(); err != nil {
				h.internalServerError(w, r, fmt.Errorf("panic: %v", err))
				stackTrace := string(debug.Stack())
				fmt.Print(stackTrace) // slog would mangle the multi-line trace
			}
		}()
		next.ServeHTTP(w, r)
	})
}

// authenticate recovers the caller from the token cookie. Every request is
// independently authenticated; there is no session store.
func (h *Handler) authenticate(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		cookie, err := r.Cookie(auth.CookieName)
		if err != nil {
			switch {
			case errors.Is(err, http.ErrNoCookie):
				h.unauthorized(w, r)
			default:
				h.internalServerError(w, r, err)
			}
			return
		}

		caller, err := auth.VerifyToken(h.config.JWT.Secret, cookie.Value)
		if err != nil {
			h.unauthorized(w, r)
			return
		}

		ctx := context.WithValue(r.Context(), CallerCtxKey, caller)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// requireRole is the role gate. Handlers call it right after recovering the
// caller so the authorization contract is visible at the call site.
func (h *Handler) requireRole(w http.ResponseWriter, r *http.Request, caller auth.Caller, roles ...domain.Role) bool {
	if !slices.Contains(roles, caller.Role) {
		h.forbidden(w, r)
		return false
	}
	return true
}

// rateLimit throttles the auth endpoints per client IP.
func (h *Handler) rateLimit(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ip, _, err := net.SplitHostPort(r.RemoteAddr)
		if err != nil {
			ip = r.RemoteAddr
		}

		if !h.authLimiter.Allow(ip) {
			h.messageResponse(w, r, http.StatusTooManyRequests, "Too many requests, please try again later.")
			return
		}

		next.ServeHTTP(w, r)
	})
}
