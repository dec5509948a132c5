package router

import (
	"net/http"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/finbolt/payment-initiation-api/internal/account"
	"github.com/finbolt/payment-initiation-api/internal/auth"
	"github.com/finbolt/payment-initiation-api/internal/instruction"
	"github.com/finbolt/payment-initiation-api/internal/organization"
	"github.com/finbolt/payment-initiation-api/internal/statement"
)

// Handlers bundles the HTTP handlers mounted by RegisterRoutes.
type Handlers struct {
	Auth          *auth.Handler
	Organizations *organization.Handler
	Accounts      *account.Handler
	Instructions  *instruction.Handler
	Statements    *statement.Handler
}

// loggingResponseWriter wraps http.ResponseWriter to capture status and size.
type loggingResponseWriter struct {
	http.ResponseWriter
	status int
	size   int
}

func (lrw *loggingResponseWriter) WriteHeader(code int) {
	lrw.status = code
	lrw.ResponseWriter.WriteHeader(code)
}

func (lrw *loggingResponseWriter) Write(b []byte) (int, error) {
	if lrw.status == 0 {
		lrw.status = http.StatusOK
	}
	n, err := lrw.ResponseWriter.Write(b)
	lrw.size += n
	return n, err
}

// RequestIDMiddleware assigns each request a uuid, echoed in X-Request-Id.
func RequestIDMiddleware() func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			id := r.Header.Get("X-Request-Id")
			if id == "" {
				id = uuid.NewString()
			}
			w.Header().Set("X-Request-Id", id)
			next.ServeHTTP(w, r)
		})
	}
}

// LoggingMiddleware returns a middleware that logs requests at debug level
// using the provided sugared logger.
func LoggingMiddleware(logger *zap.SugaredLogger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			lrw := &loggingResponseWriter{ResponseWriter: w}
			next.ServeHTTP(lrw, r)
			dur := time.Since(start)
			status := lrw.status
			if status == 0 {
				status = http.StatusOK
			}
			logger.Debugw("http request",
				"method", r.Method,
				"path", r.URL.Path,
				"remote", r.RemoteAddr,
				"request_id", w.Header().Get("X-Request-Id"),
				"status", status,
				"duration_ms", float64(dur.Microseconds())/1000.0,
				"size", lrw.size,
			)
		})
	}
}

// SecurityHeadersMiddleware returns a middleware that sets common HTTP
// security headers.
func SecurityHeadersMiddleware() func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("X-Content-Type-Options", "nosniff")
			w.Header().Set("X-Frame-Options", "DENY")
			w.Header().Set("Referrer-Policy", "no-referrer-when-downgrade")
			if r.TLS != nil {
				w.Header().Set("Strict-Transport-Security", "max-age=2592000; includeSubDomains")
			}
			next.ServeHTTP(w, r)
		})
	}
}

// RegisterRoutes mounts HTTP handlers using the standard library's
// http.ServeMux with method-qualified patterns.
func RegisterRoutes(logger *zap.SugaredLogger, h Handlers) http.Handler {
	mux := http.NewServeMux()

	// health
	mux.HandleFunc("GET /api/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})

	// management
	mux.HandleFunc("POST /api/admin/login", h.Auth.Login)
	mux.HandleFunc("POST /api/admin/organizations", h.Organizations.Create)
	mux.HandleFunc("POST /api/admin/organizations/{id}/users", h.Organizations.CreateUser)
	mux.HandleFunc("POST /api/admin/organizations/{id}/accounts", h.Accounts.Create)

	// tenant API
	mux.HandleFunc("GET /api/accounts", h.Accounts.List)
	mux.HandleFunc("GET /api/accounts/{iban}/statements", h.Statements.List)
	mux.HandleFunc("POST /api/accounts/{iban}/debits", h.Instructions.InitiateDebit)
	mux.HandleFunc("POST /api/accounts/{iban}/credits", h.Instructions.InitiateCredit)

	handler := RequestIDMiddleware()(LoggingMiddleware(logger)(SecurityHeadersMiddleware()(mux)))
	return handler
}
