// Package trace assigns every request an id and writes the access log
// lines around the handler. The id travels in the request context so
// deeper log lines can reference it.
package trace

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"net/http"
	"time"

	applog "scbank/internal/log"
)

type requestIDKey struct{}

// Middleware is the access-log layer of the server's middleware chain.
type Middleware struct {
	extractIP func(*http.Request) string
	logs      *applog.StructuredLogger
}

// NewMiddleware builds the tracer. extractIP resolves the client address
// behind trusted proxies; nil leaves the client ip blank.
func NewMiddleware(extractIP func(*http.Request) string) *Middleware {
	cfg := applog.DefaultConfig()
	cfg.Component = applog.ComponentHTTP
	return &Middleware{
		extractIP: extractIP,
		logs:      applog.NewStructuredLogger(applog.New(cfg)),
	}
}

// Middleware returns the http.Handler wrapper.
func (m *Middleware) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()

		clientIP := ""
		if m.extractIP != nil {
			clientIP = m.extractIP(r)
		}

		requestID := newRequestID()
		ctx := context.WithValue(r.Context(), requestIDKey{}, requestID)
		r = r.WithContext(ctx)

		m.logs.LogHTTPStart(ctx, r, requestID, clientIP)

		rw := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		next.ServeHTTP(rw, r)

		m.logs.LogHTTPEnd(ctx, r, requestID, rw.status, time.Since(start).Milliseconds(), clientIP)
	})
}

// statusRecorder captures the status code written by the handler.
type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (rw *statusRecorder) WriteHeader(code int) {
	rw.status = code
	rw.ResponseWriter.WriteHeader(code)
}

func newRequestID() string {
	bytes := make([]byte, 8)
	if _, err := rand.Read(bytes); err != nil {
		// Random source failures are effectively fatal elsewhere; a
		// timestamp id keeps the access log usable regardless.
		return fmt.Sprintf("req_%d", time.Now().UnixNano())
	}
	return "req_" + hex.EncodeToString(bytes)
}

// RequestID returns the id assigned to this request, or "" outside the
// middleware.
func RequestID(ctx context.Context) string {
	if id, ok := ctx.Value(requestIDKey{}).(string); ok {
		return id
	}
	return ""
}
