// Package http exposes the simulated banking front end as a JSON API: the
// session lifecycle, the dashboard data, the transaction query engine and
// the settings store.
package http

import (
	"context"
	"net/http"
	"sync"
	"time"

	"scbank/internal/assistant"
	"scbank/internal/cache"
	"scbank/internal/catalog"
	"scbank/internal/core"
	applog "scbank/internal/log"
	"scbank/internal/middleware/ratelimit"
	"scbank/internal/middleware/security"
	"scbank/internal/middleware/trace"
	"scbank/internal/services"
	"scbank/internal/session"
	"scbank/internal/settings"
)

type Server struct {
	http.Server

	sessions  *session.Manager
	catalog   *catalog.Catalog
	settings  *settings.Store
	transfers *services.TransferService
	audit     *services.AuditService
	assist    *assistant.Dispatcher
	router    *assistant.Router // nil when no API key is configured

	exportPrefix string
	clock        session.Clock

	// Cached filter results keyed by canonical criteria string.
	filterCache *cache.LRUCache[[]core.Transaction]

	rateLimiter *ratelimit.Limiter
	detector    *security.Detector
	logger      *applog.Logger

	cacheManager *cache.Manager
	shutdownOnce sync.Once
}

// Deps collects everything the server needs. Router and Audit may be nil.
type Deps struct {
	Sessions     *session.Manager
	Catalog      *catalog.Catalog
	Settings     *settings.Store
	Transfers    *services.TransferService
	Audit        *services.AuditService
	Assistant    *assistant.Dispatcher
	Router       *assistant.Router
	ExportPrefix string
	Clock        session.Clock
}

// NewServer configures routes and middleware, returning a ready-to-run
// http.Server.
func NewServer(addr string, deps Deps) *Server {
	mux := http.NewServeMux()

	clock := deps.Clock
	if clock == nil {
		clock = session.SystemClock()
	}

	s := &Server{
		Server: http.Server{
			Addr:              addr,
			ReadHeaderTimeout: 5 * time.Second,
		},
		sessions:     deps.Sessions,
		catalog:      deps.Catalog,
		settings:     deps.Settings,
		transfers:    deps.Transfers,
		audit:        deps.Audit,
		assist:       deps.Assistant,
		router:       deps.Router,
		exportPrefix: deps.ExportPrefix,
		clock:        clock,
		filterCache:  cache.NewLRUCache[[]core.Transaction](200, 5*time.Minute),
		rateLimiter:  ratelimit.NewLimiter(ratelimit.DefaultConfig()),
		detector:     security.NewDetector(),
		cacheManager: cache.NewManager(),
	}
	logConfig := applog.DefaultConfig()
	logConfig.Component = applog.ComponentHTTP
	s.logger = applog.New(logConfig)

	s.cacheManager.Register(s.filterCache)
	s.cacheManager.StartCleanup(10 * time.Minute)

	mux.HandleFunc("/healthz", handleHealth)
	mux.HandleFunc("/readyz", handleReady)

	// Session lifecycle
	mux.HandleFunc("/api/session", s.handleSession)
	mux.HandleFunc("/api/session/login", s.handleRequestLogin)
	mux.HandleFunc("/api/session/login/cancel", s.handleCancelLogin)
	mux.HandleFunc("/api/session/credentials", s.handleSubmitCredentials)
	mux.HandleFunc("/api/session/biometric/start", s.handleBiometricStart)
	mux.HandleFunc("/api/session/biometric/cancel", s.handleBiometricCancel)
	mux.HandleFunc("/api/session/logout", s.handleLogout)
	mux.HandleFunc("/api/session/view", s.handleView)
	mux.HandleFunc("/api/session/back", s.handleBack)

	// Dashboard data
	mux.HandleFunc("/api/accounts", s.handleAccounts)
	mux.HandleFunc("/api/contacts", s.handleContacts)
	mux.HandleFunc("/api/categories", s.handleCategories)
	mux.HandleFunc("/api/faqs", s.handleFaqs)
	mux.HandleFunc("/api/recurring-payments", s.handleRecurringPayments)
	mux.HandleFunc("/api/receipts", s.handleReceipts)

	// Query engine
	mux.HandleFunc("/api/transactions", s.handleTransactions)
	mux.HandleFunc("/api/transactions/export", s.handleExport)
	mux.HandleFunc("/api/transactions/pills", s.handlePills)
	mux.HandleFunc("/api/transactions/pills/remove", s.handlePillRemove)
	mux.HandleFunc("/api/search", s.handleGlobalSearch)

	// Actions
	mux.HandleFunc("/api/transfers", s.handleTransfer)
	mux.HandleFunc("/api/donations", s.handleDonation)
	mux.HandleFunc("/api/settings", s.handleSettings)
	mux.HandleFunc("/api/assistant", s.handleAssistant)

	// Middleware chain, innermost first.
	var handler http.Handler = mux
	handler = s.rateLimiter.Middleware(s.detector.ExtractClientIP, nil)(handler)
	handler = security.NewHeadersMiddleware(security.DefaultHeadersConfig()).Middleware(handler)
	handler = s.withSuspicionLog(handler)
	handler = trace.NewMiddleware(s.detector.ExtractClientIP).Middleware(handler)
	handler = applog.Middleware(s.logger)(handler)
	s.Handler = handler

	return s
}

// withSuspicionLog flags requests matching known probe patterns. They are
// logged, not blocked; enforcement stays with the rate limiter.
func (s *Server) withSuspicionLog(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if s.detector.DetectSuspiciousRequest(r) {
			applog.FromContext(r.Context()).WarnContext(r.Context(), "Suspicious request",
				applog.FieldPath, r.URL.Path,
				applog.FieldClientIP, s.detector.ExtractClientIP(r))
		}
		next.ServeHTTP(w, r)
	})
}

// Shutdown stops the background cleanup goroutines and the HTTP server.
func (s *Server) Shutdown(ctx context.Context) error {
	var shutdownErr error
	s.shutdownOnce.Do(func() {
		s.cacheManager.Stop()
		s.rateLimiter.Stop()
		if s.sessions != nil {
			s.sessions.Close()
		}
		shutdownErr = s.Server.Shutdown(ctx)
	})
	return shutdownErr
}

func handleHealth(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("ok"))
}

func handleReady(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("ready"))
}
