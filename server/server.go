package server

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"sync"
	"time"

	"github.com/RussellLuo/slidingwindow"
	"github.com/go-pkgz/lgr"
	"github.com/go-pkgz/rest"
	"github.com/go-pkgz/rest/logger"
	"github.com/go-pkgz/rest/realip"
	"github.com/go-pkgz/routegroup"
	lru "github.com/hashicorp/golang-lru/v2"

	"github.com/umputun/postguard/pkg/config"
	"github.com/umputun/postguard/pkg/domain"
	"github.com/umputun/postguard/pkg/metrics"
	"github.com/umputun/postguard/pkg/queue"
	"github.com/umputun/postguard/pkg/scheduler"
)

//go:generate moq -out mocks/queue.go -pkg mocks -skip-ensure -fmt goimports . Queue
//go:generate moq -out mocks/tasks.go -pkg mocks -skip-ensure -fmt goimports . Tasks

// Server represents HTTP server instance
type Server struct {
	Params

	lock       sync.Mutex
	httpServer *http.Server
	router     *routegroup.Bundle
	limiters   *lru.Cache[string, *slidingwindow.Limiter]
	limitersMu sync.Mutex
}

// Params defines server dependencies
type Params struct {
	Config  config.ServerConfig
	Queue   Queue
	Tasks   Tasks
	Metrics *metrics.Metrics
	Version string
	Debug   bool
}

// Queue is the review queue the API operates on
type Queue interface {
	Submit(ctx context.Context, d domain.Draft) (*domain.ContentItem, error)
	Preview(ctx context.Context, d domain.Draft) (domain.ComplianceVerdict, float64, error)
	Get(ctx context.Context, id int64) (*domain.ContentItem, error)
	List(ctx context.Context, f domain.ItemFilter) ([]domain.ContentItem, error)
	Reviews(ctx context.Context, id int64) ([]domain.Review, error)
	Approve(ctx context.Context, id int64, req queue.ApproveRequest) (*domain.ContentItem, error)
	Reject(ctx context.Context, id int64, reviewer, reason string) (*domain.ContentItem, error)
	Edit(ctx context.Context, id int64, req queue.EditRequest) (*domain.ContentItem, error)
	Resubmit(ctx context.Context, id int64, reviewer string) (*domain.ContentItem, error)
	BulkApprove(ctx context.Context, ids []int64, req queue.ApproveRequest) domain.BulkResult
	BulkReject(ctx context.Context, ids []int64, reviewer, reason string) domain.BulkResult
	Stats(ctx context.Context) (domain.Stats, error)
	Snapshot(ctx context.Context, recent int) (domain.Snapshot, error)
	Settings(ctx context.Context) (domain.Settings, error)
	UpdateSettings(ctx context.Context, actor string, upd domain.SettingsUpdate) (domain.Settings, error)
	ToggleKillSwitch(ctx context.Context, actor string) (bool, error)
	Logs(ctx context.Context, limit int) ([]domain.AuditEntry, error)
}

// Tasks gives access to scheduled tasks
type Tasks interface {
	Status() []scheduler.TaskStatus
	RunNow(ctx context.Context, name string) error
}

// New initializes a new server instance
func New(params Params) (*Server, error) {
	if params.Config.LimiterSize <= 0 {
		params.Config.LimiterSize = 1000
	}
	if params.Config.RequestsPerHour <= 0 {
		params.Config.RequestsPerHour = 100
	}
	if params.Config.FeedInterval <= 0 {
		params.Config.FeedInterval = 5 * time.Second
	}
	limiters, err := lru.New[string, *slidingwindow.Limiter](params.Config.LimiterSize)
	if err != nil {
		return nil, fmt.Errorf("make limiter cache: %w", err)
	}

	s := &Server{Params: params, limiters: limiters, router: routegroup.New(http.NewServeMux())}
	s.setupMiddleware()
	s.setupRoutes()
	return s, nil
}

// Run starts the HTTP server and handles graceful shutdown
func (s *Server) Run(ctx context.Context) error {
	lgr.Printf("[INFO] starting server on %s", s.Config.Listen)

	s.lock.Lock()
	s.httpServer = &http.Server{
		Addr:              s.Config.Listen,
		Handler:           s.router,
		ReadHeaderTimeout: s.Config.Timeout,
		ReadTimeout:       s.Config.Timeout,
		WriteTimeout:      s.Config.Timeout,
		IdleTimeout:       s.Config.Timeout,
	}
	s.lock.Unlock()

	go func() {
		<-ctx.Done()
		lgr.Printf("[INFO] shutting down server")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()

		s.lock.Lock()
		defer s.lock.Unlock()
		if err := s.httpServer.Shutdown(shutdownCtx); err != nil {
			lgr.Printf("[WARN] server shutdown error: %v", err)
		}
	}()

	if err := s.httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("http server error: %w", err)
	}
	return nil
}

// ServeHTTP makes server usable as http.Handler, mostly for tests
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

// setupMiddleware configures standard middleware for the server
func (s *Server) setupMiddleware() {
	s.router.Use(rest.AppInfo("postguard", "umputun", s.Version))
	s.router.Use(rest.Ping)

	if s.Debug {
		s.router.Use(logger.New(logger.Log(lgr.Default()), logger.Prefix("[DEBUG]")).Handler)
	}

	s.router.Use(rest.Recoverer(lgr.Default()))
	s.router.Use(rest.Throttle(100))
	s.router.Use(rest.SizeLimit(1024 * 1024)) // 1MB
}

// setupRoutes configures application routes
func (s *Server) setupRoutes() {
	if s.Metrics != nil {
		s.router.Handle("GET /metrics", s.Metrics.Handler())
	}

	s.router.Mount("/api/v1").Route(func(r *routegroup.Bundle) {
		r.Use(s.limitMiddleware)
		if s.Config.AuthPassword != "" {
			r.Use(rest.BasicAuthWithUserPasswd(s.Config.AuthUser, s.Config.AuthPassword))
		}

		r.HandleFunc("GET /status", s.statusHandler)

		r.HandleFunc("GET /items", s.listItemsHandler)
		r.HandleFunc("POST /items", s.submitHandler)
		r.HandleFunc("GET /items/{id}", s.getItemHandler)
		r.HandleFunc("PUT /items/{id}", s.editHandler)
		r.HandleFunc("GET /items/{id}/reviews", s.reviewsHandler)
		r.HandleFunc("POST /items/{id}/approve", s.approveHandler)
		r.HandleFunc("POST /items/{id}/reject", s.rejectHandler)
		r.HandleFunc("POST /items/{id}/resubmit", s.resubmitHandler)
		r.HandleFunc("POST /bulk/approve", s.bulkApproveHandler)
		r.HandleFunc("POST /bulk/reject", s.bulkRejectHandler)
		r.HandleFunc("POST /evaluate", s.evaluateHandler)

		r.HandleFunc("GET /settings", s.getSettingsHandler)
		r.HandleFunc("PUT /settings", s.updateSettingsHandler)
		r.HandleFunc("POST /kill-switch", s.killSwitchHandler)

		r.HandleFunc("GET /stats", s.statsHandler)
		r.HandleFunc("GET /feed", s.feedHandler)
		r.HandleFunc("GET /events", s.eventsHandler)
		r.HandleFunc("GET /logs", s.logsHandler)

		r.HandleFunc("GET /tasks", s.tasksHandler)
		r.HandleFunc("POST /tasks/{name}/run", s.runTaskHandler)
	})
}

// limitMiddleware rejects clients exceeding the per-IP hourly request limit
func (s *Server) limitMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ip, err := realip.Get(r)
		if err != nil {
			ip = r.RemoteAddr
		}
		if !s.limiter(ip).Allow() {
			w.Header().Set("Retry-After", "60")
			renderError(w, r, fmt.Errorf("too many requests from %s", ip), http.StatusTooManyRequests)
			return
		}
		next.ServeHTTP(w, r)
	})
}

// limiter returns the sliding window limiter for the ip, creating it on first use.
// The least recently seen clients are evicted when the cache is full.
func (s *Server) limiter(ip string) *slidingwindow.Limiter {
	s.limitersMu.Lock()
	defer s.limitersMu.Unlock()
	if lim, ok := s.limiters.Get(ip); ok {
		return lim
	}
	lim, _ := slidingwindow.NewLimiter(time.Hour, int64(s.Config.RequestsPerHour), func() (slidingwindow.Window, slidingwindow.StopFunc) {
		return slidingwindow.NewLocalWindow()
	})
	s.limiters.Add(ip, lim)
	return lim
}
