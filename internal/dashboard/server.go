// Package dashboard serves the skills dashboard over HTTP.
//
// Routes:
//
//	GET /          tiles, category sidebar, skill lists and project timeline
//	GET /charts    go-echarts page: radar, complexity, distribution, heatmap
//	GET /healthz   liveness probe
//
// All content comes from configuration; the contribution heatmap is added
// when a calendar source is configured.
package dashboard

import (
	"context"
	"encoding/json"
	stderrors "errors"
	"net/http"
	"time"

	"github.com/charmbracelet/log"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/ghstats/ghstats/pkg/buildinfo"
	"github.com/ghstats/ghstats/pkg/errors"
	"github.com/ghstats/ghstats/pkg/render"
	"github.com/ghstats/ghstats/pkg/report"
)

const (
	defaultRequestTimeout = 2 * time.Minute
	shutdownTimeout       = 10 * time.Second
)

// CalendarFunc fetches the contribution calendar shown on /charts.
type CalendarFunc func(ctx context.Context) (*report.CalendarReport, error)

// Options configures a [Server].
type Options struct {
	Content  render.Dashboard
	Calendar CalendarFunc // optional
	Logger   *log.Logger

	// RequestTimeout bounds each request, including GitHub calls.
	RequestTimeout time.Duration

	// Chart options, e.g. render.WithAssetsHost for offline use.
	Charts []render.Option
}

// Server is the dashboard HTTP server.
type Server struct {
	opts   Options
	logger *log.Logger
	router chi.Router
}

// New creates a server and registers its routes.
func New(opts Options) *Server {
	if opts.Logger == nil {
		opts.Logger = log.Default()
	}
	if opts.RequestTimeout == 0 {
		opts.RequestTimeout = defaultRequestTimeout
	}
	s := &Server{opts: opts, logger: opts.Logger}
	s.router = s.routes()
	return s
}

func (s *Server) routes() chi.Router {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(s.logRequests)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(s.opts.RequestTimeout))

	r.Get("/", s.handleIndex)
	r.Get("/charts", s.handleCharts)
	r.Get("/healthz", s.handleHealth)
	return r
}

// Handler returns the routed handler.
func (s *Server) Handler() http.Handler { return s.router }

// ListenAndServe serves on addr until ctx is canceled, then shuts down
// gracefully.
func (s *Server) ListenAndServe(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s.router,
		ReadHeaderTimeout: 10 * time.Second,
		WriteTimeout:      s.opts.RequestTimeout + 10*time.Second,
		IdleTimeout:       time.Minute,
	}

	errc := make(chan error, 1)
	go func() {
		s.logger.Info("dashboard listening", "addr", addr)
		errc <- srv.ListenAndServe()
	}()

	select {
	case err := <-errc:
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			return err
		}
		if err := <-errc; err != nil && !stderrors.Is(err, http.ErrServerClosed) {
			return err
		}
		return ctx.Err()
	}
}

func (s *Server) logRequests(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		start := time.Now()
		next.ServeHTTP(ww, r)
		s.logger.Debug("request",
			"id", middleware.GetReqID(r.Context()),
			"method", r.Method,
			"path", r.URL.Path,
			"status", ww.Status(),
			"bytes", ww.BytesWritten(),
			"duration", time.Since(start).Round(time.Millisecond))
	})
}

func (s *Server) handleIndex(w http.ResponseWriter, r *http.Request) {
	category := r.URL.Query().Get("category")
	data, err := newPageData(s.opts.Content, category)
	if err != nil {
		s.writeError(w, r, http.StatusInternalServerError, err)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := indexTemplate.Execute(w, data); err != nil {
		s.logger.Error("render index", "error", err)
	}
}

func (s *Server) handleCharts(w http.ResponseWriter, r *http.Request) {
	rep := s.calendar(r.Context())

	page := render.DashboardPage(s.opts.Content, gridOf(rep), loginOf(rep), s.opts.Charts...)
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := page.Render(w); err != nil {
		s.logger.Error("render charts", "error", err)
	}
}

// calendar returns nil when no source is configured or the fetch fails;
// the page is then rendered without a heatmap.
func (s *Server) calendar(ctx context.Context) *report.CalendarReport {
	if s.opts.Calendar == nil {
		return nil
	}
	rep, err := s.opts.Calendar(ctx)
	if err != nil {
		s.logger.Warn("contribution calendar unavailable", "error", errors.UserMessage(err))
		return nil
	}
	return rep
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	s.writeJSON(w, http.StatusOK, map[string]string{
		"status":  "ok",
		"version": buildinfo.Version,
	})
}

func (s *Server) writeError(w http.ResponseWriter, r *http.Request, status int, err error) {
	s.logger.Error("request failed", "path", r.URL.Path, "error", err)
	s.writeJSON(w, status, map[string]string{"error": errors.UserMessage(err)})
}

func (s *Server) writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		s.logger.Error("encode response", "error", err)
	}
}
