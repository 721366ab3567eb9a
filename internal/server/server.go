// Package server exposes the survey summary, charts and PDF report over HTTP.
package server

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/ppiankov/surveyreport/internal/chart"
	"github.com/ppiankov/surveyreport/internal/model"
	"github.com/ppiankov/surveyreport/internal/pipeline"
	"go.uber.org/zap"
)

// ReportFilename is the download name of the PDF
const ReportFilename = "reporte_buenos_aires.pdf"

// Reporter is the part of the pipeline the server needs
type Reporter interface {
	Analyze() (*pipeline.Analysis, error)
	Chart(a *pipeline.Analysis, role model.Role) ([]byte, error)
	BuildReport() (*pipeline.ReportResult, error)
}

// Server serves report requests one at a time
type Server struct {
	reporter Reporter
	logger   *zap.Logger

	// report generation is single-threaded; requests queue here
	mu sync.Mutex
}

// New creates a server
func New(reporter Reporter, logger *zap.Logger) *Server {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Server{reporter: reporter, logger: logger}
}

// Handler returns the chi router
func (s *Server) Handler() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)
	r.Use(s.logRequests)

	r.Get("/health", func(w http.ResponseWriter, _ *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})
	r.Get("/api/summary", s.handleSummary)
	r.Get("/charts/{role}.png", s.handleChart)
	r.Get("/report.pdf", s.handleReport)

	return r
}

// ListenAndServe runs the server until ctx is cancelled
func (s *Server) ListenAndServe(ctx context.Context, cfg model.ServerConfig) error {
	srv := &http.Server{
		Addr:         cfg.Addr,
		Handler:      s.Handler(),
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.WriteTimeout,
	}

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("listening", zap.String("addr", cfg.Addr))
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}
	return nil
}

func (s *Server) handleSummary(w http.ResponseWriter, _ *http.Request) {
	s.mu.Lock()
	a, err := s.reporter.Analyze()
	s.mu.Unlock()
	if err != nil {
		s.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, a)
}

func (s *Server) handleChart(w http.ResponseWriter, r *http.Request) {
	role, err := model.ParseRole(strings.TrimSuffix(chi.URLParam(r, "role"), ".png"))
	if err != nil {
		writeJSON(w, http.StatusNotFound, map[string]string{"error": err.Error()})
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	a, err := s.reporter.Analyze()
	if err != nil {
		s.writeError(w, err)
		return
	}
	img, err := s.reporter.Chart(a, role)
	if errors.Is(err, chart.ErrEmptySeries) {
		writeJSON(w, http.StatusNotFound, map[string]string{
			"error":   "no_data",
			"message": fmt.Sprintf("no answers for %s", role),
		})
		return
	}
	if err != nil {
		s.writeError(w, &model.RenderError{Index: 0, Caption: string(role), Err: err})
		return
	}

	w.Header().Set("Content-Type", "image/png")
	w.Header().Set("Cache-Control", "no-store")
	_, _ = w.Write(img)
}

func (s *Server) handleReport(w http.ResponseWriter, _ *http.Request) {
	s.mu.Lock()
	result, err := s.reporter.BuildReport()
	s.mu.Unlock()
	if err != nil {
		s.writeError(w, err)
		return
	}

	w.Header().Set("Content-Type", "application/pdf")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", ReportFilename))
	w.Header().Set("Content-Length", fmt.Sprintf("%d", len(result.PDF)))
	_, _ = w.Write(result.PDF)
}

// writeError maps the error taxonomy to HTTP responses
func (s *Server) writeError(w http.ResponseWriter, err error) {
	var (
		dsErr     *model.DataSourceError
		cfgErr    *model.ConfigurationError
		renderErr *model.RenderError
	)

	switch {
	case errors.As(err, &dsErr):
		s.logger.Warn("no survey data", zap.Error(err))
		writeJSON(w, http.StatusNotFound, map[string]string{
			"error":   "no_data",
			"message": model.NoDataMessage,
		})
	case errors.As(err, &cfgErr):
		s.logger.Error("column contract violated", zap.Error(err))
		writeJSON(w, http.StatusInternalServerError, map[string]interface{}{
			"error":   "configuration",
			"message": cfgErr.Error(),
			"role":    cfgErr.Role,
			"index":   cfgErr.Index,
		})
	case errors.As(err, &renderErr):
		s.logger.Error("render failed", zap.Error(err))
		writeJSON(w, http.StatusInternalServerError, map[string]interface{}{
			"error":   "render",
			"message": renderErr.Error(),
			"section": renderErr.Index,
			"caption": renderErr.Caption,
		})
	default:
		s.logger.Error("request failed", zap.Error(err))
		writeJSON(w, http.StatusInternalServerError, map[string]string{
			"error":   "internal",
			"message": err.Error(),
		})
	}
}

func (s *Server) logRequests(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		next.ServeHTTP(ww, r)
		s.logger.Debug("request",
			zap.String("method", r.Method),
			zap.String("path", r.URL.Path),
			zap.Int("status", ww.Status()),
			zap.Int("bytes", ww.BytesWritten()),
			zap.Duration("took", time.Since(start)),
			zap.String("request_id", middleware.GetReqID(r.Context())))
	})
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
