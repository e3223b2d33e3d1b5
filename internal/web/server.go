// Package web serves index charts and series over HTTP.
package web

import (
	"context"
	"errors"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/huangsam/ensoview/core/view"
	"github.com/huangsam/ensoview/internal/chart"
	"github.com/huangsam/ensoview/internal/contract"
	"github.com/huangsam/ensoview/schema"
	"go.uber.org/zap"
)

const shutdownTimeout = 10 * time.Second

// Server holds the HTTP handlers and their dependencies.
type Server struct {
	cfg    *contract.Config
	series *SeriesCache
	store  contract.SourceStore // nil for the file backend
	logger *zap.Logger
}

// NewServer builds a server reading tables from src.
func NewServer(cfg *contract.Config, src contract.TabularSource, store contract.SourceStore, logger *zap.Logger) *Server {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Server{
		cfg:    cfg,
		series: NewSeriesCache(cfg, src),
		store:  store,
		logger: logger,
	}
}

// Router builds the gin engine with every route registered.
func (s *Server) Router() *gin.Engine {
	engine := gin.New()
	engine.Use(gin.Recovery())
	engine.Use(requestLogger(s.logger))
	s.Register(engine)
	return engine
}

// Register adds the routes of s to r.
func (s *Server) Register(r *gin.Engine) {
	r.GET("/", s.index)
	r.GET("/chart/:index", s.chartPage)
	r.GET("/png/:index", s.chartImage)
	r.GET("/healthz", s.health)
	r.GET("/readyz", s.ready)

	api := r.Group("/api")
	api.GET("/indices", s.listIndices)
	api.GET("/series/:index", s.getSeries)
	api.GET("/series/:index/select", s.selectPoint)
	api.DELETE("/cache", s.purgeCache)
}

// Run serves until ctx is done, then shuts down gracefully.
func (s *Server) Run(ctx context.Context) error {
	srv := &http.Server{
		Addr:              s.cfg.Addr,
		Handler:           s.Router(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("http server starting", zap.String("addr", s.cfg.Addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	select {
	case <-ctx.Done():
		s.logger.Info("shutdown requested")
	case err := <-errCh:
		s.logger.Error("server error", zap.Error(err))
		return err
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}

func (s *Server) index(c *gin.Context) {
	c.Redirect(http.StatusFound, "/chart/"+string(s.cfg.Index))
}

func (s *Server) chartPage(c *gin.Context) {
	series, at, loaded := s.loadWithPosition(c)
	if !loaded {
		return
	}
	renderer := chart.NewHTMLRenderer(s.cfg)
	renderer.Nav = true

	c.Header("Content-Type", "text/html; charset=utf-8")
	c.Status(http.StatusOK)
	if err := renderer.Render(c.Writer, series, at); err != nil {
		s.logger.Warn("chart page failed", zap.String("index", string(series.Index)), zap.Error(err))
	}
}

func (s *Server) chartImage(c *gin.Context) {
	series, at, loaded := s.loadWithPosition(c)
	if !loaded {
		return
	}
	c.Header("Content-Type", "image/png")
	c.Status(http.StatusOK)
	if err := chart.NewPNGRenderer(s.cfg).Render(c.Writer, series, at); err != nil {
		s.logger.Warn("chart image failed", zap.String("index", string(series.Index)), zap.Error(err))
	}
}

func (s *Server) listIndices(c *gin.Context) {
	specs := schema.AllSpecs()
	for i, spec := range specs {
		effective, err := s.cfg.Spec(spec.Kind)
		if err != nil {
			s.fail(c, err)
			return
		}
		specs[i] = effective
	}
	ok(c, specs, map[string]any{"count": len(specs)})
}

func (s *Server) getSeries(c *gin.Context) {
	series, err := s.load(c)
	if err != nil {
		s.fail(c, err)
		return
	}
	ok(c, series, map[string]any{"count": series.Len()})
}

func (s *Server) selectPoint(c *gin.Context) {
	series, at, loaded := s.loadWithPosition(c)
	if !loaded {
		return
	}
	ctrl, err := view.NewController(series)
	if err != nil {
		s.fail(c, err)
		return
	}
	ok(c, ctrl.Move(at), map[string]any{"count": series.Len()})
}

func (s *Server) purgeCache(c *gin.Context) {
	ok(c, gin.H{"purged": s.series.Purge()}, nil)
}

func (s *Server) health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

func (s *Server) ready(c *gin.Context) {
	if s.store == nil {
		c.JSON(http.StatusOK, gin.H{"status": "ready"})
		return
	}
	if err := s.store.Ping(c.Request.Context()); err != nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"status": "db_unreachable"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "ready"})
}

func (s *Server) load(c *gin.Context) (*schema.Series, error) {
	kind := schema.IndexKind(strings.ToLower(strings.TrimSpace(c.Param("index"))))
	return s.series.Get(c.Request.Context(), kind)
}

// loadWithPosition loads the series and resolves the "at" query (default: last point).
// It writes the error response itself and reports false on failure.
func (s *Server) loadWithPosition(c *gin.Context) (*schema.Series, int, bool) {
	at := -1
	if raw := strings.TrimSpace(c.Query("at")); raw != "" {
		v, err := strconv.Atoi(raw)
		if err != nil {
			fail(c, http.StatusBadRequest, "invalid at: must be an integer", nil)
			return nil, 0, false
		}
		at = v
	}

	series, err := s.load(c)
	if err != nil {
		s.fail(c, err)
		return nil, 0, false
	}
	return series, view.FromEnd(at, series.Len()), true
}

func (s *Server) fail(c *gin.Context, err error) {
	status := statusFor(err)
	if status >= http.StatusInternalServerError {
		s.logger.Error("request failed", zap.String("path", c.Request.URL.Path), zap.Error(err))
	}
	fail(c, status, err.Error(), nil)
}
