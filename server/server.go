package server

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"time"

	"github.com/flanksource/commons/logger"
	"github.com/gin-gonic/gin"

	"github.com/propintel/underwrite/store"
	"github.com/propintel/underwrite/underwriting"
)

// Config holds the HTTP server configuration
type Config struct {
	Addr         string        `yaml:"addr,omitempty"`
	ReadTimeout  time.Duration `yaml:"read_timeout,omitempty"`
	WriteTimeout time.Duration `yaml:"write_timeout,omitempty"`
	// ShutdownTimeout bounds graceful shutdown of in-flight requests
	ShutdownTimeout time.Duration `yaml:"shutdown_timeout,omitempty"`
	// HistoryLimit is the number of entries returned by GET /api/history
	HistoryLimit int `yaml:"history_limit,omitempty"`
	// MaxBodyBytes limits JSON request bodies
	MaxBodyBytes int64 `yaml:"max_body_bytes,omitempty"`
	// AllowOrigins lists CORS origins, "*" allows any
	AllowOrigins []string `yaml:"allow_origins,omitempty"`
	// ReturnEstimate is the mocked expected return of an underwrite request
	ReturnEstimate float64 `yaml:"return_estimate,omitempty"`
}

func DefaultConfig() Config {
	return Config{
		Addr:            ":5000",
		ReadTimeout:     10 * time.Second,
		WriteTimeout:    30 * time.Second,
		ShutdownTimeout: 10 * time.Second,
		HistoryLimit:    10,
		MaxBodyBytes:    1 << 20,
		AllowOrigins:    []string{"*"},
		ReturnEstimate:  0.08,
	}
}

// ReportRenderer writes the PDF report of a record
type ReportRenderer interface {
	Render(w io.Writer, record underwriting.Record) error
}

// History persists underwriting runs
type History interface {
	Save(ctx context.Context, report *store.Report) error
	Recent(ctx context.Context, limit int) ([]store.Report, error)
}

// Server is the report HTTP API
type Server struct {
	config   Config
	renderer ReportRenderer
	history  History
	engine   *gin.Engine
	http     *http.Server
	log      logger.Logger
}

func New(config Config, renderer ReportRenderer, history History) *Server {
	defaults := DefaultConfig()
	if config.HistoryLimit <= 0 {
		config.HistoryLimit = defaults.HistoryLimit
	}
	if config.MaxBodyBytes <= 0 {
		config.MaxBodyBytes = defaults.MaxBodyBytes
	}
	if config.ShutdownTimeout <= 0 {
		config.ShutdownTimeout = defaults.ShutdownTimeout
	}

	s := &Server{
		config:   config,
		renderer: renderer,
		history:  history,
		log:      logger.GetLogger("server"),
	}
	s.engine = s.routes()
	return s
}

func (s *Server) routes() *gin.Engine {
	engine := gin.New()
	engine.Use(gin.Recovery(), requestLogger(s.log), cors(s.config.AllowOrigins))

	engine.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	api := engine.Group("/api", bodyLimit(s.config.MaxBodyBytes))
	api.POST("/property/info", s.PropertyInfo)
	api.POST("/property/underwrite", s.Underwrite)
	api.POST("/property/report", s.Report)
	api.GET("/history", s.History)
	return engine
}

// Handler returns the HTTP handler, for tests and embedding
func (s *Server) Handler() http.Handler {
	return s.engine
}

// ListenAndServe blocks until the server is shut down. A graceful Shutdown
// is not an error.
func (s *Server) ListenAndServe() error {
	ln, err := net.Listen("tcp", s.config.Addr)
	if err != nil {
		return fmt.Errorf("failed to listen on %s: %w", s.config.Addr, err)
	}
	return s.Serve(ln)
}

func (s *Server) Serve(ln net.Listener) error {
	s.http = &http.Server{
		Handler:      s.engine,
		ReadTimeout:  s.config.ReadTimeout,
		WriteTimeout: s.config.WriteTimeout,
	}

	s.log.Infof("listening on http://%s", ln.Addr())
	if err := s.http.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("server failed: %w", err)
	}
	return nil
}

// Shutdown stops accepting requests and waits for in-flight ones, bounded by
// ctx and the configured shutdown timeout.
func (s *Server) Shutdown(ctx context.Context) error {
	if s.http == nil {
		return nil
	}
	ctx, cancel := context.WithTimeout(ctx, s.config.ShutdownTimeout)
	defer cancel()

	s.log.Infof("shutting down http server")
	if err := s.http.Shutdown(ctx); err != nil {
		return fmt.Errorf("failed to shut down http server: %w", err)
	}
	return nil
}
