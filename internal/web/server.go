// Package web serves the browser front end: a form with three text areas
// and a granularity selector that renders the tri-diff report inline and
// offers it for download. A JSON endpoint exposes the same comparison.
package web

import (
	"context"
	"embed"
	"errors"
	"html/template"
	"log/slog"
	"net"
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"github.com/dacharyc/tridiff"
	"github.com/dacharyc/tridiff/internal/config"
)

//go:embed templates/*.tmpl
var templateFS embed.FS

// Server is the HTTP front end.
type Server struct {
	cfg         *config.Config
	opts        tridiff.Options
	defaultMode tridiff.Mode
	logger      *slog.Logger
	engine      *gin.Engine

	// build produces the report for a request; tests replace it.
	build func(tridiff.Input, tridiff.Options) (*tridiff.Report, error)
}

// New builds a Server and its routes from cfg.
func New(cfg *config.Config, logger *slog.Logger) *Server {
	s := &Server{
		cfg:         cfg,
		opts:        cfg.ReportOptions(),
		defaultMode: cfg.DiffMode(),
		logger:      logger,
		build:       tridiff.Assemble,
	}
	s.engine = s.routes()
	return s
}

func (s *Server) routes() *gin.Engine {
	r := gin.New()
	r.SetHTMLTemplate(template.Must(template.ParseFS(templateFS, "templates/*.tmpl")))

	r.Use(gin.Recovery())
	r.Use(requestID())
	r.Use(accessLog(s.logger))
	r.Use(limitBody(s.cfg.Server.MaxBodyBytes))

	r.GET("/", s.handleIndex)
	r.POST("/diff", s.handleDiff)
	r.POST("/download", s.handleDownload)
	r.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"message": "ok"})
	})

	api := r.Group("/api")
	if mw := corsMiddleware(s.cfg.Server.CORSOrigins); mw != nil {
		api.Use(mw)
		api.OPTIONS("/diff", func(c *gin.Context) { c.Status(http.StatusNoContent) })
	}
	api.POST("/diff", s.handleAPIDiff)

	return r
}

// corsMiddleware returns nil when no origins are configured.
func corsMiddleware(origins []string) gin.HandlerFunc {
	if len(origins) == 0 {
		return nil
	}
	cfg := cors.Config{
		AllowMethods:  []string{http.MethodPost, http.MethodOptions},
		AllowHeaders:  []string{"Content-Type", requestIDHeader},
		ExposeHeaders: []string{requestIDHeader},
		MaxAge:        12 * time.Hour,
	}
	for _, o := range origins {
		if o == "*" {
			cfg.AllowAllOrigins = true
		}
	}
	if !cfg.AllowAllOrigins {
		cfg.AllowOrigins = origins
	}
	return cors.New(cfg)
}

// Handler returns the http.Handler serving all routes.
func (s *Server) Handler() http.Handler {
	return s.engine
}

// Run serves on the configured address until ctx is cancelled, then shuts
// down gracefully.
func (s *Server) Run(ctx context.Context) error {
	ln, err := net.Listen("tcp", s.cfg.Server.Addr)
	if err != nil {
		return err
	}
	return s.Serve(ctx, ln)
}

// Serve is like Run but accepts connections on ln.
func (s *Server) Serve(ctx context.Context, ln net.Listener) error {
	srv := &http.Server{
		Handler:           s.engine,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.Serve(ln)
	}()
	s.logger.Info("serving", "addr", ln.Addr().String())

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
	}

	s.logger.Info("shutting down", "timeout", s.cfg.Server.ShutdownTimeout)
	shutdownCtx, cancel := context.WithTimeout(context.Background(), s.cfg.Server.ShutdownTimeout)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}
