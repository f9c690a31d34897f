// Package server exposes the renderer over HTTP: one stateless render
// endpoint plus a health check. Render calls share nothing, so the
// handlers need no locking.
package server

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/molmap/molmap"
	"github.com/molmap/molmap/internal/config"
)

// Server wires the render API into an http.Server.
type Server struct {
	log  *zap.Logger
	rend *molmap.Renderer
	http *http.Server
}

// New builds the server from configuration. The renderer is configured
// once here and reused across requests; it is safe for concurrent use.
func New(cfg *config.Config, log *zap.Logger) *Server {
	gin.SetMode(cfg.Server.Mode)

	rend := molmap.NewRenderer()
	rend.Width = cfg.Render.Width
	rend.Height = cfg.Render.Height
	if cfg.Render.Bands > 0 {
		rend.Bands = cfg.Render.Bands
	}

	s := &Server{log: log, rend: rend}

	engine := gin.New()
	engine.Use(gin.Recovery())
	engine.GET("/healthz", s.handleHealth)
	engine.POST("/api/render", s.handleRender)

	s.http = &http.Server{
		Addr:         cfg.Server.Addr,
		Handler:      engine,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}
	return s
}

// Run serves until the listener fails or Shutdown is called.
func (s *Server) Run() error {
	s.log.Info("server listening", zap.String("addr", s.http.Addr))
	err := s.http.ListenAndServe()
	if err == http.ErrServerClosed {
		return nil
	}
	return err
}

// Shutdown drains in-flight requests within the context deadline.
func (s *Server) Shutdown(ctx context.Context) error {
	return s.http.Shutdown(ctx)
}
