// Package server exposes deck generation over HTTP.
//
//	POST /api/decks   multipart: notes, template, [logo], [brand_text],
//	                  [primary], [accent], [background]
//	GET  /healthz
//
// A successful POST responds with the deck itself. Errors use the JSON
// envelope {"ok":0,"code":<status>,"message":<text>}.
package server

import (
	"context"
	"errors"
	"math/rand/v2"
	"net/http"
	"os"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/tsawler/notedeck/assets"
	"github.com/tsawler/notedeck/branding"
	"github.com/tsawler/notedeck/ocr"
	"github.com/tsawler/notedeck/storage"
)

// Options configures a Server.
type Options struct {
	// MaxUploadMB caps the request body. Default: 32.
	MaxUploadMB int
	// TempDir is the parent of per-request upload directories.
	// Default: os.TempDir().
	TempDir string

	// Branding supplies defaults for fields the request leaves out.
	Branding branding.Options
	// Seed makes generated colors reproducible.
	Seed *uint64

	// Assets resolves logo references that are not uploaded.
	Assets assets.Resolver
	Icons  assets.Resolver
	// Store, when set, also keeps a copy of every generated deck.
	Store storage.Store

	OCR    ocr.Options
	Logger *zap.Logger
}

// Server is the HTTP front end.
type Server struct {
	opts   Options
	log    *zap.Logger
	engine *gin.Engine
}

// New builds the router.
func New(opts Options) *Server {
	if opts.MaxUploadMB <= 0 {
		opts.MaxUploadMB = 32
	}
	if opts.TempDir == "" {
		opts.TempDir = os.TempDir()
	}
	log := opts.Logger
	if log == nil {
		log = zap.NewNop()
	}

	s := &Server{opts: opts, log: log, engine: gin.New()}
	s.engine.Use(gin.Recovery(), requestLogger(log))
	s.engine.MaxMultipartMemory = int64(opts.MaxUploadMB) << 20

	s.engine.GET("/healthz", s.health)
	api := s.engine.Group("/api")
	api.POST("/decks", s.createDeck)
	return s
}

// source returns the color source for one request. Each request gets its own
// generator, so a seeded server produces the same colors for every deck.
func (s *Server) source() *rand.Rand {
	if s.opts.Seed == nil {
		return nil
	}
	return branding.NewSource(*s.opts.Seed)
}

// Handler returns the HTTP handler.
func (s *Server) Handler() http.Handler {
	return s.engine
}

// Run serves on addr until ctx is canceled, then shuts down gracefully.
func (s *Server) Run(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s.engine,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		s.log.Info("server starting", zap.String("addr", addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	s.log.Info("shutting down server...")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return err
	}
	s.log.Info("server exited")
	return nil
}
