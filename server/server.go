package server

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/poiesic/proflens/ai"
	"github.com/poiesic/proflens/core"
	"github.com/poiesic/proflens/scrape"
)

// Ingestor stores a profile in the vector index.
type Ingestor interface {
	Ingest(ctx context.Context, profile *core.ProfileRecord) error
}

// Assistant answers the latest user turn of a conversation.
type Assistant interface {
	Ask(ctx context.Context, conversation []core.Message) (*ai.Stream, error)
}

// Server is the HTTP boundary: profile ingestion plus the streaming
// chat endpoint.
type Server struct {
	router    *chi.Mux
	ingestor  Ingestor
	assistant Assistant
	scraper   scrape.Scraper
	logger    *slog.Logger
}

// Option configures a Server.
type Option func(*Server)

// WithScraper enables the URL ingestion endpoint. Without a scraper
// the endpoint is not registered.
func WithScraper(scraper scrape.Scraper) Option {
	return func(s *Server) {
		s.scraper = scraper
	}
}

// WithLogger sets a custom logger.
// Default is slog.Default().
func WithLogger(logger *slog.Logger) Option {
	return func(s *Server) {
		if logger == nil {
			logger = slog.Default()
		}
		s.logger = logger
	}
}

// New creates a new server.
func New(ingestor Ingestor, assistant Assistant, opts ...Option) (*Server, error) {
	if ingestor == nil {
		return nil, ErrIngestorRequired
	}
	if assistant == nil {
		return nil, ErrAssistantRequired
	}

	s := &Server{
		router:    chi.NewRouter(),
		ingestor:  ingestor,
		assistant: assistant,
		logger:    slog.Default().With("component", "server"),
	}
	for _, opt := range opts {
		opt(s)
	}

	r := s.router
	r.Use(middleware.RequestID)
	r.Use(s.accessLogger)
	r.Use(middleware.Recoverer)

	r.Post("/api/profiles", s.handleIngestProfile)
	if s.scraper != nil {
		r.Post("/api/scrape", s.handleIngestURL)
	}
	r.Post("/api/chat", s.handleChat)

	return s, nil
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

// accessLogger logs one line per request after it completes.
func (s *Server) accessLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)

		defer func() {
			s.logger.Info("access",
				"method", r.Method,
				"path", r.URL.Path,
				"status", ww.Status(),
				"bytes", ww.BytesWritten(),
				"duration", time.Since(start),
				"remote", r.RemoteAddr,
			)
		}()

		next.ServeHTTP(ww, r)
	})
}
