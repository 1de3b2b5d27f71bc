package server

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/localaihub/hub-service/internal/handlers"
)

type Server struct {
	httpAddr string
	handler  *handlers.HubHandler
}

func NewServer(httpAddr string, handler *handlers.HubHandler) *Server {
	return &Server{
		httpAddr: httpAddr,
		handler:  handler,
	}
}

// Start serves until ctx is cancelled, then shuts down gracefully.
func (s *Server) Start(ctx context.Context) error {
	mux := http.NewServeMux()
	s.handler.RegisterRoutes(mux)

	srv := &http.Server{
		Addr:    s.httpAddr,
		Handler: mux,
	}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = srv.Shutdown(shutdownCtx)
	}()

	slog.Info("HTTP server starting",
		"addr", s.httpAddr,
		"endpoints", []string{"/generate", "/status", "/health", "/logs", "/metrics"})

	if err := srv.ListenAndServe(); !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}
