package rest

import (
	"context"
	"errors"
	"net"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/cors"
	"go.uber.org/zap"

	"github.com/goodnatureofminers/dsn-sequencer/internal/shutdown"
)

// Server is the HTTP front of the sequencer: REST routes, /metrics and CORS.
type Server struct {
	http   *http.Server
	logger *zap.Logger
}

// NewServer builds the HTTP server for addr.
func NewServer(addr string, seq Sequencer, logger *zap.Logger) (*Server, error) {
	gw, err := NewMux(seq, logger)
	if err != nil {
		return nil, err
	}

	mux := http.NewServeMux()
	mux.Handle("/", gw)
	mux.Handle("/metrics", promhttp.Handler())

	return &Server{
		http: &http.Server{
			Addr:              addr,
			Handler:           cors.Default().Handler(mux),
			ReadTimeout:       15 * time.Second,
			ReadHeaderTimeout: 5 * time.Second,
			WriteTimeout:      15 * time.Second,
			IdleTimeout:       60 * time.Second,
			MaxHeaderBytes:    http.DefaultMaxHeaderBytes,
		},
		logger: logger,
	}, nil
}

// Handler returns the root handler, for tests.
func (s *Server) Handler() http.Handler {
	return s.http.Handler
}

// Serve serves on lis until stop fires.
func (s *Server) Serve(lis net.Listener, stop shutdown.Receiver) error {
	done := make(chan struct{})
	defer close(done)
	go func() {
		select {
		case <-stop.Done():
		case <-done:
			return
		}
		s.logger.Info("Shutting down the http server")
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := s.http.Shutdown(ctx); err != nil {
			s.logger.Error("Failed to shutdown http server", zap.Error(err))
		}
	}()

	s.logger.Info("Starting HTTP server", zap.String("addr", lis.Addr().String()))
	if err := s.http.Serve(lis); !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

// ListenAndServe binds the configured address and serves until stop fires.
func (s *Server) ListenAndServe(stop shutdown.Receiver) error {
	lis, err := net.Listen("tcp", s.http.Addr)
	if err != nil {
		return err
	}
	return s.Serve(lis, stop)
}
