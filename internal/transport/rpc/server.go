package rpc

import (
	"errors"
	"net"
	"strconv"
	"time"

	grpcMiddleware "github.com/grpc-ecosystem/go-grpc-middleware"
	grpcZap "github.com/grpc-ecosystem/go-grpc-middleware/logging/zap"
	grpcRecovery "github.com/grpc-ecosystem/go-grpc-middleware/recovery"
	grpcCtxTags "github.com/grpc-ecosystem/go-grpc-middleware/tags"
	grpcPrometheus "github.com/grpc-ecosystem/go-grpc-prometheus"
	"go.uber.org/zap"
	"google.golang.org/grpc"

	"github.com/goodnatureofminers/dsn-sequencer/internal/shutdown"
	"github.com/goodnatureofminers/dsn-sequencer/pkg/sequencerv1"
)

const (
	DefaultHost = "127.0.0.1"
	DefaultPort = 8998

	defaultGracePeriod = 10 * time.Second
)

// Config is the bind address of the server.
type Config struct {
	Host string `long:"host" env:"HOST" description:"rpc bind host" default:"127.0.0.1"`
	Port int    `long:"port" env:"PORT" description:"rpc bind port" default:"8998"`
}

// Addr returns host:port, falling back to the defaults for empty fields.
func (c Config) Addr() string {
	host, port := c.Host, c.Port
	if host == "" {
		host = DefaultHost
	}
	if port == 0 {
		port = DefaultPort
	}
	return net.JoinHostPort(host, strconv.Itoa(port))
}

// Server exposes a Sequencer over gRPC.
type Server struct {
	grpc        *grpc.Server
	logger      *zap.Logger
	gracePeriod time.Duration
}

// NewServer builds a gRPC server with the recovery, tags, prometheus and zap
// interceptors and registers the sequencer service on it.
func NewServer(seq Sequencer, stop shutdown.Receiver, logger *zap.Logger, opts ...grpc.ServerOption) *Server {
	unary := []grpc.UnaryServerInterceptor{
		grpcRecovery.UnaryServerInterceptor(),
		grpcCtxTags.UnaryServerInterceptor(),
		grpcPrometheus.UnaryServerInterceptor,
		grpcZap.UnaryServerInterceptor(logger),
	}
	stream := []grpc.StreamServerInterceptor{
		grpcRecovery.StreamServerInterceptor(),
		grpcCtxTags.StreamServerInterceptor(),
		grpcPrometheus.StreamServerInterceptor,
		grpcZap.StreamServerInterceptor(logger),
	}
	opts = append([]grpc.ServerOption{
		// Messages are protobuf wire compatible, so clients generated from
		// api/sequencer/v1/sequencer.proto may use the default proto subtype.
		grpc.ForceServerCodec(sequencerv1.Codec{}),
		grpc.UnaryInterceptor(grpcMiddleware.ChainUnaryServer(unary...)),
		grpc.StreamInterceptor(grpcMiddleware.ChainStreamServer(stream...)),
	}, opts...)

	server := grpc.NewServer(opts...)
	sequencerv1.RegisterSequencerServiceServer(server, NewHandler(seq, stop, logger))
	grpcPrometheus.Register(server)

	return &Server{grpc: server, logger: logger, gracePeriod: defaultGracePeriod}
}

// Serve accepts connections on lis until stop fires, then stops gracefully. Calls
// still running after the grace period are cut off.
func (s *Server) Serve(lis net.Listener, stop shutdown.Receiver) error {
	stopped := make(chan struct{})
	defer close(stopped)
	go func() {
		select {
		case <-stop.Done():
		case <-stopped:
			return
		}
		s.logger.Info("Shutting down gRPC server")
		done := make(chan struct{})
		go func() {
			s.grpc.GracefulStop()
			close(done)
		}()
		select {
		case <-done:
		case <-time.After(s.gracePeriod):
			s.logger.Warn("graceful stop timed out, closing remaining calls")
			s.grpc.Stop()
		}
	}()

	s.logger.Info("Starting gRPC server", zap.String("addr", lis.Addr().String()))
	if err := s.grpc.Serve(lis); err != nil && !errors.Is(err, grpc.ErrServerStopped) {
		return err
	}
	return nil
}

// ListenAndServe binds cfg and serves until stop fires.
func (s *Server) ListenAndServe(cfg Config, stop shutdown.Receiver) error {
	lis, err := net.Listen("tcp", cfg.Addr())
	if err != nil {
		return err
	}
	return s.Serve(lis, stop)
}
