package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"syscall"

	grpcZap "github.com/grpc-ecosystem/go-grpc-middleware/logging/zap"
	"github.com/jessevdk/go-flags"
	"go.uber.org/zap"

	"github.com/goodnatureofminers/dsn-sequencer/internal/engine"
	"github.com/goodnatureofminers/dsn-sequencer/internal/metrics"
	"github.com/goodnatureofminers/dsn-sequencer/internal/shutdown"
	"github.com/goodnatureofminers/dsn-sequencer/internal/storage"
	"github.com/goodnatureofminers/dsn-sequencer/internal/storage/badger"
	"github.com/goodnatureofminers/dsn-sequencer/internal/storage/bolt"
	"github.com/goodnatureofminers/dsn-sequencer/internal/storage/leveldb"
	"github.com/goodnatureofminers/dsn-sequencer/internal/storage/memory"
	"github.com/goodnatureofminers/dsn-sequencer/internal/transport/rest"
	"github.com/goodnatureofminers/dsn-sequencer/internal/transport/rpc"
)

var config struct {
	Storage struct {
		Kind string `long:"kind" env:"KIND" description:"storage backend" default:"leveldb" choice:"memory" choice:"leveldb" choice:"badger" choice:"bolt"`
		Dir  string `long:"dir" env:"DIR" description:"storage directory" default:"data"`
	} `group:"storage" namespace:"storage" env-namespace:"SEQUENCER_STORAGE"`
	Engine   engine.Config `group:"engine" namespace:"engine" env-namespace:"SEQUENCER_ENGINE"`
	RPC      rpc.Config    `group:"rpc" namespace:"rpc" env-namespace:"SEQUENCER_RPC"`
	RestAddr string        `long:"rest-addr" env:"SEQUENCER_REST_ADDR" description:"rest addr" default:":8999"`
	ZMQAddr  string        `long:"zmq-addr" env:"SEQUENCER_ZMQ_ADDR" description:"ZeroMQ PUB endpoint for sealed headers"`
}

func main() {
	logger, err := zap.NewDevelopment()
	if err != nil {
		panic("can't initialize zap logger: " + err.Error())
	}
	defer func() {
		_ = logger.Sync()
	}()
	grpcZap.ReplaceGrpcLoggerV2(logger)
	if _, err := flags.ParseArgs(&config, os.Args); err != nil {
		var ferr *flags.Error
		if errors.As(err, &ferr) && ferr.Type == flags.ErrHelp {
			return
		}
		logger.Fatal("Failed to parse arguments", zap.Error(err))
	}

	coord := shutdown.New()
	coord.FireOnSignal(context.Background(), logger, os.Interrupt, syscall.SIGTERM)

	if err := run(coord, logger); err != nil {
		logger.Fatal("sequencer stopped with error", zap.Error(err))
	}
	logger.Info("sequencer stopped")
}

func run(coord *shutdown.Coordinator, logger *zap.Logger) (err error) {
	backend, err := openBackend(config.Storage.Kind, config.Storage.Dir, logger)
	if err != nil {
		return err
	}
	defer func() {
		if closeErr := backend.Close(); closeErr != nil {
			err = errors.Join(err, fmt.Errorf("close storage: %w", closeErr))
		}
	}()

	e, err := engine.New(
		storage.NewObserved(backend, metrics.NewStorage(config.Storage.Kind)),
		coord.Subscribe(),
		logger.Named("engine"),
		config.Engine,
		engine.WithMetrics(metrics.NewEngine(strconv.FormatUint(config.Engine.Author, 10))),
	)
	if err != nil {
		return err
	}
	defer func() {
		err = errors.Join(err, e.Close())
	}()

	ctx, cancel := coord.Context(context.Background())
	defer cancel()

	if err := startNotifier(ctx, config.ZMQAddr, e.NewHandle(), logger.Named("notifier")); err != nil {
		coord.Fire()
		return err
	}

	restServer, err := rest.NewServer(config.RestAddr, e, logger.Named("rest"))
	if err != nil {
		coord.Fire()
		return err
	}
	rpcServer := rpc.NewServer(rpc.FromEngine(e), coord.Subscribe(), logger.Named("rpc"))

	errCh := make(chan error, 2)
	go func() {
		errCh <- rpcServer.ListenAndServe(config.RPC, coord.Subscribe())
	}()
	go func() {
		errCh <- restServer.ListenAndServe(coord.Subscribe())
	}()

	var serveErr error
	for range 2 {
		if err := <-errCh; err != nil {
			logger.Error("server failed", zap.Error(err))
			serveErr = errors.Join(serveErr, err)
			coord.Fire()
		}
	}
	return serveErr
}

func openBackend(kind, dir string, logger *zap.Logger) (storage.Backend, error) {
	if kind == "memory" {
		logger.Warn("using in-memory storage, sealed pre-blocks are lost on exit")
		return memory.New(), nil
	}
	if err := os.MkdirAll(dir, 0o750); err != nil {
		return nil, fmt.Errorf("create storage dir: %w", err)
	}

	var (
		backend storage.Backend
		err     error
	)
	switch kind {
	case "leveldb":
		backend, err = leveldb.OpenFile(filepath.Join(dir, "leveldb"))
	case "badger":
		backend, err = badger.Open(filepath.Join(dir, "badger"), logger.Named("badger"))
	case "bolt":
		backend, err = bolt.Open(filepath.Join(dir, "sequencer.db"))
	default:
		return nil, fmt.Errorf("unknown storage kind %q", kind)
	}
	if err != nil {
		return nil, fmt.Errorf("open %s storage: %w", kind, err)
	}
	return backend, nil
}
