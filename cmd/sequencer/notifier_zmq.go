//go:build zmq

package main

import (
	"context"
	"encoding/binary"
	"errors"
	"fmt"

	"github.com/pebbe/zmq4"
	"go.uber.org/zap"

	"github.com/goodnatureofminers/dsn-sequencer/internal/api"
)

// startNotifier publishes the id of every sealed header on addr until ctx is done
// or the engine shuts down.
func startNotifier(ctx context.Context, addr string, headers headerSource, logger *zap.Logger) error {
	if addr == "" {
		return nil
	}

	pub, err := zmq4.NewSocket(zmq4.PUB)
	if err != nil {
		return fmt.Errorf("create zmq socket: %w", err)
	}
	if err := pub.Bind(addr); err != nil {
		pub.Close()
		return fmt.Errorf("bind zmq %s: %w", addr, err)
	}
	logger.Info("zmq notifier bound", zap.String("addr", addr))

	go func() {
		defer pub.Close()
		id := make([]byte, 8)
		for {
			header, err := headers.NextPreBlock(ctx)
			if err != nil {
				if ctx.Err() == nil && !errors.Is(err, api.ErrShutdown) {
					logger.Error("zmq notifier stopped", zap.Error(err))
				}
				return
			}
			binary.BigEndian.PutUint64(id, header.ID)
			if _, err := pub.SendMessage(notifierTopic, id); err != nil {
				logger.Warn("zmq send failed", zap.Uint64("id", header.ID), zap.Error(err))
			}
		}
	}()
	return nil
}
