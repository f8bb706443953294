//go:build !zmq

package main

import (
	"context"
	"errors"

	"go.uber.org/zap"
)

func startNotifier(_ context.Context, addr string, _ headerSource, _ *zap.Logger) error {
	if addr == "" {
		return nil
	}
	return errors.New("zmq notifier requires a build with the zmq tag")
}
