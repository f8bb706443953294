package main

import (
	"context"

	"github.com/goodnatureofminers/dsn-sequencer/internal/model"
)

const notifierTopic = "preblock"

type headerSource interface {
	NextPreBlock(ctx context.Context) (model.PreBlockHeader, error)
}
