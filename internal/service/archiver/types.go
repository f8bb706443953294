package archiver

import (
	"context"
	"time"

	"github.com/goodnatureofminers/dsn-sequencer/internal/model"
)

//go:generate mockgen -source=$GOFILE -destination=mocks_test.go -package=$GOPACKAGE

type (
	Source interface {
		GetPreBlocksHead(ctx context.Context) (model.PreBlockHeader, error)
		GetPreBlocks(ctx context.Context, fromID, maxCount uint64) ([]model.PreBlock, error)
	}
	Follower interface {
		NextPreBlock(ctx context.Context) (model.PreBlockHeader, error)
		Close()
	}
	Repository interface {
		MaxPreBlockID(ctx context.Context) (uint64, bool, error)
		InsertPreBlocks(ctx context.Context, blocks []model.PreBlock) error
		InsertTransactions(ctx context.Context, blocks []model.PreBlock) error
	}
	Writer interface {
		Start(ctx context.Context)
		Stop() error
		Write(ctx context.Context, block model.PreBlock) error
	}
	Metrics interface {
		ObserveCatchUp(err error, preBlocks int, started time.Time)
		ObserveFollow(err error, id uint64)
		ObserveGap()
	}
)

// FollowFunc opens a follower whose first header has id nextID.
type FollowFunc func(nextID uint64) Follower
