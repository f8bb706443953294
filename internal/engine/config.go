package engine

import (
	"fmt"
	"time"
)

const (
	defaultMaxBatchSize      = 1024
	defaultBroadcastCapacity = 256
	defaultSubmitBuffer      = 1024
	defaultCacheSize         = 512
)

// Config controls sealing and buffering.
type Config struct {
	// Author is written into the metadata of every sealed pre-block.
	Author uint64 `long:"author" env:"AUTHOR" description:"node id written into sealed pre-blocks"`
	// MaxBatchSize is the most transactions a pre-block carries. Reaching it seals immediately.
	MaxBatchSize int `long:"max-batch-size" env:"MAX_BATCH_SIZE" default:"1024" description:"transactions per pre-block"`
	// SealInterval seals the pending queue on every tick. Zero disables the ticker.
	SealInterval time.Duration `long:"seal-interval" env:"SEAL_INTERVAL" default:"500ms" description:"seal the pending queue on this interval, 0 disables"`
	// SealEmpty makes interval ticks seal header-only pre-blocks when nothing is pending.
	SealEmpty bool `long:"seal-empty" env:"SEAL_EMPTY" description:"seal header-only pre-blocks on idle ticks"`
	// BroadcastCapacity bounds the sealed header ring shared by handles.
	BroadcastCapacity int `long:"broadcast-capacity" env:"BROADCAST_CAPACITY" default:"256" description:"sealed headers kept for lagging subscribers"`
	// SubmitBuffer is the capacity of the submission channel.
	SubmitBuffer int `long:"submit-buffer" env:"SUBMIT_BUFFER" default:"1024" description:"submission channel capacity"`
	// CacheSize bounds the decoded pre-block cache.
	CacheSize int `long:"cache-size" env:"CACHE_SIZE" default:"512" description:"decoded pre-blocks kept in memory"`
}

func (c Config) withDefaults() Config {
	if c.MaxBatchSize == 0 {
		c.MaxBatchSize = defaultMaxBatchSize
	}
	if c.BroadcastCapacity == 0 {
		c.BroadcastCapacity = defaultBroadcastCapacity
	}
	if c.SubmitBuffer == 0 {
		c.SubmitBuffer = defaultSubmitBuffer
	}
	if c.CacheSize == 0 {
		c.CacheSize = defaultCacheSize
	}
	return c
}

// Validate reports configuration values the engine cannot run with.
func (c Config) Validate() error {
	switch {
	case c.MaxBatchSize < 0:
		return fmt.Errorf("max batch size must be positive, got %d", c.MaxBatchSize)
	case c.SealInterval < 0:
		return fmt.Errorf("seal interval must not be negative, got %s", c.SealInterval)
	case c.BroadcastCapacity < 0:
		return fmt.Errorf("broadcast capacity must be positive, got %d", c.BroadcastCapacity)
	case c.SubmitBuffer < 0:
		return fmt.Errorf("submit buffer must not be negative, got %d", c.SubmitBuffer)
	case c.CacheSize < 0:
		return fmt.Errorf("cache size must be positive, got %d", c.CacheSize)
	}
	return nil
}
