package archiver

import "time"

const (
	defaultChunkSize     uint64 = 256
	defaultWorkers              = 4
	defaultWindowChunks         = 64
	defaultFlushSize            = 512
	defaultFlushInterval        = time.Second
	defaultWriteRPS             = 20
	defaultWriteAttempts        = 5
	defaultRetryDelay           = 2 * time.Second
)

// Config tunes catch-up concurrency and archive writes. Zero values take defaults.
type Config struct {
	ChunkSize     uint64        `long:"chunk-size" env:"CHUNK_SIZE" description:"Pre-blocks per catch-up range request"`
	Workers       int           `long:"workers" env:"WORKERS" description:"Concurrent catch-up range requests"`
	FlushSize     int           `long:"flush-size" env:"FLUSH_SIZE" description:"Pre-blocks per archive insert"`
	FlushInterval time.Duration `long:"flush-interval" env:"FLUSH_INTERVAL" description:"Maximum delay before buffered pre-blocks are inserted"`
	WriteRPS      int           `long:"write-rps" env:"WRITE_RPS" description:"Archive inserts per second"`
	WriteAttempts int           `long:"write-attempts" env:"WRITE_ATTEMPTS" description:"Attempts per archive insert before the archiver exits"`
	RetryDelay    time.Duration `long:"retry-delay" env:"RETRY_DELAY" description:"Delay before reconnecting after a source error"`
}

func (c Config) withDefaults() Config {
	if c.ChunkSize == 0 {
		c.ChunkSize = defaultChunkSize
	}
	if c.Workers <= 0 {
		c.Workers = defaultWorkers
	}
	if c.FlushSize <= 0 {
		c.FlushSize = defaultFlushSize
	}
	if c.FlushInterval <= 0 {
		c.FlushInterval = defaultFlushInterval
	}
	if c.WriteRPS <= 0 {
		c.WriteRPS = defaultWriteRPS
	}
	if c.WriteAttempts <= 0 {
		c.WriteAttempts = defaultWriteAttempts
	}
	if c.RetryDelay <= 0 {
		c.RetryDelay = defaultRetryDelay
	}
	return c
}
