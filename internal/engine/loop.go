package engine

import (
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/goodnatureofminers/dsn-sequencer/internal/api"
	"github.com/goodnatureofminers/dsn-sequencer/internal/encoding"
	"github.com/goodnatureofminers/dsn-sequencer/internal/model"
	"github.com/goodnatureofminers/dsn-sequencer/internal/storage"
)

func (e *Engine) run() {
	defer e.finish()

	var tick <-chan time.Time
	if e.cfg.SealInterval > 0 {
		ticker := time.NewTicker(e.cfg.SealInterval)
		defer ticker.Stop()
		tick = ticker.C
	}

	for {
		select {
		case <-e.stopping:
			return
		default:
		}

		select {
		case <-e.stopping:
			return
		case tx := <-e.submitCh:
			e.enqueue(tx)
		case req := <-e.requests:
			e.drainSubmissions()
			req.reply <- e.serve(req)
		case <-tick:
			e.drainSubmissions()
			switch {
			case len(e.queue) > 0:
				_, _ = e.seal(TriggerInterval)
			case e.cfg.SealEmpty:
				_, _ = e.seal(TriggerHeartbeat)
			}
		}
	}
}

func (e *Engine) serve(req request) response {
	select {
	case <-e.stopping:
		return response{err: api.Shutdown("engine is draining")}
	default:
	}

	switch req.kind {
	case requestSeal:
		header, err := e.seal(TriggerExplicit)
		return response{header: header, err: err}
	case requestClear:
		return response{dropped: e.clear()}
	default:
		return response{err: api.Internal(fmt.Errorf("unknown request kind %d", req.kind))}
	}
}

func (e *Engine) enqueue(tx model.Transaction) {
	e.queue = append(e.queue, tx)
	for len(e.queue) >= e.cfg.MaxBatchSize {
		if _, err := e.seal(TriggerSize); err != nil {
			break
		}
	}
	e.metrics.SetQueueDepth(len(e.queue))
}

// drainSubmissions moves buffered submissions into the queue so that a seal or a
// clear observes every transaction submitted before the request.
func (e *Engine) drainSubmissions() {
	for {
		select {
		case tx := <-e.submitCh:
			e.enqueue(tx)
		default:
			return
		}
	}
}

// seal is the only place ids are allocated. The id advances after the batch commits.
func (e *Engine) seal(trigger string) (header model.PreBlockHeader, err error) {
	started := time.Now()
	n := min(len(e.queue), e.cfg.MaxBatchSize)
	txs := make([]model.Transaction, n)
	copy(txs, e.queue[:n])

	block := model.PreBlock{
		Header: model.PreBlockHeader{
			ID: e.nextID,
			Metadata: model.PreBlockMetadata{
				Author:    e.cfg.Author,
				Timestamp: time.UnixMilli(e.clock.Now().UnixMilli()).UTC(),
			},
		},
		Transactions: txs,
	}
	defer func() {
		e.metrics.ObserveSeal(trigger, err, n, block.Size(), started)
	}()

	if err := e.persist(block); err != nil {
		e.logger.Error("seal pre-block",
			zap.Uint64("id", block.Header.ID),
			zap.String("trigger", trigger),
			zap.Int("transactions", n),
			zap.Error(err),
		)
		return model.PreBlockHeader{}, api.Internal(err)
	}

	if n == len(e.queue) {
		e.queue = nil
	} else {
		e.queue = e.queue[n:]
	}
	e.nextID++
	e.cache.Add(block.Header.ID, block)
	head := block.Header
	e.head.Store(&head)
	e.feed.Publish(head)
	e.metrics.SetHead(head.ID)
	e.metrics.SetQueueDepth(len(e.queue))

	fields := []zap.Field{
		zap.Uint64("id", head.ID),
		zap.String("trigger", trigger),
		zap.Int("transactions", n),
		zap.Int("bytes", block.Size()),
	}
	if n == 0 {
		e.logger.Debug("sealed empty pre-block", fields...)
	} else {
		e.logger.Debug("sealed pre-block", append(fields, zap.Stringer("first_tx", txs[0].Hash()))...)
	}
	return head, nil
}

func (e *Engine) persist(block model.PreBlock) error {
	encodedBlock, err := encoding.EncodePreBlock(block)
	if err != nil {
		return fmt.Errorf("encode pre-block %d: %w", block.Header.ID, err)
	}
	encodedHead, err := encoding.EncodeHeader(block.Header)
	if err != nil {
		return fmt.Errorf("encode head %d: %w", block.Header.ID, err)
	}

	batch := storage.NewBatch().
		Insert(ScopePreBlocks, PreBlockKey(block.Header.ID), encodedBlock).
		Insert(ScopeMeta, headKey, encodedHead)
	if err := e.backend.Write(batch); err != nil {
		return fmt.Errorf("write pre-block %d: %w", block.Header.ID, err)
	}
	return nil
}

func (e *Engine) clear() int {
	dropped := len(e.queue)
	e.queue = nil
	e.metrics.ObserveClear(dropped)
	e.metrics.SetQueueDepth(0)
	e.logger.Info("queue cleared", zap.Int("dropped", dropped))
	return dropped
}

func (e *Engine) finish() {
drain:
	for {
		select {
		case tx := <-e.submitCh:
			e.queue = append(e.queue, tx)
		default:
			break drain
		}
	}

	if dropped := len(e.queue); dropped > 0 {
		e.logger.Warn("dropping pending transactions", zap.Int("dropped", dropped))
		e.metrics.ObserveDrop(dropped)
	}
	e.queue = nil
	e.metrics.SetQueueDepth(0)
	e.feed.Close()
	close(e.loopDone)
}
