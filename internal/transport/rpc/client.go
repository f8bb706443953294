package rpc

import (
	"context"
	"errors"
	"sync"
	"time"

	"go.uber.org/zap"
	"google.golang.org/grpc"
	"google.golang.org/grpc/credentials/insecure"
	"google.golang.org/grpc/metadata"

	"github.com/goodnatureofminers/dsn-sequencer/internal/api"
	"github.com/goodnatureofminers/dsn-sequencer/internal/model"
	"github.com/goodnatureofminers/dsn-sequencer/pkg/sequencerv1"
)

// Client calls a remote sequencer. Calls are never retried.
type Client struct {
	conn    *grpc.ClientConn
	rpc     sequencerv1.SequencerServiceClient
	metrics Metrics
	logger  *zap.Logger

	dialOpts []grpc.DialOption
}

// ClientOption customizes a Client.
type ClientOption func(*Client)

// WithClientMetrics observes every call with m.
func WithClientMetrics(m Metrics) ClientOption {
	return func(c *Client) {
		c.metrics = m
	}
}

// WithDialOptions appends gRPC dial options used by Dial.
func WithDialOptions(opts ...grpc.DialOption) ClientOption {
	return func(c *Client) {
		c.dialOpts = append(c.dialOpts, opts...)
	}
}

// Dial creates a client for target over an insecure channel. The connection is
// established lazily.
func Dial(target string, logger *zap.Logger, opts ...ClientOption) (*Client, error) {
	c := newClient(logger, opts)
	dialOpts := append([]grpc.DialOption{grpc.WithTransportCredentials(insecure.NewCredentials())}, c.dialOpts...)
	conn, err := grpc.NewClient(target, dialOpts...)
	if err != nil {
		return nil, err
	}
	c.conn = conn
	c.rpc = sequencerv1.NewSequencerServiceClient(conn)
	return c, nil
}

// NewClient wraps an existing service client.
func NewClient(rpc sequencerv1.SequencerServiceClient, logger *zap.Logger, opts ...ClientOption) *Client {
	c := newClient(logger, opts)
	c.rpc = rpc
	return c
}

func newClient(logger *zap.Logger, opts []ClientOption) *Client {
	c := &Client{metrics: nopMetrics{}, logger: logger}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Close closes the connection created by Dial.
func (c *Client) Close() error {
	if c.conn == nil {
		return nil
	}
	return c.conn.Close()
}

// NewHandle returns a handle whose cursor starts after the remote head.
func (c *Client) NewHandle(ctx context.Context) (*Handle, error) {
	next := model.OriginID
	head, err := c.GetPreBlocksHead(ctx)
	switch {
	case err == nil:
		next = head.ID + 1
	case errors.Is(err, api.ErrNotFound):
	default:
		return nil, err
	}
	return c.NewHandleFrom(next), nil
}

// NewHandleFrom returns a handle whose first NextPreBlock returns header nextID.
func (c *Client) NewHandleFrom(nextID uint64) *Handle {
	return &Handle{client: c, next: nextID}
}

func (c *Client) SubmitTransaction(ctx context.Context, tx model.Transaction) (err error) {
	defer c.observe("submit_transaction", &err, time.Now())

	var trailer metadata.MD
	_, err = c.rpc.SubmitTransaction(ctx, &sequencerv1.SubmitTransactionRequest{
		Transaction: TransactionToWire(tx),
	}, grpc.Trailer(&trailer))
	return fromStatus(ctx, err, trailer)
}

func (c *Client) GetPreBlocksHead(ctx context.Context) (head model.PreBlockHeader, err error) {
	defer c.observe("get_pre_blocks_head", &err, time.Now())

	var trailer metadata.MD
	resp, err := c.rpc.GetPreBlocksHead(ctx, &sequencerv1.GetPreBlocksHeadRequest{}, grpc.Trailer(&trailer))
	if err != nil {
		return model.PreBlockHeader{}, fromStatus(ctx, err, trailer)
	}
	head, err = HeaderFromWire(resp.Header)
	if err != nil {
		return model.PreBlockHeader{}, api.Internal(err)
	}
	return head, nil
}

func (c *Client) GetPreBlocks(ctx context.Context, fromID, maxCount uint64) (blocks []model.PreBlock, err error) {
	defer c.observe("get_pre_blocks", &err, time.Now())

	var trailer metadata.MD
	resp, err := c.rpc.GetPreBlocks(ctx, &sequencerv1.GetPreBlocksRequest{
		FromID:   fromID,
		MaxCount: maxCount,
	}, grpc.Trailer(&trailer))
	if err != nil {
		return nil, fromStatus(ctx, err, trailer)
	}
	blocks = make([]model.PreBlock, 0, len(resp.PreBlocks))
	for _, wire := range resp.PreBlocks {
		block, err := PreBlockFromWire(wire)
		if err != nil {
			return nil, api.Internal(err)
		}
		blocks = append(blocks, block)
	}
	return blocks, nil
}

func (c *Client) ClearQueue(ctx context.Context) (err error) {
	defer c.observe("clear_queue", &err, time.Now())

	var trailer metadata.MD
	_, err = c.rpc.ClearQueue(ctx, &sequencerv1.ClearQueueRequest{}, grpc.Trailer(&trailer))
	return fromStatus(ctx, err, trailer)
}

func (c *Client) observe(operation string, err *error, started time.Time) {
	c.metrics.Observe(operation, *err, started)
}

var _ api.Node = (*Handle)(nil)

// Handle is a remote api.Node with a private cursor backed by its own stream.
type Handle struct {
	client *Client

	mu      sync.Mutex
	next    uint64
	results chan streamResult
	cancel  context.CancelFunc
}

type streamResult struct {
	header model.PreBlockHeader
	err    error
}

func (h *Handle) SubmitTransaction(ctx context.Context, tx model.Transaction) error {
	return h.client.SubmitTransaction(ctx, tx)
}

func (h *Handle) GetPreBlocksHead(ctx context.Context) (model.PreBlockHeader, error) {
	return h.client.GetPreBlocksHead(ctx)
}

func (h *Handle) GetPreBlocks(ctx context.Context, fromID, maxCount uint64) ([]model.PreBlock, error) {
	return h.client.GetPreBlocks(ctx, fromID, maxCount)
}

func (h *Handle) ClearQueue(ctx context.Context) error {
	return h.client.ClearQueue(ctx)
}

// NextPreBlock returns the next header from the handle's stream, opening it at the
// cursor on first use or after a failure.
func (h *Handle) NextPreBlock(ctx context.Context) (header model.PreBlockHeader, err error) {
	defer h.client.observe("next_pre_block", &err, time.Now())

	h.mu.Lock()
	defer h.mu.Unlock()

	if h.results == nil {
		if err := h.open(); err != nil {
			return model.PreBlockHeader{}, err
		}
	}

	select {
	case res := <-h.results:
		if res.err != nil {
			h.client.logger.Debug("pre-block stream ended", zap.Uint64("next_id", h.next), zap.Error(res.err))
			h.reset()
			return model.PreBlockHeader{}, res.err
		}
		h.next = res.header.ID + 1
		return res.header, nil
	case <-ctx.Done():
		return model.PreBlockHeader{}, ctx.Err()
	}
}

// Close ends the handle's stream.
func (h *Handle) Close() {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.reset()
}

func (h *Handle) open() error {
	ctx, cancel := context.WithCancel(context.Background())
	stream, err := h.client.rpc.SubscribePreBlocks(ctx, &sequencerv1.SubscribePreBlocksRequest{NextID: h.next})
	if err != nil {
		cancel()
		return fromStatus(context.Background(), err, nil)
	}

	results := make(chan streamResult)
	h.results, h.cancel = results, cancel
	go pump(ctx, stream, results)
	return nil
}

func (h *Handle) reset() {
	if h.cancel != nil {
		h.cancel()
	}
	h.results, h.cancel = nil, nil
}

// pump forwards stream messages until the first error, which is forwarded too.
func pump(ctx context.Context, stream grpc.ServerStreamingClient[sequencerv1.PreBlockHeader], results chan<- streamResult) {
	for {
		var res streamResult
		msg, err := stream.Recv()
		if err != nil {
			res.err = fromStatus(ctx, err, stream.Trailer())
		} else if res.header, err = HeaderFromWire(msg); err != nil {
			res.err = api.Internal(err)
		}

		select {
		case results <- res:
		case <-ctx.Done():
			return
		}
		if res.err != nil {
			return
		}
	}
}
