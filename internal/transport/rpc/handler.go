package rpc

import (
	"context"

	"go.uber.org/zap"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"github.com/goodnatureofminers/dsn-sequencer/internal/api"
	"github.com/goodnatureofminers/dsn-sequencer/internal/shutdown"
	"github.com/goodnatureofminers/dsn-sequencer/pkg/sequencerv1"
)

// Handler implements SequencerServiceServer over a Sequencer.
type Handler struct {
	sequencerv1.UnimplementedSequencerServiceServer

	seq    Sequencer
	stop   shutdown.Receiver
	logger *zap.Logger
}

// NewHandler returns a Handler. Open streams end when stop fires.
func NewHandler(seq Sequencer, stop shutdown.Receiver, logger *zap.Logger) *Handler {
	return &Handler{seq: seq, stop: stop, logger: logger}
}

func (h *Handler) SubmitTransaction(ctx context.Context, req *sequencerv1.SubmitTransactionRequest) (*sequencerv1.SubmitTransactionResponse, error) {
	if req.Transaction == nil {
		return nil, status.Error(codes.InvalidArgument, "transaction is required")
	}
	if err := h.seq.SubmitTransaction(ctx, TransactionFromWire(req.Transaction)); err != nil {
		return nil, h.toStatus(ctx, err)
	}
	return &sequencerv1.SubmitTransactionResponse{}, nil
}

func (h *Handler) GetPreBlocksHead(ctx context.Context, _ *sequencerv1.GetPreBlocksHeadRequest) (*sequencerv1.GetPreBlocksHeadResponse, error) {
	head, err := h.seq.GetPreBlocksHead(ctx)
	if err != nil {
		return nil, h.toStatus(ctx, err)
	}
	header, err := HeaderToWire(head)
	if err != nil {
		return nil, h.toStatus(ctx, api.Internal(err))
	}
	return &sequencerv1.GetPreBlocksHeadResponse{Header: header}, nil
}

func (h *Handler) GetPreBlocks(ctx context.Context, req *sequencerv1.GetPreBlocksRequest) (*sequencerv1.GetPreBlocksResponse, error) {
	blocks, err := h.seq.GetPreBlocks(ctx, req.FromID, req.MaxCount)
	if err != nil {
		return nil, h.toStatus(ctx, err)
	}
	resp := &sequencerv1.GetPreBlocksResponse{PreBlocks: make([]*sequencerv1.PreBlock, 0, len(blocks))}
	for _, block := range blocks {
		wire, err := PreBlockToWire(block)
		if err != nil {
			return nil, h.toStatus(ctx, api.Internal(err))
		}
		resp.PreBlocks = append(resp.PreBlocks, wire)
	}
	return resp, nil
}

func (h *Handler) ClearQueue(ctx context.Context, _ *sequencerv1.ClearQueueRequest) (*sequencerv1.ClearQueueResponse, error) {
	if err := h.seq.ClearQueue(ctx); err != nil {
		return nil, h.toStatus(ctx, err)
	}
	return &sequencerv1.ClearQueueResponse{}, nil
}

// SubscribePreBlocks streams every header from req.NextID on until the client
// leaves, the engine stops or shutdown fires.
func (h *Handler) SubscribePreBlocks(req *sequencerv1.SubscribePreBlocksRequest, stream grpc.ServerStreamingServer[sequencerv1.PreBlockHeader]) error {
	ctx, cancel := context.WithCancel(stream.Context())
	defer cancel()
	go func() {
		select {
		case <-h.stop.Done():
			cancel()
		case <-ctx.Done():
		}
	}()

	cursor := h.seq.Cursor(req.NextID)
	for {
		header, err := cursor.NextPreBlock(ctx)
		if err != nil {
			if h.stop.Fired() {
				err = api.Shutdown("server shutting down")
			}
			stream.SetTrailer(kindTrailer(api.KindOf(err)))
			return status.Error(statusCode(err), err.Error())
		}
		wire, err := HeaderToWire(header)
		if err != nil {
			err = api.Internal(err)
			stream.SetTrailer(kindTrailer(api.KindInternal))
			return status.Error(codes.Internal, err.Error())
		}
		if err := stream.Send(wire); err != nil {
			h.logger.Debug("subscriber gone", zap.Uint64("id", header.ID), zap.Error(err))
			return err
		}
	}
}
