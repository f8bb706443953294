// Package rest serves the sequencer over HTTP/JSON next to the gRPC endpoint.
package rest

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"time"

	gwruntime "github.com/grpc-ecosystem/grpc-gateway/v2/runtime"
	"go.uber.org/zap"
	"google.golang.org/grpc/codes"

	"github.com/goodnatureofminers/dsn-sequencer/internal/api"
	"github.com/goodnatureofminers/dsn-sequencer/internal/model"
)

const (
	defaultMaxCount = 100
	maxBodyBytes    = 1 << 20
)

// Sequencer is the engine surface served over REST.
type Sequencer interface {
	api.Transactions
	GetPreBlocksHead(ctx context.Context) (model.PreBlockHeader, error)
	GetPreBlocks(ctx context.Context, fromID, maxCount uint64) ([]model.PreBlock, error)
	ClearQueue(ctx context.Context) error
}

type headerJSON struct {
	ID        uint64    `json:"id"`
	Author    uint64    `json:"author"`
	Timestamp time.Time `json:"timestamp"`
}

type preBlockJSON struct {
	Header       headerJSON `json:"header"`
	Transactions [][]byte   `json:"transactions"`
}

type transactionJSON struct {
	Data []byte `json:"data"`
}

type errorJSON struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

// NewMux registers the sequencer routes on a grpc-gateway mux.
func NewMux(seq Sequencer, logger *zap.Logger) (*gwruntime.ServeMux, error) {
	h := &handler{seq: seq, logger: logger}
	mux := gwruntime.NewServeMux()

	routes := []struct {
		method, path string
		fn           gwruntime.HandlerFunc
	}{
		{http.MethodGet, "/v1/preblocks/head", h.head},
		{http.MethodGet, "/v1/preblocks", h.preBlocks},
		{http.MethodPost, "/v1/transactions", h.submit},
		{http.MethodPost, "/v1/queue/clear", h.clear},
	}
	for _, r := range routes {
		if err := mux.HandlePath(r.method, r.path, r.fn); err != nil {
			return nil, fmt.Errorf("register %s %s: %w", r.method, r.path, err)
		}
	}
	return mux, nil
}

type handler struct {
	seq    Sequencer
	logger *zap.Logger
}

func (h *handler) head(w http.ResponseWriter, r *http.Request, _ map[string]string) {
	head, err := h.seq.GetPreBlocksHead(r.Context())
	if err != nil {
		h.writeError(w, err)
		return
	}
	h.writeJSON(w, http.StatusOK, toHeaderJSON(head))
}

func (h *handler) preBlocks(w http.ResponseWriter, r *http.Request, _ map[string]string) {
	query := r.URL.Query()
	fromID, err := parseUint(query.Get("from_id"), 0)
	if err != nil {
		h.writeJSON(w, http.StatusBadRequest, errorJSON{Code: int(codes.InvalidArgument), Message: "from_id: " + err.Error()})
		return
	}
	maxCount, err := parseUint(query.Get("max_count"), defaultMaxCount)
	if err != nil {
		h.writeJSON(w, http.StatusBadRequest, errorJSON{Code: int(codes.InvalidArgument), Message: "max_count: " + err.Error()})
		return
	}

	blocks, err := h.seq.GetPreBlocks(r.Context(), fromID, maxCount)
	if err != nil {
		h.writeError(w, err)
		return
	}
	out := make([]preBlockJSON, 0, len(blocks))
	for _, block := range blocks {
		txs := make([][]byte, 0, len(block.Transactions))
		for _, tx := range block.Transactions {
			txs = append(txs, tx.Bytes())
		}
		out = append(out, preBlockJSON{Header: toHeaderJSON(block.Header), Transactions: txs})
	}
	h.writeJSON(w, http.StatusOK, out)
}

func (h *handler) submit(w http.ResponseWriter, r *http.Request, _ map[string]string) {
	var body transactionJSON
	if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes)).Decode(&body); err != nil {
		h.writeJSON(w, http.StatusBadRequest, errorJSON{Code: int(codes.InvalidArgument), Message: "decode body: " + err.Error()})
		return
	}
	if err := h.seq.SubmitTransaction(r.Context(), model.NewTransaction(body.Data)); err != nil {
		h.writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusAccepted)
}

func (h *handler) clear(w http.ResponseWriter, r *http.Request, _ map[string]string) {
	if err := h.seq.ClearQueue(r.Context()); err != nil {
		h.writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *handler) writeError(w http.ResponseWriter, err error) {
	code := codes.Internal
	switch {
	case errors.Is(err, api.ErrNotFound):
		code = codes.NotFound
	case errors.Is(err, api.ErrShutdown):
		code = codes.Unavailable
	case errors.Is(err, context.Canceled):
		code = codes.Canceled
	case errors.Is(err, context.DeadlineExceeded):
		code = codes.DeadlineExceeded
	}
	if code == codes.Internal {
		h.logger.Error("rest request failed", zap.Error(err))
	}
	h.writeJSON(w, gwruntime.HTTPStatusFromCode(code), errorJSON{Code: int(code), Message: err.Error()})
}

func (h *handler) writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		h.logger.Debug("write response", zap.Error(err))
	}
}

func toHeaderJSON(h model.PreBlockHeader) headerJSON {
	return headerJSON{ID: h.ID, Author: h.Metadata.Author, Timestamp: h.Metadata.Timestamp}
}

func parseUint(raw string, fallback uint64) (uint64, error) {
	if raw == "" {
		return fallback, nil
	}
	return strconv.ParseUint(raw, 10, 64)
}
