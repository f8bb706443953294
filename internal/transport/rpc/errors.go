package rpc

import (
	"context"
	"errors"

	"go.uber.org/zap"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/metadata"
	"google.golang.org/grpc/status"

	"github.com/goodnatureofminers/dsn-sequencer/internal/api"
)

// errorKindTrailer marks statuses produced by the sequencer itself, as opposed to
// statuses synthesized by the transport.
const errorKindTrailer = "sequencer-error-kind"

var kindCodes = map[api.Kind]codes.Code{
	api.KindInternal: codes.Internal,
	api.KindNotFound: codes.NotFound,
	api.KindShutdown: codes.Unavailable,
}

func statusCode(err error) codes.Code {
	switch {
	case errors.Is(err, context.Canceled):
		return codes.Canceled
	case errors.Is(err, context.DeadlineExceeded):
		return codes.DeadlineExceeded
	}
	return kindCodes[api.KindOf(err)]
}

// toStatus converts an api error into a gRPC status and records its kind in the
// trailer of the call.
func (h *Handler) toStatus(ctx context.Context, err error) error {
	if err == nil {
		return nil
	}
	code := statusCode(err)
	if code != codes.Canceled && code != codes.DeadlineExceeded {
		if trailerErr := grpc.SetTrailer(ctx, kindTrailer(api.KindOf(err))); trailerErr != nil {
			h.logger.Debug("set error kind trailer", zap.Stringer("kind", api.KindOf(err)), zap.Error(trailerErr))
		}
	}
	return status.Error(code, err.Error())
}

func kindTrailer(kind api.Kind) metadata.MD {
	return metadata.Pairs(errorKindTrailer, kind.String())
}

// fromStatus maps a call failure back to an api error. Statuses without a kind
// trailer come from the transport and are Internal, except NotFound which only
// the service produces.
func fromStatus(ctx context.Context, err error, trailer metadata.MD) error {
	if err == nil {
		return nil
	}
	if ctxErr := ctx.Err(); ctxErr != nil {
		return ctxErr
	}

	st := status.Convert(err)
	if kinds := trailer.Get(errorKindTrailer); len(kinds) > 0 {
		switch kinds[0] {
		case api.KindNotFound.String():
			return api.NotFoundf("%s", st.Message())
		case api.KindShutdown.String():
			return api.Shutdown(st.Message())
		}
		return api.Internal(err)
	}
	if st.Code() == codes.NotFound {
		return api.NotFoundf("%s", st.Message())
	}
	return api.Internal(err)
}
