package sequencerv1

import (
	"context"

	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

const (
	SequencerService_SubmitTransaction_FullMethodName  = "/dsn.sequencer.v1.SequencerService/SubmitTransaction"
	SequencerService_GetPreBlocksHead_FullMethodName   = "/dsn.sequencer.v1.SequencerService/GetPreBlocksHead"
	SequencerService_GetPreBlocks_FullMethodName       = "/dsn.sequencer.v1.SequencerService/GetPreBlocks"
	SequencerService_ClearQueue_FullMethodName         = "/dsn.sequencer.v1.SequencerService/ClearQueue"
	SequencerService_SubscribePreBlocks_FullMethodName = "/dsn.sequencer.v1.SequencerService/SubscribePreBlocks"
)

// SequencerServiceClient is the client API for SequencerService.
type SequencerServiceClient interface {
	SubmitTransaction(ctx context.Context, in *SubmitTransactionRequest, opts ...grpc.CallOption) (*SubmitTransactionResponse, error)
	GetPreBlocksHead(ctx context.Context, in *GetPreBlocksHeadRequest, opts ...grpc.CallOption) (*GetPreBlocksHeadResponse, error)
	GetPreBlocks(ctx context.Context, in *GetPreBlocksRequest, opts ...grpc.CallOption) (*GetPreBlocksResponse, error)
	ClearQueue(ctx context.Context, in *ClearQueueRequest, opts ...grpc.CallOption) (*ClearQueueResponse, error)
	SubscribePreBlocks(ctx context.Context, in *SubscribePreBlocksRequest, opts ...grpc.CallOption) (grpc.ServerStreamingClient[PreBlockHeader], error)
}

type sequencerServiceClient struct {
	cc grpc.ClientConnInterface
}

// NewSequencerServiceClient returns a client that selects the sequencer codec on every call.
func NewSequencerServiceClient(cc grpc.ClientConnInterface) SequencerServiceClient {
	return &sequencerServiceClient{cc}
}

func callOptions(opts []grpc.CallOption) []grpc.CallOption {
	return append([]grpc.CallOption{grpc.CallContentSubtype(CodecName)}, opts...)
}

func (c *sequencerServiceClient) SubmitTransaction(ctx context.Context, in *SubmitTransactionRequest, opts ...grpc.CallOption) (*SubmitTransactionResponse, error) {
	out := new(SubmitTransactionResponse)
	if err := c.cc.Invoke(ctx, SequencerService_SubmitTransaction_FullMethodName, in, out, callOptions(opts)...); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *sequencerServiceClient) GetPreBlocksHead(ctx context.Context, in *GetPreBlocksHeadRequest, opts ...grpc.CallOption) (*GetPreBlocksHeadResponse, error) {
	out := new(GetPreBlocksHeadResponse)
	if err := c.cc.Invoke(ctx, SequencerService_GetPreBlocksHead_FullMethodName, in, out, callOptions(opts)...); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *sequencerServiceClient) GetPreBlocks(ctx context.Context, in *GetPreBlocksRequest, opts ...grpc.CallOption) (*GetPreBlocksResponse, error) {
	out := new(GetPreBlocksResponse)
	if err := c.cc.Invoke(ctx, SequencerService_GetPreBlocks_FullMethodName, in, out, callOptions(opts)...); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *sequencerServiceClient) ClearQueue(ctx context.Context, in *ClearQueueRequest, opts ...grpc.CallOption) (*ClearQueueResponse, error) {
	out := new(ClearQueueResponse)
	if err := c.cc.Invoke(ctx, SequencerService_ClearQueue_FullMethodName, in, out, callOptions(opts)...); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *sequencerServiceClient) SubscribePreBlocks(ctx context.Context, in *SubscribePreBlocksRequest, opts ...grpc.CallOption) (grpc.ServerStreamingClient[PreBlockHeader], error) {
	stream, err := c.cc.NewStream(ctx, &SequencerService_ServiceDesc.Streams[0], SequencerService_SubscribePreBlocks_FullMethodName, callOptions(opts)...)
	if err != nil {
		return nil, err
	}
	x := &grpc.GenericClientStream[SubscribePreBlocksRequest, PreBlockHeader]{ClientStream: stream}
	if err := x.ClientStream.SendMsg(in); err != nil {
		return nil, err
	}
	if err := x.ClientStream.CloseSend(); err != nil {
		return nil, err
	}
	return x, nil
}

// SequencerServiceServer is the server API for SequencerService.
type SequencerServiceServer interface {
	SubmitTransaction(context.Context, *SubmitTransactionRequest) (*SubmitTransactionResponse, error)
	GetPreBlocksHead(context.Context, *GetPreBlocksHeadRequest) (*GetPreBlocksHeadResponse, error)
	GetPreBlocks(context.Context, *GetPreBlocksRequest) (*GetPreBlocksResponse, error)
	ClearQueue(context.Context, *ClearQueueRequest) (*ClearQueueResponse, error)
	SubscribePreBlocks(*SubscribePreBlocksRequest, grpc.ServerStreamingServer[PreBlockHeader]) error
}

// UnimplementedSequencerServiceServer can be embedded to have forward compatible implementations.
type UnimplementedSequencerServiceServer struct{}

func (UnimplementedSequencerServiceServer) SubmitTransaction(context.Context, *SubmitTransactionRequest) (*SubmitTransactionResponse, error) {
	return nil, status.Errorf(codes.Unimplemented, "method SubmitTransaction not implemented")
}
func (UnimplementedSequencerServiceServer) GetPreBlocksHead(context.Context, *GetPreBlocksHeadRequest) (*GetPreBlocksHeadResponse, error) {
	return nil, status.Errorf(codes.Unimplemented, "method GetPreBlocksHead not implemented")
}
func (UnimplementedSequencerServiceServer) GetPreBlocks(context.Context, *GetPreBlocksRequest) (*GetPreBlocksResponse, error) {
	return nil, status.Errorf(codes.Unimplemented, "method GetPreBlocks not implemented")
}
func (UnimplementedSequencerServiceServer) ClearQueue(context.Context, *ClearQueueRequest) (*ClearQueueResponse, error) {
	return nil, status.Errorf(codes.Unimplemented, "method ClearQueue not implemented")
}
func (UnimplementedSequencerServiceServer) SubscribePreBlocks(*SubscribePreBlocksRequest, grpc.ServerStreamingServer[PreBlockHeader]) error {
	return status.Errorf(codes.Unimplemented, "method SubscribePreBlocks not implemented")
}

// RegisterSequencerServiceServer registers srv on s.
func RegisterSequencerServiceServer(s grpc.ServiceRegistrar, srv SequencerServiceServer) {
	s.RegisterService(&SequencerService_ServiceDesc, srv)
}

func _SequencerService_SubmitTransaction_Handler(srv interface{}, ctx context.Context, dec func(interface{}) error, interceptor grpc.UnaryServerInterceptor) (interface{}, error) {
	in := new(SubmitTransactionRequest)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(SequencerServiceServer).SubmitTransaction(ctx, in)
	}
	info := &grpc.UnaryServerInfo{Server: srv, FullMethod: SequencerService_SubmitTransaction_FullMethodName}
	handler := func(ctx context.Context, req interface{}) (interface{}, error) {
		return srv.(SequencerServiceServer).SubmitTransaction(ctx, req.(*SubmitTransactionRequest))
	}
	return interceptor(ctx, in, info, handler)
}

func _SequencerService_GetPreBlocksHead_Handler(srv interface{}, ctx context.Context, dec func(interface{}) error, interceptor grpc.UnaryServerInterceptor) (interface{}, error) {
	in := new(GetPreBlocksHeadRequest)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(SequencerServiceServer).GetPreBlocksHead(ctx, in)
	}
	info := &grpc.UnaryServerInfo{Server: srv, FullMethod: SequencerService_GetPreBlocksHead_FullMethodName}
	handler := func(ctx context.Context, req interface{}) (interface{}, error) {
		return srv.(SequencerServiceServer).GetPreBlocksHead(ctx, req.(*GetPreBlocksHeadRequest))
	}
	return interceptor(ctx, in, info, handler)
}

func _SequencerService_GetPreBlocks_Handler(srv interface{}, ctx context.Context, dec func(interface{}) error, interceptor grpc.UnaryServerInterceptor) (interface{}, error) {
	in := new(GetPreBlocksRequest)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(SequencerServiceServer).GetPreBlocks(ctx, in)
	}
	info := &grpc.UnaryServerInfo{Server: srv, FullMethod: SequencerService_GetPreBlocks_FullMethodName}
	handler := func(ctx context.Context, req interface{}) (interface{}, error) {
		return srv.(SequencerServiceServer).GetPreBlocks(ctx, req.(*GetPreBlocksRequest))
	}
	return interceptor(ctx, in, info, handler)
}

func _SequencerService_ClearQueue_Handler(srv interface{}, ctx context.Context, dec func(interface{}) error, interceptor grpc.UnaryServerInterceptor) (interface{}, error) {
	in := new(ClearQueueRequest)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(SequencerServiceServer).ClearQueue(ctx, in)
	}
	info := &grpc.UnaryServerInfo{Server: srv, FullMethod: SequencerService_ClearQueue_FullMethodName}
	handler := func(ctx context.Context, req interface{}) (interface{}, error) {
		return srv.(SequencerServiceServer).ClearQueue(ctx, req.(*ClearQueueRequest))
	}
	return interceptor(ctx, in, info, handler)
}

func _SequencerService_SubscribePreBlocks_Handler(srv interface{}, stream grpc.ServerStream) error {
	m := new(SubscribePreBlocksRequest)
	if err := stream.RecvMsg(m); err != nil {
		return err
	}
	return srv.(SequencerServiceServer).SubscribePreBlocks(m, &grpc.GenericServerStream[SubscribePreBlocksRequest, PreBlockHeader]{ServerStream: stream})
}

// SequencerService_ServiceDesc is the grpc.ServiceDesc for SequencerService.
var SequencerService_ServiceDesc = grpc.ServiceDesc{
	ServiceName: "dsn.sequencer.v1.SequencerService",
	HandlerType: (*SequencerServiceServer)(nil),
	Methods: []grpc.MethodDesc{
		{MethodName: "SubmitTransaction", Handler: _SequencerService_SubmitTransaction_Handler},
		{MethodName: "GetPreBlocksHead", Handler: _SequencerService_GetPreBlocksHead_Handler},
		{MethodName: "GetPreBlocks", Handler: _SequencerService_GetPreBlocks_Handler},
		{MethodName: "ClearQueue", Handler: _SequencerService_ClearQueue_Handler},
	},
	Streams: []grpc.StreamDesc{
		{
			StreamName:    "SubscribePreBlocks",
			Handler:       _SequencerService_SubscribePreBlocks_Handler,
			ServerStreams: true,
		},
	},
	Metadata: "dsn/sequencer/v1/sequencer.proto",
}
