// Package combatserver exposes encounter sessions over gRPC.
//
// Messages are google.protobuf.Struct values carrying the JSON form of the request
// and response types in wire.go.
package combatserver

import (
	"context"

	"google.golang.org/grpc"
	"google.golang.org/protobuf/types/known/structpb"
)

// ServiceName is the fully qualified gRPC service name.
const ServiceName = "geoquest.combat.v1.CombatService"

const (
	methodStartEncounter   = "/" + ServiceName + "/StartEncounter"
	methodSubmitIntent     = "/" + ServiceName + "/SubmitIntent"
	methodGetEncounter     = "/" + ServiceName + "/GetEncounter"
	methodAbandonEncounter = "/" + ServiceName + "/AbandonEncounter"
)

// CombatServiceServer is the server API for CombatService.
type CombatServiceServer interface {
	StartEncounter(context.Context, *structpb.Struct) (*structpb.Struct, error)
	SubmitIntent(context.Context, *structpb.Struct) (*structpb.Struct, error)
	GetEncounter(context.Context, *structpb.Struct) (*structpb.Struct, error)
	AbandonEncounter(context.Context, *structpb.Struct) (*structpb.Struct, error)
}

// RegisterCombatServiceServer registers srv on s.
func RegisterCombatServiceServer(s grpc.ServiceRegistrar, srv CombatServiceServer) {
	s.RegisterService(&CombatServiceDesc, srv)
}

// CombatServiceDesc is the grpc.ServiceDesc for CombatService.
var CombatServiceDesc = grpc.ServiceDesc{
	ServiceName: ServiceName,
	HandlerType: (*CombatServiceServer)(nil),
	Methods: []grpc.MethodDesc{
		{MethodName: "StartEncounter", Handler: unaryHandler(methodStartEncounter, CombatServiceServer.StartEncounter)},
		{MethodName: "SubmitIntent", Handler: unaryHandler(methodSubmitIntent, CombatServiceServer.SubmitIntent)},
		{MethodName: "GetEncounter", Handler: unaryHandler(methodGetEncounter, CombatServiceServer.GetEncounter)},
		{MethodName: "AbandonEncounter", Handler: unaryHandler(methodAbandonEncounter, CombatServiceServer.AbandonEncounter)},
	},
	Streams:  []grpc.StreamDesc{},
	Metadata: "geoquest/combat/v1/combat.proto",
}

type unaryMethod func(CombatServiceServer, context.Context, *structpb.Struct) (*structpb.Struct, error)

func unaryHandler(fullMethod string, call unaryMethod) grpc.MethodHandler {
	return func(srv any, ctx context.Context, dec func(any) error, interceptor grpc.UnaryServerInterceptor) (any, error) {
		in := new(structpb.Struct)
		if err := dec(in); err != nil {
			return nil, err
		}
		if interceptor == nil {
			return call(srv.(CombatServiceServer), ctx, in)
		}
		info := &grpc.UnaryServerInfo{Server: srv, FullMethod: fullMethod}
		handler := func(ctx context.Context, req any) (any, error) {
			return call(srv.(CombatServiceServer), ctx, req.(*structpb.Struct))
		}
		return interceptor(ctx, in, info, handler)
	}
}

// CombatServiceClient is the client API for CombatService.
type CombatServiceClient interface {
	StartEncounter(ctx context.Context, in *structpb.Struct, opts ...grpc.CallOption) (*structpb.Struct, error)
	SubmitIntent(ctx context.Context, in *structpb.Struct, opts ...grpc.CallOption) (*structpb.Struct, error)
	GetEncounter(ctx context.Context, in *structpb.Struct, opts ...grpc.CallOption) (*structpb.Struct, error)
	AbandonEncounter(ctx context.Context, in *structpb.Struct, opts ...grpc.CallOption) (*structpb.Struct, error)
}

type combatServiceClient struct {
	cc grpc.ClientConnInterface
}

// NewCombatServiceClient returns a raw client over cc.
func NewCombatServiceClient(cc grpc.ClientConnInterface) CombatServiceClient {
	return &combatServiceClient{cc: cc}
}

func (c *combatServiceClient) invoke(ctx context.Context, method string, in *structpb.Struct, opts []grpc.CallOption) (*structpb.Struct, error) {
	out := new(structpb.Struct)
	if err := c.cc.Invoke(ctx, method, in, out, opts...); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *combatServiceClient) StartEncounter(ctx context.Context, in *structpb.Struct, opts ...grpc.CallOption) (*structpb.Struct, error) {
	return c.invoke(ctx, methodStartEncounter, in, opts)
}

func (c *combatServiceClient) SubmitIntent(ctx context.Context, in *structpb.Struct, opts ...grpc.CallOption) (*structpb.Struct, error) {
	return c.invoke(ctx, methodSubmitIntent, in, opts)
}

func (c *combatServiceClient) GetEncounter(ctx context.Context, in *structpb.Struct, opts ...grpc.CallOption) (*structpb.Struct, error) {
	return c.invoke(ctx, methodGetEncounter, in, opts)
}

func (c *combatServiceClient) AbandonEncounter(ctx context.Context, in *structpb.Struct, opts ...grpc.CallOption) (*structpb.Struct, error) {
	return c.invoke(ctx, methodAbandonEncounter, in, opts)
}
