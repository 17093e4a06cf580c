package accommodationpb

import (
	"context"

	"google.golang.org/grpc"
)

const serviceName = "accommodation.v1.AccommodationService"

type AccommodationServiceClient interface {
	GetAccommodationInfo(ctx context.Context, in *GetAccommodationInfoRequest, opts ...grpc.CallOption) (*GetAccommodationInfoResponse, error)
	ValidateAndCalculatePrice(ctx context.Context, in *ValidateAndCalculatePriceRequest, opts ...grpc.CallOption) (*ValidateAndCalculatePriceResponse, error)
}

type accommodationServiceClient struct {
	cc grpc.ClientConnInterface
}

func NewAccommodationServiceClient(cc grpc.ClientConnInterface) AccommodationServiceClient {
	return &accommodationServiceClient{cc: cc}
}

func (c *accommodationServiceClient) GetAccommodationInfo(ctx context.Context, in *GetAccommodationInfoRequest, opts ...grpc.CallOption) (*GetAccommodationInfoResponse, error) {
	out := new(GetAccommodationInfoResponse)
	err := c.cc.Invoke(ctx, "/"+serviceName+"/GetAccommodationInfo", in, out, opts...)
	if err != nil {
		return nil, err
	}
	return out, nil
}

func (c *accommodationServiceClient) ValidateAndCalculatePrice(ctx context.Context, in *ValidateAndCalculatePriceRequest, opts ...grpc.CallOption) (*ValidateAndCalculatePriceResponse, error) {
	out := new(ValidateAndCalculatePriceResponse)
	err := c.cc.Invoke(ctx, "/"+serviceName+"/ValidateAndCalculatePrice", in, out, opts...)
	if err != nil {
		return nil, err
	}
	return out, nil
}

type AccommodationServiceServer interface {
	GetAccommodationInfo(ctx context.Context, in *GetAccommodationInfoRequest) (*GetAccommodationInfoResponse, error)
	ValidateAndCalculatePrice(ctx context.Context, in *ValidateAndCalculatePriceRequest) (*ValidateAndCalculatePriceResponse, error)
}

func RegisterAccommodationServiceServer(s grpc.ServiceRegistrar, srv AccommodationServiceServer) {
	s.RegisterService(&accommodationServiceDesc, srv)
}

func getAccommodationInfoHandler(srv interface{}, ctx context.Context, dec func(interface{}) error, interceptor grpc.UnaryServerInterceptor) (interface{}, error) {
	in := new(GetAccommodationInfoRequest)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(AccommodationServiceServer).GetAccommodationInfo(ctx, in)
	}
	info := &grpc.UnaryServerInfo{
		Server:     srv,
		FullMethod: "/" + serviceName + "/GetAccommodationInfo",
	}
	handler := func(ctx context.Context, req interface{}) (interface{}, error) {
		return srv.(AccommodationServiceServer).GetAccommodationInfo(ctx, req.(*GetAccommodationInfoRequest))
	}
	return interceptor(ctx, in, info, handler)
}

func validateAndCalculatePriceHandler(srv interface{}, ctx context.Context, dec func(interface{}) error, interceptor grpc.UnaryServerInterceptor) (interface{}, error) {
	in := new(ValidateAndCalculatePriceRequest)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(AccommodationServiceServer).ValidateAndCalculatePrice(ctx, in)
	}
	info := &grpc.UnaryServerInfo{
		Server:     srv,
		FullMethod: "/" + serviceName + "/ValidateAndCalculatePrice",
	}
	handler := func(ctx context.Context, req interface{}) (interface{}, error) {
		return srv.(AccommodationServiceServer).ValidateAndCalculatePrice(ctx, req.(*ValidateAndCalculatePriceRequest))
	}
	return interceptor(ctx, in, info, handler)
}

var accommodationServiceDesc = grpc.ServiceDesc{
	ServiceName: serviceName,
	HandlerType: (*AccommodationServiceServer)(nil),
	Methods: []grpc.MethodDesc{
		{
			MethodName: "GetAccommodationInfo",
			Handler:    getAccommodationInfoHandler,
		},
		{
			MethodName: "ValidateAndCalculatePrice",
			Handler:    validateAndCalculatePriceHandler,
		},
	},
	Streams:  []grpc.StreamDesc{},
	Metadata: "proto/accommodation.proto",
}
