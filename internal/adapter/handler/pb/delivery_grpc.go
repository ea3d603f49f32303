package pb

import (
	"context"

	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

const ServiceName = "delivery.v1.DeliveryService"

type DeliveryServiceServer interface {
	RegisterRestaurant(context.Context, *RegisterRestaurantRequest) (*RoleResponse, error)
	RegisterCustomer(context.Context, *Empty) (*RoleResponse, error)
	UserType(context.Context, *Empty) (*RoleResponse, error)
	Deposit(context.Context, *AmountRequest) (*BalanceResponse, error)
	Withdraw(context.Context, *AmountRequest) (*BalanceResponse, error)
	Balance(context.Context, *Empty) (*BalanceResponse, error)
	NewFood(context.Context, *NewFoodRequest) (*IDResponse, error)
	GetFood(context.Context, *IDRequest) (*FoodResponse, error)
	NewOrder(context.Context, *NewOrderRequest) (*IDResponse, error)
	GetOrder(context.Context, *IDRequest) (*OrderResponse, error)
	ListOrders(context.Context, *Empty) (*ListOrdersResponse, error)
	OrderStatus(context.Context, *IDRequest) (*StatusResponse, error)
	OrderRestaurant(context.Context, *IDRequest) (*IdentityResponse, error)
	OrderCustomer(context.Context, *IDRequest) (*IdentityResponse, error)
	OrderPrepared(context.Context, *IDRequest) (*StatusResponse, error)
	FinishOrder(context.Context, *IDRequest) (*StatusResponse, error)
	Owner(context.Context, *Empty) (*IdentityResponse, error)
	TransferOwnership(context.Context, *TransferOwnershipRequest) (*IdentityResponse, error)
}

// UnimplementedDeliveryServiceServer answers every method with Unimplemented.
type UnimplementedDeliveryServiceServer struct{}

func unimplemented(method string) error {
	return status.Errorf(codes.Unimplemented, "method %s not implemented", method)
}

func (UnimplementedDeliveryServiceServer) RegisterRestaurant(context.Context, *RegisterRestaurantRequest) (*RoleResponse, error) {
	return nil, unimplemented("RegisterRestaurant")
}
func (UnimplementedDeliveryServiceServer) RegisterCustomer(context.Context, *Empty) (*RoleResponse, error) {
	return nil, unimplemented("RegisterCustomer")
}
func (UnimplementedDeliveryServiceServer) UserType(context.Context, *Empty) (*RoleResponse, error) {
	return nil, unimplemented("UserType")
}
func (UnimplementedDeliveryServiceServer) Deposit(context.Context, *AmountRequest) (*BalanceResponse, error) {
	return nil, unimplemented("Deposit")
}
func (UnimplementedDeliveryServiceServer) Withdraw(context.Context, *AmountRequest) (*BalanceResponse, error) {
	return nil, unimplemented("Withdraw")
}
func (UnimplementedDeliveryServiceServer) Balance(context.Context, *Empty) (*BalanceResponse, error) {
	return nil, unimplemented("Balance")
}
func (UnimplementedDeliveryServiceServer) NewFood(context.Context, *NewFoodRequest) (*IDResponse, error) {
	return nil, unimplemented("NewFood")
}
func (UnimplementedDeliveryServiceServer) GetFood(context.Context, *IDRequest) (*FoodResponse, error) {
	return nil, unimplemented("GetFood")
}
func (UnimplementedDeliveryServiceServer) NewOrder(context.Context, *NewOrderRequest) (*IDResponse, error) {
	return nil, unimplemented("NewOrder")
}
func (UnimplementedDeliveryServiceServer) GetOrder(context.Context, *IDRequest) (*OrderResponse, error) {
	return nil, unimplemented("GetOrder")
}
func (UnimplementedDeliveryServiceServer) ListOrders(context.Context, *Empty) (*ListOrdersResponse, error) {
	return nil, unimplemented("ListOrders")
}
func (UnimplementedDeliveryServiceServer) OrderStatus(context.Context, *IDRequest) (*StatusResponse, error) {
	return nil, unimplemented("OrderStatus")
}
func (UnimplementedDeliveryServiceServer) OrderRestaurant(context.Context, *IDRequest) (*IdentityResponse, error) {
	return nil, unimplemented("OrderRestaurant")
}
func (UnimplementedDeliveryServiceServer) OrderCustomer(context.Context, *IDRequest) (*IdentityResponse, error) {
	return nil, unimplemented("OrderCustomer")
}
func (UnimplementedDeliveryServiceServer) OrderPrepared(context.Context, *IDRequest) (*StatusResponse, error) {
	return nil, unimplemented("OrderPrepared")
}
func (UnimplementedDeliveryServiceServer) FinishOrder(context.Context, *IDRequest) (*StatusResponse, error) {
	return nil, unimplemented("FinishOrder")
}
func (UnimplementedDeliveryServiceServer) Owner(context.Context, *Empty) (*IdentityResponse, error) {
	return nil, unimplemented("Owner")
}
func (UnimplementedDeliveryServiceServer) TransferOwnership(context.Context, *TransferOwnershipRequest) (*IdentityResponse, error) {
	return nil, unimplemented("TransferOwnership")
}

func RegisterDeliveryServiceServer(s grpc.ServiceRegistrar, srv DeliveryServiceServer) {
	s.RegisterService(&DeliveryService_ServiceDesc, srv)
}

func unaryHandler[Req, Resp any](method string, call func(DeliveryServiceServer, context.Context, *Req) (*Resp, error)) grpc.MethodDesc {
	return grpc.MethodDesc{
		MethodName: method,
		Handler: func(srv any, ctx context.Context, dec func(any) error, interceptor grpc.UnaryServerInterceptor) (any, error) {
			in := new(Req)
			if err := dec(in); err != nil {
				return nil, err
			}
			if interceptor == nil {
				return call(srv.(DeliveryServiceServer), ctx, in)
			}
			info := &grpc.UnaryServerInfo{
				Server:     srv,
				FullMethod: "/" + ServiceName + "/" + method,
			}
			handler := func(ctx context.Context, req any) (any, error) {
				return call(srv.(DeliveryServiceServer), ctx, req.(*Req))
			}
			return interceptor(ctx, in, info, handler)
		},
	}
}

var DeliveryService_ServiceDesc = grpc.ServiceDesc{
	ServiceName: ServiceName,
	HandlerType: (*DeliveryServiceServer)(nil),
	Methods: []grpc.MethodDesc{
		unaryHandler("RegisterRestaurant", DeliveryServiceServer.RegisterRestaurant),
		unaryHandler("RegisterCustomer", DeliveryServiceServer.RegisterCustomer),
		unaryHandler("UserType", DeliveryServiceServer.UserType),
		unaryHandler("Deposit", DeliveryServiceServer.Deposit),
		unaryHandler("Withdraw", DeliveryServiceServer.Withdraw),
		unaryHandler("Balance", DeliveryServiceServer.Balance),
		unaryHandler("NewFood", DeliveryServiceServer.NewFood),
		unaryHandler("GetFood", DeliveryServiceServer.GetFood),
		unaryHandler("NewOrder", DeliveryServiceServer.NewOrder),
		unaryHandler("GetOrder", DeliveryServiceServer.GetOrder),
		unaryHandler("ListOrders", DeliveryServiceServer.ListOrders),
		unaryHandler("OrderStatus", DeliveryServiceServer.OrderStatus),
		unaryHandler("OrderRestaurant", DeliveryServiceServer.OrderRestaurant),
		unaryHandler("OrderCustomer", DeliveryServiceServer.OrderCustomer),
		unaryHandler("OrderPrepared", DeliveryServiceServer.OrderPrepared),
		unaryHandler("FinishOrder", DeliveryServiceServer.FinishOrder),
		unaryHandler("Owner", DeliveryServiceServer.Owner),
		unaryHandler("TransferOwnership", DeliveryServiceServer.TransferOwnership),
	},
	Streams:  []grpc.StreamDesc{},
	Metadata: "delivery.proto",
}

type DeliveryServiceClient interface {
	RegisterRestaurant(ctx context.Context, in *RegisterRestaurantRequest, opts ...grpc.CallOption) (*RoleResponse, error)
	RegisterCustomer(ctx context.Context, in *Empty, opts ...grpc.CallOption) (*RoleResponse, error)
	UserType(ctx context.Context, in *Empty, opts ...grpc.CallOption) (*RoleResponse, error)
	Deposit(ctx context.Context, in *AmountRequest, opts ...grpc.CallOption) (*BalanceResponse, error)
	Withdraw(ctx context.Context, in *AmountRequest, opts ...grpc.CallOption) (*BalanceResponse, error)
	Balance(ctx context.Context, in *Empty, opts ...grpc.CallOption) (*BalanceResponse, error)
	NewFood(ctx context.Context, in *NewFoodRequest, opts ...grpc.CallOption) (*IDResponse, error)
	GetFood(ctx context.Context, in *IDRequest, opts ...grpc.CallOption) (*FoodResponse, error)
	NewOrder(ctx context.Context, in *NewOrderRequest, opts ...grpc.CallOption) (*IDResponse, error)
	GetOrder(ctx context.Context, in *IDRequest, opts ...grpc.CallOption) (*OrderResponse, error)
	ListOrders(ctx context.Context, in *Empty, opts ...grpc.CallOption) (*ListOrdersResponse, error)
	OrderStatus(ctx context.Context, in *IDRequest, opts ...grpc.CallOption) (*StatusResponse, error)
	OrderRestaurant(ctx context.Context, in *IDRequest, opts ...grpc.CallOption) (*IdentityResponse, error)
	OrderCustomer(ctx context.Context, in *IDRequest, opts ...grpc.CallOption) (*IdentityResponse, error)
	OrderPrepared(ctx context.Context, in *IDRequest, opts ...grpc.CallOption) (*StatusResponse, error)
	FinishOrder(ctx context.Context, in *IDRequest, opts ...grpc.CallOption) (*StatusResponse, error)
	Owner(ctx context.Context, in *Empty, opts ...grpc.CallOption) (*IdentityResponse, error)
	TransferOwnership(ctx context.Context, in *TransferOwnershipRequest, opts ...grpc.CallOption) (*IdentityResponse, error)
}

type deliveryServiceClient struct {
	cc grpc.ClientConnInterface
}

func NewDeliveryServiceClient(cc grpc.ClientConnInterface) DeliveryServiceClient {
	return &deliveryServiceClient{cc}
}

func invoke[Resp any](ctx context.Context, cc grpc.ClientConnInterface, method string, in any, opts []grpc.CallOption) (*Resp, error) {
	out := new(Resp)
	opts = append([]grpc.CallOption{grpc.CallContentSubtype(CodecName)}, opts...)
	if err := cc.Invoke(ctx, "/"+ServiceName+"/"+method, in, out, opts...); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *deliveryServiceClient) RegisterRestaurant(ctx context.Context, in *RegisterRestaurantRequest, opts ...grpc.CallOption) (*RoleResponse, error) {
	return invoke[RoleResponse](ctx, c.cc, "RegisterRestaurant", in, opts)
}
func (c *deliveryServiceClient) RegisterCustomer(ctx context.Context, in *Empty, opts ...grpc.CallOption) (*RoleResponse, error) {
	return invoke[RoleResponse](ctx, c.cc, "RegisterCustomer", in, opts)
}
func (c *deliveryServiceClient) UserType(ctx context.Context, in *Empty, opts ...grpc.CallOption) (*RoleResponse, error) {
	return invoke[RoleResponse](ctx, c.cc, "UserType", in, opts)
}
func (c *deliveryServiceClient) Deposit(ctx context.Context, in *AmountRequest, opts ...grpc.CallOption) (*BalanceResponse, error) {
	return invoke[BalanceResponse](ctx, c.cc, "Deposit", in, opts)
}
func (c *deliveryServiceClient) Withdraw(ctx context.Context, in *AmountRequest, opts ...grpc.CallOption) (*BalanceResponse, error) {
	return invoke[BalanceResponse](ctx, c.cc, "Withdraw", in, opts)
}
func (c *deliveryServiceClient) Balance(ctx context.Context, in *Empty, opts ...grpc.CallOption) (*BalanceResponse, error) {
	return invoke[BalanceResponse](ctx, c.cc, "Balance", in, opts)
}
func (c *deliveryServiceClient) NewFood(ctx context.Context, in *NewFoodRequest, opts ...grpc.CallOption) (*IDResponse, error) {
	return invoke[IDResponse](ctx, c.cc, "NewFood", in, opts)
}
func (c *deliveryServiceClient) GetFood(ctx context.Context, in *IDRequest, opts ...grpc.CallOption) (*FoodResponse, error) {
	return invoke[FoodResponse](ctx, c.cc, "GetFood", in, opts)
}
func (c *deliveryServiceClient) NewOrder(ctx context.Context, in *NewOrderRequest, opts ...grpc.CallOption) (*IDResponse, error) {
	return invoke[IDResponse](ctx, c.cc, "NewOrder", in, opts)
}
func (c *deliveryServiceClient) GetOrder(ctx context.Context, in *IDRequest, opts ...grpc.CallOption) (*OrderResponse, error) {
	return invoke[OrderResponse](ctx, c.cc, "GetOrder", in, opts)
}
func (c *deliveryServiceClient) ListOrders(ctx context.Context, in *Empty, opts ...grpc.CallOption) (*ListOrdersResponse, error) {
	return invoke[ListOrdersResponse](ctx, c.cc, "ListOrders", in, opts)
}
func (c *deliveryServiceClient) OrderStatus(ctx context.Context, in *IDRequest, opts ...grpc.CallOption) (*StatusResponse, error) {
	return invoke[StatusResponse](ctx, c.cc, "OrderStatus", in, opts)
}
func (c *deliveryServiceClient) OrderRestaurant(ctx context.Context, in *IDRequest, opts ...grpc.CallOption) (*IdentityResponse, error) {
	return invoke[IdentityResponse](ctx, c.cc, "OrderRestaurant", in, opts)
}
func (c *deliveryServiceClient) OrderCustomer(ctx context.Context, in *IDRequest, opts ...grpc.CallOption) (*IdentityResponse, error) {
	return invoke[IdentityResponse](ctx, c.cc, "OrderCustomer", in, opts)
}
func (c *deliveryServiceClient) OrderPrepared(ctx context.Context, in *IDRequest, opts ...grpc.CallOption) (*StatusResponse, error) {
	return invoke[StatusResponse](ctx, c.cc, "OrderPrepared", in, opts)
}
func (c *deliveryServiceClient) FinishOrder(ctx context.Context, in *IDRequest, opts ...grpc.CallOption) (*StatusResponse, error) {
	return invoke[StatusResponse](ctx, c.cc, "FinishOrder", in, opts)
}
func (c *deliveryServiceClient) Owner(ctx context.Context, in *Empty, opts ...grpc.CallOption) (*IdentityResponse, error) {
	return invoke[IdentityResponse](ctx, c.cc, "Owner", in, opts)
}
func (c *deliveryServiceClient) TransferOwnership(ctx context.Context, in *TransferOwnershipRequest, opts ...grpc.CallOption) (*IdentityResponse, error) {
	return invoke[IdentityResponse](ctx, c.cc, "TransferOwnership", in, opts)
}
