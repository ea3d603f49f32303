package handler

import (
	"context"
	"time"

	"github.com/samber/lo"
	"go.uber.org/zap"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/metadata"
	"google.golang.org/grpc/status"

	"github.com/rl1809/food-delivery/internal/adapter/handler/pb"
	"github.com/rl1809/food-delivery/internal/core/domain"
	"github.com/rl1809/food-delivery/internal/core/service"
)

const (
	IdentityMetadataKey  = "x-identity"
	RequestIDMetadataKey = "x-request-id"
)

type callerContextKey struct{}

type GRPCHandler struct {
	pb.UnimplementedDeliveryServiceServer
	deliveryService *service.DeliveryService
}

func NewGRPCHandler(deliveryService *service.DeliveryService) *GRPCHandler {
	return &GRPCHandler{deliveryService: deliveryService}
}

// NewGRPCServer builds a server with the delivery service registered behind
// the identity and logging interceptors.
func NewGRPCServer(deliveryService *service.DeliveryService, log *zap.Logger) *grpc.Server {
	server := grpc.NewServer(grpc.ChainUnaryInterceptor(
		LoggingInterceptor(log),
		IdentityInterceptor(),
	))
	pb.RegisterDeliveryServiceServer(server, NewGRPCHandler(deliveryService))
	return server
}

// IdentityInterceptor rejects calls without an x-identity metadata entry.
func IdentityInterceptor() grpc.UnaryServerInterceptor {
	return func(ctx context.Context, req any, info *grpc.UnaryServerInfo, handler grpc.UnaryHandler) (any, error) {
		caller := firstMetadata(ctx, IdentityMetadataKey)
		if caller == "" {
			return nil, status.Error(codes.Unauthenticated, IdentityMetadataKey+" metadata is required")
		}
		return handler(context.WithValue(ctx, callerContextKey{}, domain.Identity(caller)), req)
	}
}

func LoggingInterceptor(log *zap.Logger) grpc.UnaryServerInterceptor {
	return func(ctx context.Context, req any, info *grpc.UnaryServerInfo, handler grpc.UnaryHandler) (any, error) {
		start := time.Now()
		resp, err := handler(ctx, req)
		code := status.Code(err)
		fields := []zap.Field{
			zap.String("method", info.FullMethod),
			zap.String("code", code.String()),
			zap.Duration("duration", time.Since(start)),
		}
		if code == codes.Internal {
			log.Error("grpc request", append(fields, zap.Error(err))...)
		} else {
			log.Info("grpc request", fields...)
		}
		return resp, err
	}
}

func (h *GRPCHandler) RegisterRestaurant(ctx context.Context, req *pb.RegisterRestaurantRequest) (*pb.RoleResponse, error) {
	caller := grpcCaller(ctx)
	err := h.idempotent(ctx, func() error {
		return h.deliveryService.RegisterRestaurant(caller, req.GetName())
	})
	if err != nil {
		return nil, toStatus(err)
	}
	return h.roleResponse(caller), nil
}

func (h *GRPCHandler) RegisterCustomer(ctx context.Context, _ *pb.Empty) (*pb.RoleResponse, error) {
	caller := grpcCaller(ctx)
	err := h.idempotent(ctx, func() error {
		return h.deliveryService.RegisterCustomer(caller)
	})
	if err != nil {
		return nil, toStatus(err)
	}
	return h.roleResponse(caller), nil
}

func (h *GRPCHandler) UserType(ctx context.Context, _ *pb.Empty) (*pb.RoleResponse, error) {
	caller := grpcCaller(ctx)
	return h.roleResponse(caller), nil
}

func (h *GRPCHandler) Deposit(ctx context.Context, req *pb.AmountRequest) (*pb.BalanceResponse, error) {
	caller := grpcCaller(ctx)
	err := h.idempotent(ctx, func() error {
		return h.deliveryService.Deposit(caller, domain.Amount(req.GetAmount()))
	})
	if err != nil {
		return nil, toStatus(err)
	}
	return h.balanceResponse(caller), nil
}

func (h *GRPCHandler) Withdraw(ctx context.Context, req *pb.AmountRequest) (*pb.BalanceResponse, error) {
	caller := grpcCaller(ctx)
	err := h.idempotent(ctx, func() error {
		return h.deliveryService.Withdraw(ctx, caller, domain.Amount(req.GetAmount()))
	})
	if err != nil {
		return nil, toStatus(err)
	}
	return h.balanceResponse(caller), nil
}

func (h *GRPCHandler) Balance(ctx context.Context, _ *pb.Empty) (*pb.BalanceResponse, error) {
	return h.balanceResponse(grpcCaller(ctx)), nil
}

func (h *GRPCHandler) NewFood(ctx context.Context, req *pb.NewFoodRequest) (*pb.IDResponse, error) {
	var foodID uint64
	err := h.idempotent(ctx, func() (err error) {
		foodID, err = h.deliveryService.NewFood(grpcCaller(ctx), req.GetName(), domain.Amount(req.GetPrice()))
		return err
	})
	if err != nil {
		return nil, toStatus(err)
	}
	return &pb.IDResponse{Id: foodID}, nil
}

func (h *GRPCHandler) GetFood(ctx context.Context, req *pb.IDRequest) (*pb.FoodResponse, error) {
	food, err := h.deliveryService.Food(req.GetId())
	if err != nil {
		return nil, toStatus(err)
	}
	return &pb.FoodResponse{
		Id:    food.ID,
		Owner: string(food.Owner),
		Name:  food.Name,
		Price: uint64(food.Price),
	}, nil
}

func (h *GRPCHandler) NewOrder(ctx context.Context, req *pb.NewOrderRequest) (*pb.IDResponse, error) {
	var orderID uint64
	err := h.idempotent(ctx, func() (err error) {
		orderID, err = h.deliveryService.NewOrder(grpcCaller(ctx), req.GetFoodId())
		return err
	})
	if err != nil {
		return nil, toStatus(err)
	}
	return &pb.IDResponse{Id: orderID}, nil
}

func (h *GRPCHandler) GetOrder(ctx context.Context, req *pb.IDRequest) (*pb.OrderResponse, error) {
	order, err := h.deliveryService.Order(req.GetId())
	if err != nil {
		return nil, toStatus(err)
	}
	return orderResponse(order), nil
}

func (h *GRPCHandler) ListOrders(ctx context.Context, _ *pb.Empty) (*pb.ListOrdersResponse, error) {
	orders := h.deliveryService.OrdersOf(grpcCaller(ctx))
	return &pb.ListOrdersResponse{
		Orders: lo.Map(orders, func(o domain.Order, _ int) *pb.OrderResponse {
			return orderResponse(o)
		}),
	}, nil
}

func (h *GRPCHandler) OrderStatus(ctx context.Context, req *pb.IDRequest) (*pb.StatusResponse, error) {
	return h.statusResponse(req.GetId())
}

func (h *GRPCHandler) OrderRestaurant(ctx context.Context, req *pb.IDRequest) (*pb.IdentityResponse, error) {
	restaurant, err := h.deliveryService.OrderRestaurant(req.GetId())
	if err != nil {
		return nil, toStatus(err)
	}
	return &pb.IdentityResponse{Identity: string(restaurant)}, nil
}

func (h *GRPCHandler) OrderCustomer(ctx context.Context, req *pb.IDRequest) (*pb.IdentityResponse, error) {
	customer, err := h.deliveryService.OrderCustomer(req.GetId())
	if err != nil {
		return nil, toStatus(err)
	}
	return &pb.IdentityResponse{Identity: string(customer)}, nil
}

func (h *GRPCHandler) OrderPrepared(ctx context.Context, req *pb.IDRequest) (*pb.StatusResponse, error) {
	err := h.idempotent(ctx, func() error {
		return h.deliveryService.OrderPrepared(grpcCaller(ctx), req.GetId())
	})
	if err != nil {
		return nil, toStatus(err)
	}
	return h.statusResponse(req.GetId())
}

func (h *GRPCHandler) FinishOrder(ctx context.Context, req *pb.IDRequest) (*pb.StatusResponse, error) {
	err := h.idempotent(ctx, func() error {
		return h.deliveryService.FinishOrder(grpcCaller(ctx), req.GetId())
	})
	if err != nil {
		return nil, toStatus(err)
	}
	return h.statusResponse(req.GetId())
}

func (h *GRPCHandler) Owner(ctx context.Context, _ *pb.Empty) (*pb.IdentityResponse, error) {
	return &pb.IdentityResponse{Identity: string(h.deliveryService.Owner())}, nil
}

func (h *GRPCHandler) TransferOwnership(ctx context.Context, req *pb.TransferOwnershipRequest) (*pb.IdentityResponse, error) {
	err := h.idempotent(ctx, func() error {
		return h.deliveryService.TransferOwnership(grpcCaller(ctx), domain.Identity(req.GetNewOwner()))
	})
	if err != nil {
		return nil, toStatus(err)
	}
	return &pb.IdentityResponse{Identity: string(h.deliveryService.Owner())}, nil
}

func (h *GRPCHandler) idempotent(ctx context.Context, op func() error) error {
	return h.deliveryService.Idempotent(ctx, grpcCaller(ctx), firstMetadata(ctx, RequestIDMetadataKey), op)
}

func (h *GRPCHandler) balanceResponse(caller domain.Identity) *pb.BalanceResponse {
	return &pb.BalanceResponse{
		Identity: string(caller),
		Balance:  uint64(h.deliveryService.Balance(caller)),
	}
}

func (h *GRPCHandler) statusResponse(orderID uint64) (*pb.StatusResponse, error) {
	st, err := h.deliveryService.OrderStatus(orderID)
	if err != nil {
		return nil, toStatus(err)
	}
	return &pb.StatusResponse{OrderId: orderID, Status: st.String(), Code: int32(st)}, nil
}

func (h *GRPCHandler) roleResponse(caller domain.Identity) *pb.RoleResponse {
	user := h.deliveryService.User(caller)
	return &pb.RoleResponse{
		Identity: string(caller),
		Role:     user.Role.String(),
		Code:     int32(user.Role),
		Name:     user.Name,
	}
}

func orderResponse(o domain.Order) *pb.OrderResponse {
	return &pb.OrderResponse{
		Id:             o.ID,
		Customer:       string(o.Customer),
		Restaurant:     string(o.Restaurant),
		FoodId:         o.FoodID,
		EscrowedAmount: uint64(o.EscrowedAmount),
		Status:         o.Status.String(),
		StatusCode:     int32(o.Status),
		CreatedAtUnix:  o.CreatedAt.Unix(),
		UpdatedAtUnix:  o.UpdatedAt.Unix(),
	}
}

func toStatus(err error) error {
	return status.Error(classify(err).grpcCode, err.Error())
}

func grpcCaller(ctx context.Context) domain.Identity {
	caller, _ := ctx.Value(callerContextKey{}).(domain.Identity)
	return caller
}

func firstMetadata(ctx context.Context, key string) string {
	md, ok := metadata.FromIncomingContext(ctx)
	if !ok {
		return ""
	}
	values := md.Get(key)
	if len(values) == 0 {
		return ""
	}
	return values[0]
}
