package handler

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/samber/lo"
	"go.uber.org/zap"

	"github.com/rl1809/food-delivery/internal/core/domain"
	"github.com/rl1809/food-delivery/internal/core/service"
)

const (
	IdentityHeader    = "X-Identity"
	IdempotencyHeader = "Idempotency-Key"

	identityKey = "identity"
)

type HTTPHandler struct {
	deliveryService *service.DeliveryService
	log             *zap.Logger
}

type RegisterRestaurantHTTPRequest struct {
	Name string `json:"name" binding:"required"`
}

type AmountHTTPRequest struct {
	Amount *uint64 `json:"amount" binding:"required"`
}

type NewFoodHTTPRequest struct {
	Name  string  `json:"name" binding:"required"`
	Price *uint64 `json:"price" binding:"required"`
}

type NewOrderHTTPRequest struct {
	FoodID *uint64 `json:"food_id" binding:"required"`
}

type TransferOwnershipHTTPRequest struct {
	NewOwner string `json:"new_owner" binding:"required"`
}

type ErrorHTTPResponse struct {
	Success bool   `json:"success"`
	Error   string `json:"error"`
	Message string `json:"message"`
}

type RoleHTTPResponse struct {
	Identity string `json:"identity"`
	Role     string `json:"role"`
	Code     int    `json:"code"`
	Name     string `json:"name,omitempty"`
}

type BalanceHTTPResponse struct {
	Identity string `json:"identity"`
	Balance  uint64 `json:"balance"`
}

type IDHTTPResponse struct {
	ID uint64 `json:"id"`
}

type FoodHTTPResponse struct {
	ID    uint64 `json:"id"`
	Owner string `json:"owner"`
	Name  string `json:"name"`
	Price uint64 `json:"price"`
}

type OrderHTTPResponse struct {
	ID             uint64    `json:"id"`
	Customer       string    `json:"customer"`
	Restaurant     string    `json:"restaurant"`
	FoodID         uint64    `json:"food_id"`
	EscrowedAmount uint64    `json:"escrowed_amount"`
	Status         string    `json:"status"`
	StatusCode     int       `json:"status_code"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`
}

type StatusHTTPResponse struct {
	OrderID uint64 `json:"order_id"`
	Status  string `json:"status"`
	Code    int    `json:"code"`
}

type IdentityHTTPResponse struct {
	Identity string `json:"identity"`
}

func NewHTTPHandler(deliveryService *service.DeliveryService, log *zap.Logger) *HTTPHandler {
	return &HTTPHandler{deliveryService: deliveryService, log: log}
}

// Router builds the gin engine serving the delivery API.
func (h *HTTPHandler) Router() *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery(), h.requestLogger())

	router.GET("/health", h.HealthCheck)

	api := router.Group("/api", h.requireIdentity())
	api.POST("/users/restaurant", h.RegisterRestaurant)
	api.POST("/users/customer", h.RegisterCustomer)
	api.GET("/users/me", h.MyUserType)

	api.POST("/balance/deposit", h.Deposit)
	api.POST("/balance/withdraw", h.Withdraw)
	api.GET("/balance", h.MyBalance)

	api.POST("/foods", h.NewFood)
	api.GET("/foods/:id", h.GetFood)

	api.POST("/orders", h.NewOrder)
	api.GET("/orders", h.MyOrders)
	api.GET("/orders/:id", h.GetOrder)
	api.GET("/orders/:id/status", h.OrderStatus)
	api.GET("/orders/:id/restaurant", h.OrderToRestaurant)
	api.GET("/orders/:id/customer", h.OrderToCustomer)
	api.POST("/orders/:id/prepared", h.OrderPrepared)
	api.POST("/orders/:id/finish", h.FinishOrder)

	api.GET("/admin/owner", h.Owner)
	api.POST("/admin/owner", h.TransferOwnership)

	return router
}

func (h *HTTPHandler) HealthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

func (h *HTTPHandler) RegisterRestaurant(c *gin.Context) {
	var req RegisterRestaurantHTTPRequest
	if !h.bind(c, &req) {
		return
	}

	caller := callerOf(c)
	err := h.idempotent(c, func() error {
		return h.deliveryService.RegisterRestaurant(caller, req.Name)
	})
	if err != nil {
		h.writeError(c, err)
		return
	}
	h.writeRole(c, http.StatusCreated, caller)
}

func (h *HTTPHandler) RegisterCustomer(c *gin.Context) {
	caller := callerOf(c)
	err := h.idempotent(c, func() error {
		return h.deliveryService.RegisterCustomer(caller)
	})
	if err != nil {
		h.writeError(c, err)
		return
	}
	h.writeRole(c, http.StatusCreated, caller)
}

func (h *HTTPHandler) MyUserType(c *gin.Context) {
	caller := callerOf(c)
	h.writeRole(c, http.StatusOK, caller)
}

func (h *HTTPHandler) Deposit(c *gin.Context) {
	var req AmountHTTPRequest
	if !h.bind(c, &req) {
		return
	}

	caller := callerOf(c)
	err := h.idempotent(c, func() error {
		return h.deliveryService.Deposit(caller, domain.Amount(*req.Amount))
	})
	if err != nil {
		h.writeError(c, err)
		return
	}
	h.writeBalance(c, caller)
}

func (h *HTTPHandler) Withdraw(c *gin.Context) {
	var req AmountHTTPRequest
	if !h.bind(c, &req) {
		return
	}

	caller := callerOf(c)
	err := h.idempotent(c, func() error {
		return h.deliveryService.Withdraw(c.Request.Context(), caller, domain.Amount(*req.Amount))
	})
	if err != nil {
		h.writeError(c, err)
		return
	}
	h.writeBalance(c, caller)
}

func (h *HTTPHandler) MyBalance(c *gin.Context) {
	h.writeBalance(c, callerOf(c))
}

func (h *HTTPHandler) NewFood(c *gin.Context) {
	var req NewFoodHTTPRequest
	if !h.bind(c, &req) {
		return
	}

	var foodID uint64
	err := h.idempotent(c, func() (err error) {
		foodID, err = h.deliveryService.NewFood(callerOf(c), req.Name, domain.Amount(*req.Price))
		return err
	})
	if err != nil {
		h.writeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, IDHTTPResponse{ID: foodID})
}

func (h *HTTPHandler) GetFood(c *gin.Context) {
	foodID, ok := h.pathID(c)
	if !ok {
		return
	}

	food, err := h.deliveryService.Food(foodID)
	if err != nil {
		h.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, FoodHTTPResponse{
		ID:    food.ID,
		Owner: string(food.Owner),
		Name:  food.Name,
		Price: uint64(food.Price),
	})
}

func (h *HTTPHandler) NewOrder(c *gin.Context) {
	var req NewOrderHTTPRequest
	if !h.bind(c, &req) {
		return
	}

	var orderID uint64
	err := h.idempotent(c, func() (err error) {
		orderID, err = h.deliveryService.NewOrder(callerOf(c), *req.FoodID)
		return err
	})
	if err != nil {
		h.writeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, IDHTTPResponse{ID: orderID})
}

func (h *HTTPHandler) MyOrders(c *gin.Context) {
	orders := h.deliveryService.OrdersOf(callerOf(c))
	c.JSON(http.StatusOK, lo.Map(orders, func(o domain.Order, _ int) OrderHTTPResponse {
		return toOrderHTTPResponse(o)
	}))
}

func (h *HTTPHandler) GetOrder(c *gin.Context) {
	orderID, ok := h.pathID(c)
	if !ok {
		return
	}

	order, err := h.deliveryService.Order(orderID)
	if err != nil {
		h.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, toOrderHTTPResponse(order))
}

func (h *HTTPHandler) OrderStatus(c *gin.Context) {
	orderID, ok := h.pathID(c)
	if !ok {
		return
	}

	status, err := h.deliveryService.OrderStatus(orderID)
	if err != nil {
		h.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, StatusHTTPResponse{OrderID: orderID, Status: status.String(), Code: int(status)})
}

func (h *HTTPHandler) OrderToRestaurant(c *gin.Context) {
	h.writeParticipant(c, h.deliveryService.OrderRestaurant)
}

func (h *HTTPHandler) OrderToCustomer(c *gin.Context) {
	h.writeParticipant(c, h.deliveryService.OrderCustomer)
}

func (h *HTTPHandler) OrderPrepared(c *gin.Context) {
	h.advanceOrder(c, h.deliveryService.OrderPrepared)
}

func (h *HTTPHandler) FinishOrder(c *gin.Context) {
	h.advanceOrder(c, h.deliveryService.FinishOrder)
}

func (h *HTTPHandler) Owner(c *gin.Context) {
	c.JSON(http.StatusOK, IdentityHTTPResponse{Identity: string(h.deliveryService.Owner())})
}

func (h *HTTPHandler) TransferOwnership(c *gin.Context) {
	var req TransferOwnershipHTTPRequest
	if !h.bind(c, &req) {
		return
	}

	err := h.idempotent(c, func() error {
		return h.deliveryService.TransferOwnership(callerOf(c), domain.Identity(req.NewOwner))
	})
	if err != nil {
		h.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, IdentityHTTPResponse{Identity: string(h.deliveryService.Owner())})
}

func (h *HTTPHandler) advanceOrder(c *gin.Context, advance func(domain.Identity, uint64) error) {
	orderID, ok := h.pathID(c)
	if !ok {
		return
	}

	err := h.idempotent(c, func() error {
		return advance(callerOf(c), orderID)
	})
	if err != nil {
		h.writeError(c, err)
		return
	}

	status, err := h.deliveryService.OrderStatus(orderID)
	if err != nil {
		h.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, StatusHTTPResponse{OrderID: orderID, Status: status.String(), Code: int(status)})
}

func (h *HTTPHandler) writeParticipant(c *gin.Context, participant func(uint64) (domain.Identity, error)) {
	orderID, ok := h.pathID(c)
	if !ok {
		return
	}

	who, err := participant(orderID)
	if err != nil {
		h.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, IdentityHTTPResponse{Identity: string(who)})
}

func (h *HTTPHandler) idempotent(c *gin.Context, op func() error) error {
	return h.deliveryService.Idempotent(c.Request.Context(), callerOf(c), c.GetHeader(IdempotencyHeader), op)
}

func (h *HTTPHandler) bind(c *gin.Context, req any) bool {
	if err := c.ShouldBindJSON(req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorHTTPResponse{
			Success: false,
			Error:   "invalid_request",
			Message: "invalid request body",
		})
		return false
	}
	return true
}

func (h *HTTPHandler) pathID(c *gin.Context) (uint64, bool) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, ErrorHTTPResponse{
			Success: false,
			Error:   "invalid_request",
			Message: "invalid id",
		})
		return 0, false
	}
	return id, true
}

func (h *HTTPHandler) writeError(c *gin.Context, err error) {
	m := classify(err)
	if m.httpStatus == http.StatusInternalServerError {
		h.log.Error("request failed", zap.String("path", c.FullPath()), zap.Error(err))
	}
	c.JSON(m.httpStatus, ErrorHTTPResponse{
		Success: false,
		Error:   m.kind,
		Message: err.Error(),
	})
}

func (h *HTTPHandler) writeRole(c *gin.Context, status int, caller domain.Identity) {
	user := h.deliveryService.User(caller)
	c.JSON(status, RoleHTTPResponse{
		Identity: string(caller),
		Role:     user.Role.String(),
		Code:     int(user.Role),
		Name:     user.Name,
	})
}

func (h *HTTPHandler) writeBalance(c *gin.Context, caller domain.Identity) {
	c.JSON(http.StatusOK, BalanceHTTPResponse{
		Identity: string(caller),
		Balance:  uint64(h.deliveryService.Balance(caller)),
	})
}

func (h *HTTPHandler) requireIdentity() gin.HandlerFunc {
	return func(c *gin.Context) {
		caller := c.GetHeader(IdentityHeader)
		if caller == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, ErrorHTTPResponse{
				Success: false,
				Error:   "missing_identity",
				Message: IdentityHeader + " header is required",
			})
			return
		}
		c.Set(identityKey, domain.Identity(caller))
		c.Next()
	}
}

func (h *HTTPHandler) requestLogger() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		h.log.Info("http request",
			zap.String("method", c.Request.Method),
			zap.String("path", c.Request.URL.Path),
			zap.Int("status", c.Writer.Status()),
			zap.Duration("duration", time.Since(start)),
		)
	}
}

func callerOf(c *gin.Context) domain.Identity {
	return c.MustGet(identityKey).(domain.Identity)
}

func toOrderHTTPResponse(o domain.Order) OrderHTTPResponse {
	return OrderHTTPResponse{
		ID:             o.ID,
		Customer:       string(o.Customer),
		Restaurant:     string(o.Restaurant),
		FoodID:         o.FoodID,
		EscrowedAmount: uint64(o.EscrowedAmount),
		Status:         o.Status.String(),
		StatusCode:     int(o.Status),
		CreatedAt:      o.CreatedAt,
		UpdatedAt:      o.UpdatedAt,
	}
}
