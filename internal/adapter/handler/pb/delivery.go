// Package pb holds the wire messages and service descriptor of
// delivery.v1.DeliveryService.
package pb

type Empty struct{}

type RegisterRestaurantRequest struct {
	Name string `json:"name"`
}

type AmountRequest struct {
	Amount uint64 `json:"amount"`
}

type NewFoodRequest struct {
	Name  string `json:"name"`
	Price uint64 `json:"price"`
}

type NewOrderRequest struct {
	FoodId uint64 `json:"food_id"`
}

type IDRequest struct {
	Id uint64 `json:"id"`
}

type TransferOwnershipRequest struct {
	NewOwner string `json:"new_owner"`
}

type RoleResponse struct {
	Identity string `json:"identity"`
	Role     string `json:"role"`
	Code     int32  `json:"code"`
	Name     string `json:"name,omitempty"`
}

type BalanceResponse struct {
	Identity string `json:"identity"`
	Balance  uint64 `json:"balance"`
}

type IDResponse struct {
	Id uint64 `json:"id"`
}

type FoodResponse struct {
	Id    uint64 `json:"id"`
	Owner string `json:"owner"`
	Name  string `json:"name"`
	Price uint64 `json:"price"`
}

type OrderResponse struct {
	Id             uint64 `json:"id"`
	Customer       string `json:"customer"`
	Restaurant     string `json:"restaurant"`
	FoodId         uint64 `json:"food_id"`
	EscrowedAmount uint64 `json:"escrowed_amount"`
	Status         string `json:"status"`
	StatusCode     int32  `json:"status_code"`
	CreatedAtUnix  int64  `json:"created_at_unix"`
	UpdatedAtUnix  int64  `json:"updated_at_unix"`
}

type ListOrdersResponse struct {
	Orders []*OrderResponse `json:"orders"`
}

type StatusResponse struct {
	OrderId uint64 `json:"order_id"`
	Status  string `json:"status"`
	Code    int32  `json:"code"`
}

type IdentityResponse struct {
	Identity string `json:"identity"`
}

func (x *RegisterRestaurantRequest) GetName() string {
	if x != nil {
		return x.Name
	}
	return ""
}

func (x *AmountRequest) GetAmount() uint64 {
	if x != nil {
		return x.Amount
	}
	return 0
}

func (x *NewFoodRequest) GetName() string {
	if x != nil {
		return x.Name
	}
	return ""
}

func (x *NewFoodRequest) GetPrice() uint64 {
	if x != nil {
		return x.Price
	}
	return 0
}

func (x *NewOrderRequest) GetFoodId() uint64 {
	if x != nil {
		return x.FoodId
	}
	return 0
}

func (x *IDRequest) GetId() uint64 {
	if x != nil {
		return x.Id
	}
	return 0
}

func (x *TransferOwnershipRequest) GetNewOwner() string {
	if x != nil {
		return x.NewOwner
	}
	return ""
}
