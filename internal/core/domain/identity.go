package domain

import "math"

// Identity is the caller reference every operation is attributed to.
type Identity string

type Role int

const (
	RoleNone       Role = 0
	RoleCustomer   Role = 1
	RoleRestaurant Role = 2
)

func (r Role) String() string {
	switch r {
	case RoleCustomer:
		return "customer"
	case RoleRestaurant:
		return "restaurant"
	default:
		return "none"
	}
}

// Amount is measured in indivisible monetary units.
type Amount uint64

// MaxAmount caps the total value held by the ledger so that balances never
// wrap and fit a signed BIGINT column.
const MaxAmount Amount = math.MaxInt64

type User struct {
	Identity Identity
	Role     Role
	Name     string
	Balance  Amount
}

// Identities and names are capped so every journal row fits the events
// table on all supported databases.
const (
	MaxIdentityLength = 255
	MaxNameLength     = 255
)
