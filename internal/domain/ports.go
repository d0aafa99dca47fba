package domain

import "context"

// RoomCatalog is the live room store. Available flags are written only
// through SetAvailable, and only by the availability-refresh path.
type RoomCatalog interface {
	GetRoom(ctx context.Context, id string) (Room, error)
	ListRooms(ctx context.Context) ([]Room, error)
	SetAvailable(ctx context.Context, id string, available bool) error
}

type Cache interface {
	Get(ctx context.Context, key string, dst any) (bool, error)
	Set(ctx context.Context, key string, v any, ttlSec int) error
	Del(ctx context.Context, key string) error
}

// Backend models the external collaborators this demo simulates:
// the availability service, the payment provider, the coupon service
// and the identity provider. A production build swaps in real clients
// without touching the session or the checkout machine.
type Backend interface {
	// CheckAvailability refreshes the catalog's availability flags and
	// returns the current available state for the requested room ids.
	CheckAvailability(ctx context.Context, roomIDs []string) (map[string]bool, error)

	// ResolvePayment settles a processing attempt. approved=false is a
	// declined payment, not an error; err is reserved for transport
	// failures.
	ResolvePayment(ctx context.Context, method PaymentMethod) (approved bool, ref string, err error)

	// ValidateDiscount accepts a coupon code and returns the discount
	// amount. The demo backend accepts every code.
	ValidateDiscount(ctx context.Context, code string) (float64, error)

	// Login simulates a social login and reports whether the identity
	// carries admin rights.
	Login(ctx context.Context, method string) (admin bool, err error)
}

// RoomsQuery carries the visitor's current guest selection; listing
// order is derived from it.
type RoomsQuery struct {
	Adults   int
	Children int
	Pets     int
}
