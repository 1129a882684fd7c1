package domain

import "time"

// A SessionID is the opaque capability that scopes cart ownership.
// There is no authorization beyond possession of the identifier.
type SessionID string

func (id SessionID) IsZero() bool {
	return id == ""
}

// A CartItem associates a session, a product and a quantity.
// One line item exists per (session, product) pair.
type CartItem struct {
	ID        string
	SessionID SessionID
	ProductID string
	Quantity  int
	UpdatedAt time.Time
	Product   Product
}

type CartAction string

const (
	CartActionAdd         CartAction = "add"
	CartActionSetQuantity CartAction = "set_quantity"
	CartActionRemove      CartAction = "remove"
)

// A CartEvent describes one successful cart mutation for the
// activity stream. ProductID is set for add actions only.
type CartEvent struct {
	SessionID  SessionID
	ItemID     string
	ProductID  string
	Action     CartAction
	Quantity   int
	OccurredAt time.Time
}
