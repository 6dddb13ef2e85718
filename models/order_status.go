package models

// Order statuses. Transitions are monotonic forward; the only backward move
// is an admin recall from a terminal status back to the kitchen.
const (
	OrderPending   = "pending"
	OrderCooking   = "cooking"
	OrderReady     = "ready"
	OrderServed    = "served"
	OrderCancelled = "cancelled"
)

// Order item statuses.
const (
	ItemPending   = "pending"
	ItemPreparing = "preparing"
	ItemReady     = "ready"
)

// Order payment statuses.
const (
	PaymentPending = "pending"
	PaymentPaid    = "paid"
)

var orderTransitions = map[string][]string{
	OrderPending: {OrderCooking, OrderCancelled},
	OrderCooking: {OrderReady, OrderCancelled},
	OrderReady:   {OrderServed, OrderCancelled},
	OrderServed:  {},
	OrderCancelled: {},
}

var itemTransitions = map[string][]string{
	ItemPending:   {ItemPreparing},
	ItemPreparing: {ItemReady},
	ItemReady:     {},
}

// IsTerminalStatus reports whether an order can no longer move forward.
func IsTerminalStatus(status string) bool {
	return status == OrderServed || status == OrderCancelled
}

// ValidOrderStatus reports whether s is a known order status.
func ValidOrderStatus(s string) bool {
	_, ok := orderTransitions[s]
	return ok
}

// CanTransition reports whether an order may move from one status to
// another. Recall is not covered here, see CanRecall.
func CanTransition(from, to string) bool {
	for _, next := range orderTransitions[from] {
		if next == to {
			return true
		}
	}
	return false
}

// NextStatuses lists the statuses an order may legally move to. The kitchen
// board uses this to decide which actions to offer.
func NextStatuses(from string) []string {
	next := orderTransitions[from]
	out := make([]string, len(next))
	copy(out, next)
	return out
}

// CanRecall reports whether an order can be pulled back to the kitchen.
// Only terminal orders can be recalled, and the caller must be an admin.
func CanRecall(from string) bool {
	return IsTerminalStatus(from)
}

// CanTransitionItem reports whether an order item may move between statuses.
func CanTransitionItem(from, to string) bool {
	for _, next := range itemTransitions[from] {
		if next == to {
			return true
		}
	}
	return false
}
