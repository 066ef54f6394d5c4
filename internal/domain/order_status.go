package domain

// OrderStatus is the backend-owned order lifecycle tag. The client never
// computes transitions; it only reflects the last fetched value and decides
// which action buttons to surface. Unrecognized tags map to StatusUnknown so
// a backend addition never panics the UI.
type OrderStatus string

const (
	StatusPendingPayment    OrderStatus = "PENDING_PAYMENT"
	StatusOutOfStockPending OrderStatus = "OUT_OF_STOCK_PENDING"
	StatusPendingShipment   OrderStatus = "PENDING_SHIPMENT"
	StatusPartShipped       OrderStatus = "PART_SHIPPED"
	StatusDelivering        OrderStatus = "DELIVERING"
	StatusShipped           OrderStatus = "SHIPPED"
	StatusCompleted         OrderStatus = "COMPLETED"
	StatusCancelled         OrderStatus = "CANCELLED"
	StatusUnknown           OrderStatus = "UNKNOWN"
)

var knownStatuses = map[OrderStatus]string{
	StatusPendingPayment:    "Pending payment",
	StatusOutOfStockPending: "Awaiting shortage review",
	StatusPendingShipment:   "Pending shipment",
	StatusPartShipped:       "Partially shipped",
	StatusDelivering:        "Delivering",
	StatusShipped:           "Shipped",
	StatusCompleted:         "Completed",
	StatusCancelled:         "Cancelled",
}

// Normalize maps any unrecognized tag to StatusUnknown.
func (s OrderStatus) Normalize() OrderStatus {
	if _, ok := knownStatuses[s]; ok {
		return s
	}
	return StatusUnknown
}

func (s OrderStatus) Label() string {
	if l, ok := knownStatuses[s]; ok {
		return l
	}
	return string(s)
}

// Payable reports whether the pay action should be offered. The backend is
// the enforcement point; this only drives button visibility. DELIVERING is
// included for the credit-privilege pay-after-shipment case.
func (s OrderStatus) Payable() bool {
	switch s {
	case StatusPendingPayment, StatusOutOfStockPending, StatusDelivering:
		return true
	}
	return false
}

// Cancellable: unpaid and nothing shipped yet.
func (s OrderStatus) Cancellable() bool {
	return s == StatusPendingPayment || s == StatusOutOfStockPending
}

// Receivable reports whether confirming receipt may apply to the order.
func (s OrderStatus) Receivable() bool {
	switch s {
	case StatusPartShipped, StatusDelivering, StatusShipped:
		return true
	}
	return false
}

// ShortageDecision is the customer's choice for a shortage episode.
// DecisionCancel is client-only: it performs no backend call and leaves the
// cart untouched.
type ShortageDecision string

const (
	DecisionPayAndCreate ShortageDecision = "PAY_AND_CREATE"
	DecisionRequestOnly  ShortageDecision = "REQUEST_ONLY"
	DecisionCancel       ShortageDecision = "CANCEL"
)

// Valid reports whether the tag is one of the three accepted decisions.
func (d ShortageDecision) Valid() bool {
	switch d {
	case DecisionPayAndCreate, DecisionRequestOnly, DecisionCancel:
		return true
	}
	return false
}
