package domain

import "github.com/shopspring/decimal"

type Book struct {
	BookID        string          `json:"bookId"`
	Title         string          `json:"title"`
	Publisher     string          `json:"publisher,omitempty"`
	Price         decimal.Decimal `json:"price"`
	StockQuantity int             `json:"stockQuantity"`
	Catalog       string          `json:"catalog,omitempty"`
}

// CartLine mirrors one row of the server-side cart resource. At most one
// line exists per bookId; the server merges quantities on add.
type CartLine struct {
	BookID    string          `json:"bookId"`
	Title     string          `json:"title"`
	Quantity  int             `json:"quantity"`
	UnitPrice decimal.Decimal `json:"unitPrice"`
}

func (l CartLine) Subtotal() decimal.Decimal {
	return l.UnitPrice.Mul(decimal.NewFromInt(int64(l.Quantity)))
}

// OrderDraft is the candidate order built from the cart immediately before
// submission. It is never persisted server-side; locally it lives only in the
// pending-draft store between the stock pre-check and the shortage decision.
type OrderDraft struct {
	Items                   []DraftItem `json:"items"`
	ShippingAddressSnapshot string      `json:"shippingAddressSnapshot"`
	CustomerNote            string      `json:"customerNote,omitempty"`
}

type DraftItem struct {
	BookID    string          `json:"bookId"`
	Quantity  int             `json:"quantity"`
	UnitPrice decimal.Decimal `json:"unitPrice"`
}

// ShortageItem is one requested line whose quantity exceeded available stock
// at pre-check time. Read-only, backend-produced.
type ShortageItem struct {
	OrderItemID  int64  `json:"orderItemId,omitempty"`
	BookID       string `json:"bookId"`
	Quantity     int    `json:"quantity"`
	CurrentStock int    `json:"currentStock"`
}

type SalesOrder struct {
	OrderID                 int64           `json:"orderId"`
	CustomerID              int64           `json:"customerId"`
	OrderTime               string          `json:"orderTime,omitempty"`
	OrderStatus             OrderStatus     `json:"orderStatus"`
	GoodsAmount             decimal.Decimal `json:"goodsAmount"`
	DiscountRateSnapshot    decimal.Decimal `json:"discountRateSnapshot"`
	PayableAmount           decimal.Decimal `json:"payableAmount"`
	ShippingAddressSnapshot string          `json:"shippingAddressSnapshot,omitempty"`
	PaymentTime             string          `json:"paymentTime,omitempty"`
	DeliveryTime            string          `json:"deliveryTime,omitempty"`
	CustomerNote            string          `json:"customerNote,omitempty"`
}

type SalesOrderItem struct {
	OrderItemID      int64           `json:"orderItemId"`
	OrderID          int64           `json:"orderId"`
	BookID           string          `json:"bookId"`
	Quantity         int             `json:"quantity"`
	UnitPrice        decimal.Decimal `json:"unitPrice"`
	SubAmount        decimal.Decimal `json:"subAmount"`
	ItemStatus       string          `json:"itemStatus,omitempty"`
	ShippedQuantity  int             `json:"shippedQuantity"`
	ReceivedQuantity int             `json:"receivedQuantity"`
}

type Shipment struct {
	ShipmentID     int64  `json:"shipmentId"`
	OrderID        int64  `json:"orderId"`
	ShipTime       string `json:"shipTime,omitempty"`
	Carrier        string `json:"carrier,omitempty"`
	TrackingNumber string `json:"trackingNumber,omitempty"`
	ShipmentStatus string `json:"shipmentStatus"` // SHIPPED | DELIVERING | RECEIVED
	Operator       string `json:"operator,omitempty"`
}

// Receivable reports whether this shipment is still in transit and can be
// confirmed by the customer.
func (s Shipment) Receivable() bool {
	return s.ShipmentStatus == "SHIPPED" || s.ShipmentStatus == "DELIVERING"
}

// OrderDetail bundles everything the order page needs in one response.
type OrderDetail struct {
	Order     SalesOrder       `json:"order"`
	Items     []SalesOrderItem `json:"items"`
	Shipments []Shipment       `json:"shipments"`
}

type CustomerAddress struct {
	AddressID  int64  `json:"addressId"`
	CustomerID int64  `json:"customerId"`
	Receiver   string `json:"receiver"`
	Phone      string `json:"phone,omitempty"`
	Province   string `json:"province,omitempty"`
	City       string `json:"city,omitempty"`
	District   string `json:"district,omitempty"`
	Detail     string `json:"detail"`
	IsDefault  bool   `json:"isDefault"`
}

// Snapshot renders the address the way order creation expects it:
// receiver first, then the region parts and street detail as one line.
func (a CustomerAddress) Snapshot() string {
	s := a.Province + a.City + a.District + a.Detail
	if a.Receiver != "" {
		s = a.Receiver + ", " + s
	}
	return s
}

type CustomerSummary struct {
	CustomerID      int64           `json:"customerId"`
	Username        string          `json:"username"`
	RealName        string          `json:"realName,omitempty"`
	MobilePhone     string          `json:"mobilePhone,omitempty"`
	Email           string          `json:"email,omitempty"`
	AccountBalance  decimal.Decimal `json:"accountBalance"`
	CreditLevelID   int             `json:"creditLevelId"`
	CreditLevelName string          `json:"creditLevelName,omitempty"`
	DiscountRate    decimal.Decimal `json:"discountRate"`
	PrivilegeText   string          `json:"privilegeText,omitempty"`
}

// DisplayName prefers the real name over the login name.
func (s CustomerSummary) DisplayName() string {
	if s.RealName != "" {
		return s.RealName
	}
	return s.Username
}
