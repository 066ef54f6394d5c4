package domain

import "github.com/shopspring/decimal"

// Types consumed only by the administrator console. All server-owned; the
// console issues commands and re-renders from the response.

type InventoryRow struct {
	BookID      string `json:"bookId"`
	Title       string `json:"title"`
	Quantity    int    `json:"quantity"`
	SafetyStock int    `json:"safetyStock"`
	Location    string `json:"location,omitempty"`
}

// Low reports whether quantity has fallen to or below the safety stock line.
func (r InventoryRow) Low() bool { return r.Quantity <= r.SafetyStock }

type OutOfStockRecord struct {
	RecordID          int64  `json:"recordId"`
	BookID            string `json:"bookId"`
	RequiredQuantity  int    `json:"requiredQuantity"`
	RecordDate        string `json:"recordDate,omitempty"`
	Source            string `json:"source,omitempty"` // CUSTOMER_REQUEST | MANUAL
	RelatedCustomerID int64  `json:"relatedCustomerId,omitempty"`
	Status            string `json:"status"` // PENDING | PURCHASING | RESOLVED
	Priority          int    `json:"priority,omitempty"`
}

type CustomerShortageRequest struct {
	RequestID    int64  `json:"requestId"`
	CustomerID   int64  `json:"customerId"`
	OrderID      int64  `json:"orderId,omitempty"`
	BookID       string `json:"bookId"`
	RequestedQty int    `json:"requestedQty"`
	CustomerNote string `json:"customerNote,omitempty"`
	Status       string `json:"status"` // PENDING | ACCEPTED | REJECTED
	CreatedTime  string `json:"createdTime,omitempty"`
}

type PurchaseOrder struct {
	PurchaseOrderID int64           `json:"purchaseOrderId"`
	SupplierID      int64           `json:"supplierId"`
	SupplierName    string          `json:"supplierName,omitempty"`
	OrderDate       string          `json:"orderDate,omitempty"`
	Status          string          `json:"status"` // ISSUED | RECEIVED
	TotalAmount     decimal.Decimal `json:"totalAmount"`
}

type PurchaseOrderItem struct {
	PurchaseOrderID int64           `json:"purchaseOrderId"`
	BookID          string          `json:"bookId"`
	Quantity        int             `json:"quantity"`
	PurchasePrice   decimal.Decimal `json:"purchasePrice"`
}

type Supplier struct {
	SupplierID    int64  `json:"supplierId"`
	Name          string `json:"name"`
	ContactPerson string `json:"contactPerson,omitempty"`
	Phone         string `json:"phone,omitempty"`
	Email         string `json:"email,omitempty"`
	Address       string `json:"address,omitempty"`
	Status        string `json:"status,omitempty"` // ACTIVE | FROZEN
}

// Supply is one supplier's standing offer for one book.
type Supply struct {
	SupplierID   int64           `json:"supplierId"`
	BookID       string          `json:"bookId"`
	SupplyPrice  decimal.Decimal `json:"supplyPrice"`
	LeadTimeDays int             `json:"leadTimeDays,omitempty"`
	Availability string          `json:"availability,omitempty"` // AVAILABLE | OUT_OF_STOCK
}

type AdminCustomer struct {
	CustomerID       int64           `json:"customerId"`
	Username         string          `json:"username"`
	RealName         string          `json:"realName,omitempty"`
	AccountBalance   decimal.Decimal `json:"accountBalance"`
	TotalConsumption decimal.Decimal `json:"totalConsumption"`
	CreditLevelID    int             `json:"creditLevelId"`
	CreditLevelName  string          `json:"creditLevelName,omitempty"`
}

type BookAuthor struct {
	AuthorID int64  `json:"authorId"`
	Name     string `json:"name"`
	Ordinal  int    `json:"ordinal,omitempty"`
}

type BookKeyword struct {
	KeywordID int64  `json:"keywordId"`
	Keyword   string `json:"keyword"`
}
