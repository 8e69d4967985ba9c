package domain

import "github.com/shopspring/decimal"

// Order statuses as the backend reports them. The client never decides
// transition legality; it only displays and requests transitions.
const (
	OrderPending   = "pending"
	OrderCompleted = "completed"
	OrderCanceled  = "canceled"
	OrderFinalized = "finalized"
)

var OrderStatuses = []string{OrderPending, OrderCompleted, OrderCanceled, OrderFinalized}

func ValidOrderStatus(s string) bool {
	for _, st := range OrderStatuses {
		if s == st {
			return true
		}
	}
	return false
}

type OrderItem struct {
	ProductID   string          `json:"productId"`
	VariantID   string          `json:"variantId"`
	ProductName string          `json:"productName"`
	SKU         string          `json:"sku"`
	Quantity    int             `json:"quantity"`
	UnitPrice   decimal.Decimal `json:"unitPrice"`
}

type PaymentInfo struct {
	Method string `json:"method"`
	Status string `json:"status"`
}

type ShippingInfo struct {
	Address string `json:"address"`
	City    string `json:"city"`
	Region  string `json:"region"`
	Method  string `json:"method"`
}

// Order is read-only from this app's perspective: sourced from the backend,
// mutated only through status transition requests.
type Order struct {
	ID            string          `json:"id"`
	Status        string          `json:"status"`
	CustomerName  string          `json:"customerName"`
	CustomerEmail string          `json:"customerEmail"`
	Items         []OrderItem     `json:"items"`
	Payment       PaymentInfo     `json:"payment"`
	Shipping      ShippingInfo    `json:"shipping"`
	Total         decimal.Decimal `json:"total"`
	CreatedAt     string          `json:"createdAt"`
}
