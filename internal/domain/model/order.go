package model

import "time"

// PaymentMethod describes how the order is paid.
type PaymentMethod string

const (
	PaymentMethodCOD    PaymentMethod = "COD"
	PaymentMethodOnline PaymentMethod = "ONLINE"
)

// ValidPaymentMethod reports whether the value is a known payment method.
func ValidPaymentMethod(m PaymentMethod) bool {
	return m == PaymentMethodCOD || m == PaymentMethodOnline
}

// PaymentStatus describes payment settlement state.
type PaymentStatus string

const (
	PaymentStatusPending PaymentStatus = "Pending"
	PaymentStatusPaid    PaymentStatus = "Paid"
	PaymentStatusFailed  PaymentStatus = "Failed"
)

// OrderStatus describes fulfilment lifecycle.
type OrderStatus string

const (
	OrderStatusPending    OrderStatus = "Pending"
	OrderStatusProcessing OrderStatus = "Processing"
	OrderStatusShipped    OrderStatus = "Shipped"
	OrderStatusDelivered  OrderStatus = "Delivered"
	OrderStatusCancelled  OrderStatus = "Cancelled"
)

// ValidOrderStatus reports whether the value is a known order status.
func ValidOrderStatus(s OrderStatus) bool {
	switch s {
	case OrderStatusPending, OrderStatusProcessing, OrderStatusShipped,
		OrderStatusDelivered, OrderStatusCancelled:
		return true
	}
	return false
}

// orderTransitions lists permitted status changes. Delivered and Cancelled
// are terminal.
var orderTransitions = map[OrderStatus][]OrderStatus{
	OrderStatusPending:    {OrderStatusProcessing, OrderStatusCancelled},
	OrderStatusProcessing: {OrderStatusShipped, OrderStatusCancelled},
	OrderStatusShipped:    {OrderStatusDelivered},
}

// CanTransition reports whether an order may move between the two statuses.
func CanTransition(from, to OrderStatus) bool {
	for _, next := range orderTransitions[from] {
		if next == to {
			return true
		}
	}
	return false
}

// OrderVariant captures the selected food variant at order time.
type OrderVariant struct {
	Name  string  `json:"name"`
	Size  string  `json:"size,omitempty"`
	Price float64 `json:"price"`
}

// OrderItem is a single cart line frozen into the order.
type OrderItem struct {
	FoodID          int64        `json:"food_id"`
	FoodName        string       `json:"food_name"`
	SelectedVariant OrderVariant `json:"selected_variant"`
	Quantity        int          `json:"quantity"`
}

// ShippingAddress is the destination recorded with the order.
type ShippingAddress struct {
	FullName     string `json:"full_name"`
	Phone        string `json:"phone"`
	AddressLine1 string `json:"address_line1"`
	AddressLine2 string `json:"address_line2,omitempty"`
	City         string `json:"city"`
	State        string `json:"state"`
	PinCode      string `json:"pin_code"`
	Country      string `json:"country"`
}

// Order describes a placed order together with its applied discount state.
type Order struct {
	ID              int64
	UserID          int64
	Items           []OrderItem
	ShippingAddress ShippingAddress
	PaymentMethod   PaymentMethod
	PaymentStatus   PaymentStatus
	Status          OrderStatus
	TotalAmount     float64
	DiscountAmount  float64
	DiscountCode    *string
	OfferID         *int64
	PlacedAt        time.Time
	UpdatedAt       time.Time
}

// Cancellable reports whether the owning user may still cancel the order.
func (o *Order) Cancellable() bool {
	return o.Status == OrderStatusPending || o.Status == OrderStatusProcessing
}

// OrderStats aggregates order count and revenue.
type OrderStats struct {
	Count        int64
	TotalRevenue float64
}

// OrderFilter narrows admin order listings.
type OrderFilter struct {
	Status *OrderStatus
	Page   int
	Limit  int
}
