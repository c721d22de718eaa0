package dto

import (
	"time"

	"github.com/Aviraj0403/restro-back/internal/domain/model"
)

// PlaceOrderRequest describes order placement payload.
type PlaceOrderRequest struct {
	Items           []model.OrderItem     `json:"items"`
	ShippingAddress model.ShippingAddress `json:"shipping_address"`
	PaymentMethod   string                `json:"payment_method"`
	TotalAmount     float64               `json:"total_amount"`
	DiscountCode    *string               `json:"discount_code"`
}

// OrderResponse describes an order entry.
type OrderResponse struct {
	ID              int64                 `json:"id"`
	UserID          int64                 `json:"user_id"`
	Items           []model.OrderItem     `json:"items"`
	ShippingAddress model.ShippingAddress `json:"shipping_address"`
	PaymentMethod   string                `json:"payment_method"`
	PaymentStatus   string                `json:"payment_status"`
	Status          string                `json:"status"`
	TotalAmount     float64               `json:"total_amount"`
	DiscountAmount  float64               `json:"discount_amount"`
	DiscountCode    *string               `json:"discount_code,omitempty"`
	PlacedAt        time.Time             `json:"placed_at"`
	UpdatedAt       time.Time             `json:"updated_at"`
}

// OrderListResponse is a paginated admin order listing.
type OrderListResponse struct {
	Orders []OrderResponse `json:"orders"`
	Total  int64           `json:"total"`
	Page   int             `json:"page"`
	Limit  int             `json:"limit"`
}

// UpdateOrderStatusRequest describes admin status change payload.
type UpdateOrderStatusRequest struct {
	Status string `json:"status"`
}

// OrderStatsResponse aggregates order count and revenue.
type OrderStatsResponse struct {
	Count        int64   `json:"count"`
	TotalRevenue float64 `json:"total_revenue"`
}
