package model

import "time"

// CartItem is a single line of a user's cart.
type CartItem struct {
	FoodID          int64        `json:"food_id"`
	SelectedVariant OrderVariant `json:"selected_variant"`
	Quantity        int          `json:"quantity"`
}

// Cart is the per-user ephemeral collection of items pending settlement.
type Cart struct {
	UserID    int64
	Items     []CartItem
	UpdatedAt time.Time
}
