package dto

import (
	"time"

	"github.com/Aviraj0403/restro-back/internal/domain/model"
)

// SaveCartRequest replaces the caller's cart contents.
type SaveCartRequest struct {
	Items []model.CartItem `json:"items"`
}

// CartResponse describes the caller's current cart.
type CartResponse struct {
	Items     []model.CartItem `json:"items"`
	UpdatedAt time.Time        `json:"updated_at"`
}
