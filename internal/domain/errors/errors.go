package errors

import "errors"

var (
	ErrAlreadyExists      = errors.New("already exists")
	ErrNotFound           = errors.New("not found")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrForbidden          = errors.New("forbidden")

	ErrOfferNotFound        = errors.New("offer not found or expired")
	ErrOfferExhausted       = errors.New("offer usage limit reached")
	ErrOfferAlreadyRedeemed = errors.New("offer already redeemed by user")
	ErrInvalidOffer         = errors.New("invalid offer definition")

	ErrEmptyOrder              = errors.New("order has no items")
	ErrInvalidQuantity         = errors.New("item quantity must be positive")
	ErrInvalidPaymentMethod    = errors.New("invalid payment method")
	ErrInvalidAmount           = errors.New("invalid amount")
	ErrFoodNotFound            = errors.New("food item not found")
	ErrInvalidVariant          = errors.New("selected variant not available")
	ErrInvalidStatusTransition = errors.New("invalid order status transition")
)
