package sales

import (
	"github.com/gipsy-office/backend/internal/domain/shared"
	"github.com/google/uuid"
)

// CartItem is one position in a cart: a product at a requested volume with a
// unit count and the add-on codes selected for it.
type CartItem struct {
	ProductID  uuid.UUID `json:"product_id"`
	VolumeML   int       `json:"volume_ml"`
	Quantity   int       `json:"quantity"`
	AddOnCodes []string  `json:"addons"`
}

// Validate checks the structural invariants of a cart item
func (c CartItem) Validate() error {
	if c.ProductID == uuid.Nil {
		return shared.NewDomainError("INVALID_PRODUCT", "Cart item product ID cannot be empty")
	}
	if c.VolumeML <= 0 {
		return shared.NewDomainError("INVALID_VOLUME", "Cart item volume must be positive")
	}
	if c.Quantity <= 0 {
		return shared.NewDomainError("INVALID_QUANTITY", "Cart item quantity must be positive")
	}
	return nil
}

// ValidateCart checks a whole cart, rejecting empty carts
func ValidateCart(items []CartItem) error {
	if len(items) == 0 {
		return shared.NewDomainError("EMPTY_CART", "Cart is empty")
	}
	for _, item := range items {
		if err := item.Validate(); err != nil {
			return err
		}
	}
	return nil
}
