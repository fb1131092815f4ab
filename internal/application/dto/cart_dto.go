package dto

import "time"

// CartItemDTO ítem del carrito. productType acepta "agent" como alias de automation.
type CartItemDTO struct {
	ProductID   string `json:"productId"`
	ProductType string `json:"productType"`
	Tier        string `json:"tier,omitempty"`
	Quantity    int    `json:"quantity,omitempty"`
}

// AddCartItemRequest entrada de POST /api/carts/:id/items.
type AddCartItemRequest = CartItemDTO

// CartResponse carrito con su resumen de precios.
type CartResponse struct {
	ID        string        `json:"id"`
	Items     []CartItemDTO `json:"items"`
	Promo     PromoDTO      `json:"promo"`
	Pricing   PricingDTO    `json:"pricing"`
	CreatedAt time.Time     `json:"createdAt"`
	UpdatedAt time.Time     `json:"updatedAt"`
}
