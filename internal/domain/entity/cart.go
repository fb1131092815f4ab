package entity

import "time"

// CartItem ítem seleccionado por el cliente. ProductID siempre resuelve en el catálogo.
type CartItem struct {
	ProductID   string
	ProductType ProductType
	Tier        TierKey // vacío para bundles
	Quantity    int
}

// Cart carrito de la sesión del navegador. Se elimina al completar el checkout.
type Cart struct {
	ID              string
	Items           []CartItem
	PromoCode       string
	DiscountPercent int
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

// Find devuelve el índice del producto en el carrito o -1.
func (c *Cart) Find(productType ProductType, productID string) int {
	for i, it := range c.Items {
		if it.ProductID == productID && it.ProductType == productType {
			return i
		}
	}
	return -1
}
