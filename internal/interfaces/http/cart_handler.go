package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/oasis-api/internal/application/cart"
	"github.com/jhoicas/oasis-api/internal/application/dto"
)

// CartHandler carrito del visitante. La moneda de la respuesta viene en ?currency=.
type CartHandler struct {
	uc *cart.UseCase
}

// NewCartHandler construye el handler.
func NewCartHandler(uc *cart.UseCase) *CartHandler {
	return &CartHandler{uc: uc}
}

// Create POST /api/carts
func (h *CartHandler) Create(c *fiber.Ctx) error {
	out, err := h.uc.Create(c.Context(), c.Query("currency"))
	if err != nil {
		return writeError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// Get GET /api/carts/:id
func (h *CartHandler) Get(c *fiber.Ctx) error {
	out, err := h.uc.Get(c.Context(), c.Params("id"), c.Query("currency"))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// AddItem godoc
// @Summary      Agregar o reemplazar un ítem
// @Description  Volver a agregar el mismo producto reemplaza nivel y cantidad.
// @Tags         carts
// @Accept       json
// @Produce      json
// @Param        id    path  string               true  "cart id"
// @Param        body  body  dto.AddCartItemRequest  true  "producto"
// @Success      200  {object}  dto.CartResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/carts/{id}/items [post]
func (h *CartHandler) AddItem(c *fiber.Ctx) error {
	var in dto.AddCartItemRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	out, err := h.uc.AddItem(c.Context(), c.Params("id"), c.Query("currency"), in)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// RemoveItem DELETE /api/carts/:id/items/:productId
func (h *CartHandler) RemoveItem(c *fiber.Ctx) error {
	out, err := h.uc.RemoveItem(c.Context(), c.Params("id"), c.Params("productId"), c.Query("currency"))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// ApplyPromo POST /api/carts/:id/promo
func (h *CartHandler) ApplyPromo(c *fiber.Ctx) error {
	var in dto.ValidatePromoRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	out, err := h.uc.ApplyPromo(c.Context(), c.Params("id"), c.Query("currency"), in.Code)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// Delete DELETE /api/carts/:id
func (h *CartHandler) Delete(c *fiber.Ctx) error {
	if err := h.uc.Delete(c.Context(), c.Params("id")); err != nil {
		return writeError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}
