package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/oasis-api/internal/application/dto"
	"github.com/jhoicas/oasis-api/internal/application/usecase"
	"github.com/jhoicas/oasis-api/internal/domain"
)

// PortalHandler portal del cliente autenticado y listados de administración.
type PortalHandler struct {
	uc *usecase.PortalUseCase
}

// NewPortalHandler construye el handler.
func NewPortalHandler(uc *usecase.PortalUseCase) *PortalHandler {
	return &PortalHandler{uc: uc}
}

// Me GET /api/portal/me
func (h *PortalHandler) Me(c *fiber.Ctx) error {
	id := GetIdentity(c)
	if id == nil {
		return writeError(c, domain.ErrUnauthorized)
	}
	return c.JSON(h.uc.Me(id))
}

// MyOrders godoc
// @Summary      Pedidos del cliente
// @Tags         portal
// @Security     Bearer
// @Produce      json
// @Success      200  {array}   dto.OrderResponse
// @Failure      401  {object}  dto.ErrorResponse
// @Router       /api/portal/orders [get]
func (h *PortalHandler) MyOrders(c *fiber.Ctx) error {
	out, err := h.uc.MyOrders(c.Context(), GetIdentity(c))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// MyAgreements GET /api/portal/agreements
func (h *PortalHandler) MyAgreements(c *fiber.Ctx) error {
	out, err := h.uc.MyAgreements(c.Context(), GetIdentity(c))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// ListOrders GET /api/admin/orders?limit=20&offset=0 (admin)
func (h *PortalHandler) ListOrders(c *fiber.Ctx) error {
	var page dto.PageRequest
	if err := c.QueryParser(&page); err != nil {
		return badBody(c)
	}
	out, err := h.uc.ListOrders(c.Context(), page)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}
