package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/oasis-api/internal/application/dto"
	"github.com/jhoicas/oasis-api/internal/application/usecase"
)

// CatalogHandler catálogo, cotizaciones y validación de códigos promocionales (público).
type CatalogHandler struct {
	uc *usecase.CatalogUseCase
}

// NewCatalogHandler construye el handler.
func NewCatalogHandler(uc *usecase.CatalogUseCase) *CatalogHandler {
	return &CatalogHandler{uc: uc}
}

// ListAutomations godoc
// @Summary      Listar automatizaciones
// @Tags         catalog
// @Produce      json
// @Param        currency  query  string  false  "cad (default) o usd"
// @Success      200  {array}   dto.AutomationDTO
// @Failure      400  {object}  dto.ErrorResponse
// @Router       /api/catalog/automations [get]
func (h *CatalogHandler) ListAutomations(c *fiber.Ctx) error {
	list, err := h.uc.ListAutomations(c.Query("currency"))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(list)
}

// ListBundles godoc
// @Summary      Listar bundles
// @Tags         catalog
// @Produce      json
// @Param        currency  query  string  false  "cad (default) o usd"
// @Success      200  {array}   dto.BundleDTO
// @Router       /api/catalog/bundles [get]
func (h *CatalogHandler) ListBundles(c *fiber.Ctx) error {
	list, err := h.uc.ListBundles(c.Query("currency"))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(list)
}

// GetProduct GET /api/catalog/:type/:id
func (h *CatalogHandler) GetProduct(c *fiber.Ctx) error {
	p, err := h.uc.GetProduct(c.Params("type"), c.Params("id"), c.Query("currency"))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(p)
}

// Quote godoc
// @Summary      Cotizar un producto
// @Description  Precio con el código aplicado. Un código inválido no es error: promo.error trae "Invalid promo code".
// @Tags         pricing
// @Produce      json
// @Param        productType  query  string  true   "automation | bundle"
// @Param        productId    query  string  true   "id del catálogo"
// @Param        tier         query  string  false  "starter | professional | business"
// @Param        currency     query  string  false  "cad | usd"
// @Param        promoCode    query  string  false  "código promocional"
// @Success      200  {object}  dto.QuoteResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/pricing/quote [get]
func (h *CatalogHandler) Quote(c *fiber.Ctx) error {
	var req dto.QuoteRequest
	if err := c.QueryParser(&req); err != nil {
		return badBody(c)
	}
	out, err := h.uc.Quote(req)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// ValidatePromo POST /api/promo/validate
func (h *CatalogHandler) ValidatePromo(c *fiber.Ctx) error {
	var req dto.ValidatePromoRequest
	if err := c.BodyParser(&req); err != nil {
		return badBody(c)
	}
	return c.JSON(h.uc.ValidatePromo(req.Code))
}
