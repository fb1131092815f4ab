package http

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	appcheckout "github.com/jhoicas/oasis-api/internal/application/checkout"
	"github.com/jhoicas/oasis-api/internal/application/dto"
	"github.com/jhoicas/oasis-api/internal/domain"
)

// CheckoutHandler pasos del checkout y handoff al proveedor de pagos.
type CheckoutHandler struct {
	uc *appcheckout.UseCase
}

// NewCheckoutHandler construye el handler.
func NewCheckoutHandler(uc *appcheckout.UseCase) *CheckoutHandler {
	return &CheckoutHandler{uc: uc}
}

func requestMeta(c *fiber.Ctx) appcheckout.RequestMeta {
	return appcheckout.RequestMeta{UserAgent: c.Get(fiber.HeaderUserAgent), IP: c.IP()}
}

// Create godoc
// @Summary      Abrir una sesión de checkout
// @Description  Desde un producto (productType, productId, tier) o desde un carrito (cartId).
// @Tags         checkout
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateCheckoutRequest  true  "selección"
// @Success      201  {object}  dto.CheckoutSessionResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/checkout/sessions [post]
func (h *CheckoutHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateCheckoutRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	out, err := h.uc.Create(c.Context(), in)
	if err != nil {
		return writeError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// Get GET /api/checkout/sessions/:id
func (h *CheckoutHandler) Get(c *fiber.Ctx) error {
	out, err := h.uc.Get(c.Context(), c.Params("id"))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// UpdateSelection PUT /api/checkout/sessions/:id/selection
func (h *CheckoutHandler) UpdateSelection(c *fiber.Ctx) error {
	var in dto.UpdateSelectionRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	out, err := h.uc.UpdateSelection(c.Context(), c.Params("id"), in)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// ApplyPromo POST /api/checkout/sessions/:id/promo
func (h *CheckoutHandler) ApplyPromo(c *fiber.Ctx) error {
	var in dto.ValidatePromoRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	out, err := h.uc.ApplyPromo(c.Context(), c.Params("id"), in.Code)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// SubmitDetails godoc
// @Summary      Paso 1: datos del cliente
// @Tags         checkout
// @Accept       json
// @Produce      json
// @Param        id    path  string                  true  "session id"
// @Param        body  body  dto.CustomerDetailsDTO  true  "nombre, email, empresa, teléfono"
// @Success      200  {object}  dto.CheckoutSessionResponse
// @Failure      422  {object}  dto.ErrorResponse  "fields.email = Email is required | Please enter a valid email"
// @Failure      409  {object}  dto.ErrorResponse
// @Router       /api/checkout/sessions/{id}/details [post]
func (h *CheckoutHandler) SubmitDetails(c *fiber.Ctx) error {
	var in dto.CustomerDetailsDTO
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	out, err := h.uc.SubmitDetails(c.Context(), c.Params("id"), in)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// Back POST /api/checkout/sessions/:id/back
func (h *CheckoutHandler) Back(c *fiber.Ctx) error {
	out, err := h.uc.Back(c.Context(), c.Params("id"))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// SubmitLegal godoc
// @Summary      Paso 2: aceptación legal
// @Description  En el flujo standard registra el audit log y crea la sesión de pago. Un fallo devuelve 502 con la sesión en el mismo paso.
// @Tags         checkout
// @Accept       json
// @Produce      json
// @Param        id    path  string            true  "session id"
// @Param        body  body  dto.LegalRequest  true  "casillas"
// @Success      200  {object}  dto.CheckoutSessionResponse
// @Failure      422  {object}  dto.ErrorResponse
// @Failure      409  {object}  dto.ErrorResponse
// @Failure      502  {object}  dto.HandoffErrorResponse
// @Router       /api/checkout/sessions/{id}/legal [post]
func (h *CheckoutHandler) SubmitLegal(c *fiber.Ctx) error {
	var in dto.LegalRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	res, err := h.uc.SubmitLegal(c.Context(), c.Params("id"), in, requestMeta(c))
	return writeStep(c, res, err)
}

// SubmitNDA POST /api/checkout/sessions/:id/nda
func (h *CheckoutHandler) SubmitNDA(c *fiber.Ctx) error {
	var in dto.NDARequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	res, err := h.uc.SubmitNDA(c.Context(), c.Params("id"), in, requestMeta(c))
	return writeStep(c, res, err)
}

// writeStep en un fallo del handoff devuelve también la sesión para repintar el paso.
func writeStep(c *fiber.Ctx, res *appcheckout.StepResult, err error) error {
	var he *appcheckout.HandoffError
	if errors.As(err, &he) {
		body := dto.HandoffErrorResponse{Code: he.Stage, Message: he.Message}
		if res != nil {
			body.Session = res.Session
		}
		return c.Status(fiber.StatusBadGateway).JSON(body)
	}
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(res.Session)
}

// QuotePDF GET /api/checkout/sessions/:id/quote.pdf
func (h *CheckoutHandler) QuotePDF(c *fiber.Ctx) error {
	b, filename, err := h.uc.QuotePDF(c.Context(), c.Params("id"))
	if err != nil {
		return writeError(c, err)
	}
	c.Set(fiber.HeaderContentType, "application/pdf")
	c.Set(fiber.HeaderContentDisposition, `attachment; filename="`+filename+`"`)
	return c.Send(b)
}

// CreatePaymentSession godoc
// @Summary      Crear la sesión de pago directamente
// @Description  Recalcula el precio en el servidor; el descuento sale de promoCode. Responde {url} o {error}.
// @Tags         checkout
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreatePaymentSessionRequest  true  "payload de checkout"
// @Success      200  {object}  dto.PaymentSessionResponse
// @Failure      400  {object}  dto.PaymentErrorResponse
// @Failure      404  {object}  dto.PaymentErrorResponse
// @Failure      502  {object}  dto.PaymentErrorResponse
// @Router       /api/create-checkout-session [post]
func (h *CheckoutHandler) CreatePaymentSession(c *fiber.Ctx) error {
	var in dto.CreatePaymentSessionRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.PaymentErrorResponse{Error: "invalid request body"})
	}
	out, err := h.uc.CreatePaymentSession(c.Context(), in)
	if err == nil {
		return c.JSON(out)
	}

	var fe domain.FieldErrors
	var he *appcheckout.HandoffError
	switch {
	case errors.As(err, &fe):
		return c.Status(fiber.StatusBadRequest).JSON(dto.PaymentErrorResponse{Error: fe.Error()})
	case errors.As(err, &he):
		return c.Status(fiber.StatusBadGateway).JSON(dto.PaymentErrorResponse{Error: he.Message})
	case errors.Is(err, domain.ErrProductNotFound):
		return c.Status(fiber.StatusNotFound).JSON(dto.PaymentErrorResponse{Error: "Product not found"})
	case errors.Is(err, domain.ErrInvalidInput):
		return c.Status(fiber.StatusBadRequest).JSON(dto.PaymentErrorResponse{Error: err.Error()})
	default:
		c.Locals(localErr, err)
		return c.Status(fiber.StatusInternalServerError).JSON(dto.PaymentErrorResponse{Error: msgInternal})
	}
}
