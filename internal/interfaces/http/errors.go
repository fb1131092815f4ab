package http

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	appcheckout "github.com/jhoicas/oasis-api/internal/application/checkout"
	"github.com/jhoicas/oasis-api/internal/application/dto"
	"github.com/jhoicas/oasis-api/internal/application/usecase"
	"github.com/jhoicas/oasis-api/internal/domain"
)

// MsgInvalidInput mensaje para entradas rechazadas; el detalle queda en el log.
const MsgInvalidInput = "Invalid request. Please check the selected options and try again."

const (
	msgInternal = "Something went wrong. Please try again."
	msgConflict = "This request conflicts with the current state. Please refresh and try again."
	localErr    = "handler_error"
)

func badBody(c *fiber.Ctx) error {
	return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "invalid request body"})
}

// writeError traduce los errores de dominio a status HTTP y dto.ErrorResponse.
func writeError(c *fiber.Ctx, err error) error {
	var fe domain.FieldErrors
	if errors.As(err, &fe) {
		return c.Status(fiber.StatusUnprocessableEntity).JSON(dto.ErrorResponse{
			Code: "VALIDATION", Message: fe.Error(), Fields: fe,
		})
	}
	var he *appcheckout.HandoffError
	if errors.As(err, &he) {
		return c.Status(fiber.StatusBadGateway).JSON(dto.HandoffErrorResponse{Code: he.Stage, Message: he.Message})
	}

	status, code, msg := fiber.StatusInternalServerError, "INTERNAL", msgInternal
	switch {
	case errors.Is(err, domain.ErrProductNotFound):
		status, code, msg = fiber.StatusNotFound, "PRODUCT_NOT_FOUND", "Product not found"
	case errors.Is(err, domain.ErrNotFound):
		status, code, msg = fiber.StatusNotFound, "NOT_FOUND", "Resource not found"
	case errors.Is(err, domain.ErrInvalidInput):
		status, code, msg = fiber.StatusBadRequest, "INVALID_INPUT", MsgInvalidInput
	case errors.Is(err, domain.ErrSessionExpired):
		status, code, msg = fiber.StatusGone, "SESSION_EXPIRED", "Your checkout session expired. Please start again."
	case errors.Is(err, domain.ErrSubmitInProgress):
		status, code, msg = fiber.StatusConflict, "SUBMIT_IN_PROGRESS", "Your submission is already being processed"
	case errors.Is(err, domain.ErrCheckoutCompleted):
		status, code, msg = fiber.StatusConflict, "CHECKOUT_COMPLETED", "This checkout is already complete"
	case errors.Is(err, domain.ErrInvalidTransition), errors.Is(err, domain.ErrConflict):
		status, code, msg = fiber.StatusConflict, "CONFLICT", msgConflict
	case errors.Is(err, domain.ErrRateLimited):
		status, code, msg = fiber.StatusTooManyRequests, "RATE_LIMITED", usecase.MsgRateLimited
	case errors.Is(err, domain.ErrUnauthorized):
		status, code, msg = fiber.StatusUnauthorized, "UNAUTHORIZED", "authentication required"
	case errors.Is(err, domain.ErrForbidden):
		status, code, msg = fiber.StatusForbidden, "FORBIDDEN", "insufficient permissions"
	case errors.Is(err, domain.ErrServiceUnavailable):
		status, code, msg = fiber.StatusServiceUnavailable, "UNAVAILABLE", "This service is not available right now"
	}
	if status == fiber.StatusInternalServerError || status == fiber.StatusBadRequest || code == "CONFLICT" {
		// RequestLogger registra el detalle; el cliente solo ve el mensaje fijo.
		c.Locals(localErr, err)
	}
	return c.Status(status).JSON(dto.ErrorResponse{Code: code, Message: msg})
}
