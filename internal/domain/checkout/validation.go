package checkout

import (
	"regexp"

	"github.com/jhoicas/oasis-api/internal/domain"
)

// Mensajes de validación que ve el cliente.
const (
	MsgNameRequired      = "Name is required"
	MsgEmailRequired     = "Email is required"
	MsgEmailInvalid      = "Please enter a valid email"
	MsgAcceptAll         = "You must accept all agreements to continue"
	MsgCostRequired      = "Enter an upfront or monthly cost"
	MsgSignatureRequired = "Signature is required"
	MsgSignatureMismatch = "Signature must match your full name"
	MsgAgreementRequired = "You must agree to the agreement terms"
)

// Campos con error.
const (
	FieldFullName  = "fullName"
	FieldEmail     = "email"
	FieldLegal     = "legal"
	FieldCost      = "cost"
	FieldSignature = "signature"
	FieldAgreement = "agreement"
)

var emailPattern = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

// ValidEmail aplica el mismo patrón que el formulario.
func ValidEmail(email string) bool {
	return emailPattern.MatchString(email)
}

// FieldErrors alias del tipo de dominio para los pasos del checkout.
type FieldErrors = domain.FieldErrors
