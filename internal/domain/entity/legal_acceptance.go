package entity

import "time"

// Documentos legales que el cliente acepta en el checkout.
const (
	DocumentTermsOfService   = "terms_of_service"
	DocumentPrivacyPolicy    = "privacy_policy"
	DocumentServiceAgreement = "service_agreement"
	DocumentNDA              = "nda"
)

// Métodos de aceptación registrados en el audit log.
const (
	AcceptanceMethodCheckbox       = "checkbox"
	AcceptanceMethodTypedSignature = "typed_signature"
)

// LegalAcceptance registro inmutable del audit log (una fila por documento aceptado).
type LegalAcceptance struct {
	ID                  string
	CheckoutSessionID   string
	ClientName          string
	ClientEmail         string
	CompanyName         string
	DocumentType        string
	DocumentVersion     string
	AcceptanceMethod    string
	RelatedPurchaseType string // automation | bundle | cart | custom_agreement
	UserAgent           string
	IPAddress           string
	AcceptedAt          time.Time
}
