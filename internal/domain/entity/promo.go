package entity

// AppliesTo parte del precio sobre la que actúa un código promocional.
type AppliesTo string

const (
	AppliesToSetup   AppliesTo = "setup"
	AppliesToMonthly AppliesTo = "monthly"
	AppliesToBoth    AppliesTo = "both"
)

// IncludesSetup indica si el código descuenta la tarifa de instalación.
func (a AppliesTo) IncludesSetup() bool {
	return a == AppliesToSetup || a == AppliesToBoth
}

// PromoCode entrada de la tabla estática de códigos.
type PromoCode struct {
	Code      string // clave en mayúsculas
	Percent   int    // 0–100
	AppliesTo AppliesTo
}
