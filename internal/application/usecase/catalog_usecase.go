package usecase

import (
	"fmt"

	"github.com/jhoicas/oasis-api/internal/application/dto"
	"github.com/jhoicas/oasis-api/internal/domain"
	"github.com/jhoicas/oasis-api/internal/domain/entity"
	"github.com/jhoicas/oasis-api/internal/domain/pricing"
	"github.com/jhoicas/oasis-api/pkg/metrics"
)

// CatalogUseCase catálogo público, cotizaciones y validación de códigos.
type CatalogUseCase struct {
	calc   *pricing.Calculator
	engine *pricing.DiscountEngine
}

// NewCatalogUseCase construye el caso de uso.
func NewCatalogUseCase(calc *pricing.Calculator, engine *pricing.DiscountEngine) *CatalogUseCase {
	return &CatalogUseCase{calc: calc, engine: engine}
}

// ListAutomations automatizaciones con precios en la moneda pedida.
func (uc *CatalogUseCase) ListAutomations(currency string) ([]dto.AutomationDTO, error) {
	cur, ok := pricing.ParseCurrency(currency)
	if !ok {
		return nil, fmt.Errorf("currency %q: %w", currency, domain.ErrInvalidInput)
	}
	items := uc.calc.Catalog().Automations()
	out := make([]dto.AutomationDTO, 0, len(items))
	for _, it := range items {
		out = append(out, toAutomationDTO(it, cur))
	}
	return out, nil
}

// ListBundles bundles con precios en la moneda pedida.
func (uc *CatalogUseCase) ListBundles(currency string) ([]dto.BundleDTO, error) {
	cur, ok := pricing.ParseCurrency(currency)
	if !ok {
		return nil, fmt.Errorf("currency %q: %w", currency, domain.ErrInvalidInput)
	}
	bundles := uc.calc.Catalog().Bundles()
	out := make([]dto.BundleDTO, 0, len(bundles))
	for _, b := range bundles {
		out = append(out, toBundleDTO(b, cur))
	}
	return out, nil
}

// GetProduct devuelve una automatización o un bundle.
func (uc *CatalogUseCase) GetProduct(productType, id, currency string) (interface{}, error) {
	pt, ok := entity.ParseProductType(productType)
	if !ok {
		return nil, domain.ErrProductNotFound
	}
	cur, ok := pricing.ParseCurrency(currency)
	if !ok {
		return nil, fmt.Errorf("currency %q: %w", currency, domain.ErrInvalidInput)
	}
	cat := uc.calc.Catalog()
	switch pt {
	case entity.ProductTypeAutomation:
		if it, ok := cat.Automation(id); ok {
			a := toAutomationDTO(it, cur)
			return &a, nil
		}
	case entity.ProductTypeBundle:
		if b, ok := cat.Bundle(id); ok {
			d := toBundleDTO(b, cur)
			return &d, nil
		}
	}
	return nil, domain.ErrProductNotFound
}

// Quote cotiza un producto con el código opcional. Un código inválido no es
// error: se cotiza sin descuento y el mensaje viaja en promo.error.
func (uc *CatalogUseCase) Quote(req dto.QuoteRequest) (*dto.QuoteResponse, error) {
	pt, ok := entity.ParseProductType(req.ProductType)
	if !ok {
		return nil, domain.ErrProductNotFound
	}
	tier, ok := entity.ParseTier(req.Tier)
	if !ok {
		return nil, fmt.Errorf("tier %q: %w", req.Tier, domain.ErrInvalidInput)
	}
	cur, ok := pricing.ParseCurrency(req.Currency)
	if !ok {
		return nil, fmt.Errorf("currency %q: %w", req.Currency, domain.ErrInvalidInput)
	}
	var promo pricing.PromoResult
	if req.PromoCode != "" {
		promo = uc.applyPromo(req.PromoCode)
	}
	if pt == entity.ProductTypeBundle {
		tier = ""
	}
	snap, err := uc.calc.Quote([]entity.CartItem{{ProductID: req.ProductID, ProductType: pt, Tier: tier, Quantity: 1}}, cur, promo.Percent)
	if err != nil {
		return nil, err
	}
	return &dto.QuoteResponse{
		Pricing: dto.PricingFromSnapshot(snap),
		Promo:   toPromoDTO(promo.Code, promo.Percent, promo.Error),
	}, nil
}

// ValidatePromo aplica el código sin carrito ni sesión.
func (uc *CatalogUseCase) ValidatePromo(code string) dto.ValidatePromoResponse {
	res := uc.applyPromo(code)
	return dto.ValidatePromoResponse{Success: res.Success, Code: res.Code, Percent: res.Percent, Error: res.Error}
}

func (uc *CatalogUseCase) applyPromo(code string) pricing.PromoResult {
	res := uc.engine.Apply(code)
	metrics.PromoApplications.WithLabelValues(res.Outcome()).Inc()
	return res
}

func toAutomationDTO(it entity.CatalogItem, cur entity.Currency) dto.AutomationDTO {
	tiers := make(map[string]dto.TierDTO, len(it.Tiers))
	for k, t := range it.Tiers {
		tiers[string(k)] = dto.TierDTO{Name: t.Name, Price: pricing.Convert(t.Price, entity.CurrencyCAD, cur)}
	}
	return dto.AutomationDTO{
		ID:          it.ID,
		Name:        it.Name,
		Description: it.Description,
		Icon:        it.Icon.String(),
		Currency:    string(cur),
		SetupFee:    pricing.Convert(it.SetupFee, entity.CurrencyCAD, cur),
		Tiers:       tiers,
		Features:    it.Features,
	}
}

func toBundleDTO(b entity.Bundle, cur entity.Currency) dto.BundleDTO {
	return dto.BundleDTO{
		ID:            b.ID,
		Name:          b.Name,
		Description:   b.Description,
		Icon:          b.Icon.String(),
		Currency:      string(cur),
		SetupFee:      pricing.Convert(b.SetupFee, entity.CurrencyCAD, cur),
		MonthlyFee:    pricing.Convert(b.MonthlyFee, entity.CurrencyCAD, cur),
		Features:      b.Features,
		AutomationIDs: b.AutomationIDs,
	}
}

func toPromoDTO(code string, percent int, errMsg string) dto.PromoDTO {
	return dto.PromoDTO{Code: code, Percent: percent, Error: errMsg}
}
