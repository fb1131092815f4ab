package checkout

import (
	"github.com/jhoicas/oasis-api/internal/application/dto"
	domcheckout "github.com/jhoicas/oasis-api/internal/domain/checkout"
)

func (uc *UseCase) toResponse(s *domcheckout.Session) (*dto.CheckoutSessionResponse, error) {
	snap, err := s.Quote(uc.calc)
	if err != nil {
		return nil, err
	}
	items := make([]dto.CartItemDTO, 0, len(s.Selection.Items))
	for _, it := range s.Selection.Items {
		items = append(items, dto.CartItemDTO{
			ProductID:   it.ProductID,
			ProductType: string(it.ProductType),
			Tier:        string(it.Tier),
			Quantity:    it.Quantity,
		})
	}
	resp := &dto.CheckoutSessionResponse{
		ID:       s.ID,
		Flow:     string(s.Flow),
		Step:     int(s.Step),
		StepName: s.Step.String(),
		Selection: dto.SelectionDTO{
			ProductType: string(s.Selection.ProductType),
			ProductID:   s.Selection.ProductID,
			Tier:        string(s.Selection.Tier),
			Currency:    string(s.Selection.Currency),
			CartID:      s.Selection.CartID,
			Items:       items,
		},
		Promo: dto.PromoDTO{Code: s.Discount.Code, Percent: s.Discount.Percent, Error: s.Discount.Error},
		Details: dto.CustomerDetailsDTO{
			FullName:     s.Details.FullName,
			Email:        s.Details.Email,
			BusinessName: s.Details.BusinessName,
			Phone:        s.Details.Phone,
		},
		LegalAccepted:   s.Legal != nil,
		ReadyForHandoff: s.ReadyForHandoff(),
		Completed:       s.Completed,
		PaymentURL:      s.PaymentURL,
		Pricing:         dto.PricingFromSnapshot(snap),
		ExpiresAt:       s.ExpiresAt,
	}
	if s.NDA != nil {
		resp.NDA = &dto.NDADTO{
			UpfrontCost: s.NDA.UpfrontCost,
			MonthlyCost: s.NDA.MonthlyCost,
			Description: s.NDA.Description,
			Signature:   s.NDA.Signature,
			AcceptedAt:  s.NDA.AcceptedAt,
		}
	}
	return resp, nil
}
