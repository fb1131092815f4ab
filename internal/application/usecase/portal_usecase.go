package usecase

import (
	"context"
	"strings"

	"github.com/jhoicas/oasis-api/internal/application/dto"
	"github.com/jhoicas/oasis-api/internal/domain"
	"github.com/jhoicas/oasis-api/internal/domain/entity"
	"github.com/jhoicas/oasis-api/internal/domain/repository"
	"github.com/jhoicas/oasis-api/pkg/jwt"
)

// PortalUseCase lecturas del portal de clientes y del panel de administración.
// El cliente solo ve los pedidos y acuerdos asociados al email de su token.
type PortalUseCase struct {
	orders     repository.OrderRepository
	agreements repository.LegalAcceptanceRepository
}

// NewPortalUseCase construye el caso de uso.
func NewPortalUseCase(orders repository.OrderRepository, agreements repository.LegalAcceptanceRepository) *PortalUseCase {
	return &PortalUseCase{orders: orders, agreements: agreements}
}

// Me identidad del token.
func (uc *PortalUseCase) Me(id *jwt.Identity) dto.MeResponse {
	return dto.MeResponse{UserID: id.UserID, Email: id.Email, Role: id.Role}
}

// MyOrders pedidos del cliente.
func (uc *PortalUseCase) MyOrders(ctx context.Context, id *jwt.Identity) ([]dto.OrderResponse, error) {
	email, err := identityEmail(id)
	if err != nil {
		return nil, err
	}
	orders, err := uc.orders.ListByEmail(ctx, email)
	if err != nil {
		return nil, err
	}
	out := make([]dto.OrderResponse, 0, len(orders))
	for _, o := range orders {
		out = append(out, toOrderResponse(o))
	}
	return out, nil
}

// MyAgreements documentos aceptados por el cliente.
func (uc *PortalUseCase) MyAgreements(ctx context.Context, id *jwt.Identity) ([]dto.AgreementResponse, error) {
	email, err := identityEmail(id)
	if err != nil {
		return nil, err
	}
	recs, err := uc.agreements.ListByEmail(ctx, email)
	if err != nil {
		return nil, err
	}
	out := make([]dto.AgreementResponse, 0, len(recs))
	for _, r := range recs {
		out = append(out, dto.AgreementResponse{
			ID:                  r.ID,
			DocumentType:        r.DocumentType,
			DocumentVersion:     r.DocumentVersion,
			AcceptanceMethod:    r.AcceptanceMethod,
			RelatedPurchaseType: r.RelatedPurchaseType,
			CompanyName:         r.CompanyName,
			AcceptedAt:          r.AcceptedAt,
		})
	}
	return out, nil
}

// ListOrders listado paginado para administración.
func (uc *PortalUseCase) ListOrders(ctx context.Context, page dto.PageRequest) (*dto.OrderListResponse, error) {
	page.DefaultPage()
	orders, total, err := uc.orders.List(ctx, page.Limit, page.Offset)
	if err != nil {
		return nil, err
	}
	items := make([]dto.OrderResponse, 0, len(orders))
	for _, o := range orders {
		items = append(items, toOrderResponse(o))
	}
	return &dto.OrderListResponse{
		Items: items,
		Page:  dto.PageResponse{Limit: page.Limit, Offset: page.Offset, Total: total},
	}, nil
}

func identityEmail(id *jwt.Identity) (string, error) {
	if id == nil || strings.TrimSpace(id.Email) == "" {
		return "", domain.ErrUnauthorized
	}
	return strings.ToLower(strings.TrimSpace(id.Email)), nil
}

func toOrderResponse(o *entity.Order) dto.OrderResponse {
	return dto.OrderResponse{
		ID:                o.ID,
		CheckoutSessionID: o.CheckoutSessionID,
		CustomerName:      o.CustomerName,
		CustomerEmail:     o.CustomerEmail,
		BusinessName:      o.BusinessName,
		PurchaseType:      o.PurchaseType,
		Summary:           o.Summary,
		Currency:          string(o.Currency),
		SetupFee:          o.SetupFee,
		DiscountPercent:   o.DiscountPercent,
		PromoCode:         o.PromoCode,
		DiscountedSetup:   o.DiscountedSetup,
		MonthlyFee:        o.MonthlyFee,
		TotalDueToday:     o.TotalDueToday,
		Status:            o.Status,
		CreatedAt:         o.CreatedAt,
	}
}
