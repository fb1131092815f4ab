package usecase

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/oasis-api/internal/application/dto"
	"github.com/jhoicas/oasis-api/internal/domain"
	"github.com/jhoicas/oasis-api/internal/domain/entity"
	"github.com/jhoicas/oasis-api/pkg/jwt"
)

type fakeOrderRepo struct {
	orders      []*entity.Order
	lastLimit   int
	lastOffset  int
	queriedWith string
}

func (r *fakeOrderRepo) Create(_ context.Context, o *entity.Order) error {
	r.orders = append(r.orders, o)
	return nil
}

func (r *fakeOrderRepo) ListByEmail(_ context.Context, email string) ([]*entity.Order, error) {
	r.queriedWith = email
	var out []*entity.Order
	for _, o := range r.orders {
		if o.CustomerEmail == email {
			out = append(out, o)
		}
	}
	return out, nil
}

func (r *fakeOrderRepo) List(_ context.Context, limit, offset int) ([]*entity.Order, int, error) {
	r.lastLimit, r.lastOffset = limit, offset
	return r.orders, len(r.orders), nil
}

type fakeAgreementRepo struct {
	records []*entity.LegalAcceptance
}

func (r *fakeAgreementRepo) CreateBatch(_ context.Context, recs []entity.LegalAcceptance) error {
	for i := range recs {
		r.records = append(r.records, &recs[i])
	}
	return nil
}

func (r *fakeAgreementRepo) ListByEmail(_ context.Context, email string) ([]*entity.LegalAcceptance, error) {
	var out []*entity.LegalAcceptance
	for _, rec := range r.records {
		if rec.ClientEmail == email {
			out = append(out, rec)
		}
	}
	return out, nil
}

func TestPortal_MisPedidosFiltraPorEmailNormalizado(t *testing.T) {
	orders := &fakeOrderRepo{orders: []*entity.Order{
		{ID: "o1", CustomerEmail: "jane@example.com", Currency: entity.CurrencyUSD, TotalDueToday: decimal.NewFromInt(919), Status: entity.OrderStatusPendingPayment},
		{ID: "o2", CustomerEmail: "other@example.com"},
	}}
	uc := NewPortalUseCase(orders, &fakeAgreementRepo{})

	out, err := uc.MyOrders(context.Background(), &jwt.Identity{UserID: "u1", Email: "  Jane@Example.com "})
	require.NoError(t, err)
	assert.Equal(t, "jane@example.com", orders.queriedWith)
	require.Len(t, out, 1)
	assert.Equal(t, "o1", out[0].ID)
	assert.Equal(t, "usd", out[0].Currency)
	assert.True(t, decimal.NewFromInt(919).Equal(out[0].TotalDueToday))
}

func TestPortal_SinEmailEsNoAutorizado(t *testing.T) {
	uc := NewPortalUseCase(&fakeOrderRepo{}, &fakeAgreementRepo{})

	_, err := uc.MyOrders(context.Background(), &jwt.Identity{UserID: "u1"})
	assert.ErrorIs(t, err, domain.ErrUnauthorized)

	_, err = uc.MyAgreements(context.Background(), nil)
	assert.ErrorIs(t, err, domain.ErrUnauthorized)
}

func TestPortal_MisAcuerdos(t *testing.T) {
	now := time.Now()
	agreements := &fakeAgreementRepo{records: []*entity.LegalAcceptance{
		{ID: "a1", ClientEmail: "jane@example.com", DocumentType: entity.DocumentTermsOfService, DocumentVersion: "1.0", AcceptanceMethod: entity.AcceptanceMethodCheckbox, AcceptedAt: now},
		{ID: "a2", ClientEmail: "jane@example.com", DocumentType: entity.DocumentNDA, AcceptanceMethod: entity.AcceptanceMethodTypedSignature, CompanyName: "Acme", AcceptedAt: now},
	}}
	uc := NewPortalUseCase(&fakeOrderRepo{}, agreements)

	out, err := uc.MyAgreements(context.Background(), &jwt.Identity{Email: "jane@example.com"})
	require.NoError(t, err)
	require.Len(t, out, 2)
	assert.Equal(t, entity.DocumentNDA, out[1].DocumentType)
	assert.Equal(t, "Acme", out[1].CompanyName)
}

func TestPortal_ListOrdersAplicaPaginaPorDefecto(t *testing.T) {
	orders := &fakeOrderRepo{orders: []*entity.Order{{ID: "o1"}}}
	uc := NewPortalUseCase(orders, &fakeAgreementRepo{})

	out, err := uc.ListOrders(context.Background(), dto.PageRequest{Limit: 500, Offset: -3})
	require.NoError(t, err)
	assert.Equal(t, 100, orders.lastLimit)
	assert.Equal(t, 0, orders.lastOffset)
	assert.Equal(t, 1, out.Page.Total)
	assert.Len(t, out.Items, 1)
}
