package postgres

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/oasis-api/internal/domain/checkout"
	"github.com/jhoicas/oasis-api/internal/domain/entity"
	"github.com/jhoicas/oasis-api/internal/domain/pricing"
)

// ── Migraciones embebidas ───────────────────────────────────────────────────

func TestMigrations_OrdenadasYConTablas(t *testing.T) {
	ms, err := Migrations()
	require.NoError(t, err)
	require.NotEmpty(t, ms)
	assert.Equal(t, "0001_init", ms[0].Version)

	for _, table := range []string{"carts", "checkout_sessions", "legal_acceptances", "orders", "contact_messages"} {
		assert.Contains(t, ms[0].SQL, "CREATE TABLE IF NOT EXISTS "+table)
	}
}

// ── Estado JSONB de la sesión ───────────────────────────────────────────────

func TestSessionState_ConservaNDAYDescuento(t *testing.T) {
	now := time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)
	s := &checkout.Session{
		ID:   "s-1",
		Flow: checkout.FlowCustomAgreement,
		Step: checkout.StepNDA,
		Selection: checkout.Selection{
			Currency: entity.CurrencyUSD,
			CartID:   "c-1",
			Items: []entity.CartItem{
				{ProductID: "ai-receptionist", ProductType: entity.ProductTypeAutomation, Tier: "starter", Quantity: 1},
			},
		},
		Discount: pricing.DiscountState{Code: "WELCOME10", Percent: 10},
		Details:  checkout.CustomerDetails{FullName: "Ana Díaz", Email: "ana@example.com"},
		Legal:    &checkout.LegalAcceptance{AcceptedAt: now},
		NDA: &checkout.NDAAcceptance{
			UpfrontCost: decimal.NewFromInt(1500),
			MonthlyCost: decimal.NewFromInt(200),
			Description: "Integración a medida",
			Signature:   "Ana Díaz",
			AcceptedAt:  now,
		},
	}

	raw, err := encodeSession(s)
	require.NoError(t, err)

	var got checkout.Session
	require.NoError(t, decodeSession(raw, &got))

	assert.Equal(t, s.Selection, got.Selection)
	assert.Equal(t, s.Discount, got.Discount)
	assert.Equal(t, s.Details, got.Details)
	require.NotNil(t, got.Legal)
	assert.True(t, now.Equal(got.Legal.AcceptedAt))
	require.NotNil(t, got.NDA)
	assert.True(t, got.NDA.UpfrontCost.Equal(decimal.NewFromInt(1500)))
	assert.Equal(t, "Ana Díaz", got.NDA.Signature)
}

func TestSessionState_SinLegalNiNDA(t *testing.T) {
	s := &checkout.Session{
		Selection: checkout.Selection{ProductType: entity.ProductTypeBundle, ProductID: "growth-bundle", Currency: entity.CurrencyCAD},
	}
	raw, err := encodeSession(s)
	require.NoError(t, err)

	var got checkout.Session
	require.NoError(t, decodeSession(raw, &got))
	assert.Nil(t, got.Legal)
	assert.Nil(t, got.NDA)
	assert.Empty(t, got.Selection.Items)
	assert.Equal(t, "growth-bundle", got.Selection.ProductID)
}
