package postgres

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/oasis-api/internal/domain"
	"github.com/jhoicas/oasis-api/internal/domain/checkout"
	"github.com/jhoicas/oasis-api/internal/domain/entity"
	"github.com/jhoicas/oasis-api/internal/domain/pricing"
	"github.com/jhoicas/oasis-api/internal/domain/repository"
)

var _ repository.CheckoutSessionRepository = (*CheckoutSessionRepo)(nil)

// CheckoutSessionRepo guarda la sesión como JSONB (state) más las columnas
// por las que se filtra: paso, estado y vencimiento.
type CheckoutSessionRepo struct {
	q Querier
}

// NewCheckoutSessionRepository construye el adaptador.
func NewCheckoutSessionRepository(q Querier) *CheckoutSessionRepo {
	return &CheckoutSessionRepo{q: q}
}

type sessionState struct {
	Selection struct {
		ProductType string           `json:"productType,omitempty"`
		ProductID   string           `json:"productId,omitempty"`
		Tier        string           `json:"tier,omitempty"`
		Currency    string           `json:"currency"`
		CartID      string           `json:"cartId,omitempty"`
		Items       []cartItemRecord `json:"items,omitempty"`
	} `json:"selection"`
	Discount struct {
		Code    string `json:"code,omitempty"`
		Percent int    `json:"percent"`
		Error   string `json:"error,omitempty"`
	} `json:"discount"`
	Details struct {
		FullName     string `json:"fullName"`
		Email        string `json:"email"`
		BusinessName string `json:"businessName,omitempty"`
		Phone        string `json:"phone,omitempty"`
	} `json:"details"`
	LegalAcceptedAt *time.Time `json:"legalAcceptedAt,omitempty"`
	NDA             *ndaState  `json:"nda,omitempty"`
	PaymentURL      string     `json:"paymentUrl,omitempty"`
}

type ndaState struct {
	UpfrontCost decimal.Decimal `json:"upfrontCost"`
	MonthlyCost decimal.Decimal `json:"monthlyCost"`
	Description string          `json:"description"`
	Signature   string          `json:"signature"`
	AcceptedAt  time.Time       `json:"acceptedAt"`
}

func encodeSession(s *checkout.Session) ([]byte, error) {
	var st sessionState
	sel := s.Selection
	st.Selection.ProductType = string(sel.ProductType)
	st.Selection.ProductID = sel.ProductID
	st.Selection.Tier = string(sel.Tier)
	st.Selection.Currency = string(sel.Currency)
	st.Selection.CartID = sel.CartID
	for _, it := range sel.Items {
		st.Selection.Items = append(st.Selection.Items, cartItemRecord{
			ProductID: it.ProductID, ProductType: string(it.ProductType), Tier: string(it.Tier), Quantity: it.Quantity,
		})
	}
	st.Discount.Code = s.Discount.Code
	st.Discount.Percent = s.Discount.Percent
	st.Discount.Error = s.Discount.Error
	st.Details.FullName = s.Details.FullName
	st.Details.Email = s.Details.Email
	st.Details.BusinessName = s.Details.BusinessName
	st.Details.Phone = s.Details.Phone
	if s.Legal != nil {
		at := s.Legal.AcceptedAt
		st.LegalAcceptedAt = &at
	}
	if s.NDA != nil {
		st.NDA = &ndaState{
			UpfrontCost: s.NDA.UpfrontCost,
			MonthlyCost: s.NDA.MonthlyCost,
			Description: s.NDA.Description,
			Signature:   s.NDA.Signature,
			AcceptedAt:  s.NDA.AcceptedAt,
		}
	}
	st.PaymentURL = s.PaymentURL
	return json.Marshal(st)
}

func decodeSession(raw []byte, s *checkout.Session) error {
	var st sessionState
	if err := json.Unmarshal(raw, &st); err != nil {
		return err
	}
	s.Selection = checkout.Selection{
		ProductType: entity.ProductType(st.Selection.ProductType),
		ProductID:   st.Selection.ProductID,
		Tier:        entity.TierKey(st.Selection.Tier),
		Currency:    entity.Currency(st.Selection.Currency),
		CartID:      st.Selection.CartID,
		Items:       decodeCartItemRecords(st.Selection.Items),
	}
	s.Discount = pricing.DiscountState{Code: st.Discount.Code, Percent: st.Discount.Percent, Error: st.Discount.Error}
	s.Details = checkout.CustomerDetails{
		FullName:     st.Details.FullName,
		Email:        st.Details.Email,
		BusinessName: st.Details.BusinessName,
		Phone:        st.Details.Phone,
	}
	if st.LegalAcceptedAt != nil {
		s.Legal = &checkout.LegalAcceptance{AcceptedAt: *st.LegalAcceptedAt}
	}
	if st.NDA != nil {
		s.NDA = &checkout.NDAAcceptance{
			UpfrontCost: st.NDA.UpfrontCost,
			MonthlyCost: st.NDA.MonthlyCost,
			Description: st.NDA.Description,
			Signature:   st.NDA.Signature,
			AcceptedAt:  st.NDA.AcceptedAt,
		}
	}
	s.PaymentURL = st.PaymentURL
	return nil
}

// Create inserta la sesión.
func (r *CheckoutSessionRepo) Create(ctx context.Context, s *checkout.Session) error {
	state, err := encodeSession(s)
	if err != nil {
		return fmt.Errorf("encode checkout session: %w", err)
	}
	query := `
		INSERT INTO checkout_sessions (id, flow, step, state, customer_email, submitting, completed,
			created_at, updated_at, expires_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`
	_, err = r.q.Exec(ctx, query,
		s.ID, string(s.Flow), int(s.Step), state, nullIfEmpty(s.Details.Email), s.Submitting, s.Completed,
		s.CreatedAt, s.UpdatedAt, s.ExpiresAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("checkout session %s: %w", s.ID, domain.ErrConflict)
		}
		return fmt.Errorf("insert checkout session: %w", err)
	}
	return nil
}

// GetByID devuelve domain.ErrNotFound si no existe.
func (r *CheckoutSessionRepo) GetByID(ctx context.Context, id string) (*checkout.Session, error) {
	query := `
		SELECT id, flow, step, state, submitting, completed, created_at, updated_at, expires_at
		FROM checkout_sessions WHERE id = $1`
	var s checkout.Session
	var flow string
	var step int
	var state []byte
	err := r.q.QueryRow(ctx, query, id).Scan(
		&s.ID, &flow, &step, &state, &s.Submitting, &s.Completed, &s.CreatedAt, &s.UpdatedAt, &s.ExpiresAt,
	)
	if err != nil {
		return nil, notFound(err)
	}
	s.Flow = checkout.Flow(flow)
	s.Step = checkout.Step(step)
	if err := decodeSession(state, &s); err != nil {
		return nil, fmt.Errorf("decode checkout session: %w", err)
	}
	return &s, nil
}

// Update guarda el estado completo.
func (r *CheckoutSessionRepo) Update(ctx context.Context, s *checkout.Session) error {
	state, err := encodeSession(s)
	if err != nil {
		return fmt.Errorf("encode checkout session: %w", err)
	}
	query := `
		UPDATE checkout_sessions
		SET flow = $2, step = $3, state = $4, customer_email = $5, submitting = $6, completed = $7,
			updated_at = $8, expires_at = $9
		WHERE id = $1`
	tag, err := r.q.Exec(ctx, query,
		s.ID, string(s.Flow), int(s.Step), state, nullIfEmpty(s.Details.Email), s.Submitting, s.Completed,
		s.UpdatedAt, s.ExpiresAt,
	)
	if err != nil {
		return fmt.Errorf("update checkout session: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// DeleteExpired borra sesiones vencidas que no llegaron al handoff.
func (r *CheckoutSessionRepo) DeleteExpired(ctx context.Context, now time.Time) (int64, error) {
	tag, err := r.q.Exec(ctx, `DELETE FROM checkout_sessions WHERE completed = FALSE AND expires_at < $1`, now)
	if err != nil {
		return 0, fmt.Errorf("delete expired checkout sessions: %w", err)
	}
	return tag.RowsAffected(), nil
}
