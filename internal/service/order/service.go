package order

import (
	"context"
	"errors"

	"gamestore/internal/domain"
	"gamestore/internal/payment"
	orderrepo "gamestore/internal/repository/order"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
)

type orderRepo interface {
	CreateDraft(ctx context.Context, in orderrepo.CreateDraftInput) (*domain.Order, error)
	GetDraft(ctx context.Context, customerKey string) (*domain.Order, error)
	Finalize(ctx context.Context, customerKey, orderID string) error
	ListByCustomer(ctx context.Context, customerKey string) ([]domain.Order, error)
	GetByID(ctx context.Context, customerKey, orderID string) (*domain.Order, error)
}

type cartTotaler interface {
	Total(ctx context.Context, customerKey string) (int, decimal.Decimal, error)
}

type paymentGateway interface {
	CreateSession(ctx context.Context, orderID string, total decimal.Decimal) (string, error)
	Confirm(ctx context.Context, sessionID string) (payment.Confirmation, error)
}

// Service drives an order from draft through payment to finalization.
type Service struct {
	repo    orderRepo
	cart    cartTotaler
	gateway paymentGateway
	logger  zerolog.Logger
}

func New(repo orderRepo, cart cartTotaler, gateway paymentGateway, logger zerolog.Logger) *Service {
	return &Service{repo: repo, cart: cart, gateway: gateway, logger: logger}
}

// OpenCheckout snapshots the live cart total into a new draft order,
// superseding any draft the customer already had. Empty and zero-total carts
// are rejected.
func (s *Service) OpenCheckout(ctx context.Context, customerKey string, shipping domain.ShippingDetails) (*domain.Order, error) {
	count, total, err := s.cart.Total(ctx, customerKey)
	if err != nil {
		return nil, err
	}
	if count == 0 || !total.IsPositive() {
		return nil, domain.ErrNoActiveCart
	}
	order, err := s.repo.CreateDraft(ctx, orderrepo.CreateDraftInput{
		CustomerKey: customerKey,
		Total:       total,
		Shipping:    shipping,
	})
	if err != nil {
		return nil, err
	}
	s.logger.Info().Str("order_id", order.ID).Msg("order: opened checkout")
	return order, nil
}

// CurrentDraft returns the customer's single in-progress order.
func (s *Service) CurrentDraft(ctx context.Context, customerKey string) (*domain.Order, error) {
	order, err := s.repo.GetDraft(ctx, customerKey)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.ErrNoActiveCheckout
		}
		return nil, err
	}
	return order, nil
}

// PaymentSession opens a payment-processor session for the current draft and
// returns its id for the client redirect.
func (s *Service) PaymentSession(ctx context.Context, customerKey string) (string, error) {
	draft, err := s.CurrentDraft(ctx, customerKey)
	if err != nil {
		return "", err
	}
	return s.gateway.CreateSession(ctx, draft.ID, draft.Total)
}

// Finalize commits the customer's draft order: every cart line becomes an
// immutable order line, the cart is emptied and the draft is closed, as one
// atomic unit. The transition is gated on a payment confirmation for this
// exact draft; holding an open draft is not enough to finalize it.
func (s *Service) Finalize(ctx context.Context, customerKey, paymentSessionID string) (string, error) {
	draft, err := s.CurrentDraft(ctx, customerKey)
	if err != nil {
		return "", err
	}

	conf, err := s.gateway.Confirm(ctx, paymentSessionID)
	if err != nil {
		return "", err
	}
	if !conf.Paid || conf.OrderID != draft.ID {
		s.logger.Warn().
			Str("order_id", draft.ID).
			Str("session_order_id", conf.OrderID).
			Bool("paid", conf.Paid).
			Msg("order: rejected finalize without confirmed payment")
		return "", domain.ErrPaymentNotConfirmed
	}

	if err := s.repo.Finalize(ctx, customerKey, draft.ID); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return "", domain.ErrNoActiveCheckout
		}
		return "", err
	}
	s.logger.Info().Str("order_id", draft.ID).Msg("order: finalized")
	return draft.ID, nil
}

// List returns the customer's finalized orders, newest first.
func (s *Service) List(ctx context.Context, customerKey string) ([]domain.Order, error) {
	return s.repo.ListByCustomer(ctx, customerKey)
}

// Get returns one of the customer's orders with its lines.
func (s *Service) Get(ctx context.Context, customerKey, orderID string) (*domain.Order, error) {
	return s.repo.GetByID(ctx, customerKey, orderID)
}
