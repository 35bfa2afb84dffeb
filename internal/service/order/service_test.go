package order

import (
	"context"
	"errors"
	"testing"

	"gamestore/internal/domain"
	"gamestore/internal/payment"
	orderrepo "gamestore/internal/repository/order"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
)

type stubOrderRepo struct {
	draft         *domain.Order
	draftErr      error
	created       *domain.Order
	createErr     error
	createCalls   int
	lastCreate    orderrepo.CreateDraftInput
	finalizeErr   error
	finalizeCalls int
	lastFinalized string
	orders        []domain.Order
	order         *domain.Order
	orderErr      error
}

func (s *stubOrderRepo) CreateDraft(_ context.Context, in orderrepo.CreateDraftInput) (*domain.Order, error) {
	s.createCalls++
	s.lastCreate = in
	return s.created, s.createErr
}

func (s *stubOrderRepo) GetDraft(_ context.Context, _ string) (*domain.Order, error) {
	if s.draftErr != nil {
		return nil, s.draftErr
	}
	if s.draft == nil {
		return nil, domain.ErrNotFound
	}
	return s.draft, nil
}

func (s *stubOrderRepo) Finalize(_ context.Context, _, orderID string) error {
	s.finalizeCalls++
	s.lastFinalized = orderID
	return s.finalizeErr
}

func (s *stubOrderRepo) ListByCustomer(_ context.Context, _ string) ([]domain.Order, error) {
	return s.orders, nil
}

func (s *stubOrderRepo) GetByID(_ context.Context, _, _ string) (*domain.Order, error) {
	return s.order, s.orderErr
}

type stubCart struct {
	count int
	total decimal.Decimal
	err   error
}

func (s *stubCart) Total(_ context.Context, _ string) (int, decimal.Decimal, error) {
	return s.count, s.total, s.err
}

type stubGateway struct {
	sessionID    string
	createErr    error
	lastOrderID  string
	lastTotal    decimal.Decimal
	confirmation payment.Confirmation
	confirmErr   error
}

func (s *stubGateway) CreateSession(_ context.Context, orderID string, total decimal.Decimal) (string, error) {
	s.lastOrderID = orderID
	s.lastTotal = total
	return s.sessionID, s.createErr
}

func (s *stubGateway) Confirm(_ context.Context, _ string) (payment.Confirmation, error) {
	return s.confirmation, s.confirmErr
}

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func newService(repo *stubOrderRepo, cart *stubCart, gw *stubGateway) *Service {
	return New(repo, cart, gw, zerolog.Nop())
}

func TestOpenCheckoutEmptyCart(t *testing.T) {
	repo := &stubOrderRepo{}
	svc := newService(repo, &stubCart{count: 0, total: decimal.Zero}, &stubGateway{})

	if _, err := svc.OpenCheckout(context.Background(), "cust", domain.ShippingDetails{}); !errors.Is(err, domain.ErrNoActiveCart) {
		t.Fatalf("expected ErrNoActiveCart, got %v", err)
	}
	if repo.createCalls != 0 {
		t.Fatalf("expected no draft created, got %d", repo.createCalls)
	}
}

func TestOpenCheckoutZeroTotal(t *testing.T) {
	repo := &stubOrderRepo{}
	svc := newService(repo, &stubCart{count: 2, total: decimal.Zero}, &stubGateway{})

	if _, err := svc.OpenCheckout(context.Background(), "cust", domain.ShippingDetails{}); !errors.Is(err, domain.ErrNoActiveCart) {
		t.Fatalf("expected ErrNoActiveCart, got %v", err)
	}
}

func TestOpenCheckoutSnapshotsCartTotal(t *testing.T) {
	created := &domain.Order{ID: "o1", InProgress: true, Total: dec("84.96")}
	repo := &stubOrderRepo{created: created}
	shipping := domain.ShippingDetails{FirstName: "Ada", LastName: "Lovelace", Address: "1 Main St", City: "Toronto", Province: "ON", PostalCode: "M1M1M1", Phone: "555-0100"}
	svc := newService(repo, &stubCart{count: 2, total: dec("84.96")}, &stubGateway{})

	order, err := svc.OpenCheckout(context.Background(), "cust", shipping)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if order != created {
		t.Fatalf("unexpected order: %+v", order)
	}
	if !repo.lastCreate.Total.Equal(dec("84.96")) {
		t.Fatalf("expected snapshotted total 84.96, got %s", repo.lastCreate.Total)
	}
	if repo.lastCreate.Shipping != shipping {
		t.Fatalf("shipping details not passed through: %+v", repo.lastCreate.Shipping)
	}
}

func TestCurrentDraftMapsNotFound(t *testing.T) {
	svc := newService(&stubOrderRepo{}, &stubCart{}, &stubGateway{})

	if _, err := svc.CurrentDraft(context.Background(), "cust"); !errors.Is(err, domain.ErrNoActiveCheckout) {
		t.Fatalf("expected ErrNoActiveCheckout, got %v", err)
	}
}

func TestPaymentSessionUsesDraftTotal(t *testing.T) {
	gw := &stubGateway{sessionID: "cs_123"}
	repo := &stubOrderRepo{draft: &domain.Order{ID: "o1", InProgress: true, Total: dec("104.95")}}
	svc := newService(repo, &stubCart{}, gw)

	id, err := svc.PaymentSession(context.Background(), "cust")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if id != "cs_123" {
		t.Fatalf("unexpected session id %q", id)
	}
	if gw.lastOrderID != "o1" || !gw.lastTotal.Equal(dec("104.95")) {
		t.Fatalf("gateway got order=%q total=%s", gw.lastOrderID, gw.lastTotal)
	}
}

func TestPaymentSessionWithoutDraft(t *testing.T) {
	svc := newService(&stubOrderRepo{}, &stubCart{}, &stubGateway{})

	if _, err := svc.PaymentSession(context.Background(), "cust"); !errors.Is(err, domain.ErrNoActiveCheckout) {
		t.Fatalf("expected ErrNoActiveCheckout, got %v", err)
	}
}

func TestFinalizeWithoutDraft(t *testing.T) {
	repo := &stubOrderRepo{}
	svc := newService(repo, &stubCart{}, &stubGateway{})

	if _, err := svc.Finalize(context.Background(), "cust", "cs_123"); !errors.Is(err, domain.ErrNoActiveCheckout) {
		t.Fatalf("expected ErrNoActiveCheckout, got %v", err)
	}
	if repo.finalizeCalls != 0 {
		t.Fatalf("expected no finalize, got %d", repo.finalizeCalls)
	}
}

func TestFinalizeRejectsUnpaidSession(t *testing.T) {
	repo := &stubOrderRepo{draft: &domain.Order{ID: "o1", InProgress: true}}
	gw := &stubGateway{confirmation: payment.Confirmation{OrderID: "o1", Paid: false}}
	svc := newService(repo, &stubCart{}, gw)

	if _, err := svc.Finalize(context.Background(), "cust", "cs_123"); !errors.Is(err, domain.ErrPaymentNotConfirmed) {
		t.Fatalf("expected ErrPaymentNotConfirmed, got %v", err)
	}
	if repo.finalizeCalls != 0 {
		t.Fatalf("order must not finalize on unpaid session, finalize calls: %d", repo.finalizeCalls)
	}
}

func TestFinalizeRejectsSessionForOtherOrder(t *testing.T) {
	repo := &stubOrderRepo{draft: &domain.Order{ID: "o1", InProgress: true}}
	gw := &stubGateway{confirmation: payment.Confirmation{OrderID: "o2", Paid: true}}
	svc := newService(repo, &stubCart{}, gw)

	if _, err := svc.Finalize(context.Background(), "cust", "cs_123"); !errors.Is(err, domain.ErrPaymentNotConfirmed) {
		t.Fatalf("expected ErrPaymentNotConfirmed, got %v", err)
	}
	if repo.finalizeCalls != 0 {
		t.Fatalf("order must not finalize on mismatched session, finalize calls: %d", repo.finalizeCalls)
	}
}

func TestFinalizePaidSession(t *testing.T) {
	repo := &stubOrderRepo{draft: &domain.Order{ID: "o1", InProgress: true}}
	gw := &stubGateway{confirmation: payment.Confirmation{OrderID: "o1", Paid: true}}
	svc := newService(repo, &stubCart{}, gw)

	orderID, err := svc.Finalize(context.Background(), "cust", "cs_123")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if orderID != "o1" || repo.lastFinalized != "o1" {
		t.Fatalf("expected o1 finalized, got %q (repo %q)", orderID, repo.lastFinalized)
	}
}

func TestFinalizePropagatesProviderOutage(t *testing.T) {
	repo := &stubOrderRepo{draft: &domain.Order{ID: "o1", InProgress: true}}
	gw := &stubGateway{confirmErr: domain.ErrPaymentUnavailable}
	svc := newService(repo, &stubCart{}, gw)

	if _, err := svc.Finalize(context.Background(), "cust", "cs_123"); !errors.Is(err, domain.ErrPaymentUnavailable) {
		t.Fatalf("expected ErrPaymentUnavailable, got %v", err)
	}
	if repo.finalizeCalls != 0 {
		t.Fatalf("expected no finalize during outage, got %d", repo.finalizeCalls)
	}
}
