package cart

import (
	"context"
	"errors"
	"testing"

	"gamestore/internal/domain"
	cartrepo "gamestore/internal/repository/cart"
	"github.com/shopspring/decimal"
)

type stubRepo struct {
	addLine      *domain.CartLine
	addErr       error
	addCalls     int
	lastAdd      cartrepo.AddInput
	changeLine   *domain.CartLine
	changeErr    error
	changeCalls  int
	lastChangeID string
	lastQty      int
	deleteErr    error
	lines        []domain.CartLine
	listErr      error
}

func (s *stubRepo) Add(_ context.Context, in cartrepo.AddInput) (*domain.CartLine, error) {
	s.addCalls++
	s.lastAdd = in
	return s.addLine, s.addErr
}

func (s *stubRepo) ChangeQuantity(_ context.Context, _, lineID string, quantity int) (*domain.CartLine, error) {
	s.changeCalls++
	s.lastChangeID = lineID
	s.lastQty = quantity
	return s.changeLine, s.changeErr
}

func (s *stubRepo) Delete(_ context.Context, _, _ string) error {
	return s.deleteErr
}

func (s *stubRepo) ListByCustomer(_ context.Context, _ string) ([]domain.CartLine, error) {
	return s.lines, s.listErr
}

func (s *stubRepo) Total(_ context.Context, _ string) (int, decimal.Decimal, error) {
	total := decimal.Zero
	for _, l := range s.lines {
		total = total.Add(l.Price)
	}
	return len(s.lines), total, nil
}

type stubProductRepo struct {
	product *domain.Product
	err     error
}

func (s *stubProductRepo) GetByID(_ context.Context, _ string) (*domain.Product, error) {
	return s.product, s.err
}

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func TestAddRejectsNonPositiveQuantity(t *testing.T) {
	repo := &stubRepo{}
	svc := New(repo, &stubProductRepo{})

	for _, qty := range []int{0, -1, -100} {
		if _, err := svc.Add(context.Background(), "cust", "prod", qty); !errors.Is(err, domain.ErrInvalidQuantity) {
			t.Fatalf("qty %d: expected ErrInvalidQuantity, got %v", qty, err)
		}
	}
	if repo.addCalls != 0 {
		t.Fatalf("expected no repo writes, got %d", repo.addCalls)
	}
}

func TestAddUnknownProduct(t *testing.T) {
	repo := &stubRepo{}
	svc := New(repo, &stubProductRepo{err: domain.ErrNotFound})

	if _, err := svc.Add(context.Background(), "cust", "missing", 1); !errors.Is(err, domain.ErrProductNotFound) {
		t.Fatalf("expected ErrProductNotFound, got %v", err)
	}
	if repo.addCalls != 0 {
		t.Fatalf("expected no repo writes, got %d", repo.addCalls)
	}
}

func TestAddMultipliesUnitPrice(t *testing.T) {
	repo := &stubRepo{addLine: &domain.CartLine{ID: "l1"}}
	svc := New(repo, &stubProductRepo{product: &domain.Product{ID: "p1", Price: dec("19.99")}})

	line, err := svc.Add(context.Background(), "cust", "p1", 3)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if line.ID != "l1" {
		t.Fatalf("unexpected line: %+v", line)
	}
	if !repo.lastAdd.Price.Equal(dec("59.97")) {
		t.Fatalf("expected price delta 59.97, got %s", repo.lastAdd.Price)
	}
	if repo.lastAdd.Quantity != 3 || repo.lastAdd.ProductID != "p1" || repo.lastAdd.CustomerKey != "cust" {
		t.Fatalf("unexpected add input: %+v", repo.lastAdd)
	}
}

func TestUpdateRejectsNonPositiveQuantity(t *testing.T) {
	repo := &stubRepo{}
	svc := New(repo, &stubProductRepo{})

	if _, err := svc.Update(context.Background(), "cust", "l1", 0); !errors.Is(err, domain.ErrInvalidQuantity) {
		t.Fatalf("expected ErrInvalidQuantity, got %v", err)
	}
	if repo.changeCalls != 0 {
		t.Fatalf("expected no repo writes, got %d", repo.changeCalls)
	}
}

func TestUpdateDelegatesToRepo(t *testing.T) {
	repo := &stubRepo{changeLine: &domain.CartLine{ID: "l1", Quantity: 5}}
	svc := New(repo, &stubProductRepo{})

	line, err := svc.Update(context.Background(), "cust", "l1", 5)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if line.Quantity != 5 || repo.lastChangeID != "l1" || repo.lastQty != 5 {
		t.Fatalf("unexpected update: line=%+v repo=%+v", line, repo)
	}
}

func TestUpdateMissingLine(t *testing.T) {
	repo := &stubRepo{changeErr: domain.ErrNotFound}
	svc := New(repo, &stubProductRepo{})

	if _, err := svc.Update(context.Background(), "cust", "missing", 2); !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestRemoveMissingLine(t *testing.T) {
	svc := New(&stubRepo{deleteErr: domain.ErrNotFound}, &stubProductRepo{})

	if err := svc.Remove(context.Background(), "cust", "missing"); !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestListSumsStoredPrices(t *testing.T) {
	repo := &stubRepo{lines: []domain.CartLine{
		{ID: "l2", Price: dec("59.97")},
		{ID: "l1", Price: dec("24.99")},
	}}
	svc := New(repo, &stubProductRepo{})

	lines, total, err := svc.List(context.Background(), "cust")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(lines) != 2 {
		t.Fatalf("expected 2 lines, got %d", len(lines))
	}
	if !total.Equal(dec("84.96")) {
		t.Fatalf("expected total 84.96, got %s", total)
	}
}
