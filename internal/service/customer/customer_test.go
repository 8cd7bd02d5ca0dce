package customer

import (
	"context"
	"errors"
	"testing"

	"go.uber.org/zap"

	"kaokente-service/internal/domain/customer"
	xerrors "kaokente-service/internal/pkg/errors"
)

type fakeStore struct {
	customers map[string]*customer.Customer
}

func newFakeStore() *fakeStore {
	return &fakeStore{customers: map[string]*customer.Customer{}}
}

func (f *fakeStore) Create(_ context.Context, c *customer.Customer) error {
	if _, ok := f.customers[c.Phone]; ok {
		return xerrors.ErrDuplicateEntry
	}
	cp := *c
	f.customers[c.Phone] = &cp
	return nil
}

func (f *fakeStore) FindByPhone(_ context.Context, phone string) (*customer.Customer, error) {
	c, ok := f.customers[phone]
	if !ok {
		return nil, xerrors.ErrNotFound
	}
	cp := *c
	return &cp, nil
}

func (f *fakeStore) ExistsByPhone(_ context.Context, phone string) (bool, error) {
	_, ok := f.customers[phone]
	return ok, nil
}

func (f *fakeStore) Update(_ context.Context, c *customer.Customer) error {
	if _, ok := f.customers[c.Phone]; !ok {
		return xerrors.ErrNotFound
	}
	cp := *c
	f.customers[c.Phone] = &cp
	return nil
}

func (f *fakeStore) Delete(_ context.Context, phone string) error {
	if _, ok := f.customers[phone]; !ok {
		return xerrors.ErrNotFound
	}
	delete(f.customers, phone)
	return nil
}

func (f *fakeStore) List(_ context.Context, _ *customer.CustomerListFilters) ([]customer.Customer, int64, error) {
	var out []customer.Customer
	for _, c := range f.customers {
		out = append(out, *c)
	}
	return out, int64(len(out)), nil
}

func (f *fakeStore) Stats(_ context.Context) (*customer.CustomerStats, error) {
	return &customer.CustomerStats{TotalCustomers: int64(len(f.customers))}, nil
}

func TestRegister(t *testing.T) {
	svc := NewCustomerService(newFakeStore(), zap.NewNop())

	c, err := svc.Register(context.Background(), &customer.RegisterCustomerRequest{
		FullName: "Maria Silva",
		Phone:    "912345678",
	})
	if err != nil {
		t.Fatal(err)
	}
	if c.Points != 0 || c.History != "" {
		t.Errorf("new customer must start with zero points and empty history: %+v", c)
	}
	if c.Tier != customer.TierNormal {
		t.Errorf("tier defaults to normal, got %s", c.Tier)
	}
}

func TestRegisterDuplicatePhone(t *testing.T) {
	svc := NewCustomerService(newFakeStore(), zap.NewNop())
	req := &customer.RegisterCustomerRequest{FullName: "Maria", Phone: "912345678"}

	if _, err := svc.Register(context.Background(), req); err != nil {
		t.Fatal(err)
	}
	if _, err := svc.Register(context.Background(), req); !errors.Is(err, xerrors.ErrDuplicateEntry) {
		t.Errorf("err = %v, want ErrDuplicateEntry", err)
	}
}

func TestRegisterRejectsBadPhone(t *testing.T) {
	svc := NewCustomerService(newFakeStore(), zap.NewNop())

	for _, phone := range []string{"", "abc", "91 234", "12345"} {
		_, err := svc.Register(context.Background(), &customer.RegisterCustomerRequest{FullName: "X", Phone: phone})
		if !errors.Is(err, xerrors.ErrInvalidInput) {
			t.Errorf("phone %q: err = %v, want ErrInvalidInput", phone, err)
		}
	}
}

func TestUpdateEditPath(t *testing.T) {
	store := newFakeStore()
	svc := NewCustomerService(store, zap.NewNop())

	if _, err := svc.Register(context.Background(), &customer.RegisterCustomerRequest{FullName: "Maria", Phone: "912345678"}); err != nil {
		t.Fatal(err)
	}

	tier := customer.TierStudent
	points := int64(120)
	history := "01/08/2026 10:00 | Compra 24€ | +120 pts"
	c, err := svc.Update(context.Background(), "912345678", &customer.UpdateCustomerRequest{
		Tier:    &tier,
		Points:  &points,
		History: &history,
	})
	if err != nil {
		t.Fatal(err)
	}
	if c.Tier != customer.TierStudent || c.Points != 120 || c.History != history {
		t.Errorf("edit did not apply: %+v", c)
	}
}

func TestUpdateRejectsUnknownTier(t *testing.T) {
	store := newFakeStore()
	svc := NewCustomerService(store, zap.NewNop())

	if _, err := svc.Register(context.Background(), &customer.RegisterCustomerRequest{FullName: "Maria", Phone: "912345678"}); err != nil {
		t.Fatal(err)
	}

	bad := customer.Tier("vip")
	_, err := svc.Update(context.Background(), "912345678", &customer.UpdateCustomerRequest{Tier: &bad})
	if !errors.Is(err, xerrors.ErrInvalidInput) {
		t.Errorf("err = %v, want ErrInvalidInput", err)
	}
}

func TestDelete(t *testing.T) {
	store := newFakeStore()
	svc := NewCustomerService(store, zap.NewNop())

	if _, err := svc.Register(context.Background(), &customer.RegisterCustomerRequest{FullName: "Maria", Phone: "912345678"}); err != nil {
		t.Fatal(err)
	}
	if err := svc.Delete(context.Background(), "912345678"); err != nil {
		t.Fatal(err)
	}
	if err := svc.Delete(context.Background(), "912345678"); !errors.Is(err, xerrors.ErrNotFound) {
		t.Errorf("err = %v, want ErrNotFound", err)
	}
}
