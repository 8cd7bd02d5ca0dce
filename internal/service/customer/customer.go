// internal/service/customer/customer.go
package customer

import (
	"context"
	"fmt"
	"regexp"

	"go.uber.org/zap"

	"kaokente-service/internal/domain/customer"
	xerrors "kaokente-service/internal/pkg/errors"
)

// Store is the repository surface the customer service needs.
type Store interface {
	Create(ctx context.Context, c *customer.Customer) error
	FindByPhone(ctx context.Context, phone string) (*customer.Customer, error)
	ExistsByPhone(ctx context.Context, phone string) (bool, error)
	Update(ctx context.Context, c *customer.Customer) error
	Delete(ctx context.Context, phone string) error
	List(ctx context.Context, filters *customer.CustomerListFilters) ([]customer.Customer, int64, error)
	Stats(ctx context.Context) (*customer.CustomerStats, error)
}

type CustomerService struct {
	store  Store
	logger *zap.Logger
}

func NewCustomerService(store Store, logger *zap.Logger) *CustomerService {
	return &CustomerService{
		store:  store,
		logger: logger,
	}
}

// The phone is an opaque digit string; only the shape is checked.
var phonePattern = regexp.MustCompile(`^\d{6,15}$`)

// Register creates a new customer with zero points and empty history.
func (s *CustomerService) Register(ctx context.Context, req *customer.RegisterCustomerRequest) (*customer.Customer, error) {
	if !phonePattern.MatchString(req.Phone) {
		return nil, fmt.Errorf("%w: phone must be 6-15 digits", xerrors.ErrInvalidInput)
	}

	exists, err := s.store.ExistsByPhone(ctx, req.Phone)
	if err != nil {
		return nil, fmt.Errorf("failed to check customer existence: %w", err)
	}
	if exists {
		return nil, xerrors.ErrDuplicateEntry
	}

	tier := req.Tier
	if tier == "" {
		tier = customer.TierNormal
	}

	c := &customer.Customer{
		Phone:  req.Phone,
		Tier:   tier,
		Points: 0,
	}
	c.FullName.String, c.FullName.Valid = req.FullName, req.FullName != ""

	if err := s.store.Create(ctx, c); err != nil {
		s.logger.Error("failed to create customer", zap.Error(err))
		return nil, err
	}

	s.logger.Info("customer registered",
		zap.String("phone", c.Phone),
		zap.String("tier", string(c.Tier)),
	)

	return c, nil
}

// Get retrieves a customer by phone number.
func (s *CustomerService) Get(ctx context.Context, phone string) (*customer.Customer, error) {
	return s.store.FindByPhone(ctx, phone)
}

// Update handles the admin edit path: any field of the record may be
// rewritten, points and history included. No reconciliation is done
// between the two.
func (s *CustomerService) Update(ctx context.Context, phone string, req *customer.UpdateCustomerRequest) (*customer.Customer, error) {
	c, err := s.store.FindByPhone(ctx, phone)
	if err != nil {
		return nil, err
	}

	if req.FullName != nil {
		c.FullName.String, c.FullName.Valid = *req.FullName, *req.FullName != ""
	}
	if req.Tier != nil {
		if !req.Tier.Valid() {
			return nil, fmt.Errorf("%w: unknown tier %q", xerrors.ErrInvalidInput, *req.Tier)
		}
		c.Tier = *req.Tier
	}
	if req.Points != nil {
		c.Points = *req.Points
	}
	if req.History != nil {
		c.History = *req.History
	}

	if err := s.store.Update(ctx, c); err != nil {
		s.logger.Error("failed to update customer", zap.String("phone", phone), zap.Error(err))
		return nil, err
	}

	s.logger.Info("customer updated", zap.String("phone", phone))
	return c, nil
}

// Delete removes a customer record entirely.
func (s *CustomerService) Delete(ctx context.Context, phone string) error {
	if err := s.store.Delete(ctx, phone); err != nil {
		return err
	}
	s.logger.Info("customer deleted", zap.String("phone", phone))
	return nil
}

// List returns customers with filters and pagination defaults applied.
func (s *CustomerService) List(ctx context.Context, filters *customer.CustomerListFilters) (*customer.CustomerListResponse, error) {
	if filters.Page < 1 {
		filters.Page = 1
	}
	if filters.PageSize < 1 || filters.PageSize > 100 {
		filters.PageSize = 20
	}

	customers, total, err := s.store.List(ctx, filters)
	if err != nil {
		return nil, err
	}

	totalPages := int((total + int64(filters.PageSize) - 1) / int64(filters.PageSize))
	return &customer.CustomerListResponse{
		Customers:  customers,
		Total:      total,
		Page:       filters.Page,
		PageSize:   filters.PageSize,
		TotalPages: totalPages,
	}, nil
}

// Stats returns aggregate counts for the admin overview.
func (s *CustomerService) Stats(ctx context.Context) (*customer.CustomerStats, error) {
	return s.store.Stats(ctx)
}
