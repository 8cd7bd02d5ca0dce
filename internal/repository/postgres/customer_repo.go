// internal/repository/postgres/customer_repo.go
package postgres

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"kaokente-service/internal/domain/customer"
	xerrors "kaokente-service/internal/pkg/errors"
)

type CustomerRepository struct {
	db *pgxpool.Pool
}

func NewCustomerRepository(db *pgxpool.Pool) *CustomerRepository {
	return &CustomerRepository{db: db}
}

// Create inserts a new customer record.
func (r *CustomerRepository) Create(ctx context.Context, c *customer.Customer) error {
	query := `
		INSERT INTO customers (phone, full_name, tier, points, history)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, created_at, updated_at
	`

	err := r.db.QueryRow(
		ctx, query,
		c.Phone, c.FullName, c.Tier, c.Points, c.History,
	).Scan(&c.ID, &c.CreatedAt, &c.UpdatedAt)

	if err != nil {
		if strings.Contains(err.Error(), "duplicate key") {
			return xerrors.ErrDuplicateEntry
		}
		return fmt.Errorf("failed to create customer: %w", err)
	}

	return nil
}

// FindByPhone retrieves a customer by phone number.
func (r *CustomerRepository) FindByPhone(ctx context.Context, phone string) (*customer.Customer, error) {
	query := `
		SELECT id, phone, full_name, tier, points, history, created_at, updated_at
		FROM customers
		WHERE phone = $1
	`

	var c customer.Customer
	err := r.db.QueryRow(ctx, query, phone).Scan(
		&c.ID, &c.Phone, &c.FullName, &c.Tier, &c.Points, &c.History,
		&c.CreatedAt, &c.UpdatedAt,
	)

	if errors.Is(err, pgx.ErrNoRows) {
		return nil, xerrors.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to find customer: %w", err)
	}

	return &c, nil
}

// ExistsByPhone reports whether a customer with the phone exists.
func (r *CustomerRepository) ExistsByPhone(ctx context.Context, phone string) (bool, error) {
	var exists bool
	err := r.db.QueryRow(ctx,
		`SELECT EXISTS(SELECT 1 FROM customers WHERE phone = $1)`, phone,
	).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("failed to check customer existence: %w", err)
	}
	return exists, nil
}

// Update rewrites the mutable fields of a customer record (admin edit).
func (r *CustomerRepository) Update(ctx context.Context, c *customer.Customer) error {
	query := `
		UPDATE customers
		SET full_name = $2, tier = $3, points = $4, history = $5, updated_at = now()
		WHERE phone = $1
		RETURNING updated_at
	`

	err := r.db.QueryRow(ctx, query, c.Phone, c.FullName, c.Tier, c.Points, c.History).Scan(&c.UpdatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return xerrors.ErrNotFound
	}
	if err != nil {
		return fmt.Errorf("failed to update customer: %w", err)
	}
	return nil
}

// UpdateLoyalty persists the points balance and history text together.
// Last write wins; there is no concurrency token.
func (r *CustomerRepository) UpdateLoyalty(ctx context.Context, phone string, points int64, history string) error {
	tag, err := r.db.Exec(ctx,
		`UPDATE customers SET points = $2, history = $3, updated_at = now() WHERE phone = $1`,
		phone, points, history,
	)
	if err != nil {
		return fmt.Errorf("failed to update loyalty state: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return xerrors.ErrNotFound
	}
	return nil
}

// Delete removes a customer record and, via cascade, its transactions.
func (r *CustomerRepository) Delete(ctx context.Context, phone string) error {
	tag, err := r.db.Exec(ctx, `DELETE FROM customers WHERE phone = $1`, phone)
	if err != nil {
		return fmt.Errorf("failed to delete customer: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return xerrors.ErrNotFound
	}
	return nil
}

// List retrieves customers with filtering and pagination.
func (r *CustomerRepository) List(ctx context.Context, filters *customer.CustomerListFilters) ([]customer.Customer, int64, error) {
	var conditions []string
	var args []interface{}
	argPos := 1

	if filters.Tier != "" {
		conditions = append(conditions, fmt.Sprintf("tier = $%d", argPos))
		args = append(args, filters.Tier)
		argPos++
	}
	if filters.Search != "" {
		conditions = append(conditions, fmt.Sprintf("(full_name ILIKE $%d OR phone LIKE $%d)", argPos, argPos+1))
		args = append(args, "%"+filters.Search+"%", filters.Search+"%")
		argPos += 2
	}

	whereClause := ""
	if len(conditions) > 0 {
		whereClause = "WHERE " + strings.Join(conditions, " AND ")
	}

	var total int64
	countQuery := fmt.Sprintf("SELECT COUNT(*) FROM customers %s", whereClause)
	if err := r.db.QueryRow(ctx, countQuery, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("failed to count customers: %w", err)
	}

	sortBy := "created_at"
	switch filters.SortBy {
	case "full_name", "points", "created_at":
		sortBy = filters.SortBy
	}
	sortOrder := "DESC"
	if strings.EqualFold(filters.SortOrder, "asc") {
		sortOrder = "ASC"
	}

	offset := (filters.Page - 1) * filters.PageSize
	query := fmt.Sprintf(`
		SELECT id, phone, full_name, tier, points, history, created_at, updated_at
		FROM customers %s
		ORDER BY %s %s
		LIMIT $%d OFFSET $%d
	`, whereClause, sortBy, sortOrder, argPos, argPos+1)
	args = append(args, filters.PageSize, offset)

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list customers: %w", err)
	}
	defer rows.Close()

	var customers []customer.Customer
	for rows.Next() {
		var c customer.Customer
		if err := rows.Scan(
			&c.ID, &c.Phone, &c.FullName, &c.Tier, &c.Points, &c.History,
			&c.CreatedAt, &c.UpdatedAt,
		); err != nil {
			return nil, 0, fmt.Errorf("failed to scan customer: %w", err)
		}
		customers = append(customers, c)
	}

	return customers, total, rows.Err()
}

// Stats returns aggregate counts for the admin overview.
func (r *CustomerRepository) Stats(ctx context.Context) (*customer.CustomerStats, error) {
	query := `
		SELECT
			COUNT(*),
			COUNT(*) FILTER (WHERE tier = 'student'),
			COUNT(*) FILTER (WHERE created_at >= date_trunc('month', now()))
		FROM customers
	`

	var stats customer.CustomerStats
	err := r.db.QueryRow(ctx, query).Scan(
		&stats.TotalCustomers, &stats.StudentTier, &stats.NewThisMonth,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to load customer stats: %w", err)
	}
	return &stats, nil
}
