// internal/repository/postgres/transaction_repo.go
package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"

	"kaokente-service/internal/domain/ledger"
)

type TransactionRepository struct {
	db *pgxpool.Pool
}

func NewTransactionRepository(db *pgxpool.Pool) *TransactionRepository {
	return &TransactionRepository{db: db}
}

// Insert records one structured transaction.
func (r *TransactionRepository) Insert(ctx context.Context, tx *ledger.Transaction) error {
	query := `
		INSERT INTO loyalty_transactions (id, phone, kind, label, amount, points_delta, occurred_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`

	_, err := r.db.Exec(ctx, query,
		tx.ID, tx.Phone, tx.Kind, tx.Label, tx.Amount, tx.PointsDelta, tx.OccurredAt,
	)
	if err != nil {
		return fmt.Errorf("failed to insert transaction: %w", err)
	}
	return nil
}

// ListByPhone returns a customer's transactions, newest first.
func (r *TransactionRepository) ListByPhone(ctx context.Context, phone string, limit int) ([]ledger.Transaction, error) {
	if limit <= 0 {
		limit = 50
	}
	query := `
		SELECT id, phone, kind, label, amount, points_delta, occurred_at
		FROM loyalty_transactions
		WHERE phone = $1
		ORDER BY occurred_at DESC
		LIMIT $2
	`

	rows, err := r.db.Query(ctx, query, phone, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list transactions: %w", err)
	}
	defer rows.Close()

	var txs []ledger.Transaction
	for rows.Next() {
		var tx ledger.Transaction
		if err := rows.Scan(
			&tx.ID, &tx.Phone, &tx.Kind, &tx.Label, &tx.Amount, &tx.PointsDelta, &tx.OccurredAt,
		); err != nil {
			return nil, fmt.Errorf("failed to scan transaction: %w", err)
		}
		txs = append(txs, tx)
	}

	return txs, rows.Err()
}

// CountByPhone reports how many structured rows a customer has. Legacy
// records imported with only a history blob have none.
func (r *TransactionRepository) CountByPhone(ctx context.Context, phone string) (int64, error) {
	var count int64
	err := r.db.QueryRow(ctx,
		`SELECT COUNT(*) FROM loyalty_transactions WHERE phone = $1`, phone,
	).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("failed to count transactions: %w", err)
	}
	return count, nil
}

// MonthlySpend sums purchase amounts for one calendar month.
func (r *TransactionRepository) MonthlySpend(ctx context.Context, phone string, year int, month time.Month) (decimal.Decimal, error) {
	query := `
		SELECT COALESCE(SUM(amount), 0)
		FROM loyalty_transactions
		WHERE phone = $1
		  AND kind = $2
		  AND occurred_at >= make_date($3, $4, 1)
		  AND occurred_at < make_date($3, $4, 1) + INTERVAL '1 month'
	`

	var total decimal.Decimal
	err := r.db.QueryRow(ctx, query, phone, ledger.KindPurchase, year, int(month)).Scan(&total)
	if err != nil {
		return decimal.Zero, fmt.Errorf("failed to sum monthly spend: %w", err)
	}
	return total, nil
}

// SumDeltas folds all point deltas for a customer. Used only to report
// drift against the stored balance, never to correct it.
func (r *TransactionRepository) SumDeltas(ctx context.Context, phone string) (int64, error) {
	var sum int64
	err := r.db.QueryRow(ctx,
		`SELECT COALESCE(SUM(points_delta), 0) FROM loyalty_transactions WHERE phone = $1`, phone,
	).Scan(&sum)
	if err != nil {
		return 0, fmt.Errorf("failed to sum point deltas: %w", err)
	}
	return sum, nil
}
