// internal/repository/postgres/reward_repo.go
package postgres

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"kaokente-service/internal/domain/reward"
	xerrors "kaokente-service/internal/pkg/errors"
)

type RewardRepository struct {
	db *pgxpool.Pool
}

func NewRewardRepository(db *pgxpool.Pool) *RewardRepository {
	return &RewardRepository{db: db}
}

// Create inserts a new catalog item.
func (r *RewardRepository) Create(ctx context.Context, rw *reward.Reward) error {
	query := `
		INSERT INTO rewards (name, point_cost, price, tags, active)
		VALUES ($1, $2, $3, COALESCE($4, '{}'::text[]), $5)
		RETURNING id, created_at
	`

	err := r.db.QueryRow(ctx, query,
		rw.Name, rw.PointCost, rw.Price, rw.Tags, rw.Active,
	).Scan(&rw.ID, &rw.CreatedAt)
	if err != nil {
		if strings.Contains(err.Error(), "duplicate key") {
			return xerrors.ErrDuplicateEntry
		}
		return fmt.Errorf("failed to create reward: %w", err)
	}
	return nil
}

// FindByName retrieves an active reward by exact name.
func (r *RewardRepository) FindByName(ctx context.Context, name string) (*reward.Reward, error) {
	query := `
		SELECT id, name, point_cost, price, tags, active, created_at
		FROM rewards
		WHERE name = $1 AND active = true
	`

	var rw reward.Reward
	err := r.db.QueryRow(ctx, query, name).Scan(
		&rw.ID, &rw.Name, &rw.PointCost, &rw.Price, &rw.Tags, &rw.Active, &rw.CreatedAt,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, xerrors.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to find reward: %w", err)
	}
	return &rw, nil
}

// List returns catalog items, optionally including deactivated ones.
func (r *RewardRepository) List(ctx context.Context, includeInactive bool) ([]reward.Reward, error) {
	query := `
		SELECT id, name, point_cost, price, tags, active, created_at
		FROM rewards
		WHERE active = true OR $1
		ORDER BY point_cost ASC
	`

	rows, err := r.db.Query(ctx, query, includeInactive)
	if err != nil {
		return nil, fmt.Errorf("failed to list rewards: %w", err)
	}
	defer rows.Close()

	var rewards []reward.Reward
	for rows.Next() {
		var rw reward.Reward
		if err := rows.Scan(
			&rw.ID, &rw.Name, &rw.PointCost, &rw.Price, &rw.Tags, &rw.Active, &rw.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("failed to scan reward: %w", err)
		}
		rewards = append(rewards, rw)
	}

	return rewards, rows.Err()
}

// Deactivate retires a reward without losing redemption history.
func (r *RewardRepository) Deactivate(ctx context.Context, name string) error {
	tag, err := r.db.Exec(ctx, `UPDATE rewards SET active = false WHERE name = $1`, name)
	if err != nil {
		return fmt.Errorf("failed to deactivate reward: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return xerrors.ErrNotFound
	}
	return nil
}

// Seed inserts catalog entries that do not exist yet.
func (r *RewardRepository) Seed(ctx context.Context, items []reward.Reward) error {
	query := `
		INSERT INTO rewards (name, point_cost, price, tags, active)
		VALUES ($1, $2, $3, COALESCE($4, '{}'::text[]), $5)
		ON CONFLICT (name) DO NOTHING
	`

	for _, rw := range items {
		if _, err := r.db.Exec(ctx, query, rw.Name, rw.PointCost, rw.Price, rw.Tags, rw.Active); err != nil {
			return fmt.Errorf("failed to seed reward %q: %w", rw.Name, err)
		}
	}
	return nil
}
