// internal/service/loyalty/loyalty.go
package loyalty

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/oklog/ulid/v2"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"kaokente-service/internal/domain/customer"
	"kaokente-service/internal/domain/ledger"
	"kaokente-service/internal/domain/reward"
	ledgercore "kaokente-service/internal/ledger"
	xerrors "kaokente-service/internal/pkg/errors"
	"kaokente-service/internal/rewards"
)

// CustomerStore is the slice of the customer repository this service needs.
type CustomerStore interface {
	FindByPhone(ctx context.Context, phone string) (*customer.Customer, error)
	UpdateLoyalty(ctx context.Context, phone string, points int64, history string) error
}

// TransactionStore records and aggregates structured transactions.
type TransactionStore interface {
	Insert(ctx context.Context, tx *ledger.Transaction) error
	ListByPhone(ctx context.Context, phone string, limit int) ([]ledger.Transaction, error)
	CountByPhone(ctx context.Context, phone string) (int64, error)
	MonthlySpend(ctx context.Context, phone string, year int, month time.Month) (decimal.Decimal, error)
	SumDeltas(ctx context.Context, phone string) (int64, error)
}

// RewardStore looks up catalog items managed by staff.
type RewardStore interface {
	FindByName(ctx context.Context, name string) (*reward.Reward, error)
}

// Notifier pushes live balance updates to connected dashboards.
type Notifier interface {
	BroadcastBalance(phone string, points, delta int64)
}

type LoyaltyService struct {
	customers    CustomerStore
	transactions TransactionStore
	rewardStore  RewardStore
	catalog      *rewards.Catalog
	notifier     Notifier
	earnMode     ledgercore.EarnMode
	logger       *zap.Logger
	now          func() time.Time
}

func NewLoyaltyService(
	customers CustomerStore,
	transactions TransactionStore,
	rewardStore RewardStore,
	notifier Notifier,
	earnMode ledgercore.EarnMode,
	logger *zap.Logger,
) *LoyaltyService {
	return &LoyaltyService{
		customers:    customers,
		transactions: transactions,
		rewardStore:  rewardStore,
		catalog:      rewards.Default(),
		notifier:     notifier,
		earnMode:     earnMode,
		logger:       logger,
		now:          time.Now,
	}
}

// Earn awards points for a purchase and records it in both ledgers.
func (s *LoyaltyService) Earn(ctx context.Context, phone string, amount decimal.Decimal) (*customer.Customer, error) {
	c, err := s.customers.FindByPhone(ctx, phone)
	if err != nil {
		return nil, err
	}

	now := s.now()
	delta := ledgercore.PointsEarnedMode(amount, c.Tier, s.earnMode)

	c.Points += delta
	c.History = ledgercore.AppendTransaction(c.History, now, ledgercore.MarkerPurchase, ledgercore.FormatEuros(amount), delta)

	if err := s.customers.UpdateLoyalty(ctx, phone, c.Points, c.History); err != nil {
		return nil, fmt.Errorf("failed to persist earn: %w", err)
	}

	s.record(ctx, &ledger.Transaction{
		ID:          ulid.Make().String(),
		Phone:       phone,
		Kind:        ledger.KindPurchase,
		Label:       ledgercore.MarkerPurchase,
		Amount:      amount,
		PointsDelta: delta,
		OccurredAt:  now,
	})

	s.logger.Info("points earned",
		zap.String("phone", phone),
		zap.String("amount", amount.String()),
		zap.Int64("delta", delta),
		zap.Int64("balance", c.Points),
	)

	if s.notifier != nil {
		s.notifier.BroadcastBalance(phone, c.Points, delta)
	}

	return c, nil
}

// Redeem exchanges points for a catalog reward. An insufficient balance
// rejects the operation with no mutation at all.
func (s *LoyaltyService) Redeem(ctx context.Context, phone, rewardName string) (*customer.Customer, error) {
	c, err := s.customers.FindByPhone(ctx, phone)
	if err != nil {
		return nil, err
	}

	cost, err := s.redemptionCost(ctx, rewardName)
	if err != nil {
		return nil, err
	}

	if c.Points < cost {
		return nil, xerrors.ErrInsufficientPoints
	}

	now := s.now()
	delta := -cost

	c.Points += delta
	c.History = ledgercore.AppendTransaction(c.History, now, ledgercore.MarkerRedemption, rewardName, delta)

	if err := s.customers.UpdateLoyalty(ctx, phone, c.Points, c.History); err != nil {
		return nil, fmt.Errorf("failed to persist redemption: %w", err)
	}

	s.record(ctx, &ledger.Transaction{
		ID:          ulid.Make().String(),
		Phone:       phone,
		Kind:        ledger.KindRedemption,
		Label:       rewardName,
		Amount:      decimal.NewFromInt(cost),
		PointsDelta: delta,
		OccurredAt:  now,
	})

	s.logger.Info("reward redeemed",
		zap.String("phone", phone),
		zap.String("reward", rewardName),
		zap.Int64("cost", cost),
		zap.Int64("balance", c.Points),
	)

	if s.notifier != nil {
		s.notifier.BroadcastBalance(phone, c.Points, delta)
	}

	return c, nil
}

// redemptionCost prefers the staff-managed catalog in Postgres and
// falls back to the built-in launch list.
func (s *LoyaltyService) redemptionCost(ctx context.Context, rewardName string) (int64, error) {
	if s.rewardStore != nil {
		r, err := s.rewardStore.FindByName(ctx, rewardName)
		if err == nil {
			return rewards.CostOf(*r), nil
		}
		if !errors.Is(err, xerrors.ErrNotFound) {
			return 0, fmt.Errorf("failed to look up reward: %w", err)
		}
	}

	cost, err := s.catalog.Cost(rewardName)
	if err != nil {
		return 0, xerrors.ErrNotFound
	}
	return cost, nil
}

// Dashboard returns the balance plus current- and previous-month spend.
// Customers maintained by this service are aggregated from structured
// rows; legacy records imported with only a history blob fall back to
// parsing the text.
func (s *LoyaltyService) Dashboard(ctx context.Context, phone string) (*customer.DashboardResponse, error) {
	c, err := s.customers.FindByPhone(ctx, phone)
	if err != nil {
		return nil, err
	}

	now := s.now()
	cur, prev, err := s.monthlySpend(ctx, phone, c.History, now)
	if err != nil {
		return nil, err
	}

	return &customer.DashboardResponse{
		Customer:           c,
		CurrentMonthSpend:  cur.StringFixed(1),
		PreviousMonthSpend: prev.StringFixed(1),
	}, nil
}

func (s *LoyaltyService) monthlySpend(ctx context.Context, phone, history string, now time.Time) (cur, prev decimal.Decimal, err error) {
	count, err := s.transactions.CountByPhone(ctx, phone)
	if err != nil || count == 0 {
		if err != nil {
			// Aggregation degrades to the text parser rather than failing
			// the whole dashboard.
			s.logger.Warn("falling back to history text aggregation", zap.String("phone", phone), zap.Error(err))
		}
		cur, prev = ledgercore.MonthlyTotals(history, now)
		return cur, prev, nil
	}

	curYear, curMonth := now.Year(), now.Month()
	prevYear, prevMonth := curYear, curMonth-1
	if curMonth == time.January {
		prevYear, prevMonth = curYear-1, time.December
	}

	cur, err = s.transactions.MonthlySpend(ctx, phone, curYear, curMonth)
	if err != nil {
		return decimal.Zero, decimal.Zero, fmt.Errorf("failed to aggregate current month: %w", err)
	}
	prev, err = s.transactions.MonthlySpend(ctx, phone, prevYear, prevMonth)
	if err != nil {
		return decimal.Zero, decimal.Zero, fmt.Errorf("failed to aggregate previous month: %w", err)
	}
	return cur, prev, nil
}

// History lists a customer's structured transactions, newest first.
func (s *LoyaltyService) History(ctx context.Context, phone string, limit int) ([]ledger.Transaction, error) {
	if _, err := s.customers.FindByPhone(ctx, phone); err != nil {
		return nil, err
	}
	return s.transactions.ListByPhone(ctx, phone, limit)
}

// Drift reports the difference between the stored balance and the fold
// of all recorded deltas. The stored balance stays authoritative; this
// never corrects anything.
func (s *LoyaltyService) Drift(ctx context.Context, phone string) (int64, error) {
	c, err := s.customers.FindByPhone(ctx, phone)
	if err != nil {
		return 0, err
	}
	sum, err := s.transactions.SumDeltas(ctx, phone)
	if err != nil {
		return 0, err
	}
	return c.Points - sum, nil
}

// record stores the structured row. The balance write already landed;
// a failure here leaves the text ledger as the only record, so log it
// loudly and move on.
func (s *LoyaltyService) record(ctx context.Context, tx *ledger.Transaction) {
	if err := s.transactions.Insert(ctx, tx); err != nil {
		s.logger.Error("failed to record structured transaction",
			zap.String("phone", tx.Phone),
			zap.String("kind", string(tx.Kind)),
			zap.Error(err),
		)
	}
}
