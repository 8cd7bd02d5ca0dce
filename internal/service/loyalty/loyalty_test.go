package loyalty

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"kaokente-service/internal/domain/customer"
	"kaokente-service/internal/domain/ledger"
	"kaokente-service/internal/domain/reward"
	ledgercore "kaokente-service/internal/ledger"
	xerrors "kaokente-service/internal/pkg/errors"
)

type fakeCustomerStore struct {
	customers map[string]*customer.Customer
}

func (f *fakeCustomerStore) FindByPhone(_ context.Context, phone string) (*customer.Customer, error) {
	c, ok := f.customers[phone]
	if !ok {
		return nil, xerrors.ErrNotFound
	}
	cp := *c
	return &cp, nil
}

func (f *fakeCustomerStore) UpdateLoyalty(_ context.Context, phone string, points int64, history string) error {
	c, ok := f.customers[phone]
	if !ok {
		return xerrors.ErrNotFound
	}
	c.Points = points
	c.History = history
	return nil
}

type fakeTransactionStore struct {
	txs []ledger.Transaction
}

func (f *fakeTransactionStore) Insert(_ context.Context, tx *ledger.Transaction) error {
	f.txs = append(f.txs, *tx)
	return nil
}

func (f *fakeTransactionStore) ListByPhone(_ context.Context, phone string, _ int) ([]ledger.Transaction, error) {
	var out []ledger.Transaction
	for _, tx := range f.txs {
		if tx.Phone == phone {
			out = append(out, tx)
		}
	}
	return out, nil
}

func (f *fakeTransactionStore) CountByPhone(_ context.Context, phone string) (int64, error) {
	var n int64
	for _, tx := range f.txs {
		if tx.Phone == phone {
			n++
		}
	}
	return n, nil
}

func (f *fakeTransactionStore) MonthlySpend(_ context.Context, phone string, year int, month time.Month) (decimal.Decimal, error) {
	total := decimal.Zero
	for _, tx := range f.txs {
		if tx.Phone == phone && tx.Kind == ledger.KindPurchase &&
			tx.OccurredAt.Year() == year && tx.OccurredAt.Month() == month {
			total = total.Add(tx.Amount)
		}
	}
	return total, nil
}

func (f *fakeTransactionStore) SumDeltas(_ context.Context, phone string) (int64, error) {
	var sum int64
	for _, tx := range f.txs {
		if tx.Phone == phone {
			sum += tx.PointsDelta
		}
	}
	return sum, nil
}

type fakeRewardStore struct {
	rewards map[string]*reward.Reward
}

func (f *fakeRewardStore) FindByName(_ context.Context, name string) (*reward.Reward, error) {
	r, ok := f.rewards[name]
	if !ok {
		return nil, xerrors.ErrNotFound
	}
	return r, nil
}

func newTestService(customers *fakeCustomerStore, txs *fakeTransactionStore, rewards *fakeRewardStore) *LoyaltyService {
	s := NewLoyaltyService(customers, txs, rewards, nil, ledgercore.EarnTruncateSpend, zap.NewNop())
	s.now = func() time.Time {
		return time.Date(2026, time.August, 20, 12, 0, 0, 0, time.UTC)
	}
	return s
}

func TestEarnAwardsPointsAndRecordsBothLedgers(t *testing.T) {
	customers := &fakeCustomerStore{customers: map[string]*customer.Customer{
		"912345678": {Phone: "912345678", Tier: customer.TierStudent, Points: 10},
	}}
	txs := &fakeTransactionStore{}
	svc := newTestService(customers, txs, &fakeRewardStore{})

	c, err := svc.Earn(context.Background(), "912345678", decimal.RequireFromString("9.99"))
	if err != nil {
		t.Fatal(err)
	}

	if c.Points != 77 { // 10 + floor(9 * 7.5)
		t.Errorf("points = %d, want 77", c.Points)
	}

	first := strings.SplitN(c.History, "\n", 2)[0]
	if !strings.Contains(first, "Compra 9.99€") || !strings.Contains(first, "+67 pts") {
		t.Errorf("unexpected history line %q", first)
	}

	if len(txs.txs) != 1 {
		t.Fatalf("expected 1 structured transaction, got %d", len(txs.txs))
	}
	if txs.txs[0].Kind != ledger.KindPurchase || txs.txs[0].PointsDelta != 67 {
		t.Errorf("unexpected transaction %+v", txs.txs[0])
	}
	if txs.txs[0].ID == "" {
		t.Error("transaction must carry an ID")
	}
}

func TestRedeemExactCostLeavesZero(t *testing.T) {
	customers := &fakeCustomerStore{customers: map[string]*customer.Customer{
		"912345678": {Phone: "912345678", Tier: customer.TierNormal, Points: 300},
	}}
	txs := &fakeTransactionStore{}
	rewardsStore := &fakeRewardStore{rewards: map[string]*reward.Reward{
		"Dose batatas": {Name: "Dose batatas", Price: decimal.RequireFromString("2.5"), Active: true},
	}}
	svc := newTestService(customers, txs, rewardsStore)

	c, err := svc.Redeem(context.Background(), "912345678", "Dose batatas")
	if err != nil {
		t.Fatal(err)
	}
	if c.Points != 0 {
		t.Errorf("points = %d, want 0", c.Points)
	}

	first := strings.SplitN(c.History, "\n", 2)[0]
	if !strings.Contains(first, "Resgate Dose batatas") || !strings.Contains(first, "-300 pts") {
		t.Errorf("unexpected history line %q", first)
	}
}

func TestRedeemInsufficientBalanceRejectsWithoutMutation(t *testing.T) {
	customers := &fakeCustomerStore{customers: map[string]*customer.Customer{
		"912345678": {Phone: "912345678", Tier: customer.TierNormal, Points: 299},
	}}
	txs := &fakeTransactionStore{}
	rewardsStore := &fakeRewardStore{rewards: map[string]*reward.Reward{
		"Dose batatas": {Name: "Dose batatas", Price: decimal.RequireFromString("2.5"), Active: true},
	}}
	svc := newTestService(customers, txs, rewardsStore)

	_, err := svc.Redeem(context.Background(), "912345678", "Dose batatas")
	if !errors.Is(err, xerrors.ErrInsufficientPoints) {
		t.Fatalf("err = %v, want ErrInsufficientPoints", err)
	}

	stored := customers.customers["912345678"]
	if stored.Points != 299 || stored.History != "" {
		t.Errorf("rejected redemption must not mutate the record: %+v", stored)
	}
	if len(txs.txs) != 0 {
		t.Errorf("rejected redemption must not record a transaction")
	}
}

func TestRedeemFallsBackToBuiltInCatalog(t *testing.T) {
	customers := &fakeCustomerStore{customers: map[string]*customer.Customer{
		"912345678": {Phone: "912345678", Tier: customer.TierNormal, Points: 100},
	}}
	svc := newTestService(customers, &fakeTransactionStore{}, &fakeRewardStore{})

	c, err := svc.Redeem(context.Background(), "912345678", "Dose de Batatas Fritas")
	if err != nil {
		t.Fatal(err)
	}
	if c.Points != 0 {
		t.Errorf("points = %d, want 0", c.Points)
	}
}

func TestRedeemUnknownReward(t *testing.T) {
	customers := &fakeCustomerStore{customers: map[string]*customer.Customer{
		"912345678": {Phone: "912345678", Tier: customer.TierNormal, Points: 1000},
	}}
	svc := newTestService(customers, &fakeTransactionStore{}, &fakeRewardStore{})

	_, err := svc.Redeem(context.Background(), "912345678", "Pizza Familiar")
	if !errors.Is(err, xerrors.ErrNotFound) {
		t.Errorf("err = %v, want ErrNotFound", err)
	}
}

func TestDashboardFallsBackToHistoryText(t *testing.T) {
	// A legacy record has a history blob but no structured rows.
	customers := &fakeCustomerStore{customers: map[string]*customer.Customer{
		"912345678": {
			Phone: "912345678", Tier: customer.TierNormal, Points: 65,
			History: "15/08/2026 10:00 | Compra 12.5€ | +60 pts\n" +
				"28/07/2026 13:15 | Compra 4€ | +20 pts\n" +
				"corrupted line",
		},
	}}
	svc := newTestService(customers, &fakeTransactionStore{}, &fakeRewardStore{})

	d, err := svc.Dashboard(context.Background(), "912345678")
	if err != nil {
		t.Fatal(err)
	}
	if d.CurrentMonthSpend != "12.5" {
		t.Errorf("current month = %s, want 12.5", d.CurrentMonthSpend)
	}
	if d.PreviousMonthSpend != "4.0" {
		t.Errorf("previous month = %s, want 4.0", d.PreviousMonthSpend)
	}
}

func TestDashboardUsesStructuredRows(t *testing.T) {
	customers := &fakeCustomerStore{customers: map[string]*customer.Customer{
		"912345678": {Phone: "912345678", Tier: customer.TierNormal, Points: 0},
	}}
	txs := &fakeTransactionStore{}
	svc := newTestService(customers, txs, &fakeRewardStore{})

	if _, err := svc.Earn(context.Background(), "912345678", decimal.RequireFromString("8.5")); err != nil {
		t.Fatal(err)
	}

	d, err := svc.Dashboard(context.Background(), "912345678")
	if err != nil {
		t.Fatal(err)
	}
	if d.CurrentMonthSpend != "8.5" {
		t.Errorf("current month = %s, want 8.5", d.CurrentMonthSpend)
	}
	if d.PreviousMonthSpend != "0.0" {
		t.Errorf("previous month = %s, want 0.0", d.PreviousMonthSpend)
	}
}

func TestDriftReportsWithoutCorrecting(t *testing.T) {
	customers := &fakeCustomerStore{customers: map[string]*customer.Customer{
		"912345678": {Phone: "912345678", Tier: customer.TierNormal, Points: 50},
	}}
	txs := &fakeTransactionStore{}
	svc := newTestService(customers, txs, &fakeRewardStore{})

	// Admin edit bumped the balance without a matching transaction.
	drift, err := svc.Drift(context.Background(), "912345678")
	if err != nil {
		t.Fatal(err)
	}
	if drift != 50 {
		t.Errorf("drift = %d, want 50", drift)
	}
	if customers.customers["912345678"].Points != 50 {
		t.Error("drift reporting must not touch the balance")
	}
}
