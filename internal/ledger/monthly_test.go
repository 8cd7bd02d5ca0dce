package ledger

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
)

func TestMonthlyTotals(t *testing.T) {
	now := time.Date(2026, time.August, 20, 12, 0, 0, 0, time.UTC)
	history := "15/08/2026 10:00 | Compra 12.5€ | +60 pts\n" +
		"02/08/2026 19:30 | Compra 4€ | +20 pts\n" +
		"28/07/2026 13:15 | Compra 9.99€ | +45 pts\n" +
		"28/07/2026 13:20 | Resgate Dose de Batatas Fritas | -100 pts\n" +
		"01/06/2026 09:00 | Compra 100€ | +500 pts"

	cur, prev := MonthlyTotals(history, now)
	if want := decimal.RequireFromString("16.5"); !cur.Equal(want) {
		t.Errorf("current month = %s, want %s", cur, want)
	}
	if want := decimal.RequireFromString("9.99"); !prev.Equal(want) {
		t.Errorf("previous month = %s, want %s", prev, want)
	}
}

func TestMonthlyTotalsDecemberWraparound(t *testing.T) {
	now := time.Date(2026, time.January, 10, 12, 0, 0, 0, time.UTC)
	history := "05/01/2026 10:00 | Compra 8€ | +40 pts\n" +
		"29/12/2025 21:00 | Compra 15€ | +75 pts\n" +
		"29/12/2024 21:00 | Compra 999€ | +4995 pts"

	cur, prev := MonthlyTotals(history, now)
	if want := decimal.NewFromInt(8); !cur.Equal(want) {
		t.Errorf("current month = %s, want %s", cur, want)
	}
	// December of the prior year, not any older December.
	if want := decimal.NewFromInt(15); !prev.Equal(want) {
		t.Errorf("previous month = %s, want %s", prev, want)
	}
}

func TestMonthlyTotalsSkipsMalformedLines(t *testing.T) {
	now := time.Date(2026, time.August, 20, 12, 0, 0, 0, time.UTC)
	history := "15/08/2026 10:00 | Compra 12.5€ | +60 pts\n" +
		"not a real entry\n" +
		"garbage | Compra ???€ | pts"

	cur, prev := MonthlyTotals(history, now)
	if want := decimal.RequireFromString("12.5"); !cur.Equal(want) {
		t.Errorf("current month = %s, want %s", cur, want)
	}
	if !prev.IsZero() {
		t.Errorf("previous month = %s, want 0", prev)
	}
}

func TestMonthlyTotalsEmptyHistory(t *testing.T) {
	now := time.Date(2026, time.August, 20, 12, 0, 0, 0, time.UTC)
	cur, prev := MonthlyTotals("", now)
	if !cur.IsZero() || !prev.IsZero() {
		t.Errorf("empty history = (%s, %s), want (0, 0)", cur, prev)
	}
}

func TestMonthlyTotalsIdempotent(t *testing.T) {
	now := time.Date(2026, time.August, 20, 12, 0, 0, 0, time.UTC)
	history := "15/08/2026 10:00 | Compra 12.5€ | +60 pts"

	cur1, prev1 := MonthlyTotals(history, now)
	cur2, prev2 := MonthlyTotals(history, now)
	if !cur1.Equal(cur2) || !prev1.Equal(prev2) {
		t.Errorf("aggregation is not idempotent: (%s,%s) vs (%s,%s)", cur1, prev1, cur2, prev2)
	}
}
