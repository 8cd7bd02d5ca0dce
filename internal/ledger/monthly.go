// internal/ledger/monthly.go
package ledger

import (
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// MonthlyTotals re-derives the current- and previous-month purchase
// totals from a history blob. Redemptions, free text and corrupt lines
// are skipped; one bad transaction never aborts aggregation of the
// rest. Empty history yields two zeros.
func MonthlyTotals(history string, now time.Time) (current, previous decimal.Decimal) {
	current, previous = decimal.Zero, decimal.Zero

	curYear, curMonth := now.Year(), now.Month()
	prevYear, prevMonth := curYear, curMonth-1
	if curMonth == time.January {
		prevYear, prevMonth = curYear-1, time.December
	}

	for _, line := range strings.Split(history, "\n") {
		p, err := ParsePurchase(line, now)
		if err != nil {
			continue
		}
		switch {
		case p.When.Year() == curYear && p.When.Month() == curMonth:
			current = current.Add(p.Amount)
		case p.When.Year() == prevYear && p.When.Month() == prevMonth:
			previous = previous.Add(p.Amount)
		}
	}

	return current, previous
}
