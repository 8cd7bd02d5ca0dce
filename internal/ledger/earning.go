// internal/ledger/earning.go
package ledger

import (
	"github.com/shopspring/decimal"

	"kaokente-service/internal/domain/customer"
)

// EarnMode selects how fractional euros are handled when converting
// spend into points. Both behaviors exist in historical data.
type EarnMode int

const (
	// EarnTruncateSpend drops the cents before multiplying. Current rule.
	EarnTruncateSpend EarnMode = iota
	// EarnTruncateProduct multiplies the raw spend and floors only the
	// product. Kept for parity with records written by older releases.
	EarnTruncateProduct
)

var (
	multiplierNormal  = decimal.NewFromInt(5)
	multiplierStudent = decimal.RequireFromString("7.5")
)

func multiplierFor(tier customer.Tier) decimal.Decimal {
	if tier == customer.TierStudent {
		return multiplierStudent
	}
	return multiplierNormal
}

// PointsEarned computes the points awarded for a euro spend under the
// current rule: 5 points per whole euro for normal customers, 7.5 for
// students, cents discarded, product floored. Negative spend is not
// rejected and yields negative points.
func PointsEarned(spend decimal.Decimal, tier customer.Tier) int64 {
	return PointsEarnedMode(spend, tier, EarnTruncateSpend)
}

// PointsEarnedMode is PointsEarned with an explicit truncation mode.
func PointsEarnedMode(spend decimal.Decimal, tier customer.Tier, mode EarnMode) int64 {
	m := multiplierFor(tier)
	if mode == EarnTruncateProduct {
		return spend.Mul(m).Floor().IntPart()
	}
	return spend.Truncate(0).Mul(m).Floor().IntPart()
}
