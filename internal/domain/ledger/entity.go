// internal/domain/ledger/entity.go
package ledger

import (
	"time"

	"github.com/shopspring/decimal"
)

// Kind classifies a ledger transaction. The rendered history line
// carries the same information only as a Portuguese marker word.
type Kind string

const (
	KindPurchase   Kind = "purchase"   // "Compra"
	KindRedemption Kind = "redemption" // "Resgate"
	KindAdjustment Kind = "adjustment" // free-text admin correction
)

// Transaction is the structured record behind one history line. The
// structured table is the audit source of truth; the history text is
// derived from it for display.
type Transaction struct {
	ID          string          `json:"id" db:"id"` // ULID
	Phone       string          `json:"phone" db:"phone"`
	Kind        Kind            `json:"kind" db:"kind"`
	Label       string          `json:"label" db:"label"`
	Amount      decimal.Decimal `json:"amount" db:"amount"` // euros for purchases, points for redemptions
	PointsDelta int64           `json:"points_delta" db:"points_delta"`
	OccurredAt  time.Time       `json:"occurred_at" db:"occurred_at"`
}

// MonthlySpend is one month bucket of purchase totals.
type MonthlySpend struct {
	Year  int             `json:"year"`
	Month time.Month      `json:"month"`
	Total decimal.Decimal `json:"total"`
}
