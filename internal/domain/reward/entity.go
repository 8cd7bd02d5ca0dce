// internal/domain/reward/entity.go
package reward

import (
	"time"

	"github.com/lib/pq"
	"github.com/shopspring/decimal"
)

// Reward is one redeemable catalog item. Either PointCost is set
// directly, or it is derived from Price (whole euros rounded up, times
// a hundred).
type Reward struct {
	ID        int64           `json:"id" db:"id"`
	Name      string          `json:"name" db:"name"`
	PointCost int64           `json:"point_cost" db:"point_cost"`
	Price     decimal.Decimal `json:"price" db:"price"`
	Tags      pq.StringArray  `json:"tags,omitempty" db:"tags"`
	Active    bool            `json:"active" db:"active"`
	CreatedAt time.Time       `json:"created_at" db:"created_at"`
}

type CreateRewardRequest struct {
	Name      string   `json:"name" binding:"required,max=255"`
	PointCost int64    `json:"point_cost" binding:"omitempty,min=1"`
	Price     string   `json:"price"` // decimal euros, used when point_cost is absent
	Tags      []string `json:"tags"`
}
