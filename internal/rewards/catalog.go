// internal/rewards/catalog.go
package rewards

import (
	"errors"

	"github.com/shopspring/decimal"

	"kaokente-service/internal/domain/reward"
)

var ErrUnknownReward = errors.New("unknown reward")

// DefaultCatalog is the launch reward list of the stand. It seeds the
// rewards table and backs redemption when the table has no override.
var DefaultCatalog = []reward.Reward{
	{Name: "Bebida de Cápsula", PointCost: 50, Active: true},
	{Name: "Dose de Batatas Fritas", PointCost: 100, Active: true},
	{Name: "Kebab em Pão", PointCost: 250, Active: true},
	{Name: "Menu Hambúrguer Completo", PointCost: 400, Active: true},
	{Name: "Francesinha Especial", PointCost: 600, Active: true},
}

// PriceToCost converts a euro price into a point cost: whole euros
// rounded up, one hundred points each.
func PriceToCost(price decimal.Decimal) int64 {
	return price.Ceil().IntPart() * 100
}

// CostOf resolves a reward's point cost, preferring the fixed cost and
// falling back to the price rule.
func CostOf(r reward.Reward) int64 {
	if r.PointCost > 0 {
		return r.PointCost
	}
	return PriceToCost(r.Price)
}

// Catalog resolves reward names to point costs.
type Catalog struct {
	byName map[string]reward.Reward
}

func NewCatalog(items []reward.Reward) *Catalog {
	byName := make(map[string]reward.Reward, len(items))
	for _, r := range items {
		byName[r.Name] = r
	}
	return &Catalog{byName: byName}
}

// Default returns a catalog over the launch reward list.
func Default() *Catalog {
	return NewCatalog(DefaultCatalog)
}

// Cost looks up the point cost of a reward by name.
func (c *Catalog) Cost(name string) (int64, error) {
	r, ok := c.byName[name]
	if !ok {
		return 0, ErrUnknownReward
	}
	return CostOf(r), nil
}

// CanRedeem reports whether a balance covers the named reward.
func (c *Catalog) CanRedeem(balance int64, name string) (bool, error) {
	cost, err := c.Cost(name)
	if err != nil {
		return false, err
	}
	return balance >= cost, nil
}
