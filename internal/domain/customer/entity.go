// internal/domain/customer/entity.go
package customer

import (
	"database/sql"
	"time"
)

// Tier determines the points-per-euro multiplier.
type Tier string

const (
	TierNormal  Tier = "normal"
	TierStudent Tier = "student"
)

// Valid reports whether t is one of the known tiers.
func (t Tier) Valid() bool {
	return t == TierNormal || t == TierStudent
}

// Customer is a loyalty club member, keyed by phone number.
// History holds the rendered transaction log, newest line first.
type Customer struct {
	ID    int64  `json:"id" db:"id"`
	Phone string `json:"phone" db:"phone"`

	FullName sql.NullString `json:"full_name,omitempty" db:"full_name"`
	Tier     Tier           `json:"tier" db:"tier"`
	Points   int64          `json:"points" db:"points"`
	History  string         `json:"history" db:"history"`

	CreatedAt time.Time `json:"created_at" db:"created_at"`
	UpdatedAt time.Time `json:"updated_at" db:"updated_at"`
}

type CustomerStats struct {
	TotalCustomers int64 `json:"total_customers"`
	StudentTier    int64 `json:"student_tier"`
	NewThisMonth   int64 `json:"new_this_month"`
}
