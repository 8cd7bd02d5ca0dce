// internal/domain/auth/dto.go
package auth

import "time"

// LoginRequest carries the shared staff password; there are no
// individual staff accounts.
type LoginRequest struct {
	Password string `json:"password" binding:"required"`
	Device   string `json:"device" binding:"max=100"`

	// Filled by the handler, not the client.
	IPAddress string `json:"-"`
	UserAgent string `json:"-"`
}

type LoginResponse struct {
	Token     string    `json:"token"`
	ExpiresAt time.Time `json:"expires_at"`
}
