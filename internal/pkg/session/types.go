// internal/pkg/session/types.go
package session

import "time"

// SessionData is the Redis-backed record of one live staff session.
type SessionData struct {
	JTI       string    `json:"jti"`
	Role      string    `json:"role"`
	Device    string    `json:"device,omitempty"`
	IPAddress string    `json:"ip_address"`
	UserAgent string    `json:"user_agent"`
	LoginAt   time.Time `json:"login_at"`
	ExpiresAt time.Time `json:"expires_at"`
}
