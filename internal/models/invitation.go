package models

import "time"

// Invitation statuses
const (
	InvitationStatusPending  = "pending"
	InvitationStatusAccepted = "accepted"
	InvitationStatusDeclined = "declined"
	InvitationStatusExpired  = "expired"
)

// Invitation is a single-use, expiring offer of membership. The token is a
// secondary index key pointing at the invitation id; no Member row exists
// until the invitation is accepted.
type Invitation struct {
	ID           string     `json:"id"`
	WalletID     string     `json:"wallet_id"`
	InvitedEmail string     `json:"invited_email"`
	InvitedBy    string     `json:"invited_by"`
	Role         string     `json:"role"`
	Token        string     `json:"token"`
	ExpiresAt    time.Time  `json:"expires_at"`
	Status       string     `json:"status"`
	AcceptedBy   string     `json:"accepted_by,omitempty"`
	AcceptedAt   *time.Time `json:"accepted_at,omitempty"`
	CreatedAt    time.Time  `json:"created_at"`
}
