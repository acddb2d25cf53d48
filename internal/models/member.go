package models

import "time"

// Member roles
const (
	RoleAdmin  = "admin"
	RoleMember = "member"
	RoleViewer = "viewer"
)

// Member statuses
const (
	MemberStatusActive    = "active"
	MemberStatusInvited   = "invited"
	MemberStatusSuspended = "suspended"
)

// Permissions are the per-member capability bits consulted on every
// governance call. They are never cached outside the registry.
type Permissions struct {
	View          bool `json:"view"`
	Propose       bool `json:"propose"`
	Vote          bool `json:"vote"`
	ManageMembers bool `json:"manage_members"`
	ManageWallet  bool `json:"manage_wallet"`
}

// Member ties a user to a wallet. Members are never hard-deleted; status
// transitions take their place.
type Member struct {
	UserID       string      `json:"user_id"`
	WalletID     string      `json:"wallet_id"`
	Role         string      `json:"role"`
	Status       string      `json:"status"`
	Permissions  Permissions `json:"permissions"`
	VotingWeight int64       `json:"voting_weight"`
	JoinedAt     time.Time   `json:"joined_at"`
}

func (m *Member) IsActive() bool {
	return m.Status == MemberStatusActive
}

func (m *Member) CanVote() bool {
	return m.IsActive() && m.Permissions.Vote
}
