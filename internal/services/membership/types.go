package membership

// AddMemberInput adds a member directly, bypassing the invitation flow.
// AddedBy must hold the manage-members permission.
type AddMemberInput struct {
	WalletID     string
	UserID       string
	Role         string
	AddedBy      string
	VotingWeight int64
}

// InviteMemberInput mints a single-use invitation token.
type InviteMemberInput struct {
	WalletID     string
	InvitedEmail string
	InvitedBy    string
	Role         string
}
