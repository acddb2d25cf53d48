package models

// DefaultPermissions returns the permission bits derived from a role.
// Viewers can only look; admins hold every capability.
func DefaultPermissions(role string) Permissions {
	switch role {
	case RoleAdmin:
		return Permissions{
			View:          true,
			Propose:       true,
			Vote:          true,
			ManageMembers: true,
			ManageWallet:  true,
		}
	case RoleMember:
		return Permissions{
			View:    true,
			Propose: true,
			Vote:    true,
		}
	case RoleViewer:
		return Permissions{View: true}
	default:
		return Permissions{}
	}
}
