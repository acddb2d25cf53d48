package errors

var (
	ErrInsufficientPermissions = &DomainError{
		Code:    "insufficient_permissions",
		Message: "member lacks the required permission",
	}
	ErrMemberNotFound = &DomainError{
		Code:    "member_not_found",
		Message: "member not found",
	}
	ErrMemberExists = &DomainError{
		Code:    "member_exists",
		Message: "user is already a member of this wallet",
	}
	ErrInvalidToken = &DomainError{
		Code:    "invalid_token",
		Message: "invitation token is not recognised",
	}
	ErrInvitationExpired = &DomainError{
		Code:    "expired",
		Message: "invitation has expired",
	}
	ErrInvitationProcessed = &DomainError{
		Code:    "already_processed",
		Message: "invitation has already been accepted or declined",
	}
)
