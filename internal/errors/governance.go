package errors

var (
	ErrProposalNotFound = &DomainError{
		Code:    "not_found",
		Message: "proposal not found",
	}
	ErrProposalNotPending = &DomainError{
		Code:    "not_pending",
		Message: "proposal is no longer open for voting",
	}
	ErrProposalNotApproved = &DomainError{
		Code:    "not_approved",
		Message: "proposal has not been approved",
	}
	ErrAlreadyVoted = &DomainError{
		Code:    "already_voted",
		Message: "voter has already voted on this proposal",
	}
	ErrNotAuthorized = &DomainError{
		Code:    "not_authorized",
		Message: "caller is not an active member with the required permission",
	}
)
