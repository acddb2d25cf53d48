package errors

var (
	ErrNoActiveLoan = &DomainError{
		Code:    "no_active_loan",
		Message: "wallet has no loan awaiting repayment",
	}
	ErrLoanNotApproved = &DomainError{
		Code:    "loan_not_approved",
		Message: "loan is not in an approved state",
	}
)
