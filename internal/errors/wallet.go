package errors

var (
	ErrWalletNotFound = &DomainError{
		Code:    "wallet_not_found",
		Message: "wallet not found",
	}
	ErrWalletInactive = &DomainError{
		Code:    "wallet_inactive",
		Message: "wallet is not active",
	}
	ErrInvalidAmount = &DomainError{
		Code:    "invalid_amount",
		Message: "amount must be positive",
	}
	ErrInsufficientFunds = &DomainError{
		Code:    "insufficient_funds",
		Message: "insufficient wallet balance",
	}
	ErrTransactionNotFound = &DomainError{
		Code:    "transaction_not_found",
		Message: "transaction not found",
	}
	ErrDuplicateTransaction = &DomainError{
		Code:    "duplicate_transaction",
		Message: "a transaction with this external reference was already applied",
	}
)
