// Package validation holds the input checks run before any write.
package validation

import (
	"fmt"

	apperr "chama/internal/errors"
	"chama/internal/models"
)

// Amount rejects non-positive money amounts.
func Amount(amount int64) error {
	if amount <= 0 {
		return apperr.ErrInvalidAmount
	}
	return nil
}

// Required rejects empty required string fields.
func Required(field, value string) error {
	if value == "" {
		return &apperr.DomainError{
			Code:    "validation_error",
			Message: fmt.Sprintf("%s is required", field),
		}
	}
	return nil
}

// Role rejects unknown member roles.
func Role(role string) error {
	switch role {
	case models.RoleAdmin, models.RoleMember, models.RoleViewer:
		return nil
	}
	return &apperr.DomainError{
		Code:    "validation_error",
		Message: fmt.Sprintf("unknown role %q", role),
	}
}

// ProposalType rejects unknown proposal types.
func ProposalType(t string) error {
	switch t {
	case models.ProposalTypeExpense, models.ProposalTypeIncome,
		models.ProposalTypeTransfer, models.ProposalTypeWithdrawal:
		return nil
	}
	return &apperr.DomainError{
		Code:    "validation_error",
		Message: fmt.Sprintf("unknown proposal type %q", t),
	}
}

// VoteChoice rejects unknown vote choices.
func VoteChoice(choice string) error {
	switch choice {
	case models.VoteApprove, models.VoteReject, models.VoteAbstain:
		return nil
	}
	return &apperr.DomainError{
		Code:    "validation_error",
		Message: fmt.Sprintf("unknown vote choice %q", choice),
	}
}

// Threshold rejects approval thresholds outside (0, 1].
func Threshold(t float64) error {
	if t <= 0 || t > 1 {
		return &apperr.DomainError{
			Code:    "validation_error",
			Message: "approval threshold must be in (0, 1]",
		}
	}
	return nil
}
