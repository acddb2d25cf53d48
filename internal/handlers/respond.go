// Package handlers exposes one HTTP operation per actor call. Every
// operation returns a success flag plus either its payload or a
// machine-readable failure reason.
package handlers

import (
	"errors"

	apperr "chama/internal/errors"
	"chama/internal/utils"

	"github.com/gofiber/fiber/v2"
)

// respondError maps a service error onto the wire contract. Domain errors
// surface their code as the failure reason; anything else is an internal
// error.
func respondError(c *fiber.Ctx, err error) error {
	var de *apperr.DomainError
	if errors.As(err, &de) {
		return utils.Fail(c, statusFor(de.Code), de.Code, de.Message)
	}
	return utils.Fail(c, fiber.StatusInternalServerError, "internal_error", "")
}

func statusFor(code string) int {
	switch code {
	case "wallet_not_found", "member_not_found", "not_found", "transaction_not_found":
		return fiber.StatusNotFound
	case "not_authorized", "insufficient_permissions":
		return fiber.StatusForbidden
	case "not_pending", "already_voted", "not_approved", "already_processed",
		"expired", "member_exists", "duplicate_transaction", "wallet_inactive",
		"loan_not_approved", "no_active_loan":
		return fiber.StatusConflict
	case "insufficient_funds":
		return fiber.StatusUnprocessableEntity
	default:
		return fiber.StatusBadRequest
	}
}
