package handlers

import (
	"chama/internal/middleware"
	"chama/internal/services/credit"
	"chama/internal/utils"

	"github.com/gofiber/fiber/v2"
)

type CreditHandler struct {
	creditService credit.Service
}

func NewCreditHandler(creditService credit.Service) *CreditHandler {
	return &CreditHandler{creditService: creditService}
}

func (h *CreditHandler) ComputeScore(c *fiber.Ctx) error {
	score, err := h.creditService.ComputeScore(c.Context(), c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	return utils.Success(c, fiber.Map{
		"score":      score.Value,
		"factors":    score.Factors,
		"reasons":    score.Reasons,
		"updated_at": score.UpdatedAt,
	})
}

// ApplyLoan always answers 200; a rejected application comes back with
// approved false and the reasons why.
func (h *CreditHandler) ApplyLoan(c *fiber.Ctx) error {
	var input struct {
		Amount int64 `json:"amount"`
		Term   int   `json:"term"`
	}
	if err := c.BodyParser(&input); err != nil {
		return utils.BadRequest(c, "invalid_request", "invalid request format")
	}

	decision, err := h.creditService.ApplyForLoan(c.Context(), credit.ApplyLoanInput{
		WalletID:  c.Params("id"),
		Amount:    input.Amount,
		TermWeeks: input.Term,
	})
	if err != nil {
		return respondError(c, err)
	}
	return utils.Success(c, fiber.Map{
		"approved": decision.Approved,
		"limit":    decision.Limit,
		"score":    decision.Score,
		"reasons":  decision.Reasons,
	})
}

func (h *CreditHandler) DisburseLoan(c *fiber.Ctx) error {
	var input struct {
		DisbursedBy string `json:"disbursed_by"`
	}
	if err := c.BodyParser(&input); err != nil {
		return utils.BadRequest(c, "invalid_request", "invalid request format")
	}

	loan, err := h.creditService.DisburseLoan(c.Context(), c.Params("id"),
		middleware.CallerID(c, input.DisbursedBy))
	if err != nil {
		return respondError(c, err)
	}
	return utils.Success(c, fiber.Map{"loan": loan})
}

func (h *CreditHandler) RepayLoan(c *fiber.Ctx) error {
	var input struct {
		Amount        int64  `json:"amount"`
		TransactionID string `json:"transaction_id"`
	}
	if err := c.BodyParser(&input); err != nil {
		return utils.BadRequest(c, "invalid_request", "invalid request format")
	}

	result, err := h.creditService.RepayLoan(c.Context(), credit.RepayLoanInput{
		WalletID:      c.Params("id"),
		Amount:        input.Amount,
		TransactionID: input.TransactionID,
	})
	if err != nil {
		return respondError(c, err)
	}
	return utils.Success(c, fiber.Map{
		"interest_payment":    result.InterestPayment,
		"principal_reduction": result.PrincipalReduction,
		"outstanding":         result.Outstanding,
		"loan_status":         result.Status,
	})
}
