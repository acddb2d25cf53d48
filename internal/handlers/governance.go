package handlers

import (
	"chama/internal/middleware"
	"chama/internal/services/governance"
	"chama/internal/utils"

	"github.com/gofiber/fiber/v2"
)

type GovernanceHandler struct {
	governanceService governance.Service
}

func NewGovernanceHandler(governanceService governance.Service) *GovernanceHandler {
	return &GovernanceHandler{governanceService: governanceService}
}

func (h *GovernanceHandler) ProposeTransaction(c *fiber.Ctx) error {
	var input struct {
		ProposedBy  string `json:"proposed_by"`
		Type        string `json:"type"`
		Amount      int64  `json:"amount"`
		Recipient   string `json:"recipient"`
		Description string `json:"description"`
		Category    string `json:"category"`
	}
	if err := c.BodyParser(&input); err != nil {
		return utils.BadRequest(c, "invalid_request", "invalid request format")
	}

	proposal, err := h.governanceService.ProposeTransaction(c.Context(), governance.ProposeInput{
		WalletID:    c.Params("id"),
		ProposedBy:  middleware.CallerID(c, input.ProposedBy),
		Type:        input.Type,
		Amount:      input.Amount,
		Recipient:   input.Recipient,
		Description: input.Description,
		Category:    input.Category,
	})
	if err != nil {
		return respondError(c, err)
	}
	return utils.Success(c, fiber.Map{
		"proposal_id": proposal.ID,
		"status":      proposal.Status,
	})
}

func (h *GovernanceHandler) ListProposals(c *fiber.Ctx) error {
	limit := c.QueryInt("limit", 20)
	proposals, err := h.governanceService.ListProposals(c.Context(), c.Params("id"), limit)
	if err != nil {
		return respondError(c, err)
	}
	return utils.Success(c, fiber.Map{"proposals": proposals})
}

func (h *GovernanceHandler) GetProposal(c *fiber.Ctx) error {
	proposal, votes, err := h.governanceService.GetProposal(c.Context(), c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	return utils.Success(c, fiber.Map{"proposal": proposal, "votes": votes})
}

func (h *GovernanceHandler) Vote(c *fiber.Ctx) error {
	var input struct {
		VoterID string `json:"voter_id"`
		Vote    string `json:"vote"`
		Reason  string `json:"reason"`
	}
	if err := c.BodyParser(&input); err != nil {
		return utils.BadRequest(c, "invalid_request", "invalid request format")
	}

	status, err := h.governanceService.VoteOnProposal(c.Context(), governance.VoteInput{
		ProposalID: c.Params("id"),
		VoterID:    middleware.CallerID(c, input.VoterID),
		Choice:     input.Vote,
		Reason:     input.Reason,
	})
	if err != nil {
		return respondError(c, err)
	}
	return utils.Success(c, fiber.Map{"proposal_status": status})
}

func (h *GovernanceHandler) ExecuteTransaction(c *fiber.Ctx) error {
	var input struct {
		ExecutedBy string `json:"executed_by"`
		Reference  string `json:"reference"`
		Notes      string `json:"notes"`
	}
	if err := c.BodyParser(&input); err != nil {
		return utils.BadRequest(c, "invalid_request", "invalid request format")
	}

	record, err := h.governanceService.ExecuteTransaction(c.Context(), governance.ExecuteInput{
		ProposalID: c.Params("id"),
		ExecutedBy: middleware.CallerID(c, input.ExecutedBy),
		Reference:  input.Reference,
		Notes:      input.Notes,
	})
	if err != nil {
		return respondError(c, err)
	}
	return utils.Success(c, fiber.Map{
		"transaction_id": record.ID,
		"new_balance":    record.BalanceAfter,
	})
}

func (h *GovernanceHandler) CancelProposal(c *fiber.Ctx) error {
	var input struct {
		RequestedBy string `json:"requested_by"`
	}
	if err := c.BodyParser(&input); err != nil {
		return utils.BadRequest(c, "invalid_request", "invalid request format")
	}

	err := h.governanceService.CancelProposal(c.Context(), c.Params("id"),
		middleware.CallerID(c, input.RequestedBy))
	if err != nil {
		return respondError(c, err)
	}
	return utils.Success(c, fiber.Map{"proposal_status": "cancelled"})
}
