package handlers

import (
	"chama/internal/middleware"
	"chama/internal/services/ledger"
	"chama/internal/utils"

	"github.com/gofiber/fiber/v2"
)

type WalletHandler struct {
	ledgerService ledger.Service
}

func NewWalletHandler(ledgerService ledger.Service) *WalletHandler {
	return &WalletHandler{ledgerService: ledgerService}
}

func (h *WalletHandler) CreateWallet(c *fiber.Ctx) error {
	var input struct {
		Name                 string  `json:"name"`
		Description          string  `json:"description"`
		CreatedBy            string  `json:"created_by"`
		InitialBalance       int64   `json:"initial_balance"`
		Currency             string  `json:"currency"`
		ApprovalThreshold    float64 `json:"approval_threshold"`
		AutoApproveBelow     int64   `json:"auto_approve_below"`
		RequireApprovalAbove int64   `json:"require_approval_above"`
	}
	if err := c.BodyParser(&input); err != nil {
		return utils.BadRequest(c, "invalid_request", "invalid request format")
	}

	wallet, err := h.ledgerService.CreateWallet(c.Context(), ledger.CreateWalletInput{
		Name:                 input.Name,
		Description:          input.Description,
		CreatedBy:            middleware.CallerID(c, input.CreatedBy),
		InitialBalance:       input.InitialBalance,
		Currency:             input.Currency,
		ApprovalThreshold:    input.ApprovalThreshold,
		AutoApproveBelow:     input.AutoApproveBelow,
		RequireApprovalAbove: input.RequireApprovalAbove,
	})
	if err != nil {
		return respondError(c, err)
	}
	return utils.Success(c, fiber.Map{"wallet_id": wallet.ID, "wallet": wallet})
}

func (h *WalletHandler) GetWallet(c *fiber.Ctx) error {
	wallet, err := h.ledgerService.GetWallet(c.Context(), c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	return utils.Success(c, fiber.Map{"wallet": wallet})
}

func (h *WalletHandler) GetTransactions(c *fiber.Ctx) error {
	limit := c.QueryInt("limit", 20)
	records, err := h.ledgerService.TransactionHistory(c.Context(), c.Params("id"), limit)
	if err != nil {
		return respondError(c, err)
	}
	return utils.Success(c, fiber.Map{"transactions": records})
}

// ReconcileDeposit credits an externally observed deposit exactly once per
// external transaction id.
func (h *WalletHandler) ReconcileDeposit(c *fiber.Ctx) error {
	var input struct {
		Amount                int64  `json:"amount"`
		ExternalTransactionID string `json:"external_transaction_id"`
		Description           string `json:"description"`
		Reference             string `json:"reference"`
	}
	if err := c.BodyParser(&input); err != nil {
		return utils.BadRequest(c, "invalid_request", "invalid request format")
	}

	rec, err := h.ledgerService.ReconcileDeposit(c.Context(), ledger.ReconcileDepositInput{
		WalletID:    c.Params("id"),
		Amount:      input.Amount,
		ExternalID:  input.ExternalTransactionID,
		Description: input.Description,
		Reference:   input.Reference,
	})
	if err != nil {
		return respondError(c, err)
	}
	return utils.Success(c, fiber.Map{
		"transaction_id": rec.ID,
		"new_balance":    rec.BalanceAfter,
	})
}
