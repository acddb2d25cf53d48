package handlers

import (
	"encoding/json"
	"errors"

	"chama/internal/config"
	apperr "chama/internal/errors"
	"chama/internal/services/ledger"
	"chama/internal/utils"

	"github.com/gofiber/fiber/v2"
	stripe "github.com/stripe/stripe-go/v72"
	"github.com/stripe/stripe-go/v72/webhook"
	"go.uber.org/zap"
)

// DepositWebhookHandler turns Stripe payment events into ledger deposits.
// The Stripe payment-intent id is the idempotency key, so webhook retries
// never double-credit a wallet.
type DepositWebhookHandler struct {
	ledgerService ledger.Service
	log           *zap.Logger
}

func NewDepositWebhookHandler(ledgerService ledger.Service, log *zap.Logger) *DepositWebhookHandler {
	if log == nil {
		log = zap.NewNop()
	}
	return &DepositWebhookHandler{ledgerService: ledgerService, log: log}
}

func (h *DepositWebhookHandler) Handle(c *fiber.Ctx) error {
	secret := config.GetEnv("STRIPE_WEBHOOK_SECRET", "")
	event, err := webhook.ConstructEvent(c.Body(), c.Get("Stripe-Signature"), secret)
	if err != nil {
		return utils.BadRequest(c, "invalid_signature", "webhook signature verification failed")
	}

	if event.Type != "payment_intent.succeeded" {
		// Unhandled event types are acknowledged so Stripe stops retrying.
		return utils.Success(c, fiber.Map{"handled": false})
	}

	var intent stripe.PaymentIntent
	if err := json.Unmarshal(event.Data.Raw, &intent); err != nil {
		return utils.BadRequest(c, "invalid_request", "malformed payment intent payload")
	}
	walletID := intent.Metadata["wallet_id"]
	if walletID == "" {
		h.log.Warn("payment intent without wallet metadata", zap.String("intent_id", intent.ID))
		return utils.Success(c, fiber.Map{"handled": false})
	}

	rec, err := h.ledgerService.ReconcileDeposit(c.Context(), ledger.ReconcileDepositInput{
		WalletID:    walletID,
		Amount:      intent.Amount,
		ExternalID:  intent.ID,
		Description: "stripe deposit",
		Reference:   event.ID,
	})
	if errors.Is(err, apperr.ErrDuplicateTransaction) {
		// Replayed delivery; acknowledge it so Stripe stops retrying.
		return utils.Success(c, fiber.Map{"handled": true, "duplicate": true})
	}
	if err != nil {
		return respondError(c, err)
	}

	h.log.Info("deposit reconciled",
		zap.String("wallet_id", walletID),
		zap.String("intent_id", intent.ID),
		zap.Int64("amount", intent.Amount))
	return utils.Success(c, fiber.Map{
		"handled":     true,
		"new_balance": rec.BalanceAfter,
	})
}
