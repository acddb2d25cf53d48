// Package routes defines the API routing configuration.
package routes

import (
	"chama/internal/handlers"
	"chama/internal/middleware"
	"chama/internal/repositories"
	"chama/internal/services/credit"
	"chama/internal/services/governance"
	"chama/internal/services/ledger"
	"chama/internal/services/membership"
	"chama/internal/store"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// SetupRoutes wires repositories, services and handlers onto the app.
func SetupRoutes(app *fiber.App, st *store.Store, registry *repositories.Registry, log *zap.Logger) {
	ledgerService := ledger.NewService(st, registry, ledger.Config{})
	membershipService := membership.NewService(st, registry)
	governanceService := governance.NewService(st)
	creditService := credit.NewService(st, credit.Config{})

	walletHandler := handlers.NewWalletHandler(ledgerService)
	membershipHandler := handlers.NewMembershipHandler(membershipService)
	governanceHandler := handlers.NewGovernanceHandler(governanceService)
	creditHandler := handlers.NewCreditHandler(creditService)
	webhookHandler := handlers.NewDepositWebhookHandler(ledgerService, log)

	app.Get("/health", handlers.HealthCheck)

	// Stripe calls this unauthenticated; the event signature is the auth.
	app.Post("/webhooks/stripe", webhookHandler.Handle)

	api := app.Group("/api", middleware.Auth())

	wallets := api.Group("/wallets")
	wallets.Post("/", walletHandler.CreateWallet)
	wallets.Get("/:id", walletHandler.GetWallet)
	wallets.Get("/:id/transactions", walletHandler.GetTransactions)
	wallets.Post("/:id/deposits", walletHandler.ReconcileDeposit)

	wallets.Get("/:id/members", membershipHandler.GetMembers)
	wallets.Post("/:id/members", membershipHandler.AddMember)
	wallets.Post("/:id/invitations", membershipHandler.InviteMember)
	api.Post("/invitations/accept", membershipHandler.AcceptInvitation)

	wallets.Post("/:id/proposals", governanceHandler.ProposeTransaction)
	wallets.Get("/:id/proposals", governanceHandler.ListProposals)
	proposals := api.Group("/proposals")
	proposals.Get("/:id", governanceHandler.GetProposal)
	proposals.Post("/:id/votes", governanceHandler.Vote)
	proposals.Post("/:id/execute", governanceHandler.ExecuteTransaction)
	proposals.Post("/:id/cancel", governanceHandler.CancelProposal)

	wallets.Post("/:id/score", creditHandler.ComputeScore)
	wallets.Post("/:id/loan", creditHandler.ApplyLoan)
	wallets.Post("/:id/loan/disburse", creditHandler.DisburseLoan)
	wallets.Post("/:id/loan/repayments", creditHandler.RepayLoan)
}
