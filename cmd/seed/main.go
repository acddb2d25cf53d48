// Package main seeds a demo community wallet with a small roster and some
// history, for local development against a fresh store.
package main

import (
	"context"
	"fmt"

	"chama/internal/config"
	"chama/internal/models"
	"chama/internal/repositories"
	"chama/internal/services/governance"
	"chama/internal/services/ledger"
	"chama/internal/services/membership"
	"chama/internal/store"

	"go.uber.org/zap"
)

func main() {
	config.LoadEnv()
	log, err := zap.NewDevelopment()
	if err != nil {
		panic(err)
	}
	defer log.Sync()

	st, err := store.Open(config.GetEnv("DATA_PATH", "data/chama.db"), log)
	if err != nil {
		log.Fatal("failed to open store", zap.Error(err))
	}
	defer st.Close()

	registry := repositories.NewRegistry(nil, log)
	ledgerService := ledger.NewService(st, registry, ledger.Config{})
	membershipService := membership.NewService(st, registry)
	governanceService := governance.NewService(st)

	ctx := context.Background()

	wallet, err := ledgerService.CreateWallet(ctx, ledger.CreateWalletInput{
		Name:             "Umoja Savings Group",
		Description:      "Demo community fund",
		CreatedBy:        "user-amina",
		AutoApproveBelow: 50_000,
	})
	if err != nil {
		log.Fatal("failed to create wallet", zap.Error(err))
	}

	for _, userID := range []string{"user-brian", "user-carol"} {
		if _, err := membershipService.AddMember(ctx, membership.AddMemberInput{
			WalletID: wallet.ID,
			UserID:   userID,
			Role:     models.RoleMember,
			AddedBy:  "user-amina",
		}); err != nil {
			log.Fatal("failed to add member", zap.Error(err))
		}
	}

	if _, err := ledgerService.ReconcileDeposit(ctx, ledger.ReconcileDepositInput{
		WalletID:    wallet.ID,
		Amount:      250_000,
		ExternalID:  "seed-deposit-1",
		Description: "monthly contribution",
	}); err != nil {
		log.Fatal("failed to seed deposit", zap.Error(err))
	}

	proposal, err := governanceService.ProposeTransaction(ctx, governance.ProposeInput{
		WalletID:    wallet.ID,
		ProposedBy:  "user-brian",
		Type:        models.ProposalTypeExpense,
		Amount:      30_000,
		Recipient:   "vendor-001",
		Description: "venue hire for monthly meeting",
	})
	if err != nil {
		log.Fatal("failed to seed proposal", zap.Error(err))
	}

	fmt.Printf("seeded wallet %s (proposal %s, status %s)\n",
		wallet.ID, proposal.ID, proposal.Status)
}
