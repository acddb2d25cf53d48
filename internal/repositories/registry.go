package repositories

import (
	"context"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

// Registry key layout
const (
	registryAllWallets  = "registry:wallets"
	registryUserWallets = "registry:user_wallets:"
	registryWalletName  = "registry:wallet_names"
)

const registryTimeout = 2 * time.Second

// Registry maintains the global cross-wallet indices in Redis: the
// all-wallet set, per-user wallet lists and a wallet-name map. Writes are
// best-effort and fire-and-forget: a wallet can exist locally before, or
// even without, its registry entry, and callers must tolerate that.
// Failures are logged and swallowed, never retried.
type Registry struct {
	rdb *redis.Client
	log *zap.Logger
}

// NewRegistry returns a registry over the given client. A nil client yields
// a registry whose writes are no-ops, for deployments without Redis.
func NewRegistry(rdb *redis.Client, log *zap.Logger) *Registry {
	if log == nil {
		log = zap.NewNop()
	}
	return &Registry{rdb: rdb, log: log}
}

// RegisterWallet adds a wallet to the global listing.
func (r *Registry) RegisterWallet(ctx context.Context, walletID, name string) {
	if r == nil || r.rdb == nil {
		return
	}
	ctx, cancel := context.WithTimeout(ctx, registryTimeout)
	defer cancel()
	if err := r.rdb.SAdd(ctx, registryAllWallets, walletID).Err(); err != nil {
		r.log.Warn("registry wallet registration failed",
			zap.String("wallet_id", walletID), zap.Error(err))
		return
	}
	if err := r.rdb.HSet(ctx, registryWalletName, walletID, name).Err(); err != nil {
		r.log.Warn("registry wallet name write failed",
			zap.String("wallet_id", walletID), zap.Error(err))
	}
}

// AddUserWallet appends a wallet to a user's wallet index.
func (r *Registry) AddUserWallet(ctx context.Context, userID, walletID string) {
	if r == nil || r.rdb == nil {
		return
	}
	ctx, cancel := context.WithTimeout(ctx, registryTimeout)
	defer cancel()
	if err := r.rdb.SAdd(ctx, registryUserWallets+userID, walletID).Err(); err != nil {
		r.log.Warn("registry user wallet write failed",
			zap.String("user_id", userID), zap.Error(err))
	}
}

// UserWallets returns the wallets a user belongs to, as far as the registry
// knows. The registry may lag the wallets' own stores.
func (r *Registry) UserWallets(ctx context.Context, userID string) ([]string, error) {
	if r == nil || r.rdb == nil {
		return nil, nil
	}
	ctx, cancel := context.WithTimeout(ctx, registryTimeout)
	defer cancel()
	return r.rdb.SMembers(ctx, registryUserWallets+userID).Result()
}

// AllWallets returns every registered wallet id.
func (r *Registry) AllWallets(ctx context.Context) ([]string, error) {
	if r == nil || r.rdb == nil {
		return nil, nil
	}
	ctx, cancel := context.WithTimeout(ctx, registryTimeout)
	defer cancel()
	return r.rdb.SMembers(ctx, registryAllWallets).Result()
}
