package oracle

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/framp/framp-backend/internal/consts"
	"github.com/framp/framp-backend/internal/model"
	"github.com/framp/framp-backend/internal/monitoring"
	"github.com/framp/framp-backend/internal/solrpc"
	"github.com/framp/framp-backend/internal/utils/config"
	"github.com/framp/framp-backend/internal/utils/logger"
)

var ErrTreasuryNotConfigured = errors.New("treasury wallet is not configured")

type BalanceOracle struct {
	mux sync.Mutex

	cache       map[string]WalletBalance
	ttl         time.Duration
	now         func() time.Time
	hits        int64
	misses      int64
	lastRefresh time.Time

	appConfig *config.AppConfig
	logger    *logger.Logger
	solRpc    solrpc.ISolRPC
	metrics   *monitoring.BusinessMetricsRecorder
}

func New(appConfig *config.AppConfig, logger *logger.Logger, solRpc solrpc.ISolRPC, metrics *monitoring.BusinessMetricsRecorder) IOracle {
	return &BalanceOracle{
		cache:     make(map[string]WalletBalance),
		ttl:       consts.WalletBalanceCacheTTL,
		now:       time.Now,
		appConfig: appConfig,
		logger:    logger,
		solRpc:    solRpc,
		metrics:   metrics,
	}
}

func (o *BalanceOracle) GetWalletBalance(ctx context.Context, address string) (*WalletBalance, error) {
	if cached, ok := o.lookup(address); ok {
		o.metrics.RecordCacheOperation("wallet_balance", "hit")
		return &cached, nil
	}
	o.metrics.RecordCacheOperation("wallet_balance", "miss")

	lamports, err := o.solRpc.GetBalance(ctx, address)
	if err != nil {
		o.logger.Error("[GetWalletBalance][GetBalance]", map[string]string{
			"address": address,
			"error":   err.Error(),
		})
		return nil, err
	}

	balance := WalletBalance{
		Address:   address,
		Lamports:  lamports,
		SOL:       model.LamportsToSOL(lamports),
		FetchedAt: o.now(),
	}
	o.store(balance)

	return &balance, nil
}

func (o *BalanceOracle) GetTreasuryBalance(ctx context.Context) (*WalletBalance, error) {
	if o.appConfig.Solana.TreasuryWallet == "" {
		return nil, ErrTreasuryNotConfigured
	}
	return o.GetWalletBalance(ctx, o.appConfig.Solana.TreasuryWallet)
}

func (o *BalanceOracle) lookup(address string) (WalletBalance, bool) {
	o.mux.Lock()
	defer o.mux.Unlock()

	cached, ok := o.cache[address]
	if !ok || o.now().Sub(cached.FetchedAt) > o.ttl {
		o.misses++
		return WalletBalance{}, false
	}
	o.hits++
	cached.Cached = true
	return cached, true
}

func (o *BalanceOracle) store(balance WalletBalance) {
	o.mux.Lock()
	defer o.mux.Unlock()

	// expired entries are dropped on write to keep the map bounded by active wallets
	for addr, entry := range o.cache {
		if o.now().Sub(entry.FetchedAt) > o.ttl {
			delete(o.cache, addr)
		}
	}
	o.cache[balance.Address] = balance
	o.lastRefresh = balance.FetchedAt
}

func (o *BalanceOracle) ClearCache() {
	o.mux.Lock()
	defer o.mux.Unlock()
	o.cache = make(map[string]WalletBalance)
}

func (o *BalanceOracle) GetCacheStatistics() *CacheStatistics {
	o.mux.Lock()
	defer o.mux.Unlock()
	return &CacheStatistics{
		Hits:        o.hits,
		Misses:      o.misses,
		Entries:     len(o.cache),
		LastRefresh: o.lastRefresh,
	}
}
