package oracle

import (
	"context"
	"time"
)

type WalletBalance struct {
	Address   string    `json:"address"`
	Lamports  uint64    `json:"lamports"`
	SOL       float64   `json:"sol"`
	FetchedAt time.Time `json:"fetched_at"`
	Cached    bool      `json:"cached"`
}

type CacheStatistics struct {
	Hits        int64     `json:"hits"`
	Misses      int64     `json:"misses"`
	Entries     int       `json:"entries"`
	LastRefresh time.Time `json:"last_refresh"`
}

type IOracle interface {
	// GetWalletBalance returns the SOL balance of a wallet, served from a
	// short-lived cache when fresh.
	GetWalletBalance(ctx context.Context, address string) (*WalletBalance, error)

	// GetTreasuryBalance returns the balance of the configured treasury wallet.
	GetTreasuryBalance(ctx context.Context) (*WalletBalance, error)

	ClearCache()
	GetCacheStatistics() *CacheStatistics
}
