package consts

import "time"

const (
	TokenSOL = "SOL"

	DefaultPayoutCurrency = "NGN"
	DefaultSignatureLimit = 10

	SolanaSystemProgram     = "system"
	SolanaTransferType      = "transfer"
	SolanaCommitment        = "confirmed"
	SolanaEncodingJSONParse = "jsonParsed"

	StatusFilterAll        = "all"
	StatusFilterPendingAll = "pending_all"

	WalletBalanceCacheTTL = 30 * time.Second

	ContextKeyUserID = "user_id"
	ContextKeyRole   = "role"
)
