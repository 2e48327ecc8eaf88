package config

import (
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"

	"github.com/framp/framp-backend/internal/types/environments"
)

type AppConfig struct {
	Environment    environments.Environment
	ApiServer      ApiServerConfig
	Postgres       DBConnection
	Solana         SolanaConfig
	Payout         PayoutConfig
	OffRamp        OffRampConfig
	Auth           AuthConfig
	Vault          VaultConfig
	VerifySchedule string
	UptimeWebhooks UptimeWebhookConfig
}

type ApiServerConfig struct {
	AllowedOrigins string
	Port           string
}

type DBConnection struct {
	Host string
	Port string
	User string
	Name string
	Pass string

	SSLMode string
}

type SolanaConfig struct {
	RPCEndpoint    string
	TreasuryWallet string
	SignatureLimit int
}

type PayoutConfig struct {
	APIURL      string
	SecretKey   string
	CallbackURL string
	Currency    string
	Narration   string
	Timeout     time.Duration
}

type OffRampConfig struct {
	FeePercentage float64
}

type AuthConfig struct {
	JWTSecret string
	AdminRole string
}

// VaultConfig is optional. When Addr is empty secrets come from the env only.
type VaultConfig struct {
	Addr         string
	KVSecretPath string
	Role         string
}

type UptimeWebhookConfig struct {
	VerifyPendingRequestsURL string
}

func New() *AppConfig {
	env := os.Getenv("APP_ENV")
	if env == "" {
		env = "development"
	}

	// does not override variables already set in the process env
	godotenv.Load(".env." + env)

	return &AppConfig{
		Environment: environments.Environment(env),
		ApiServer: ApiServerConfig{
			AllowedOrigins: os.Getenv("ALLOWED_ORIGINS"),
			Port:           envVarOrDefault("PORT", "8080"),
		},
		Postgres: DBConnection{
			Host:    os.Getenv("DB_HOST"),
			Port:    os.Getenv("DB_PORT"),
			User:    os.Getenv("DB_USER"),
			Name:    os.Getenv("DB_NAME"),
			Pass:    os.Getenv("DB_PASS"),
			SSLMode: os.Getenv("DB_SSL_MODE"),
		},
		Solana: SolanaConfig{
			RPCEndpoint:    envVarOrDefault("SOLANA_RPC_ENDPOINT", "https://api.mainnet-beta.solana.com"),
			TreasuryWallet: os.Getenv("SOLANA_TREASURY_WALLET"),
			SignatureLimit: envVarAtoiOrDefault("SOLANA_SIGNATURE_LIMIT", 10),
		},
		Payout: PayoutConfig{
			APIURL:      os.Getenv("PAYOUT_API_URL"),
			SecretKey:   os.Getenv("PAYOUT_SECRET_KEY"),
			CallbackURL: os.Getenv("PAYOUT_CALLBACK_URL"),
			Currency:    envVarOrDefault("PAYOUT_CURRENCY", "NGN"),
			Narration:   envVarOrDefault("PAYOUT_NARRATION", "Framp off-ramp payout"),
			Timeout:     envVarDurationOrDefault("PAYOUT_TIMEOUT", 30*time.Second),
		},
		OffRamp: OffRampConfig{
			FeePercentage: envVarFloatOrDefault("OFFRAMP_FEE_PERCENTAGE", 1),
		},
		Auth: AuthConfig{
			JWTSecret: os.Getenv("AUTH_JWT_SECRET"),
			AdminRole: envVarOrDefault("AUTH_ADMIN_ROLE", "admin"),
		},
		Vault: VaultConfig{
			Addr:         os.Getenv("VAULT_ADDR"),
			KVSecretPath: os.Getenv("VAULT_KV_SECRET_PATH"),
			Role:         os.Getenv("VAULT_ROLE"),
		},
		VerifySchedule: envVarOrDefault("VERIFY_SCHEDULE", "@every 2m"),
		UptimeWebhooks: UptimeWebhookConfig{
			VerifyPendingRequestsURL: os.Getenv("UPTIME_WEBHOOK_VERIFY_PENDING_REQUESTS_URL"),
		},
	}
}

func envVarOrDefault(envName, fallback string) string {
	if v := os.Getenv(envName); v != "" {
		return v
	}
	return fallback
}

func envVarAtoiOrDefault(envName string, fallback int) int {
	if os.Getenv(envName) == "" {
		return fallback
	}
	return envVarAtoi(envName)
}

func envVarAtoi(envName string) int {
	valueStr := os.Getenv(envName)
	value, err := strconv.Atoi(valueStr)
	if err != nil {
		panic(err)
	}

	return value
}

func envVarFloatOrDefault(envName string, fallback float64) float64 {
	valueStr := os.Getenv(envName)
	if valueStr == "" {
		return fallback
	}
	value, err := strconv.ParseFloat(valueStr, 64)
	if err != nil {
		panic(err)
	}
	return value
}

func envVarDurationOrDefault(envName string, fallback time.Duration) time.Duration {
	valueStr := os.Getenv(envName)
	if valueStr == "" {
		return fallback
	}
	value, err := time.ParseDuration(valueStr)
	if err != nil {
		panic(err)
	}
	return value
}

func envVarAsBool(envName string) bool {
	valueStr := os.Getenv(envName)
	return valueStr == "true"
}

// IsVaultEnabled reports whether secrets should be read from Vault.
func (c *AppConfig) IsVaultEnabled() bool {
	return envVarAsBool("VAULT_ENABLED") && c.Vault.Addr != ""
}
