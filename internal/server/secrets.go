package server

import (
	"github.com/framp/framp-backend/internal/utils/config"
	"github.com/framp/framp-backend/internal/utils/logger"
	"github.com/framp/framp-backend/internal/utils/vault"
)

type secretGetter interface {
	GetKV(secretKey string) (string, error)
}

// applySecrets overrides env-provided secrets with the values stored in Vault.
// Missing keys keep the env value.
func applySecrets(appConfig *config.AppConfig, logger *logger.Logger, secrets secretGetter) {
	targets := map[string]*string{
		"DB_PASS":           &appConfig.Postgres.Pass,
		"PAYOUT_SECRET_KEY": &appConfig.Payout.SecretKey,
		"AUTH_JWT_SECRET":   &appConfig.Auth.JWTSecret,
	}
	for key, target := range targets {
		value, err := secrets.GetKV(key)
		if err != nil {
			logger.Warn("[applySecrets][GetKV]", map[string]string{
				"key":   key,
				"error": err.Error(),
			})
			continue
		}
		if value != "" {
			*target = value
		}
	}
}

func loadVaultSecrets(appConfig *config.AppConfig, logger *logger.Logger) {
	client, err := vault.New(appConfig.Vault.Addr, appConfig.Vault.KVSecretPath, appConfig.Vault.Role)
	if err != nil {
		logger.Fatal("[loadVaultSecrets][vault.New]", map[string]string{
			"error": err.Error(),
		})
	}
	applySecrets(appConfig, logger, client)
}
