package config

import (
	"fmt"
	"time"

	"github.com/caarlos0/env/v11"
)

// envConfig names the LLM variables GROQ_* as existing deployments set them,
// alongside server settings. Unset variables leave the config untouched.
type envConfig struct {
	EndpointAddrHTTP        *string        `env:"HTTP_ADDR"`
	EndpointAddrGRPC        *string        `env:"GRPC_ADDR"`
	StoreBackend            *string        `env:"STORE_BACKEND"`
	DatabaseDSN             *string        `env:"DATABASE_DSN"`
	SecretKey               *string        `env:"SECRET_KEY"`
	SessionValidityDuration *time.Duration `env:"SESSION_TTL"`
	CookieSecure            *bool          `env:"COOKIE_SECURE"`
	BcryptCost              *int           `env:"BCRYPT_COST"`
	LLMBaseURL              *string        `env:"GROQ_BASE_URL"`
	LLMAPIKey               *string        `env:"GROQ_API_KEY"`
	LLMModel                *string        `env:"GROQ_MODEL"`
	LLMTimeout              *time.Duration `env:"LLM_TIMEOUT"`
	StaticDir               *string        `env:"STATIC_DIR"`
}

func parseEnv(config *Config) error {
	var e envConfig
	if err := env.Parse(&e); err != nil {
		return fmt.Errorf("parse env: %w", err)
	}

	setIf(&config.EndpointAddrHTTP, e.EndpointAddrHTTP)
	setIf(&config.EndpointAddrGRPC, e.EndpointAddrGRPC)
	setIf(&config.StoreBackend, e.StoreBackend)
	setIf(&config.DatabaseDSN, e.DatabaseDSN)
	setIf(&config.SecretKey, e.SecretKey)
	setIf(&config.SessionValidityDuration, e.SessionValidityDuration)
	setIf(&config.CookieSecure, e.CookieSecure)
	setIf(&config.BcryptCost, e.BcryptCost)
	setIf(&config.LLMBaseURL, e.LLMBaseURL)
	setIf(&config.LLMAPIKey, e.LLMAPIKey)
	setIf(&config.LLMModel, e.LLMModel)
	setIf(&config.LLMTimeout, e.LLMTimeout)
	setIf(&config.StaticDir, e.StaticDir)
	return nil
}
