package config

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/dmitrijs2005/ecohack/internal/flagx"
	"github.com/dmitrijs2005/ecohack/internal/timex"
)

// JsonConfig is the on-disk shape of the configuration file. Only keys that
// are present override the current values, so pointers are used throughout.
type JsonConfig struct {
	EndpointAddrHTTP        *string         `json:"endpoint_addr_http"`
	EndpointAddrGRPC        *string         `json:"endpoint_addr_grpc"`
	StoreBackend            *string         `json:"store_backend"`
	DatabaseDSN             *string         `json:"database_dsn"`
	SecretKey               *string         `json:"secret_key"`
	SessionValidityDuration *timex.Duration `json:"session_validity_duration"`
	CookieSecure            *bool           `json:"cookie_secure"`
	BcryptCost              *int            `json:"bcrypt_cost"`
	LLMBaseURL              *string         `json:"llm_base_url"`
	LLMAPIKey               *string         `json:"llm_api_key"`
	LLMModel                *string         `json:"llm_model"`
	LLMTimeout              *timex.Duration `json:"llm_timeout"`
	StaticDir               *string         `json:"static_dir"`
}

// parseJson loads the file named by -c/-config, if any, into config.
func parseJson(config *Config, args []string) error {
	path := flagx.ConfigFile(args)
	if path == "" {
		return nil
	}

	file, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read config file: %w", err)
	}

	c := &JsonConfig{}
	if err := json.Unmarshal(file, c); err != nil {
		return fmt.Errorf("parse config file: %w", err)
	}

	setIf(&config.EndpointAddrHTTP, c.EndpointAddrHTTP)
	setIf(&config.EndpointAddrGRPC, c.EndpointAddrGRPC)
	setIf(&config.StoreBackend, c.StoreBackend)
	setIf(&config.DatabaseDSN, c.DatabaseDSN)
	setIf(&config.SecretKey, c.SecretKey)
	setIf(&config.CookieSecure, c.CookieSecure)
	setIf(&config.BcryptCost, c.BcryptCost)
	setIf(&config.LLMBaseURL, c.LLMBaseURL)
	setIf(&config.LLMAPIKey, c.LLMAPIKey)
	setIf(&config.LLMModel, c.LLMModel)
	setIf(&config.StaticDir, c.StaticDir)
	if c.SessionValidityDuration != nil {
		config.SessionValidityDuration = c.SessionValidityDuration.Duration
	}
	if c.LLMTimeout != nil {
		config.LLMTimeout = c.LLMTimeout.Duration
	}
	return nil
}

func setIf[T any](dst *T, src *T) {
	if src != nil {
		*dst = *src
	}
}
