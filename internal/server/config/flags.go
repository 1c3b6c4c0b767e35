package config

import (
	"flag"
	"fmt"
	"io"
	"time"

	"github.com/dmitrijs2005/ecohack/internal/flagx"
)

// parseFlags populates Config fields from command-line flags.
//
// Supported flags (short forms):
//
//	-a string   HTTP bind address (e.g., ":3000")
//	-g string   gRPC health bind address, empty disables
//	-b string   store backend: postgres | memory
//	-d string   PostgreSQL DSN
//	-s string   session signing secret
//	-t int      session validity, minutes
//	-k string   LLM API key
//	-m string   LLM model
//	-u string   LLM base URL
//	-w string   static files directory
//
// Only the flags above are looked at, so unrelated arguments (-c) don't
// make parsing fail.
func parseFlags(config *Config, osArgs []string) error {
	args := flagx.FilterArgs(osArgs, []string{"-a", "-g", "-b", "-d", "-s", "-t", "-k", "-m", "-u", "-w"})

	fs := flag.NewFlagSet("main", flag.ContinueOnError)
	fs.SetOutput(io.Discard)

	fs.StringVar(&config.EndpointAddrHTTP, "a", config.EndpointAddrHTTP, "address and port to run HTTP server")
	fs.StringVar(&config.EndpointAddrGRPC, "g", config.EndpointAddrGRPC, "address and port to run gRPC health server")
	fs.StringVar(&config.StoreBackend, "b", config.StoreBackend, "store backend (postgres|memory)")
	fs.StringVar(&config.DatabaseDSN, "d", config.DatabaseDSN, "database DSN")
	fs.StringVar(&config.SecretKey, "s", config.SecretKey, "session signing secret")

	sessionValidity := fs.Int("t", int(config.SessionValidityDuration.Minutes()), "session validity (in minutes)")

	fs.StringVar(&config.LLMAPIKey, "k", config.LLMAPIKey, "LLM API key")
	fs.StringVar(&config.LLMModel, "m", config.LLMModel, "LLM model")
	fs.StringVar(&config.LLMBaseURL, "u", config.LLMBaseURL, "LLM base URL")
	fs.StringVar(&config.StaticDir, "w", config.StaticDir, "static files directory")

	if err := fs.Parse(args); err != nil {
		return fmt.Errorf("parse flags: %w", err)
	}

	fs.Visit(func(f *flag.Flag) {
		if f.Name == "t" {
			config.SessionValidityDuration = time.Duration(*sessionValidity) * time.Minute
		}
	})
	return nil
}
