package server

import (
	"context"
	"testing"
	"time"

	"github.com/dmitrijs2005/ecohack/internal/logging"
	"github.com/dmitrijs2005/ecohack/internal/server/config"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func memoryConfig() *config.Config {
	cfg := &config.Config{}
	cfg.LoadDefaults()
	cfg.StoreBackend = config.StoreBackendMemory
	cfg.EndpointAddrHTTP = "127.0.0.1:0"
	cfg.EndpointAddrGRPC = "127.0.0.1:0"
	cfg.BcryptCost = bcrypt.MinCost
	return cfg
}

func TestApp_RunStopsOnCancel(t *testing.T) {
	app, err := NewAppWithLogger(context.Background(), memoryConfig(), logging.Nop())
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- app.Run(ctx) }()

	time.Sleep(100 * time.Millisecond)
	cancel()

	select {
	case err := <-done:
		require.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("app did not stop")
	}
}

func TestNewApp_UnknownBackend(t *testing.T) {
	cfg := memoryConfig()
	cfg.StoreBackend = "redis"
	_, err := NewAppWithLogger(context.Background(), cfg, logging.Nop())
	require.Error(t, err)
}
