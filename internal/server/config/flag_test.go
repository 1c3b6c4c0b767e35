package config

import (
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseFlags(t *testing.T) {
	tests := []struct {
		expected *Config
		name     string
		args     []string
		wantErr  bool
	}{
		{
			name: "all flags",
			args: []string{
				"-a", "127.0.0.1:9090", "-g", ":6000", "-b", "memory", "-d", "db", "-s", "secret",
				"-t", "15", "-k", "key", "-m", "model", "-u", "http://llm/", "-w", "www",
			},
			expected: &Config{
				EndpointAddrHTTP:        "127.0.0.1:9090",
				EndpointAddrGRPC:        ":6000",
				StoreBackend:            "memory",
				DatabaseDSN:             "db",
				SecretKey:               "secret",
				SessionValidityDuration: 15 * time.Minute,
				LLMAPIKey:               "key",
				LLMModel:                "model",
				LLMBaseURL:              "http://llm/",
				StaticDir:               "www",
			},
		},
		{
			name:     "config flag is ignored",
			args:     []string{"-c", "cfg.json", "-a", ":1"},
			expected: &Config{EndpointAddrHTTP: ":1"},
		},
		{
			name:    "bad minutes",
			args:    []string{"-t", "soon"},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			config := &Config{}
			err := parseFlags(config, tt.args)
			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Empty(t, cmp.Diff(tt.expected, config))
		})
	}
}

func TestParseFlags_KeepsDurationWhenUnset(t *testing.T) {
	config := &Config{SessionValidityDuration: 90 * time.Second}
	require.NoError(t, parseFlags(config, []string{"-a", ":1"}))
	assert.Equal(t, 90*time.Second, config.SessionValidityDuration)
}
