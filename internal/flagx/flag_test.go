package flagx

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFilterArgs(t *testing.T) {
	tests := []struct {
		name         string
		args         []string
		allowedFlags []string
		want         []string
	}{
		{
			name:         "short flag with separate value",
			args:         []string{"-c", "conf.json", "-a", "localhost"},
			allowedFlags: []string{"-c", "--config"},
			want:         []string{"-c", "conf.json"},
		},
		{
			name:         "long flag with equals",
			args:         []string{"--config=alt.json", "-a", "localhost"},
			allowedFlags: []string{"-c", "--config"},
			want:         []string{"--config=alt.json"},
		},
		{
			name:         "unknown flags ignored",
			args:         []string{"-x", "1", "--y=2", "positional"},
			allowedFlags: []string{"-c"},
			want:         []string{},
		},
		{
			name:         "flag without value at end is kept",
			args:         []string{"-c"},
			allowedFlags: []string{"-c"},
			want:         []string{"-c"},
		},
		{
			name:         "next dash token is not a value",
			args:         []string{"-c", "-notvalue"},
			allowedFlags: []string{"-c"},
			want:         []string{"-c"},
		},
		{
			name:         "server flags kept in order",
			args:         []string{"-a", ":3000", "-c", "conf.json", "-m", "llama", "--other", "x"},
			allowedFlags: []string{"-a", "-m"},
			want:         []string{"-a", ":3000", "-m", "llama"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, FilterArgs(tt.args, tt.allowedFlags))
		})
	}
}

func TestConfigFile(t *testing.T) {
	assert.Equal(t, "/path/short.json", ConfigFile([]string{"-c", "/path/short.json"}))
	assert.Equal(t, "/path/long.json", ConfigFile([]string{"-config", "/path/long.json"}))
	assert.Equal(t, "/path/eq.json", ConfigFile([]string{"-a", ":1", "-config=/path/eq.json"}))
	assert.Empty(t, ConfigFile([]string{"-x", "1", "-y", "2"}))
	assert.Equal(t, "/path/2.json", ConfigFile([]string{"-c", "/path/1.json", "-config", "/path/2.json"}))
}
