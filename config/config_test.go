package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadEmptyPathReturnsDefaults(t *testing.T) {
	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)
}

func TestLoadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "server.toml")
	data := `
addr = "127.0.0.1:7000"
log_level = "debug"
metrics_addr = ":9121"
`
	require.NoError(t, os.WriteFile(path, []byte(data), 0644))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "127.0.0.1:7000", cfg.Addr)
	assert.Equal(t, "debug", cfg.LogLevel)
	assert.Equal(t, ":9121", cfg.MetricsAddr)
	assert.Equal(t, int64(DefaultMaxClients), cfg.MaxClients)
	assert.Equal(t, DefaultMaxQueryBuffer, cfg.MaxQueryBuffer)
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "missing.toml"))
	assert.Error(t, err)
}

func TestParseUnknownKey(t *testing.T) {
	_, err := Parse(`port = 6379`)
	assert.ErrorContains(t, err, "port")
}

func TestParseInvalidValues(t *testing.T) {
	tests := []struct {
		name string
		data string
	}{
		{"empty addr", `addr = ""`},
		{"bad level", `log_level = "verbose"`},
		{"zero clients", `max_clients = 0`},
		{"negative query buffer", `max_query_buffer = -1`},
		{"bad syntax", `addr = `},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse(tt.data)
			assert.Error(t, err)
		})
	}
}

func TestParseOverridesLimits(t *testing.T) {
	cfg, err := Parse("max_clients = 16\nmax_query_buffer = 4096\n")
	require.NoError(t, err)
	assert.Equal(t, int64(16), cfg.MaxClients)
	assert.Equal(t, 4096, cfg.MaxQueryBuffer)
}
