package config

import (
	"fmt"
	"strings"

	"github.com/BurntSushi/toml"
)

const (
	DefaultAddr           = ":6379"
	DefaultLogLevel       = "info"
	DefaultMaxClients     = 1024
	DefaultMaxQueryBuffer = 1024 * 1024 * 1024 // client-query-buffer-limit in redis.conf
)

// Config is the server configuration, read from a TOML file.
type Config struct {
	Addr           string `toml:"addr"`
	LogLevel       string `toml:"log_level"`
	MaxClients     int64  `toml:"max_clients"`
	MaxQueryBuffer int    `toml:"max_query_buffer"`
	// MetricsAddr enables the prometheus endpoint when set, e.g. ":9121".
	MetricsAddr string `toml:"metrics_addr"`
}

func Default() Config {
	return Config{
		Addr:           DefaultAddr,
		LogLevel:       DefaultLogLevel,
		MaxClients:     DefaultMaxClients,
		MaxQueryBuffer: DefaultMaxQueryBuffer,
	}
}

// Load reads the file at path over the defaults. An empty path returns the
// defaults.
func Load(path string) (Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}

	md, err := toml.DecodeFile(path, &cfg)
	if err != nil {
		return Config{}, fmt.Errorf("load config %s: %w", path, err)
	}
	if err := checkUndecoded(md); err != nil {
		return Config{}, fmt.Errorf("load config %s: %w", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, fmt.Errorf("load config %s: %w", path, err)
	}
	return cfg, nil
}

// Parse decodes TOML text over the defaults.
func Parse(data string) (Config, error) {
	cfg := Default()
	md, err := toml.Decode(data, &cfg)
	if err != nil {
		return Config{}, err
	}
	if err := checkUndecoded(md); err != nil {
		return Config{}, err
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func checkUndecoded(md toml.MetaData) error {
	undecoded := md.Undecoded()
	if len(undecoded) == 0 {
		return nil
	}
	keys := make([]string, len(undecoded))
	for i, k := range undecoded {
		keys[i] = k.String()
	}
	return fmt.Errorf("unknown keys: %s", strings.Join(keys, ", "))
}

func (c Config) Validate() error {
	if strings.TrimSpace(c.Addr) == "" {
		return fmt.Errorf("addr is required")
	}
	switch strings.ToLower(c.LogLevel) {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("invalid log_level %q", c.LogLevel)
	}
	if c.MaxClients <= 0 {
		return fmt.Errorf("max_clients must be positive, got %d", c.MaxClients)
	}
	if c.MaxQueryBuffer <= 0 {
		return fmt.Errorf("max_query_buffer must be positive, got %d", c.MaxQueryBuffer)
	}
	return nil
}
