package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/tidwall/jsonc"
	"gopkg.in/yaml.v3"
)

// EnvPrefix prefixes every environment variable that overrides a file value.
const EnvPrefix = "TRACKER_"

const (
	StoreSQLite = "sqlite"
	StoreMemory = "memory"
)

// RegistryConfig holds the settings of one registry instance. Every field is
// optional; the Get* methods return the default for fields left unset, so a
// partial file is always safe.
type RegistryConfig struct {
	// InstanceID is stable across restarts when set. Empty means a fresh
	// random id on every start.
	InstanceID *string `json:"instance_id,omitempty" yaml:"instance_id,omitempty"`

	GRPCListen *string `json:"grpc_listen,omitempty" yaml:"grpc_listen,omitempty"`
	HTTPListen *string `json:"http_listen,omitempty" yaml:"http_listen,omitempty"`

	Store  *string `json:"store,omitempty" yaml:"store,omitempty"` // sqlite or memory
	DBPath *string `json:"db_path,omitempty" yaml:"db_path,omitempty"`

	// Durations are strings like "2m" or "500ms".
	StaleAfter        *string `json:"stale_after,omitempty" yaml:"stale_after,omitempty"`
	SweepInterval     *string `json:"sweep_interval,omitempty" yaml:"sweep_interval,omitempty"`
	ConflictGrace     *string `json:"conflict_grace,omitempty" yaml:"conflict_grace,omitempty"`
	PositionRetention *string `json:"position_retention,omitempty" yaml:"position_retention,omitempty"`

	HistorySize *int `json:"history_size,omitempty" yaml:"history_size,omitempty"`

	LogLevel  *string `json:"log_level,omitempty" yaml:"log_level,omitempty"`
	LogFormat *string `json:"log_format,omitempty" yaml:"log_format,omitempty"`
}

func ptrString(v string) *string { return &v }
func ptrInt(v int) *int          { return &v }

// Load reads a config file. Files ending in .json may carry comments and
// trailing commas; .yaml and .yml are parsed as YAML.
func Load(path string) (*RegistryConfig, error) {
	cleanPath := filepath.Clean(path)

	fileInfo, err := os.Stat(cleanPath)
	if err != nil {
		return nil, fmt.Errorf("failed to stat config file: %w", err)
	}
	const maxFileSize = 1 * 1024 * 1024 // 1MB
	if fileInfo.Size() > maxFileSize {
		return nil, fmt.Errorf("config file too large: %d bytes (max %d)", fileInfo.Size(), maxFileSize)
	}

	data, err := os.ReadFile(cleanPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	cfg := &RegistryConfig{}
	switch ext := strings.ToLower(filepath.Ext(cleanPath)); ext {
	case ".json":
		if err := json.Unmarshal(jsonc.ToJSON(data), cfg); err != nil {
			return nil, fmt.Errorf("failed to parse config JSON: %w", err)
		}
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("failed to parse config YAML: %w", err)
		}
	default:
		return nil, fmt.Errorf("config file must be .json, .yaml or .yml, got %q", ext)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return cfg, nil
}

// LoadDotEnv loads the given .env files into the process environment. A
// missing file is not an error. Variables already set are left alone.
func LoadDotEnv(paths ...string) error {
	if len(paths) == 0 {
		paths = []string{".env"}
	}
	for _, p := range paths {
		if err := godotenv.Load(p); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return fmt.Errorf("failed to load %s: %w", p, err)
		}
	}
	return nil
}

// ApplyEnv overrides fields from TRACKER_* variables, for example
// TRACKER_STALE_AFTER or TRACKER_DB_PATH, and re-validates.
func (c *RegistryConfig) ApplyEnv(lookup func(string) (string, bool)) error {
	if lookup == nil {
		lookup = os.LookupEnv
	}
	strs := map[string]**string{
		"INSTANCE_ID":        &c.InstanceID,
		"GRPC_LISTEN":        &c.GRPCListen,
		"HTTP_LISTEN":        &c.HTTPListen,
		"STORE":              &c.Store,
		"DB_PATH":            &c.DBPath,
		"STALE_AFTER":        &c.StaleAfter,
		"SWEEP_INTERVAL":     &c.SweepInterval,
		"CONFLICT_GRACE":     &c.ConflictGrace,
		"POSITION_RETENTION": &c.PositionRetention,
		"LOG_LEVEL":          &c.LogLevel,
		"LOG_FORMAT":         &c.LogFormat,
	}
	for key, field := range strs {
		if v, ok := lookup(EnvPrefix + key); ok && v != "" {
			*field = ptrString(v)
		}
	}
	if v, ok := lookup(EnvPrefix + "HISTORY_SIZE"); ok && v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("invalid %sHISTORY_SIZE %q: %w", EnvPrefix, v, err)
		}
		c.HistorySize = ptrInt(n)
	}
	return c.Validate()
}

// Validate checks that the configuration values are valid.
func (c *RegistryConfig) Validate() error {
	durations := []struct {
		name string
		v    *string
	}{
		{"stale_after", c.StaleAfter},
		{"sweep_interval", c.SweepInterval},
		{"conflict_grace", c.ConflictGrace},
		{"position_retention", c.PositionRetention},
	}
	for _, d := range durations {
		if d.v == nil || *d.v == "" {
			continue
		}
		parsed, err := time.ParseDuration(*d.v)
		if err != nil {
			return fmt.Errorf("invalid %s '%s': %w", d.name, *d.v, err)
		}
		if parsed < 0 {
			return fmt.Errorf("%s must be non-negative, got %s", d.name, *d.v)
		}
	}

	if c.HistorySize != nil && *c.HistorySize < 1 {
		return fmt.Errorf("history_size must be positive, got %d", *c.HistorySize)
	}
	if c.Store != nil {
		switch *c.Store {
		case StoreSQLite, StoreMemory:
		default:
			return fmt.Errorf("store must be %q or %q, got %q", StoreSQLite, StoreMemory, *c.Store)
		}
	}
	if c.LogFormat != nil {
		switch *c.LogFormat {
		case "", "text", "json":
		default:
			return fmt.Errorf("log_format must be text or json, got %q", *c.LogFormat)
		}
	}
	return nil
}

func durationOr(v *string, def time.Duration) time.Duration {
	if v == nil || *v == "" {
		return def
	}
	d, err := time.ParseDuration(*v)
	if err != nil {
		return def
	}
	return d
}

func stringOr(v *string, def string) string {
	if v == nil || *v == "" {
		return def
	}
	return *v
}

// GetInstanceID returns the configured instance id, or "" for a random one.
func (c *RegistryConfig) GetInstanceID() string { return stringOr(c.InstanceID, "") }

func (c *RegistryConfig) GetGRPCListen() string { return stringOr(c.GRPCListen, ":50051") }

func (c *RegistryConfig) GetHTTPListen() string { return stringOr(c.HTTPListen, ":8080") }

func (c *RegistryConfig) GetStore() string { return stringOr(c.Store, StoreSQLite) }

func (c *RegistryConfig) GetDBPath() string { return stringOr(c.DBPath, "tracker.db") }

// GetStaleAfter returns the heartbeat staleness window.
func (c *RegistryConfig) GetStaleAfter() time.Duration {
	return durationOr(c.StaleAfter, 2*time.Minute)
}

func (c *RegistryConfig) GetSweepInterval() time.Duration {
	return durationOr(c.SweepInterval, 60*time.Second)
}

// GetConflictGrace returns how long a rejected stream stays open so the
// duplicate notice can be delivered.
func (c *RegistryConfig) GetConflictGrace() time.Duration {
	return durationOr(c.ConflictGrace, 500*time.Millisecond)
}

// GetPositionRetention returns 0 when the position log is kept forever.
func (c *RegistryConfig) GetPositionRetention() time.Duration {
	return durationOr(c.PositionRetention, 0)
}

func (c *RegistryConfig) GetHistorySize() int {
	if c.HistorySize == nil {
		return 100
	}
	return *c.HistorySize
}

func (c *RegistryConfig) GetLogLevel() string { return stringOr(c.LogLevel, "info") }

func (c *RegistryConfig) GetLogFormat() string { return stringOr(c.LogFormat, "text") }
