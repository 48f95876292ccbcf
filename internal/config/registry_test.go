package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func writeFile(t *testing.T, name, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(body), 0644); err != nil {
		t.Fatalf("Failed to write test config: %v", err)
	}
	return path
}

func TestDefaults(t *testing.T) {
	cfg := &RegistryConfig{}

	if got := cfg.GetStaleAfter(); got != 2*time.Minute {
		t.Errorf("GetStaleAfter() = %v, want 2m", got)
	}
	if got := cfg.GetSweepInterval(); got != time.Minute {
		t.Errorf("GetSweepInterval() = %v, want 1m", got)
	}
	if got := cfg.GetConflictGrace(); got != 500*time.Millisecond {
		t.Errorf("GetConflictGrace() = %v, want 500ms", got)
	}
	if got := cfg.GetHistorySize(); got != 100 {
		t.Errorf("GetHistorySize() = %d, want 100", got)
	}
	if got := cfg.GetPositionRetention(); got != 0 {
		t.Errorf("GetPositionRetention() = %v, want 0", got)
	}
	if cfg.GetStore() != StoreSQLite || cfg.GetDBPath() != "tracker.db" {
		t.Errorf("unexpected store defaults: %s %s", cfg.GetStore(), cfg.GetDBPath())
	}
	if cfg.GetGRPCListen() != ":50051" || cfg.GetHTTPListen() != ":8080" {
		t.Errorf("unexpected listen defaults: %s %s", cfg.GetGRPCListen(), cfg.GetHTTPListen())
	}
	if cfg.GetInstanceID() != "" {
		t.Errorf("GetInstanceID() = %q, want empty", cfg.GetInstanceID())
	}
}

func TestLoadJSONWithComments(t *testing.T) {
	path := writeFile(t, "tracker.json", `{
  // shared by every instance in the fleet
  "stale_after": "90s",
  "history_size": 50,
  "store": "memory",
  /* per-host */
  "instance_id": "edge-1",
}`)

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Failed to load config: %v", err)
	}
	if cfg.GetStaleAfter() != 90*time.Second {
		t.Errorf("stale_after = %v, want 90s", cfg.GetStaleAfter())
	}
	if cfg.GetHistorySize() != 50 {
		t.Errorf("history_size = %d, want 50", cfg.GetHistorySize())
	}
	if cfg.GetStore() != StoreMemory || cfg.GetInstanceID() != "edge-1" {
		t.Errorf("unexpected values: %+v", cfg)
	}
	// Unset fields keep their defaults.
	if cfg.GetSweepInterval() != time.Minute {
		t.Errorf("sweep_interval = %v, want default", cfg.GetSweepInterval())
	}
}

func TestLoadYAML(t *testing.T) {
	path := writeFile(t, "tracker.yaml", `
sweep_interval: 30s
conflict_grace: 1s
position_retention: 24h
log_format: json
`)

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Failed to load config: %v", err)
	}
	if cfg.GetSweepInterval() != 30*time.Second || cfg.GetConflictGrace() != time.Second {
		t.Errorf("unexpected durations: %v %v", cfg.GetSweepInterval(), cfg.GetConflictGrace())
	}
	if cfg.GetPositionRetention() != 24*time.Hour {
		t.Errorf("position_retention = %v, want 24h", cfg.GetPositionRetention())
	}
	if cfg.GetLogFormat() != "json" {
		t.Errorf("log_format = %q, want json", cfg.GetLogFormat())
	}
}

func TestLoadErrors(t *testing.T) {
	if _, err := Load("/nonexistent/path/to/config.json"); err == nil {
		t.Error("Expected error when loading missing file, got nil")
	}
	if _, err := Load(writeFile(t, "tracker.toml", "x = 1")); err == nil {
		t.Error("Expected error for unsupported extension, got nil")
	}
	if _, err := Load(writeFile(t, "bad.json", `{"stale_after": `)); err == nil {
		t.Error("Expected error when loading invalid JSON, got nil")
	}
	if _, err := Load(writeFile(t, "bad.yaml", "stale_after: [")); err == nil {
		t.Error("Expected error when loading invalid YAML, got nil")
	}
	if _, err := Load(writeFile(t, "invalid.json", `{"stale_after": "soon"}`)); err == nil {
		t.Error("Expected validation error, got nil")
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		cfg     RegistryConfig
		wantErr bool
	}{
		{"empty", RegistryConfig{}, false},
		{"valid durations", RegistryConfig{StaleAfter: ptrString("2m"), ConflictGrace: ptrString("0s")}, false},
		{"bad duration", RegistryConfig{SweepInterval: ptrString("often")}, true},
		{"negative duration", RegistryConfig{StaleAfter: ptrString("-1m")}, true},
		{"zero history", RegistryConfig{HistorySize: ptrInt(0)}, true},
		{"unknown store", RegistryConfig{Store: ptrString("redis")}, true},
		{"unknown log format", RegistryConfig{LogFormat: ptrString("xml")}, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.cfg.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestApplyEnv(t *testing.T) {
	env := map[string]string{
		"TRACKER_STALE_AFTER":  "45s",
		"TRACKER_DB_PATH":      "/var/lib/tracker/tracker.db",
		"TRACKER_HISTORY_SIZE": "25",
		"TRACKER_INSTANCE_ID":  "",
	}
	lookup := func(k string) (string, bool) {
		v, ok := env[k]
		return v, ok
	}

	cfg := &RegistryConfig{StaleAfter: ptrString("2m"), InstanceID: ptrString("from-file")}
	if err := cfg.ApplyEnv(lookup); err != nil {
		t.Fatalf("ApplyEnv failed: %v", err)
	}
	if cfg.GetStaleAfter() != 45*time.Second {
		t.Errorf("stale_after = %v, want 45s", cfg.GetStaleAfter())
	}
	if cfg.GetDBPath() != "/var/lib/tracker/tracker.db" {
		t.Errorf("db_path = %q", cfg.GetDBPath())
	}
	if cfg.GetHistorySize() != 25 {
		t.Errorf("history_size = %d, want 25", cfg.GetHistorySize())
	}
	// Empty variables do not clear file values.
	if cfg.GetInstanceID() != "from-file" {
		t.Errorf("instance_id = %q, want from-file", cfg.GetInstanceID())
	}

	env["TRACKER_HISTORY_SIZE"] = "lots"
	if err := cfg.ApplyEnv(lookup); err == nil {
		t.Error("expected error for non-numeric history size")
	}
	env["TRACKER_HISTORY_SIZE"] = "0"
	if err := cfg.ApplyEnv(lookup); err == nil {
		t.Error("expected validation error for zero history size")
	}
}

func TestLoadDotEnv(t *testing.T) {
	path := writeFile(t, ".env", "TRACKER_TEST_DOTENV=from-dotenv\n")
	t.Setenv("TRACKER_TEST_DOTENV", "")
	os.Unsetenv("TRACKER_TEST_DOTENV")

	if err := LoadDotEnv(path, filepath.Join(t.TempDir(), "missing.env")); err != nil {
		t.Fatalf("LoadDotEnv failed: %v", err)
	}
	if got := os.Getenv("TRACKER_TEST_DOTENV"); got != "from-dotenv" {
		t.Errorf("TRACKER_TEST_DOTENV = %q, want from-dotenv", got)
	}
}
