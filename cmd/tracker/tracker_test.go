package main

import (
	"bytes"
	"errors"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/banshee-data/vehicle.tracker/internal/config"
	"github.com/banshee-data/vehicle.tracker/internal/httputil"
)

func TestParseServeFlags_Defaults(t *testing.T) {
	opts, err := parseServeFlags([]string{"--env-file", filepath.Join(t.TempDir(), "none.env")})
	require.NoError(t, err)

	cfg := opts.cfg
	assert.Equal(t, 2*time.Minute, cfg.GetStaleAfter())
	assert.Equal(t, time.Minute, cfg.GetSweepInterval())
	assert.Equal(t, 500*time.Millisecond, cfg.GetConflictGrace())
	assert.Equal(t, config.StoreSQLite, cfg.GetStore())
	assert.Equal(t, ":50051", cfg.GetGRPCListen())
	assert.Empty(t, cfg.GetInstanceID())
}

func TestParseServeFlags_Precedence(t *testing.T) {
	dir := t.TempDir()
	cfgPath := filepath.Join(dir, "tracker.yaml")
	require.NoError(t, os.WriteFile(cfgPath, []byte("stale_after: 3m\nsweep_interval: 20s\ninstance_id: file\n"), 0644))
	envPath := filepath.Join(dir, "tracker.env")
	require.NoError(t, os.WriteFile(envPath, []byte("TRACKER_SWEEP_INTERVAL=40s\n"), 0644))
	t.Setenv("TRACKER_SWEEP_INTERVAL", "")
	os.Unsetenv("TRACKER_SWEEP_INTERVAL")

	opts, err := parseServeFlags([]string{
		"--config", cfgPath,
		"--env-file", envPath,
		"--instance-id", "flag",
		"--history-size", "10",
	})
	require.NoError(t, err)

	cfg := opts.cfg
	assert.Equal(t, 3*time.Minute, cfg.GetStaleAfter(), "file value")
	assert.Equal(t, 40*time.Second, cfg.GetSweepInterval(), "env overrides file")
	assert.Equal(t, "flag", cfg.GetInstanceID(), "flag overrides file")
	assert.Equal(t, 10, cfg.GetHistorySize())
}

func TestParseServeFlags_Errors(t *testing.T) {
	none := filepath.Join(t.TempDir(), "none.env")

	_, err := parseServeFlags([]string{"--env-file", none, "--store", "redis"})
	assert.Error(t, err)
	_, err = parseServeFlags([]string{"--env-file", none, "--history-size", "0"})
	assert.Error(t, err)
	_, err = parseServeFlags([]string{"--env-file", none, "extra"})
	assert.Error(t, err)
	_, err = parseServeFlags([]string{"--env-file", none, "--config", "/nonexistent.json"})
	assert.Error(t, err)
	_, err = parseServeFlags([]string{"--help"})
	assert.True(t, errors.Is(err, pflag.ErrHelp))
}

func TestRunClient_Units(t *testing.T) {
	mock := httputil.NewMockHTTPClient().
		AddResponse(http.StatusOK, `{"vehicle_id":"v1","status":"online","last_position":{"speed_kmh":36}}`)

	var out bytes.Buffer
	require.NoError(t, runClient("vehicle", []string{"--units", "mps", "v1"}, &out, mock))
	assert.Contains(t, out.String(), "10.0 m/s")
}

func TestRun_Subcommands(t *testing.T) {
	var out bytes.Buffer
	require.NoError(t, run([]string{"version"}, &out))
	assert.True(t, strings.HasPrefix(out.String(), "tracker dev"))

	out.Reset()
	require.NoError(t, run([]string{"help"}, &out))
	assert.Contains(t, out.String(), "Usage: tracker")

	out.Reset()
	assert.Error(t, run([]string{"frobnicate"}, &out))
}

func TestRun_Migrate(t *testing.T) {
	path := filepath.Join(t.TempDir(), "tracker.db")
	var out bytes.Buffer

	require.NoError(t, run([]string{"migrate", "--db-path", path, "up"}, &out))
	assert.Contains(t, out.String(), "Database is up to date.")
}

func TestRunClient(t *testing.T) {
	mock := httputil.NewMockHTTPClient().
		AddResponse(http.StatusOK, `[{"vehicle_id":"v1","is_connected":true,"status":"online","total_points":4,"speed_change_count":1,"last_position":{"speed_kmh":52.5}}]`).
		AddResponse(http.StatusOK, `{"success":true,"message":"command accelerate sent to v1"}`).
		AddResponse(http.StatusAccepted, `{"queued":false}`).
		AddResponse(http.StatusNotFound, `{"error":"vehicle v9 not found"}`)

	var out bytes.Buffer
	require.NoError(t, runClient("vehicles", []string{"--addr", "http://edge:8080"}, &out, mock))
	assert.Contains(t, out.String(), "v1")
	assert.Contains(t, out.String(), "52.5 km/h")
	req, _ := mock.Request(0)
	assert.Equal(t, "http://edge:8080/api/vehicles", req.URL.String())

	out.Reset()
	require.NoError(t, runClient("command", []string{"v1", "accelerate"}, &out, mock))
	assert.Equal(t, "command accelerate sent to v1\n", out.String())

	out.Reset()
	require.NoError(t, runClient("sweep", nil, &out, mock))
	assert.Equal(t, "sweeper run already pending\n", out.String())

	err := runClient("vehicle", []string{"v9"}, &out, mock)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "vehicle v9 not found")

	assert.Error(t, runClient("command", []string{"v1"}, &out, mock))
	assert.Error(t, runClient("vehicles", []string{"--units", "knots"}, &out, mock))
	assert.Error(t, runClient("vehicle", nil, &out, mock))
}
