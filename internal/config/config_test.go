package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sampleConfig = `
[server]
http_port = 8090

[database]
host = "db"
port = 5433
user = "laundry"
password = "secret"
dbname = "laundry"

[timeslots]
horizon_days = 14
location = "Asia/Kolkata"

[booking]
lock_timeout_ms = 1500
`

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.toml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o600))
	return path
}

func TestLoad_FileOverridesDefaults(t *testing.T) {
	cfg, err := Load(writeConfig(t, sampleConfig))
	require.NoError(t, err)

	assert.Equal(t, 8090, cfg.Server.HTTPPort)
	assert.Equal(t, 30, cfg.Server.ShutdownTimeout)
	assert.Equal(t, 14, cfg.Timeslots.HorizonDays)
	assert.Equal(t, 1500, cfg.Booking.LockTimeoutMs)
	assert.Equal(t, "/metrics", cfg.Metrics.Path)
	assert.Equal(t, "host=db port=5433 user=laundry password=secret dbname=laundry sslmode=disable", cfg.Database.DSN())
}

func TestLoad_EnvironmentOverridesFile(t *testing.T) {
	t.Setenv("LAUNDRY_SERVER_HTTP_PORT", "9000")
	t.Setenv("LAUNDRY_AUTH_JWT_SECRET", "s3cr3t")
	t.Setenv("LAUNDRY_TIMESLOTS_HORIZON_DAYS", "3")

	cfg, err := Load(writeConfig(t, sampleConfig))
	require.NoError(t, err)

	assert.Equal(t, 9000, cfg.Server.HTTPPort)
	assert.Equal(t, "s3cr3t", cfg.Auth.JWTSecret)
	assert.Equal(t, 3, cfg.Timeslots.HorizonDays)
	assert.Equal(t, "db", cfg.Database.Host)
}

func TestLoad_Invalid(t *testing.T) {
	_, err := Load(writeConfig(t, sampleConfig+"\n[events]\nenabled = true\n"))
	assert.ErrorIs(t, err, ErrInvalidConfig)

	_, err = Load(filepath.Join(t.TempDir(), "missing.toml"))
	assert.Error(t, err)
}

func TestValidate_BadLocation(t *testing.T) {
	cfg := Default()
	cfg.Timeslots.Location = "Mars/Olympus"

	assert.ErrorIs(t, cfg.Validate(), ErrInvalidConfig)
}
