package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.toml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

const minimalConfig = `
[server]
http_port = 8080

[database]
host = "localhost"
port = 5432
user = "reservation"
password = "secret"
dbname = "reservations"
sslmode = "disable"

[catalog_service]
url = "http://localhost:8081"
`

func TestLoad_AppliesDefaults(t *testing.T) {
	cfg, err := Load(writeConfig(t, minimalConfig))
	require.NoError(t, err)

	assert.Equal(t, 9, cfg.Booking.OpenHour)
	assert.Equal(t, 17, cfg.Booking.CloseHour)
	assert.Equal(t, 30, cfg.Booking.SlotGranularityMinutes)
	assert.Equal(t, 30, cfg.Booking.PendingTTLMinutes)
	assert.Equal(t, "*/10 * * * *", cfg.Booking.SweepSchedule)
	assert.Equal(t, "/metrics", cfg.Metrics.Path)
}

func TestLoad_ExplicitBookingWindow(t *testing.T) {
	cfg, err := Load(writeConfig(t, minimalConfig+`
[booking]
open_hour = 8
close_hour = 20
slot_granularity_minutes = 15
advance_booking_days = 14
`))
	require.NoError(t, err)

	assert.Equal(t, 8, cfg.Booking.OpenHour)
	assert.Equal(t, 20, cfg.Booking.CloseHour)
	assert.Equal(t, 15, cfg.Booking.SlotGranularityMinutes)
	assert.Equal(t, 14, cfg.Booking.AdvanceBookingDays)
}

func TestLoad_RejectsInvertedWindow(t *testing.T) {
	_, err := Load(writeConfig(t, minimalConfig+`
[booking]
open_hour = 18
close_hour = 9
`))
	assert.Error(t, err)
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "absent.toml"))
	assert.Error(t, err)
}

func TestDatabaseDSN(t *testing.T) {
	cfg, err := Load(writeConfig(t, minimalConfig))
	require.NoError(t, err)

	assert.Equal(t,
		"host=localhost port=5432 user=reservation password=secret dbname=reservations sslmode=disable",
		cfg.Database.DSN())
}
