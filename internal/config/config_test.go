package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("APP_ENV", "LOCAL")
	t.Setenv("DB_DRIVER", " SQLite ")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, EnvLocal, cfg.App.Env)
	assert.True(t, cfg.IsLocal())
	assert.Equal(t, "sqlite", cfg.DB.Driver)
	assert.Equal(t, "America/Lima", cfg.App.Timezone)
	assert.Equal(t, 8*time.Second, cfg.Booking.StoreTimeout)
	assert.True(t, cfg.Booking.FailOpen)
	assert.Equal(t, 120, cfg.Booking.LeadMinutes)
	assert.Equal(t, 90, cfg.Booking.MaxDaysAhead)
	assert.Equal(t, ":8080", cfg.Addr())
}

func TestLoad_Overrides(t *testing.T) {
	t.Setenv("SERVER_PORT", "9090")
	t.Setenv("BOOKING_FAIL_OPEN", "false")
	t.Setenv("KAFKA_BROKERS", "k1:9092,k2:9092")
	t.Setenv("RESEND_API_KEY", "re_test")
	t.Setenv("S3_BUCKET", "lab-assets")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, ":9090", cfg.Addr())
	assert.False(t, cfg.Booking.FailOpen)
	assert.Equal(t, []string{"k1:9092", "k2:9092"}, cfg.Broker.KafkaBrokers)
	assert.True(t, cfg.MailEnabled())
	assert.True(t, cfg.S3Enabled())
}

func TestLoad_RejectsInvalidBookingWindow(t *testing.T) {
	t.Setenv("BOOKING_MAX_DAYS_AHEAD", "0")

	_, err := Load()
	require.Error(t, err)
}
