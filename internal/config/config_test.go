package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv("PORT", "9090")
	t.Setenv("SESSION_TTL", "not-a-duration")
	t.Setenv("BOOKINGS_MAX_PER_PAGE", "50")
	t.Setenv("ALLOWED_ORIGINS", "http://a.test, http://b.test,,")
	t.Setenv("STORAGE_DRIVER", "S3")
	t.Setenv("METRICS_ENABLED", "nope")
	t.Setenv("EXPORT_RATE_LIMIT_RPS", "0.5")

	cfg := Load()

	assert.Equal(t, "9090", cfg.Port)
	assert.Equal(t, 168*time.Hour, cfg.SessionTTL)
	assert.Equal(t, 50, cfg.MaxPerPage)
	assert.Equal(t, 10, cfg.DefaultPerPage)
	assert.Equal(t, []string{"http://a.test", "http://b.test"}, cfg.AllowedOrigins)
	assert.True(t, cfg.UsesS3())
	assert.True(t, cfg.MetricsEnabled)
	assert.Equal(t, 0.5, cfg.ExportRateLimitRPS)
	assert.Equal(t, 3, cfg.ExportRateLimitBurst)
}

func TestValidateSessionSecret(t *testing.T) {
	t.Setenv("ENV", "production")
	t.Setenv("SESSION_SECRET", "")
	assert.ErrorIs(t, Load().Validate(), ErrInsecureSessionSecret)

	t.Setenv("SESSION_SECRET", defaultSessionSecret)
	assert.ErrorIs(t, Load().Validate(), ErrInsecureSessionSecret)

	t.Setenv("SESSION_SECRET", "a-real-signing-key")
	assert.NoError(t, Load().Validate())

	dev := &Config{Env: "development", SessionSecret: defaultSessionSecret}
	assert.NoError(t, dev.Validate())
}

func TestParseStringSliceEmpty(t *testing.T) {
	assert.Empty(t, parseStringSlice(""))
}

func TestEnvironmentHelpers(t *testing.T) {
	cfg := &Config{Env: "production"}
	assert.True(t, cfg.IsProduction())
	assert.False(t, cfg.IsDevelopment())
}
