package main

import (
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfig_Defaults(t *testing.T) {
	for _, k := range []string{"PORT", "SESSION_SECRET", "SESSION_TTL", "SIMULATED_LATENCY",
		"SECURE_COOKIES", "ENFORCE_ROLE_ACCESS", "RATE_LIMIT_RPS", "RATE_LIMIT_BURST"} {
		t.Setenv(k, "")
	}

	cfg, err := loadConfig(slog.New(slog.NewTextHandler(io.Discard, nil)))
	require.NoError(t, err)

	assert.Equal(t, 8080, cfg.Port)
	assert.Equal(t, 12*time.Hour, cfg.SessionTTL)
	assert.Zero(t, cfg.SimulatedLatency)
	assert.False(t, cfg.EnforceRoles)
	assert.Equal(t, 20.0, cfg.RateLimitRPS)
	assert.Equal(t, 40, cfg.RateLimitBurst)
	assert.Len(t, cfg.SessionSecret, 64, "a random hex secret is generated")
}

func TestLoadConfig_FromEnv(t *testing.T) {
	t.Setenv("PORT", "9090")
	t.Setenv("SESSION_SECRET", "a-very-long-session-secret")
	t.Setenv("SIMULATED_LATENCY", "1s")
	t.Setenv("ENFORCE_ROLE_ACCESS", "true")
	t.Setenv("RATE_LIMIT_RPS", "2.5")

	cfg, err := loadConfig(slog.New(slog.NewTextHandler(io.Discard, nil)))
	require.NoError(t, err)

	assert.Equal(t, 9090, cfg.Port)
	assert.Equal(t, "a-very-long-session-secret", cfg.SessionSecret)
	assert.Equal(t, time.Second, cfg.SimulatedLatency)
	assert.True(t, cfg.EnforceRoles)
	assert.Equal(t, 2.5, cfg.RateLimitRPS)
}

func TestLoadConfig_Invalid(t *testing.T) {
	tests := map[string]string{
		"PORT":                "http",
		"SIMULATED_LATENCY":   "-1s",
		"ENFORCE_ROLE_ACCESS": "maybe",
		"RATE_LIMIT_BURST":    "1.5",
	}
	for key, val := range tests {
		t.Run(key, func(t *testing.T) {
			t.Setenv(key, val)
			_, err := loadConfig(slog.New(slog.NewTextHandler(io.Discard, nil)))
			assert.ErrorContains(t, err, key)
		})
	}
}

func TestParseLevel(t *testing.T) {
	l, err := parseLevel("debug")
	require.NoError(t, err)
	assert.Equal(t, slog.LevelDebug, l)

	l, err = parseLevel("")
	require.NoError(t, err)
	assert.Equal(t, slog.LevelInfo, l)

	_, err = parseLevel("loud")
	assert.Error(t, err)
}
