// Command server runs the internship dashboard API.
//
// Configuration comes from the environment. A .env file in the working
// directory is loaded first when present; variables already set in the
// environment win over the file.
//
//	PORT                 listen port (8080)
//	LOG_LEVEL            debug | info | warn | error (info)
//	SESSION_SECRET       HMAC key for the session cookie, at least 16 bytes
//	                     (random per process when unset)
//	SESSION_TTL          cookie lifetime and idle session timeout (12h)
//	SECURE_COOKIES       send the cookie over HTTPS only (false)
//	SIMULATED_LATENCY    delay on apply, sign-in and profile save (0s)
//	ENFORCE_ROLE_ACCESS  redirect users away from other roles' pages (false)
//	RATE_LIMIT_RPS       requests per second per client (20)
//	RATE_LIMIT_BURST     burst size per client (40)
package main

import (
	"crypto/rand"
	"encoding/hex"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"

	"github.com/sakif/internhub/internal/auth"
	"github.com/sakif/internhub/internal/server"
)

func main() {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		fmt.Fprintf(os.Stderr, "loading .env: %v\n", err)
		os.Exit(1)
	}

	level, err := parseLevel(os.Getenv("LOG_LEVEL"))
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: level}))

	cfg, err := loadConfig(logger)
	if err != nil {
		logger.Error("invalid configuration", slog.String("error", err.Error()))
		os.Exit(1)
	}

	srv, err := server.New(cfg, logger)
	if err != nil {
		logger.Error("failed to create server", slog.String("error", err.Error()))
		os.Exit(1)
	}

	// Start blocks until SIGINT or SIGTERM.
	if err := srv.Start(); err != nil {
		logger.Error("server error", slog.String("error", err.Error()))
		os.Exit(1)
	}
}

func loadConfig(logger *slog.Logger) (server.Config, error) {
	var (
		cfg = server.Config{
			Port:           8080,
			SessionTTL:     auth.DefaultTokenTTL,
			RateLimitRPS:   20,
			RateLimitBurst: 40,
		}
		err error
	)

	if cfg.Port, err = envInt("PORT", cfg.Port); err != nil {
		return cfg, err
	}
	if cfg.SessionTTL, err = envDuration("SESSION_TTL", cfg.SessionTTL); err != nil {
		return cfg, err
	}
	if cfg.SimulatedLatency, err = envDuration("SIMULATED_LATENCY", 0); err != nil {
		return cfg, err
	}
	if cfg.SecureCookies, err = envBool("SECURE_COOKIES", false); err != nil {
		return cfg, err
	}
	if cfg.EnforceRoles, err = envBool("ENFORCE_ROLE_ACCESS", false); err != nil {
		return cfg, err
	}
	if cfg.RateLimitRPS, err = envFloat("RATE_LIMIT_RPS", cfg.RateLimitRPS); err != nil {
		return cfg, err
	}
	if cfg.RateLimitBurst, err = envInt("RATE_LIMIT_BURST", cfg.RateLimitBurst); err != nil {
		return cfg, err
	}

	cfg.SessionSecret = os.Getenv("SESSION_SECRET")
	if cfg.SessionSecret == "" {
		secret, err := randomSecret()
		if err != nil {
			return cfg, err
		}
		cfg.SessionSecret = secret
		logger.Warn("SESSION_SECRET not set, using a random secret; sessions will not survive a restart")
	}

	return cfg, nil
}

func parseLevel(s string) (slog.Level, error) {
	var l slog.Level
	if s == "" {
		return slog.LevelInfo, nil
	}
	if err := l.UnmarshalText([]byte(strings.ToUpper(s))); err != nil {
		return l, fmt.Errorf("invalid LOG_LEVEL %q", s)
	}
	return l, nil
}

func envInt(key string, def int) (int, error) {
	v := os.Getenv(key)
	if v == "" {
		return def, nil
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return 0, fmt.Errorf("invalid %s %q: %w", key, v, err)
	}
	return n, nil
}

func envFloat(key string, def float64) (float64, error) {
	v := os.Getenv(key)
	if v == "" {
		return def, nil
	}
	f, err := strconv.ParseFloat(v, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid %s %q: %w", key, v, err)
	}
	return f, nil
}

func envBool(key string, def bool) (bool, error) {
	v := os.Getenv(key)
	if v == "" {
		return def, nil
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		return false, fmt.Errorf("invalid %s %q: %w", key, v, err)
	}
	return b, nil
}

func envDuration(key string, def time.Duration) (time.Duration, error) {
	v := os.Getenv(key)
	if v == "" {
		return def, nil
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		return 0, fmt.Errorf("invalid %s %q: %w", key, v, err)
	}
	if d < 0 {
		return 0, fmt.Errorf("invalid %s %q: must not be negative", key, v)
	}
	return d, nil
}

func randomSecret() (string, error) {
	b := make([]byte, 32)
	if _, err := rand.Read(b); err != nil {
		return "", fmt.Errorf("generating session secret: %w", err)
	}
	return hex.EncodeToString(b), nil
}
