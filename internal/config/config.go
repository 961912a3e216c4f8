// Package config loads process configuration from the environment and
// parses per-batch run configuration files.
package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
)

// Config captures environment driven configuration for the agenda service.
type Config struct {
	HTTPPort int
	// ClosedSentinel overrides the locale table's closed-activity literal
	// when set.
	ClosedSentinel string
	// DefaultLocale is used when a run config omits a language code.
	DefaultLocale string
	// SnapshotDSN, when set, enables writing batch results to a SQLite
	// snapshot file.
	SnapshotDSN string
}

// Load parses configuration values from the current process environment,
// applying defaults for optional fields and reporting every invalid entry at
// once.
func Load() (Config, error) {
	cfg := Config{
		HTTPPort:      8080,
		DefaultLocale: "CAT",
	}

	invalid := make([]string, 0, 1)

	if portValue := strings.TrimSpace(os.Getenv("AGENDA_HTTP_PORT")); portValue != "" {
		port, err := strconv.Atoi(portValue)
		if err != nil || port <= 0 {
			invalid = append(invalid, "AGENDA_HTTP_PORT")
		} else {
			cfg.HTTPPort = port
		}
	}

	if sentinel := strings.TrimSpace(os.Getenv("AGENDA_CLOSED_SENTINEL")); sentinel != "" {
		cfg.ClosedSentinel = sentinel
	}

	if locale := strings.TrimSpace(os.Getenv("AGENDA_DEFAULT_LOCALE")); locale != "" {
		cfg.DefaultLocale = strings.ToUpper(locale)
	}

	if dsn := strings.TrimSpace(os.Getenv("AGENDA_SNAPSHOT_DSN")); dsn != "" {
		cfg.SnapshotDSN = dsn
	}

	if len(invalid) > 0 {
		return Config{}, fmt.Errorf("invalid environment values: %s", strings.Join(invalid, ", "))
	}

	return cfg, nil
}
