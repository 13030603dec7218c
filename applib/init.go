package applib

import (
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"strings"

	"github.com/tomyedwab/conndesk/database"
)

const (
	DefaultHost = "127.0.0.1"
	DefaultPort = 8765

	EnvDBPath         = "CONNDESK_DB_PATH"
	EnvPort           = "CONNDESK_PORT"
	EnvAllowedOrigins = "CONNDESK_ALLOWED_ORIGINS"
)

// Config holds the settings of the serve command. Zero values are filled in
// by ApplyEnv and the defaults.
type Config struct {
	Version        string
	DBPath         string
	Host           string
	Port           int
	AllowedOrigins []string
}

// ApplyEnv fills unset fields from the environment and then from defaults.
func (cfg *Config) ApplyEnv() error {
	if cfg.DBPath == "" {
		cfg.DBPath = os.Getenv(EnvDBPath)
	}
	if cfg.DBPath == "" {
		cfg.DBPath = database.DefaultPath()
	}
	if cfg.Host == "" {
		cfg.Host = DefaultHost
	}
	if cfg.Port == 0 {
		if portStr := os.Getenv(EnvPort); portStr != "" {
			port, err := strconv.Atoi(portStr)
			if err != nil {
				return fmt.Errorf("invalid %s %q: %w", EnvPort, portStr, err)
			}
			cfg.Port = port
		}
	}
	if cfg.Port == 0 {
		cfg.Port = DefaultPort
	}
	if len(cfg.AllowedOrigins) == 0 {
		if origins := os.Getenv(EnvAllowedOrigins); origins != "" {
			for _, origin := range strings.Split(origins, ",") {
				if origin = strings.TrimSpace(origin); origin != "" {
					cfg.AllowedOrigins = append(cfg.AllowedOrigins, origin)
				}
			}
		}
	}
	if cfg.Port < 0 || cfg.Port > 65535 {
		return fmt.Errorf("invalid port %d", cfg.Port)
	}
	return nil
}

// Init opens the database and creates the connections table. A failure here
// leaves the application without a schema, so callers treat it as fatal.
func Init(cfg Config, logger *slog.Logger) (*Application, error) {
	if err := cfg.ApplyEnv(); err != nil {
		return nil, err
	}

	db, err := database.Open(cfg.DBPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	app := NewApplication(cfg, db, logger)
	if err := app.conns.Init(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to initialize database: %w", err)
	}
	logger.Info("Database initialized", "path", cfg.DBPath)
	return app, nil
}
