package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/spf13/cobra"
	"github.com/tomyedwab/conndesk/applib"
)

func parseLogLevel(level string) (slog.Level, error) {
	var l slog.Level
	if err := l.UnmarshalText([]byte(strings.ToUpper(level))); err != nil {
		return l, fmt.Errorf("invalid log level %q", level)
	}
	return l, nil
}

func serveCmd() *cobra.Command {
	var (
		cfg      applib.Config
		logLevel string
	)

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the connection API for the desktop front-end",
		RunE: func(cmd *cobra.Command, args []string) error {
			level, err := parseLogLevel(logLevel)
			if err != nil {
				return err
			}
			logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: level}))
			slog.SetDefault(logger)

			cfg.Version = version
			app, err := applib.Init(cfg, logger)
			if err != nil {
				// Running without a schema is not an option
				logger.Error("Failed to initialize database", "error", err)
				os.Exit(1)
			}

			ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()

			if err := app.Serve(ctx); err != nil {
				logger.Error("Server failed", "error", err)
				return err
			}
			logger.Info("Server stopped")
			return nil
		},
	}

	cmd.Flags().StringVar(&cfg.DBPath, "db", "", "Path to the SQLite database file (env "+applib.EnvDBPath+", default: user config dir)")
	cmd.Flags().StringVar(&cfg.Host, "host", applib.DefaultHost, "Address to listen on")
	cmd.Flags().IntVar(&cfg.Port, "port", 0, fmt.Sprintf("Port to listen on (env %s, default %d)", applib.EnvPort, applib.DefaultPort))
	cmd.Flags().StringSliceVar(&cfg.AllowedOrigins, "allowed-origin", nil, "Origin allowed to call the API, \"*\" for any; repeatable, none by default (env "+applib.EnvAllowedOrigins+")")
	cmd.Flags().StringVar(&logLevel, "log-level", "info", "Log level: debug, info, warn, error")
	return cmd
}
