package applib

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"time"

	"github.com/gorilla/mux"
	"github.com/tomyedwab/conndesk/database"
	"github.com/tomyedwab/conndesk/handlers"
	"github.com/tomyedwab/conndesk/middleware"
	"github.com/tomyedwab/conndesk/state"
)

const shutdownTimeout = 5 * time.Second

// Application ties the shared database to the HTTP boundary. It is built
// once at startup and handed to everything that needs it.
type Application struct {
	serverVersion  string
	listenAddr     string
	allowedOrigins []string
	db             *database.Database
	conns          *state.Connections
	logger         *slog.Logger
}

func NewApplication(cfg Config, db *database.Database, logger *slog.Logger) *Application {
	return &Application{
		serverVersion:  cfg.Version,
		listenAddr:     fmt.Sprintf("%s:%d", cfg.Host, cfg.Port),
		allowedOrigins: cfg.AllowedOrigins,
		db:             db,
		conns:          state.NewConnections(db),
		logger:         logger,
	}
}

// Handler returns the routed API wrapped in the default middleware.
func (app *Application) Handler() http.Handler {
	router := mux.NewRouter()
	handlers.NewHandlers(app.conns, app.serverVersion).Register(router)
	return middleware.ApplyDefault(router, app.logger, app.allowedOrigins)
}

// Serve listens until ctx is cancelled, then shuts the server down and
// closes the database.
func (app *Application) Serve(ctx context.Context) error {
	listener, err := net.Listen("tcp", app.listenAddr)
	if err != nil {
		return fmt.Errorf("failed to listen on %s: %w", app.listenAddr, err)
	}
	return app.ServeListener(ctx, listener)
}

func (app *Application) ServeListener(ctx context.Context, listener net.Listener) error {
	server := &http.Server{
		Handler:           app.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		app.logger.Info("Starting server", "address", listener.Addr().String(), "version", app.serverVersion)
		errCh <- server.Serve(listener)
	}()

	select {
	case err := <-errCh:
		app.db.Close()
		return fmt.Errorf("server stopped unexpectedly: %w", err)
	case <-ctx.Done():
	}

	app.logger.Info("Shutting down server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	err := server.Shutdown(shutdownCtx)
	if serveErr := <-errCh; serveErr != nil && !errors.Is(serveErr, http.ErrServerClosed) && err == nil {
		err = serveErr
	}
	if closeErr := app.db.Close(); closeErr != nil && err == nil {
		err = closeErr
	}
	return err
}

func (app *Application) GetDatabase() *database.Database {
	return app.db
}

func (app *Application) GetConnections() *state.Connections {
	return app.conns
}
