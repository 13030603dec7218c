package applib

import (
	"bytes"
	"context"
	"log/slog"
	"net"
	"net/http"
	"net/http/httptest"
	"path"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(&bytes.Buffer{}, nil))
}

func TestApplyEnvDefaults(t *testing.T) {
	t.Setenv(EnvDBPath, "")
	t.Setenv(EnvPort, "")
	t.Setenv(EnvAllowedOrigins, "")

	cfg := Config{}
	require.NoError(t, cfg.ApplyEnv())
	assert.Equal(t, DefaultHost, cfg.Host)
	assert.Equal(t, DefaultPort, cfg.Port)
	assert.NotEmpty(t, cfg.DBPath)
	assert.Empty(t, cfg.AllowedOrigins)
}

func TestApplyEnvOverrides(t *testing.T) {
	t.Setenv(EnvDBPath, "/tmp/env.db")
	t.Setenv(EnvPort, "9001")
	t.Setenv(EnvAllowedOrigins, "tauri://localhost, http://localhost:1420")

	cfg := Config{}
	require.NoError(t, cfg.ApplyEnv())
	assert.Equal(t, "/tmp/env.db", cfg.DBPath)
	assert.Equal(t, 9001, cfg.Port)
	assert.Equal(t, []string{"tauri://localhost", "http://localhost:1420"}, cfg.AllowedOrigins)

	// Explicit values win over the environment
	cfg = Config{DBPath: "/tmp/flag.db", Port: 7000}
	require.NoError(t, cfg.ApplyEnv())
	assert.Equal(t, "/tmp/flag.db", cfg.DBPath)
	assert.Equal(t, 7000, cfg.Port)
}

func TestApplyEnvInvalidPort(t *testing.T) {
	t.Setenv(EnvPort, "not-a-port")
	cfg := Config{}
	assert.Error(t, cfg.ApplyEnv())

	cfg = Config{Port: 70000}
	assert.Error(t, cfg.ApplyEnv())
}

func TestInitCreatesTable(t *testing.T) {
	dbPath := path.Join(t.TempDir(), "nested", "app.db")
	app, err := Init(Config{Version: "1.0.0", DBPath: dbPath}, testLogger())
	require.NoError(t, err)
	defer app.GetDatabase().Close()

	assert.Equal(t, dbPath, app.GetDatabase().Path())
	id, err := app.GetConnections().CreateConnection("x", "y", "z")
	require.NoError(t, err)
	assert.Greater(t, id, int64(0))
}

func TestInitFailsOnUnreachableStorage(t *testing.T) {
	dir := t.TempDir()
	// A directory cannot be opened as a database file
	_, err := Init(Config{DBPath: dir}, testLogger())
	assert.Error(t, err)
}

func TestHandlerServesAPI(t *testing.T) {
	app, err := Init(Config{Version: "2.0.0", DBPath: path.Join(t.TempDir(), "app.db")}, testLogger())
	require.NoError(t, err)
	defer app.GetDatabase().Close()

	w := httptest.NewRecorder()
	app.Handler().ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/status", nil))
	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"version":"2.0.0"}`, w.Body.String())
	assert.NotEmpty(t, w.Header().Get("X-Request-Id"))
}

func TestDefaultConfigRejectsForeignOrigins(t *testing.T) {
	app, err := Init(Config{DBPath: path.Join(t.TempDir(), "app.db")}, testLogger())
	require.NoError(t, err)
	defer app.GetDatabase().Close()

	req := httptest.NewRequest(http.MethodPost, "/api/list_connection", nil)
	req.Header.Set("Origin", "https://evil.example")
	w := httptest.NewRecorder()
	app.Handler().ServeHTTP(w, req)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Empty(t, w.Header().Get("Access-Control-Allow-Origin"))
}

func TestServeListenerStopsOnCancel(t *testing.T) {
	app, err := Init(Config{Version: "3.0.0", DBPath: path.Join(t.TempDir(), "app.db")}, testLogger())
	require.NoError(t, err)

	listener, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() {
		done <- app.ServeListener(ctx, listener)
	}()

	resp, err := http.Get("http://" + listener.Addr().String() + "/api/status")
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	cancel()
	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(10 * time.Second):
		t.Fatal("server did not shut down")
	}
}
