package database

import (
	"fmt"
	"log/slog"
	"net/url"
	"os"
	"path/filepath"
	"strings"

	"github.com/jmoiron/sqlx"
	_ "github.com/mattn/go-sqlite3"
)

const (
	defaultDirName  = "conndesk"
	defaultFileName = "conndesk.db"
)

// Database wraps the single shared handle to the SQLite file. It is safe for
// concurrent use; the pool is capped at one connection so statements from
// concurrent callers are serialized.
type Database struct {
	db   *sqlx.DB
	path string
}

// Connect opens a database with the given driver and verifies it is
// reachable.
func Connect(driverName string, dataSourceName string) (*Database, error) {
	db, err := sqlx.Connect(driverName, dataSourceName)
	if err != nil {
		return nil, NewStorageError("failed to connect to database", err)
	}
	db.SetMaxOpenConns(1)
	return &Database{
		db:   db,
		path: dataSourceName,
	}, nil
}

// Open connects to the SQLite file at path, creating the file and its parent
// directory if needed.
func Open(path string) (*Database, error) {
	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, NewStorageError(fmt.Sprintf("failed to create database directory %s", dir), err)
		}
	}
	dsn, err := sqliteDSN(path)
	if err != nil {
		return nil, err
	}
	db, err := Connect("sqlite3", dsn)
	if err != nil {
		return nil, err
	}
	db.path = path
	slog.Debug("Opened database", "path", path)
	return db, nil
}

// sqliteDSN builds a file: URI for path. The path is escaped so that
// characters such as '?' and '#' in a file name are not read as URI syntax.
func sqliteDSN(path string) (string, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return "", NewStorageError(fmt.Sprintf("failed to resolve database path %s", path), err)
	}
	abs = filepath.ToSlash(abs)
	if !strings.HasPrefix(abs, "/") {
		abs = "/" + abs
	}
	dsn := url.URL{
		Scheme:   "file",
		Path:     abs,
		RawQuery: url.Values{"_busy_timeout": {"5000"}}.Encode(),
	}
	return dsn.String(), nil
}

// DefaultPath returns the process-default database location under the user's
// configuration directory, falling back to the working directory.
func DefaultPath() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		slog.Warn("Could not resolve user config dir, using working directory", "error", err)
		return defaultFileName
	}
	return filepath.Join(dir, defaultDirName, defaultFileName)
}

// Path returns the data source the database was opened with.
func (db *Database) Path() string {
	return db.path
}

func (db *Database) GetDB() *sqlx.DB {
	return db.db
}

func (db *Database) Close() error {
	return db.db.Close()
}
