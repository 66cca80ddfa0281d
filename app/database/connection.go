package database

import (
	"database/sql"
	"fmt"
	"log/slog"
	"strings"

	_ "github.com/tursodatabase/libsql-client-go/libsql"
	_ "modernc.org/sqlite"
)

type DB struct {
	*sql.DB
}

// Open connects to a local SQLite file, or to a remote libsql server when dsn
// is a libsql:// or wss:// URL.
func Open(dsn string) (*DB, error) {
	if dsn == "" {
		return nil, fmt.Errorf("database URL is required")
	}

	driverName := driverFor(dsn)

	conn, err := sql.Open(driverName, dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	if err := conn.Ping(); err != nil {
		conn.Close()
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	slog.Debug("Database connected", "driver", driverName)

	return &DB{DB: conn}, nil
}

func driverFor(dsn string) string {
	if strings.HasPrefix(dsn, "libsql://") || strings.HasPrefix(dsn, "wss://") {
		return "libsql"
	}
	return "sqlite"
}
