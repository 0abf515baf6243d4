// Package database owns the connection handle behind every store. The
// handle is constructed once at startup and injected; when no DSN is
// configured (local tooling, demo deploys) it runs in a degraded mode
// where reads see an empty store and writes fail with ErrUnavailable.
package database

import (
	"log/slog"

	"github.com/atelierpoint/studio-backend/internal/shared"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

type DB struct {
	gorm *gorm.DB
}

// Open connects to the configured store. It never returns an error: an
// empty DSN or a failed connection yields an unavailable handle so the
// public site can still serve.
func Open(dsn string, log *slog.Logger) *DB {
	if dsn == "" {
		log.Warn("no database DSN configured, store is unavailable")
		return &DB{}
	}

	conn, err := gorm.Open(postgres.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		log.Warn("failed to connect to database, store is unavailable", "error", err)
		return &DB{}
	}

	return &DB{gorm: conn}
}

// FromGorm wraps an existing connection. Tests use this with an in-memory
// sqlite database.
func FromGorm(conn *gorm.DB) *DB {
	return &DB{gorm: conn}
}

// Unavailable returns a handle with no connection.
func Unavailable() *DB {
	return &DB{}
}

func (d *DB) Available() bool {
	return d.gorm != nil
}

// Conn returns the underlying connection, or ErrUnavailable when none was
// established. Write paths call this; read paths check Available and
// degrade silently instead.
func (d *DB) Conn() (*gorm.DB, error) {
	if d.gorm == nil {
		return nil, shared.ErrUnavailable
	}
	return d.gorm, nil
}

// Migrate runs auto-migration for the given models when a connection
// exists. Degraded handles skip migration without error.
func (d *DB) Migrate(models ...any) error {
	if d.gorm == nil {
		return nil
	}
	return d.gorm.AutoMigrate(models...)
}
