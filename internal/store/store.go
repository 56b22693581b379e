// Package store persists imported play-by-play and team rows in a local sqlite database so
// playback works without network access.
package store

import (
	"context"
	"database/sql"
	"embed"
	"errors"
	"net/http"
	"net/url"
	"os"
	"runtime"
	"time"

	"github.com/golang-migrate/migrate/v4"
	"github.com/golang-migrate/migrate/v4/database/sqlite"
	"github.com/golang-migrate/migrate/v4/source/httpfs"
	_ "modernc.org/sqlite"
)

// MigrationAction selects how far Migrate moves the schema.
type MigrationAction int

const (
	MigrateUp MigrationAction = iota
	MigrateDn
	MigrateUpOne
	MigrateDownOne
)

const (
	memoryPath  = ":memory:"
	pingTimeout = 10 * time.Second
)

var (
	//go:embed migrations
	migrations embed.FS

	ErrDBConnect = errors.New("db connect error")
	ErrMigrate   = errors.New("failed to migrate db schema")
	ErrNotFound  = errors.New("database file does not exist")
)

// Open connects to the database at path, creating it when missing. An empty path opens a
// private in-memory database, limited to one connection since every pooled connection to
// ":memory:" sees its own empty database.
func Open(ctx context.Context, path string, autoMigrate bool) (*sql.DB, error) {
	conns := min(8, max(2, runtime.GOMAXPROCS(0)))
	pragmas := []string{"busy_timeout(10000)", "journal_mode(WAL)", "synchronous(NORMAL)", "cache_size(-32768)"}

	if path == "" || path == memoryPath {
		path = memoryPath
		conns = 1
		pragmas = pragmas[:1]
	}

	conn, errOpen := open(ctx, path, url.Values{"_pragma": pragmas, "cache": {"private"}}, conns)
	if errOpen != nil {
		return nil, errOpen
	}

	if autoMigrate {
		if errMigrate := Migrate(conn, MigrateUp); errMigrate != nil {
			_ = conn.Close()

			return nil, errors.Join(errMigrate, ErrDBConnect)
		}
	}

	return conn, nil
}

// OpenExisting connects to a database created by an earlier import. It neither creates the
// file nor migrates it.
func OpenExisting(ctx context.Context, path string) (*sql.DB, error) {
	if _, errStat := os.Stat(path); errStat != nil {
		return nil, errors.Join(errStat, ErrNotFound)
	}

	return Open(ctx, path, false)
}

func open(ctx context.Context, name string, query url.Values, conns int) (*sql.DB, error) {
	conn, err := sql.Open("sqlite", name+"?"+query.Encode())
	if err != nil {
		return nil, errors.Join(err, ErrDBConnect)
	}

	conn.SetMaxOpenConns(conns)
	conn.SetMaxIdleConns(conns)
	conn.SetConnMaxLifetime(0)
	conn.SetConnMaxIdleTime(0)

	pingCtx, cancel := context.WithTimeout(ctx, pingTimeout)
	defer cancel()

	if errPing := conn.PingContext(pingCtx); errPing != nil {
		_ = conn.Close()

		return nil, errors.Join(errPing, ErrDBConnect)
	}

	return conn, nil
}

// Migrate applies the embedded migrations. Having nothing to apply is not an error.
func Migrate(conn *sql.DB, action MigrationAction) error {
	driver, errDriver := sqlite.WithInstance(conn, &sqlite.Config{})
	if errDriver != nil {
		return errors.Join(errDriver, ErrMigrate)
	}

	source, errSource := httpfs.New(http.FS(migrations), "migrations")
	if errSource != nil {
		return errors.Join(errSource, ErrMigrate)
	}

	migrator, errInstance := migrate.NewWithInstance("httpfs", source, "sqlite", driver)
	if errInstance != nil {
		return errors.Join(errInstance, ErrMigrate)
	}

	var errMigration error

	switch action {
	case MigrateDn:
		errMigration = migrator.Down()
	case MigrateUpOne:
		errMigration = migrator.Steps(1)
	case MigrateDownOne:
		errMigration = migrator.Steps(-1)
	default:
		errMigration = migrator.Up()
	}

	if errMigration != nil && !errors.Is(errMigration, migrate.ErrNoChange) {
		return errors.Join(errMigration, ErrMigrate)
	}

	return nil
}
