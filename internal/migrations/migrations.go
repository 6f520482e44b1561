// Package migrations owns the PostgreSQL schema. SQL files are embedded at
// compile time and applied by golang-migrate, which records progress in
// schema_migrations.
package migrations

import (
	"context"
	"embed"
	"errors"
	"fmt"
	"io/fs"
	"strings"

	"github.com/golang-migrate/migrate/v4"
	"github.com/golang-migrate/migrate/v4/database/postgres"
	"github.com/golang-migrate/migrate/v4/source"
	"github.com/golang-migrate/migrate/v4/source/iofs"
	"github.com/jmoiron/sqlx"
	"github.com/jmorenovfever/AI4Devs-backend-fever/pkg/logx"
)

//go:embed sql/*.sql
var sqlFiles embed.FS

const migrationsTable = "schema_migrations"

func newSource() (source.Driver, error) {
	src, err := iofs.New(sqlFiles, "sql")
	if err != nil {
		return nil, fmt.Errorf("open embedded migrations: %w", err)
	}
	return src, nil
}

// Versions returns the embedded migration versions in ascending order.
func Versions() ([]uint, error) {
	src, err := newSource()
	if err != nil {
		return nil, err
	}
	defer src.Close()

	v, err := src.First()
	if err != nil {
		return nil, fmt.Errorf("read first migration: %w", err)
	}
	versions := []uint{v}
	for {
		v, err = src.Next(v)
		if errors.Is(err, fs.ErrNotExist) {
			return versions, nil
		}
		if err != nil {
			return nil, fmt.Errorf("read migration after %d: %w", v, err)
		}
		versions = append(versions, v)
	}
}

// Apply migrates the database to the latest embedded version and returns how
// many migrations ran. It holds one pooled connection for the duration and
// leaves db open.
func Apply(ctx context.Context, db *sqlx.DB) (int, error) {
	versions, err := Versions()
	if err != nil {
		return 0, err
	}

	src, err := newSource()
	if err != nil {
		return 0, err
	}

	conn, err := db.Conn(ctx)
	if err != nil {
		src.Close()
		return 0, fmt.Errorf("acquire migration connection: %w", err)
	}

	driver, err := postgres.WithConnection(ctx, conn, &postgres.Config{MigrationsTable: migrationsTable})
	if err != nil {
		src.Close()
		conn.Close()
		return 0, fmt.Errorf("init migration driver: %w", err)
	}

	m, err := migrate.NewWithInstance("iofs", src, "postgres", driver)
	if err != nil {
		src.Close()
		driver.Close()
		return 0, fmt.Errorf("init migrator: %w", err)
	}
	m.Log = migrateLogger{}
	defer func() {
		if srcErr, dbErr := m.Close(); srcErr != nil || dbErr != nil {
			logx.Warnf("closing migrator: source=%v database=%v", srcErr, dbErr)
		}
	}()

	before, err := currentVersion(m)
	if err != nil {
		return 0, err
	}

	if err := m.Up(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		after, _ := currentVersion(m)
		return countBetween(versions, before, after), fmt.Errorf("apply migrations: %w", err)
	}

	after, err := currentVersion(m)
	if err != nil {
		return 0, err
	}
	n := countBetween(versions, before, after)
	if n > 0 {
		logx.Infof("schema migrated from version %d to %d", before, after)
	}
	return n, nil
}

func currentVersion(m *migrate.Migrate) (uint, error) {
	v, dirty, err := m.Version()
	if errors.Is(err, migrate.ErrNilVersion) {
		return 0, nil
	}
	if err != nil {
		return 0, fmt.Errorf("read schema version: %w", err)
	}
	if dirty {
		return v, fmt.Errorf("schema version %d is dirty, fix it by hand and force the version", v)
	}
	return v, nil
}

// countBetween counts the versions in (from, to].
func countBetween(versions []uint, from, to uint) int {
	n := 0
	for _, v := range versions {
		if v > from && v <= to {
			n++
		}
	}
	return n
}

// migrateLogger routes golang-migrate output through logx.
type migrateLogger struct{}

func (migrateLogger) Printf(format string, v ...any) {
	logx.Infof(strings.TrimSuffix(format, "\n"), v...)
}

func (migrateLogger) Verbose() bool { return false }
