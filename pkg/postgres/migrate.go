package postgres

import (
	"errors"
	"fmt"

	"github.com/golang-migrate/migrate/v4"

	_ "github.com/golang-migrate/migrate/v4/database/postgres"
	_ "github.com/golang-migrate/migrate/v4/source/file"
)

// ErrDirtySchema is returned when a previous migration failed half way and the
// schema needs manual repair before the service can start.
var ErrDirtySchema = errors.New("schema is dirty")

// RunMigrations applies every pending migration from sourceURL to the database
// at dsn and returns the schema version it ends on. Zero means no migration
// has ever been applied.
func RunMigrations(sourceURL, dsn string) (uint, error) {
	const op = "pkg.postgres.RunMigrations"

	m, err := migrate.New(sourceURL, dsn)
	if err != nil {
		return 0, fmt.Errorf("%s: failed to open migrations at %q: %w", op, sourceURL, err)
	}
	defer m.Close()

	if err := m.Up(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return 0, fmt.Errorf("%s: failed to apply migrations: %w", op, err)
	}

	return schemaVersion(m)
}

type versioner interface {
	Version() (version uint, dirty bool, err error)
}

func schemaVersion(m versioner) (uint, error) {
	const op = "pkg.postgres.schemaVersion"

	version, dirty, err := m.Version()
	switch {
	case errors.Is(err, migrate.ErrNilVersion):
		return 0, nil
	case err != nil:
		return 0, fmt.Errorf("%s: failed to read schema version: %w", op, err)
	case dirty:
		return version, fmt.Errorf("%s: version %d: %w", op, version, ErrDirtySchema)
	}

	return version, nil
}
