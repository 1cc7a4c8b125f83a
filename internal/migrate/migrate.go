package migrate

import (
	"context"
	"database/sql"
	"embed"
	"errors"
	"fmt"
	"io/fs"

	"github.com/golang-migrate/migrate/v4"
	"github.com/golang-migrate/migrate/v4/database"
	"github.com/golang-migrate/migrate/v4/database/mysql"
	"github.com/golang-migrate/migrate/v4/database/postgres"
	"github.com/golang-migrate/migrate/v4/source/iofs"
	"github.com/jackc/pgx/v5/pgxpool"
	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/jmoiron/sqlx"
)

//go:embed sql/*.sql
var postgresFS embed.FS

//go:embed mysql/*.sql
var mysqlFS embed.FS

// Apply runs all postgres migrations up using the embedded migration files.
func Apply(ctx context.Context, pool *pgxpool.Pool) error {
	sqlDB, err := sql.Open("pgx", pool.Config().ConnString())
	if err != nil {
		return fmt.Errorf("open sql db: %w", err)
	}
	defer sqlDB.Close()

	if err := sqlDB.PingContext(ctx); err != nil {
		return fmt.Errorf("ping sql db: %w", err)
	}

	dbDriver, err := postgres.WithInstance(sqlDB, &postgres.Config{})
	if err != nil {
		return fmt.Errorf("init db driver: %w", err)
	}
	return up(postgresFS, "sql", "pgx", dbDriver)
}

// ApplyMySQL runs the mysql schema migrations against an open connection.
// The connection must allow multi statements.
func ApplyMySQL(ctx context.Context, conn *sqlx.DB) error {
	if err := conn.PingContext(ctx); err != nil {
		return fmt.Errorf("ping mysql: %w", err)
	}
	dbDriver, err := mysql.WithInstance(conn.DB, &mysql.Config{})
	if err != nil {
		return fmt.Errorf("init db driver: %w", err)
	}
	return up(mysqlFS, "mysql", "mysql", dbDriver)
}

func up(fsys fs.FS, dir, dbName string, dbDriver database.Driver) error {
	srcDriver, err := iofs.New(fsys, dir)
	if err != nil {
		return fmt.Errorf("init iofs: %w", err)
	}

	m, err := migrate.NewWithInstance("iofs", srcDriver, dbName, dbDriver)
	if err != nil {
		return fmt.Errorf("init migrate: %w", err)
	}
	defer m.Close()

	if err := m.Up(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		if errors.Is(err, fs.ErrNotExist) {
			return fmt.Errorf("migrate up: %w (hint: ensure every migration version has both `.up.sql` and `.down.sql`, and rebuild the binary since migrations are embedded)", err)
		}
		return fmt.Errorf("migrate up: %w", err)
	}
	return nil
}
