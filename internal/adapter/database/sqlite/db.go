package sqlite

import (
	"database/sql"
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/golang-migrate/migrate/v4"
	"github.com/golang-migrate/migrate/v4/database/sqlite3"
	"github.com/golang-migrate/migrate/v4/source/iofs"
	_ "github.com/mattn/go-sqlite3"
	"github.com/rs/zerolog"
	sqldblogger "github.com/simukti/sqldb-logger"
	"github.com/simukti/sqldb-logger/logadapter/zerologadapter"
	"github.com/uptrace/opentelemetry-go-extra/otelsql"
	"go.opentelemetry.io/otel"

	"tasknotes/internal/adapter/database/migrations"
)

const MemoryPath = ":memory:"

type DB struct {
	*sql.DB
	QueryBuilder *squirrel.StatementBuilderType
}

type Options struct {
	Path       string
	LogQueries bool
	Tracing    bool
}

func dsn(path string) string {
	params := "_foreign_keys=on&_busy_timeout=5000"

	if strings.Contains(path, "?") {
		return path + "&" + params
	}

	return path + "?" + params
}

// Open returns a migrated database handle. An in-memory database is pinned to
// a single connection so every query sees the same schema.
func Open(opts Options) (*sql.DB, error) {
	if opts.Path == "" {
		opts.Path = "tasknotes.db"
	}

	source := dsn(opts.Path)

	var (
		sqlDB *sql.DB
		err   error
	)

	if opts.Tracing {
		sqlDB, err = otelsql.Open("sqlite3", source,
			otelsql.WithDBSystem("sqlite"),
			otelsql.WithDBName("tasknotes"),
			otelsql.WithTracerProvider(otel.GetTracerProvider()),
		)
	} else {
		sqlDB, err = sql.Open("sqlite3", source)
	}

	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}

	if opts.LogQueries {
		zerolog.SetGlobalLevel(zerolog.DebugLevel)
		logger := zerolog.New(os.Stdout).With().Timestamp().Str("component", "sqlite").Logger()

		logged := sqldblogger.OpenDriver(source, sqlDB.Driver(), zerologadapter.New(logger))
		sqlDB.Close()
		sqlDB = logged
	}

	if strings.HasPrefix(opts.Path, MemoryPath) {
		sqlDB.SetMaxOpenConns(1)
		sqlDB.SetMaxIdleConns(1)
		sqlDB.SetConnMaxLifetime(0)
	} else {
		sqlDB.SetMaxOpenConns(25)
		sqlDB.SetMaxIdleConns(5)
		sqlDB.SetConnMaxLifetime(5 * time.Minute)
	}

	if err := sqlDB.Ping(); err != nil {
		sqlDB.Close()
		return nil, fmt.Errorf("ping sqlite: %w", err)
	}

	if err := RunMigrations(sqlDB); err != nil {
		sqlDB.Close()
		return nil, err
	}

	return sqlDB, nil
}

func NewDB(opts Options) (*DB, error) {
	sqlDB, err := Open(opts)

	if err != nil {
		return nil, err
	}

	queryBuilder := squirrel.StatementBuilder.PlaceholderFormat(squirrel.Question)

	return &DB{
		DB:           sqlDB,
		QueryBuilder: &queryBuilder,
	}, nil
}

// RunMigrations applies the embedded schema. The migrate instance is not closed
// because that would close db as well.
func RunMigrations(db *sql.DB) error {
	source, err := iofs.New(migrations.SQLite, "sqlite")

	if err != nil {
		return fmt.Errorf("failed to read migrations: %w", err)
	}

	driver, err := sqlite3.WithInstance(db, &sqlite3.Config{})

	if err != nil {
		return fmt.Errorf("failed to create migration driver: %w", err)
	}

	m, err := migrate.NewWithInstance("iofs", source, "sqlite3", driver)

	if err != nil {
		return fmt.Errorf("failed to create migration instance: %w", err)
	}

	if err := m.Up(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return fmt.Errorf("failed to run migrations: %w", err)
	}

	return nil
}
