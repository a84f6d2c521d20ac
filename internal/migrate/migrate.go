// Package migrate applies the embedded letter schema to PostgreSQL.
package migrate

import (
	"context"
	"database/sql"
	"fmt"

	_ "github.com/jackc/pgx/v5/stdlib" // registers the "pgx" database/sql driver
	"github.com/pressly/goose/v3"
	"github.com/serroba/love-letter-go/internal/migrations"
	"go.uber.org/zap"
)

// Migrator brings a database up to the latest embedded schema version.
type Migrator struct {
	logger *zap.Logger
}

// New creates a Migrator that logs every migration it applies.
func New(logger *zap.Logger) *Migrator {
	return &Migrator{logger: logger}
}

// Up applies pending migrations to the database at dsn and returns the
// schema version it ends on.
func (m *Migrator) Up(ctx context.Context, dsn string) (int64, error) {
	db, err := sql.Open("pgx", dsn)
	if err != nil {
		return 0, fmt.Errorf("open database: %w", err)
	}
	defer db.Close()

	provider, err := goose.NewProvider(goose.DialectPostgres, db, migrations.FS)
	if err != nil {
		return 0, fmt.Errorf("load migrations: %w", err)
	}

	results, err := provider.Up(ctx)
	for _, res := range results {
		m.logger.Info("migration applied",
			zap.Int64("version", res.Source.Version),
			zap.String("file", res.Source.Path),
			zap.Duration("duration", res.Duration),
		)
	}

	if err != nil {
		return 0, fmt.Errorf("apply migrations: %w", err)
	}

	version, err := provider.GetDBVersion(ctx)
	if err != nil {
		return 0, fmt.Errorf("read schema version: %w", err)
	}

	return version, nil
}
