package store

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/serroba/love-letter-go/internal/letter"
)

// PgxPool is the subset of *pgxpool.Pool used by PostgresStore.
// It is also implemented by pgxmock.PgxPoolIface.
type PgxPool interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
	Ping(ctx context.Context) error
}

// PostgresStore is a PostgreSQL implementation of letter.Repository.
type PostgresStore struct {
	pool PgxPool
}

// NewPostgresStore creates a new PostgreSQL-backed letter store.
func NewPostgresStore(pool PgxPool) *PostgresStore {
	return &PostgresStore{pool: pool}
}

func (p *PostgresStore) Create(ctx context.Context, stored *letter.StoredLetter) error {
	query := `
		INSERT INTO love_letters (id, sender, recipient, message, created_at)
		VALUES ($1, $2, $3, $4, $5)
	`

	_, err := p.pool.Exec(ctx, query,
		string(stored.ID),
		stored.Letter.Sender,
		stored.Letter.Recipient,
		stored.Letter.Message,
		stored.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("%w: %w", letter.ErrTransport, err)
	}

	return nil
}

func (p *PostgresStore) GetByID(ctx context.Context, id letter.ID) (*letter.StoredLetter, error) {
	query := `
		SELECT id, sender, recipient, message, created_at
		FROM love_letters
		WHERE id = $1
	`

	var (
		stored  letter.StoredLetter
		foundID string
	)

	err := p.pool.QueryRow(ctx, query, string(id)).Scan(
		&foundID,
		&stored.Letter.Sender,
		&stored.Letter.Recipient,
		&stored.Letter.Message,
		&stored.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, letter.ErrNotFound
		}

		return nil, fmt.Errorf("%w: %w", letter.ErrTransport, err)
	}

	stored.ID = letter.ID(foundID)

	return &stored, nil
}

// Compile-time check.
var _ letter.Repository = (*PostgresStore)(nil)
