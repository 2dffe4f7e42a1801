// README: History store backed by PostgreSQL; insert-per-append is race-free by construction.
package history

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// PGStore is the transactional alternative to FileStore for deployments
// that already run Postgres. Each append is a single insert, so concurrent
// writers cannot lose updates.
type PGStore struct {
	db *pgxpool.Pool
}

func NewPGStore(db *pgxpool.Pool) *PGStore {
	return &PGStore{db: db}
}

// Migrate creates the backing table when it does not exist yet.
func (s *PGStore) Migrate(ctx context.Context) error {
	_, err := s.db.Exec(ctx, `
		CREATE TABLE IF NOT EXISTS history_entries (
			id         TEXT PRIMARY KEY,
			user_hash  TEXT NOT NULL,
			created_at TIMESTAMPTZ NOT NULL,
			request    JSONB NOT NULL,
			response   JSONB NOT NULL
		)`)
	return err
}

func (s *PGStore) Append(ctx context.Context, e *Entry) error {
	_, err := s.db.Exec(ctx, `
		INSERT INTO history_entries (id, user_hash, created_at, request, response)
		VALUES ($1, $2, $3, $4, $5)`,
		e.ID, e.UserHash, e.Timestamp, e.Request, []byte(e.Response),
	)
	return err
}

func (s *PGStore) All(ctx context.Context) ([]Entry, error) {
	rows, err := s.db.Query(ctx, `
		SELECT id, user_hash, created_at, request, response
		FROM history_entries
		ORDER BY created_at`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var entries []Entry
	for rows.Next() {
		var e Entry
		var response []byte
		if err := rows.Scan(&e.ID, &e.UserHash, &e.Timestamp, &e.Request, &response); err != nil {
			return nil, err
		}
		e.Response = response
		entries = append(entries, e)
	}
	return entries, rows.Err()
}

func (s *PGStore) Get(ctx context.Context, id string) (*Entry, error) {
	row := s.db.QueryRow(ctx, `
		SELECT id, user_hash, created_at, request, response
		FROM history_entries
		WHERE id = $1`, id)

	var e Entry
	var response []byte
	err := row.Scan(&e.ID, &e.UserHash, &e.Timestamp, &e.Request, &response)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	e.Response = response
	return &e, nil
}

func (s *PGStore) Delete(ctx context.Context, id string) error {
	tag, err := s.db.Exec(ctx, `DELETE FROM history_entries WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}
