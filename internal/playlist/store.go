package playlist

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

// Store is the metadata side of the playlist: identity and ordering of
// tracks.
type Store interface {
	// List returns every track ordered by position, ties by id.
	List(ctx context.Context) ([]Track, error)
	// MaxPosition returns the highest position in use, or 0 when empty.
	MaxPosition(ctx context.Context) (int, error)
	// Insert stores a row and returns it as read back from the store.
	Insert(ctx context.Context, t NewTrack) (Track, error)
}

// DB defines the subset of pgx used by PostgresStore.
// It is implemented by *pgxpool.Pool and can be mocked for testing.
type DB interface {
	Exec(ctx context.Context, sql string, arguments ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

type PostgresStore struct {
	db DB
}

func NewPostgresStore(db DB) *PostgresStore {
	return &PostgresStore{db: db}
}

func (s *PostgresStore) List(ctx context.Context) ([]Track, error) {
	rows, err := s.db.Query(ctx, `
		SELECT id, title, path, position
		FROM playlist
		ORDER BY position ASC, id ASC
	`)
	if err != nil {
		return nil, fmt.Errorf("querying playlist: %w", err)
	}
	defer rows.Close()

	tracks := []Track{}
	for rows.Next() {
		var t Track
		if err := rows.Scan(&t.ID, &t.Title, &t.Path, &t.Position); err != nil {
			return nil, fmt.Errorf("scanning track: %w", err)
		}
		tracks = append(tracks, t)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating playlist: %w", err)
	}
	return tracks, nil
}

func (s *PostgresStore) MaxPosition(ctx context.Context) (int, error) {
	var pos int
	err := s.db.QueryRow(ctx, `SELECT COALESCE(MAX(position), 0) FROM playlist`).Scan(&pos)
	if err != nil {
		return 0, fmt.Errorf("querying max position: %w", err)
	}
	return pos, nil
}

func (s *PostgresStore) Insert(ctx context.Context, nt NewTrack) (Track, error) {
	var id int64
	err := s.db.QueryRow(ctx, `
		INSERT INTO playlist (title, path, position)
		VALUES ($1, $2, $3)
		RETURNING id
	`, nt.Title, nt.Path, nt.Position).Scan(&id)
	if err != nil {
		return Track{}, fmt.Errorf("inserting track: %w", err)
	}
	return s.get(ctx, id)
}

func (s *PostgresStore) get(ctx context.Context, id int64) (Track, error) {
	var t Track
	err := s.db.QueryRow(ctx, `
		SELECT id, title, path, position
		FROM playlist
		WHERE id = $1
	`, id).Scan(&t.ID, &t.Title, &t.Path, &t.Position)
	if err != nil {
		return Track{}, fmt.Errorf("reading back track %d: %w", id, err)
	}
	return t, nil
}

var _ Store = (*PostgresStore)(nil)
