package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// MaxArchiveNameLength bounds ArchivedMap.Name; it matches the column width.
const MaxArchiveNameLength = 128

// ErrMapNotFound is returned when an archive lookup yields no results.
var ErrMapNotFound = errors.New("archived map not found")

// ErrInvalidArchiveName is returned for empty or over-long archive names.
var ErrInvalidArchiveName = errors.New("invalid archive name")

// ArchivedMap is one serialized map document stored under (Name, Turn).
type ArchivedMap struct {
	ID        int64
	Name      string
	Turn      int
	Dialect   string
	Document  []byte
	CreatedAt time.Time
}

// ValidArchiveName reports whether name can key an archived map.
func ValidArchiveName(name string) bool {
	return name != "" && len(name) <= MaxArchiveNameLength
}

// MapArchiveRepository stores normalized map documents.
type MapArchiveRepository struct {
	db *pgxpool.Pool
}

// NewMapArchiveRepository creates a MapArchiveRepository backed by the given pool.
//
// Precondition: db must be a valid, open connection pool.
func NewMapArchiveRepository(db *pgxpool.Pool) *MapArchiveRepository {
	return &MapArchiveRepository{db: db}
}

// Save stores document under (name, turn), replacing any earlier document
// for the same key.
//
// Precondition: document must be non-empty.
// Postcondition: Returns nil once the row is written, or ErrInvalidArchiveName.
func (r *MapArchiveRepository) Save(ctx context.Context, name string, turn int, dialect string, document []byte) error {
	if !ValidArchiveName(name) {
		return fmt.Errorf("%w: %q", ErrInvalidArchiveName, name)
	}
	_, err := r.db.Exec(ctx,
		`INSERT INTO map_archive (name, turn, dialect, document)
		 VALUES ($1, $2, $3, $4)
		 ON CONFLICT (name, turn)
		 DO UPDATE SET dialect = EXCLUDED.dialect, document = EXCLUDED.document, created_at = NOW()`,
		name, turn, dialect, document,
	)
	if err != nil {
		return fmt.Errorf("saving map %q turn %d: %w", name, turn, err)
	}
	return nil
}

// Get returns the document stored under (name, turn).
//
// Postcondition: Returns the ArchivedMap or ErrMapNotFound.
func (r *MapArchiveRepository) Get(ctx context.Context, name string, turn int) (ArchivedMap, error) {
	return r.scanOne(ctx,
		`SELECT id, name, turn, dialect, document, created_at
		 FROM map_archive WHERE name = $1 AND turn = $2`,
		name, turn,
	)
}

// Latest returns the document with the highest turn stored under name.
//
// Postcondition: Returns the ArchivedMap or ErrMapNotFound.
func (r *MapArchiveRepository) Latest(ctx context.Context, name string) (ArchivedMap, error) {
	return r.scanOne(ctx,
		`SELECT id, name, turn, dialect, document, created_at
		 FROM map_archive WHERE name = $1
		 ORDER BY turn DESC LIMIT 1`,
		name,
	)
}

func (r *MapArchiveRepository) scanOne(ctx context.Context, query string, args ...any) (ArchivedMap, error) {
	var m ArchivedMap
	err := r.db.QueryRow(ctx, query, args...).
		Scan(&m.ID, &m.Name, &m.Turn, &m.Dialect, &m.Document, &m.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return ArchivedMap{}, ErrMapNotFound
		}
		return ArchivedMap{}, fmt.Errorf("querying archived map: %w", err)
	}
	return m, nil
}

// ListTurns returns the turns stored under name in ascending order.
//
// Postcondition: Returns an empty slice when nothing is stored under name.
func (r *MapArchiveRepository) ListTurns(ctx context.Context, name string) ([]int, error) {
	rows, err := r.db.Query(ctx,
		`SELECT turn FROM map_archive WHERE name = $1 ORDER BY turn`,
		name,
	)
	if err != nil {
		return nil, fmt.Errorf("listing turns for %q: %w", name, err)
	}
	turns, err := pgx.CollectRows(rows, pgx.RowTo[int])
	if err != nil {
		return nil, fmt.Errorf("scanning turns for %q: %w", name, err)
	}
	if turns == nil {
		turns = []int{}
	}
	return turns, nil
}

// Delete removes the document stored under (name, turn).
//
// Postcondition: Returns ErrMapNotFound when no such document exists.
func (r *MapArchiveRepository) Delete(ctx context.Context, name string, turn int) error {
	tag, err := r.db.Exec(ctx,
		`DELETE FROM map_archive WHERE name = $1 AND turn = $2`,
		name, turn,
	)
	if err != nil {
		return fmt.Errorf("deleting map %q turn %d: %w", name, turn, err)
	}
	if tag.RowsAffected() == 0 {
		return ErrMapNotFound
	}
	return nil
}
