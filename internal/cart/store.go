package cart

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sync"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// SnapshotStore is the single named durable slot holding the cart's line list
// as a JSON array. It is read once at engine startup and overwritten after
// every mutation. Writes originate from the single-writer reducer, so no
// store-side locking is required beyond what the medium itself needs.
type SnapshotStore interface {
	// Load returns the slot contents, or nil when the slot is empty.
	Load(ctx context.Context) ([]byte, error)

	// Save overwrites the slot with data.
	Save(ctx context.Context, data []byte) error

	// Clear empties the slot.
	Clear(ctx context.Context) error
}

// FileStore keeps the snapshot in a JSON file on disk.
type FileStore struct {
	path string
	mu   sync.Mutex
}

// NewFileStore creates a file-backed snapshot slot at path, creating parent
// directories as needed.
func NewFileStore(path string) (*FileStore, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("failed to create snapshot directory: %w", err)
	}
	return &FileStore{path: path}, nil
}

func (s *FileStore) Load(ctx context.Context) ([]byte, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	data, err := os.ReadFile(s.path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read snapshot: %w", err)
	}
	return data, nil
}

func (s *FileStore) Save(ctx context.Context, data []byte) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	// Write-then-rename so a crash mid-write never leaves a torn snapshot.
	tmp := s.path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return fmt.Errorf("failed to write snapshot: %w", err)
	}
	if err := os.Rename(tmp, s.path); err != nil {
		return fmt.Errorf("failed to replace snapshot: %w", err)
	}
	return nil
}

func (s *FileStore) Clear(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := os.Remove(s.path); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("failed to remove snapshot: %w", err)
	}
	return nil
}

// PostgresStore keeps the snapshot in a single cart_snapshots row keyed by
// slot key.
type PostgresStore struct {
	pool *pgxpool.Pool
	slot string
}

// NewPostgresStore creates a Postgres-backed snapshot slot.
func NewPostgresStore(pool *pgxpool.Pool, slotKey string) *PostgresStore {
	return &PostgresStore{pool: pool, slot: slotKey}
}

func (s *PostgresStore) Load(ctx context.Context) ([]byte, error) {
	var data []byte
	err := s.pool.QueryRow(ctx,
		`SELECT data FROM cart_snapshots WHERE slot_key = $1`, s.slot,
	).Scan(&data)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load snapshot row: %w", err)
	}
	return data, nil
}

func (s *PostgresStore) Save(ctx context.Context, data []byte) error {
	_, err := s.pool.Exec(ctx,
		`INSERT INTO cart_snapshots (slot_key, data, updated_at)
		 VALUES ($1, $2, now())
		 ON CONFLICT (slot_key) DO UPDATE SET data = EXCLUDED.data, updated_at = now()`,
		s.slot, data,
	)
	if err != nil {
		return fmt.Errorf("failed to save snapshot row: %w", err)
	}
	return nil
}

func (s *PostgresStore) Clear(ctx context.Context) error {
	_, err := s.pool.Exec(ctx,
		`DELETE FROM cart_snapshots WHERE slot_key = $1`, s.slot,
	)
	if err != nil {
		return fmt.Errorf("failed to clear snapshot row: %w", err)
	}
	return nil
}
