// Package store persists named household snapshots in SQLite.
package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/goccy/go-json"
	"github.com/google/uuid"

	"github.com/rpgo/retirement-projector/internal/domain"

	_ "modernc.org/sqlite" // register sqlite driver
)

// ErrNotFound is returned when no scenario has the requested name.
var ErrNotFound = errors.New("scenario not found")

// Summary describes a stored scenario without its snapshot.
type Summary struct {
	ID        uuid.UUID `json:"id"`
	Name      string    `json:"name"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Store saves and loads scenarios by name.
type Store interface {
	Save(ctx context.Context, name string, snap *domain.Snapshot) (Summary, error)
	Load(ctx context.Context, name string) (*domain.Snapshot, error)
	List(ctx context.Context) ([]Summary, error)
	Delete(ctx context.Context, name string) error
	LastActive(ctx context.Context) (string, error)
	SetLastActive(ctx context.Context, name string) error
	Close() error
}

// SQLiteStore is the SQLite-backed Store.
type SQLiteStore struct {
	db  *sql.DB
	now func() time.Time
}

// Open opens or creates the scenario database at the given path.
func Open(dbPath string) (*SQLiteStore, error) {
	if dbPath != ":memory:" {
		if err := os.MkdirAll(filepath.Dir(dbPath), 0o750); err != nil {
			return nil, fmt.Errorf("creating store dir: %w", err)
		}
	}

	db, err := sql.Open("sqlite", dbPath+"?_pragma=journal_mode(wal)&_pragma=synchronous(normal)&_pragma=busy_timeout(5000)")
	if err != nil {
		return nil, fmt.Errorf("opening store db: %w", err)
	}
	// A single connection keeps :memory: databases shared and serialises writers.
	db.SetMaxOpenConns(1)

	if _, err := db.Exec(schemaSQL); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("creating schema: %w", err)
	}

	return &SQLiteStore{db: db, now: time.Now}, nil
}

// Close closes the database.
func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

func normalizeName(name string) string {
	name = strings.TrimSpace(name)
	if name == "" {
		return domain.DefaultScenarioName
	}
	return name
}

// Save inserts or replaces the scenario with the given name. The stored
// snapshot carries the scenario name; the row id survives replacement.
func (s *SQLiteStore) Save(ctx context.Context, name string, snap *domain.Snapshot) (Summary, error) {
	if snap == nil {
		return Summary{}, errors.New("snapshot is nil")
	}
	name = normalizeName(name)

	cp := *snap
	cp.Name = name
	data, err := json.Marshal(&cp)
	if err != nil {
		return Summary{}, fmt.Errorf("encoding snapshot: %w", err)
	}

	now := s.now().UTC().Format(time.RFC3339Nano)
	_, err = s.db.ExecContext(ctx, `INSERT INTO scenarios (id, name, snapshot, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?)
		ON CONFLICT(name) DO UPDATE SET snapshot = excluded.snapshot, updated_at = excluded.updated_at`,
		uuid.NewString(), name, string(data), now, now,
	)
	if err != nil {
		return Summary{}, fmt.Errorf("saving scenario %q: %w", name, err)
	}

	return s.summary(ctx, name)
}

func (s *SQLiteStore) summary(ctx context.Context, name string) (Summary, error) {
	row := s.db.QueryRowContext(ctx, "SELECT id, name, created_at, updated_at FROM scenarios WHERE name = ?", name)
	sum, err := scanSummary(row)
	if errors.Is(err, sql.ErrNoRows) {
		return Summary{}, fmt.Errorf("%w: %s", ErrNotFound, name)
	}
	return sum, err
}

// Load returns the snapshot stored under name.
func (s *SQLiteStore) Load(ctx context.Context, name string) (*domain.Snapshot, error) {
	name = normalizeName(name)
	var data string
	err := s.db.QueryRowContext(ctx, "SELECT snapshot FROM scenarios WHERE name = ?", name).Scan(&data)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%w: %s", ErrNotFound, name)
	}
	if err != nil {
		return nil, fmt.Errorf("loading scenario %q: %w", name, err)
	}

	var snap domain.Snapshot
	if err := json.Unmarshal([]byte(data), &snap); err != nil {
		return nil, fmt.Errorf("decoding scenario %q: %w", name, err)
	}
	return &snap, nil
}

// List returns every stored scenario ordered by name.
func (s *SQLiteStore) List(ctx context.Context) ([]Summary, error) {
	rows, err := s.db.QueryContext(ctx, "SELECT id, name, created_at, updated_at FROM scenarios ORDER BY name")
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()

	var result []Summary
	for rows.Next() {
		sum, err := scanSummary(rows)
		if err != nil {
			return nil, err
		}
		result = append(result, sum)
	}
	return result, rows.Err()
}

// Delete removes a scenario. Deleting the last active scenario clears it.
func (s *SQLiteStore) Delete(ctx context.Context, name string) error {
	name = normalizeName(name)
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback() }()

	res, err := tx.ExecContext(ctx, "DELETE FROM scenarios WHERE name = ?", name)
	if err != nil {
		return fmt.Errorf("deleting scenario %q: %w", name, err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return fmt.Errorf("%w: %s", ErrNotFound, name)
	}

	_, err = tx.ExecContext(ctx, "DELETE FROM app_state WHERE key = ? AND value = ?", lastActiveKey, name)
	if err != nil {
		return err
	}
	return tx.Commit()
}

// LastActive returns the name of the last active scenario, or "" when none is set.
func (s *SQLiteStore) LastActive(ctx context.Context) (string, error) {
	var name string
	err := s.db.QueryRowContext(ctx, "SELECT value FROM app_state WHERE key = ?", lastActiveKey).Scan(&name)
	if errors.Is(err, sql.ErrNoRows) {
		return "", nil
	}
	return name, err
}

// SetLastActive records name as the last active scenario. The scenario must exist.
func (s *SQLiteStore) SetLastActive(ctx context.Context, name string) error {
	name = normalizeName(name)
	if _, err := s.summary(ctx, name); err != nil {
		return err
	}
	_, err := s.db.ExecContext(ctx, "INSERT OR REPLACE INTO app_state (key, value) VALUES (?, ?)", lastActiveKey, name)
	return err
}

type scanner interface {
	Scan(dest ...any) error
}

func scanSummary(sc scanner) (Summary, error) {
	var (
		sum                  Summary
		id, created, updated string
	)
	if err := sc.Scan(&id, &sum.Name, &created, &updated); err != nil {
		return Summary{}, err
	}
	var err error
	if sum.ID, err = uuid.Parse(id); err != nil {
		return Summary{}, fmt.Errorf("parsing scenario id: %w", err)
	}
	sum.CreatedAt, _ = time.Parse(time.RFC3339Nano, created)
	sum.UpdatedAt, _ = time.Parse(time.RFC3339Nano, updated)
	return sum, nil
}
