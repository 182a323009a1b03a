// Package storage provides SQLite-based archiving of generated layouts.
// Uses the pure-Go modernc.org/sqlite driver to avoid CGO dependencies.
package storage

import (
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite" // Pure Go SQLite driver

	"dungeonforge/pkg/engine/world"
	"dungeonforge/pkg/game/generator"
	"dungeonforge/pkg/game/layoutio"
)

// Store manages the SQLite database connection for the layout archive.
type Store struct {
	db *sql.DB
}

// LayoutRecord is one archived layout.
type LayoutRecord struct {
	ID          int64
	Seed        int64
	Size        int
	Rooms       int
	Doors       int
	RepairDoors int
	Enemies     int
	Payload     []byte // EncodeRLE output
	CreatedAt   time.Time
}

// NewRecord builds an archive record from a generated layout.
func NewRecord(l *generator.Layout) (LayoutRecord, error) {
	payload, err := layoutio.EncodeRLE(l.Grid)
	if err != nil {
		return LayoutRecord{}, fmt.Errorf("storage: cannot encode layout: %w", err)
	}
	return LayoutRecord{
		Seed:        l.Seed,
		Size:        l.Grid.Size(),
		Rooms:       l.Stats.Rooms,
		Doors:       l.Stats.Doors,
		RepairDoors: l.Stats.RepairDoors,
		Enemies:     l.Stats.Enemies,
		Payload:     payload,
	}, nil
}

// Grid decodes the archived cell matrix.
func (r LayoutRecord) Grid() (*world.Grid, error) {
	return layoutio.DecodeRLE(r.Payload)
}

// Open creates or opens a SQLite database at the given path.
// It creates the parent directories if needed and runs migrations.
func Open(dbPath string) (*Store, error) {
	// Expand ~ to home directory
	if dbPath != "" && dbPath[0] == '~' {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("storage: cannot expand home directory: %w", err)
		}
		dbPath = filepath.Join(home, dbPath[1:])
	}

	dir := filepath.Dir(dbPath)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("storage: cannot create directory %s: %w", dir, err)
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot open database: %w", err)
	}

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("storage: cannot connect to database: %w", err)
	}

	store := &Store{db: db}
	if err := store.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("storage: migration failed: %w", err)
	}

	return store, nil
}

// migrate creates the database schema if it doesn't exist.
func (s *Store) migrate() error {
	schema := `
		CREATE TABLE IF NOT EXISTS layouts (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			seed INTEGER NOT NULL,
			size INTEGER NOT NULL,
			rooms INTEGER NOT NULL DEFAULT 0,
			doors INTEGER NOT NULL DEFAULT 0,
			repair_doors INTEGER NOT NULL DEFAULT 0,
			enemies INTEGER NOT NULL DEFAULT 0,
			payload BLOB NOT NULL,
			created_at DATETIME DEFAULT CURRENT_TIMESTAMP
		);
		CREATE INDEX IF NOT EXISTS idx_layouts_seed ON layouts(seed);
	`
	_, err := s.db.Exec(schema)
	return err
}

// Close closes the database connection.
func (s *Store) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

// SaveLayout archives a record and returns its ID.
func (s *Store) SaveLayout(rec LayoutRecord) (int64, error) {
	if len(rec.Payload) == 0 {
		return 0, errors.New("storage: layout payload is empty")
	}
	result, err := s.db.Exec(
		`INSERT INTO layouts (seed, size, rooms, doors, repair_doors, enemies, payload)
		 VALUES (?, ?, ?, ?, ?, ?, ?)`,
		rec.Seed, rec.Size, rec.Rooms, rec.Doors, rec.RepairDoors, rec.Enemies, rec.Payload,
	)
	if err != nil {
		return 0, fmt.Errorf("storage: cannot save layout: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("storage: cannot get inserted ID: %w", err)
	}
	return id, nil
}

const layoutColumns = `id, seed, size, rooms, doors, repair_doors, enemies, payload, created_at`

// Layout retrieves a record by ID. Returns nil if there is none.
func (s *Store) Layout(id int64) (*LayoutRecord, error) {
	row := s.db.QueryRow(`SELECT `+layoutColumns+` FROM layouts WHERE id = ?`, id)
	rec, err := scanLayout(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query layout: %w", err)
	}
	return &rec, nil
}

// LayoutsBySeed retrieves every record generated from seed, newest first.
func (s *Store) LayoutsBySeed(seed int64) ([]LayoutRecord, error) {
	rows, err := s.db.Query(`SELECT `+layoutColumns+` FROM layouts WHERE seed = ? ORDER BY id DESC`, seed)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query layouts: %w", err)
	}
	return collect(rows)
}

// Recent retrieves the most recently archived records.
func (s *Store) Recent(limit int) ([]LayoutRecord, error) {
	if limit <= 0 {
		limit = 20
	}
	rows, err := s.db.Query(`SELECT `+layoutColumns+` FROM layouts ORDER BY id DESC LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query layouts: %w", err)
	}
	return collect(rows)
}

// Count returns the number of archived layouts.
func (s *Store) Count() (int, error) {
	var n int
	if err := s.db.QueryRow(`SELECT COUNT(*) FROM layouts`).Scan(&n); err != nil {
		return 0, fmt.Errorf("storage: cannot count layouts: %w", err)
	}
	return n, nil
}

type scanner interface {
	Scan(dest ...any) error
}

func scanLayout(sc scanner) (LayoutRecord, error) {
	var rec LayoutRecord
	var createdAt any
	err := sc.Scan(&rec.ID, &rec.Seed, &rec.Size, &rec.Rooms, &rec.Doors,
		&rec.RepairDoors, &rec.Enemies, &rec.Payload, &createdAt)
	if err != nil {
		return rec, err
	}

	// Parse the datetime - handle both time.Time and string
	switch v := createdAt.(type) {
	case time.Time:
		rec.CreatedAt = v
	case string:
		if parsed, err := time.Parse("2006-01-02 15:04:05", v); err == nil {
			rec.CreatedAt = parsed
		}
	}
	return rec, nil
}

func collect(rows *sql.Rows) ([]LayoutRecord, error) {
	defer rows.Close()

	var records []LayoutRecord
	for rows.Next() {
		rec, err := scanLayout(rows)
		if err != nil {
			return nil, fmt.Errorf("storage: cannot scan row: %w", err)
		}
		records = append(records, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}
	return records, nil
}
