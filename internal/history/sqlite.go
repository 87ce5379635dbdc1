package history

import (
	"context"
	"fmt"

	"github.com/evanbray/lltf-core/internal/infrastructure/database"
)

const (
	defaultHistoryLimit = 50
	maxHistoryLimit     = 200
)

// schema creates the moves table. Kept minimal on purpose: one table,
// no migrations machinery for a single-table store.
const schema = `
CREATE TABLE IF NOT EXISTS moves (
    id            INTEGER PRIMARY KEY AUTOINCREMENT,
    system_name   TEXT    NOT NULL,
    wavelength_nm REAL    NOT NULL,
    grating       INTEGER NOT NULL,
    simulated     INTEGER NOT NULL DEFAULT 0,
    source        TEXT    NOT NULL,
    created_at    TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP
);
CREATE INDEX IF NOT EXISTS idx_moves_system_created
    ON moves(system_name, created_at DESC);
`

// SQLiteRepository implements Repository using SQLite.
type SQLiteRepository struct {
	db *database.DB
}

// NewSQLiteRepository creates a move history repository and ensures its
// schema exists.
//
// Parameters:
//   - db: Open SQLite connection used for queries
//
// Returns:
//   - *SQLiteRepository: Repository instance ready for use
//   - error: If schema creation fails
func NewSQLiteRepository(db *database.DB) (*SQLiteRepository, error) {
	if _, err := db.Exec(schema); err != nil {
		return nil, fmt.Errorf("creating history schema: %w", err)
	}
	return &SQLiteRepository{db: db}, nil
}

// Record inserts a new move history entry.
//
// Parameters:
//   - ctx: Context for cancellation and timeout
//   - move: Move to persist (ID/CreatedAt assigned by the store)
//
// Returns:
//   - error: nil on success, otherwise the underlying database error
func (r *SQLiteRepository) Record(ctx context.Context, move Move) error {
	if move.SystemName == "" {
		return fmt.Errorf("system name is required")
	}
	if move.Source == "" {
		move.Source = SourceLibrary
	}

	_, err := r.db.ExecContext(ctx,
		"INSERT INTO moves (system_name, wavelength_nm, grating, simulated, source) VALUES (?, ?, ?, ?, ?)",
		move.SystemName,
		move.WavelengthNm,
		move.Grating,
		move.Simulated,
		move.Source,
	)
	if err != nil {
		return fmt.Errorf("inserting move: %w", err)
	}

	return nil
}

// Recent returns recent moves for a system, ordered newest first.
//
// Parameters:
//   - ctx: Context for cancellation and timeout
//   - systemName: Filter system identifier
//   - limit: Maximum entries to return (default 50, max 200)
//
// Returns:
//   - []Move: Moves ordered by created_at DESC
//   - error: nil on success, otherwise the underlying query error
func (r *SQLiteRepository) Recent(ctx context.Context, systemName string, limit int) ([]Move, error) {
	if systemName == "" {
		return nil, fmt.Errorf("system name is required")
	}
	if limit <= 0 {
		limit = defaultHistoryLimit
	}
	if limit > maxHistoryLimit {
		limit = maxHistoryLimit
	}

	rows, err := r.db.QueryContext(ctx,
		`SELECT id, system_name, wavelength_nm, grating, simulated, source, created_at
		 FROM moves
		 WHERE system_name = ?
		 ORDER BY created_at DESC, id DESC
		 LIMIT ?`,
		systemName,
		limit,
	)
	if err != nil {
		return nil, fmt.Errorf("querying moves: %w", err)
	}
	defer rows.Close() //nolint:errcheck // Read-only cursor

	var moves []Move
	for rows.Next() {
		var m Move
		if err := rows.Scan(&m.ID, &m.SystemName, &m.WavelengthNm, &m.Grating, &m.Simulated, &m.Source, &m.CreatedAt); err != nil {
			return nil, fmt.Errorf("scanning move: %w", err)
		}
		moves = append(moves, m)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating moves: %w", err)
	}

	return moves, nil
}
