// Package export writes batch results to a SQLite snapshot file so the
// computed occupancy and incident lists can be inspected with ordinary SQL
// tooling. Snapshots are per-run output only; the engine never reads them
// back.
package export

import (
	"context"
	"database/sql"
	"fmt"

	_ "modernc.org/sqlite"

	"github.com/example/agenda/internal/engine"
)

const schema = `
CREATE TABLE IF NOT EXISTS runs (
	run_id     TEXT PRIMARY KEY,
	started_at TEXT NOT NULL,
	accepted   INTEGER NOT NULL,
	rejected   INTEGER NOT NULL,
	incidents  INTEGER NOT NULL
);
CREATE TABLE IF NOT EXISTS occupancy (
	run_id   TEXT NOT NULL,
	room     TEXT NOT NULL,
	date     TEXT NOT NULL,
	slot     TEXT NOT NULL,
	activity TEXT NOT NULL,
	PRIMARY KEY (run_id, room, date, slot)
);
CREATE TABLE IF NOT EXISTS incidents (
	run_id   TEXT NOT NULL,
	position INTEGER NOT NULL,
	category TEXT NOT NULL,
	line     INTEGER NOT NULL,
	message  TEXT NOT NULL,
	PRIMARY KEY (run_id, position)
);
`

// Snapshot manages the SQLite file batch results are written into.
type Snapshot struct {
	db *sql.DB
}

// Open connects to the snapshot database for the given DSN.
func Open(dsn string) (*Snapshot, error) {
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("export: open snapshot: %w", err)
	}
	return &Snapshot{db: db}, nil
}

// Close releases the underlying database handle.
func (s *Snapshot) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

// Migrate creates the snapshot tables if they do not exist.
func (s *Snapshot) Migrate(ctx context.Context) error {
	if _, err := s.db.ExecContext(ctx, schema); err != nil {
		return fmt.Errorf("export: apply schema: %w", err)
	}
	return nil
}

// WriteBatch records one batch result inside a single transaction. A failed
// write rolls back so the snapshot never holds a partial run.
func (s *Snapshot) WriteBatch(ctx context.Context, result engine.BatchResult) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("export: begin transaction: %w", err)
	}

	if err := writeBatchTx(ctx, tx, result); err != nil {
		if rbErr := tx.Rollback(); rbErr != nil {
			return fmt.Errorf("export: write failed (rollback error: %v): %w", rbErr, err)
		}
		return err
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("export: commit snapshot: %w", err)
	}
	return nil
}

func writeBatchTx(ctx context.Context, tx *sql.Tx, result engine.BatchResult) error {
	_, err := tx.ExecContext(ctx,
		`INSERT INTO runs (run_id, started_at, accepted, rejected, incidents) VALUES (?, ?, ?, ?, ?)`,
		result.RunID,
		result.StartedAt.UTC().Format("2006-01-02T15:04:05Z"),
		len(result.Accepted),
		len(result.Rejected),
		len(result.Incidents),
	)
	if err != nil {
		return fmt.Errorf("export: insert run: %w", err)
	}

	occStmt, err := tx.PrepareContext(ctx,
		`INSERT INTO occupancy (run_id, room, date, slot, activity) VALUES (?, ?, ?, ?, ?)`)
	if err != nil {
		return fmt.Errorf("export: prepare occupancy insert: %w", err)
	}
	defer occStmt.Close()

	occupancy := result.Occupancy
	for _, room := range occupancy.Rooms() {
		for _, date := range occupancy.Dates(room) {
			for _, slot := range occupancy.Slots(room, date) {
				activity, _ := occupancy.Activity(room, date, slot)
				if _, err := occStmt.ExecContext(ctx, result.RunID, room, date, slot.Label(), activity); err != nil {
					return fmt.Errorf("export: insert occupancy cell: %w", err)
				}
			}
		}
	}

	incStmt, err := tx.PrepareContext(ctx,
		`INSERT INTO incidents (run_id, position, category, line, message) VALUES (?, ?, ?, ?, ?)`)
	if err != nil {
		return fmt.Errorf("export: prepare incident insert: %w", err)
	}
	defer incStmt.Close()

	for i, incident := range result.Incidents {
		if _, err := incStmt.ExecContext(ctx, result.RunID, i, string(incident.Category), incident.Line, incident.Message()); err != nil {
			return fmt.Errorf("export: insert incident: %w", err)
		}
	}

	return nil
}
