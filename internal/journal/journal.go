// Package journal persists an append-only record of decisions to SQLite.
// It journals decisions, not learner profiles; profile persistence stays
// with external collaborators. Wiring it up is the caller's choice; the
// engine's hot path never depends on it.
package journal

import (
	"database/sql"
	"fmt"
	"time"

	_ "modernc.org/sqlite"
)

// #region schema
const schema = `
CREATE TABLE IF NOT EXISTS decision_log (
	cycle_id     TEXT PRIMARY KEY,
	entity_id    TEXT NOT NULL,
	phase        TEXT NOT NULL,
	action       TEXT NOT NULL,
	confidence   REAL NOT NULL,
	reasoning    TEXT,
	integration  REAL NOT NULL,
	noise        REAL NOT NULL,
	state_before REAL NOT NULL,
	state_after  REAL NOT NULL,
	elapsed_us   INTEGER NOT NULL,
	created_at   TEXT NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_decision_log_entity
	ON decision_log (entity_id, created_at DESC);
`
// #endregion schema

// #region entry

// Entry is one journaled decision cycle.
type Entry struct {
	CycleID     string
	EntityID    string
	Phase       string
	Action      string
	Confidence  float64
	Reasoning   string
	Integration float64
	Noise       float64
	StateBefore float64
	StateAfter  float64
	Elapsed     time.Duration
	CreatedAt   time.Time
}

// #endregion entry

// #region journal

// Journal wraps the SQLite decision log.
type Journal struct {
	db *sql.DB
}

// Open opens (creating if needed) a journal database and runs migrations.
func Open(dbPath string) (*Journal, error) {
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open journal: %w", err)
	}
	if _, err := db.Exec("PRAGMA journal_mode=WAL"); err != nil {
		return nil, fmt.Errorf("pragma: %w", err)
	}
	if _, err := db.Exec(schema); err != nil {
		return nil, fmt.Errorf("migrate: %w", err)
	}
	return &Journal{db: db}, nil
}

// Close closes the underlying database connection.
func (j *Journal) Close() error {
	return j.db.Close()
}

// #endregion journal

// #region record

// Record appends one entry. A zero CreatedAt is stamped with now.
func (j *Journal) Record(e Entry) error {
	if e.CreatedAt.IsZero() {
		e.CreatedAt = time.Now().UTC()
	}
	_, err := j.db.Exec(
		`INSERT INTO decision_log
		 (cycle_id, entity_id, phase, action, confidence, reasoning, integration, noise, state_before, state_after, elapsed_us, created_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		e.CycleID, e.EntityID, e.Phase, e.Action, e.Confidence,
		nullIfEmpty(e.Reasoning), e.Integration, e.Noise,
		e.StateBefore, e.StateAfter, e.Elapsed.Microseconds(),
		e.CreatedAt.Format(time.RFC3339Nano),
	)
	if err != nil {
		return fmt.Errorf("record decision: %w", err)
	}
	return nil
}

// #endregion record

// #region queries

// Recent returns the most recent entries across all entities.
func (j *Journal) Recent(limit int) ([]Entry, error) {
	return j.query(
		`SELECT cycle_id, entity_id, phase, action, confidence, reasoning, integration, noise, state_before, state_after, elapsed_us, created_at
		 FROM decision_log ORDER BY created_at DESC LIMIT ?`, limit)
}

// ForEntity returns the most recent entries for one entity.
func (j *Journal) ForEntity(entityID string, limit int) ([]Entry, error) {
	return j.query(
		`SELECT cycle_id, entity_id, phase, action, confidence, reasoning, integration, noise, state_before, state_after, elapsed_us, created_at
		 FROM decision_log WHERE entity_id = ? ORDER BY created_at DESC LIMIT ?`, entityID, limit)
}

func (j *Journal) query(q string, args ...any) ([]Entry, error) {
	rows, err := j.db.Query(q, args...)
	if err != nil {
		return nil, fmt.Errorf("query journal: %w", err)
	}
	defer rows.Close()

	var entries []Entry
	for rows.Next() {
		var e Entry
		var reasoning sql.NullString
		var elapsedUs int64
		var createdStr string
		if err := rows.Scan(
			&e.CycleID, &e.EntityID, &e.Phase, &e.Action, &e.Confidence,
			&reasoning, &e.Integration, &e.Noise,
			&e.StateBefore, &e.StateAfter, &elapsedUs, &createdStr,
		); err != nil {
			return nil, fmt.Errorf("scan row: %w", err)
		}
		if reasoning.Valid {
			e.Reasoning = reasoning.String
		}
		e.Elapsed = time.Duration(elapsedUs) * time.Microsecond
		e.CreatedAt, _ = time.Parse(time.RFC3339Nano, createdStr)
		entries = append(entries, e)
	}
	return entries, rows.Err()
}

// #endregion queries

// #region helpers

func nullIfEmpty(s string) any {
	if s == "" {
		return nil
	}
	return s
}

// #endregion helpers
