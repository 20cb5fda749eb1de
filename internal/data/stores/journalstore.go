package stores

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/marinops/fleetcheck/internal/core/inspection"
	"github.com/marinops/fleetcheck/internal/data/db"
)

// JournalEntry is one finalized inspection as recorded in the journal.
type JournalEntry struct {
	ID          string
	Inspector   string
	Entity      string
	Ship        string
	InspectedOn time.Time
	Violations  int
	Artifact    string
	CreatedAt   time.Time
}

// JournalStore persists finalized inspections in SQLite.
type JournalStore struct {
	db *db.DB
}

// NewJournalStore creates a SQLite-backed journal store.
func NewJournalStore(db *db.DB) *JournalStore {
	return &JournalStore{db: db}
}

// Append records a finalized inspection. An empty ID is assigned a new UUID.
func (s *JournalStore) Append(ctx context.Context, e JournalEntry) error {
	if e.ID == "" {
		e.ID = uuid.NewString()
	}
	if e.CreatedAt.IsZero() {
		e.CreatedAt = time.Now()
	}

	_, err := s.db.Conn().ExecContext(ctx, `
		INSERT INTO journal (id, inspector, entity, ship, inspected_on, violations, artifact, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		e.ID, e.Inspector, e.Entity, e.Ship,
		e.InspectedOn.Format(inspection.DateLayout),
		e.Violations, e.Artifact, e.CreatedAt.UnixNano(),
	)
	if err != nil {
		return fmt.Errorf("append journal entry: %w", err)
	}
	return nil
}

// List returns the most recent entries, newest first. limit <= 0 means no
// limit.
func (s *JournalStore) List(ctx context.Context, limit int) ([]JournalEntry, error) {
	if limit <= 0 {
		limit = -1 // SQLite treats a negative LIMIT as unlimited
	}

	rows, err := s.db.Conn().QueryContext(ctx, `
		SELECT id, inspector, entity, ship, inspected_on, violations, artifact, created_at
		FROM journal ORDER BY created_at DESC LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("list journal entries: %w", err)
	}
	defer rows.Close()

	var entries []JournalEntry
	for rows.Next() {
		var (
			e         JournalEntry
			dateText  string
			createdAt int64
		)
		if err := rows.Scan(&e.ID, &e.Inspector, &e.Entity, &e.Ship, &dateText, &e.Violations, &e.Artifact, &createdAt); err != nil {
			return nil, fmt.Errorf("scan journal entry: %w", err)
		}
		if date, ok := inspection.ParseDate(dateText); ok {
			e.InspectedOn = date
		}
		e.CreatedAt = time.Unix(0, createdAt)
		entries = append(entries, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate journal entries: %w", err)
	}

	return entries, nil
}
