package repository

import (
	"context"
	"database/sql"
	"time"
)

// JournalEntry is one recorded coordinator event.
type JournalEntry struct {
	ID        string
	Kind      string
	Slot      string
	Detail    string
	CreatedAt time.Time
}

// JournalRepo handles the coordinator event journal.
type JournalRepo struct {
	db *sql.DB
}

func NewJournalRepo(db *sql.DB) *JournalRepo {
	return &JournalRepo{db: db}
}

func (r *JournalRepo) Append(ctx context.Context, e JournalEntry) error {
	_, err := r.db.ExecContext(ctx, `
	INSERT INTO journal(id, kind, slot, detail, created_at)
	VALUES (?, ?, ?, ?, ?);
	`, e.ID, e.Kind, e.Slot, e.Detail, e.CreatedAt.UTC())
	return err
}

// List returns the most recent entries, newest first.
func (r *JournalRepo) List(ctx context.Context, limit int) ([]JournalEntry, error) {
	rows, err := r.db.QueryContext(ctx, `
	SELECT id, kind, slot, detail, created_at FROM journal
	ORDER BY created_at DESC, id LIMIT ?`, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var out []JournalEntry
	for rows.Next() {
		var e JournalEntry
		if err := rows.Scan(&e.ID, &e.Kind, &e.Slot, &e.Detail, &e.CreatedAt); err != nil {
			return nil, err
		}
		out = append(out, e)
	}
	return out, rows.Err()
}

// Prune keeps the newest keep entries and deletes the rest.
func (r *JournalRepo) Prune(ctx context.Context, keep int) error {
	_, err := r.db.ExecContext(ctx, `
	DELETE FROM journal WHERE id NOT IN (
		SELECT id FROM journal ORDER BY created_at DESC, id LIMIT ?
	);`, keep)
	return err
}
