package repository

import (
	"context"
	"fmt"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/jask/dualinput/internal/database"
)

func newTestRepo(t *testing.T) *JournalRepo {
	t.Helper()
	dbPath := filepath.Join(t.TempDir(), "journal.db")
	migrations, err := filepath.Abs("../migrations")
	require.NoError(t, err)
	require.NoError(t, database.RunMigrations(dbPath, migrations))

	db, err := database.Open(dbPath)
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	return NewJournalRepo(db)
}

func TestJournalAppendAndList(t *testing.T) {
	t.Parallel()
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	repo := newTestRepo(t)

	base := database.Now()
	for i := 0; i < 3; i++ {
		require.NoError(t, repo.Append(ctx, JournalEntry{
			ID:        fmt.Sprintf("id-%d", i),
			Kind:      "focus",
			Slot:      "primary",
			Detail:    "auto-advance",
			CreatedAt: base.Add(time.Duration(i) * time.Second),
		}))
	}

	entries, err := repo.List(ctx, 2)
	require.NoError(t, err)
	require.Len(t, entries, 2)
	require.Equal(t, "id-2", entries[0].ID)
	require.Equal(t, "id-1", entries[1].ID)
	require.Equal(t, "focus", entries[0].Kind)
	require.Equal(t, "primary", entries[0].Slot)
}

func TestJournalPrune(t *testing.T) {
	t.Parallel()
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	repo := newTestRepo(t)

	base := database.Now()
	for i := 0; i < 5; i++ {
		require.NoError(t, repo.Append(ctx, JournalEntry{
			ID:        fmt.Sprintf("id-%d", i),
			Kind:      "clear",
			Slot:      "secondary",
			CreatedAt: base.Add(time.Duration(i) * time.Second),
		}))
	}

	require.NoError(t, repo.Prune(ctx, 2))
	entries, err := repo.List(ctx, 10)
	require.NoError(t, err)
	require.Len(t, entries, 2)
	require.Equal(t, "id-4", entries[0].ID)
}
