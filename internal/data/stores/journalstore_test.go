package stores

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/marinops/fleetcheck/internal/data/db"
)

func newJournal(t *testing.T) *JournalStore {
	t.Helper()
	database, err := db.Open(t.TempDir())
	require.NoError(t, err)
	t.Cleanup(func() { _ = database.Close() })
	return NewJournalStore(database)
}

func TestJournalStore_AppendAndList(t *testing.T) {
	store := newJournal(t)
	ctx := context.Background()
	date := time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)

	err := store.Append(ctx, JournalEntry{
		Inspector:   "A. Petrov",
		Entity:      "Murman Trawl Fleet",
		Ship:        "Okean",
		InspectedOn: date,
		Violations:  2,
		Artifact:    "inspection_01-03-2024.pdf",
		CreatedAt:   time.Now().Add(-time.Minute),
	})
	require.NoError(t, err)

	err = store.Append(ctx, JournalEntry{
		Inspector:   "I. Sidorov",
		Entity:      "Arctic Catch",
		Ship:        "Polyarnik",
		InspectedOn: date,
		Violations:  1,
		Artifact:    "inspection_01-03-2024.pdf",
	})
	require.NoError(t, err)

	entries, err := store.List(ctx, 0)
	require.NoError(t, err)
	require.Len(t, entries, 2)

	// Newest first.
	assert.Equal(t, "I. Sidorov", entries[0].Inspector)
	assert.Equal(t, "A. Petrov", entries[1].Inspector)
	assert.NotEmpty(t, entries[0].ID)
	assert.NotEqual(t, entries[0].ID, entries[1].ID)
	assert.Equal(t, date, entries[1].InspectedOn)
	assert.Equal(t, 2, entries[1].Violations)

	limited, err := store.List(ctx, 1)
	require.NoError(t, err)
	require.Len(t, limited, 1)
	assert.Equal(t, "I. Sidorov", limited[0].Inspector)
}

func TestJournalStore_ListEmpty(t *testing.T) {
	store := newJournal(t)

	entries, err := store.List(context.Background(), 10)
	require.NoError(t, err)
	assert.Empty(t, entries)
}
