package database

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
)

func createTestEntry(t *testing.T, userID int64, site string) uuid.UUID {
	t.Helper()

	entry, err := testStore.CreateEntry(context.Background(), CreateEntryParams{
		ID:       uuid.New(),
		UserID:   userID,
		Site:     site,
		Username: "someuser",
		Password: "somepassword",
	})
	require.NoError(t, err)
	require.NotNil(t, entry)
	return entry.ID
}

func TestListEntries(t *testing.T) {
	user := createRandomUser(t)

	entries, err := testStore.ListEntries(context.Background(), user.ID)
	require.NoError(t, err)
	require.Empty(t, entries)
	require.NotNil(t, entries, "an empty list should not be nil")

	createTestEntry(t, user.ID, "https://a.example.com")
	createTestEntry(t, user.ID, "https://b.example.com")

	entries, err = testStore.ListEntries(context.Background(), user.ID)
	require.NoError(t, err)
	require.Len(t, entries, 2)
	require.Equal(t, "https://a.example.com", entries[0].Site)
}

func TestUpdateEntry_OwnerScoped(t *testing.T) {
	owner := createRandomUser(t)
	other := createRandomUser(t)

	entryID := createTestEntry(t, owner.ID, "https://example.com")

	// Inny użytkownik nie może zmienić cudzego wpisu, nawet znając jego id.
	updated, err := testStore.UpdateEntry(context.Background(), UpdateEntryParams{
		ID:       entryID,
		UserID:   other.ID,
		Site:     "https://evil.example.com",
		Username: "attacker",
		Password: "pwned",
	})
	require.NoError(t, err)
	require.False(t, updated)

	updated, err = testStore.UpdateEntry(context.Background(), UpdateEntryParams{
		ID:       entryID,
		UserID:   owner.ID,
		Site:     "https://new.example.com",
		Username: "newuser",
		Password: "newpassword",
	})
	require.NoError(t, err)
	require.True(t, updated)

	entries, err := testStore.ListEntries(context.Background(), owner.ID)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	require.Equal(t, "https://new.example.com", entries[0].Site)
	require.Equal(t, "newpassword", entries[0].Password)
}

func TestDeleteEntry_OwnerScoped(t *testing.T) {
	owner := createRandomUser(t)
	other := createRandomUser(t)

	entryID := createTestEntry(t, owner.ID, "https://example.com")

	deleted, err := testStore.DeleteEntry(context.Background(), entryID, other.ID)
	require.NoError(t, err)
	require.False(t, deleted)

	deleted, err = testStore.DeleteEntry(context.Background(), entryID, owner.ID)
	require.NoError(t, err)
	require.True(t, deleted)

	entries, err := testStore.ListEntries(context.Background(), owner.ID)
	require.NoError(t, err)
	require.Empty(t, entries)
}

func TestLogEventAndGetEventsSince(t *testing.T) {
	user := createRandomUser(t)

	err := testStore.LogEvent(context.Background(), user.ID, "entry_created", map[string]string{"id": "abc"})
	require.NoError(t, err)
	err = testStore.LogEvent(context.Background(), user.ID, "entry_deleted", map[string]string{"id": "abc"})
	require.NoError(t, err)

	events, err := testStore.GetEventsSince(context.Background(), user.ID, 0)
	require.NoError(t, err)
	require.Len(t, events, 2)
	require.Equal(t, "entry_created", events[0].EventType)
	require.Equal(t, "entry_deleted", events[1].EventType)

	newer, err := testStore.GetEventsSince(context.Background(), user.ID, events[0].ID)
	require.NoError(t, err)
	require.Len(t, newer, 1)
	require.Equal(t, "entry_deleted", newer[0].EventType)
}
