package session

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestMemoryStoreLifecycle(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore()

	sid, err := store.Create(ctx, AdminSession{AdminID: 1, Name: "Admin", Email: "admin@mail.com"})
	require.NoError(t, err)
	require.NotEmpty(t, sid)

	got, err := store.Get(ctx, sid)
	require.NoError(t, err)
	require.Equal(t, int64(1), got.AdminID)
	require.Equal(t, "Admin", got.Name)

	err = store.Refresh(ctx, sid, AdminSession{AdminID: 1, Name: "Renamed", Email: "new@mail.com"})
	require.NoError(t, err)

	got, err = store.Get(ctx, sid)
	require.NoError(t, err)
	require.Equal(t, "Renamed", got.Name)
	require.Equal(t, "new@mail.com", got.Email)

	require.NoError(t, store.Delete(ctx, sid))
	_, err = store.Get(ctx, sid)
	require.ErrorIs(t, err, ErrNotFound)
}

func TestMemoryStoreUnknownSession(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore()

	_, err := store.Get(ctx, "missing")
	require.ErrorIs(t, err, ErrNotFound)

	err = store.Refresh(ctx, "missing", AdminSession{})
	require.ErrorIs(t, err, ErrNotFound)
}
