package snapshot

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func setupSnapshotDB(t *testing.T) *SQLBackend {
	t.Helper()

	db, err := gorm.Open(sqlite.Open("file::memory:"), &gorm.Config{})
	require.NoError(t, err)
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	backend, err := NewSQLBackend(db)
	require.NoError(t, err)
	require.NoError(t, backend.Migrate(context.Background()))
	return backend
}

func TestSQLBackendGetMissing(t *testing.T) {
	backend := setupSnapshotDB(t)
	_, err := backend.Get(context.Background(), KeyProducts)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestSQLBackendUpsert(t *testing.T) {
	ctx := context.Background()
	backend := setupSnapshotDB(t)

	require.NoError(t, backend.Put(ctx, KeyOrders, []byte(`[{"id":"ORD-1"}]`)))
	require.NoError(t, backend.Put(ctx, KeyOrders, []byte(`[{"id":"ORD-2"}]`)))

	raw, err := backend.Get(ctx, KeyOrders)
	require.NoError(t, err)
	assert.JSONEq(t, `[{"id":"ORD-2"}]`, string(raw))
}

func TestSQLBackendThroughStore(t *testing.T) {
	ctx := context.Background()
	store, _ := newTestStore(t, setupSnapshotDB(t))

	require.NoError(t, store.SaveErr(ctx, SessionKey("s1", SessionCoins), int64(2100)))
	got := Load(ctx, store, SessionKey("s1", SessionCoins), int64(0))
	assert.Equal(t, int64(2100), got)

	other := Load(ctx, store, SessionKey("s2", SessionCoins), int64(500))
	assert.Equal(t, int64(500), other)
}
