package ledger_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/louisbranch/saasify/internal/ledger"
	"github.com/louisbranch/saasify/internal/ledger/ledgertest"
)

func TestMemoryStoreContract(t *testing.T) {
	t.Parallel()

	ledgertest.RunStoreContract(t, func(t *testing.T, ttl time.Duration) ledger.Store {
		return ledger.NewMemoryStore(ttl)
	})
}

func TestNormalizeStampsCreatedAt(t *testing.T) {
	t.Parallel()

	now := time.Date(2026, 1, 2, 3, 4, 5, 0, time.FixedZone("x", 3600))
	record, err := ledger.Normalize(ledger.Record{SessionID: "ps", VisitorID: "v"}, now)
	require.NoError(t, err)
	require.True(t, record.CreatedAt.Equal(now))
	require.Equal(t, time.UTC, record.CreatedAt.Location())
}

func TestExpired(t *testing.T) {
	t.Parallel()

	now := time.Now()
	record := ledger.Record{CreatedAt: now.Add(-2 * time.Hour)}
	require.True(t, ledger.Expired(record, time.Hour, now))
	require.False(t, ledger.Expired(record, 3*time.Hour, now))
	require.False(t, ledger.Expired(record, -1, now))
}

func TestMemoryStoreKeepsNewestAsLatest(t *testing.T) {
	t.Parallel()

	store := ledger.NewMemoryStore(time.Hour)
	ctx := context.Background()
	now := time.Now()

	require.NoError(t, store.Put(ctx, ledger.Record{SessionID: "ps_new", VisitorID: "v", CreatedAt: now}))
	require.NoError(t, store.Put(ctx, ledger.Record{SessionID: "ps_older", VisitorID: "v", CreatedAt: now.Add(-time.Minute)}))

	latest, ok, err := store.Latest(ctx, "v")
	require.NoError(t, err)
	require.True(t, ok)
	require.Equal(t, "ps_new", latest.SessionID)

	_, ok, err = store.Get(ctx, "ps_older")
	require.NoError(t, err)
	require.True(t, ok)
}
