// Package ledgertest holds the behavior every ledger backend must share.
package ledgertest

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/louisbranch/saasify/internal/ledger"
	apperrors "github.com/louisbranch/saasify/internal/platform/errors"
)

// RunStoreContract exercises fresh stores produced by open. A zero ttl asks
// for the backend default.
func RunStoreContract(t *testing.T, open func(t *testing.T, ttl time.Duration) ledger.Store) {
	t.Helper()

	t.Run("put then latest and get", func(t *testing.T) {
		store := open(t, 0)
		ctx := context.Background()
		created := time.Now().UTC().Add(-time.Minute).Truncate(time.Millisecond)

		require.NoError(t, store.Put(ctx, ledger.Record{
			SessionID:   " ps_1 ",
			VisitorID:   "visitor-a",
			PlanID:      "growth",
			Email:       "buyer@example.com",
			AmountMinor: 7900,
			Currency:    "usd",
			CreatedAt:   created,
		}))

		latest, ok, err := store.Latest(ctx, "visitor-a")
		require.NoError(t, err)
		require.True(t, ok)
		require.Equal(t, "ps_1", latest.SessionID)
		require.Equal(t, "growth", latest.PlanID)
		require.Equal(t, "buyer@example.com", latest.Email)
		require.EqualValues(t, 7900, latest.AmountMinor)
		require.Equal(t, "USD", latest.Currency)
		require.True(t, created.Equal(latest.CreatedAt), "created_at %s != %s", latest.CreatedAt, created)

		got, ok, err := store.Get(ctx, "ps_1")
		require.NoError(t, err)
		require.True(t, ok)
		require.Equal(t, "visitor-a", got.VisitorID)
	})

	t.Run("latest is per visitor", func(t *testing.T) {
		store := open(t, 0)
		ctx := context.Background()
		base := time.Now().UTC().Add(-time.Minute)

		require.NoError(t, store.Put(ctx, ledger.Record{SessionID: "ps_a1", VisitorID: "a", CreatedAt: base}))
		require.NoError(t, store.Put(ctx, ledger.Record{SessionID: "ps_b1", VisitorID: "b", CreatedAt: base.Add(time.Second)}))
		require.NoError(t, store.Put(ctx, ledger.Record{SessionID: "ps_a2", VisitorID: "a", CreatedAt: base.Add(2 * time.Second)}))

		latestA, ok, err := store.Latest(ctx, "a")
		require.NoError(t, err)
		require.True(t, ok)
		require.Equal(t, "ps_a2", latestA.SessionID)

		latestB, ok, err := store.Latest(ctx, "b")
		require.NoError(t, err)
		require.True(t, ok)
		require.Equal(t, "ps_b1", latestB.SessionID)
	})

	t.Run("missing records", func(t *testing.T) {
		store := open(t, 0)
		ctx := context.Background()

		_, ok, err := store.Latest(ctx, "nobody")
		require.NoError(t, err)
		require.False(t, ok)

		_, ok, err = store.Get(ctx, "ps_missing")
		require.NoError(t, err)
		require.False(t, ok)
	})

	t.Run("put validates keys", func(t *testing.T) {
		store := open(t, 0)
		ctx := context.Background()

		err := store.Put(ctx, ledger.Record{VisitorID: "a"})
		require.True(t, apperrors.Is(err, apperrors.KindInvalidInput))
		err = store.Put(ctx, ledger.Record{SessionID: "ps_1", VisitorID: " "})
		require.True(t, apperrors.Is(err, apperrors.KindInvalidInput))
	})

	t.Run("expired records are hidden", func(t *testing.T) {
		store := open(t, 0)
		ctx := context.Background()

		require.NoError(t, store.Put(ctx, ledger.Record{
			SessionID: "ps_old",
			VisitorID: "stale",
			CreatedAt: time.Now().UTC().Add(-ledger.DefaultTTL - time.Hour),
		}))
		_, ok, err := store.Latest(ctx, "stale")
		require.NoError(t, err)
		require.False(t, ok)
		_, ok, err = store.Get(ctx, "ps_old")
		require.NoError(t, err)
		require.False(t, ok)
	})

	t.Run("negative ttl never expires", func(t *testing.T) {
		store := open(t, -time.Second)
		ctx := context.Background()

		require.NoError(t, store.Put(ctx, ledger.Record{
			SessionID: "ps_kept",
			VisitorID: "keeper",
			CreatedAt: time.Now().UTC().Add(-30 * 24 * time.Hour),
		}))
		latest, ok, err := store.Latest(ctx, "keeper")
		require.NoError(t, err)
		require.True(t, ok)
		require.Equal(t, "ps_kept", latest.SessionID)
		_, ok, err = store.Get(ctx, "ps_kept")
		require.NoError(t, err)
		require.True(t, ok)
	})

	t.Run("concurrent puts", func(t *testing.T) {
		store := open(t, 0)
		ctx := context.Background()

		var wg sync.WaitGroup
		for i := 0; i < 16; i++ {
			wg.Add(1)
			go func(i int) {
				defer wg.Done()
				visitor := "visitor-" + string(rune('a'+i))
				_ = store.Put(ctx, ledger.Record{SessionID: "ps_" + visitor, VisitorID: visitor})
			}(i)
		}
		wg.Wait()

		for i := 0; i < 16; i++ {
			visitor := "visitor-" + string(rune('a'+i))
			record, ok, err := store.Latest(ctx, visitor)
			require.NoError(t, err)
			require.True(t, ok, visitor)
			require.Equal(t, "ps_"+visitor, record.SessionID)
		}
	})
}
