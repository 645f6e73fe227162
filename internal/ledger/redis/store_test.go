package redis

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	goredis "github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/require"

	"github.com/louisbranch/saasify/internal/ledger"
	"github.com/louisbranch/saasify/internal/ledger/ledgertest"
)

// newTestStore runs an in-process Redis and wraps a client for it.
func newTestStore(t *testing.T, ttl time.Duration) (*Store, *miniredis.Miniredis) {
	t.Helper()
	server := miniredis.RunT(t)
	store := New(goredis.NewClient(&goredis.Options{Addr: server.Addr()}), ttl)
	t.Cleanup(func() { _ = store.Close() })
	return store, server
}

func TestStoreContract(t *testing.T) {
	ledgertest.RunStoreContract(t, func(t *testing.T, ttl time.Duration) ledger.Store {
		store, _ := newTestStore(t, ttl)
		return store
	})
}

func TestPutSetsKeyTTL(t *testing.T) {
	store, server := newTestStore(t, 0)
	ctx := context.Background()

	require.NoError(t, store.Put(ctx, ledger.Record{SessionID: "ps_ttl", VisitorID: "visitor-ttl"}))

	ttl := server.TTL(sessionKeyPrefix + "ps_ttl")
	require.Positive(t, ttl)
	require.LessOrEqual(t, ttl, ledger.DefaultTTL)
	require.Positive(t, server.TTL(visitorKeyPrefix+"visitor-ttl"))

	server.FastForward(ledger.DefaultTTL + time.Second)
	_, ok, err := store.Latest(ctx, "visitor-ttl")
	require.NoError(t, err)
	require.False(t, ok)
}

func TestPutWithNegativeTTLWritesPersistentKeys(t *testing.T) {
	store, server := newTestStore(t, -time.Second)
	ctx := context.Background()

	require.NoError(t, store.Put(ctx, ledger.Record{SessionID: "ps_forever", VisitorID: "visitor-forever"}))

	require.True(t, server.Exists(sessionKeyPrefix+"ps_forever"))
	require.Zero(t, server.TTL(sessionKeyPrefix+"ps_forever"))
	require.Zero(t, server.TTL(visitorKeyPrefix+"visitor-forever"))
}

func TestGetReportsCorruptRecord(t *testing.T) {
	store, server := newTestStore(t, 0)
	require.NoError(t, server.Set(sessionKeyPrefix+"ps_bad", "{not json"))

	_, _, err := store.Get(context.Background(), "ps_bad")
	require.Error(t, err)
}

func TestOpen(t *testing.T) {
	server := miniredis.RunT(t)
	store, err := Open(context.Background(), "redis://"+server.Addr(), time.Hour)
	require.NoError(t, err)
	t.Cleanup(func() { _ = store.Close() })
	require.NoError(t, store.Put(context.Background(), ledger.Record{SessionID: "ps_open", VisitorID: "v"}))
}

func TestOpenRejectsBadURL(t *testing.T) {
	_, err := Open(context.Background(), "", 0)
	require.Error(t, err)

	_, err = Open(context.Background(), "http://not-redis", 0)
	require.Error(t, err)
}
