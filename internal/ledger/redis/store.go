// Package redis stores ledger records in Redis so several web instances can
// share a visitor's checkout history.
package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	goredis "github.com/redis/go-redis/v9"

	"github.com/louisbranch/saasify/internal/ledger"
)

const (
	sessionKeyPrefix = "saasify:session:"
	visitorKeyPrefix = "saasify:visitor:"
)

// Store is a Redis-backed ledger.Store. Both the record and the visitor
// pointer carry the ledger TTL, so Redis performs expiry. A negative TTL
// keeps records forever.
type Store struct {
	client goredis.UniversalClient
	ttl    time.Duration
	now    func() time.Time
}

// Open connects to the Redis server at rawURL and verifies it with PING.
func Open(ctx context.Context, rawURL string, ttl time.Duration) (*Store, error) {
	rawURL = strings.TrimSpace(rawURL)
	if rawURL == "" {
		return nil, fmt.Errorf("redis url is required")
	}
	opts, err := goredis.ParseURL(rawURL)
	if err != nil {
		return nil, fmt.Errorf("parse redis url: %w", err)
	}
	client := goredis.NewClient(opts)
	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("ping redis: %w", err)
	}
	return New(client, ttl), nil
}

// New wraps an existing client. A zero ttl uses ledger.DefaultTTL.
func New(client goredis.UniversalClient, ttl time.Duration) *Store {
	if ttl == 0 {
		ttl = ledger.DefaultTTL
	}
	return &Store{client: client, ttl: ttl, now: time.Now}
}

// Close closes the Redis client.
func (s *Store) Close() error {
	if s == nil || s.client == nil {
		return nil
	}
	return s.client.Close()
}

// Put writes the record and points the visitor at it in one transaction.
func (s *Store) Put(ctx context.Context, record ledger.Record) error {
	record, err := ledger.Normalize(record, s.now())
	if err != nil {
		return err
	}
	expiration, live := s.expiration(record)
	if !live {
		return nil
	}
	payload, err := json.Marshal(record)
	if err != nil {
		return fmt.Errorf("encode ledger record: %w", err)
	}
	_, err = s.client.TxPipelined(ctx, func(pipe goredis.Pipeliner) error {
		pipe.Set(ctx, sessionKeyPrefix+record.SessionID, payload, expiration)
		pipe.Set(ctx, visitorKeyPrefix+record.VisitorID, record.SessionID, expiration)
		return nil
	})
	if err != nil {
		return fmt.Errorf("put ledger record: %w", err)
	}
	return nil
}

// Latest follows the visitor pointer to its record.
func (s *Store) Latest(ctx context.Context, visitorID string) (ledger.Record, bool, error) {
	visitorID = strings.TrimSpace(visitorID)
	if visitorID == "" {
		return ledger.Record{}, false, nil
	}
	sessionID, err := s.client.Get(ctx, visitorKeyPrefix+visitorID).Result()
	if errors.Is(err, goredis.Nil) {
		return ledger.Record{}, false, nil
	}
	if err != nil {
		return ledger.Record{}, false, fmt.Errorf("get visitor pointer: %w", err)
	}
	return s.Get(ctx, sessionID)
}

// Get loads one record by session id.
func (s *Store) Get(ctx context.Context, sessionID string) (ledger.Record, bool, error) {
	sessionID = strings.TrimSpace(sessionID)
	if sessionID == "" {
		return ledger.Record{}, false, nil
	}
	payload, err := s.client.Get(ctx, sessionKeyPrefix+sessionID).Bytes()
	if errors.Is(err, goredis.Nil) {
		return ledger.Record{}, false, nil
	}
	if err != nil {
		return ledger.Record{}, false, fmt.Errorf("get ledger record: %w", err)
	}
	var record ledger.Record
	if err := json.Unmarshal(payload, &record); err != nil {
		return ledger.Record{}, false, fmt.Errorf("decode ledger record: %w", err)
	}
	if ledger.Expired(record, s.ttl, s.now()) {
		return ledger.Record{}, false, nil
	}
	return record, true, nil
}

// expiration is the key lifetime measured from the record's creation time.
// A non-positive ttl writes keys without expiry; a record already past its
// ttl is not live and is not written.
func (s *Store) expiration(record ledger.Record) (time.Duration, bool) {
	if s.ttl <= 0 {
		return 0, true
	}
	remaining := record.CreatedAt.Add(s.ttl).Sub(s.now())
	return remaining, remaining > 0
}
