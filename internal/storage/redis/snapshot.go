// Package redis caches live encounter snapshots in Redis so a restarted combat
// service can adopt them.
package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/redis/go-redis/v9"
	"golang.org/x/sync/errgroup"

	"github.com/cory-johannsen/geoquest/internal/config"
	"github.com/cory-johannsen/geoquest/internal/game/encounter"
)

// ErrSnapshotNotFound is returned when no snapshot is cached under an ID, including
// one that expired.
var ErrSnapshotNotFound = errors.New("snapshot not found")

// loadConcurrency bounds the parallel GETs issued by LoadAll.
const loadConcurrency = 8

// SnapshotStore stores one JSON snapshot per encounter with a TTL, plus an index set
// of the IDs it has written.
type SnapshotStore struct {
	client redis.UniversalClient
	prefix string
	ttl    time.Duration
}

// NewClient opens a Redis client from cfg and verifies it answers PING.
//
// Postcondition: Returns a connected client or a non-nil error.
func NewClient(ctx context.Context, cfg config.RedisConfig) (*redis.Client, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	})
	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("pinging redis at %s: %w", cfg.Addr, err)
	}
	return client, nil
}

// NewSnapshotStore creates a store writing keys under prefix that expire after ttl.
//
// Precondition: client must be non-nil; ttl > 0.
func NewSnapshotStore(client redis.UniversalClient, prefix string, ttl time.Duration) *SnapshotStore {
	return &SnapshotStore{client: client, prefix: prefix, ttl: ttl}
}

func (s *SnapshotStore) key(id string) string { return s.prefix + id }

func (s *SnapshotStore) indexKey() string { return s.prefix + "index" }

// Save writes snap and refreshes its TTL.
//
// Precondition: snap.ID must be non-empty.
func (s *SnapshotStore) Save(ctx context.Context, snap encounter.Snapshot) error {
	if snap.ID == "" {
		return errors.New("snapshot has no id")
	}
	data, err := json.Marshal(snap)
	if err != nil {
		return fmt.Errorf("failed to marshal snapshot %s: %w", snap.ID, err)
	}

	pipe := s.client.Pipeline()
	pipe.Set(ctx, s.key(snap.ID), string(data), s.ttl)
	pipe.SAdd(ctx, s.indexKey(), snap.ID)
	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("failed to save snapshot %s: %w", snap.ID, err)
	}
	return nil
}

// Load returns the snapshot cached under id.
//
// Postcondition: Returns ErrSnapshotNotFound when the key is absent.
func (s *SnapshotStore) Load(ctx context.Context, id string) (encounter.Snapshot, error) {
	data, err := s.client.Get(ctx, s.key(id)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return encounter.Snapshot{}, ErrSnapshotNotFound
		}
		return encounter.Snapshot{}, fmt.Errorf("failed to get snapshot %s: %w", id, err)
	}

	var snap encounter.Snapshot
	if err := json.Unmarshal(data, &snap); err != nil {
		return encounter.Snapshot{}, fmt.Errorf("failed to unmarshal snapshot %s: %w", id, err)
	}
	return snap, nil
}

// Delete removes the snapshot for id. Deleting an absent ID is not an error.
func (s *SnapshotStore) Delete(ctx context.Context, id string) error {
	pipe := s.client.Pipeline()
	pipe.Del(ctx, s.key(id))
	pipe.SRem(ctx, s.indexKey(), id)
	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("failed to delete snapshot %s: %w", id, err)
	}
	return nil
}

// LoadAll returns every unexpired snapshot ordered by ID. Index entries whose
// snapshot has expired are pruned.
func (s *SnapshotStore) LoadAll(ctx context.Context) ([]encounter.Snapshot, error) {
	ids, err := s.client.SMembers(ctx, s.indexKey()).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to list snapshots: %w", err)
	}

	var (
		mu    sync.Mutex
		out   = make([]encounter.Snapshot, 0, len(ids))
		stale []string
	)
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(loadConcurrency)
	for _, id := range ids {
		g.Go(func() error {
			snap, err := s.Load(gctx, id)
			mu.Lock()
			defer mu.Unlock()
			switch {
			case errors.Is(err, ErrSnapshotNotFound):
				stale = append(stale, id)
			case err != nil:
				return err
			default:
				out = append(out, snap)
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	if len(stale) > 0 {
		sort.Strings(stale)
		members := make([]any, len(stale))
		for i, id := range stale {
			members[i] = id
		}
		if err := s.client.SRem(ctx, s.indexKey(), members...).Err(); err != nil {
			return nil, fmt.Errorf("failed to prune snapshot index: %w", err)
		}
	}

	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}
