// Package redis stores learning paths in Redis and provides the distributed save lock.
//
// A path is one JSON document under "<prefix>path:<id>", listed in the "<prefix>paths"
// sorted set. A save is written in a single MULTI/EXEC under WATCH of the path key,
// so concurrent writers never interleave and a failed save changes nothing.
package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"time"

	backend "github.com/redis/go-redis/v9"

	"github.com/SELab-2/Dwengo-4-sub000/internal/reconcile"
	"github.com/SELab-2/Dwengo-4-sub000/pkg/domain"
)

// maxRetries bounds optimistic-lock retries of one save.
const maxRetries = 5

// Store implements ports.PathStore using Redis.
type Store struct {
	client backend.UniversalClient
	prefix string
	now    func() time.Time
}

type Option func(*Store)

// WithPrefix sets the key prefix.
func WithPrefix(prefix string) Option {
	return func(s *Store) {
		s.prefix = prefix
	}
}

// New creates a new Redis store with options.
func New(address, password string, db int, opts ...Option) *Store {
	rdb := backend.NewClient(&backend.Options{
		Addr:     address,
		Password: password,
		DB:       db,
	})
	return NewFromClient(rdb, opts...)
}

// NewFromClient creates a new Redis store from an existing client.
func NewFromClient(client backend.UniversalClient, opts ...Option) *Store {
	store := &Store{
		client: client,
		prefix: "dwengo:",
		now:    time.Now,
	}

	for _, opt := range opts {
		opt(store)
	}

	return store
}

// Client exposes the underlying connection, e.g. to share it with a Locker.
func (s *Store) Client() backend.UniversalClient {
	return s.client
}

func (s *Store) key(id int64) string {
	return s.prefix + "path:" + strconv.FormatInt(id, 10)
}

func (s *Store) indexKey() string {
	return s.prefix + "paths"
}

func (s *Store) pathSeqKey() string {
	return s.prefix + "seq:path"
}

func (s *Store) nodeSeqKey() string {
	return s.prefix + "seq:node"
}

// SaveOrCreatePath applies the request atomically.
func (s *Store) SaveOrCreatePath(ctx context.Context, req domain.SaveRequest) (int64, error) {
	var id int64
	if req.PathID != nil {
		id = *req.PathID
	} else {
		next, err := s.client.Incr(ctx, s.pathSeqKey()).Result()
		if err != nil {
			return 0, fmt.Errorf("failed to allocate path id: %w", err)
		}
		id = next
	}
	key := s.key(id)

	txf := func(tx *backend.Tx) error {
		var existing *domain.Path
		if req.PathID != nil {
			p, err := s.load(ctx, tx, id)
			if err != nil {
				return err
			}
			existing = p
		}

		// Node ids come from INCR outside the transaction; a failed save only leaves gaps.
		path, err := reconcile.Apply(id, existing, req, func() (int64, error) {
			return tx.Incr(ctx, s.nodeSeqKey()).Result()
		})
		if err != nil {
			return err
		}
		path.UpdatedAt = s.now().UTC()
		data, err := json.Marshal(path)
		if err != nil {
			return fmt.Errorf("failed to marshal path: %w", err)
		}

		_, err = tx.TxPipelined(ctx, func(pipe backend.Pipeliner) error {
			pipe.Set(ctx, key, data, 0)
			pipe.ZAdd(ctx, s.indexKey(), backend.Z{Score: float64(id), Member: id})
			return nil
		})
		return err
	}

	for i := 0; i < maxRetries; i++ {
		err := s.client.Watch(ctx, txf, key)
		if err == nil {
			return id, nil
		}
		if errors.Is(err, backend.TxFailedErr) {
			continue
		}
		return 0, err
	}
	return 0, fmt.Errorf("path %d: concurrent modification, gave up after %d attempts", id, maxRetries)
}

func (s *Store) load(ctx context.Context, c backend.Cmdable, id int64) (*domain.Path, error) {
	val, err := c.Get(ctx, s.key(id)).Result()
	if err != nil {
		if err == backend.Nil {
			return nil, domain.ErrPathNotFound
		}
		return nil, fmt.Errorf("failed to get from redis: %w", err)
	}

	var p domain.Path
	if err := json.Unmarshal([]byte(val), &p); err != nil {
		return nil, fmt.Errorf("failed to unmarshal path %d: %w", id, err)
	}
	return &p, nil
}

// LoadPath retrieves a stored path.
func (s *Store) LoadPath(ctx context.Context, id int64) (*domain.Path, error) {
	return s.load(ctx, s.client, id)
}

// ListPaths reads the index and fetches every document in one MGET.
func (s *Store) ListPaths(ctx context.Context) ([]domain.PathSummary, error) {
	members, err := s.client.ZRange(ctx, s.indexKey(), 0, -1).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to read path index: %w", err)
	}
	if len(members) == 0 {
		return []domain.PathSummary{}, nil
	}

	keys := make([]string, len(members))
	for i, m := range members {
		id, err := strconv.ParseInt(m, 10, 64)
		if err != nil {
			return nil, fmt.Errorf("invalid path index member %q: %w", m, err)
		}
		keys[i] = s.key(id)
	}
	vals, err := s.client.MGet(ctx, keys...).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to get paths: %w", err)
	}

	out := make([]domain.PathSummary, 0, len(vals))
	for i, v := range vals {
		str, ok := v.(string)
		if !ok {
			continue // deleted between ZRANGE and MGET
		}
		var p domain.Path
		if err := json.Unmarshal([]byte(str), &p); err != nil {
			return nil, fmt.Errorf("failed to unmarshal %s: %w", keys[i], err)
		}
		out = append(out, p.Summary())
	}
	return out, nil
}

// raiseScript sets KEYS[1] to ARGV[1] unless it already holds a larger number.
var raiseScript = backend.NewScript(`
	local cur = tonumber(redis.call("get", KEYS[1]) or "0")
	if cur < tonumber(ARGV[1]) then
		redis.call("set", KEYS[1], ARGV[1])
	end
	return 0
`)

// Seed writes a prepared path under its own id and moves the id counters past it.
func (s *Store) Seed(ctx context.Context, p *domain.Path) error {
	maxNode := int64(0)
	for _, n := range p.Nodes {
		maxNode = max(maxNode, n.ID)
	}
	cp := p.Clone()
	if cp.UpdatedAt.IsZero() {
		cp.UpdatedAt = s.now().UTC()
	}
	data, err := json.Marshal(cp)
	if err != nil {
		return fmt.Errorf("failed to marshal path: %w", err)
	}

	if err := raiseScript.Run(ctx, s.client, []string{s.pathSeqKey()}, cp.ID).Err(); err != nil {
		return fmt.Errorf("failed to advance path counter: %w", err)
	}
	if err := raiseScript.Run(ctx, s.client, []string{s.nodeSeqKey()}, maxNode).Err(); err != nil {
		return fmt.Errorf("failed to advance node counter: %w", err)
	}
	_, err = s.client.TxPipelined(ctx, func(pipe backend.Pipeliner) error {
		pipe.Set(ctx, s.key(cp.ID), data, 0)
		pipe.ZAdd(ctx, s.indexKey(), backend.Z{Score: float64(cp.ID), Member: cp.ID})
		return nil
	})
	return err
}
