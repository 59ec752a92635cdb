package payload

import (
	"context"

	redis "github.com/redis/go-redis/v9"
	"github.com/vmihailenco/msgpack/v5"

	"github.com/KirkDiggler/dex-api/internal/errors"
	"github.com/KirkDiggler/dex-api/internal/pkg/clock"
	redisclient "github.com/KirkDiggler/dex-api/internal/redis"
)

const (
	errQueryEmpty = "query cannot be empty"
)

// Config holds the configuration for the Redis repository
type Config struct {
	Client    redisclient.Client
	Clock     clock.Clock
	KeyPrefix string
}

// Validate ensures all required dependencies are provided
func (c *Config) Validate() error {
	if c.Client == nil {
		return errors.InvalidArgument("redis client is required")
	}
	if c.Clock == nil {
		c.Clock = clock.New()
	}
	if c.KeyPrefix == "" {
		c.KeyPrefix = DefaultKeyPrefix
	}
	return nil
}

type redisRepository struct {
	client redisclient.Client
	clock  clock.Clock
	prefix string
}

// NewRedis creates a Redis-backed payload repository. Snapshots are
// msgpack-encoded.
func NewRedis(cfg *Config) (Repository, error) {
	if cfg == nil {
		return nil, errors.InvalidArgument("config is required")
	}
	if err := cfg.Validate(); err != nil {
		return nil, errors.Wrap(err, "invalid config")
	}

	return &redisRepository{
		client: cfg.Client,
		clock:  cfg.Clock,
		prefix: cfg.KeyPrefix,
	}, nil
}

// Ensure redisRepository implements Repository
var _ Repository = (*redisRepository)(nil)

// Store writes the snapshot under its query key and the latest key in one
// transaction.
func (r *redisRepository) Store(ctx context.Context, input StoreInput) (*StoreOutput, error) {
	query := NormalizeQuery(input.Query)
	if query == "" {
		return nil, errors.InvalidArgument(errQueryEmpty)
	}

	snapshot := &Snapshot{
		Query:    query,
		Results:  cloneResults(input.Results),
		StoredAt: r.clock.Now().UTC(),
	}

	blob, err := msgpack.Marshal(snapshot)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to encode snapshot for %q", query)
	}

	_, err = r.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.Set(ctx, queryKey(r.prefix, query), blob, input.TTL)
		pipe.Set(ctx, queryKey(r.prefix, ""), blob, input.TTL)
		return nil
	})
	if err != nil {
		return nil, errors.WrapWithCode(err, errors.CodeUnavailable, "failed to store snapshot in Redis")
	}

	return &StoreOutput{Snapshot: snapshot}, nil
}

// Get returns the snapshot for input.Query, or the latest one when empty
func (r *redisRepository) Get(ctx context.Context, input GetInput) (*GetOutput, error) {
	query := NormalizeQuery(input.Query)

	blob, err := r.client.Get(ctx, queryKey(r.prefix, query)).Bytes()
	if err != nil {
		if err == redisclient.Nil {
			return nil, errors.NotFoundf("no snapshot stored for %q", query)
		}
		return nil, errors.WrapWithCode(err, errors.CodeUnavailable, "failed to get snapshot from Redis")
	}

	var snapshot Snapshot
	if err := msgpack.Unmarshal(blob, &snapshot); err != nil {
		return nil, errors.WrapWithCode(err, errors.CodeDataLoss, "failed to decode snapshot")
	}

	return &GetOutput{Snapshot: &snapshot}, nil
}
