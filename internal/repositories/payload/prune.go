package payload

import (
	"context"

	"github.com/vmihailenco/msgpack/v5"

	"github.com/KirkDiggler/dex-api/internal/errors"
	redisclient "github.com/KirkDiggler/dex-api/internal/redis"
)

// PruneInput selects which stored snapshots to check
type PruneInput struct {
	Client    redisclient.Client
	KeyPrefix string
	// DryRun reports corrupt keys without deleting them
	DryRun bool
}

// PruneOutput reports what was scanned
type PruneOutput struct {
	Checked int
	Corrupt []string
	Deleted int
}

// Prune scans every snapshot under the prefix and deletes the ones that no
// longer decode.
func Prune(ctx context.Context, input PruneInput) (*PruneOutput, error) {
	if input.Client == nil {
		return nil, errors.InvalidArgument("redis client is required")
	}
	prefix := input.KeyPrefix
	if prefix == "" {
		prefix = DefaultKeyPrefix
	}

	out := &PruneOutput{Corrupt: []string{}}
	iter := input.Client.Scan(ctx, 0, prefix+":*", 0).Iterator()
	for iter.Next(ctx) {
		key := iter.Val()
		out.Checked++

		blob, err := input.Client.Get(ctx, key).Bytes()
		if err != nil {
			if err == redisclient.Nil {
				continue
			}
			return nil, errors.WrapWithCodef(err, errors.CodeUnavailable, "failed to read %s", key)
		}

		var snapshot Snapshot
		if err := msgpack.Unmarshal(blob, &snapshot); err != nil {
			out.Corrupt = append(out.Corrupt, key)
		}
	}
	if err := iter.Err(); err != nil {
		return nil, errors.WrapWithCode(err, errors.CodeUnavailable, "snapshot scan failed")
	}

	if input.DryRun || len(out.Corrupt) == 0 {
		return out, nil
	}

	deleted, err := input.Client.Del(ctx, out.Corrupt...).Result()
	if err != nil {
		return nil, errors.WrapWithCode(err, errors.CodeUnavailable, "failed to delete corrupt snapshots")
	}
	out.Deleted = int(deleted)
	return out, nil
}
