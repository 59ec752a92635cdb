package payload_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/KirkDiggler/dex-api/internal/entities/catalog"
	"github.com/KirkDiggler/dex-api/internal/errors"
	"github.com/KirkDiggler/dex-api/internal/repositories/payload"
	"github.com/KirkDiggler/dex-api/internal/testutils"
)

func TestPrune(t *testing.T) {
	ctx := context.Background()

	setup := func(t *testing.T) *payload.PruneInput {
		client, mr := testutils.CreateTestRedisClient(t)
		repo, err := payload.NewRedis(&payload.Config{Client: client})
		require.NoError(t, err)

		_, err = repo.Store(ctx, payload.StoreInput{
			Query:   "pikachu",
			Results: []*catalog.Pokemon{testutils.CreateTestPokemon(25, "皮卡丘", "Pikachu")},
		})
		require.NoError(t, err)
		require.NoError(t, mr.Set("dex:payload:query:broken", "\xc1"))
		require.NoError(t, mr.Set("other:key", "\xc1"))

		return &payload.PruneInput{Client: client}
	}

	t.Run("dry run reports without deleting", func(t *testing.T) {
		input := setup(t)
		input.DryRun = true

		out, err := payload.Prune(ctx, *input)
		require.NoError(t, err)
		assert.Equal(t, 3, out.Checked)
		assert.Equal(t, []string{"dex:payload:query:broken"}, out.Corrupt)
		assert.Zero(t, out.Deleted)

		exists, err := input.Client.Exists(ctx, "dex:payload:query:broken").Result()
		require.NoError(t, err)
		assert.EqualValues(t, 1, exists)
	})

	t.Run("deletes corrupt snapshots only", func(t *testing.T) {
		input := setup(t)

		out, err := payload.Prune(ctx, *input)
		require.NoError(t, err)
		assert.Equal(t, 1, out.Deleted)

		exists, err := input.Client.Exists(ctx, "dex:payload:query:broken", "dex:payload:query:pikachu", "other:key").Result()
		require.NoError(t, err)
		assert.EqualValues(t, 2, exists)
	})

	t.Run("client is required", func(t *testing.T) {
		_, err := payload.Prune(ctx, payload.PruneInput{})
		assert.True(t, errors.IsInvalidArgument(err))
	})
}
