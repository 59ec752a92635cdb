package payload_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/KirkDiggler/dex-api/internal/entities/catalog"
	"github.com/KirkDiggler/dex-api/internal/errors"
	"github.com/KirkDiggler/dex-api/internal/pkg/clock"
	"github.com/KirkDiggler/dex-api/internal/repositories/payload"
	"github.com/KirkDiggler/dex-api/internal/testutils"
)

func TestInMemoryRepository(t *testing.T) {
	ctx := context.Background()
	clk := clock.NewManual(time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC))
	repo := payload.NewInMemory(clk)

	pikachu := testutils.CreateTestPokemon(25, "皮卡丘", "Pikachu")
	_, err := repo.Store(ctx, payload.StoreInput{
		Query:   "Pikachu",
		Results: []*catalog.Pokemon{pikachu},
		TTL:     time.Minute,
	})
	require.NoError(t, err)

	t.Run("stored copy is isolated from the caller", func(t *testing.T) {
		pikachu.Types[0].Name = "mutated"

		got, err := repo.Get(ctx, payload.GetInput{Query: "pikachu"})
		require.NoError(t, err)
		assert.Equal(t, "electric", got.Snapshot.Results[0].Types[0].Name)

		got.Snapshot.Results[0].Names.Local = "changed"
		again, err := repo.Get(ctx, payload.GetInput{Query: "pikachu"})
		require.NoError(t, err)
		assert.Equal(t, "皮卡丘", again.Snapshot.Results[0].Names.Local)
	})

	t.Run("latest", func(t *testing.T) {
		got, err := repo.Get(ctx, payload.GetInput{})
		require.NoError(t, err)
		assert.Equal(t, "pikachu", got.Snapshot.Query)
	})

	t.Run("expires", func(t *testing.T) {
		clk.Advance(2 * time.Minute)
		_, err := repo.Get(ctx, payload.GetInput{Query: "pikachu"})
		assert.True(t, errors.IsNotFound(err))
	})

	t.Run("empty query rejected", func(t *testing.T) {
		_, err := repo.Store(ctx, payload.StoreInput{})
		assert.True(t, errors.IsInvalidArgument(err))
	})
}
