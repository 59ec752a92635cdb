package sprites_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/KirkDiggler/dex-api/internal/entities/catalog"
	"github.com/KirkDiggler/dex-api/internal/errors"
	"github.com/KirkDiggler/dex-api/internal/pkg/clock"
	"github.com/KirkDiggler/dex-api/internal/sprites"
)

func TestHealthChecker(t *testing.T) {
	var inFlight, peak atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		n := inFlight.Add(1)
		defer inFlight.Add(-1)
		for {
			p := peak.Load()
			if n <= p || peak.CompareAndSwap(p, n) {
				break
			}
		}

		assert.Equal(t, http.MethodHead, r.Method)
		switch r.URL.Path {
		case "/ok.png":
			w.WriteHeader(http.StatusOK)
		case "/slow.png":
			select {
			case <-r.Context().Done():
			case <-time.After(time.Second):
			}
		default:
			w.WriteHeader(http.StatusNotFound)
		}
	}))
	defer srv.Close()

	now := time.Date(2025, 9, 2, 0, 0, 0, 0, time.UTC)
	checker := sprites.NewHealthChecker(&sprites.HealthConfig{
		HTTPClient:    srv.Client(),
		Timeout:       50 * time.Millisecond,
		MaxConcurrent: 2,
		Clock:         clock.NewManual(now),
	})

	candidates := []catalog.SpriteCandidate{
		{URL: srv.URL + "/ok.png", Tier: catalog.TierA, Type: catalog.SourceSprite},
		{URL: srv.URL + "/missing.png", Tier: catalog.TierC},
		{URL: srv.URL + "/slow.png"},
		{URL: srv.URL + "/ok.png?again"},
	}

	results, err := checker.Check(context.Background(), candidates)
	require.NoError(t, err)
	require.Len(t, results, 4)

	assert.True(t, results[0].OK)
	assert.Equal(t, http.StatusOK, results[0].Status)
	assert.Equal(t, catalog.TierA, results[0].Tier)
	assert.Equal(t, now, results[0].CheckedAt)

	assert.False(t, results[1].OK)
	assert.Equal(t, http.StatusNotFound, results[1].Status)

	assert.False(t, results[2].OK)
	assert.Equal(t, 0, results[2].Status)
	assert.NotEmpty(t, results[2].Error)

	assert.True(t, results[3].OK)
	assert.LessOrEqual(t, peak.Load(), int32(2))
}

func TestHealthCheckerRejectsEmptyInput(t *testing.T) {
	_, err := sprites.NewHealthChecker(nil).Check(context.Background(), nil)
	require.Error(t, err)
	assert.True(t, errors.IsInvalidArgument(err))
}

func TestHealthCheckerCanceled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := sprites.NewHealthChecker(nil).Check(ctx, []catalog.SpriteCandidate{{URL: "http://127.0.0.1:1/x.png"}})
	require.Error(t, err)
	assert.Equal(t, errors.CodeCanceled, errors.GetCode(err))
}
