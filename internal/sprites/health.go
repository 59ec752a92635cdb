package sprites

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/KirkDiggler/dex-api/internal/entities/catalog"
	"github.com/KirkDiggler/dex-api/internal/errors"
	"github.com/KirkDiggler/dex-api/internal/pkg/clock"
)

// Defaults for HealthConfig
const (
	DefaultHealthTimeout       = 3 * time.Second
	DefaultHealthMaxConcurrent = 5
)

// HTTPDoer is the subset of *http.Client the checker needs.
type HTTPDoer interface {
	Do(req *http.Request) (*http.Response, error)
}

// HealthConfig configures a HealthChecker
type HealthConfig struct {
	HTTPClient    HTTPDoer
	Timeout       time.Duration
	MaxConcurrent int
	Clock         clock.Clock
	Logger        *slog.Logger
}

// HealthResult is the outcome of probing one URL. Status is 0 when the
// request never completed.
type HealthResult struct {
	URL       string             `json:"url"`
	Status    int                `json:"status"`
	OK        bool               `json:"ok"`
	Error     string             `json:"error,omitempty"`
	CheckedAt time.Time          `json:"checked_at"`
	Tier      catalog.Tier       `json:"tier,omitempty"`
	Type      catalog.SourceType `json:"type,omitempty"`
}

// HealthChecker probes sprite URLs with HEAD requests.
type HealthChecker struct {
	client        HTTPDoer
	timeout       time.Duration
	maxConcurrent int
	clock         clock.Clock
	logger        *slog.Logger
}

// NewHealthChecker applies defaults to cfg.
func NewHealthChecker(cfg *HealthConfig) *HealthChecker {
	h := &HealthChecker{
		client:        http.DefaultClient,
		timeout:       DefaultHealthTimeout,
		maxConcurrent: DefaultHealthMaxConcurrent,
		clock:         clock.New(),
		logger:        slog.Default(),
	}
	if cfg == nil {
		return h
	}
	if cfg.HTTPClient != nil {
		h.client = cfg.HTTPClient
	}
	if cfg.Timeout > 0 {
		h.timeout = cfg.Timeout
	}
	if cfg.MaxConcurrent > 0 {
		h.maxConcurrent = cfg.MaxConcurrent
	}
	if cfg.Clock != nil {
		h.clock = cfg.Clock
	}
	if cfg.Logger != nil {
		h.logger = cfg.Logger
	}
	return h
}

// Check probes every candidate, at most MaxConcurrent at a time, and
// returns results in candidate order. Unreachable URLs are reported, not
// returned as errors; only ctx cancellation fails the call.
func (h *HealthChecker) Check(ctx context.Context, candidates []catalog.SpriteCandidate) ([]HealthResult, error) {
	if len(candidates) == 0 {
		return nil, errors.InvalidArgument("no sprite candidates to check")
	}

	results := make([]HealthResult, len(candidates))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(h.maxConcurrent)

	for i, c := range candidates {
		g.Go(func() error {
			results[i] = h.probe(gctx, c)
			return nil
		})
	}
	_ = g.Wait()

	if err := ctx.Err(); err != nil {
		return results, errors.WrapWithCode(err, errors.CodeCanceled, "sprite health check interrupted")
	}

	healthy := 0
	for _, r := range results {
		if r.OK {
			healthy++
		}
	}
	h.logger.DebugContext(ctx, "sprite health check complete",
		"checked", len(results),
		"healthy", healthy)

	return results, nil
}

func (h *HealthChecker) probe(ctx context.Context, c catalog.SpriteCandidate) HealthResult {
	res := HealthResult{URL: c.URL, Tier: c.Tier, Type: c.Type}

	ctx, cancel := context.WithTimeout(ctx, h.timeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodHead, c.URL, nil)
	if err != nil {
		res.Error = err.Error()
		res.CheckedAt = h.clock.Now()
		return res
	}
	req.Header.Set("Cache-Control", "no-cache")

	resp, err := h.client.Do(req)
	res.CheckedAt = h.clock.Now()
	if err != nil {
		res.Error = err.Error()
		return res
	}
	defer func() { _ = resp.Body.Close() }()

	res.Status = resp.StatusCode
	res.OK = resp.StatusCode >= 200 && resp.StatusCode < 300
	return res
}
