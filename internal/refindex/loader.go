package refindex

import (
	"context"
	"log/slog"
	"sync"
)

// LoaderConfig configures a Loader
type LoaderConfig struct {
	// Dataset overrides the embedded reference dataset when non-nil.
	Dataset []byte
	Logger  *slog.Logger
}

// Loader builds the index on first use. Concurrent callers block on the
// same construction and all observe the same *Index.
type Loader struct {
	once    sync.Once
	dataset []byte
	logger  *slog.Logger
	index   *Index
}

// NewLoader never fails; a nil config loads the embedded dataset.
func NewLoader(cfg *LoaderConfig) *Loader {
	l := &Loader{dataset: defaultDataset, logger: slog.Default()}
	if cfg != nil {
		if cfg.Dataset != nil {
			l.dataset = cfg.Dataset
		}
		if cfg.Logger != nil {
			l.logger = cfg.Logger
		}
	}
	return l
}

// Load returns the memoized index, building it on the first call.
func (l *Loader) Load(ctx context.Context) *Index {
	l.once.Do(func() {
		l.logger.InfoContext(ctx, "loading reference dataset", "bytes", len(l.dataset))
		l.index = build(l.dataset, l.logger)
	})
	return l.index
}
