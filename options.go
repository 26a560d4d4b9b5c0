package formation

import (
	"log/slog"

	"github.com/aretw0/formation/pkg/domain"
	"github.com/aretw0/formation/pkg/samples"
)

// Option defines a functional option for configuring a Formation.
type Option func(*Formation)

// WithLogger sets a custom structured logger.
func WithLogger(logger *slog.Logger) Option {
	return func(f *Formation) {
		if logger != nil {
			f.logger = logger
		}
	}
}

// WithLifecycleHooks registers observability hooks.
func WithLifecycleHooks(hooks domain.LifecycleHooks) Option {
	return func(f *Formation) {
		f.hooks = hooks
	}
}

// WithSamples attaches a shared sample corpus.
func WithSamples(ds *samples.DataSet) Option {
	return func(f *Formation) {
		f.samples = ds
	}
}
