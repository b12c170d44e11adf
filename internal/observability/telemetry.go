// Package observability starts tracing and profiling for the binaries and
// stops them in reverse order on shutdown.
package observability

import (
	"context"
	"errors"
	"fmt"

	"github.com/riskibarqy/fantasy-points/internal/config"
	"github.com/riskibarqy/fantasy-points/internal/platform/logging"
)

type component struct {
	name string
	stop func(context.Context) error
}

// Telemetry owns whatever Start switched on. The zero value is a no-op.
type Telemetry struct {
	logger     *logging.Logger
	components []component
}

// Start brings up Uptrace tracing, the Pyroscope profiler and the pprof
// listener according to cfg. On failure anything already started is stopped.
func Start(ctx context.Context, cfg config.Config, logger *logging.Logger) (*Telemetry, error) {
	if logger == nil {
		logger = logging.Default()
	}
	t := &Telemetry{logger: logger}

	starters := []struct {
		name  string
		start func(config.Config, *logging.Logger) (func(context.Context) error, error)
	}{
		{name: "uptrace", start: startTracing},
		{name: "pyroscope", start: startProfiler},
		{name: "pprof", start: startPprof},
	}
	for _, s := range starters {
		stop, err := s.start(cfg, logger)
		if err != nil {
			_ = t.Shutdown(ctx)
			return nil, fmt.Errorf("start %s: %w", s.name, err)
		}
		if stop != nil {
			t.components = append(t.components, component{name: s.name, stop: stop})
		}
	}
	return t, nil
}

// Enabled lists the running components in start order.
func (t *Telemetry) Enabled() []string {
	if t == nil {
		return nil
	}
	names := make([]string, 0, len(t.components))
	for _, c := range t.components {
		names = append(names, c.name)
	}
	return names
}

// Shutdown stops every component, last started first, and joins the errors.
func (t *Telemetry) Shutdown(ctx context.Context) error {
	if t == nil {
		return nil
	}
	var errs []error
	for i := len(t.components) - 1; i >= 0; i-- {
		c := t.components[i]
		if err := c.stop(ctx); err != nil {
			errs = append(errs, fmt.Errorf("stop %s: %w", c.name, err))
			continue
		}
		t.logger.Info("telemetry stopped", "component", c.name)
	}
	t.components = nil
	return errors.Join(errs...)
}
