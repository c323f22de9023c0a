package script

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/signadot/jsvar/jsv"
)

// Caller calls function values, attributing failures of compiled
// expressions to their source.
type Caller struct {
	Log *slog.Logger
}

// NewCaller returns a Caller logging to log, which may be nil.
func NewCaller(log *slog.Logger) *Caller {
	return &Caller{Log: log}
}

func (c *Caller) Call(ctx context.Context, fn, this jsv.Value, args ...jsv.Value) (jsv.Value, error) {
	res, err := jsv.Invoke(ctx, fn, this, args...)
	if err == nil {
		return res, nil
	}
	f, ok := fn.Callable().(*Func)
	if !ok {
		return jsv.Value{}, err
	}
	if c.Log != nil {
		c.Log.Debug("script failed", "src", f.src, "error", err)
	}
	return jsv.Value{}, fmt.Errorf("script %q: %w", f.src, err)
}
