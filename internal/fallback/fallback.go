// Package fallback implements the two-stage persistence strategy: try the
// primary store, and on any failure use a secondary path that is expected
// to always succeed.
package fallback

import (
	"context"
	"errors"
	"fmt"

	"restaurant-ordering/internal/domain"

	"go.uber.org/zap"
)

// Result is the uniform outcome of Run. Err is only set when the secondary
// path failed as well, which callers treat as fatal.
type Result[T any] struct {
	Value    T
	Degraded bool
	Err      error
}

// Run calls primary and, if it returns an error, secondary. The primary
// error is logged and not returned, except domain.ErrNotFound which is an
// answer from a healthy store and is passed through without falling back.
func Run[T any](ctx context.Context, logger *zap.Logger, op string, primary, secondary func(context.Context) (T, error)) Result[T] {
	v, err := primary(ctx)
	if err == nil {
		return Result[T]{Value: v}
	}
	if errors.Is(err, domain.ErrNotFound) {
		var zero T
		return Result[T]{Value: zero, Err: err}
	}
	if logger != nil {
		logger.Warn("primary store failed, using fallback", zap.String("op", op), zap.Error(err))
	}

	v, err = secondary(ctx)
	if err != nil {
		var zero T
		return Result[T]{Value: zero, Degraded: true, Err: fmt.Errorf("%s: fallback: %w", op, err)}
	}
	return Result[T]{Value: v, Degraded: true}
}

// Exec is Run for operations without a value.
func Exec(ctx context.Context, logger *zap.Logger, op string, primary, secondary func(context.Context) error) Result[struct{}] {
	wrap := func(fn func(context.Context) error) func(context.Context) (struct{}, error) {
		return func(ctx context.Context) (struct{}, error) {
			return struct{}{}, fn(ctx)
		}
	}
	return Run(ctx, logger, op, wrap(primary), wrap(secondary))
}
