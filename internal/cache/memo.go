package cache

import (
	"context"
	"fmt"
)

// Source tells where a WithCache value came from.
type Source int

const (
	// SourceComputed means compute succeeded and the artifact was written.
	SourceComputed Source = iota
	// SourceCache means a valid artifact short-circuited compute.
	SourceCache
	// SourceDegraded means compute failed and the degraded value was written.
	SourceDegraded
	// SourceCancelled means the context ended during compute. The degraded
	// value is returned and nothing is written.
	SourceCancelled
)

// String returns the lower-case name of the source.
func (s Source) String() string {
	switch s {
	case SourceComputed:
		return "computed"
	case SourceCache:
		return "cache"
	case SourceDegraded:
		return "degraded"
	case SourceCancelled:
		return "cancelled"
	default:
		return "unknown"
	}
}

// WithCache returns the artifact for key, computing and persisting it when it
// is absent or refresh is set.
//
// When compute fails, degrade turns the error into a value that is persisted
// in place of the computed one, and the compute error is returned alongside
// it with SourceDegraded. The returned value is always usable.
// When ctx ends during compute, the result is not persisted and the context
// error is returned with SourceCancelled, so a later call computes again.
// The only other error is a failure to persist the artifact.
func WithCache[T any](
	ctx context.Context,
	s *Store,
	key Key,
	refresh bool,
	compute func(ctx context.Context) (T, error),
	degrade func(err error) T,
) (T, Source, error) {
	if !refresh {
		var cached T
		if ok, err := s.Load(key, &cached); err == nil && ok {
			return cached, SourceCache, nil
		}
	}

	unlock := s.locks.Lock(key.String())
	defer unlock()

	// Another worker may have written the artifact while we waited.
	if !refresh {
		var cached T
		if ok, err := s.Load(key, &cached); err == nil && ok {
			return cached, SourceCache, nil
		}
	}

	value, err := compute(ctx)
	if ctxErr := ctx.Err(); ctxErr != nil {
		if err == nil {
			err = ctxErr
		}
		return degrade(err), SourceCancelled, err
	}

	source := SourceComputed
	if err != nil {
		value = degrade(err)
		source = SourceDegraded
	}

	if saveErr := s.Save(key, value); saveErr != nil {
		if err != nil {
			return value, source, fmt.Errorf("%w (and %w)", err, saveErr)
		}
		return value, source, saveErr
	}
	return value, source, err
}
