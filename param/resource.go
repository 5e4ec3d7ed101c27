package param

import (
	"context"
	"io"
)

// Handle is one live resource instance. Acquire yields the "as"-target
// handed to the wrapped body; Release is called exactly once afterwards
// with the error that is pending at that point, or nil.
//
// A true suppressed return asks for the pending error to be swallowed; the
// request is honored only when the originating ResourceSpec opted in via
// Suppress. An error returned by Release itself replaces the pending error.
type Handle interface {
	Acquire(ctx context.Context) (any, error)
	Release(ctx context.Context, cause error) (suppressed bool, err error)
}

// Factory builds a fresh Handle. It is invoked once per generated-unit
// invocation; handles are never shared or cached across invocations.
type Factory func(ctx context.Context, args ...any) (Handle, error)

// ResourceSpec is a deferred resource acquisition: a factory, the
// arguments it will be called with, and the exception-suppression opt-in.
type ResourceSpec struct {
	Factory  Factory
	Args     []any
	Suppress bool
}

// NewResource creates a spec for factory called with args. Suppression is
// off by default; a resource that wants to swallow errors from the wrapped
// body must opt in via WithSuppress.
func NewResource(factory Factory, args ...any) ResourceSpec {
	return ResourceSpec{Factory: factory, Args: args}
}

// WithSuppress returns a copy of the spec with the suppression opt-in set.
func (s ResourceSpec) WithSuppress(allow bool) ResourceSpec {
	s.Suppress = allow
	return s
}

// FuncHandle adapts two closures into a Handle. A nil ReleaseFn releases
// as a no-op.
type FuncHandle struct {
	AcquireFn func(ctx context.Context) (any, error)
	ReleaseFn func(ctx context.Context, cause error) (bool, error)
}

func (h FuncHandle) Acquire(ctx context.Context) (any, error) {
	if h.AcquireFn == nil {
		return nil, nil
	}
	return h.AcquireFn(ctx)
}

func (h FuncHandle) Release(ctx context.Context, cause error) (bool, error) {
	if h.ReleaseFn == nil {
		return false, nil
	}
	return h.ReleaseFn(ctx, cause)
}

// CloserHandle exposes an already-open io.Closer as a Handle: Acquire
// yields the closer itself, Release closes it and never suppresses.
type CloserHandle struct {
	Target io.Closer
}

func (h CloserHandle) Acquire(ctx context.Context) (any, error) {
	return h.Target, nil
}

func (h CloserHandle) Release(ctx context.Context, cause error) (bool, error) {
	return false, h.Target.Close()
}
