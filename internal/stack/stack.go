// Package stack composes a record's resource specs into one scoped
// acquisition around a wrapped call.
//
// The composition is an explicit ownership stack: handles are pushed as
// they acquire (outer to inner) and popped for release in reverse. A
// release sees the error pending at that point and may ask to suppress it,
// but the request is honored only for specs that opted in — silently
// swallowing a failure is dangerous around test code, so it is opt-in per
// resource.
package stack

import (
	"context"

	"github.com/vk/paramgridgo/param"
)

// Stack is a reusable recipe; every Run (or Acquire/Release pair) calls
// each spec's factory afresh. Nothing is cached between invocations.
type Stack struct {
	specs []param.ResourceSpec
}

// New builds a stack over specs in acquisition (outer to inner) order.
func New(specs []param.ResourceSpec) *Stack {
	return &Stack{specs: append([]param.ResourceSpec(nil), specs...)}
}

// Acquired is one live acquisition: the handles that entered successfully
// and their "as"-targets, in acquisition order.
type Acquired struct {
	specs   []param.ResourceSpec
	handles []param.Handle
	targets []any
}

// Targets returns the "as"-targets in acquisition (outer to inner) order.
func (a *Acquired) Targets() []any {
	return append([]any(nil), a.targets...)
}

// Run acquires every resource, invokes body with the collected targets,
// and releases in reverse order no matter how body fares.
//
// If an acquisition failure is swallowed by an outer resource's opted-in
// release, there is nothing left to run the body with; Run then returns
// nil without invoking it.
func (s *Stack) Run(ctx context.Context, body func(targets []any) error) error {
	acq, err := s.Acquire(ctx)
	if err != nil {
		return err
	}
	if acq == nil {
		return nil
	}
	return acq.Release(ctx, body(acq.targets))
}

// Acquire enters every resource in list order. When resource k fails to
// acquire, resources k-1..0 are released in reverse with that failure
// pending; resource k itself never finished entering, so it is not
// released. Acquire returns (nil, nil) when the unwind suppressed the
// failure.
func (s *Stack) Acquire(ctx context.Context) (*Acquired, error) {
	acq := &Acquired{}
	for _, spec := range s.specs {
		handle, err := spec.Factory(ctx, spec.Args...)
		if err == nil {
			var target any
			target, err = handle.Acquire(ctx)
			if err == nil {
				acq.specs = append(acq.specs, spec)
				acq.handles = append(acq.handles, handle)
				acq.targets = append(acq.targets, target)
				continue
			}
		}
		return nil, acq.Release(ctx, err)
	}
	return acq, nil
}

// Release pops the stack, handing each release the currently pending
// error. A true suppressed return clears the pending error only when that
// resource's spec set Suppress; an error returned by the release itself
// replaces the pending one and keeps propagating outward.
func (a *Acquired) Release(ctx context.Context, pending error) error {
	for i := len(a.handles) - 1; i >= 0; i-- {
		suppressed, err := a.handles[i].Release(ctx, pending)
		switch {
		case err != nil:
			pending = err
		case suppressed && a.specs[i].Suppress:
			pending = nil
		}
	}
	return pending
}
