package expand

import (
	"context"
	"fmt"

	"github.com/vk/paramgridgo/internal/stack"
	"github.com/vk/paramgridgo/param"
)

// Call carries one generated unit's resolved arguments into the prototype
// body.
type Call struct {
	// Args are the positional values, in source order.
	Args []any
	// Keyed are the named values.
	Keyed map[string]any
	// Label is the resolved human-readable label.
	Label string
	// Targets are the resource "as"-targets, outer to inner. Empty when
	// the record carries no resources.
	Targets []any
}

// Body is a prototype test body. It receives the Call built from the
// record the unit was generated for.
type Body func(ctx context.Context, call *Call) error

// Hook is a suite-level setup or teardown function.
type Hook func(ctx context.Context) error

// Suite is the registry of prototype cases. It replaces hidden metadata on
// functions: attachments live here, keyed by case identity, and the
// orchestrator consumes them from here.
type Suite struct {
	name     string
	setup    Hook
	teardown Hook

	cases    []*Case
	byName   map[string]*Case
	standins map[string]*Standin

	// class-level (deprecated) marking
	sources []*param.Seq

	// set on suites derived by ExpandInto
	rec      *param.Record
	acquired *stack.Acquired
	call     *Call

	expanded bool
}

// SuiteOption configures a Suite at construction.
type SuiteOption func(*Suite)

// WithSetup installs the prototype setup hook.
func WithSetup(h Hook) SuiteOption {
	return func(s *Suite) { s.setup = h }
}

// WithTeardown installs the prototype teardown hook.
func WithTeardown(h Hook) SuiteOption {
	return func(s *Suite) { s.teardown = h }
}

// NewSuite creates an empty suite.
func NewSuite(name string, opts ...SuiteOption) *Suite {
	s := &Suite{
		name:     name,
		byName:   make(map[string]*Case),
		standins: make(map[string]*Standin),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Name returns the suite's name.
func (s *Suite) Name() string { return s.name }

// Case registers a prototype body under name. Registering a duplicate
// name, an empty name, or a nil body is a programmer error and panics.
func (s *Suite) Case(name string, body Body) *Case {
	if name == "" {
		panic("expand: case name must not be empty")
	}
	if body == nil {
		panic(fmt.Sprintf("expand: case %q has a nil body; not an eligible attachment target", name))
	}
	if _, exists := s.byName[name]; exists {
		panic(fmt.Sprintf("expand: case with name %q already registered", name))
	}
	c := &Case{suite: s, name: name, body: body}
	s.cases = append(s.cases, c)
	s.byName[name] = c
	return c
}

// Foreach attaches a parameter source to the suite itself. This class-level
// mode is kept for compatibility with older layouts; prefer attaching to
// individual cases.
//
// Deprecated: use (*Case).Foreach and case-level expansion.
func (s *Suite) Foreach(src any) *Suite {
	seq, err := param.NewSeq(src)
	if err != nil {
		panic(err)
	}
	s.sources = append(s.sources, seq)
	return s
}

// Lookup returns the registered case, or its stand-in once the case has
// been expanded, or nil for an unknown name.
func (s *Suite) Lookup(name string) any {
	if st, ok := s.standins[name]; ok {
		return st
	}
	if c, ok := s.byName[name]; ok {
		return c
	}
	return nil
}

// Call returns the class-level parameters of a suite derived by
// ExpandInto. It is populated by Setup and nil before it ran (and on
// non-derived suites).
func (s *Suite) Call() *Call { return s.call }

// Setup runs the prototype setup hook and then, on a derived suite,
// acquires the class-level resource stack. A setup failure prevents
// acquisition entirely, so fixture failures surface inside the
// conventional setup/teardown boundary.
func (s *Suite) Setup(ctx context.Context) error {
	if s.setup != nil {
		if err := s.setup(ctx); err != nil {
			return err
		}
	}
	if s.rec != nil {
		acq, err := stack.New(s.rec.Resources()).Acquire(ctx)
		if err != nil {
			return err
		}
		s.acquired = acq
		call := &Call{
			Args:  s.rec.Positional(),
			Keyed: s.rec.Keyed(),
			Label: s.rec.Label(),
		}
		if acq != nil {
			call.Targets = acq.Targets()
		}
		s.call = call
	}
	return nil
}

// Teardown releases the class-level resource stack (innermost first) and
// then runs the prototype teardown hook. Both always run; the first error
// wins, release errors taking precedence.
func (s *Suite) Teardown(ctx context.Context) error {
	var relErr error
	if s.acquired != nil {
		relErr = s.acquired.Release(ctx, nil)
		s.acquired = nil
		s.call = nil
	}
	if s.teardown != nil {
		if err := s.teardown(ctx); err != nil && relErr == nil {
			relErr = err
		}
	}
	return relErr
}

// Case is one prototype registered on a suite, together with the
// parameter sources attached to it, in attachment order.
type Case struct {
	suite *Suite
	name  string
	body  Body

	sources []*param.Seq

	// set on cases generated by expansion
	generated bool
	rec       *param.Record
	ordinal   int
}

// Name returns the case's registered name.
func (c *Case) Name() string { return c.name }

// Foreach attaches one parameter source to the case. Attachments are
// additive and ordered; the source's shape is checked now, and an illegal
// value panics with an error naming its type. Attaching to an
// already-expanded case panics as well.
func (c *Case) Foreach(src any) *Case {
	if _, substituted := c.suite.standins[c.name]; substituted {
		panic(fmt.Sprintf("expand: case %q was already expanded; it is no longer an eligible target", c.name))
	}
	seq, err := param.NewSeq(src)
	if err != nil {
		panic(err)
	}
	c.sources = append(c.sources, seq)
	return c
}

// ForeachItems attaches parameter items given directly, one record per
// item. Use param.Labeled to give an item an explicit label.
func (c *Case) ForeachItems(items ...any) *Case {
	if _, substituted := c.suite.standins[c.name]; substituted {
		panic(fmt.Sprintf("expand: case %q was already expanded; it is no longer an eligible target", c.name))
	}
	c.sources = append(c.sources, param.Values(items...))
	return c
}

// Standin is the non-executable placeholder left behind for an expanded
// prototype. It forwards introspection to the original while refusing to
// run, so a runner that still holds the old name fails loudly instead of
// silently executing the unparameterized body.
type Standin struct {
	name   string
	actual any
}

// Name returns the replaced prototype's name.
func (st *Standin) Name() string { return st.name }

// Actual returns the replaced prototype (*Case or *Suite) for
// introspection and debugging.
func (st *Standin) Actual() any { return st.actual }

// Run always fails with ErrExpanded.
func (st *Standin) Run(ctx context.Context) error {
	return fmt.Errorf("%q: %w", st.name, ErrExpanded)
}
