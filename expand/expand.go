package expand

import (
	"fmt"

	"github.com/vk/paramgridgo/internal/naming"
	"github.com/vk/paramgridgo/param"
)

// Expand runs case-level expansion on the suite and returns every runnable
// unit: one per element of each marked case's combined parameter space,
// plus a pass-through unit for each unmarked case. Marked prototypes are
// replaced by stand-ins reachable through Lookup.
//
// Expansion is all-or-nothing: a malformed source or a merge conflict
// leaves the suite untouched and returns the error. Calling Expand again
// on an already-expanded suite re-enumerates nothing — the marked cases
// are gone, replaced by their stand-ins — and simply returns the same
// units.
func Expand(s *Suite) ([]*Unit, error) {
	if !s.expanded {
		if err := expandCases(s); err != nil {
			return nil, err
		}
		s.expanded = true
	}

	var units []*Unit
	for _, c := range s.cases {
		if _, substituted := s.standins[c.name]; substituted {
			continue
		}
		u := &Unit{name: c.name, body: c.body, rec: param.New()}
		if c.generated {
			u.rec = c.rec
			u.label = c.rec.Label()
			u.ordinal = c.ordinal
		}
		units = append(units, u)
	}
	return units, nil
}

// expandCases generates the concrete cases for every marked prototype.
// All sources are drained and all names synthesized before the suite is
// mutated, so a failure never leaves a half-expanded registry.
func expandCases(s *Suite) error {
	used := make(map[string]struct{}, len(s.byName))
	for name := range s.byName {
		used[name] = struct{}{}
	}

	var generated []*Case
	substituted := make(map[string]*Standin)
	for _, c := range s.cases {
		if len(c.sources) == 0 || c.generated {
			continue
		}
		recs, err := combineSources(c.sources, s, fmt.Sprintf("case %q", c.name))
		if err != nil {
			return err
		}
		for i, rec := range recs {
			info := naming.Info{
				BaseName: c.name,
				BaseObj:  s.name + "." + c.name,
				Label:    rec.Label(),
				Count:    i + 1,
			}
			generated = append(generated, &Case{
				suite:     s,
				name:      naming.Synthesize(info, used),
				body:      c.body,
				generated: true,
				rec:       rec,
				ordinal:   i + 1,
			})
		}
		substituted[c.name] = &Standin{name: c.name, actual: c}
	}

	for name, st := range substituted {
		s.standins[name] = st
	}
	for _, gc := range generated {
		s.cases = append(s.cases, gc)
		s.byName[gc.name] = gc
	}
	return nil
}

// ExpandInto runs the deprecated class-level mode: after case-level
// expansion, one derived suite per element of the suite-level parameter
// space is installed into the destination mapping, and a stand-in for the
// prototype suite is returned. Each derived suite carries its combined
// record; its Setup acquires the record's resources after the prototype
// setup hook and its Teardown releases them before the prototype teardown
// hook, exposing the parameters through (*Suite).Call.
//
// The destination is an explicit required argument — a nil mapping is an
// error, and there is no implicit caller-namespace resolution. A suite
// with no class-level sources is left alone and (nil, nil) is returned.
func ExpandInto(s *Suite, into map[string]*Suite) (*Standin, error) {
	if !s.expanded {
		if err := expandCases(s); err != nil {
			return nil, err
		}
		s.expanded = true
	}
	if len(s.sources) == 0 {
		return nil, nil
	}
	if into == nil {
		return nil, ErrNilDestination
	}

	used := make(map[string]struct{}, len(into)+1)
	for name := range into {
		used[name] = struct{}{}
	}
	used[s.name] = struct{}{}

	recs, err := combineSources(s.sources, s, fmt.Sprintf("suite %q", s.name))
	if err != nil {
		return nil, err
	}

	for i, rec := range recs {
		info := naming.Info{
			BaseName: s.name,
			BaseObj:  s.name,
			Label:    rec.Label(),
			Count:    i + 1,
		}
		derived := &Suite{
			name:     naming.Synthesize(info, used),
			setup:    s.setup,
			teardown: s.teardown,
			cases:    append([]*Case(nil), s.cases...),
			byName:   make(map[string]*Case, len(s.byName)),
			standins: make(map[string]*Standin, len(s.standins)),
			rec:      rec,
			expanded: true,
		}
		for name, c := range s.byName {
			derived.byName[name] = c
		}
		for name, st := range s.standins {
			derived.standins[name] = st
		}
		into[derived.name] = derived
	}

	s.sources = nil
	return &Standin{name: s.name, actual: s}, nil
}
