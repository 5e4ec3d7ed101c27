package expand

import (
	"context"

	"github.com/vk/paramgridgo/internal/stack"
	"github.com/vk/paramgridgo/param"
)

// Unit is one concrete, independently runnable test derived from a
// prototype plus one combined record. Every unit owns its record and
// builds its own resource stack per invocation; nothing is shared between
// units, so a host runner may execute them in parallel.
type Unit struct {
	name    string
	label   string
	ordinal int
	rec     *param.Record
	body    Body
}

// Name returns the unit's unique synthesized name.
func (u *Unit) Name() string { return u.name }

// Label returns the resolved label the name was built from. Empty for a
// pass-through unit of an unmarked case.
func (u *Unit) Label() string { return u.label }

// Ordinal returns the 1-based position in enumeration order, or 0 for a
// pass-through unit. It exists for name disambiguation, not identity.
func (u *Unit) Ordinal() int { return u.ordinal }

// Record returns the combined record the unit was generated for.
func (u *Unit) Record() *param.Record { return u.rec }

// Run acquires the record's resource stack, invokes the prototype body
// with the resolved Call, and releases the stack regardless of outcome.
// Acquisition and release happen exactly once per Run.
func (u *Unit) Run(ctx context.Context) error {
	return stack.New(u.rec.Resources()).Run(ctx, func(targets []any) error {
		return u.body(ctx, &Call{
			Args:    u.rec.Positional(),
			Keyed:   u.rec.Keyed(),
			Label:   u.label,
			Targets: targets,
		})
	})
}
