package param

import (
	"fmt"
	"sort"
	"strings"
	"unicode/utf8"
)

// Record is one fully resolved row of the parameter space: positional
// values, keyed values, label fragments, and the resource specs to wrap a
// generated unit's invocation with.
type Record struct {
	positional []any
	keyed      map[string]any
	labels     []string
	resources  []ResourceSpec
}

// Labeled pairs a parameter item with an explicit label. It is accepted
// wherever a parameter item is, e.g. by ForeachItems-style attachment.
type Labeled struct {
	Label string
	Value any
}

// New creates a record whose values are appended positionally to the
// wrapped call.
func New(values ...any) *Record {
	r := &Record{}
	r.positional = append(r.positional, values...)
	return r
}

// NewKeyed creates a record whose values are applied as named arguments.
func NewKeyed(kv map[string]any) *Record {
	r := &Record{keyed: make(map[string]any, len(kv))}
	for k, v := range kv {
		r.keyed[k] = v
	}
	return r
}

func (r *Record) clone() *Record {
	n := &Record{
		positional: append([]any(nil), r.positional...),
		labels:     append([]string(nil), r.labels...),
		resources:  append([]ResourceSpec(nil), r.resources...),
	}
	if r.keyed != nil {
		n.keyed = make(map[string]any, len(r.keyed))
		for k, v := range r.keyed {
			n.keyed[k] = v
		}
	}
	return n
}

// WithLabel returns a new record with text appended to the label fragments.
func (r *Record) WithLabel(text string) *Record {
	n := r.clone()
	n.labels = append(n.labels, text)
	return n
}

// WithKeyed returns a new record with one more named argument. Reusing a
// name that is already present on the record is rejected the same way a
// merge conflict is.
func (r *Record) WithKeyed(name string, value any) (*Record, error) {
	if _, dup := r.keyed[name]; dup {
		return nil, &KeyedConflictError{Names: []string{name}}
	}
	n := r.clone()
	if n.keyed == nil {
		n.keyed = make(map[string]any, 1)
	}
	n.keyed[name] = value
	return n, nil
}

// WithResource returns a new record with spec appended to the resource
// list. Resources acquire in list order (outer to inner).
func (r *Record) WithResource(spec ResourceSpec) *Record {
	n := r.clone()
	n.resources = append(n.resources, spec)
	return n
}

// Positional returns a copy of the positional values in source order.
func (r *Record) Positional() []any {
	return append([]any(nil), r.positional...)
}

// Keyed returns a copy of the named arguments.
func (r *Record) Keyed() map[string]any {
	out := make(map[string]any, len(r.keyed))
	for k, v := range r.keyed {
		out[k] = v
	}
	return out
}

// Labels returns a copy of the explicit label fragments in source order.
func (r *Record) Labels() []string {
	return append([]string(nil), r.labels...)
}

// Resources returns a copy of the resource specs in acquisition order.
func (r *Record) Resources() []ResourceSpec {
	return append([]ResourceSpec(nil), r.resources...)
}

// Merge combines records into one: positional values concatenate in record
// order, keyed values union, label fragments concatenate (each record
// contributes its already-resolved Label text), resource specs concatenate
// so the earliest record's resources sit outermost. A keyed name appearing
// in more than one record is an error naming the conflicting names.
func Merge(records ...*Record) (*Record, error) {
	merged := &Record{keyed: make(map[string]any)}
	var conflicts []string
	for _, rec := range records {
		merged.positional = append(merged.positional, rec.positional...)
		for name, val := range rec.keyed {
			if _, dup := merged.keyed[name]; dup {
				conflicts = append(conflicts, name)
				continue
			}
			merged.keyed[name] = val
		}
		merged.labels = append(merged.labels, rec.Label())
		merged.resources = append(merged.resources, rec.resources...)
	}
	if len(conflicts) > 0 {
		sort.Strings(conflicts)
		return nil, &KeyedConflictError{Names: conflicts}
	}
	return merged, nil
}

// Label resolves the record's human-readable label: explicit fragments
// joined with ", ", or, when none were set, a rendering derived from the
// values themselves. Keyed entries render as name=value sorted by name, so
// two records carrying the same values always label identically.
func (r *Record) Label() string {
	if len(r.labels) > 0 {
		return strings.Join(r.labels, ", ")
	}
	parts := make([]string, 0, len(r.positional)+len(r.keyed))
	for _, v := range r.positional {
		parts = append(parts, shortRepr(v))
	}
	names := make([]string, 0, len(r.keyed))
	for name := range r.keyed {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		parts = append(parts, name+"="+shortRepr(r.keyed[name]))
	}
	return strings.Join(parts, ",")
}

const shortReprMax = 16

// shortRepr renders a value for label purposes, truncating long
// renderings with a <...> marker so synthesized names stay readable.
func shortRepr(v any) string {
	r := fmt.Sprintf("%#v", v)
	if utf8.RuneCountInString(r) <= shortReprMax {
		return r
	}
	runes := []rune(strings.TrimLeft(r, "<"))
	if len(runes) > shortReprMax-5 {
		runes = runes[:shortReprMax-5]
	}
	return "<" + string(runes) + "...>"
}
