package param

import (
	"fmt"
	"reflect"
	"sort"
)

// Seq normalizes any legal parameter source into a reproducible sequence
// of records. Legal sources are:
//
//   - a slice or array (finite ordered collection of items),
//   - a map with string keys (keyed collection, label → item),
//   - a map[T]struct{} (finite unordered collection),
//   - a func with no or one parameter returning a collection (invoked once
//     per attachment site at expansion time, never memoized),
//   - another *Seq (flattened).
//
// Items inside a source coerce to records: a *Record passes through
// unchanged, a []any unpacks into positional values (one row), a Labeled
// applies its label to the coerced value, and any other value becomes a
// single positional value.
//
// Strings and byte slices are rejected as sources, and so is a bare
// *Record: a record is one row, not a row collection.
type Seq struct {
	sources   []any
	resources []ResourceSpec
}

// NewSeq wraps a single parameter source. The source's shape is checked
// immediately; an illegal value is reported with its type named.
func NewSeq(src any) (*Seq, error) {
	if err := checkSource(src); err != nil {
		return nil, err
	}
	return &Seq{sources: []any{src}}, nil
}

// Values builds a sequence from parameter items given directly, one record
// per item. This is the counterpart of attaching two-or-more items instead
// of one source; item coercion rules apply, so Labeled values carry their
// labels.
func Values(items ...any) *Seq {
	return &Seq{sources: []any{append([]any(nil), items...)}}
}

// Concat returns a sequence that enumerates the receiver fully, then
// other. The operation is associative. The operand must itself be a legal
// source.
func (s *Seq) Concat(other any) (*Seq, error) {
	if err := checkSource(other); err != nil {
		return nil, err
	}
	return &Seq{sources: []any{s, other}}, nil
}

// WithResource returns a sequence that attaches spec to every record it
// generates. The attachment is lazy: it is applied at generation time, so
// records produced by nested sequences and callables are covered too.
func (s *Seq) WithResource(spec ResourceSpec) *Seq {
	return &Seq{
		sources:   append([]any(nil), s.sources...),
		resources: append(append([]ResourceSpec(nil), s.resources...), spec),
	}
}

// Generate enumerates the sequence into records. Callable sources are
// invoked now (with owner when they accept one argument) and their results
// drained eagerly, so malformed sources fail here, before any generated
// unit exists.
func (s *Seq) Generate(owner any) ([]*Record, error) {
	var out []*Record
	for _, src := range s.sources {
		recs, err := generateFrom(src, owner)
		if err != nil {
			return nil, err
		}
		out = append(out, recs...)
	}
	if len(s.resources) > 0 {
		for i, rec := range out {
			for _, spec := range s.resources {
				rec = rec.WithResource(spec)
			}
			out[i] = rec
		}
	}
	return out, nil
}

var emptyStructType = reflect.TypeOf(struct{}{})

// checkSource validates a source's shape without enumerating it.
func checkSource(src any) error {
	switch src.(type) {
	case nil:
		return &SourceTypeError{Value: src}
	case *Seq:
		return nil
	case string, []byte:
		return &SourceTypeError{Value: src}
	case *Record:
		return &SourceTypeError{Value: src}
	}
	rv := reflect.ValueOf(src)
	switch rv.Kind() {
	case reflect.Slice, reflect.Array:
		return nil
	case reflect.Map:
		t := rv.Type()
		if t.Elem() == emptyStructType {
			return nil // set
		}
		if t.Key().Kind() == reflect.String {
			return nil // keyed
		}
		return &SourceTypeError{Value: src}
	case reflect.Func:
		t := rv.Type()
		if t.NumOut() == 1 && t.NumIn() <= 1 && !t.IsVariadic() {
			return nil
		}
		return &SourceTypeError{Value: src}
	}
	return &SourceTypeError{Value: src}
}

func generateFrom(src any, owner any) ([]*Record, error) {
	if nested, ok := src.(*Seq); ok {
		return nested.Generate(owner)
	}
	rv := reflect.ValueOf(src)
	switch rv.Kind() {
	case reflect.Slice, reflect.Array:
		out := make([]*Record, 0, rv.Len())
		for i := 0; i < rv.Len(); i++ {
			out = append(out, coerceItem(rv.Index(i).Interface()))
		}
		return out, nil
	case reflect.Map:
		if rv.Type().Elem() == emptyStructType {
			return generateFromSet(rv), nil
		}
		return generateFromKeyed(rv), nil
	case reflect.Func:
		return generateFromFunc(rv, owner)
	}
	return nil, &SourceTypeError{Value: src}
}

// generateFromKeyed enumerates a label → item map. Keys are sorted so the
// enumeration order is reproducible across runs.
func generateFromKeyed(rv reflect.Value) []*Record {
	keys := make([]string, 0, rv.Len())
	for _, k := range rv.MapKeys() {
		keys = append(keys, k.String())
	}
	sort.Strings(keys)
	out := make([]*Record, 0, len(keys))
	for _, key := range keys {
		item := rv.MapIndex(reflect.ValueOf(key).Convert(rv.Type().Key())).Interface()
		out = append(out, coerceItem(item).WithLabel(key))
	}
	return out
}

// generateFromSet enumerates a map[T]struct{}. Members are ordered by
// their rendered representation for determinism.
func generateFromSet(rv reflect.Value) []*Record {
	members := make([]any, 0, rv.Len())
	for _, k := range rv.MapKeys() {
		members = append(members, k.Interface())
	}
	sort.Slice(members, func(i, j int) bool {
		return shortRepr(members[i]) < shortRepr(members[j])
	})
	out := make([]*Record, 0, len(members))
	for _, m := range members {
		out = append(out, coerceItem(m))
	}
	return out
}

// generateFromFunc invokes a callable source. The one-parameter form
// receives owner; the result must itself be a non-callable source shape.
func generateFromFunc(rv reflect.Value, owner any) ([]*Record, error) {
	t := rv.Type()
	var args []reflect.Value
	if t.NumIn() == 1 {
		in := t.In(0)
		if owner == nil {
			args = []reflect.Value{reflect.Zero(in)}
		} else {
			ov := reflect.ValueOf(owner)
			if !ov.Type().AssignableTo(in) {
				return nil, fmt.Errorf("callable parameter source wants %s, owner is %T", in, owner)
			}
			args = []reflect.Value{ov}
		}
	}
	result := rv.Call(args)[0].Interface()
	if result == nil {
		return nil, &SourceTypeError{Value: result}
	}
	if reflect.ValueOf(result).Kind() == reflect.Func {
		return nil, &SourceTypeError{Value: result}
	}
	if err := checkSource(result); err != nil {
		return nil, fmt.Errorf("callable parameter source returned an illegal value: %w", err)
	}
	return generateFrom(result, owner)
}

func coerceItem(item any) *Record {
	switch v := item.(type) {
	case *Record:
		return v
	case Labeled:
		return coerceItem(v.Value).WithLabel(v.Label)
	case []any:
		return New(v...)
	default:
		return New(item)
	}
}
