package param

import (
	"fmt"
	"strings"
)

// SourceTypeError reports a value that is not a legal parameter source:
// not a slice, keyed map, set, callable, or *Seq. Strings and byte slices
// are rejected on purpose (iterating them byte-wise is never what the
// caller meant), as is a bare *Record, which is a parameter item, not a
// source.
type SourceTypeError struct {
	Value any
}

func (e *SourceTypeError) Error() string {
	if _, isRecord := e.Value.(*Record); isRecord {
		return "type *param.Record is a parameter item, not a parameter source; wrap it in a slice"
	}
	return fmt.Sprintf("type %T (of %v) is not a legal parameter source type", e.Value, shortRepr(e.Value))
}

// KeyedConflictError reports keyed argument names that appeared in more
// than one record of a merged tuple. Names are sorted.
type KeyedConflictError struct {
	Names []string
}

func (e *KeyedConflictError) Error() string {
	return "conflicting keyed argument names: " + strings.Join(e.Names, ", ")
}
