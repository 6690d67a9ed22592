package property

import (
	"context"
	"fmt"
	"sort"
)

// Kind identifies which variant of the property union a Value is.
type Kind int

const (
	KindLiteral Kind = iota + 1
	KindComputed
	KindList
	KindRecord
)

// String implements fmt.Stringer.
func (k Kind) String() string {
	switch k {
	case KindLiteral:
		return "literal"
	case KindComputed:
		return "computed"
	case KindList:
		return "list"
	case KindRecord:
		return "record"
	default:
		return "unknown"
	}
}

// Value is a declared property value. The interface is sealed: only the types
// in this package implement it.
type Value interface {
	Kind() Kind
	isValue()
}

// Data is the flat substitution data set handed to an evaluation.
type Data map[string]string

// Owner is the instance a computed property belongs to. It is passed to
// Computed functions explicitly so they can read sibling properties.
type Owner interface {
	Name() string
	Get(ctx context.Context, name string, data Data) (Value, error)
}

// Literal is a plain string property.
type Literal string

// Computed is a property whose value is produced on demand.
type Computed func(ctx context.Context, self Owner, data Data) (Value, error)

// List is an ordered sequence of values.
type List []Value

// Record is an object-shaped property: a registry mapping names to handlers,
// or a descriptor-shaped object in a library list.
type Record map[string]any

func (Literal) Kind() Kind  { return KindLiteral }
func (Computed) Kind() Kind { return KindComputed }
func (List) Kind() Kind     { return KindList }
func (Record) Kind() Kind   { return KindRecord }

func (Literal) isValue()  {}
func (Computed) isValue() {}
func (List) isValue()     {}
func (Record) isValue()   {}

// Keys returns the record's keys in sorted order.
func (r Record) Keys() []string {
	keys := make([]string, 0, len(r))
	for k := range r {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// KindOf returns the kind of v, or 0 when v is nil.
func KindOf(v Value) Kind {
	if v == nil {
		return 0
	}
	return v.Kind()
}

// From converts a native Go value into a property Value.
//
// Strings become Literals, slices become Lists (element by element), string
// keyed maps become Records and functions with the Computed signature become
// Computed. A nil input yields a nil Value.
func From(v any) (Value, error) {
	switch t := v.(type) {
	case nil:
		return nil, nil
	case Value:
		return t, nil
	case string:
		return Literal(t), nil
	case []string:
		out := make(List, 0, len(t))
		for _, s := range t {
			out = append(out, Literal(s))
		}
		return out, nil
	case []any:
		out := make(List, 0, len(t))
		for i, item := range t {
			converted, err := From(item)
			if err != nil {
				return nil, fmt.Errorf("element %d: %w", i, err)
			}
			if converted == nil {
				return nil, fmt.Errorf("element %d: null values are not allowed in a list", i)
			}
			out = append(out, converted)
		}
		return out, nil
	case map[string]any:
		return Record(t), nil
	case map[string]string:
		rec := make(Record, len(t))
		for k, s := range t {
			rec[k] = s
		}
		return rec, nil
	case func(context.Context, Owner, Data) (Value, error):
		return Computed(t), nil
	default:
		return nil, fmt.Errorf("unsupported property type %T", v)
	}
}
