// Package row provides the row abstraction the column codecs read values from
// and write values to.
//
// A Row is an ordered, fixed-arity sequence of fields addressed by ordinal.
// Column types access fields through the typed helpers GetAs and SetAs, which
// reject values of the wrong Go type instead of converting them.
package row

import (
	"fmt"
	"strings"

	"github.com/arloliu/colcache/errs"
)

// Row is an indexable, mutable sequence of fields.
//
// Implementations are not required to be safe for concurrent use.
type Row interface {
	// NumFields returns the arity of the row.
	NumFields() int
	// Get returns the value at ordinal; nil for a null field.
	Get(ordinal int) (any, error)
	// Set stores v at ordinal; a nil v makes the field null.
	Set(ordinal int, v any) error
	// IsNullAt reports whether the field at ordinal is null.
	// Out of range ordinals report true.
	IsNullAt(ordinal int) bool
	// SetNullAt makes the field at ordinal null.
	SetNullAt(ordinal int) error
}

// Generic is a slice-backed Row.
type Generic struct {
	values []any
}

var _ Row = (*Generic)(nil)

// New returns a row of n null fields.
func New(n int) *Generic {
	return &Generic{values: make([]any, n)}
}

// Of returns a row holding values. The slice is used directly.
func Of(values ...any) *Generic {
	return &Generic{values: values}
}

// NumFields implements Row.
func (g *Generic) NumFields() int {
	return len(g.values)
}

// Get implements Row.
func (g *Generic) Get(ordinal int) (any, error) {
	if err := g.check(ordinal); err != nil {
		return nil, err
	}

	return g.values[ordinal], nil
}

// Set implements Row.
func (g *Generic) Set(ordinal int, v any) error {
	if err := g.check(ordinal); err != nil {
		return err
	}
	g.values[ordinal] = v

	return nil
}

// IsNullAt implements Row.
func (g *Generic) IsNullAt(ordinal int) bool {
	if ordinal < 0 || ordinal >= len(g.values) {
		return true
	}

	return g.values[ordinal] == nil
}

// SetNullAt implements Row.
func (g *Generic) SetNullAt(ordinal int) error {
	return g.Set(ordinal, nil)
}

// Values returns the underlying field slice.
func (g *Generic) Values() []any {
	return g.values
}

// Copy returns a shallow copy of the row.
func (g *Generic) Copy() *Generic {
	values := make([]any, len(g.values))
	copy(values, g.values)

	return &Generic{values: values}
}

func (g *Generic) String() string {
	var sb strings.Builder
	sb.WriteByte('[')
	for i, v := range g.values {
		if i > 0 {
			sb.WriteByte(',')
		}
		if v == nil {
			sb.WriteString("null")
			continue
		}
		fmt.Fprint(&sb, v)
	}
	sb.WriteByte(']')

	return sb.String()
}

func (g *Generic) check(ordinal int) error {
	if ordinal < 0 || ordinal >= len(g.values) {
		return fmt.Errorf("%w: %d not in [0, %d)", errs.ErrFieldIndex, ordinal, len(g.values))
	}

	return nil
}

// GetAs returns the field at ordinal as a T.
//
// Returns errs.ErrNullValue for a null field and errs.ErrTypeMismatch when the
// field holds a value of another Go type.
func GetAs[T any](r Row, ordinal int) (T, error) {
	var zero T

	v, err := r.Get(ordinal)
	if err != nil {
		return zero, err
	}
	if v == nil {
		return zero, fmt.Errorf("%w: field %d", errs.ErrNullValue, ordinal)
	}

	typed, ok := v.(T)
	if !ok {
		return zero, fmt.Errorf("%w: field %d holds %T, want %T", errs.ErrTypeMismatch, ordinal, v, zero)
	}

	return typed, nil
}

// SetAs stores v at ordinal.
func SetAs[T any](r Row, ordinal int, v T) error {
	return r.Set(ordinal, v)
}
