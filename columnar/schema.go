package columnar

import (
	"fmt"
	"strings"

	"github.com/arloliu/colcache/errs"
	"github.com/arloliu/colcache/internal/hash"
	"github.com/arloliu/colcache/types"
)

// Field is one named, typed column of a schema.
type Field struct {
	Name     string
	DataType types.DataType
}

func (f Field) String() string {
	return fmt.Sprintf("%s %s", f.Name, f.DataType)
}

// Schema is the ordered list of fields shared by every row of a batch.
type Schema struct {
	fields []Field
	index  map[string]int
}

// NewSchema creates a schema from fields.
//
// Field names must be non-empty and unique, and every field needs a data type.
func NewSchema(fields ...Field) (*Schema, error) {
	if len(fields) == 0 {
		return nil, fmt.Errorf("%w: schema has no fields", errs.ErrSchemaMismatch)
	}

	s := &Schema{
		fields: make([]Field, len(fields)),
		index:  make(map[string]int, len(fields)),
	}
	for i, f := range fields {
		if f.Name == "" {
			return nil, fmt.Errorf("%w: field %d has no name", errs.ErrSchemaMismatch, i)
		}
		if f.DataType == nil {
			return nil, fmt.Errorf("%w: field %q has no data type", errs.ErrInvalidDataType, f.Name)
		}
		if _, dup := s.index[f.Name]; dup {
			return nil, fmt.Errorf("%w: duplicate field %q", errs.ErrSchemaMismatch, f.Name)
		}
		s.fields[i] = f
		s.index[f.Name] = i
	}

	return s, nil
}

// Len returns the number of fields.
func (s *Schema) Len() int {
	return len(s.fields)
}

// Field returns the field at ordinal i.
func (s *Schema) Field(i int) Field {
	return s.fields[i]
}

// Fields returns a copy of the fields.
func (s *Schema) Fields() []Field {
	out := make([]Field, len(s.fields))
	copy(out, s.fields)

	return out
}

// Index returns the ordinal of the field called name.
func (s *Schema) Index(name string) (int, bool) {
	i, ok := s.index[name]
	return i, ok
}

// ID returns a 64-bit identifier of the field names and types. Schemas with
// the same fields in the same order have the same ID.
func (s *Schema) ID() uint64 {
	return hash.ID(s.String())
}

func (s *Schema) String() string {
	var sb strings.Builder
	sb.WriteByte('(')
	for i, f := range s.fields {
		if i > 0 {
			sb.WriteString(", ")
		}
		sb.WriteString(f.String())
	}
	sb.WriteByte(')')

	return sb.String()
}
