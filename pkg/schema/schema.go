// Package schema defines the caller-supplied field layout of a DBC file: an
// ordered, duplicate-free mapping from field name to slot type. The file
// format itself carries no field names or types, so the same schema must be
// supplied on every open of a given file.
package schema

import (
	"fmt"

	"github.com/wowtools/dbckit/pkg/codec"
)

// Field is one named, typed slot position.
type Field struct {
	Name string
	Type codec.FieldType
}

// Schema is an immutable ordered field layout. Declaration order defines
// on-disk slot position.
type Schema struct {
	fields []Field
	byName map[string]int
}

// New builds a schema from fields in declaration order. Empty and duplicate
// field names are rejected.
func New(fields []Field) (*Schema, error) {
	if len(fields) == 0 {
		return nil, fmt.Errorf("schema must declare at least one field")
	}

	byName := make(map[string]int, len(fields))
	for i, f := range fields {
		if f.Name == "" {
			return nil, fmt.Errorf("field %d has an empty name", i)
		}
		if _, exists := byName[f.Name]; exists {
			return nil, fmt.Errorf("duplicate field name %q", f.Name)
		}
		byName[f.Name] = i
	}

	s := &Schema{
		fields: make([]Field, len(fields)),
		byName: byName,
	}
	copy(s.fields, fields)
	return s, nil
}

// Len returns the number of fields.
func (s *Schema) Len() int { return len(s.fields) }

// Fields returns the fields in declaration order. The returned slice is a
// copy.
func (s *Schema) Fields() []Field {
	fields := make([]Field, len(s.fields))
	copy(fields, s.fields)
	return fields
}

// Field returns the field at slot position i.
func (s *Schema) Field(i int) Field { return s.fields[i] }

// IndexOf returns the slot position of the named field.
func (s *Schema) IndexOf(name string) (int, bool) {
	i, ok := s.byName[name]
	return i, ok
}

// TypeOf returns the declared type of the named field.
func (s *Schema) TypeOf(name string) (codec.FieldType, bool) {
	i, ok := s.byName[name]
	if !ok {
		return 0, false
	}
	return s.fields[i].Type, true
}
