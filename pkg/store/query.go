package store

import (
	"fmt"

	"github.com/wowtools/dbckit/pkg/codec"
)

// Record is one decoded record: field name to typed value, covering every
// schema field.
type Record map[string]codec.Value

// GetRecord decodes the record at index into a name→value mapping in schema
// order. String slots resolve against the string block.
func (s *Store) GetRecord(index int) (Record, error) {
	if err := s.checkIndex(index); err != nil {
		return nil, err
	}
	return s.decodeRecord(index)
}

// FieldValue decodes a single field of the record at index.
func (s *Store) FieldValue(index int, field string) (codec.Value, error) {
	if err := s.checkIndex(index); err != nil {
		return codec.Value{}, err
	}

	fieldIdx, ok := s.config.Schema.IndexOf(field)
	if !ok {
		return codec.Value{}, fmt.Errorf("%w: %q", ErrUnknownField, field)
	}
	return s.decodeSlot(index, fieldIdx)
}

// Match pairs a record found by FindBy with its index in the store.
type Match struct {
	Index  int
	Record Record
}

// FindBy scans all records and returns every one whose field decodes equal
// to value, in storage order. No match yields an empty result, not an error.
func (s *Store) FindBy(field string, value codec.Value) ([]Match, error) {
	fieldIdx, ok := s.config.Schema.IndexOf(field)
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownField, field)
	}

	var results []Match
	for i := 0; i < s.RecordCount(); i++ {
		v, err := s.decodeSlot(i, fieldIdx)
		if err != nil {
			return nil, err
		}
		if !v.Equal(value) {
			continue
		}

		record, err := s.decodeRecord(i)
		if err != nil {
			return nil, err
		}
		results = append(results, Match{Index: i, Record: record})
	}
	return results, nil
}

func (s *Store) decodeRecord(index int) (Record, error) {
	record := make(Record, s.fieldCount())
	for j, f := range s.config.Schema.Fields() {
		v, err := s.decodeSlot(index, j)
		if err != nil {
			return nil, err
		}
		record[f.Name] = v
	}
	return record, nil
}

func (s *Store) decodeSlot(index, fieldIdx int) (codec.Value, error) {
	raw := s.recordSlots(index)[fieldIdx]
	v, err := codec.DecodeSlot(raw, s.config.Schema.Field(fieldIdx).Type, s.strings)
	if err != nil {
		return codec.Value{}, fmt.Errorf("%w: record %d field %q: %s",
			ErrMalformed, index, s.config.Schema.Field(fieldIdx).Name, err)
	}
	return v, nil
}
