package store

import (
	"fmt"

	"github.com/wowtools/dbckit/pkg/codec"
)

// CreateRecord appends a zero-initialized record and returns its index,
// which equals the previous record count.
func (s *Store) CreateRecord() int {
	s.slots = append(s.slots, make([]uint32, s.fieldCount())...)
	s.header.RecordCount++
	return s.RecordCount() - 1
}

// CreateRecordWithValues appends a record and applies values to it. Fields
// absent from values stay zero. On any invalid field name or value the
// appended record is rolled back and the record count is unchanged.
func (s *Store) CreateRecordWithValues(values map[string]codec.Value) (int, error) {
	index := s.CreateRecord()
	if err := s.UpdateRecordMulti(index, values); err != nil {
		s.slots = s.slots[:index*s.fieldCount()]
		s.header.RecordCount--
		return 0, err
	}
	return index, nil
}

// UpdateRecord overwrites one field slot of the record at index, re-encoding
// value per the field's declared type.
func (s *Store) UpdateRecord(index int, field string, value codec.Value) error {
	if err := s.checkIndex(index); err != nil {
		return err
	}

	fieldIdx, ok := s.config.Schema.IndexOf(field)
	if !ok {
		return fmt.Errorf("%w: %q", ErrUnknownField, field)
	}

	ft := s.config.Schema.Field(fieldIdx).Type
	if err := s.validateValue(field, ft, value); err != nil {
		return err
	}

	s.recordSlots(index)[fieldIdx] = s.encodeValue(ft, value)
	return nil
}

// UpdateRecordMulti applies every entry of values to the record at index.
// The index and all field names and values are validated before any slot is
// touched, so an invalid update set never partially mutates the record.
func (s *Store) UpdateRecordMulti(index int, values map[string]codec.Value) error {
	if err := s.checkIndex(index); err != nil {
		return err
	}

	for field, value := range values {
		fieldIdx, ok := s.config.Schema.IndexOf(field)
		if !ok {
			return fmt.Errorf("%w: %q", ErrUnknownField, field)
		}
		if err := s.validateValue(field, s.config.Schema.Field(fieldIdx).Type, value); err != nil {
			return err
		}
	}

	slots := s.recordSlots(index)
	for field, value := range values {
		fieldIdx, _ := s.config.Schema.IndexOf(field)
		slots[fieldIdx] = s.encodeValue(s.config.Schema.Field(fieldIdx).Type, value)
	}
	return nil
}

// DeleteRecord removes the record at index, shifting all subsequent records
// down one position. Relative order of the remaining records is preserved.
func (s *Store) DeleteRecord(index int) error {
	if err := s.checkIndex(index); err != nil {
		return err
	}

	n := s.fieldCount()
	start := index * n
	s.slots = append(s.slots[:start], s.slots[start+n:]...)
	s.header.RecordCount--
	return nil
}

// validateValue checks that value can be encoded into a field of type ft
// without mutating the store.
func (s *Store) validateValue(field string, ft codec.FieldType, value codec.Value) error {
	switch ft {
	case codec.FieldUint32, codec.FieldInt32, codec.FieldFloat32:
		if value.Kind() != ft {
			return fmt.Errorf("%w: field %q is %s, value is %s", ErrTypeMismatch, field, ft, value.Kind())
		}
	case codec.FieldString:
		switch value.Kind() {
		case codec.FieldString:
			// Interned on encode.
		case codec.FieldUint32:
			// A raw pre-existing string-block offset.
			if _, err := s.strings.Get(value.Uint32()); err != nil {
				return fmt.Errorf("%w: field %q: %s", ErrMalformed, field, err)
			}
		default:
			return fmt.Errorf("%w: field %q is %s, value is %s", ErrTypeMismatch, field, ft, value.Kind())
		}
	}
	return nil
}

// encodeValue turns a validated value into its 4-byte slot form. String
// values are interned into the block, growing it when the text is new.
func (s *Store) encodeValue(ft codec.FieldType, value codec.Value) uint32 {
	if ft == codec.FieldString && value.Kind() == codec.FieldString {
		off := s.strings.Intern(value.Str())
		s.header.StringBlockSize = uint32(s.strings.Len())
		return off
	}
	return value.Bits()
}
