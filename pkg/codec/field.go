package codec

import (
	"fmt"
	"math"
	"strconv"
)

// FieldType identifies the logical type of one record slot. Every type
// occupies exactly 4 bytes on disk.
type FieldType uint8

const (
	FieldUint32 FieldType = iota
	FieldInt32
	FieldFloat32
	FieldString // uint32 offset into the string block
)

// ParseFieldType parses the textual form used in schema files and on the
// command line.
func ParseFieldType(s string) (FieldType, error) {
	switch s {
	case "uint32":
		return FieldUint32, nil
	case "int32":
		return FieldInt32, nil
	case "float", "float32":
		return FieldFloat32, nil
	case "string":
		return FieldString, nil
	}
	return 0, fmt.Errorf("invalid field type %q", s)
}

func (t FieldType) String() string {
	switch t {
	case FieldUint32:
		return "uint32"
	case FieldInt32:
		return "int32"
	case FieldFloat32:
		return "float"
	case FieldString:
		return "string"
	}
	return fmt.Sprintf("FieldType(%d)", uint8(t))
}

// Value is a tagged union over the four slot types. Numeric values keep
// their raw 4-byte representation; strings carry the decoded text, not the
// string-block offset.
type Value struct {
	kind FieldType
	bits uint32
	str  string
}

// Uint32Value returns a Value of type FieldUint32.
func Uint32Value(v uint32) Value { return Value{kind: FieldUint32, bits: v} }

// Int32Value returns a Value of type FieldInt32.
func Int32Value(v int32) Value { return Value{kind: FieldInt32, bits: uint32(v)} }

// Float32Value returns a Value of type FieldFloat32.
func Float32Value(v float32) Value { return Value{kind: FieldFloat32, bits: math.Float32bits(v)} }

// StringValue returns a Value of type FieldString.
func StringValue(s string) Value { return Value{kind: FieldString, str: s} }

// Kind reports the logical type of the value.
func (v Value) Kind() FieldType { return v.kind }

func (v Value) Uint32() uint32   { return v.bits }
func (v Value) Int32() int32     { return int32(v.bits) }
func (v Value) Float32() float32 { return math.Float32frombits(v.bits) }
func (v Value) Str() string      { return v.str }

// Bits returns the raw 4-byte slot representation of a numeric value.
// Meaningless for FieldString, whose slot encoding depends on the string
// block.
func (v Value) Bits() uint32 { return v.bits }

// Interface returns the value as its natural Go type.
func (v Value) Interface() interface{} {
	switch v.kind {
	case FieldUint32:
		return v.Uint32()
	case FieldInt32:
		return v.Int32()
	case FieldFloat32:
		return v.Float32()
	case FieldString:
		return v.str
	}
	return nil
}

// Equal compares two values on kind and logical value. Floats compare as
// floats, not as raw bits.
func (v Value) Equal(other Value) bool {
	if v.kind != other.kind {
		return false
	}
	if v.kind == FieldFloat32 {
		return v.Float32() == other.Float32()
	}
	if v.kind == FieldString {
		return v.str == other.str
	}
	return v.bits == other.bits
}

// String renders the value for display.
func (v Value) String() string {
	switch v.kind {
	case FieldUint32:
		return strconv.FormatUint(uint64(v.Uint32()), 10)
	case FieldInt32:
		return strconv.FormatInt(int64(v.Int32()), 10)
	case FieldFloat32:
		return strconv.FormatFloat(float64(v.Float32()), 'g', -1, 32)
	case FieldString:
		return v.str
	}
	return "<invalid>"
}

// ParseValue parses a textual value into a Value of the given type.
func ParseValue(t FieldType, s string) (Value, error) {
	switch t {
	case FieldUint32:
		n, err := strconv.ParseUint(s, 10, 32)
		if err != nil {
			return Value{}, fmt.Errorf("invalid uint32 %q: %w", s, err)
		}
		return Uint32Value(uint32(n)), nil
	case FieldInt32:
		n, err := strconv.ParseInt(s, 10, 32)
		if err != nil {
			return Value{}, fmt.Errorf("invalid int32 %q: %w", s, err)
		}
		return Int32Value(int32(n)), nil
	case FieldFloat32:
		f, err := strconv.ParseFloat(s, 32)
		if err != nil {
			return Value{}, fmt.Errorf("invalid float %q: %w", s, err)
		}
		return Float32Value(float32(f)), nil
	case FieldString:
		return StringValue(s), nil
	}
	return Value{}, fmt.Errorf("invalid field type %d", t)
}

// DecodeSlot interprets a raw 4-byte slot as a typed value. String slots are
// resolved against the string block and fail when the offset is out of
// bounds.
func DecodeSlot(raw uint32, t FieldType, block *StringBlock) (Value, error) {
	switch t {
	case FieldUint32, FieldInt32, FieldFloat32:
		return Value{kind: t, bits: raw}, nil
	case FieldString:
		s, err := block.Get(raw)
		if err != nil {
			return Value{}, err
		}
		return StringValue(s), nil
	}
	return Value{}, fmt.Errorf("invalid field type %d", t)
}
