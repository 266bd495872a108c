package codec

import (
	"math"
	"testing"
)

func TestParseFieldType(t *testing.T) {
	testCases := []struct {
		input   string
		want    FieldType
		wantErr bool
	}{
		{input: "uint32", want: FieldUint32},
		{input: "int32", want: FieldInt32},
		{input: "float", want: FieldFloat32},
		{input: "float32", want: FieldFloat32},
		{input: "string", want: FieldString},
		{input: "uint64", wantErr: true},
		{input: "", wantErr: true},
		{input: "UINT32", wantErr: true},
	}

	for _, tc := range testCases {
		t.Run(tc.input, func(t *testing.T) {
			got, err := ParseFieldType(tc.input)
			if tc.wantErr {
				if err == nil {
					t.Errorf("Expected error for %q, got %v", tc.input, got)
				}
				return
			}
			if err != nil {
				t.Fatalf("ParseFieldType(%q) failed: %v", tc.input, err)
			}
			if got != tc.want {
				t.Errorf("ParseFieldType(%q): got %v, want %v", tc.input, got, tc.want)
			}
		})
	}
}

func TestValue_Constructors(t *testing.T) {
	if v := Uint32Value(32837); v.Kind() != FieldUint32 || v.Uint32() != 32837 {
		t.Errorf("Uint32Value mismatch: %+v", v)
	}
	if v := Int32Value(-17); v.Kind() != FieldInt32 || v.Int32() != -17 {
		t.Errorf("Int32Value mismatch: %+v", v)
	}
	if v := Float32Value(1.5); v.Kind() != FieldFloat32 || v.Float32() != 1.5 {
		t.Errorf("Float32Value mismatch: %+v", v)
	}
	if v := StringValue("NewModelName"); v.Kind() != FieldString || v.Str() != "NewModelName" {
		t.Errorf("StringValue mismatch: %+v", v)
	}
}

func TestValue_BitsRoundTrip(t *testing.T) {
	// A negative int32 and its raw slot form must agree bit-for-bit.
	v := Int32Value(-1)
	if v.Bits() != math.MaxUint32 {
		t.Errorf("Int32Value(-1).Bits(): got %d, want %d", v.Bits(), uint32(math.MaxUint32))
	}

	f := Float32Value(2.5)
	if f.Bits() != math.Float32bits(2.5) {
		t.Errorf("Float32Value(2.5).Bits(): got %d, want %d", f.Bits(), math.Float32bits(2.5))
	}
}

func TestValue_Equal(t *testing.T) {
	if !Uint32Value(7).Equal(Uint32Value(7)) {
		t.Error("Equal uint32 values compared unequal")
	}
	if Uint32Value(7).Equal(Int32Value(7)) {
		t.Error("Values of different kinds compared equal")
	}
	if !StringValue("a").Equal(StringValue("a")) {
		t.Error("Equal string values compared unequal")
	}
	if StringValue("a").Equal(StringValue("b")) {
		t.Error("Different strings compared equal")
	}
	// NaN never equals itself under float comparison.
	nan := Float32Value(float32(math.NaN()))
	if nan.Equal(nan) {
		t.Error("NaN compared equal to itself")
	}
}

func TestParseValue(t *testing.T) {
	testCases := []struct {
		name    string
		typ     FieldType
		input   string
		want    Value
		wantErr bool
	}{
		{name: "uint32", typ: FieldUint32, input: "32837", want: Uint32Value(32837)},
		{name: "int32 negative", typ: FieldInt32, input: "-5", want: Int32Value(-5)},
		{name: "float", typ: FieldFloat32, input: "1.25", want: Float32Value(1.25)},
		{name: "string", typ: FieldString, input: "NewModelName", want: StringValue("NewModelName")},
		{name: "uint32 negative rejected", typ: FieldUint32, input: "-1", wantErr: true},
		{name: "uint32 overflow rejected", typ: FieldUint32, input: "4294967296", wantErr: true},
		{name: "int32 garbage rejected", typ: FieldInt32, input: "abc", wantErr: true},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			got, err := ParseValue(tc.typ, tc.input)
			if tc.wantErr {
				if err == nil {
					t.Errorf("Expected parse error for %q", tc.input)
				}
				return
			}
			if err != nil {
				t.Fatalf("ParseValue failed: %v", err)
			}
			if !got.Equal(tc.want) {
				t.Errorf("ParseValue(%v, %q): got %v, want %v", tc.typ, tc.input, got, tc.want)
			}
		})
	}
}

func TestDecodeSlot(t *testing.T) {
	block := NewStringBlock([]byte("\x00NewModelName\x00"))

	t.Run("numeric slots", func(t *testing.T) {
		v, err := DecodeSlot(42, FieldUint32, block)
		if err != nil {
			t.Fatalf("DecodeSlot failed: %v", err)
		}
		if v.Uint32() != 42 {
			t.Errorf("Decoded uint32 mismatch: got %d", v.Uint32())
		}

		v, err = DecodeSlot(math.Float32bits(3.5), FieldFloat32, block)
		if err != nil {
			t.Fatalf("DecodeSlot failed: %v", err)
		}
		if v.Float32() != 3.5 {
			t.Errorf("Decoded float mismatch: got %v", v.Float32())
		}
	})

	t.Run("string slot resolves offset", func(t *testing.T) {
		v, err := DecodeSlot(1, FieldString, block)
		if err != nil {
			t.Fatalf("DecodeSlot failed: %v", err)
		}
		if v.Str() != "NewModelName" {
			t.Errorf("Decoded string mismatch: got %q", v.Str())
		}
	})

	t.Run("offset zero is the empty string", func(t *testing.T) {
		v, err := DecodeSlot(0, FieldString, block)
		if err != nil {
			t.Fatalf("DecodeSlot failed: %v", err)
		}
		if v.Str() != "" {
			t.Errorf("Expected empty string at offset 0, got %q", v.Str())
		}
	})

	t.Run("out of bounds offset fails", func(t *testing.T) {
		if _, err := DecodeSlot(uint32(block.Len()), FieldString, block); err == nil {
			t.Error("Expected decode to fail for out-of-bounds offset")
		}
	})
}
