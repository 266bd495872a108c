package store

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wowtools/dbckit/pkg/codec"
)

func TestStore_CreateRecord(t *testing.T) {
	s := openFixture(t)

	before := s.RecordCount()
	index := s.CreateRecord()

	assert.Equal(t, before, index, "new index must equal the previous record count")
	assert.Equal(t, before+1, s.RecordCount())

	rec, err := s.GetRecord(index)
	require.NoError(t, err)
	assert.True(t, rec["id"].Equal(codec.Uint32Value(0)))
	assert.True(t, rec["class"].Equal(codec.Int32Value(0)))
	assert.True(t, rec["scale"].Equal(codec.Float32Value(0)))
	assert.True(t, rec["model_name"].Equal(codec.StringValue("")), "zero offset decodes to the empty string")
}

func TestStore_CreateRecordWithValues(t *testing.T) {
	s := openFixture(t)

	index, err := s.CreateRecordWithValues(map[string]codec.Value{
		"id":    codec.Uint32Value(77),
		"class": codec.Int32Value(-1),
	})
	require.NoError(t, err)
	assert.Equal(t, 3, index)

	rec, err := s.GetRecord(index)
	require.NoError(t, err)
	assert.True(t, rec["id"].Equal(codec.Uint32Value(77)))
	assert.True(t, rec["class"].Equal(codec.Int32Value(-1)))
	assert.True(t, rec["scale"].Equal(codec.Float32Value(0)), "unnamed fields stay zero")
}

func TestStore_CreateRecordWithValues_RollsBackOnError(t *testing.T) {
	s := openFixture(t)
	before := s.RecordCount()

	_, err := s.CreateRecordWithValues(map[string]codec.Value{
		"id":            codec.Uint32Value(77),
		"no_such_field": codec.Uint32Value(1),
	})
	assert.ErrorIs(t, err, ErrUnknownField)
	assert.Equal(t, before, s.RecordCount(), "failed create must not retain the appended record")
}

func TestStore_UpdateRecord(t *testing.T) {
	s := openFixture(t)

	require.NoError(t, s.UpdateRecord(0, "class", codec.Int32Value(5)))

	rec, err := s.GetRecord(0)
	require.NoError(t, err)
	assert.True(t, rec["class"].Equal(codec.Int32Value(5)))
	assert.True(t, rec["id"].Equal(codec.Uint32Value(32837)), "other fields untouched")
}

func TestStore_UpdateRecord_Errors(t *testing.T) {
	s := openFixture(t)

	assert.ErrorIs(t, s.UpdateRecord(-1, "id", codec.Uint32Value(1)), ErrIndexOutOfRange)
	assert.ErrorIs(t, s.UpdateRecord(s.RecordCount(), "id", codec.Uint32Value(1)), ErrIndexOutOfRange)
	assert.ErrorIs(t, s.UpdateRecord(0, "no_such_field", codec.Uint32Value(1)), ErrUnknownField)
	assert.ErrorIs(t, s.UpdateRecord(0, "id", codec.StringValue("nope")), ErrTypeMismatch)
	assert.ErrorIs(t, s.UpdateRecord(0, "scale", codec.Int32Value(1)), ErrTypeMismatch)
}

func TestStore_UpdateRecord_StringInterning(t *testing.T) {
	s := openFixture(t)

	t.Run("existing text reuses its offset", func(t *testing.T) {
		blockBefore := s.Header().StringBlockSize

		require.NoError(t, s.UpdateRecord(0, "model_name", codec.StringValue("Axe")))

		assert.Equal(t, blockBefore, s.Header().StringBlockSize, "interning existing text must not grow the block")
		rec, err := s.GetRecord(0)
		require.NoError(t, err)
		assert.True(t, rec["model_name"].Equal(codec.StringValue("Axe")))
	})

	t.Run("new text grows the block", func(t *testing.T) {
		blockBefore := s.Header().StringBlockSize

		require.NoError(t, s.UpdateRecord(0, "model_name", codec.StringValue("Warhammer")))

		assert.Equal(t, blockBefore+uint32(len("Warhammer"))+1, s.Header().StringBlockSize)
		rec, err := s.GetRecord(0)
		require.NoError(t, err)
		assert.True(t, rec["model_name"].Equal(codec.StringValue("Warhammer")))
	})

	t.Run("grown block survives a write/read round trip", func(t *testing.T) {
		require.NoError(t, s.Write())

		reread, err := NewStore(Config{Path: s.Path(), Schema: itemSchema(t)})
		require.NoError(t, err)
		require.NoError(t, reread.Read())

		rec, err := reread.GetRecord(0)
		require.NoError(t, err)
		assert.True(t, rec["model_name"].Equal(codec.StringValue("Warhammer")))
	})
}

func TestStore_UpdateRecord_RawStringOffset(t *testing.T) {
	s := openFixture(t)

	// A uint32 value on a string field is a pre-existing block offset.
	require.NoError(t, s.UpdateRecord(0, "model_name", codec.Uint32Value(14)))

	rec, err := s.GetRecord(0)
	require.NoError(t, err)
	assert.True(t, rec["model_name"].Equal(codec.StringValue("Axe")))

	// Offsets outside the block are rejected up front.
	assert.ErrorIs(t, s.UpdateRecord(0, "model_name", codec.Uint32Value(9999)), ErrMalformed)
}

func TestStore_UpdateRecordMulti(t *testing.T) {
	s := openFixture(t)

	require.NoError(t, s.UpdateRecordMulti(0, map[string]codec.Value{
		"class": codec.Int32Value(5),
		"scale": codec.Float32Value(3.5),
	}))

	rec, err := s.GetRecord(0)
	require.NoError(t, err)
	assert.True(t, rec["class"].Equal(codec.Int32Value(5)))
	assert.True(t, rec["scale"].Equal(codec.Float32Value(3.5)))
	assert.True(t, rec["id"].Equal(codec.Uint32Value(32837)), "untouched field must stay bit-identical")
	assert.True(t, rec["model_name"].Equal(codec.StringValue("NewModelName")))
}

func TestStore_UpdateRecordMulti_Atomicity(t *testing.T) {
	s := openFixture(t)

	before, err := s.GetRecord(0)
	require.NoError(t, err)

	err = s.UpdateRecordMulti(0, map[string]codec.Value{
		"class":         codec.Int32Value(5),
		"no_such_field": codec.Int32Value(6),
	})
	assert.ErrorIs(t, err, ErrUnknownField)

	after, err := s.GetRecord(0)
	require.NoError(t, err)
	for name, want := range before {
		assert.True(t, after[name].Equal(want), "field %q mutated by a rejected update set", name)
	}
}

func TestStore_UpdateRecordMulti_IndexCheckedFirst(t *testing.T) {
	s := openFixture(t)

	err := s.UpdateRecordMulti(99, map[string]codec.Value{
		"no_such_field": codec.Int32Value(1),
	})
	assert.ErrorIs(t, err, ErrIndexOutOfRange)
}

func TestStore_DeleteRecord(t *testing.T) {
	s := openFixture(t)

	require.NoError(t, s.DeleteRecord(0))
	assert.Equal(t, 2, s.RecordCount())

	// Shift-down, order-preserving: the former second record is now first.
	rec, err := s.GetRecord(0)
	require.NoError(t, err)
	assert.True(t, rec["id"].Equal(codec.Uint32Value(5)))
	assert.True(t, rec["model_name"].Equal(codec.StringValue("Axe")))

	rec, err = s.GetRecord(1)
	require.NoError(t, err)
	assert.True(t, rec["id"].Equal(codec.Uint32Value(6)))
}

func TestStore_DeleteRecord_Last(t *testing.T) {
	s := openFixture(t)

	require.NoError(t, s.DeleteRecord(s.RecordCount()-1))
	assert.Equal(t, 2, s.RecordCount())

	rec, err := s.GetRecord(0)
	require.NoError(t, err)
	assert.True(t, rec["id"].Equal(codec.Uint32Value(32837)))
}

func TestStore_DeleteRecord_Errors(t *testing.T) {
	s := openFixture(t)

	assert.ErrorIs(t, s.DeleteRecord(-1), ErrIndexOutOfRange)
	assert.ErrorIs(t, s.DeleteRecord(s.RecordCount()), ErrIndexOutOfRange)
}

func TestStore_IndexBounds(t *testing.T) {
	s := openFixture(t)

	for _, index := range []int{-1, -100, s.RecordCount(), s.RecordCount() + 5} {
		_, err := s.GetRecord(index)
		assert.ErrorIs(t, err, ErrIndexOutOfRange, "GetRecord(%d)", index)

		assert.ErrorIs(t, s.UpdateRecord(index, "id", codec.Uint32Value(1)), ErrIndexOutOfRange, "UpdateRecord(%d)", index)
		assert.ErrorIs(t, s.UpdateRecordMulti(index, map[string]codec.Value{"id": codec.Uint32Value(1)}), ErrIndexOutOfRange, "UpdateRecordMulti(%d)", index)
		assert.ErrorIs(t, s.DeleteRecord(index), ErrIndexOutOfRange, "DeleteRecord(%d)", index)
	}
}
