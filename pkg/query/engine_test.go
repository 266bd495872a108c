package query

import (
	"encoding/binary"
	"math"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wowtools/dbckit/pkg/codec"
	"github.com/wowtools/dbckit/pkg/schema"
	"github.com/wowtools/dbckit/pkg/store"
)

// openFixture builds a 4-record store:
//
//	id=10 class=1  scale=0.5 name="Axe"
//	id=20 class=-2 scale=1.0 name="Mace"
//	id=30 class=1  scale=1.5 name="Axe"
//	id=40 class=3  scale=2.0 name=""
func openFixture(t *testing.T) *store.Store {
	t.Helper()

	s, err := schema.New([]schema.Field{
		{Name: "id", Type: codec.FieldUint32},
		{Name: "class", Type: codec.FieldInt32},
		{Name: "scale", Type: codec.FieldFloat32},
		{Name: "model_name", Type: codec.FieldString},
	})
	require.NoError(t, err)

	block := "\x00Axe\x00Mace\x00"
	records := [][4]uint32{
		{10, 1, math.Float32bits(0.5), 1},
		{20, codec.Int32Value(-2).Bits(), math.Float32bits(1.0), 5},
		{30, 1, math.Float32bits(1.5), 1},
		{40, 3, math.Float32bits(2.0), 0},
	}

	h := codec.Header{
		Magic:           [4]byte{'W', 'D', 'B', 'C'},
		RecordCount:     uint32(len(records)),
		FieldCount:      4,
		RecordSize:      16,
		StringBlockSize: uint32(len(block)),
	}
	buf := h.Encode()
	var slot [4]byte
	for _, rec := range records {
		for _, raw := range rec {
			binary.LittleEndian.PutUint32(slot[:], raw)
			buf = append(buf, slot[:]...)
		}
	}
	buf = append(buf, block...)

	path := filepath.Join(t.TempDir(), "Item.dbc")
	require.NoError(t, os.WriteFile(path, buf, 0600))

	st, err := store.NewStore(store.Config{Path: path, Schema: s})
	require.NoError(t, err)
	require.NoError(t, st.Read())
	return st
}

func matchedIndexes(matches []Match) []int {
	indexes := make([]int, 0, len(matches))
	for _, m := range matches {
		indexes = append(indexes, m.Index)
	}
	return indexes
}

func TestEngine_Execute(t *testing.T) {
	engine := NewEngine(openFixture(t))

	testCases := []struct {
		name  string
		query FieldQuery
		want  []int
	}{
		{
			name:  "uint32 equality",
			query: FieldQuery{Field: "id", Operator: "=", Value: codec.Uint32Value(20)},
			want:  []int{1},
		},
		{
			name:  "uint32 greater than",
			query: FieldQuery{Field: "id", Operator: ">", Value: codec.Uint32Value(20)},
			want:  []int{2, 3},
		},
		{
			name:  "int32 less or equal crosses zero",
			query: FieldQuery{Field: "class", Operator: "<=", Value: codec.Int32Value(1)},
			want:  []int{0, 1, 2},
		},
		{
			name:  "float range",
			query: FieldQuery{Field: "scale", Operator: "<", Value: codec.Float32Value(1.5)},
			want:  []int{0, 1},
		},
		{
			name:  "string equality",
			query: FieldQuery{Field: "model_name", Operator: "=", Value: codec.StringValue("Axe")},
			want:  []int{0, 2},
		},
		{
			name:  "string inequality",
			query: FieldQuery{Field: "model_name", Operator: "!=", Value: codec.StringValue("Axe")},
			want:  []int{1, 3},
		},
		{
			name:  "lexicographic string ordering",
			query: FieldQuery{Field: "model_name", Operator: ">", Value: codec.StringValue("Axe")},
			want:  []int{1},
		},
		{
			name:  "no matches",
			query: FieldQuery{Field: "id", Operator: ">", Value: codec.Uint32Value(1000)},
			want:  []int{},
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			matches, err := engine.Execute(tc.query)
			require.NoError(t, err)
			assert.Equal(t, tc.want, matchedIndexes(matches))
		})
	}
}

func TestEngine_Execute_MatchCarriesRecord(t *testing.T) {
	engine := NewEngine(openFixture(t))

	matches, err := engine.Execute(FieldQuery{Field: "id", Operator: "=", Value: codec.Uint32Value(20)})
	require.NoError(t, err)
	require.Len(t, matches, 1)

	assert.True(t, matches[0].Record["class"].Equal(codec.Int32Value(-2)))
	assert.True(t, matches[0].Record["model_name"].Equal(codec.StringValue("Mace")))
}

func TestEngine_Execute_Errors(t *testing.T) {
	engine := NewEngine(openFixture(t))

	_, err := engine.Execute(FieldQuery{Field: "id", Operator: "~", Value: codec.Uint32Value(1)})
	assert.Error(t, err, "invalid operator must be rejected")

	_, err = engine.Execute(FieldQuery{Field: "no_such_field", Operator: "=", Value: codec.Uint32Value(1)})
	assert.ErrorIs(t, err, store.ErrUnknownField)

	_, err = engine.Execute(FieldQuery{Field: "id", Operator: "=", Value: codec.StringValue("x")})
	assert.ErrorIs(t, err, store.ErrTypeMismatch)
}
