package query

import (
	"fmt"

	"github.com/wowtools/dbckit/pkg/codec"
	"github.com/wowtools/dbckit/pkg/store"
)

// Engine executes field queries against one DBC store with a linear scan.
type Engine struct {
	store *store.Store
}

// NewEngine creates a query engine over the given store.
func NewEngine(s *store.Store) *Engine {
	return &Engine{store: s}
}

// Execute runs a single field query and returns all matches in storage
// order.
func (e *Engine) Execute(q FieldQuery) ([]Match, error) {
	if err := q.Validate(); err != nil {
		return nil, fmt.Errorf("invalid query: %w", err)
	}

	ft, ok := e.store.Schema().TypeOf(q.Field)
	if !ok {
		return nil, fmt.Errorf("%w: %q", store.ErrUnknownField, q.Field)
	}
	if err := checkComparable(ft, q); err != nil {
		return nil, err
	}

	var matches []Match
	for i := 0; i < e.store.RecordCount(); i++ {
		v, err := e.store.FieldValue(i, q.Field)
		if err != nil {
			return nil, err
		}

		ok, err := compare(v, q.Operator, q.Value)
		if err != nil {
			return nil, err
		}
		if !ok {
			continue
		}

		record, err := e.store.GetRecord(i)
		if err != nil {
			return nil, err
		}
		matches = append(matches, Match{Index: i, Record: record})
	}
	return matches, nil
}

// checkComparable rejects queries whose value kind disagrees with the
// field's declared type.
func checkComparable(ft codec.FieldType, q FieldQuery) error {
	if q.Value.Kind() != ft {
		return fmt.Errorf("%w: field %q is %s, query value is %s",
			store.ErrTypeMismatch, q.Field, ft, q.Value.Kind())
	}
	return nil
}

// compare evaluates `left op right` for two values of the same kind.
// Numerics order numerically, strings lexicographically.
func compare(left codec.Value, op string, right codec.Value) (bool, error) {
	switch op {
	case "=":
		return left.Equal(right), nil
	case "!=":
		return !left.Equal(right), nil
	}

	var cmp int
	switch left.Kind() {
	case codec.FieldUint32:
		cmp = orderOf(left.Uint32() < right.Uint32(), left.Uint32() == right.Uint32())
	case codec.FieldInt32:
		cmp = orderOf(left.Int32() < right.Int32(), left.Int32() == right.Int32())
	case codec.FieldFloat32:
		cmp = orderOf(left.Float32() < right.Float32(), left.Float32() == right.Float32())
	case codec.FieldString:
		cmp = orderOf(left.Str() < right.Str(), left.Str() == right.Str())
	default:
		return false, fmt.Errorf("uncomparable value kind %v", left.Kind())
	}

	switch op {
	case "<":
		return cmp < 0, nil
	case "<=":
		return cmp <= 0, nil
	case ">":
		return cmp > 0, nil
	case ">=":
		return cmp >= 0, nil
	}
	return false, fmt.Errorf("unsupported operator: %s", op)
}

func orderOf(less, equal bool) int {
	switch {
	case less:
		return -1
	case equal:
		return 0
	}
	return 1
}
