package query

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/wowtools/dbckit/pkg/codec"
)

func TestFieldQuery_Validate(t *testing.T) {
	testCases := []struct {
		name    string
		query   FieldQuery
		wantErr bool
	}{
		{
			name:  "equality query",
			query: FieldQuery{Field: "id", Operator: "=", Value: codec.Uint32Value(1)},
		},
		{
			name:  "range query",
			query: FieldQuery{Field: "scale", Operator: ">=", Value: codec.Float32Value(1)},
		},
		{
			name:  "inequality query",
			query: FieldQuery{Field: "class", Operator: "!=", Value: codec.Int32Value(0)},
		},
		{
			name:    "empty field",
			query:   FieldQuery{Operator: "=", Value: codec.Uint32Value(1)},
			wantErr: true,
		},
		{
			name:    "empty operator",
			query:   FieldQuery{Field: "id", Value: codec.Uint32Value(1)},
			wantErr: true,
		},
		{
			name:    "unsupported operator",
			query:   FieldQuery{Field: "id", Operator: "~", Value: codec.Uint32Value(1)},
			wantErr: true,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			err := tc.query.Validate()
			if tc.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}
