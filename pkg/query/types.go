// Package query implements operator-based field queries over a DBC store as
// linear scans, complementing the store's equality-only FindBy.
package query

import (
	"fmt"

	"github.com/wowtools/dbckit/pkg/codec"
)

// FieldQuery represents a single field-based query condition
type FieldQuery struct {
	Field    string      // Field name to query (e.g., "id", "model_name")
	Operator string      // Comparison operator: "=", "!=", ">", "<", ">=", "<="
	Value    codec.Value // Typed value to compare against
}

// Validate checks if the query is properly formed
func (q *FieldQuery) Validate() error {
	if q.Field == "" {
		return fmt.Errorf("field name cannot be empty")
	}
	if q.Operator == "" {
		return fmt.Errorf("operator cannot be empty")
	}
	validOps := map[string]bool{
		"=": true, "!=": true, ">": true, "<": true, ">=": true, "<=": true,
	}
	if !validOps[q.Operator] {
		return fmt.Errorf("invalid operator: %s", q.Operator)
	}
	return nil
}

// Match is one query result: the record's index and its decoded fields.
type Match struct {
	Index  int
	Record map[string]codec.Value
}
