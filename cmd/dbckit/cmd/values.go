package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/wowtools/dbckit/pkg/codec"
	"github.com/wowtools/dbckit/pkg/schema"
	"github.com/wowtools/dbckit/pkg/store"
)

// storeFromContext pulls the store that PersistentPreRunE stashed in the
// command context.
func storeFromContext(cmd *cobra.Command) (*store.Store, error) {
	st, ok := cmd.Context().Value("store").(*store.Store)
	if !ok {
		return nil, fmt.Errorf("store not found in context")
	}
	return st, nil
}

// parseAssignments turns "field=value" arguments into typed values using
// the schema. The value text is parsed per the field's declared type.
func parseAssignments(s *schema.Schema, args []string) (map[string]codec.Value, error) {
	values := make(map[string]codec.Value, len(args))
	for _, arg := range args {
		field, text, ok := strings.Cut(arg, "=")
		if !ok {
			return nil, fmt.Errorf("expected field=value, got %q", arg)
		}
		ft, ok := s.TypeOf(field)
		if !ok {
			return nil, fmt.Errorf("unknown field %q", field)
		}
		v, err := codec.ParseValue(ft, text)
		if err != nil {
			return nil, fmt.Errorf("field %q: %w", field, err)
		}
		values[field] = v
	}
	return values, nil
}

// printRecord prints one record's fields in schema order.
func printRecord(cmd *cobra.Command, s *schema.Schema, index int, record store.Record) {
	cmd.Printf("record %d:\n", index)
	for _, f := range s.Fields() {
		cmd.Printf("  %s = %s\n", f.Name, record[f.Name].String())
	}
}
