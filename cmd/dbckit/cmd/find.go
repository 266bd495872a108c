package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/wowtools/dbckit/pkg/codec"
	"github.com/wowtools/dbckit/pkg/query"
)

// findCmd represents the find command
var findCmd = &cobra.Command{
	Use:   "find <field> <value>",
	Short: "Find records by field value",
	Long: `Find records whose field matches a value. The comparison operator
defaults to equality; numeric fields also support ordering operators.

Examples:
  dbckit find id 32837 -f Item.dbc -s item.yaml
  dbckit find class 2 --op '>=' -f Item.dbc -s item.yaml`,
	Args: cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		field := args[0]
		text := args[1]
		op, _ := cmd.Flags().GetString("op")

		st, err := storeFromContext(cmd)
		if err != nil {
			return err
		}

		ft, ok := st.Schema().TypeOf(field)
		if !ok {
			return fmt.Errorf("unknown field %q", field)
		}
		value, err := codec.ParseValue(ft, text)
		if err != nil {
			return err
		}

		matches, err := query.NewEngine(st).Execute(query.FieldQuery{
			Field:    field,
			Operator: op,
			Value:    value,
		})
		if err != nil {
			return err
		}

		for _, m := range matches {
			printRecord(cmd, st.Schema(), m.Index, m.Record)
		}
		cmd.Printf("%d record(s) matched\n", len(matches))
		return nil
	},
}

func init() {
	rootCmd.AddCommand(findCmd)
	findCmd.Flags().String("op", "=", "comparison operator: =, !=, >, <, >=, <=")
}
