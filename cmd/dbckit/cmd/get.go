package cmd

import (
	"strconv"

	"github.com/spf13/cobra"
)

// getCmd represents the get command
var getCmd = &cobra.Command{
	Use:   "get <index>",
	Short: "Get a record by index",
	Long: `Get a record by its zero-based index and print its fields.

Example:
  dbckit get 0 -f Item.dbc -s item.yaml`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		index, err := strconv.Atoi(args[0])
		if err != nil {
			return err
		}

		st, err := storeFromContext(cmd)
		if err != nil {
			return err
		}

		record, err := st.GetRecord(index)
		if err != nil {
			return err
		}
		printRecord(cmd, st.Schema(), index, record)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(getCmd)
}
