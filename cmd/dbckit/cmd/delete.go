package cmd

import (
	"strconv"

	"github.com/spf13/cobra"
)

// deleteCmd represents the delete command
var deleteCmd = &cobra.Command{
	Use:   "delete <index>",
	Short: "Delete a record by index",
	Long: `Delete a record by its zero-based index and save the file. Later
records shift down to fill the gap.

Example:
  dbckit delete 2 -f Item.dbc -s item.yaml`,
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

		if err := st.DeleteRecord(index); err != nil {
			return err
		}
		if err := st.Write(); err != nil {
			return err
		}
		cmd.Printf("deleted record %d\n", index)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(deleteCmd)
}
