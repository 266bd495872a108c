package cmd

import (
	"strconv"

	"github.com/spf13/cobra"
)

// setCmd represents the set command
var setCmd = &cobra.Command{
	Use:   "set <index> <field=value ...>",
	Short: "Update fields of a record",
	Long: `Update one or more fields of a record and save the file. All
updates are validated before any field changes.

Example:
  dbckit set 0 class=5 model_name=Warhammer -f Item.dbc -s item.yaml`,
	Args: cobra.MinimumNArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		index, err := strconv.Atoi(args[0])
		if err != nil {
			return err
		}

		st, err := storeFromContext(cmd)
		if err != nil {
			return err
		}

		values, err := parseAssignments(st.Schema(), args[1:])
		if err != nil {
			return err
		}
		if err := st.UpdateRecordMulti(index, values); err != nil {
			return err
		}

		if err := st.Write(); err != nil {
			return err
		}
		cmd.Printf("updated record %d\n", index)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(setCmd)
}
