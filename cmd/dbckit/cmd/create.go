package cmd

import (
	"github.com/spf13/cobra"
)

// createCmd represents the create command
var createCmd = &cobra.Command{
	Use:   "create [field=value ...]",
	Short: "Append a new record",
	Long: `Append a new record and save the file. Without arguments the record
is zero-initialized; field=value arguments seed the named fields.

Examples:
  dbckit create -f Item.dbc -s item.yaml
  dbckit create id=777 model_name=Mace -f Item.dbc -s item.yaml`,
	RunE: func(cmd *cobra.Command, args []string) error {
		st, err := storeFromContext(cmd)
		if err != nil {
			return err
		}

		var index int
		if len(args) == 0 {
			index = st.CreateRecord()
		} else {
			values, err := parseAssignments(st.Schema(), args)
			if err != nil {
				return err
			}
			index, err = st.CreateRecordWithValues(values)
			if err != nil {
				return err
			}
		}

		if err := st.Write(); err != nil {
			return err
		}
		cmd.Printf("created record %d\n", index)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(createCmd)
}
